package board

import (
	"strings"

	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

// Move returns a new collection with itemID re-tagged as target and placed at
// rank targetIndex within that column. targetIndex is clamped to the column
// bounds. Items of other columns keep their relative order.
//
// When the item already sits at the requested placement the input slice is
// returned unchanged and changed is false.
func Move[P any](items []model.Item[P], itemID string, target model.Status, targetIndex int) (out []model.Item[P], changed bool, err error) {
	itemID = strings.TrimSpace(itemID)
	from := -1
	for i := range items {
		if items[i].ID == itemID {
			from = i
			break
		}
	}
	if from < 0 {
		return items, false, NotFoundError{Kind: "item", ID: itemID}
	}
	target = statusutil.Normalize(target)

	// Column size once the moved item is taken out.
	n := 0
	for i, it := range items {
		if i != from && statusutil.Normalize(it.Status) == target {
			n++
		}
	}
	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > n {
		targetIndex = n
	}

	if statusutil.Normalize(items[from].Status) == target {
		if cur, ok := Locate(items, itemID); ok && cur.Index == targetIndex {
			return items, false, nil
		}
	}

	moved := items[from]
	moved.Status = target

	rest := make([]model.Item[P], 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	pos := flatInsertPos(rest, target, targetIndex, from)

	out = make([]model.Item[P], 0, len(items))
	out = append(out, rest[:pos]...)
	out = append(out, moved)
	out = append(out, rest[pos:]...)
	return out, true, nil
}

// flatInsertPos maps a column rank onto an index in the flat collection.
// rest must not contain the moved item. fallback is used for empty columns so
// the item keeps its old flat position.
func flatInsertPos[P any](rest []model.Item[P], target model.Status, rank int, fallback int) int {
	seen := 0
	last := -1
	for i, it := range rest {
		if statusutil.Normalize(it.Status) != target {
			continue
		}
		if seen == rank {
			return i
		}
		seen++
		last = i
	}
	if last >= 0 {
		return last + 1
	}
	if fallback > len(rest) {
		return len(rest)
	}
	return fallback
}
