package board

import (
	"strings"

	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

// Location is where an item (or a column drop zone) sits on the board.
type Location struct {
	Status model.Status `json:"status"`
	Index  int          `json:"index"`
	// IsColumn is set when the target was a column id rather than an item.
	IsColumn bool `json:"isColumn,omitempty"`
}

// Locate finds the column and in-column index of itemID.
func Locate[P any](items []model.Item[P], itemID string) (Location, bool) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return Location{}, false
	}
	var seen [3]int
	for _, it := range items {
		st := statusutil.Normalize(it.Status)
		ci := statusutil.ColumnIndex(st)
		if it.ID == itemID {
			return Location{Status: st, Index: seen[ci]}, true
		}
		seen[ci]++
	}
	return Location{}, false
}

// LocateTarget resolves a drop target. Item ids win over column ids; a column
// resolves to its end position (Index == len(column)).
func LocateTarget[P any](items []model.Item[P], targetID string) (Location, bool) {
	targetID = strings.TrimSpace(targetID)
	if loc, ok := Locate(items, targetID); ok {
		return loc, true
	}
	if !statusutil.IsColumnID(targetID) {
		return Location{}, false
	}
	st := model.Status(targetID)
	return Location{Status: st, Index: len(Project(items, st)), IsColumn: true}, true
}

// insertionIndex applies the drop policy: a sibling target means "take the
// sibling's index", a column target means "append to the end". src is the
// current location of the dragged item.
func insertionIndex(src, target Location) int {
	if !target.IsColumn {
		return target.Index
	}
	if target.Status == src.Status {
		// The column count includes the dragged item itself.
		return target.Index - 1
	}
	return target.Index
}
