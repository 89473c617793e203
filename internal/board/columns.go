package board

import (
	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

// Column is a derived view: the items of one status in collection order.
type Column[P any] struct {
	Status model.Status
	Items  []model.Item[P]
}

// Project returns the items that belong to status, preserving their relative
// order in items. Unknown statuses count as todo.
func Project[P any](items []model.Item[P], status model.Status) []model.Item[P] {
	status = statusutil.Normalize(status)
	out := make([]model.Item[P], 0, len(items))
	for _, it := range items {
		if statusutil.Normalize(it.Status) == status {
			out = append(out, it)
		}
	}
	return out
}

// ProjectAll partitions items into the board columns in display order.
func ProjectAll[P any](items []model.Item[P]) []Column[P] {
	cols := make([]Column[P], len(model.Statuses))
	for i, st := range model.Statuses {
		cols[i].Status = st
	}
	for _, it := range items {
		ci := statusutil.ColumnIndex(it.Status)
		cols[ci].Items = append(cols[ci].Items, it)
	}
	return cols
}
