package statusutil

import (
	"fmt"
	"strings"

	"clarity-board/internal/model"
)

// Normalize maps a stored status onto a board column. Anything other than the
// three canonical ids lands in todo so an item is never dropped from view.
// Command-line spellings go through Parse instead.
func Normalize(s model.Status) model.Status {
	if s.Valid() {
		return s
	}
	return model.StatusTodo
}

// Parse accepts the canonical ids plus the spellings people type on a command line.
func Parse(s string) (model.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to-do", "to_do":
		return model.StatusTodo, nil
	case "in_progress", "in-progress", "inprogress", "doing":
		return model.StatusInProgress, nil
	case "completed", "complete", "done":
		return model.StatusCompleted, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status: %s", strings.TrimSpace(s))
	}
}

// IsColumnID reports whether id names a board column rather than an item.
func IsColumnID(id string) bool {
	return model.Status(strings.TrimSpace(id)).Valid()
}

func Label(s model.Status) string {
	switch Normalize(s) {
	case model.StatusInProgress:
		return "In Progress"
	case model.StatusCompleted:
		return "Done"
	default:
		return "To Do"
	}
}

func IsEndState(s model.Status) bool {
	return s == model.StatusCompleted
}

// ColumnIndex returns the display position of s on the board.
func ColumnIndex(s model.Status) int {
	for i, st := range model.Statuses {
		if st == Normalize(s) {
			return i
		}
	}
	return 0
}
