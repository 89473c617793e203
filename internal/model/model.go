package model

import "time"

// Status is the column a work item lives in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the three board statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Item is one card on the board. Payload is carried through untouched.
type Item[P any] struct {
	ID      string `json:"id"`
	Status  Status `json:"status"`
	Payload P      `json:"payload"`
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Subtask struct {
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}

// Task is the payload stored by the workspace and redis backends.
type Task struct {
	Title    string    `json:"title" yaml:"title"`
	Priority Priority  `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueDate  *DateTime `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Category string    `json:"category,omitempty" yaml:"category,omitempty"`
	Subtasks []Subtask `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Pinned   bool      `json:"pinned" yaml:"pinned"`
}

// DateTime represents an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
type DateTime struct {
	Date string  `json:"date" yaml:"date"`                     // YYYY-MM-DD
	Time *string `json:"time,omitempty" yaml:"time,omitempty"` // HH:MM
}

// TaskItem is the concrete item type used outside the engine.
type TaskItem = Item[Task]

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	ActorID  string    `json:"actorId"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
