package board

import (
	"errors"
	"fmt"
)

var (
	ErrSessionActive    = errors.New("drag session already active")
	ErrNoSession        = errors.New("no active drag session")
	ErrUnresolvedTarget = errors.New("drag target not found")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
