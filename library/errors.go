package library

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID       = errors.New("identifier already exists")
	ErrInvalidQuantity   = errors.New("total copies must be a positive integer")
	ErrNotFound          = errors.New("not found")
	ErrNoCopiesAvailable = errors.New("no copies available to borrow")
	ErrNoCopiesOut       = errors.New("no copies out on loan")
)

// PersistenceError wraps a storage failure. It is a distinct class from the
// domain sentinels above because it means the in-memory state and the durable
// state have diverged: the mutation succeeded, writing it did not.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
