package store

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTitle is returned when a task is added with a blank title.
	ErrEmptyTitle = errors.New("task title cannot be empty")
	// ErrTaskNotFound is returned when no task has the requested identifier.
	ErrTaskNotFound = errors.New("task not found")
	// ErrChecksumMismatch is reported when the data file no longer matches its
	// checksum sidecar, e.g. after an edit by another program.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// TaskError ties a store error to the task identifier it concerns.
type TaskError struct {
	ID  int
	Err error
}

func (e *TaskError) Error() string {
	if errors.Is(e.Err, ErrTaskNotFound) {
		return fmt.Sprintf("task with ID %d not found", e.ID)
	}
	return fmt.Sprintf("task %d: %v", e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed read or write of the backing data.
type PersistenceError struct {
	Op   string // load, save, backup, restore
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func notFound(id int) error {
	return &TaskError{ID: id, Err: ErrTaskNotFound}
}
