package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// TimestampLayout is the layout of created_date and completed_date.
	TimestampLayout = "2006-01-02 15:04:05"

	// DefaultCategory is used when a task is created or loaded without one.
	DefaultCategory = "General"
)

// Task represents a single to-do item.
type Task struct {
	ID            int
	Title         string
	Description   string
	Category      string
	Completed     bool
	CreatedDate   string
	CompletedDate *string // nil while the task is incomplete
}

// NewTask builds an incomplete task stamped with now. The ID is left for the
// store to assign.
func NewTask(title, description, category string, now time.Time) Task {
	if category == "" {
		category = DefaultCategory
	}
	return Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    category,
		CreatedDate: now.Format(TimestampLayout),
	}
}

// MarkCompleted sets the task as completed and records the completion time.
// Callers are expected to check Completed first to avoid re-stamping.
func (t *Task) MarkCompleted(now time.Time) {
	stamp := now.Format(TimestampLayout)
	t.Completed = true
	t.CompletedDate = &stamp
}

// MarkIncomplete clears the completion state.
func (t *Task) MarkIncomplete() {
	t.Completed = false
	t.CompletedDate = nil
}

// String renders the task as a single status line, e.g. "○ [3] Pay rent (Urgent)".
func (t Task) String() string {
	status := "○"
	if t.Completed {
		status = "✓"
	}
	return fmt.Sprintf("%s [%d] %s (%s)", status, t.ID, t.Title, t.Category)
}

// Record is the persisted form of a Task. Optional fields are pointers so that
// a missing key can be told apart from a zero value when reading older files.
type Record struct {
	Title         string  `json:"title" yaml:"title" toml:"title" validate:"required"`
	Description   *string `json:"description" yaml:"description" toml:"description,omitempty"`
	Category      *string `json:"category" yaml:"category" toml:"category,omitempty"`
	Completed     *bool   `json:"completed" yaml:"completed" toml:"completed,omitempty"`
	CreatedDate   *string `json:"created_date" yaml:"created_date" toml:"created_date,omitempty"`
	TaskID        *int    `json:"task_id" yaml:"task_id" toml:"task_id,omitempty"`
	CompletedDate *string `json:"completed_date" yaml:"completed_date" toml:"completed_date,omitempty"`
}

// Record serializes the task with every field present.
func (t Task) Record() Record {
	description := t.Description
	category := t.Category
	completed := t.Completed
	created := t.CreatedDate
	id := t.ID

	rec := Record{
		Title:       t.Title,
		Description: &description,
		Category:    &category,
		Completed:   &completed,
		CreatedDate: &created,
		TaskID:      &id,
	}
	if t.CompletedDate != nil {
		stamp := *t.CompletedDate
		rec.CompletedDate = &stamp
	}
	return rec
}

// FromRecord rebuilds a Task from its persisted form, applying defaults for
// missing optional fields. The boolean result reports whether the record
// carried a usable task_id; when it is false the store assigns one.
func FromRecord(rec Record, now time.Time) (Task, bool) {
	t := Task{
		Title:    rec.Title,
		Category: DefaultCategory,
	}
	if rec.Description != nil {
		t.Description = *rec.Description
	}
	if rec.Category != nil && *rec.Category != "" {
		t.Category = *rec.Category
	}
	if rec.Completed != nil {
		t.Completed = *rec.Completed
	}
	if rec.CreatedDate != nil && *rec.CreatedDate != "" {
		t.CreatedDate = *rec.CreatedDate
	} else {
		t.CreatedDate = now.Format(TimestampLayout)
	}
	if rec.CompletedDate != nil {
		stamp := *rec.CompletedDate
		t.CompletedDate = &stamp
	}
	if rec.TaskID == nil || *rec.TaskID <= 0 {
		return t, false
	}
	t.ID = *rec.TaskID
	return t, true
}

// Document is the on-disk layout: every task plus the next identifier to assign.
type Document struct {
	Tasks  []Record `json:"tasks" yaml:"tasks" toml:"tasks"`
	NextID *int     `json:"next_id" yaml:"next_id" toml:"next_id,omitempty"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
