package store

import "github.com/josephgoksu/todowing/models"

// TaskStore defines the contract for the task collection.
// Mutating operations only change the in-memory state; callers persist with
// Save afterwards. A failed Save never rolls the mutation back.
type TaskStore interface {
	// Initialize configures the store with backend-specific settings such as
	// the data file path and format. It must be called before Load.
	Initialize(config map[string]string) error

	// Load replaces the in-memory state with the persisted one. On failure the
	// store is left in its empty default state and the error is returned for
	// reporting.
	Load() error

	// Warnings lists what the last Load recovered from without failing, such
	// as a stale checksum or a skipped record.
	Warnings() []string

	// Save writes the full task list and next_id to the backend.
	Save() error

	// Add creates a task with the next identifier. It fails with ErrEmptyTitle
	// when the trimmed title is empty.
	Add(title, description, category string) (models.Task, error)

	// FindByID returns the task with the given identifier or ErrTaskNotFound.
	FindByID(id int) (models.Task, error)

	// MarkCompleted completes a task. changed is false when it already was.
	MarkCompleted(id int) (task models.Task, changed bool, err error)

	// MarkIncomplete reopens a task. changed is false when it already was open.
	MarkIncomplete(id int) (task models.Task, changed bool, err error)

	// Delete removes a task and returns it.
	Delete(id int) (models.Task, error)

	// Edit applies the non-nil fields of edit to a task.
	Edit(id int, edit TaskEdit) (models.Task, error)

	// View groups tasks by category, optionally filtered.
	View(opts ViewOptions) []CategoryGroup

	// Search returns tasks whose title, description or category contain query.
	Search(query string) []models.Task

	// Statistics aggregates completion counts overall and per category.
	Statistics() Stats

	// Categories returns the known category labels, sorted.
	Categories() []string

	// Tasks returns a copy of every task in creation order.
	Tasks() []models.Task

	// NextID returns the identifier the next Add will assign.
	NextID() int

	// Backup copies the persisted data to destinationPath.
	Backup(destinationPath string) error

	// Restore replaces the persisted data with sourcePath and reloads it.
	Restore(sourcePath string) error

	// Close releases any resources held by the store, such as file locks or
	// database connections.
	Close() error
}
