package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/josephgoksu/todowing/models"
	"github.com/spf13/afero"
)

const (
	defaultDataFile   = "tasks.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	verifyChecksumKey = "verifyChecksum"
	lockKey           = "lock"
	defaultDataFormat = formatJSON
)

// DefaultCategories seeds the known-category set of every store.
var DefaultCategories = []string{"Work", "Personal", "Urgent", "General", "Health", "Learning"}

var timeNow = time.Now

// FileTaskStore implements TaskStore over an in-memory ordered slice of tasks
// persisted as a whole document. It supports JSON, YAML, TOML and SQLite.
type FileTaskStore struct {
	fs             afero.Fs
	filePath       string
	format         string
	verifyChecksum bool

	backend backend
	lock    locker
	now     func() time.Time

	tasks      []models.Task
	nextID     int
	categories map[string]struct{}
	warnings   []string
}

// Option customizes a FileTaskStore.
type Option func(*FileTaskStore)

// WithFs sets the filesystem used by the file formats. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *FileTaskStore) { s.fs = fs }
}

// WithClock overrides the time source used for created/completed stamps.
func WithClock(now func() time.Time) Option {
	return func(s *FileTaskStore) { s.now = now }
}

// NewFileTaskStore creates a new instance of FileTaskStore in its empty
// default state. Initialize must be called before Load or Save.
func NewFileTaskStore(opts ...Option) *FileTaskStore {
	s := &FileTaskStore{
		fs:   afero.NewOsFs(),
		now:  timeNow,
		lock: nopLock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

// Initialize configures the FileTaskStore.
// Recognized keys: "dataFile" (default tasks.json), "dataFileFormat" (json,
// yaml, toml or sqlite), "verifyChecksum" and "lock" (booleans, default true).
func (s *FileTaskStore) Initialize(config map[string]string) error {
	s.filePath = defaultDataFile
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	}

	s.format = defaultDataFormat
	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML, formatSQLite:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml, sqlite", val)
		}
	}

	// A bare default file name follows the chosen format's extension.
	if s.filePath == defaultDataFile {
		s.filePath = DefaultFileName(s.format)
	}

	verify, err := boolSetting(config, verifyChecksumKey, true)
	if err != nil {
		return err
	}
	s.verifyChecksum = verify

	useLock, err := boolSetting(config, lockKey, true)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	_, onDisk := s.fs.(*afero.OsFs)
	if useLock && onDisk {
		s.lock = newFileLock(s.filePath)
	} else {
		s.lock = nopLock{}
	}

	if s.backend != nil {
		_ = s.backend.close()
	}
	if s.format == formatSQLite {
		if !onDisk {
			return fmt.Errorf("the sqlite format requires the OS filesystem")
		}
		b, err := newSQLiteBackend(s.filePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database %s: %w", s.filePath, err)
		}
		s.backend = b
	} else {
		s.backend = &fileBackend{
			fs:             s.fs,
			filePath:       s.filePath,
			format:         s.format,
			verifyChecksum: s.verifyChecksum,
		}
	}

	s.reset()
	return nil
}

// DefaultFileName returns the data file name used for format when none is
// configured: tasks.json, tasks.yaml, tasks.toml or tasks.db.
func DefaultFileName(format string) string {
	switch format {
	case formatSQLite:
		return "tasks.db"
	case formatYAML, formatTOML:
		return "tasks." + format
	default:
		return defaultDataFile
	}
}

func boolSetting(config map[string]string, key string, def bool) (bool, error) {
	val, ok := config[key]
	if !ok || val == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, val, err)
	}
	return b, nil
}

// FilePath returns the resolved path of the backing file.
func (s *FileTaskStore) FilePath() string {
	return s.filePath
}

// Format returns the resolved data format.
func (s *FileTaskStore) Format() string {
	return s.format
}

func (s *FileTaskStore) reset() {
	s.tasks = nil
	s.nextID = 1
	s.warnings = nil
	s.categories = make(map[string]struct{}, len(DefaultCategories))
	for _, c := range DefaultCategories {
		s.categories[c] = struct{}{}
	}
}

func (s *FileTaskStore) registerCategory(category string) {
	if category == "" {
		return
	}
	s.categories[category] = struct{}{}
}

// Load replaces the in-memory state with the persisted document. A missing
// file is not an error. Tasks persisted without an ID get one from next_id.
func (s *FileTaskStore) Load() error {
	s.reset()
	if s.backend == nil {
		return fmt.Errorf("store not initialized")
	}

	if err := s.lock.Lock(); err != nil {
		return &PersistenceError{Op: "load", Path: s.filePath, Err: err}
	}
	defer func() { _ = s.lock.Unlock() }()

	doc, err := s.backend.read()
	if errors.Is(err, ErrChecksumMismatch) && doc != nil {
		s.warnf("%s was changed outside todowing; its tasks were loaded and the checksum is rewritten on the next save", s.filePath)
		err = nil
	}
	if err != nil {
		return &PersistenceError{Op: "load", Path: s.filePath, Err: err}
	}
	if doc == nil {
		return nil
	}

	now := s.now()
	tasks := make([]models.Task, 0, len(doc.Tasks))
	var missing []int
	maxID := 0
	for i, rec := range doc.Tasks {
		// Skipped records still reserve their id.
		if rec.TaskID != nil && *rec.TaskID > maxID {
			maxID = *rec.TaskID
		}
		if err := models.ValidateStruct(rec); err != nil || strings.TrimSpace(rec.Title) == "" {
			s.warnf("skipped task #%d in %s: empty title", i+1, s.filePath)
			continue
		}
		task, hasID := models.FromRecord(rec, now)
		if !hasID {
			missing = append(missing, len(tasks))
		}
		tasks = append(tasks, task)
	}

	nextID := 1
	if doc.NextID != nil {
		nextID = *doc.NextID
	}
	// Never hand out an ID that is already taken.
	if nextID <= maxID {
		nextID = maxID + 1
	}
	for _, i := range missing {
		tasks[i].ID = nextID
		nextID++
	}

	s.tasks = tasks
	s.nextID = nextID
	for _, t := range tasks {
		s.registerCategory(t.Category)
	}
	return nil
}

func (s *FileTaskStore) warnf(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the problems the last Load recovered from.
func (s *FileTaskStore) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

func (s *FileTaskStore) document() models.Document {
	records := make([]models.Record, 0, len(s.tasks))
	for _, t := range s.tasks {
		records = append(records, t.Record())
	}
	next := s.nextID
	return models.Document{Tasks: records, NextID: &next}
}

// Save writes every task and next_id to the backend.
func (s *FileTaskStore) Save() error {
	if s.backend == nil {
		return fmt.Errorf("store not initialized")
	}
	if err := s.lock.Lock(); err != nil {
		return &PersistenceError{Op: "save", Path: s.filePath, Err: err}
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := s.backend.write(s.document()); err != nil {
		return &PersistenceError{Op: "save", Path: s.filePath, Err: err}
	}
	return nil
}

// Add creates a new task with the next identifier and registers its category.
func (s *FileTaskStore) Add(title, description, category string) (models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return models.Task{}, ErrEmptyTitle
	}
	category = strings.TrimSpace(category)

	task := models.NewTask(title, strings.TrimSpace(description), category, s.now())
	task.ID = s.nextID
	s.tasks = append(s.tasks, task)
	s.nextID++
	s.registerCategory(task.Category)
	return task, nil
}

func (s *FileTaskStore) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByID returns the task with the given identifier.
func (s *FileTaskStore) FindByID(id int) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, notFound(id)
	}
	return s.tasks[i], nil
}

// MarkCompleted completes the task. A task that is already completed keeps its
// original completed_date and changed is false.
func (s *FileTaskStore) MarkCompleted(id int) (models.Task, bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false, notFound(id)
	}
	if s.tasks[i].Completed {
		return s.tasks[i], false, nil
	}
	s.tasks[i].MarkCompleted(s.now())
	return s.tasks[i], true, nil
}

// MarkIncomplete reopens the task. changed is false if it was not completed.
func (s *FileTaskStore) MarkIncomplete(id int) (models.Task, bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false, notFound(id)
	}
	if !s.tasks[i].Completed {
		return s.tasks[i], false, nil
	}
	s.tasks[i].MarkIncomplete()
	return s.tasks[i], true, nil
}

// Delete removes the task. Other tasks keep their identifiers.
func (s *FileTaskStore) Delete(id int) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, notFound(id)
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, nil
}

// TaskEdit lists the fields to change. A nil field is left as is.
type TaskEdit struct {
	Title       *string
	Description *string
	Category    *string
}

// Edit applies edit to the task. Blank titles and categories are ignored; a
// non-nil Description is always applied, so an empty string clears it.
func (s *FileTaskStore) Edit(id int, edit TaskEdit) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, notFound(id)
	}
	task := &s.tasks[i]

	if edit.Title != nil {
		if title := strings.TrimSpace(*edit.Title); title != "" {
			task.Title = title
		}
	}
	if edit.Description != nil {
		task.Description = strings.TrimSpace(*edit.Description)
	}
	if edit.Category != nil {
		if category := strings.TrimSpace(*edit.Category); category != "" {
			task.Category = category
			s.registerCategory(category)
		}
	}
	return *task, nil
}

// Categories returns the known category labels in alphabetical order.
func (s *FileTaskStore) Categories() []string {
	out := make([]string, 0, len(s.categories))
	for c := range s.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Tasks returns a copy of every task in creation order.
func (s *FileTaskStore) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// NextID returns the identifier the next Add will assign.
func (s *FileTaskStore) NextID() int {
	return s.nextID
}

// Backup copies the persisted data to destinationPath. Unsaved in-memory
// changes are not included.
func (s *FileTaskStore) Backup(destinationPath string) error {
	if s.backend == nil {
		return fmt.Errorf("store not initialized")
	}
	if err := s.lock.Lock(); err != nil {
		return &PersistenceError{Op: "backup", Path: s.filePath, Err: err}
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := s.backend.backup(destinationPath); err != nil {
		return &PersistenceError{Op: "backup", Path: destinationPath, Err: err}
	}
	return nil
}

// Restore replaces the persisted data with sourcePath and reloads the store.
func (s *FileTaskStore) Restore(sourcePath string) error {
	if s.backend == nil {
		return fmt.Errorf("store not initialized")
	}
	if err := s.lock.Lock(); err != nil {
		return &PersistenceError{Op: "restore", Path: s.filePath, Err: err}
	}
	err := s.backend.restore(sourcePath)
	_ = s.lock.Unlock()
	if err != nil {
		return &PersistenceError{Op: "restore", Path: sourcePath, Err: err}
	}
	return s.Load()
}

// Close releases the file lock and any database handle.
func (s *FileTaskStore) Close() error {
	var err error
	if s.backend != nil {
		err = s.backend.close()
	}
	if unlockErr := s.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}
