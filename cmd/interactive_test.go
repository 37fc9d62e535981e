package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/todowing/store"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionDataFile = "/data/tasks.json"

type sessionFixture struct {
	fs     afero.Fs
	store  *store.FileTaskStore
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	fs := afero.NewMemMapFs()
	return &sessionFixture{
		fs:     fs,
		store:  openFixtureStore(t, fs),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
}

func openFixtureStore(t *testing.T, fs afero.Fs) *store.FileTaskStore {
	t.Helper()
	clock := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	ts := store.NewFileTaskStore(store.WithFs(fs), store.WithClock(func() time.Time { return clock }))
	require.NoError(t, ts.Initialize(map[string]string{"dataFile": sessionDataFile}))
	require.NoError(t, ts.Load())
	return ts
}

// seed adds tasks directly to the store before the session starts.
func (f *sessionFixture) seed(t *testing.T) {
	t.Helper()
	_, err := f.store.Add("Buy milk", "", "General")
	require.NoError(t, err)
	_, err = f.store.Add("Pay rent", "due monthly", "Urgent")
	require.NoError(t, err)
}

// run plays input through a session without pauses.
func (f *sessionFixture) run(input string) string {
	s := &session{
		store:  f.store,
		prompt: newLinePrompter(strings.NewReader(input), f.out),
		out:    f.out,
		errOut: f.errOut,
	}
	s.run()
	return f.out.String()
}

// reload reads back what the session persisted.
func (f *sessionFixture) reload(t *testing.T) *store.FileTaskStore {
	t.Helper()
	return openFixtureStore(t, f.fs)
}

func TestSession_MenuLayout(t *testing.T) {
	f := newSessionFixture(t)
	out := f.run("0\n")

	assert.Contains(t, out, "📝 PERSONAL TO-DO LIST APPLICATION")
	assert.Contains(t, out, "1.  ➕ Add Task")
	assert.Contains(t, out, "10. 📁 Filter by Category")
	assert.Contains(t, out, "11. 📋 List Categories")
	assert.Contains(t, out, "0.  🚪 Exit")
	assert.Contains(t, out, "Choose an option (0-11): ")
}

func TestSession_AddAndExit(t *testing.T) {
	f := newSessionFixture(t)
	out := f.run("1\nBuy milk\nsemi-skimmed\nUrgent\n0\n")

	assert.Contains(t, out, "Available categories: General, Health, Learning, Personal, Urgent, Work")
	assert.Contains(t, out, "Task 'Buy milk' added successfully!")
	assert.Contains(t, out, "Tasks saved successfully!")
	assert.Contains(t, out, "Thank you for using the Personal To-Do List Application!")
	assert.Contains(t, out, "Goodbye! 👋")

	tasks := f.reload(t).Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, 1, tasks[0].ID)
	assert.Equal(t, "semi-skimmed", tasks[0].Description)
	assert.Equal(t, "Urgent", tasks[0].Category)
}

func TestSession_AddDefaultsCategory(t *testing.T) {
	f := newSessionFixture(t)
	f.run("1\nStretch\n\n\n0\n")

	tasks := f.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "General", tasks[0].Category)
	assert.Empty(t, tasks[0].Description)
}

func TestSession_InvalidChoices(t *testing.T) {
	f := newSessionFixture(t)
	out := f.run("abc\n42\n-1\n\n0\n")

	assert.Equal(t, 1, strings.Count(out, "Please enter a valid number."))
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please select a number between 0-11."))
	assert.Contains(t, out, "Input cannot be empty. Please try again.")
	assert.Contains(t, out, "Goodbye! 👋")
}

func TestSession_EndOfInputDoesNotSaveOnExit(t *testing.T) {
	f := newSessionFixture(t)
	out := f.run("")

	assert.Contains(t, out, "Application terminated by user. Goodbye! 👋")
	assert.NotContains(t, out, "Tasks saved successfully!")
	exists, err := afero.Exists(f.fs, sessionDataFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSession_EndOfInputKeepsSavedChanges(t *testing.T) {
	f := newSessionFixture(t)
	out := f.run("1\nBuy milk\n\n\n")

	assert.Contains(t, out, "Task 'Buy milk' added successfully!")
	assert.Contains(t, out, "Application terminated by user.")
	assert.Len(t, f.reload(t).Tasks(), 1)
}

func TestSession_EndOfInputMidAction(t *testing.T) {
	f := newSessionFixture(t)
	out := f.run("1\nBuy milk\n")

	assert.Contains(t, out, "Application terminated by user.")
	assert.Empty(t, f.store.Tasks())
}

func TestSession_MarkCompleted(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)

	out := f.run("4\nx\n1\n4\n1\n0\n")

	assert.Contains(t, out, "YOUR TASKS")
	assert.Contains(t, out, "Please enter a valid number.")
	assert.Contains(t, out, "Task 'Buy milk' marked as completed!")
	assert.Contains(t, out, "Task 'Buy milk' is already completed!")

	task, err := f.reload(t).FindByID(1)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedDate)
	assert.Equal(t, "2025-03-14 09:00:00", *task.CompletedDate)
}

func TestSession_MarkCompletedNotFound(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)

	out := f.run("4\n99\n0\n")
	assert.Contains(t, out, "Task with ID 99 not found!")
}

func TestSession_MarkCompletedWithoutTasksSkipsPrompt(t *testing.T) {
	f := newSessionFixture(t)

	out := f.run("4\n0\n")
	assert.Contains(t, out, "No tasks found!")
	assert.NotContains(t, out, "Enter task ID to mark as completed")
}

func TestSession_MarkIncomplete(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)

	out := f.run("5\n")
	assert.Contains(t, out, "No completed tasks found!")

	_, _, err := f.store.MarkCompleted(2)
	require.NoError(t, err)

	f.out.Reset()
	out = f.run("5\n2\n5\n0\n")
	assert.Contains(t, out, "✓ [2] Pay rent (Urgent)")
	assert.Contains(t, out, "Task 'Pay rent' marked as incomplete!")
	assert.Contains(t, out, "No completed tasks found!")

	task, err := f.reload(t).FindByID(2)
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedDate)
}

func TestSession_Edit(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)

	out := f.run("6\n2\n\n-\nPersonal\n0\n")

	assert.Contains(t, out, "Editing task: Pay rent")
	assert.Contains(t, out, "Title [Pay rent]: ")
	assert.Contains(t, out, "Description [due monthly]: ")
	assert.Contains(t, out, "Task 'Pay rent' updated successfully!")

	task, err := f.reload(t).FindByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", task.Title)
	assert.Empty(t, task.Description)
	assert.Equal(t, "Personal", task.Category)
}

func TestSession_EditNotFound(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)

	out := f.run("6\n9\n0\n")
	assert.Contains(t, out, "Task with ID 9 not found!")
	assert.NotContains(t, out, "Editing task")
}

func TestSession_Delete(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)

	out := f.run("7\n1\nn\n7\n1\nyes\n0\n")

	assert.Contains(t, out, "Delete operation cancelled.")
	assert.Contains(t, out, "Task 'Buy milk' deleted successfully!")

	tasks := f.reload(t).Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, 2, tasks[0].ID)
}

func TestSession_DeleteNotFound(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)

	out := f.run("7\n5\ny\n0\n")
	assert.Contains(t, out, "Task with ID 5 not found!")
	assert.Len(t, f.store.Tasks(), 2)
}

func TestSession_SearchStatsAndCategories(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)
	_, _, err := f.store.MarkCompleted(1)
	require.NoError(t, err)

	out := f.run("8\nMONTHLY\n8\nzzz\n9\n11\n0\n")

	assert.Contains(t, out, "Found 1 matching task(s):")
	assert.Contains(t, out, "Description: due monthly")
	assert.Contains(t, out, "No tasks match your search query.")
	assert.Contains(t, out, "Total Tasks: 2")
	assert.Contains(t, out, "Completion Rate: 50.0%")
	assert.Contains(t, out, "📁 Available Categories: General, Health, Learning, Personal, Urgent, Work")
}

func TestSession_ViewsAndFilter(t *testing.T) {
	f := newSessionFixture(t)
	f.seed(t)
	_, _, err := f.store.MarkCompleted(1)
	require.NoError(t, err)

	out := f.run("3\n")
	assert.Contains(t, out, "📁 URGENT")
	assert.NotContains(t, out, "📁 GENERAL")

	f.out.Reset()
	out = f.run("2\n")
	assert.Contains(t, out, "📁 GENERAL")
	assert.Contains(t, out, "Completed: 2025-03-14 09:00:00")

	f.out.Reset()
	out = f.run("10\nurgent\n10\nTravel\n")
	assert.Contains(t, out, "Enter category to filter by: ")
	assert.Contains(t, out, "○ [2] Pay rent (Urgent)")
	assert.Contains(t, out, "No tasks match the filter criteria!")
}

func TestSession_PauseAfterAction(t *testing.T) {
	f := newSessionFixture(t)
	s := &session{
		store:  f.store,
		prompt: newLinePrompter(strings.NewReader("11\n\n0\n"), f.out),
		out:    f.out,
		errOut: f.errOut,
		pause:  true,
	}
	s.run()

	assert.Equal(t, 1, strings.Count(f.out.String(), "Press Enter to continue..."))
	assert.Contains(t, f.out.String(), "Goodbye! 👋")
}

func TestSession_SaveFailureKeepsGoing(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	ts := store.NewFileTaskStore(store.WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())))
	require.NoError(t, ts.Initialize(map[string]string{"dataFile": "tasks.json"}))
	require.NoError(t, ts.Load())

	var out, errOut bytes.Buffer
	s := &session{
		store:  ts,
		prompt: newLinePrompter(strings.NewReader("1\nBuy milk\n\n\n0\n"), &out),
		out:    &out,
		errOut: &errOut,
	}
	s.run()

	assert.Contains(t, out.String(), "Task 'Buy milk' added successfully!")
	assert.Contains(t, errOut.String(), "Error saving tasks")
	assert.NotContains(t, out.String(), "Tasks saved successfully!")
	assert.Contains(t, out.String(), "Goodbye! 👋")
	assert.Len(t, ts.Tasks(), 1)
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := newLinePrompter(strings.NewReader("first\r\nlast"), &out)

	line, err := p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = p.Prompt("> ")
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, "> > > ", out.String())
}

func TestNewPrompter_NonTerminalUsesLineReader(t *testing.T) {
	p := newPrompter(strings.NewReader(""), &bytes.Buffer{}, false)
	assert.IsType(t, &linePrompter{}, p)
}
