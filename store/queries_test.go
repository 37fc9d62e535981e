package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioStore builds: 1 "Buy milk" (General, completed), 2 "Pay rent" (Urgent).
func scenarioStore(t *testing.T) *FileTaskStore {
	t.Helper()
	store := setupTestStore(t, afero.NewMemMapFs(), "json")

	milk, err := store.Add("Buy milk", "", "General")
	require.NoError(t, err)
	require.Equal(t, 1, milk.ID)
	require.False(t, milk.Completed)

	rent, err := store.Add("Pay rent", "due monthly", "Urgent")
	require.NoError(t, err)
	require.Equal(t, 2, rent.ID)

	done, _, err := store.MarkCompleted(1)
	require.NoError(t, err)
	require.True(t, done.Completed)
	require.NotNil(t, done.CompletedDate)
	return store
}

func groupTitles(groups []CategoryGroup) map[string][]string {
	out := make(map[string][]string, len(groups))
	for _, g := range groups {
		for _, task := range g.Tasks {
			out[g.Category] = append(out[g.Category], task.Title)
		}
	}
	return out
}

func TestView_GroupsByCategory(t *testing.T) {
	store := scenarioStore(t)

	groups := store.View(ViewOptions{IncludeCompleted: true})
	require.Len(t, groups, 2)
	assert.Equal(t, "General", groups[0].Category)
	assert.Equal(t, "Urgent", groups[1].Category)
	assert.Equal(t, map[string][]string{
		"General": {"Buy milk"},
		"Urgent":  {"Pay rent"},
	}, groupTitles(groups))
}

func TestView_IncompleteFirstWithinGroup(t *testing.T) {
	store := setupTestStore(t, afero.NewMemMapFs(), "json")
	for _, title := range []string{"first", "second", "third"} {
		_, err := store.Add(title, "", "Work")
		require.NoError(t, err)
	}
	_, _, err := store.MarkCompleted(1)
	require.NoError(t, err)

	groups := store.View(ViewOptions{IncludeCompleted: true})
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"second", "third", "first"}, groupTitles(groups)["Work"])

	// Store order is untouched by viewing.
	assert.Equal(t, "first", store.Tasks()[0].Title)
}

func TestView_Filters(t *testing.T) {
	store := scenarioStore(t)

	pending := store.View(ViewOptions{IncludeCompleted: false})
	assert.Equal(t, map[string][]string{"Urgent": {"Pay rent"}}, groupTitles(pending))

	byCategory := store.View(ViewOptions{Category: "uRGENT", IncludeCompleted: true})
	assert.Equal(t, map[string][]string{"Urgent": {"Pay rent"}}, groupTitles(byCategory))

	partial := store.View(ViewOptions{Category: "Urg", IncludeCompleted: true})
	assert.Empty(t, partial, "category filter is an exact match")
}

func TestSearch(t *testing.T) {
	store := scenarioStore(t)

	tests := []struct {
		query string
		want  []int
	}{
		{"rent", []int{2}},
		{"RENT", []int{2}},
		{"monthly", []int{2}},
		{"general", []int{1}},
		{"  milk  ", []int{1}},
		{"nothing here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var ids []int
			for _, task := range store.Search(tt.query) {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestStatistics(t *testing.T) {
	store := scenarioStore(t)

	stats := store.Statistics()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Incomplete)
	assert.Equal(t, map[string]CategoryStats{
		"General": {Completed: 1, Total: 1},
		"Urgent":  {Completed: 0, Total: 1},
	}, stats.Categories)
	assert.InDelta(t, 50.0, stats.CompletionRate(), 0.001)
}

func TestStatistics_Empty(t *testing.T) {
	store := setupTestStore(t, afero.NewMemMapFs(), "json")

	stats := store.Statistics()
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.Categories)
	assert.Zero(t, stats.CompletionRate())
}

func TestEditScenario(t *testing.T) {
	store := scenarioStore(t)

	cleared, err := store.Edit(2, TaskEdit{Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", cleared.Description)

	unchanged, err := store.Edit(2, TaskEdit{})
	require.NoError(t, err)
	assert.Equal(t, cleared, unchanged)
}
