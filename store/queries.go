package store

import (
	"sort"
	"strings"

	"github.com/josephgoksu/todowing/models"
	"golang.org/x/text/cases"
)

var _ TaskStore = (*FileTaskStore)(nil)

// ViewOptions filters View. An empty Category matches every task.
type ViewOptions struct {
	Category         string
	IncludeCompleted bool
}

// CategoryGroup is one section of View output.
type CategoryGroup struct {
	Category string
	Tasks    []models.Task
}

// CategoryStats counts tasks of a single category.
type CategoryStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Stats aggregates task counts.
type Stats struct {
	Total      int                      `json:"total"`
	Completed  int                      `json:"completed"`
	Incomplete int                      `json:"incomplete"`
	Categories map[string]CategoryStats `json:"categories"`
}

// CompletionRate returns the completed share as a percentage, 0 for no tasks.
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// sameFold reports whether a and b are equal under Unicode case folding.
func sameFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// View groups the matching tasks by category. Groups appear in the order their
// category is first seen; within a group incomplete tasks come first, then by ID.
func (s *FileTaskStore) View(opts ViewOptions) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)

	for _, t := range s.tasks {
		if opts.Category != "" && !sameFold(t.Category, opts.Category) {
			continue
		}
		if !opts.IncludeCompleted && t.Completed {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, CategoryGroup{Category: t.Category})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}

	for _, g := range groups {
		sort.SliceStable(g.Tasks, func(a, b int) bool {
			ta, tb := g.Tasks[a], g.Tasks[b]
			if ta.Completed != tb.Completed {
				return !ta.Completed
			}
			return ta.ID < tb.ID
		})
	}
	return groups
}

// Search returns tasks whose title, description or category contains query,
// ignoring case, in creation order.
func (s *FileTaskStore) Search(query string) []models.Task {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	var matches []models.Task
	for _, t := range s.tasks {
		if strings.Contains(fold.String(t.Title), q) ||
			strings.Contains(fold.String(t.Description), q) ||
			strings.Contains(fold.String(t.Category), q) {
			matches = append(matches, t)
		}
	}
	return matches
}

// Statistics counts tasks in a single pass.
func (s *FileTaskStore) Statistics() Stats {
	stats := Stats{Categories: make(map[string]CategoryStats)}
	for _, t := range s.tasks {
		stats.Total++
		cs := stats.Categories[t.Category]
		cs.Total++
		if t.Completed {
			stats.Completed++
			cs.Completed++
		}
		stats.Categories[t.Category] = cs
	}
	stats.Incomplete = stats.Total - stats.Completed
	return stats
}
