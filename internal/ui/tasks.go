package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/josephgoksu/todowing/models"
	"github.com/josephgoksu/todowing/store"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskLine formats the one-line summary of a task, dimming completed ones.
func TaskLine(t models.Task) string {
	if t.Completed {
		return StyleDone.Render(t.String())
	}
	return StyleText.Render(t.String())
}

// RenderTaskDetails writes the indented detail lines under a task.
func RenderTaskDetails(w io.Writer, t models.Task) {
	if t.Description != "" {
		fmt.Fprintf(w, "     Description: %s\n", t.Description)
	}
	fmt.Fprintf(w, "     Created: %s\n", t.CreatedDate)
	if t.Completed && t.CompletedDate != nil {
		fmt.Fprintf(w, "     Completed: %s\n", *t.CompletedDate)
	}
}

// RenderGroups writes the grouped task view. hasTasks distinguishes an empty
// store from a filter that matched nothing.
func RenderGroups(w io.Writer, groups []store.CategoryGroup, hasTasks bool) {
	if !hasTasks {
		fmt.Fprintln(w, "No tasks found!")
		return
	}
	if len(groups) == 0 {
		fmt.Fprintln(w, "No tasks match the filter criteria!")
		return
	}

	upper := cases.Upper(language.Und)
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleSubtle.Render(rule))
	fmt.Fprintln(w, StyleHeader.Render("YOUR TASKS"))
	fmt.Fprintln(w, StyleSubtle.Render(rule))

	for _, g := range groups {
		fmt.Fprintf(w, "\n%s\n", StyleCategory.Render("📁 "+upper.String(g.Category)))
		fmt.Fprintln(w, StyleSubtle.Render(strings.Repeat("-", 40)))
		for _, t := range g.Tasks {
			fmt.Fprintf(w, "  %s\n", TaskLine(t))
			RenderTaskDetails(w, t)
			fmt.Fprintln(w)
		}
	}
}

// RenderTaskList writes a plain list of task lines, as shown before the
// mark-incomplete prompt.
func RenderTaskList(w io.Writer, tasks []models.Task) {
	for _, t := range tasks {
		fmt.Fprintf(w, "  %s\n", TaskLine(t))
	}
}

// RenderSearchResults writes the matches of a search query.
func RenderSearchResults(w io.Writer, matches []models.Task) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No tasks match your search query.")
		return
	}
	fmt.Fprintf(w, "\nFound %d matching task(s):\n", len(matches))
	fmt.Fprintln(w, StyleSubtle.Render(strings.Repeat("-", 40)))
	for _, t := range matches {
		fmt.Fprintf(w, "  %s\n", TaskLine(t))
		if t.Description != "" {
			fmt.Fprintf(w, "     Description: %s\n", t.Description)
		}
		fmt.Fprintln(w)
	}
}

// RenderStats writes the statistics summary followed by a per-category table.
func RenderStats(w io.Writer, stats store.Stats) {
	fmt.Fprintf(w, "\n%s\n", StyleHeader.Render("📊 TASK STATISTICS"))
	fmt.Fprintln(w, StyleSubtle.Render(strings.Repeat("=", 30)))
	fmt.Fprintf(w, "Total Tasks: %d\n", stats.Total)
	fmt.Fprintf(w, "Completed: %s\n", StyleSuccess.Render(strconv.Itoa(stats.Completed)))
	fmt.Fprintf(w, "Incomplete: %s\n", StyleWarning.Render(strconv.Itoa(stats.Incomplete)))
	if stats.Total > 0 {
		fmt.Fprintf(w, "Completion Rate: %.1f%%\n", stats.CompletionRate())
	}

	if len(stats.Categories) == 0 {
		return
	}

	names := make([]string, 0, len(stats.Categories))
	for name := range stats.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	table := &Table{
		Headers:    []string{"Category", "Completed", "Total"},
		MaxWidth:   30,
		RightAlign: []int{1, 2},
	}
	for _, name := range names {
		cs := stats.Categories[name]
		table.Rows = append(table.Rows, []string{name, strconv.Itoa(cs.Completed), strconv.Itoa(cs.Total)})
	}
	fmt.Fprintln(w, "\nBy Category:")
	fmt.Fprint(w, table.Render())
}

// RenderCategories writes the sorted list of known categories.
func RenderCategories(w io.Writer, categories []string) {
	fmt.Fprintf(w, "\n%s Available Categories: %s\n", Icon("📁", StylePrimary), strings.Join(categories, ", "))
}
