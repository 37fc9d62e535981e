package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"Category", "Completed", "Total"},
		Rows: [][]string{
			{"Work", "1", "3"},
			{"Learning and reading", "12", "140"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, []int{20, 9, 5}, widths)
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Title"},
		Rows:     [][]string{{"7", "Renew the passport before the summer holidays start"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"Category", "Total"},
		Rows: [][]string{
			{"Health", "2"},
			{"Urgent", "1"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "Category")
	assert.Contains(t, output, "Health")
	assert.Contains(t, output, "Urgent")
	assert.Contains(t, output, "─")
}

func TestTable_Render_RightAlign(t *testing.T) {
	plainOutput(t)
	table := &Table{
		Headers:    []string{"Category", "Total"},
		Rows:       [][]string{{"Work", "3"}, {"Learning", "12"}},
		RightAlign: []int{1},
	}

	lines := strings.Split(table.Render(), "\n")

	assert.Equal(t, " Category  Total", lines[0])
	assert.Equal(t, " Work          3", lines[2])
	assert.Equal(t, " Learning     12", lines[3])
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Title"},
		Rows:     [][]string{{"Call the plumber about the kitchen sink"}},
		MaxWidth: 10,
	}

	assert.Contains(t, table.Render(), "…")
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"Category", "Completed", "Total"},
		Rows:    [][]string{{"Work"}},
	}

	output := table.Render()

	assert.Contains(t, output, "Work")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 3)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"groceries", 20, "groceries"},
		{"groceries", 5, "groc…"},
		{"café au lait", 4, "caf…"},
		{"ab", 1, "…"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, truncate(tc.input, tc.width))
	}
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "  7", padLeft("7", 3))
	assert.Equal(t, "140", padLeft("140", 2))
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}
