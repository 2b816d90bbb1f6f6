// Package ui renders tasks and summaries for the CLI. Nothing in here is
// consulted by the service layer; it consumes plain task values and produces
// strings.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/taskdeck/taskdeck/models"
)

// Table renders data in a compact markdown-style table format with
// fixed-width columns.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
}

// ColumnWidths calculates optimal column widths based on content.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))

	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	if t.MaxWidth > 0 {
		for i := range widths {
			if widths[i] > t.MaxWidth {
				widths[i] = t.MaxWidth
			}
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	cellStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var headerCells []string
	for i, h := range t.Headers {
		headerCells = append(headerCells, headerStyle.Render(padRight(h, widths[i])))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	var sepParts []string
	for _, w := range widths {
		sepParts = append(sepParts, dimStyle.Render(strings.Repeat("─", w)))
	}
	sb.WriteString(" " + strings.Join(sepParts, "──") + "\n")

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			// Truncate if needed (guard against zero/small widths)
			if widths[i] >= 2 && len(val) > widths[i] {
				val = val[:widths[i]-1] + "…"
			} else if widths[i] == 1 && len(val) > 1 {
				val = "…"
			}
			cells = append(cells, cellStyle.Render(padRight(val, widths[i])))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// TruncateID shortens an ID for display (first 8 chars).
func TruncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

const dueDateLayout = "2006-01-02"

// RenderTaskTable formats a task list as a table string.
func RenderTaskTable(tasks []models.Task) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks found.") + "\n"
	}

	table := &Table{
		Headers:  []string{"ID", "Title", "Priority", "Status", "Due"},
		MaxWidth: 40,
	}
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Local().Format(dueDateLayout)
		}
		table.Rows = append(table.Rows, []string{
			TruncateID(t.ID),
			t.Title,
			string(t.Priority),
			string(t.Status),
			due,
		})
	}
	return table.Render()
}

// RenderTaskDetail formats a single task for display after a mutation.
func RenderTaskDetail(t models.Task) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(t.Title) + "\n")
	sb.WriteString(StyleSubtle.Render("ID:       ") + t.ID + "\n")
	sb.WriteString(StyleSubtle.Render("Status:   ") + RenderStatus(string(t.Status)) + "\n")
	sb.WriteString(StyleSubtle.Render("Priority: ") + RenderPriority(string(t.Priority)) + "\n")
	if t.Description != "" {
		sb.WriteString(StyleSubtle.Render("Notes:    ") + t.Description + "\n")
	}
	if t.DueDate != nil {
		sb.WriteString(StyleSubtle.Render("Due:      ") + t.DueDate.Local().Format(dueDateLayout) + "\n")
	}
	if t.CompletedAt != nil {
		sb.WriteString(StyleSubtle.Render("Done at:  ") + t.CompletedAt.Local().Format("2006-01-02 15:04") + "\n")
	}
	return sb.String()
}

// RenderStatistics formats the collection summary with per-group counts.
func RenderStatistics(total, completed, overdue int, rate float64, byStatus map[string]int, byPriority map[string]int, statusOrder, priorityOrder []string) string {
	var sb strings.Builder

	sb.WriteString(StyleTitle.Render("Tasks") + "\n")
	sb.WriteString(fmt.Sprintf("  Total:      %d\n", total))
	sb.WriteString(fmt.Sprintf("  Completed:  %d (%.0f%%)\n", completed, rate*100))
	if overdue > 0 {
		sb.WriteString("  Overdue:    " + StyleError.Render(fmt.Sprintf("%d", overdue)) + "\n")
	} else {
		sb.WriteString("  Overdue:    0\n")
	}

	sb.WriteString("\n" + StyleTitle.Render("By status") + "\n")
	for _, status := range statusOrder {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", status, byStatus[status]))
	}

	sb.WriteString("\n" + StyleTitle.Render("By priority") + "\n")
	for _, priority := range priorityOrder {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", priority, byPriority[priority]))
	}

	return sb.String()
}
