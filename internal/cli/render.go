package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"sla.service/internal/core/model"
	"sla.service/internal/core/sla"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleTotal  = lipgloss.NewStyle().Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderReport draws one row per (worker, date) keyed by its row key, followed
// by the report total in hours.
func RenderReport(report *model.Report) string {
	var b strings.Builder
	b.WriteString(styleMuted.Render(fmt.Sprintf("Workspace %s, generated %s",
		report.WorkspaceID, report.GeneratedAt.Format("2006-01-02 15:04:05"))))
	b.WriteString("\n")

	if len(report.Rows) == 0 {
		b.WriteString("No recorded durations.\n")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("KEY", "WORKER", "DATE", "MINUTES", "HOURS").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return styleHeader.Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		for _, row := range report.Rows {
			t.Row(
				sla.RowKey(row),
				row.WorkerID,
				row.WorkDate,
				strconv.FormatInt(row.TotalMinutes, 10),
				strconv.FormatFloat(row.TotalHours, 'f', 2, 64),
			)
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString(styleTotal.Render(fmt.Sprintf("Total: %.2f hours", report.TotalHours)))
	b.WriteString("\n")
	return b.String()
}
