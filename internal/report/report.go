// Package report renders CLI summaries.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	cellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Row is the outcome of converting one part.
type Row struct {
	ID      string
	Name    string
	Pads    int
	Pins    int
	HasSym  bool
	Branch  string // model placement rule, "" without a model
	Dropped int
	Err     error
}

// Failed counts rows with an error.
func Failed(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Summary renders one line per part and a totals line.
func Summary(rows []Row) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Converted parts (%d)", len(rows))))
	b.WriteByte('\n')

	idWidth, nameWidth := 2, 4
	for _, r := range rows {
		idWidth = max(idWidth, len(r.ID))
		nameWidth = max(nameWidth, len(r.Name))
	}

	for _, r := range rows {
		id := cellStyle.Width(idWidth + 2).Render(r.ID)
		if r.Err != nil {
			b.WriteString(failStyle.Render("✗ "))
			b.WriteString(id)
			b.WriteString(failStyle.Render(r.Err.Error()))
			b.WriteByte('\n')
			continue
		}

		b.WriteString(okStyle.Render("✓ "))
		b.WriteString(id)
		b.WriteString(cellStyle.Width(nameWidth + 2).Render(r.Name))

		details := []string{fmt.Sprintf("%d pads", r.Pads)}
		if r.HasSym {
			details = append(details, fmt.Sprintf("%d pins", r.Pins))
		} else {
			details = append(details, "no symbol")
		}
		if r.Branch != "" {
			details = append(details, "model: "+r.Branch)
		}
		b.WriteString(strings.Join(details, ", "))
		if r.Dropped > 0 {
			b.WriteString(warnStyle.Render(fmt.Sprintf("  (%d records skipped)", r.Dropped)))
		}
		b.WriteByte('\n')
	}

	failed := Failed(rows)
	totals := fmt.Sprintf("%d ok, %d failed", len(rows)-failed, failed)
	if failed > 0 {
		b.WriteString(failStyle.Render(totals))
	} else {
		b.WriteString(dimStyle.Render(totals))
	}
	b.WriteByte('\n')
	return b.String()
}
