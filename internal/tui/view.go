package tui

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// Table layout.
const (
	colWidthName  = 12
	colWidthBar   = 30
	colWidthPolls = 14
	// minPreviewWidth is the value preview width on narrow or unsized
	// terminals.
	minPreviewWidth = 40
)

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	status := m.spinner.View() + " running"
	switch {
	case m.done:
		status = dimStyle.Render("finished")
	case m.paused:
		status = dimStyle.Render("display frozen")
	}
	fmt.Fprintf(&b, "%s%s%s  %s\n\n",
		titleStyle.Render("bigcalc "+m.label),
		dimStyle.Render(" | "),
		accentStyle.Render("Elapsed: "+format.FormatExecutionDuration(m.elapsed)),
		status)

	header := fmt.Sprintf("  %-*s %-*s %*s  %s", colWidthName, "Strategy", colWidthBar, "Polls (relative)", colWidthPolls, "Polls", "Status")
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")

	var maxPolls uint64
	for _, r := range m.rows {
		maxPolls = max(maxPolls, r.polls)
	}
	for _, r := range m.rows {
		fmt.Fprintf(&b, "  %-*s %s %*s  %s\n",
			colWidthName, r.strategy,
			renderBar(share(r.polls, maxPolls), colWidthBar),
			colWidthPolls, format.FormatNumberString(strconv.FormatUint(r.polls, 10)),
			m.statusCell(r))
	}

	if m.done {
		b.WriteString(verdictStyle.Render(m.verdict()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// statusCell shows RUN while the strategy runs, then its rank and duration
// or ERR once the results are in.
func (m Model) statusCell(r row) string {
	if !r.done {
		return runStyle.Render("RUN")
	}
	for rank, res := range m.results {
		if res.Strategy != r.strategy {
			continue
		}
		if res.Err != nil {
			return errStyle.Render("ERR")
		}
		return okStyle.Render(fmt.Sprintf("#%d %s", rank+1, format.FormatExecutionDuration(res.Duration)))
	}
	return okStyle.Render("done")
}

// verdict summarises the comparison from its exit code.
func (m Model) verdict() string {
	switch m.exitCode {
	case apperrors.ExitSuccess:
		best := m.results[0]
		return okStyle.Render("All valid results are consistent.") + "\n" +
			fmt.Sprintf("Fastest: %s in %s\nx * y = %s", best.Strategy,
				format.FormatExecutionDuration(best.Duration), m.preview(best))
	case apperrors.ExitErrorMismatch:
		return errStyle.Render("CRITICAL ERROR! The strategies disagree.")
	default:
		return errStyle.Render(fmt.Sprintf("Failure: no strategy could complete the operation (exit code %d).", m.exitCode))
	}
}

// preview shortens the product text to the terminal width.
func (m Model) preview(res orchestration.OperationResult) string {
	limit := max(m.width-8, minPreviewWidth)
	return format.TruncateMiddle(res.Text, limit, limit/3)
}

// share returns polls relative to the largest poll count, in [0, 1].
func share(polls, maxPolls uint64) float64 {
	if maxPolls == 0 {
		return 0
	}
	return float64(polls) / float64(maxPolls)
}

// renderBar renders a bar of exactly width cells.
func renderBar(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}
