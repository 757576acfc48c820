package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner for the running operations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, out io.Writer) {
	DisplayProgress(wg, updates, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for
// colorized terminal output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays one row per strategy with its duration,
// poll count and status. Padding is computed by hand because the cells
// carry ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.OperationResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Heading("Comparison Summary"))

	nameWidth, durationWidth, pollsWidth := len("Strategy"), len("Duration"), len("Polls")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Strategy))
		durationWidth = max(durationWidth, len(format.FormatExecutionDuration(res.Duration)))
		pollsWidth = max(pollsWidth, len(strconv.FormatUint(res.Polls, 10)))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sPolls%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameWidth-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durationWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", pollsWidth-len("Polls")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		polls := strconv.FormatUint(res.Polls, 10)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Strategy, ui.ColorReset(), padRight("", nameWidth-len(res.Strategy)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", durationWidth-len(duration)),
			polls, padRight("", pollsWidth-len(polls)),
			status)
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the result with DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.OperationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// HandleError reports err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows the memory activity of an operation.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
}
