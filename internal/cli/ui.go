//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

const (
	// TruncationLimit is the length from which a result is truncated in
	// standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges is the number of characters shown at each end of a
	// truncated result.
	DisplayEdges = 25
	// SpinnerRefreshRate is the animation interval of the spinner.
	SpinnerRefreshRate = 200 * time.Millisecond
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix locks the spinner while changing the suffix, which its
// animation goroutine reads.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// progressSuffix renders an update as the spinner suffix.
func progressSuffix(u orchestration.ProgressUpdate) string {
	return fmt.Sprintf(" %s: %s polls, %s elapsed",
		u.Label, format.FormatNumberString(strconv.FormatUint(u.Polls, 10)), format.FormatExecutionDuration(u.Elapsed))
}

// DisplayProgress animates a spinner while operations run. Each update
// refreshes the spinner suffix with the poll count and elapsed time; when
// the channel closes the spinner is stopped and a final line is printed.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, out io.Writer) {
	defer wg.Done()
	s := newSpinner(spinner.WithWriter(out))
	s.Start()

	var last orchestration.ProgressUpdate
	for u := range updates {
		last = u
		s.UpdateSuffix(progressSuffix(u))
	}
	s.Stop()
	if last.Label != "" {
		fmt.Fprintf(out, "Finished %s in %s (%s polls).\n",
			last.Label, format.FormatExecutionDuration(last.Elapsed),
			format.FormatNumberString(strconv.FormatUint(last.Polls, 10)))
	}
}

// opSymbol describes the operation for result headings.
func opSymbol(op string) string {
	switch op {
	case config.OpMultiply, config.OpCompare:
		return "x * y"
	case config.OpDivide:
		return "x / y"
	case config.OpModulo:
		return "x mod y"
	default:
		return "x"
	}
}

// displayValue prints one labelled value, grouped for readability and
// truncated unless verbose.
func displayValue(label, text string, radix int, verbose bool, out io.Writer) {
	if verbose || len(text) <= TruncationLimit {
		fmt.Fprintf(out, "%s = %s%s%s\n", label, ui.ColorGreen(), format.FormatRadixString(text, radix), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s (truncated) = %s%s%s\n", label, ui.ColorGreen(), format.TruncateMiddle(text, TruncationLimit, DisplayEdges), ui.ColorReset())
	fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display the full value)\n",
		ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// DisplayResult formats and prints the result of an operation. details
// adds timing and size metrics; verbose prints values in full.
func DisplayResult(res orchestration.OperationResult, opts orchestration.PresentationOptions, out io.Writer) {
	bits := res.Value.BitLength()
	fmt.Fprintf(out, "Result binary size: %s%s%s bits.\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(bits)), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s\n", ui.Heading("Detailed result analysis"))
		fmt.Fprintf(out, "Operation time      : %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
		fmt.Fprintf(out, "Strategy            : %s%s%s\n", ui.ColorBlue(), res.Strategy, ui.ColorReset())
		fmt.Fprintf(out, "Interrupt polls     : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.FormatUint(res.Polls, 10)), ui.ColorReset())
		fmt.Fprintf(out, "Machine digits      : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(len(res.Value))), ui.ColorReset())
		fmt.Fprintf(out, "Radix-%d characters : %s%s%s\n", opts.OutputRadix, ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(len(res.Text))), ui.ColorReset())
	}

	fmt.Fprintf(out, "\n%s\n", ui.Heading("Result value"))
	displayValue(opSymbol(res.Op), res.Text, opts.OutputRadix, opts.Verbose, out)
	if res.Op == config.OpDivide {
		displayValue("x mod y", res.RemainderText, opts.OutputRadix, opts.Verbose, out)
	}
}
