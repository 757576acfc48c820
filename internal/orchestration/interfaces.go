package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
)

// Operand is a signed integer parsed from the command line. The kernel only
// sees the magnitude; the sign is applied when results are formatted.
type Operand struct {
	Magnitude bigint.Digits
	Negative  bool
}

// Request describes one kernel operation.
type Request struct {
	// Op is one of the config.Op* names.
	Op string
	// X and Y are the operands. Y is unused by "convert".
	X, Y Operand
	// OutputRadix is the radix results are formatted in (2..36).
	OutputRadix int
	// Strategy forces a multiplication algorithm. StrategyAuto dispatches
	// on operand length.
	Strategy bigint.Strategy
}

// OperationResult is the outcome of a single kernel operation. It is the
// shared domain type between orchestration and presentation layers.
type OperationResult struct {
	// Op is the operation that ran.
	Op string
	// Strategy names the algorithm, or the oracle for reference results.
	Strategy string
	// Value is the product, quotient, remainder or converted operand.
	Value    bigint.Digits
	Negative bool
	// Text is Value formatted in the output radix, with its sign.
	Text string
	// Remainder is only set by "div".
	Remainder         bigint.Digits
	RemainderNegative bool
	RemainderText     string
	// Duration is the wall time of the kernel call, formatting included.
	Duration time.Duration
	// Polls is how often the kernel asked whether to stop.
	Polls uint64
	// Err is nil on success.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	OutputRadix int
	Verbose     bool
	Details     bool
	Quiet       bool
}

// ProgressReporter displays the activity of running operations.
//
// Implementations handle the visual representation (spinners, plain
// lines) while the orchestration layer focuses on running the kernel.
type ProgressReporter interface {
	// DisplayProgress consumes updates until the channel is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan ProgressUpdate, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, out io.Writer) {
	f(wg, updates, out)
}

// NullProgressReporter drains updates without displaying anything. It is
// used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ io.Writer) {
	defer wg.Done()
	DrainChannel(updates)
}

// ResultPresenter defines how results reach the user, decoupling the
// orchestration from output formats.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per strategy.
	PresentComparisonTable(results []OperationResult, out io.Writer)

	// PresentResult displays the result of a successful operation.
	PresentResult(result OperationResult, opts PresentationOptions, out io.Writer)

	// HandleError reports err and returns the process exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
