package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/platform"
	"github.com/agbru/bigcalc/internal/reference"
)

// ProgressBufferSize is the capacity of the progress channel.
const ProgressBufferSize = 16

// Runner executes kernel operations. Every operation gets its own
// Processor bound to the caller's context, so a Runner may be used from
// several goroutines at once.
type Runner struct {
	kernel   bigint.Config
	logger   zerolog.Logger
	recorder *metrics.Recorder
	oracle   reference.Oracle
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger handed to each Processor.
func WithLogger(logger zerolog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithRecorder records every operation in rec.
func WithRecorder(rec *metrics.Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// WithReference sets the oracle used by Verify and Compare.
func WithReference(oracle reference.Oracle) RunnerOption {
	return func(r *Runner) { r.oracle = oracle }
}

// NewRunner returns a Runner using the given thresholds. The oracle
// defaults to reference.New().
func NewRunner(kernel bigint.Config, opts ...RunnerOption) *Runner {
	r := &Runner{kernel: kernel, logger: zerolog.Nop(), oracle: reference.New()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Kernel returns the thresholds the Runner builds Processors with.
func (r *Runner) Kernel() bigint.Config { return r.kernel }

// ─────────────────────────────────────────────────────────────────────────────
// Single operation
// ─────────────────────────────────────────────────────────────────────────────

// Execute runs req to completion or until ctx is done. Interruption is
// reported as an apperrors.InterruptedError and contract violations as an
// apperrors.CalculationError wrapping an apperrors.ContractError.
func (r *Runner) Execute(ctx context.Context, req Request) OperationResult {
	return r.execute(ctx, req, nil, 0)
}

func (r *Runner) execute(ctx context.Context, req Request, tracker *pollTracker, slot int) (res OperationResult) {
	tracer := otel.Tracer("bigcalc")
	ctx, span := tracer.Start(ctx, req.Op)
	defer span.End()
	span.SetAttributes(
		attribute.String("strategy", req.Strategy.String()),
		attribute.Int("x.digits", len(req.X.Magnitude)),
		attribute.Int("y.digits", len(req.Y.Magnitude)),
	)

	plat := platform.NewContextPlatform(ctx)
	tracker.start(slot, plat)
	defer tracker.finish(slot)

	res = OperationResult{Op: req.Op, Strategy: req.Strategy.String()}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		res.Polls = plat.Polled()
		status := outcome(res.Err)
		if r.recorder != nil {
			r.recorder.ObserveOperation(req.Op, res.Strategy, status, res.Duration, res.Polls)
			r.recorder.ObserveOperands(req.Op, len(req.X.Magnitude), len(req.Y.Magnitude))
		}
		span.SetAttributes(attribute.String("status", status), attribute.Int64("polls", int64(res.Polls)))
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
		r.logger.Debug().
			Str("op", req.Op).
			Str("strategy", res.Strategy).
			Dur("duration", res.Duration).
			Uint64("polls", res.Polls).
			Str("status", status).
			Msg("operation completed")
	}()

	if err := ctx.Err(); err != nil {
		res.Err = apperrors.InterruptedError{Operation: req.Op, Cause: context.Cause(ctx)}
		return res
	}

	proc := bigint.New(plat, bigint.WithConfig(r.kernel), bigint.WithLogger(r.logger))
	if err := r.run(proc, req, &res); err != nil {
		res.Err = err
		return res
	}
	if proc.GetAndClearStatus() == bigint.StatusInterrupted {
		res = OperationResult{Op: res.Op, Strategy: res.Strategy}
		res.Err = apperrors.InterruptedError{Operation: req.Op, Polls: plat.Polled(), Cause: plat.Cause()}
	}
	return res
}

// run dispatches req to the kernel. Contract violations are recovered
// into errors; any other panic is a bug and propagates.
func (r *Runner) run(proc *bigint.Processor, req Request, res *OperationResult) (err error) {
	defer func() {
		if v := recover(); v != nil {
			violation, ok := v.(bigint.ContractViolation)
			if !ok {
				panic(v)
			}
			err = apperrors.CalculationError{Cause: apperrors.ContractError{Operation: violation.Op, Message: violation.Message}}
		}
	}()

	x, y := req.X.Magnitude.Normalize(), req.Y.Magnitude.Normalize()
	switch req.Op {
	case config.OpMultiply, config.OpCompare:
		z := make(bigint.RWDigits, bigint.MultiplyResultLength(x, y))
		proc.MultiplyWith(req.Strategy, z, x, y)
		res.Value = bigint.Digits(z).Normalize()
		res.Negative = req.X.Negative != req.Y.Negative
	case config.OpDivide:
		if len(y) == 0 {
			return apperrors.ValidationError{Field: "y", Message: "division by zero"}
		}
		q := make(bigint.RWDigits, bigint.DivideResultLength(x, y))
		rem := make(bigint.RWDigits, bigint.ModuloResultLength(y))
		proc.Divide(q, rem, x, y)
		res.Value = bigint.Digits(q).Normalize()
		res.Negative = req.X.Negative != req.Y.Negative
		res.Remainder = bigint.Digits(rem).Normalize()
		res.RemainderNegative = req.X.Negative
	case config.OpModulo:
		if len(y) == 0 {
			return apperrors.ValidationError{Field: "y", Message: "division by zero"}
		}
		rem := make(bigint.RWDigits, bigint.ModuloResultLength(y))
		proc.Modulo(rem, x, y)
		res.Value = bigint.Digits(rem).Normalize()
		res.Negative = req.X.Negative
	case config.OpConvert:
		res.Value = x
		res.Negative = req.X.Negative
	default:
		return apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unknown operation %q", req.Op)}
	}
	res.Negative = res.Negative && !res.Value.IsZero()
	res.RemainderNegative = res.RemainderNegative && !res.Remainder.IsZero()
	res.Text = formatDigits(proc, res.Value, req.OutputRadix, res.Negative)
	if req.Op == config.OpDivide {
		res.RemainderText = formatDigits(proc, res.Remainder, req.OutputRadix, res.RemainderNegative)
	}
	return nil
}

// formatDigits writes v in radix through the kernel.
func formatDigits(proc *bigint.Processor, v bigint.Digits, radix int, negative bool) string {
	out := make([]byte, bigint.ToStringResultLength(v, radix, negative))
	n := proc.ToString(out, v, radix, negative)
	return string(out[:n])
}

// outcome maps an operation error to a metrics status label.
func outcome(err error) string {
	var interrupted apperrors.InterruptedError
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.As(err, &interrupted):
		return metrics.StatusInterrupted
	default:
		return metrics.StatusError
	}
}

// Run executes req while reporter displays its activity.
func (r *Runner) Run(ctx context.Context, req Request, reporter ProgressReporter, out io.Writer) OperationResult {
	results := r.runTracked(ctx, req.Op, []Request{req}, reporter, out)
	return results[0]
}

// ─────────────────────────────────────────────────────────────────────────────
// Strategy comparison
// ─────────────────────────────────────────────────────────────────────────────

// Compare multiplies the operands of req with every strategy concurrently.
// When the Runner has an oracle its product is appended as a last result,
// so that AnalyzeComparisonResults checks every strategy against it.
func (r *Runner) Compare(ctx context.Context, req Request, strategies []bigint.Strategy, reporter ProgressReporter, out io.Writer) []OperationResult {
	reqs := make([]Request, len(strategies))
	for i, s := range strategies {
		reqs[i] = req
		reqs[i].Op = config.OpMultiply
		reqs[i].Strategy = s
	}
	label := fmt.Sprintf("%s (%d strategies)", config.OpCompare, len(strategies))
	results := r.runTracked(ctx, label, reqs, reporter, out)
	if r.oracle != nil {
		results = append(results, r.referenceProduct(req))
	}
	return results
}

// runTracked executes reqs concurrently, feeding reporter with samples of
// their poll counts.
func (r *Runner) runTracked(ctx context.Context, label string, reqs []Request, reporter ProgressReporter, out io.Writer) []OperationResult {
	tracker := newPollTracker(reqs)
	updates := make(chan ProgressUpdate, ProgressBufferSize)
	done := make(chan struct{})

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, out)
	go tracker.sample(label, updates, done)

	g, gctx := errgroup.WithContext(ctx)
	results := make([]OperationResult, len(reqs))
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = r.execute(gctx, req, tracker, i)
			return nil
		})
	}
	_ = g.Wait()
	close(done)
	displayWg.Wait()
	return results
}

// referenceProduct computes the product of req's operands with the oracle.
func (r *Runner) referenceProduct(req Request) OperationResult {
	start := time.Now()
	v := r.oracle.Multiply(req.X.Magnitude, req.Y.Magnitude)
	negative := req.X.Negative != req.Y.Negative && !v.IsZero()
	text := r.oracle.Format(v, req.OutputRadix)
	if negative {
		text = "-" + text
	}
	return OperationResult{
		Op:       config.OpMultiply,
		Strategy: r.oracle.Name(),
		Value:    v,
		Negative: negative,
		Text:     text,
		Duration: time.Since(start),
	}
}

// Verify recomputes res with the oracle and returns an
// apperrors.MismatchError when they disagree.
func (r *Runner) Verify(req Request, res OperationResult) error {
	if r.oracle == nil || res.Err != nil {
		return nil
	}
	x, y := req.X.Magnitude, req.Y.Magnitude
	ok := true
	switch req.Op {
	case config.OpMultiply, config.OpCompare:
		ok = reference.Equal(res.Value, r.oracle.Multiply(x, y))
	case config.OpDivide:
		q, rem := r.oracle.DivMod(x, y)
		ok = reference.Equal(res.Value, q) && reference.Equal(res.Remainder, rem)
	case config.OpModulo:
		_, rem := r.oracle.DivMod(x, y)
		ok = reference.Equal(res.Value, rem)
	}
	want := r.oracle.Format(res.Value, req.OutputRadix)
	if res.Negative {
		want = "-" + want
	}
	if !ok || res.Text != want {
		return apperrors.MismatchError{Operation: req.Op, Strategies: []string{res.Strategy}}
	}
	return nil
}

// AnalyzeComparisonResults sorts results by duration, presents the
// comparison table and checks that every successful result agrees with the
// others. It returns the process exit code.
func AnalyzeComparisonResults(results []OperationResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *OperationResult
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the operation.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	var mismatched []string
	for _, res := range results {
		if res.Err == nil && (!reference.Equal(res.Value, firstValid.Value) || res.Negative != firstValid.Negative) {
			mismatched = append(mismatched, res.Strategy)
		}
	}
	if len(mismatched) > 0 {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree with %s.\n", firstValid.Strategy)
		return presenter.HandleError(apperrors.MismatchError{Operation: config.OpCompare, Strategies: mismatched}, 0, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
