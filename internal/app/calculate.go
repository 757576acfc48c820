package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// runCalculate parses the operands, runs the configured operation and
// presents the outcome.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	presenter := cli.CLIResultPresenter{}
	kernel := a.Config.ToKernelConfig()
	runner := orchestration.NewRunner(kernel,
		orchestration.WithLogger(a.logger),
		orchestration.WithRecorder(a.recorder),
	)

	x, y, err := a.parseOperands(ctx, runner)
	if err != nil {
		return presenter.HandleError(err, 0, out)
	}

	strategies := orchestration.StrategiesToRun(a.Config)
	a.log.Debug("operation configured",
		logging.String("op", a.Config.Op),
		logging.String("strategy", a.Config.Strategy),
		logging.Int("x_digits", len(x.Magnitude)),
		logging.Uint64("work_threshold", kernel.WorkEstimateThreshold),
		logging.Bool("check", a.Config.Reference))
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, kernel, out)
		cli.PrintExecutionMode(strategies, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	req := orchestration.BuildRequest(a.Config, x, y)

	if a.Config.Op == config.OpCompare {
		if a.Config.TUI {
			return a.runDashboard(ctx, runner, req, strategies, out)
		}
		results := runner.Compare(ctx, req, strategies, reporter, progressOut)
		return a.analyzeComparison(results, out)
	}

	res := runner.Run(ctx, req, reporter, progressOut)
	if res.Err != nil {
		return presenter.HandleError(res.Err, res.Duration, out)
	}
	if a.Config.Reference {
		if err := runner.Verify(req, res); err != nil {
			return presenter.HandleError(err, res.Duration, out)
		}
	}

	after := collector.Snapshot()
	a.recorder.ObserveMemory(after)
	if err := cli.DisplayResultWithConfig(out, res, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(after.Since(before), out)
	}
	return apperrors.ExitSuccess
}

// parseOperands resolves and parses the operand literals. y is only parsed
// when the operation takes two operands.
func (a *Application) parseOperands(ctx context.Context, runner *orchestration.Runner) (x, y orchestration.Operand, err error) {
	parse := func(field, value string) (orchestration.Operand, error) {
		literal, err := config.ResolveOperand(value)
		if err != nil {
			return orchestration.Operand{}, apperrors.ValidationError{Field: field, Message: err.Error()}
		}
		return runner.ParseOperand(ctx, field, literal, a.Config.InputRadix, a.Config.MaxInputDigits)
	}
	if x, err = parse("x", a.Config.X); err != nil {
		return x, y, err
	}
	if a.Config.NeedsY() {
		y, err = parse("y", a.Config.Y)
	}
	return x, y, err
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile:  a.Config.OutputFile,
		Quiet:       a.Config.Quiet,
		Verbose:     a.Config.Verbose,
		Details:     a.Config.Details,
		OutputRadix: a.Config.OutputRadix,
	}
}

// runDashboard runs the comparison behind the interactive dashboard. Once
// the user leaves it, the usual summary is printed so that it outlives the
// alternate screen.
func (a *Application) runDashboard(ctx context.Context, runner *orchestration.Runner, req orchestration.Request, strategies []bigint.Strategy, out io.Writer) int {
	opts := orchestration.PresentationOptions{
		OutputRadix: a.Config.OutputRadix,
		Verbose:     a.Config.Verbose,
		Details:     a.Config.Details,
	}
	code, results := a.dashboard(ctx, runner, req, strategies, opts, out)
	a.log.Debug("dashboard closed", logging.Int("exit_code", code), logging.Bool("finished", results != nil))
	if results == nil {
		return code
	}
	return a.analyzeComparison(results, out)
}

// analyzeComparison checks the strategy results against each other. In
// quiet mode only the agreed value is printed.
func (a *Application) analyzeComparison(results []orchestration.OperationResult, out io.Writer) int {
	opts := orchestration.PresentationOptions{
		OutputRadix: a.Config.OutputRadix,
		Verbose:     a.Config.Verbose,
		Details:     a.Config.Details,
		Quiet:       a.Config.Quiet,
	}
	analysisOut := out
	if a.Config.Quiet {
		analysisOut = io.Discard
	}
	code := orchestration.AnalyzeComparisonResults(results, opts, cli.CLIResultPresenter{}, analysisOut)
	if code != apperrors.ExitSuccess {
		if a.Config.Quiet {
			fmt.Fprintf(a.ErrWriter, "compare failed with exit code %d\n", code)
		}
		return code
	}

	best := results[0]
	if a.Config.Quiet {
		cli.DisplayQuietResult(out, best)
	}
	if err := cli.WriteResultToFile(best, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return code
}
