package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/calibration"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// ProfileUsed reports whether thresholds came from a calibration profile.
	ProfileUsed bool

	log       logging.Logger
	logger    zerolog.Logger
	recorder  *metrics.Recorder
	dashboard dashboardFunc
}

// dashboardFunc runs the interactive comparison; tests replace it.
type dashboardFunc func(ctx context.Context, runner *orchestration.Runner, req orchestration.Request, strategies []bigint.Strategy, opts orchestration.PresentationOptions, out io.Writer) (int, []orchestration.OperationResult)

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRecorder sets the metrics recorder, mainly so tests can inspect it.
func WithRecorder(r *metrics.Recorder) AppOption {
	return func(a *Application) { a.recorder = r }
}

// New creates an Application by parsing command-line arguments and
// resolving the thresholds: flags and environment first, then a
// calibration profile, then estimates for this CPU, then kernel defaults.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, dashboard: tui.Run}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	if !cfg.Calibrate {
		cfg, app.ProfileUsed = calibration.LoadCachedThresholds(cfg)
	}
	cfg = config.ApplyAdaptiveThresholds(cfg, calibration.DetectCPUFeatures().FastMultiply())
	if err := cfg.ToKernelConfig().Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return nil, apperrors.NewConfigError("thresholds conflict with the calibrated or estimated values: %v", err)
	}

	app.Config = cfg
	if app.recorder == nil {
		app.recorder = metrics.NewRecorder()
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	logging.SetGlobalLevel(a.Config.Verbose, a.Config.Quiet)
	ui.InitTheme(a.Config.NoColor)
	adapter := logging.NewLogger(a.ErrWriter, "bigcalc")
	a.log, a.logger = adapter, adapter.Zerolog()

	if a.Config.MetricsAddr != "" {
		stop, err := a.startMetricsServer(ctx)
		if err != nil {
			return apperrors.HandleCalculationError(
				apperrors.NewConfigError("cannot serve metrics on %s: %v", a.Config.MetricsAddr, err),
				0, out, cli.CLIColorProvider{})
		}
		defer stop()
	}

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}
	if a.ProfileUsed {
		a.log.Debug("using calibrated thresholds",
			logging.Int("karatsuba", a.Config.KaratsubaThreshold),
			logging.Int("toom", a.Config.ToomThreshold))
	}
	return a.runCalculate(ctx, out)
}

// runCalibration measures the thresholds and saves the profile.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupSignals(ctx)
	defer cancel()
	return calibration.RunCalibration(ctx, out, a.Config.CalibrationProfile, a.log)
}

// startMetricsServer serves the recorder until the returned function is
// called.
func (a *Application) startMetricsServer(ctx context.Context) (func(), error) {
	srv, err := metrics.Listen(a.Config.MetricsAddr, a.recorder, a.log)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ctx); err != nil {
			a.log.Error("metrics server failed", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return func() {
		cancel()
		<-done
	}, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
