package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/ui"
)

// DefaultRounds is the number of products timed per candidate.
const DefaultRounds = 20

// CalibrationOptions configures the calibration process.
type CalibrationOptions struct {
	// ProfilePath is where the profile is saved. Empty uses the default path.
	ProfilePath string
	// SaveProfile indicates whether to save the calibration results.
	SaveProfile bool
	// Rounds is the number of products timed per candidate.
	Rounds int
	// Base holds the thresholds not under test.
	Base bigint.Config
	// Logger receives one event per trial. Nil discards them.
	Logger logging.Logger
}

// calibrationResult holds the result of a single threshold test.
type calibrationResult struct {
	Parameter string
	Threshold int
	Duration  time.Duration
	Err       error
}

// RunCalibration sweeps the Karatsuba and Toom-3 crossovers on this machine,
// prints both tables and saves the resulting profile.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - out: The io.Writer to which progress and results will be written.
//   - profilePath: Where to save the profile (empty for the default path).
//   - logger: Receives the per-trial measurements.
//
// Returns:
//   - int: The exit code (0 for success, non-zero for errors).
func RunCalibration(ctx context.Context, out io.Writer, profilePath string, logger logging.Logger) int {
	_, code := RunCalibrationWithOptions(ctx, out, CalibrationOptions{
		ProfilePath: profilePath,
		SaveProfile: true,
		Rounds:      DefaultRounds,
		Base:        bigint.DefaultConfig(),
		Logger:      logger,
	})
	return code
}

// RunCalibrationWithOptions executes calibration with the specified options
// and returns the measured profile with the exit code.
func RunCalibrationWithOptions(ctx context.Context, out io.Writer, opts CalibrationOptions) (*CalibrationProfile, int) {
	fmt.Fprintf(out, "%s\n", ui.Heading("Calibration Mode: Finding the Multiplication Crossovers"))
	features := DetectCPUFeatures()
	fmt.Fprintf(out, "%sCPU features: %s%s\n", ui.ColorCyan(), features, ui.ColorReset())

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewZerologAdapter(zerolog.Nop())
	}
	start := time.Now()
	runner := newCalibrationRunner(ctx, opts.Base, opts.Rounds, logger)
	defer runner.close()

	karatsuba, karatsubaResults, err := runner.findBestKaratsubaThreshold()
	printCalibrationResults(out, "karatsuba", karatsubaResults, karatsuba)
	if err != nil {
		return nil, apperrors.HandleCalculationError(err, time.Since(start), out, cli.CLIColorProvider{})
	}

	toom, toomResults, err := runner.findBestToomThreshold(karatsuba)
	printCalibrationResults(out, "toom3", toomResults, toom)
	if err != nil {
		return nil, apperrors.HandleCalculationError(err, time.Since(start), out, cli.CLIColorProvider{})
	}

	profile := NewProfile()
	profile.KaratsubaThreshold = karatsuba
	profile.ToomThreshold = toom
	profile.CalibrationTime = time.Since(start).String()
	printCalibrationOutput(profile, out)

	if opts.SaveProfile {
		path := opts.ProfilePath
		if path == "" {
			path = GetDefaultProfilePath()
		}
		if err := profile.SaveProfile(path); err != nil {
			logger.Error("saving calibration profile failed", err, logging.String("path", path))
			fmt.Fprintf(out, "%sCould not save the calibration profile: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return profile, apperrors.ExitErrorGeneric
		}
		logger.Info("calibration profile saved",
			logging.String("path", path),
			logging.Int("karatsuba", karatsuba),
			logging.Int("toom", toom))
		fmt.Fprintf(out, "%s✅ Profile saved to %s%s\n", ui.ColorGreen(), path, ui.ColorReset())
	}
	return profile, apperrors.ExitSuccess
}
