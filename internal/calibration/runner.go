package calibration

import (
	"context"
	"math/rand"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/platform"
)

// calibrationRunner encapsulates the trial run logic for calibration.
// Every trial polls the same flag, which is raised when ctx ends.
type calibrationRunner struct {
	ctx    context.Context
	base   bigint.Config
	rounds int
	rng    *rand.Rand
	logger logging.Logger
	plat   *platform.FlagPlatform
	detach func() bool
}

// newCalibrationRunner creates a runner timing rounds products per trial.
// Call close when done.
func newCalibrationRunner(ctx context.Context, base bigint.Config, rounds int, logger logging.Logger) *calibrationRunner {
	if rounds < 1 {
		rounds = 1
	}
	plat, detach := platform.InterruptOnDone(ctx)
	return &calibrationRunner{
		ctx:    ctx,
		base:   base,
		rounds: rounds,
		rng:    rand.New(rand.NewSource(1)),
		logger: logger,
		plat:   plat,
		detach: detach,
	}
}

// close detaches the runner's interrupt flag from its context.
func (r *calibrationRunner) close() { r.detach() }

// operand returns a random n-digit magnitude with a non-zero top digit.
func (r *calibrationRunner) operand(n int) bigint.Digits {
	d := make(bigint.Digits, n)
	for i := range d {
		d[i] = bigint.Digit(r.rng.Uint64())
	}
	d[n-1] |= 1
	return d
}

// runTrial times Multiply on x and y under cfg and returns the mean
// duration of one product.
//
// Returns:
//   - time.Duration: The mean duration of a product.
//   - error: An InterruptedError if the interrupt flag was raised during
//     the trial.
func (r *calibrationRunner) runTrial(cfg bigint.Config, x, y bigint.Digits) (time.Duration, error) {
	p := bigint.New(r.plat, bigint.WithConfig(cfg))
	z := make(bigint.RWDigits, bigint.MultiplyResultLength(x, y))

	start := time.Now()
	for i := 0; i < r.rounds; i++ {
		p.Multiply(z, x, y)
		if p.Status() == bigint.StatusInterrupted {
			return 0, apperrors.InterruptedError{Operation: "calibrate", Polls: p.Polls(), Cause: context.Cause(r.ctx)}
		}
	}
	return time.Since(start) / time.Duration(r.rounds), nil
}

// sweep runs one trial per candidate, configured by apply, and returns the
// fastest candidate with every measurement. It stops at the first
// interrupted trial.
func (r *calibrationRunner) sweep(parameter string, candidates []int, defaultThreshold int, apply func(bigint.Config, int) bigint.Config) (int, []calibrationResult, error) {
	n := workloadDigits(candidates)
	x, y := r.operand(n), r.operand(n)

	best := defaultThreshold
	bestDur := time.Duration(1<<63 - 1)
	results := make([]calibrationResult, 0, len(candidates))
	for _, cand := range candidates {
		if r.ctx.Err() != nil {
			err := apperrors.InterruptedError{Operation: "calibrate", Cause: context.Cause(r.ctx)}
			return best, results, err
		}
		cfg := apply(r.base, cand)
		if err := cfg.Validate(); err != nil {
			r.logger.Debug("candidate skipped",
				logging.String("parameter", parameter), logging.Int("threshold", cand), logging.Err(err))
			results = append(results, calibrationResult{Parameter: parameter, Threshold: cand, Err: err})
			continue
		}
		dur, err := r.runTrial(cfg, x, y)
		if err != nil {
			r.logger.Error("calibration trial interrupted", err,
				logging.String("parameter", parameter), logging.Int("threshold", cand))
			return best, append(results, calibrationResult{Parameter: parameter, Threshold: cand, Err: err}), err
		}
		r.logger.Debug("calibration trial",
			logging.String("parameter", parameter),
			logging.Int("threshold", cand),
			logging.Float64("mean_ms", float64(dur.Microseconds())/1000))
		results = append(results, calibrationResult{Parameter: parameter, Threshold: cand, Duration: dur})
		if dur < bestDur {
			bestDur, best = dur, cand
		}
	}
	r.logger.Info("crossover selected",
		logging.String("parameter", parameter), logging.Int("threshold", best), logging.Int("digits", n))
	return best, results, nil
}

// findBestKaratsubaThreshold sweeps the Karatsuba crossover. Toom-3 and FFT
// are pushed above the workload so that only the candidate decides.
func (r *calibrationRunner) findBestKaratsubaThreshold() (int, []calibrationResult, error) {
	candidates := GenerateKaratsubaThresholds()
	above := workloadDigits(candidates) + 1
	return r.sweep("karatsuba", candidates, r.base.KaratsubaThreshold, func(cfg bigint.Config, cand int) bigint.Config {
		cfg.KaratsubaThreshold = cand
		cfg.ToomThreshold = max(cfg.ToomThreshold, above)
		cfg.FFTThreshold = max(cfg.FFTThreshold, above)
		return cfg
	})
}

// findBestToomThreshold sweeps the Toom-3 crossover on top of the given
// Karatsuba crossover. FFT is pushed above the workload.
func (r *calibrationRunner) findBestToomThreshold(karatsuba int) (int, []calibrationResult, error) {
	candidates := GenerateToomThresholds()
	above := workloadDigits(candidates) + 1
	return r.sweep("toom3", candidates, r.base.ToomThreshold, func(cfg bigint.Config, cand int) bigint.Config {
		cfg.KaratsubaThreshold = karatsuba
		cfg.ToomThreshold = cand
		cfg.FFTThreshold = max(cfg.FFTThreshold, above)
		return cfg
	})
}
