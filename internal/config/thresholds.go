package config

import "math/bits"

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--karatsuba-threshold, --toom-threshold, ...)
//   2. Environment variables (BIGCALC_KARATSUBA_THRESHOLD, ...)
//   3. Cached calibration profile (~/.bigcalc_calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. Static defaults in bigint.DefaultConfig

// ApplyAdaptiveThresholds fills the thresholds left at zero with estimates
// derived from the word size. fastMul reports that the CPU has a wide
// multiply-with-carry path (BMI2/ADX on x86, any arm64 core), which makes
// the quadratic kernels competitive for longer operands.
//
// The function only modifies thresholds that are zero, preserving any
// value set by a flag, the environment or a calibration profile.
func ApplyAdaptiveThresholds(cfg AppConfig, fastMul bool) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateKaratsubaThreshold(fastMul)
	}
	if cfg.ToomThreshold == 0 {
		cfg.ToomThreshold = EstimateToomThreshold(fastMul)
	}
	if cfg.FFTThreshold == 0 {
		cfg.FFTThreshold = EstimateFFTThreshold()
	}
	if cfg.BarrettThreshold == 0 {
		cfg.BarrettThreshold = EstimateBarrettThreshold()
	}
	return cfg
}

// EstimateKaratsubaThreshold estimates the Karatsuba crossover in digits.
func EstimateKaratsubaThreshold(fastMul bool) int {
	if bits.UintSize == 32 {
		return 24
	}
	if fastMul {
		return 40
	}
	return 34
}

// EstimateToomThreshold estimates the Toom-3 crossover in digits.
func EstimateToomThreshold(fastMul bool) int {
	if bits.UintSize == 32 {
		return 120
	}
	if fastMul {
		return 220
	}
	return 193
}

// EstimateFFTThreshold estimates the FFT crossover in digits. A 32-bit
// digit holds half the bits, so the crossover sits at about twice as many
// digits.
func EstimateFFTThreshold() int {
	if bits.UintSize == 32 {
		return 3000
	}
	return 1500
}

// EstimateBarrettThreshold estimates the divisor length from which Barrett
// division beats Burnikel-Ziegler.
func EstimateBarrettThreshold() int {
	if bits.UintSize == 32 {
		return 26620
	}
	return 13310
}
