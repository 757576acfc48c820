// This file generates the candidate thresholds tried by the calibration runner.

package calibration

import "math/bits"

// ─────────────────────────────────────────────────────────────────────────────
// Candidate Threshold Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateKaratsubaThresholds returns the Karatsuba crossovers to test, in
// digits. A 32-bit digit carries half the bits, so the sweep starts lower.
func GenerateKaratsubaThresholds() []int {
	if bits.UintSize == 32 {
		return []int{12, 16, 20, 24, 32, 40}
	}
	return []int{16, 24, 32, 40, 48, 64}
}

// GenerateToomThresholds returns the Toom-3 crossovers to test, in digits.
// Every candidate stays above the largest Karatsuba candidate so that any
// pairing of the two sweeps is a valid tier order.
func GenerateToomThresholds() []int {
	if bits.UintSize == 32 {
		return []int{64, 96, 128, 160, 192}
	}
	return []int{96, 128, 160, 192, 256, 320}
}

// workloadDigits returns the operand length used to rank a sweep: four
// times its largest candidate, so every candidate decides part of the
// recursion.
func workloadDigits(candidates []int) int {
	largest := 0
	for _, c := range candidates {
		largest = max(largest, c)
	}
	return 4 * largest
}
