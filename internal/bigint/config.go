package bigint

import "fmt"

// Default algorithm thresholds, in digits unless noted otherwise.
const (
	DefaultKaratsubaThreshold       = 34
	DefaultToomThreshold            = 193
	DefaultFFTThreshold             = 1500
	DefaultBurnikelThreshold        = 57
	DefaultNewtonInversionThreshold = 50
	DefaultBarrettThreshold         = 13310
	DefaultToStringFastThreshold    = 43
	// DefaultFromStringLargeThreshold counts accumulator parts.
	DefaultFromStringLargeThreshold = 300
	// DefaultWorkEstimateThreshold is the number of work units between two
	// polls of the Platform.
	DefaultWorkEstimateThreshold = 5_000_000
)

// Config holds the size thresholds that drive algorithm selection.
type Config struct {
	// KaratsubaThreshold is the shorter operand length from which
	// multiplication switches from schoolbook to Karatsuba.
	KaratsubaThreshold int
	// ToomThreshold is the length from which Toom-3 replaces Karatsuba.
	ToomThreshold int
	// FFTThreshold is the length from which FFT multiplication replaces Toom-3.
	FFTThreshold int
	// BurnikelThreshold is the divisor length from which Burnikel-Ziegler
	// replaces schoolbook division.
	BurnikelThreshold int
	// NewtonInversionThreshold is the divisor length from which the Barrett
	// reciprocal is refined by Newton iteration instead of computed directly.
	NewtonInversionThreshold int
	// BarrettThreshold is the divisor length from which Barrett division
	// replaces Burnikel-Ziegler.
	BarrettThreshold int
	// ToStringFastThreshold is the length from which ToString uses the
	// divide-and-conquer algorithm.
	ToStringFastThreshold int
	// FromStringLargeThreshold is the number of accumulator parts from which
	// FromString combines parts pairwise.
	FromStringLargeThreshold int
	// WorkEstimateThreshold is the amount of work between interrupt polls.
	WorkEstimateThreshold uint64
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		KaratsubaThreshold:       DefaultKaratsubaThreshold,
		ToomThreshold:            DefaultToomThreshold,
		FFTThreshold:             DefaultFFTThreshold,
		BurnikelThreshold:        DefaultBurnikelThreshold,
		NewtonInversionThreshold: DefaultNewtonInversionThreshold,
		BarrettThreshold:         DefaultBarrettThreshold,
		ToStringFastThreshold:    DefaultToStringFastThreshold,
		FromStringLargeThreshold: DefaultFromStringLargeThreshold,
		WorkEstimateThreshold:    DefaultWorkEstimateThreshold,
	}
}

// Validate checks that the thresholds describe a usable tier order.
func (c Config) Validate() error {
	switch {
	case c.KaratsubaThreshold < 4:
		return fmt.Errorf("karatsuba threshold %d is below the minimum of 4", c.KaratsubaThreshold)
	case c.ToomThreshold < c.KaratsubaThreshold:
		return fmt.Errorf("toom threshold %d is below the karatsuba threshold %d", c.ToomThreshold, c.KaratsubaThreshold)
	case c.ToomThreshold < 12:
		return fmt.Errorf("toom threshold %d is below the minimum of 12", c.ToomThreshold)
	case c.FFTThreshold < c.ToomThreshold:
		return fmt.Errorf("fft threshold %d is below the toom threshold %d", c.FFTThreshold, c.ToomThreshold)
	case c.BurnikelThreshold < 4:
		return fmt.Errorf("burnikel threshold %d is below the minimum of 4", c.BurnikelThreshold)
	case c.NewtonInversionThreshold < 4:
		return fmt.Errorf("newton inversion threshold %d is below the minimum of 4", c.NewtonInversionThreshold)
	case c.BarrettThreshold < c.BurnikelThreshold:
		return fmt.Errorf("barrett threshold %d is below the burnikel threshold %d", c.BarrettThreshold, c.BurnikelThreshold)
	case c.BarrettThreshold < c.NewtonInversionThreshold:
		return fmt.Errorf("barrett threshold %d is below the newton inversion threshold %d", c.BarrettThreshold, c.NewtonInversionThreshold)
	case c.ToStringFastThreshold < 2:
		return fmt.Errorf("to-string fast threshold %d is below the minimum of 2", c.ToStringFastThreshold)
	case c.FromStringLargeThreshold < 2:
		return fmt.Errorf("from-string large threshold %d is below the minimum of 2", c.FromStringLargeThreshold)
	case c.WorkEstimateThreshold == 0:
		return fmt.Errorf("work estimate threshold must be positive")
	}
	return nil
}
