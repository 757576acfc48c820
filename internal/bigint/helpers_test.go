package bigint

import (
	"math/big"
	"math/rand"
	"testing"
)

// noInterrupt is a Platform that never requests an interrupt.
type noInterrupt struct{}

func (noInterrupt) InterruptRequested() bool { return false }

// smallConfig lowers every threshold so that short operands reach the
// recursive algorithms.
func smallConfig() Config {
	return Config{
		KaratsubaThreshold:       4,
		ToomThreshold:            12,
		FFTThreshold:             40,
		BurnikelThreshold:        4,
		NewtonInversionThreshold: 4,
		BarrettThreshold:         8,
		ToStringFastThreshold:    2,
		FromStringLargeThreshold: 2,
		WorkEstimateThreshold:    DefaultWorkEstimateThreshold,
	}
}

func newTestProcessor(t testing.TB, cfg Config) *Processor {
	t.Helper()
	return New(noInterrupt{}, WithConfig(cfg))
}

// toBig converts a magnitude to a big.Int without sharing storage.
func toBig(d Digits) *big.Int {
	words := make([]big.Word, len(d))
	copy(words, d)
	return new(big.Int).SetBits(words)
}

// fromBig converts a non-negative big.Int to a magnitude.
func fromBig(x *big.Int) Digits {
	words := x.Bits()
	d := make(Digits, len(words))
	copy(d, words)
	return d
}

// randDigits returns a normalized magnitude of exactly n digits. Roughly
// one digit in eight is all ones or zero, which exercises carry chains.
func randDigits(rng *rand.Rand, n int) Digits {
	d := make(Digits, n)
	for i := range d {
		switch rng.Intn(8) {
		case 0:
			d[i] = MaxDigit
		case 1:
			d[i] = 0
		default:
			d[i] = Digit(rng.Uint64())
		}
	}
	if n > 0 && d[n-1] == 0 {
		d[n-1] = 1
	}
	return d
}

// dirty returns a buffer of n digits filled with a marker value, so tests
// can check that outputs are fully written.
func dirty(n int) RWDigits {
	z := make(RWDigits, n)
	for i := range z {
		z[i] = 0xdead
	}
	return z
}

// requireZeroFrom fails when z has a non-zero digit at or after from.
func requireZeroFrom(t *testing.T, z RWDigits, from int) {
	t.Helper()
	for i := from; i < len(z); i++ {
		if z[i] != 0 {
			t.Fatalf("digit %d of %d is %#x, want zero-filled output", i, len(z), z[i])
		}
	}
}

// expectContractViolation fails unless fn panics with a ContractViolation.
func expectContractViolation(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if _, ok := r.(ContractViolation); !ok {
			t.Fatalf("expected ContractViolation panic, got %v", r)
		}
	}()
	fn()
}
