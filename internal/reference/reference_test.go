package reference

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/agbru/bigcalc/internal/bigint"
)

// uninterrupted never asks the kernel to stop.
type uninterrupted struct{}

func (uninterrupted) InterruptRequested() bool { return false }

func randomDigits(rng *rand.Rand, n int) bigint.Digits {
	d := make(bigint.Digits, n)
	for i := range d {
		d[i] = bigint.Digit(rng.Uint64())
	}
	d[n-1] |= 1
	return d
}

func TestConversions(t *testing.T) {
	t.Parallel()
	v, _ := new(big.Int).SetString("123456789012345678901234567890123456789", 10)
	d := FromBig(v)
	if ToBig(d).Cmp(v) != 0 {
		t.Fatal("ToBig(FromBig(v)) != v")
	}
	padded := append(append(bigint.Digits(nil), d...), 0, 0)
	if !Equal(d, padded) {
		t.Error("leading zero digits changed equality")
	}
	if ToBig(nil).Sign() != 0 || len(FromBig(new(big.Int))) != 0 {
		t.Error("zero conversions")
	}
}

func TestOracleAgreesWithKernel(t *testing.T) {
	t.Parallel()
	oracle := New()
	p := bigint.New(uninterrupted{})
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 5, 40, 250, 2000} {
		x := randomDigits(rng, n)
		y := randomDigits(rng, max(1, n/2))

		z := make(bigint.RWDigits, bigint.MultiplyResultLength(x, y))
		p.Multiply(z, x, y)
		if !Equal(bigint.Digits(z), oracle.Multiply(x, y)) {
			t.Errorf("%s: product mismatch for %d digits", oracle.Name(), n)
		}

		q := make(bigint.RWDigits, bigint.DivideResultLength(x, y))
		r := make(bigint.RWDigits, bigint.ModuloResultLength(y))
		p.Divide(q, r, x, y)
		wantQ, wantR := oracle.DivMod(x, y)
		if !Equal(bigint.Digits(q), wantQ) || !Equal(bigint.Digits(r), wantR) {
			t.Errorf("%s: division mismatch for %d digits", oracle.Name(), n)
		}

		out := make([]byte, bigint.ToStringResultLength(x, 16, false))
		written := p.ToString(out, x, 16, false)
		if got, want := string(out[:written]), oracle.Format(x, 16); got != want {
			t.Errorf("%s: hex mismatch for %d digits", oracle.Name(), n)
		}
	}
}

func TestBigOracle(t *testing.T) {
	t.Parallel()
	var o Big
	if o.Name() != "math/big" {
		t.Errorf("Name() = %q", o.Name())
	}
	got := o.Multiply(bigint.Digits{1, 2}, bigint.Digits{3, 4})
	if !Equal(got, bigint.Digits{3, 10, 8}) {
		t.Errorf("Multiply = %v", got)
	}
	q, r := o.DivMod(bigint.Digits{17}, bigint.Digits{5})
	if !Equal(q, bigint.Digits{3}) || !Equal(r, bigint.Digits{2}) {
		t.Errorf("DivMod = %v, %v", q, r)
	}
	if o.Format(bigint.Digits{255}, 2) != "11111111" || o.Format(nil, 10) != "0" {
		t.Error("Format")
	}
}
