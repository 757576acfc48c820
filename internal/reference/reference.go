// Package reference provides independent implementations of the kernel
// operations. The application uses them to cross-check results; tests use
// them as an oracle.
//
// The default oracle is math/big. Building with -tags=gmp selects GMP
// (github.com/ncw/gmp), which requires libgmp on the system.
package reference

import (
	"math/big"

	"github.com/agbru/bigcalc/internal/bigint"
)

// Oracle computes reference results on digit magnitudes.
type Oracle interface {
	// Name identifies the implementation.
	Name() string
	// Multiply returns x*y, normalized.
	Multiply(x, y bigint.Digits) bigint.Digits
	// DivMod returns the quotient and remainder of a/b, normalized. b must
	// be non-zero.
	DivMod(a, b bigint.Digits) (q, r bigint.Digits)
	// Format returns x written in radix (2..36), lower case.
	Format(x bigint.Digits, radix int) string
}

// New returns the oracle selected at build time.
func New() Oracle { return newDefault() }

// ToBig converts a digit magnitude to a big.Int.
func ToBig(x bigint.Digits) *big.Int {
	x = x.Normalize()
	words := make([]big.Word, len(x))
	copy(words, x)
	return new(big.Int).SetBits(words)
}

// FromBig converts the magnitude of v to normalized digits.
func FromBig(v *big.Int) bigint.Digits {
	words := v.Bits()
	d := make(bigint.Digits, len(words))
	copy(d, words)
	return d.Normalize()
}

// Equal reports whether two magnitudes have the same value, ignoring
// leading zero digits.
func Equal(x, y bigint.Digits) bool {
	return bigint.Compare(x, y) == 0
}

// ─────────────────────────────────────────────────────────────────────────────
// math/big oracle
// ─────────────────────────────────────────────────────────────────────────────

// Big is the math/big oracle.
type Big struct{}

// Name returns "math/big".
func (Big) Name() string { return "math/big" }

// Multiply returns x*y.
func (Big) Multiply(x, y bigint.Digits) bigint.Digits {
	return FromBig(new(big.Int).Mul(ToBig(x), ToBig(y)))
}

// DivMod returns a/b and a%b.
func (Big) DivMod(a, b bigint.Digits) (q, r bigint.Digits) {
	bq, br := new(big.Int).QuoRem(ToBig(a), ToBig(b), new(big.Int))
	return FromBig(bq), FromBig(br)
}

// Format returns x in radix.
func (Big) Format(x bigint.Digits, radix int) string {
	return ToBig(x).Text(radix)
}
