//go:build gmp

// GMP is only compiled with the "gmp" build tag:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - build with: go build -tags=gmp

package reference

import (
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bigint"
)

func newDefault() Oracle { return GMP{} }

// GMP is the libgmp oracle. Values cross the cgo boundary as big-endian
// bytes.
type GMP struct{}

// Name returns "gmp".
func (GMP) Name() string { return "gmp" }

func toGMP(x bigint.Digits) *gmp.Int {
	return new(gmp.Int).SetBytes(ToBig(x).Bytes())
}

func fromGMP(v *gmp.Int) bigint.Digits {
	return FromBig(new(big.Int).SetBytes(v.Bytes()))
}

// Multiply returns x*y.
func (GMP) Multiply(x, y bigint.Digits) bigint.Digits {
	return fromGMP(new(gmp.Int).Mul(toGMP(x), toGMP(y)))
}

// DivMod returns a/b and a%b.
func (GMP) DivMod(a, b bigint.Digits) (q, r bigint.Digits) {
	gr := new(gmp.Int)
	gq, gr := new(gmp.Int).QuoRem(toGMP(a), toGMP(b), gr)
	return fromGMP(gq), fromGMP(gr)
}

// Format returns x in radix.
func (GMP) Format(x bigint.Digits, radix int) string {
	return new(big.Int).SetBytes(toGMP(x).Bytes()).Text(radix)
}
