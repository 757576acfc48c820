package bigint

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

// format runs ToString and returns the written prefix.
func format(t *testing.T, p *Processor, x Digits, radix int, sign bool) string {
	t.Helper()
	out := make([]byte, ToStringResultLength(x, radix, sign))
	for i := range out {
		out[i] = '?'
	}
	n := p.ToString(out, x, radix, sign)
	return string(out[:n])
}

// parse runs the accumulator and FromString over s.
func parse(t *testing.T, p *Processor, s string, radix int) Digits {
	t.Helper()
	acc := NewFromStringAccumulator(1 << 20)
	if consumed := acc.Parse(s, radix); consumed != len(s) {
		t.Fatalf("Parse consumed %d of %d bytes", consumed, len(s))
	}
	z := dirty(acc.ResultLength())
	p.FromString(z, acc)
	return Digits(z)
}

func TestToStringExamples(t *testing.T) {
	t.Parallel()
	p := newTestProcessor(t, DefaultConfig())
	tests := []struct {
		name  string
		x     Digits
		radix int
		sign  bool
		want  string
	}{
		{"zero", Digits{}, 10, false, "0"},
		{"negative zero", Digits{}, 10, true, "-0"},
		{"decimal", Digits{12345}, 10, false, "12345"},
		{"negative", Digits{255}, 16, true, "-ff"},
		{"binary", Digits{5}, 2, false, "101"},
		{"base 36", Digits{35}, 36, false, "z"},
		{"two digits hex", Digits{0, 1}, 16, false, "1" + strings.Repeat("0", DigitBits/4)},
		{"unnormalized", Digits{7, 0, 0}, 8, false, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := format(t, p, tt.x, tt.radix, tt.sign); got != tt.want {
				t.Errorf("ToString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToStringMatchesBig(t *testing.T) {
	t.Parallel()
	for name, cfg := range map[string]Config{"default": DefaultConfig(), "small": smallConfig()} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := newTestProcessor(t, cfg)
			rng := rand.New(rand.NewSource(60))
			for radix := 2; radix <= 36; radix++ {
				for _, n := range []int{1, 2, 3, 7, 16, 45, 130} {
					x := randDigits(rng, n)
					want := toBig(x).Text(radix)
					if got := format(t, p, x, radix, false); got != want {
						t.Fatalf("radix %d, %d digits: got %.40q..., want %.40q...", radix, n, got, want)
					}
					if got := format(t, p, x, radix, true); got != "-"+want {
						t.Fatalf("radix %d, %d digits: sign not written", radix, n)
					}
				}
			}
		})
	}
}

func TestToStringResultLengthBound(t *testing.T) {
	t.Parallel()
	for radix := 2; radix <= 36; radix++ {
		for bitLength := 1; bitLength < 3*DigitBits; bitLength += 7 {
			x := new(big.Int).Lsh(big.NewInt(1), uint(bitLength))
			x.Sub(x, big.NewInt(1))
			d := fromBig(x)
			if got, want := ToStringResultLength(d, radix, false), len(x.Text(radix)); got < want {
				t.Fatalf("radix %d, %d bits: length %d < %d", radix, bitLength, got, want)
			}
			if isPowerOfTwo(radix) && ToStringResultLength(d, radix, false) != len(x.Text(radix)) {
				t.Fatalf("radix %d, %d bits: power of two length not exact", radix, bitLength)
			}
		}
	}
}

func TestFromStringMatchesBig(t *testing.T) {
	t.Parallel()
	for name, cfg := range map[string]Config{"default": DefaultConfig(), "small": smallConfig()} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := newTestProcessor(t, cfg)
			rng := rand.New(rand.NewSource(70))
			for radix := 2; radix <= 36; radix++ {
				for _, n := range []int{1, 2, 5, 19, 64, 140} {
					want := toBig(randDigits(rng, n))
					s := want.Text(radix)
					if rng.Intn(2) == 0 {
						s = strings.ToUpper(s)
					}
					got := parse(t, p, s, radix)
					if toBig(got).Cmp(want) != 0 {
						t.Fatalf("radix %d, %d digits: parse mismatch", radix, n)
					}
					requireZeroFrom(t, RWDigits(got), len(want.Bits()))
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	p := newTestProcessor(t, smallConfig())
	rng := rand.New(rand.NewSource(80))
	for _, radix := range []int{2, 3, 8, 10, 16, 31, 32, 36} {
		for _, n := range []int{1, 3, 8, 33, 90} {
			t.Run(fmt.Sprintf("radix%d/%d", radix, n), func(t *testing.T) {
				x := randDigits(rng, n)
				back := parse(t, p, format(t, p, x, radix, false), radix)
				if toBig(back).Cmp(toBig(x)) != 0 {
					t.Errorf("round trip mismatch")
				}
			})
		}
	}
}

func TestAccumulatorLeadingZerosAndStops(t *testing.T) {
	t.Parallel()
	p := newTestProcessor(t, DefaultConfig())
	acc := NewFromStringAccumulator(4)
	if got := acc.Parse("000123x45", 10); got != 6 {
		t.Fatalf("Parse consumed %d bytes, want 6", got)
	}
	if acc.Result() != AccumulatorOK {
		t.Fatalf("Result = %s, want ok", acc.Result())
	}
	z := dirty(acc.ResultLength())
	p.FromString(z, acc)
	if toBig(Digits(z)).Int64() != 123 {
		t.Errorf("value = %s, want 123", toBig(Digits(z)))
	}

	zeros := NewFromStringAccumulator(1)
	zeros.Parse("0000", 16)
	if zeros.Parts() != 0 || zeros.ResultLength() != 0 {
		t.Errorf("all-zero literal has %d parts, length %d", zeros.Parts(), zeros.ResultLength())
	}
	p.FromString(nil, zeros)
}

func TestAccumulatorIncrementalParse(t *testing.T) {
	t.Parallel()
	p := newTestProcessor(t, DefaultConfig())
	want, _ := new(big.Int).SetString("98765432109876543210987654321098765432109876543210", 10)
	s := want.String()
	acc := NewFromStringAccumulator(16)
	for i := 0; i < len(s); i += 7 {
		end := min(i+7, len(s))
		if got := acc.Parse(s[i:end], 10); got != end-i {
			t.Fatalf("Parse consumed %d of %d", got, end-i)
		}
	}
	z := dirty(acc.ResultLength())
	p.FromString(z, acc)
	if toBig(Digits(z)).Cmp(want) != 0 {
		t.Errorf("incremental parse = %s, want %s", toBig(Digits(z)), want)
	}
}

func TestAccumulatorMaxSizeExceeded(t *testing.T) {
	t.Parallel()
	p := newTestProcessor(t, DefaultConfig())
	tests := []struct {
		name  string
		radix int
	}{
		{"decimal", 10},
		{"hex", 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := strings.Repeat("1", 200)
			acc := NewFromStringAccumulator(2)
			consumed := acc.Parse(s, tt.radix)
			if acc.Result() != ResultMaxSizeExceeded {
				t.Fatalf("Result = %s, want max size exceeded", acc.Result())
			}
			if consumed >= len(s) {
				t.Fatalf("Parse consumed the whole literal")
			}
			if acc.ResultLength() > 2 {
				t.Errorf("ResultLength = %d, exceeds the maximum", acc.ResultLength())
			}
			if acc.Parse("1", tt.radix) != 0 {
				t.Error("Parse continued after exceeding the maximum")
			}
			expectContractViolation(t, func() {
				p.FromString(make(RWDigits, 2), acc)
			})
		})
	}
}

func TestAccumulatorRadixContracts(t *testing.T) {
	t.Parallel()
	expectContractViolation(t, func() { NewFromStringAccumulator(0) })
	expectContractViolation(t, func() { NewFromStringAccumulator(1).Parse("1", 37) })
	expectContractViolation(t, func() {
		acc := NewFromStringAccumulator(1)
		acc.Parse("1", 10)
		acc.Parse("1", 16)
	})
}
