package bigint

import "math/bits"

// karatsubaScratchSpace returns the arena size needed by a Karatsuba
// multiplication whose longer operand has n digits. Each level allocates
// two (k+1)-digit sums and a (2k+2)-digit middle product for k = ceil(n/2),
// and the chunked path adds one partial product of twice the shorter length.
func karatsubaScratchSpace(n int) int {
	return 4*n + 8*bits.Len(uint(n)) + 16
}

// MultiplyKaratsuba sets z = x * y with Karatsuba multiplication, falling
// back to the schoolbook algorithm below Config.KaratsubaThreshold. It
// requires len(z) >= len(x)+len(y) after normalization and zero-fills the
// rest of z.
func (p *Processor) MultiplyKaratsuba(z RWDigits, x, y Digits) {
	x = x.Normalize()
	y = y.Normalize()
	require(len(z) >= len(x)+len(y), "MultiplyKaratsuba", "output has %d digits, need %d", len(z), len(x)+len(y))
	ar := newArena(karatsubaScratchSpace(max(len(x), len(y))))
	defer ar.release()
	p.karatsuba(z, x, y, ar)
}

// karatsuba multiplies with the sum form of the algorithm:
//
//	x*y = z2·β^2k + ((x0+x1)(y0+y1) - z0 - z2)·β^k + z0
//
// where z0 = x0·y0 and z2 = x1·y1. The outer products are computed in
// place in z; the middle product uses arena scratch.
func (p *Processor) karatsuba(z RWDigits, x, y Digits, ar *arena) {
	x = x.Normalize()
	y = y.Normalize()
	if len(x) < len(y) {
		x, y = y, x
	}
	switch {
	case len(y) == 0:
		z.Clear()
		return
	case len(y) == 1:
		p.MultiplySingle(z, x, y[0])
		return
	case len(y) < p.config.KaratsubaThreshold:
		p.MultiplySchoolbook(z, x, y)
		return
	case len(x) >= 2*len(y):
		p.multiplyChunked(z, x, y, ar, p.karatsuba)
		return
	}

	mark := ar.mark()
	defer ar.reset(mark)

	k := (len(x) + 1) / 2
	x0, x1 := x[:k], x[k:]
	y0, y1 := y[:k], y[k:]

	p.karatsuba(z[:2*k], x0, y0, ar)
	if p.shouldTerminate() {
		return
	}
	p.karatsuba(z[2*k:], x1, y1, ar)
	if p.shouldTerminate() {
		return
	}

	sx := ar.alloc(k + 1)
	sy := ar.alloc(k + 1)
	add(sx, x0, x1)
	add(sy, y0, y1)
	t := ar.alloc(2*k + 2)
	p.karatsuba(t, Digits(sx), Digits(sy), ar)
	if p.shouldTerminate() {
		return
	}
	subtract(t, Digits(t), Digits(z[:2*k]))
	subtract(t, Digits(t), Digits(z[2*k:]))
	c := addAt(z, Digits(t), k)
	invariant(c == 0, "karatsuba: carry out of the product")
	p.addWorkEstimate(6 * k)
}
