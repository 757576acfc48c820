// This file implements Schönhage-Strassen multiplication: both operands are
// cut into 2^k chunks of m digits, treated as polynomials evaluated at
// 2^(m·DigitBits), and multiplied through a Fourier transform over the
// ring of integers modulo 2^(n·DigitBits)+1.

package bigint

// ─────────────────────────────────────────────────────────────────────────────
// Transform Sizing
// ─────────────────────────────────────────────────────────────────────────────

// fftSizeThreshold[i] is the largest product size, in bits, for which a
// transform of length 2^i is used.
var fftSizeThreshold = [...]int64{0, 0, 0,
	4 << 10, 8 << 10, 16 << 10,
	32 << 10, 64 << 10, 1 << 18, 1 << 20, 3 << 20,
	8 << 20, 30 << 20, 100 << 20, 300 << 20, 600 << 20,
}

// fftSize returns the transform length exponent k and the chunk size m for
// a product of the given number of digits, so that m<<k exceeds digits.
func fftSize(digits int) (k uint, m int) {
	size := int64(digits) * int64(DigitBits)
	k = uint(len(fftSizeThreshold))
	for i := range fftSizeThreshold {
		if fftSizeThreshold[i] > size {
			k = uint(i)
			break
		}
	}
	m = digits>>k + 1
	return k, m
}

// fftValueSize returns the coefficient length n, in digits, for a
// transform of length 2^k over m-digit chunks. The coefficients of the
// product are below β^(2m)·2^k, and n·DigitBits must be a multiple of
// 2^(k-extra) so that a suitable power of two is a root of unity.
func fftValueSize(k uint, m int, extra uint) int {
	n := 2*m*DigitBits + int(k)
	K := 1 << (k - extra)
	if K < DigitBits {
		K = DigitBits
	}
	n = ((n / K) + 1) * K
	return n / DigitBits
}

// ─────────────────────────────────────────────────────────────────────────────
// Polynomials
// ─────────────────────────────────────────────────────────────────────────────

// poly represents a magnitude as P(β^m) for a polynomial P with at most
// 2^k coefficients of m digits each.
type poly struct {
	k uint
	m int
	a []Digits
}

// polyFromDigits cuts x into m-digit coefficients.
func polyFromDigits(x Digits, k uint, m int) poly {
	p := poly{k: k, m: m}
	p.a = make([]Digits, 0, len(x)/m+1)
	for len(x) > 0 {
		n := min(m, len(x))
		p.a = append(p.a, x[:n])
		x = x[n:]
	}
	return p
}

// polyValues holds the values of a polynomial at the 2^k powers of a root
// of unity in the ring modulo 2^(n·DigitBits)+1.
type polyValues struct {
	k      uint
	n      int
	values []fermat
	buf    RWDigits
}

// newPolyValues returns 2^k zeroed ring elements of n+1 digits backed by a
// single pooled buffer.
func newPolyValues(k uint, n int) polyValues {
	buf := acquireDigits((n + 1) << k)
	values := make([]fermat, 1<<k)
	for i := range values {
		values[i] = fermat(buf[i*(n+1) : (i+1)*(n+1) : (i+1)*(n+1)])
	}
	return polyValues{k: k, n: n, values: values, buf: buf}
}

func (v *polyValues) release() {
	releaseDigits(v.buf)
	v.buf = nil
	v.values = nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Public API
// ─────────────────────────────────────────────────────────────────────────────

// MultiplyFFT sets z = x * y with Schönhage-Strassen multiplication. It
// requires len(z) >= len(x)+len(y) after normalization and zero-fills the
// rest of z. The pointwise products go through Multiply, so they use
// whichever strategy suits the coefficient size.
func (p *Processor) MultiplyFFT(z RWDigits, x, y Digits) {
	x = x.Normalize()
	y = y.Normalize()
	require(len(z) >= len(x)+len(y), "MultiplyFFT", "output has %d digits, need %d", len(z), len(x)+len(y))
	if len(x) == 0 || len(y) == 0 {
		z.Clear()
		return
	}

	k, m := fftSize(len(x) + len(y))
	n := fftValueSize(k, m, 2)
	xp := polyFromDigits(x, k, m)
	yp := polyFromDigits(y, k, m)

	xv := p.transform(&xp, n)
	defer xv.release()
	if p.shouldTerminate() {
		return
	}
	yv := p.transform(&yp, n)
	defer yv.release()
	if p.shouldTerminate() {
		return
	}

	// Pointwise products, stored back into xv.
	buf := acquireDigits(2*n + 2)
	defer releaseDigits(buf)
	for i := range xv.values {
		p.fermatMul(xv.values[i], xv.values[i], yv.values[i], buf)
		if p.shouldTerminate() {
			return
		}
	}

	// yv now receives the inverse transform.
	p.invTransform(yv.values, xv.values, n, k)
	if p.shouldTerminate() {
		return
	}

	z.Clear()
	for i, coeff := range yv.values {
		offset := i * m
		c := Digits(coeff).Normalize()
		if offset >= len(z) {
			invariant(len(c) == 0, "MultiplyFFT: coefficient beyond the product")
			continue
		}
		carry := addAt(z, c, offset)
		invariant(carry == 0, "MultiplyFFT: carry out of the product")
	}
	p.addWorkEstimate(len(z))
}

// transform evaluates src at the powers of a 2^k-th root of unity modulo
// 2^(n·DigitBits)+1.
func (p *Processor) transform(src *poly, n int) polyValues {
	input := newPolyValues(src.k, n)
	defer input.release()
	for i, coeff := range src.a {
		copy(input.values[i], coeff)
	}
	values := newPolyValues(src.k, n)
	p.fourier(values.values, input.values, false, n, src.k)
	return values
}

// invTransform sets dst to the coefficients whose transform is src,
// dividing by 2^k.
func (p *Processor) invTransform(dst, src []fermat, n int, k uint) {
	p.fourier(dst, src, true, n, k)
	if p.shouldTerminate() {
		return
	}
	u := acquireDigits(n + 1)
	defer releaseDigits(u)
	for i := range dst {
		fermat(u).shift(dst[i], -int(k))
		copy(dst[i], u)
	}
	p.addWorkEstimate(len(dst) * (n + 1))
}

// fourier performs an unnormalized Fourier transform of src, a vector of
// 2^k numbers modulo 2^(n·DigitBits)+1, into dst.
func (p *Processor) fourier(dst, src []fermat, backward bool, n int, k uint) {
	scratch := acquireDigits(2 * (n + 1))
	defer releaseDigits(scratch)
	tmp := fermat(scratch[:n+1])
	tmp2 := fermat(scratch[n+1:])

	// The root of unity at each level is ω = 2^(ω2shift/2). src may be
	// strided: its i-th element is src[i<<(k-size)].
	var rec func(dst, src []fermat, size uint)
	rec = func(dst, src []fermat, size uint) {
		idxShift := k - size
		ω2shift := (4 * n * DigitBits) >> size
		if backward {
			ω2shift = -ω2shift
		}

		switch size {
		case 0:
			copy(dst[0], src[0])
			return
		case 1:
			dst[0].add(src[0], src[1<<idxShift])
			dst[1].sub(src[0], src[1<<idxShift])
			return
		}

		// P(x) = Q1(x²) + x·Q2(x²): transform both halves, then combine.
		dst1 := dst[:1<<(size-1)]
		dst2 := dst[1<<(size-1):]
		rec(dst1, src, size-1)
		if p.shouldTerminate() {
			return
		}
		rec(dst2, src[1<<idxShift:], size-1)
		if p.shouldTerminate() {
			return
		}

		// dst[i]       = dst1[i] + ω^i·dst2[i]
		// dst[i + K/2] = dst1[i] - ω^i·dst2[i]
		for i := range dst1 {
			tmp.shiftHalf(dst2[i], i*ω2shift, tmp2)
			dst2[i].sub(dst1[i], tmp)
			dst1[i].add(dst1[i], tmp)
		}
		p.addWorkEstimate(len(dst) * (n + 1))
	}
	rec(dst, src, k)
}
