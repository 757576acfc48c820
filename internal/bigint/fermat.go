// This file provides arithmetic modulo 2^(n·DigitBits)+1, the coefficient
// ring of the Schönhage-Strassen transform.

package bigint

// A fermat of length n+1 represents a number modulo 2^(n·DigitBits)+1. The
// last digit is zero or one, so a number has at most two representatives.
type fermat []Digit

// norm reduces z so that its top digit is zero or one.
func (z fermat) norm() {
	n := len(z) - 1
	c := z[n]
	if c == 0 {
		return
	}
	if z[0] >= c {
		z[n] = 0
		z[0] -= c
		return
	}
	subVW(z, z, c)
	if c > 1 {
		z[n] -= c - 1
		c = 1
	}
	if z[n] == 1 {
		z[n] = 0
		return
	}
	addVW(z, z, 1)
}

// shift sets z = (x << k) mod (2^(n·DigitBits)+1). k may be negative.
func (z fermat) shift(x fermat, k int) {
	invariant(len(z) == len(x), "fermat.shift: length mismatch")
	n := len(x) - 1
	// Shifting by n·DigitBits negates.
	k %= 2 * n * DigitBits
	if k < 0 {
		k += 2 * n * DigitBits
	}
	neg := false
	if k >= n*DigitBits {
		k -= n * DigitBits
		neg = true
	}

	kw, kb := k/DigitBits, k%DigitBits

	z[n] = 1 // add -1
	if !neg {
		clear(z[:kw])
		// x = a·2^(n-k) + b, so x<<k = (b<<k) - a.
		copy(z[kw:], x[:n-kw])
		b := subVV(z[:kw+1], z[:kw+1], x[n-kw:])
		if z[kw+1] > 0 {
			z[kw+1] -= b
		} else {
			subVW(z[kw+1:], z[kw+1:], b)
		}
	} else {
		if kw+1 < n {
			clear(z[kw+1 : n])
		}
		copy(z[:kw+1], x[n-kw:n+1])
		b := subVV(z[kw:n], z[kw:n], x[:n-kw])
		z[n] -= b
	}
	// Add back 1.
	switch {
	case z[n] > 0:
		z[n]--
	case z[0] < MaxDigit:
		z[0]++
	default:
		addVW(z, z, 1)
	}
	shlVU(z, z, uint(kb))
	z.norm()
}

// shiftHalf sets z = x·2^(k/2). Shifting by half a bit multiplies by
// sqrt(2) = 2^(3N/4) - 2^(N/4) modulo 2^N+1. tmp must have the length of z.
func (z fermat) shiftHalf(x fermat, k int, tmp fermat) {
	n := len(z) - 1
	if k%2 == 0 {
		z.shift(x, k/2)
		return
	}
	u := (k - 1) / 2
	a := u + (3*DigitBits/4)*n
	b := u + (DigitBits/4)*n
	z.shift(x, a)
	tmp.shift(x, b)
	z.sub(z, tmp)
}

// add sets z = x + y.
func (z fermat) add(x, y fermat) {
	invariant(len(z) == len(x), "fermat.add: length mismatch")
	addVV(z, x, y) // no carry: both top digits are at most one
	z.norm()
}

// sub sets z = x - y.
func (z fermat) sub(x, y fermat) {
	invariant(len(z) == len(x), "fermat.sub: length mismatch")
	n := len(y) - 1
	b := subVV(z[:n], x[:n], y[:n])
	b += y[n]
	// Subtracting b·2^N is adding b.
	z[n] = x[n]
	if z[0] <= MaxDigit-b {
		z[0] += b
	} else {
		addVW(z, z, b)
	}
	z.norm()
}

// fermatMul sets z = x * y. The full product is computed by the
// processor's multiply dispatch into buf, which needs 2n+2 digits, and then
// folded: lo + β^n·mid + β^2n·top = lo - mid + top.
func (p *Processor) fermatMul(z, x, y fermat, buf RWDigits) {
	invariant(len(x) == len(y) && len(z) == len(x), "fermatMul: length mismatch")
	n := len(x) - 1
	prod := buf[:2*n+2]
	p.Multiply(prod, Digits(x), Digits(y))
	if p.shouldTerminate() {
		return
	}
	invariant(prod[2*n+1] == 0, "fermatMul: product exceeds 2n+1 digits")
	c1 := addVW(prod[:n], prod[:n], prod[2*n])
	c2 := subVV(prod[:n], prod[:n], prod[n:2*n])
	copy(z, prod[:n])
	z[n] = c1
	c := addVW(z, z, c2)
	invariant(c == 0, "fermatMul: carry out of the reduction")
	z.norm()
}
