package bigint

import "math/bits"

// DivideSingle sets q = a / b and returns a % b. q may alias a. With
// len(q) == 0 only the remainder is computed; otherwise q must hold the
// quotient and is zero-filled beyond it.
func (p *Processor) DivideSingle(q RWDigits, a Digits, b Digit) Digit {
	require(b != 0, "DivideSingle", "division by zero")
	a = a.Normalize()
	wantQ := len(q) > 0
	if wantQ {
		require(len(q) >= len(a) || (len(q) == len(a)-1 && a[len(a)-1] < b),
			"DivideSingle", "quotient has %d digits, dividend %d", len(q), len(a))
	}
	var remainder Digit
	for i := len(a) - 1; i >= 0; i-- {
		var d Digit
		d, remainder = digitDiv(remainder, a[i], b)
		if !wantQ {
			continue
		}
		if i < len(q) {
			q[i] = d
		} else {
			invariant(d == 0, "DivideSingle: quotient digit outside the output")
		}
	}
	p.addWorkEstimate(len(a))
	if wantQ {
		q.clearFrom(len(a))
	}
	return remainder
}

// quotientLength returns the number of digits of a / b for normalized
// a >= b: one more than the length difference when the top len(b) digits
// of a are at least b.
func quotientLength(a, b Digits) int {
	if len(a) < len(b) {
		return 0
	}
	if greaterThanOrEqual(a[len(a)-len(b):], b) {
		return len(a) - len(b) + 1
	}
	return len(a) - len(b)
}

// productGreaterThan reports whether the two-digit value x1:x2 exceeds
// y1:y2.
func productGreaterThan(x1, x2, y1, y2 Digit) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}

// DivideSchoolbook sets q = a / b and r = a % b with Knuth's Algorithm D.
// It requires len(b) >= 2 and len(a) >= len(b) after normalization. Either
// output may be empty when it is not wanted; otherwise q needs
// quotientLength(a, b) digits and r needs len(b) digits. Both are
// zero-filled beyond their values.
func (p *Processor) DivideSchoolbook(q, r RWDigits, a, b Digits) {
	a = a.Normalize()
	b = b.Normalize()
	require(len(b) >= 2, "DivideSchoolbook", "divisor has %d digits, need at least 2", len(b))
	require(len(a) >= len(b), "DivideSchoolbook", "dividend shorter than divisor")
	require(len(q) == 0 || len(q) >= quotientLength(a, b), "DivideSchoolbook", "quotient has %d digits, need %d", len(q), quotientLength(a, b))
	require(len(r) == 0 || len(r) >= len(b), "DivideSchoolbook", "remainder has %d digits, need %d", len(r), len(b))

	n := len(b)
	// D1: normalize so that the top bit of the divisor is set.
	shift := uint(bits.LeadingZeros(uint(b[n-1])))
	v := acquireDigits(n)
	defer releaseDigits(v)
	shlVU(v, b, shift)
	u := acquireDigits(len(a) + 1)
	defer releaseDigits(u)
	u[len(a)] = shlVU(u[:len(a)], a, shift)
	qhatv := acquireDigits(n + 1)
	defer releaseDigits(qhatv)

	q.Clear()
	p.divBasic(q, u, Digits(v), qhatv)
	if p.shouldTerminate() {
		return
	}
	// D8: the remainder is in the low n digits of u.
	if len(r) > 0 {
		rightShift(r, Digits(u[:n]), shift)
	}
}

// divBasic divides u by v in place: the quotient digits go to q and u is
// left holding the remainder. v must have its top bit set and at least two
// digits. With len(q) == 0 the quotient is discarded; otherwise quotient
// digits beyond len(q) must be zero. qhatv is scratch of len(v)+1 digits.
func (p *Processor) divBasic(q, u RWDigits, v Digits, qhatv RWDigits) {
	n := len(v)
	m := len(u) - n
	if m < 0 {
		return
	}
	vn1 := v[n-1]
	vn2 := v[n-2]
	qhatv = qhatv[:n+1]

	// A top window already below v yields a zero quotient digit. This is
	// always the case for a dividend extended by the normalization shift.
	j := m
	if compareDigits(Digits(u[m:]), v) < 0 {
		if m < len(q) {
			q[m] = 0
		}
		j--
	}

	for ; j >= 0; j-- {
		// D3: estimate qhat from the top two digits of the window. The
		// first iteration invents a leading zero.
		qhat := MaxDigit
		var ujn Digit
		if j+n < len(u) {
			ujn = u[j+n]
		}
		// ujn <= vn1 holds; when they are equal qhat stays at MaxDigit.
		if ujn != vn1 {
			var rhat Digit
			qhat, rhat = digitDiv(ujn, u[j+n-1], vn1)
			// Refine against the second divisor digit.
			x2, x1 := digitMul(qhat, vn2)
			ujn2 := u[j+n-2]
			for productGreaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prevRhat := rhat
				rhat += vn1
				// rhat overflowed, so rhat:ujn2 now exceeds any two-digit product.
				if rhat < prevRhat {
					break
				}
				x2, x1 = digitMul(qhat, vn2)
			}
		}

		// D4: subtract qhat·v from the window.
		qhatv[n] = mulAddVWW(qhatv[:n], v, qhat, 0)
		qhl := len(qhatv)
		if j+qhl > len(u) && qhatv[n] == 0 {
			qhl--
		}
		c := subVV(u[j:j+qhl], u[j:], qhatv)
		if c != 0 {
			// D6: qhat was one too large; add v back once.
			c := addVV(u[j:j+n], u[j:], v)
			if n < qhl {
				u[j+n] += c
			}
			qhat--
		}

		// D5: store the quotient digit.
		if len(q) > 0 {
			if j < len(q) {
				q[j] = qhat
			} else {
				invariant(qhat == 0, "divBasic: quotient digit outside the output")
			}
		}

		p.addWorkEstimate(n)
		if p.shouldTerminate() {
			return
		}
	}
}
