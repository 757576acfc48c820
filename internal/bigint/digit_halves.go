// This file holds the portable digit primitives. They never rely on a
// double-width type or on hardware multiply/divide of two-digit values, and
// back the build that sets the bigint_purego tag.

package bigint

import "math/bits"

// digitAdd2Compare returns a+b and the carry, detecting overflow by
// comparing the wrapped sum with an operand.
func digitAdd2Compare(a, b Digit) (sum, carry Digit) {
	sum = a + b
	if sum < a {
		carry = 1
	}
	return sum, carry
}

// digitAdd3Compare returns a+b+c and the carry (0, 1 or 2).
func digitAdd3Compare(a, b, c Digit) (sum, carry Digit) {
	partial, c1 := digitAdd2Compare(a, b)
	sum, c2 := digitAdd2Compare(partial, c)
	return sum, c1 + c2
}

// digitSubCompare returns a-b and the borrow.
func digitSubCompare(a, b Digit) (diff, borrow Digit) {
	diff = a - b
	if a < b {
		borrow = 1
	}
	return diff, borrow
}

// digitSub2Compare returns a-b-borrowIn and the outgoing borrow. At most one
// of the two subtractions can wrap, so the borrow stays in {0, 1}.
func digitSub2Compare(a, b, borrowIn Digit) (diff, borrowOut Digit) {
	partial, b1 := digitSubCompare(a, b)
	diff, b2 := digitSubCompare(partial, borrowIn)
	return diff, b1 + b2
}

// digitMulHalves returns the double-width product of a and b, computed from
// the four products of their half-digits.
func digitMulHalves(a, b Digit) (low, high Digit) {
	a0 := a & halfDigitMask
	a1 := a >> halfDigitBits
	b0 := b & halfDigitMask
	b1 := b >> halfDigitBits
	w0 := a0 * b0
	t := a1*b0 + w0>>halfDigitBits
	w1 := t & halfDigitMask
	w2 := t >> halfDigitBits
	w1 += a0 * b1
	high = a1*b1 + w2 + w1>>halfDigitBits
	low = a * b
	return low, high
}

// digitDivHalves divides the two-digit value (high, low) by divisor using
// half-digit steps (Hacker's Delight, divlu). The divisor is normalized so
// its top bit is set; each half of the quotient is estimated from the top
// half-digit of the divisor and corrected at most twice.
// It requires high < divisor.
func digitDivHalves(high, low, divisor Digit) (quotient, remainder Digit) {
	s := uint(bits.LeadingZeros(uint(divisor)))
	v := divisor << s
	vn1 := v >> halfDigitBits
	vn0 := v & halfDigitMask

	// Shifting by DigitBits yields 0 in Go, which is the s == 0 case.
	un32 := high<<s | low>>(DigitBits-s)
	un10 := low << s
	un1 := un10 >> halfDigitBits
	un0 := un10 & halfDigitMask

	q1 := un32 / vn1
	rhat := un32 - q1*vn1
	for q1 >= halfDigitBase || q1*vn0 > halfDigitBase*rhat+un1 {
		q1--
		rhat += vn1
		if rhat >= halfDigitBase {
			break
		}
	}

	un21 := un32*halfDigitBase + un1 - q1*v
	q0 := un21 / vn1
	rhat = un21 - q0*vn1
	for q0 >= halfDigitBase || q0*vn0 > halfDigitBase*rhat+un0 {
		q0--
		rhat += vn1
		if rhat >= halfDigitBase {
			break
		}
	}

	return q1*halfDigitBase + q0, (un21*halfDigitBase + un0 - q0*v) >> s
}

// checkDigitDiv panics unless the quotient of (high, low) / divisor fits in
// one digit.
func checkDigitDiv(high, divisor Digit) {
	if divisor == 0 {
		panic(ContractViolation{Op: "digitDiv", Message: "division by zero"})
	}
	if high >= divisor {
		panic(ContractViolation{Op: "digitDiv", Message: "quotient overflows one digit"})
	}
}
