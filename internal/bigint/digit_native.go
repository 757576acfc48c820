//go:build !bigint_purego

package bigint

import "math/bits"

// Native digit primitives map onto math/bits, which the compiler lowers to
// carry-flag arithmetic and the double-width MUL/DIV instructions.

func digitAdd2(a, b Digit) (sum, carry Digit) {
	s, c := bits.Add(uint(a), uint(b), 0)
	return Digit(s), Digit(c)
}

func digitAdd3(a, b, c Digit) (sum, carry Digit) {
	s, c1 := bits.Add(uint(a), uint(b), 0)
	s, c2 := bits.Add(s, uint(c), 0)
	return Digit(s), Digit(c1 + c2)
}

func digitSub(a, b Digit) (diff, borrow Digit) {
	d, bo := bits.Sub(uint(a), uint(b), 0)
	return Digit(d), Digit(bo)
}

func digitSub2(a, b, borrowIn Digit) (diff, borrowOut Digit) {
	d, bo := bits.Sub(uint(a), uint(b), uint(borrowIn))
	return Digit(d), Digit(bo)
}

func digitMul(a, b Digit) (low, high Digit) {
	hi, lo := bits.Mul(uint(a), uint(b))
	return Digit(lo), Digit(hi)
}

func digitDiv(high, low, divisor Digit) (quotient, remainder Digit) {
	checkDigitDiv(high, divisor)
	q, r := bits.Div(uint(high), uint(low), uint(divisor))
	return Digit(q), Digit(r)
}

// nativeDigitArith reports whether the hardware primitives are in use.
const nativeDigitArith = true
