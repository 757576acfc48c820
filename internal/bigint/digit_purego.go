//go:build bigint_purego

package bigint

func digitAdd2(a, b Digit) (sum, carry Digit) { return digitAdd2Compare(a, b) }

func digitAdd3(a, b, c Digit) (sum, carry Digit) { return digitAdd3Compare(a, b, c) }

func digitSub(a, b Digit) (diff, borrow Digit) { return digitSubCompare(a, b) }

func digitSub2(a, b, borrowIn Digit) (diff, borrowOut Digit) {
	return digitSub2Compare(a, b, borrowIn)
}

func digitMul(a, b Digit) (low, high Digit) { return digitMulHalves(a, b) }

func digitDiv(high, low, divisor Digit) (quotient, remainder Digit) {
	checkDigitDiv(high, divisor)
	return digitDivHalves(high, low, divisor)
}

const nativeDigitArith = false
