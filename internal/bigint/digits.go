package bigint

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Digit is one positional digit of a magnitude, base 2^DigitBits.
type Digit = big.Word

const (
	// DigitBits is the width of a Digit in bits.
	DigitBits = bits.UintSize
	// MaxDigit is the largest Digit value.
	MaxDigit = ^Digit(0)

	halfDigitBits = DigitBits / 2
	halfDigitBase = Digit(1) << halfDigitBits
	halfDigitMask = halfDigitBase - 1
)

// Digits is a read-only view of a magnitude, least-significant digit first.
// A normalized view has a non-zero most significant digit; the empty view
// is zero. The kernel never writes through a Digits view.
type Digits []Digit

// RWDigits is a writable view whose length is fixed by the caller before an
// operation. Operations write every position up to that length.
type RWDigits []Digit

// Normalize returns d without its leading zero digits.
func (d Digits) Normalize() Digits {
	n := len(d)
	for n > 0 && d[n-1] == 0 {
		n--
	}
	return d[:n]
}

// IsNormalized reports whether d has no leading zero digit.
func (d Digits) IsNormalized() bool {
	return len(d) == 0 || d[len(d)-1] != 0
}

// IsZero reports whether d represents zero.
func (d Digits) IsZero() bool {
	return len(d.Normalize()) == 0
}

// BitLength returns the number of significant bits in d.
func (d Digits) BitLength() int {
	d = d.Normalize()
	if len(d) == 0 {
		return 0
	}
	return (len(d)-1)*DigitBits + bits.Len(uint(d[len(d)-1]))
}

// Clear sets every digit of z to zero.
func (z RWDigits) Clear() {
	clear(z)
}

// clearFrom zero-fills z[from:].
func (z RWDigits) clearFrom(from int) {
	if from < len(z) {
		clear(z[from:])
	}
}

// ContractViolation is the panic value raised when a caller breaks a buffer
// or operand contract.
type ContractViolation struct {
	Op      string
	Message string
}

func (c ContractViolation) Error() string {
	return fmt.Sprintf("bigint: %s: %s", c.Op, c.Message)
}

// require panics with a ContractViolation when cond is false.
func require(cond bool, op, format string, args ...any) {
	if !cond {
		panic(ContractViolation{Op: op, Message: fmt.Sprintf(format, args...)})
	}
}

// invariant panics on an internal consistency failure.
func invariant(cond bool, what string) {
	if !cond {
		panic("bigint: internal invariant violated: " + what)
	}
}

// Compare returns -1, 0 or +1 as a is less than, equal to or greater than
// b. Leading zero digits are ignored.
func Compare(a, b Digits) int { return compareDigits(a, b) }
