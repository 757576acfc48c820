// This file provides vector arithmetic on digit slices, composed from the
// digit primitives.

package bigint

// ─────────────────────────────────────────────────────────────────────────────
// Word-vector kernels
// ─────────────────────────────────────────────────────────────────────────────

// The kernels below follow the math/big conventions: they operate on the
// first len(z) digits, x and y must be at least that long, and z may alias
// x or y.

// addVV sets z = x + y and returns the carry.
func addVV(z, x, y []Digit) (c Digit) {
	for i := range z {
		z[i], c = digitAdd3(x[i], y[i], c)
	}
	return c
}

// subVV sets z = x - y and returns the borrow.
func subVV(z, x, y []Digit) (c Digit) {
	for i := range z {
		z[i], c = digitSub2(x[i], y[i], c)
	}
	return c
}

// addVW sets z = x + y for a single digit y and returns the carry.
func addVW(z, x []Digit, y Digit) (c Digit) {
	c = y
	for i := range z {
		z[i], c = digitAdd2(x[i], c)
	}
	return c
}

// subVW sets z = x - y for a single digit y and returns the borrow.
func subVW(z, x []Digit, y Digit) (c Digit) {
	c = y
	for i := range z {
		z[i], c = digitSub(x[i], c)
	}
	return c
}

// shlVU sets z = x << s for s < DigitBits and returns the bits shifted out.
// It walks downwards so z may equal x.
func shlVU(z, x []Digit, s uint) (c Digit) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	ŝ := DigitBits - s
	c = x[len(z)-1] >> ŝ
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return c
}

// shrVU sets z = x >> s for s < DigitBits and returns the bits shifted out,
// in the high end of the result. It walks upwards so z may equal x.
func shrVU(z, x []Digit, s uint) (c Digit) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	ŝ := DigitBits - s
	c = x[0] << ŝ
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return c
}

// mulAddVWW sets z = x*y + r and returns the high digit.
func mulAddVWW(z, x []Digit, y, r Digit) (c Digit) {
	c = r
	for i := range z {
		low, high := digitMul(x[i], y)
		var carry Digit
		z[i], carry = digitAdd2(low, c)
		c = high + carry
	}
	return c
}

// addMulVVW sets z += x*y and returns the high digit.
func addMulVVW(z, x []Digit, y Digit) (c Digit) {
	for i := range z {
		low, high := digitMul(x[i], y)
		sum, c1 := digitAdd2(low, z[i])
		sum, c2 := digitAdd2(sum, c)
		z[i] = sum
		c = high + c1 + c2
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Magnitude helpers
// ─────────────────────────────────────────────────────────────────────────────

// compareDigits returns -1, 0 or +1 as a is less than, equal to or greater
// than b. Leading zeros are ignored.
func compareDigits(a, b Digits) int {
	a = a.Normalize()
	b = b.Normalize()
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// greaterThanOrEqual reports whether a >= b.
func greaterThanOrEqual(a, b Digits) bool {
	return compareDigits(a, b) >= 0
}

// copyDigits writes x into z and zero-fills the rest of z.
func copyDigits(z RWDigits, x Digits) {
	x = x.Normalize()
	require(len(z) >= len(x), "copy", "output has %d digits, value needs %d", len(z), len(x))
	copy(z, x)
	z.clearFrom(len(x))
}

// addAndReturnCarry sets z = x + y over len(z) digits, where x and y may be
// shorter than z, and returns the carry out of z.
func addAndReturnCarry(z RWDigits, x, y Digits) Digit {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) > len(z) {
		y = y[:len(z)]
	}
	if len(x) > len(z) {
		x = x[:len(z)]
	}
	c := addVV(z[:len(y)], x, y)
	c = addVW(z[len(y):len(x)], x[len(y):], c)
	if len(x) < len(z) {
		z[len(x)] = c
		z.clearFrom(len(x) + 1)
		return 0
	}
	return c
}

// add sets z = x + y and zero-fills the rest of z. The sum must fit in z.
func add(z RWDigits, x, y Digits) {
	c := addAndReturnCarry(z, x.Normalize(), y.Normalize())
	invariant(c == 0, "add: sum does not fit the output")
}

// subtractAndReturnBorrow sets z = x - y over len(z) digits, where x and y
// may be shorter than z, and returns the borrow out of z.
func subtractAndReturnBorrow(z RWDigits, x, y Digits) Digit {
	var c Digit
	i := 0
	for ; i < len(z); i++ {
		var xi, yi Digit
		if i < len(x) {
			xi = x[i]
		}
		if i < len(y) {
			yi = y[i]
		}
		if i >= len(x) && i >= len(y) && c == 0 {
			break
		}
		z[i], c = digitSub2(xi, yi, c)
	}
	z.clearFrom(i)
	return c
}

// subtract sets z = x - y for x >= y and zero-fills the rest of z.
func subtract(z RWDigits, x, y Digits) {
	x = x.Normalize()
	y = y.Normalize()
	c := subtractAndReturnBorrow(z, x, y)
	invariant(c == 0, "subtract: negative difference")
}

// addAt adds x into z starting at digit i, propagating the carry towards the
// top of z. It returns the carry out of z.
func addAt(z RWDigits, x Digits, i int) Digit {
	x = x.Normalize()
	if len(x) == 0 {
		return 0
	}
	top := z[i:]
	if len(x) > len(top) {
		// Only zero digits may fall outside z.
		for _, d := range x[len(top):] {
			invariant(d == 0, "addAt: value exceeds output")
		}
		x = x[:len(top)]
	}
	c := addVV(top[:len(x)], top, x)
	if c != 0 {
		c = addVW(top[len(x):], top[len(x):], c)
	}
	return c
}

// subAt subtracts x from z starting at digit i, propagating the borrow
// towards the top of z. It returns the borrow out of z.
func subAt(z RWDigits, x Digits, i int) Digit {
	x = x.Normalize()
	if len(x) == 0 {
		return 0
	}
	top := z[i:]
	c := subVV(top[:len(x)], top, x)
	if c != 0 {
		c = subVW(top[len(x):], top[len(x):], c)
	}
	return c
}

// leftShift sets z = x << shift for shift < DigitBits and zero-fills the
// rest of z. It requires len(z) >= len(x); the bits shifted out of x go to
// z[len(x)], which must exist unless they are zero.
func leftShift(z RWDigits, x Digits, shift uint) {
	c := shlVU(z[:len(x)], x, shift)
	if len(z) > len(x) {
		z[len(x)] = c
		z.clearFrom(len(x) + 1)
		return
	}
	invariant(c == 0, "leftShift: result does not fit the output")
}

// rightShift sets z = x >> shift for shift < DigitBits and zero-fills the
// rest of z. Digits of the result beyond len(z) must be zero.
func rightShift(z RWDigits, x Digits, shift uint) {
	x = x.Normalize()
	n := min(len(z), len(x))
	for i := 0; i < n; i++ {
		d := x[i] >> shift
		if i+1 < len(x) && shift != 0 {
			d |= x[i+1] << (DigitBits - shift)
		}
		z[i] = d
	}
	if len(x) > len(z) {
		invariant(len(x) == len(z)+1 && x[len(z)]>>shift == 0, "rightShift: result does not fit the output")
	}
	z.clearFrom(n)
}
