package bigint

// schoolbookWorkBatch is the number of digit products accumulated locally
// before they are reported to the Processor.
const schoolbookWorkBatch = 5000

// MultiplySingle sets z = x * d. It requires len(z) >= len(x)+1 and
// zero-fills z beyond the product.
func (p *Processor) MultiplySingle(z RWDigits, x Digits, d Digit) {
	require(len(z) >= len(x)+1, "MultiplySingle", "output has %d digits, need %d", len(z), len(x)+1)
	var carry, high Digit
	for i := 0; i < len(x); i++ {
		low, newHigh := digitMul(x[i], d)
		z[i], carry = digitAdd3(low, high, carry)
		high = newHigh
	}
	p.addWorkEstimate(len(x))
	z[len(x)] = carry + high
	z.clearFrom(len(x) + 1)
}

// columnAccumulator sums the products of one output column. The low halves
// go into the current column (zi, carry) and the high halves directly into
// the next one (next, nextCarry), so no product needs a full-width add.
type columnAccumulator struct {
	zi, carry       Digit
	next, nextCarry Digit
}

// start begins a new column from the carries of the previous one.
func (c *columnAccumulator) start() {
	var carry Digit
	c.zi, carry = digitAdd2(c.next, c.carry)
	c.next = c.nextCarry + carry
	c.carry = 0
	c.nextCarry = 0
}

// body adds x[j]*y[i-j] for j in [lo, hi] to column i.
func (c *columnAccumulator) body(x, y Digits, i, lo, hi int) {
	for j := lo; j <= hi; j++ {
		low, high := digitMul(x[j], y[i-j])
		var carryBit Digit
		c.zi, carryBit = digitAdd2(c.zi, low)
		c.carry += carryBit
		c.next, carryBit = digitAdd2(c.next, high)
		c.nextCarry += carryBit
	}
}

// MultiplySchoolbook sets z = x * y with the column-wise O(n*m) algorithm.
// It requires normalized inputs with len(x) >= len(y) and
// len(z) >= len(x)+len(y), and zero-fills z beyond the product.
func (p *Processor) MultiplySchoolbook(z RWDigits, x, y Digits) {
	require(x.IsNormalized() && y.IsNormalized(), "MultiplySchoolbook", "operands must be normalized")
	require(len(x) >= len(y), "MultiplySchoolbook", "len(x)=%d < len(y)=%d", len(x), len(y))
	require(len(z) >= len(x)+len(y), "MultiplySchoolbook", "output has %d digits, need %d", len(z), len(x)+len(y))
	if len(x) == 0 || len(y) == 0 {
		z.Clear()
		return
	}

	var acc columnAccumulator
	// Column 0 holds a single product.
	z[0], acc.next = digitMul(x[0], y[0])
	i := 1
	// Column 1 has no incoming carry yet.
	if i < len(y) {
		acc.zi = acc.next
		acc.next = 0
		acc.body(x, y, i, 0, 1)
		z[i] = acc.zi
		i++
	}

	work := 0
	flush := func(units int) bool {
		work += units
		if work < schoolbookWorkBatch {
			return false
		}
		p.addWorkEstimate(work)
		work = 0
		return p.shouldTerminate()
	}

	// Ramp-up: the column window grows until y is exhausted.
	for ; i < len(y); i++ {
		acc.start()
		acc.body(x, y, i, 0, i)
		z[i] = acc.zi
		if flush(i + 1) {
			return
		}
	}
	// Steady state: the window covers all of y.
	for ; i < len(x); i++ {
		acc.start()
		acc.body(x, y, i, i-len(y)+1, i)
		z[i] = acc.zi
		if flush(len(y)) {
			return
		}
	}
	// Ramp-down: x is exhausted and the window shrinks.
	last := len(x) + len(y) - 2
	for ; i <= last; i++ {
		maxX := min(i, len(x)-1)
		minX := i - (len(y) - 1)
		acc.start()
		acc.body(x, y, i, minX, maxX)
		z[i] = acc.zi
		if flush(maxX - minX + 1) {
			return
		}
	}
	p.addWorkEstimate(work)

	// The top column only receives carries.
	var carry Digit
	z[i], carry = digitAdd2(acc.next, acc.carry)
	invariant(carry == 0, "MultiplySchoolbook: carry out of the top column")
	i++
	z.clearFrom(i)
}
