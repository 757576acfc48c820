package bigint

import "math/bits"

const conversionChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// maxBitsPerChar[r] is ceil(log2(r)·bitsPerCharMultiplier): an upper bound
// on the information one character of radix r carries, in 1/32 bits.
var maxBitsPerChar = [...]uint8{
	0, 0, 32, 51, 64, 75, 83, 90, 96, 102, 107, 111, 115, 119, 122, 126, 128,
	131, 134, 136, 139, 141, 143, 145, 147, 149, 151, 153, 154, 156, 158, 159,
	160, 162, 163, 165, 166,
}

const bitsPerCharMultiplier = 32

func isPowerOfTwo(radix int) bool { return radix&(radix-1) == 0 }

func requireRadix(op string, radix int) {
	require(radix >= 2 && radix <= 36, op, "radix %d outside 2..36", radix)
}

// ToStringResultLength returns the output capacity ToString needs to
// format x in the given radix. It is exact for powers of two and an upper
// bound otherwise.
func ToStringResultLength(x Digits, radix int, sign bool) int {
	requireRadix("ToStringResultLength", radix)
	bitLength := x.BitLength()
	signChars := 0
	if sign {
		signChars = 1
	}
	if bitLength == 0 {
		return 1 + signChars
	}
	if isPowerOfTwo(radix) {
		bitsPerChar := bits.TrailingZeros(uint(radix))
		return (bitLength+bitsPerChar-1)/bitsPerChar + signChars
	}
	// The least information a character may carry gives the most characters.
	minBitsPerChar := uint64(maxBitsPerChar[radix]) - 1
	chars := (uint64(bitLength)*bitsPerCharMultiplier + minBitsPerChar - 1) / minBitsPerChar
	return int(chars) + signChars
}

// ToString formats x in the given radix into out, with a leading '-' when
// sign is set, and returns the number of bytes written at the start of
// out. out needs ToStringResultLength(x, radix, sign) bytes. When the
// processor is interrupted the returned length and contents are
// meaningless.
func (p *Processor) ToString(out []byte, x Digits, radix int, sign bool) int {
	requireRadix("ToString", radix)
	x = x.Normalize()
	need := ToStringResultLength(x, radix, sign)
	require(len(out) >= need, "ToString", "output has %d bytes, need %d", len(out), need)

	f := toStringFormatter{p: p, out: out, pos: len(out), radix: radix}
	switch {
	case len(x) == 0:
		f.write('0')
	case isPowerOfTwo(radix):
		f.powerOfTwo(x)
	default:
		f.chunkChars = DigitBits * bitsPerCharMultiplier / int(maxBitsPerChar[radix])
		f.chunkDivisor = digitPow(Digit(radix), f.chunkChars)
		if len(x) >= p.config.ToStringFastThreshold {
			f.fast(x)
		} else {
			f.classic(x, 0)
		}
	}
	if p.shouldTerminate() {
		return 0
	}
	return f.finish(sign)
}

// digitPow returns base^exp, which must fit in a digit.
func digitPow(base Digit, exp int) Digit {
	result := Digit(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}

// toStringFormatter writes characters backwards from the end of out.
type toStringFormatter struct {
	p            *Processor
	out          []byte
	pos          int
	radix        int
	chunkChars   int
	chunkDivisor Digit
	levels       []toStringLevel
}

// toStringLevel is one divisor of the fast algorithm: radix^chars.
type toStringLevel struct {
	divisor Digits
	chars   int
}

func (f *toStringFormatter) write(c byte) {
	f.pos--
	f.out[f.pos] = c
}

// finish strips leading zeros, adds the sign and moves the result to the
// start of out.
func (f *toStringFormatter) finish(sign bool) int {
	for f.pos < len(f.out)-1 && f.out[f.pos] == '0' {
		f.pos++
	}
	if sign {
		f.write('-')
	}
	n := copy(f.out, f.out[f.pos:])
	return n
}

// middle writes chunk as exactly chunkChars characters.
func (f *toStringFormatter) middle(chunk Digit) {
	r := Digit(f.radix)
	for i := 0; i < f.chunkChars; i++ {
		f.write(conversionChars[chunk%r])
		chunk /= r
	}
}

// last writes d without leading zeros.
func (f *toStringFormatter) last(d Digit) {
	r := Digit(f.radix)
	for d != 0 {
		f.write(conversionChars[d%r])
		d /= r
	}
}

// classic writes x by repeated division by chunkDivisor. With pad > 0 the
// output is left-padded with zeros to exactly pad characters.
func (f *toStringFormatter) classic(x Digits, pad int) {
	start := f.pos
	x = x.Normalize()
	if len(x) > 1 {
		rest := acquireDigits(len(x))
		defer releaseDigits(rest)
		copy(rest, x)
		top := len(x) - 1
		for top > 0 {
			chunk := f.p.DivideSingle(rest[:top+1], Digits(rest[:top+1]), f.chunkDivisor)
			f.middle(chunk)
			if rest[top] == 0 {
				top--
			}
			if f.p.shouldTerminate() {
				return
			}
		}
		f.last(rest[0])
	} else if len(x) == 1 {
		f.last(x[0])
	}
	if pad > 0 {
		invariant(start-f.pos <= pad, "toString: chunk longer than its padding")
		for start-f.pos < pad {
			f.write('0')
		}
	}
}

// fast writes x by recursive division: x = left·D + right where D is a
// power of the radix with about half the digits of x, and right is padded
// to the full character count of D.
func (f *toStringFormatter) fast(x Digits) {
	f.levels = append(f.levels, toStringLevel{divisor: Digits{f.chunkDivisor}, chars: f.chunkChars})
	for {
		top := f.levels[len(f.levels)-1]
		if 2*len(top.divisor) > len(x) {
			break
		}
		sq := make(RWDigits, 2*len(top.divisor))
		f.p.Multiply(sq, top.divisor, top.divisor)
		if f.p.shouldTerminate() {
			return
		}
		f.levels = append(f.levels, toStringLevel{divisor: Digits(sq).Normalize(), chars: 2 * top.chars})
	}
	f.process(x, len(f.levels)-1, 0)
}

// process writes x using levels up to level. pad is the exact character
// count for x, or zero for the most significant part.
func (f *toStringFormatter) process(x Digits, level int, pad int) {
	x = x.Normalize()
	for level >= 0 && compareDigits(x, f.levels[level].divisor) < 0 {
		level--
	}
	if level < 0 || len(x) <= 1 {
		f.classic(x, pad)
		return
	}

	d := f.levels[level].divisor
	left := acquireDigits(len(x) - len(d) + 1)
	defer releaseDigits(left)
	right := acquireDigits(len(d))
	defer releaseDigits(right)
	f.p.Divide(left, right, x, d)
	if f.p.shouldTerminate() {
		return
	}

	f.process(Digits(right), level-1, f.levels[level].chars)
	if f.p.shouldTerminate() {
		return
	}
	leftPad := 0
	if pad > 0 {
		leftPad = pad - f.levels[level].chars
	}
	f.process(Digits(left), level-1, leftPad)
}

// powerOfTwo extracts bit groups directly.
func (f *toStringFormatter) powerOfTwo(x Digits) {
	bitsPerChar := bits.TrailingZeros(uint(f.radix))
	charMask := Digit(f.radix - 1)
	var digit Digit
	// available counts the unprocessed bits in digit.
	available := 0
	for i := 0; i < len(x)-1; i++ {
		next := x[i]
		f.write(conversionChars[(digit|next<<available)&charMask])
		consumed := bitsPerChar - available
		digit = next >> consumed
		available = DigitBits - consumed
		for available >= bitsPerChar {
			f.write(conversionChars[digit&charMask])
			digit >>= bitsPerChar
			available -= bitsPerChar
		}
	}
	msd := x[len(x)-1]
	f.write(conversionChars[(digit|msd<<available)&charMask])
	digit = msd >> (bitsPerChar - available)
	for digit != 0 {
		f.write(conversionChars[digit&charMask])
		digit >>= bitsPerChar
	}
	f.p.addWorkEstimate(len(x))
}
