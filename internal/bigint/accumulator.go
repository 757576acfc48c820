package bigint

import "math/bits"

// AccumulatorResult is the state of a FromStringAccumulator.
type AccumulatorResult int

const (
	// AccumulatorOK means every consumed character was stored.
	AccumulatorOK AccumulatorResult = iota
	// ResultMaxSizeExceeded means the value would need more digits than the
	// accumulator allows. Parsing stops at the first character that does
	// not fit.
	ResultMaxSizeExceeded
)

// String returns the name of the result.
func (r AccumulatorResult) String() string {
	switch r {
	case AccumulatorOK:
		return "ok"
	case ResultMaxSizeExceeded:
		return "max size exceeded"
	default:
		return "unknown"
	}
}

// FromStringAccumulator validates the characters of a literal and groups
// them into parts of one digit each, most significant part first. For a
// radix that is not a power of two a full part holds charsPerPart
// characters and scales the value by maxMultiplier = radix^charsPerPart;
// the last part may be shorter and scales by lastMultiplier. For a power of
// two a part holds whole bit groups.
//
// An accumulator is filled by Parse and consumed by FromString.
type FromStringAccumulator struct {
	maxDigits int
	radix     int
	result    AccumulatorResult

	parts []Digit
	// lastChars counts the characters in the last part.
	lastChars int
	// totalChars counts the characters after leading zeros.
	totalChars int

	charsPerPart   int
	bitsPerChar    int
	maxMultiplier  Digit
	lastMultiplier Digit
}

// NewFromStringAccumulator returns an accumulator that refuses values
// longer than maxDigits digits.
func NewFromStringAccumulator(maxDigits int) *FromStringAccumulator {
	require(maxDigits > 0, "NewFromStringAccumulator", "maxDigits %d must be positive", maxDigits)
	return &FromStringAccumulator{maxDigits: maxDigits}
}

// charValue returns the numeric value of c, or 36 for a character that is
// not a digit in any radix.
func charValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 36
	}
}

func (a *FromStringAccumulator) setRadix(radix int) {
	a.radix = radix
	if isPowerOfTwo(radix) {
		a.bitsPerChar = bits.TrailingZeros(uint(radix))
		a.charsPerPart = DigitBits / a.bitsPerChar
		return
	}
	// The largest power of radix that fits in a digit.
	a.charsPerPart = 0
	a.maxMultiplier = 1
	for {
		hi, lo := bits.Mul(uint(a.maxMultiplier), uint(radix))
		if hi != 0 {
			break
		}
		a.maxMultiplier = Digit(lo)
		a.charsPerPart++
	}
}

// Parse consumes the characters of s that are digits in radix, skipping
// leading zeros, and returns how many bytes were consumed. Parsing stops at
// the first character that is not a digit in radix or that would exceed
// the maximum size; Result reports the latter. Consecutive calls continue
// the same literal and must use the same radix.
func (a *FromStringAccumulator) Parse(s string, radix int) int {
	requireRadix("Parse", radix)
	require(a.radix == 0 || a.radix == radix, "Parse", "radix %d differs from %d", radix, a.radix)
	if a.radix == 0 {
		a.setRadix(radix)
	}
	if a.result != AccumulatorOK {
		return 0
	}

	i := 0
	if a.totalChars == 0 {
		for i < len(s) && s[i] == '0' {
			i++
		}
	}
	for ; i < len(s); i++ {
		d := charValue(s[i])
		if d >= radix {
			break
		}
		if a.digitsFor(a.totalChars+1) > a.maxDigits {
			a.result = ResultMaxSizeExceeded
			break
		}
		if len(a.parts) == 0 || a.lastChars == a.charsPerPart {
			a.parts = append(a.parts, 0)
			a.lastChars = 0
		}
		last := &a.parts[len(a.parts)-1]
		*last = *last*Digit(radix) + Digit(d)
		a.lastChars++
		a.totalChars++
	}
	if !isPowerOfTwo(radix) {
		a.lastMultiplier = digitPow(Digit(radix), a.lastChars)
	}
	return i
}

// digitsFor returns the result length for chars characters.
func (a *FromStringAccumulator) digitsFor(chars int) int {
	if isPowerOfTwo(a.radix) {
		return (chars*a.bitsPerChar + DigitBits - 1) / DigitBits
	}
	return (chars + a.charsPerPart - 1) / a.charsPerPart
}

// Result reports whether the whole input fit.
func (a *FromStringAccumulator) Result() AccumulatorResult { return a.result }

// Radix returns the radix of the parsed characters, or zero before Parse.
func (a *FromStringAccumulator) Radix() int { return a.radix }

// Parts returns the number of digit-sized parts.
func (a *FromStringAccumulator) Parts() int { return len(a.parts) }

// ResultLength returns the output length FromString needs.
func (a *FromStringAccumulator) ResultLength() int {
	if a.radix == 0 {
		return 0
	}
	return a.digitsFor(a.totalChars)
}
