package bigint

// FromString sets z to the value collected by acc. z needs
// acc.ResultLength() digits and is zero-filled beyond the value. acc must
// not have exceeded its maximum size.
func (p *Processor) FromString(z RWDigits, acc *FromStringAccumulator) {
	require(acc.Result() == AccumulatorOK, "FromString", "accumulator result is %s", acc.Result())
	require(len(z) >= acc.ResultLength(), "FromString", "output has %d digits, need %d", len(z), acc.ResultLength())
	switch {
	case len(acc.parts) == 0:
		z.Clear()
	case isPowerOfTwo(acc.radix):
		p.fromStringPowerOfTwo(z, acc)
	case len(acc.parts) == 1:
		z.Clear()
		z[0] = acc.parts[0]
	case len(acc.parts) < p.config.FromStringLargeThreshold:
		p.fromStringClassic(z, acc)
	default:
		p.fromStringLarge(z, acc)
	}
}

// fromStringClassic evaluates z = z·multiplier + part from the most
// significant part down.
func (p *Processor) fromStringClassic(z RWDigits, acc *FromStringAccumulator) {
	z.Clear()
	z[0] = acc.parts[0]
	length := 1
	last := len(acc.parts) - 1
	for i := 1; i <= last; i++ {
		multiplier := acc.maxMultiplier
		if i == last {
			multiplier = acc.lastMultiplier
		}
		c := mulAddVWW(z[:length], z[:length], multiplier, acc.parts[i])
		if c != 0 {
			z[length] = c
			length++
		}
		p.addWorkEstimate(length)
		if p.shouldTerminate() {
			return
		}
	}
}

// fromStringLarge combines neighbouring groups pairwise, least significant
// first: hi·M + lo. All groups share the multiplier M, except the lowest,
// which holds the short last part and uses its own multiplier S. After
// each round S becomes S·M and M becomes M².
func (p *Processor) fromStringLarge(z RWDigits, acc *FromStringAccumulator) {
	n := len(acc.parts)
	groups := make([]Digits, n)
	for i, part := range acc.parts {
		groups[n-1-i] = Digits{part}
	}
	s := Digits{acc.lastMultiplier}
	m := Digits{acc.maxMultiplier}

	for len(groups) > 1 {
		next := make([]Digits, (len(groups)+1)/2)
		for i := 0; i+1 < len(groups); i += 2 {
			multiplier := m
			if i == 0 {
				multiplier = s
			}
			lo, hi := groups[i], groups[i+1]
			combined := make(RWDigits, len(hi)+len(multiplier))
			p.Multiply(combined, hi, multiplier)
			if p.shouldTerminate() {
				return
			}
			c := addAt(combined, lo, 0)
			invariant(c == 0, "fromStringLarge: carry out of a group")
			next[i/2] = Digits(combined).Normalize()
		}
		if len(groups)%2 == 1 {
			next[len(next)-1] = groups[len(groups)-1]
		}
		if len(next) > 1 {
			sm := make(RWDigits, len(s)+len(m))
			p.Multiply(sm, s, m)
			mm := make(RWDigits, 2*len(m))
			p.Multiply(mm, m, m)
			if p.shouldTerminate() {
				return
			}
			s, m = Digits(sm).Normalize(), Digits(mm).Normalize()
		}
		groups = next
	}
	copyDigits(z, groups[0])
}

// fromStringPowerOfTwo packs the bit groups of the parts, starting from
// the least significant part.
func (p *Processor) fromStringPowerOfTwo(z RWDigits, acc *FromStringAccumulator) {
	z.Clear()
	bitsPerPart := acc.charsPerPart * acc.bitsPerChar
	pos := 0
	for i := len(acc.parts) - 1; i >= 0; i-- {
		width := bitsPerPart
		if i == len(acc.parts)-1 {
			width = acc.lastChars * acc.bitsPerChar
		}
		part := acc.parts[i]
		w, b := pos/DigitBits, pos%DigitBits
		z[w] |= part << b
		if b != 0 && b+width > DigitBits {
			z[w+1] |= part >> (DigitBits - b)
		}
		pos += width
	}
	p.addWorkEstimate(len(acc.parts))
}
