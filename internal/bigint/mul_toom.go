package bigint

// toomScratchSpace returns the arena size needed by a Toom-3
// multiplication whose longer operand has n digits.
func toomScratchSpace(n int) int {
	return 12*n + 256
}

// MultiplyToomCook sets z = x * y with Toom-3 multiplication, falling back
// to Karatsuba below Config.ToomThreshold. It requires
// len(z) >= len(x)+len(y) after normalization and zero-fills the rest of z.
func (p *Processor) MultiplyToomCook(z RWDigits, x, y Digits) {
	x = x.Normalize()
	y = y.Normalize()
	require(len(z) >= len(x)+len(y), "MultiplyToomCook", "output has %d digits, need %d", len(z), len(x)+len(y))
	n := max(len(x), len(y))
	ar := newArena(toomScratchSpace(n) + karatsubaScratchSpace(n))
	defer ar.release()
	p.toom3(z, x, y, ar)
}

// signed is a signed magnitude over a fixed-length digit buffer. Toom-3
// interpolation passes through negative intermediate values.
type signed struct {
	mag RWDigits
	neg bool
}

// setSum sets s = (-1)^aNeg·a + (-1)^bNeg·b. s.mag may alias a or b and must
// be long enough to hold the result.
func (s *signed) setSum(a Digits, aNeg bool, b Digits, bNeg bool) {
	switch {
	case aNeg == bNeg:
		add(s.mag, a, b)
		s.neg = aNeg
	case greaterThanOrEqual(a, b):
		subtract(s.mag, a, b)
		s.neg = aNeg
	default:
		subtract(s.mag, b, a)
		s.neg = bNeg
	}
	if Digits(s.mag).IsZero() {
		s.neg = false
	}
}

// value returns the magnitude as a read view.
func (s *signed) value() Digits { return Digits(s.mag) }

// toomEvaluate evaluates a0 + a1·t + a2·t² at t = 1, -1 and -2 following
// Bodrato's sequence:
//
//	p0 = a0 + a2, p(1) = p0 + a1, p(-1) = p0 - a1, p(-2) = 2(p(-1) + a2) - a0
func toomEvaluate(p1 RWDigits, pm1, pm2 *signed, a0, a1, a2 Digits) {
	pm2.mag.Clear()
	add(pm2.mag, a0, a2)
	p0 := pm2.value()
	add(p1, p0, a1)
	pm1.setSum(p0, false, a1, true)
	pm2.setSum(pm1.value(), pm1.neg, a2, false)
	leftShift(pm2.mag, pm2.value().Normalize(), 1)
	pm2.setSum(pm2.value(), pm2.neg, a0, true)
}

// toom3 splits both operands into three k-digit parts, evaluates them at
// 0, 1, -1, -2 and infinity, multiplies pointwise and interpolates:
//
//	r3 = (r(-2) - r(1)) / 3
//	r1 = (r(1) - r(-1)) / 2
//	r2 = r(-1) - r(0)
//	r3 = (r2 - r3) / 2 + 2·r(inf)
//	r2 = r2 + r1 - r(inf)
//	r1 = r1 - r3
func (p *Processor) toom3(z RWDigits, x, y Digits, ar *arena) {
	x = x.Normalize()
	y = y.Normalize()
	if len(x) < len(y) {
		x, y = y, x
	}
	switch {
	case len(y) < p.config.ToomThreshold:
		p.karatsuba(z, x, y, ar)
		return
	case len(x) >= 2*len(y):
		p.multiplyChunked(z, x, y, ar, p.toom3)
		return
	}

	mark := ar.mark()
	defer ar.reset(mark)

	k := (len(x) + 2) / 3
	x0, x1, x2 := splitThree(x, k)
	y0, y1, y2 := splitThree(y, k)

	evalLen := k + 2
	px1 := ar.alloc(evalLen)
	pxm1 := &signed{mag: ar.alloc(evalLen)}
	pxm2 := &signed{mag: ar.alloc(evalLen)}
	qy1 := ar.alloc(evalLen)
	qym1 := &signed{mag: ar.alloc(evalLen)}
	qym2 := &signed{mag: ar.alloc(evalLen)}
	toomEvaluate(px1, pxm1, pxm2, x0, x1, x2)
	toomEvaluate(qy1, qym1, qym2, y0, y1, y2)
	p.addWorkEstimate(12 * k)

	prodLen := 2*k + 4
	r0 := ar.alloc(prodLen)
	r1 := &signed{mag: ar.alloc(prodLen)}
	rm1 := &signed{mag: ar.alloc(prodLen)}
	rm2 := &signed{mag: ar.alloc(prodLen)}
	rinf := ar.alloc(prodLen)

	p.toom3(r0, x0, y0, ar)
	if p.shouldTerminate() {
		return
	}
	p.toom3(r1.mag, Digits(px1), Digits(qy1), ar)
	if p.shouldTerminate() {
		return
	}
	p.toom3(rm1.mag, pxm1.value(), qym1.value(), ar)
	rm1.neg = pxm1.neg != qym1.neg && !rm1.value().IsZero()
	if p.shouldTerminate() {
		return
	}
	p.toom3(rm2.mag, pxm2.value(), qym2.value(), ar)
	rm2.neg = pxm2.neg != qym2.neg && !rm2.value().IsZero()
	if p.shouldTerminate() {
		return
	}
	p.toom3(rinf, x2, y2, ar)
	if p.shouldTerminate() {
		return
	}

	r3 := &signed{mag: ar.alloc(prodLen)}
	r3.setSum(rm2.value(), rm2.neg, r1.value(), true)
	rem := p.DivideSingle(r3.mag, r3.value(), 3)
	invariant(rem == 0, "toom3: inexact division by 3")

	r1.setSum(r1.value(), false, rm1.value(), !rm1.neg)
	invariant(r1.mag[0]&1 == 0, "toom3: inexact halving of r1")
	rightShift(r1.mag, r1.value(), 1)

	r2 := &signed{mag: ar.alloc(prodLen)}
	r2.setSum(rm1.value(), rm1.neg, Digits(r0), true)

	r3.setSum(r2.value(), r2.neg, r3.value(), !r3.neg)
	invariant(r3.mag[0]&1 == 0, "toom3: inexact halving of r3")
	rightShift(r3.mag, r3.value(), 1)
	twoRinf := ar.alloc(prodLen)
	leftShift(twoRinf, Digits(rinf).Normalize(), 1)
	r3.setSum(r3.value(), r3.neg, Digits(twoRinf), false)

	r2.setSum(r2.value(), r2.neg, r1.value(), r1.neg)
	r2.setSum(r2.value(), r2.neg, Digits(rinf), true)

	r1.setSum(r1.value(), r1.neg, r3.value(), !r3.neg)

	invariant(!r1.neg && !r2.neg && !r3.neg, "toom3: negative coefficient")

	copyDigits(z, Digits(r0))
	for i, r := range []Digits{r1.value(), r2.value(), r3.value(), Digits(rinf)} {
		c := addAt(z, r, (i+1)*k)
		invariant(c == 0, "toom3: carry out of the product")
	}
	p.addWorkEstimate(20 * k)
}

// splitThree splits x into parts of k digits, least significant first. The
// upper parts may be short or empty.
func splitThree(x Digits, k int) (Digits, Digits, Digits) {
	lo := min(k, len(x))
	mid := min(2*k, len(x))
	return x[:lo].Normalize(), x[lo:mid].Normalize(), x[mid:]
}
