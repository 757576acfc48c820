package bigint

import "math/bits"

// ─────────────────────────────────────────────────────────────────────────────
// Reciprocal
// ─────────────────────────────────────────────────────────────────────────────

// maxInvertCorrections bounds the unit corrections after a Newton step.
const maxInvertCorrections = 16

// InvertScratchSpace returns the scratch length Invert needs for an n-digit
// divisor. A Newton level on n digits holds about 7.5n+11 digits and
// recurses on ceil(n/2) digits; the direct computation needs 2n+1.
func InvertScratchSpace(n int) int {
	return 16*n + 32*bits.Len(uint(n))
}

// InvertResultLength returns the length of the reciprocal of an n-digit
// divisor.
func InvertResultLength(n int) int {
	return n + 1
}

// Invert sets z = floor(β^(2n) / v) for an n-digit v with its top bit set,
// where β = 2^DigitBits. The result has n+1 digits. scratch should hold
// InvertScratchSpace(len(v)) digits; a shorter buffer only costs extra
// allocations.
func (p *Processor) Invert(z RWDigits, v Digits, scratch RWDigits) {
	v = v.Normalize()
	n := len(v)
	require(n > 0 && v[n-1]>>(DigitBits-1) == 1, "Invert", "divisor top bit must be set")
	require(len(z) >= n+1, "Invert", "output has %d digits, need %d", len(z), n+1)
	ar := arenaOver(scratch)
	defer ar.release()
	p.invert(z, v, ar)
}

// invert dispatches between the direct and the Newton computation.
func (p *Processor) invert(z RWDigits, v Digits, ar *arena) {
	if len(v) < p.config.NewtonInversionThreshold {
		p.invertBasic(z, v, ar)
		return
	}
	p.invertNewton(z, v, ar)
}

// invertBasic divides β^(2n) by v.
func (p *Processor) invertBasic(z RWDigits, v Digits, ar *arena) {
	mark := ar.mark()
	defer ar.reset(mark)
	n := len(v)
	pow := ar.alloc(2*n + 1)
	pow[2*n] = 1
	p.Divide(z, nil, Digits(pow), v)
}

// invertNewton computes the reciprocal of the top h = ceil(n/2) digits by
// recursion, scales it to x0 = xh·β^(n-h), takes one Newton step
//
//	x1 = x0 + x0·(β^(2n) - v·x0) / β^(2n)
//
// and corrects x1 by at most a few units so that 0 <= β^(2n) - v·x1 < v.
func (p *Processor) invertNewton(z RWDigits, v Digits, ar *arena) {
	mark := ar.mark()
	defer ar.reset(mark)

	n := len(v)
	h := n - n/2
	l := n - h

	xh := ar.alloc(h + 1)
	p.invert(xh, v[l:], ar)
	if p.shouldTerminate() {
		return
	}

	// e = β^(n+h) - v·xh, so that β^(2n) - v·x0 = e·β^l.
	t := ar.alloc(n + h + 1)
	p.Multiply(t, v, Digits(xh))
	if p.shouldTerminate() {
		return
	}
	pow := ar.alloc(n + h + 1)
	pow[n+h] = 1
	e := &signed{mag: ar.alloc(n + h + 1)}
	e.setSum(Digits(pow), false, Digits(t), true)

	// x1 = xh·β^l ± floor(xh·|e| / β^(2h)).
	prod := ar.alloc(n + 2*h + 2)
	p.Multiply(prod, Digits(xh), e.value())
	if p.shouldTerminate() {
		return
	}
	correction := Digits(prod[2*h:])
	z = z[:n+1]
	z.Clear()
	copy(z[l:], xh)
	if e.neg {
		c := subAt(z, correction, 0)
		invariant(c == 0, "invertNewton: negative estimate")
	} else {
		c := addAt(z, correction, 0)
		invariant(c == 0, "invertNewton: estimate overflow")
	}

	// Exact correction against β^(2n).
	vx := ar.alloc(2*n + 2)
	p.Multiply(vx, v, Digits(z))
	if p.shouldTerminate() {
		return
	}
	target := ar.alloc(2*n + 2)
	target[2*n] = 1
	steps := 0
	for compareDigits(Digits(vx), Digits(target)) > 0 {
		steps++
		invariant(steps <= maxInvertCorrections, "invertNewton: estimate too far above the reciprocal")
		subtract(vx, Digits(vx), v)
		subVW(z, z, 1)
	}
	diff := ar.alloc(2*n + 2)
	for {
		subtract(diff, Digits(target), Digits(vx))
		if compareDigits(Digits(diff), v) < 0 {
			break
		}
		steps++
		invariant(steps <= maxInvertCorrections, "invertNewton: estimate too far below the reciprocal")
		add(vx, Digits(vx), v)
		addVW(z, z, 1)
	}
	p.addWorkEstimate((steps + 4) * n)
}

// ─────────────────────────────────────────────────────────────────────────────
// Barrett Division
// ─────────────────────────────────────────────────────────────────────────────

// DivideBarrett sets q = a / b and r = a % b using the precomputed
// reciprocal of the normalized divisor. Dividends of up to 2n digits take
// one Barrett step; longer ones are consumed n digits at a time from the
// top, carrying the remainder into the next step. The buffer contract is
// the one of DivideSchoolbook.
func (p *Processor) DivideBarrett(q, r RWDigits, a, b Digits) {
	a = a.Normalize()
	b = b.Normalize()
	require(len(b) >= 2, "DivideBarrett", "divisor has %d digits, need at least 2", len(b))
	require(len(a) >= len(b), "DivideBarrett", "dividend shorter than divisor")
	require(len(q) == 0 || len(q) >= quotientLength(a, b), "DivideBarrett", "quotient has %d digits, need %d", len(q), quotientLength(a, b))
	require(len(r) == 0 || len(r) >= len(b), "DivideBarrett", "remainder has %d digits, need %d", len(r), len(b))

	n := len(b)
	shift := uint(bits.LeadingZeros(uint(b[n-1])))
	v := acquireDigits(n)
	defer releaseDigits(v)
	shlVU(v, b, shift)
	u := acquireDigits(len(a) + 1)
	defer releaseDigits(u)
	u[len(a)] = shlVU(u[:len(a)], a, shift)
	un := Digits(u).Normalize()

	scratch := acquireDigits(InvertScratchSpace(n))
	defer releaseDigits(scratch)
	mu := acquireDigits(n + 1)
	defer releaseDigits(mu)
	p.Invert(mu, Digits(v), scratch)
	if p.shouldTerminate() {
		return
	}

	ar := newArena(12*n + 16)
	defer ar.release()
	rem := ar.alloc(n)

	if len(un) <= 2*n {
		qq := ar.alloc(n + 1)
		p.barrettStep(qq, rem, un, Digits(v), Digits(mu), ar)
		if p.shouldTerminate() {
			return
		}
		storeQuotient(q, Digits(qq))
	} else {
		chunks := (len(un) + n - 1) / n
		qq := acquireDigits(chunks*n + 1)
		defer releaseDigits(qq)
		cur := ar.alloc(2 * n)
		qstep := ar.alloc(n + 1)
		for i := chunks - 1; i >= 0; i-- {
			// cur = rem·β^n + u[i·n : (i+1)·n], which is below v·β^n.
			chunk := un[i*n : min((i+1)*n, len(un))]
			copyDigits(cur[:n], chunk)
			copy(cur[n:], rem)
			p.barrettStep(qstep, rem, Digits(cur), Digits(v), Digits(mu), ar)
			if p.shouldTerminate() {
				return
			}
			c := addAt(qq, Digits(qstep), i*n)
			invariant(c == 0, "DivideBarrett: quotient carry")
		}
		storeQuotient(q, Digits(qq))
	}
	if len(r) > 0 {
		rightShift(r, Digits(rem), shift)
	}
}

// barrettStep sets q = a / v and r = a % v for a < β^(2n), given the
// reciprocal mu = floor(β^(2n) / v). q needs n+1 digits and r n digits.
// The quotient estimate floor(floor(a/β^(n-1))·mu / β^(n+1)) is at most two
// below the true quotient.
func (p *Processor) barrettStep(q, r RWDigits, a, v, mu Digits, ar *arena) {
	mark := ar.mark()
	defer ar.reset(mark)

	n := len(v)
	a = a.Normalize()
	q.Clear()
	if len(a) < n {
		copyDigits(r, a)
		return
	}

	q1 := a[n-1:]
	q2 := ar.alloc(len(q1) + len(mu))
	p.Multiply(q2, q1, mu)
	if p.shouldTerminate() {
		return
	}
	q3 := Digits(q2[min(n+1, len(q2)):]).Normalize()
	copyDigits(q, q3)

	qv := ar.alloc(len(q3) + n)
	p.Multiply(qv, q3, v)
	if p.shouldTerminate() {
		return
	}
	rr := ar.alloc(len(a) + 1)
	subtract(rr, a, Digits(qv))
	for i := 0; greaterThanOrEqual(Digits(rr), v); i++ {
		invariant(i < 2, "barrettStep: quotient estimate too small")
		subtract(rr, Digits(rr), v)
		c := addVW(q, q, 1)
		invariant(c == 0, "barrettStep: quotient overflow")
	}
	copyDigits(r, Digits(rr))
	p.addWorkEstimate(2 * n)
}
