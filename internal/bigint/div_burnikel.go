package bigint

import "math/bits"

// burnikelScratchSpace returns the arena size for a recursive division by
// an n-digit divisor. Each level holds a (B+1)-digit partial quotient and
// its 2B-digit product with the low divisor digits, for B = n/2.
func burnikelScratchSpace(n int) int {
	return 4*n + 8*bits.Len(uint(n)) + 16
}

// DivideBurnikelZiegler sets q = a / b and r = a % b with recursive block
// division. The divisor is split into wide digits of n/2 digits; each
// 3-by-2 wide-digit step computes a 2-by-1 guess by recursion and corrects
// it against the low half of the divisor. Below Config.BurnikelThreshold
// the recursion bottoms out in Algorithm D. The buffer contract is the one
// of DivideSchoolbook.
func (p *Processor) DivideBurnikelZiegler(q, r RWDigits, a, b Digits) {
	a = a.Normalize()
	b = b.Normalize()
	require(len(b) >= 2, "DivideBurnikelZiegler", "divisor has %d digits, need at least 2", len(b))
	require(len(a) >= len(b), "DivideBurnikelZiegler", "dividend shorter than divisor")
	require(len(q) == 0 || len(q) >= quotientLength(a, b), "DivideBurnikelZiegler", "quotient has %d digits, need %d", len(q), quotientLength(a, b))
	require(len(r) == 0 || len(r) >= len(b), "DivideBurnikelZiegler", "remainder has %d digits, need %d", len(r), len(b))

	n := len(b)
	shift := uint(bits.LeadingZeros(uint(b[n-1])))
	v := acquireDigits(n)
	defer releaseDigits(v)
	shlVU(v, b, shift)
	u := acquireDigits(len(a) + 1)
	defer releaseDigits(u)
	u[len(a)] = shlVU(u[:len(a)], a, shift)

	qq := acquireDigits(len(u) - n + 1)
	defer releaseDigits(qq)
	ar := newArena(burnikelScratchSpace(n))
	defer ar.release()

	p.divRecursiveStep(qq, u, Digits(v), ar)
	if p.shouldTerminate() {
		return
	}
	storeQuotient(q, Digits(qq))
	if len(r) > 0 {
		rightShift(r, Digits(u[:n]), shift)
	}
}

// storeQuotient copies a computed quotient into the caller's output, which
// may be shorter than the scratch quotient but must hold its value.
func storeQuotient(q RWDigits, qq Digits) {
	if len(q) == 0 {
		return
	}
	qq = qq.Normalize()
	invariant(len(qq) <= len(q), "storeQuotient: quotient does not fit the output")
	copy(q, qq)
	q.clearFrom(len(qq))
}

// divRecursiveStep adds u / v into z and leaves the remainder in u. v must
// have its top bit set; u is a window of the dividend and may carry
// leading zeros.
func (p *Processor) divRecursiveStep(z, u RWDigits, v Digits, ar *arena) {
	u = u[:len(Digits(u).Normalize())]
	v = v.Normalize()
	if len(u) == 0 {
		return
	}

	n := len(v)
	if n < p.config.BurnikelThreshold {
		qhatv := ar.alloc(n + 1)
		p.divBasic(z, u, v, qhatv)
		return
	}

	m := len(u) - n
	if m < 0 {
		return
	}

	mark := ar.mark()
	defer ar.reset(mark)

	// B digits form one wide digit.
	B := n / 2
	// Guesses use a (2B+1)-by-(B+1) division, dropping s low digits from
	// both operands, so they are off by at most one.
	s := B - 1
	qhat := ar.alloc(B + 1)
	qhatv := ar.alloc(2*B + 2)

	j := m
	for j > B {
		// Divide the up-to-3B-digit window u[j-B:j+n] by v.
		uu := u[j-B:]
		qhat.Clear()
		p.divRecursiveStep(qhat, uu[s:B+n], v[s:], ar)
		if p.shouldTerminate() {
			return
		}
		p.refineWideDigit(uu, qhat, qhatv, v, s)
		if p.shouldTerminate() {
			return
		}
		c := addAt(z, Digits(qhat), j-B)
		invariant(c == 0, "divRecursiveStep: quotient carry")
		j -= B
	}

	// Now u < v·β^B; the low wide digit is computed the same way.
	qhat.Clear()
	p.divRecursiveStep(qhat, u[s:], v[s:], ar)
	if p.shouldTerminate() {
		return
	}
	p.refineWideDigit(u, qhat, qhatv, v, s)
	if p.shouldTerminate() {
		return
	}
	c := addAt(z, Digits(qhat), 0)
	invariant(c == 0, "divRecursiveStep: quotient carry")
}

// refineWideDigit turns the 2-by-1 guess qhat, whose remainder the
// recursive call left in uu[s:], into the exact 3-by-2 quotient digit by
// subtracting qhat·v[:s] from uu. The guess is at most two too large.
func (p *Processor) refineWideDigit(uu, qhat, qhatvBuf RWDigits, v Digits, s int) {
	q := Digits(qhat).Normalize()
	qhatv := qhatvBuf[:len(q)+s]
	p.Multiply(qhatv, q, v[:s])
	if p.shouldTerminate() {
		return
	}
	for i := 0; i < 2; i++ {
		if compareDigits(Digits(qhatv), Digits(uu)) <= 0 {
			break
		}
		subVW(qhat, qhat, 1)
		subtract(qhatv, Digits(qhatv), v[:s])
		addAt(uu[s:], v[s:], 0)
	}
	invariant(compareDigits(Digits(qhatv), Digits(uu)) <= 0, "refineWideDigit: quotient guess too large")
	c := subAt(uu, Digits(qhatv), 0)
	invariant(c == 0, "refineWideDigit: negative remainder")
	p.addWorkEstimate(len(uu))
}
