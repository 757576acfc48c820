package bigint

// DivideResultLength returns a quotient length that is always sufficient
// for a / b.
func DivideResultLength(a, b Digits) int {
	return max(len(a.Normalize())-len(b.Normalize())+1, 0)
}

// ModuloResultLength returns the remainder length needed for a % b.
func ModuloResultLength(b Digits) int {
	return len(b.Normalize())
}

// Divide sets q = a / b and r = a % b, choosing the algorithm from the
// divisor length. Either output may be nil when it is not wanted. b must be
// non-zero. q needs the number of digits of the quotient, which is at most
// DivideResultLength(a, b), and r needs ModuloResultLength(b) digits. Both
// are zero-filled beyond their values.
func (p *Processor) Divide(q, r RWDigits, a, b Digits) {
	a = a.Normalize()
	b = b.Normalize()
	require(len(b) > 0, "Divide", "division by zero")
	require(len(q) == 0 || len(q) >= quotientLength(a, b), "Divide", "quotient has %d digits, need %d", len(q), quotientLength(a, b))
	require(len(r) == 0 || len(r) >= len(b), "Divide", "remainder has %d digits, need %d", len(r), len(b))

	switch cmp := compareDigits(a, b); {
	case cmp < 0:
		q.Clear()
		if len(r) > 0 {
			copyDigits(r, a)
		}
		return
	case cmp == 0:
		q.Clear()
		if len(q) > 0 {
			q[0] = 1
		}
		r.Clear()
		return
	}

	switch {
	case len(b) == 1:
		remainder := p.DivideSingle(q, a, b[0])
		if len(r) > 0 {
			r.Clear()
			r[0] = remainder
		}
	case len(b) < p.config.BurnikelThreshold:
		p.DivideSchoolbook(q, r, a, b)
	case len(b) < p.config.BarrettThreshold || len(a) == len(b):
		p.DivideBurnikelZiegler(q, r, a, b)
	default:
		p.DivideBarrett(q, r, a, b)
	}
}

// Modulo sets r = a % b. b must be non-zero and r needs
// ModuloResultLength(b) digits.
func (p *Processor) Modulo(r RWDigits, a, b Digits) {
	b = b.Normalize()
	require(len(b) > 0, "Modulo", "division by zero")
	require(len(r) >= len(b), "Modulo", "remainder has %d digits, need %d", len(r), len(b))
	if len(b) == 1 {
		remainder := p.DivideSingle(nil, a, b[0])
		r.Clear()
		r[0] = remainder
		return
	}
	p.Divide(nil, r, a, b)
}
