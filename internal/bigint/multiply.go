package bigint

// Strategy names a multiplication algorithm.
type Strategy int

const (
	// StrategyAuto selects the algorithm from the operand lengths.
	StrategyAuto Strategy = iota
	StrategySchoolbook
	StrategyKaratsuba
	StrategyToomCook
	StrategyFFT
)

// Strategies lists the explicit strategies in tier order.
var Strategies = []Strategy{StrategySchoolbook, StrategyKaratsuba, StrategyToomCook, StrategyFFT}

// String returns the name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySchoolbook:
		return "schoolbook"
	case StrategyKaratsuba:
		return "karatsuba"
	case StrategyToomCook:
		return "toom3"
	case StrategyFFT:
		return "fft"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, bool) {
	for _, s := range append([]Strategy{StrategyAuto}, Strategies...) {
		if s.String() == name {
			return s, true
		}
	}
	return StrategyAuto, false
}

// StrategyNames returns the names accepted by ParseStrategy, "auto" first.
func StrategyNames() []string {
	names := []string{StrategyAuto.String()}
	for _, s := range Strategies {
		names = append(names, s.String())
	}
	return names
}

// MultiplyResultLength returns the output length Multiply needs for x and y.
func MultiplyResultLength(x, y Digits) int {
	return len(x.Normalize()) + len(y.Normalize())
}

// Multiply sets z = x * y, choosing the algorithm from the length of the
// shorter operand. It requires len(z) >= MultiplyResultLength(x, y) and
// zero-fills the rest of z.
func (p *Processor) Multiply(z RWDigits, x, y Digits) {
	x = x.Normalize()
	y = y.Normalize()
	require(len(z) >= len(x)+len(y), "Multiply", "output has %d digits, need %d", len(z), len(x)+len(y))
	if len(x) < len(y) {
		x, y = y, x
	}
	switch {
	case len(y) == 0:
		z.Clear()
	case len(y) == 1:
		p.MultiplySingle(z, x, y[0])
	case len(y) < p.config.KaratsubaThreshold:
		p.MultiplySchoolbook(z, x, y)
	case len(y) < p.config.ToomThreshold:
		p.MultiplyKaratsuba(z, x, y)
	case len(y) < p.config.FFTThreshold:
		p.MultiplyToomCook(z, x, y)
	default:
		p.MultiplyFFT(z, x, y)
	}
}

// MultiplyWith sets z = x * y with the given strategy. StrategyAuto is the
// same as Multiply. The explicit strategies still hand very short operands
// to the single-digit and schoolbook algorithms.
func (p *Processor) MultiplyWith(s Strategy, z RWDigits, x, y Digits) {
	x = x.Normalize()
	y = y.Normalize()
	if len(x) < len(y) {
		x, y = y, x
	}
	switch s {
	case StrategySchoolbook:
		require(len(z) >= len(x)+len(y), "MultiplyWith", "output has %d digits, need %d", len(z), len(x)+len(y))
		if len(y) == 0 {
			z.Clear()
			return
		}
		p.MultiplySchoolbook(z, x, y)
	case StrategyKaratsuba:
		p.MultiplyKaratsuba(z, x, y)
	case StrategyToomCook:
		p.MultiplyToomCook(z, x, y)
	case StrategyFFT:
		p.MultiplyFFT(z, x, y)
	default:
		p.Multiply(z, x, y)
	}
}

// multiplyChunked sets z = x*y for len(x) >= 2*len(y) by multiplying
// len(y)-digit chunks of x with mul and adding the partial products at
// their offsets.
func (p *Processor) multiplyChunked(z RWDigits, x, y Digits, ar *arena, mul func(RWDigits, Digits, Digits, *arena)) {
	mark := ar.mark()
	defer ar.reset(mark)

	n := len(y)
	part := ar.alloc(2 * n)
	z.Clear()
	for i := 0; i < len(x); i += n {
		chunk := x[i:min(i+n, len(x))]
		mul(part, chunk, y, ar)
		if p.shouldTerminate() {
			return
		}
		c := addAt(z, Digits(part), i)
		invariant(c == 0, "multiplyChunked: carry out of the product")
	}
}
