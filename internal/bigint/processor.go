//go:generate mockgen -source=processor.go -destination=mocks/mock_platform.go -package=mocks

package bigint

import "github.com/rs/zerolog"

// Platform is the host capability polled for cooperative cancellation.
type Platform interface {
	// InterruptRequested reports whether the running operation should stop.
	InterruptRequested() bool
}

// Status is the outcome recorded by a Processor.
type Status int

const (
	// StatusOK means no interruption was observed.
	StatusOK Status = iota
	// StatusInterrupted means the Platform requested an interrupt. The
	// output of the interrupted operation is unspecified.
	StatusInterrupted
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Processor runs one logical big-integer operation and its recursive
// sub-operations. It accumulates a work estimate and polls its Platform
// each time the estimate crosses Config.WorkEstimateThreshold.
//
// A Processor is not safe for concurrent use; create one per operation.
type Processor struct {
	platform     Platform
	config       Config
	logger       zerolog.Logger
	workEstimate uint64
	polls        uint64
	status       Status
}

// Option configures a Processor.
type Option func(*Processor)

// WithConfig sets the algorithm thresholds.
func WithConfig(cfg Config) Option {
	return func(p *Processor) { p.config = cfg }
}

// WithLogger sets the logger used for status transitions.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// New returns a Processor polling platform for interrupts. It panics if
// platform is nil or the configured thresholds are invalid.
func New(platform Platform, opts ...Option) *Processor {
	require(platform != nil, "New", "nil platform")
	p := &Processor{
		platform: platform,
		config:   DefaultConfig(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.config.Validate(); err != nil {
		panic(ContractViolation{Op: "New", Message: err.Error()})
	}
	return p
}

// Config returns the thresholds in use.
func (p *Processor) Config() Config { return p.config }

// Status returns the current status without clearing it.
func (p *Processor) Status() Status { return p.status }

// Polls returns how many times the Platform has been asked for an interrupt.
func (p *Processor) Polls() uint64 { return p.polls }

// GetAndClearStatus returns the current status and resets it to StatusOK.
func (p *Processor) GetAndClearStatus() Status {
	s := p.status
	p.status = StatusOK
	return s
}

// addWorkEstimate records estimate units of work and polls the Platform
// when the accumulated amount crosses the threshold. An interrupted
// processor is not polled again.
func (p *Processor) addWorkEstimate(estimate int) {
	p.workEstimate += uint64(estimate)
	if p.workEstimate < p.config.WorkEstimateThreshold {
		return
	}
	p.workEstimate = 0
	if p.status == StatusInterrupted {
		return
	}
	p.polls++
	if p.platform.InterruptRequested() {
		p.status = StatusInterrupted
		p.logger.Debug().Uint64("polls", p.polls).Msg("interrupt requested, aborting operation")
	}
}

// shouldTerminate reports whether the running algorithm must return early.
func (p *Processor) shouldTerminate() bool {
	return p.status == StatusInterrupted
}
