package orchestration

import (
	"context"
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/platform"
)

// StrategiesToRun returns the multiplication strategies the configuration
// asks for: all of them, automatic dispatch first, for "compare", and the
// single configured one otherwise.
func StrategiesToRun(cfg config.AppConfig) []bigint.Strategy {
	if cfg.Op == config.OpCompare {
		return append([]bigint.Strategy{bigint.StrategyAuto}, bigint.Strategies...)
	}
	s, ok := bigint.ParseStrategy(cfg.Strategy)
	if !ok {
		return nil
	}
	return []bigint.Strategy{s}
}

// BuildRequest assembles the request for the configured operation.
func BuildRequest(cfg config.AppConfig, x, y Operand) Request {
	req := Request{Op: cfg.Op, X: x, Y: y, OutputRadix: cfg.OutputRadix}
	if strategies := StrategiesToRun(cfg); len(strategies) == 1 {
		req.Strategy = strategies[0]
	}
	return req
}

// ParseOperand parses a signed literal in radix through the kernel's
// string accumulator. field names the operand in errors.
func (r *Runner) ParseOperand(ctx context.Context, field, literal string, radix, maxDigits int) (op Operand, err error) {
	literal, op.Negative = strings.CutPrefix(literal, "-")
	if !op.Negative {
		literal = strings.TrimPrefix(literal, "+")
	}
	if literal == "" {
		return Operand{}, apperrors.ValidationError{Field: field, Message: "empty literal"}
	}

	acc := bigint.NewFromStringAccumulator(maxDigits)
	consumed := acc.Parse(literal, radix)
	if acc.Result() == bigint.ResultMaxSizeExceeded {
		return Operand{}, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("literal exceeds %d digits", maxDigits)}
	}
	if consumed != len(literal) {
		return Operand{}, apperrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid character %q at offset %d for radix %d", literal[consumed], consumed, radix),
		}
	}

	plat := platform.NewContextPlatform(ctx)
	proc := bigint.New(plat, bigint.WithConfig(r.kernel), bigint.WithLogger(r.logger))
	z := make(bigint.RWDigits, acc.ResultLength())
	proc.FromString(z, acc)
	if proc.GetAndClearStatus() == bigint.StatusInterrupted {
		return Operand{}, apperrors.InterruptedError{Operation: "parse " + field, Polls: plat.Polled(), Cause: plat.Cause()}
	}
	op.Magnitude = bigint.Digits(z).Normalize()
	op.Negative = op.Negative && !op.Magnitude.IsZero()
	return op, nil
}
