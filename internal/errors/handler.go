package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with cli.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError prints a status line for a failed operation and
// returns the exit code that matches the error.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: How long the operation ran before it failed.
//   - out: The io.Writer to which the status line will be written.
//   - colors: Provider for terminal color codes (nil for no colors).
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	code := ExitCodeFor(err)
	var (
		contractErr ContractError
		mismatchErr MismatchError
	)
	switch {
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
	case errors.As(err, &mismatchErr):
		fmt.Fprintf(out, "Status: Failure (Mismatch). %v\n", mismatchErr)
	case errors.As(err, &contractErr):
		fmt.Fprintf(out, "Status: Failure (Invalid call). %v\n", contractErr)
	case code == ExitErrorConfig:
		fmt.Fprintf(out, "Status: Failure (Configuration). %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
