// Package apperrors holds the error taxonomy of bigcalc and its process
// exit codes.
//
// The kernel reports only two failure kinds: an interrupted operation,
// which surfaces here as InterruptedError carrying the poll count and the
// context cause, and a broken buffer contract, recovered from the kernel's
// panic into ContractError. Everything else comes from the layers above:
// ConfigError and ValidationError for bad flags or operands, MismatchError
// when strategies or the reference disagree. ExitCodeFor maps any of them,
// possibly wrapped, to the exit code the CLI returns.
package apperrors
