// Package bigint implements the digit-level arithmetic kernel used to build
// arbitrary-precision integers: digit primitives, multiplication, division
// and radix conversion on unsigned magnitudes.
//
// All operations work on caller-owned buffers. Inputs are read through
// Digits views and results are written to RWDigits views whose length the
// caller fixes before the call; every output position is written, with
// unused high digits set to zero. Algorithms are selected by operand length
// against the thresholds in Config:
//
//   - multiply: single digit, schoolbook, Karatsuba, Toom-3, FFT
//   - divide: single digit, schoolbook (Knuth D), Burnikel-Ziegler, Barrett
//
// Each top-level operation runs on a Processor, which accumulates a work
// estimate and polls a Platform for interruption at bounded intervals. Once
// interrupted, the Processor status stays StatusInterrupted until
// GetAndClearStatus is called, and the partial output must be discarded.
//
// Misuse of the buffer contracts (short outputs, zero divisors, divisors
// longer than dividends) is a programming error and panics with a
// ContractViolation.
package bigint
