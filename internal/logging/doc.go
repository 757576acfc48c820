// Package logging provides the structured logging interface of the
// calculator. Components log through Logger; the zerolog adapter is the
// production backend and also hands its zerolog.Logger to the kernel.
package logging
