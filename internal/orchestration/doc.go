// Package orchestration runs kernel operations for the application. Each
// operation gets its own Processor bound to the caller's context; strategy
// comparisons run concurrently and are checked against a reference oracle.
// Presentation is decoupled via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
