package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// ProgressMsg carries one sample of the running comparison.
type ProgressMsg struct {
	Update orchestration.ProgressUpdate
}

// ComparisonDoneMsg carries the analysed results and the exit code.
type ComparisonDoneMsg struct {
	Results  []orchestration.OperationResult
	ExitCode int
}

// programRef is shared by every copy of the Model so that the comparison
// goroutine can reach the program.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// progressReporter forwards progress samples to the dashboard.
type progressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = progressReporter{}

// DisplayProgress forwards every update until the channel is closed.
func (r progressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, _ io.Writer) {
	defer wg.Done()
	for u := range updates {
		r.ref.Send(ProgressMsg{Update: u})
	}
}

// resultPresenter lets AnalyzeComparisonResults decide the exit code while
// the dashboard renders the table itself from ComparisonDoneMsg.
type resultPresenter struct{}

var _ orchestration.ResultPresenter = resultPresenter{}

func (resultPresenter) PresentComparisonTable([]orchestration.OperationResult, io.Writer) {}

func (resultPresenter) PresentResult(orchestration.OperationResult, orchestration.PresentationOptions, io.Writer) {
}

func (resultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
