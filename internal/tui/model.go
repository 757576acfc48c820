// Package tui shows the strategy comparison as a live dashboard: one row
// per multiplication strategy with its interrupt poll count, then the
// ranking and the verdict once every strategy has finished.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// row is the displayed state of one strategy.
type row struct {
	strategy string
	polls    uint64
	done     bool
}

// Model is the bubbletea model of the comparison dashboard.
type Model struct {
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	label    string
	rows     []row
	elapsed  time.Duration
	results  []orchestration.OperationResult
	exitCode int
	done     bool
	paused   bool
	width    int

	cancel  context.CancelFunc
	compare tea.Cmd
	ref     *programRef
}

// NewModel creates a dashboard that compares strategies on the operands of
// req when its program starts.
func NewModel(ctx context.Context, runner *orchestration.Runner, req orchestration.Request, strategies []bigint.Strategy, opts orchestration.PresentationOptions) Model {
	ctx, cancel := context.WithCancel(ctx)
	rows := make([]row, len(strategies))
	for i, s := range strategies {
		rows[i].strategy = s.String()
	}
	ref := &programRef{}
	return Model{
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		label:    fmt.Sprintf("%s (%d strategies)", config.OpCompare, len(strategies)),
		rows:     rows,
		exitCode: apperrors.ExitSuccess,
		cancel:   cancel,
		compare:  compareCmd(ctx, ref, runner, req, strategies, opts),
		ref:      ref,
	}
}

// Init starts the comparison and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.compare)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			if !m.done {
				m.exitCode = apperrors.ExitErrorCanceled
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if !m.paused && !m.done {
			m.apply(msg.Update)
		}
		return m, nil

	case ComparisonDoneMsg:
		m.done = true
		m.paused = false
		m.results = msg.Results
		m.exitCode = msg.ExitCode
		for i := range m.rows {
			m.rows[i].done = true
		}
		return m, nil
	}
	return m, nil
}

// apply copies a progress sample into the rows. Operations arrive in
// request order, which is the order of the rows.
func (m *Model) apply(u orchestration.ProgressUpdate) {
	m.label = u.Label
	m.elapsed = u.Elapsed
	for i, op := range u.Operations {
		if i < len(m.rows) {
			m.rows[i] = row{strategy: op.Strategy, polls: op.Polls, done: op.Done}
		}
	}
}

// compareCmd runs the comparison and analyses its results off the UI
// goroutine.
func compareCmd(ctx context.Context, ref *programRef, runner *orchestration.Runner, req orchestration.Request, strategies []bigint.Strategy, opts orchestration.PresentationOptions) tea.Cmd {
	return func() tea.Msg {
		results := runner.Compare(ctx, req, strategies, progressReporter{ref: ref}, io.Discard)
		code := orchestration.AnalyzeComparisonResults(results, opts, resultPresenter{}, io.Discard)
		return ComparisonDoneMsg{Results: results, ExitCode: code}
	}
}

// Run shows the dashboard on out until the user quits. It returns the exit
// code and, when the comparison finished, its results sorted by
// AnalyzeComparisonResults.
func Run(ctx context.Context, runner *orchestration.Runner, req orchestration.Request, strategies []bigint.Strategy, opts orchestration.PresentationOptions, out io.Writer) (int, []orchestration.OperationResult) {
	initStyles()

	model := NewModel(ctx, runner, req, strategies, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(out))
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric, nil
	}
	m, ok := final.(Model)
	if !ok {
		return apperrors.ExitErrorGeneric, nil
	}
	if !m.done {
		return m.exitCode, nil
	}
	return m.exitCode, m.results
}
