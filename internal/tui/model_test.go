package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

var testStrategies = []bigint.Strategy{bigint.StrategySchoolbook, bigint.StrategyKaratsuba, bigint.StrategyToomCook}

func newTestModel(t *testing.T, x, y uint, opts ...orchestration.RunnerOption) Model {
	t.Helper()
	runner := orchestration.NewRunner(bigint.DefaultConfig(), opts...)
	req := orchestration.Request{
		Op:          config.OpCompare,
		X:           orchestration.Operand{Magnitude: bigint.Digits{bigint.Digit(x)}},
		Y:           orchestration.Operand{Magnitude: bigint.Digits{bigint.Digit(y)}},
		OutputRadix: 10,
	}
	m := NewModel(context.Background(), runner, req, testStrategies, orchestration.PresentationOptions{OutputRadix: 10})
	t.Cleanup(m.cancel)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	bindings := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Pause", km.Pause, []string{"p"}},
	}
	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			if !b.binding.Enabled() {
				t.Fatalf("%s binding disabled", b.name)
			}
			for _, k := range b.keys {
				if !strings.Contains(strings.Join(b.binding.Keys(), ","), k) {
					t.Errorf("%s binding lacks %q", b.name, k)
				}
			}
		})
	}
	if len(km.ShortHelp()) != 2 || len(km.FullHelp()) != 1 {
		t.Error("help does not list both bindings")
	}
}

func TestModelAppliesProgress(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 6, 7)
	m, _ = update(t, m, ProgressMsg{Update: orchestration.ProgressUpdate{
		Label:   "compare (3 strategies)",
		Running: 2,
		Elapsed: 1500 * time.Millisecond,
		Operations: []orchestration.OperationProgress{
			{Strategy: "schoolbook", Polls: 4000, Done: true},
			{Strategy: "karatsuba", Polls: 1000},
			{Strategy: "toom3", Polls: 0},
		},
	}})
	if m.rows[0].polls != 4000 || !m.rows[0].done || m.rows[1].polls != 1000 || m.rows[1].done {
		t.Fatalf("rows = %+v", m.rows)
	}
	view := m.View()
	for _, want := range []string{"compare (3 strategies)", "Elapsed: 1.5s", "4,000", "karatsuba", "RUN"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestModelPauseFreezesRows(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 6, 7)
	m, _ = update(t, m, keyMsg("p"))
	if !m.paused || !strings.Contains(m.View(), "display frozen") {
		t.Fatal("p did not freeze the display")
	}
	m, _ = update(t, m, ProgressMsg{Update: orchestration.ProgressUpdate{
		Operations: []orchestration.OperationProgress{{Strategy: "schoolbook", Polls: 99}},
	}})
	if m.rows[0].polls != 0 {
		t.Errorf("frozen display took an update: %+v", m.rows[0])
	}
	m, _ = update(t, m, keyMsg("p"))
	if m.paused {
		t.Error("second p did not resume")
	}
}

func TestModelQuitBeforeDoneCancels(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 6, 7, orchestration.WithReference(nil))
	m, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command does not quit")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
	msg := m.compare()
	done, ok := msg.(ComparisonDoneMsg)
	if !ok {
		t.Fatalf("compare returned %T", msg)
	}
	if done.ExitCode != apperrors.ExitErrorCanceled {
		t.Errorf("canceled comparison exit code = %d", done.ExitCode)
	}
}

func TestModelShowsVerdict(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 6, 7)
	msg := m.compare()
	m, _ = update(t, m, msg)
	if !m.done || m.exitCode != apperrors.ExitSuccess {
		t.Fatalf("done = %v, exit code = %d", m.done, m.exitCode)
	}
	view := m.View()
	for _, want := range []string{"All valid results are consistent.", "x * y = 42", "#", "finished"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
	if _, cmd := update(t, m, spinner.TickMsg{}); cmd != nil {
		t.Error("spinner keeps ticking after the comparison finished")
	}
	_, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
}

func TestVerdictFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code int
		want string
	}{
		{apperrors.ExitErrorMismatch, "disagree"},
		{apperrors.ExitErrorTimeout, "exit code 2"},
	}
	for _, tt := range tests {
		m := newTestModel(t, 1, 1)
		m, _ = update(t, m, ComparisonDoneMsg{ExitCode: tt.code})
		if got := m.verdict(); !strings.Contains(got, tt.want) {
			t.Errorf("verdict(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fraction float64
		filled   int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.7, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := renderBar(tt.fraction, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("renderBar(%v) filled %d cells, want %d", tt.fraction, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("renderBar(%v) has %d cells", tt.fraction, got)
		}
	}
	if share(5, 0) != 0 || share(5, 10) != 0.5 {
		t.Error("share is not relative to the maximum")
	}
}

func TestProgressReporterForwardsUntilClosed(t *testing.T) {
	t.Parallel()
	reporter := progressReporter{ref: &programRef{}}
	updates := make(chan orchestration.ProgressUpdate, 3)
	updates <- orchestration.ProgressUpdate{Polls: 1}
	updates <- orchestration.ProgressUpdate{Polls: 2}
	close(updates)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, updates, nil)
	wg.Wait()
}

func TestResultPresenterExitCodes(t *testing.T) {
	t.Parallel()
	p := resultPresenter{}
	p.PresentComparisonTable(nil, nil)
	p.PresentResult(orchestration.OperationResult{}, orchestration.PresentationOptions{}, nil)
	err := apperrors.InterruptedError{Operation: "mul", Cause: context.DeadlineExceeded}
	if got := p.HandleError(err, time.Second, nil); got != apperrors.ExitErrorTimeout {
		t.Errorf("HandleError() = %d, want %d", got, apperrors.ExitErrorTimeout)
	}
}
