package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// newTestApp builds an Application that ignores any calibration profile
// in the home directory.
func newTestApp(t *testing.T, args ...string) (*Application, error) {
	t.Helper()
	profile := filepath.Join(t.TempDir(), "profile.json")
	argv := append([]string{"bigcalc", "-calibration-profile", profile, "-no-color"}, args...)
	return New(argv, &bytes.Buffer{})
}

func TestNewResolvesThresholds(t *testing.T) {
	t.Parallel()
	a, err := newTestApp(t, "-x", "1", "-y", "2", "-toom-threshold", "300")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.ProfileUsed {
		t.Error("a missing profile was reported as used")
	}
	if a.Config.KaratsubaThreshold == 0 || a.Config.FFTThreshold == 0 {
		t.Errorf("adaptive thresholds not applied: %+v", a.Config)
	}
	if a.Config.ToomThreshold != 300 {
		t.Errorf("ToomThreshold = %d, want the flag value 300", a.Config.ToomThreshold)
	}
}

func TestNewErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{"help", []string{"-h"}, true},
		{"missing operand", []string{"-op", "mul"}, false},
		{"bad threshold order", []string{"-x", "1", "-y", "1", "-karatsuba-threshold", "500", "-toom-threshold", "400"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newTestApp(t, tt.args...)
			if err == nil {
				t.Fatal("New() succeeded")
			}
			if IsHelpError(err) != tt.help {
				t.Errorf("IsHelpError(%v) = %v, want %v", err, !tt.help, tt.help)
			}
			if !tt.help && apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", err, apperrors.ExitCodeFor(err), apperrors.ExitErrorConfig)
			}
		})
	}
}

func TestRunQuiet(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		code int
	}{
		{"multiply", []string{"-x", "123456789123456789", "-y", "-987654321"}, "-121932631234567900112635269\n", 0},
		{"divide", []string{"-op", "div", "-x", "100", "-y", "7"}, "14\n2\n", 0},
		{"modulo hex", []string{"-op", "mod", "-x", "ff", "-y", "10", "-radix", "16"}, "f\n", 0},
		{"convert", []string{"-op", "convert", "-x", "255", "-output-radix", "2"}, "11111111\n", 0},
		{"checked", []string{"-x", "99", "-y", "99", "-check", "-strategy", "toom3"}, "9801\n", 0},
		{"compare", []string{"-op", "compare", "-x", "123", "-y", "1000"}, "123000\n", 0},
		{"bad literal", []string{"-x", "12z", "-y", "1"}, "", apperrors.ExitErrorConfig},
		{"division by zero", []string{"-op", "div", "-x", "1", "-y", "0"}, "", apperrors.ExitErrorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := newTestApp(t, append([]string{"-quiet"}, tt.args...)...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			var out bytes.Buffer
			if code := a.Run(context.Background(), &out); code != tt.code {
				t.Fatalf("Run() = %d, want %d\n%s", code, tt.code, out.String())
			}
			if tt.code == 0 && out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRunDetailedOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	rec := metrics.NewRecorder()
	profile := filepath.Join(t.TempDir(), "profile.json")
	a, err := New([]string{"bigcalc", "-calibration-profile", profile, "-no-color",
		"-x", "2", "-y", "21", "-d", "-o", path}, &bytes.Buffer{}, WithRecorder(rec))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d\n%s", code, out.String())
	}
	for _, want := range []string{"Execution Configuration", "x * y = 42", "Detailed result analysis", "Memory Stats", "Result saved to"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasSuffix(string(data), "\n42\n") {
		t.Errorf("output file = %q, %v", data, err)
	}
	if n, err := testutil.GatherAndCount(rec.Registry(), "bigcalc_operations_total"); err != nil || n != 1 {
		t.Errorf("recorded operations = %d, %v", n, err)
	}
}

func TestRunVerboseLogsConfiguration(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "profile.json")
	var logs bytes.Buffer
	a, err := New([]string{"bigcalc", "-calibration-profile", profile, "-no-color",
		"-v", "-x", "6", "-y", "7", "-check"}, &logs)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d\n%s", code, out.String())
	}
	for _, want := range []string{`"message":"operation configured"`, `"op":"mul"`, `"check":true`, `"component":"bigcalc"`} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs lack %s:\n%s", want, logs.String())
		}
	}
}

func TestRunDashboard(t *testing.T) {
	tests := []struct {
		name     string
		finished bool
		wantCode int
		wantOut  string
	}{
		{"finished comparison is summarised", true, apperrors.ExitSuccess, "Global Status: Success"},
		{"left early", false, apperrors.ExitErrorCanceled, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := newTestApp(t, "-op", "compare", "-tui", "-x", "6", "-y", "7")
			if err != nil {
				t.Fatal(err)
			}
			var shown []bigint.Strategy
			a.dashboard = func(ctx context.Context, runner *orchestration.Runner, req orchestration.Request, strategies []bigint.Strategy, opts orchestration.PresentationOptions, _ io.Writer) (int, []orchestration.OperationResult) {
				shown = strategies
				if !tt.finished {
					return apperrors.ExitErrorCanceled, nil
				}
				results := runner.Compare(ctx, req, strategies, orchestration.NullProgressReporter{}, io.Discard)
				return orchestration.AnalyzeComparisonResults(results, opts, cli.CLIResultPresenter{}, io.Discard), results
			}
			var out bytes.Buffer
			if code := a.Run(context.Background(), &out); code != tt.wantCode {
				t.Fatalf("Run() = %d, want %d\n%s", code, tt.wantCode, out.String())
			}
			if len(shown) == 0 {
				t.Error("dashboard was not started")
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output lacks %q:\n%s", tt.wantOut, out.String())
			}
			if tt.wantOut == "" && strings.Contains(out.String(), "Global Status") {
				t.Errorf("summary printed after leaving early:\n%s", out.String())
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	a, err := newTestApp(t, "-quiet", "-x", "3", "-y", "4")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("Run() = %d, want %d\n%s", code, apperrors.ExitErrorCanceled, out.String())
	}
}

func TestRunMetricsServer(t *testing.T) {
	a, err := newTestApp(t, "-quiet", "-x", "3", "-y", "4", "-metrics-addr", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess || out.String() != "12\n" {
		t.Errorf("Run() = %d, %q", code, out.String())
	}

	bad, err := newTestApp(t, "-quiet", "-x", "3", "-y", "4", "-metrics-addr", "256.0.0.1:bad")
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if code := bad.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("Run() with a bad address = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestIsHelpError(t *testing.T) {
	t.Parallel()
	if IsHelpError(errors.New("other")) {
		t.Error("IsHelpError(other) = true")
	}
}
