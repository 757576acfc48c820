package config

import (
	"bytes"
	"errors"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func validConfig() AppConfig {
	return AppConfig{
		Op:             OpMultiply,
		X:              "12",
		Y:              "34",
		InputRadix:     10,
		OutputRadix:    10,
		Timeout:        time.Minute,
		Strategy:       "auto",
		MaxInputDigits: DefaultMaxInputDigits,
	}
}

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("bigcalc", []string{"-x", "5", "-y", "7"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v (%s)", err, errBuf.String())
	}
	if cfg.Op != DefaultOp || cfg.InputRadix != DefaultRadix || cfg.OutputRadix != DefaultRadix {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != DefaultTimeout || cfg.Strategy != DefaultStrategy {
		t.Errorf("timeout/strategy defaults = %v/%q", cfg.Timeout, cfg.Strategy)
	}
	if cfg.ToKernelConfig() != bigint.DefaultConfig() {
		t.Errorf("unset thresholds changed the kernel config: %+v", cfg.ToKernelConfig())
	}
}

func TestParseConfigFlags(t *testing.T) {
	t.Parallel()
	args := []string{
		"-op", "DIV", "-x", "ff", "-y", "3", "-radix", "16", "-output-radix", "2",
		"-strategy", "Toom3", "-karatsuba-threshold", "20", "-work-threshold", "1000",
		"-q", "-o", "out.txt", "-check",
	}
	cfg, err := ParseConfig("bigcalc", args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Op != OpDivide || cfg.Strategy != "toom3" {
		t.Errorf("op/strategy not lower-cased: %q/%q", cfg.Op, cfg.Strategy)
	}
	if cfg.InputRadix != 16 || cfg.OutputRadix != 2 || !cfg.Quiet || !cfg.Reference || cfg.OutputFile != "out.txt" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	kc := cfg.ToKernelConfig()
	if kc.KaratsubaThreshold != 20 || kc.WorkEstimateThreshold != 1000 {
		t.Errorf("ToKernelConfig() = %+v", kc)
	}
	if kc.ToomThreshold != bigint.DefaultToomThreshold {
		t.Errorf("unset toom threshold = %d", kc.ToomThreshold)
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"unknown op", []string{"-op", "pow", "-x", "1", "-y", "2"}},
		{"missing y", []string{"-x", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			if _, err := ParseConfig("bigcalc", tt.args, &errBuf); err == nil {
				t.Fatal("ParseConfig() succeeded")
			}
			if !strings.Contains(errBuf.String(), "Usage") && !strings.Contains(errBuf.String(), "flag provided but not defined") {
				t.Errorf("no usage printed: %q", errBuf.String())
			}
		})
	}
}

func TestParseConfigValidationErrorIsConfigError(t *testing.T) {
	t.Parallel()
	_, err := ParseConfig("bigcalc", []string{"-x", "1", "-y", "2", "-radix", "40"}, &bytes.Buffer{})
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error %v is not a ConfigError", err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
		t.Errorf("ExitCodeFor = %d", apperrors.ExitCodeFor(err))
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"convert without y", func(c *AppConfig) { c.Op = OpConvert; c.Y = "" }, ""},
		{"calibrate without operands", func(c *AppConfig) { c.Calibrate = true; c.X, c.Y = "", "" }, ""},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }, "timeout"},
		{"bad op", func(c *AppConfig) { c.Op = "pow" }, "unrecognized operation"},
		{"bad strategy", func(c *AppConfig) { c.Strategy = "quantum" }, "unrecognized strategy"},
		{"radix too small", func(c *AppConfig) { c.InputRadix = 1 }, "input radix"},
		{"radix too large", func(c *AppConfig) { c.OutputRadix = 37 }, "output radix"},
		{"negative threshold", func(c *AppConfig) { c.FFTThreshold = -1 }, "fft threshold cannot be negative"},
		{"inconsistent tiers", func(c *AppConfig) { c.KaratsubaThreshold = 500 }, "invalid thresholds"},
		{"max digits", func(c *AppConfig) { c.MaxInputDigits = 0 }, "maximum input size"},
		{"missing x", func(c *AppConfig) { c.X = "" }, "-x is required"},
		{"missing y", func(c *AppConfig) { c.Y = "" }, "-y is required"},
		{"dashboard for compare", func(c *AppConfig) { c.Op = OpCompare; c.TUI = true }, ""},
		{"dashboard for mul", func(c *AppConfig) { c.TUI = true }, "only available with -op compare"},
		{"dashboard and quiet", func(c *AppConfig) { c.Op = OpCompare; c.TUI, c.Quiet = true, true }, "cannot be combined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

// Environment tests use t.Setenv and cannot run in parallel.

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BIGCALC_OP", "mod")
	t.Setenv("BIGCALC_X", "100")
	t.Setenv("BIGCALC_Y", "7")
	t.Setenv("BIGCALC_TIMEOUT", "30s")
	t.Setenv("BIGCALC_TOOM_THRESHOLD", "250")
	t.Setenv("BIGCALC_WORK_THRESHOLD", "4096")
	t.Setenv("BIGCALC_QUIET", "yes")

	cfg, err := ParseConfig("bigcalc", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Op != OpModulo || cfg.X != "100" || cfg.Y != "7" {
		t.Errorf("operation env not applied: %+v", cfg)
	}
	if cfg.Timeout != 30*time.Second || cfg.ToomThreshold != 250 || cfg.WorkThreshold != 4096 || !cfg.Quiet {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("BIGCALC_TIMEOUT", "30s")
	t.Setenv("BIGCALC_QUIET", "true")
	t.Setenv("BIGCALC_OUTPUT", "env.txt")

	cfg, err := ParseConfig("bigcalc", []string{"-x", "1", "-y", "1", "-timeout", "1m", "-q=false", "-o", "flag.txt"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Timeout != time.Minute || cfg.Quiet || cfg.OutputFile != "flag.txt" {
		t.Errorf("env overrode explicit flags: %+v", cfg)
	}
}

func TestEnvInvalidValuesIgnored(t *testing.T) {
	t.Setenv("BIGCALC_TIMEOUT", "soon")
	t.Setenv("BIGCALC_FFT_THRESHOLD", "many")
	t.Setenv("BIGCALC_VERBOSE", "maybe")

	cfg, err := ParseConfig("bigcalc", []string{"-x", "1", "-y", "1"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Timeout != DefaultTimeout || cfg.FFTThreshold != 0 || cfg.Verbose {
		t.Errorf("invalid env values were applied: %+v", cfg)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	for _, v := range []string{"true", "TRUE", "1", "yes"} {
		if !parseBoolEnv(v, false) {
			t.Errorf("parseBoolEnv(%q) = false", v)
		}
	}
	for _, v := range []string{"false", "0", "No"} {
		if parseBoolEnv(v, true) {
			t.Errorf("parseBoolEnv(%q) = true", v)
		}
	}
	if !parseBoolEnv("perhaps", true) {
		t.Error("unrecognised value did not keep the default")
	}
}

func TestApplyAdaptiveThresholds(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.ToomThreshold = 300
	got := ApplyAdaptiveThresholds(cfg, true)
	if got.ToomThreshold != 300 {
		t.Errorf("explicit toom threshold overwritten: %d", got.ToomThreshold)
	}
	if got.KaratsubaThreshold != EstimateKaratsubaThreshold(true) || got.FFTThreshold != EstimateFFTThreshold() {
		t.Errorf("zero thresholds not estimated: %+v", got)
	}
	if err := ApplyAdaptiveThresholds(validConfig(), false).ToKernelConfig().Validate(); err != nil {
		t.Errorf("adaptive estimates are inconsistent: %v", err)
	}
	if bits.UintSize == 64 && EstimateKaratsubaThreshold(false) != bigint.DefaultKaratsubaThreshold {
		t.Errorf("baseline Karatsuba estimate = %d", EstimateKaratsubaThreshold(false))
	}
}

func TestResolveOperand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(path, []byte("  1_000_000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"42", "42", false},
		{" 1_024 ", "1024", false},
		{"@" + path, "1000000", false},
		{"@" + filepath.Join(dir, "missing"), "", true},
	}
	for _, tt := range tests {
		got, err := ResolveOperand(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ResolveOperand(%q) = %q, %v", tt.in, got, err)
		}
	}
}
