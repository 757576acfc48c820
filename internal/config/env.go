package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the BIGCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// intOverride builds the apply function of an integer setting.
func intOverride(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}
}

// boolOverride builds the apply function of a boolean setting.
func boolOverride(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		*field(c) = parseBoolEnv(v, *field(c))
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"RADIX", []string{"radix"}, intOverride(func(c *AppConfig) *int { return &c.InputRadix })},
	{"OUTPUT_RADIX", []string{"output-radix"}, intOverride(func(c *AppConfig) *int { return &c.OutputRadix })},
	{"KARATSUBA_THRESHOLD", []string{"karatsuba-threshold"}, intOverride(func(c *AppConfig) *int { return &c.KaratsubaThreshold })},
	{"TOOM_THRESHOLD", []string{"toom-threshold"}, intOverride(func(c *AppConfig) *int { return &c.ToomThreshold })},
	{"FFT_THRESHOLD", []string{"fft-threshold"}, intOverride(func(c *AppConfig) *int { return &c.FFTThreshold })},
	{"BURNIKEL_THRESHOLD", []string{"burnikel-threshold"}, intOverride(func(c *AppConfig) *int { return &c.BurnikelThreshold })},
	{"NEWTON_THRESHOLD", []string{"newton-threshold"}, intOverride(func(c *AppConfig) *int { return &c.NewtonInversionThreshold })},
	{"BARRETT_THRESHOLD", []string{"barrett-threshold"}, intOverride(func(c *AppConfig) *int { return &c.BarrettThreshold })},
	{"TOSTRING_THRESHOLD", []string{"tostring-threshold"}, intOverride(func(c *AppConfig) *int { return &c.ToStringFastThreshold })},
	{"FROMSTRING_THRESHOLD", []string{"fromstring-threshold"}, intOverride(func(c *AppConfig) *int { return &c.FromStringLargeThreshold })},
	{"MAX_DIGITS", []string{"max-digits"}, intOverride(func(c *AppConfig) *int { return &c.MaxInputDigits })},
	{"WORK_THRESHOLD", []string{"work-threshold"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.WorkThreshold = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"OP", []string{"op"}, func(c *AppConfig, v string) { c.Op = v }},
	{"X", []string{"x"}, func(c *AppConfig, v string) { c.X = v }},
	{"Y", []string{"y"}, func(c *AppConfig, v string) { c.Y = v }},
	{"STRATEGY", []string{"strategy"}, func(c *AppConfig, v string) { c.Strategy = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) { c.MetricsAddr = v }},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolOverride(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"CHECK", []string{"check"}, boolOverride(func(c *AppConfig) *bool { return &c.Reference })},
	{"CALIBRATE", []string{"calibrate"}, boolOverride(func(c *AppConfig) *bool { return &c.Calibrate })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
