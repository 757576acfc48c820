// Package config provides the configuration management for the bigcalc
// application. It defines the configuration structure, parses command-line
// arguments with environment overrides, and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by bigcalc.
	EnvPrefix = "BIGCALC_"
)

// Operations understood by the application.
const (
	OpMultiply = "mul"
	OpDivide   = "div"
	OpModulo   = "mod"
	OpConvert  = "convert"
	OpCompare  = "compare"
)

// Operations lists the valid values of --op.
var Operations = []string{OpMultiply, OpDivide, OpModulo, OpConvert, OpCompare}

// Default configuration values.
const (
	// DefaultOp is the default operation.
	DefaultOp = OpMultiply
	// DefaultRadix is the default input and output radix.
	DefaultRadix = 10
	// DefaultTimeout is the default operation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultStrategy is the default multiplication strategy.
	DefaultStrategy = "auto"
	// DefaultMaxInputDigits bounds the size of a parsed operand.
	DefaultMaxInputDigits = 1 << 26
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op is the operation to run (mul, div, mod, convert, compare).
	Op string
	// X and Y are the operand literals. A value starting with '@' names a
	// file holding the literal.
	X, Y string
	// InputRadix is the radix of the operand literals.
	InputRadix int
	// OutputRadix is the radix the result is printed in.
	OutputRadix int
	// Timeout bounds the run of one operation.
	Timeout time.Duration
	// Verbose enables debug logging and prints the full result.
	Verbose bool
	// Details prints the configuration, timings and memory statistics.
	Details bool
	// Quiet prints the bare result only.
	Quiet bool
	// NoColor disables colored output (NO_COLOR is honoured too).
	NoColor bool
	// OutputFile, if set, receives the result.
	OutputFile string
	// Strategy forces a multiplication strategy ("auto" lets sizes decide).
	Strategy string
	// Reference cross-checks the result against the reference implementation.
	Reference bool

	// Threshold overrides in digits. Zero leaves the value to the
	// calibration profile, the adaptive estimate or the kernel default.
	KaratsubaThreshold       int
	ToomThreshold            int
	FFTThreshold             int
	BurnikelThreshold        int
	NewtonInversionThreshold int
	BarrettThreshold         int
	ToStringFastThreshold    int
	FromStringLargeThreshold int
	// WorkThreshold is the number of work units between interrupt polls.
	WorkThreshold uint64
	// MaxInputDigits bounds each parsed operand, in digits.
	MaxInputDigits int

	// Calibrate runs the crossover measurement instead of an operation.
	Calibrate bool
	// CalibrationProfile is the profile path (default ~/.bigcalc_calibration.json).
	CalibrationProfile string
	// MetricsAddr, if set, serves Prometheus metrics on this address.
	MetricsAddr string
	// TUI shows the comparison as an interactive dashboard.
	TUI bool
}

// NeedsY reports whether the configured operation takes a second operand.
func (c AppConfig) NeedsY() bool {
	return c.Op != OpConvert
}

// ToKernelConfig converts the thresholds into a bigint.Config. Unset
// values keep the kernel defaults.
func (c AppConfig) ToKernelConfig() bigint.Config {
	kc := bigint.DefaultConfig()
	overrides := []struct {
		value  int
		target *int
	}{
		{c.KaratsubaThreshold, &kc.KaratsubaThreshold},
		{c.ToomThreshold, &kc.ToomThreshold},
		{c.FFTThreshold, &kc.FFTThreshold},
		{c.BurnikelThreshold, &kc.BurnikelThreshold},
		{c.NewtonInversionThreshold, &kc.NewtonInversionThreshold},
		{c.BarrettThreshold, &kc.BarrettThreshold},
		{c.ToStringFastThreshold, &kc.ToStringFastThreshold},
		{c.FromStringLargeThreshold, &kc.FromStringLargeThreshold},
	}
	for _, o := range overrides {
		if o.value > 0 {
			*o.target = o.value
		}
	}
	if c.WorkThreshold > 0 {
		kc.WorkEstimateThreshold = c.WorkThreshold
	}
	return kc
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if !slices.Contains(Operations, c.Op) {
		return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: [%s]", c.Op, strings.Join(Operations, ", "))
	}
	if _, ok := bigint.ParseStrategy(c.Strategy); !ok {
		return apperrors.NewConfigError("unrecognized strategy: '%s'. Valid strategies are: [%s]", c.Strategy, strings.Join(bigint.StrategyNames(), ", "))
	}
	for name, radix := range map[string]int{"input": c.InputRadix, "output": c.OutputRadix} {
		if radix < 2 || radix > 36 {
			return apperrors.NewConfigError("%s radix must be in [2, 36]: %d", name, radix)
		}
	}
	if c.MaxInputDigits <= 0 {
		return apperrors.NewConfigError("maximum input size must be positive: %d", c.MaxInputDigits)
	}
	thresholds := map[string]int{
		"karatsuba": c.KaratsubaThreshold, "toom": c.ToomThreshold, "fft": c.FFTThreshold,
		"burnikel": c.BurnikelThreshold, "newton": c.NewtonInversionThreshold, "barrett": c.BarrettThreshold,
		"to-string": c.ToStringFastThreshold, "from-string": c.FromStringLargeThreshold,
	}
	for name, v := range thresholds {
		if v < 0 {
			return apperrors.NewConfigError("%s threshold cannot be negative: %d", name, v)
		}
	}
	if err := c.ToKernelConfig().Validate(); err != nil {
		return apperrors.NewConfigError("invalid thresholds: %v", err)
	}
	if c.Calibrate {
		return nil
	}
	if c.TUI && c.Op != OpCompare {
		return apperrors.NewConfigError("the dashboard is only available with -op %s", OpCompare)
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("-tui cannot be combined with -quiet")
	}
	if c.X == "" {
		return apperrors.NewConfigError("operand -x is required")
	}
	if c.NeedsY() && c.Y == "" {
		return apperrors.NewConfigError("operand -y is required for '%s'", c.Op)
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// Environment variables fill in flags that were not given explicitly, then
// the result is validated.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", DefaultOp, fmt.Sprintf("Operation to run: one of [%s].", strings.Join(Operations, ", ")))
	fs.StringVar(&config.X, "x", "", "First operand (literal, or @file to read it from a file).")
	fs.StringVar(&config.Y, "y", "", "Second operand (literal, or @file).")
	fs.IntVar(&config.InputRadix, "radix", DefaultRadix, "Radix of the operands (2-36).")
	fs.IntVar(&config.OutputRadix, "output-radix", DefaultRadix, "Radix of the printed result (2-36).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the operation.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose: debug logging and the full value of the result.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Details, "d", false, "Display configuration, timings and memory statistics.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print the bare result for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&config.Strategy, "strategy", DefaultStrategy, fmt.Sprintf("Multiplication strategy: one of [%s].", strings.Join(bigint.StrategyNames(), ", ")))
	fs.BoolVar(&config.Reference, "check", false, "Cross-check the result against the reference implementation.")

	fs.IntVar(&config.KaratsubaThreshold, "karatsuba-threshold", 0, "Operand length (digits) from which Karatsuba is used (0 = auto).")
	fs.IntVar(&config.ToomThreshold, "toom-threshold", 0, "Operand length (digits) from which Toom-3 is used (0 = auto).")
	fs.IntVar(&config.FFTThreshold, "fft-threshold", 0, "Operand length (digits) from which FFT multiplication is used (0 = auto).")
	fs.IntVar(&config.BurnikelThreshold, "burnikel-threshold", 0, "Divisor length (digits) from which Burnikel-Ziegler is used (0 = auto).")
	fs.IntVar(&config.NewtonInversionThreshold, "newton-threshold", 0, "Divisor length (digits) from which Newton inversion is used (0 = auto).")
	fs.IntVar(&config.BarrettThreshold, "barrett-threshold", 0, "Divisor length (digits) from which Barrett division is used (0 = auto).")
	fs.IntVar(&config.ToStringFastThreshold, "tostring-threshold", 0, "Length (digits) from which divide-and-conquer formatting is used (0 = auto).")
	fs.IntVar(&config.FromStringLargeThreshold, "fromstring-threshold", 0, "Number of parts from which pairwise parsing is used (0 = auto).")
	fs.Uint64Var(&config.WorkThreshold, "work-threshold", 0, "Work units between interrupt polls (0 = default).")
	fs.IntVar(&config.MaxInputDigits, "max-digits", DefaultMaxInputDigits, "Maximum size of a parsed operand, in digits.")

	fs.BoolVar(&config.Calibrate, "calibrate", false, "Measure the multiplication crossovers and save a calibration profile.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path to calibration profile file (default: ~/.bigcalc_calibration.json).")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&config.TUI, "tui", false, "Show the strategy comparison as an interactive dashboard (-op compare).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Op = strings.ToLower(config.Op)
	config.Strategy = strings.ToLower(config.Strategy)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}
