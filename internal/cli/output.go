// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose prints values in full.
	Verbose bool
	// Details adds timing and size metrics.
	Details bool
	// OutputRadix is the radix the values are written in.
	OutputRadix int
}

// WriteResultToFile writes res, with a commented header, to
// cfg.OutputFile. Parent directories are created as needed.
func WriteResultToFile(res orchestration.OperationResult, cfg OutputConfig) (err error) {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", res.Op)
	fmt.Fprintf(file, "# Strategy: %s\n", res.Strategy)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "# Radix: %d\n", cfg.OutputRadix)
	fmt.Fprintf(file, "# Bits: %d\n", res.Value.BitLength())
	fmt.Fprintf(file, "\n")
	_, err = io.WriteString(file, FormatQuietResult(res)+"\n")
	return err
}

// FormatQuietResult returns the bare result for scripting: the value, and
// for "div" the remainder on a second line.
func FormatQuietResult(res orchestration.OperationResult) string {
	if res.Op == config.OpDivide {
		return res.Text + "\n" + res.RemainderText
	}
	return res.Text
}

// DisplayQuietResult prints the bare result.
func DisplayQuietResult(out io.Writer, res orchestration.OperationResult) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResultWithConfig displays res in the mode cfg selects and saves it
// when an output file is configured.
func DisplayResultWithConfig(out io.Writer, res orchestration.OperationResult, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, res)
	} else {
		DisplayResult(res, orchestration.PresentationOptions{
			OutputRadix: cfg.OutputRadix,
			Verbose:     cfg.Verbose,
			Details:     cfg.Details,
		}, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteResultToFile(res, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
