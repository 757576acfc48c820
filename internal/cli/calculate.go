package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the operation, timeout, environment and
// the kernel thresholds in effect.
func PrintExecutionConfig(cfg config.AppConfig, kernel bigint.Config, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.Heading("Execution Configuration"))
	fmt.Fprintf(out, "Running %s%s%s (radix %d in, %d out) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Op, ui.ColorReset(), cfg.InputRadix, cfg.OutputRadix,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Multiply thresholds: Karatsuba=%s%d%s, Toom-3=%s%d%s, FFT=%s%d%s digits.\n",
		ui.ColorCyan(), kernel.KaratsubaThreshold, ui.ColorReset(),
		ui.ColorCyan(), kernel.ToomThreshold, ui.ColorReset(),
		ui.ColorCyan(), kernel.FFTThreshold, ui.ColorReset())
	fmt.Fprintf(out, "Divide thresholds: Burnikel-Ziegler=%s%d%s, Barrett=%s%d%s, Newton=%s%d%s digits.\n",
		ui.ColorCyan(), kernel.BurnikelThreshold, ui.ColorReset(),
		ui.ColorCyan(), kernel.BarrettThreshold, ui.ColorReset(),
		ui.ColorCyan(), kernel.NewtonInversionThreshold, ui.ColorReset())
	fmt.Fprintf(out, "Interrupt poll every %s%d%s work units.\n",
		ui.ColorCyan(), kernel.WorkEstimateThreshold, ui.ColorReset())
}

// PrintExecutionMode displays whether one strategy runs or all of them
// are compared.
func PrintExecutionMode(strategies []bigint.Strategy, out io.Writer) {
	var modeDesc string
	if len(strategies) > 1 {
		names := make([]string, len(strategies))
		for i, s := range strategies {
			names[i] = s.String()
		}
		modeDesc = fmt.Sprintf("Parallel comparison of %s", strings.Join(names, ", "))
	} else {
		modeDesc = fmt.Sprintf("Single operation with the %s%s%s strategy",
			ui.ColorGreen(), strategies[0], ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n%s\n", ui.Heading("Starting Execution"))
}
