package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// printCalibrationResults formats and prints one sweep as a table.
func printCalibrationResults(out io.Writer, parameter string, results []calibrationResult, bestThreshold int) {
	fmt.Fprintf(out, "\n%s\n", ui.Heading("Calibration Summary: "+parameter))
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s    │ %sTime per product%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		thresholdLabel := fmt.Sprintf("%d digits", res.Threshold)
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Threshold == bestThreshold && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n", ui.ColorCyan(), thresholdLabel, ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the crossovers stored in a profile.
func printCalibrationOutput(profile *CalibrationProfile, out io.Writer) {
	fmt.Fprintf(out, "%sCalibration%s: karatsuba=%s%d%s digits, toom3=%s%d%s digits (cpu: %s)\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), profile.KaratsubaThreshold, ui.ColorReset(),
		ui.ColorYellow(), profile.ToomThreshold, ui.ColorReset(),
		profile.CPUFeatures)
}
