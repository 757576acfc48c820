package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "bigcalc"
	if runtime.GOOS == "windows" {
		binName = "bigcalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/bigcalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build bigcalc: %v", err)
	}

	hugeOperand := filepath.Join(tmpDir, "huge.txt")
	if err := os.WriteFile(hugeOperand, []byte(strings.Repeat("9", 2_000_000)), 0o600); err != nil {
		t.Fatal(err)
	}
	profile := filepath.Join(tmpDir, "profile.json")

	tests := []struct {
		name     string
		args     []string
		wantOut  string // case-insensitive substring
		wantCode int
	}{
		{"Multiply", []string{"-x", "12345678901234567890", "-y", "98765432109876543210"}, "x * y = 1,219,326,311,370,217,952,237,463,801,111,263,526,900", 0},
		{"Divide", []string{"-op", "div", "-x", "1000", "-y", "7"}, "x mod y = 6", 0},
		{"Quiet hex", []string{"-q", "-op", "convert", "-x", "48879", "-output-radix", "16"}, "beef", 0},
		{"Compare", []string{"-op", "compare", "-x", "99999999999", "-y", "99999999999"}, "All valid results are consistent", 0},
		{"Help", []string{"--help"}, "usage", 0},
		{"Version Flag", []string{"--version"}, "bigcalc", 0},
		{"Invalid Operation", []string{"-op", "pow", "-x", "1", "-y", "1"}, "unrecognized operation", 4},
		{"Division By Zero", []string{"-op", "div", "-x", "1", "-y", "0"}, "division by zero", 4},
		{"Very Short Timeout", []string{"-x", "@" + hugeOperand, "-y", "@" + hugeOperand, "-timeout", "1ms"}, "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-calibration-profile", profile}, tt.args...)
			cmd := exec.Command(binPath, args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running bigcalc: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("output missing %q\nOutput: %s", tt.wantOut, outStr)
			}
		})
	}
}
