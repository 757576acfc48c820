package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "< 1µs"},
		{500 * time.Nanosecond, "0µs"},
		{750 * time.Microsecond, "750µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2 * time.Minute, "2m0s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		b    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.b); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.b, got, tt.want)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"7", "7"},
		{"999", "999"},
		{"1000", "1,000"},
		{"1234567", "1,234,567"},
		{"-1234567", "-1,234,567"},
		{"-100", "-100"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRadixString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    string
		radix int
		want  string
	}{
		{"1234567", 10, "1,234,567"},
		{"deadbeef", 16, "dead_beef"},
		{"1deadbeef", 16, "1_dead_beef"},
		{"-101", 2, "-101"},
		{"-10110", 2, "-1_0110"},
	}
	for _, tt := range tests {
		if got := FormatRadixString(tt.in, tt.radix); got != tt.want {
			t.Errorf("FormatRadixString(%q, %d) = %q, want %q", tt.in, tt.radix, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("1", 50) + strings.Repeat("2", 50) + "3"
	if got := TruncateMiddle(long, 100, 5); got != "11111...22223" {
		t.Errorf("TruncateMiddle = %q", got)
	}
	if got := TruncateMiddle("12345", 100, 2); got != "12345" {
		t.Errorf("short string changed: %q", got)
	}
}
