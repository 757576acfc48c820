package format

import "strings"

// FormatNumberString inserts separators into a numeric string: commas every
// three digits. A leading '-' is preserved.
func FormatNumberString(s string) string {
	return groupDigits(s, 3, ',')
}

// FormatRadixString groups the digits of a number printed in radix for
// readability. Decimal values use thousands separators; other radixes are
// split into groups of four with '_', the way Go literals are written.
func FormatRadixString(s string, radix int) string {
	if radix == 10 {
		return FormatNumberString(s)
	}
	return groupDigits(s, 4, '_')
}

func groupDigits(s string, group int, sep byte) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= group {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/group)
	builder.WriteString(prefix)

	first := n % group
	if first == 0 {
		first = group
	}
	builder.WriteString(s[:first])
	for i := first; i < n; i += group {
		builder.WriteByte(sep)
		builder.WriteString(s[i : i+group])
	}
	return builder.String()
}

// TruncateMiddle keeps the first and last edge characters of s and joins
// them with "...". Strings no longer than limit are returned unchanged.
func TruncateMiddle(s string, limit, edge int) string {
	if len(s) <= limit || 2*edge >= len(s) {
		return s
	}
	return s[:edge] + "..." + s[len(s)-edge:]
}
