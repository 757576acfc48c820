package config

import (
	"fmt"
	"os"
	"strings"
)

// ResolveOperand returns the literal an operand flag refers to. Values of
// the form "@path" are read from the file at path; surrounding whitespace
// and underscores used as digit separators are removed either way.
func ResolveOperand(value string) (string, error) {
	if path, ok := strings.CutPrefix(value, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading operand file: %w", err)
		}
		value = string(data)
	}
	value = strings.TrimSpace(value)
	return strings.ReplaceAll(value, "_", ""), nil
}
