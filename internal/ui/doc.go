// Package ui provides theme and color support for the command-line output.
// It holds the ANSI palettes used by the presenters and renders section
// headings with lipgloss.
package ui
