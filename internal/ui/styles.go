package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): page paths, highlights
// - Muted (gray): secondary info, hints
// - No colored success/error symbols; unicode symbols carry the status.

const accentHex = "#A78BFA"

var (
	// Accent style for page paths and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accentHex))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// AccentColor returns the accent color when stdout can render it.
func AccentColor() (string, bool) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return "", false
	}
	return accentHex, true
}
