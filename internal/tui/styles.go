package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
)

// TranscriptBorder returns the rounded border drawn around the transcript.
func TranscriptBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor)
}

// InputStyle renders an echoed input line.
func InputStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(dimColor)
}

// ReplyStyle renders a reply line.
func ReplyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

// PromptStyle renders the text input prompt.
func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColor)
}

// transcriptSize returns the viewport size that fits a terminal of the given
// size after the border, the input line and the help bar. Never below 1x1.
func transcriptSize(width, height int) (w, h int) {
	const borderCells = 2
	const chromeLines = 2 // input + help

	w = width - borderCells
	h = height - borderCells - chromeLines
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
