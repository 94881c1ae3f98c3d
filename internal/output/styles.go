package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. These are the single source of truth; never use inline
// lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: resource ids, cache keys.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow marks repeated nodes in dependency trees.
	ColorYellow = lipgloss.Color("220")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (resource ids, bundle keys).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleRepeat styles tree nodes that were already expanded elsewhere.
	StyleRepeat = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleBold styles headings and summary lines.
	StyleBold = lipgloss.NewStyle().Bold(true)
)

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatKey renders a bundle key as a noun.
func FormatKey(key string) string {
	return StyleNoun.Render(key)
}
