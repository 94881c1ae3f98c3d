package output

import "strings"

// Format specifies the output format of a resolved sequence.
type Format string

const (
	// FormatText prints one resource id per line.
	FormatText Format = "text"

	// FormatJSON prints {"js": [...]}.
	FormatJSON Format = "json"

	// FormatYAML prints js: [...].
	FormatYAML Format = "yaml"

	// FormatTable prints a styled table with positions and dependencies.
	FormatTable Format = "table"

	// FormatTree prints the dependency tree of each root.
	FormatTree Format = "tree"
)

// String returns the string representation of the output format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a string into a Format.
// The second result is false for unknown formats.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	case "table":
		return FormatTable, true
	case "tree":
		return FormatTree, true
	default:
		return "", false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"text", "json", "yaml", "table", "tree"}
}
