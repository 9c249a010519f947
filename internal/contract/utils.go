package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/satscout/schema"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgGreen, color.Bold) // HighColor represents a strong result.
	MediumColor = color.New(color.FgYellow)            // MediumColor represents an average result, not bold.
	LowColor    = color.New(color.FgRed)               // LowColor represents a weak result.
)

// Labels for absent data in console output.
const (
	NoDataLabel              = "No data found"
	LocationUnavailableLabel = "Location unavailable"
)

// GetPlainLabel returns a plain text label for the tier. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(tier schema.Tier) string {
	if tier == "" {
		return "-"
	}
	return string(tier)
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(tier schema.Tier) string {
	text := GetPlainLabel(tier)

	switch tier {
	case schema.HighTier:
		return HighColor.Sprint(text)
	case schema.MediumTier:
		return MediumColor.Sprint(text)
	case schema.LowTier:
		return LowColor.Sprint(text)
	default:
		return text
	}
}

// MapURL returns an OpenStreetMap link centered on the coordinates.
func MapURL(c schema.Coordinates) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=17/%.6f/%.6f", c.Lat, c.Lon, c.Lat, c.Lon)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. Empty means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// MatchesFilter reports whether a school matches a case-insensitive substring filter
// on its name or DBN. An empty filter matches everything.
func MatchesFilter(s schema.School, filter string) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(s.Name), f) || strings.Contains(strings.ToLower(s.DBN), f)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for lookup history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".satscout_history.db"
	}
	return filepath.Join(homeDir, ".satscout_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
