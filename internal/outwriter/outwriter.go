// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/satscout/internal/contract"
	"golang.org/x/term"
)

// headerWriter is where progress headers go. Stdout is reserved for results.
var headerWriter io.Writer = os.Stderr

// LogDirectoryHeader prints a concise header before the directory is fetched.
func LogDirectoryHeader(cfg *contract.Config) {
	_, _ = fmt.Fprintf(headerWriter, "🏫 Directory: %s\n", cfg.DirectoryURL)
	if cfg.Filter != "" {
		_, _ = fmt.Fprintf(headerWriter, "🔎 Filter: %q\n", cfg.Filter)
	}
}

// GetMaxTableLocationWidth calculates the maximum width for the location column in
// table output based on terminal width.
func GetMaxTableLocationWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + DBN + Map columns, and the name column which gets its own cap
	baseWidth := 30 + maxNameWidth

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
