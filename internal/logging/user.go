package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output with colored status indicators. These write to
// stdout/stderr directly for CLI output, separate from the structured
// debug logging. The styles are static configuration; lipgloss degrades
// to plain text when the terminal has no color support.

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	remedyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
)

// UserOut and UserErr are the destinations for user-facing output.
// Swappable for tests.
var (
	UserOut io.Writer = os.Stdout
	UserErr io.Writer = os.Stderr
)

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(UserOut, "%s %s\n", infoStyle.Render("ℹ"), fmt.Sprintf(format, args...))
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(UserOut, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(UserErr, "%s %s\n", warningStyle.Render("⚠"), fmt.Sprintf(format, args...))
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(UserErr, "%s %s\n", errorStyle.Render("✗"), fmt.Sprintf(format, args...))
}

// UserRemedy prints a remediation hint to stderr, indented under the
// error it belongs to.
func UserRemedy(remedy string) {
	if remedy == "" {
		return
	}
	fmt.Fprintf(UserErr, "  %s %s\n", remedyStyle.Render("→"), remedy)
}
