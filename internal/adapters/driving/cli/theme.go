package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// palette renders command output. Styles apply only on a terminal.
type palette struct {
	Title   func(...string) string
	Muted   func(...string) string
	Success func(...string) string
	Warning func(...string) string
	Error   func(...string) string
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

// newPalette returns a styled palette when w is a terminal and a plain one otherwise.
func newPalette(w io.Writer) palette {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return palette{
			Title:   plain,
			Muted:   plain,
			Success: plain,
			Warning: plain,
			Error:   plain,
		}
	}

	return palette{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Render,
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Render,
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Render,
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Render,
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Render,
	}
}
