package internal

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// UI handles terminal output concerns: quiet/verbose gating, progress bars,
// and markdown rendering.
type UI struct {
	verbose bool
	quiet   bool
}

// NewUI creates a UI with the given verbosity flags.
func NewUI(verbose, quiet bool) *UI {
	return &UI{verbose: verbose, quiet: quiet}
}

// Printf prints a status message unless quiet mode is enabled.
func (ui *UI) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Printf(format, args...)
	}
}

// Verbosef prints a debug message when verbose mode is enabled.
func (ui *UI) Verbosef(format string, args ...any) {
	if ui.verbose {
		fmt.Printf(format, args...)
	}
}

// Errorf prints to stderr regardless of quiet mode.
func (ui *UI) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// NewProgressBar creates a batch progress bar, silent in quiet mode.
func (ui *UI) NewProgressBar(total int, description string) *progressbar.ProgressBar {
	if ui.quiet {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// StdinIsPiped reports whether URLs are being piped in rather than the
// process being attached to a terminal.
func StdinIsPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// RenderMarkdown renders markdown for terminal display with glamour.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return rendered, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	if width > 10 {
		return width - 4
	}
	return width
}
