// Package reporter implements the console progress sink.
package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/licache/internal/core/ports"
)

var _ ports.Reporter = (*Console)(nil)

// Brand colors.
var (
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Console writes progress lines to a terminal or any io.Writer.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	confirm lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

// New creates a Console writing to w with the given color profile.
func New(w io.Writer, profile termenv.Profile) *Console {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &Console{
		w:       w,
		confirm: r.NewStyle().Foreground(Green),
		warn:    r.NewStyle().Foreground(Yellow),
		fail:    r.NewStyle().Foreground(Red),
	}
}

// NewStdout creates a Console on stdout, honouring NO_COLOR.
func NewStdout() *Console {
	return New(os.Stdout, ColorProfile())
}

// ColorProfile returns Ascii when NO_COLOR is set, the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Info prints a progress line.
func (c *Console) Info(msg string) {
	c.println(msg)
}

// Confirm prints a success line.
func (c *Console) Confirm(msg string) {
	c.println(c.confirm.Render(msg))
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	c.println(c.warn.Render(msg))
}

// Error prints a failure.
func (c *Console) Error(err error) {
	c.println(c.fail.Render("✗ " + err.Error()))
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w, s)
}
