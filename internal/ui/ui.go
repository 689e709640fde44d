// Package ui renders the terminal surface: panels, prompts, and the
// typewriter effect for assistant replies.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Foreground(lipgloss.Color("12")).
			Bold(true).
			Padding(0, 2)

	goodbyeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Foreground(lipgloss.Color("10")).
			Padding(0, 2)

	youStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Console writes the assistant's terminal output.
type Console struct {
	out   io.Writer
	delay time.Duration // per-rune typing delay; 0 disables the effect
}

// NewConsole returns a console writing to out.
func NewConsole(out io.Writer, delay time.Duration) *Console {
	return &Console{out: out, delay: delay}
}

// Banner prints the styled startup panel.
func (c *Console) Banner(text string) {
	fmt.Fprintln(c.out, bannerStyle.Render(text))
}

// Goodbye prints the styled exit panel.
func (c *Console) Goodbye(text string) {
	fmt.Fprintln(c.out, goodbyeStyle.Render(text))
}

// Prompt prints the input prompt without a trailing newline.
func (c *Console) Prompt() {
	fmt.Fprintf(c.out, "%s: ", youStyle.Render("You"))
}

// Info prints a plain line.
func (c *Console) Info(text string) {
	fmt.Fprintln(c.out, text)
}

// Reply prints the assistant label and types text one rune at a time.
func (c *Console) Reply(text string) {
	fmt.Fprintf(c.out, "%s: ", assistantStyle.Render("Assistant"))
	for _, r := range text {
		fmt.Fprintf(c.out, "%c", r)
		if c.delay > 0 {
			time.Sleep(c.delay)
		}
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out)
}
