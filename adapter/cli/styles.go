package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

var (
	highColor    = lipgloss.Color("#F87171") // Red
	mediumColor  = lipgloss.Color("#F59E0B") // Amber
	lowColor     = lipgloss.Color("#10B981") // Green
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	warningColor = lipgloss.Color("#FBBF24") // Yellow

	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	overdueStyle = lipgloss.NewStyle().Foreground(highColor).Bold(true)

	labelStyles = map[domain.Label]lipgloss.Style{
		domain.LabelHigh:   lipgloss.NewStyle().Foreground(highColor).Bold(true),
		domain.LabelMedium: lipgloss.NewStyle().Foreground(mediumColor).Bold(true),
		domain.LabelLow:    lipgloss.NewStyle().Foreground(lowColor),
	}
)

// LabelBadge renders a priority label in its color, padded to a fixed width.
func LabelBadge(label domain.Label) string {
	style, ok := labelStyles[label]
	if !ok {
		style = mutedStyle
	}
	return style.Width(6).Render(string(label))
}

// Title renders a heading.
func Title(s string) string { return titleStyle.Render(s) }

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Warning renders a warning line.
func Warning(s string) string { return warningStyle.Render("! " + s) }

// Overdue renders the overdue marker.
func Overdue() string { return overdueStyle.Render("[OVERDUE]") }
