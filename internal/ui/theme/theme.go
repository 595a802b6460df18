// Package theme holds the CLI's terminal styles.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
)

// Color palette, emerald on stone like the study portal
var (
	Primary   = lipgloss.Color("#10B981") // Emerald
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F5F5F4") // Stone 100
	TextDim   = lipgloss.Color("#A8A29E") // Stone 400
	Border    = lipgloss.Color("#44403C") // Stone 700
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(10)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Page = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Award = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// ProgressBar renders pct (0-100) as a bar width cells wide.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = max(0, min(100, pct))
	filled := int(pct / 100 * float64(width))
	return ProgressFilled.Render(strings.Repeat("█", filled)) +
		ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

// Points formats a point total with thousands separators.
func Points(n int) string {
	return humanize.Comma(int64(n)) + " TP"
}

// AwardNotice renders the transient notice shown after an award.
func AwardNotice(amount int, reason string, total int) string {
	return Award.Render(fmt.Sprintf("+%d", amount)) + " " + reason + " " +
		Hint.Render("("+Points(total)+")")
}

// Field renders one "label value" line.
func Field(label, value string) string {
	return Label.Render(label) + " " + Body.Render(value)
}
