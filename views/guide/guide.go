package guide

import (
	"strings"

	"sweepstakes-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the guide view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("l") + " debug log",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the quick guide view
func Render() string {
	h := styles.TitleStyle.Render("Quick Guide")

	muted := lipgloss.NewStyle().Foreground(styles.CMuted)
	text := lipgloss.NewStyle().Foreground(styles.CText)

	lines := []string{
		h,
		"",
		muted.Render("Getting started:"),
		"",
		text.Render("1. Add a gateway under ") + styles.Key("s") + text.Render(" Settings and activate it with Enter."),
		text.Render("2. Place a wallet key file in the keystore directory; the app"),
		text.Render("   picks it up automatically and unlock prompts appear as needed."),
		text.Render("3. Press ") + styles.Key("n") + text.Render(" to register a sweepstakes with its entrant list."),
		text.Render("4. Share the sweepstakes id (or its QR code via ") + styles.Key("w") + text.Render(") so others can find it."),
		text.Render("5. Press ") + styles.Key("p") + text.Render(" on your own sweepstakes to draw a winner."),
		"",
		muted.Render("While a draw is pending the app keeps reconciling with the"),
		muted.Render("process until the winner is known. Leaving the detail view"),
		muted.Render("pauses reconciliation; it resumes when you come back."),
		"",
		muted.Render("Only the creator can edit entrants, draw winners or delete."),
		muted.Render("A locked sweepstakes keeps its entrant list read-only."),
	}

	return strings.Join(lines, "\n")
}
