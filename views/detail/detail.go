package detail

import (
	"fmt"
	"strings"

	"sweepstakes-tui/helpers"
	"sweepstakes-tui/styles"
	"sweepstakes-tui/sweeps"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the detail view
func Nav(width int, detailMode string, isOwner, locked bool) string {
	if detailMode != "view" {
		left := strings.Join([]string{
			styles.Key("l") + " logger",
			styles.Key("Esc") + " cancel",
		}, "   ")
		return styles.NavStyle.Width(width).Render(left)
	}

	keys := []string{
		styles.Key("c") + " copy id",
		styles.Key("w") + " share QR",
		styles.Key("r") + " refresh",
	}
	if isOwner {
		keys = append(keys, styles.Key("p")+" draw winner")
		if !locked {
			keys = append(keys, styles.Key("e")+" edit entrants", styles.Key("a")+" add entrant")
		}
		keys = append(keys, styles.Key("d")+" delete")
	}
	keys = append(keys, styles.Key("l")+" logger", styles.Key("Esc")+" back")

	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// renderMeta renders the header block built from the details metadata
func renderMeta(data *sweeps.Sweepstakes, isOwner bool) []string {
	meta := sweeps.ParseMeta(data.Details)

	title := meta.Name
	if title == "" {
		title = data.ID
	}
	h := styles.TitleStyle.Render(title)

	idStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := idStyle.Render(data.ID)

	badges := []string{}
	if isOwner {
		badges = append(badges, lipgloss.NewStyle().Foreground(styles.CAccent).Render("creator"))
	}
	if data.Locked {
		badges = append(badges, lipgloss.NewStyle().Foreground(styles.CWarn).Render("🔒 locked"))
	}
	if len(badges) > 0 {
		sub += "  " + strings.Join(badges, "  ")
	}

	lines := []string{h, sub}

	if meta.Prize != "" {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("Prize")+"  "+
				lipgloss.NewStyle().Foreground(styles.CText).Render(meta.Prize))
	}
	if meta.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render(meta.Description))
	}
	if meta.EndDate != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Entries close "+meta.EndDate))
	}
	if data.Creator != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("by "+helpers.ShortenAddr(data.Creator)))
	}

	return lines
}

// renderPulls renders the draw history, newest first
func renderPulls(pulls []sweeps.Pull, spinnerView string) []string {
	lines := []string{lipgloss.NewStyle().Foreground(styles.CMuted).Render(fmt.Sprintf("Draws (%d)", len(pulls)))}

	if len(pulls) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No winners drawn yet."))
		return lines
	}

	for _, p := range pulls {
		var row string
		switch {
		case p.Pending():
			row = fmt.Sprintf("%s %s drawing…",
				spinnerView,
				lipgloss.NewStyle().Foreground(styles.CMuted).Render("#"+p.ID))
		case p.Transitioning:
			row = fmt.Sprintf("  %s %s  %s",
				lipgloss.NewStyle().Foreground(styles.CMuted).Render("#"+p.ID),
				lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("🏆 "+p.Winner),
				lipgloss.NewStyle().Foreground(styles.CMuted).Render(helpers.FormatTimestamp(p.Timestamp)))
		default:
			row = fmt.Sprintf("  %s %s  %s",
				lipgloss.NewStyle().Foreground(styles.CMuted).Render("#"+p.ID),
				lipgloss.NewStyle().Foreground(styles.CText).Render("🏆 "+p.Winner),
				lipgloss.NewStyle().Foreground(styles.CMuted).Render(helpers.FormatTimestamp(p.Timestamp)))
		}
		if p.Details != "" {
			row += lipgloss.NewStyle().Foreground(styles.CMuted).Italic(true).Render("  " + helpers.TruncateString(p.Details, 32))
		}
		lines = append(lines, row)
	}

	return lines
}

// Render renders the sweepstakes detail view
func Render(data *sweeps.Sweepstakes, entrantList []string, pulls []sweeps.Pull,
	isOwner, showQR, loading bool, copiedMsg, detailError, spinnerView string) string {

	if data == nil {
		return spinnerView + " loading sweepstakes…"
	}

	lines := renderMeta(data, isOwner)

	if copiedMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg))
	}
	if detailError != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ "+detailError))
	}

	if loading {
		lines = append(lines, "", spinnerView+" loading…")
		return strings.Join(lines, "\n")
	}

	if showQR {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(styles.CMuted).Render("Scan to open this sweepstakes:"),
			helpers.GenerateQRCode(data.ID))
		return strings.Join(lines, "\n")
	}

	// Entrant list
	lines = append(lines, "", lipgloss.NewStyle().Foreground(styles.CMuted).Render(fmt.Sprintf("Entrants (%d)", len(entrantList))))
	if len(entrantList) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("The entrant list is empty."))
	} else {
		for _, name := range entrantList {
			lines = append(lines, "  "+lipgloss.NewStyle().Foreground(styles.CText).Render(name))
		}
	}

	lines = append(lines, "")
	lines = append(lines, renderPulls(pulls, spinnerView)...)

	return strings.Join(lines, "\n")
}
