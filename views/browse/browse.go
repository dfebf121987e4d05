package browse

import (
	"fmt"
	"strings"

	"sweepstakes-tui/helpers"
	"sweepstakes-tui/styles"
	"sweepstakes-tui/sweeps"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the browse view
func Nav(width int, finding bool) string {
	var left string
	if finding {
		left = strings.Join([]string{
			styles.Key("Enter") + " open",
			styles.Key("Ctrl+v") + " paste",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " move",
			styles.Key("Enter") + " open",
			styles.Key("f") + " find by id",
			styles.Key("n") + " new",
			styles.Key("d") + " delete",
			styles.Key("r") + " reload",
			styles.Key("s") + " settings",
			styles.Key("g") + " guide",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " quit",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// displayName resolves a human-readable title from the listing metadata
func displayName(id string, listing map[string]sweeps.Record) string {
	rec, ok := listing[id]
	if !ok {
		return id
	}
	meta := sweeps.ParseMeta(rec.Details)
	if meta.Name != "" {
		return meta.Name
	}
	return id
}

// RenderList renders the sweepstakes listing
func RenderList(ids []string, listing map[string]sweeps.Record, selectedIdx int, walletAddr string) string {
	var listItems []string

	if len(ids) == 0 {
		listItems = append(listItems, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No sweepstakes found. Press 'n' to create one or 'f' to find one by id."))
		return strings.Join(listItems, "\n\n")
	}

	for i, id := range ids {
		var itemStyle lipgloss.Style
		var marker string
		var title, idLine string

		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			title = displayName(id, listing)
			idLine = lipgloss.NewStyle().Foreground(styles.CText).Render(id)
		} else {
			marker = "  "
			itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
			title = helpers.FadeString(displayName(id, listing), "#F25D94", "#EDFF82")
			idLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#ba3fd7")).Render(helpers.FadeString(id, "#7D5AFC", "#FF87D7"))
		}

		if rec, ok := listing[id]; ok {
			badges := fmt.Sprintf("  %d entrants · %d draws", rec.EntryCount, rec.PullCount)
			title += lipgloss.NewStyle().Foreground(styles.CMuted).Render(badges)
			if rec.Locked {
				title += lipgloss.NewStyle().Foreground(styles.CWarn).Render("  🔒")
			}
			if walletAddr != "" && strings.EqualFold(strings.TrimSpace(rec.Creator), strings.TrimSpace(walletAddr)) {
				title = "✓ " + title
			}
		}

		listItems = append(listItems, marker+itemStyle.Render(title)+"\n  "+idLine)
	}

	return strings.Join(listItems, "\n\n")
}

// Render renders the full browse view
func Render(ids []string, listing map[string]sweeps.Record, selectedIdx int, walletAddr string, loading bool, spinnerView string) string {
	header := styles.TitleStyle.Render("Sweepstakes")
	subtitle := lipgloss.NewStyle().Foreground(styles.CMuted).Render("Browse registered sweepstakes")

	if loading {
		return header + "\n" + subtitle + "\n\n" + spinnerView + " loading listing…"
	}

	listView := RenderList(ids, listing, selectedIdx, walletAddr)

	statusBar := lipgloss.NewStyle().Foreground(styles.CMuted).Render(
		fmt.Sprintf("%d sweepstakes · ✓ yours", len(ids)),
	)

	return header + "\n" + subtitle + "\n\n" + listView + "\n\n" + statusBar
}
