package settings

import (
	"strings"

	"sweepstakes-tui/config"
	"sweepstakes-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for settings view
func Nav(width int, settingsMode string) string {
	var left string
	if settingsMode == "add" || settingsMode == "edit" {
		left = strings.Join([]string{
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("e") + " edit",
			styles.Key("d") + " delete",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the gateway settings view
func Render(gateways []config.Gateway, selectedIdx int) string {
	h := styles.TitleStyle.Render("Gateway Settings")

	// List mode
	lines := []string{h, ""}

	if len(gateways) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No gateways configured."))
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Press ")+styles.Key("a")+lipgloss.NewStyle().Foreground(styles.CMuted).Render(" to add your first gateway."))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Configured Gateways:"))
		lines = append(lines, "")

		for i, gw := range gateways {
			var marker string
			if gw.Active {
				marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
			} else {
				marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
			}

			nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
			urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

			if i == selectedIdx {
				nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
				urlStyle = urlStyle.Background(styles.CPanel)
				marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
			}

			line := marker + nameStyle.Render(gw.Name)
			lines = append(lines, line)
			lines = append(lines, "  "+urlStyle.Render(gw.URL))
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}
