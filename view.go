package main

import (
	"strings"
	"time"

	"sweepstakes-tui/config"
	"sweepstakes-tui/helpers"
	"sweepstakes-tui/styles"
	"sweepstakes-tui/sweeps"
	"sweepstakes-tui/views/browse"
	"sweepstakes-tui/views/detail"
	"sweepstakes-tui/views/guide"
	"sweepstakes-tui/views/home"
	logview "sweepstakes-tui/views/log"
	"sweepstakes-tui/views/settings"
	"sweepstakes-tui/wallet"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) renderDeleteDialog() string {
	var (
		dialogBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#874BFD")).
				Padding(1, 0).
				BorderTop(true).
				BorderLeft(true).
				BorderRight(true).
				BorderBottom(true)

		buttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(lipgloss.Color("#888B7E")).
				Padding(0, 3).
				MarginTop(1)

		activeButtonStyle = buttonStyle.Copy().
					Foreground(lipgloss.Color("#FFF7DB")).
					Background(lipgloss.Color("#F25D94")).
					MarginRight(2).
					Underline(true)
	)
	msg := helpers.FadeString("Are you sure you want to delete the sweepstakes "+helpers.TruncateString(m.deleteDialogID, 24)+"?", "#F25D94", "#EDFF82")
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)

	// Apply active style to the selected button
	var okButton, cancelButton string
	if m.deleteDialogYesSelected {
		okButton = activeButtonStyle.Render("Yes")
		cancelButton = buttonStyle.Render("No")
	} else {
		okButton = buttonStyle.Copy().MarginRight(2).Render("Yes")
		cancelButton = activeButtonStyle.Copy().MarginRight(0).Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, buttons)

	dialog := dialogBoxStyle.Render(ui)

	// Center the dialog on screen
	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	// Wallet status
	var walletDisplay string
	switch {
	case m.walletAddr != "":
		walletDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Wallet: " + helpers.FadeString(helpers.ShortenAddr(m.walletAddr), "#F25D94", "#EDFF82"))
	case m.walletState == wallet.Connecting:
		walletDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Wallet: connecting…")
	case m.walletErrMsg != "":
		walletDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Wallet: " + m.walletErrMsg)
	default:
		walletDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Wallet: not connected")
	}

	// Gateway status with green dot
	var statusIcon string
	var statusColor lipgloss.Color
	var statusText string

	if m.gatewayURL == "" {
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "No Gateway"
	} else if m.connecting {
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "Connecting..."
	} else if !m.connected {
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "Connection Failed"
	} else {
		statusIcon = "●"
		statusColor = cAccent
		// Find active gateway name
		for _, gw := range m.gateways {
			if gw.Active && gw.URL == m.gatewayURL {
				statusText = gw.Name
				break
			}
		}
		if statusText == "" {
			statusText = "Connected"
		}
	}

	gatewayDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	// Center title
	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("sweepstakes", "#7EE787", "#82CFFD"))

	// Calculate widths
	walletWidth := lipgloss.Width(walletDisplay)
	gatewayWidth := lipgloss.Width(gatewayDisplay)
	titleWidth := lipgloss.Width(titleText)

	// Calculate spacing to center the title
	totalOtherWidth := walletWidth + gatewayWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = walletDisplay + "\n" + titleText + "\n" + gatewayDisplay
	} else {
		// Three-column layout: Wallet | Title (centered) | Gateway
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		leftSpacer := strings.Repeat(" ", max(1, leftPadding))
		rightSpacer := strings.Repeat(" ", max(1, rightPadding))

		headerLine = walletDisplay + leftSpacer + titleText + rightSpacer + gatewayDisplay
	}

	// Add separator line
	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// listingMap snapshots the listing records for the ids currently shown
func (m *model) listingMap() map[string]sweeps.Record {
	out := make(map[string]sweeps.Record, len(m.ids))
	for _, id := range m.ids {
		if rec, ok := m.listingRecord(id); ok {
			out[id] = rec
		}
	}
	return out
}

func (m *model) renderFindBox() string {
	inputView := m.findInput.View() + "\n"

	inputView += hotkeyStyle.Render("Enter") + " open   " +
		hotkeyStyle.Render("Esc") + " cancel   " +
		hotkeyStyle.Render("Ctrl+v") + " paste"

	// Show error message if present and recent
	if m.findError != "" && time.Since(m.findErrTime) < 3*time.Second {
		errorStyle := lipgloss.NewStyle().Foreground(cWarn).Bold(true)
		inputView += "\n" + errorStyle.Render(m.findError)
	}

	return "\n\n" + panelStyle.
		BorderForeground(cAccent2).
		Render(inputView)
}

func (m *model) View() string {
	// Render global header outside of page content
	globalHdr := m.globalHeader()
	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(globalHdr)

	var pageContent string
	var nav string

	switch m.activePage {
	case config.PageHome:
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(home.Render(m.homeForm))
		nav = home.Nav(m.w - 2)

	case config.PageBrowse:
		browseContent := browse.Render(m.ids, m.listingMap(), m.selectedIdx, m.walletAddr, m.listingLoading, m.spin.View())

		if m.creating && m.form != nil {
			browseContent = styles.TitleStyle.Render("New Sweepstakes") + "\n\n" + m.form.View()
		} else if m.finding {
			browseContent += m.renderFindBox()
		} else if m.findError != "" && time.Since(m.findErrTime) < 3*time.Second {
			errorStyle := lipgloss.NewStyle().Foreground(cWarn).Bold(true)
			browseContent += "\n\n" + errorStyle.Render("⚠ " + m.findError)
		}

		if m.detailLoading {
			browseContent += "\n\n" + m.spin.View() + " opening…"
		}

		pageContent = panelStyle.Width(max(0, m.w-2)).Render(browseContent)
		nav = browse.Nav(m.w-2, m.finding)

		// Render delete confirmation dialog overlay
		if m.showDeleteDialog {
			return m.renderDeleteDialog()
		}

	case config.PageDetail:
		var detailContent string
		if m.detailMode != "view" && m.form != nil {
			var formTitle string
			switch m.detailMode {
			case "edit":
				formTitle = "Edit Entrants"
			case "add":
				formTitle = "Add Entrant"
			case "pull":
				formTitle = "Draw a Winner"
			}
			detailContent = styles.TitleStyle.Render(formTitle) + "\n\n" + m.form.View()
		} else {
			var (
				data     *sweeps.Sweepstakes
				entrants []string
				pulls    []sweeps.Pull
				isOwner  bool
			)
			if m.session != nil {
				data = m.session.Data()
				entrants = m.session.Entrants()
				pulls = m.session.Pulls()
				isOwner = m.session.IsOwner()
			}

			detailError := ""
			if m.detailError != "" && time.Since(m.detailErrTime) < 3*time.Second {
				detailError = m.detailError
			}

			detailContent = detail.Render(data, entrants, pulls,
				isOwner, m.showQR, m.detailLoading, m.copiedMsg, detailError, m.spin.View())
		}

		locked := false
		isOwner := false
		if m.session != nil {
			if d := m.session.Data(); d != nil {
				locked = d.Locked
			}
			isOwner = m.session.IsOwner()
		}

		pageContent = panelStyle.Width(max(0, m.w-2)).Render(detailContent)
		nav = detail.Nav(m.w-2, m.detailMode, isOwner, locked)

		if m.showDeleteDialog {
			return m.renderDeleteDialog()
		}

	case config.PageSettings:
		settingsContent := settings.Render(m.gateways, m.selectedGatewayIdx)

		// Show form if in add/edit mode
		if (m.settingsMode == "add" || m.settingsMode == "edit") && m.form != nil {
			settingsContent = styles.TitleStyle.Render("Gateway Settings") + "\n\n" + m.form.View()
		}

		pageContent = panelStyle.Width(max(0, m.w-2)).Render(settingsContent)
		nav = settings.Nav(m.w-2, m.settingsMode)

	case config.PageGuide:
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(guide.Render())
		nav = guide.Nav(m.w - 2)
	}

	// Render log panel only if enabled
	if m.logEnabled {
		// Ensure viewport height stays in sync with the rendered panel
		reservedHeight := 10
		availableHeight := max(5, m.h-reservedHeight)
		maxLogHeight := min(m.h/3, 15)
		logPanelHeight := min(availableHeight, maxLogHeight)
		m.logViewport.Height = logPanelHeight

		logPanel := logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport)
		content := lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav, logPanel)
		return appStyle.Render(content)
	}

	// Use lipgloss to join sections vertically (without log panel)
	content := lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav)
	return appStyle.Render(content)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
