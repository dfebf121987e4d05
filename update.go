package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"sweepstakes-tui/config"
	"sweepstakes-tui/entrants"
	"sweepstakes-tui/helpers"
	"sweepstakes-tui/sweeps"
	"sweepstakes-tui/views/home"
	"sweepstakes-tui/wallet"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempCreateName     string
	tempCreatePrize    string
	tempCreateDesc     string
	tempCreateEnd      string
	tempCreateEntrants string
	tempEntrantsText   string
	tempPullDetails    string
	tempAddEntrant     string
	tempGatewayName    string
	tempGatewayURL     string
)

func (m *model) createRegisterForm() {
	tempCreateName = ""
	tempCreatePrize = ""
	tempCreateDesc = ""
	tempCreateEnd = ""
	tempCreateEntrants = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("A display name for the sweepstakes").
				Value(&tempCreateName).
				Placeholder("Spring Giveaway"),

			huh.NewInput().
				Title("Prize").
				Description("What the winner receives (optional)").
				Value(&tempCreatePrize).
				Placeholder("Hardware wallet"),

			huh.NewInput().
				Title("Description").
				Value(&tempCreateDesc).
				Placeholder("Optional details"),

			huh.NewInput().
				Title("End Date").
				Description("When entries close (optional, free text)").
				Value(&tempCreateEnd).
				Placeholder("2026-12-31"),

			huh.NewText().
				Title("Entrants").
				Description("One per line, or separated by commas, semicolons or spaces").
				Value(&tempCreateEntrants).
				Validate(func(s string) error {
					if len(entrants.Parse(s)) == 0 {
						return fmt.Errorf("at least one entrant is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	// Initialize the form
	m.form.Init()
}

func (m *model) createEditEntrantsForm() {
	if m.session == nil {
		return
	}
	tempEntrantsText = entrants.Join(m.session.Entrants())

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Entrants").
				Description("One per line, or separated by commas, semicolons or spaces").
				Value(&tempEntrantsText).
				Validate(func(s string) error {
					if len(entrants.Parse(s)) == 0 {
						return fmt.Errorf("the entrant list cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.form.Init()
}

func (m *model) createAddEntrantForm() {
	tempAddEntrant = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Entrant").
				Description("Name to append to the entrant list").
				Value(&tempAddEntrant).
				Placeholder("Alice").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("entrant name cannot be blank")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.form.Init()
}

func (m *model) createPullForm() {
	tempPullDetails = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Draw Note").
				Description("Optional note recorded with this draw; JSON is kept as-is").
				Value(&tempPullDetails).
				Placeholder("Launch week drawing").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
						if !helpers.IsValidJSON(s) {
							return fmt.Errorf("details look like JSON but do not parse")
						}
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.form.Init()
}

func (m *model) createAddGatewayForm() {
	tempGatewayName = ""
	tempGatewayURL = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gateway Name").
				Description("A friendly name for this endpoint").
				Value(&tempGatewayName).
				Placeholder("Local Process"),

			huh.NewInput().
				Title("Gateway URL").
				Description("The complete endpoint URL (http://...)").
				Value(&tempGatewayURL).
				Placeholder("http://127.0.0.1:8545"),
		),
	).WithTheme(huh.ThemeCatppuccin())

	// Initialize the form
	m.form.Init()
}

func (m *model) createEditGatewayForm(idx int) {
	if idx < 0 || idx >= len(m.gateways) {
		return
	}

	gw := m.gateways[idx]
	tempGatewayName = gw.Name
	tempGatewayURL = gw.URL

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gateway Name").
				Value(&tempGatewayName).
				Placeholder("Local Process"),

			huh.NewInput().
				Title("Gateway URL").
				Value(&tempGatewayURL).
				Placeholder("http://..."),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.form.Init()
}

// createDetails builds the free-form metadata blob for a new sweepstakes
func createDetails() string {
	meta := sweeps.Meta{
		Name:        strings.TrimSpace(tempCreateName),
		Prize:       strings.TrimSpace(tempCreatePrize),
		Description: strings.TrimSpace(tempCreateDesc),
		EndDate:     strings.TrimSpace(tempCreateEnd),
	}
	if meta == (sweeps.Meta{}) {
		return ""
	}
	blob, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(blob)
}

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Home menu form handles its own keys
	if m.activePage == config.PageHome {
		if m.homeForm == nil {
			m.homeForm = home.CreateForm()
		}
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.String() == "esc" {
				return m, tea.Quit
			}
			form, cmd := m.homeForm.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.homeForm = f
				if m.homeForm.State == huh.StateCompleted {
					switch home.TempSelection {
					case "settings":
						m.activePage = config.PageSettings
						m.settingsMode = "list"
					case "guide":
						m.activePage = config.PageGuide
					default:
						m.activePage = config.PageBrowse
					}
					m.homeForm = nil
					return m, nil
				}
			}
			return m, cmd
		}
	}

	// Handle form updates first (before message switching)
	if m.activePage == config.PageBrowse && m.creating && m.form != nil {
		// Intercept ESC key to cancel form
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.creating = false
			m.form = nil
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f

			// Check if form is completed
			if m.form.State == huh.StateCompleted {
				entrantList := entrants.Parse(tempCreateEntrants)
				m.creating = false
				m.form = nil
				m.listingLoading = true
				m.addLog("info", fmt.Sprintf("Registering sweepstakes with %d entrants", len(entrantList)))
				return m, registerSweepstakes(m.session, entrantList, createDetails())
			}

			// Check if form was aborted (ESC pressed)
			if m.form.State == huh.StateAborted {
				m.creating = false
				m.form = nil
				return m, nil
			}
		}
		return m, cmd
	}

	if m.activePage == config.PageDetail && m.detailMode != "view" && m.form != nil {
		// Intercept ESC key to cancel form
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.detailMode = "view"
			m.form = nil
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f

			if m.form.State == huh.StateCompleted {
				mode := m.detailMode
				m.detailMode = "view"
				m.form = nil
				switch mode {
				case "edit":
					newList := entrants.Parse(tempEntrantsText)
					m.addLog("info", fmt.Sprintf("Updating entrant list (%d entrants)", len(newList)))
					return m, updateEntrants(m.session, newList)
				case "add":
					m.addLog("info", fmt.Sprintf("Adding entrant `%s`", strings.TrimSpace(tempAddEntrant)))
					return m, addEntrant(m.session, tempAddEntrant)
				case "pull":
					m.addLog("info", "Requesting a winner draw")
					return m, pullWinner(m.session, strings.TrimSpace(tempPullDetails))
				}
				return m, nil
			}

			if m.form.State == huh.StateAborted {
				m.detailMode = "view"
				m.form = nil
				return m, nil
			}
		}
		return m, cmd
	}

	if m.activePage == config.PageSettings && (m.settingsMode == "add" || m.settingsMode == "edit") && m.form != nil {
		// Intercept ESC key to cancel form
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.settingsMode = "list"
			m.form = nil
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f

			// Check if form is completed
			if m.form.State == huh.StateCompleted {
				if m.settingsMode == "add" {
					if tempGatewayName != "" && tempGatewayURL != "" {
						m.gateways = append(m.gateways, config.Gateway{Name: tempGatewayName, URL: tempGatewayURL})
						m.saveConfig()
						m.addLog("success", fmt.Sprintf("Added gateway: `%s` (%s)", tempGatewayName, tempGatewayURL))
					}
				} else if m.settingsMode == "edit" {
					if m.selectedGatewayIdx >= 0 && m.selectedGatewayIdx < len(m.gateways) {
						m.gateways[m.selectedGatewayIdx].Name = tempGatewayName
						m.gateways[m.selectedGatewayIdx].URL = tempGatewayURL
						m.saveConfig()
						m.addLog("success", fmt.Sprintf("Updated gateway: `%s`", tempGatewayName))
					}
				}
				m.settingsMode = "list"
				m.form = nil
				// Return without the form's cmd to ensure we're back in list mode
				return m, nil
			}

			// Check if form was aborted (ESC pressed)
			if m.form.State == huh.StateAborted {
				m.settingsMode = "list"
				m.form = nil
				return m, nil
			}
		}
		return m, cmd
	}

	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		// Create logger that writes to our buffer
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "",
		})
		// Set log level and styling
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case clientConnectedMsg:
		m.connecting = false
		if msg.err != nil {
			// Connection failed
			m.client = nil
			m.connected = false
			m.session = nil
			m.addLog("error", fmt.Sprintf("Gateway connection failed: `%s`", msg.err.Error()))
		} else {
			// Connection successful
			m.client = msg.client
			m.connected = true
			m.rebuildSession()
			m.addLog("success", fmt.Sprintf("Connected to sweepstakes process at `%s`", msg.client.URL))
			m.listingLoading = true
			return m, loadListing(m.session)
		}
		return m, nil

	case walletConnectedMsg:
		if msg.err != nil {
			m.walletState = wallet.Disconnected
			m.walletAddr = ""
			if errors.Is(msg.err, wallet.ErrNoAccounts) {
				// Normal at first launch; the keystore watcher announces
				// a key that appears later.
				m.walletErrMsg = "No wallet key found"
				m.addLog("warning", "No wallet key found; waiting for a key file to appear")
			} else {
				m.walletErrMsg = msg.err.Error()
				m.addLog("error", fmt.Sprintf("Wallet connection failed: `%s`", msg.err.Error()))
			}
			return m, nil
		}
		m.walletAddr = msg.addr
		m.walletState = wallet.Connected
		m.walletErrMsg = ""
		m.rebuildSession()
		m.addLog("success", fmt.Sprintf("Wallet connected: `%s`", helpers.ShortenAddr(msg.addr)))
		if m.connected {
			m.listingLoading = true
			return m, loadListing(m.session)
		}
		return m, nil

	case walletEventMsg:
		cmds := []tea.Cmd{waitForWalletEvent(m.wal)}
		switch msg.ev.Kind {
		case wallet.EventLoaded:
			m.addLog("info", fmt.Sprintf("Wallet key available: `%s`", helpers.ShortenAddr(msg.ev.Address)))
			if m.walletState != wallet.Connected {
				cmds = append(cmds, connectWallet(m.wal))
			}
		case wallet.EventSwitched:
			m.walletAddr = msg.ev.Address
			m.rebuildSession()
			m.addLog("info", fmt.Sprintf("Active wallet switched to `%s`", helpers.ShortenAddr(msg.ev.Address)))
			// Ownership and session state are wallet-scoped; go back to
			// the listing and reload it
			m.stopPolling()
			m.activePage = config.PageBrowse
			if m.connected {
				m.listingLoading = true
				cmds = append(cmds, loadListing(m.session))
			}
		}
		return m, tea.Batch(cmds...)

	case listingLoadedMsg:
		m.listingLoading = false
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Failed to load sweepstakes listing: `%s`", msg.err.Error()))
			return m, nil
		}
		m.ids = msg.ids
		if m.selectedIdx >= len(m.ids) {
			m.selectedIdx = helpers.Max(0, len(m.ids)-1)
		}
		m.addLog("success", fmt.Sprintf("Listing loaded: %d sweepstakes", len(m.ids)))
		return m, nil

	case sweepstakesOpenedMsg:
		m.detailLoading = false
		if msg.err != nil {
			m.findError = msg.err.Error()
			m.findErrTime = time.Now()
			m.addLog("error", fmt.Sprintf("Could not open sweepstakes: `%s`", msg.err.Error()))
			return m, nil
		}
		m.activePage = config.PageDetail
		m.detailMode = "view"
		m.showQR = false
		m.finding = false
		m.findInput.Blur()
		m.findInput.SetValue("")
		m.addLog("success", fmt.Sprintf("Opened sweepstakes `%s`", msg.id))
		// Resume reconciliation if any draws are still unresolved
		if m.session != nil && m.session.AnyPending() && !m.polling {
			m.polling = true
			return m, schedulePoll()
		}
		return m, nil

	case registeredMsg:
		m.listingLoading = false
		if msg.err != nil {
			m.findError = msg.err.Error()
			m.findErrTime = time.Now()
			if sweeps.IsWalletRejection(msg.err) {
				m.addLog("warning", "Registration rejected in the wallet")
			} else {
				m.addLog("error", fmt.Sprintf("Registration failed: `%s`", msg.err.Error()))
			}
			return m, nil
		}
		m.ids = m.session.AllIDs()
		m.activePage = config.PageDetail
		m.detailMode = "view"
		m.showQR = false
		m.addLog("success", fmt.Sprintf("Registered sweepstakes `%s`", msg.id))
		return m, nil

	case entrantsUpdatedMsg:
		if msg.err != nil {
			m.detailError = msg.err.Error()
			m.detailErrTime = time.Now()
			if sweeps.IsWalletRejection(msg.err) {
				m.addLog("warning", "Entrant update rejected in the wallet")
			} else {
				m.addLog("error", fmt.Sprintf("Entrant update failed: `%s`", msg.err.Error()))
			}
			return m, nil
		}
		m.addLog("success", fmt.Sprintf("Entrant list now has %d entries", len(m.session.Entrants())))
		return m, nil

	case pullRequestedMsg:
		if msg.err != nil {
			m.detailError = msg.err.Error()
			m.detailErrTime = time.Now()
			if sweeps.IsWalletRejection(msg.err) {
				m.addLog("warning", "Draw request rejected in the wallet")
			} else {
				m.addLog("error", fmt.Sprintf("Draw request failed: `%s`", msg.err.Error()))
			}
			return m, nil
		}
		m.addLog("info", "Draw requested; waiting for the winner")
		// Reconcile immediately. Start the tick chain only if no timer
		// is already running; a second request rides the existing one.
		if m.polling {
			return m, refreshPulls(m.session)
		}
		m.polling = true
		return m, tea.Batch(refreshPulls(m.session), schedulePoll())

	case pullsRefreshedMsg:
		if msg.err != nil {
			// Transient fetch errors do not stop the loop; the tick
			// chain retries on its own.
			m.addLog("debug", fmt.Sprintf("Reconciliation fetch failed: %s", msg.err.Error()))
			return m, nil
		}
		if m.session == nil {
			return m, nil
		}
		if !m.session.AnyPending() {
			m.polling = false
		}
		// Announce freshly resolved winners once, keep the transition
		// styling for one interval, then reset it.
		if m.transitionClearPending {
			return m, nil
		}
		var resolved bool
		for _, p := range m.session.Pulls() {
			if p.Transitioning {
				resolved = true
				m.addLog("success", fmt.Sprintf("Winner drawn: `%s`", p.Winner))
			}
		}
		if resolved {
			m.transitionClearPending = true
			return m, scheduleTransitionClear()
		}
		return m, nil

	case transitionClearedMsg:
		m.transitionClearPending = false
		if m.session != nil {
			m.session.ClearTransitioning()
		}
		return m, nil

	case pollTickMsg:
		// The single tick chain reschedules itself; anything that stops
		// it (navigation, resolution) must flip polling off so a later
		// pull starts a fresh chain.
		if !m.polling || m.activePage != config.PageDetail || m.session == nil {
			m.polling = false
			return m, nil
		}
		if !m.session.AnyPending() {
			m.polling = false
			return m, nil
		}
		return m, tea.Batch(refreshPulls(m.session), schedulePoll())

	case sweepstakesDeletedMsg:
		m.showDeleteDialog = false
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Delete failed: `%s`", msg.err.Error()))
			return m, nil
		}
		m.ids = m.session.AllIDs()
		if m.selectedIdx >= len(m.ids) {
			m.selectedIdx = helpers.Max(0, len(m.ids)-1)
		}
		m.addLog("warning", fmt.Sprintf("Deleted sweepstakes `%s`", msg.id))
		if m.activePage == config.PageDetail {
			m.stopPolling()
			m.activePage = config.PageBrowse
		}
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "✓ Copied to clipboard"
		m.copiedMsgTime = time.Now()
		return m, clearClipboardMsg()

	case struct{ clearClipboard bool }:
		if time.Since(m.copiedMsgTime) >= 2*time.Second {
			m.copiedMsg = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height

		// Only initialize viewport if log is enabled
		if m.logEnabled {
			// Update log viewport dimensions
			// Width accounts for border and padding
			m.logViewport.Width = helpers.Max(0, msg.Width-6)
			// Height will be calculated dynamically in renderLogPanel
			if m.logReady {
				m.updateLogViewport()
			}
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		// Handle delete confirmation dialog FIRST (before any other keys)
		if m.showDeleteDialog {
			switch msg.String() {
			case "left", "right", "tab":
				// Toggle between Yes and No buttons
				m.deleteDialogYesSelected = !m.deleteDialogYesSelected
				return m, nil
			case "enter":
				if m.deleteDialogYesSelected {
					id := m.deleteDialogID
					m.addLog("info", fmt.Sprintf("Deleting sweepstakes `%s`", id))
					return m, deleteSweepstakes(m.session, id)
				}
				m.showDeleteDialog = false
				return m, nil
			case "esc":
				m.showDeleteDialog = false
				return m, nil
			}
			return m, nil
		}

		allowMenuHotkeys := !m.textInputActive()
		// global keys
		if allowMenuHotkeys {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit

			case "l", "L":
				// Toggle logger
				m.logEnabled = !m.logEnabled
				if m.logEnabled {
					// Initialize viewport when enabling
					if m.w > 0 {
						m.logViewport.Width = m.w - 6
					}
					m.logReady = false
					m.saveConfig()
					return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
				}
				// Clear logs and de-initialize when disabling
				if m.logBuffer != nil {
					m.logBuffer.Reset()
				}
				m.logger = nil
				m.logReady = false
				m.saveConfig()
				return m, nil

			case "pageup", "pagedown":
				// Allow scrolling in log viewport when enabled
				if m.logEnabled && m.logReady {
					var cmd tea.Cmd
					m.logViewport, cmd = m.logViewport.Update(msg)
					return m, cmd
				}
			}
		}

		// page-specific behavior
		switch m.activePage {

		case config.PageBrowse:
			// find-by-id flow
			if m.finding {
				switch msg.String() {
				case "esc", "escape":
					m.finding = false
					m.findInput.SetValue("")
					m.findInput.Blur()
					m.findError = ""
					return m, nil
				case "ctrl+v":
					// Handle Ctrl+v paste explicitly
					text, err := clipboard.ReadAll()
					if err == nil && text != "" {
						m.findInput.SetValue(strings.TrimSpace(text))
					}
					return m, nil
				case "enter":
					id := strings.TrimSpace(m.findInput.Value())
					if id == "" {
						return m, nil
					}
					if m.session == nil {
						m.findError = "Not connected to a sweepstakes process"
						m.findErrTime = time.Now()
						return m, nil
					}
					m.detailLoading = true
					m.addLog("info", fmt.Sprintf("Looking up sweepstakes `%s`", id))
					return m, openSweepstakes(m.session, id)
				}

				var cmd tea.Cmd
				m.findInput, cmd = m.findInput.Update(msg)
				return m, cmd
			}

			// normal list controls
			switch msg.String() {
			case "q":
				return m, tea.Quit

			case "up", "k":
				if m.selectedIdx > 0 {
					m.selectedIdx--
				}
				return m, nil

			case "down", "j":
				if m.selectedIdx < len(m.ids)-1 {
					m.selectedIdx++
				}
				return m, nil

			case "enter":
				id := m.selectedID()
				if id == "" || m.session == nil {
					return m, nil
				}
				m.detailLoading = true
				return m, openSweepstakes(m.session, id)

			case "f", "F", "/":
				m.finding = true
				m.findError = ""
				m.findInput.SetValue("")
				m.findInput.Focus()
				return m, nil

			case "n", "N":
				if m.session == nil {
					m.findError = "Not connected to a sweepstakes process"
					m.findErrTime = time.Now()
					return m, nil
				}
				if m.walletState != wallet.Connected {
					m.findError = "Connect a wallet before creating a sweepstakes"
					m.findErrTime = time.Now()
					return m, nil
				}
				m.creating = true
				m.createRegisterForm()
				return m, nil

			case "r", "R":
				if m.session == nil {
					return m, nil
				}
				m.listingLoading = true
				return m, loadListing(m.session)

			case "d", "D", "delete":
				id := m.selectedID()
				if id == "" {
					return m, nil
				}
				if rec, ok := m.listingRecord(id); ok &&
					!strings.EqualFold(strings.TrimSpace(rec.Creator), strings.TrimSpace(m.walletAddr)) {
					m.findError = "Only the creator can delete a sweepstakes"
					m.findErrTime = time.Now()
					return m, nil
				}
				m.showDeleteDialog = true
				m.deleteDialogYesSelected = false // Default to No button
				m.deleteDialogID = id
				return m, nil

			case "s", "S":
				m.activePage = config.PageSettings
				m.settingsMode = "list"
				return m, nil

			case "g", "G":
				m.activePage = config.PageGuide
				return m, nil

			case "h", "H":
				m.activePage = config.PageHome
				m.homeForm = nil
				return m, nil

			case "esc":
				return m, tea.Quit
			}
			return m, nil

		case config.PageDetail:
			switch msg.String() {
			case "esc", "backspace":
				m.stopPolling()
				m.showQR = false
				m.detailError = ""
				m.activePage = config.PageBrowse
				return m, nil

			case "r", "R":
				// refresh pulls from the source of truth
				if m.session == nil {
					return m, nil
				}
				m.addLog("info", "Refreshing sweepstakes state")
				if m.session.AnyPending() && !m.polling {
					m.polling = true
					return m, tea.Batch(refreshPulls(m.session), schedulePoll())
				}
				return m, refreshPulls(m.session)

			case "p", "P":
				// request a draw (owner only)
				if m.session == nil || !m.session.IsOwner() {
					m.detailError = "Only the creator can draw a winner"
					m.detailErrTime = time.Now()
					return m, nil
				}
				if len(m.session.Entrants()) == 0 {
					m.detailError = "Cannot draw from an empty entrant list"
					m.detailErrTime = time.Now()
					return m, nil
				}
				m.detailMode = "pull"
				m.createPullForm()
				return m, nil

			case "e", "E":
				// edit the entrant list (owner only, not locked)
				if m.session == nil || !m.session.IsOwner() {
					m.detailError = "Only the creator can edit entrants"
					m.detailErrTime = time.Now()
					return m, nil
				}
				if d := m.session.Data(); d != nil && d.Locked {
					m.detailError = "This sweepstakes is locked; entrants are read-only"
					m.detailErrTime = time.Now()
					return m, nil
				}
				m.detailMode = "edit"
				m.createEditEntrantsForm()
				return m, nil

			case "a", "A":
				// append one entrant (owner only, not locked)
				if m.session == nil || !m.session.IsOwner() {
					m.detailError = "Only the creator can edit entrants"
					m.detailErrTime = time.Now()
					return m, nil
				}
				if d := m.session.Data(); d != nil && d.Locked {
					m.detailError = "This sweepstakes is locked; entrants are read-only"
					m.detailErrTime = time.Now()
					return m, nil
				}
				m.detailMode = "add"
				m.createAddEntrantForm()
				return m, nil

			case "c", "C":
				if m.session != nil && m.session.CurrentID() != "" {
					return m, copyToClipboard(m.session.CurrentID())
				}
				return m, nil

			case "w", "W":
				// toggle the share QR code
				m.showQR = !m.showQR
				return m, nil

			case "d", "D", "delete":
				if m.session == nil || !m.session.IsOwner() {
					m.detailError = "Only the creator can delete a sweepstakes"
					m.detailErrTime = time.Now()
					return m, nil
				}
				m.showDeleteDialog = true
				m.deleteDialogYesSelected = false
				m.deleteDialogID = m.session.CurrentID()
				return m, nil
			}
			return m, nil

		case config.PageSettings:
			// Only handle list mode controls here (form handled at top of Update)
			if m.settingsMode == "list" {
				switch msg.String() {
				case "esc":
					m.activePage = config.PageBrowse
					return m, nil

				case "a", "A":
					m.settingsMode = "add"
					m.createAddGatewayForm()
					return m, nil

				case "e", "E":
					if len(m.gateways) > 0 {
						m.settingsMode = "edit"
						m.createEditGatewayForm(m.selectedGatewayIdx)
					}
					return m, nil

				case "d", "D", "delete", "backspace":
					if len(m.gateways) > 0 && m.selectedGatewayIdx < len(m.gateways) {
						deletedName := m.gateways[m.selectedGatewayIdx].Name
						m.gateways = append(m.gateways[:m.selectedGatewayIdx], m.gateways[m.selectedGatewayIdx+1:]...)
						if m.selectedGatewayIdx >= len(m.gateways) && m.selectedGatewayIdx > 0 {
							m.selectedGatewayIdx--
						}
						m.saveConfig()
						m.addLog("warning", fmt.Sprintf("Deleted gateway `%s`", deletedName))
					}
					return m, nil

				case "up", "k":
					if m.selectedGatewayIdx > 0 {
						m.selectedGatewayIdx--
					}
					return m, nil

				case "down", "j":
					if m.selectedGatewayIdx < len(m.gateways)-1 {
						m.selectedGatewayIdx++
					}
					return m, nil

				case "enter", " ":
					// Set as active and reconnect
					if len(m.gateways) > 0 && m.selectedGatewayIdx < len(m.gateways) {
						for i := range m.gateways {
							m.gateways[i].Active = (i == m.selectedGatewayIdx)
						}
						m.gatewayURL = m.gateways[m.selectedGatewayIdx].URL
						m.saveConfig()
						if m.client != nil {
							m.client.Close()
						}
						m.client = nil
						m.session = nil
						m.stopPolling()
						m.connecting = true
						m.connected = false
						m.addLog("info", fmt.Sprintf("Connecting to gateway `%s`", m.gatewayURL))
						return m, connectClient(m.gatewayURL)
					}
					return m, nil
				}
			}

		case config.PageGuide:
			switch msg.String() {
			case "esc", "backspace", "enter", "q":
				m.activePage = config.PageBrowse
				return m, nil
			}
		}
	}

	return m, nil
}
