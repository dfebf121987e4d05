package main

import (
	"strings"
	"time"

	"sweepstakes-tui/config"
	"sweepstakes-tui/styles"
	"sweepstakes-tui/sweeps"
	"sweepstakes-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page

	// remote process connection
	gatewayURL string
	client     *sweeps.Client
	connected  bool
	connecting bool

	// wallet
	wal          *wallet.Wallet
	walletAddr   string
	walletState  wallet.State
	walletErrMsg string

	// per-view sweepstakes state
	session *sweeps.Session

	// browse page
	ids            []string
	selectedIdx    int
	listingLoading bool
	finding        bool
	findInput      textinput.Model
	findError      string
	findErrTime    time.Time

	// detail page
	spin          spinner.Model
	detailLoading bool
	detailMode    string // "view", "edit", "pull", "add"
	polling       bool
	// a transition-clear tick is in flight; winners already announced
	transitionClearPending bool
	showQR        bool
	detailError   string
	detailErrTime time.Time

	// create flow (browse page)
	creating bool
	form     *huh.Form

	// home form
	homeForm *huh.Form

	// clipboard feedback
	copiedMsg     string
	copiedMsgTime time.Time

	// settings state
	settingsMode       string // "list", "add", "edit"
	gateways           []config.Gateway
	selectedGatewayIdx int
	configPath         string

	// delete confirmation dialog
	showDeleteDialog        bool
	deleteDialogID          string
	deleteDialogYesSelected bool // true = Yes button, false = No button

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel creates and initializes a new model with configuration from disk
func newModel() model {
	configPath := config.DefaultPath()
	cfg := config.LoadOrCreate(configPath)

	// find input for browse page
	in := textinput.New()
	in.Placeholder = "Sweepstakes id…"
	in.Prompt = "Find: "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = 64
	in.Width = 48

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		activePage:   config.PageBrowse,
		gatewayURL:   cfg.ActiveGateway(),
		wal:          wallet.New(cfg.Keystore()),
		walletState:  wallet.Disconnected,
		findInput:    in,
		spin:         sp,
		detailMode:   "view",
		settingsMode: "list",
		gateways:     cfg.Gateways,
		configPath:   configPath,
		logEnabled:   cfg.Logger,
		logViewport:  vp,
		logBuffer:    &strings.Builder{},
		logSpinner:   logSpin,
	}

	return m
}

// saveConfig persists the current gateways and logger flag
func (m *model) saveConfig() {
	cfg := config.Load(m.configPath)
	cfg.Gateways = m.gateways
	cfg.Logger = m.logEnabled
	config.Save(m.configPath, cfg)
}

// selectedID returns the id under the cursor on the browse page, or ""
func (m model) selectedID() string {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.ids) {
		return ""
	}
	return m.ids[m.selectedIdx]
}

// listingRecord looks up the listing record for an id, if loaded
func (m model) listingRecord(id string) (sweeps.Record, bool) {
	if m.session == nil {
		return sweeps.Record{}, false
	}
	return m.session.ListingRecord(id)
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	// connect the wallet and, if a gateway is configured, the process
	cmds = append(cmds, connectWallet(m.wal), waitForWalletEvent(m.wal))
	if m.gatewayURL != "" {
		m.connecting = true
		cmds = append(cmds, connectClient(m.gatewayURL))
	}
	return tea.Batch(cmds...)
}
