package main

import (
	"context"
	"time"

	"sweepstakes-tui/sweeps"
	"sweepstakes-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

const remoteCallTimeout = 12 * time.Second

// connectClient establishes a connection to the sweepstakes process
func connectClient(url string) tea.Cmd {
	return func() tea.Msg {
		result := sweeps.Connect(url)
		return clientConnectedMsg{client: result.Client, err: result.Error}
	}
}

// connectWallet selects the active keystore account. No key file yet is
// a normal condition at first launch; the wallet watcher announces keys
// that appear later.
func connectWallet(w *wallet.Wallet) tea.Cmd {
	return func() tea.Msg {
		addr, err := w.Connect()
		return walletConnectedMsg{addr: addr, err: err}
	}
}

// waitForWalletEvent blocks on the wallet's push channel and forwards
// the next notification. Update re-issues it after each event.
func waitForWalletEvent(w *wallet.Wallet) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return walletEventMsg{ev: ev}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// loadListing refreshes the listing of all sweepstakes
func loadListing(s *sweeps.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		err := s.LoadAll(ctx)
		return listingLoadedMsg{ids: s.AllIDs(), err: err}
	}
}

// openSweepstakes resolves an id and makes it the session's current
// sweepstakes
func openSweepstakes(s *sweeps.Session, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		err := s.Open(ctx, id)
		return sweepstakesOpenedMsg{id: s.CurrentID(), err: err}
	}
}

// registerSweepstakes creates a new sweepstakes from the entrant list
func registerSweepstakes(s *sweeps.Session, entrantList []string, details string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		id, err := s.Register(ctx, entrantList, details)
		return registeredMsg{id: id, err: err}
	}
}

// updateEntrants replaces the entrant list of the current sweepstakes
func updateEntrants(s *sweeps.Session, newList []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		return entrantsUpdatedMsg{err: s.UpdateEntrants(ctx, newList)}
	}
}

// addEntrant appends a single name to the current entrant list
func addEntrant(s *sweeps.Session, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		return entrantsUpdatedMsg{err: s.AddEntrant(ctx, name)}
	}
}

// pullWinner requests a draw on the current sweepstakes
func pullWinner(s *sweeps.Session, details string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		_, err := s.PullWinner(ctx, details)
		return pullRequestedMsg{err: err}
	}
}

// refreshPulls runs one reconciliation fetch against the process
func refreshPulls(s *sweeps.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		return pullsRefreshedMsg{err: s.RefreshPulls(ctx)}
	}
}

// schedulePoll emits a tick after the reconciliation interval. Callers
// must keep a single tick chain alive: schedule only when the polling
// flag flips on, or from the tick handler itself.
func schedulePoll() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// scheduleTransitionClear keeps the winner transition styling visible
// for one poll interval before resetting it
func scheduleTransitionClear() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return transitionClearedMsg{}
	})
}

// deleteSweepstakes removes a sweepstakes
func deleteSweepstakes(s *sweeps.Session, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		return sweepstakesDeletedMsg{id: id, err: s.Delete(ctx, id)}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// clearClipboardMsg waits 2 seconds then sends a message to clear clipboard feedback
func clearClipboardMsg() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return struct{ clearClipboard bool }{true}
	})
}

// -------------------- MODEL HELPER METHODS --------------------
// These methods help with state management and command generation

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	// Use the logger to write messages
	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	// Update viewport content
	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}

	// Get content from log buffer
	content := m.logBuffer.String()
	m.logViewport.SetContent(content)
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}

// rebuildSession binds a fresh session to the current client and wallet.
// Any per-view state from the previous session is dropped.
func (m *model) rebuildSession() {
	if m.client == nil {
		m.session = nil
		return
	}
	m.session = sweeps.NewSession(sweeps.Bind(m.client, m.wal), m.walletAddr)
}

// stopPolling halts the reconciliation loop, e.g. when navigating away
// from the detail page.
func (m *model) stopPolling() {
	m.polling = false
}

// textInputActive returns true if any text input is currently active
func (m model) textInputActive() bool {
	if m.finding {
		return true
	}
	if m.form != nil {
		switch m.detailMode {
		case "edit", "pull", "add":
			return true
		}
		if m.creating {
			return true
		}
		if m.settingsMode == "add" || m.settingsMode == "edit" {
			return true
		}
	}
	return false
}
