package main

import (
	"sweepstakes-tui/sweeps"
	"sweepstakes-tui/wallet"

	"time"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// clientConnectedMsg contains result of a connection attempt to the
// sweepstakes process
type clientConnectedMsg struct {
	client *sweeps.Client
	err    error
}

// walletConnectedMsg contains result of the wallet connection attempt
type walletConnectedMsg struct {
	addr string
	err  error
}

// walletEventMsg carries a push notification from the wallet
type walletEventMsg struct {
	ev wallet.Event
}

// listingLoadedMsg indicates the sweepstakes listing was refreshed
type listingLoadedMsg struct {
	ids []string
	err error
}

// sweepstakesOpenedMsg indicates a sweepstakes was opened into the session
type sweepstakesOpenedMsg struct {
	id  string
	err error
}

// registeredMsg contains result of registering a new sweepstakes
type registeredMsg struct {
	id  string
	err error
}

// entrantsUpdatedMsg indicates an entrant list mutation finished
type entrantsUpdatedMsg struct {
	err error
}

// pullRequestedMsg contains result of a pull request; on success the
// optimistic record is already in the session
type pullRequestedMsg struct {
	err error
}

// pullsRefreshedMsg indicates one reconciliation fetch finished
type pullsRefreshedMsg struct {
	err error
}

// sweepstakesDeletedMsg contains result of a delete request
type sweepstakesDeletedMsg struct {
	id  string
	err error
}

// pollTickMsg drives the pull reconciliation timer
type pollTickMsg time.Time

// transitionClearedMsg ends the one-shot winner transition styling
type transitionClearedMsg struct{}
