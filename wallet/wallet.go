package wallet

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
)

// State describes the wallet connection lifecycle.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// EventKind identifies an unsolicited wallet notification.
type EventKind int

const (
	// EventLoaded fires when a key becomes available after startup.
	EventLoaded EventKind = iota
	// EventSwitched fires when the active account changes.
	EventSwitched
)

// Event is a wallet push notification forwarded to the UI.
type Event struct {
	Kind    EventKind
	Address string
}

var (
	ErrNoAccounts   = errors.New("no accounts in keystore")
	ErrNotConnected = errors.New("wallet is not connected")
)

// Wallet wraps a local keystore as the app's signing identity. Accounts
// may appear after startup (a key file dropped into the directory), so
// the keystore's event feed is forwarded through Events.
type Wallet struct {
	ks *keystore.KeyStore

	mu      sync.RWMutex
	state   State
	account accounts.Account

	events chan Event
	sub    event.Subscription
}

// New builds a wallet over the key directory. No keys are read until
// Connect is called.
func New(keyDir string) *Wallet {
	return &Wallet{
		ks:     keystore.NewKeyStore(keyDir, keystore.StandardScryptN, keystore.StandardScryptP),
		events: make(chan Event, 8),
	}
}

// Connect selects the first keystore account as the active identity.
// With no key files present it fails and the state stays Disconnected;
// the keystore watcher will announce a key that arrives later, and the
// caller may connect again then. There is no automatic retry.
func (w *Wallet) Connect() (string, error) {
	w.mu.Lock()
	w.state = Connecting
	w.mu.Unlock()

	accts := w.ks.Accounts()
	if len(accts) == 0 {
		w.mu.Lock()
		w.state = Disconnected
		w.mu.Unlock()
		return "", ErrNoAccounts
	}

	w.mu.Lock()
	w.account = accts[0]
	w.state = Connected
	if w.sub == nil {
		ksEvents := make(chan accounts.WalletEvent, 8)
		w.sub = w.ks.Subscribe(ksEvents)
		go w.watch(ksEvents)
	}
	addr := w.account.Address.Hex()
	w.mu.Unlock()

	return addr, nil
}

// watch forwards keystore wallet events to the UI channel. A key file
// arriving maps to EventLoaded; other keystore events carry no state the
// UI acts on and are dropped.
func (w *Wallet) watch(ksEvents chan accounts.WalletEvent) {
	for ev := range ksEvents {
		if ev.Kind != accounts.WalletArrived {
			continue
		}
		addr := ""
		if accts := ev.Wallet.Accounts(); len(accts) > 0 {
			addr = accts[0].Address.Hex()
		}
		w.emit(Event{Kind: EventLoaded, Address: addr})
	}
}

// Disconnect clears the active account. Key files stay on disk.
func (w *Wallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sub != nil {
		w.sub.Unsubscribe()
		w.sub = nil
	}
	w.account = accounts.Account{}
	w.state = Disconnected
}

// State returns the current connection state.
func (w *Wallet) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// ActiveAddress returns the hex address of the active account, or "".
func (w *Wallet) ActiveAddress() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.state != Connected {
		return ""
	}
	return w.account.Address.Hex()
}

// Events returns the push notification channel.
func (w *Wallet) Events() <-chan Event {
	return w.events
}

// Accounts lists every keystore account address.
func (w *Wallet) Accounts() []string {
	accts := w.ks.Accounts()
	out := make([]string, len(accts))
	for i, acct := range accts {
		out[i] = acct.Address.Hex()
	}
	return out
}

// CreateAccount generates a new key file protected by the password and
// returns its address.
func (w *Wallet) CreateAccount(password string) (string, error) {
	acct, err := w.ks.NewAccount(password)
	if err != nil {
		return "", err
	}
	w.emit(Event{Kind: EventLoaded, Address: acct.Address.Hex()})
	return acct.Address.Hex(), nil
}

// SwitchTo makes another keystore account active.
func (w *Wallet) SwitchTo(address string) error {
	for _, acct := range w.ks.Accounts() {
		if strings.EqualFold(acct.Address.Hex(), address) {
			w.mu.Lock()
			w.account = acct
			w.state = Connected
			w.mu.Unlock()
			w.emit(Event{Kind: EventSwitched, Address: acct.Address.Hex()})
			return nil
		}
	}
	return fmt.Errorf("no keystore account with address %s", address)
}

// Unlock decrypts the active key for the given duration. A zero
// duration unlocks until Lock or process exit.
func (w *Wallet) Unlock(password string, seconds int) error {
	w.mu.RLock()
	acct := w.account
	state := w.state
	w.mu.RUnlock()
	if state != Connected {
		return ErrNotConnected
	}
	if seconds <= 0 {
		return w.ks.Unlock(acct, password)
	}
	return w.ks.TimedUnlock(acct, password, time.Duration(seconds)*time.Second)
}

// Lock re-locks the active key.
func (w *Wallet) Lock() error {
	w.mu.RLock()
	acct := w.account
	w.mu.RUnlock()
	if acct == (accounts.Account{}) {
		return ErrNotConnected
	}
	return w.ks.Lock(acct.Address)
}

// SignPayload hashes the payload with Keccak256 and signs it with the
// active key. A locked key surfaces keystore.ErrLocked, which callers
// treat as a user-recoverable rejection rather than a fault.
func (w *Wallet) SignPayload(data []byte) ([]byte, error) {
	w.mu.RLock()
	acct := w.account
	state := w.state
	w.mu.RUnlock()
	if state != Connected {
		return nil, ErrNotConnected
	}
	return w.ks.SignHash(acct, crypto.Keccak256(data))
}

func (w *Wallet) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}
