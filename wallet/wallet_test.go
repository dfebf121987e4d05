package wallet

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestWallet uses light scrypt parameters so key generation stays
// fast.
func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	return &Wallet{
		ks:     keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP),
		events: make(chan Event, 8),
	}
}

func TestConnectWithoutKeys(t *testing.T) {
	w := newTestWallet(t)

	_, err := w.Connect()
	assert.ErrorIs(t, err, ErrNoAccounts)
	assert.Equal(t, Disconnected, w.State(), "a failed connect must not leave the wallet half-connected")
	assert.Empty(t, w.ActiveAddress())
}

func TestConnectLifecycle(t *testing.T) {
	w := newTestWallet(t)

	addr, err := w.CreateAccount("hunter2")
	require.NoError(t, err)

	got, err := w.Connect()
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	assert.Equal(t, Connected, w.State())
	assert.Equal(t, addr, w.ActiveAddress())

	w.Disconnect()
	assert.Equal(t, Disconnected, w.State())
	assert.Empty(t, w.ActiveAddress())
}

func TestSignPayload(t *testing.T) {
	w := newTestWallet(t)
	_, err := w.CreateAccount("hunter2")
	require.NoError(t, err)
	_, err = w.Connect()
	require.NoError(t, err)

	// Locked key: signing is refused, not faulted.
	_, err = w.SignPayload([]byte("sweepstakes_pull:{}"))
	assert.ErrorIs(t, err, keystore.ErrLocked)

	require.NoError(t, w.Unlock("hunter2", 0))
	sig, err := w.SignPayload([]byte("sweepstakes_pull:{}"))
	require.NoError(t, err)
	assert.Len(t, sig, 65)

	require.NoError(t, w.Lock())
	_, err = w.SignPayload([]byte("sweepstakes_pull:{}"))
	assert.ErrorIs(t, err, keystore.ErrLocked)
}

func TestSignPayloadDisconnected(t *testing.T) {
	w := newTestWallet(t)
	_, err := w.SignPayload([]byte("payload"))
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestUnlockWrongPassword(t *testing.T) {
	w := newTestWallet(t)
	_, err := w.CreateAccount("hunter2")
	require.NoError(t, err)
	_, err = w.Connect()
	require.NoError(t, err)

	assert.Error(t, w.Unlock("wrong", 0))
}

func TestSwitchTo(t *testing.T) {
	w := newTestWallet(t)
	first, err := w.CreateAccount("hunter2")
	require.NoError(t, err)
	second, err := w.CreateAccount("hunter2")
	require.NoError(t, err)

	_, err = w.Connect()
	require.NoError(t, err)

	require.NoError(t, w.SwitchTo(second))
	assert.Equal(t, second, w.ActiveAddress())

	// Case-insensitive address match.
	require.NoError(t, w.SwitchTo(strings.ToLower(first)))
	assert.Equal(t, first, w.ActiveAddress())

	assert.Error(t, w.SwitchTo("0x0000000000000000000000000000000000000000"))
}

func TestCreateAccountEmitsEvent(t *testing.T) {
	w := newTestWallet(t)
	addr, err := w.CreateAccount("hunter2")
	require.NoError(t, err)

	select {
	case ev := <-w.Events():
		assert.Equal(t, EventLoaded, ev.Kind)
		assert.Equal(t, addr, ev.Address)
	default:
		t.Fatal("expected a loaded event")
	}
}
