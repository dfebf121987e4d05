package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"sweepstakes-tui/config"
	"sweepstakes-tui/sweeps"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSweepsAPI is a minimal in-memory process for exercising the
// reconciliation loop without a network.
type stubSweepsAPI struct {
	mu     sync.Mutex
	record sweeps.Record
	winner string // "" keeps the draw unresolved
}

func (s *stubSweepsAPI) ViewAllSweepstakes(ctx context.Context) (map[string]sweeps.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]sweeps.Record{"sweep-1": s.record}, nil
}

func (s *stubSweepsAPI) ViewSweepstakes(ctx context.Context, id string) (sweeps.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, nil
}

func (s *stubSweepsAPI) ViewSweepstakesPull(ctx context.Context, id, pullIndex string) (sweeps.PullRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sweeps.PullRecord{Winner: s.winner}, nil
}

func (s *stubSweepsAPI) RegisterSweepstakes(ctx context.Context, entrantList []string, details string) (bool, error) {
	return true, nil
}

func (s *stubSweepsAPI) SetSweepstakesEntrants(ctx context.Context, entrantList []string, id string) (bool, error) {
	return true, nil
}

func (s *stubSweepsAPI) PullSweepstakes(ctx context.Context, id, details string) (bool, error) {
	return true, nil
}

func (s *stubSweepsAPI) DeleteSweepstakes(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func (s *stubSweepsAPI) resolve(winner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.winner = winner
	s.record.PullCount = 1
}

// newPollTestModel builds a model on the detail page with one pending
// optimistic draw in its session.
func newPollTestModel(t *testing.T) (*model, *stubSweepsAPI) {
	t.Helper()
	api := &stubSweepsAPI{
		record: sweeps.Record{Creator: "0xabc", Entries: []string{"Alice", "Bob"}},
	}
	s := sweeps.NewSession(api, "0xabc")
	require.NoError(t, s.Open(context.Background(), "sweep-1"))
	_, err := s.PullWinner(context.Background(), "")
	require.NoError(t, err)
	require.True(t, s.AnyPending())

	return &model{activePage: config.PageDetail, session: s, detailMode: "view"}, api
}

func TestPollTimerSingleChain(t *testing.T) {
	m, _ := newPollTestModel(t)

	// The first draw request starts the tick chain.
	_, cmd := m.Update(pullRequestedMsg{})
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "first request should batch an immediate refresh with the first tick")
	assert.Len(t, batch, 2)
	assert.True(t, m.polling)

	// A second request while the timer runs rides the existing chain:
	// its command is the immediate refresh only, no extra tick.
	_, cmd = m.Update(pullRequestedMsg{})
	require.NotNil(t, cmd)
	msg := cmd()
	_, isBatch := msg.(tea.BatchMsg)
	assert.False(t, isBatch, "a second request must not start a second tick chain")
	assert.IsType(t, pullsRefreshedMsg{}, msg)

	// A refresh completing while pending never schedules; only the tick
	// handler reschedules.
	_, cmd = m.Update(pullsRefreshedMsg{})
	assert.Nil(t, cmd)
	assert.True(t, m.polling)

	// Each tick issues exactly one refresh and one follow-up tick.
	_, cmd = m.Update(pollTickMsg(time.Now()))
	require.NotNil(t, cmd)
	batch, ok = cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2)
}

func TestManualRefreshRidesExistingChain(t *testing.T) {
	m, _ := newPollTestModel(t)
	m.polling = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	_, isBatch := cmd().(tea.BatchMsg)
	assert.False(t, isBatch, "manual refresh with an active timer issues the refresh alone")
}

func TestPollTimerStopsWhenNothingPending(t *testing.T) {
	m, api := newPollTestModel(t)
	m.polling = true

	api.resolve("Alice")
	require.NoError(t, m.session.RefreshPulls(context.Background()))
	require.False(t, m.session.AnyPending())

	_, cmd := m.Update(pollTickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.False(t, m.polling)
}

func TestPollTimerDiesOffTheDetailPage(t *testing.T) {
	m, _ := newPollTestModel(t)
	m.polling = true
	m.activePage = config.PageBrowse

	_, cmd := m.Update(pollTickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.False(t, m.polling)
}

func TestWinnerTransitionVisibleForOneInterval(t *testing.T) {
	m, api := newPollTestModel(t)
	m.polling = true

	api.resolve("Alice")
	require.NoError(t, m.session.RefreshPulls(context.Background()))

	// The completion announces the winner and schedules the one-shot
	// clear; the styling flag survives until that tick lands.
	_, cmd := m.Update(pullsRefreshedMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.transitionClearPending)
	require.NotEmpty(t, m.session.Pulls())
	assert.True(t, m.session.Pulls()[0].Transitioning)
	assert.False(t, m.polling)

	// A second completion in the window neither re-announces nor
	// re-schedules.
	_, cmd = m.Update(pullsRefreshedMsg{})
	assert.Nil(t, cmd)

	_, _ = m.Update(transitionClearedMsg{})
	assert.False(t, m.transitionClearPending)
	assert.False(t, m.session.Pulls()[0].Transitioning)
}
