package sweeps

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Precondition failures detected locally. These never reach the network
// and are fully recoverable by correcting input.
var (
	ErrClientNotReady  = errors.New("sweepstakes client is not ready")
	ErrNoSelection     = errors.New("no sweepstakes selected")
	ErrEmptyEntrants   = errors.New("entrant list is empty")
	ErrBlankEntrant    = errors.New("entrant name cannot be blank")
	ErrListLocked      = errors.New("sweepstakes is locked; entrants are read-only")
	ErrNotFound        = errors.New("sweepstakes not found")
	ErrRegisterNoNewID = errors.New("registered, but no new sweepstakes appeared in the listing")
)

// API is the call contract the session depends on. The production
// implementation is a Client bound to a wallet signer; tests inject
// fakes.
type API interface {
	ViewAllSweepstakes(ctx context.Context) (map[string]Record, error)
	ViewSweepstakes(ctx context.Context, id string) (Record, error)
	ViewSweepstakesPull(ctx context.Context, id, pullIndex string) (PullRecord, error)
	RegisterSweepstakes(ctx context.Context, entrantList []string, details string) (bool, error)
	SetSweepstakesEntrants(ctx context.Context, entrantList []string, id string) (bool, error)
	PullSweepstakes(ctx context.Context, id, details string) (bool, error)
	DeleteSweepstakes(ctx context.Context, id string) (bool, error)
}

// boundClient adapts a Client plus a Signer to the API contract.
type boundClient struct {
	client *Client
	signer Signer
}

// Bind attaches a wallet signer to a client, yielding the session-facing
// adapter.
func Bind(client *Client, signer Signer) API {
	return &boundClient{client: client, signer: signer}
}

func (b *boundClient) ViewAllSweepstakes(ctx context.Context) (map[string]Record, error) {
	return b.client.ViewAllSweepstakes(ctx)
}

func (b *boundClient) ViewSweepstakes(ctx context.Context, id string) (Record, error) {
	return b.client.ViewSweepstakes(ctx, id)
}

func (b *boundClient) ViewSweepstakesPull(ctx context.Context, id, pullIndex string) (PullRecord, error) {
	return b.client.ViewSweepstakesPull(ctx, id, pullIndex)
}

func (b *boundClient) RegisterSweepstakes(ctx context.Context, entrantList []string, details string) (bool, error) {
	return b.client.RegisterSweepstakes(ctx, b.signer, entrantList, details)
}

func (b *boundClient) SetSweepstakesEntrants(ctx context.Context, entrantList []string, id string) (bool, error) {
	return b.client.SetSweepstakesEntrants(ctx, b.signer, entrantList, id)
}

func (b *boundClient) PullSweepstakes(ctx context.Context, id, details string) (bool, error) {
	return b.client.PullSweepstakes(ctx, b.signer, id, details)
}

func (b *boundClient) DeleteSweepstakes(ctx context.Context, id string) (bool, error) {
	return b.client.DeleteSweepstakes(ctx, b.signer, id)
}

// Session owns all mutable per-view sweepstakes state: the current
// sweepstakes, its entrants, its pull history, and the last user-facing
// error. It is constructed when a view mounts and discarded when the
// view unmounts or the wallet changes; there is no ambient singleton.
//
// Methods are safe for use from bubbletea command goroutines: a mutex
// guards the fields, and no remote call is made while it is held.
type Session struct {
	api        API
	walletAddr string

	mu        sync.RWMutex
	currentID string
	data      *Sweepstakes
	entrants  []string
	pulls     []Pull
	allIDs    []string
	listing   map[string]Record
	isOwner   bool
	lastErr   string
}

// NewSession builds a session bound to an adapter and the connected
// wallet's address. A nil api yields a session whose every remote
// operation fails with ErrClientNotReady.
func NewSession(api API, walletAddr string) *Session {
	return &Session{api: api, walletAddr: walletAddr}
}

// -------------------- accessors --------------------

// CurrentID returns the id of the currently opened sweepstakes, or "".
func (s *Session) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// Data returns the normalized current sweepstakes, or nil.
func (s *Session) Data() *Sweepstakes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil
	}
	d := *s.data
	return &d
}

// Entrants returns a copy of the current entrant list.
func (s *Session) Entrants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.entrants...)
}

// Pulls returns a copy of the current pull list, display-ordered.
func (s *Session) Pulls() []Pull {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Pull(nil), s.pulls...)
}

// AllIDs returns the sorted ids from the last listing load.
func (s *Session) AllIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.allIDs...)
}

// ListingRecord returns the listing record for an id, if the last
// listing load carried one.
func (s *Session) ListingRecord(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.listing[id]
	return rec, ok
}

// IsOwner reports whether the connected wallet owns the current
// sweepstakes. Ownership is exact, case-normalized address equality.
func (s *Session) IsOwner() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOwner
}

// AnyPending reports whether any held pull is still awaiting its winner.
func (s *Session) AnyPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AnyPending(s.pulls)
}

// LastError returns the last recorded user-facing error message.
func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError resets the shared error field.
func (s *Session) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// ClearTransitioning drops the one-shot transitioning flag after the
// view has played its transition.
func (s *Session) ClearTransitioning() {
	s.mu.Lock()
	for i := range s.pulls {
		s.pulls[i].Transitioning = false
	}
	s.mu.Unlock()
}

func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

// -------------------- operations --------------------

// LoadAll refreshes the listing of all sweepstakes.
func (s *Session) LoadAll(ctx context.Context) error {
	if s.api == nil {
		return s.fail(ErrClientNotReady)
	}
	listing, err := s.api.ViewAllSweepstakes(ctx)
	if err != nil {
		return s.fail(err)
	}
	ids := make([]string, 0, len(listing))
	for id := range listing {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	s.mu.Lock()
	s.listing = listing
	s.allIDs = ids
	s.mu.Unlock()
	return nil
}

// Open resolves a sweepstakes by id and makes it current.
//
// The remote listing and the remote point-read are not guaranteed
// consistent, so resolution is layered: exact key match against a fresh
// listing, then case-insensitive key match, then a direct point lookup.
// If all three fail the id does not exist.
func (s *Session) Open(ctx context.Context, id string) error {
	if s.api == nil {
		return s.fail(ErrClientNotReady)
	}

	resolvedID := id
	var rec Record
	found := false

	listing, listErr := s.api.ViewAllSweepstakes(ctx)
	if listErr == nil {
		if r, ok := listing[id]; ok {
			rec, found = r, true
		} else {
			for key, r := range listing {
				if strings.EqualFold(key, id) {
					resolvedID, rec, found = key, r, true
					break
				}
			}
		}
	}
	if !found {
		r, err := s.api.ViewSweepstakes(ctx, id)
		if err == nil && r.Creator != "" {
			rec, found = r, true
		}
	}
	if !found {
		return s.fail(fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	data := normalizeRecord(resolvedID, rec)

	s.mu.Lock()
	s.currentID = resolvedID
	s.data = &data
	s.isOwner = strings.EqualFold(strings.TrimSpace(rec.Creator), strings.TrimSpace(s.walletAddr))
	s.entrants = append([]string(nil), rec.Entries...)
	s.pulls = nil
	s.lastErr = ""
	if listErr == nil {
		s.listing = listing
	}
	s.mu.Unlock()

	// Entrants and pulls may be omitted from the record; fetch what is
	// missing from the source of truth.
	if len(rec.Entries) == 0 && data.EntryCount > 0 {
		_ = s.LoadEntrants(ctx)
	}
	return s.RefreshPulls(ctx)
}

// Register creates a new sweepstakes and makes it current.
//
// The process only acknowledges with a boolean, so the created id is
// inferred by diffing the listing before and after the call. When more
// than one id appears (another creator registering concurrently), ids
// created by this wallet are preferred.
func (s *Session) Register(ctx context.Context, entrantList []string, details string) (string, error) {
	if s.api == nil {
		return "", s.fail(ErrClientNotReady)
	}
	if len(entrantList) == 0 {
		return "", s.fail(ErrEmptyEntrants)
	}

	pre, err := s.api.ViewAllSweepstakes(ctx)
	if err != nil {
		return "", s.fail(fmt.Errorf("load listing before register: %w", err))
	}

	ok, err := s.api.RegisterSweepstakes(ctx, entrantList, details)
	if err != nil {
		return "", s.fail(err)
	}
	if !ok {
		return "", s.fail(errors.New("the process rejected the registration"))
	}

	post, err := s.api.ViewAllSweepstakes(ctx)
	if err != nil {
		return "", s.fail(fmt.Errorf("registered, but could not reload listing: %w", err))
	}

	var created []string
	for id := range post {
		if _, existed := pre[id]; !existed {
			created = append(created, id)
		}
	}
	if len(created) == 0 {
		return "", s.fail(ErrRegisterNoNewID)
	}
	sort.Strings(created)
	newID := created[0]
	for _, id := range created {
		if strings.EqualFold(strings.TrimSpace(post[id].Creator), strings.TrimSpace(s.walletAddr)) {
			newID = id
			break
		}
	}

	if err := s.Open(ctx, newID); err != nil {
		return newID, err
	}
	return newID, nil
}

// UpdateEntrants replaces the entrant list of the current sweepstakes
// and reloads it from the remote source of truth to pick up any
// server-side transformation.
func (s *Session) UpdateEntrants(ctx context.Context, newList []string) error {
	if s.api == nil {
		return s.fail(ErrClientNotReady)
	}
	s.mu.RLock()
	id := s.currentID
	locked := s.data != nil && s.data.Locked
	s.mu.RUnlock()

	if id == "" {
		return s.fail(ErrNoSelection)
	}
	if locked {
		return s.fail(ErrListLocked)
	}
	if len(newList) == 0 {
		return s.fail(ErrEmptyEntrants)
	}

	ok, err := s.api.SetSweepstakesEntrants(ctx, newList, id)
	if err != nil {
		return s.fail(err)
	}
	if !ok {
		return s.fail(errors.New("the process rejected the entrant update"))
	}

	if err := s.LoadEntrants(ctx); err != nil {
		// The write landed; a failed read-back is not fatal. Keep the
		// local list the user submitted.
		s.mu.Lock()
		s.entrants = append([]string(nil), newList...)
		s.mu.Unlock()
	}
	return nil
}

// AddEntrant appends one name. The adapter has no incremental-add
// primitive, so the full updated list is pushed; local state changes
// only after the remote call succeeds.
func (s *Session) AddEntrant(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.fail(ErrBlankEntrant)
	}
	s.mu.RLock()
	updated := append(append([]string(nil), s.entrants...), name)
	s.mu.RUnlock()
	return s.UpdateEntrants(ctx, updated)
}

// LoadEntrants reloads the entrant list from the remote record.
func (s *Session) LoadEntrants(ctx context.Context) error {
	if s.api == nil {
		return s.fail(ErrClientNotReady)
	}
	s.mu.RLock()
	id := s.currentID
	s.mu.RUnlock()
	if id == "" {
		return s.fail(ErrNoSelection)
	}

	rec, err := s.api.ViewSweepstakes(ctx, id)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.entrants = append([]string(nil), rec.Entries...)
	if s.data != nil {
		s.data.Locked = rec.Locked
		if rec.EntryCount > 0 {
			s.data.EntryCount = rec.EntryCount
		} else {
			s.data.EntryCount = len(rec.Entries)
		}
	}
	s.mu.Unlock()
	return nil
}

// PullWinner requests a draw on the current sweepstakes.
//
// An optimistic pull record is inserted at the head of the list before
// the remote call so the view can show "selecting winner" immediately.
// Its id predicts the positional index the process will assign, so the
// authoritative record merges onto it once the draw resolves. If the
// remote call fails the optimistic record is removed again; no ghost
// spinner survives a rejection.
func (s *Session) PullWinner(ctx context.Context, details string) (Pull, error) {
	if s.api == nil {
		return Pull{}, s.fail(ErrClientNotReady)
	}
	s.mu.Lock()
	id := s.currentID
	if id == "" {
		s.mu.Unlock()
		return Pull{}, s.fail(ErrNoSelection)
	}
	optimistic := Pull{
		ID:         s.nextPullIDLocked(),
		Details:    details,
		Optimistic: true,
	}
	s.pulls = append([]Pull{optimistic}, s.pulls...)
	s.mu.Unlock()

	ok, err := s.api.PullSweepstakes(ctx, id, details)
	if err == nil && !ok {
		err = errors.New("the process rejected the pull request")
	}
	if err != nil {
		s.removePull(optimistic.ID)
		return Pull{}, s.fail(err)
	}
	return optimistic, nil
}

// nextPullIDLocked predicts the positional id the next confirmed pull
// will carry. Falls back to a random local id when no count is known.
// Caller holds s.mu.
func (s *Session) nextPullIDLocked() string {
	confirmed := 0
	for _, p := range s.pulls {
		if !p.Optimistic {
			confirmed++
		}
	}
	if s.data != nil && s.data.PullCount > confirmed {
		confirmed = s.data.PullCount
	}
	pending := 0
	for _, p := range s.pulls {
		if p.Optimistic {
			pending++
		}
	}
	if confirmed == 0 && pending == 0 && s.data == nil {
		return "optimistic-" + uuid.NewString()
	}
	return strconv.Itoa(confirmed + pending)
}

func (s *Session) removePull(id string) {
	s.mu.Lock()
	kept := s.pulls[:0]
	for _, p := range s.pulls {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.pulls = kept
	s.mu.Unlock()
}

// RefreshPulls fetches the authoritative pull set and merges it into the
// held list. When the record omits the pull list but carries a count,
// each pull is fetched individually by index.
func (s *Session) RefreshPulls(ctx context.Context) error {
	if s.api == nil {
		return s.fail(ErrClientNotReady)
	}
	s.mu.RLock()
	id := s.currentID
	s.mu.RUnlock()
	if id == "" {
		return s.fail(ErrNoSelection)
	}

	rec, err := s.api.ViewSweepstakes(ctx, id)
	if err != nil {
		return err
	}

	var fetched []Pull
	if len(rec.Pulls) > 0 {
		for i, pr := range rec.Pulls {
			fetched = append(fetched, NormalizePull(pr, i))
		}
	} else {
		for i := 0; i < rec.PullCount; i++ {
			pr, err := s.api.ViewSweepstakesPull(ctx, id, strconv.Itoa(i))
			if err != nil {
				return err
			}
			fetched = append(fetched, NormalizePull(pr, i))
		}
	}

	s.mu.Lock()
	s.pulls = MergePulls(s.pulls, fetched)
	if s.data != nil {
		s.data.Locked = rec.Locked
		if rec.PullCount > s.data.PullCount {
			s.data.PullCount = rec.PullCount
		}
		if n := len(fetched); n > s.data.PullCount {
			s.data.PullCount = n
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes a sweepstakes and refreshes the listing. If the
// current sweepstakes was deleted the selection is cleared.
func (s *Session) Delete(ctx context.Context, id string) error {
	if s.api == nil {
		return s.fail(ErrClientNotReady)
	}
	ok, err := s.api.DeleteSweepstakes(ctx, id)
	if err != nil {
		return s.fail(err)
	}
	if !ok {
		return s.fail(errors.New("the process rejected the delete request"))
	}

	s.mu.Lock()
	if s.currentID == id {
		s.currentID = ""
		s.data = nil
		s.entrants = nil
		s.pulls = nil
		s.isOwner = false
	}
	s.mu.Unlock()
	return s.LoadAll(ctx)
}
