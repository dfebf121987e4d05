package sweeps

import (
	"encoding/json"
	"strconv"
	"strings"
)

// placeholderWinner is the sentinel some process versions return for an
// unresolved draw. It must never reach the UI: a pull's winner is either
// a real name or the empty string, and the empty string means pending.
const placeholderWinner = "Unknown"

// Record is the wire shape of one sweepstakes as returned by the remote
// process. Every field except Creator is optional; the listing call and
// the point lookup may disagree transiently.
type Record struct {
	Creator    string       `json:"Creator"`
	Details    string       `json:"Details,omitempty"`
	Locked     bool         `json:"Locked,omitempty"`
	EntryCount int          `json:"EntryCount,omitempty"`
	PullCount  int          `json:"PullCount,omitempty"`
	Entries    []string     `json:"Entries,omitempty"`
	Pulls      []PullRecord `json:"Pulls,omitempty"`
}

// PullRecord is the wire shape of one pull.
type PullRecord struct {
	ID        string `json:"Id,omitempty"`
	Winner    string `json:"Winner,omitempty"`
	Details   string `json:"Details,omitempty"`
	Timestamp int64  `json:"Timestamp,omitempty"`
}

// Sweepstakes is the session's normalized view of one sweepstakes.
type Sweepstakes struct {
	ID         string
	Creator    string
	Details    string
	Locked     bool
	EntryCount int
	PullCount  int
}

// Meta is the free-form metadata blob carried in a sweepstakes' Details
// field. It is typically JSON but not schema-enforced, so parsing is
// best-effort.
type Meta struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Prize       string `json:"prize,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Rules       string `json:"rules,omitempty"`
}

// ParseMeta decodes a Details blob. A blob that is empty or not valid
// JSON yields a zero Meta rather than an error.
func ParseMeta(details string) Meta {
	var m Meta
	if strings.TrimSpace(details) == "" {
		return m
	}
	_ = json.Unmarshal([]byte(details), &m)
	return m
}

// Pull is one draw, optimistic or confirmed.
//
// Optimistic marks a locally synthesized record that has not yet been
// confirmed by the remote process. Transitioning marks a record that just
// received its real winner and is eligible for a one-time visual
// transition. Expanded is a purely cosmetic view flag carried across
// merges.
type Pull struct {
	ID        string
	Winner    string
	Details   string
	Timestamp int64

	Optimistic    bool
	Transitioning bool
	Expanded      bool
}

// Pending reports whether the pull's winner has not been resolved yet.
func (p Pull) Pending() bool {
	return p.Winner == ""
}

// NormalizePull converts a wire record into a Pull. A missing identifier
// defaults to the record's positional index; a winner equal to the
// forbidden placeholder is normalized to the empty string so the pending
// check stays canonical.
func NormalizePull(rec PullRecord, index int) Pull {
	id := rec.ID
	if id == "" {
		id = strconv.Itoa(index)
	}
	winner := strings.TrimSpace(rec.Winner)
	if strings.EqualFold(winner, placeholderWinner) {
		winner = ""
	}
	return Pull{
		ID:        id,
		Winner:    winner,
		Details:   rec.Details,
		Timestamp: rec.Timestamp,
	}
}

// normalizeRecord converts a wire record into the session's shape.
func normalizeRecord(id string, rec Record) Sweepstakes {
	entryCount := rec.EntryCount
	if entryCount == 0 && len(rec.Entries) > 0 {
		entryCount = len(rec.Entries)
	}
	pullCount := rec.PullCount
	if pullCount == 0 && len(rec.Pulls) > 0 {
		pullCount = len(rec.Pulls)
	}
	return Sweepstakes{
		ID:         id,
		Creator:    rec.Creator,
		Details:    rec.Details,
		Locked:     rec.Locked,
		EntryCount: entryCount,
		PullCount:  pullCount,
	}
}
