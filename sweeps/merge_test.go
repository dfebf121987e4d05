package sweeps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePullsAdoptsNewRecords(t *testing.T) {
	fetched := []Pull{
		{ID: "0", Winner: "Alice", Timestamp: 100},
		{ID: "1", Winner: "Bob", Timestamp: 200},
	}
	merged := MergePulls(nil, fetched)
	require.Len(t, merged, 2)
	assert.Equal(t, "Bob", merged[0].Winner)
	assert.Equal(t, "Alice", merged[1].Winner)
}

func TestMergePullsIdempotent(t *testing.T) {
	current := []Pull{
		{ID: "2", Optimistic: true},
		{ID: "1", Winner: "Bob", Timestamp: 200},
		{ID: "0", Winner: "Alice", Timestamp: 100},
	}
	fetched := []Pull{
		{ID: "0", Winner: "Alice", Timestamp: 100},
		{ID: "1", Winner: "Bob", Timestamp: 200},
	}
	once := MergePulls(current, fetched)
	twice := MergePulls(once, fetched)
	assert.Equal(t, once, twice)
}

func TestMergePullsIdempotentAfterResolution(t *testing.T) {
	current := []Pull{{ID: "0", Optimistic: true}}
	fetched := []Pull{{ID: "0", Winner: "Alice", Timestamp: 100}}

	once := MergePulls(current, fetched)
	require.Len(t, once, 1)
	require.True(t, once[0].Transitioning)

	// The same fetched data again must not strip the transition flag;
	// only ClearTransitioning resets it.
	twice := MergePulls(once, fetched)
	assert.Equal(t, once, twice)
	assert.True(t, twice[0].Transitioning)
}

func TestMergePullsNeverDowngradesWinner(t *testing.T) {
	current := []Pull{{ID: "0", Winner: "Alice", Timestamp: 100}}
	stale := []Pull{{ID: "0", Timestamp: 100}}
	merged := MergePulls(current, stale)
	require.Len(t, merged, 1)
	assert.Equal(t, "Alice", merged[0].Winner)
}

func TestMergePullsResolvesOptimistic(t *testing.T) {
	current := []Pull{{ID: "0", Optimistic: true, Expanded: true}}
	fetched := []Pull{{ID: "0", Winner: "Carol", Timestamp: 300}}
	merged := MergePulls(current, fetched)
	require.Len(t, merged, 1)

	got := merged[0]
	assert.Equal(t, "Carol", got.Winner)
	assert.False(t, got.Optimistic)
	assert.True(t, got.Transitioning, "a freshly resolved pull should be flagged for the view transition")
	assert.True(t, got.Expanded, "cosmetic flags survive the merge")
	assert.False(t, AnyPending(merged))
}

func TestMergePullsKeepsUnmatchedOptimistic(t *testing.T) {
	current := []Pull{
		{ID: "1", Optimistic: true},
		{ID: "0", Winner: "Alice", Timestamp: 100},
	}
	// The process has not recorded the new pull yet.
	fetched := []Pull{{ID: "0", Winner: "Alice", Timestamp: 100}}
	merged := MergePulls(current, fetched)
	require.Len(t, merged, 2)
	assert.Equal(t, "1", merged[0].ID)
	assert.True(t, merged[0].Optimistic)
	assert.True(t, AnyPending(merged))
}

// First pull on a fresh sweepstakes: the optimistic record predicts the
// positional id the process will assign, so the authoritative record
// lands on it instead of duplicating it.
func TestMergePullsFirstPullConverges(t *testing.T) {
	current := []Pull{{ID: "0", Optimistic: true}}

	// Tick while the draw is still unresolved: nothing changes.
	merged := MergePulls(current, nil)
	require.Len(t, merged, 1)
	assert.True(t, merged[0].Optimistic)

	// Tick after resolution.
	merged = MergePulls(merged, []Pull{{ID: "0", Winner: "Alice", Timestamp: 400}})
	require.Len(t, merged, 1)
	assert.Equal(t, "Alice", merged[0].Winner)
	assert.False(t, merged[0].Optimistic)
	assert.False(t, AnyPending(merged))
}

func TestSortPullsOrder(t *testing.T) {
	pulls := []Pull{
		{ID: "0", Winner: "Alice", Timestamp: 100},
		{ID: "10", Winner: "Dana"},
		{ID: "2", Winner: "Carol"},
		{ID: "3", Optimistic: true},
		{ID: "1", Winner: "Bob", Timestamp: 200},
	}
	SortPulls(pulls)

	gotIDs := make([]string, len(pulls))
	for i, p := range pulls {
		gotIDs[i] = p.ID
	}
	// Optimistic first; records without timestamps compare by numeric id
	// so "10" outranks "2"; "1" and "0" both carry timestamps.
	assert.Equal(t, []string{"3", "10", "2", "1", "0"}, gotIDs)
}

func TestSortPullsTimestampOutranksPositionalID(t *testing.T) {
	pulls := []Pull{
		{ID: "5", Winner: "Alice", Timestamp: 100},
		{ID: "4", Winner: "Bob", Timestamp: 500},
	}
	SortPulls(pulls)
	// Both sides carry timestamps, so the newer draw leads even though
	// its positional id is lower.
	assert.Equal(t, "4", pulls[0].ID)
	assert.Equal(t, "5", pulls[1].ID)
}

func TestNormalizePull(t *testing.T) {
	tests := []struct {
		name  string
		rec   PullRecord
		index int
		want  Pull
	}{
		{
			name: "complete record",
			rec:  PullRecord{ID: "4", Winner: "Alice", Timestamp: 100},
			want: Pull{ID: "4", Winner: "Alice", Timestamp: 100},
		},
		{
			name:  "missing id defaults to index",
			rec:   PullRecord{Winner: "Bob"},
			index: 7,
			want:  Pull{ID: "7", Winner: "Bob"},
		},
		{
			name: "placeholder winner is pending",
			rec:  PullRecord{ID: "1", Winner: "Unknown"},
			want: Pull{ID: "1"},
		},
		{
			name: "placeholder is case-insensitive",
			rec:  PullRecord{ID: "1", Winner: "  unknown "},
			want: Pull{ID: "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePull(tt.rec, tt.index)
			assert.Equal(t, tt.want, got)
			if tt.want.Winner == "" {
				assert.True(t, got.Pending())
			}
		})
	}
}

func TestParseMeta(t *testing.T) {
	meta := ParseMeta(`{"name":"Spring Giveaway","prize":"Hardware wallet"}`)
	assert.Equal(t, "Spring Giveaway", meta.Name)
	assert.Equal(t, "Hardware wallet", meta.Prize)

	assert.Equal(t, Meta{}, ParseMeta(""))
	assert.Equal(t, Meta{}, ParseMeta("plain text details"))
}
