package sweeps

import (
	"sort"
	"strconv"
)

// MergePulls reconciles the currently displayed pull list with a freshly
// fetched authoritative one. It is a pure function over its two inputs:
// applying it twice with the same fetched data yields the same list, and
// a record whose winner is known is never downgraded back to pending by a
// stale fetch.
//
// Rules, per fetched record:
//   - matches an optimistic record and now carries a real winner: adopt
//     the fresh data, clear the optimistic flag, set transitioning;
//   - matches any record but brings no new winner information: keep the
//     existing record unchanged (prevents the winner text flickering to
//     empty during a transient fetch);
//   - otherwise adopt the fresh record, carrying forward cosmetic view
//     flags from a matching existing record if there is one.
//
// Optimistic records not matched by any fetched record are retained; they
// are still awaiting resolution.
func MergePulls(current, fetched []Pull) []Pull {
	byID := make(map[string]Pull, len(current))
	for _, p := range current {
		byID[p.ID] = p
	}

	matched := make(map[string]bool, len(fetched))
	merged := make([]Pull, 0, len(current)+len(fetched))

	for _, fresh := range fetched {
		matched[fresh.ID] = true
		existing, ok := byID[fresh.ID]
		if !ok {
			merged = append(merged, fresh)
			continue
		}
		switch {
		case existing.Optimistic && !fresh.Pending():
			fresh.Optimistic = false
			fresh.Transitioning = true
			fresh.Expanded = existing.Expanded
			merged = append(merged, fresh)
		case fresh.Pending():
			merged = append(merged, existing)
		default:
			fresh.Expanded = existing.Expanded
			fresh.Transitioning = existing.Transitioning
			merged = append(merged, fresh)
		}
	}

	for _, p := range current {
		if p.Optimistic && !matched[p.ID] {
			merged = append(merged, p)
		}
	}

	SortPulls(merged)
	return merged
}

// SortPulls orders a pull list for display, newest first. Optimistic
// records lead regardless of anything else. Confirmed records order by
// recorded timestamp when both sides carry one; records without
// timestamps fall back to numeric comparison of their positional ids.
func SortPulls(pulls []Pull) {
	sort.SliceStable(pulls, func(i, j int) bool {
		a, b := pulls[i], pulls[j]
		if a.Optimistic != b.Optimistic {
			return a.Optimistic
		}
		if a.Timestamp > 0 && b.Timestamp > 0 && a.Timestamp != b.Timestamp {
			return a.Timestamp > b.Timestamp
		}
		ai, aerr := strconv.Atoi(a.ID)
		bi, berr := strconv.Atoi(b.ID)
		if aerr == nil && berr == nil {
			return ai > bi
		}
		return a.ID > b.ID
	})
}

// AnyPending reports whether any pull in the list is still awaiting a
// winner. It drives the reconciliation poll timer.
func AnyPending(pulls []Pull) bool {
	for _, p := range pulls {
		if p.Pending() {
			return true
		}
	}
	return false
}
