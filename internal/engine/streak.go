package engine

// Streak is the per-user calendar-day activity counter. The streak belongs to
// the user, not to any single task: completing a second task on the same day
// does not advance it again.
type Streak struct {
	Current  int
	Longest  int
	LastDate Date // date of the most recent completion, "" if none
}

// Advance applies one completion on asOf and returns the updated streak.
//
// Transitions:
//   - no prior completion: current = 1
//   - last completion was asOf-1: current += 1
//   - last completion was asOf (another task same day): no change
//   - gap of two or more days: current resets to 1
//
// A backfilled asOf earlier than the last completion date leaves the streak
// untouched; the ledger still records the completion.
func (s Streak) Advance(asOf Date) Streak {
	if s.LastDate != "" && asOf <= s.LastDate {
		return s
	}
	if s.LastDate != "" && s.LastDate.AddDays(1) == asOf {
		s.Current++
	} else {
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastDate = asOf
	return s
}
