package engine

// XPPerLevelStep is the linear growth of the level curve: going from level L
// to L+1 costs L*100 XP, so the cumulative threshold for level L is
// 100*L*(L-1)/2 (level 2 at 100 XP, level 3 at 300, level 4 at 600, ...).
const XPPerLevelStep = 100

// XPRequiredForLevel returns the total XP threshold required to be at the
// given level. Levels start at 1, which requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return XPPerLevelStep * level * (level - 1) / 2
}

// LevelForTotalXP returns the highest level L such that
// totalXP >= XPRequiredForLevel(L). Total and deterministic for all
// non-negative XP; thresholds are boundary-inclusive (exactly 100 XP is
// level 2).
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}

	// Exponential search upper bound, then binary search.
	low := 1
	high := 2
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}

	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}
