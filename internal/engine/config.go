package engine

import "fmt"

// StreakTier grants Bonus coins once the post-completion streak reaches
// MinStreak days. Tiers are boundary-inclusive on the lower bound.
type StreakTier struct {
	MinStreak int
	Bonus     int
}

// RewardConfig holds the reward tables. The tables are configuration, not
// engine constants: the coin value of a task is frozen from this config at
// creation time, and the bonus tiers are read at completion time.
type RewardConfig struct {
	// PriorityBase is the base coin value per priority.
	PriorityBase map[Priority]int

	// CategoryWeight scales the base per category. Expected range [0.8, 1.3].
	CategoryWeight map[Category]float64

	// StreakTiers must be sorted by MinStreak ascending with non-decreasing
	// bonuses.
	StreakTiers []StreakTier

	// DailyClearBonus is granted when a completion finishes the last remaining
	// active daily task for the day. 0 disables the bonus.
	DailyClearBonus int
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		PriorityBase: map[Priority]int{
			PriorityLow:    5,
			PriorityMedium: 10,
			PriorityHigh:   15,
		},
		CategoryWeight: map[Category]float64{
			CategorySport:    1.2,
			CategoryHealth:   1.1,
			CategoryWork:     1.0,
			CategoryLearning: 1.3,
			CategoryRest:     0.8,
			CategoryPersonal: 1.0,
		},
		StreakTiers: []StreakTier{
			{MinStreak: 3, Bonus: 2},
			{MinStreak: 7, Bonus: 5},
			{MinStreak: 30, Bonus: 10},
		},
		DailyClearBonus: 10,
	}
}

func (c RewardConfig) Validate() error {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if c.PriorityBase[p] <= 0 {
			return fmt.Errorf("priority base for %q must be positive", p)
		}
	}
	for _, cat := range Categories() {
		w := c.CategoryWeight[cat]
		if w < 0.8 || w > 1.3 {
			return fmt.Errorf("category weight for %q out of range [0.8, 1.3]: %v", cat, w)
		}
	}
	prevMin, prevBonus := 0, 0
	for i, tier := range c.StreakTiers {
		if tier.MinStreak <= prevMin {
			return fmt.Errorf("streak tier %d: min streak must increase", i)
		}
		if tier.Bonus < prevBonus {
			return fmt.Errorf("streak tier %d: bonus must be non-decreasing", i)
		}
		prevMin, prevBonus = tier.MinStreak, tier.Bonus
	}
	if c.DailyClearBonus < 0 {
		return fmt.Errorf("daily clear bonus must be non-negative")
	}
	return nil
}
