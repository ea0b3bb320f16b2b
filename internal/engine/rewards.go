package engine

import "math"

// Reward is the coin breakdown of a single completion. All three parts are
// also counted as experience points.
type Reward struct {
	CoinsEarned     int
	StreakBonus     int
	CompletionBonus int
}

func (r Reward) Total() int {
	return r.CoinsEarned + r.StreakBonus + r.CompletionBonus
}

// CoinValue computes the coin value of a new task from its priority and
// category. The value is frozen at task creation and never recomputed, so
// later config changes do not retroactively reprice existing tasks.
func (c RewardConfig) CoinValue(p Priority, cat Category) int {
	base := float64(c.PriorityBase[p])
	weight, ok := c.CategoryWeight[cat]
	if !ok {
		weight = 1.0
	}
	v := int(math.Round(base * weight))
	if v < 1 {
		v = 1
	}
	return v
}

// StreakBonus returns the coin bonus for the post-completion streak value.
// Tiers are evaluated on the boundary-inclusive lower bound.
func (c RewardConfig) StreakBonus(streak int) int {
	bonus := 0
	for _, tier := range c.StreakTiers {
		if streak >= tier.MinStreak {
			bonus = tier.Bonus
		}
	}
	return bonus
}

// CalculateReward computes the full coin breakdown for a completion.
// coinValue is the task's frozen value, newStreak the post-completion streak,
// and dailyClear whether this completion finished every active daily task for
// the day. Pure: no side effects, cannot fail.
func CalculateReward(c RewardConfig, coinValue int, newStreak int, dailyClear bool) Reward {
	r := Reward{
		CoinsEarned: coinValue,
		StreakBonus: c.StreakBonus(newStreak),
	}
	if dailyClear {
		r.CompletionBonus = c.DailyClearBonus
	}
	return r
}
