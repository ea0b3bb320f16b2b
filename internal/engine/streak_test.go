package engine

import "testing"

func TestStreakFirstCompletion(t *testing.T) {
	s := Streak{}.Advance("2025-03-10")
	if s.Current != 1 || s.Longest != 1 || s.LastDate != "2025-03-10" {
		t.Fatalf("streak=%+v, want 1/1/2025-03-10", s)
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	s := Streak{Current: 6, Longest: 6, LastDate: "2025-03-10"}
	s = s.Advance("2025-03-11")
	if s.Current != 7 || s.Longest != 7 {
		t.Fatalf("streak=%+v, want current 7", s)
	}
}

func TestStreakSameDayNoDoubleIncrement(t *testing.T) {
	s := Streak{Current: 3, Longest: 5, LastDate: "2025-03-10"}
	got := s.Advance("2025-03-10")
	if got != s {
		t.Fatalf("same-day advance changed state: %+v → %+v", s, got)
	}
}

func TestStreakGapResets(t *testing.T) {
	s := Streak{Current: 9, Longest: 9, LastDate: "2025-03-10"}
	s = s.Advance("2025-03-12")
	if s.Current != 1 {
		t.Fatalf("current=%d after gap, want 1", s.Current)
	}
	if s.Longest != 9 {
		t.Fatalf("longest=%d after gap, want 9", s.Longest)
	}
}

func TestStreakBackfillEarlierDateIsNoop(t *testing.T) {
	s := Streak{Current: 4, Longest: 4, LastDate: "2025-03-10"}
	got := s.Advance("2025-03-08")
	if got != s {
		t.Fatalf("backfill changed state: %+v → %+v", s, got)
	}
}

func TestStreakMonthBoundary(t *testing.T) {
	s := Streak{Current: 2, Longest: 2, LastDate: "2025-02-28"}
	s = s.Advance("2025-03-01")
	if s.Current != 3 {
		t.Fatalf("current=%d across month boundary, want 3", s.Current)
	}
}

func TestLongestAlwaysAtLeastCurrent(t *testing.T) {
	s := Streak{}
	day := Date("2025-01-01")
	for i := 0; i < 40; i++ {
		s = s.Advance(day)
		if s.Longest < s.Current {
			t.Fatalf("longest %d < current %d", s.Longest, s.Current)
		}
		day = day.AddDays(1)
	}
	if s.Current != 40 {
		t.Fatalf("current=%d after 40 days, want 40", s.Current)
	}
}
