package services

import (
	"testing"
	"time"
)

func TestDaysCleanTruncation(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"exactly five days", now.AddDate(0, 0, -5), 5},
		{"five days minus an hour", now.Add(-5*24*time.Hour + time.Hour), 4},
		{"just started", now, 0},
		{"start in the future", now.Add(time.Hour), 0},
	}
	for _, tc := range cases {
		if got := DaysClean(tc.start, now); got != tc.want {
			t.Errorf("%s: DaysClean = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestAchievementUnlocking(t *testing.T) {
	unlockedDays := func(daysClean int) []int {
		var out []int
		for _, a := range Achievements(daysClean) {
			if a.Unlocked {
				out = append(out, a.Days)
			}
		}
		return out
	}

	equal := func(a, b []int) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}

	if got := unlockedDays(7); !equal(got, []int{1, 7}) {
		t.Fatalf("daysClean=7 unlocked %v, want [1 7]", got)
	}
	if got := unlockedDays(6); !equal(got, []int{1}) {
		t.Fatalf("daysClean=6 unlocked %v, want [1]", got)
	}
	if got := unlockedDays(0); len(got) != 0 {
		t.Fatalf("daysClean=0 unlocked %v, want none", got)
	}
	if got := unlockedDays(365); !equal(got, []int{1, 7, 30, 90, 365}) {
		t.Fatalf("daysClean=365 unlocked %v, want all", got)
	}

	all := Achievements(0)
	if len(all) != 5 {
		t.Fatalf("achievement count = %d, want 5", len(all))
	}
}
