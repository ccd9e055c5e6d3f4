package services

// Achievement thresholds are a fixed ascending list of clean-day counts.
// They are derived from the active streak on every read, never persisted.

type Achievement struct {
	Days     int    `json:"days"`
	Label    string `json:"label"`
	Unlocked bool   `json:"unlocked"`
}

var achievementThresholds = []struct {
	days  int
	label string
}{
	{1, "First Day"},
	{7, "One Week"},
	{30, "One Month"},
	{90, "Three Months"},
	{365, "One Year"},
}

func Achievements(daysClean int) []Achievement {
	out := make([]Achievement, 0, len(achievementThresholds))
	for _, th := range achievementThresholds {
		out = append(out, Achievement{
			Days:     th.days,
			Label:    th.label,
			Unlocked: daysClean >= th.days,
		})
	}
	return out
}
