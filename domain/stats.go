package domain

// HabitStats holds the per-habit figures computed by a strategy.
// Completion rates are percentages rounded to one decimal place.
type HabitStats struct {
	Completions         int     `json:"completions"`
	CompletionRate7Days float64 `json:"completion_rate_7_days"`
	CompletionRateMonth float64 `json:"completion_rate_month"`
	CompletionRateYear  float64 `json:"completion_rate_year"`
	CurrentStreak       int     `json:"current_streak"`
	LongestStreak       int     `json:"longest_streak"`
}

// HabitStatsOutput is the reporting view of a single habit.
type HabitStatsOutput struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          HabitType `json:"type"`
	TargetCounter int       `json:"target_counter,omitempty"`
	HabitStats
}

// UserStats aggregates over all (or a filtered subset of) a user's habits.
type UserStats struct {
	TotalHabits          int                `json:"total_habits"`
	TotalCompletions     int                `json:"total_completions"`
	HabitsCompletedToday int                `json:"habits_completed_today"`
	AverageStreak        float64            `json:"average_streak"`
	CompletionRate7Days  float64            `json:"completion_rate_7_days"`
	CompletionRateYear   float64            `json:"completion_rate_year"`
	MaxStreak            int                `json:"max_streak"`
	Habits               []HabitStatsOutput `json:"habits"`
}

// DailyTotals is the home-page counter: completions recorded across all
// users for one calendar day.
type DailyTotals struct {
	Day            string `json:"day"`
	TotalCompleted int64  `json:"total_completed"`
}

// HabitTypeInfo pairs a habit type with its display label.
type HabitTypeInfo struct {
	Type  HabitType `json:"type"`
	Label string    `json:"label"`
}
