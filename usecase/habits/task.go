package habits

import (
	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/dateutil"
)

// taskStrategy handles one-shot records. Task streaks are not day-chained:
// tracking sets the current streak flag to 1, untracking resets it to 0,
// and the longest streak never exceeds 1.
type taskStrategy struct {
	base
}

func (s *taskStrategy) Type() domain.HabitType { return domain.HabitTypeTask }

func (s *taskStrategy) predicate(_ *domain.Habit) func(int) bool {
	return func(value int) bool { return value == 1 }
}

func (s *taskStrategy) IsCompleted(habit *domain.Habit, day string) bool {
	return s.completedOn(habit, day, s.predicate(habit))
}

func (s *taskStrategy) Track(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeTask); err != nil {
		return Mutation{}, err
	}
	if habit.LedgerValue(day) == 1 {
		return Mutation{}, nil
	}
	habit.SetLedger(day, 1)

	habit.CurrentStreak = 1
	if habit.LongestStreak < 1 {
		habit.LongestStreak = 1
	}
	return Mutation{Changed: true, TotalsDelta: 1}, nil
}

func (s *taskStrategy) Untrack(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeTask); err != nil {
		return Mutation{}, err
	}
	habit.ClearLedger(day)
	habit.CurrentStreak = 0
	return Mutation{Changed: true, TotalsDelta: -1}, nil
}

// CalculateStreak reports the stored flag; tasks never run the backward scan.
func (s *taskStrategy) CalculateStreak(habit *domain.Habit, _ string) int {
	if habit == nil {
		return 0
	}
	return habit.CurrentStreak
}

func (s *taskStrategy) Stats(habit *domain.Habit, windows dateutil.Windows) (domain.HabitStats, error) {
	if err := guard(habit, domain.HabitTypeTask); err != nil {
		return domain.HabitStats{}, err
	}

	completions := 0
	for _, value := range habit.CompletedDates {
		if value == 1 {
			completions++
		}
	}

	pred := s.predicate(habit)
	return domain.HabitStats{
		Completions:         completions,
		CompletionRate7Days: s.windowRate(habit, windows.Last7Days, 7, pred),
		CompletionRateMonth: s.windowRate(habit, windows.MonthToDate, len(windows.MonthToDate), pred),
		CompletionRateYear:  s.windowRate(habit, windows.YearToDate, len(windows.YearToDate), pred),
		CurrentStreak:       habit.CurrentStreak,
		LongestStreak:       habit.LongestStreak,
	}, nil
}
