package habits

import (
	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/dateutil"
)

// negativeBooleanStrategy inverts the boolean predicate: success is the
// absence of the mark. Tracking records that the avoided event happened.
type negativeBooleanStrategy struct {
	base
}

func (s *negativeBooleanStrategy) Type() domain.HabitType { return domain.HabitTypeNegativeBoolean }

func (s *negativeBooleanStrategy) predicate(_ *domain.Habit) func(int) bool {
	return func(value int) bool { return value != 1 }
}

func (s *negativeBooleanStrategy) IsCompleted(habit *domain.Habit, day string) bool {
	return s.completedOn(habit, day, s.predicate(habit))
}

func (s *negativeBooleanStrategy) Track(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeNegativeBoolean); err != nil {
		return Mutation{}, err
	}
	if habit.LedgerValue(day) == 1 {
		return Mutation{}, nil
	}
	habit.SetLedger(day, 1)
	s.refresh(habit, s.predicate(habit))
	return Mutation{Changed: true, TotalsDelta: 1}, nil
}

func (s *negativeBooleanStrategy) Untrack(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeNegativeBoolean); err != nil {
		return Mutation{}, err
	}
	habit.ClearLedger(day)
	s.refresh(habit, s.predicate(habit))
	return Mutation{Changed: true, TotalsDelta: -1}, nil
}

func (s *negativeBooleanStrategy) CalculateStreak(habit *domain.Habit, uptoDay string) int {
	return s.calculateStreak(habit, uptoDay, s.predicate(habit))
}

func (s *negativeBooleanStrategy) Stats(habit *domain.Habit, windows dateutil.Windows) (domain.HabitStats, error) {
	if err := guard(habit, domain.HabitTypeNegativeBoolean); err != nil {
		return domain.HabitStats{}, err
	}
	return s.stats(habit, windows, s.predicate(habit)), nil
}
