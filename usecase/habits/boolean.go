package habits

import (
	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/dateutil"
)

// booleanStrategy marks a day completed when its ledger value is exactly 1.
type booleanStrategy struct {
	base
}

func (s *booleanStrategy) Type() domain.HabitType { return domain.HabitTypeBoolean }

func (s *booleanStrategy) predicate(_ *domain.Habit) func(int) bool {
	return func(value int) bool { return value == 1 }
}

func (s *booleanStrategy) IsCompleted(habit *domain.Habit, day string) bool {
	return s.completedOn(habit, day, s.predicate(habit))
}

func (s *booleanStrategy) Track(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeBoolean); err != nil {
		return Mutation{}, err
	}
	// Tracking an already-completed day is an idempotent no-op.
	if habit.LedgerValue(day) == 1 {
		return Mutation{}, nil
	}
	habit.SetLedger(day, 1)
	s.refresh(habit, s.predicate(habit))
	return Mutation{Changed: true, TotalsDelta: 1}, nil
}

func (s *booleanStrategy) Untrack(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeBoolean); err != nil {
		return Mutation{}, err
	}
	habit.ClearLedger(day)
	s.refresh(habit, s.predicate(habit))
	return Mutation{Changed: true, TotalsDelta: -1}, nil
}

func (s *booleanStrategy) CalculateStreak(habit *domain.Habit, uptoDay string) int {
	return s.calculateStreak(habit, uptoDay, s.predicate(habit))
}

func (s *booleanStrategy) Stats(habit *domain.Habit, windows dateutil.Windows) (domain.HabitStats, error) {
	if err := guard(habit, domain.HabitTypeBoolean); err != nil {
		return domain.HabitStats{}, err
	}
	return s.stats(habit, windows, s.predicate(habit)), nil
}
