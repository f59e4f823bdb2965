package habits

import (
	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/dateutil"
)

// counterStrategy marks a day completed once its ledger value reaches the
// habit's target. Tracking increments by one, uncapped.
type counterStrategy struct {
	base
}

func (s *counterStrategy) Type() domain.HabitType { return domain.HabitTypeCounter }

func (s *counterStrategy) predicate(habit *domain.Habit) func(int) bool {
	target := habit.TargetCounter
	return func(value int) bool { return value >= target && value > 0 }
}

func (s *counterStrategy) IsCompleted(habit *domain.Habit, day string) bool {
	return s.completedOn(habit, day, s.predicate(habit))
}

func (s *counterStrategy) Track(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeCounter); err != nil {
		return Mutation{}, err
	}
	value := habit.LedgerValue(day)
	habit.SetLedger(day, value+1)
	s.refresh(habit, s.predicate(habit))

	// The home counter ticks on the first increment of the day.
	delta := 0
	if value == 0 {
		delta = 1
	}
	return Mutation{Changed: true, TotalsDelta: delta}, nil
}

func (s *counterStrategy) Untrack(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeCounter); err != nil {
		return Mutation{}, err
	}
	value := habit.LedgerValue(day)
	// Decrementing below zero is a no-op on the ledger, not an error.
	if value > 0 {
		habit.SetLedger(day, value-1)
	}
	s.refresh(habit, s.predicate(habit))

	delta := 0
	if value == 1 {
		delta = -1
	}
	return Mutation{Changed: true, TotalsDelta: delta}, nil
}

func (s *counterStrategy) CalculateStreak(habit *domain.Habit, uptoDay string) int {
	return s.calculateStreak(habit, uptoDay, s.predicate(habit))
}

func (s *counterStrategy) Stats(habit *domain.Habit, windows dateutil.Windows) (domain.HabitStats, error) {
	if err := guard(habit, domain.HabitTypeCounter); err != nil {
		return domain.HabitStats{}, err
	}
	return s.stats(habit, windows, s.predicate(habit)), nil
}
