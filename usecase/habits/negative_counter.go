package habits

import (
	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/dateutil"
)

// negativeCounterStrategy treats a day as completed while its ledger value
// stays under the target: success is staying below a limit, and every
// increment moves away from it.
type negativeCounterStrategy struct {
	base
}

func (s *negativeCounterStrategy) Type() domain.HabitType { return domain.HabitTypeNegativeCounter }

func (s *negativeCounterStrategy) predicate(habit *domain.Habit) func(int) bool {
	target := habit.TargetCounter
	return func(value int) bool { return value < target }
}

func (s *negativeCounterStrategy) IsCompleted(habit *domain.Habit, day string) bool {
	return s.completedOn(habit, day, s.predicate(habit))
}

func (s *negativeCounterStrategy) Track(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeNegativeCounter); err != nil {
		return Mutation{}, err
	}
	value := habit.LedgerValue(day)
	habit.SetLedger(day, value+1)
	s.refresh(habit, s.predicate(habit))

	// First increment of a still-successful day counts it; crossing the
	// limit takes it back out.
	delta := 0
	switch {
	case value == 0 && value+1 < habit.TargetCounter:
		delta = 1
	case value+1 >= habit.TargetCounter && value < habit.TargetCounter:
		delta = -1
	}
	return Mutation{Changed: true, TotalsDelta: delta}, nil
}

func (s *negativeCounterStrategy) Untrack(habit *domain.Habit, day string) (Mutation, error) {
	if err := guard(habit, domain.HabitTypeNegativeCounter); err != nil {
		return Mutation{}, err
	}
	value := habit.LedgerValue(day)
	if value > 0 {
		habit.SetLedger(day, value-1)
	}
	s.refresh(habit, s.predicate(habit))

	delta := 0
	switch {
	case value >= habit.TargetCounter && value-1 < habit.TargetCounter:
		delta = 1
	case value == 1 && value-1 < habit.TargetCounter:
		delta = -1
	}
	return Mutation{Changed: true, TotalsDelta: delta}, nil
}

func (s *negativeCounterStrategy) CalculateStreak(habit *domain.Habit, uptoDay string) int {
	return s.calculateStreak(habit, uptoDay, s.predicate(habit))
}

func (s *negativeCounterStrategy) Stats(habit *domain.Habit, windows dateutil.Windows) (domain.HabitStats, error) {
	if err := guard(habit, domain.HabitTypeNegativeCounter); err != nil {
		return domain.HabitStats{}, err
	}
	return s.stats(habit, windows, s.predicate(habit)), nil
}
