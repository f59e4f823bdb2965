// Package stats composes per-habit strategy figures into user-level
// aggregates and exposes the public home-page counter.
package stats

import (
	"context"

	"go.uber.org/zap"

	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/clock"
	"github.com/fberrez/minihabits/pkg/dateutil"
	"github.com/fberrez/minihabits/repository"
	"github.com/fberrez/minihabits/usecase/habits"
)

type Service struct {
	habits   repository.HabitRepository
	totals   repository.DailyTotalsRepository
	registry *habits.Registry
	clock    clock.Clock
	logger   *zap.Logger
}

func NewService(
	habitRepo repository.HabitRepository,
	totals repository.DailyTotalsRepository,
	registry *habits.Registry,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		habits:   habitRepo,
		totals:   totals,
		registry: registry,
		clock:    clk,
		logger:   logger,
	}
}

// UserStats aggregates over all of the owner's habits, optionally narrowed
// to an id subset. Rates and averages are means of the per-habit figures,
// rounded to one decimal; an owner with no habits gets all zeros.
func (s *Service) UserStats(ctx context.Context, ownerID string, habitIDs []string) (*domain.UserStats, error) {
	list, err := s.habits.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if len(habitIDs) > 0 {
		wanted := make(map[string]struct{}, len(habitIDs))
		for _, id := range habitIDs {
			wanted[id] = struct{}{}
		}
		filtered := list[:0]
		for _, h := range list {
			if _, ok := wanted[h.ID]; ok {
				filtered = append(filtered, h)
			}
		}
		list = filtered
	}

	now := s.clock.Now()
	windows := dateutil.WindowsAt(now)
	today := dateutil.DayOf(now)

	out := &domain.UserStats{
		Habits: make([]domain.HabitStatsOutput, 0, len(list)),
	}

	var (
		streakSum int
		rate7Sum  float64
		rateYSum  float64
	)

	for i := range list {
		habit := &list[i]

		strategy, err := s.registry.Resolve(habit.Type)
		if err != nil {
			return nil, err
		}
		habitStats, err := strategy.Stats(habit, windows)
		if err != nil {
			return nil, err
		}

		out.Habits = append(out.Habits, domain.HabitStatsOutput{
			ID:            habit.ID,
			Name:          habit.Name,
			Type:          habit.Type,
			TargetCounter: habit.TargetCounter,
			HabitStats:    habitStats,
		})

		out.TotalCompletions += habitStats.Completions
		if strategy.IsCompleted(habit, today) {
			out.HabitsCompletedToday++
		}
		if habitStats.LongestStreak > out.MaxStreak {
			out.MaxStreak = habitStats.LongestStreak
		}
		streakSum += habitStats.CurrentStreak
		rate7Sum += habitStats.CompletionRate7Days
		rateYSum += habitStats.CompletionRateYear
	}

	out.TotalHabits = len(list)
	if out.TotalHabits > 0 {
		n := float64(out.TotalHabits)
		out.AverageStreak = round1(float64(streakSum) / n)
		out.CompletionRate7Days = round1(rate7Sum / n)
		out.CompletionRateYear = round1(rateYSum / n)
	}

	return out, nil
}

// HomeStats returns today's global completion counter. The counter is best
// effort end to end, so an unreachable backend degrades to zero instead of
// failing the public endpoint.
func (s *Service) HomeStats(ctx context.Context) (*domain.DailyTotals, error) {
	day := dateutil.DayOf(s.clock.Now())
	total, err := s.totals.Get(ctx, day)
	if err != nil {
		s.logger.Warn("daily totals unavailable", zap.String("day", day), zap.Error(err))
		total = 0
	}
	return &domain.DailyTotals{Day: day, TotalCompleted: total}, nil
}
