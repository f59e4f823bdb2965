// Package habits implements the habit engine: one strategy per habit type
// defines what counts as completed on a day, how tracking mutates the
// ledger, and how streaks and statistics are derived from it.
package habits

import (
	"math"
	"time"

	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/clock"
	"github.com/fberrez/minihabits/pkg/dateutil"
)

// Mutation describes the outcome of a track/untrack call so the service can
// decide whether to persist and how to adjust the daily totals counter.
type Mutation struct {
	// Changed is false when the call was an idempotent no-op.
	Changed bool
	// TotalsDelta is applied to the best-effort home-page counter.
	TotalsDelta int
}

// Strategy is the per-type behavior object. Track and Untrack mutate the
// record in memory only; persistence is owned by the Service.
type Strategy interface {
	Type() domain.HabitType
	IsCompleted(habit *domain.Habit, day string) bool
	Track(habit *domain.Habit, day string) (Mutation, error)
	Untrack(habit *domain.Habit, day string) (Mutation, error)
	CalculateStreak(habit *domain.Habit, uptoDay string) int
	Stats(habit *domain.Habit, windows dateutil.Windows) (domain.HabitStats, error)
}

// base carries the streak maintainer shared by the day-chained strategies.
// The predicate decides whether a raw ledger value counts as completed.
type base struct {
	clock clock.Clock
}

// guard rejects records routed to the wrong strategy. This should never
// trip through normal Service routing.
func guard(habit *domain.Habit, want domain.HabitType) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}
	if habit.Type != want {
		return domain.ErrInvalidHabitType
	}
	return nil
}

// completedOn applies the value predicate with the creation floor: days
// strictly before createdAt are never completed, whatever the predicate
// would say about an empty ledger entry.
func (b base) completedOn(habit *domain.Habit, day string, pred func(int) bool) bool {
	if day < dateutil.DayOf(habit.CreatedAt) {
		return false
	}
	return pred(habit.LedgerValue(day))
}

// streakFrom walks backward one day at a time from the given anchor while
// the predicate holds, stopping at the first incomplete day or at the
// creation floor. The walk is linear in the length of the run.
func (b base) streakFrom(habit *domain.Habit, from time.Time, pred func(int) bool) int {
	floor := dateutil.StartOfDay(habit.CreatedAt)
	streak := 0
	for d := from; !d.Before(floor); d = d.AddDate(0, 0, -1) {
		if !pred(habit.LedgerValue(dateutil.DayOf(d))) {
			break
		}
		streak++
	}
	return streak
}

func (b base) calculateStreak(habit *domain.Habit, uptoDay string, pred func(int) bool) int {
	anchor, err := dateutil.ParseDay(uptoDay)
	if err != nil {
		return 0
	}
	return b.streakFrom(habit, anchor, pred)
}

// refresh recomputes both cached streak fields after a mutation. The current
// streak is anchored today; the longest streak re-runs the backward scan
// from every day between yesterday and createdAt and takes the maximum, so
// each mutation costs O(d^2) in the habit's age. That quadratic recompute is
// the contract: both fields are a pure function of the ledger.
func (b base) refresh(habit *domain.Habit, pred func(int) bool) {
	today := dateutil.StartOfDay(b.clock.Now())
	current := b.streakFrom(habit, today, pred)

	longest := current
	floor := dateutil.StartOfDay(habit.CreatedAt)
	for d := today.AddDate(0, 0, -1); !d.Before(floor); d = d.AddDate(0, 0, -1) {
		if s := b.streakFrom(habit, d, pred); s > longest {
			longest = s
		}
	}

	habit.CurrentStreak = current
	habit.LongestStreak = longest
}

// stats derives the reporting figures from the ledger without touching the
// record: completions over all ledger entries, windowed completion rates,
// and freshly recomputed streaks (equal to the cached fields by invariant).
func (b base) stats(habit *domain.Habit, windows dateutil.Windows, pred func(int) bool) domain.HabitStats {
	completions := 0
	for _, value := range habit.CompletedDates {
		if pred(value) {
			completions++
		}
	}

	today := dateutil.StartOfDay(b.clock.Now())
	current := b.streakFrom(habit, today, pred)
	longest := current
	floor := dateutil.StartOfDay(habit.CreatedAt)
	for d := today.AddDate(0, 0, -1); !d.Before(floor); d = d.AddDate(0, 0, -1) {
		if s := b.streakFrom(habit, d, pred); s > longest {
			longest = s
		}
	}

	return domain.HabitStats{
		Completions:         completions,
		CompletionRate7Days: b.windowRate(habit, windows.Last7Days, 7, pred),
		CompletionRateMonth: b.windowRate(habit, windows.MonthToDate, len(windows.MonthToDate), pred),
		CompletionRateYear:  b.windowRate(habit, windows.YearToDate, len(windows.YearToDate), pred),
		CurrentStreak:       current,
		LongestStreak:       longest,
	}
}

func (b base) windowRate(habit *domain.Habit, days []string, length int, pred func(int) bool) float64 {
	if length == 0 {
		return 0
	}
	completed := 0
	for _, day := range days {
		if b.completedOn(habit, day, pred) {
			completed++
		}
	}
	return round1(float64(completed) / float64(length) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
