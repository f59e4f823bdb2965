package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/clock"
	"github.com/fberrez/minihabits/repository"
	"github.com/fberrez/minihabits/usecase/habits"
)

type memoryHabitRepo struct {
	habits []domain.Habit
}

func (r *memoryHabitRepo) FindOne(_ context.Context, id, ownerID string) (*domain.Habit, error) {
	for i := range r.habits {
		if r.habits[i].ID == id && r.habits[i].OwnerID == ownerID {
			return &r.habits[i], nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func (r *memoryHabitRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Habit, error) {
	var out []domain.Habit
	for _, h := range r.habits {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memoryHabitRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	list, err := r.ListByOwner(ctx, ownerID)
	return len(list), err
}

func (r *memoryHabitRepo) Create(_ context.Context, habit *domain.Habit) (*domain.Habit, error) {
	r.habits = append(r.habits, *habit)
	return habit, nil
}

func (r *memoryHabitRepo) Save(_ context.Context, habit *domain.Habit) error {
	for i := range r.habits {
		if r.habits[i].ID == habit.ID {
			r.habits[i] = *habit
			return nil
		}
	}
	return domain.ErrHabitNotFound
}

func (r *memoryHabitRepo) Delete(_ context.Context, id, ownerID string) error { return nil }

func (r *memoryHabitRepo) DeleteAllByOwner(_ context.Context, ownerID string) error { return nil }

var _ repository.HabitRepository = (*memoryHabitRepo)(nil)

type memoryTotals struct {
	totals map[string]int64
	fail   bool
}

func (m *memoryTotals) Add(_ context.Context, day string, delta int64) error {
	if m.totals == nil {
		m.totals = make(map[string]int64)
	}
	m.totals[day] += delta
	return nil
}

func (m *memoryTotals) Get(_ context.Context, day string) (int64, error) {
	if m.fail {
		return 0, errors.New("connection refused")
	}
	return m.totals[day], nil
}

var _ repository.DailyTotalsRepository = (*memoryTotals)(nil)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func booleanHabit(t *testing.T, id, owner, created string, tracked ...string) domain.Habit {
	t.Helper()
	ledger := make(map[string]int, len(tracked))
	for _, d := range tracked {
		ledger[d] = 1
	}
	return domain.Habit{
		ID:             id,
		OwnerID:        owner,
		Name:           "habit " + id,
		Type:           domain.HabitTypeBoolean,
		CompletedDates: ledger,
		CreatedAt:      day(t, created),
	}
}

func TestUserStatsAveragesStreaks(t *testing.T) {
	clk := clock.Fixed(day(t, "2024-06-15"))
	repo := &memoryHabitRepo{habits: []domain.Habit{
		// Four-day run ending today.
		booleanHabit(t, "h1", "owner-1", "2024-06-01",
			"2024-06-12", "2024-06-13", "2024-06-14", "2024-06-15"),
		// Never tracked.
		booleanHabit(t, "h2", "owner-1", "2024-06-01"),
	}}
	svc := NewService(repo, &memoryTotals{}, habits.NewRegistry(clk), clk, nil)

	stats, err := svc.UserStats(context.Background(), "owner-1", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalHabits)
	assert.Equal(t, 4, stats.TotalCompletions)
	assert.Equal(t, 1, stats.HabitsCompletedToday)
	assert.Equal(t, 4, stats.MaxStreak)
	assert.InDelta(t, 2.0, stats.AverageStreak, 0.001)
	require.Len(t, stats.Habits, 2)
	assert.Equal(t, 4, stats.Habits[0].CurrentStreak)
	assert.Zero(t, stats.Habits[1].CurrentStreak)
}

func TestUserStatsRatesAreMeansOfHabitRates(t *testing.T) {
	clk := clock.Fixed(day(t, "2024-06-15"))
	repo := &memoryHabitRepo{habits: []domain.Habit{
		// Completed every day of the window.
		booleanHabit(t, "h1", "owner-1", "2024-06-01",
			"2024-06-09", "2024-06-10", "2024-06-11", "2024-06-12",
			"2024-06-13", "2024-06-14", "2024-06-15"),
		booleanHabit(t, "h2", "owner-1", "2024-06-01"),
	}}
	svc := NewService(repo, &memoryTotals{}, habits.NewRegistry(clk), clk, nil)

	stats, err := svc.UserStats(context.Background(), "owner-1", nil)
	require.NoError(t, err)

	// (100 + 0) / 2 habits.
	assert.InDelta(t, 50.0, stats.CompletionRate7Days, 0.001)
}

func TestUserStatsWithNoHabits(t *testing.T) {
	clk := clock.Fixed(day(t, "2024-06-15"))
	svc := NewService(&memoryHabitRepo{}, &memoryTotals{}, habits.NewRegistry(clk), clk, nil)

	stats, err := svc.UserStats(context.Background(), "owner-1", nil)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalHabits)
	assert.Zero(t, stats.AverageStreak)
	assert.Zero(t, stats.CompletionRate7Days)
	assert.Empty(t, stats.Habits)
}

func TestUserStatsFiltersByID(t *testing.T) {
	clk := clock.Fixed(day(t, "2024-06-15"))
	repo := &memoryHabitRepo{habits: []domain.Habit{
		booleanHabit(t, "h1", "owner-1", "2024-06-01", "2024-06-15"),
		booleanHabit(t, "h2", "owner-1", "2024-06-01"),
		booleanHabit(t, "h3", "owner-2", "2024-06-01", "2024-06-15"),
	}}
	svc := NewService(repo, &memoryTotals{}, habits.NewRegistry(clk), clk, nil)

	stats, err := svc.UserStats(context.Background(), "owner-1", []string{"h1"})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalHabits)
	require.Len(t, stats.Habits, 1)
	assert.Equal(t, "h1", stats.Habits[0].ID)

	// Another owner's id is invisible even when asked for.
	stats, err = svc.UserStats(context.Background(), "owner-1", []string{"h3"})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalHabits)
}

func TestHomeStatsReadsToday(t *testing.T) {
	clk := clock.Fixed(day(t, "2024-06-15"))
	totals := &memoryTotals{}
	require.NoError(t, totals.Add(context.Background(), "2024-06-15", 7))
	require.NoError(t, totals.Add(context.Background(), "2024-06-14", 3))

	svc := NewService(&memoryHabitRepo{}, totals, habits.NewRegistry(clk), clk, nil)

	home, err := svc.HomeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", home.Day)
	assert.EqualValues(t, 7, home.TotalCompleted)
}

func TestHomeStatsDegradesToZeroWhenBackendDown(t *testing.T) {
	clk := clock.Fixed(day(t, "2024-06-15"))
	svc := NewService(&memoryHabitRepo{}, &memoryTotals{fail: true}, habits.NewRegistry(clk), clk, nil)

	home, err := svc.HomeStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, home.TotalCompleted)
}
