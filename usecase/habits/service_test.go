package habits

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/clock"
	"github.com/fberrez/minihabits/repository"
)

type memoryHabitRepo struct {
	mu     sync.Mutex
	habits map[string]*domain.Habit
	saves  int
}

func newMemoryHabitRepo() *memoryHabitRepo {
	return &memoryHabitRepo{habits: make(map[string]*domain.Habit)}
}

func (r *memoryHabitRepo) key(id, ownerID string) string { return ownerID + "/" + id }

func (r *memoryHabitRepo) FindOne(_ context.Context, id, ownerID string) (*domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	habit, ok := r.habits[r.key(id, ownerID)]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	clone.CompletedDates = make(map[string]int, len(habit.CompletedDates))
	for k, v := range habit.CompletedDates {
		clone.CompletedDates[k] = v
	}
	return &clone, nil
}

func (r *memoryHabitRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Habit
	for _, habit := range r.habits {
		if habit.OwnerID == ownerID {
			out = append(out, *habit)
		}
	}
	return out, nil
}

func (r *memoryHabitRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	list, err := r.ListByOwner(ctx, ownerID)
	return len(list), err
}

func (r *memoryHabitRepo) Create(_ context.Context, habit *domain.Habit) (*domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *habit
	r.habits[r.key(habit.ID, habit.OwnerID)] = &clone
	return habit, nil
}

func (r *memoryHabitRepo) Save(_ context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.key(habit.ID, habit.OwnerID)
	if _, ok := r.habits[key]; !ok {
		return domain.ErrHabitNotFound
	}
	clone := *habit
	r.habits[key] = &clone
	r.saves++
	return nil
}

func (r *memoryHabitRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.key(id, ownerID)
	if _, ok := r.habits[key]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(r.habits, key)
	return nil
}

func (r *memoryHabitRepo) DeleteAllByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, habit := range r.habits {
		if habit.OwnerID == ownerID {
			delete(r.habits, key)
		}
	}
	return nil
}

var _ repository.HabitRepository = (*memoryHabitRepo)(nil)

type recorderSpy struct {
	deltas []int
}

func (r *recorderSpy) Record(_ context.Context, delta int) {
	r.deltas = append(r.deltas, delta)
}

func newTestService(t *testing.T, repo *memoryHabitRepo, recorder *recorderSpy, limit int) *Service {
	t.Helper()
	clk := clock.Fixed(day(t, "2024-06-15"))
	// A nil spy must become a nil interface, not a typed nil the service
	// would happily call Record on.
	var rec CompletionRecorder
	if recorder != nil {
		rec = recorder
	}
	return NewService(repo, NewRegistry(clk), rec, NewStaticQuota(repo, limit), clk, nil)
}

func TestCreateHabitDefaults(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 0)

	habit, err := svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Name:    "read",
		Type:    domain.HabitTypeBoolean,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, habit.ID)
	assert.Equal(t, domain.ColorBlue, habit.Color)
	assert.NotNil(t, habit.CompletedDates)
	assert.Empty(t, habit.CompletedDates)
	assert.Zero(t, habit.CurrentStreak)
	assert.Equal(t, day(t, "2024-06-15"), habit.CreatedAt)
}

func TestCreateHabitValidates(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 0)

	_, err := svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Type:    domain.HabitTypeBoolean,
	})
	require.Error(t, err, "name is required")

	_, err = svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Name:    "water",
		Type:    domain.HabitTypeCounter,
	})
	require.Error(t, err, "counter habits need a positive target")

	_, err = svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Name:    "stretch",
		Type:    domain.HabitType("hourly"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidHabitType)
}

func TestCreateHabitEnforcesQuota(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 2)

	for _, name := range []string{"read", "run"} {
		_, err := svc.CreateHabit(context.Background(), &domain.Habit{
			OwnerID: "owner-1",
			Name:    name,
			Type:    domain.HabitTypeBoolean,
		})
		require.NoError(t, err)
	}

	_, err := svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Name:    "meditate",
		Type:    domain.HabitTypeBoolean,
	})
	assert.ErrorIs(t, err, domain.ErrHabitLimit)

	// The cap is per owner.
	_, err = svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-2",
		Name:    "meditate",
		Type:    domain.HabitTypeBoolean,
	})
	assert.NoError(t, err)
}

func TestTrackHabitPersistsAndRecords(t *testing.T) {
	repo := newMemoryHabitRepo()
	recorder := &recorderSpy{}
	svc := newTestService(t, repo, recorder, 0)

	created, err := svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Name:    "read",
		Type:    domain.HabitTypeBoolean,
	})
	require.NoError(t, err)

	tracked, err := svc.TrackHabit(context.Background(), created.ID, "owner-1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 1, tracked.CurrentStreak)
	assert.Equal(t, []int{1}, recorder.deltas)

	stored, err := repo.FindOne(context.Background(), created.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LedgerValue("2024-06-15"))
	assert.Equal(t, 1, stored.CurrentStreak)

	// Re-tracking the same day neither saves nor records.
	saves := repo.saves
	_, err = svc.TrackHabit(context.Background(), created.ID, "owner-1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, saves, repo.saves)
	assert.Equal(t, []int{1}, recorder.deltas)

	_, err = svc.UntrackHabit(context.Background(), created.ID, "owner-1", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1}, recorder.deltas)
}

func TestTrackHabitNormalizesTimestamps(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 0)

	created, err := svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Name:    "read",
		Type:    domain.HabitTypeBoolean,
	})
	require.NoError(t, err)

	tracked, err := svc.TrackHabit(context.Background(), created.ID, "owner-1", "2024-06-15T22:45:00Z")
	require.NoError(t, err)
	assert.Equal(t, 1, tracked.LedgerValue("2024-06-15"))

	_, err = svc.TrackHabit(context.Background(), created.ID, "owner-1", "not-a-date")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestTrackHabitUnknownID(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 0)

	_, err := svc.TrackHabit(context.Background(), "missing", "owner-1", "2024-06-15")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestUpdateHabitAppliesPartialFields(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 0)

	created, err := svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID:       "owner-1",
		Name:          "water",
		Type:          domain.HabitTypeCounter,
		TargetCounter: 8,
	})
	require.NoError(t, err)

	name := "hydrate"
	target := 10
	updated, err := svc.UpdateHabit(context.Background(), created.ID, "owner-1", UpdateInput{
		Name:          &name,
		TargetCounter: &target,
	})
	require.NoError(t, err)
	assert.Equal(t, "hydrate", updated.Name)
	assert.Equal(t, 10, updated.TargetCounter)
	assert.Equal(t, domain.HabitTypeCounter, updated.Type, "type is immutable")
	assert.Equal(t, created.Color, updated.Color)
}

func TestDeleteAllHabitsScopesToOwner(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 0)

	for _, owner := range []string{"owner-1", "owner-1", "owner-2"} {
		_, err := svc.CreateHabit(context.Background(), &domain.Habit{
			OwnerID: owner,
			Name:    "read",
			Type:    domain.HabitTypeBoolean,
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteAllHabits(context.Background(), "owner-1"))

	gone, err := svc.ListHabits(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := svc.ListHabits(context.Background(), "owner-2")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestHabitStatsIsReadOnly(t *testing.T) {
	repo := newMemoryHabitRepo()
	svc := newTestService(t, repo, nil, 0)

	created, err := svc.CreateHabit(context.Background(), &domain.Habit{
		OwnerID: "owner-1",
		Name:    "read",
		Type:    domain.HabitTypeBoolean,
	})
	require.NoError(t, err)
	_, err = svc.TrackHabit(context.Background(), created.ID, "owner-1", "2024-06-15")
	require.NoError(t, err)

	saves := repo.saves
	stats, err := svc.HabitStats(context.Background(), created.ID, "owner-1")
	require.NoError(t, err)

	assert.Equal(t, created.ID, stats.ID)
	assert.Equal(t, 1, stats.Completions)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, saves, repo.saves, "stats must not persist anything")
}

func TestHabitTypesListsAllFive(t *testing.T) {
	svc := newTestService(t, newMemoryHabitRepo(), nil, 0)

	infos := svc.HabitTypes()
	require.Len(t, infos, 5)
	for _, info := range infos {
		assert.True(t, info.Type.Valid())
		assert.NotEmpty(t, info.Label)
	}
}
