package habits

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/pkg/clock"
	"github.com/fberrez/minihabits/pkg/dateutil"
	"github.com/fberrez/minihabits/pkg/logger"
	"github.com/fberrez/minihabits/repository"
)

// Service is the habit dispatcher: it loads records scoped by owner,
// resolves the strategy for the stored type, delegates, and persists the
// mutated record together with its recomputed streak fields in one save.
type Service struct {
	habits   repository.HabitRepository
	registry *Registry
	recorder CompletionRecorder
	quota    Quota
	clock    clock.Clock
	logger   *zap.Logger
}

func NewService(
	habits repository.HabitRepository,
	registry *Registry,
	recorder CompletionRecorder,
	quota Quota,
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
		habits:   habits,
		registry: registry,
		recorder: recorder,
		quota:    quota,
		clock:    clk,
		logger:   logger,
	}
}

// CreateHabit validates and stores a new record with an empty ledger.
func (s *Service) CreateHabit(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	if habit == nil {
		return nil, domain.ErrInvalidPayload
	}
	if habit.Color == "" {
		habit.Color = domain.ColorBlue
	}
	if err := habit.Validate(); err != nil {
		return nil, err
	}

	if s.quota != nil {
		allowed, err := s.quota.CanCreate(ctx, habit.OwnerID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, domain.ErrHabitLimit
		}
	}

	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}
	habit.CompletedDates = make(map[string]int)
	habit.CurrentStreak = 0
	habit.LongestStreak = 0
	habit.CreatedAt = s.clock.Now().UTC()

	return s.habits.Create(ctx, habit)
}

// GetHabit loads a record by (id, owner).
func (s *Service) GetHabit(ctx context.Context, id, ownerID string) (*domain.Habit, error) {
	return s.habits.FindOne(ctx, id, ownerID)
}

// ListHabits returns all of the owner's records.
func (s *Service) ListHabits(ctx context.Context, ownerID string) ([]domain.Habit, error) {
	return s.habits.ListByOwner(ctx, ownerID)
}

// UpdateInput carries the mutable fields of a habit. The type is immutable
// after creation; nil fields are left untouched.
type UpdateInput struct {
	Name          *string
	Color         *domain.HabitColor
	Description   *string
	Deadline      *time.Time
	TargetCounter *int
}

// UpdateHabit applies the provided fields and persists the record.
func (s *Service) UpdateHabit(ctx context.Context, id, ownerID string, input UpdateInput) (*domain.Habit, error) {
	habit, err := s.habits.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		habit.Name = *input.Name
	}
	if input.Color != nil {
		habit.Color = *input.Color
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.Deadline != nil {
		habit.Deadline = input.Deadline
	}
	if input.TargetCounter != nil {
		habit.TargetCounter = *input.TargetCounter
	}

	if err := habit.Validate(); err != nil {
		return nil, err
	}
	if err := s.habits.Save(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// DeleteHabit removes a single record.
func (s *Service) DeleteHabit(ctx context.Context, id, ownerID string) error {
	return s.habits.Delete(ctx, id, ownerID)
}

// DeleteAllHabits removes every record the owner has. Exposed for the
// account-deletion collaborator.
func (s *Service) DeleteAllHabits(ctx context.Context, ownerID string) error {
	return s.habits.DeleteAllByOwner(ctx, ownerID)
}

// TrackHabit records progress for the given ISO date. The ledger mutation,
// the streak recompute and the save form one logical unit: a failed save
// fails the whole call.
func (s *Service) TrackHabit(ctx context.Context, id, ownerID, date string) (*domain.Habit, error) {
	return s.mutate(ctx, id, ownerID, date, Strategy.Track)
}

// UntrackHabit reverses progress for the given ISO date.
func (s *Service) UntrackHabit(ctx context.Context, id, ownerID, date string) (*domain.Habit, error) {
	return s.mutate(ctx, id, ownerID, date, Strategy.Untrack)
}

func (s *Service) mutate(
	ctx context.Context,
	id, ownerID, date string,
	op func(Strategy, *domain.Habit, string) (Mutation, error),
) (*domain.Habit, error) {
	day, err := dateutil.NormalizeDay(date)
	if err != nil {
		return nil, err
	}

	habit, err := s.habits.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	strategy, err := s.registry.Resolve(habit.Type)
	if err != nil {
		return nil, err
	}

	mutation, err := op(strategy, habit, day)
	if err != nil {
		return nil, err
	}
	if !mutation.Changed {
		return habit, nil
	}

	if err := s.habits.Save(ctx, habit); err != nil {
		return nil, err
	}

	if mutation.TotalsDelta != 0 && s.recorder != nil {
		s.recorder.Record(ctx, mutation.TotalsDelta)
	}

	logger.WithRequestID(ctx, s.logger).Debug("habit ledger updated",
		zap.String("habit_id", habit.ID),
		zap.String("day", day),
		zap.Int("current_streak", habit.CurrentStreak))
	return habit, nil
}

// HabitStats computes the reporting view of a single habit. Read-only: the
// figures are rebuilt from the ledger and never written back.
func (s *Service) HabitStats(ctx context.Context, id, ownerID string) (*domain.HabitStatsOutput, error) {
	habit, err := s.habits.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	strategy, err := s.registry.Resolve(habit.Type)
	if err != nil {
		return nil, err
	}

	stats, err := strategy.Stats(habit, dateutil.WindowsAt(s.clock.Now()))
	if err != nil {
		return nil, err
	}

	return &domain.HabitStatsOutput{
		ID:            habit.ID,
		Name:          habit.Name,
		Type:          habit.Type,
		TargetCounter: habit.TargetCounter,
		HabitStats:    stats,
	}, nil
}

// HabitTypes lists the supported types with display labels.
func (s *Service) HabitTypes() []domain.HabitTypeInfo {
	types := domain.HabitTypes()
	infos := make([]domain.HabitTypeInfo, 0, len(types))
	for _, t := range types {
		infos = append(infos, domain.HabitTypeInfo{Type: t, Label: t.Label()})
	}
	return infos
}
