package repository

import (
	"context"

	"github.com/fberrez/minihabits/domain"
)

// HabitRepository persists habit records. All lookups are scoped by owner:
// a habit that exists under a different owner behaves as not found.
type HabitRepository interface {
	FindOne(ctx context.Context, id, ownerID string) (*domain.Habit, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Habit, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error)
	Save(ctx context.Context, habit *domain.Habit) error
	Delete(ctx context.Context, id, ownerID string) error
	DeleteAllByOwner(ctx context.Context, ownerID string) error
}
