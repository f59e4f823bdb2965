package habits

import (
	"context"

	"github.com/fberrez/minihabits/repository"
)

// StaticQuota caps the number of habits per owner from configuration.
// A limit of zero means unlimited.
type StaticQuota struct {
	habits repository.HabitRepository
	limit  int
}

func NewStaticQuota(habits repository.HabitRepository, limit int) *StaticQuota {
	return &StaticQuota{habits: habits, limit: limit}
}

func (q *StaticQuota) CanCreate(ctx context.Context, ownerID string) (bool, error) {
	if q == nil || q.limit <= 0 {
		return true, nil
	}
	count, err := q.habits.CountByOwner(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return count < q.limit, nil
}

var _ Quota = (*StaticQuota)(nil)
