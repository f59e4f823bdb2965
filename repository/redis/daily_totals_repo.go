package redis

import (
	"context"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fberrez/minihabits/repository"
)

type dailyTotalsRepository struct {
	client *redislib.Client
	prefix string
}

// NewDailyTotalsRepository creates a Redis-backed daily totals counter.
func NewDailyTotalsRepository(client *redislib.Client) repository.DailyTotalsRepository {
	return &dailyTotalsRepository{
		client: client,
		prefix: "totals:",
	}
}

func (r *dailyTotalsRepository) Add(ctx context.Context, day string, delta int64) error {
	total, err := r.client.IncrBy(ctx, r.key(day), delta).Result()
	if err != nil {
		return err
	}
	// The counter is floored at zero: a decrement racing past the floor is
	// clamped rather than surfaced as an error.
	if total < 0 {
		return r.client.Set(ctx, r.key(day), 0, 0).Err()
	}
	return nil
}

func (r *dailyTotalsRepository) Get(ctx context.Context, day string) (int64, error) {
	total, err := r.client.Get(ctx, r.key(day)).Int64()
	if err != nil {
		if err == redislib.Nil {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}

func (r *dailyTotalsRepository) key(day string) string {
	return fmt.Sprintf("%s%s", r.prefix, day)
}
