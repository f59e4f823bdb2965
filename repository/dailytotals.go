package repository

import "context"

// DailyTotalsRepository stores the home-page counter: completions recorded
// across all users, bucketed by UTC day. Totals never go below zero.
type DailyTotalsRepository interface {
	Add(ctx context.Context, day string, delta int64) error
	Get(ctx context.Context, day string) (int64, error)
}
