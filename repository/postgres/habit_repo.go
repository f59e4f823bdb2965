package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fberrez/minihabits/domain"
	"github.com/fberrez/minihabits/repository"
)

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository returns a Postgres-backed implementation of HabitRepository.
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

func (r *habitRepository) FindOne(ctx context.Context, id, ownerID string) (*domain.Habit, error) {
	const query = `
	SELECT id, owner_id, name, type, color, description, deadline, target_counter,
	       completed_dates, current_streak, longest_streak, created_at, updated_at
	FROM habits
	WHERE id = $1 AND owner_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanHabit(row)
}

func (r *habitRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Habit, error) {
	const query = `
	SELECT id, owner_id, name, type, color, description, deadline, target_counter,
	       completed_dates, current_streak, longest_streak, created_at, updated_at
	FROM habits
	WHERE owner_id = $1
	ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *habit)
	}
	return habits, rows.Err()
}

func (r *habitRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM habits WHERE owner_id = $1`
	var count int
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	if habit == nil {
		return nil, domain.ErrInvalidPayload
	}
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habits (id, owner_id, name, type, color, description, deadline, target_counter,
	                    completed_dates, current_streak, longest_streak, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12, NOW()))
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.OwnerID,
		habit.Name,
		habit.Type,
		habit.Color,
		habit.Description,
		nullTime(habit.Deadline),
		habit.TargetCounter,
		marshalLedger(habit.CompletedDates),
		habit.CurrentStreak,
		habit.LongestStreak,
		nullTimestamp(habit.CreatedAt),
	).Scan(&habit.CreatedAt, &habit.UpdatedAt); err != nil {
		return nil, err
	}

	return habit, nil
}

func (r *habitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE habits
	SET name = $3,
		color = $4,
		description = $5,
		deadline = $6,
		target_counter = $7,
		completed_dates = $8,
		current_streak = $9,
		longest_streak = $10,
		updated_at = NOW()
	WHERE id = $1 AND owner_id = $2
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.OwnerID,
		habit.Name,
		habit.Color,
		habit.Description,
		nullTime(habit.Deadline),
		habit.TargetCounter,
		marshalLedger(habit.CompletedDates),
		habit.CurrentStreak,
		habit.LongestStreak,
	).Scan(&habit.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return err
	}

	return nil
}

func (r *habitRepository) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM habits WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *habitRepository) DeleteAllByOwner(ctx context.Context, ownerID string) error {
	const query = `DELETE FROM habits WHERE owner_id = $1`
	_, err := r.pool.Exec(ctx, query, ownerID)
	return err
}

func scanHabit(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Habit, error) {
	var habit domain.Habit
	var (
		deadline *time.Time
		ledger   []byte
	)

	if err := row.Scan(
		&habit.ID,
		&habit.OwnerID,
		&habit.Name,
		&habit.Type,
		&habit.Color,
		&habit.Description,
		&deadline,
		&habit.TargetCounter,
		&ledger,
		&habit.CurrentStreak,
		&habit.LongestStreak,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, err
	}

	habit.Deadline = deadline
	habit.CompletedDates = make(map[string]int)
	if len(ledger) > 0 {
		// A ledger that fails to decode must not load as empty: the next
		// Save would overwrite the stored history.
		if err := json.Unmarshal(ledger, &habit.CompletedDates); err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "corrupted completion ledger", err)
		}
	}

	return &habit, nil
}
