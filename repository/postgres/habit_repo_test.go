package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fberrez/minihabits/domain"
)

// stubRow plays a single pgx row whose columns match the habit SELECT list.
type stubRow struct {
	err    error
	ledger []byte
}

func (r stubRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	*dest[0].(*string) = "habit-1"
	*dest[1].(*string) = "owner-1"
	*dest[2].(*string) = "read"
	*dest[3].(*domain.HabitType) = domain.HabitTypeBoolean
	*dest[4].(*domain.HabitColor) = domain.ColorBlue
	*dest[5].(*string) = ""
	*dest[6].(**time.Time) = nil
	*dest[7].(*int) = 0
	*dest[8].(*[]byte) = r.ledger
	*dest[9].(*int) = 1
	*dest[10].(*int) = 3
	*dest[11].(*time.Time) = now
	*dest[12].(*time.Time) = now
	return nil
}

func TestScanHabitDecodesLedger(t *testing.T) {
	habit, err := scanHabit(stubRow{ledger: []byte(`{"2024-06-15":1}`)})
	require.NoError(t, err)

	assert.Equal(t, "habit-1", habit.ID)
	assert.Equal(t, 1, habit.LedgerValue("2024-06-15"))
	assert.Equal(t, 3, habit.LongestStreak)
}

func TestScanHabitEmptyLedger(t *testing.T) {
	habit, err := scanHabit(stubRow{ledger: []byte(`{}`)})
	require.NoError(t, err)
	assert.NotNil(t, habit.CompletedDates)
	assert.Empty(t, habit.CompletedDates)
}

func TestScanHabitRejectsCorruptedLedger(t *testing.T) {
	_, err := scanHabit(stubRow{ledger: []byte(`{"2024-06-15":`)})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))
}

func TestScanHabitNotFound(t *testing.T) {
	_, err := scanHabit(stubRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestMarshalLedgerDefaultsToEmptyObject(t *testing.T) {
	assert.Equal(t, []byte("{}"), marshalLedger(nil))
	assert.Equal(t, []byte("{}"), marshalLedger(map[string]int{}))
	assert.JSONEq(t, `{"2024-06-15":2}`, string(marshalLedger(map[string]int{"2024-06-15": 2})))
}
