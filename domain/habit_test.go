package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		habit   Habit
		wantErr bool
	}{
		{"valid boolean", Habit{Name: "read", Type: HabitTypeBoolean}, false},
		{"valid counter", Habit{Name: "water", Type: HabitTypeCounter, TargetCounter: 8}, false},
		{"valid negative counter", Habit{Name: "coffee", Type: HabitTypeNegativeCounter, TargetCounter: 3}, false},
		{"missing name", Habit{Type: HabitTypeBoolean}, true},
		{"unknown type", Habit{Name: "read", Type: HabitType("weekly")}, true},
		{"counter without target", Habit{Name: "water", Type: HabitTypeCounter}, true},
		{"negative counter without target", Habit{Name: "coffee", Type: HabitTypeNegativeCounter}, true},
		{"boolean ignores target", Habit{Name: "read", Type: HabitTypeBoolean, TargetCounter: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.habit.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLedgerHelpers(t *testing.T) {
	habit := Habit{}

	assert.Zero(t, habit.LedgerValue("2024-06-15"), "nil ledger reads as zero")

	habit.SetLedger("2024-06-15", 3)
	assert.Equal(t, 3, habit.LedgerValue("2024-06-15"))

	habit.ClearLedger("2024-06-15")
	assert.Zero(t, habit.LedgerValue("2024-06-15"))
	habit.ClearLedger("2024-06-15")
}

func TestHabitTypeHelpers(t *testing.T) {
	require.Len(t, HabitTypes(), 5)

	for _, typ := range HabitTypes() {
		assert.True(t, typ.Valid())
		assert.NotEmpty(t, typ.Label())
	}
	assert.False(t, HabitType("weekly").Valid())

	assert.True(t, HabitTypeCounter.RequiresTarget())
	assert.True(t, HabitTypeNegativeCounter.RequiresTarget())
	assert.False(t, HabitTypeBoolean.RequiresTarget())
	assert.False(t, HabitTypeTask.RequiresTarget())
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrHabitNotFound, ErrCodeNotFound))
	assert.True(t, IsDomainError(WrapError(ErrCodeInvalid, "bad input", ErrInvalidDate), ErrCodeInvalid))
	assert.False(t, IsDomainError(ErrHabitNotFound, ErrCodeInvalid))
	assert.False(t, IsDomainError(nil, ErrCodeInvalid))
}
