package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fberrez/minihabits/domain"
)

func TestNormalizeDay(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain date", "2024-06-15", "2024-06-15"},
		{"rfc3339 utc", "2024-06-15T10:30:00Z", "2024-06-15"},
		{"rfc3339 with offset", "2024-06-15T01:30:00+05:00", "2024-06-14"},
		{"datetime without zone", "2024-06-15T23:59:59", "2024-06-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDay(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeDayRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "yesterday", "15/06/2024", "2024-13-40"} {
		_, err := NormalizeDay(input)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "input %q", input)
	}
}

func TestDayOfUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// Local 2024-06-16 08:00 is still 2024-06-15 in UTC.
	assert.Equal(t, "2024-06-15", DayOf(time.Date(2024, 6, 16, 8, 0, 0, 0, loc)))
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2024, 6, 15, 23, 45, 12, 999, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestWindowsAt(t *testing.T) {
	w := WindowsAt(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	require.Len(t, w.Last7Days, 7)
	assert.Equal(t, "2024-06-09", w.Last7Days[0])
	assert.Equal(t, "2024-06-15", w.Last7Days[6])

	require.Len(t, w.MonthToDate, 15)
	assert.Equal(t, "2024-06-01", w.MonthToDate[0])
	assert.Equal(t, "2024-06-15", w.MonthToDate[14])

	// 2024 is a leap year: Jan 1 through Jun 15 inclusive.
	require.Len(t, w.YearToDate, 167)
	assert.Equal(t, "2024-01-01", w.YearToDate[0])
	assert.Equal(t, "2024-06-15", w.YearToDate[len(w.YearToDate)-1])
}

func TestWindowsAtFirstOfMonth(t *testing.T) {
	w := WindowsAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, w.MonthToDate, 1)
	assert.Equal(t, "2024-06-01", w.MonthToDate[0])
}
