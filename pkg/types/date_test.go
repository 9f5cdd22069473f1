package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateFromString(t *testing.T) {
	d, err := NewDateFromString("2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", d.String())

	_, err = NewDateFromString("15.10.2025")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = NewDateFromString("2025-13-40")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestDate_Comparisons(t *testing.T) {
	a := Date("2025-01-01")
	b := Date("2025-01-05")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(Date("2025-01-01")))

	assert.Equal(t, b, Max(a, b))
	assert.Equal(t, a, Min(a, b))
}

func TestDate_AddDays(t *testing.T) {
	d := Date("2025-01-30")

	got, err := d.AddDays(3)
	require.NoError(t, err)
	assert.Equal(t, Date("2025-02-02"), got)

	got, err = d.AddDays(-30)
	require.NoError(t, err)
	assert.Equal(t, Date("2024-12-31"), got)
}

func TestDate_DaysUntil(t *testing.T) {
	a := Date("2025-01-01")
	b := Date("2025-01-05")

	days, err := a.DaysUntil(b)
	require.NoError(t, err)
	assert.Equal(t, 4, days)

	days, err = b.DaysUntil(a)
	require.NoError(t, err)
	assert.Equal(t, -4, days)
}

func TestNewDate_DropsTimeOfDay(t *testing.T) {
	ts := time.Date(2025, 10, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Date("2025-10-15"), NewDate(ts))
}
