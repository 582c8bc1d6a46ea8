package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := ParseInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		d, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("Surrounding spaces", func(t *testing.T) {
		_, err := ParseDate(" 2024-01-15 ")
		assert.NoError(t, err)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("15/01/2024")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expected yyyy-mm-dd")
	})

	t.Run("Impossible day", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseDate("")
		assert.Error(t, err)
	})
}

func TestInterval_Normalize(t *testing.T) {
	iv := mustInterval(t, "2024-01-10", "2024-01-02").Normalize()
	assert.Equal(t, "2024-01-02", FormatDate(iv.Start))
	assert.Equal(t, "2024-01-10", FormatDate(iv.End))

	same := mustInterval(t, "2024-01-02", "2024-01-10")
	assert.Equal(t, same, same.Normalize())
}

func TestInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, "2024-01-10", "2024-01-15")

	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{"Before", "2024-01-01", "2024-01-09", false},
		{"Touching start", "2024-01-01", "2024-01-10", true},
		{"Inside", "2024-01-11", "2024-01-12", true},
		{"Covering", "2024-01-01", "2024-01-31", true},
		{"Touching end", "2024-01-15", "2024-01-20", true},
		{"After", "2024-01-16", "2024-01-20", false},
		{"Single day inside", "2024-01-12", "2024-01-12", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustInterval(t, tt.start, tt.end)
			assert.Equal(t, tt.expected, base.Overlaps(other))
			assert.Equal(t, tt.expected, other.Overlaps(base), "overlap must be symmetric")
		})
	}

	t.Run("Reflexive", func(t *testing.T) {
		assert.True(t, base.Overlaps(base))
	})
}

func TestInterval_Contains(t *testing.T) {
	iv := mustInterval(t, "2024-03-01", "2024-03-03")

	assert.True(t, iv.Contains(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)))
	assert.True(t, iv.Contains(time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)))
	assert.False(t, iv.Contains(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)))
	assert.False(t, iv.Contains(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestDay_KeepsLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	local := time.Date(2024, 5, 2, 0, 30, 0, 0, loc)
	assert.Equal(t, "2024-05-02", FormatDate(Day(local)))
}
