package availability

import (
	"testing"
	"time"

	"carrental-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(t *testing.T, start, end string) utils.Interval {
	t.Helper()
	i, err := utils.ParseInterval(start, end)
	require.NoError(t, err)
	return i
}

func TestOverlap_SymmetricAndReflexive(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var intervals []utils.Interval
	for s := 0; s < 6; s++ {
		for l := 0; l < 4; l++ {
			start := base.AddDate(0, 0, s)
			intervals = append(intervals, utils.Interval{Start: start, End: start.AddDate(0, 0, l)})
		}
	}
	for _, a := range intervals {
		assert.True(t, Overlap(a, a))
		for _, b := range intervals {
			assert.Equal(t, Overlap(a, b), Overlap(b, a))
		}
	}
}

func TestOverlap_InclusiveBounds(t *testing.T) {
	a := iv(t, "2024-01-01", "2024-01-03")
	assert.True(t, Overlap(a, iv(t, "2024-01-03", "2024-01-05")))
	assert.False(t, Overlap(a, iv(t, "2024-01-04", "2024-01-05")))
	assert.True(t, Overlap(a, iv(t, "2023-12-01", "2024-02-01")))
}

func TestOverlapStored(t *testing.T) {
	candidate := iv(t, "2024-01-01", "2024-01-03")

	overlap, ok := OverlapStored(candidate, "2024-01-02", "2024-01-02")
	assert.True(t, ok)
	assert.True(t, overlap)

	_, ok = OverlapStored(candidate, "01/02/2024", "2024-01-02")
	assert.False(t, ok)
	_, ok = OverlapStored(candidate, "2024-01-02", "")
	assert.False(t, ok)

	// stored bounds are compared as written, never swapped
	overlap, ok = OverlapStored(candidate, "2024-01-03", "2024-01-01")
	assert.True(t, ok)
	assert.True(t, overlap)

	overlap, ok = OverlapStored(iv(t, "2024-01-05", "2024-01-06"), "2024-01-10", "2024-01-01")
	assert.True(t, ok)
	assert.False(t, overlap)
}

func TestParsePolicies(t *testing.T) {
	p, err := ParseStoredPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FailOpen, p)
	p, err = ParseStoredPolicy("BLOCK")
	require.NoError(t, err)
	assert.Equal(t, FailClosed, p)
	_, err = ParseStoredPolicy("maybe")
	assert.Error(t, err)

	p, err = ParseCandidatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, FailClosed, p)
	p, err = ParseCandidatePolicy("allow")
	require.NoError(t, err)
	assert.Equal(t, FailOpen, p)
	_, err = ParseCandidatePolicy("maybe")
	assert.Error(t, err)

	assert.Equal(t, Policy{Stored: FailOpen, Candidate: FailClosed}, DefaultPolicy())
}
