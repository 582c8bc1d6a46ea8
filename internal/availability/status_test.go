package availability

import (
	"testing"
	"time"

	"carrental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	commitments := []Commitment{
		{Kind: KindContract, ID: 1, StartDate: "2024-03-01", EndDate: "2024-03-04"},
		{Kind: KindRequest, ID: 2, StartDate: "garbage", EndDate: "2024-03-10"},
	}
	day := func(d int) time.Time { return time.Date(2024, 3, d, 15, 30, 0, 0, time.UTC) }

	assert.Equal(t, domain.VehicleStatusRented, DeriveStatus(day(1), commitments, DefaultPolicy()))
	assert.Equal(t, domain.VehicleStatusRented, DeriveStatus(day(4), commitments, DefaultPolicy()))
	assert.Equal(t, domain.VehicleStatusAvailable, DeriveStatus(day(5), commitments, DefaultPolicy()))
	assert.Equal(t, domain.VehicleStatusAvailable, DeriveStatus(day(5), nil, DefaultPolicy()))

	strict := Policy{Stored: FailClosed, Candidate: FailClosed}
	assert.Equal(t, domain.VehicleStatusRented, DeriveStatus(day(5), commitments, strict))
}

func TestDeriveStatus_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 2024-03-04 23:30 UTC is already 2024-03-05 at UTC+2
	now := time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC)
	commitments := []Commitment{{StartDate: "2024-03-01", EndDate: "2024-03-04"}}

	assert.Equal(t, domain.VehicleStatusRented, DeriveStatus(now, commitments, DefaultPolicy()))
	assert.Equal(t, domain.VehicleStatusAvailable, DeriveStatus(now.In(loc), commitments, DefaultPolicy()))
}
