package availability

import (
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/utils"
)

// DeriveStatus computes the status a vehicle displays on the calendar day of
// today: RENTED when at least one commitment covers that day, bounds included.
// Commitments with unreadable dates follow the stored-date policy.
func DeriveStatus(today time.Time, commitments []Commitment, policy Policy) domain.VehicleStatus {
	day := utils.Day(today)
	for _, c := range commitments {
		iv, err := utils.ParseInterval(c.StartDate, c.EndDate)
		if err != nil {
			if policy.Stored == FailClosed {
				return domain.VehicleStatusRented
			}
			continue
		}
		if iv.Contains(day) {
			return domain.VehicleStatusRented
		}
	}
	return domain.VehicleStatusAvailable
}
