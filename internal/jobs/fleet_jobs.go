package jobs

import (
	"context"
	"time"

	"carrental-backend/internal/logger"
)

const refreshTimeout = 2 * time.Minute

// RefreshVehicleStatuses recomputes the displayed status of every vehicle so
// the catalogue is right even when nobody opened it since midnight.
func (jr *JobRunner) RefreshVehicleStatuses() bool {
	return jr.runWithRecovery("RefreshVehicleStatuses", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		res, err := jr.services.Fleet.RefreshAllStatuses(ctx)
		if err != nil {
			return err
		}
		logger.Info("Nightly status refresh", "day", res.Day, "vehicles", res.Vehicles, "rented", res.Rented, "changed", res.Changed)
		return nil
	})
}
