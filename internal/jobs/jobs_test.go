package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/config"
	"carrental-backend/internal/service"
)

type mockFleet struct {
	service.FleetService
	mock.Mock
}

func (m *mockFleet) RefreshAllStatuses(ctx context.Context) (*service.RefreshResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RefreshResult), args.Error(1)
}

func TestRefreshVehicleStatuses(t *testing.T) {
	fleet := new(mockFleet)
	fleet.On("RefreshAllStatuses", mock.Anything).
		Return(&service.RefreshResult{Day: "2024-01-02", Vehicles: 3, Rented: 1}, nil).Once()

	jr := NewJobRunner(&Services{Fleet: fleet}, &config.Config{})
	assert.True(t, jr.RefreshVehicleStatuses())
	fleet.AssertExpectations(t)
}

func TestRefreshVehicleStatuses_Failure(t *testing.T) {
	fleet := new(mockFleet)
	fleet.On("RefreshAllStatuses", mock.Anything).Return(nil, errors.New("db gone")).Once()

	jr := NewJobRunner(&Services{Fleet: fleet}, &config.Config{})
	assert.False(t, jr.RunAllNightlyJobs())
}

func TestRunWithRecovery_Panic(t *testing.T) {
	jr := NewJobRunner(&Services{}, &config.Config{})
	assert.False(t, jr.runWithRecovery("boom", func() error { panic("boom") }))
}
