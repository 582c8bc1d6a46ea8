package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"carrental-backend/internal/domain"
)

func TestContracts_NewDirectContract(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	clio := h.addVehicle(t, "Clio", rate(200))

	c, err := h.contracts.NewDirectContract(ctx, admin, domain.ContractDraft{
		Renter:       domain.Renter{Name: " Karim ", IDDocument: "BK12345", License: "L-99", LicenseYear: "2015"},
		SecondDriver: &domain.Renter{Name: "Salma"},
		VehicleName:  "Clio",
		StartDate:    "2024-01-05",
		EndDate:      "2024-01-01",
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Nil(t, c.RequestID)
	assert.Equal(t, "Karim", c.Renter.Name)
	require.NotNil(t, c.SecondDriver)
	assert.Equal(t, "Salma", c.SecondDriver.Name)
	require.NotNil(t, c.VehicleID)
	assert.Equal(t, clio.ID, *c.VehicleID)
	assert.Equal(t, "2024-01-05", c.StartDate)
	assert.Equal(t, 1, c.Days)
	assert.Equal(t, 200.0, *c.Total)
	assert.Equal(t, domain.ContractStatusActive, c.Status)
}

func TestContracts_DirectContractSkipsAvailability(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", rate(200))
	a := h.request(t, "Clio", "2024-01-01", "2024-01-03")
	_, err := h.booking.SetStatus(ctx, admin, a.ID, "confirmed")
	require.NoError(t, err)

	_, err = h.contracts.NewDirectContract(ctx, admin, domain.ContractDraft{
		Renter: domain.Renter{Name: "Karim"}, VehicleName: "Clio", StartDate: "2024-01-02", EndDate: "2024-01-02",
	})
	require.NoError(t, err)

	all, err := h.contracts.ListContracts(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestContracts_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.contracts.NewDirectContract(ctx, domain.Operator{}, domain.ContractDraft{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = h.contracts.NewDirectContract(ctx, admin, domain.ContractDraft{StartDate: "2024-01-01"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "renter_name")
	assert.Contains(t, verr.Fields, "vehicle_name")
}

func TestContracts_UnknownVehicleHasNoPrice(t *testing.T) {
	h := newHarness(t)

	c, err := h.contracts.NewDirectContract(context.Background(), admin, domain.ContractDraft{
		Renter: domain.Renter{Name: "Karim"}, VehicleName: "Ghost", StartDate: "2024-01-01", EndDate: "2024-01-03",
	})
	require.NoError(t, err)
	assert.Nil(t, c.VehicleID)
	assert.Equal(t, 2, c.Days)
	assert.Nil(t, c.Total)
}

func TestContracts_Export(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", rate(200))
	_, err := h.contracts.NewDirectContract(ctx, admin, domain.ContractDraft{
		Renter: domain.Renter{Name: "Karim"}, VehicleName: "Clio", StartDate: "2024-01-01", EndDate: "2024-01-03",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, h.contracts.ExportContracts(ctx, domain.Operator{}, &buf), domain.ErrUnauthorized)
	require.NoError(t, h.contracts.ExportContracts(ctx, admin, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Contracts")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Karim", rows[1][2])
	assert.Equal(t, "Clio", rows[1][6])
}
