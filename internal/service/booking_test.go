package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
)

func TestBooking_ClioScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	clio := h.addVehicle(t, "Clio", rate(200))

	a := h.request(t, "Clio", "2024-01-01", "2024-01-03")
	assert.Equal(t, domain.RequestStatusPending, a.Status)
	require.NotNil(t, a.VehicleID)
	assert.Equal(t, clio.ID, *a.VehicleID)

	confirmed, err := h.booking.SetStatus(ctx, admin, a.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusConfirmed, confirmed.Status)

	v, err := h.store.VehicleRepository.GetByID(ctx, clio.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusRented, v.Status)

	contract, err := h.store.ContractRepository.GetByRequestID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, contract.Days)
	require.NotNil(t, contract.Total)
	assert.Equal(t, 400.0, *contract.Total)
	assert.Equal(t, domain.ContractStatusActive, contract.Status)
	assert.Equal(t, "Citadine", contract.Category)
	assert.Equal(t, "AB-123-CD", contract.Plate)
	assert.Equal(t, "Yassine", contract.Renter.Name)

	_, err = h.booking.CreateRequest(ctx, draft("Clio", "2024-01-02", "2024-01-04"))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "vehicle", conflict.Field)
	assert.ErrorIs(t, err, domain.ErrConflict)

	all, err := h.store.RequestRepository.List(ctx, domain.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBooking_PendingRequestsDoNotBlock(t *testing.T) {
	h := newHarness(t)
	h.addVehicle(t, "Clio", rate(200))

	h.request(t, "Clio", "2024-01-01", "2024-01-03")
	b := h.request(t, "Clio", "2024-01-02", "2024-01-04")
	assert.Equal(t, domain.RequestStatusPending, b.Status)
}

func TestBooking_CreateRequiresFields(t *testing.T) {
	h := newHarness(t)

	_, err := h.booking.CreateRequest(context.Background(), domain.RequestDraft{
		Name:      "  ",
		Phone:     "0600000000",
		StartDate: "2024-01-01",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":     "This field is required.",
		"city":     "This field is required.",
		"end_date": "This field is required.",
		"vehicle":  "This field is required.",
	}, verr.Fields)
}

func TestBooking_CreateRejectsUnreadableCandidate(t *testing.T) {
	h := newHarness(t)
	h.addVehicle(t, "Clio", nil)

	_, err := h.booking.CreateRequest(context.Background(), draft("Clio", "01/01/2024", "2024-01-03"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestBooking_CreateForUnknownVehicleKeepsName(t *testing.T) {
	h := newHarness(t)

	req := h.request(t, "Ghost", "2024-01-01", "2024-01-02")
	assert.Nil(t, req.VehicleID)
	assert.Equal(t, "Ghost", req.VehicleName)
}

func TestBooking_ConfirmConflictWritesNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	clio := h.addVehicle(t, "Clio", rate(200))

	a := h.request(t, "Clio", "2024-01-01", "2024-01-03")
	b := h.request(t, "Clio", "2024-01-03", "2024-01-05")

	_, err := h.booking.SetStatus(ctx, admin, a.ID, "CONFIRMED")
	require.NoError(t, err)
	require.NoError(t, h.store.VehicleRepository.UpdateStatus(ctx, clio.ID, domain.VehicleStatusAvailable))

	_, err = h.booking.SetStatus(ctx, admin, b.ID, "confirmed")
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := h.store.RequestRepository.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, stored.Status)

	_, err = h.store.ContractRepository.GetByRequestID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	v, err := h.store.VehicleRepository.GetByID(ctx, clio.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusAvailable, v.Status)
}

func TestBooking_ConcurrentConfirmsOnOneVehicle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", rate(200))
	a := h.request(t, "Clio", "2024-01-01", "2024-01-03")
	b := h.request(t, "Clio", "2024-01-02", "2024-01-04")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = h.booking.SetStatus(ctx, admin, id, "confirmed")
		}(i, id)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	contracts, err := h.store.ContractRepository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, contracts, 1)
}

func TestBooking_DoubleConfirmCreatesOneContract(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", rate(150))
	a := h.request(t, "Clio", "2024-02-10", "2024-02-10")

	for i := 0; i < 2; i++ {
		_, err := h.booking.SetStatus(ctx, admin, a.ID, "confirmed")
		require.NoError(t, err)
	}

	contracts, err := h.store.ContractRepository.List(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, 1, contracts[0].Days)
	assert.Equal(t, 150.0, *contracts[0].Total)
	assert.Len(t, h.notifier.sent, 1)
}

func TestBooking_ConfirmWithoutRateStoresNoTotal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", nil)
	a := h.request(t, "Clio", "2024-01-01", "2024-01-05")

	_, err := h.booking.SetStatus(ctx, admin, a.ID, "confirmed")
	require.NoError(t, err)

	contract, err := h.store.ContractRepository.GetByRequestID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, contract.Days)
	assert.Nil(t, contract.DayRate)
	assert.Nil(t, contract.Total)
}

func TestBooking_SetStatusErrors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", nil)
	a := h.request(t, "Clio", "2024-01-01", "2024-01-02")

	_, err := h.booking.SetStatus(ctx, domain.Operator{}, a.ID, "confirmed")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = h.booking.SetStatus(ctx, admin, a.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = h.booking.SetStatus(ctx, admin, 999, "cancelled")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cancelled, err := h.booking.SetStatus(ctx, admin, a.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusCancelled, cancelled.Status)

	_, err = h.booking.SetStatus(ctx, admin, a.ID, "confirmed")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = h.booking.SetStatus(ctx, admin, a.ID, "cancelled")
	assert.NoError(t, err)
	assert.Len(t, h.notifier.sent, 1)
	assert.Equal(t, domain.RequestStatusCancelled, h.notifier.sent[0].Status)
}

func TestBooking_NotificationFailureDoesNotFailTransition(t *testing.T) {
	h := newHarness(t)
	h.notifier.err = errors.New("smtp down")
	h.addVehicle(t, "Clio", nil)
	a := h.request(t, "Clio", "2024-01-01", "2024-01-02")

	req, err := h.booking.SetStatus(context.Background(), admin, a.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusCancelled, req.Status)
}

func TestBooking_ListAndDetail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", rate(200))
	h.addVehicle(t, "Duster", rate(350))
	a := h.request(t, "Clio", "2024-01-01", "2024-01-03")
	b := h.request(t, "Duster", "2024-03-01", "2024-03-04")

	_, err := h.booking.ListRequests(ctx, domain.Operator{}, domain.RequestFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	all, err := h.booking.ListRequests(ctx, admin, domain.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)

	byDate, err := h.booking.ListRequests(ctx, admin, domain.RequestFilter{Date: "2024-01-03"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, a.ID, byDate[0].ID)

	detail, err := h.booking.GetRequestDetail(ctx, admin, b.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Vehicle)
	assert.Equal(t, "Duster", detail.Vehicle.Name)
	assert.Equal(t, 3, detail.Quote.Days)
	assert.Equal(t, 1050.0, *detail.Quote.Total)

	inv, err := h.booking.Invoice(ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^INV-0+\d+$`, inv.Number)
	assert.Equal(t, "2023-12-20", inv.IssuedOn)
	assert.Equal(t, "AB-123-CD", inv.Plate)
	assert.Equal(t, 1050.0, *inv.Total)
}
