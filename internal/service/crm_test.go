package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
)

func TestCRM_Clients(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.crm.AddClient(ctx, domain.Operator{}, &domain.Client{FirstName: "A"}), domain.ErrUnauthorized)

	var verr *domain.ValidationError
	require.ErrorAs(t, h.crm.AddClient(ctx, admin, &domain.Client{Phone: "0600"}), &verr)

	require.NoError(t, h.crm.AddClient(ctx, admin, &domain.Client{FirstName: "Amine", Phone: "0600"}))
	require.NoError(t, h.crm.AddClient(ctx, admin, &domain.Client{LastName: "Bennani"}))

	clients, err := h.crm.ListClients(ctx, admin)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Bennani", clients[0].LastName)
	assert.Equal(t, "2023-12-20 10:00:00", clients[0].CreatedOn)
}

func TestCRM_Contacts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var verr *domain.ValidationError
	err := h.crm.SubmitContact(ctx, &domain.ContactMessage{Name: "Nadia", Email: "not-an-address"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "message")

	require.NoError(t, h.crm.SubmitContact(ctx, &domain.ContactMessage{
		Name: "Nadia", Email: "nadia@example.com", Message: "Do you deliver to the airport?",
	}))

	_, err = h.crm.ListContacts(ctx, domain.Operator{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	msgs, err := h.crm.ListContacts(ctx, admin)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "nadia@example.com", msgs[0].Email)
}

func TestAdmin_Dashboard(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.addVehicle(t, "Clio", nil)
	h.addVehicle(t, "Duster", nil)
	h.request(t, "Clio", "2024-01-01", "2024-01-02")
	require.NoError(t, h.crm.AddClient(ctx, admin, &domain.Client{FirstName: "Amine"}))

	_, err := h.admin.Dashboard(ctx, domain.Operator{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stats, err := h.admin.Dashboard(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Requests: 1, Clients: 1, Vehicles: 2}, *stats)
}
