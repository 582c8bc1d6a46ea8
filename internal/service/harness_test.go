package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"carrental-backend/internal/availability"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/locker"
	"carrental-backend/internal/repository/memory"
	"carrental-backend/internal/service"
	"carrental-backend/internal/storage"
)

var admin = domain.NewOperator("admin")

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) set(date string) {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		panic(err)
	}
	c.t = t.Add(10 * time.Hour)
}

type harness struct {
	store     *memory.Store
	clock     *clock
	notifier  *recordingNotifier
	booking   service.BookingService
	contracts service.ContractService
	fleet     service.FleetService
	crm       service.CRMService
	admin     service.AdminService
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithPolicy(t, availability.DefaultPolicy())
}

func newHarnessWithPolicy(t *testing.T, policy availability.Policy) *harness {
	t.Helper()
	store := memory.NewStore()
	c := &clock{}
	c.set("2023-12-20")
	store.SetClock(c.now)

	images, err := storage.NewLocalImageStore(storage.Config{
		UploadDir:   t.TempDir(),
		BaseURL:     "http://localhost:8080",
		MaxFileSize: 1 << 20,
	})
	require.NoError(t, err)

	vehicles, requests, contracts := store.VehicleRepository, store.RequestRepository, store.ContractRepository
	evaluator := availability.NewEvaluator(vehicles, contracts, requests, policy)
	notifier := &recordingNotifier{}
	return &harness{
		store:     store,
		clock:     c,
		notifier:  notifier,
		booking:   service.NewBookingService(requests, vehicles, contracts, store, evaluator, locker.NewLocal(), notifier, c.now),
		contracts: service.NewContractService(contracts, evaluator, c.now),
		fleet:     service.NewFleetService(vehicles, requests, contracts, images, policy, time.UTC, c.now),
		crm:       service.NewCRMService(store.ClientRepository, store.ContactRepository, c.now),
		admin:     service.NewAdminService(requests, store.ClientRepository, vehicles),
	}
}

func (h *harness) addVehicle(t *testing.T, name string, rate *float64) *domain.Vehicle {
	t.Helper()
	v := &domain.Vehicle{Name: name, Category: "Citadine", Plate: "AB-123-CD", DayRate: rate}
	require.NoError(t, h.fleet.AddVehicle(context.Background(), admin, v))
	return v
}

func (h *harness) request(t *testing.T, vehicle, start, end string) *domain.Request {
	t.Helper()
	req, err := h.booking.CreateRequest(context.Background(), draft(vehicle, start, end))
	require.NoError(t, err)
	return req
}

func draft(vehicle, start, end string) domain.RequestDraft {
	return domain.RequestDraft{
		Name:        "Yassine",
		Phone:       "0600000000",
		Email:       "yassine@example.com",
		City:        "Casablanca",
		StartDate:   start,
		EndDate:     end,
		VehicleName: vehicle,
	}
}

func rate(v float64) *float64 { return &v }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Request
	err  error
}

func (n *recordingNotifier) RequestStatusChanged(ctx context.Context, req *domain.Request) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *req)
	return n.err
}
