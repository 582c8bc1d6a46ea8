// Package memory keeps every collection in process memory. It backs the
// "memory" database driver for demos and the service and API tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type state struct {
	mu        sync.RWMutex
	now       func() time.Time
	seq       map[string]int64
	vehicles  map[int64]domain.Vehicle
	requests  map[int64]domain.Request
	contracts map[int64]domain.Contract
	clients   map[int64]domain.Client
	contacts  map[int64]domain.ContactMessage
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *state) timestamp() string {
	return s.now().Format(utils.TimestampLayout)
}

// Store mirrors the SQL store: one value exposing every repository.
type Store struct {
	st *state
	repository.VehicleRepository
	repository.RequestRepository
	repository.ContractRepository
	repository.ClientRepository
	repository.ContactRepository
}

func NewStore() *Store {
	st := &state{
		now:       time.Now,
		seq:       map[string]int64{},
		vehicles:  map[int64]domain.Vehicle{},
		requests:  map[int64]domain.Request{},
		contracts: map[int64]domain.Contract{},
		clients:   map[int64]domain.Client{},
		contacts:  map[int64]domain.ContactMessage{},
	}
	return &Store{
		st:                 st,
		VehicleRepository:  &vehicleRepo{st},
		RequestRepository:  &requestRepo{st},
		ContractRepository: &contractRepo{st},
		ClientRepository:   &clientRepo{st},
		ContactRepository:  &contactRepo{st},
	}
}

// SetClock replaces the clock used for created_on values.
func (s *Store) SetClock(now func() time.Time) {
	s.st.mu.Lock()
	s.st.now = now
	s.st.mu.Unlock()
}

func matchesRef(vehicleID *int64, vehicleName string, ref domain.VehicleRef) bool {
	if vehicleID != nil {
		return *vehicleID == ref.ID
	}
	return vehicleName == ref.Name
}

func covers(startDate, endDate, day string) bool {
	return startDate <= day && endDate >= day
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ApplyConfirmation implements repository.ConfirmationRepository.
func (s *Store) ApplyConfirmation(ctx context.Context, c *domain.Confirmation) error {
	st := s.st
	st.mu.Lock()
	defer st.mu.Unlock()

	req, ok := st.requests[c.RequestID]
	if !ok {
		return domain.ErrNotFound
	}

	var contract *domain.Contract
	if c.Contract != nil && !st.hasContractFor(c.RequestID) {
		ct := *c.Contract
		ct.ID = st.nextID("contracts")
		if ct.Status == "" {
			ct.Status = domain.ContractStatusActive
		}
		if ct.CreatedOn == "" {
			ct.CreatedOn = st.timestamp()
		}
		contract = &ct
	}

	req.Status = domain.RequestStatusConfirmed
	st.requests[req.ID] = req
	for id, v := range st.vehicles {
		if (c.Vehicle.ID != 0 && v.ID == c.Vehicle.ID) || (c.Vehicle.ID == 0 && v.Name == c.Vehicle.Name) {
			v.Status = domain.VehicleStatusRented
			st.vehicles[id] = v
		}
	}
	if contract != nil {
		st.contracts[contract.ID] = *contract
		c.Contract.ID = contract.ID
		c.Contract.CreatedOn = contract.CreatedOn
	}
	return nil
}

func (s *state) hasContractFor(requestID int64) bool {
	for _, ct := range s.contracts {
		if ct.RequestID != nil && *ct.RequestID == requestID {
			return true
		}
	}
	return false
}

type vehicleRepo struct{ st *state }

func (r *vehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.vehicles {
		if existing.Name == v.Name {
			return fmt.Errorf("vehicle %q: %w", v.Name, domain.ErrAlreadyExists)
		}
	}
	v.ID = r.st.nextID("vehicles")
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	v.CreatedOn = r.st.timestamp()
	r.st.vehicles[v.ID] = *v
	return nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	v, ok := r.st.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *vehicleRepo) GetByName(ctx context.Context, name string) (*domain.Vehicle, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, v := range r.sorted() {
		if v.Name == name {
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

// sorted returns vehicles by ascending id. Callers hold the lock.
func (r *vehicleRepo) sorted() []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(r.st.vehicles))
	for _, v := range r.st.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *vehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.sorted(), nil
}

func (r *vehicleRepo) ListRecent(ctx context.Context, limit int) ([]domain.Vehicle, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	all := r.sorted()
	out := make([]domain.Vehicle, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (r *vehicleRepo) Search(ctx context.Context, query string) ([]domain.Vehicle, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	var out []domain.Vehicle
	for _, v := range r.sorted() {
		if containsFold(v.Name, query) || containsFold(v.Category, query) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *vehicleRepo) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	v, ok := r.st.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	r.st.vehicles[id] = v
	return nil
}

func (r *vehicleRepo) UpdateImage(ctx context.Context, id int64, image string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	v, ok := r.st.vehicles[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Image = image
	r.st.vehicles[id] = v
	return nil
}

func (r *vehicleRepo) Count(ctx context.Context) (int64, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return int64(len(r.st.vehicles)), nil
}

type requestRepo struct{ st *state }

func (r *requestRepo) Create(ctx context.Context, req *domain.Request) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	req.ID = r.st.nextID("requests")
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	if req.CreatedOn == "" {
		req.CreatedOn = r.st.timestamp()
	}
	r.st.requests[req.ID] = *req
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	req, ok := r.st.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &req, nil
}

// newestFirst returns the requests accepted by keep, by descending id.
func (r *requestRepo) newestFirst(keep func(domain.Request) bool) []domain.Request {
	var out []domain.Request
	for _, req := range r.st.requests {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *requestRepo) List(ctx context.Context, f domain.RequestFilter) ([]domain.Request, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.newestFirst(func(req domain.Request) bool {
		if f.Client != "" && !containsFold(req.Name, f.Client) {
			return false
		}
		if f.Vehicle != "" && !containsFold(req.VehicleName, f.Vehicle) {
			return false
		}
		if f.Date != "" && !covers(req.StartDate, req.EndDate, f.Date) {
			return false
		}
		return true
	}), nil
}

func (r *requestRepo) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	req, ok := r.st.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	r.st.requests[id] = req
	return nil
}

func (r *requestRepo) Count(ctx context.Context) (int64, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return int64(len(r.st.requests)), nil
}

func (r *requestRepo) ListConfirmedByVehicle(ctx context.Context, ref domain.VehicleRef, excludeID int64) ([]domain.Request, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.newestFirst(func(req domain.Request) bool {
		return req.Status == domain.RequestStatusConfirmed &&
			req.ID != excludeID &&
			matchesRef(req.VehicleID, req.VehicleName, ref)
	}), nil
}

func (r *requestRepo) ListConfirmedCovering(ctx context.Context, ref domain.VehicleRef, day string) ([]domain.Request, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.newestFirst(func(req domain.Request) bool {
		return req.Status == domain.RequestStatusConfirmed &&
			matchesRef(req.VehicleID, req.VehicleName, ref) &&
			covers(req.StartDate, req.EndDate, day)
	}), nil
}

type contractRepo struct{ st *state }

func (r *contractRepo) Create(ctx context.Context, c *domain.Contract) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if c.RequestID != nil && r.st.hasContractFor(*c.RequestID) {
		return fmt.Errorf("contract for request %d: %w", *c.RequestID, domain.ErrAlreadyExists)
	}
	c.ID = r.st.nextID("contracts")
	if c.Status == "" {
		c.Status = domain.ContractStatusActive
	}
	if c.CreatedOn == "" {
		c.CreatedOn = r.st.timestamp()
	}
	r.st.contracts[c.ID] = *c
	return nil
}

func (r *contractRepo) newestFirst(keep func(domain.Contract) bool) []domain.Contract {
	var out []domain.Contract
	for _, c := range r.st.contracts {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *contractRepo) List(ctx context.Context) ([]domain.Contract, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.newestFirst(func(domain.Contract) bool { return true }), nil
}

func (r *contractRepo) GetByRequestID(ctx context.Context, requestID int64) (*domain.Contract, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, c := range r.st.contracts {
		if c.RequestID != nil && *c.RequestID == requestID {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *contractRepo) ListActiveByVehicle(ctx context.Context, ref domain.VehicleRef) ([]domain.Contract, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.newestFirst(func(c domain.Contract) bool {
		return c.Status == domain.ContractStatusActive && matchesRef(c.VehicleID, c.VehicleName, ref)
	}), nil
}

func (r *contractRepo) ListActiveCovering(ctx context.Context, ref domain.VehicleRef, day string) ([]domain.Contract, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return r.newestFirst(func(c domain.Contract) bool {
		return c.Status == domain.ContractStatusActive &&
			matchesRef(c.VehicleID, c.VehicleName, ref) &&
			covers(c.StartDate, c.EndDate, day)
	}), nil
}

type clientRepo struct{ st *state }

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	c.ID = r.st.nextID("clients")
	c.CreatedOn = r.st.timestamp()
	r.st.clients[c.ID] = *c
	return nil
}

func (r *clientRepo) List(ctx context.Context) ([]domain.Client, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := make([]domain.Client, 0, len(r.st.clients))
	for _, c := range r.st.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *clientRepo) Count(ctx context.Context) (int64, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return int64(len(r.st.clients)), nil
}

type contactRepo struct{ st *state }

func (r *contactRepo) Create(ctx context.Context, m *domain.ContactMessage) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	m.ID = r.st.nextID("contacts")
	m.CreatedOn = r.st.timestamp()
	r.st.contacts[m.ID] = *m
	return nil
}

func (r *contactRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := make([]domain.ContactMessage, 0, len(r.st.contacts))
	for _, m := range r.st.contacts {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
