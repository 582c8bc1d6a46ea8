package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"carrental-backend/internal/availability"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/storage"
	"carrental-backend/internal/utils"
)

const popularVehicles = 4

type fleetService struct {
	vehicleRepo  repository.VehicleRepository
	requestRepo  repository.RequestRepository
	contractRepo repository.ContractRepository
	images       storage.ImageStore
	policy       availability.Policy
	location     *time.Location
	now          Clock
}

func NewFleetService(
	vehicleRepo repository.VehicleRepository,
	requestRepo repository.RequestRepository,
	contractRepo repository.ContractRepository,
	images storage.ImageStore,
	policy availability.Policy,
	location *time.Location,
	now Clock,
) FleetService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &fleetService{
		vehicleRepo:  vehicleRepo,
		requestRepo:  requestRepo,
		contractRepo: contractRepo,
		images:       images,
		policy:       policy,
		location:     location,
		now:          now,
	}
}

// RefreshAllStatuses recomputes the displayed status of every vehicle for the
// current calendar day and overwrites it.
func (s *fleetService) RefreshAllStatuses(ctx context.Context) (*RefreshResult, error) {
	today := s.now().In(s.location)
	day := utils.FormatDate(today)

	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	result := &RefreshResult{Day: day, Vehicles: len(vehicles)}
	for _, v := range vehicles {
		commitments, err := s.commitmentsOn(ctx, v.Ref(), day)
		if err != nil {
			return nil, err
		}
		status := s.statusOf(today, commitments)
		if err := s.vehicleRepo.UpdateStatus(ctx, v.ID, status); err != nil {
			return nil, fmt.Errorf("update vehicle %d status: %w", v.ID, err)
		}
		if status != v.Status {
			result.Changed++
		}
		if status == domain.VehicleStatusRented {
			result.Rented++
		}
	}

	metrics.ObserveStatusRefresh(result.Rented)
	logger.InfoContext(ctx, "Vehicle statuses refreshed", "day", day, "vehicles", result.Vehicles,
		"rented", result.Rented, "changed", result.Changed)
	return result, nil
}

// statusOf derives the displayed status. Rows selected by the covering query
// already matched the day on their stored text and count as written, even
// when their dates do not parse.
func (s *fleetService) statusOf(today time.Time, commitments []availability.Commitment) domain.VehicleStatus {
	if s.policy.Stored == availability.FailClosed {
		return availability.DeriveStatus(today, commitments, s.policy)
	}
	if len(commitments) > 0 {
		return domain.VehicleStatusRented
	}
	return domain.VehicleStatusAvailable
}

// commitmentsOn narrows the candidates with a containment query on day. When
// unreadable stored dates must block, every commitment is loaded instead since
// the query cannot select malformed rows.
func (s *fleetService) commitmentsOn(ctx context.Context, ref domain.VehicleRef, day string) ([]availability.Commitment, error) {
	var (
		contracts []domain.Contract
		requests  []domain.Request
		err       error
	)
	if s.policy.Stored == availability.FailClosed {
		contracts, err = s.contractRepo.ListActiveByVehicle(ctx, ref)
	} else {
		contracts, err = s.contractRepo.ListActiveCovering(ctx, ref, day)
	}
	if err != nil {
		return nil, fmt.Errorf("list contracts of %q: %w", ref.Name, err)
	}
	if s.policy.Stored == availability.FailClosed {
		requests, err = s.requestRepo.ListConfirmedByVehicle(ctx, ref, 0)
	} else {
		requests, err = s.requestRepo.ListConfirmedCovering(ctx, ref, day)
	}
	if err != nil {
		return nil, fmt.Errorf("list requests of %q: %w", ref.Name, err)
	}
	return append(availability.FromContracts(contracts), availability.FromRequests(requests)...), nil
}

func (s *fleetService) ListVehicles(ctx context.Context) (*Catalogue, error) {
	if _, err := s.RefreshAllStatuses(ctx); err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cat := &Catalogue{Available: []domain.Vehicle{}, Rented: []domain.Vehicle{}}
	for _, v := range s.withImageURLs(vehicles) {
		if v.Status == domain.VehicleStatusRented {
			cat.Rented = append(cat.Rented, v)
		} else {
			cat.Available = append(cat.Available, v)
		}
	}
	return cat, nil
}

func (s *fleetService) ListAllVehicles(ctx context.Context, op domain.Operator) ([]domain.Vehicle, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	if _, err := s.RefreshAllStatuses(ctx); err != nil {
		return nil, err
	}
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withImageURLs(vehicles), nil
}

func (s *fleetService) SearchVehicles(ctx context.Context, query string) ([]domain.Vehicle, error) {
	query = strings.TrimSpace(query)
	var (
		vehicles []domain.Vehicle
		err      error
	)
	if query == "" {
		vehicles, err = s.vehicleRepo.ListRecent(ctx, popularVehicles)
	} else {
		vehicles, err = s.vehicleRepo.Search(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return s.withImageURLs(vehicles), nil
}

func (s *fleetService) AddVehicle(ctx context.Context, op domain.Operator, vehicle *domain.Vehicle) error {
	if err := requireOperator(op); err != nil {
		return err
	}
	vehicle.Name = strings.TrimSpace(vehicle.Name)
	vehicle.Category = strings.TrimSpace(vehicle.Category)
	vehicle.Plate = strings.TrimSpace(vehicle.Plate)

	verr := domain.NewValidationError()
	if vehicle.Name == "" {
		verr.Add("name", msgRequired)
	}
	if vehicle.DayRate != nil && *vehicle.DayRate < 0 {
		verr.Add("day_rate", "Day rate cannot be negative.")
	}
	if !verr.Empty() {
		return verr
	}

	vehicle.Status = domain.VehicleStatusAvailable
	vehicle.CreatedOn = s.now().Format(utils.TimestampLayout)
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			verr.Add("name", "A vehicle with this name already exists.")
			return verr
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	logger.WithVehicle(vehicle.Name).Info("Vehicle added", "vehicle_id", vehicle.ID, "operator", op.Subject())
	return nil
}

func (s *fleetService) SetVehicleImage(ctx context.Context, op domain.Operator, vehicleID int64, contentType string, body io.Reader) (*domain.Vehicle, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	key, err := s.images.NewKey(contentType)
	if err != nil {
		return nil, imageError(err)
	}
	if err := s.images.Save(ctx, key, body); err != nil {
		return nil, imageError(err)
	}
	if err := s.vehicleRepo.UpdateImage(ctx, vehicle.ID, key); err != nil {
		_ = s.images.Delete(ctx, key)
		return nil, fmt.Errorf("update vehicle image: %w", err)
	}

	if old := vehicle.Image; old != "" {
		if err := s.images.Delete(ctx, old); err != nil {
			logger.WarnContext(ctx, "Failed to delete previous image", "vehicle", vehicle.Name, "key", old, "error", err)
		}
	}
	vehicle.Image = key
	vehicle.ImageURL = s.images.URL(key)
	logger.WithVehicle(vehicle.Name).Info("Vehicle image updated", "key", key, "operator", op.Subject())
	return vehicle, nil
}

func imageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		verr := domain.NewValidationError()
		verr.Add("image", "Only JPEG, PNG, GIF and WebP images are accepted.")
		return verr
	case errors.Is(err, storage.ErrTooLarge):
		verr := domain.NewValidationError()
		verr.Add("image", "The image is too large.")
		return verr
	}
	return fmt.Errorf("store image: %w", err)
}

func (s *fleetService) OpenVehicleImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	rc, err := s.images.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}
	return rc, storage.ContentTypeForKey(key), nil
}

func (s *fleetService) withImageURLs(vehicles []domain.Vehicle) []domain.Vehicle {
	for i := range vehicles {
		if vehicles[i].Image != "" && s.images != nil {
			vehicles[i].ImageURL = s.images.URL(vehicles[i].Image)
		}
	}
	return vehicles
}
