package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/availability"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/locker"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

const (
	msgRequired    = "This field is required."
	msgUnavailable = "This vehicle is not available for these dates."
)

type bookingService struct {
	requestRepo   repository.RequestRepository
	vehicleRepo   repository.VehicleRepository
	contractRepo  repository.ContractRepository
	confirmations repository.ConfirmationRepository
	evaluator     *availability.Evaluator
	locks         locker.Locker
	notifier      Notifier
	now           Clock
}

func NewBookingService(
	requestRepo repository.RequestRepository,
	vehicleRepo repository.VehicleRepository,
	contractRepo repository.ContractRepository,
	confirmations repository.ConfirmationRepository,
	evaluator *availability.Evaluator,
	locks locker.Locker,
	notifier Notifier,
	now Clock,
) BookingService {
	if now == nil {
		now = time.Now
	}
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &bookingService{
		requestRepo:   requestRepo,
		vehicleRepo:   vehicleRepo,
		contractRepo:  contractRepo,
		confirmations: confirmations,
		evaluator:     evaluator,
		locks:         locks,
		notifier:      notifier,
		now:           now,
	}
}

func validateDraft(d domain.RequestDraft) *domain.ValidationError {
	verr := domain.NewValidationError()
	required := map[string]string{
		"name":       d.Name,
		"phone":      d.Phone,
		"city":       d.City,
		"start_date": d.StartDate,
		"end_date":   d.EndDate,
		"vehicle":    d.VehicleName,
	}
	for field, value := range required {
		if value == "" {
			verr.Add(field, msgRequired)
		}
	}
	return verr
}

func (s *bookingService) CreateRequest(ctx context.Context, draft domain.RequestDraft) (*domain.Request, error) {
	d := draft.Trim()
	if verr := validateDraft(d); !verr.Empty() {
		metrics.IncRequestCreated(metrics.ResultInvalid)
		return nil, verr
	}

	unlock, err := s.locks.Lock(ctx, locker.VehicleKey(d.VehicleName))
	if err != nil {
		metrics.IncRequestCreated(metrics.ResultError)
		return nil, fmt.Errorf("lock vehicle %q: %w", d.VehicleName, err)
	}
	defer unlock()

	ref, _, err := s.evaluator.ResolveVehicle(ctx, d.VehicleName)
	if err != nil {
		metrics.IncRequestCreated(metrics.ResultError)
		return nil, err
	}
	conflict, err := s.evaluator.FindConflict(ctx, ref, d.StartDate, d.EndDate, 0)
	if err != nil {
		metrics.IncRequestCreated(metrics.ResultError)
		return nil, err
	}
	if conflict != nil {
		metrics.IncRequestCreated(metrics.ResultConflict)
		logger.WithVehicle(d.VehicleName).Info("Request rejected, vehicle unavailable",
			"start_date", d.StartDate, "end_date", d.EndDate, "conflict_kind", conflict.Kind, "conflict_id", conflict.ID)
		return nil, &domain.ConflictError{Field: "vehicle", Message: msgUnavailable}
	}

	req := &domain.Request{
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		City:        d.City,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		VehicleID:   ref.IDPtr(),
		VehicleName: d.VehicleName,
		Notes:       d.Notes,
		Status:      domain.RequestStatusPending,
		CreatedOn:   s.now().Format(utils.TimestampLayout),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		metrics.IncRequestCreated(metrics.ResultError)
		return nil, fmt.Errorf("create request: %w", err)
	}

	metrics.IncRequestCreated(metrics.ResultOK)
	logger.WithRequest(req.ID).Info("Request created", "vehicle", req.VehicleName,
		"start_date", req.StartDate, "end_date", req.EndDate)
	return req, nil
}

func (s *bookingService) SetStatus(ctx context.Context, op domain.Operator, requestID int64, status string) (*domain.Request, error) {
	logger.EnterMethod("bookingService.SetStatus", "request_id", requestID, "status", status)

	if err := requireOperator(op); err != nil {
		return nil, err
	}
	next, ok := domain.ParseRequestStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, req.Status, next)
	}

	if next == domain.RequestStatusConfirmed {
		req, err = s.confirm(ctx, op, req)
		if err != nil {
			logger.ExitMethodWithError("bookingService.SetStatus", err, "request_id", requestID)
			return nil, err
		}
		logger.ExitMethod("bookingService.SetStatus", "request_id", requestID)
		return req, nil
	}

	if req.Status == next {
		return req, nil
	}
	if err := s.requestRepo.UpdateStatus(ctx, req.ID, next); err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	previous := req.Status
	req.Status = next
	logger.WithRequest(req.ID).Info("Request status changed", "from", previous, "to", next, "operator", op.Subject())
	s.notify(ctx, req)
	logger.ExitMethod("bookingService.SetStatus", "request_id", requestID)
	return req, nil
}

// confirm re-validates the request against every other commitment of its
// vehicle and applies the confirmation writes atomically. Nothing is written
// when the vehicle is no longer free.
func (s *bookingService) confirm(ctx context.Context, op domain.Operator, req *domain.Request) (*domain.Request, error) {
	log := logger.WithRequest(req.ID)

	unlock, err := s.locks.Lock(ctx, locker.VehicleKey(req.VehicleName))
	if err != nil {
		metrics.IncConfirmation(metrics.ResultError)
		return nil, fmt.Errorf("lock vehicle %q: %w", req.VehicleName, err)
	}
	defer unlock()

	ref, vehicle, err := s.vehicleOf(ctx, req)
	if err != nil {
		metrics.IncConfirmation(metrics.ResultError)
		return nil, err
	}

	conflict, err := s.evaluator.FindConflict(ctx, ref, req.StartDate, req.EndDate, req.ID)
	if err != nil {
		metrics.IncConfirmation(metrics.ResultError)
		return nil, err
	}
	if conflict != nil {
		metrics.IncConfirmation(metrics.ResultConflict)
		log.Warn("Confirmation rejected, vehicle unavailable",
			"vehicle", req.VehicleName, "conflict_kind", conflict.Kind, "conflict_id", conflict.ID)
		return nil, &domain.ConflictError{Message: msgUnavailable}
	}

	confirmation := &domain.Confirmation{RequestID: req.ID, Vehicle: ref}
	_, err = s.contractRepo.GetByRequestID(ctx, req.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		confirmation.Contract = s.contractFromRequest(req, ref, vehicle)
	case err != nil:
		metrics.IncConfirmation(metrics.ResultError)
		return nil, fmt.Errorf("lookup contract: %w", err)
	default:
		log.Info("Contract already exists, confirmation is idempotent")
	}

	if err := s.confirmations.ApplyConfirmation(ctx, confirmation); err != nil {
		metrics.IncConfirmation(metrics.ResultError)
		return nil, fmt.Errorf("apply confirmation: %w", err)
	}
	metrics.IncConfirmation(metrics.ResultOK)

	previous := req.Status
	req.Status = domain.RequestStatusConfirmed
	if confirmation.Contract != nil {
		log.Info("Request confirmed, contract created", "contract_id", confirmation.Contract.ID,
			"days", confirmation.Contract.Days, "operator", op.Subject())
	}
	if previous != req.Status {
		s.notify(ctx, req)
	}
	return req, nil
}

// vehicleOf returns the reference used to find the request's commitments and
// the vehicle itself when it still exists.
func (s *bookingService) vehicleOf(ctx context.Context, req *domain.Request) (domain.VehicleRef, *domain.Vehicle, error) {
	if req.VehicleID == nil {
		return s.evaluator.ResolveVehicle(ctx, req.VehicleName)
	}
	v, err := s.vehicleRepo.GetByID(ctx, *req.VehicleID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.VehicleRef{ID: *req.VehicleID, Name: req.VehicleName}, nil, nil
	}
	if err != nil {
		return domain.VehicleRef{}, nil, fmt.Errorf("load vehicle %d: %w", *req.VehicleID, err)
	}
	return v.Ref(), v, nil
}

func (s *bookingService) contractFromRequest(req *domain.Request, ref domain.VehicleRef, vehicle *domain.Vehicle) *domain.Contract {
	c := &domain.Contract{
		RequestID:   &req.ID,
		Renter:      domain.Renter{Name: req.Name},
		VehicleID:   ref.IDPtr(),
		VehicleName: req.VehicleName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.ContractStatusActive,
		CreatedOn:   s.now().Format(utils.TimestampLayout),
	}
	var rate *float64
	if vehicle != nil {
		c.Category = vehicle.Category
		c.Plate = vehicle.Plate
		rate = vehicle.DayRate
	}
	q := utils.QuoteRental(req.StartDate, req.EndDate, rate)
	c.Days = q.Days
	c.DayRate = q.DayRate
	c.Total = q.Total
	return c
}

func (s *bookingService) notify(ctx context.Context, req *domain.Request) {
	if req.Email == "" {
		return
	}
	if err := s.notifier.RequestStatusChanged(ctx, req); err != nil {
		logger.WithRequest(req.ID).Warn("Customer notification failed", "error", err)
	}
}

func (s *bookingService) ListRequests(ctx context.Context, op domain.Operator, filter domain.RequestFilter) ([]domain.Request, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	return s.requestRepo.List(ctx, filter)
}

func (s *bookingService) GetRequestDetail(ctx context.Context, op domain.Operator, requestID int64) (*RequestDetail, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	_, vehicle, err := s.vehicleOf(ctx, req)
	if err != nil {
		return nil, err
	}
	var rate *float64
	if vehicle != nil {
		rate = vehicle.DayRate
	}
	return &RequestDetail{
		Request: *req,
		Vehicle: vehicle,
		Quote:   utils.QuoteRental(req.StartDate, req.EndDate, rate),
	}, nil
}

func (s *bookingService) Invoice(ctx context.Context, op domain.Operator, requestID int64) (*domain.Invoice, error) {
	detail, err := s.GetRequestDetail(ctx, op, requestID)
	if err != nil {
		return nil, err
	}
	inv := &domain.Invoice{
		Number:      fmt.Sprintf("INV-%06d", detail.Request.ID),
		IssuedOn:    utils.FormatDate(s.now()),
		Request:     detail.Request,
		VehicleName: detail.Request.VehicleName,
		Days:        detail.Quote.Days,
		DayRate:     detail.Quote.DayRate,
		Total:       detail.Quote.Total,
	}
	if v := detail.Vehicle; v != nil {
		inv.Category = v.Category
		inv.Plate = v.Plate
	}
	return inv, nil
}
