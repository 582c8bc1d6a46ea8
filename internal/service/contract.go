package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"carrental-backend/internal/availability"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/report"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type contractService struct {
	contractRepo repository.ContractRepository
	evaluator    *availability.Evaluator
	now          Clock
}

func NewContractService(contractRepo repository.ContractRepository, evaluator *availability.Evaluator, now Clock) ContractService {
	if now == nil {
		now = time.Now
	}
	return &contractService{contractRepo: contractRepo, evaluator: evaluator, now: now}
}

// NewDirectContract records a walk-in rental typed by staff. It is not checked
// against other commitments; the operator is trusted with the calendar.
func (s *contractService) NewDirectContract(ctx context.Context, op domain.Operator, draft domain.ContractDraft) (*domain.Contract, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}

	verr := domain.NewValidationError()
	renter := trimRenter(draft.Renter)
	if renter.Name == "" {
		verr.Add("renter_name", msgRequired)
	}
	vehicleName := strings.TrimSpace(draft.VehicleName)
	if vehicleName == "" {
		verr.Add("vehicle_name", msgRequired)
	}
	if !verr.Empty() {
		return nil, verr
	}

	ref, vehicle, err := s.evaluator.ResolveVehicle(ctx, vehicleName)
	if err != nil {
		return nil, err
	}

	c := &domain.Contract{
		Renter:      renter,
		VehicleID:   ref.IDPtr(),
		VehicleName: vehicleName,
		StartDate:   strings.TrimSpace(draft.StartDate),
		EndDate:     strings.TrimSpace(draft.EndDate),
		Status:      domain.ContractStatusActive,
		CreatedOn:   s.now().Format(utils.TimestampLayout),
	}
	if draft.SecondDriver != nil {
		second := trimRenter(*draft.SecondDriver)
		if second.Name != "" {
			c.SecondDriver = &second
		}
	}
	var rate *float64
	if vehicle != nil {
		c.Category = vehicle.Category
		c.Plate = vehicle.Plate
		rate = vehicle.DayRate
	}
	q := utils.QuoteRental(c.StartDate, c.EndDate, rate)
	c.Days, c.DayRate, c.Total = q.Days, q.DayRate, q.Total

	if err := s.contractRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contract: %w", err)
	}
	logger.WithVehicle(vehicleName).Info("Direct contract created",
		"contract_id", c.ID, "start_date", c.StartDate, "end_date", c.EndDate, "operator", op.Subject())
	return c, nil
}

func trimRenter(r domain.Renter) domain.Renter {
	return domain.Renter{
		Name:        strings.TrimSpace(r.Name),
		IDDocument:  strings.TrimSpace(r.IDDocument),
		License:     strings.TrimSpace(r.License),
		LicenseYear: strings.TrimSpace(r.LicenseYear),
	}
}

func (s *contractService) ListContracts(ctx context.Context, op domain.Operator) ([]domain.Contract, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	return s.contractRepo.List(ctx)
}

func (s *contractService) ExportContracts(ctx context.Context, op domain.Operator, w io.Writer) error {
	contracts, err := s.ListContracts(ctx, op)
	if err != nil {
		return err
	}
	if err := report.WriteContracts(w, contracts); err != nil {
		return fmt.Errorf("export contracts: %w", err)
	}
	return nil
}
