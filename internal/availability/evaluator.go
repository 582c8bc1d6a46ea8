package availability

import (
	"context"
	"errors"
	"fmt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

// Evaluator answers "is this vehicle free for [start, end]?" against active
// contracts and confirmed requests. It only reads from the store.
type Evaluator struct {
	vehicles  repository.VehicleRepository
	contracts repository.ContractRepository
	requests  repository.RequestRepository
	policy    Policy
}

func NewEvaluator(
	vehicles repository.VehicleRepository,
	contracts repository.ContractRepository,
	requests repository.RequestRepository,
	policy Policy,
) *Evaluator {
	return &Evaluator{
		vehicles:  vehicles,
		contracts: contracts,
		requests:  requests,
		policy:    policy,
	}
}

func (e *Evaluator) Policy() Policy {
	return e.policy
}

// ResolveVehicle maps a vehicle name to its reference. A name that matches no
// vehicle still yields a usable reference so legacy rows are found by name.
func (e *Evaluator) ResolveVehicle(ctx context.Context, name string) (domain.VehicleRef, *domain.Vehicle, error) {
	v, err := e.vehicles.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.VehicleRef{Name: name}, nil, nil
		}
		return domain.VehicleRef{}, nil, fmt.Errorf("resolve vehicle %q: %w", name, err)
	}
	return v.Ref(), v, nil
}

// IsAvailable reports whether vehicleName is free for the given dates.
// excludeRequestID (0 for none) skips one request and the contract created
// from it, so that a request can be re-validated against every other
// commitment while it is being confirmed.
func (e *Evaluator) IsAvailable(ctx context.Context, vehicleName, startDate, endDate string, excludeRequestID int64) (bool, error) {
	ref, _, err := e.ResolveVehicle(ctx, vehicleName)
	if err != nil {
		return false, err
	}
	conflict, err := e.FindConflict(ctx, ref, startDate, endDate, excludeRequestID)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

// FindConflict returns the first commitment that blocks the candidate dates,
// or nil when the vehicle is free. A candidate whose dates cannot be read is
// reported as a conflict under the FailClosed candidate policy.
func (e *Evaluator) FindConflict(ctx context.Context, ref domain.VehicleRef, startDate, endDate string, excludeRequestID int64) (*Commitment, error) {
	candidate, err := utils.ParseInterval(startDate, endDate)
	if err != nil {
		if e.policy.Candidate == FailClosed {
			logger.Debug("Candidate dates unreadable, vehicle reported unavailable",
				"vehicle", ref.Name, "start_date", startDate, "end_date", endDate)
			return &Commitment{StartDate: startDate, EndDate: endDate}, nil
		}
		return nil, nil
	}
	candidate = candidate.Normalize()

	contracts, err := e.contracts.ListActiveByVehicle(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list active contracts: %w", err)
	}
	if excludeRequestID != 0 {
		contracts = withoutRequest(contracts, excludeRequestID)
	}
	if c := e.firstOverlap(candidate, FromContracts(contracts)); c != nil {
		return c, nil
	}

	requests, err := e.requests.ListConfirmedByVehicle(ctx, ref, excludeRequestID)
	if err != nil {
		return nil, fmt.Errorf("list confirmed requests: %w", err)
	}
	return e.firstOverlap(candidate, FromRequests(requests)), nil
}

func (e *Evaluator) firstOverlap(candidate utils.Interval, commitments []Commitment) *Commitment {
	for i := range commitments {
		c := commitments[i]
		overlap, ok := OverlapStored(candidate, c.StartDate, c.EndDate)
		if !ok {
			logger.Warn("Stored commitment has unreadable dates",
				"kind", c.Kind, "id", c.ID, "start_date", c.StartDate, "end_date", c.EndDate)
			if e.policy.Stored == FailClosed {
				return &c
			}
			continue
		}
		if overlap {
			return &c
		}
	}
	return nil
}

func withoutRequest(contracts []domain.Contract, requestID int64) []domain.Contract {
	out := contracts[:0:0]
	for _, c := range contracts {
		if c.RequestID != nil && *c.RequestID == requestID {
			continue
		}
		out = append(out, c)
	}
	return out
}
