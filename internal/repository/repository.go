package repository

import (
	"context"

	"carrental-backend/internal/domain"
)

// Lookups by id return domain.ErrNotFound when the row does not exist.

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByName(ctx context.Context, name string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Vehicle, error)
	Search(ctx context.Context, query string) ([]domain.Vehicle, error)
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
	UpdateImage(ctx context.Context, id int64, image string) error
	Count(ctx context.Context) (int64, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error
	Count(ctx context.Context) (int64, error)

	// Confirmed requests of a vehicle, skipping excludeID (0 skips nothing).
	ListConfirmedByVehicle(ctx context.Context, ref domain.VehicleRef, excludeID int64) ([]domain.Request, error)
	// Confirmed requests of a vehicle with start_date <= day <= end_date.
	ListConfirmedCovering(ctx context.Context, ref domain.VehicleRef, day string) ([]domain.Request, error)
}

type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	List(ctx context.Context) ([]domain.Contract, error)
	GetByRequestID(ctx context.Context, requestID int64) (*domain.Contract, error)

	ListActiveByVehicle(ctx context.Context, ref domain.VehicleRef) ([]domain.Contract, error)
	ListActiveCovering(ctx context.Context, ref domain.VehicleRef, day string) ([]domain.Contract, error)
}

// ConfirmationRepository applies every write of a confirmation in a single
// transaction: request status, vehicle status and, when present, the contract.
// A contract is never inserted twice for the same request.
type ConfirmationRepository interface {
	ApplyConfirmation(ctx context.Context, c *domain.Confirmation) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	List(ctx context.Context) ([]domain.Client, error)
	Count(ctx context.Context) (int64, error)
}

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context) ([]domain.ContactMessage, error)
}
