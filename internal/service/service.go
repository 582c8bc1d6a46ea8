package service

import (
	"context"
	"io"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/utils"
)

// Every operation taking a domain.Operator fails with domain.ErrUnauthorized
// when the operator is not valid.

type BookingService interface {
	CreateRequest(ctx context.Context, draft domain.RequestDraft) (*domain.Request, error)
	SetStatus(ctx context.Context, op domain.Operator, requestID int64, status string) (*domain.Request, error)
	ListRequests(ctx context.Context, op domain.Operator, filter domain.RequestFilter) ([]domain.Request, error)
	GetRequestDetail(ctx context.Context, op domain.Operator, requestID int64) (*RequestDetail, error)
	Invoice(ctx context.Context, op domain.Operator, requestID int64) (*domain.Invoice, error)
}

type ContractService interface {
	NewDirectContract(ctx context.Context, op domain.Operator, draft domain.ContractDraft) (*domain.Contract, error)
	ListContracts(ctx context.Context, op domain.Operator) ([]domain.Contract, error)
	ExportContracts(ctx context.Context, op domain.Operator, w io.Writer) error
}

type FleetService interface {
	RefreshAllStatuses(ctx context.Context) (*RefreshResult, error)
	ListVehicles(ctx context.Context) (*Catalogue, error)
	ListAllVehicles(ctx context.Context, op domain.Operator) ([]domain.Vehicle, error)
	SearchVehicles(ctx context.Context, query string) ([]domain.Vehicle, error)
	AddVehicle(ctx context.Context, op domain.Operator, vehicle *domain.Vehicle) error
	SetVehicleImage(ctx context.Context, op domain.Operator, vehicleID int64, contentType string, body io.Reader) (*domain.Vehicle, error)
	OpenVehicleImage(ctx context.Context, key string) (io.ReadCloser, string, error)
}

type CRMService interface {
	AddClient(ctx context.Context, op domain.Operator, client *domain.Client) error
	ListClients(ctx context.Context, op domain.Operator) ([]domain.Client, error)
	SubmitContact(ctx context.Context, msg *domain.ContactMessage) error
	ListContacts(ctx context.Context, op domain.Operator) ([]domain.ContactMessage, error)
}

type AdminService interface {
	Dashboard(ctx context.Context, op domain.Operator) (*domain.Stats, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
	Authorize(ctx context.Context, token string) (domain.Operator, error)
}

// Notifier tells customers about decisions on their requests.
type Notifier interface {
	RequestStatusChanged(ctx context.Context, req *domain.Request) error
}

// RequestDetail is a request with its vehicle and a price quote.
type RequestDetail struct {
	Request domain.Request  `json:"request"`
	Vehicle *domain.Vehicle `json:"vehicle,omitempty"`
	Quote   utils.Quote     `json:"quote"`
}

// Catalogue is the public fleet view.
type Catalogue struct {
	Available []domain.Vehicle `json:"available"`
	Rented    []domain.Vehicle `json:"rented"`
}

// RefreshResult summarizes one status refresh pass.
type RefreshResult struct {
	Day      string `json:"day"`
	Vehicles int    `json:"vehicles"`
	Rented   int    `json:"rented"`
	Changed  int    `json:"changed"`
}

// Clock returns the current time. Tests replace it to move "today".
type Clock func() time.Time

func requireOperator(op domain.Operator) error {
	if !op.Valid() {
		return domain.ErrUnauthorized
	}
	return nil
}
