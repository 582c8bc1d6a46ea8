// Package app wires configuration into stores, locks and services for the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	httpapi "carrental-backend/internal/api/http"
	"carrental-backend/internal/availability"
	"carrental-backend/internal/config"
	"carrental-backend/internal/locker"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/memory"
	"carrental-backend/internal/repository/sqlstore"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
	"carrental-backend/internal/storage"
)

// Store is the union of the repositories, whichever backend provides them.
type Store struct {
	Vehicles      repository.VehicleRepository
	Requests      repository.RequestRepository
	Contracts     repository.ContractRepository
	Confirmations repository.ConfirmationRepository
	Clients       repository.ClientRepository
	Contacts      repository.ContactRepository

	Ping  func(ctx context.Context) error
	Close func() error
}

// OpenStore connects to the configured database and applies the schema.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("Using in-memory store, data is lost on exit")
		m := memory.NewStore()
		return &Store{
			Vehicles:      m.VehicleRepository,
			Requests:      m.RequestRepository,
			Contracts:     m.ContractRepository,
			Confirmations: m,
			Clients:       m.ClientRepository,
			Contacts:      m.ContactRepository,
			Ping:          func(context.Context) error { return nil },
			Close:         func() error { return nil },
		}, nil
	}

	dialect := sqlstore.Dialect(cfg.Database.Driver)
	logger.Info("Connecting to database...", "driver", dialect, "host", cfg.Database.Host, "database", cfg.Database.Database, "path", cfg.Database.Path)
	db, err := sqlstore.Open(dialect, cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, err
	}
	s := sqlstore.NewStore(db, dialect)
	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("Database connection established")
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return &Store{
		Vehicles:      s.VehicleRepository,
		Requests:      s.RequestRepository,
		Contracts:     s.ContractRepository,
		Confirmations: s,
		Clients:       s.ClientRepository,
		Contacts:      s.ContactRepository,
		Ping:          s.Ping,
		Close:         s.Close,
	}, nil
}

// NewLocker returns the per-vehicle lock for the configured backend.
func NewLocker(ctx context.Context, cfg *config.Config) (locker.Locker, func() error, error) {
	if cfg.Lock.Backend != "redis" {
		return locker.NewLocal(), func() error { return nil }, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Lock.RedisAddress,
		Password: cfg.Lock.RedisPassword,
		DB:       cfg.Lock.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("Using redis vehicle locks", "address", cfg.Lock.RedisAddress, "ttl", cfg.LockTTL())
	return locker.NewRedis(client, cfg.LockTTL()), client.Close, nil
}

// Policy reads the date parsing policies from the booking section.
func Policy(cfg *config.Config) (availability.Policy, error) {
	stored, err := availability.ParseStoredPolicy(cfg.Booking.StoredDatePolicy)
	if err != nil {
		return availability.Policy{}, err
	}
	candidate, err := availability.ParseCandidatePolicy(cfg.Booking.CandidateDatePolicy)
	if err != nil {
		return availability.Policy{}, err
	}
	return availability.Policy{Stored: stored, Candidate: candidate}, nil
}

func NewNotifier(cfg *config.Config) service.Notifier {
	if cfg.SendGrid.APIKey == "" {
		logger.Info("SendGrid not configured, customer notifications disabled")
		return service.NoopNotifier{}
	}
	return service.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
}

// NewServices builds every service on top of store.
func NewServices(cfg *config.Config, store *Store, locks locker.Locker) (httpapi.Services, error) {
	policy, err := Policy(cfg)
	if err != nil {
		return httpapi.Services{}, err
	}
	images, err := storage.NewLocalImageStore(storage.Config{
		UploadDir:   cfg.Storage.UploadDir,
		BaseURL:     cfg.Storage.BaseURL,
		MaxFileSize: cfg.MaxImageBytes(),
	})
	if err != nil {
		return httpapi.Services{}, err
	}

	evaluator := availability.NewEvaluator(store.Vehicles, store.Contracts, store.Requests, policy)
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.TokenExpiry())
	return httpapi.Services{
		Booking: service.NewBookingService(store.Requests, store.Vehicles, store.Contracts, store.Confirmations,
			evaluator, locks, NewNotifier(cfg), nil),
		Contracts: service.NewContractService(store.Contracts, evaluator, nil),
		Fleet: service.NewFleetService(store.Vehicles, store.Requests, store.Contracts, images,
			policy, cfg.Location(), nil),
		CRM:   service.NewCRMService(store.Clients, store.Contacts, nil),
		Admin: service.NewAdminService(store.Requests, store.Clients, store.Vehicles),
		Auth:  service.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, tokens),
	}, nil
}
