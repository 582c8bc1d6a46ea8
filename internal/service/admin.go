package service

import (
	"context"
	"fmt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type adminService struct {
	requestRepo repository.RequestRepository
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
}

func NewAdminService(requestRepo repository.RequestRepository, clientRepo repository.ClientRepository, vehicleRepo repository.VehicleRepository) AdminService {
	return &adminService{requestRepo: requestRepo, clientRepo: clientRepo, vehicleRepo: vehicleRepo}
}

func (s *adminService) Dashboard(ctx context.Context, op domain.Operator) (*domain.Stats, error) {
	if err := requireOperator(op); err != nil {
		return nil, err
	}
	var (
		stats domain.Stats
		err   error
	)
	if stats.Requests, err = s.requestRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	if stats.Clients, err = s.clientRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}
	if stats.Vehicles, err = s.vehicleRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count vehicles: %w", err)
	}
	return &stats, nil
}
