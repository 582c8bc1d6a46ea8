package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

const requestColumns = `id, name, phone, email, city, start_date, end_date, vehicle_id, vehicle_name, notes, status, created_on`

// vehicleMatch selects rows of a vehicle: by id, or by name for rows written
// before vehicle ids were recorded. It consumes two placeholders.
func vehicleMatch(first int) string {
	return fmt.Sprintf("(vehicle_id = $%d OR (vehicle_id IS NULL AND vehicle_name = $%d))", first, first+1)
}

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	req := &domain.Request{}
	var vehicleID sql.NullInt64
	var status string
	if err := row.Scan(&req.ID, &req.Name, &req.Phone, &req.Email, &req.City, &req.StartDate, &req.EndDate,
		&vehicleID, &req.VehicleName, &req.Notes, &status, &req.CreatedOn); err != nil {
		return nil, err
	}
	req.VehicleID = int64Ptr(vehicleID)
	req.Status = domain.RequestStatus(status)
	return req, nil
}

func (r *requestRepository) queryRequests(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `INSERT INTO requests (name, phone, email, city, start_date, end_date, vehicle_id, vehicle_name, notes, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	if req.CreatedOn == "" {
		req.CreatedOn = time.Now().Format(utils.TimestampLayout)
	}
	logger.DatabaseCall("requests.create", query, "vehicle", req.VehicleName)
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Phone, req.Email, req.City, req.StartDate, req.EndDate,
		nullInt64(req.VehicleID), req.VehicleName, req.Notes, string(req.Status), req.CreatedOn).Scan(&req.ID)
	logger.DatabaseResult("requests.create", 1, err)
	return err
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return req, nil
}

func (r *requestRepository) List(ctx context.Context, f domain.RequestFilter) ([]domain.Request, error) {
	var where []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Client != "" {
		where = append(where, "LOWER(name) LIKE "+next(likePattern(strings.ToLower(f.Client))))
	}
	if f.Vehicle != "" {
		where = append(where, "LOWER(vehicle_name) LIKE "+next(likePattern(strings.ToLower(f.Vehicle))))
	}
	if f.Date != "" {
		where = append(where, "start_date <= "+next(f.Date))
		where = append(where, "end_date >= "+next(f.Date))
	}

	query := `SELECT ` + requestColumns + ` FROM requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	logger.DatabaseCall("requests.list", query, "filters", len(where))
	return r.queryRequests(ctx, query, args...)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE requests SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests`).Scan(&n)
	return n, err
}

func (r *requestRepository) ListConfirmedByVehicle(ctx context.Context, ref domain.VehicleRef, excludeID int64) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
	          WHERE status = $1 AND ` + vehicleMatch(2) + ` AND id <> $4 ORDER BY id`
	return r.queryRequests(ctx, query, string(domain.RequestStatusConfirmed), ref.ID, ref.Name, excludeID)
}

func (r *requestRepository) ListConfirmedCovering(ctx context.Context, ref domain.VehicleRef, day string) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests
	          WHERE status = $1 AND ` + vehicleMatch(2) + ` AND start_date <= $4 AND end_date >= $5 ORDER BY id`
	return r.queryRequests(ctx, query, string(domain.RequestStatusConfirmed), ref.ID, ref.Name, day, day)
}
