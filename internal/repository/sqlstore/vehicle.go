package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

const vehicleColumns = `id, name, category, plate, day_rate, status, image, created_on`

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var rate sql.NullFloat64
	var status string
	if err := row.Scan(&v.ID, &v.Name, &v.Category, &v.Plate, &rate, &status, &v.Image, &v.CreatedOn); err != nil {
		return nil, err
	}
	v.DayRate = float64Ptr(rate)
	v.Status = domain.VehicleStatus(status)
	return v, nil
}

func (r *vehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (name, category, plate, day_rate, status, image, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	v.CreatedOn = time.Now().Format(utils.TimestampLayout)
	logger.DatabaseCall("vehicles.create", query, "name", v.Name)
	err := r.db.QueryRowContext(ctx, query, v.Name, v.Category, v.Plate, nullFloat64(v.DayRate), string(v.Status), v.Image, v.CreatedOn).Scan(&v.ID)
	logger.DatabaseResult("vehicles.create", 1, err)
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *vehicleRepository) GetByName(ctx context.Context, name string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE name = $1 ORDER BY id LIMIT 1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	return r.queryVehicles(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
}

func (r *vehicleRepository) ListRecent(ctx context.Context, limit int) ([]domain.Vehicle, error) {
	return r.queryVehicles(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id DESC LIMIT $1`, limit)
}

func (r *vehicleRepository) Search(ctx context.Context, q string) ([]domain.Vehicle, error) {
	pattern := likePattern(strings.ToLower(q))
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
	          WHERE LOWER(name) LIKE $1 OR LOWER(category) LIKE $2 ORDER BY id`
	return r.queryVehicles(ctx, query, pattern, pattern)
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *vehicleRepository) UpdateImage(ctx context.Context, id int64, image string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET image = $1 WHERE id = $2`, image, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *vehicleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n)
	return n, err
}
