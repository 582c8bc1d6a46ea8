package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

const contractColumns = `id, request_id, renter_name, renter_id_document, renter_license, renter_license_year,
	second_name, second_id_document, second_license, second_license_year,
	vehicle_id, vehicle_name, category, plate, start_date, end_date, days, day_rate, total, status, created_on`

const insertContract = `INSERT INTO contracts (request_id, renter_name, renter_id_document, renter_license, renter_license_year,
	second_name, second_id_document, second_license, second_license_year,
	vehicle_id, vehicle_name, category, plate, start_date, end_date, days, day_rate, total, status, created_on)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20) RETURNING id`

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	c := &domain.Contract{}
	var requestID, vehicleID sql.NullInt64
	var secondName, secondDoc, secondLicense, secondYear sql.NullString
	var rate, total sql.NullFloat64
	var status string
	err := row.Scan(&c.ID, &requestID, &c.Renter.Name, &c.Renter.IDDocument, &c.Renter.License, &c.Renter.LicenseYear,
		&secondName, &secondDoc, &secondLicense, &secondYear,
		&vehicleID, &c.VehicleName, &c.Category, &c.Plate, &c.StartDate, &c.EndDate, &c.Days, &rate, &total, &status, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	c.RequestID = int64Ptr(requestID)
	c.VehicleID = int64Ptr(vehicleID)
	c.DayRate = float64Ptr(rate)
	c.Total = float64Ptr(total)
	c.Status = domain.ContractStatus(status)
	if secondName.Valid && secondName.String != "" {
		c.SecondDriver = &domain.Renter{
			Name:        secondName.String,
			IDDocument:  secondDoc.String,
			License:     secondLicense.String,
			LicenseYear: secondYear.String,
		}
	}
	return c, nil
}

// contractArgs lists the insert arguments in column order.
func contractArgs(c *domain.Contract) []any {
	var second [4]sql.NullString
	if d := c.SecondDriver; d != nil {
		for i, s := range []string{d.Name, d.IDDocument, d.License, d.LicenseYear} {
			second[i] = sql.NullString{String: s, Valid: true}
		}
	}
	return []any{
		nullInt64(c.RequestID), c.Renter.Name, c.Renter.IDDocument, c.Renter.License, c.Renter.LicenseYear,
		second[0], second[1], second[2], second[3],
		nullInt64(c.VehicleID), c.VehicleName, c.Category, c.Plate, c.StartDate, c.EndDate, c.Days,
		nullFloat64(c.DayRate), nullFloat64(c.Total), string(c.Status), c.CreatedOn,
	}
}

func prepareContract(c *domain.Contract) {
	if c.Status == "" {
		c.Status = domain.ContractStatusActive
	}
	if c.CreatedOn == "" {
		c.CreatedOn = time.Now().Format(utils.TimestampLayout)
	}
}

func (r *contractRepository) queryContracts(ctx context.Context, query string, args ...any) ([]domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *c)
	}
	return contracts, rows.Err()
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	prepareContract(c)
	logger.DatabaseCall("contracts.create", insertContract, "vehicle", c.VehicleName)
	err := r.db.QueryRowContext(ctx, insertContract, contractArgs(c)...).Scan(&c.ID)
	logger.DatabaseResult("contracts.create", 1, err)
	return err
}

func (r *contractRepository) List(ctx context.Context) ([]domain.Contract, error) {
	return r.queryContracts(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY id DESC`)
}

func (r *contractRepository) GetByRequestID(ctx context.Context, requestID int64) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE request_id = $1`
	c, err := scanContract(r.db.QueryRowContext(ctx, query, requestID))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *contractRepository) ListActiveByVehicle(ctx context.Context, ref domain.VehicleRef) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
	          WHERE status = $1 AND ` + vehicleMatch(2) + ` ORDER BY id`
	return r.queryContracts(ctx, query, string(domain.ContractStatusActive), ref.ID, ref.Name)
}

func (r *contractRepository) ListActiveCovering(ctx context.Context, ref domain.VehicleRef, day string) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
	          WHERE status = $1 AND ` + vehicleMatch(2) + ` AND start_date <= $4 AND end_date >= $5 ORDER BY id`
	return r.queryContracts(ctx, query, string(domain.ContractStatusActive), ref.ID, ref.Name, day, day)
}
