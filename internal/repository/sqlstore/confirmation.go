package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

// ApplyConfirmation writes a confirmation in one transaction: the request
// becomes CONFIRMED, the vehicle RENTED and the contract is inserted unless the
// request already has one.
func (s *Store) ApplyConfirmation(ctx context.Context, c *domain.Confirmation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE requests SET status = $1 WHERE id = $2`,
		string(domain.RequestStatusConfirmed), c.RequestID)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if c.Vehicle.ID != 0 {
		_, err = tx.ExecContext(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`,
			string(domain.VehicleStatusRented), c.Vehicle.ID)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE vehicles SET status = $1 WHERE name = $2`,
			string(domain.VehicleStatusRented), c.Vehicle.Name)
	}
	if err != nil {
		return fmt.Errorf("update vehicle status: %w", err)
	}

	if c.Contract != nil {
		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM contracts WHERE request_id = $1`, c.RequestID).Scan(&existing)
		switch {
		case err == nil:
			logger.Info("Contract already exists for request, not inserting", "request_id", c.RequestID, "contract_id", existing)
		case errors.Is(err, sql.ErrNoRows):
			prepareContract(c.Contract)
			if err := tx.QueryRowContext(ctx, insertContract, contractArgs(c.Contract)...).Scan(&c.Contract.ID); err != nil {
				return fmt.Errorf("insert contract: %w", err)
			}
		default:
			return fmt.Errorf("lookup contract: %w", err)
		}
	}

	return tx.Commit()
}
