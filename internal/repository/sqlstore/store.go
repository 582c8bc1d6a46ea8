// Package sqlstore implements the repositories on database/sql. The same
// queries run on PostgreSQL (lib/pq) and SQLite (go-sqlite3): placeholders are
// written $1..$n in order of first appearance and never repeated.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// Open connects to the database of the given dialect.
func Open(dialect Dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dialect)
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dialect == DialectSQLite {
		// a single writer avoids "database is locked" under concurrent requests
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

type Store struct {
	db      *sql.DB
	dialect Dialect
	repository.VehicleRepository
	repository.RequestRepository
	repository.ContractRepository
	repository.ClientRepository
	repository.ContactRepository
}

func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:                 db,
		dialect:            dialect,
		VehicleRepository:  NewVehicleRepository(db),
		RequestRepository:  NewRequestRepository(db),
		ContractRepository: NewContractRepository(db),
		ClientRepository:   NewClientRepository(db),
		ContactRepository:  NewContactRepository(db),
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullFloat64(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func float64Ptr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// notFound converts sql.ErrNoRows into domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// requireRow returns domain.ErrNotFound when an update matched nothing.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func likePattern(s string) string {
	return "%" + s + "%"
}
