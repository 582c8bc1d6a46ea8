package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"carrental-backend/internal/logger"
)

// Dates are TEXT yyyy-mm-dd on both dialects so rows entered by hand or by
// older versions keep their original value, readable or not.
const schemaTemplate = `
CREATE TABLE IF NOT EXISTS vehicles (
    id {{pk}},
    name TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL DEFAULT '',
    plate TEXT NOT NULL DEFAULT '',
    day_rate {{real}},
    status TEXT NOT NULL DEFAULT 'AVAILABLE',
    image TEXT NOT NULL DEFAULT '',
    created_on TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS requests (
    id {{pk}},
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    vehicle_id INTEGER REFERENCES vehicles(id),
    vehicle_name TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'PENDING',
    created_on TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS contracts (
    id {{pk}},
    request_id INTEGER REFERENCES requests(id),
    renter_name TEXT NOT NULL,
    renter_id_document TEXT NOT NULL DEFAULT '',
    renter_license TEXT NOT NULL DEFAULT '',
    renter_license_year TEXT NOT NULL DEFAULT '',
    second_name TEXT,
    second_id_document TEXT,
    second_license TEXT,
    second_license_year TEXT,
    vehicle_id INTEGER REFERENCES vehicles(id),
    vehicle_name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    plate TEXT NOT NULL DEFAULT '',
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    days INTEGER NOT NULL,
    day_rate {{real}},
    total {{real}},
    status TEXT NOT NULL DEFAULT 'ACTIVE',
    created_on TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS clients (
    id {{pk}},
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    id_document TEXT NOT NULL DEFAULT '',
    license TEXT NOT NULL DEFAULT '',
    created_on TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS contacts (
    id {{pk}},
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    created_on TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_contracts_request ON contracts(request_id);
CREATE INDEX IF NOT EXISTS idx_contracts_vehicle ON contracts(vehicle_id, status);
CREATE INDEX IF NOT EXISTS idx_requests_vehicle ON requests(vehicle_id, status);
CREATE INDEX IF NOT EXISTS idx_requests_vehicle_name ON requests(vehicle_name, status)
`

// Statements returns the DDL for the dialect, one statement per entry.
func Statements(dialect Dialect) []string {
	pk, float := "SERIAL PRIMARY KEY", "DOUBLE PRECISION"
	if dialect == DialectSQLite {
		pk, float = "INTEGER PRIMARY KEY AUTOINCREMENT", "REAL"
	}
	ddl := strings.NewReplacer("{{pk}}", pk, "{{real}}", float).Replace(schemaTemplate)

	var out []string
	for _, stmt := range strings.Split(ddl, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Migrate creates missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	for _, q := range Statements(s.dialect) {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("exec migration %s: %w", trimSQL(q), err)
		}
	}
	logger.Info("Database schema ready", "dialect", s.dialect)
	return nil
}

func trimSQL(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
