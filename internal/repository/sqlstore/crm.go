package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (first_name, last_name, phone, id_document, license, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	c.CreatedOn = time.Now().Format(utils.TimestampLayout)
	return r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.IDDocument, c.License, c.CreatedOn).Scan(&c.ID)
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, first_name, last_name, phone, id_document, license, created_on FROM clients ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.IDDocument, &c.License, &c.CreatedOn); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	query := `INSERT INTO contacts (name, email, message, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	m.CreatedOn = time.Now().Format(utils.TimestampLayout)
	return r.db.QueryRowContext(ctx, query, m.Name, m.Email, m.Message, m.CreatedOn).Scan(&m.ID)
}

func (r *contactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, message, created_on FROM contacts ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedOn); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
