// internal/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	custom_errors "github-outreach/internal/errors"
	"github-outreach/internal/model"
)

// Querier is the record-store contract: read one company by id, partial
// update of a single pipeline output field. Stages depend on this interface
// so tests can substitute a mock.
type Querier interface {
	GetCompany(ctx context.Context, id int64) (*model.CompanyProfile, error)
	CreateCompany(ctx context.Context, company *model.CompanyProfile) error
	UpdateScrapedData(ctx context.Context, id int64, data []byte) error
	UpdateNiceData(ctx context.Context, id int64, data []byte) error
	UpdateEmail(ctx context.Context, id int64, email string) error
}

// DB is the subset of pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the Postgres-backed company record store.
type Store struct {
	db DB
}

var _ Querier = (*Store)(nil)

// New creates a Store over a connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// GetCompany reads the full company record.
func (s *Store) GetCompany(ctx context.Context, id int64) (*model.CompanyProfile, error) {
	const q = `
		SELECT id, name, website, manager_name, scraped_data, nice_data, email
		FROM companies WHERE id = $1`

	var c model.CompanyProfile
	err := s.db.QueryRow(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.Website, &c.ManagerName,
		&c.ScrapedData, &c.NiceData, &c.Email,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &custom_errors.ErrCompanyNotFound{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompany inserts a seed record.
func (s *Store) CreateCompany(ctx context.Context, company *model.CompanyProfile) error {
	const q = `
		INSERT INTO companies (id, name, website, manager_name)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.Exec(ctx, q, company.ID, company.Name, company.Website, company.ManagerName)
	return err
}

// UpdateScrapedData overwrites the scraped_data field only.
func (s *Store) UpdateScrapedData(ctx context.Context, id int64, data []byte) error {
	return s.updateField(ctx, id, "scraped_data", data)
}

// UpdateNiceData overwrites the nice_data field only.
func (s *Store) UpdateNiceData(ctx context.Context, id int64, data []byte) error {
	return s.updateField(ctx, id, "nice_data", data)
}

// UpdateEmail overwrites the email field only.
func (s *Store) UpdateEmail(ctx context.Context, id int64, email string) error {
	return s.updateField(ctx, id, "email", email)
}

func (s *Store) updateField(ctx context.Context, id int64, field string, value any) error {
	// field is one of three fixed column names, never user input.
	tag, err := s.db.Exec(ctx,
		"UPDATE companies SET "+field+" = $1, updated_at = now() WHERE id = $2",
		value, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &custom_errors.ErrCompanyNotFound{ID: id}
	}
	return nil
}
