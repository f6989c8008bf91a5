package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campuscoffee/internal/pos/models"
	"campuscoffee/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// Postgres persists POS records in PostgreSQL. Name uniqueness is enforced
// by a unique index on lower(name), so concurrent creates with the same name
// admit exactly one winner and the rest observe sentinel.ErrAlreadyUsed.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed POS store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the pos table and its uniqueness index if they do not
// exist. Production deployments run migrations instead; tests call this.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pos (
			id           BIGSERIAL PRIMARY KEY,
			name         TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			type         TEXT NOT NULL,
			campus       TEXT NOT NULL,
			street       TEXT NOT NULL,
			house_number TEXT NOT NULL,
			postal_code  INTEGER NOT NULL,
			city         TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS pos_name_unique ON pos (lower(name));
	`)
	if err != nil {
		return fmt.Errorf("ensure pos schema: %w", err)
	}
	return nil
}

func (s *Postgres) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pos`); err != nil {
		return fmt.Errorf("clear pos: %w", err)
	}
	return nil
}

func (s *Postgres) GetAll(ctx context.Context) ([]models.Pos, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, type, campus, street, house_number,
		       postal_code, city, created_at, updated_at
		FROM pos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list pos: %w", err)
	}
	defer rows.Close()

	var all []models.Pos
	for rows.Next() {
		p, err := scanPos(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pos rows: %w", err)
	}
	return all, nil
}

func (s *Postgres) GetByID(ctx context.Context, id int64) (models.Pos, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, type, campus, street, house_number,
		       postal_code, city, created_at, updated_at
		FROM pos WHERE id = $1`, id)
	p, err := scanPos(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Pos{}, sentinel.ErrNotFound
		}
		return models.Pos{}, err
	}
	return p, nil
}

func (s *Postgres) Upsert(ctx context.Context, pos models.Pos) (models.Pos, error) {
	var row *sql.Row
	if pos.ID == 0 {
		row = s.db.QueryRowContext(ctx, `
			INSERT INTO pos (name, description, type, campus, street, house_number, postal_code, city)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, name, description, type, campus, street, house_number,
			          postal_code, city, created_at, updated_at`,
			pos.Name, pos.Description, string(pos.Type), string(pos.Campus),
			pos.Street, pos.HouseNumber, pos.PostalCode, pos.City)
	} else {
		row = s.db.QueryRowContext(ctx, `
			UPDATE pos
			SET name = $2, description = $3, type = $4, campus = $5, street = $6,
			    house_number = $7, postal_code = $8, city = $9, updated_at = now()
			WHERE id = $1
			RETURNING id, name, description, type, campus, street, house_number,
			          postal_code, city, created_at, updated_at`,
			pos.ID, pos.Name, pos.Description, string(pos.Type), string(pos.Campus),
			pos.Street, pos.HouseNumber, pos.PostalCode, pos.City)
	}

	saved, err := scanPos(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Pos{}, sentinel.ErrAlreadyUsed
		}
		if errors.Is(err, sql.ErrNoRows) {
			return models.Pos{}, sentinel.ErrNotFound
		}
		return models.Pos{}, fmt.Errorf("upsert pos: %w", err)
	}
	return saved, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPos(sc scanner) (models.Pos, error) {
	var p models.Pos
	var typ, campus string
	err := sc.Scan(&p.ID, &p.Name, &p.Description, &typ, &campus, &p.Street,
		&p.HouseNumber, &p.PostalCode, &p.City, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Pos{}, err
	}
	p.Type = models.PosType(typ)
	p.Campus = models.CampusType(campus)
	return p, nil
}
