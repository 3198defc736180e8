package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createDealsTable = `
CREATE TABLE IF NOT EXISTS proforma_deals (
	id            TEXT PRIMARY KEY,
	project_name  TEXT NOT NULL,
	deal_date     TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	snapshot_json JSONB NOT NULL
)`

// PostgresStore keeps snapshots in the proforma_deals table, one JSONB
// document per row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to url (DATABASE_URL when empty) and creates
// the table if it does not exist.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("postgres storage needs a url or DATABASE_URL")
	}

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, createDealsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create deals table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO proforma_deals (id, project_name, deal_date, created_at, snapshot_json)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			project_name = EXCLUDED.project_name,
			deal_date = EXCLUDED.deal_date,
			created_at = EXCLUDED.created_at,
			snapshot_json = EXCLUDED.snapshot_json`

	if _, err := s.pool.Exec(ctx, query, snap.ID, snap.ProjectName, snap.Date, snap.CreatedAt, data); err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.pool.Query(ctx, `SELECT snapshot_json FROM proforma_deals ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return snapshots, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT snapshot_json FROM proforma_deals WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
	}
	return &snap, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM proforma_deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM proforma_deals`); err != nil {
		return fmt.Errorf("failed to clear deals: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
