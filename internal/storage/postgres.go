package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is the subset of *pgxpool.Pool the slot uses.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

const createSlotsTable = `CREATE TABLE IF NOT EXISTS planbook_slots (
	key TEXT PRIMARY KEY,
	payload JSONB NOT NULL
)`

// PostgresSlot keeps the slot as one row of the planbook_slots table.
type PostgresSlot struct {
	db  pgxQuerier
	key string
}

// OpenPostgresSlot connects with dsn and makes sure the table exists.
func OpenPostgresSlot(ctx context.Context, dsn string) (*PostgresSlot, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	slot, err := newPostgresSlot(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return slot, nil
}

func newPostgresSlot(ctx context.Context, db pgxQuerier) (*PostgresSlot, error) {
	if _, err := db.Exec(ctx, createSlotsTable); err != nil {
		return nil, fmt.Errorf("create planbook_slots table: %w", err)
	}
	return &PostgresSlot{db: db, key: SlotKey}, nil
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, `SELECT payload FROM planbook_slots WHERE key = $1`, s.key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return payload, nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO planbook_slots (key, payload) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload`,
		s.key, data)
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

func (s *PostgresSlot) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM planbook_slots WHERE key = $1`, s.key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

func (s *PostgresSlot) Close() error {
	s.db.Close()
	return nil
}
