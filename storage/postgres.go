package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Querier is satisfied by both *pgx.Conn and *pgxpool.Pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PostgresStore struct{ conn Querier }

func NewPostgresStore(conn Querier) *PostgresStore {
	return &PostgresStore{conn: conn}
}

// MigratePostgres applies the embedded migrations through a database/sql
// handle borrowing connections from pool.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return migrate(ctx, db, "postgres", "migrations/postgres")
}

func (r *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	sql := `
			SELECT value
			FROM kv_store
			WHERE key=$1;
		`

	var value []byte
	err := r.conn.QueryRow(ctx, sql, key).Scan(&value)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch key '%v': %w", key, err)
	}

	return value, nil
}

func (r *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	sql := `
			INSERT INTO kv_store(key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE
			SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at;
		`

	if _, err := r.conn.Exec(ctx, sql, key, value); err != nil {
		return fmt.Errorf("failed to write key '%v': %w", key, err)
	}

	return nil
}
