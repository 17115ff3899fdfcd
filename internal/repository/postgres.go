package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Postgres is a PostgreSQL client backed by a pgx connection pool.
type Postgres struct {
	databaseURL string
	pool        *pgxpool.Pool
}

// NewPostgres creates an unconnected Postgres client.
func NewPostgres(databaseURL string) *Postgres {
	return &Postgres{databaseURL: databaseURL}
}

// Connect creates the pool and verifies it with a ping.
func (p *Postgres) Connect(ctx context.Context) error {
	if p.pool != nil {
		return ErrAlreadyConnected
	}

	config, err := pgxpool.ParseConfig(p.databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	p.pool = pool
	return nil
}

// Count returns the number of rows in table.
func (p *Postgres) Count(ctx context.Context, table string) (int64, error) {
	if p.pool == nil {
		return 0, ErrNotConnected
	}

	ident, err := quotePostgres(table)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+ident).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// Disconnect closes the pool if one was created.
func (p *Postgres) Disconnect(ctx context.Context) error {
	if p.pool == nil {
		return nil
	}
	p.pool.Close()
	p.pool = nil
	return nil
}

// Pool returns the underlying connection pool, or nil before Connect.
func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

// quotePostgres quotes each segment of a schema-qualified table name.
// SQLite accepts the same double-quoted form.
func quotePostgres(table string) (string, error) {
	parts, err := splitTable(table)
	if err != nil {
		return "", err
	}
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, "."), nil
}
