// Package repository provides datasource clients the probe can connect to,
// count a table with, and disconnect from.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Common errors for datasource clients.
var (
	ErrUnsupportedScheme = errors.New("unsupported datasource scheme")
	ErrNotConnected      = errors.New("not connected")
	ErrAlreadyConnected  = errors.New("already connected")
	ErrMissingDatabase   = errors.New("database name missing from URL")
	ErrInvalidTable      = errors.New("invalid table name")
)

// Client is a datasource client with explicit connection lifecycle.
// Disconnect is safe to call when Connect failed or never ran.
type Client interface {
	Connect(ctx context.Context) error
	Count(ctx context.Context, table string) (int64, error)
	Disconnect(ctx context.Context) error
}

// Open returns an unconnected Client for the datasource URL.
// No I/O happens until Connect.
func Open(databaseURL string) (Client, error) {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	switch scheme := strings.ToLower(parsed.Scheme); scheme {
	case "postgres", "postgresql":
		return NewPostgres(databaseURL), nil
	case "mysql":
		dsn, err := mysqlDSN(parsed)
		if err != nil {
			return nil, err
		}
		return NewSQL(DialectMySQL, dsn), nil
	case "file", "sqlite":
		return NewSQL(DialectSQLite, sqliteDSN(databaseURL, scheme)), nil
	case "mongodb", "mongodb+srv":
		return NewMongo(databaseURL), nil
	case "":
		return nil, fmt.Errorf("%w: missing scheme", ErrUnsupportedScheme)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, parsed.Scheme)
	}
}

// splitTable breaks a possibly schema-qualified name into its segments.
func splitTable(table string) ([]string, error) {
	trimmed := strings.TrimSpace(table)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTable)
	}

	parts := strings.Split(trimmed, ".")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
		}
	}
	return parts, nil
}
