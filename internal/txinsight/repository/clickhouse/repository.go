// Package clickhouse persists classified block, transaction, input and
// output rows.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records metrics for repository calls.
	Metrics interface {
		Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time)
	}

	// Conn is the connection surface the repository uses. The clickhouse-go
	// connection is adapted to it by NewRepository.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		Close() error
	}

	// Batch accumulates rows for a single insert.
	Batch interface {
		Append(v ...any) error
		Send() error
	}

	// Rows iterates a query result.
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}
)

type Repository struct {
	conn    Conn
	metrics Metrics
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: driverConn{conn: conn}, metrics: metrics}, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}

// driverConn narrows the clickhouse-go connection to the Conn surface.
type driverConn struct {
	conn clickhouse.Conn
}

func (c driverConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return c.conn.PrepareBatch(ctx, query)
}

func (c driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, query, args...)
}

func (c driverConn) Close() error {
	return c.conn.Close()
}

func firstCoin[T any](items []T) model.Coin {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.Block:
		return v.Coin
	case model.Transaction:
		return v.Coin
	case model.TransactionInput:
		return v.Coin
	case model.TransactionOutput:
		return v.Coin
	default:
		return ""
	}
}

func firstNetwork[T any](items []T) model.Network {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.Block:
		return v.Network
	case model.Transaction:
		return v.Network
	case model.TransactionInput:
		return v.Network
	case model.TransactionOutput:
		return v.Network
	default:
		return ""
	}
}
