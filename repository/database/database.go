package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Querier runs parameterized statements.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Conn is a single acquired connection. Callers must Close it on every path;
// Close is safe to call more than once.
type Conn interface {
	Querier
	Close() error
}

type Gateway interface {
	Open(ctx context.Context) (Conn, error)
}

type SQL struct {
	db *sqlx.DB
}

func NewGateway(db *sqlx.DB) Gateway {
	return &SQL{db: db}
}

func (s *SQL) Open(ctx context.Context) (Conn, error) {
	c, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return &conn{conn: c}, nil
}

type conn struct {
	conn      *sqlx.Conn
	closeOnce sync.Once
	closeErr  error
}

func (c *conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := c.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	return res, nil
}

func (c *conn) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return wrapError(c.conn.GetContext(ctx, dest, query, args...))
}

func (c *conn) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return wrapError(c.conn.SelectContext(ctx, dest, query, args...))
}

func (c *conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
