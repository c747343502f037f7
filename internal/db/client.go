package db

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// Client owns the single live connection shared by every data layer
// operation. Operations hold the connection exclusively for their whole
// duration, so a transaction never interleaves with another statement.
//
// Outside of a transaction statements run in the driver's auto-commit mode.
type Client struct {
	mu      sync.Mutex
	db      *sql.DB
	conn    *sql.Conn
	dialect Dialect
	metrics *Metrics
}

// Option configures a Client
type Option func(*Client)

// WithMetrics records every operation on m
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client with no connection. Call Establish before use.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Establish opens exactly one connection, closing any prior one first.
// Failures are marked ErrConnection and are not retried.
func (c *Client) Establish(ctx context.Context, creds Credentials) error {
	dialect, dsn, err := creds.resolve()
	if err != nil {
		return errors.Mark(err, ErrConnection)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.releaseLocked()

	db, err := sql.Open(dialect.driver, dsn)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to open database"), ErrConnection)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return errors.Mark(errors.Wrap(err, "failed to connect to database"), ErrConnection)
	}

	// Test the connection
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return errors.Mark(errors.Wrap(err, "failed to ping database"), ErrConnection)
	}

	c.db = db
	c.conn = conn
	c.dialect = dialect

	log.Debug().Str("dialect", dialect.Name).Msg("Database connection established")
	return nil
}

// Release closes the connection if one is open. It is safe to call more than
// once; close failures are logged and never returned.
func (c *Client) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
}

func (c *Client) releaseLocked() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database connection")
	}
	if err := c.db.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database handle")
	}
	c.conn = nil
	c.db = nil
	log.Debug().Str("dialect", c.dialect.Name).Msg("Database connection released")
}

// Connected reports whether Establish succeeded and Release was not called since
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Dialect returns the dialect of the current connection
func (c *Client) Dialect() Dialect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialect
}

// requireConnected fails with an assertion error when there is no connection
func (c *Client) requireConnected() error {
	if c.conn == nil {
		return errors.Mark(
			errors.AssertionFailedf("database connection not established: call Establish first"),
			ErrNotConnected,
		)
	}
	return nil
}

// with runs fn with sole use of the connection and records the outcome
func (c *Client) with(operation string, fn func(conn *sql.Conn, d Dialect) error) (err error) {
	start := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		c.metrics.observe(operation, start, err)
		if err != nil {
			log.Debug().Err(err).Str("operation", operation).Msg("Operation failed")
		}
	}()

	if err := c.requireConnected(); err != nil {
		return err
	}
	return fn(c.conn, c.dialect)
}
