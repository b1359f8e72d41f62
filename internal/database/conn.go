package database

import (
	"context"
	"database/sql"
	"sync"
)

// Conn is the single live handle owned by a Manager.
//
// Round-trips are serialized: one statement is in flight at a time and a
// row set is fully consumed before the next statement goes out. Every error
// is reported to the manager's fault observer after the handle is released.
//
// Exec and Query ignore the caller's cancellation. The mysql driver closes
// the socket when a context ends mid-statement, which would break the handle
// for every other caller.
type Conn struct {
	mu  sync.Mutex
	raw *sql.Conn

	observe func(*Conn, error)

	done      chan struct{}
	closeOnce sync.Once
}

func newConn(raw *sql.Conn, observe func(*Conn, error)) *Conn {
	return &Conn{
		raw:     raw,
		observe: observe,
		done:    make(chan struct{}),
	}
}

// Exec runs a statement that returns no rows.
func (c *Conn) Exec(ctx context.Context, st Statement) (sql.Result, error) {
	c.mu.Lock()
	res, err := c.raw.ExecContext(context.WithoutCancel(ctx), st.Query, st.Args...)
	c.mu.Unlock()

	c.report(err)
	return res, err
}

// Query runs st and calls scan once per row.
func (c *Conn) Query(ctx context.Context, st Statement, scan func(*sql.Rows) error) error {
	err := c.query(ctx, st, scan)
	c.report(err)
	return err
}

func (c *Conn) query(ctx context.Context, st Statement, scan func(*sql.Rows) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.raw.QueryContext(context.WithoutCancel(ctx), st.Query, st.Args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Ping checks the link.
func (c *Conn) Ping(ctx context.Context) error {
	c.mu.Lock()
	err := c.raw.PingContext(ctx)
	c.mu.Unlock()

	c.report(err)
	return err
}

// Done is closed once the handle has been torn down.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

func (c *Conn) report(err error) {
	if err != nil && c.observe != nil {
		c.observe(c, err)
	}
}

// Close releases the underlying connection. Safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.raw.Close()
	})
	return err
}
