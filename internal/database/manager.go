package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/01moynul/flowershop-golang/internal/logging"
)

const (
	// ConnectionRetryTimeout is the constant wait between connection attempts.
	ConnectionRetryTimeout = 3000 * time.Millisecond
	// DefaultPingInterval is how often an idle live handle is checked.
	DefaultPingInterval = 30 * time.Second
)

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("database: connection manager closed")

// State is the lifecycle state of the managed handle.
type State int

const (
	StateUninitialized State = iota // no handle has been requested yet
	StateConnecting                 // first establishment cycle running
	StateLive                       // handle available
	StateFaulted                    // handle lost, re-establishment running
	StateClosed                     // manager shut down
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnecting:
		return "connecting"
	case StateLive:
		return "live"
	case StateFaulted:
		return "faulted"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Dialer opens one dedicated store connection.
type Dialer interface {
	Dial(ctx context.Context) (*sql.Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context) (*sql.Conn, error)

func (f DialerFunc) Dial(ctx context.Context) (*sql.Conn, error) { return f(ctx) }

// Options tune a Manager. Zero values pick the defaults.
type Options struct {
	RetryInterval time.Duration // default ConnectionRetryTimeout
	PingInterval  time.Duration // default DefaultPingInterval, negative disables
	Logger        logging.Logger
	// OnFatal receives faults that are not a lost link. The default logs and
	// exits the process.
	OnFatal func(error)
}

// Manager owns the process's single store connection.
//
// The handle is established lazily on the first Acquire. A failed attempt
// is retried every RetryInterval for as long as the manager is open, and all
// callers waiting on the same cycle get the same handle. When the fault
// observer sees the link drop, the handle is discarded and a new cycle starts
// in the background.
type Manager struct {
	dialer Dialer
	opts   Options
	log    logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	state State
	conn  *Conn
	ready chan struct{} // non-nil while a cycle is in flight; closed when it ends
}

func NewManager(dialer Dialer, opts Options) *Manager {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = ConnectionRetryTimeout
	}
	if opts.PingInterval == 0 {
		opts.PingInterval = DefaultPingInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	m := &Manager{
		dialer: dialer,
		opts:   opts,
		log:    opts.Logger.With("component", "database"),
	}
	if m.opts.OnFatal == nil {
		m.opts.OnFatal = m.exitOnFatal
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Acquire returns the live handle, waiting for an establishment cycle if
// there is none. It only fails when ctx is done or the manager is closed.
func (m *Manager) Acquire(ctx context.Context) (*Conn, error) {
	for {
		m.mu.Lock()
		switch {
		case m.state == StateLive:
			c := m.conn
			m.mu.Unlock()
			return c, nil
		case m.state == StateClosed:
			m.mu.Unlock()
			return nil, ErrClosed
		case m.ready == nil:
			m.startLocked()
		}
		ready := m.ready
		m.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close stops any running cycle and tears the handle down.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return nil
	}
	m.state = StateClosed
	c := m.conn
	m.conn = nil
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()

	if c != nil {
		return c.Close()
	}
	return nil
}

func (m *Manager) startLocked() {
	if m.state == StateUninitialized {
		m.state = StateConnecting
	}
	ready := make(chan struct{})
	m.ready = ready

	m.wg.Add(1)
	go m.establish(ready)
}

func (m *Manager) establish(ready chan struct{}) {
	defer m.wg.Done()

	for attempt := 1; ; attempt++ {
		raw, err := m.dialer.Dial(m.ctx)
		if err == nil {
			m.publish(raw, ready, attempt)
			return
		}
		if m.ctx.Err() != nil {
			m.abandon(ready)
			return
		}

		m.log.Error(m.ctx, "database connection failed, retrying",
			"error", err, "attempt", attempt, "retry_in", m.opts.RetryInterval)

		t := time.NewTimer(m.opts.RetryInterval)
		select {
		case <-m.ctx.Done():
			t.Stop()
			m.abandon(ready)
			return
		case <-t.C:
		}
	}
}

func (m *Manager) publish(raw *sql.Conn, ready chan struct{}, attempt int) {
	m.mu.Lock()
	if m.state == StateClosed {
		m.ready = nil
		close(ready)
		m.mu.Unlock()
		_ = raw.Close()
		return
	}

	c := newConn(raw, m.observe)
	m.conn = c
	m.state = StateLive
	m.ready = nil
	close(ready)
	m.mu.Unlock()

	m.log.Info(m.ctx, "database connection established", "attempt", attempt)

	if m.opts.PingInterval > 0 {
		m.wg.Add(1)
		go m.keepalive(c)
	}
}

func (m *Manager) abandon(ready chan struct{}) {
	m.mu.Lock()
	m.ready = nil
	close(ready)
	m.mu.Unlock()
}

// observe is the fault observer registered on every handle.
func (m *Manager) observe(c *Conn, err error) {
	switch ClassifyFault(err) {
	case FaultNone:
		return
	case FaultFatal:
		m.log.Error(m.ctx, "fatal database fault", "error", err)
		m.opts.OnFatal(err)
		return
	}

	m.mu.Lock()
	if m.conn != c || m.state == StateClosed {
		// Already replaced by an earlier report.
		m.mu.Unlock()
		return
	}
	m.conn = nil
	m.state = StateFaulted
	m.startLocked()
	m.wg.Add(1)
	m.mu.Unlock()

	m.log.Warn(m.ctx, "database connection lost, reconnecting", "error", err)

	// Close waits for in-flight users of the old handle.
	go func() {
		defer m.wg.Done()
		_ = c.Close()
	}()
}

func (m *Manager) keepalive(c *Conn) {
	defer m.wg.Done()

	t := time.NewTicker(m.opts.PingInterval)
	defer t.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-c.Done():
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(m.ctx, m.opts.PingInterval)
			err := c.Ping(ctx)
			cancel()
			// A ping that never answered means the link is gone.
			if errors.Is(err, context.DeadlineExceeded) && m.ctx.Err() == nil {
				m.observe(c, driver.ErrBadConn)
			}
		}
	}
}

func (m *Manager) exitOnFatal(err error) {
	m.log.Error(context.Background(), "shutting down on fatal database fault", "error", err)
	os.Exit(1)
}
