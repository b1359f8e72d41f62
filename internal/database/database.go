package database

import (
	"context"
	"database/sql"
	"net"
	"strconv"
	"sync"

	"github.com/go-sql-driver/mysql"
)

// Config holds the MySQL connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DSN builds the driver connection string.
func (c Config) DSN() string {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.User = c.User
	mc.Passwd = c.Password
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// MySQLDialer hands out one dedicated MySQL connection at a time.
//
// It keeps a *sql.DB capped at a single open connection with no idle pool,
// so closing the handle really closes the socket and the next Dial opens a
// fresh one.
type MySQLDialer struct {
	dsn string

	once    sync.Once
	db      *sql.DB
	openErr error
}

func NewMySQLDialer(dsn string) *MySQLDialer {
	return &MySQLDialer{dsn: dsn}
}

// Dial opens the connection and verifies it with a ping.
func (d *MySQLDialer) Dial(ctx context.Context) (*sql.Conn, error) {
	db, err := d.pool()
	if err != nil {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func (d *MySQLDialer) pool() (*sql.DB, error) {
	d.once.Do(func() {
		db, err := sql.Open("mysql", d.dsn)
		if err != nil {
			d.openErr = err
			return
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(0)
		d.db = db
	})
	return d.db, d.openErr
}

// Close releases the driver pool. Call after the Manager is closed.
func (d *MySQLDialer) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}
