package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// Fault is the class of a store error as seen by the connection manager.
type Fault int

const (
	// FaultNone is an ordinary statement error. The link is fine.
	FaultNone Fault = iota
	// FaultConnectionLost means the handle is dead and must be replaced.
	FaultConnectionLost
	// FaultFatal is a store fault the manager cannot recover from.
	FaultFatal
)

func (f Fault) String() string {
	switch f {
	case FaultConnectionLost:
		return "connection_lost"
	case FaultFatal:
		return "fatal"
	}
	return "none"
}

// MySQL server error numbers the service cares about.
const (
	erDupEntry        = 1062
	erServerShutdown  = 1053
	erServerGone      = 2006
	erServerLost      = 2013
	erConnKilled      = 1927
	erClientInterrupt = 4031
)

// ClassifyFault sorts err into a Fault.
func ClassifyFault(err error) Fault {
	if err == nil {
		return FaultNone
	}

	// context.DeadlineExceeded also satisfies net.Error, so it goes first.
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, sql.ErrTxDone) {
		return FaultNone
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return FaultConnectionLost
	}

	if errors.Is(err, mysql.ErrMalformPkt) ||
		errors.Is(err, mysql.ErrPktSync) ||
		errors.Is(err, mysql.ErrPktSyncMul) ||
		errors.Is(err, mysql.ErrPktTooLarge) ||
		errors.Is(err, mysql.ErrBusyBuffer) {
		return FaultFatal
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erServerShutdown, erServerGone, erServerLost, erConnKilled, erClientInterrupt:
			return FaultConnectionLost
		}
		return FaultNone
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FaultConnectionLost
	}

	return FaultNone
}

// IsUniqueViolation reports whether err is a duplicate key error.
func IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erDupEntry
}
