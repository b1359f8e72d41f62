package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestClassifyFault(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Fault
	}{
		{"nil", nil, FaultNone},
		{"no rows", sql.ErrNoRows, FaultNone},
		{"canceled", context.Canceled, FaultNone},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), FaultNone},
		{"syntax error", &mysql.MySQLError{Number: 1064, Message: "syntax"}, FaultNone},
		{"duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, FaultNone},
		{"unknown", errors.New("boom"), FaultNone},
		{"bad conn", driver.ErrBadConn, FaultConnectionLost},
		{"conn done", sql.ErrConnDone, FaultConnectionLost},
		{"invalid conn", mysql.ErrInvalidConn, FaultConnectionLost},
		{"eof", io.EOF, FaultConnectionLost},
		{"reset", &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, FaultConnectionLost},
		{"server gone", &mysql.MySQLError{Number: 2006, Message: "MySQL server has gone away"}, FaultConnectionLost},
		{"shutdown", &mysql.MySQLError{Number: 1053, Message: "Server shutdown in progress"}, FaultConnectionLost},
		{"malformed packet", mysql.ErrMalformPkt, FaultFatal},
		{"packet sync", fmt.Errorf("read: %w", mysql.ErrPktSync), FaultFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFault(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1064}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
	assert.False(t, IsUniqueViolation(nil))
}
