package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrConnection is returned when no connection to the database can be used.
	ErrConnection = errors.New("database: connection failed")
	// ErrQuery is returned when a statement is rejected by the database.
	ErrQuery = errors.New("database: query failed")
	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("database: duplicate entry")
)

// mysql ER_DUP_ENTRY
const errDupEntry = 1062

const uniqueKeyPrefix = "uq_users_"

// DuplicateKeyError reports which unique column a write collided on.
type DuplicateKeyError struct {
	Column string
	Err    error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("database: duplicate entry for %q: %v", e.Column, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicate
}

func wrapError(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDupEntry {
		return &DuplicateKeyError{Column: duplicateColumn(myErr.Message), Err: err}
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return fmt.Errorf("%w: %w", ErrQuery, err)
}

// duplicateColumn extracts the column from a message like
// "Duplicate entry 'a@x.com' for key 'users.uq_users_email'".
func duplicateColumn(msg string) string {
	idx := strings.LastIndex(msg, "for key '")
	if idx < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[idx+len("for key '"):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return strings.TrimPrefix(key, uniqueKeyPrefix)
}
