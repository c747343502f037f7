package db

import (
	"database/sql"
	"database/sql/driver"

	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrConnection means the connection could not be established or was lost
	ErrConnection = errors.New("connection error")

	// ErrNotConnected is returned when an operation runs before Establish or
	// after Release. It is always an assertion failure.
	ErrNotConnected = errors.New("database connection not established")

	// ErrValidation means the caller supplied a disallowed field or a malformed
	// value. Nothing was sent to the database.
	ErrValidation = errors.New("validation error")

	// ErrNotFound means a targeted mutation affected zero rows
	ErrNotFound = errors.New("not found")

	// ErrDatabase covers every other failure reported by the database
	ErrDatabase = errors.New("database error")

	// ErrDuplicate marks a DbError caused by a unique or primary key violation
	ErrDuplicate = errors.New("duplicate value")
)

// validationErrorf builds an ErrValidation error
func validationErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

// notFoundf builds an ErrNotFound error
func notFoundf(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// dbError wraps err with context and marks it as a DbError. Unique and
// primary key violations are also marked ErrDuplicate, a dropped connection
// ErrConnection.
func dbError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Mark(errors.Wrapf(err, format, args...), ErrDatabase)
	if IsUniqueViolationError(err) {
		wrapped = errors.Mark(wrapped, ErrDuplicate)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		wrapped = errors.Mark(wrapped, ErrConnection)
	}
	return wrapped
}

// IsUniqueViolationError reports whether err is a unique or primary key
// violation from any supported driver
func IsUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}

	return false
}
