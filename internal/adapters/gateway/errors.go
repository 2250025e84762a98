package gateway

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

const codeSQLiteBusy = "SQLITE_BUSY"

// translateError converts driver errors into *domain.BackendError so the classifier
// sees one shape whatever the driver.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var bErr *domain.BackendError
	if errors.As(err, &bErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.BackendError{Code: domain.CodeNoRows, Message: "no rows returned", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domain.BackendError{Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &domain.BackendError{Code: string(pqErr.Code), Message: pqErr.Message, Err: err}
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return &domain.BackendError{Code: sqliteCode(sqErr), Message: sqErr.Error(), Err: err}
	}

	return &domain.BackendError{Message: err.Error(), Err: err}
}

func sqliteCode(e *sqlite.Error) string {
	msg := strings.ToLower(e.Error())
	code := e.Code()

	switch {
	case strings.Contains(msg, "no such table"):
		return domain.CodeUndefinedTable
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return domain.CodeUniqueViolation
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return domain.CodeForeignKeyViolation
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "unique"):
		return domain.CodeUniqueViolation
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "foreign key"):
		return domain.CodeForeignKeyViolation
	case code&0xff == sqlite3.SQLITE_BUSY, code&0xff == sqlite3.SQLITE_LOCKED:
		return codeSQLiteBusy
	}
	return ""
}
