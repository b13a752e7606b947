package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/nhle/spacecontent/internal/apperror"
)

// classify turns a low-level error into an *apperror.AppError whose message
// describes the failed operation. Errors that are already typed pass through.
func classify(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}

	msg := fmt.Sprintf(format, args...)

	var (
		sqliteErr *sqlite.Error
		invalid   validator.ValidationErrors
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperror.WrapCode(apperror.CodeNotFound, msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.WrapCode(apperror.CodeNetworkTimeout, msg, err)
	case errors.As(err, &invalid):
		fields := make([]string, 0, len(invalid))
		for _, fe := range invalid {
			fields = append(fields, fe.Field())
		}
		return apperror.WrapCode(apperror.CodeValidation, msg, err).
			With("fields", strings.Join(fields, ","))
	case errors.As(err, &sqliteErr):
		return apperror.WrapCode(sqliteCode(sqliteErr), msg, err)
	}
	return apperror.WrapCode(apperror.CodeDatabase, msg, err)
}

func sqliteCode(err *sqlite.Error) apperror.Code {
	code := err.Code()
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return apperror.CodeAlreadyExists
	}
	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		// The primary code alone does not say which constraint failed.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.CodeAlreadyExists
		}
		return apperror.CodeDatabaseConstraint
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return apperror.CodeDatabaseUnavailable
	}
	return apperror.CodeDatabase
}

// notFoundIfNone returns a NOT_FOUND error when an UPDATE/DELETE touched no row.
func notFoundIfNone(result sql.Result, resource, id string) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
