package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Dialect captures the differences between the supported SQL backends.
// Queries are written with ? placeholders and rebound per dialect.
type Dialect struct {
	Name       string
	numbered   bool   // $1, $2 ... instead of ?
	lockSuffix string // appended to SELECTs whose rows are about to be updated
}

var (
	// Postgres is used with the pgx stdlib driver.
	Postgres = Dialect{Name: "postgres", numbered: true, lockSuffix: " FOR UPDATE"}
	// SQLite serialises writers itself, so no row locks are needed.
	SQLite = Dialect{Name: "sqlite"}
)

// Rebind rewrites ? placeholders for the dialect.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// translateError maps driver failures onto the apperrors families.
func translateError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s: %s", apperrors.ErrDuplicate, msg, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s: %s", apperrors.ErrConstraintViolation, msg, pgErr.ConstraintName)
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, msg)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", apperrors.ErrConstraintViolation, msg)
		}
	}

	return apperrors.NewStoreError(msg, err)
}
