package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Errors raised by multi-step writes that check state inside a transaction.
var (
	ErrCapacityReached = errors.New("capacity reached")
	ErrStopNotOnRoute  = errors.New("stop does not belong to route")
	ErrNoCopies        = errors.New("no copies available")
	ErrAlreadyClosed   = errors.New("record already closed")
	ErrStateChanged    = errors.New("record is no longer in the expected state")
)

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
