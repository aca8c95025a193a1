// Package sqlerr converts database driver errors into API errors.
//
// Every resource column is nullable, unconstrained text, so constraint
// violations cannot occur. What reaches this package is a missing row, an
// unavailable database or a query that ran out of time.
package sqlerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a coarse classification of a database failure.
type Code string

const (
	Other         Code = "other"
	Unavailable   Code = "unavailable"
	QueryCanceled Code = "query_canceled"
)

// sqlStates maps the SQLSTATE codes a healthy schema can still produce.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
var sqlStates = map[string]Code{
	"08000": Unavailable, // connection_exception
	"08003": Unavailable, // connection_does_not_exist
	"08006": Unavailable, // connection_failure
	"53300": Unavailable, // too_many_connections
	"57P01": Unavailable, // admin_shutdown
	"57P03": Unavailable, // cannot_connect_now
	"57014": QueryCanceled,
}

// MapCode converts a SQLSTATE into a Code.
func MapCode(sqlState string) Code {
	if code, ok := sqlStates[sqlState]; ok {
		return code
	}
	return Other
}

// ErrCode classifies err. Server errors are mapped by SQLSTATE; a deadline
// hit on the client side of the connection counts as QueryCanceled.
func ErrCode(err error) Code {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	if pgconn.Timeout(err) {
		return QueryCanceled
	}

	return Other
}
