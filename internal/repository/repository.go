// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/starwars-api/internal/model"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// assignment is one "column = value" pair of a partial UPDATE.
type assignment struct {
	column string
	value  model.Field
}

// buildUpdate renders an UPDATE touching only the assignments whose field
// was present in the request. ok is false when nothing would change.
func buildUpdate(table, returning string, id int64, assignments []assignment) (sql string, args []any, ok bool) {
	sets := make([]string, 0, len(assignments))
	args = make([]any, 0, len(assignments)+1)

	for _, a := range assignments {
		if !a.value.Set {
			continue
		}
		args = append(args, a.value.Ptr())
		sets = append(sets, fmt.Sprintf("%s = $%d", a.column, len(args)))
	}

	if len(sets) == 0 {
		return "", nil, false
	}

	args = append(args, id)
	sql = fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(sets, ", "), len(args), returning,
	)

	return sql, args, true
}

// notFound adds the operation, table and id to a lookup error, keeping
// pgx.ErrNoRows matchable.
func notFound(op, table string, id int64, err error) error {
	return fmt.Errorf("%s id=%d table:%s: %w", op, id, table, err)
}
