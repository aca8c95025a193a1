package sqlerr

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/starwars-api/internal/errs"
)

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - pgx.ErrNoRows: 404
//   - unavailable database or canceled query: 503
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	switch ErrCode(err) {
	case Unavailable:
		return errs.NewServiceUnavailableError("Database is unavailable, try again later")
	case QueryCanceled:
		return errs.NewServiceUnavailableError("Database took too long to respond, try again later")
	}

	return errs.NewInternalServerError()
}
