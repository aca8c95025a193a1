// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/lib/events"
)

// EventPublisher is implemented by *events.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, evt events.Event) error
}

// WelcomeMailer is implemented by *job.JobService.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to string) error
}

// resource names an entity in events and client-facing errors.
type resource struct {
	name    string // "planet"
	display string // "Planet"
	code    string // "PLANET_NOT_FOUND"
}

func newResource(name string) resource {
	return resource{
		name:    name,
		display: cases.Title(language.English).String(name),
		code:    strings.ToUpper(name) + "_NOT_FOUND",
	}
}

var (
	userResource      = newResource("user")
	planetResource    = newResource("planet")
	characterResource = newResource("character")
)

// notFound maps a missing row to "<Resource> does not exist" with code
// <RESOURCE>_NOT_FOUND. Other errors pass through untouched.
func (r resource) notFound(err error) error {
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	code := r.code
	return errs.NewNotFoundError(r.display+" does not exist", true, &code)
}

// publish emits a change event. Failures are logged and never surface to
// the client: the mutation is already committed.
func publish(ctx context.Context, publisher EventPublisher, r resource, action events.Action, id int64, record any) {
	if publisher == nil {
		return
	}

	err := publisher.Publish(ctx, events.Event{
		Resource: r.name,
		Action:   action,
		ID:       id,
		Record:   record,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("resource", r.name).
			Str("action", string(action)).
			Int64("id", id).
			Msg("failed to publish change event")
	}
}
