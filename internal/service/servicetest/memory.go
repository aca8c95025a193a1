// Package servicetest provides in-memory repositories and recording side
// effect sinks for exercising services and handlers without Postgres,
// Redis or Kafka.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/starwars-api/internal/lib/events"
	"github.com/deppfellow/starwars-api/internal/model"
)

// table mimics a bigserial-keyed table: ids start at 1 and are never reused.
type table[T any] struct {
	mu     sync.Mutex
	name   string
	rows   map[int64]T
	nextID int64
	err    error
}

func newTable[T any](name string) *table[T] {
	return &table[T]{name: name, rows: make(map[int64]T)}
}

func (t *table[T]) list() ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return nil, t.err
	}

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (t *table[T]) insert(row T, setID func(*T, int64)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return nil, t.err
	}

	t.nextID++
	setID(&row, t.nextID)
	t.rows[t.nextID] = row
	return &row, nil
}

func (t *table[T]) get(id int64) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return nil, t.err
	}

	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("get id=%d table:%s: %w", id, t.name, pgx.ErrNoRows)
	}
	return &row, nil
}

func (t *table[T]) update(id int64, apply func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return nil, t.err
	}

	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("update id=%d table:%s: %w", id, t.name, pgx.ErrNoRows)
	}
	apply(&row)
	t.rows[id] = row
	return &row, nil
}

func (t *table[T]) delete(id int64) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return nil, t.err
	}

	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("delete id=%d table:%s: %w", id, t.name, pgx.ErrNoRows)
	}
	delete(t.rows, id)
	return &row, nil
}

// FailWith makes every subsequent call on the table return err.
func (t *table[T]) FailWith(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

func assign(dst **string, f model.Field) {
	if f.Set {
		*dst = f.Ptr()
	}
}

type Users struct{ *table[model.User] }

func NewUsers() *Users { return &Users{newTable[model.User]("users")} }

func (r *Users) ListUsers(context.Context) ([]model.User, error) { return r.list() }

func (r *Users) CreateUser(_ context.Context, p model.CreateUserParams) (*model.User, error) {
	return r.insert(model.User{Email: p.Email, Password: p.PasswordHash, IsActive: p.IsActive},
		func(u *model.User, id int64) { u.ID = id })
}

func (r *Users) GetUserByID(_ context.Context, id int64) (*model.User, error) { return r.get(id) }

func (r *Users) UpdateUser(_ context.Context, id int64, p model.UpdateUserParams) (*model.User, error) {
	return r.update(id, func(u *model.User) { assign(&u.Email, p.Email) })
}

func (r *Users) DeleteUser(_ context.Context, id int64) (*model.User, error) { return r.delete(id) }

type Planets struct{ *table[model.Planet] }

func NewPlanets() *Planets { return &Planets{newTable[model.Planet]("planets")} }

func (r *Planets) ListPlanets(context.Context) ([]model.Planet, error) { return r.list() }

func (r *Planets) CreatePlanet(_ context.Context, p *model.Planet) (*model.Planet, error) {
	return r.insert(*p, func(p *model.Planet, id int64) { p.ID = id })
}

func (r *Planets) GetPlanetByID(_ context.Context, id int64) (*model.Planet, error) {
	return r.get(id)
}

func (r *Planets) UpdatePlanet(_ context.Context, id int64, p model.UpdatePlanetParams) (*model.Planet, error) {
	return r.update(id, func(pl *model.Planet) { assign(&pl.Name, p.Name) })
}

func (r *Planets) DeletePlanet(_ context.Context, id int64) (*model.Planet, error) {
	return r.delete(id)
}

type Characters struct{ *table[model.Character] }

func NewCharacters() *Characters { return &Characters{newTable[model.Character]("characters")} }

func (r *Characters) ListCharacters(context.Context) ([]model.Character, error) { return r.list() }

func (r *Characters) CreateCharacter(_ context.Context, ch *model.Character) (*model.Character, error) {
	return r.insert(*ch, func(ch *model.Character, id int64) { ch.ID = id })
}

func (r *Characters) GetCharacterByID(_ context.Context, id int64) (*model.Character, error) {
	return r.get(id)
}

func (r *Characters) UpdateCharacter(_ context.Context, id int64, p model.UpdateCharacterParams) (*model.Character, error) {
	return r.update(id, func(ch *model.Character) {
		assign(&ch.Name, p.Name)
		assign(&ch.Description, p.Description)
	})
}

func (r *Characters) DeleteCharacter(_ context.Context, id int64) (*model.Character, error) {
	return r.delete(id)
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	Events []events.Event
	Err    error
}

func (p *Publisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, evt)
	return nil
}

// Mailer records welcome email recipients.
type Mailer struct {
	mu         sync.Mutex
	Recipients []string
	Err        error
}

func (m *Mailer) EnqueueWelcomeEmail(_ context.Context, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Recipients = append(m.Recipients, to)
	return nil
}
