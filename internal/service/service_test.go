package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/lib/events"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/deppfellow/starwars-api/internal/service/servicetest"
)

func requireNotFound(t *testing.T, err error, code, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, 404, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
	assert.Equal(t, message, httpErr.Message)
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := servicetest.NewUsers()
	mailer := &servicetest.Mailer{}
	pub := &servicetest.Publisher{}
	svc := service.NewUserService(repo, mailer, pub)

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		Email:    model.NewField("obiwan@jedi.org"),
		Password: model.NewField("hello there"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.IsActive)
	require.NotNil(t, user.Password)
	assert.NotEqual(t, "hello there", *user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte("hello there")))

	assert.Equal(t, []string{"obiwan@jedi.org"}, mailer.Recipients)

	require.Len(t, pub.Events, 1)
	assert.Equal(t, "user", pub.Events[0].Resource)
	assert.Equal(t, events.ActionCreated, pub.Events[0].Action)
	assert.Equal(t, int64(1), pub.Events[0].ID)
	assert.IsType(t, model.UserRecord{}, pub.Events[0].Record)
}

func TestUserServiceCreateWithoutOptionalFields(t *testing.T) {
	ctx := context.Background()
	mailer := &servicetest.Mailer{}
	svc := service.NewUserService(servicetest.NewUsers(), mailer, nil)

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{})
	require.NoError(t, err)
	assert.Nil(t, user.Email)
	assert.Nil(t, user.Password)
	assert.Empty(t, mailer.Recipients)
}

func TestUserServiceCreateRejectsLongPassword(t *testing.T) {
	svc := service.NewUserService(servicetest.NewUsers(), nil, nil)

	_, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Password: model.NewField(strings.Repeat("x", 73)),
	})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "PASSWORD_TOO_LONG", httpErr.Code)
}

func TestUserServiceSideEffectFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	mailer := &servicetest.Mailer{Err: errors.New("redis down")}
	pub := &servicetest.Publisher{Err: errors.New("kafka down")}
	svc := service.NewUserService(servicetest.NewUsers(), mailer, pub)

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{Email: model.NewField("r2@astromech.droid")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestUserServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUserService(servicetest.NewUsers(), nil, nil)

	_, err := svc.GetUser(ctx, 9)
	requireNotFound(t, err, "USER_NOT_FOUND", "User does not exist")

	_, err = svc.UpdateUser(ctx, &model.UpdateUserRequest{ID: 9, Email: model.NewField("x")})
	requireNotFound(t, err, "USER_NOT_FOUND", "User does not exist")

	_, err = svc.DeleteUser(ctx, 9)
	requireNotFound(t, err, "USER_NOT_FOUND", "User does not exist")
}

func TestUserServiceRepositoryErrorsPassThrough(t *testing.T) {
	repo := servicetest.NewUsers()
	boom := errors.New("connection reset")
	repo.FailWith(boom)
	svc := service.NewUserService(repo, nil, nil)

	_, err := svc.GetUser(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestPlanetServiceUpdateOnlyTouchesName(t *testing.T) {
	ctx := context.Background()
	pub := &servicetest.Publisher{}
	svc := service.NewPlanetService(servicetest.NewPlanets(), pub)

	created, err := svc.CreatePlanet(ctx, &model.CreatePlanetRequest{
		Name:    model.NewField("Dagobah"),
		Climate: model.NewField("murky"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePlanet(ctx, &model.UpdatePlanetRequest{ID: created.ID, Name: model.NewField("Degobah")})
	require.NoError(t, err)
	assert.Equal(t, "Degobah", *updated.Name)
	assert.Equal(t, "murky", *updated.Climate)

	unchanged, err := svc.UpdatePlanet(ctx, &model.UpdatePlanetRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Degobah", *unchanged.Name)

	cleared, err := svc.UpdatePlanet(ctx, &model.UpdatePlanetRequest{ID: created.ID, Name: model.NullField()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Name)

	require.Len(t, pub.Events, 4)
	assert.Equal(t, "planet.updated.1", pub.Events[3].Key())
}

func TestPlanetServiceDeleteReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPlanetService(servicetest.NewPlanets(), nil)

	created, err := svc.CreatePlanet(ctx, &model.CreatePlanetRequest{Name: model.NewField("Alderaan")})
	require.NoError(t, err)

	deleted, err := svc.DeletePlanet(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = svc.GetPlanet(ctx, created.ID)
	requireNotFound(t, err, "PLANET_NOT_FOUND", "Planet does not exist")

	_, err = svc.DeletePlanet(ctx, created.ID)
	requireNotFound(t, err, "PLANET_NOT_FOUND", "Planet does not exist")
}

func TestCharacterServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCharacterService(servicetest.NewCharacters(), nil)

	created, err := svc.CreateCharacter(ctx, &model.CreateCharacterRequest{
		Name:      model.NewField("Anakin Skywalker"),
		Homeworld: model.NewField("Tatooine"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCharacter(ctx, &model.UpdateCharacterRequest{
		ID:          created.ID,
		Name:        model.NewField("Darth Vader"),
		Description: model.NewField("Sith Lord"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Darth Vader", *updated.Name)
	assert.Equal(t, "Sith Lord", *updated.Description)
	assert.Equal(t, "Tatooine", *updated.Homeworld)

	_, err = svc.GetCharacter(ctx, 42)
	requireNotFound(t, err, "CHARACTER_NOT_FOUND", "Character does not exist")
}

func TestListsAreOrderedByID(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCharacterService(servicetest.NewCharacters(), nil)

	for _, name := range []string{"Han", "Leia", "Chewbacca"} {
		_, err := svc.CreateCharacter(ctx, &model.CreateCharacterRequest{Name: model.NewField(name)})
		require.NoError(t, err)
	}

	list, err := svc.ListCharacters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, ch := range list {
		assert.Equal(t, int64(i+1), ch.ID)
	}
}
