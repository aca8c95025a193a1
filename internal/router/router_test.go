package router_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/config"
	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/deppfellow/starwars-api/internal/lib/events"
	"github.com/deppfellow/starwars-api/internal/logger"
	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/router"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/deppfellow/starwars-api/internal/service/servicetest"
)

type testApp struct {
	echo       *echo.Echo
	users      *servicetest.Users
	planets    *servicetest.Planets
	characters *servicetest.Characters
	mailer     *servicetest.Mailer
	publisher  *servicetest.Publisher
}

func newTestApp(t *testing.T, configure ...func(*config.Config)) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.RateLimit = 0
	for _, fn := range configure {
		fn(cfg)
	}

	log := zerolog.Nop()
	srv := &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
	}

	app := &testApp{
		users:      servicetest.NewUsers(),
		planets:    servicetest.NewPlanets(),
		characters: servicetest.NewCharacters(),
		mailer:     &servicetest.Mailer{},
		publisher:  &servicetest.Publisher{},
	}

	services := &service.Services{
		Users:      service.NewUserService(app.users, app.mailer, app.publisher),
		Planets:    service.NewPlanetService(app.planets, app.publisher),
		Characters: service.NewCharacterService(app.characters, app.publisher),
	}

	app.echo = router.NewRouter(srv, handler.NewHandlers(srv, services))
	return app
}

func (a *testApp) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func results(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()

	res, ok := body["results"].(map[string]any)
	require.True(t, ok, "results missing in %v", body)
	record, ok := res[key].(map[string]any)
	require.True(t, ok, "%s missing in %v", key, res)
	return record
}

func TestListEmptyResources(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		path    string
		key     string
		message string
	}{
		{"/users", "users", "Users List"},
		{"/planets", "planets", "Planets List"},
		{"/characters", "characters", "Characters List"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			rec, body := app.do(t, http.MethodGet, tc.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.message, body["message"])

			res, ok := body["results"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, []any{}, res[tc.key])
		})
	}
}

func TestPlanetLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/planets",
		`{"name":"Tatooine","diameter":10465,"climate":"arid","population":"200000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Planet created", body["message"])

	planet := results(t, body, "planet")
	assert.Equal(t, float64(1), planet["id"])
	assert.Equal(t, "Tatooine", planet["name"])
	assert.Equal(t, "10465", planet["diameter"])
	assert.Equal(t, "arid", planet["climate"])
	assert.Nil(t, planet["gravity"])
	assert.Contains(t, planet, "surface_water")

	rec, body = app.do(t, http.MethodGet, "/planets/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Planet found", body["message"])
	assert.Equal(t, "Tatooine", results(t, body, "planet")["name"])

	rec, body = app.do(t, http.MethodPut, "/planets/1", `{"name":"Tatooine II","climate":"wet"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Planet updated", body["message"])
	updated := results(t, body, "planet")
	assert.Equal(t, "Tatooine II", updated["name"])
	assert.Equal(t, "arid", updated["climate"], "climate is not updatable")

	rec, body = app.do(t, http.MethodDelete, "/planets/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Planet removed", body["message"])
	assert.Equal(t, "Tatooine II", results(t, body, "planet")["name"])

	rec, body = app.do(t, http.MethodGet, "/planets/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Planet does not exist", body["message"])
	assert.Equal(t, "PLANET_NOT_FOUND", body["code"])

	actions := make([]events.Action, 0, len(app.publisher.Events))
	for _, evt := range app.publisher.Events {
		assert.Equal(t, "planet", evt.Resource)
		actions = append(actions, evt.Action)
	}
	assert.Equal(t, []events.Action{events.ActionCreated, events.ActionUpdated, events.ActionDeleted}, actions)
}

func TestDeleteThenFetchIsNotFound(t *testing.T) {
	cases := []struct {
		collection string
		key        string
		body       string
		display    string
	}{
		{"users", "user", `{"email":"lando@bespin.city"}`, "User"},
		{"planets", "planet", `{"name":"Bespin"}`, "Planet"},
		{"characters", "character", `{"name":"Luke","homeworld":"Tatooine"}`, "Character"},
	}

	for _, tc := range cases {
		t.Run(tc.collection, func(t *testing.T) {
			app := newTestApp(t)

			rec, body := app.do(t, http.MethodPost, "/"+tc.collection, tc.body)
			require.Equal(t, http.StatusOK, rec.Code)
			created := results(t, body, tc.key)

			path := fmt.Sprintf("/%s/%v", tc.collection, created["id"])

			rec, body = app.do(t, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.display+" found", body["message"])

			rec, body = app.do(t, http.MethodDelete, path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.display+" removed", body["message"])
			assert.Equal(t, created, results(t, body, tc.key))

			rec, body = app.do(t, http.MethodGet, path, "")
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tc.display+" does not exist", body["message"])

			rec, _ = app.do(t, http.MethodDelete, path, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec, body = app.do(t, http.MethodGet, "/"+tc.collection, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []any{}, body["results"].(map[string]any)[tc.collection])
		})
	}
}

func TestHugeNumbersStoredVerbatim(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/planets", `{"name":"Big","population":1e400}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1e400", results(t, body, "planet")["population"])
}

func TestUserNeverExposesPassword(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/users", `{"email":"leia@rebellion.org","password":"alderaan"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User created", body["message"])

	user := results(t, body, "user")
	assert.Equal(t, "leia@rebellion.org", user["email"])
	assert.Equal(t, true, user["is_active"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, rec.Body.String(), "alderaan")

	rec, body = app.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["results"].(map[string]any)["users"].([]any)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "password")

	assert.Equal(t, []string{"leia@rebellion.org"}, app.mailer.Recipients)
}

func TestUserUpdateNullClearsEmail(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, http.MethodPost, "/users", `{"email":"han@falcon.space"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := app.do(t, http.MethodPut, "/users/1", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "han@falcon.space", results(t, body, "user")["email"])

	rec, body = app.do(t, http.MethodPut, "/users/1", `{"email":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, results(t, body, "user")["email"])
}

func TestCharacterUpdateNameAndDescription(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, http.MethodPost, "/characters",
		`{"name":"Luke","description":"farm boy","height":172,"homeworld":"Tatooine"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := app.do(t, http.MethodPut, "/characters/1",
		`{"name":"Luke Skywalker","description":"Jedi Knight","height":"180"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Character updated", body["message"])

	character := results(t, body, "character")
	assert.Equal(t, "Luke Skywalker", character["name"])
	assert.Equal(t, "Jedi Knight", character["description"])
	assert.Equal(t, "172", character["height"])
	assert.Equal(t, "Tatooine", character["homeworld"])
}

func TestMissingRowsReturnNotFound(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		method  string
		path    string
		body    string
		message string
		code    string
	}{
		{http.MethodGet, "/users/42", "", "User does not exist", "USER_NOT_FOUND"},
		{http.MethodPut, "/users/42", `{"email":"x@y.z"}`, "User does not exist", "USER_NOT_FOUND"},
		{http.MethodDelete, "/users/42", "", "User does not exist", "USER_NOT_FOUND"},
		{http.MethodGet, "/planets/42", "", "Planet does not exist", "PLANET_NOT_FOUND"},
		{http.MethodDelete, "/planets/42", "", "Planet does not exist", "PLANET_NOT_FOUND"},
		{http.MethodGet, "/characters/42", "", "Character does not exist", "CHARACTER_NOT_FOUND"},
		{http.MethodPut, "/characters/42", `{"name":"Rey"}`, "Character does not exist", "CHARACTER_NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec, body := app.do(t, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tc.message, body["message"])
			assert.Equal(t, tc.code, body["code"])
			assert.NotContains(t, body, "results")
		})
	}

	assert.Empty(t, app.publisher.Events)
}

func TestBadRequests(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name    string
		method  string
		path    string
		body    string
		message string
	}{
		{"non numeric id", http.MethodGet, "/planets/abc", "", "Validation failed"},
		{"zero id", http.MethodGet, "/planets/0", "", "Validation failed"},
		{"negative id", http.MethodDelete, "/users/-3", "", "Validation failed"},
		{"malformed json", http.MethodPost, "/planets", `{"name":`, "Invalid request body"},
		{"object attribute", http.MethodPost, "/characters", `{"name":{"first":"Leia"}}`, "Invalid request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := app.do(t, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, body["message"])
			assert.Equal(t, "BAD_REQUEST", body["code"])
		})
	}
}

func TestNonJSONBodyRejected(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/planets", strings.NewReader("name=Hoth"))
	req.Header.Set(echo.HeaderContentType, "text/plain")
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request body must be JSON")
}

func TestTrailingSlashIsIgnored(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/planets/", `{"name":"Hoth"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Planet created", body["message"])

	rec, body = app.do(t, http.MethodGet, "/planets/1/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hoth", results(t, body, "planet")["name"])
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodGet, "/starships", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", body["message"])
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	app := newTestApp(t)
	app.planets.FailWith(errors.New("connection reset by peer"))

	rec, body := app.do(t, http.MethodGet, "/planets", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestRequestIDRoundTrip(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))

	rec, _ = app.do(t, http.MethodGet, "/users", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimitRejectsBurst(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
		cfg.Server.RateBurst = 2
	})

	for range 2 {
		rec, _ := app.do(t, http.MethodGet, "/users", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := app.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests, slow down", body["message"])
}

func TestDocsAndSpecAreServed(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec, _ = app.do(t, http.MethodGet, "/static/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/planets/{id}"`)
}
