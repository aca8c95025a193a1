// Package handler is the HTTP entry point for business logic after the
// router.
//
// It binds and validates requests through the validation package, calls
// the service layer, and shapes the response envelope.
package handler

import (
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Users      *UserHandler
	Planets    *PlanetHandler
	Characters *CharacterHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Users:      NewUserHandler(s, services.Users),
		Planets:    NewPlanetHandler(s, services.Planets),
		Characters: NewCharacterHandler(s, services.Characters),
	}
}
