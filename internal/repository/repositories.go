package repository

import (
	"github.com/deppfellow/starwars-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users      *UserRepository
	Planets    *PlanetRepository
	Characters *CharacterRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(s.DB.Pool),
		Planets:    NewPlanetRepository(s.DB.Pool),
		Characters: NewCharacterRepository(s.DB.Pool),
	}
}
