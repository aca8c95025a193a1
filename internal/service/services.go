package service

import (
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
)

type Services struct {
	Users      *UserService
	Planets    *PlanetService
	Characters *CharacterService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	// A nil *job.JobService must not become a non-nil interface.
	var mailer WelcomeMailer
	if s.Job != nil {
		mailer = s.Job
	}

	var publisher EventPublisher
	if s.Events.Enabled() {
		publisher = s.Events
	}

	return &Services{
		Users:      NewUserService(repos.Users, mailer, publisher),
		Planets:    NewPlanetService(repos.Planets, publisher),
		Characters: NewCharacterService(repos.Characters, publisher),
	}
}
