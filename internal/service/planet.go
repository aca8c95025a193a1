package service

import (
	"context"

	"github.com/deppfellow/starwars-api/internal/lib/events"
	"github.com/deppfellow/starwars-api/internal/model"
)

type PlanetRepository interface {
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	CreatePlanet(ctx context.Context, p *model.Planet) (*model.Planet, error)
	GetPlanetByID(ctx context.Context, id int64) (*model.Planet, error)
	UpdatePlanet(ctx context.Context, id int64, params model.UpdatePlanetParams) (*model.Planet, error)
	DeletePlanet(ctx context.Context, id int64) (*model.Planet, error)
}

type PlanetService struct {
	repo      PlanetRepository
	publisher EventPublisher
}

func NewPlanetService(repo PlanetRepository, publisher EventPublisher) *PlanetService {
	return &PlanetService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *PlanetService) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	return s.repo.ListPlanets(ctx)
}

func (s *PlanetService) CreatePlanet(ctx context.Context, req *model.CreatePlanetRequest) (*model.Planet, error) {
	planet, err := s.repo.CreatePlanet(ctx, req.Planet())
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, planetResource, events.ActionCreated, planet.ID, planet.Serialize())

	return planet, nil
}

func (s *PlanetService) GetPlanet(ctx context.Context, id int64) (*model.Planet, error) {
	planet, err := s.repo.GetPlanetByID(ctx, id)
	if err != nil {
		return nil, planetResource.notFound(err)
	}
	return planet, nil
}

func (s *PlanetService) UpdatePlanet(ctx context.Context, req *model.UpdatePlanetRequest) (*model.Planet, error) {
	planet, err := s.repo.UpdatePlanet(ctx, req.ID, model.UpdatePlanetParams{Name: req.Name})
	if err != nil {
		return nil, planetResource.notFound(err)
	}

	publish(ctx, s.publisher, planetResource, events.ActionUpdated, planet.ID, planet.Serialize())

	return planet, nil
}

func (s *PlanetService) DeletePlanet(ctx context.Context, id int64) (*model.Planet, error) {
	planet, err := s.repo.DeletePlanet(ctx, id)
	if err != nil {
		return nil, planetResource.notFound(err)
	}

	publish(ctx, s.publisher, planetResource, events.ActionDeleted, planet.ID, planet.Serialize())

	return planet, nil
}
