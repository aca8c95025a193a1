package service

import (
	"context"

	"github.com/deppfellow/starwars-api/internal/lib/events"
	"github.com/deppfellow/starwars-api/internal/model"
)

type CharacterRepository interface {
	ListCharacters(ctx context.Context) ([]model.Character, error)
	CreateCharacter(ctx context.Context, ch *model.Character) (*model.Character, error)
	GetCharacterByID(ctx context.Context, id int64) (*model.Character, error)
	UpdateCharacter(ctx context.Context, id int64, params model.UpdateCharacterParams) (*model.Character, error)
	DeleteCharacter(ctx context.Context, id int64) (*model.Character, error)
}

type CharacterService struct {
	repo      CharacterRepository
	publisher EventPublisher
}

func NewCharacterService(repo CharacterRepository, publisher EventPublisher) *CharacterService {
	return &CharacterService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *CharacterService) ListCharacters(ctx context.Context) ([]model.Character, error) {
	return s.repo.ListCharacters(ctx)
}

func (s *CharacterService) CreateCharacter(ctx context.Context, req *model.CreateCharacterRequest) (*model.Character, error) {
	character, err := s.repo.CreateCharacter(ctx, req.Character())
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, characterResource, events.ActionCreated, character.ID, character.Serialize())

	return character, nil
}

func (s *CharacterService) GetCharacter(ctx context.Context, id int64) (*model.Character, error) {
	character, err := s.repo.GetCharacterByID(ctx, id)
	if err != nil {
		return nil, characterResource.notFound(err)
	}
	return character, nil
}

// UpdateCharacter changes name and/or description; any other key in the
// request is ignored.
func (s *CharacterService) UpdateCharacter(ctx context.Context, req *model.UpdateCharacterRequest) (*model.Character, error) {
	character, err := s.repo.UpdateCharacter(ctx, req.ID, model.UpdateCharacterParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, characterResource.notFound(err)
	}

	publish(ctx, s.publisher, characterResource, events.ActionUpdated, character.ID, character.Serialize())

	return character, nil
}

func (s *CharacterService) DeleteCharacter(ctx context.Context, id int64) (*model.Character, error) {
	character, err := s.repo.DeleteCharacter(ctx, id)
	if err != nil {
		return nil, characterResource.notFound(err)
	}

	publish(ctx, s.publisher, characterResource, events.ActionDeleted, character.ID, character.Serialize())

	return character, nil
}
