package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
)

type CharacterHandler struct {
	Handler
	characterService *service.CharacterService
}

func NewCharacterHandler(s *server.Server, characterService *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{
		Handler:          NewHandler(s),
		characterService: characterService,
	}
}

func (h *CharacterHandler) ListCharacters(c echo.Context, _ *model.ListRequest) (*model.Response[model.CharactersResult], error) {
	characters, err := h.characterService.ListCharacters(c.Request().Context())
	if err != nil {
		return nil, err
	}

	records := make([]model.CharacterRecord, 0, len(characters))
	for i := range characters {
		records = append(records, characters[i].Serialize())
	}

	return model.NewResponse("Characters List", model.CharactersResult{Characters: records}), nil
}

func (h *CharacterHandler) CreateCharacter(c echo.Context, req *model.CreateCharacterRequest) (*model.Response[model.CharacterResult], error) {
	character, err := h.characterService.CreateCharacter(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Character created", model.CharacterResult{Character: character.Serialize()}), nil
}

func (h *CharacterHandler) GetCharacter(c echo.Context, req *model.IDRequest) (*model.Response[model.CharacterResult], error) {
	character, err := h.characterService.GetCharacter(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Character found", model.CharacterResult{Character: character.Serialize()}), nil
}

func (h *CharacterHandler) UpdateCharacter(c echo.Context, req *model.UpdateCharacterRequest) (*model.Response[model.CharacterResult], error) {
	character, err := h.characterService.UpdateCharacter(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Character updated", model.CharacterResult{Character: character.Serialize()}), nil
}

func (h *CharacterHandler) DeleteCharacter(c echo.Context, req *model.IDRequest) (*model.Response[model.CharacterResult], error) {
	character, err := h.characterService.DeleteCharacter(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Character removed", model.CharacterResult{Character: character.Serialize()}), nil
}
