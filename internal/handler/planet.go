package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
)

type PlanetHandler struct {
	Handler
	planetService *service.PlanetService
}

func NewPlanetHandler(s *server.Server, planetService *service.PlanetService) *PlanetHandler {
	return &PlanetHandler{
		Handler:       NewHandler(s),
		planetService: planetService,
	}
}

func (h *PlanetHandler) ListPlanets(c echo.Context, _ *model.ListRequest) (*model.Response[model.PlanetsResult], error) {
	planets, err := h.planetService.ListPlanets(c.Request().Context())
	if err != nil {
		return nil, err
	}

	records := make([]model.PlanetRecord, 0, len(planets))
	for i := range planets {
		records = append(records, planets[i].Serialize())
	}

	return model.NewResponse("Planets List", model.PlanetsResult{Planets: records}), nil
}

func (h *PlanetHandler) CreatePlanet(c echo.Context, req *model.CreatePlanetRequest) (*model.Response[model.PlanetResult], error) {
	planet, err := h.planetService.CreatePlanet(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Planet created", model.PlanetResult{Planet: planet.Serialize()}), nil
}

func (h *PlanetHandler) GetPlanet(c echo.Context, req *model.IDRequest) (*model.Response[model.PlanetResult], error) {
	planet, err := h.planetService.GetPlanet(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Planet found", model.PlanetResult{Planet: planet.Serialize()}), nil
}

func (h *PlanetHandler) UpdatePlanet(c echo.Context, req *model.UpdatePlanetRequest) (*model.Response[model.PlanetResult], error) {
	planet, err := h.planetService.UpdatePlanet(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Planet updated", model.PlanetResult{Planet: planet.Serialize()}), nil
}

func (h *PlanetHandler) DeletePlanet(c echo.Context, req *model.IDRequest) (*model.Response[model.PlanetResult], error) {
	planet, err := h.planetService.DeletePlanet(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("Planet removed", model.PlanetResult{Planet: planet.Serialize()}), nil
}
