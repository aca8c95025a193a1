package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/handler"
)

// registerResourceRoutes mounts the CRUD endpoints of every resource.
// Every success, including creation, answers 200.
func registerResourceRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")
	users.GET("", handler.Handle(h.Users.Handler, h.Users.ListUsers, http.StatusOK))
	users.POST("", handler.Handle(h.Users.Handler, h.Users.CreateUser, http.StatusOK))
	users.GET("/:id", handler.Handle(h.Users.Handler, h.Users.GetUser, http.StatusOK))
	users.PUT("/:id", handler.Handle(h.Users.Handler, h.Users.UpdateUser, http.StatusOK))
	users.DELETE("/:id", handler.Handle(h.Users.Handler, h.Users.DeleteUser, http.StatusOK))

	planets := r.Group("/planets")
	planets.GET("", handler.Handle(h.Planets.Handler, h.Planets.ListPlanets, http.StatusOK))
	planets.POST("", handler.Handle(h.Planets.Handler, h.Planets.CreatePlanet, http.StatusOK))
	planets.GET("/:id", handler.Handle(h.Planets.Handler, h.Planets.GetPlanet, http.StatusOK))
	planets.PUT("/:id", handler.Handle(h.Planets.Handler, h.Planets.UpdatePlanet, http.StatusOK))
	planets.DELETE("/:id", handler.Handle(h.Planets.Handler, h.Planets.DeletePlanet, http.StatusOK))

	characters := r.Group("/characters")
	characters.GET("", handler.Handle(h.Characters.Handler, h.Characters.ListCharacters, http.StatusOK))
	characters.POST("", handler.Handle(h.Characters.Handler, h.Characters.CreateCharacter, http.StatusOK))
	characters.GET("/:id", handler.Handle(h.Characters.Handler, h.Characters.GetCharacter, http.StatusOK))
	characters.PUT("/:id", handler.Handle(h.Characters.Handler, h.Characters.UpdateCharacter, http.StatusOK))
	characters.DELETE("/:id", handler.Handle(h.Characters.Handler, h.Characters.DeleteCharacter, http.StatusOK))
}
