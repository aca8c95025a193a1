package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) ListUsers(c echo.Context, _ *model.ListRequest) (*model.Response[model.UsersResult], error) {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return nil, err
	}

	records := make([]model.UserRecord, 0, len(users))
	for i := range users {
		records = append(records, users[i].Serialize())
	}

	return model.NewResponse("Users List", model.UsersResult{Users: records}), nil
}

func (h *UserHandler) CreateUser(c echo.Context, req *model.CreateUserRequest) (*model.Response[model.UserResult], error) {
	user, err := h.userService.CreateUser(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("User created", model.UserResult{User: user.Serialize()}), nil
}

func (h *UserHandler) GetUser(c echo.Context, req *model.IDRequest) (*model.Response[model.UserResult], error) {
	user, err := h.userService.GetUser(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("User found", model.UserResult{User: user.Serialize()}), nil
}

func (h *UserHandler) UpdateUser(c echo.Context, req *model.UpdateUserRequest) (*model.Response[model.UserResult], error) {
	user, err := h.userService.UpdateUser(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("User updated", model.UserResult{User: user.Serialize()}), nil
}

func (h *UserHandler) DeleteUser(c echo.Context, req *model.IDRequest) (*model.Response[model.UserResult], error) {
	user, err := h.userService.DeleteUser(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return model.NewResponse("User removed", model.UserResult{User: user.Serialize()}), nil
}
