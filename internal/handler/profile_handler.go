package handler

import (
	"net/http"

	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles household member HTTP requests
type ProfileHandler struct {
	authService *service.AuthService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
	}
}

// ListUsers returns every household member profile
// GET /users
func (h *ProfileHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListProfiles()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list profiles")
		return NewInternalError(c, "Failed to list users")
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}

	return c.JSON(http.StatusOK, response)
}
