package handler

import (
	"net/http"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// CategoryHandler serves the fixed expense category catalog
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// ListCategories returns the category catalog in canonical order
// GET /categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	response := make([]CategoryResponse, 0, len(domain.Categories))
	for _, info := range domain.Categories {
		response = append(response, CategoryResponse{
			ID:    string(info.ID),
			Name:  info.Name,
			Emoji: info.Emoji,
			Color: info.Color,
		})
	}

	return c.JSON(http.StatusOK, response)
}
