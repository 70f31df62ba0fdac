package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/middleware"
	"github.com/renanvonb/nomo-backend/internal/service"
)

// CategoryHandler handles category and subcategory HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SubcategoryResponse represents a subcategory in API responses
type SubcategoryResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(workspaceID, req.Name)
	if err != nil {
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("category_id", category.ID.String()).Msg("Category created")

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	categories, err := h.categoryService.GetCategories(workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateCategory handles PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(workspaceID, id, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory handles DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("category_id", id.String()).Msg("Category deleted")

	return c.NoContent(http.StatusNoContent)
}

// CreateSubcategory handles POST /categories/:id/subcategories
func (h *CategoryHandler) CreateSubcategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	subcategory, err := h.categoryService.CreateSubcategory(workspaceID, categoryID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create subcategory")
		return NewInternalError(c, "Failed to create subcategory")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("subcategory_id", subcategory.ID.String()).Msg("Subcategory created")

	return c.JSON(http.StatusCreated, toSubcategoryResponse(subcategory))
}

// GetSubcategories handles GET /categories/:id/subcategories
func (h *CategoryHandler) GetSubcategories(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	subcategories, err := h.categoryService.GetSubcategories(workspaceID, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list subcategories")
		return NewInternalError(c, "Failed to list subcategories")
	}

	response := make([]SubcategoryResponse, len(subcategories))
	for i, subcategory := range subcategories {
		response[i] = toSubcategoryResponse(subcategory)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateSubcategory handles PUT /subcategories/:id
func (h *CategoryHandler) UpdateSubcategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid subcategory ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	subcategory, err := h.categoryService.UpdateSubcategory(workspaceID, id, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrSubcategoryNotFound) {
			return NewNotFoundError(c, "Subcategory not found")
		}
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to update subcategory")
		return NewInternalError(c, "Failed to update subcategory")
	}

	return c.JSON(http.StatusOK, toSubcategoryResponse(subcategory))
}

// DeleteSubcategory handles DELETE /subcategories/:id
func (h *CategoryHandler) DeleteSubcategory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid subcategory ID", nil)
	}

	if err := h.categoryService.DeleteSubcategory(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrSubcategoryNotFound) {
			return NewNotFoundError(c, "Subcategory not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete subcategory")
		return NewInternalError(c, "Failed to delete subcategory")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("subcategory_id", id.String()).Msg("Subcategory deleted")

	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
		UpdatedAt: category.UpdatedAt.Format(time.RFC3339),
	}
}

func toSubcategoryResponse(subcategory *domain.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         subcategory.ID.String(),
		CategoryID: subcategory.CategoryID.String(),
		Name:       subcategory.Name,
		CreatedAt:  subcategory.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  subcategory.UpdatedAt.Format(time.RFC3339),
	}
}
