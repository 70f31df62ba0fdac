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

// PayeeHandler handles payee-related HTTP requests
type PayeeHandler struct {
	payeeService *service.PayeeService
}

// NewPayeeHandler creates a new PayeeHandler
func NewPayeeHandler(payeeService *service.PayeeService) *PayeeHandler {
	return &PayeeHandler{payeeService: payeeService}
}

// PayeeRequest represents the create/update payee request body
type PayeeRequest struct {
	Name string `json:"name"`
}

// PayeeResponse represents a payee in API responses
type PayeeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreatePayee handles POST /payees
func (h *PayeeHandler) CreatePayee(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req PayeeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	payee, err := h.payeeService.CreatePayee(workspaceID, req.Name)
	if err != nil {
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create payee")
		return NewInternalError(c, "Failed to create payee")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("payee_id", payee.ID.String()).Msg("Payee created")

	return c.JSON(http.StatusCreated, toPayeeResponse(payee))
}

// GetPayees handles GET /payees
func (h *PayeeHandler) GetPayees(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	payees, err := h.payeeService.GetPayees(workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list payees")
		return NewInternalError(c, "Failed to list payees")
	}

	response := make([]PayeeResponse, len(payees))
	for i, payee := range payees {
		response[i] = toPayeeResponse(payee)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdatePayee handles PUT /payees/:id
func (h *PayeeHandler) UpdatePayee(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid payee ID", nil)
	}

	var req PayeeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	payee, err := h.payeeService.UpdatePayee(workspaceID, id, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrPayeeNotFound) {
			return NewNotFoundError(c, "Payee not found")
		}
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to update payee")
		return NewInternalError(c, "Failed to update payee")
	}

	return c.JSON(http.StatusOK, toPayeeResponse(payee))
}

// DeletePayee handles DELETE /payees/:id
func (h *PayeeHandler) DeletePayee(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid payee ID", nil)
	}

	if err := h.payeeService.DeletePayee(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrPayeeNotFound) {
			return NewNotFoundError(c, "Payee not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete payee")
		return NewInternalError(c, "Failed to delete payee")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("payee_id", id.String()).Msg("Payee deleted")

	return c.NoContent(http.StatusNoContent)
}

func toPayeeResponse(payee *domain.Payee) PayeeResponse {
	return PayeeResponse{
		ID:        payee.ID.String(),
		Name:      payee.Name,
		CreatedAt: payee.CreatedAt.Format(time.RFC3339),
		UpdatedAt: payee.UpdatedAt.Format(time.RFC3339),
	}
}
