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

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// WalletRequest represents the create/update wallet request body
type WalletRequest struct {
	Name string `json:"name"`
}

// WalletResponse represents a wallet in API responses
type WalletResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateWallet handles POST /wallets
func (h *WalletHandler) CreateWallet(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req WalletRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	wallet, err := h.walletService.CreateWallet(workspaceID, req.Name)
	if err != nil {
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create wallet")
		return NewInternalError(c, "Failed to create wallet")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("wallet_id", wallet.ID.String()).Msg("Wallet created")

	return c.JSON(http.StatusCreated, toWalletResponse(wallet))
}

// GetWallets handles GET /wallets
func (h *WalletHandler) GetWallets(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	wallets, err := h.walletService.GetWallets(workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list wallets")
		return NewInternalError(c, "Failed to list wallets")
	}

	response := make([]WalletResponse, len(wallets))
	for i, wallet := range wallets {
		response[i] = toWalletResponse(wallet)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateWallet handles PUT /wallets/:id
func (h *WalletHandler) UpdateWallet(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid wallet ID", nil)
	}

	var req WalletRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	wallet, err := h.walletService.UpdateWallet(workspaceID, id, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return NewNotFoundError(c, "Wallet not found")
		}
		if resp := nameValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to update wallet")
		return NewInternalError(c, "Failed to update wallet")
	}

	return c.JSON(http.StatusOK, toWalletResponse(wallet))
}

// DeleteWallet handles DELETE /wallets/:id
func (h *WalletHandler) DeleteWallet(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid wallet ID", nil)
	}

	if err := h.walletService.DeleteWallet(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return NewNotFoundError(c, "Wallet not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete wallet")
		return NewInternalError(c, "Failed to delete wallet")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("wallet_id", id.String()).Msg("Wallet deleted")

	return c.NoContent(http.StatusNoContent)
}

// nameValidationResponse maps name validation errors to 400 responses,
// returning nil for errors it does not recognize
func nameValidationResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	}
	return nil
}

func toWalletResponse(wallet *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:        wallet.ID.String(),
		Name:      wallet.Name,
		CreatedAt: wallet.CreatedAt.Format(time.RFC3339),
		UpdatedAt: wallet.UpdatedAt.Format(time.RFC3339),
	}
}
