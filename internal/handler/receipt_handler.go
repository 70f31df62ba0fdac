package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/middleware"
	"github.com/renanvonb/nomo-backend/internal/service"
)

// ReceiptHandler handles receipt attachment HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// ReceiptURLResponse carries a temporary download URL for a receipt
type ReceiptURLResponse struct {
	URL string `json:"url"`
}

// UploadReceipt handles POST /transactions/:id/receipt with a multipart file
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Missing file", []ValidationError{
			{Field: "file", Message: "A file is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read uploaded file")
	}

	transaction, err := h.receiptService.Attach(c.Request().Context(), workspaceID, id, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return NewNotFoundError(c, "Transaction not found")
		case errors.Is(err, service.ErrReceiptTooLarge),
			errors.Is(err, service.ErrInvalidReceiptFormat),
			errors.Is(err, service.ErrInvalidReceiptData):
			return NewValidationError(c, err.Error(), []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		case errors.Is(err, service.ErrReceiptStorageNotEnabled):
			return NewConflictError(c, "Receipt storage is not configured")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to upload receipt")
		return NewInternalError(c, "Failed to upload receipt")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("transaction_id", id.String()).Msg("Receipt attached")

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// GetReceiptURL handles GET /transactions/:id/receipt
func (h *ReceiptHandler) GetReceiptURL(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	url, err := h.receiptService.PresignedURL(c.Request().Context(), workspaceID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound), errors.Is(err, domain.ErrNotFound):
			return NewNotFoundError(c, "Receipt not found")
		case errors.Is(err, service.ErrReceiptStorageNotEnabled):
			return NewConflictError(c, "Receipt storage is not configured")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to presign receipt URL")
		return NewInternalError(c, "Failed to presign receipt URL")
	}

	return c.JSON(http.StatusOK, ReceiptURLResponse{URL: url})
}

// DeleteReceipt handles DELETE /transactions/:id/receipt
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.receiptService.Detach(c.Request().Context(), workspaceID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return NewNotFoundError(c, "Transaction not found")
		case errors.Is(err, service.ErrReceiptStorageNotEnabled):
			return NewConflictError(c, "Receipt storage is not configured")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete receipt")
		return NewInternalError(c, "Failed to delete receipt")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("transaction_id", id.String()).Msg("Receipt removed")

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}
