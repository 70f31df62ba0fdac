package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/middleware"
	"github.com/renanvonb/nomo-backend/internal/query"
	"github.com/renanvonb/nomo-backend/internal/service"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	reportService      *service.ReportService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, reportService *service.ReportService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		reportService:      reportService,
	}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	Description    string  `json:"description"`
	Amount         string  `json:"amount"`
	Type           string  `json:"type"`
	DueDate        *string `json:"dueDate,omitempty"`
	PaymentDate    *string `json:"paymentDate,omitempty"`
	Classification *string `json:"classification,omitempty"`
	WalletID       *string `json:"walletId,omitempty"`
	CategoryID     *string `json:"categoryId,omitempty"`
	SubcategoryID  *string `json:"subcategoryId,omitempty"`
	PayeeID        *string `json:"payeeId,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              string  `json:"id"`
	WorkspaceID     int32   `json:"workspaceId"`
	Description     string  `json:"description"`
	Amount          string  `json:"amount"`
	Type            string  `json:"type"`
	DueDate         string  `json:"dueDate"`
	PaymentDate     *string `json:"paymentDate,omitempty"`
	Settled         bool    `json:"settled"`
	Classification  *string `json:"classification,omitempty"`
	WalletID        *string `json:"walletId,omitempty"`
	WalletName      *string `json:"walletName,omitempty"`
	CategoryID      *string `json:"categoryId,omitempty"`
	CategoryName    *string `json:"categoryName,omitempty"`
	SubcategoryID   *string `json:"subcategoryId,omitempty"`
	SubcategoryName *string `json:"subcategoryName,omitempty"`
	PayeeID         *string `json:"payeeId,omitempty"`
	PayeeName       *string `json:"payeeName,omitempty"`
	HasReceipt      bool    `json:"hasReceipt"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, validationErr := parseTransactionInput(req)
	if validationErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*validationErr})
	}

	transaction, err := h.transactionService.CreateTransaction(workspaceID, *input)
	if err != nil {
		if resp := transactionValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("transaction_id", transaction.ID.String()).Str("type", string(transaction.Type)).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions handles GET /transactions. The period is resolved from
// periodMode/rangeFrom/rangeTo and the listing is narrowed by q the same way
// the report aggregates are.
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	selection, err := query.ParseSelection(c.QueryParams(), time.Now().UTC())
	if err != nil {
		return NewValidationError(c, "Invalid periodMode", []ValidationError{
			{Field: query.ParamPeriodMode, Message: "Must be one of: day, week, month, year, custom"},
		})
	}

	transactions, err := h.reportService.Transactions(workspaceID, selection, c.QueryParam(query.ParamSearch))
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		response[i] = toTransactionResponse(transaction)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTransaction handles GET /transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, validationErr := parseTransactionInput(req)
	if validationErr != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*validationErr})
	}

	transaction, err := h.transactionService.UpdateTransaction(workspaceID, id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if resp := transactionValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("transaction_id", transaction.ID.String()).Msg("Transaction updated")

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("transaction_id", id.String()).Msg("Transaction deleted")

	return c.NoContent(http.StatusNoContent)
}

// ToggleSettlementRequest optionally carries the payment date to settle with
type ToggleSettlementRequest struct {
	PaymentDate *string `json:"paymentDate,omitempty"`
}

// ToggleSettlement handles PATCH /transactions/:id/toggle-settled
func (h *TransactionHandler) ToggleSettlement(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req ToggleSettlementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var paymentDate *time.Time
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return NewValidationError(c, "Invalid paymentDate", []ValidationError{
				{Field: "paymentDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		paymentDate = &parsed
	}

	transaction, err := h.transactionService.ToggleSettlement(workspaceID, id, paymentDate)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to toggle settlement")
		return NewInternalError(c, "Failed to toggle settlement")
	}

	log.Info().Int32("workspace_id", workspaceID).Str("transaction_id", id.String()).Bool("settled", transaction.IsSettled()).Msg("Transaction settlement toggled")

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// parseTransactionInput converts a request body into a service input,
// returning the first field-level problem found
func parseTransactionInput(req TransactionRequest) (*service.TransactionInput, *ValidationError) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, &ValidationError{Field: "amount", Message: "Must be a valid decimal number"}
	}

	input := service.TransactionInput{
		Description: req.Description,
		Amount:      amount,
		Type:        domain.TransactionType(req.Type),
	}

	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, &ValidationError{Field: "dueDate", Message: "Must be in YYYY-MM-DD format"}
		}
		input.DueDate = &parsed
	}

	if req.PaymentDate != nil && *req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return nil, &ValidationError{Field: "paymentDate", Message: "Must be in YYYY-MM-DD format"}
		}
		input.PaymentDate = &parsed
	}

	if req.Classification != nil && *req.Classification != "" {
		classification := domain.Classification(*req.Classification)
		input.Classification = &classification
	}

	var parseErr *ValidationError
	input.WalletID, parseErr = parseOptionalUUID(req.WalletID, "walletId")
	if parseErr != nil {
		return nil, parseErr
	}
	input.CategoryID, parseErr = parseOptionalUUID(req.CategoryID, "categoryId")
	if parseErr != nil {
		return nil, parseErr
	}
	input.SubcategoryID, parseErr = parseOptionalUUID(req.SubcategoryID, "subcategoryId")
	if parseErr != nil {
		return nil, parseErr
	}
	input.PayeeID, parseErr = parseOptionalUUID(req.PayeeID, "payeeId")
	if parseErr != nil {
		return nil, parseErr
	}

	return &input, nil
}

func parseOptionalUUID(s *string, field string) (*uuid.UUID, *ValidationError) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "Must be a valid UUID"}
	}
	return &id, nil
}

// transactionValidationResponse maps domain validation errors to 400
// responses, returning nil for errors it does not recognize
func transactionValidationResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: revenue, expense, investment"},
		})
	case errors.Is(err, domain.ErrInvalidClassification):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "classification", Message: "Classification must be one of: essential, necessary, superfluous"},
		})
	case errors.Is(err, domain.ErrWalletNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "walletId", Message: "Wallet not found"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		})
	case errors.Is(err, domain.ErrSubcategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "subcategoryId", Message: "Subcategory not found or not in the selected category"},
		})
	case errors.Is(err, domain.ErrPayeeNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "payeeId", Message: "Payee not found"},
		})
	}
	return nil
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          transaction.ID.String(),
		WorkspaceID: transaction.WorkspaceID,
		Description: transaction.Description,
		Amount:      transaction.Amount.StringFixed(2),
		Type:        string(transaction.Type),
		DueDate:     transaction.DueDate.Format("2006-01-02"),
		Settled:     transaction.IsSettled(),
		HasReceipt:  transaction.ReceiptURL != nil && *transaction.ReceiptURL != "",
		CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   transaction.UpdatedAt.Format(time.RFC3339),
	}
	if transaction.PaymentDate != nil {
		paymentDate := transaction.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &paymentDate
	}
	if transaction.Classification != nil {
		classification := string(*transaction.Classification)
		resp.Classification = &classification
	}
	resp.WalletID = uuidToString(transaction.WalletID)
	resp.WalletName = transaction.WalletName
	resp.CategoryID = uuidToString(transaction.CategoryID)
	resp.CategoryName = transaction.CategoryName
	resp.SubcategoryID = uuidToString(transaction.SubcategoryID)
	resp.SubcategoryName = transaction.SubcategoryName
	resp.PayeeID = uuidToString(transaction.PayeeID)
	resp.PayeeName = transaction.PayeeName
	return resp
}

func uuidToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
