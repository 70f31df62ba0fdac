package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/live"
	"github.com/renanvonb/nomo-backend/internal/middleware"
	"github.com/renanvonb/nomo-backend/internal/service"
	"github.com/renanvonb/nomo-backend/internal/testutil"
)

func setupWorkspace(c echo.Context, workspaceID int32) {
	c.Set(middleware.WorkspaceContextKey, workspaceID)
}

func newTransactionHandler(transactionRepo *testutil.MockTransactionRepository) *TransactionHandler {
	walletRepo := testutil.NewMockWalletRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	subcategoryRepo := testutil.NewMockSubcategoryRepository()
	payeeRepo := testutil.NewMockPayeeRepository()
	transactionService := service.NewTransactionService(transactionRepo, walletRepo, categoryRepo, subcategoryRepo, payeeRepo, &live.NoOpPublisher{})
	reportService := service.NewReportService(transactionRepo)
	return NewTransactionHandler(transactionService, reportService)
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	reqBody := `{"description": "Groceries", "amount": "150.00", "type": "expense", "dueDate": "2024-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Description != "Groceries" {
		t.Errorf("Expected description 'Groceries', got %s", response.Description)
	}
	if response.Amount != "150.00" {
		t.Errorf("Expected amount '150.00', got %s", response.Amount)
	}
	if response.DueDate != "2024-03-10" {
		t.Errorf("Expected dueDate '2024-03-10', got %s", response.DueDate)
	}
	if response.Settled {
		t.Error("Expected new transaction unsettled")
	}
	if response.Classification == nil || *response.Classification != "necessary" {
		t.Errorf("Expected default classification, got %v", response.Classification)
	}
}

func TestCreateTransaction_MissingWorkspace(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	reqBody := `{"description": "Groceries", "amount": "abc", "type": "expense"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_InvalidType(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	reqBody := `{"description": "X", "amount": "10", "type": "transfer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestGetTransactions_PeriodAndSearch(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockTransactionRepository()
	repo.AddTransaction(&domain.Transaction{
		WorkspaceID: 1,
		Description: "Aluguel",
		Amount:      decimal.NewFromInt(1500),
		Type:        domain.TransactionTypeExpense,
		DueDate:     time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
	})
	repo.AddTransaction(&domain.Transaction{
		WorkspaceID: 1,
		Description: "Mercado",
		Amount:      decimal.NewFromInt(300),
		Type:        domain.TransactionTypeExpense,
		DueDate:     time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC),
	})
	handler := newTransactionHandler(repo)

	target := "/api/v1/transactions?periodMode=custom&rangeFrom=2024-02-01T00:00:00Z&rangeTo=2024-02-29T00:00:00Z&q=aluguel"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(response))
	}
	if response[0].Description != "Aluguel" {
		t.Errorf("Expected 'Aluguel', got %s", response[0].Description)
	}
}

func TestGetTransactions_InvalidPeriodMode(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?periodMode=quarter", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown mode, got %d", rec.Code)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	reqBody := `{"description": "X", "amount": "10", "type": "expense"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/transactions/00000000-0000-0000-0000-000000000001", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000001")
	setupWorkspace(c, 1)

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestToggleSettlement_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockTransactionRepository()
	seeded := repo.AddTransaction(&domain.Transaction{
		WorkspaceID: 1,
		Description: "Internet",
		Amount:      decimal.NewFromInt(90),
		Type:        domain.TransactionTypeExpense,
		DueDate:     time.Now().UTC(),
	})
	handler := newTransactionHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/transactions/"+seeded.ID.String()+"/toggle-settled", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(seeded.ID.String())
	setupWorkspace(c, 1)

	if err := handler.ToggleSettlement(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Settled {
		t.Error("Expected transaction settled")
	}
	if response.PaymentDate == nil {
		t.Error("Expected payment date stamped")
	}
}

func TestDeleteTransaction_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockTransactionRepository()
	seeded := repo.AddTransaction(&domain.Transaction{
		WorkspaceID: 1,
		Description: "Old",
		Amount:      decimal.NewFromInt(1),
		Type:        domain.TransactionTypeExpense,
		DueDate:     time.Now().UTC(),
	})
	handler := newTransactionHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/"+seeded.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(seeded.ID.String())
	setupWorkspace(c, 1)

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
