package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/service"
	"github.com/renanvonb/nomo-backend/internal/testutil"
)

func seedReportRepo() *testutil.MockTransactionRepository {
	repo := testutil.NewMockTransactionRepository()
	paid := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	moradia := "Moradia"
	repo.AddTransaction(&domain.Transaction{
		WorkspaceID: 1,
		Description: "Salário",
		Amount:      decimal.NewFromInt(5000),
		Type:        domain.TransactionTypeRevenue,
		DueDate:     time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
	})
	repo.AddTransaction(&domain.Transaction{
		WorkspaceID:  1,
		Description:  "Aluguel",
		Amount:       decimal.NewFromInt(1500),
		Type:         domain.TransactionTypeExpense,
		DueDate:      time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		PaymentDate:  &paid,
		CategoryName: &moradia,
	})
	return repo
}

func TestGetSummary_Success(t *testing.T) {
	e := echo.New()
	handler := NewReportHandler(service.NewReportService(seedReportRepo()))

	target := "/api/v1/reports/summary?periodMode=custom&rangeFrom=2024-02-01T00:00:00Z&rangeTo=2024-02-29T00:00:00Z"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Period.Mode != "custom" {
		t.Errorf("Expected period mode 'custom', got %s", response.Period.Mode)
	}
	if response.Period.From != "2024-02-01T00:00:00Z" {
		t.Errorf("Expected period from 2024-02-01, got %s", response.Period.From)
	}
	if response.Totals.Income != "5000.00" {
		t.Errorf("Expected income '5000.00', got %s", response.Totals.Income)
	}
	if response.Totals.Expense != "1500.00" {
		t.Errorf("Expected expense '1500.00', got %s", response.Totals.Expense)
	}
	if response.Totals.Balance != "3500.00" {
		t.Errorf("Expected balance '3500.00', got %s", response.Totals.Balance)
	}
	if len(response.CategoryBreakdown) != 1 || response.CategoryBreakdown[0].Name != "Moradia" {
		t.Errorf("Expected single 'Moradia' category entry, got %v", response.CategoryBreakdown)
	}
	if len(response.DailySeries) != 2 {
		t.Errorf("Expected 2 daily points, got %d", len(response.DailySeries))
	}
}

func TestGetSummary_SearchNarrowsAggregates(t *testing.T) {
	e := echo.New()
	handler := NewReportHandler(service.NewReportService(seedReportRepo()))

	target := "/api/v1/reports/summary?periodMode=custom&rangeFrom=2024-02-01T00:00:00Z&rangeTo=2024-02-29T00:00:00Z&q=aluguel"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Totals.Income != "0.00" {
		t.Errorf("Expected income filtered out, got %s", response.Totals.Income)
	}
	if response.Totals.Expense != "1500.00" {
		t.Errorf("Expected expense '1500.00', got %s", response.Totals.Expense)
	}
}

func TestGetSummary_InvalidPeriodMode(t *testing.T) {
	e := echo.New()
	handler := NewReportHandler(service.NewReportService(testutil.NewMockTransactionRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?periodMode=fortnight", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupWorkspace(c, 1)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSummary_MissingWorkspace(t *testing.T) {
	e := echo.New()
	handler := NewReportHandler(service.NewReportService(testutil.NewMockTransactionRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
