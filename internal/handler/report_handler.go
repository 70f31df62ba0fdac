package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/middleware"
	"github.com/renanvonb/nomo-backend/internal/query"
	"github.com/renanvonb/nomo-backend/internal/service"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PeriodResponse describes the resolved period of a report
type PeriodResponse struct {
	Mode string `json:"mode"`
	From string `json:"from"`
	To   string `json:"to"`
}

// TotalsResponse holds the per-type sums of a report
type TotalsResponse struct {
	Income     string `json:"income"`
	Expense    string `json:"expense"`
	Investment string `json:"investment"`
	Balance    string `json:"balance"`
}

// BreakdownEntryResponse is one group of a spend breakdown
type BreakdownEntryResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ClassificationEntryResponse is one group of the classification split
type ClassificationEntryResponse struct {
	Classification string `json:"classification"`
	Value          string `json:"value"`
}

// DailyPointResponse holds the totals for one day of the month
type DailyPointResponse struct {
	Day     int    `json:"day"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// ReportResponse represents the report summary in API responses
type ReportResponse struct {
	Period                  PeriodResponse                `json:"period"`
	Totals                  TotalsResponse                `json:"totals"`
	CategoryBreakdown       []BreakdownEntryResponse      `json:"categoryBreakdown"`
	SubcategoryBreakdown    []BreakdownEntryResponse      `json:"subcategoryBreakdown"`
	ClassificationBreakdown []ClassificationEntryResponse `json:"classificationBreakdown"`
	DailySeries             []DailyPointResponse          `json:"dailySeries"`
}

// GetSummary handles GET /reports/summary. periodMode selects how the range
// is derived; explicit rangeFrom/rangeTo take precedence; q narrows every
// aggregate, not just the listing.
func (h *ReportHandler) GetSummary(c echo.Context) error {
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

	report, err := h.reportService.Summary(workspaceID, selection, c.QueryParam(query.ParamSearch))
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to build report summary")
		return NewInternalError(c, "Failed to build report summary")
	}

	return c.JSON(http.StatusOK, toReportResponse(report))
}

func toReportResponse(report *domain.Report) ReportResponse {
	resp := ReportResponse{
		Period: PeriodResponse{
			Mode: string(report.Period.Mode),
			From: report.Period.Range.Start.Format(time.RFC3339),
			To:   report.Period.Range.End.Format(time.RFC3339),
		},
		Totals: TotalsResponse{
			Income:     report.Totals.Income.StringFixed(2),
			Expense:    report.Totals.Expense.StringFixed(2),
			Investment: report.Totals.Investment.StringFixed(2),
			Balance:    report.Totals.Balance.StringFixed(2),
		},
		CategoryBreakdown:       make([]BreakdownEntryResponse, len(report.CategoryBreakdown)),
		SubcategoryBreakdown:    make([]BreakdownEntryResponse, len(report.SubcategoryBreakdown)),
		ClassificationBreakdown: make([]ClassificationEntryResponse, len(report.ClassificationBreakdown)),
		DailySeries:             make([]DailyPointResponse, len(report.DailySeries)),
	}
	for i, entry := range report.CategoryBreakdown {
		resp.CategoryBreakdown[i] = BreakdownEntryResponse{Name: entry.Name, Value: entry.Value.StringFixed(2)}
	}
	for i, entry := range report.SubcategoryBreakdown {
		resp.SubcategoryBreakdown[i] = BreakdownEntryResponse{Name: entry.Name, Value: entry.Value.StringFixed(2)}
	}
	for i, entry := range report.ClassificationBreakdown {
		resp.ClassificationBreakdown[i] = ClassificationEntryResponse{
			Classification: string(entry.Classification),
			Value:          entry.Value.StringFixed(2),
		}
	}
	for i, point := range report.DailySeries {
		resp.DailySeries[i] = DailyPointResponse{
			Day:     point.Day,
			Income:  point.Income.StringFixed(2),
			Expense: point.Expense.StringFixed(2),
		}
	}
	return resp
}
