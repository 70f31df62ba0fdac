package service

import (
	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/report"
	"github.com/renanvonb/nomo-backend/internal/search"
)

// ReportService computes the reporting aggregates for a resolved period
type ReportService struct {
	transactionRepo domain.TransactionRepository
}

// NewReportService creates a new ReportService
func NewReportService(transactionRepo domain.TransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo}
}

// Summary loads the transactions in the selected range, applies the search
// filter in memory, and derives every aggregate from the filtered set. The
// search query narrows the aggregates, not just the listing.
func (s *ReportService) Summary(workspaceID int32, selection domain.PeriodSelection, query string) (*domain.Report, error) {
	transactions, err := s.transactionRepo.ListByRange(workspaceID, selection.Range)
	if err != nil {
		return nil, err
	}

	filtered := search.Apply(transactions, query)
	r := report.Build(filtered)
	r.Period = selection
	return r, nil
}

// Transactions returns the filtered listing for the same selection the
// aggregates are computed from
func (s *ReportService) Transactions(workspaceID int32, selection domain.PeriodSelection, query string) ([]*domain.Transaction, error) {
	transactions, err := s.transactionRepo.ListByRange(workspaceID, selection.Range)
	if err != nil {
		return nil, err
	}
	return search.Apply(transactions, query), nil
}
