// Package report derives the reporting aggregates from a transaction
// collection. Everything here is a pure function of its input: no side
// effects, safe to call repeatedly on every change to the filtered set.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

const (
	// FallbackBucket collects expenses without a category or subcategory
	FallbackBucket = "Outros"
	// BreakdownLimit caps category and subcategory breakdowns at the top groups
	BreakdownLimit = 10
)

// Totals sums amounts by type in a single traversal.
// Balance = income - expense - investment.
func Totals(transactions []*domain.Transaction) domain.Totals {
	t := domain.Totals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Investment: decimal.Zero,
	}
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeRevenue:
			t.Income = t.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		case domain.TransactionTypeInvestment:
			t.Investment = t.Investment.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expense).Sub(t.Investment)
	return t
}

// CategoryBreakdown groups settled expenses by category name, "Outros" when
// absent, sorted descending by summed value and truncated to the top 10.
// Unsettled expenses are excluded: they have not yet happened financially.
func CategoryBreakdown(transactions []*domain.Transaction) []domain.BreakdownEntry {
	return spendBreakdown(transactions, func(t *domain.Transaction) string {
		if t.CategoryName != nil && *t.CategoryName != "" {
			return *t.CategoryName
		}
		return FallbackBucket
	})
}

// SubcategoryBreakdown follows the same rules as CategoryBreakdown, grouping
// by subcategory name, falling back to category name, then "Outros"
func SubcategoryBreakdown(transactions []*domain.Transaction) []domain.BreakdownEntry {
	return spendBreakdown(transactions, func(t *domain.Transaction) string {
		if t.SubcategoryName != nil && *t.SubcategoryName != "" {
			return *t.SubcategoryName
		}
		if t.CategoryName != nil && *t.CategoryName != "" {
			return *t.CategoryName
		}
		return FallbackBucket
	})
}

func spendBreakdown(transactions []*domain.Transaction, key func(*domain.Transaction) string) []domain.BreakdownEntry {
	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense || !t.IsSettled() {
			continue
		}
		name := key(t)
		sums[name] = sums[name].Add(t.Amount)
	}

	entries := make([]domain.BreakdownEntry, 0, len(sums))
	for name, value := range sums {
		entries = append(entries, domain.BreakdownEntry{Name: name, Value: value})
	}

	// Descending by value; equal values break ties alphabetically by name so
	// the order never depends on map iteration
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Value.Equal(entries[j].Value) {
			return entries[i].Value.GreaterThan(entries[j].Value)
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > BreakdownLimit {
		entries = entries[:BreakdownLimit]
	}
	return entries
}

// ClassificationBreakdown groups all expenses by classification, settled or
// not, defaulting to necessary when absent. Output follows the enum order
// and only includes classifications that occurred.
func ClassificationBreakdown(transactions []*domain.Transaction) []domain.ClassificationEntry {
	sums := make(map[domain.Classification]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		cls := domain.ClassificationNecessary
		if t.Classification != nil {
			cls = *t.Classification
		}
		sums[cls] = sums[cls].Add(t.Amount)
	}

	entries := make([]domain.ClassificationEntry, 0, len(sums))
	for _, cls := range domain.Classifications {
		if value, ok := sums[cls]; ok {
			entries = append(entries, domain.ClassificationEntry{Classification: cls, Value: value})
		}
	}
	return entries
}

// DailySeries groups revenue and expense transactions by the numeric
// day-of-month of the due date, summing income and expense separately.
// Investments are excluded. Output is sorted ascending by day; days with no
// transactions are omitted, never interpolated.
func DailySeries(transactions []*domain.Transaction) []domain.DailyPoint {
	points := make(map[int]*domain.DailyPoint)
	for _, t := range transactions {
		if t.Type != domain.TransactionTypeRevenue && t.Type != domain.TransactionTypeExpense {
			continue
		}
		day := t.DueDate.Day()
		p, ok := points[day]
		if !ok {
			p = &domain.DailyPoint{Day: day, Income: decimal.Zero, Expense: decimal.Zero}
			points[day] = p
		}
		if t.Type == domain.TransactionTypeRevenue {
			p.Income = p.Income.Add(t.Amount)
		} else {
			p.Expense = p.Expense.Add(t.Amount)
		}
	}

	series := make([]domain.DailyPoint, 0, len(points))
	for _, p := range points {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Day < series[j].Day })
	return series
}

// Build composes every aggregate for the given transaction set
func Build(transactions []*domain.Transaction) *domain.Report {
	return &domain.Report{
		Totals:                  Totals(transactions),
		CategoryBreakdown:       CategoryBreakdown(transactions),
		SubcategoryBreakdown:    SubcategoryBreakdown(transactions),
		ClassificationBreakdown: ClassificationBreakdown(transactions),
		DailySeries:             DailySeries(transactions),
	}
}
