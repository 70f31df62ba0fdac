package domain

import "github.com/shopspring/decimal"

// Totals holds the per-type sums for a transaction set.
// Balance = Income - Expense - Investment.
type Totals struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Investment decimal.Decimal `json:"investment"`
	Balance    decimal.Decimal `json:"balance"`
}

// BreakdownEntry is one group of a spend breakdown (category or subcategory)
type BreakdownEntry struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ClassificationEntry is one group of the classification split
type ClassificationEntry struct {
	Classification Classification  `json:"classification"`
	Value          decimal.Decimal `json:"value"`
}

// DailyPoint holds income and expense totals for one day of the month,
// keyed by the numeric day of the due date
type DailyPoint struct {
	Day     int             `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Report bundles every aggregate derived from the filtered transaction set.
// It is recomputed on every input change and never persisted.
type Report struct {
	Period                  PeriodSelection       `json:"period"`
	Totals                  Totals                `json:"totals"`
	CategoryBreakdown       []BreakdownEntry      `json:"categoryBreakdown"`
	SubcategoryBreakdown    []BreakdownEntry      `json:"subcategoryBreakdown"`
	ClassificationBreakdown []ClassificationEntry `json:"classificationBreakdown"`
	DailySeries             []DailyPoint          `json:"dailySeries"`
}
