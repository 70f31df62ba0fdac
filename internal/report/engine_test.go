package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func clsPtr(c domain.Classification) *domain.Classification { return &c }

func settledOn(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func expense(amount float64, due time.Time, opts ...func(*domain.Transaction)) *domain.Transaction {
	tx := &domain.Transaction{
		Description: "expense",
		Amount:      decimal.NewFromFloat(amount),
		Type:        domain.TransactionTypeExpense,
		DueDate:     due,
	}
	for _, opt := range opts {
		opt(tx)
	}
	return tx
}

func revenue(amount float64, due time.Time) *domain.Transaction {
	return &domain.Transaction{
		Description: "revenue",
		Amount:      decimal.NewFromFloat(amount),
		Type:        domain.TransactionTypeRevenue,
		DueDate:     due,
	}
}

func withCategory(name string) func(*domain.Transaction) {
	return func(t *domain.Transaction) { t.CategoryName = strPtr(name) }
}

func withSubcategory(name string) func(*domain.Transaction) {
	return func(t *domain.Transaction) { t.SubcategoryName = strPtr(name) }
}

func withSettlement() func(*domain.Transaction) {
	return func(t *domain.Transaction) { t.PaymentDate = settledOn(2024, time.March, 15) }
}

func withClassification(c domain.Classification) func(*domain.Transaction) {
	return func(t *domain.Transaction) { t.Classification = clsPtr(c) }
}

var march = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestTotals_Empty(t *testing.T) {
	totals := Totals(nil)

	if !totals.Income.IsZero() || !totals.Expense.IsZero() || !totals.Investment.IsZero() || !totals.Balance.IsZero() {
		t.Errorf("Expected all-zero totals, got %+v", totals)
	}
}

func TestTotals_Balance(t *testing.T) {
	txs := []*domain.Transaction{
		revenue(1000, march),
		expense(300, march),
		expense(200, march),
		{Amount: decimal.NewFromInt(150), Type: domain.TransactionTypeInvestment, DueDate: march},
	}

	totals := Totals(txs)

	if totals.Income.String() != "1000" {
		t.Errorf("Expected income 1000, got %s", totals.Income)
	}
	if totals.Expense.String() != "500" {
		t.Errorf("Expected expense 500, got %s", totals.Expense)
	}
	if totals.Investment.String() != "150" {
		t.Errorf("Expected investment 150, got %s", totals.Investment)
	}
	// balance = income - expense - investment
	if totals.Balance.String() != "350" {
		t.Errorf("Expected balance 350, got %s", totals.Balance)
	}
}

func TestTotals_IncludesUnsettled(t *testing.T) {
	txs := []*domain.Transaction{
		expense(100, march),                  // planned
		expense(50, march, withSettlement()), // settled
	}

	totals := Totals(txs)

	if totals.Expense.String() != "150" {
		t.Errorf("Expected planned and settled both counted, got %s", totals.Expense)
	}
}

func TestCategoryBreakdown_SettledExpensesOnly(t *testing.T) {
	txs := []*domain.Transaction{
		expense(100, march, withCategory("Moradia"), withSettlement()),
		expense(40, march, withCategory("Moradia")), // unsettled, excluded
		revenue(500, march),                         // not an expense
	}

	entries := CategoryBreakdown(txs)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "Moradia" || entries[0].Value.String() != "100" {
		t.Errorf("Expected Moradia=100, got %s=%s", entries[0].Name, entries[0].Value)
	}
}

func TestCategoryBreakdown_FallbackBucket(t *testing.T) {
	txs := []*domain.Transaction{
		expense(60, march, withSettlement()), // no category
		expense(30, march, withCategory("Transporte"), withSettlement()),
	}

	entries := CategoryBreakdown(txs)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != FallbackBucket {
		t.Errorf("Expected %q first (higher value), got %q", FallbackBucket, entries[0].Name)
	}
}

func TestCategoryBreakdown_SortAndTiebreak(t *testing.T) {
	txs := []*domain.Transaction{
		expense(50, march, withCategory("Bravo"), withSettlement()),
		expense(50, march, withCategory("Alpha"), withSettlement()),
		expense(80, march, withCategory("Zulu"), withSettlement()),
	}

	entries := CategoryBreakdown(txs)

	if entries[0].Name != "Zulu" {
		t.Errorf("Expected Zulu first, got %s", entries[0].Name)
	}
	// Equal values tie-break alphabetically
	if entries[1].Name != "Alpha" || entries[2].Name != "Bravo" {
		t.Errorf("Expected Alpha then Bravo, got %s then %s", entries[1].Name, entries[2].Name)
	}
}

func TestCategoryBreakdown_TruncatesToLimit(t *testing.T) {
	txs := make([]*domain.Transaction, 0, 12)
	for i := 0; i < 12; i++ {
		txs = append(txs, expense(float64(100-i), march, withCategory(fmt.Sprintf("Cat%02d", i)), withSettlement()))
	}

	entries := CategoryBreakdown(txs)

	if len(entries) != BreakdownLimit {
		t.Fatalf("Expected %d entries, got %d", BreakdownLimit, len(entries))
	}
	// Kept entries are the highest values in descending order
	for i := 1; i < len(entries); i++ {
		if entries[i].Value.GreaterThan(entries[i-1].Value) {
			t.Errorf("Entries not sorted descending at %d", i)
		}
	}
}

func TestSubcategoryBreakdown_FallsBackToCategoryThenOutros(t *testing.T) {
	txs := []*domain.Transaction{
		expense(10, march, withSubcategory("Aluguel"), withCategory("Moradia"), withSettlement()),
		expense(20, march, withCategory("Moradia"), withSettlement()), // no subcategory
		expense(30, march, withSettlement()),                          // neither
	}

	entries := SubcategoryBreakdown(txs)

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	names := map[string]string{}
	for _, e := range entries {
		names[e.Name] = e.Value.String()
	}
	if names["Aluguel"] != "10" || names["Moradia"] != "20" || names[FallbackBucket] != "30" {
		t.Errorf("Unexpected breakdown: %v", names)
	}
}

func TestClassificationBreakdown_DefaultsNecessary(t *testing.T) {
	txs := []*domain.Transaction{
		expense(100, march), // no classification -> necessary
		expense(50, march, withClassification(domain.ClassificationNecessary)),
	}

	entries := ClassificationBreakdown(txs)

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Classification != domain.ClassificationNecessary || entries[0].Value.String() != "150" {
		t.Errorf("Expected necessary=150, got %s=%s", entries[0].Classification, entries[0].Value)
	}
}

func TestClassificationBreakdown_IncludesUnsettled(t *testing.T) {
	txs := []*domain.Transaction{
		expense(70, march, withClassification(domain.ClassificationSuperfluous)), // planned
	}

	entries := ClassificationBreakdown(txs)

	if len(entries) != 1 || entries[0].Value.String() != "70" {
		t.Fatalf("Expected unsettled expense counted, got %v", entries)
	}
}

func TestClassificationBreakdown_EnumOrder(t *testing.T) {
	txs := []*domain.Transaction{
		expense(10, march, withClassification(domain.ClassificationSuperfluous)),
		expense(20, march, withClassification(domain.ClassificationEssential)),
		expense(30, march, withClassification(domain.ClassificationNecessary)),
	}

	entries := ClassificationBreakdown(txs)

	want := []domain.Classification{
		domain.ClassificationEssential,
		domain.ClassificationNecessary,
		domain.ClassificationSuperfluous,
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, cls := range want {
		if entries[i].Classification != cls {
			t.Errorf("Position %d: expected %s, got %s", i, cls, entries[i].Classification)
		}
	}
}

func TestDailySeries_GroupsByDayOfMonth(t *testing.T) {
	day5 := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	day20 := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	txs := []*domain.Transaction{
		revenue(200, day5),
		expense(80, day5),
		expense(30, day20),
		{Amount: decimal.NewFromInt(500), Type: domain.TransactionTypeInvestment, DueDate: day5}, // excluded
	}

	series := DailySeries(txs)

	if len(series) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(series))
	}
	if series[0].Day != 5 || series[0].Income.String() != "200" || series[0].Expense.String() != "80" {
		t.Errorf("Day 5: expected income 200 expense 80, got %s/%s", series[0].Income, series[0].Expense)
	}
	if series[1].Day != 20 || series[1].Expense.String() != "30" {
		t.Errorf("Day 20: expected expense 30, got %s", series[1].Expense)
	}
}

func TestDailySeries_NoInterpolation(t *testing.T) {
	txs := []*domain.Transaction{
		revenue(10, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		revenue(10, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)),
	}

	series := DailySeries(txs)

	if len(series) != 2 {
		t.Fatalf("Expected only days with data, got %d points", len(series))
	}
}

func TestBuild_ComposesAllAggregates(t *testing.T) {
	txs := []*domain.Transaction{
		revenue(1000, march),
		expense(200, march, withCategory("Moradia"), withSettlement()),
	}

	r := Build(txs)

	if r.Totals.Income.String() != "1000" {
		t.Errorf("Unexpected totals: %+v", r.Totals)
	}
	if len(r.CategoryBreakdown) != 1 {
		t.Errorf("Expected category breakdown, got %v", r.CategoryBreakdown)
	}
	if len(r.ClassificationBreakdown) != 1 {
		t.Errorf("Expected classification breakdown, got %v", r.ClassificationBreakdown)
	}
	if len(r.DailySeries) != 1 {
		t.Errorf("Expected daily series, got %v", r.DailySeries)
	}
}
