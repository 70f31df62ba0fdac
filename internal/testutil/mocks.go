package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// MockTransactionRepository is an in-memory implementation of
// domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	CreateErr    error
	ListErr      error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// AddTransaction seeds a transaction, assigning an ID if needed
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) *domain.Transaction {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	m.Transactions[transaction.ID] = transaction
	return transaction
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	transaction.ID = uuid.New()
	transaction.CreatedAt = time.Now().UTC()
	transaction.UpdatedAt = transaction.CreatedAt
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a transaction by ID within a workspace
func (m *MockTransactionRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.WorkspaceID != workspaceID {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// ListByRange returns the transactions whose due date falls inside the range,
// ordered by due date
func (m *MockTransactionRepository) ListByRange(workspaceID int32, r domain.DateRange) ([]*domain.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	result := make([]*domain.Transaction, 0)
	for _, transaction := range m.Transactions {
		if transaction.WorkspaceID == workspaceID && r.Contains(transaction.DueDate) {
			result = append(result, transaction)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result, nil
}

// Update replaces an existing transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	existing, ok := m.Transactions[transaction.ID]
	if !ok || existing.WorkspaceID != transaction.WorkspaceID {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.UpdatedAt = time.Now().UTC()
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(workspaceID int32, id uuid.UUID) error {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.WorkspaceID != workspaceID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// SetPaymentDate stamps or clears the payment date
func (m *MockTransactionRepository) SetPaymentDate(workspaceID int32, id uuid.UUID, paymentDate *time.Time) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.WorkspaceID != workspaceID {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.PaymentDate = paymentDate
	transaction.UpdatedAt = time.Now().UTC()
	return transaction, nil
}

// SetReceiptURL stores or clears the receipt object path
func (m *MockTransactionRepository) SetReceiptURL(workspaceID int32, id uuid.UUID, receiptURL *string) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.WorkspaceID != workspaceID {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.ReceiptURL = receiptURL
	transaction.UpdatedAt = time.Now().UTC()
	return transaction, nil
}

// MockWalletRepository is an in-memory implementation of domain.WalletRepository
type MockWalletRepository struct {
	Wallets map[uuid.UUID]*domain.Wallet
}

// NewMockWalletRepository creates a new MockWalletRepository
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{Wallets: make(map[uuid.UUID]*domain.Wallet)}
}

// Create stores a new wallet
func (m *MockWalletRepository) Create(wallet *domain.Wallet) (*domain.Wallet, error) {
	wallet.ID = uuid.New()
	m.Wallets[wallet.ID] = wallet
	return wallet, nil
}

// GetByID retrieves a wallet by ID within a workspace
func (m *MockWalletRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Wallet, error) {
	wallet, ok := m.Wallets[id]
	if !ok || wallet.WorkspaceID != workspaceID {
		return nil, domain.ErrWalletNotFound
	}
	return wallet, nil
}

// GetAllByWorkspace lists the wallets of a workspace sorted by name
func (m *MockWalletRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Wallet, error) {
	result := make([]*domain.Wallet, 0)
	for _, wallet := range m.Wallets {
		if wallet.WorkspaceID == workspaceID {
			result = append(result, wallet)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update replaces an existing wallet
func (m *MockWalletRepository) Update(wallet *domain.Wallet) (*domain.Wallet, error) {
	existing, ok := m.Wallets[wallet.ID]
	if !ok || existing.WorkspaceID != wallet.WorkspaceID {
		return nil, domain.ErrWalletNotFound
	}
	m.Wallets[wallet.ID] = wallet
	return wallet, nil
}

// Delete removes a wallet
func (m *MockWalletRepository) Delete(workspaceID int32, id uuid.UUID) error {
	wallet, ok := m.Wallets[id]
	if !ok || wallet.WorkspaceID != workspaceID {
		return domain.ErrWalletNotFound
	}
	delete(m.Wallets, id)
	return nil
}

// MockPayeeRepository is an in-memory implementation of domain.PayeeRepository
type MockPayeeRepository struct {
	Payees map[uuid.UUID]*domain.Payee
}

// NewMockPayeeRepository creates a new MockPayeeRepository
func NewMockPayeeRepository() *MockPayeeRepository {
	return &MockPayeeRepository{Payees: make(map[uuid.UUID]*domain.Payee)}
}

// Create stores a new payee
func (m *MockPayeeRepository) Create(payee *domain.Payee) (*domain.Payee, error) {
	payee.ID = uuid.New()
	m.Payees[payee.ID] = payee
	return payee, nil
}

// GetByID retrieves a payee by ID within a workspace
func (m *MockPayeeRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Payee, error) {
	payee, ok := m.Payees[id]
	if !ok || payee.WorkspaceID != workspaceID {
		return nil, domain.ErrPayeeNotFound
	}
	return payee, nil
}

// GetAllByWorkspace lists the payees of a workspace sorted by name
func (m *MockPayeeRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Payee, error) {
	result := make([]*domain.Payee, 0)
	for _, payee := range m.Payees {
		if payee.WorkspaceID == workspaceID {
			result = append(result, payee)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update replaces an existing payee
func (m *MockPayeeRepository) Update(payee *domain.Payee) (*domain.Payee, error) {
	existing, ok := m.Payees[payee.ID]
	if !ok || existing.WorkspaceID != payee.WorkspaceID {
		return nil, domain.ErrPayeeNotFound
	}
	m.Payees[payee.ID] = payee
	return payee, nil
}

// Delete removes a payee
func (m *MockPayeeRepository) Delete(workspaceID int32, id uuid.UUID) error {
	payee, ok := m.Payees[id]
	if !ok || payee.WorkspaceID != workspaceID {
		return domain.ErrPayeeNotFound
	}
	delete(m.Payees, id)
	return nil
}

// MockCategoryRepository is an in-memory implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[uuid.UUID]*domain.Category)}
}

// Create stores a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = uuid.New()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID within a workspace
func (m *MockCategoryRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok || category.WorkspaceID != workspaceID {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// GetAllByWorkspace lists the categories of a workspace sorted by name
func (m *MockCategoryRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Category, error) {
	result := make([]*domain.Category, 0)
	for _, category := range m.Categories {
		if category.WorkspaceID == workspaceID {
			result = append(result, category)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update replaces an existing category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	existing, ok := m.Categories[category.ID]
	if !ok || existing.WorkspaceID != category.WorkspaceID {
		return nil, domain.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(workspaceID int32, id uuid.UUID) error {
	category, ok := m.Categories[id]
	if !ok || category.WorkspaceID != workspaceID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockSubcategoryRepository is an in-memory implementation of
// domain.SubcategoryRepository
type MockSubcategoryRepository struct {
	Subcategories map[uuid.UUID]*domain.Subcategory
}

// NewMockSubcategoryRepository creates a new MockSubcategoryRepository
func NewMockSubcategoryRepository() *MockSubcategoryRepository {
	return &MockSubcategoryRepository{Subcategories: make(map[uuid.UUID]*domain.Subcategory)}
}

// Create stores a new subcategory
func (m *MockSubcategoryRepository) Create(subcategory *domain.Subcategory) (*domain.Subcategory, error) {
	subcategory.ID = uuid.New()
	m.Subcategories[subcategory.ID] = subcategory
	return subcategory, nil
}

// GetByID retrieves a subcategory by ID within a workspace
func (m *MockSubcategoryRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Subcategory, error) {
	subcategory, ok := m.Subcategories[id]
	if !ok || subcategory.WorkspaceID != workspaceID {
		return nil, domain.ErrSubcategoryNotFound
	}
	return subcategory, nil
}

// GetAllByCategory lists the subcategories of a category sorted by name
func (m *MockSubcategoryRepository) GetAllByCategory(workspaceID int32, categoryID uuid.UUID) ([]*domain.Subcategory, error) {
	result := make([]*domain.Subcategory, 0)
	for _, subcategory := range m.Subcategories {
		if subcategory.WorkspaceID == workspaceID && subcategory.CategoryID == categoryID {
			result = append(result, subcategory)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update replaces an existing subcategory
func (m *MockSubcategoryRepository) Update(subcategory *domain.Subcategory) (*domain.Subcategory, error) {
	existing, ok := m.Subcategories[subcategory.ID]
	if !ok || existing.WorkspaceID != subcategory.WorkspaceID {
		return nil, domain.ErrSubcategoryNotFound
	}
	m.Subcategories[subcategory.ID] = subcategory
	return subcategory, nil
}

// Delete removes a subcategory
func (m *MockSubcategoryRepository) Delete(workspaceID int32, id uuid.UUID) error {
	subcategory, ok := m.Subcategories[id]
	if !ok || subcategory.WorkspaceID != workspaceID {
		return domain.ErrSubcategoryNotFound
	}
	delete(m.Subcategories, id)
	return nil
}

// MockReceiptRepository is an in-memory implementation of
// storage.ReceiptRepository
type MockReceiptRepository struct {
	Objects map[string][]byte
}

// NewMockReceiptRepository creates a new MockReceiptRepository
func NewMockReceiptRepository() *MockReceiptRepository {
	return &MockReceiptRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockReceiptRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(data); err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

// Delete removes the object
func (m *MockReceiptRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL
func (m *MockReceiptRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s", objectPath), nil
}
