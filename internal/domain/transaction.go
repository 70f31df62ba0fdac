package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeRevenue    TransactionType = "revenue"
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeInvestment TransactionType = "investment"
)

// IsValid reports whether t is one of the recognized transaction types
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeRevenue, TransactionTypeExpense, TransactionTypeInvestment:
		return true
	}
	return false
}

type Classification string

const (
	ClassificationEssential   Classification = "essential"
	ClassificationNecessary   Classification = "necessary"
	ClassificationSuperfluous Classification = "superfluous"
)

// Classifications is the closed set of classifications in presentation order
var Classifications = []Classification{
	ClassificationEssential,
	ClassificationNecessary,
	ClassificationSuperfluous,
}

// IsValid reports whether c is one of the recognized classifications
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationEssential, ClassificationNecessary, ClassificationSuperfluous:
		return true
	}
	return false
}

// Transaction is a single money movement. Amount is always positive; the
// direction of the movement is carried by Type, never by a negative amount.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	WorkspaceID     int32           `json:"workspaceId"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	DueDate         time.Time       `json:"dueDate"`
	PaymentDate     *time.Time      `json:"paymentDate,omitempty"`
	Classification  *Classification `json:"classification,omitempty"`
	WalletID        *uuid.UUID      `json:"walletId,omitempty"`
	CategoryID      *uuid.UUID      `json:"categoryId,omitempty"`
	SubcategoryID   *uuid.UUID      `json:"subcategoryId,omitempty"`
	PayeeID         *uuid.UUID      `json:"payeeId,omitempty"`
	WalletName      *string         `json:"walletName,omitempty"`
	CategoryName    *string         `json:"categoryName,omitempty"`
	SubcategoryName *string         `json:"subcategoryName,omitempty"`
	PayeeName       *string         `json:"payeeName,omitempty"`
	ReceiptURL      *string         `json:"receiptUrl,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// IsSettled reports whether the cash movement has actually occurred
func (t *Transaction) IsSettled() bool {
	return t.PaymentDate != nil
}

// Validation constants
const (
	MaxDescriptionLength = 255
)

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(workspaceID int32, id uuid.UUID) (*Transaction, error)
	// ListByRange returns every transaction whose due date falls inside the
	// range, with category, subcategory, payee and wallet names resolved.
	// The reporting engine holds the full in-range set in memory.
	ListByRange(workspaceID int32, r DateRange) ([]*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(workspaceID int32, id uuid.UUID) error
	SetPaymentDate(workspaceID int32, id uuid.UUID, paymentDate *time.Time) (*Transaction, error)
	SetReceiptURL(workspaceID int32, id uuid.UUID, receiptURL *string) (*Transaction, error)
}
