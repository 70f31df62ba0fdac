package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/live"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	walletRepo      domain.WalletRepository
	categoryRepo    domain.CategoryRepository
	subcategoryRepo domain.SubcategoryRepository
	payeeRepo       domain.PayeeRepository
	publisher       live.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo domain.TransactionRepository,
	walletRepo domain.WalletRepository,
	categoryRepo domain.CategoryRepository,
	subcategoryRepo domain.SubcategoryRepository,
	payeeRepo domain.PayeeRepository,
	publisher live.EventPublisher,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		payeeRepo:       payeeRepo,
		publisher:       publisher,
	}
}

// TransactionInput holds the input for creating or updating a transaction
type TransactionInput struct {
	Description    string
	Amount         decimal.Decimal
	Type           domain.TransactionType
	DueDate        *time.Time
	PaymentDate    *time.Time
	Classification *domain.Classification
	WalletID       *uuid.UUID
	CategoryID     *uuid.UUID
	SubcategoryID  *uuid.UUID
	PayeeID        *uuid.UUID
}

// CreateTransaction creates a new transaction with validation
func (s *TransactionService) CreateTransaction(workspaceID int32, input TransactionInput) (*domain.Transaction, error) {
	validated, err := s.validate(workspaceID, input)
	if err != nil {
		return nil, err
	}

	// Default due date to today if not provided
	dueDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	transaction := &domain.Transaction{
		WorkspaceID:    workspaceID,
		Description:    validated.Description,
		Amount:         input.Amount,
		Type:           input.Type,
		DueDate:        dueDate,
		PaymentDate:    input.PaymentDate,
		Classification: validated.Classification,
		WalletID:       input.WalletID,
		CategoryID:     input.CategoryID,
		SubcategoryID:  input.SubcategoryID,
		PayeeID:        input.PayeeID,
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.TransactionCreated(created))
	return created, nil
}

// GetTransaction retrieves a transaction by ID within a workspace
func (s *TransactionService) GetTransaction(workspaceID int32, id uuid.UUID) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(workspaceID, id)
}

// ListTransactions returns every transaction whose due date falls inside
// the range, ordered by due date
func (s *TransactionService) ListTransactions(workspaceID int32, r domain.DateRange) ([]*domain.Transaction, error) {
	return s.transactionRepo.ListByRange(workspaceID, r)
}

// UpdateTransaction updates an existing transaction with validation
func (s *TransactionService) UpdateTransaction(workspaceID int32, id uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	validated, err := s.validate(workspaceID, input)
	if err != nil {
		return nil, err
	}

	dueDate := existing.DueDate
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	existing.Description = validated.Description
	existing.Amount = input.Amount
	existing.Type = input.Type
	existing.DueDate = dueDate
	existing.PaymentDate = input.PaymentDate
	existing.Classification = validated.Classification
	existing.WalletID = input.WalletID
	existing.CategoryID = input.CategoryID
	existing.SubcategoryID = input.SubcategoryID
	existing.PayeeID = input.PayeeID

	updated, err := s.transactionRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.TransactionUpdated(updated))
	return updated, nil
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(workspaceID int32, id uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(workspaceID, id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(workspaceID, id); err != nil {
		return err
	}

	s.publisher.Publish(workspaceID, live.TransactionDeleted(transaction))
	return nil
}

// ToggleSettlement flips a transaction between planned and settled. Settling
// stamps the payment date with now (or the provided date); unsettling clears it.
func (s *TransactionService) ToggleSettlement(workspaceID int32, id uuid.UUID, paymentDate *time.Time) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	var next *time.Time
	if !existing.IsSettled() {
		settled := time.Now().UTC()
		if paymentDate != nil {
			settled = *paymentDate
		}
		next = &settled
	}

	updated, err := s.transactionRepo.SetPaymentDate(workspaceID, id, next)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.TransactionSettled(updated))
	return updated, nil
}

type validatedInput struct {
	Description    string
	Classification *domain.Classification
}

// validate checks field constraints and that every referenced entity exists
// in the workspace
func (s *TransactionService) validate(workspaceID int32, input TransactionInput) (*validatedInput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	// Classification only applies to expenses; other types ignore it
	var classification *domain.Classification
	if input.Type == domain.TransactionTypeExpense {
		if input.Classification != nil {
			if !input.Classification.IsValid() {
				return nil, domain.ErrInvalidClassification
			}
			classification = input.Classification
		} else {
			def := domain.ClassificationNecessary
			classification = &def
		}
	}

	if input.WalletID != nil {
		if _, err := s.walletRepo.GetByID(workspaceID, *input.WalletID); err != nil {
			return nil, domain.ErrWalletNotFound
		}
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(workspaceID, *input.CategoryID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
	}

	if input.SubcategoryID != nil {
		subcategory, err := s.subcategoryRepo.GetByID(workspaceID, *input.SubcategoryID)
		if err != nil {
			return nil, domain.ErrSubcategoryNotFound
		}
		// A subcategory must belong to the selected category
		if input.CategoryID == nil || subcategory.CategoryID != *input.CategoryID {
			return nil, domain.ErrSubcategoryNotFound
		}
	}

	if input.PayeeID != nil {
		if _, err := s.payeeRepo.GetByID(workspaceID, *input.PayeeID); err != nil {
			return nil, domain.ErrPayeeNotFound
		}
	}

	return &validatedInput{
		Description:    description,
		Classification: classification,
	}, nil
}
