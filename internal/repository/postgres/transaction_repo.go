package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `
	t.id, t.workspace_id, t.description, t.amount, t.type, t.due_date,
	t.payment_date, t.classification, t.wallet_id, t.category_id,
	t.subcategory_id, t.payee_id, t.receipt_url, t.created_at, t.updated_at,
	w.name AS wallet_name, c.name AS category_name,
	s.name AS subcategory_name, p.name AS payee_name`

const transactionJoins = `
	LEFT JOIN wallets w ON w.id = t.wallet_id
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN subcategories s ON s.id = t.subcategory_id
	LEFT JOIN payees p ON p.id = t.payee_id`

// Create inserts a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var id uuid.UUID
	err = r.pool.QueryRow(ctx, `
		INSERT INTO transactions (
			workspace_id, description, amount, type, due_date, payment_date,
			classification, wallet_id, category_id, subcategory_id, payee_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		transaction.WorkspaceID,
		transaction.Description,
		amount,
		string(transaction.Type),
		transaction.DueDate,
		transaction.PaymentDate,
		classificationToText(transaction.Classification),
		transaction.WalletID,
		transaction.CategoryID,
		transaction.SubcategoryID,
		transaction.PayeeID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(transaction.WorkspaceID, id)
}

// GetByID retrieves a transaction by its ID within a workspace
func (r *TransactionRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t`+transactionJoins+`
		WHERE t.workspace_id = $1 AND t.id = $2`,
		workspaceID, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// ListByRange returns all transactions with a due date inside the range,
// ordered by due date, with reference names resolved
func (r *TransactionRepository) ListByRange(workspaceID int32, dateRange domain.DateRange) ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t`+transactionJoins+`
		WHERE t.workspace_id = $1 AND t.due_date >= $2 AND t.due_date <= $3
		ORDER BY t.due_date, t.created_at`,
		workspaceID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// Update replaces the mutable fields of a transaction
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET
			description = $3, amount = $4, type = $5, due_date = $6,
			payment_date = $7, classification = $8, wallet_id = $9,
			category_id = $10, subcategory_id = $11, payee_id = $12,
			updated_at = now()
		WHERE workspace_id = $1 AND id = $2`,
		transaction.WorkspaceID,
		transaction.ID,
		transaction.Description,
		amount,
		string(transaction.Type),
		transaction.DueDate,
		transaction.PaymentDate,
		classificationToText(transaction.Classification),
		transaction.WalletID,
		transaction.CategoryID,
		transaction.SubcategoryID,
		transaction.PayeeID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	return r.GetByID(transaction.WorkspaceID, transaction.ID)
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(workspaceID int32, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// SetPaymentDate settles or unsettles a transaction
func (r *TransactionRepository) SetPaymentDate(workspaceID int32, id uuid.UUID, paymentDate *time.Time) (*domain.Transaction, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET payment_date = $3, updated_at = now()
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id, paymentDate)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	return r.GetByID(workspaceID, id)
}

// SetReceiptURL attaches or clears the receipt image URL
func (r *TransactionRepository) SetReceiptURL(workspaceID int32, id uuid.UUID, receiptURL *string) (*domain.Transaction, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET receipt_url = $3, updated_at = now()
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id, receiptURL)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	return r.GetByID(workspaceID, id)
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t               domain.Transaction
		amount          pgtype.Numeric
		paymentDate     pgtype.Date
		classification  pgtype.Text
		walletID        *uuid.UUID
		categoryID      *uuid.UUID
		subcategoryID   *uuid.UUID
		payeeID         *uuid.UUID
		receiptURL      pgtype.Text
		walletName      pgtype.Text
		categoryName    pgtype.Text
		subcategoryName pgtype.Text
		payeeName       pgtype.Text
	)

	err := row.Scan(
		&t.ID, &t.WorkspaceID, &t.Description, &amount, &t.Type, &t.DueDate,
		&paymentDate, &classification, &walletID, &categoryID,
		&subcategoryID, &payeeID, &receiptURL, &t.CreatedAt, &t.UpdatedAt,
		&walletName, &categoryName, &subcategoryName, &payeeName,
	)
	if err != nil {
		return nil, err
	}

	t.Amount = pgNumericToDecimal(amount)
	if paymentDate.Valid {
		d := paymentDate.Time
		t.PaymentDate = &d
	}
	if classification.Valid {
		cls := domain.Classification(classification.String)
		t.Classification = &cls
	}
	t.WalletID = walletID
	t.CategoryID = categoryID
	t.SubcategoryID = subcategoryID
	t.PayeeID = payeeID
	t.ReceiptURL = textToString(receiptURL)
	t.WalletName = textToString(walletName)
	t.CategoryName = textToString(categoryName)
	t.SubcategoryName = textToString(subcategoryName)
	t.PayeeName = textToString(payeeName)

	return &t, nil
}

func classificationToText(c *domain.Classification) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

func textToString(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
