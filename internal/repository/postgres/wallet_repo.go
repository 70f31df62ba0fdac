package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// WalletRepository implements domain.WalletRepository using PostgreSQL
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Create inserts a new wallet
func (r *WalletRepository) Create(wallet *domain.Wallet) (*domain.Wallet, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO wallets (workspace_id, name)
		VALUES ($1, $2)
		RETURNING id, workspace_id, name, created_at, updated_at`,
		wallet.WorkspaceID, wallet.Name)

	return scanWallet(row)
}

// GetByID retrieves a wallet by ID within a workspace
func (r *WalletRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Wallet, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM wallets
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)

	wallet, err := scanWallet(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrWalletNotFound
	}
	return wallet, err
}

// GetAllByWorkspace lists all wallets in a workspace ordered by name
func (r *WalletRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Wallet, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM wallets
		WHERE workspace_id = $1
		ORDER BY name`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wallets := make([]*domain.Wallet, 0)
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}
	return wallets, rows.Err()
}

// Update renames a wallet
func (r *WalletRepository) Update(wallet *domain.Wallet) (*domain.Wallet, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE wallets SET name = $3, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
		RETURNING id, workspace_id, name, created_at, updated_at`,
		wallet.WorkspaceID, wallet.ID, wallet.Name)

	updated, err := scanWallet(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrWalletNotFound
	}
	return updated, err
}

// Delete removes a wallet
func (r *WalletRepository) Delete(workspaceID int32, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM wallets WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := row.Scan(&w.ID, &w.WorkspaceID, &w.Name, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
