package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// PayeeRepository implements domain.PayeeRepository using PostgreSQL
type PayeeRepository struct {
	pool *pgxpool.Pool
}

// NewPayeeRepository creates a new PayeeRepository
func NewPayeeRepository(pool *pgxpool.Pool) *PayeeRepository {
	return &PayeeRepository{pool: pool}
}

// Create inserts a new payee
func (r *PayeeRepository) Create(payee *domain.Payee) (*domain.Payee, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO payees (workspace_id, name)
		VALUES ($1, $2)
		RETURNING id, workspace_id, name, created_at, updated_at`,
		payee.WorkspaceID, payee.Name)

	return scanPayee(row)
}

// GetByID retrieves a payee by ID within a workspace
func (r *PayeeRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Payee, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM payees
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)

	payee, err := scanPayee(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrPayeeNotFound
	}
	return payee, err
}

// GetAllByWorkspace lists all payees in a workspace ordered by name
func (r *PayeeRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Payee, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM payees
		WHERE workspace_id = $1
		ORDER BY name`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payees := make([]*domain.Payee, 0)
	for rows.Next() {
		payee, err := scanPayee(rows)
		if err != nil {
			return nil, err
		}
		payees = append(payees, payee)
	}
	return payees, rows.Err()
}

// Update renames a payee
func (r *PayeeRepository) Update(payee *domain.Payee) (*domain.Payee, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE payees SET name = $3, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
		RETURNING id, workspace_id, name, created_at, updated_at`,
		payee.WorkspaceID, payee.ID, payee.Name)

	updated, err := scanPayee(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrPayeeNotFound
	}
	return updated, err
}

// Delete removes a payee
func (r *PayeeRepository) Delete(workspaceID int32, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM payees WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPayeeNotFound
	}
	return nil
}

func scanPayee(row pgx.Row) (*domain.Payee, error) {
	var p domain.Payee
	if err := row.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
