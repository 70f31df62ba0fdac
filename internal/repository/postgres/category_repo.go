package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (workspace_id, name)
		VALUES ($1, $2)
		RETURNING id, workspace_id, name, created_at, updated_at`,
		category.WorkspaceID, category.Name)

	return scanCategory(row)
}

// GetByID retrieves a category by ID within a workspace
func (r *CategoryRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM categories
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)

	category, err := scanCategory(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	return category, err
}

// GetAllByWorkspace lists all categories in a workspace ordered by name
func (r *CategoryRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Category, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, name, created_at, updated_at
		FROM categories
		WHERE workspace_id = $1
		ORDER BY name`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update renames a category
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET name = $3, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
		RETURNING id, workspace_id, name, created_at, updated_at`,
		category.WorkspaceID, category.ID, category.Name)

	updated, err := scanCategory(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	return updated, err
}

// Delete removes a category and cascades to its subcategories
func (r *CategoryRepository) Delete(workspaceID int32, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// SubcategoryRepository implements domain.SubcategoryRepository using PostgreSQL
type SubcategoryRepository struct {
	pool *pgxpool.Pool
}

// NewSubcategoryRepository creates a new SubcategoryRepository
func NewSubcategoryRepository(pool *pgxpool.Pool) *SubcategoryRepository {
	return &SubcategoryRepository{pool: pool}
}

// Create inserts a new subcategory
func (r *SubcategoryRepository) Create(subcategory *domain.Subcategory) (*domain.Subcategory, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO subcategories (workspace_id, category_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, workspace_id, category_id, name, created_at, updated_at`,
		subcategory.WorkspaceID, subcategory.CategoryID, subcategory.Name)

	return scanSubcategory(row)
}

// GetByID retrieves a subcategory by ID within a workspace
func (r *SubcategoryRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Subcategory, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, workspace_id, category_id, name, created_at, updated_at
		FROM subcategories
		WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)

	subcategory, err := scanSubcategory(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrSubcategoryNotFound
	}
	return subcategory, err
}

// GetAllByCategory lists the subcategories of a category ordered by name
func (r *SubcategoryRepository) GetAllByCategory(workspaceID int32, categoryID uuid.UUID) ([]*domain.Subcategory, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, category_id, name, created_at, updated_at
		FROM subcategories
		WHERE workspace_id = $1 AND category_id = $2
		ORDER BY name`,
		workspaceID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subcategories := make([]*domain.Subcategory, 0)
	for rows.Next() {
		subcategory, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		subcategories = append(subcategories, subcategory)
	}
	return subcategories, rows.Err()
}

// Update renames a subcategory
func (r *SubcategoryRepository) Update(subcategory *domain.Subcategory) (*domain.Subcategory, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE subcategories SET name = $3, updated_at = now()
		WHERE workspace_id = $1 AND id = $2
		RETURNING id, workspace_id, category_id, name, created_at, updated_at`,
		subcategory.WorkspaceID, subcategory.ID, subcategory.Name)

	updated, err := scanSubcategory(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrSubcategoryNotFound
	}
	return updated, err
}

// Delete removes a subcategory
func (r *SubcategoryRepository) Delete(workspaceID int32, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subcategories WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubcategoryNotFound
	}
	return nil
}

func scanSubcategory(row pgx.Row) (*domain.Subcategory, error) {
	var s domain.Subcategory
	if err := row.Scan(&s.ID, &s.WorkspaceID, &s.CategoryID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
