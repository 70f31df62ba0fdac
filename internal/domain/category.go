package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups expenses for breakdowns ("Moradia", "Transporte", ...)
type Category struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Subcategory refines a category ("Moradia" -> "Aluguel")
type Subcategory struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(workspaceID int32, id uuid.UUID) (*Category, error)
	GetAllByWorkspace(workspaceID int32) ([]*Category, error)
	Update(category *Category) (*Category, error)
	Delete(workspaceID int32, id uuid.UUID) error
}

type SubcategoryRepository interface {
	Create(subcategory *Subcategory) (*Subcategory, error)
	GetByID(workspaceID int32, id uuid.UUID) (*Subcategory, error)
	GetAllByCategory(workspaceID int32, categoryID uuid.UUID) ([]*Subcategory, error)
	Update(subcategory *Subcategory) (*Subcategory, error)
	Delete(workspaceID int32, id uuid.UUID) error
}
