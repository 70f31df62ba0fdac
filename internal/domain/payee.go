package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payee is who a transaction was paid to or received from
type Payee struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PayeeRepository interface {
	Create(payee *Payee) (*Payee, error)
	GetByID(workspaceID int32, id uuid.UUID) (*Payee, error)
	GetAllByWorkspace(workspaceID int32) ([]*Payee, error)
	Update(payee *Payee) (*Payee, error)
	Delete(workspaceID int32, id uuid.UUID) error
}
