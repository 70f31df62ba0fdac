package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is an account money moves in and out of (bank account, cash, card)
type Wallet struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const MaxWalletNameLength = 255

type WalletRepository interface {
	Create(wallet *Wallet) (*Wallet, error)
	GetByID(workspaceID int32, id uuid.UUID) (*Wallet, error)
	GetAllByWorkspace(workspaceID int32) ([]*Wallet, error)
	Update(wallet *Wallet) (*Wallet, error)
	Delete(workspaceID int32, id uuid.UUID) error
}
