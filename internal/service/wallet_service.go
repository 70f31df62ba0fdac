package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/live"
)

// WalletService handles wallet-related business logic
type WalletService struct {
	walletRepo domain.WalletRepository
	publisher  live.EventPublisher
}

// NewWalletService creates a new WalletService
func NewWalletService(walletRepo domain.WalletRepository, publisher live.EventPublisher) *WalletService {
	return &WalletService{walletRepo: walletRepo, publisher: publisher}
}

// CreateWallet creates a new wallet with validation
func (s *WalletService) CreateWallet(workspaceID int32, name string) (*domain.Wallet, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	created, err := s.walletRepo.Create(&domain.Wallet{
		WorkspaceID: workspaceID,
		Name:        name,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeCreated, live.EntityTypeWallet, created))
	return created, nil
}

// GetWallets retrieves all wallets for a workspace
func (s *WalletService) GetWallets(workspaceID int32) ([]*domain.Wallet, error) {
	return s.walletRepo.GetAllByWorkspace(workspaceID)
}

// GetWalletByID retrieves a wallet by ID within a workspace
func (s *WalletService) GetWalletByID(workspaceID int32, id uuid.UUID) (*domain.Wallet, error) {
	return s.walletRepo.GetByID(workspaceID, id)
}

// UpdateWallet renames a wallet
func (s *WalletService) UpdateWallet(workspaceID int32, id uuid.UUID, name string) (*domain.Wallet, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	updated, err := s.walletRepo.Update(&domain.Wallet{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        name,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeUpdated, live.EntityTypeWallet, updated))
	return updated, nil
}

// DeleteWallet removes a wallet. Transactions that referenced it keep their
// history with the wallet cleared.
func (s *WalletService) DeleteWallet(workspaceID int32, id uuid.UUID) error {
	if err := s.walletRepo.Delete(workspaceID, id); err != nil {
		return err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeDeleted, live.EntityTypeWallet, map[string]uuid.UUID{"id": id}))
	return nil
}

// validateName trims and bounds-checks an entity name
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxWalletNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}
