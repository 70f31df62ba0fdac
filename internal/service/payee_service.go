package service

import (
	"github.com/google/uuid"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/live"
)

// PayeeService handles payee-related business logic
type PayeeService struct {
	payeeRepo domain.PayeeRepository
	publisher live.EventPublisher
}

// NewPayeeService creates a new PayeeService
func NewPayeeService(payeeRepo domain.PayeeRepository, publisher live.EventPublisher) *PayeeService {
	return &PayeeService{payeeRepo: payeeRepo, publisher: publisher}
}

// CreatePayee creates a new payee with validation
func (s *PayeeService) CreatePayee(workspaceID int32, name string) (*domain.Payee, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	created, err := s.payeeRepo.Create(&domain.Payee{
		WorkspaceID: workspaceID,
		Name:        name,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeCreated, live.EntityTypePayee, created))
	return created, nil
}

// GetPayees retrieves all payees for a workspace
func (s *PayeeService) GetPayees(workspaceID int32) ([]*domain.Payee, error) {
	return s.payeeRepo.GetAllByWorkspace(workspaceID)
}

// GetPayeeByID retrieves a payee by ID within a workspace
func (s *PayeeService) GetPayeeByID(workspaceID int32, id uuid.UUID) (*domain.Payee, error) {
	return s.payeeRepo.GetByID(workspaceID, id)
}

// UpdatePayee renames a payee
func (s *PayeeService) UpdatePayee(workspaceID int32, id uuid.UUID, name string) (*domain.Payee, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	updated, err := s.payeeRepo.Update(&domain.Payee{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        name,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeUpdated, live.EntityTypePayee, updated))
	return updated, nil
}

// DeletePayee removes a payee
func (s *PayeeService) DeletePayee(workspaceID int32, id uuid.UUID) error {
	if err := s.payeeRepo.Delete(workspaceID, id); err != nil {
		return err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeDeleted, live.EntityTypePayee, map[string]uuid.UUID{"id": id}))
	return nil
}
