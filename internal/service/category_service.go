package service

import (
	"github.com/google/uuid"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/live"
)

// CategoryService handles category and subcategory business logic
type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	subcategoryRepo domain.SubcategoryRepository
	publisher       live.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, subcategoryRepo domain.SubcategoryRepository, publisher live.EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		publisher:       publisher,
	}
}

// CreateCategory creates a new category with validation
func (s *CategoryService) CreateCategory(workspaceID int32, name string) (*domain.Category, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(&domain.Category{
		WorkspaceID: workspaceID,
		Name:        name,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeCreated, live.EntityTypeCategory, created))
	return created, nil
}

// GetCategories retrieves all categories for a workspace
func (s *CategoryService) GetCategories(workspaceID int32) ([]*domain.Category, error) {
	return s.categoryRepo.GetAllByWorkspace(workspaceID)
}

// GetCategoryByID retrieves a category by ID within a workspace
func (s *CategoryService) GetCategoryByID(workspaceID int32, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.GetByID(workspaceID, id)
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(workspaceID int32, id uuid.UUID, name string) (*domain.Category, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	updated, err := s.categoryRepo.Update(&domain.Category{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        name,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeUpdated, live.EntityTypeCategory, updated))
	return updated, nil
}

// DeleteCategory removes a category and its subcategories. Transactions that
// referenced them keep their history with the references cleared.
func (s *CategoryService) DeleteCategory(workspaceID int32, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(workspaceID, id); err != nil {
		return err
	}

	s.publisher.Publish(workspaceID, live.NewEvent(live.EventTypeDeleted, live.EntityTypeCategory, map[string]uuid.UUID{"id": id}))
	return nil
}

// CreateSubcategory creates a new subcategory under an existing category
func (s *CategoryService) CreateSubcategory(workspaceID int32, categoryID uuid.UUID, name string) (*domain.Subcategory, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(workspaceID, categoryID); err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	return s.subcategoryRepo.Create(&domain.Subcategory{
		WorkspaceID: workspaceID,
		CategoryID:  categoryID,
		Name:        name,
	})
}

// GetSubcategories retrieves the subcategories of a category
func (s *CategoryService) GetSubcategories(workspaceID int32, categoryID uuid.UUID) ([]*domain.Subcategory, error) {
	if _, err := s.categoryRepo.GetByID(workspaceID, categoryID); err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	return s.subcategoryRepo.GetAllByCategory(workspaceID, categoryID)
}

// UpdateSubcategory renames a subcategory
func (s *CategoryService) UpdateSubcategory(workspaceID int32, id uuid.UUID, name string) (*domain.Subcategory, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	existing, err := s.subcategoryRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	return s.subcategoryRepo.Update(existing)
}

// DeleteSubcategory removes a subcategory
func (s *CategoryService) DeleteSubcategory(workspaceID int32, id uuid.UUID) error {
	return s.subcategoryRepo.Delete(workspaceID, id)
}
