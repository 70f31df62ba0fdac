package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/live"
	"github.com/renanvonb/nomo-backend/internal/testutil"
)

func newCategoryService() *CategoryService {
	return NewCategoryService(testutil.NewMockCategoryRepository(), testutil.NewMockSubcategoryRepository(), &live.NoOpPublisher{})
}

func TestCreateCategory_Success(t *testing.T) {
	svc := newCategoryService()

	category, err := svc.CreateCategory(1, "  Moradia  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Name != "Moradia" {
		t.Errorf("Expected trimmed name 'Moradia', got %q", category.Name)
	}
	if category.WorkspaceID != 1 {
		t.Errorf("Expected workspace 1, got %d", category.WorkspaceID)
	}
}

func TestCreateCategory_NameRequired(t *testing.T) {
	svc := newCategoryService()

	_, err := svc.CreateCategory(1, "   ")
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestCreateCategory_NameTooLong(t *testing.T) {
	svc := newCategoryService()

	_, err := svc.CreateCategory(1, strings.Repeat("a", domain.MaxWalletNameLength+1))
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestCreateSubcategory_ParentMustExist(t *testing.T) {
	svc := newCategoryService()

	_, err := svc.CreateSubcategory(1, uuid.New(), "Aluguel")
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateSubcategory_Success(t *testing.T) {
	svc := newCategoryService()

	category, err := svc.CreateCategory(1, "Moradia")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	subcategory, err := svc.CreateSubcategory(1, category.ID, "Aluguel")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if subcategory.CategoryID != category.ID {
		t.Errorf("Expected parent %s, got %s", category.ID, subcategory.CategoryID)
	}

	subcategories, err := svc.GetSubcategories(1, category.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(subcategories) != 1 {
		t.Errorf("Expected 1 subcategory, got %d", len(subcategories))
	}
}

func TestCreateSubcategory_ParentScopedToWorkspace(t *testing.T) {
	svc := newCategoryService()

	category, err := svc.CreateCategory(1, "Moradia")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = svc.CreateSubcategory(2, category.ID, "Aluguel")
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound across workspaces, got %v", err)
	}
}

func TestUpdateSubcategory_Rename(t *testing.T) {
	svc := newCategoryService()

	category, _ := svc.CreateCategory(1, "Moradia")
	subcategory, _ := svc.CreateSubcategory(1, category.ID, "Aluguel")

	renamed, err := svc.UpdateSubcategory(1, subcategory.ID, "Condomínio")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if renamed.Name != "Condomínio" {
		t.Errorf("Expected renamed subcategory, got %q", renamed.Name)
	}
	if renamed.CategoryID != category.ID {
		t.Errorf("Expected parent preserved, got %s", renamed.CategoryID)
	}
}

func TestDeleteCategory(t *testing.T) {
	svc := newCategoryService()

	category, _ := svc.CreateCategory(1, "Moradia")
	if err := svc.DeleteCategory(1, category.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := svc.GetCategoryByID(1, category.ID)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestWalletService_CreateAndRename(t *testing.T) {
	svc := NewWalletService(testutil.NewMockWalletRepository(), &live.NoOpPublisher{})

	wallet, err := svc.CreateWallet(1, "Nubank")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	renamed, err := svc.UpdateWallet(1, wallet.ID, "Nubank PJ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if renamed.Name != "Nubank PJ" {
		t.Errorf("Expected renamed wallet, got %q", renamed.Name)
	}
}

func TestWalletService_NameValidation(t *testing.T) {
	svc := NewWalletService(testutil.NewMockWalletRepository(), &live.NoOpPublisher{})

	if _, err := svc.CreateWallet(1, ""); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.CreateWallet(1, strings.Repeat("x", domain.MaxWalletNameLength+1)); !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}
