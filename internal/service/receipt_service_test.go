package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/testutil"
)

// createReceiptImage creates a test image of the specified size and format
func createReceiptImage(width, height int, format string) ([]byte, string) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	var buf bytes.Buffer
	var filename string

	switch format {
	case "png":
		png.Encode(&buf, img)
		filename = "receipt.png"
	default:
		jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
		filename = "receipt.jpg"
	}

	return buf.Bytes(), filename
}

func newReceiptServiceFixture() (*ReceiptService, *testutil.MockTransactionRepository, *testutil.MockReceiptRepository, *domain.Transaction) {
	transactionRepo := testutil.NewMockTransactionRepository()
	storageRepo := testutil.NewMockReceiptRepository()
	transaction := transactionRepo.AddTransaction(&domain.Transaction{
		WorkspaceID: 1,
		Description: "Mercado",
		Amount:      decimal.NewFromInt(200),
		Type:        domain.TransactionTypeExpense,
		DueDate:     time.Now().UTC(),
	})
	return NewReceiptService(transactionRepo, storageRepo), transactionRepo, storageRepo, transaction
}

func TestAttachReceipt_Success(t *testing.T) {
	svc, _, storageRepo, transaction := newReceiptServiceFixture()
	data, filename := createReceiptImage(100, 100, "jpeg")

	updated, err := svc.Attach(context.Background(), 1, transaction.ID, data, filename)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.ReceiptURL == nil || *updated.ReceiptURL == "" {
		t.Fatal("Expected receipt path stored on transaction")
	}
	if _, ok := storageRepo.Objects[*updated.ReceiptURL]; !ok {
		t.Error("Expected object uploaded to storage")
	}
	if !strings.HasSuffix(*updated.ReceiptURL, ".jpg") {
		t.Errorf("Expected re-encoded jpg path, got %s", *updated.ReceiptURL)
	}
}

func TestAttachReceipt_PNGReencoded(t *testing.T) {
	svc, _, _, transaction := newReceiptServiceFixture()
	data, filename := createReceiptImage(100, 100, "png")

	updated, err := svc.Attach(context.Background(), 1, transaction.ID, data, filename)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasSuffix(*updated.ReceiptURL, ".jpg") {
		t.Errorf("Expected png re-encoded to jpg, got %s", *updated.ReceiptURL)
	}
}

func TestAttachReceipt_ReplacesPrevious(t *testing.T) {
	svc, _, storageRepo, transaction := newReceiptServiceFixture()
	data, filename := createReceiptImage(100, 100, "jpeg")

	first, err := svc.Attach(context.Background(), 1, transaction.ID, data, filename)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	firstPath := *first.ReceiptURL

	second, err := svc.Attach(context.Background(), 1, transaction.ID, data, filename)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *second.ReceiptURL == firstPath {
		t.Error("Expected a fresh object path on replace")
	}
	if _, ok := storageRepo.Objects[firstPath]; ok {
		t.Error("Expected previous object deleted")
	}
}

func TestAttachReceipt_TooLarge(t *testing.T) {
	svc, _, _, transaction := newReceiptServiceFixture()
	data := make([]byte, MaxReceiptSize+1)

	_, err := svc.Attach(context.Background(), 1, transaction.ID, data, "receipt.jpg")
	if !errors.Is(err, ErrReceiptTooLarge) {
		t.Errorf("Expected ErrReceiptTooLarge, got %v", err)
	}
}

func TestAttachReceipt_InvalidExtension(t *testing.T) {
	svc, _, _, transaction := newReceiptServiceFixture()
	data, _ := createReceiptImage(100, 100, "jpeg")

	_, err := svc.Attach(context.Background(), 1, transaction.ID, data, "receipt.gif")
	if !errors.Is(err, ErrInvalidReceiptFormat) {
		t.Errorf("Expected ErrInvalidReceiptFormat, got %v", err)
	}
}

func TestAttachReceipt_CorruptData(t *testing.T) {
	svc, _, _, transaction := newReceiptServiceFixture()

	_, err := svc.Attach(context.Background(), 1, transaction.ID, []byte("not an image"), "receipt.jpg")
	if !errors.Is(err, ErrInvalidReceiptData) {
		t.Errorf("Expected ErrInvalidReceiptData, got %v", err)
	}
}

func TestAttachReceipt_StorageNotEnabled(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	svc := NewReceiptService(transactionRepo, nil)

	if svc.IsEnabled() {
		t.Error("Expected service disabled without storage")
	}

	data, filename := createReceiptImage(100, 100, "jpeg")
	_, err := svc.Attach(context.Background(), 1, uuid.Nil, data, filename)
	if !errors.Is(err, ErrReceiptStorageNotEnabled) {
		t.Errorf("Expected ErrReceiptStorageNotEnabled, got %v", err)
	}
}

func TestDetachReceipt(t *testing.T) {
	svc, _, storageRepo, transaction := newReceiptServiceFixture()
	data, filename := createReceiptImage(100, 100, "jpeg")

	attached, err := svc.Attach(context.Background(), 1, transaction.ID, data, filename)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	path := *attached.ReceiptURL

	detached, err := svc.Detach(context.Background(), 1, transaction.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if detached.ReceiptURL != nil {
		t.Error("Expected receipt cleared from transaction")
	}
	if _, ok := storageRepo.Objects[path]; ok {
		t.Error("Expected object removed from storage")
	}
}

func TestPresignedURL(t *testing.T) {
	svc, _, _, transaction := newReceiptServiceFixture()
	data, filename := createReceiptImage(100, 100, "jpeg")

	attached, err := svc.Attach(context.Background(), 1, transaction.ID, data, filename)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	url, err := svc.PresignedURL(context.Background(), 1, transaction.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(url, *attached.ReceiptURL) {
		t.Errorf("Expected URL to reference object path, got %s", url)
	}
}

func TestPresignedURL_NoReceipt(t *testing.T) {
	svc, _, _, transaction := newReceiptServiceFixture()

	_, err := svc.PresignedURL(context.Background(), 1, transaction.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
