package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/repository/storage"
)

const (
	MaxReceiptSize   = 5 * 1024 * 1024 // 5MB
	MaxReceiptWidth  = 1200
	ReceiptQuality   = 85
	ReceiptURLExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge          = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat     = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrInvalidReceiptData       = errors.New("invalid image data")
	ErrReceiptStorageNotEnabled = errors.New("receipt storage not configured")
)

// AllowedReceiptExtensions maps extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ReceiptService attaches receipt images to transactions. Images are
// re-encoded and downscaled before upload; the stored value on the
// transaction is the object path, presigned for reads on demand.
type ReceiptService struct {
	transactionRepo domain.TransactionRepository
	storage         storage.ReceiptRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(transactionRepo domain.TransactionRepository, storage storage.ReceiptRepository) *ReceiptService {
	return &ReceiptService{transactionRepo: transactionRepo, storage: storage}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Attach validates, processes and uploads a receipt image, then stores the
// object path on the transaction. A previous receipt is removed first.
func (s *ReceiptService) Attach(ctx context.Context, workspaceID int32, transactionID uuid.UUID, data []byte, filename string) (*domain.Transaction, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotEnabled
	}

	transaction, err := s.transactionRepo.GetByID(workspaceID, transactionID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	if img.Bounds().Dx() > MaxReceiptWidth {
		img = imaging.Resize(img, MaxReceiptWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: ReceiptQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	objectPath := storage.GenerateObjectPath(workspaceID, transactionID, ".jpg")
	uploaded, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	if transaction.ReceiptURL != nil && *transaction.ReceiptURL != "" {
		// Best effort; an orphaned object is better than a failed attach
		_ = s.storage.Delete(ctx, *transaction.ReceiptURL)
	}

	return s.transactionRepo.SetReceiptURL(workspaceID, transactionID, &uploaded)
}

// Detach removes the receipt from a transaction and deletes the stored object
func (s *ReceiptService) Detach(ctx context.Context, workspaceID int32, transactionID uuid.UUID) (*domain.Transaction, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotEnabled
	}

	transaction, err := s.transactionRepo.GetByID(workspaceID, transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.ReceiptURL != nil && *transaction.ReceiptURL != "" {
		if err := s.storage.Delete(ctx, *transaction.ReceiptURL); err != nil {
			return nil, err
		}
	}

	return s.transactionRepo.SetReceiptURL(workspaceID, transactionID, nil)
}

// PresignedURL returns a temporary download URL for a transaction's receipt
func (s *ReceiptService) PresignedURL(ctx context.Context, workspaceID int32, transactionID uuid.UUID) (string, error) {
	if !s.IsEnabled() {
		return "", ErrReceiptStorageNotEnabled
	}

	transaction, err := s.transactionRepo.GetByID(workspaceID, transactionID)
	if err != nil {
		return "", err
	}

	if transaction.ReceiptURL == nil || *transaction.ReceiptURL == "" {
		return "", domain.ErrNotFound
	}

	return s.storage.GeneratePresignedURL(ctx, *transaction.ReceiptURL, ReceiptURLExpiry)
}

func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedReceiptExtensions[ext]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}

	return img, nil
}
