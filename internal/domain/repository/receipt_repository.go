package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lbs-school/receipts-api/internal/domain/entity"
)

// ReceiptStats holds owner-level aggregates over receipts
type ReceiptStats struct {
	TotalReceipts int64 `json:"total_receipts"`
	TotalAmount   int64 `json:"total_amount"`
}

// ReceiptRepository defines the interface for receipt data operations.
// All list and aggregate reads are scoped to an owner email passed
// explicitly by the caller.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID returns (nil, nil) when no receipt exists with the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByOwner returns the owner's receipts newest-first. A non-empty
	// search term filters by case-insensitive substring match against
	// student name, receipt number, class and father name.
	ListByOwner(ctx context.Context, owner, search string, offset, limit int) ([]entity.Receipt, int64, error)
	// StatsByOwner returns the receipt count and amount sum for an owner,
	// both zero when the owner has no receipts.
	StatsByOwner(ctx context.Context, owner string) (*ReceiptStats, error)
}
