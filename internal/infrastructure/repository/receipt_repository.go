package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lbs-school/receipts-api/internal/domain/entity"
	domainRepo "github.com/lbs-school/receipts-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) ListByOwner(ctx context.Context, owner, search string, offset, limit int) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("created_by = ?", owner)

	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where("student_name ILIKE ? OR receipt_no ILIKE ? OR student_class ILIKE ? OR father_name ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

// escapeLike escapes ILIKE metacharacters so a search term matches
// literally: "100%" must find the substring, not act as a wildcard.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func (r *receiptRepository) StatsByOwner(ctx context.Context, owner string) (*domainRepo.ReceiptStats, error) {
	var stats domainRepo.ReceiptStats

	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("COUNT(*) AS total_receipts, COALESCE(SUM(amount), 0) AS total_amount").
		Where("created_by = ?", owner).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
