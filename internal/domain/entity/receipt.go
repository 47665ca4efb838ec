package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt records one fee payment event for one student. It is owned by
// the staff member who created it (CreatedBy); all queries are scoped to
// that owner. ReceiptNo is a display reference and carries no uniqueness
// constraint, only a lookup index.
type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo     string    `gorm:"size:50;not null;index" json:"receipt_no"`
	StudentName   string    `gorm:"size:255;not null" json:"student_name"`
	FatherName    string    `gorm:"size:255;not null" json:"father_name"`
	StudentClass  string    `gorm:"size:50;not null" json:"student_class"`
	RollNo        *string   `gorm:"size:50" json:"roll_no,omitempty"`
	Session       string    `gorm:"size:20" json:"session"`
	FeeType       string    `gorm:"size:50" json:"fee_type"`
	Amount        int64     `gorm:"not null" json:"amount"`
	PaymentMode   string    `gorm:"size:50" json:"payment_mode"`
	TransactionID *string   `gorm:"size:255" json:"transaction_id,omitempty"`
	Remarks       *string   `gorm:"type:text" json:"remarks,omitempty"`
	Date          string    `gorm:"size:50" json:"date"`
	CreatedBy     string    `gorm:"size:255;not null;index" json:"created_by"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Filled from Amount when the receipt is rendered, never persisted.
	AmountInWords string `gorm:"-" json:"amount_in_words,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
