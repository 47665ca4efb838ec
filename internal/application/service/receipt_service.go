package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lbs-school/receipts-api/internal/application/events"
	"github.com/lbs-school/receipts-api/internal/domain/entity"
	"github.com/lbs-school/receipts-api/internal/domain/enum"
	"github.com/lbs-school/receipts-api/internal/domain/repository"
	"github.com/lbs-school/receipts-api/pkg/apperror"
	"github.com/lbs-school/receipts-api/pkg/numwords"
	"github.com/lbs-school/receipts-api/pkg/pagination"
	"github.com/lbs-school/receipts-api/pkg/utils"
)

// SchoolInfo holds the school identity printed on receipts
type SchoolInfo struct {
	Name          string
	Address       string
	Phone         string
	Session       string
	ReceiptPrefix string
}

// ReceiptService handles receipt-related operations
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	broker      *events.Broker
	school      SchoolInfo
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repository.ReceiptRepository, broker *events.Broker, school SchoolInfo) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		broker:      broker,
		school:      school,
	}
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	Owner         string
	ReceiptNo     string
	StudentName   string
	FatherName    string
	StudentClass  string
	RollNo        *string
	Session       string
	FeeType       string
	Amount        int64
	PaymentMode   string
	TransactionID *string
	Remarks       *string
	Date          string
}

func (in *CreateReceiptInput) validate() []apperror.FieldError {
	var fieldErrors []apperror.FieldError

	if strings.TrimSpace(in.StudentName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "student_name", Message: "Student name is required"})
	}
	if strings.TrimSpace(in.FatherName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "father_name", Message: "Father's name is required"})
	}
	if strings.TrimSpace(in.StudentClass) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "student_class", Message: "Class is required"})
	}
	if in.Amount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
	}
	if in.FeeType != "" && !enum.FeeType(in.FeeType).IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "fee_type", Message: "Unknown fee type"})
	}
	if in.PaymentMode != "" && !enum.PaymentMode(in.PaymentMode).IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_mode", Message: "Unknown payment mode"})
	}

	return fieldErrors
}

// CreateReceipt validates the input and creates a new receipt owned by the
// caller. ReceiptNo, Session and Date fall back to generated defaults when
// not supplied.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	receiptNo := strings.TrimSpace(input.ReceiptNo)
	if receiptNo == "" {
		receiptNo = utils.GenerateReceiptNo(s.school.ReceiptPrefix)
	}

	session := input.Session
	if session == "" {
		session = s.school.Session
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format("02/01/2006")
	}

	receipt := &entity.Receipt{
		ReceiptNo:     receiptNo,
		StudentName:   input.StudentName,
		FatherName:    input.FatherName,
		StudentClass:  input.StudentClass,
		RollNo:        input.RollNo,
		Session:       session,
		FeeType:       input.FeeType,
		Amount:        input.Amount,
		PaymentMode:   input.PaymentMode,
		TransactionID: input.TransactionID,
		Remarks:       input.Remarks,
		Date:          date,
		CreatedBy:     input.Owner,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	s.broker.Publish(input.Owner, events.Event{
		Action:    events.ActionCreated,
		ReceiptID: receipt.ID,
		ReceiptNo: receipt.ReceiptNo,
	})

	receipt.AmountInWords = numwords.InRupees(receipt.Amount)
	return receipt, nil
}

// GetReceipt retrieves a receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	receipt.AmountInWords = numwords.InRupees(receipt.Amount)
	return receipt, nil
}

// ListReceipts lists the owner's receipts newest-first, optionally filtered
// by a case-insensitive substring search over student name, receipt number,
// class and father's name. An empty search term returns the full list.
func (s *ReceiptService) ListReceipts(ctx context.Context, owner string, params *pagination.Params, search string) (*pagination.Result[entity.Receipt], error) {
	params.Validate()
	receipts, total, err := s.receiptRepo.ListByOwner(ctx, owner, search, params.Offset(), params.PerPage)
	if err != nil {
		return nil, err
	}

	for i := range receipts {
		receipts[i].AmountInWords = numwords.InRupees(receipts[i].Amount)
	}

	pag := pagination.New(params.Page, params.PerPage, total)
	return pagination.NewResult(receipts, pag), nil
}

// GetStats returns the owner's receipt count and total collected amount
func (s *ReceiptService) GetStats(ctx context.Context, owner string) (*repository.ReceiptStats, error) {
	return s.receiptRepo.StatsByOwner(ctx, owner)
}

// UpdateReceiptInput represents the update receipt input. Nil fields are
// left unchanged.
type UpdateReceiptInput struct {
	ID            uuid.UUID
	Owner         string
	ReceiptNo     *string
	StudentName   *string
	FatherName    *string
	StudentClass  *string
	RollNo        *string
	Session       *string
	FeeType       *string
	Amount        *int64
	PaymentMode   *string
	TransactionID *string
	Remarks       *string
	Date          *string
}

func (in *UpdateReceiptInput) validate() []apperror.FieldError {
	var fieldErrors []apperror.FieldError

	if in.StudentName != nil && strings.TrimSpace(*in.StudentName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "student_name", Message: "Student name cannot be empty"})
	}
	if in.FatherName != nil && strings.TrimSpace(*in.FatherName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "father_name", Message: "Father's name cannot be empty"})
	}
	if in.StudentClass != nil && strings.TrimSpace(*in.StudentClass) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "student_class", Message: "Class cannot be empty"})
	}
	if in.Amount != nil && *in.Amount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
	}
	if in.FeeType != nil && *in.FeeType != "" && !enum.FeeType(*in.FeeType).IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "fee_type", Message: "Unknown fee type"})
	}
	if in.PaymentMode != nil && *in.PaymentMode != "" && !enum.PaymentMode(*in.PaymentMode).IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_mode", Message: "Unknown payment mode"})
	}

	return fieldErrors
}

// UpdateReceipt applies a partial update to a receipt. Only supplied fields
// change; CreatedBy and CreatedAt are never altered. Matching the source
// system, possession of the id is the only authorization required here.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, input *UpdateReceiptInput) (*entity.Receipt, error) {
	if fieldErrors := input.validate(); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	receipt, err := s.receiptRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	if input.ReceiptNo != nil {
		receipt.ReceiptNo = *input.ReceiptNo
	}
	if input.StudentName != nil {
		receipt.StudentName = *input.StudentName
	}
	if input.FatherName != nil {
		receipt.FatherName = *input.FatherName
	}
	if input.StudentClass != nil {
		receipt.StudentClass = *input.StudentClass
	}
	if input.RollNo != nil {
		receipt.RollNo = input.RollNo
	}
	if input.Session != nil {
		receipt.Session = *input.Session
	}
	if input.FeeType != nil {
		receipt.FeeType = *input.FeeType
	}
	if input.Amount != nil {
		receipt.Amount = *input.Amount
	}
	if input.PaymentMode != nil {
		receipt.PaymentMode = *input.PaymentMode
	}
	if input.TransactionID != nil {
		receipt.TransactionID = input.TransactionID
	}
	if input.Remarks != nil {
		receipt.Remarks = input.Remarks
	}
	if input.Date != nil {
		receipt.Date = *input.Date
	}

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	s.broker.Publish(receipt.CreatedBy, events.Event{
		Action:    events.ActionUpdated,
		ReceiptID: receipt.ID,
		ReceiptNo: receipt.ReceiptNo,
	})

	receipt.AmountInWords = numwords.InRupees(receipt.Amount)
	return receipt, nil
}

// DeleteReceipt removes a receipt. Deleting an unknown id fails with
// NotFound; the operation is irreversible.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}

	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.broker.Publish(receipt.CreatedBy, events.Event{
		Action:    events.ActionDeleted,
		ReceiptID: receipt.ID,
		ReceiptNo: receipt.ReceiptNo,
	})

	return nil
}

// RenderPrintable builds the plain-text rendering of a receipt consumed by
// the print collaborator.
func (s *ReceiptService) RenderPrintable(ctx context.Context, id uuid.UUID) (string, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	line := strings.Repeat("=", 48)

	fmt.Fprintf(&b, "%s\n%s\n", center(s.school.Name, 48), line)
	if s.school.Address != "" {
		fmt.Fprintf(&b, "%s\n", center(s.school.Address, 48))
	}
	if s.school.Phone != "" {
		fmt.Fprintf(&b, "%s\n", center("Phone: "+s.school.Phone, 48))
	}
	fmt.Fprintf(&b, "%s\n", center("FEE RECEIPT", 48))
	fmt.Fprintf(&b, "%s\n", line)

	fmt.Fprintf(&b, "Receipt No       : %s\n", receipt.ReceiptNo)
	fmt.Fprintf(&b, "Date             : %s\n", receipt.Date)
	fmt.Fprintf(&b, "Student Name     : %s\n", receipt.StudentName)
	fmt.Fprintf(&b, "Father's Name    : %s\n", receipt.FatherName)
	fmt.Fprintf(&b, "Class            : %s\n", receipt.StudentClass)
	if receipt.RollNo != nil && *receipt.RollNo != "" {
		fmt.Fprintf(&b, "Roll No          : %s\n", *receipt.RollNo)
	}
	fmt.Fprintf(&b, "Academic Session : %s\n", receipt.Session)
	if receipt.FeeType != "" {
		fmt.Fprintf(&b, "Fee Type         : %s\n", receipt.FeeType)
	}

	paymentMode := receipt.PaymentMode
	if paymentMode == "" {
		paymentMode = string(enum.PaymentModeCash)
	}
	fmt.Fprintf(&b, "Payment Mode     : %s\n", paymentMode)
	if receipt.TransactionID != nil && *receipt.TransactionID != "" {
		fmt.Fprintf(&b, "Transaction ID   : %s\n", *receipt.TransactionID)
	}

	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "Amount           : Rs. %d\n", receipt.Amount)
	fmt.Fprintf(&b, "In Words         : %s\n", numwords.InRupees(receipt.Amount))
	if receipt.Remarks != nil && *receipt.Remarks != "" {
		fmt.Fprintf(&b, "Remarks          : %s\n", *receipt.Remarks)
	}
	fmt.Fprintf(&b, "%s\n", line)

	b.WriteString("This is a system generated receipt and does\nnot require signature.\n")
	b.WriteString("For any queries, please contact the school office.\n")
	b.WriteString("Thank you for your payment!\n")

	return b.String(), nil
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
