package request

// CreateReceiptRequest represents a create receipt request. Amount is
// accepted as a JSON number; fractional paise are truncated to whole
// rupees at this boundary. The one-hundred-crore cap rejects typos and
// keeps the float64 to int64 conversion in range.
type CreateReceiptRequest struct {
	ReceiptNo     string  `json:"receipt_no"`
	StudentName   string  `json:"student_name"`
	FatherName    string  `json:"father_name"`
	StudentClass  string  `json:"student_class"`
	RollNo        *string `json:"roll_no"`
	Session       string  `json:"session"`
	FeeType       string  `json:"fee_type"`
	Amount        float64 `json:"amount" binding:"gte=0,lte=1000000000"`
	PaymentMode   string  `json:"payment_mode"`
	TransactionID *string `json:"transaction_id"`
	Remarks       *string `json:"remarks"`
	Date          string  `json:"date"`
}

// UpdateReceiptRequest represents a partial receipt update. Absent fields
// keep their stored values.
type UpdateReceiptRequest struct {
	ReceiptNo     *string  `json:"receipt_no"`
	StudentName   *string  `json:"student_name"`
	FatherName    *string  `json:"father_name"`
	StudentClass  *string  `json:"student_class"`
	RollNo        *string  `json:"roll_no"`
	Session       *string  `json:"session"`
	FeeType       *string  `json:"fee_type"`
	Amount        *float64 `json:"amount" binding:"omitempty,gte=0,lte=1000000000"`
	PaymentMode   *string  `json:"payment_mode"`
	TransactionID *string  `json:"transaction_id"`
	Remarks       *string  `json:"remarks"`
	Date          *string  `json:"date"`
}
