package enum

// PaymentMode represents how a fee payment was made
type PaymentMode string

const (
	PaymentModeCash           PaymentMode = "Cash"
	PaymentModeCheque         PaymentMode = "Cheque"
	PaymentModeOnlineTransfer PaymentMode = "Online Transfer"
	PaymentModeUPI            PaymentMode = "UPI"
	PaymentModeCard           PaymentMode = "Card"
)

// AllPaymentModes returns all valid payment modes
func AllPaymentModes() []PaymentMode {
	return []PaymentMode{
		PaymentModeCash,
		PaymentModeCheque,
		PaymentModeOnlineTransfer,
		PaymentModeUPI,
		PaymentModeCard,
	}
}

// IsValid checks if the payment mode is one of the known values
func (p PaymentMode) IsValid() bool {
	for _, m := range AllPaymentModes() {
		if p == m {
			return true
		}
	}
	return false
}

func (p PaymentMode) String() string {
	return string(p)
}
