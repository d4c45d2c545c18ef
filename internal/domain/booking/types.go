package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Blocks returns true for statuses that occupy the slot for conflict checks.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMercadoPago PaymentMethod = "mercadopago"
	PaymentTransfer    PaymentMethod = "transfer"
	PaymentOther       PaymentMethod = "other"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentMercadoPago, PaymentTransfer, PaymentOther:
		return true
	default:
		return false
	}
}
