package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal statuses accept no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentPaid              PaymentStatus = "paid"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

func (p PaymentStatus) String() string {
	return string(p)
}

type PaymentMethod string

const (
	PaymentMethodVipps PaymentMethod = "vipps"
	PaymentMethodCard  PaymentMethod = "card"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodVipps, PaymentMethodCard:
		return true
	default:
		return false
	}
}

// CancelParty records which side of the marketplace cancelled.
type CancelParty string

const (
	CancelledByCustomer CancelParty = "customer"
	CancelledByProvider CancelParty = "provider"
)

func (p CancelParty) String() string {
	return string(p)
}

func (p CancelParty) IsValid() bool {
	return p == CancelledByCustomer || p == CancelledByProvider
}
