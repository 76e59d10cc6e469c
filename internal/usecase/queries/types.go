package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type LineItemView struct {
	Name            string `json:"name"`
	PriceKroner     int64  `json:"price_kroner"`
	DurationMinutes int    `json:"duration_minutes"`
}

type CancellationView struct {
	CancelledBy     string    `json:"cancelled_by"`
	Reason          string    `json:"reason,omitempty"`
	WithinDayWindow bool      `json:"within_day_window"`
	FeeKroner       int64     `json:"fee_kroner"`
	FeeRefunded     bool      `json:"fee_refunded"`
	CancelledAt     time.Time `json:"cancelled_at"`
}

type BookingView struct {
	ID                   uuid.UUID         `json:"id"`
	CustomerID           uuid.UUID         `json:"customer_id"`
	ProviderID           uuid.UUID         `json:"provider_id"`
	AddressID            uuid.UUID         `json:"address_id"`
	LineItems            []LineItemView    `json:"line_items"`
	ScheduledAt          time.Time         `json:"scheduled_at"`
	Status               string            `json:"status"`
	TotalPriceKroner     int64             `json:"total_price_kroner"`
	PlatformFeeKroner    int64             `json:"platform_fee_kroner"`
	ProviderPayoutKroner int64             `json:"provider_payout_kroner"`
	PaymentMethod        string            `json:"payment_method"`
	PaymentStatus        string            `json:"payment_status"`
	Cancellation         *CancellationView `json:"cancellation,omitempty"`
	CompletedAt          *time.Time        `json:"completed_at,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

type BookingListItem struct {
	ID               uuid.UUID `json:"id"`
	CustomerID       uuid.UUID `json:"customer_id"`
	ProviderID       uuid.UUID `json:"provider_id"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	Status           string    `json:"status"`
	TotalPriceKroner int64     `json:"total_price_kroner"`
	CreatedAt        time.Time `json:"created_at"`
}

type AnswerView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuoteRequestView carries the effective status: a persisted OPEN or QUOTED
// row past its deadline is reported as EXPIRED without waiting for a write.
type QuoteRequestView struct {
	ID          uuid.UUID    `json:"id"`
	CustomerID  uuid.UUID    `json:"customer_id"`
	CategoryID  uuid.UUID    `json:"category_id"`
	AddressID   uuid.UUID    `json:"address_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Answers     []AnswerView `json:"answers,omitempty"`
	PhotoURLs   []string     `json:"photo_urls,omitempty"`
	Status      string       `json:"status"`
	ExpiresAt   time.Time    `json:"expires_at"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type QuoteResponseView struct {
	ID                       uuid.UUID `json:"id"`
	RequestID                uuid.UUID `json:"request_id"`
	ProviderID               uuid.UUID `json:"provider_id"`
	PriceKroner              int64     `json:"price_kroner"`
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes"`
	MaterialsIncluded        bool      `json:"materials_included"`
	Message                  string    `json:"message,omitempty"`
	Status                   string    `json:"status"`
	ValidUntil               time.Time `json:"valid_until"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

type ScheduleSlotView struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Active  bool   `json:"active"`
}

type BlockedDateView struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

type ChangeRequestView struct {
	ID         uuid.UUID  `json:"id"`
	ProviderID uuid.UUID  `json:"provider_id"`
	Kind       string     `json:"kind"`
	Value      string     `json:"value"`
	Message    string     `json:"message,omitempty"`
	Status     string     `json:"status"`
	AdminNote  string     `json:"admin_note,omitempty"`
	ResolvedBy *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ProviderProfileView struct {
	ID                  uuid.UUID `json:"id"`
	DisplayName         string    `json:"display_name"`
	Bio                 string    `json:"bio,omitempty"`
	Education           string    `json:"education,omitempty"`
	Certificates        []string  `json:"certificates"`
	Languages           []string  `json:"languages"`
	PoliceCheckVerified bool      `json:"police_check_verified"`
	InsuranceVerified   bool      `json:"insurance_verified"`
	AverageRating       float64   `json:"average_rating"`
	ReviewCount         int       `json:"review_count"`
	CreatedAt           time.Time `json:"created_at"`
}

type ReviewView struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
