package response

import (
	"time"

	"fiksit-api/internal/domain/booking"

	"github.com/google/uuid"
)

type LineItemResponse struct {
	Name            string `json:"name"`
	PriceKroner     int64  `json:"price_kroner"`
	DurationMinutes int    `json:"duration_minutes"`
}

type CancellationResponse struct {
	CancelledBy     string    `json:"cancelled_by"`
	Reason          string    `json:"reason,omitempty"`
	WithinDayWindow bool      `json:"within_day_window"`
	FeeKroner       int64     `json:"fee_kroner"`
	FeeRefunded     bool      `json:"fee_refunded"`
	CancelledAt     time.Time `json:"cancelled_at"`
}

type BookingResponse struct {
	ID                   uuid.UUID             `json:"id"`
	CustomerID           uuid.UUID             `json:"customer_id"`
	ProviderID           uuid.UUID             `json:"provider_id"`
	AddressID            uuid.UUID             `json:"address_id"`
	LineItems            []LineItemResponse    `json:"line_items"`
	ScheduledAt          time.Time             `json:"scheduled_at"`
	Status               string                `json:"status"`
	TotalPriceKroner     int64                 `json:"total_price_kroner"`
	PlatformFeeKroner    int64                 `json:"platform_fee_kroner"`
	ProviderPayoutKroner int64                 `json:"provider_payout_kroner"`
	PaymentMethod        string                `json:"payment_method"`
	PaymentStatus        string                `json:"payment_status"`
	Cancellation         *CancellationResponse `json:"cancellation,omitempty"`
	CompletedAt          *time.Time            `json:"completed_at,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	items := make([]LineItemResponse, 0, len(b.LineItems()))
	for _, li := range b.LineItems() {
		items = append(items, LineItemResponse{
			Name:            li.Name(),
			PriceKroner:     li.Price().Kroner(),
			DurationMinutes: li.DurationMinutes(),
		})
	}

	resp := &BookingResponse{
		ID:                   b.ID(),
		CustomerID:           b.CustomerID(),
		ProviderID:           b.ProviderID(),
		AddressID:            b.AddressID(),
		LineItems:            items,
		ScheduledAt:          b.ScheduledAt(),
		Status:               b.Status().String(),
		TotalPriceKroner:     b.Totals().TotalPrice.Kroner(),
		PlatformFeeKroner:    b.Totals().PlatformFee.Kroner(),
		ProviderPayoutKroner: b.Totals().ProviderPayout.Kroner(),
		PaymentMethod:        b.PaymentMethod().String(),
		PaymentStatus:        b.PaymentStatus().String(),
		CompletedAt:          b.CompletedAt(),
		CreatedAt:            b.CreatedAt(),
		UpdatedAt:            b.UpdatedAt(),
	}

	if c := b.Cancellation(); c != nil {
		resp.Cancellation = &CancellationResponse{
			CancelledBy:     c.CancelledBy().String(),
			Reason:          c.Reason(),
			WithinDayWindow: c.WithinDayWindow(),
			FeeKroner:       c.Fee().Kroner(),
			FeeRefunded:     c.FeeRefunded(),
			CancelledAt:     c.CancelledAt(),
		}
	}

	return resp
}

type FeePreviewResponse struct {
	FeeKroner int64 `json:"fee_kroner"`
}
