package request

import (
	"time"

	"github.com/google/uuid"
)

type LineItem struct {
	Name            string `json:"name" binding:"required"`
	PriceKroner     int64  `json:"price_kroner" binding:"min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	ProviderID    uuid.UUID  `json:"provider_id" binding:"required"`
	AddressID     uuid.UUID  `json:"address_id" binding:"required"`
	LineItems     []LineItem `json:"line_items" binding:"required,min=1,dive"`
	ScheduledAt   time.Time  `json:"scheduled_at" binding:"required"`
	PaymentMethod string     `json:"payment_method" binding:"required,oneof=vipps card"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
