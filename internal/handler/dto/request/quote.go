package request

import (
	"github.com/google/uuid"
)

type QuoteAnswer struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer"`
}

type CreateQuoteRequestRequest struct {
	CategoryID    uuid.UUID     `json:"category_id" binding:"required"`
	AddressID     uuid.UUID     `json:"address_id" binding:"required"`
	Title         string        `json:"title" binding:"required"`
	Description   string        `json:"description"`
	Answers       []QuoteAnswer `json:"answers" binding:"dive"`
	PhotoURLs     []string      `json:"photo_urls" binding:"dive,url"`
	ExpiresInDays int           `json:"expires_in_days" binding:"gte=0"`
}

type CreateQuoteResponseRequest struct {
	PriceKroner              int64  `json:"price_kroner" binding:"min=0"`
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes" binding:"required,min=1"`
	MaterialsIncluded        bool   `json:"materials_included"`
	Message                  string `json:"message"`
	ValidForDays             int    `json:"valid_for_days" binding:"gte=0"`
}
