package response

import (
	"time"

	"fiksit-api/internal/domain/quote"

	"github.com/google/uuid"
)

type QuoteAnswerResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuoteRequestResponse struct {
	ID          uuid.UUID             `json:"id"`
	CustomerID  uuid.UUID             `json:"customer_id"`
	CategoryID  uuid.UUID             `json:"category_id"`
	AddressID   uuid.UUID             `json:"address_id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Answers     []QuoteAnswerResponse `json:"answers,omitempty"`
	PhotoURLs   []string              `json:"photo_urls,omitempty"`
	Status      string                `json:"status"`
	ExpiresAt   time.Time             `json:"expires_at"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func FromQuoteRequest(r *quote.Request) *QuoteRequestResponse {
	answers := make([]QuoteAnswerResponse, 0, len(r.Answers()))
	for _, a := range r.Answers() {
		answers = append(answers, QuoteAnswerResponse{Question: a.Question, Answer: a.Answer})
	}

	return &QuoteRequestResponse{
		ID:          r.ID(),
		CustomerID:  r.CustomerID(),
		CategoryID:  r.CategoryID(),
		AddressID:   r.AddressID(),
		Title:       r.Title(),
		Description: r.Description(),
		Answers:     answers,
		PhotoURLs:   r.PhotoURLs(),
		Status:      r.Status().String(),
		ExpiresAt:   r.ExpiresAt(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

type QuoteResponseResponse struct {
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

func FromQuoteResponse(r *quote.Response) *QuoteResponseResponse {
	return &QuoteResponseResponse{
		ID:                       r.ID(),
		RequestID:                r.RequestID(),
		ProviderID:               r.ProviderID(),
		PriceKroner:              r.Price().Kroner(),
		EstimatedDurationMinutes: r.EstimatedDuration(),
		MaterialsIncluded:        r.MaterialsIncluded(),
		Message:                  r.Message(),
		Status:                   r.Status().String(),
		ValidUntil:               r.ValidUntil(),
		CreatedAt:                r.CreatedAt(),
		UpdatedAt:                r.UpdatedAt(),
	}
}
