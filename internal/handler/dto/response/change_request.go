package response

import (
	"time"

	"fiksit-api/internal/domain/provider"

	"github.com/google/uuid"
)

type ChangeRequestResponse struct {
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

func FromChangeRequest(cr *provider.ChangeRequest) *ChangeRequestResponse {
	return &ChangeRequestResponse{
		ID:         cr.ID(),
		ProviderID: cr.ProviderID(),
		Kind:       cr.Kind().String(),
		Value:      cr.Value(),
		Message:    cr.Message(),
		Status:     cr.Status().String(),
		AdminNote:  cr.AdminNote(),
		ResolvedBy: cr.ResolvedBy(),
		ResolvedAt: cr.ResolvedAt(),
		CreatedAt:  cr.CreatedAt(),
		UpdatedAt:  cr.UpdatedAt(),
	}
}
