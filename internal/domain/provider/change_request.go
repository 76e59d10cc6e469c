package provider

import (
	"strconv"
	"strings"
	"time"

	"fiksit-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind      = errs.New("invalid change request kind")
	ErrEmptyValue       = errs.New("change request value cannot be empty")
	ErrInvalidFlagValue = errs.New("flag change requests require a true/false value")
	ErrAlreadyResolved  = errs.New("change request is already resolved")
)

// Kind enumerates the typed profile edits a provider may stage.
type Kind string

const (
	KindAddCertificate    Kind = "add_certificate"
	KindRemoveCertificate Kind = "remove_certificate"
	KindAddLanguage       Kind = "add_language"
	KindRemoveLanguage    Kind = "remove_language"
	KindSetPoliceCheck    Kind = "set_police_check"
	KindSetInsurance      Kind = "set_insurance"
	KindSetEducation      Kind = "set_education"
	KindSetBio            Kind = "set_bio"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindAddCertificate, KindRemoveCertificate, KindAddLanguage, KindRemoveLanguage,
		KindSetPoliceCheck, KindSetInsurance, KindSetEducation, KindSetBio:
		return true
	default:
		return false
	}
}

func (k Kind) isFlag() bool {
	return k == KindSetPoliceCheck || k == KindSetInsurance
}

type ChangeRequestStatus string

const (
	ChangePending  ChangeRequestStatus = "pending"
	ChangeApproved ChangeRequestStatus = "approved"
	ChangeRejected ChangeRequestStatus = "rejected"
)

func (s ChangeRequestStatus) String() string {
	return string(s)
}

// ChangeRequest is a staged, typed edit awaiting an admin decision. Approval
// applies the delta to the live profile; rejection discards it with a note.
type ChangeRequest struct {
	id         uuid.UUID
	providerID uuid.UUID
	kind       Kind
	value      string
	message    string
	status     ChangeRequestStatus
	adminNote  string
	resolvedBy *uuid.UUID
	resolvedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewChangeRequest(providerID uuid.UUID, kind Kind, value, message string, now time.Time) (*ChangeRequest, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	value = strings.TrimSpace(value)
	if kind.isFlag() {
		if _, err := strconv.ParseBool(value); err != nil {
			return nil, ErrInvalidFlagValue
		}
	} else if value == "" && kind != KindSetBio && kind != KindSetEducation {
		// Bio and education may be staged empty (clearing the field).
		return nil, ErrEmptyValue
	}

	return &ChangeRequest{
		id:         uuid.New(),
		providerID: providerID,
		kind:       kind,
		value:      value,
		message:    strings.TrimSpace(message),
		status:     ChangePending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructChangeRequest(
	id, providerID uuid.UUID,
	kind Kind,
	value, message string,
	status ChangeRequestStatus,
	adminNote string,
	resolvedBy *uuid.UUID,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) *ChangeRequest {
	return &ChangeRequest{
		id:         id,
		providerID: providerID,
		kind:       kind,
		value:      value,
		message:    message,
		status:     status,
		adminNote:  adminNote,
		resolvedBy: resolvedBy,
		resolvedAt: resolvedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Approve applies the staged delta to the live profile and resolves the
// request, both as one logical step (the command wraps them in a transaction).
func (cr *ChangeRequest) Approve(profile *Profile, adminID uuid.UUID, now time.Time) error {
	if cr.status != ChangePending {
		return ErrAlreadyResolved
	}

	switch cr.kind {
	case KindAddCertificate:
		profile.addCertificate(cr.value, now)
	case KindRemoveCertificate:
		profile.removeCertificate(cr.value, now)
	case KindAddLanguage:
		profile.addLanguage(cr.value, now)
	case KindRemoveLanguage:
		profile.removeLanguage(cr.value, now)
	case KindSetPoliceCheck:
		flag, _ := strconv.ParseBool(cr.value)
		profile.policeCheckVerified = flag
		profile.updatedAt = now
	case KindSetInsurance:
		flag, _ := strconv.ParseBool(cr.value)
		profile.insuranceVerified = flag
		profile.updatedAt = now
	case KindSetEducation:
		profile.education = cr.value
		profile.updatedAt = now
	case KindSetBio:
		profile.bio = cr.value
		profile.updatedAt = now
	default:
		return ErrInvalidKind
	}

	cr.status = ChangeApproved
	cr.resolvedBy = &adminID
	resolved := now
	cr.resolvedAt = &resolved
	cr.updatedAt = now
	return nil
}

func (cr *ChangeRequest) Reject(adminID uuid.UUID, note string, now time.Time) error {
	if cr.status != ChangePending {
		return ErrAlreadyResolved
	}
	cr.status = ChangeRejected
	cr.adminNote = strings.TrimSpace(note)
	cr.resolvedBy = &adminID
	resolved := now
	cr.resolvedAt = &resolved
	cr.updatedAt = now
	return nil
}

func (cr *ChangeRequest) ID() uuid.UUID               { return cr.id }
func (cr *ChangeRequest) ProviderID() uuid.UUID       { return cr.providerID }
func (cr *ChangeRequest) Kind() Kind                  { return cr.kind }
func (cr *ChangeRequest) Value() string               { return cr.value }
func (cr *ChangeRequest) Message() string             { return cr.message }
func (cr *ChangeRequest) Status() ChangeRequestStatus { return cr.status }
func (cr *ChangeRequest) AdminNote() string           { return cr.adminNote }
func (cr *ChangeRequest) ResolvedBy() *uuid.UUID      { return cr.resolvedBy }
func (cr *ChangeRequest) ResolvedAt() *time.Time      { return cr.resolvedAt }
func (cr *ChangeRequest) CreatedAt() time.Time        { return cr.createdAt }
func (cr *ChangeRequest) UpdatedAt() time.Time        { return cr.updatedAt }
