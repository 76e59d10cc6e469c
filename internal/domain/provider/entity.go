package provider

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Profile is the live, customer-visible provider record. Staged edits reach
// it only through an approved change request.
type Profile struct {
	id                  uuid.UUID
	displayName         string
	bio                 string
	education           string
	certificates        []string
	languages           []string
	policeCheckVerified bool
	insuranceVerified   bool
	createdAt           time.Time
	updatedAt           time.Time
}

func ReconstructProfile(
	id uuid.UUID,
	displayName, bio, education string,
	certificates, languages []string,
	policeCheckVerified, insuranceVerified bool,
	createdAt, updatedAt time.Time,
) *Profile {
	return &Profile{
		id:                  id,
		displayName:         displayName,
		bio:                 bio,
		education:           education,
		certificates:        certificates,
		languages:           languages,
		policeCheckVerified: policeCheckVerified,
		insuranceVerified:   insuranceVerified,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (p *Profile) addCertificate(name string, now time.Time) {
	if !slices.Contains(p.certificates, name) {
		p.certificates = append(p.certificates, name)
		p.updatedAt = now
	}
}

func (p *Profile) removeCertificate(name string, now time.Time) {
	p.certificates = slices.DeleteFunc(p.certificates, func(c string) bool { return c == name })
	p.updatedAt = now
}

func (p *Profile) addLanguage(lang string, now time.Time) {
	if !slices.Contains(p.languages, lang) {
		p.languages = append(p.languages, lang)
		p.updatedAt = now
	}
}

func (p *Profile) removeLanguage(lang string, now time.Time) {
	p.languages = slices.DeleteFunc(p.languages, func(l string) bool { return l == lang })
	p.updatedAt = now
}

func (p *Profile) ID() uuid.UUID            { return p.id }
func (p *Profile) DisplayName() string      { return p.displayName }
func (p *Profile) Bio() string              { return p.bio }
func (p *Profile) Education() string        { return p.education }
func (p *Profile) Certificates() []string   { return p.certificates }
func (p *Profile) Languages() []string      { return p.languages }
func (p *Profile) PoliceCheckVerified() bool { return p.policeCheckVerified }
func (p *Profile) InsuranceVerified() bool  { return p.insuranceVerified }
func (p *Profile) CreatedAt() time.Time     { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time     { return p.updatedAt }
