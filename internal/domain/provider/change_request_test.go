//go:build unit

package provider_test

import (
	"testing"
	"time"

	"fiksit-api/internal/domain/provider"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfile(now time.Time) *provider.Profile {
	return provider.ReconstructProfile(
		uuid.New(),
		"Kari Hansen", "experienced cleaner", "trade school",
		[]string{"electrician"}, []string{"norwegian"},
		false, false,
		now, now,
	)
}

func TestNewChangeRequest(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	providerID := uuid.New()

	tests := []struct {
		name  string
		kind  provider.Kind
		value string
		errIs error
	}{
		{name: "add certificate", kind: provider.KindAddCertificate, value: "plumber"},
		{name: "flag with true", kind: provider.KindSetPoliceCheck, value: "true"},
		{name: "flag with false", kind: provider.KindSetInsurance, value: "false"},
		{name: "bio may be empty", kind: provider.KindSetBio, value: ""},
		{name: "education may be empty", kind: provider.KindSetEducation, value: ""},
		{name: "unknown kind", kind: provider.Kind("rename"), value: "x", errIs: provider.ErrInvalidKind},
		{name: "flag needs boolean", kind: provider.KindSetPoliceCheck, value: "yes please", errIs: provider.ErrInvalidFlagValue},
		{name: "certificate needs a value", kind: provider.KindAddCertificate, value: "  ", errIs: provider.ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr, err := provider.NewChangeRequest(providerID, tt.kind, tt.value, "", now)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, provider.ChangePending, cr.Status())
		})
	}
}

func TestChangeRequestApprove(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	adminID := uuid.New()

	t.Run("approval applies the delta and resolves", func(t *testing.T) {
		profile := newTestProfile(now)
		cr, err := provider.NewChangeRequest(profile.ID(), provider.KindAddCertificate, "plumber", "", now)
		require.NoError(t, err)

		require.NoError(t, cr.Approve(profile, adminID, now))

		assert.Equal(t, provider.ChangeApproved, cr.Status())
		assert.Contains(t, profile.Certificates(), "plumber")
		require.NotNil(t, cr.ResolvedBy())
		assert.Equal(t, adminID, *cr.ResolvedBy())
		require.NotNil(t, cr.ResolvedAt())
	})

	t.Run("each kind mutates its field", func(t *testing.T) {
		tests := []struct {
			name   string
			kind   provider.Kind
			value  string
			verify func(t *testing.T, p *provider.Profile)
		}{
			{
				name: "remove certificate", kind: provider.KindRemoveCertificate, value: "electrician",
				verify: func(t *testing.T, p *provider.Profile) {
					assert.NotContains(t, p.Certificates(), "electrician")
				},
			},
			{
				name: "add language", kind: provider.KindAddLanguage, value: "english",
				verify: func(t *testing.T, p *provider.Profile) {
					assert.Contains(t, p.Languages(), "english")
				},
			},
			{
				name: "remove language", kind: provider.KindRemoveLanguage, value: "norwegian",
				verify: func(t *testing.T, p *provider.Profile) {
					assert.NotContains(t, p.Languages(), "norwegian")
				},
			},
			{
				name: "set police check", kind: provider.KindSetPoliceCheck, value: "true",
				verify: func(t *testing.T, p *provider.Profile) {
					assert.True(t, p.PoliceCheckVerified())
				},
			},
			{
				name: "set insurance", kind: provider.KindSetInsurance, value: "true",
				verify: func(t *testing.T, p *provider.Profile) {
					assert.True(t, p.InsuranceVerified())
				},
			},
			{
				name: "set education", kind: provider.KindSetEducation, value: "university",
				verify: func(t *testing.T, p *provider.Profile) {
					assert.Equal(t, "university", p.Education())
				},
			},
			{
				name: "set bio", kind: provider.KindSetBio, value: "new bio",
				verify: func(t *testing.T, p *provider.Profile) {
					assert.Equal(t, "new bio", p.Bio())
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				profile := newTestProfile(now)
				cr, err := provider.NewChangeRequest(profile.ID(), tt.kind, tt.value, "", now)
				require.NoError(t, err)

				require.NoError(t, cr.Approve(profile, adminID, now))
				tt.verify(t, profile)
			})
		}
	})

	t.Run("duplicate certificate is a no-op", func(t *testing.T) {
		profile := newTestProfile(now)
		cr, err := provider.NewChangeRequest(profile.ID(), provider.KindAddCertificate, "electrician", "", now)
		require.NoError(t, err)

		require.NoError(t, cr.Approve(profile, adminID, now))
		assert.Equal(t, []string{"electrician"}, profile.Certificates())
	})

	t.Run("resolving twice fails", func(t *testing.T) {
		profile := newTestProfile(now)
		cr, err := provider.NewChangeRequest(profile.ID(), provider.KindSetBio, "bio", "", now)
		require.NoError(t, err)

		require.NoError(t, cr.Approve(profile, adminID, now))
		assert.ErrorIs(t, cr.Approve(profile, adminID, now), provider.ErrAlreadyResolved)
		assert.ErrorIs(t, cr.Reject(adminID, "", now), provider.ErrAlreadyResolved)
	})
}

func TestChangeRequestReject(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	adminID := uuid.New()

	t.Run("rejection keeps the profile untouched", func(t *testing.T) {
		profile := newTestProfile(now)
		cr, err := provider.NewChangeRequest(profile.ID(), provider.KindSetBio, "spam bio", "", now)
		require.NoError(t, err)

		require.NoError(t, cr.Reject(adminID, "inappropriate content", now))

		assert.Equal(t, provider.ChangeRejected, cr.Status())
		assert.Equal(t, "inappropriate content", cr.AdminNote())
		assert.Equal(t, "experienced cleaner", profile.Bio())

		assert.ErrorIs(t, cr.Approve(profile, adminID, now), provider.ErrAlreadyResolved)
	})
}
