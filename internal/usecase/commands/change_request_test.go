//go:build unit

package commands_test

import (
	"context"
	"testing"

	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRequestFixture struct {
	uow      *fakeUoW
	clock    *clock.MockClock
	commands commands.ChangeRequestCommands
}

func newChangeRequestFixture() *changeRequestFixture {
	uow := newFakeUoW()
	clk := clock.NewMockClock(testNow)
	return &changeRequestFixture{
		uow:      uow,
		clock:    clk,
		commands: commands.NewChangeRequestCommands(uow, clk),
	}
}

func seedProfile(f *changeRequestFixture, prov user.Actor) {
	f.uow.store.profiles[prov.ID] = provider.ReconstructProfile(
		prov.ID, "Kari Hansen", "", "",
		[]string{"electrician"}, []string{"norwegian"},
		false, false, testNow, testNow,
	)
}

func seedChangeRequest(t *testing.T, f *changeRequestFixture, prov user.Actor, kind provider.Kind, value string) *provider.ChangeRequest {
	t.Helper()
	cr, err := f.commands.SubmitChangeRequest(context.Background(), prov, commands.SubmitChangeRequestInput{
		Kind:    kind.String(),
		Value:   value,
		Message: "please verify",
	})
	require.NoError(t, err)
	return cr
}

func TestSubmitChangeRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("provider stages an edit", func(t *testing.T) {
		f := newChangeRequestFixture()
		cr := seedChangeRequest(t, f, providerActor(), provider.KindAddCertificate, "plumber")

		assert.Equal(t, provider.ChangePending, cr.Status())
		assert.Equal(t, provider.KindAddCertificate, cr.Kind())
	})

	t.Run("customers cannot stage edits", func(t *testing.T) {
		f := newChangeRequestFixture()
		_, err := f.commands.SubmitChangeRequest(ctx, customerActor(), commands.SubmitChangeRequestInput{
			Kind:  provider.KindSetBio.String(),
			Value: "hi",
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unknown kind is a validation error", func(t *testing.T) {
		f := newChangeRequestFixture()
		_, err := f.commands.SubmitChangeRequest(ctx, providerActor(), commands.SubmitChangeRequestInput{
			Kind:  "set_display_name",
			Value: "x",
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("flag kinds want a boolean value", func(t *testing.T) {
		f := newChangeRequestFixture()
		_, err := f.commands.SubmitChangeRequest(ctx, providerActor(), commands.SubmitChangeRequestInput{
			Kind:  provider.KindSetPoliceCheck.String(),
			Value: "yes",
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestApproveChangeRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("approval applies the delta to the live profile", func(t *testing.T) {
		f := newChangeRequestFixture()
		prov := providerActor()
		seedProfile(f, prov)
		cr := seedChangeRequest(t, f, prov, provider.KindAddCertificate, "plumber")

		admin := adminActor()
		resolved, err := f.commands.ApproveChangeRequest(ctx, admin, cr.ID())
		require.NoError(t, err)

		assert.Equal(t, provider.ChangeApproved, resolved.Status())
		require.NotNil(t, resolved.ResolvedBy())
		assert.Equal(t, admin.ID, *resolved.ResolvedBy())

		stored := f.uow.store.profiles[prov.ID]
		assert.Contains(t, stored.Certificates(), "plumber")
	})

	t.Run("non-admins are forbidden", func(t *testing.T) {
		f := newChangeRequestFixture()
		prov := providerActor()
		seedProfile(f, prov)
		cr := seedChangeRequest(t, f, prov, provider.KindSetBio, "certified electrician")

		_, err := f.commands.ApproveChangeRequest(ctx, prov, cr.ID())
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("resolving twice is an invalid state", func(t *testing.T) {
		f := newChangeRequestFixture()
		prov := providerActor()
		seedProfile(f, prov)
		cr := seedChangeRequest(t, f, prov, provider.KindSetBio, "certified electrician")

		_, err := f.commands.ApproveChangeRequest(ctx, adminActor(), cr.ID())
		require.NoError(t, err)

		_, err = f.commands.ApproveChangeRequest(ctx, adminActor(), cr.ID())
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		f := newChangeRequestFixture()
		_, err := f.commands.ApproveChangeRequest(ctx, adminActor(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestRejectChangeRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection records the note and leaves the profile alone", func(t *testing.T) {
		f := newChangeRequestFixture()
		prov := providerActor()
		seedProfile(f, prov)
		cr := seedChangeRequest(t, f, prov, provider.KindAddLanguage, "english")

		resolved, err := f.commands.RejectChangeRequest(ctx, adminActor(), cr.ID(), "needs documentation")
		require.NoError(t, err)

		assert.Equal(t, provider.ChangeRejected, resolved.Status())
		assert.Equal(t, "needs documentation", resolved.AdminNote())
		assert.NotContains(t, f.uow.store.profiles[prov.ID].Languages(), "english")
	})

	t.Run("rejecting a resolved request fails", func(t *testing.T) {
		f := newChangeRequestFixture()
		prov := providerActor()
		seedProfile(f, prov)
		cr := seedChangeRequest(t, f, prov, provider.KindAddLanguage, "english")

		_, err := f.commands.RejectChangeRequest(ctx, adminActor(), cr.ID(), "")
		require.NoError(t, err)

		_, err = f.commands.RejectChangeRequest(ctx, adminActor(), cr.ID(), "")
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
