package commands

import (
	"context"

	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitChangeRequestInput struct {
	Kind    string
	Value   string
	Message string
}

type ChangeRequestCommands interface {
	SubmitChangeRequest(ctx context.Context, actor user.Actor, in SubmitChangeRequestInput) (*provider.ChangeRequest, error)
	ApproveChangeRequest(ctx context.Context, actor user.Actor, id uuid.UUID) (*provider.ChangeRequest, error)
	RejectChangeRequest(ctx context.Context, actor user.Actor, id uuid.UUID, note string) (*provider.ChangeRequest, error)
}

type changeRequestCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewChangeRequestCommands(uow shared.UnitOfWork, clk clock.Clock) ChangeRequestCommands {
	return &changeRequestCommandsImpl{uow: uow, clock: clk}
}

func (c *changeRequestCommandsImpl) SubmitChangeRequest(ctx context.Context, actor user.Actor, in SubmitChangeRequestInput) (*provider.ChangeRequest, error) {
	if !actor.IsProvider() {
		return nil, errs.Mark(errs.New("only providers stage profile edits"), errs.ErrForbidden)
	}

	cr, err := provider.NewChangeRequest(actor.ID, provider.Kind(in.Kind), in.Value, in.Message, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.ChangeRequests().Create(ctx, cr); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cr, nil
}

// ApproveChangeRequest applies the staged delta to the live profile and
// resolves the request in one transaction.
func (c *changeRequestCommandsImpl) ApproveChangeRequest(ctx context.Context, actor user.Actor, id uuid.UUID) (*provider.ChangeRequest, error) {
	if !actor.IsAdmin() {
		return nil, errs.Mark(errs.New("only admins decide change requests"), errs.ErrForbidden)
	}

	now := c.clock.Now()
	var result *provider.ChangeRequest

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cr, err := tx.Reads().ChangeRequestForUpdate(ctx, id)
		if err != nil {
			return notFoundOrDB(err)
		}

		profile, err := tx.Reads().ProviderProfileForUpdate(ctx, cr.ProviderID())
		if err != nil {
			return notFoundOrDB(err)
		}

		if err := cr.Approve(profile, actor.ID, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}

		if err := tx.Providers().UpdateProfile(ctx, profile); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.ChangeRequests().UpdateResolution(ctx, cr); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = cr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *changeRequestCommandsImpl) RejectChangeRequest(ctx context.Context, actor user.Actor, id uuid.UUID, note string) (*provider.ChangeRequest, error) {
	if !actor.IsAdmin() {
		return nil, errs.Mark(errs.New("only admins decide change requests"), errs.ErrForbidden)
	}

	now := c.clock.Now()
	var result *provider.ChangeRequest

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cr, err := tx.Reads().ChangeRequestForUpdate(ctx, id)
		if err != nil {
			return notFoundOrDB(err)
		}

		if err := cr.Reject(actor.ID, note, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}

		if err := tx.ChangeRequests().UpdateResolution(ctx, cr); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = cr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
