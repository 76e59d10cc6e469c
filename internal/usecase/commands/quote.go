package commands

import (
	"context"
	"errors"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/quote"
	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateQuoteRequestInput struct {
	CategoryID    uuid.UUID
	AddressID     uuid.UUID
	Title         string
	Description   string
	Answers       []quote.Answer
	PhotoURLs     []string
	ExpiresInDays int
}

type CreateQuoteResponseInput struct {
	RequestID                uuid.UUID
	PriceKroner              int64
	EstimatedDurationMinutes int
	MaterialsIncluded        bool
	Message                  string
	ValidForDays             int
}

type QuoteCommands interface {
	CreateQuoteRequest(ctx context.Context, actor user.Actor, in CreateQuoteRequestInput) (*quote.Request, error)
	CreateQuoteResponse(ctx context.Context, actor user.Actor, in CreateQuoteResponseInput) (*quote.Response, error)
	AcceptQuoteResponse(ctx context.Context, actor user.Actor, responseID uuid.UUID) (*quote.Response, error)
	CancelQuoteRequest(ctx context.Context, actor user.Actor, requestID uuid.UUID) (*quote.Request, error)
}

type quoteCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewQuoteCommands(uow shared.UnitOfWork, clk clock.Clock) QuoteCommands {
	return &quoteCommandsImpl{uow: uow, clock: clk}
}

func (c *quoteCommandsImpl) CreateQuoteRequest(ctx context.Context, actor user.Actor, in CreateQuoteRequestInput) (*quote.Request, error) {
	if !actor.IsCustomer() {
		return nil, errs.Mark(errs.New("only customers request quotes"), errs.ErrForbidden)
	}

	req, err := quote.NewRequest(
		actor.ID,
		in.CategoryID,
		in.AddressID,
		in.Title,
		in.Description,
		in.Answers,
		in.PhotoURLs,
		in.ExpiresInDays,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Quotes().CreateRequest(ctx, req); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (c *quoteCommandsImpl) CreateQuoteResponse(ctx context.Context, actor user.Actor, in CreateQuoteResponseInput) (*quote.Response, error) {
	if !actor.IsProvider() {
		return nil, errs.Mark(errs.New("only providers bid on quotes"), errs.ErrForbidden)
	}

	price, err := booking.NewMoney(in.PriceKroner)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	now := c.clock.Now()
	resp, err := quote.NewResponse(
		in.RequestID,
		actor.ID,
		price,
		in.EstimatedDurationMinutes,
		in.MaterialsIncluded,
		in.Message,
		in.ValidForDays,
		now,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, err := tx.Reads().QuoteRequestForUpdate(ctx, in.RequestID)
		if err != nil {
			return notFoundOrDB(err)
		}

		if err := req.AcceptsBids(now); err != nil {
			if errors.Is(err, quote.ErrRequestExpired) {
				return errs.Mark(err, errs.ErrExpired)
			}
			return errs.Mark(err, errs.ErrInvalidState)
		}

		responded, err := tx.Reads().HasProviderResponded(ctx, in.RequestID, actor.ID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if responded {
			return errs.Mark(quote.ErrRequestNotOpen, errs.ErrDuplicateResponse)
		}

		// The unique (request_id, provider_id) constraint backs the check
		// above against a concurrent bid from the same provider.
		if err := tx.Quotes().CreateResponse(ctx, resp); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateResponse)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Quotes().MarkRequestQuoted(ctx, in.RequestID, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AcceptQuoteResponse settles the race between concurrent accepts of sibling
// bids inside one transaction: the guarded UPDATE on the response row decides
// the winner, the loser observes an invalid-state failure.
func (c *quoteCommandsImpl) AcceptQuoteResponse(ctx context.Context, actor user.Actor, responseID uuid.UUID) (*quote.Response, error) {
	now := c.clock.Now()
	var result *quote.Response

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resp, err := tx.Reads().QuoteResponseForUpdate(ctx, responseID)
		if err != nil {
			return notFoundOrDB(err)
		}

		req, err := tx.Reads().QuoteRequestForUpdate(ctx, resp.RequestID())
		if err != nil {
			return notFoundOrDB(err)
		}

		if !actor.IsAdmin() && (!actor.IsCustomer() || actor.ID != req.CustomerID()) {
			return errs.Mark(errs.New("only the requesting customer accepts bids"), errs.ErrForbidden)
		}

		if err := resp.Accept(now); err != nil {
			if errors.Is(err, quote.ErrResponseLapsed) {
				return errs.Mark(err, errs.ErrExpired)
			}
			return errs.Mark(err, errs.ErrInvalidState)
		}
		if err := req.Accept(now); err != nil {
			if errors.Is(err, quote.ErrRequestExpired) {
				return errs.Mark(err, errs.ErrExpired)
			}
			return errs.Mark(err, errs.ErrInvalidState)
		}

		won, err := tx.Quotes().AcceptResponse(ctx, responseID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !won {
			return errs.Mark(quote.ErrResponseNotPending, errs.ErrInvalidState)
		}

		if err := tx.Quotes().RejectPendingSiblings(ctx, resp.RequestID(), responseID, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		won, err = tx.Quotes().AcceptRequest(ctx, resp.RequestID(), now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !won {
			return errs.Mark(quote.ErrRequestTerminal, errs.ErrInvalidState)
		}

		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *quoteCommandsImpl) CancelQuoteRequest(ctx context.Context, actor user.Actor, requestID uuid.UUID) (*quote.Request, error) {
	now := c.clock.Now()
	var result *quote.Request

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, err := tx.Reads().QuoteRequestForUpdate(ctx, requestID)
		if err != nil {
			return notFoundOrDB(err)
		}

		if !actor.IsAdmin() && actor.ID != req.CustomerID() {
			return errs.Mark(errs.New("only the requesting customer cancels"), errs.ErrForbidden)
		}

		// Fails rather than silently succeeding on terminal requests, to
		// surface caller bugs.
		if err := req.Cancel(now); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}

		won, err := tx.Quotes().CancelRequest(ctx, requestID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !won {
			return errs.Mark(quote.ErrRequestTerminal, errs.ErrInvalidState)
		}

		if err := tx.Quotes().ExpirePendingResponses(ctx, requestID, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
