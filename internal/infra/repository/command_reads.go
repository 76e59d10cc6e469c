package repository

import (
	"context"
	"time"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/domain/quote"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// CommandReads hydrates full domain entities for command-side validation.
// Inside a transaction the selects carry FOR UPDATE so the validated state
// cannot change under the command.
type CommandReads struct {
	db        db.DBTX
	forUpdate bool
}

func NewCommandReads(dbtx db.DBTX, forUpdate bool) *CommandReads {
	return &CommandReads{db: dbtx, forUpdate: forUpdate}
}

func (c *CommandReads) lock(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if c.forUpdate {
		return b.Suffix("FOR UPDATE")
	}
	return b
}

func (c *CommandReads) BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := c.lock(psql.Select(
		"id", "customer_id", "provider_id", "address_id",
		"line_items", "scheduled_at", "status",
		"total_price", "platform_fee", "provider_payout",
		"payment_method", "payment_status", "completed_at",
		"created_at", "updated_at",
	).From("bookings").Where(squirrel.Eq{"id": id})).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build booking select", err, infra.KindDBFailure)
	}

	var (
		bID, customerID, providerID, addressID       uuid.UUID
		rawItems                                     []byte
		scheduledAt, createdAt, updatedAt            time.Time
		status, paymentMethod, paymentStatus         string
		totalPrice, platformFee, providerPayout      int64
		completedAt                                  *time.Time
	)
	err = c.db.QueryRow(ctx, query, args...).Scan(
		&bID, &customerID, &providerID, &addressID,
		&rawItems, &scheduledAt, &status,
		&totalPrice, &platformFee, &providerPayout,
		&paymentMethod, &paymentStatus, &completedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("select booking", err)
	}

	items, err := decodeLineItems(rawItems)
	if err != nil {
		return nil, infra.WrapRepoErr("decode booking line items", err, infra.KindDBFailure)
	}

	cancellation, err := c.cancellationFor(ctx, bID)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		bID, customerID, providerID, addressID,
		items, scheduledAt,
		booking.Status(status),
		booking.Totals{
			TotalPrice:     booking.MustMoney(totalPrice),
			PlatformFee:    booking.MustMoney(platformFee),
			ProviderPayout: booking.MustMoney(providerPayout),
		},
		booking.PaymentMethod(paymentMethod),
		booking.PaymentStatus(paymentStatus),
		cancellation, completedAt, createdAt, updatedAt,
	), nil
}

// cancellationFor needs no row lock: the cancellation row is only ever
// mutated while its booking row is already locked.
func (c *CommandReads) cancellationFor(ctx context.Context, bookingID uuid.UUID) (*booking.Cancellation, error) {
	query, args, err := psql.Select(
		"cancelled_by", "reason", "within_day_window", "fee", "fee_refunded", "cancelled_at",
	).From("booking_cancellations").Where(squirrel.Eq{"booking_id": bookingID}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build cancellation select", err, infra.KindDBFailure)
	}

	var (
		cancelledBy, reason          string
		withinDayWindow, feeRefunded bool
		fee                          int64
		cancelledAt                  time.Time
	)
	err = c.db.QueryRow(ctx, query, args...).Scan(
		&cancelledBy, &reason, &withinDayWindow, &fee, &feeRefunded, &cancelledAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("select cancellation", err)
	}

	return booking.ReconstructCancellation(
		booking.CancelParty(cancelledBy), reason, withinDayWindow,
		booking.MustMoney(fee), feeRefunded, cancelledAt,
	), nil
}

func (c *CommandReads) QuoteRequestForUpdate(ctx context.Context, id uuid.UUID) (*quote.Request, error) {
	query, args, err := c.lock(psql.Select(
		"id", "customer_id", "category_id", "address_id",
		"title", "description", "answers", "photo_urls",
		"status", "expires_at", "created_at", "updated_at",
	).From("quote_requests").Where(squirrel.Eq{"id": id})).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build quote request select", err, infra.KindDBFailure)
	}

	var (
		rID, customerID, categoryID, addressID uuid.UUID
		title, description, status             string
		rawAnswers                             []byte
		photoURLs                              []string
		expiresAt, createdAt, updatedAt        time.Time
	)
	err = c.db.QueryRow(ctx, query, args...).Scan(
		&rID, &customerID, &categoryID, &addressID,
		&title, &description, &rawAnswers, &photoURLs,
		&status, &expiresAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("select quote request", err)
	}

	answers, err := decodeAnswers(rawAnswers)
	if err != nil {
		return nil, infra.WrapRepoErr("decode quote answers", err, infra.KindDBFailure)
	}

	return quote.ReconstructRequest(
		rID, customerID, categoryID, addressID,
		title, description, answers, photoURLs,
		quote.RequestStatus(status), expiresAt, createdAt, updatedAt,
	), nil
}

func (c *CommandReads) QuoteResponseForUpdate(ctx context.Context, id uuid.UUID) (*quote.Response, error) {
	query, args, err := c.lock(psql.Select(
		"id", "request_id", "provider_id",
		"price", "estimated_duration_minutes", "materials_included", "message",
		"status", "valid_until", "created_at", "updated_at",
	).From("quote_responses").Where(squirrel.Eq{"id": id})).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build quote response select", err, infra.KindDBFailure)
	}

	var (
		rID, requestID, providerID      uuid.UUID
		price                           int64
		estimatedDuration               int
		materialsIncluded               bool
		message, status                 string
		validUntil, createdAt, updatedAt time.Time
	)
	err = c.db.QueryRow(ctx, query, args...).Scan(
		&rID, &requestID, &providerID,
		&price, &estimatedDuration, &materialsIncluded, &message,
		&status, &validUntil, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("select quote response", err)
	}

	return quote.ReconstructResponse(
		rID, requestID, providerID,
		booking.MustMoney(price), estimatedDuration, materialsIncluded, message,
		quote.ResponseStatus(status), validUntil, createdAt, updatedAt,
	), nil
}

func (c *CommandReads) ProviderProfileForUpdate(ctx context.Context, id uuid.UUID) (*provider.Profile, error) {
	query, args, err := c.lock(psql.Select(
		"id", "display_name", "bio", "education",
		"certificates", "languages",
		"police_check_verified", "insurance_verified",
		"created_at", "updated_at",
	).From("provider_profiles").Where(squirrel.Eq{"id": id})).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build profile select", err, infra.KindDBFailure)
	}

	var (
		pID                                    uuid.UUID
		displayName, bio, education            string
		certificates, languages                []string
		policeCheckVerified, insuranceVerified bool
		createdAt, updatedAt                   time.Time
	)
	err = c.db.QueryRow(ctx, query, args...).Scan(
		&pID, &displayName, &bio, &education,
		&certificates, &languages,
		&policeCheckVerified, &insuranceVerified,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("select provider profile", err)
	}

	return provider.ReconstructProfile(
		pID, displayName, bio, education,
		certificates, languages,
		policeCheckVerified, insuranceVerified,
		createdAt, updatedAt,
	), nil
}

func (c *CommandReads) ChangeRequestForUpdate(ctx context.Context, id uuid.UUID) (*provider.ChangeRequest, error) {
	query, args, err := c.lock(psql.Select(
		"id", "provider_id", "kind", "value", "message",
		"status", "admin_note", "resolved_by", "resolved_at",
		"created_at", "updated_at",
	).From("change_requests").Where(squirrel.Eq{"id": id})).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build change request select", err, infra.KindDBFailure)
	}

	var (
		crID, providerID             uuid.UUID
		kind, value, message         string
		status, adminNote            string
		resolvedBy                   *uuid.UUID
		resolvedAt                   *time.Time
		createdAt, updatedAt         time.Time
	)
	err = c.db.QueryRow(ctx, query, args...).Scan(
		&crID, &providerID, &kind, &value, &message,
		&status, &adminNote, &resolvedBy, &resolvedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("select change request", err)
	}

	return provider.ReconstructChangeRequest(
		crID, providerID, provider.Kind(kind), value, message,
		provider.ChangeRequestStatus(status), adminNote,
		resolvedBy, resolvedAt, createdAt, updatedAt,
	), nil
}

func (c *CommandReads) HasProviderResponded(ctx context.Context, requestID, providerID uuid.UUID) (bool, error) {
	query, args, err := psql.Select("1").
		From("quote_responses").
		Where(squirrel.Eq{"request_id": requestID, "provider_id": providerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("build responded select", err, infra.KindDBFailure)
	}

	var one int
	err = c.db.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if infra.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("check provider responded", err)
	}
	return true, nil
}

func (c *CommandReads) CountActiveBookingsOnDate(ctx context.Context, providerID uuid.UUID, date time.Time) (int, error) {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	query, args, err := psql.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"provider_id": providerID, "status": []string{
			booking.StatusPending.String(), booking.StatusConfirmed.String(),
		}}).
		Where(squirrel.GtOrEq{"scheduled_at": dayStart}).
		Where(squirrel.Lt{"scheduled_at": dayEnd}).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("build active bookings count", err, infra.KindDBFailure)
	}

	var count int
	if err := c.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("count active bookings", err)
	}
	return count, nil
}

func (c *CommandReads) IsDateBlocked(ctx context.Context, providerID uuid.UUID, date time.Time) (bool, error) {
	query, args, err := psql.Select("1").
		From("blocked_dates").
		Where(squirrel.Eq{"provider_id": providerID, "blocked_on": date}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("build blocked date select", err, infra.KindDBFailure)
	}

	var one int
	err = c.db.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if infra.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("check date blocked", err)
	}
	return true, nil
}

func (c *CommandReads) HasReviewForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query, args, err := psql.Select("1").
		From("reviews").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("build review select", err, infra.KindDBFailure)
	}

	var one int
	err = c.db.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if infra.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("check review exists", err)
	}
	return true, nil
}
