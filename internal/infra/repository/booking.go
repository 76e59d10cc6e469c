package repository

import (
	"context"
	"encoding/json"
	"time"

	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

type lineItemRecord struct {
	Name            string `json:"name"`
	PriceKroner     int64  `json:"price_kroner"`
	DurationMinutes int    `json:"duration_minutes"`
}

func encodeLineItems(items booking.LineItems) ([]byte, error) {
	records := make([]lineItemRecord, 0, len(items))
	for _, li := range items {
		records = append(records, lineItemRecord{
			Name:            li.Name(),
			PriceKroner:     li.Price().Kroner(),
			DurationMinutes: li.DurationMinutes(),
		})
	}
	return json.Marshal(records)
}

func decodeLineItems(raw []byte) (booking.LineItems, error) {
	var records []lineItemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	items := make(booking.LineItems, 0, len(records))
	for _, rec := range records {
		items = append(items, booking.ReconstructLineItem(rec.Name, booking.MustMoney(rec.PriceKroner), rec.DurationMinutes))
	}
	return items, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	items, err := encodeLineItems(b.LineItems())
	if err != nil {
		return infra.WrapRepoErr("encode booking line items", err, infra.KindDBFailure)
	}

	query, args, err := psql.Insert("bookings").
		Columns(
			"id", "customer_id", "provider_id", "address_id",
			"line_items", "scheduled_at", "status",
			"total_price", "platform_fee", "provider_payout",
			"payment_method", "payment_status",
			"created_at", "updated_at",
		).
		Values(
			b.ID(), b.CustomerID(), b.ProviderID(), b.AddressID(),
			items, b.ScheduledAt(), b.Status().String(),
			b.Totals().TotalPrice.Kroner(), b.Totals().PlatformFee.Kroner(), b.Totals().ProviderPayout.Kroner(),
			b.PaymentMethod().String(), b.PaymentStatus().String(),
			b.CreatedAt(), b.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build booking insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert booking", err)
	}
	return nil
}

func (r *BookingRepository) Transition(ctx context.Context, b *booking.Booking, from ...booking.Status) error {
	fromValues := make([]string, 0, len(from))
	for _, s := range from {
		fromValues = append(fromValues, s.String())
	}

	query, args, err := psql.Update("bookings").
		Set("status", b.Status().String()).
		Set("payment_status", b.PaymentStatus().String()).
		Set("completed_at", b.CompletedAt()).
		Set("updated_at", b.UpdatedAt()).
		Where(squirrel.Eq{"id": b.ID(), "status": fromValues}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build booking transition", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("transition booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status moved concurrently", nil, infra.KindConflict)
	}
	return nil
}

func (r *BookingRepository) InsertCancellation(ctx context.Context, bookingID uuid.UUID, c *booking.Cancellation) error {
	query, args, err := psql.Insert("booking_cancellations").
		Columns("booking_id", "cancelled_by", "reason", "within_day_window", "fee", "fee_refunded", "cancelled_at").
		Values(bookingID, c.CancelledBy().String(), c.Reason(), c.WithinDayWindow(), c.Fee().Kroner(), c.FeeRefunded(), c.CancelledAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build cancellation insert", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("insert cancellation", err)
	}
	return nil
}

func (r *BookingRepository) MarkFeeRefunded(ctx context.Context, bookingID uuid.UUID, now time.Time) error {
	query, args, err := psql.Update("booking_cancellations").
		Set("fee_refunded", true).
		Where(squirrel.Eq{"booking_id": bookingID, "fee_refunded": false}).
		Where(squirrel.Gt{"fee": 0}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build fee refund update", err, infra.KindDBFailure)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("mark fee refunded", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no refundable fee on booking", nil, infra.KindConflict)
	}

	query, args, err = psql.Update("bookings").
		Set("payment_status", booking.PaymentRefunded.String()).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("build payment status update", err, infra.KindDBFailure)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("update payment status", err)
	}
	return nil
}
