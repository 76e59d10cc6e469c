// Package readstore serves the query side: denormalized views straight from
// SQL, no domain entities involved.
package readstore

import (
	"context"
	"encoding/json"
	"time"

	"fiksit-api/internal/infra"
	"fiksit-api/internal/infra/db"
	"fiksit-api/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

type lineItemRow struct {
	Name            string `json:"name"`
	PriceKroner     int64  `json:"price_kroner"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := psql.Select(
		"b.id", "b.customer_id", "b.provider_id", "b.address_id",
		"b.line_items", "b.scheduled_at", "b.status",
		"b.total_price", "b.platform_fee", "b.provider_payout",
		"b.payment_method", "b.payment_status", "b.completed_at",
		"b.created_at", "b.updated_at",
		"c.cancelled_by", "c.reason", "c.within_day_window", "c.fee", "c.fee_refunded", "c.cancelled_at",
	).
		From("bookings b").
		LeftJoin("booking_cancellations c ON c.booking_id = b.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build booking view select", err, infra.KindDBFailure)
	}

	var (
		view        queries.BookingView
		rawItems    []byte
		cancelledBy, reason *string
		withinDayWindow, feeRefunded *bool
		fee         *int64
		cancelledAt *time.Time
	)
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&view.ID, &view.CustomerID, &view.ProviderID, &view.AddressID,
		&rawItems, &view.ScheduledAt, &view.Status,
		&view.TotalPriceKroner, &view.PlatformFeeKroner, &view.ProviderPayoutKroner,
		&view.PaymentMethod, &view.PaymentStatus, &view.CompletedAt,
		&view.CreatedAt, &view.UpdatedAt,
		&cancelledBy, &reason, &withinDayWindow, &fee, &feeRefunded, &cancelledAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("select booking view", err)
	}

	var rows []lineItemRow
	if err := json.Unmarshal(rawItems, &rows); err != nil {
		return nil, infra.WrapRepoErr("decode line items", err, infra.KindDBFailure)
	}
	view.LineItems = make([]queries.LineItemView, 0, len(rows))
	for _, r := range rows {
		view.LineItems = append(view.LineItems, queries.LineItemView{
			Name:            r.Name,
			PriceKroner:     r.PriceKroner,
			DurationMinutes: r.DurationMinutes,
		})
	}

	if cancelledBy != nil {
		view.Cancellation = &queries.CancellationView{
			CancelledBy:     *cancelledBy,
			Reason:          derefStr(reason),
			WithinDayWindow: derefBool(withinDayWindow),
			FeeKroner:       derefInt64(fee),
			FeeRefunded:     derefBool(feeRefunded),
			CancelledAt:     derefTime(cancelledAt),
		}
	}

	return &view, nil
}

func (s *BookingReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.BookingListItem, error) {
	return s.list(ctx, squirrel.Eq{"customer_id": customerID}, afterTime, afterID, limit)
}

func (s *BookingReadStore) ListByProvider(ctx context.Context, providerID uuid.UUID, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.BookingListItem, error) {
	return s.list(ctx, squirrel.Eq{"provider_id": providerID}, afterTime, afterID, limit)
}

// Newest first, keyset on (created_at, id).
func (s *BookingReadStore) list(ctx context.Context, filter squirrel.Eq, afterTime time.Time, afterID uuid.UUID, limit int) ([]*queries.BookingListItem, error) {
	builder := psql.Select(
		"id", "customer_id", "provider_id", "scheduled_at", "status", "total_price", "created_at",
	).
		From("bookings").
		Where(filter).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	if !afterTime.IsZero() {
		builder = builder.Where(squirrel.Expr("(created_at, id) < (?, ?)", afterTime, afterID))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("build booking list select", err, infra.KindDBFailure)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("select booking list", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0, limit)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.CustomerID, &item.ProviderID,
			&item.ScheduledAt, &item.Status, &item.TotalPriceKroner, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("scan booking list item", err, infra.KindDBFailure)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("iterate booking list", err, infra.KindDBFailure)
	}
	return items, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

func derefInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
