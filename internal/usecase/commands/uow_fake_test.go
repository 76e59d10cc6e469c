//go:build unit

package commands_test

import (
	"context"
	"time"

	"fiksit-api/internal/domain/availability"
	"fiksit-api/internal/domain/booking"
	"fiksit-api/internal/domain/provider"
	"fiksit-api/internal/domain/quote"
	"fiksit-api/internal/domain/review"
	"fiksit-api/internal/infra"
	"fiksit-api/internal/pkg/errs"
	"fiksit-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the persistence layer. Reads hand
// out reconstructed copies so command mutations only become visible through
// an explicit write, mirroring the real load-mutate-persist cycle.
type fakeStore struct {
	bookings       map[uuid.UUID]*booking.Booking
	quoteRequests  map[uuid.UUID]*quote.Request
	quoteResponses map[uuid.UUID]*quote.Response
	schedules      map[uuid.UUID]availability.WeeklySchedule
	blockedDates   map[uuid.UUID]map[time.Time]availability.BlockedDate
	profiles       map[uuid.UUID]*provider.Profile
	changeRequests map[uuid.UUID]*provider.ChangeRequest
	reviews        map[uuid.UUID]*review.Review // keyed by booking ID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings:       make(map[uuid.UUID]*booking.Booking),
		quoteRequests:  make(map[uuid.UUID]*quote.Request),
		quoteResponses: make(map[uuid.UUID]*quote.Response),
		schedules:      make(map[uuid.UUID]availability.WeeklySchedule),
		blockedDates:   make(map[uuid.UUID]map[time.Time]availability.BlockedDate),
		profiles:       make(map[uuid.UUID]*provider.Profile),
		changeRequests: make(map[uuid.UUID]*provider.ChangeRequest),
		reviews:        make(map[uuid.UUID]*review.Review),
	}
}

type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{store: newFakeStore()}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Bookings() shared.BookingRepository             { return &fakeBookingRepo{t.store} }
func (t *fakeTx) Quotes() shared.QuoteRepository                 { return &fakeQuoteRepo{t.store} }
func (t *fakeTx) Schedules() shared.ScheduleRepository           { return &fakeScheduleRepo{t.store} }
func (t *fakeTx) BlockedDates() shared.BlockedDateRepository     { return &fakeBlockedDateRepo{t.store} }
func (t *fakeTx) Providers() shared.ProviderRepository           { return &fakeProviderRepo{t.store} }
func (t *fakeTx) ChangeRequests() shared.ChangeRequestRepository { return &fakeChangeRequestRepo{t.store} }
func (t *fakeTx) Reviews() shared.ReviewRepository               { return &fakeReviewRepo{t.store} }
func (t *fakeTx) Reads() shared.CommandReads                     { return &fakeReads{t.store} }

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateProvider(_ context.Context, _ uuid.UUID) {
	f.calls++
}

func errNotFound() error {
	return infra.WrapRepoErr("row not found", errs.New("no rows"), infra.KindNotFound)
}

func errConflict(msg string) error {
	return infra.WrapRepoErr(msg, errs.New("zero rows affected"), infra.KindConflict)
}

func errDuplicate(msg string) error {
	return infra.WrapRepoErr(msg, errs.New("unique violation"), infra.KindDuplicateKey)
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	var c *booking.Cancellation
	if orig := b.Cancellation(); orig != nil {
		c = booking.ReconstructCancellation(
			orig.CancelledBy(), orig.Reason(), orig.WithinDayWindow(),
			orig.Fee(), orig.FeeRefunded(), orig.CancelledAt(),
		)
	}
	return booking.ReconstructBooking(
		b.ID(), b.CustomerID(), b.ProviderID(), b.AddressID(),
		b.LineItems(), b.ScheduledAt(), b.Status(), b.Totals(),
		b.PaymentMethod(), b.PaymentStatus(), c, b.CompletedAt(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

func cloneRequest(r *quote.Request) *quote.Request {
	return quote.ReconstructRequest(
		r.ID(), r.CustomerID(), r.CategoryID(), r.AddressID(),
		r.Title(), r.Description(), r.Answers(), r.PhotoURLs(),
		r.Status(), r.ExpiresAt(), r.CreatedAt(), r.UpdatedAt(),
	)
}

func requestWithStatus(r *quote.Request, status quote.RequestStatus) *quote.Request {
	return quote.ReconstructRequest(
		r.ID(), r.CustomerID(), r.CategoryID(), r.AddressID(),
		r.Title(), r.Description(), r.Answers(), r.PhotoURLs(),
		status, r.ExpiresAt(), r.CreatedAt(), r.UpdatedAt(),
	)
}

func cloneResponse(r *quote.Response) *quote.Response {
	return quote.ReconstructResponse(
		r.ID(), r.RequestID(), r.ProviderID(), r.Price(),
		r.EstimatedDuration(), r.MaterialsIncluded(), r.Message(),
		r.Status(), r.ValidUntil(), r.CreatedAt(), r.UpdatedAt(),
	)
}

func responseWithStatus(r *quote.Response, status quote.ResponseStatus) *quote.Response {
	return quote.ReconstructResponse(
		r.ID(), r.RequestID(), r.ProviderID(), r.Price(),
		r.EstimatedDuration(), r.MaterialsIncluded(), r.Message(),
		status, r.ValidUntil(), r.CreatedAt(), r.UpdatedAt(),
	)
}

func cloneProfile(p *provider.Profile) *provider.Profile {
	return provider.ReconstructProfile(
		p.ID(), p.DisplayName(), p.Bio(), p.Education(),
		append([]string(nil), p.Certificates()...),
		append([]string(nil), p.Languages()...),
		p.PoliceCheckVerified(), p.InsuranceVerified(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}

func cloneChangeRequest(cr *provider.ChangeRequest) *provider.ChangeRequest {
	return provider.ReconstructChangeRequest(
		cr.ID(), cr.ProviderID(), cr.Kind(), cr.Value(), cr.Message(),
		cr.Status(), cr.AdminNote(), cr.ResolvedBy(), cr.ResolvedAt(),
		cr.CreatedAt(), cr.UpdatedAt(),
	)
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.store.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) Transition(_ context.Context, b *booking.Booking, from ...booking.Status) error {
	stored, ok := r.store.bookings[b.ID()]
	if !ok {
		return errNotFound()
	}
	allowed := false
	for _, s := range from {
		if stored.Status() == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return errConflict("booking status moved concurrently")
	}
	r.store.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) InsertCancellation(_ context.Context, bookingID uuid.UUID, _ *booking.Cancellation) error {
	if _, ok := r.store.bookings[bookingID]; !ok {
		return errNotFound()
	}
	return nil
}

func (r *fakeBookingRepo) MarkFeeRefunded(_ context.Context, bookingID uuid.UUID, _ time.Time) error {
	stored, ok := r.store.bookings[bookingID]
	if !ok {
		return errNotFound()
	}
	c := stored.Cancellation()
	if c == nil || c.Fee().IsZero() || c.FeeRefunded() {
		return errConflict("fee already refunded")
	}
	_ = stored.RefundCancellationFee(time.Now())
	return nil
}

type fakeQuoteRepo struct {
	store *fakeStore
}

func (r *fakeQuoteRepo) CreateRequest(_ context.Context, req *quote.Request) error {
	r.store.quoteRequests[req.ID()] = cloneRequest(req)
	return nil
}

func (r *fakeQuoteRepo) CreateResponse(_ context.Context, resp *quote.Response) error {
	for _, existing := range r.store.quoteResponses {
		if existing.RequestID() == resp.RequestID() && existing.ProviderID() == resp.ProviderID() {
			return errDuplicate("provider already responded")
		}
	}
	r.store.quoteResponses[resp.ID()] = cloneResponse(resp)
	return nil
}

func (r *fakeQuoteRepo) MarkRequestQuoted(_ context.Context, requestID uuid.UUID, now time.Time) error {
	if stored, ok := r.store.quoteRequests[requestID]; ok && stored.Status() == quote.RequestOpen {
		r.store.quoteRequests[requestID] = requestWithStatus(stored, quote.RequestQuoted)
	}
	return nil
}

func (r *fakeQuoteRepo) AcceptResponse(_ context.Context, responseID uuid.UUID, now time.Time) (bool, error) {
	stored, ok := r.store.quoteResponses[responseID]
	if !ok {
		return false, nil
	}
	if stored.Status() != quote.ResponsePending || !stored.ValidUntil().After(now) {
		return false, nil
	}
	r.store.quoteResponses[responseID] = responseWithStatus(stored, quote.ResponseAccepted)
	return true, nil
}

func (r *fakeQuoteRepo) RejectPendingSiblings(_ context.Context, requestID, acceptedID uuid.UUID, _ time.Time) error {
	for id, resp := range r.store.quoteResponses {
		if resp.RequestID() == requestID && id != acceptedID && resp.Status() == quote.ResponsePending {
			r.store.quoteResponses[id] = responseWithStatus(resp, quote.ResponseRejected)
		}
	}
	return nil
}

func (r *fakeQuoteRepo) AcceptRequest(_ context.Context, requestID uuid.UUID, now time.Time) (bool, error) {
	stored, ok := r.store.quoteRequests[requestID]
	if !ok {
		return false, nil
	}
	s := stored.Status()
	if (s != quote.RequestOpen && s != quote.RequestQuoted) || !stored.ExpiresAt().After(now) {
		return false, nil
	}
	r.store.quoteRequests[requestID] = requestWithStatus(stored, quote.RequestAccepted)
	return true, nil
}

func (r *fakeQuoteRepo) CancelRequest(_ context.Context, requestID uuid.UUID, _ time.Time) (bool, error) {
	stored, ok := r.store.quoteRequests[requestID]
	if !ok {
		return false, nil
	}
	if stored.Status().IsTerminal() {
		return false, nil
	}
	r.store.quoteRequests[requestID] = requestWithStatus(stored, quote.RequestCancelled)
	return true, nil
}

func (r *fakeQuoteRepo) ExpirePendingResponses(_ context.Context, requestID uuid.UUID, _ time.Time) error {
	for id, resp := range r.store.quoteResponses {
		if resp.RequestID() == requestID && resp.Status() == quote.ResponsePending {
			r.store.quoteResponses[id] = responseWithStatus(resp, quote.ResponseExpired)
		}
	}
	return nil
}

type fakeScheduleRepo struct {
	store *fakeStore
}

func (r *fakeScheduleRepo) ReplaceForProvider(_ context.Context, providerID uuid.UUID, slots availability.WeeklySchedule) error {
	r.store.schedules[providerID] = slots
	return nil
}

type fakeBlockedDateRepo struct {
	store *fakeStore
}

func (r *fakeBlockedDateRepo) Insert(_ context.Context, bd availability.BlockedDate) error {
	byProvider, ok := r.store.blockedDates[bd.ProviderID()]
	if !ok {
		byProvider = make(map[time.Time]availability.BlockedDate)
		r.store.blockedDates[bd.ProviderID()] = byProvider
	}
	if _, exists := byProvider[bd.Date()]; exists {
		return errDuplicate("date already blocked")
	}
	byProvider[bd.Date()] = bd
	return nil
}

func (r *fakeBlockedDateRepo) Delete(_ context.Context, providerID uuid.UUID, date time.Time) error {
	byProvider := r.store.blockedDates[providerID]
	if _, ok := byProvider[availability.NormalizeDate(date)]; !ok {
		return errNotFound()
	}
	delete(byProvider, availability.NormalizeDate(date))
	return nil
}

type fakeProviderRepo struct {
	store *fakeStore
}

func (r *fakeProviderRepo) UpdateProfile(_ context.Context, p *provider.Profile) error {
	if _, ok := r.store.profiles[p.ID()]; !ok {
		return errNotFound()
	}
	r.store.profiles[p.ID()] = cloneProfile(p)
	return nil
}

type fakeChangeRequestRepo struct {
	store *fakeStore
}

func (r *fakeChangeRequestRepo) Create(_ context.Context, cr *provider.ChangeRequest) error {
	r.store.changeRequests[cr.ID()] = cloneChangeRequest(cr)
	return nil
}

func (r *fakeChangeRequestRepo) UpdateResolution(_ context.Context, cr *provider.ChangeRequest) error {
	stored, ok := r.store.changeRequests[cr.ID()]
	if !ok {
		return errNotFound()
	}
	if stored.Status() != provider.ChangePending {
		return errConflict("change request already resolved")
	}
	r.store.changeRequests[cr.ID()] = cloneChangeRequest(cr)
	return nil
}

type fakeReviewRepo struct {
	store *fakeStore
}

func (r *fakeReviewRepo) Create(_ context.Context, rev *review.Review) error {
	if _, ok := r.store.reviews[rev.BookingID()]; ok {
		return errDuplicate("review already exists")
	}
	r.store.reviews[rev.BookingID()] = rev
	return nil
}

type fakeReads struct {
	store *fakeStore
}

func (f *fakeReads) BookingForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.store.bookings[id]
	if !ok {
		return nil, errNotFound()
	}
	return cloneBooking(b), nil
}

func (f *fakeReads) QuoteRequestForUpdate(_ context.Context, id uuid.UUID) (*quote.Request, error) {
	r, ok := f.store.quoteRequests[id]
	if !ok {
		return nil, errNotFound()
	}
	return cloneRequest(r), nil
}

func (f *fakeReads) QuoteResponseForUpdate(_ context.Context, id uuid.UUID) (*quote.Response, error) {
	r, ok := f.store.quoteResponses[id]
	if !ok {
		return nil, errNotFound()
	}
	return cloneResponse(r), nil
}

func (f *fakeReads) ProviderProfileForUpdate(_ context.Context, id uuid.UUID) (*provider.Profile, error) {
	p, ok := f.store.profiles[id]
	if !ok {
		return nil, errNotFound()
	}
	return cloneProfile(p), nil
}

func (f *fakeReads) ChangeRequestForUpdate(_ context.Context, id uuid.UUID) (*provider.ChangeRequest, error) {
	cr, ok := f.store.changeRequests[id]
	if !ok {
		return nil, errNotFound()
	}
	return cloneChangeRequest(cr), nil
}

func (f *fakeReads) HasProviderResponded(_ context.Context, requestID, providerID uuid.UUID) (bool, error) {
	for _, resp := range f.store.quoteResponses {
		if resp.RequestID() == requestID && resp.ProviderID() == providerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReads) CountActiveBookingsOnDate(_ context.Context, providerID uuid.UUID, date time.Time) (int, error) {
	count := 0
	for _, b := range f.store.bookings {
		if b.ProviderID() == providerID && b.IsActive() && availability.SameDate(b.ScheduledAt(), date) {
			count++
		}
	}
	return count, nil
}

func (f *fakeReads) IsDateBlocked(_ context.Context, providerID uuid.UUID, date time.Time) (bool, error) {
	byProvider := f.store.blockedDates[providerID]
	_, ok := byProvider[availability.NormalizeDate(date)]
	return ok, nil
}

func (f *fakeReads) HasReviewForBooking(_ context.Context, bookingID uuid.UUID) (bool, error) {
	_, ok := f.store.reviews[bookingID]
	return ok, nil
}
