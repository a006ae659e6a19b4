package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/calendar"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	stripeclient "github.com/dustinvannguyen13-max/sparkandmend-api/internal/stripe"
)

// In-memory repository fakes. Bookings keep insertion order so "earliest
// occurrence" assertions are stable.

type fakeBookingRepo struct {
	order    []string
	bookings map[string]*entity.Booking
	failNext error
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: map[string]*entity.Booking{}}
	for _, b := range bookings {
		r.order = append(r.order, b.Reference)
		r.bookings[b.Reference] = b
	}
	return r
}

func (r *fakeBookingRepo) all() []*entity.Booking {
	out := make([]*entity.Booking, 0, len(r.order))
	for _, ref := range r.order {
		out = append(out, r.bookings[ref])
	}
	return out
}

func (r *fakeBookingRepo) Create(ctx context.Context, bookings []*entity.Booking) ([]*entity.Booking, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	for _, b := range bookings {
		r.order = append(r.order, b.Reference)
		r.bookings[b.Reference] = b
	}
	return bookings, nil
}

func (r *fakeBookingRepo) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	return r.bookings[reference], nil
}

func (r *fakeBookingRepo) Lookup(ctx context.Context, reference, email string) (*entity.Booking, error) {
	b := r.bookings[reference]
	if b == nil || b.Email != email {
		return nil, nil
	}
	return b, nil
}

func (r *fakeBookingRepo) Search(ctx context.Context, email, postcode string) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.all() {
		if b.Email == email && b.Postcode == postcode {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) List(ctx context.Context, status, fromDate, toDate string, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.all() {
		if status != "" && string(b.Status) != status {
			continue
		}
		out = append(out, b)
	}
	if offset > len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, reference string, patch map[string]any) error {
	b := r.bookings[reference]
	if b == nil {
		return fmt.Errorf("booking %s not found", reference)
	}
	applyPatch(b, patch)
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, reference string) error {
	delete(r.bookings, reference)
	return nil
}

func (r *fakeBookingRepo) FindBySeries(ctx context.Context, seriesID string) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.all() {
		if b.SeriesID == seriesID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindBySubscription(ctx context.Context, subscriptionID string) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.all() {
		if b.StripeSubscriptionID == subscriptionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateSeries(ctx context.Context, seriesID string, patch map[string]any) error {
	for _, b := range r.all() {
		if b.SeriesID == seriesID {
			applyPatch(b, patch)
		}
	}
	return nil
}

func (r *fakeBookingRepo) UpdateIfPending(ctx context.Context, reference string, patch map[string]any) (bool, error) {
	b := r.bookings[reference]
	if b == nil || b.Status != entity.BookingStatusPending {
		return false, nil
	}
	applyPatch(b, patch)
	return true, nil
}

func (r *fakeBookingRepo) ListSchedulable(ctx context.Context) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.all() {
		if b.PreferredDate != "" {
			out = append(out, b)
		}
	}
	return out, nil
}

func applyPatch(b *entity.Booking, patch map[string]any) {
	for key, value := range patch {
		switch key {
		case "status":
			switch v := value.(type) {
			case entity.BookingStatus:
				b.Status = v
			case string:
				b.Status = entity.BookingStatus(v)
			}
		case "amount_paid":
			b.AmountPaid = value.(int)
		case "stripe_session_id":
			b.StripeSessionID = value.(string)
		case "stripe_customer_id":
			b.StripeCustomerID = value.(string)
		case "stripe_subscription_id":
			b.StripeSubscriptionID = value.(string)
		case "subscription_status":
			b.SubscriptionStatus = value.(string)
		case "current_period_end":
			b.CurrentPeriodEnd = value.(string)
		case "preferred_date":
			b.PreferredDate = value.(string)
		case "preferred_time":
			b.PreferredTime = value.(string)
		case "notes":
			b.Notes = value.(string)
		case "per_visit_price":
			b.PerVisitPrice = value.(int)
		}
	}
}

type fakeEventRepo struct {
	mappings map[string]*entity.BookingGoogleEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{mappings: map[string]*entity.BookingGoogleEvent{}}
}

func (r *fakeEventRepo) Upsert(ctx context.Context, mapping *entity.BookingGoogleEvent) error {
	r.mappings[mapping.BookingReference] = mapping
	return nil
}

func (r *fakeEventRepo) FindByReference(ctx context.Context, reference string) (*entity.BookingGoogleEvent, error) {
	return r.mappings[reference], nil
}

func (r *fakeEventRepo) ListAll(ctx context.Context) ([]*entity.BookingGoogleEvent, error) {
	var out []*entity.BookingGoogleEvent
	for _, m := range r.mappings {
		out = append(out, m)
	}
	return out, nil
}

type fakeOfferRepo struct {
	offer *entity.Offer
	err   error
}

func (r *fakeOfferRepo) Get(ctx context.Context) (*entity.Offer, error) {
	return r.offer, r.err
}

func (r *fakeOfferRepo) ActiveOffer(ctx context.Context, now time.Time) (*entity.Offer, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.offer != nil && r.offer.ActiveAt(now) {
		return r.offer, nil
	}
	return nil, nil
}

func (r *fakeOfferRepo) Save(ctx context.Context, offer *entity.Offer) error {
	r.offer = offer
	return nil
}

type fakeIntegrationRepo struct {
	integration *entity.GoogleIntegration
}

func (r *fakeIntegrationRepo) Get(ctx context.Context) (*entity.GoogleIntegration, error) {
	return r.integration, nil
}

func (r *fakeIntegrationRepo) Save(ctx context.Context, integration *entity.GoogleIntegration) error {
	r.integration = integration
	return nil
}

func newFakeRepository(bookings *fakeBookingRepo) *repository.Repository {
	return &repository.Repository{
		Booking:      bookings,
		BookingEvent: newFakeEventRepo(),
		Offer:        &fakeOfferRepo{},
		Integration:  &fakeIntegrationRepo{},
	}
}

// fakeStripeAPI scripts the Stripe client surface.
type fakeStripeAPI struct {
	checkout        *stripeclient.CheckoutResult
	checkoutErr     error
	portalURL       string
	portalErr       error
	subscription    *stripeclient.SubscriptionState
	subscriptionErr error
}

func (f *fakeStripeAPI) CreateCheckout(ctx context.Context, booking *entity.Booking) (*stripeclient.CheckoutResult, error) {
	return f.checkout, f.checkoutErr
}

func (f *fakeStripeAPI) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	return f.portalURL, f.portalErr
}

func (f *fakeStripeAPI) GetSubscription(ctx context.Context, subscriptionID string) (*stripeclient.SubscriptionState, error) {
	return f.subscription, f.subscriptionErr
}

// fakeCalendarAPI keeps events in memory across sync runs and records the
// mutations a pass performs.
type fakeCalendarAPI struct {
	events  []*calendar.Event
	nextID  int
	inserts int
	patches int
	deletes int
}

func (f *fakeCalendarAPI) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	out := make([]*calendar.Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeCalendarAPI) InsertEvent(ctx context.Context, event *calendar.Event) (*calendar.Event, error) {
	f.inserts++
	f.nextID++
	created := *event
	created.ID = fmt.Sprintf("evt-%d", f.nextID)
	f.events = append(f.events, &created)
	return &created, nil
}

func (f *fakeCalendarAPI) PatchEvent(ctx context.Context, eventID string, event *calendar.Event) (*calendar.Event, error) {
	f.patches++
	for _, e := range f.events {
		if e.ID != eventID {
			continue
		}
		if event.Summary != "" {
			e.Summary = event.Summary
		}
		if event.Description != "" {
			e.Description = event.Description
		}
		if event.ExtendedProperties != nil {
			e.ExtendedProperties = event.ExtendedProperties
		}
		return e, nil
	}
	return nil, &calendar.APIError{Status: 404, Body: "not found"}
}

func (f *fakeCalendarAPI) DeleteEvent(ctx context.Context, eventID string) error {
	f.deletes++
	for i, e := range f.events {
		if e.ID == eventID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return nil
}
