package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/calendar"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSyncFixture(api *fakeCalendarAPI, bookings ...*entity.Booking) (SyncService, *repository.Repository) {
	repo := newFakeRepository(newFakeBookingRepo(bookings...))
	cfg := utils.GoogleConfig{CalendarID: "primary", Timezone: "UTC", EventHours: 3}
	svc := NewSyncService(repo, api, nil, cfg, zap.NewNop())
	return svc, repo
}

func scheduledBooking(ref, date string) *entity.Booking {
	return &entity.Booking{
		Reference:     ref,
		Name:          "Ada Cleaver",
		Email:         "ada@example.com",
		Phone:         "07700900123",
		ServiceLabel:  "Basic Clean",
		Status:        entity.BookingStatusPaid,
		PreferredDate: date,
		PreferredTime: "10:00",
	}
}

func TestSync_NothingScheduled(t *testing.T) {
	api := &fakeCalendarAPI{}
	svc, _ := newSyncFixture(api)

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.Created)
	assert.Zero(t, api.inserts)
}

func TestSync_CreatesEventsAndIsIdempotent(t *testing.T) {
	api := &fakeCalendarAPI{}
	svc, repo := newSyncFixture(api,
		scheduledBooking("SMQ-1", "2999-03-01"),
		scheduledBooking("SMQ-2", "2999-03-08"),
	)

	first, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 2, api.inserts)
	assert.Equal(t, 2, first.MappingsSynced)

	mapping, err := repo.BookingEvent.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	require.NotNil(t, mapping)
	assert.Equal(t, entity.MappingStatusActive, mapping.Status)
	assert.Equal(t, "primary", mapping.CalendarID)

	// A second pass finds everything already in place.
	second, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Zero(t, second.Created)
	assert.Zero(t, second.Updated)
	assert.Zero(t, second.Removed)
	assert.Zero(t, second.PulledUpdates)
	assert.Equal(t, 2, second.Unchanged)
	assert.Equal(t, 2, api.inserts, "no duplicate events on rerun")
}

func TestSync_AdoptsEventWhenMappingLost(t *testing.T) {
	booking := scheduledBooking("SMQ-1", "2999-03-01")
	api := &fakeCalendarAPI{}

	// Seed the calendar with the event this booking would produce, but no
	// mapping row for it.
	desired, err := calendar.BuildEvent(booking, time.UTC, 3)
	require.NoError(t, err)
	seeded, err := api.InsertEvent(context.Background(), desired)
	require.NoError(t, err)
	api.inserts = 0

	svc, repo := newSyncFixture(api, booking)

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.Created)
	assert.Zero(t, api.inserts, "existing event adopted, not duplicated")
	assert.Equal(t, 1, report.Unchanged)

	mapping, err := repo.BookingEvent.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	require.NotNil(t, mapping)
	assert.Equal(t, seeded.ID, mapping.EventID)
}

func TestSync_PushesDescriptiveChangesOnly(t *testing.T) {
	booking := scheduledBooking("SMQ-1", "2999-03-01")
	api := &fakeCalendarAPI{}
	svc, repo := newSyncFixture(api, booking)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	// Admin edits the notes; the event summary/description now differ.
	booking.Notes = "Use the side entrance"

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, api.patches)
	assert.Contains(t, api.events[0].Description, "Use the side entrance")

	// The stored schedule is untouched by a push-side change.
	stored, err := repo.Booking.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	assert.Equal(t, "2999-03-01", stored.PreferredDate)
	assert.Equal(t, "10:00", stored.PreferredTime)
}

func TestSync_RemovesEventForCancelledBooking(t *testing.T) {
	booking := scheduledBooking("SMQ-1", "2999-03-01")
	api := &fakeCalendarAPI{}
	svc, repo := newSyncFixture(api, booking)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Len(t, api.events, 1)

	booking.Status = entity.BookingStatusCancelled

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Removed)
	assert.Equal(t, 1, api.deletes)
	assert.Empty(t, api.events)

	mapping, err := repo.BookingEvent.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	require.NotNil(t, mapping)
	assert.Equal(t, entity.MappingStatusCancelled, mapping.Status)
}

func TestSync_PullsRescheduleFromCalendar(t *testing.T) {
	booking := scheduledBooking("SMQ-1", "2999-03-01")
	api := &fakeCalendarAPI{}
	svc, repo := newSyncFixture(api, booking)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	// Someone drags the event to a new slot in the calendar UI.
	api.events[0].Start = &calendar.EventDateTime{DateTime: "2999-03-05T14:00:00Z"}

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.PulledUpdates)

	stored, err := repo.Booking.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	assert.Equal(t, "2999-03-05", stored.PreferredDate)
	assert.Equal(t, "14:00", stored.PreferredTime)
}

func TestSync_PullsCancellationFromCalendar(t *testing.T) {
	booking := scheduledBooking("SMQ-1", "2999-03-01")
	api := &fakeCalendarAPI{}
	svc, repo := newSyncFixture(api, booking)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	api.events[0].Status = "cancelled"

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.PulledUpdates)

	stored, err := repo.Booking.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, stored.Status)

	mapping, err := repo.BookingEvent.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	assert.Equal(t, entity.MappingStatusCancelled, mapping.Status)
}

func TestSync_OrphanAndForeignEventsSkipped(t *testing.T) {
	booking := scheduledBooking("SMQ-1", "2999-03-01")
	api := &fakeCalendarAPI{
		events: []*calendar.Event{
			{ID: "evt-dentist", Summary: "Dentist", Start: &calendar.EventDateTime{DateTime: "2999-03-01T09:00:00Z"}},
			{ID: "evt-foreign", Summary: "SMQ-NOTOURS visit", Start: &calendar.EventDateTime{DateTime: "2999-03-01T11:00:00Z"}},
		},
		nextID: 10,
	}
	svc, _ := newSyncFixture(api, booking)

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Orphans)
	assert.Equal(t, 1, report.TextFallbacks, "foreign reference came from summary text")
}

func TestSync_TextFallbackRecoversReference(t *testing.T) {
	booking := scheduledBooking("SMQ-1", "2999-03-01")

	// An event for our booking whose extended properties were stripped by a
	// manual edit; only the summary still carries the reference.
	api := &fakeCalendarAPI{
		events: []*calendar.Event{{
			ID:      "evt-1",
			Summary: "SMQ-1 — Ada Cleaver — Basic Clean",
			Start:   &calendar.EventDateTime{DateTime: "2999-03-02T09:30:00Z"},
		}},
		nextID: 10,
	}
	svc, repo := newSyncFixture(api, booking)

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.TextFallbacks)
	assert.Zero(t, report.Created, "event adopted via summary reference")

	stored, err := repo.Booking.FindByReference(context.Background(), "SMQ-1")
	require.NoError(t, err)
	assert.Equal(t, "2999-03-02", stored.PreferredDate, "calendar wins on schedule")
	assert.Equal(t, "09:30", stored.PreferredTime)
}
