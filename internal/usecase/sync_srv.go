package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/calendar"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/request"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/response"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CalendarAPI is the slice of the Google Calendar client the sync needs.
type CalendarAPI interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*calendar.Event, error)
	InsertEvent(ctx context.Context, event *calendar.Event) (*calendar.Event, error)
	PatchEvent(ctx context.Context, eventID string, event *calendar.Event) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type SyncService interface {
	Status(ctx context.Context) (*response.CalendarStatusResponse, error)
	Connect(ctx context.Context, req *request.ConnectCalendarRequest) error
	Sync(ctx context.Context) (*response.SyncReport, error)
}

type syncService struct {
	repo     *repository.Repository
	calendar CalendarAPI
	tokens   *calendar.TokenSource
	cfg      utils.GoogleConfig
	log      *zap.Logger
}

func NewSyncService(repo *repository.Repository, api CalendarAPI, tokens *calendar.TokenSource, cfg utils.GoogleConfig, log *zap.Logger) SyncService {
	return &syncService{
		repo:     repo,
		calendar: api,
		tokens:   tokens,
		cfg:      cfg,
		log:      log.With(zap.String("service", "sync")),
	}
}

func (s *syncService) Status(ctx context.Context) (*response.CalendarStatusResponse, error) {
	integration, err := s.repo.Integration.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load google integration: %w", err)
	}
	if integration == nil || !integration.Connected {
		return &response.CalendarStatusResponse{Connected: false}, nil
	}

	return &response.CalendarStatusResponse{
		Connected:   true,
		CalendarID:  s.cfg.CalendarID,
		TokenExpiry: integration.TokenExpiry,
	}, nil
}

func (s *syncService) Connect(ctx context.Context, req *request.ConnectCalendarRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	return s.tokens.Exchange(ctx, req.Code, req.RedirectURI)
}

// Sync runs one bidirectional reconciliation pass. Push owns event
// existence and descriptive fields; pull owns date, time and cancellation,
// so a manually rescheduled event in the calendar wins over the stored
// booking. References created or removed during push are skipped by pull
// to keep a single pass from fighting itself.
func (s *syncService) Sync(ctx context.Context) (*response.SyncReport, error) {
	tz, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		s.log.Warn("Unknown timezone, falling back to UTC", zap.String("timezone", s.cfg.Timezone))
		tz = time.UTC
	}

	bookings, err := s.repo.Booking.ListSchedulable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedulable bookings: %w", err)
	}

	report := &response.SyncReport{}
	if len(bookings) == 0 {
		s.log.Info("Nothing to sync, no scheduled bookings")
		return report, nil
	}

	mappings, err := s.repo.BookingEvent.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event mappings: %w", err)
	}
	mappingByRef := lo.SliceToMap(mappings, func(m *entity.BookingGoogleEvent) (string, *entity.BookingGoogleEvent) {
		return m.BookingReference, m
	})

	timeMin, timeMax := syncWindow(bookings, tz)
	events, err := s.calendar.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	eventByID := lo.SliceToMap(events, func(e *calendar.Event) (string, *calendar.Event) {
		return e.ID, e
	})

	// Events indexed by the booking reference they carry, so bookings whose
	// mapping row was lost can adopt their existing event instead of
	// duplicating it.
	eventByRef := map[string]*calendar.Event{}
	for _, event := range events {
		if ref, _ := calendar.ExtractReference(event); ref != "" {
			eventByRef[ref] = event
		}
	}

	bookingByRef := lo.SliceToMap(bookings, func(b *entity.Booking) (string, *entity.Booking) {
		return b.Reference, b
	})

	touched := map[string]bool{}

	// ==================== PUSH ====================

	for _, booking := range bookings {
		mapping := mappingByRef[booking.Reference]

		if booking.Status == entity.BookingStatusCancelled {
			if mapping != nil && mapping.Status == entity.MappingStatusActive {
				if err := s.calendar.DeleteEvent(ctx, mapping.EventID); err != nil {
					s.log.Error("Failed to remove event for cancelled booking",
						zap.Error(err),
						zap.String("reference", booking.Reference),
					)
					continue
				}
				s.saveMapping(ctx, booking.Reference, mapping.EventID, entity.MappingStatusCancelled, report)
				touched[booking.Reference] = true
				report.Removed++
			}
			continue
		}

		desired, err := calendar.BuildEvent(booking, tz, s.cfg.EventHours)
		if err != nil {
			s.log.Warn("Skipping unschedulable booking",
				zap.Error(err),
				zap.String("reference", booking.Reference),
			)
			continue
		}

		var remote *calendar.Event
		if mapping != nil {
			remote = eventByID[mapping.EventID]
		}
		if remote == nil {
			remote = eventByRef[booking.Reference]
		}

		if remote == nil || remote.Status == "cancelled" {
			if remote != nil && remote.Status == "cancelled" && !touched[booking.Reference] {
				// Remote deletion, the pull phase cancels the booking.
				continue
			}

			created, err := s.calendar.InsertEvent(ctx, desired)
			if err != nil {
				s.log.Error("Failed to create calendar event",
					zap.Error(err),
					zap.String("reference", booking.Reference),
				)
				continue
			}
			s.saveMapping(ctx, booking.Reference, created.ID, entity.MappingStatusActive, report)
			touched[booking.Reference] = true
			report.Created++
			continue
		}

		// Existing event: only descriptive fields are pushed, start and end
		// stay whatever the calendar says.
		if remote.Summary != desired.Summary || remote.Description != desired.Description {
			patch := &calendar.Event{
				Summary:            desired.Summary,
				Description:        desired.Description,
				ExtendedProperties: desired.ExtendedProperties,
			}
			if _, err := s.calendar.PatchEvent(ctx, remote.ID, patch); err != nil {
				s.log.Error("Failed to update calendar event",
					zap.Error(err),
					zap.String("reference", booking.Reference),
				)
				continue
			}
			report.Updated++
		} else {
			report.Unchanged++
		}

		s.saveMapping(ctx, booking.Reference, remote.ID, entity.MappingStatusActive, report)
	}

	// ==================== PULL ====================

	for _, event := range events {
		ref, fallbackUsed := calendar.ExtractReference(event)
		if ref == "" {
			report.Orphans++
			s.log.Debug("Skipping calendar event with no booking reference",
				zap.String("event_id", event.ID))
			continue
		}
		if fallbackUsed {
			report.TextFallbacks++
			s.log.Warn("Recovered booking reference from event text",
				zap.String("event_id", event.ID),
				zap.String("reference", ref),
			)
		}
		if touched[ref] {
			continue
		}

		booking := bookingByRef[ref]
		if booking == nil {
			report.Orphans++
			s.log.Warn("Calendar event references unknown booking",
				zap.String("event_id", event.ID),
				zap.String("reference", ref),
			)
			continue
		}

		if event.Status == "cancelled" {
			if booking.Status != entity.BookingStatusCancelled {
				if err := s.repo.Booking.Update(ctx, ref, map[string]any{
					"status":     entity.BookingStatusCancelled,
					"updated_at": time.Now().UTC(),
				}); err != nil {
					s.log.Error("Failed to cancel booking from calendar", zap.Error(err), zap.String("reference", ref))
					continue
				}
				report.PulledUpdates++
				s.log.Info("Booking cancelled from calendar", zap.String("reference", ref))
			}
			s.saveMapping(ctx, ref, event.ID, entity.MappingStatusCancelled, report)
			continue
		}

		if event.Start == nil || event.Start.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			s.log.Warn("Unparseable event start time",
				zap.String("event_id", event.ID),
				zap.String("start", event.Start.DateTime),
			)
			continue
		}
		start = start.In(tz)

		date := start.Format("2006-01-02")
		timeOfDay := start.Format("15:04")

		if date != booking.PreferredDate || timeOfDay != booking.PreferredTime {
			if err := s.repo.Booking.Update(ctx, ref, map[string]any{
				"preferred_date": date,
				"preferred_time": timeOfDay,
				"updated_at":     time.Now().UTC(),
			}); err != nil {
				s.log.Error("Failed to apply calendar reschedule", zap.Error(err), zap.String("reference", ref))
				continue
			}
			report.PulledUpdates++
			s.log.Info("Booking rescheduled from calendar",
				zap.String("reference", ref),
				zap.String("date", date),
				zap.String("time", timeOfDay),
			)
		}

		s.saveMapping(ctx, ref, event.ID, entity.MappingStatusActive, report)
	}

	s.log.Info("Calendar sync complete",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("removed", report.Removed),
		zap.Int("pulled_updates", report.PulledUpdates),
		zap.Int("orphans", report.Orphans),
	)

	return report, nil
}

func (s *syncService) saveMapping(ctx context.Context, reference, eventID string, status entity.MappingStatus, report *response.SyncReport) {
	mapping := &entity.BookingGoogleEvent{
		BookingReference: reference,
		EventID:          eventID,
		CalendarID:       s.cfg.CalendarID,
		Status:           status,
		LastSyncedAt:     time.Now().UTC(),
	}
	if err := s.repo.BookingEvent.Upsert(ctx, mapping); err != nil {
		s.log.Warn("Failed to record event mapping",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return
	}
	report.MappingsSynced++
}

// syncWindow brackets all scheduled bookings with a day of slack each side.
func syncWindow(bookings []*entity.Booking, tz *time.Location) (time.Time, time.Time) {
	var min, max time.Time
	for _, booking := range bookings {
		date, err := time.ParseInLocation("2006-01-02", booking.PreferredDate, tz)
		if err != nil {
			continue
		}
		if min.IsZero() || date.Before(min) {
			min = date
		}
		if max.IsZero() || date.After(max) {
			max = date
		}
	}

	if min.IsZero() {
		now := time.Now().In(tz)
		return now.AddDate(0, 0, -1), now.AddDate(0, 1, 0)
	}

	return min.AddDate(0, 0, -1), max.AddDate(0, 0, 2)
}
