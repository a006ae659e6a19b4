package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/supabase"

	"go.uber.org/zap"
)

type BookingEventRepository interface {
	Upsert(ctx context.Context, mapping *entity.BookingGoogleEvent) error
	FindByReference(ctx context.Context, reference string) (*entity.BookingGoogleEvent, error)
	ListAll(ctx context.Context) ([]*entity.BookingGoogleEvent, error)
}

type bookingEventRepository struct {
	db  *supabase.Client
	log *zap.Logger
}

const bookingEventsTable = "booking_google_events"

func NewBookingEventRepository(db *supabase.Client, log *zap.Logger) BookingEventRepository {
	return &bookingEventRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_event")),
	}
}

func (r *bookingEventRepository) Upsert(ctx context.Context, mapping *entity.BookingGoogleEvent) error {
	if err := r.db.Upsert(ctx, bookingEventsTable, []*entity.BookingGoogleEvent{mapping}, "booking_reference"); err != nil {
		r.log.Error("Failed to upsert event mapping",
			zap.Error(err),
			zap.String("reference", mapping.BookingReference),
			zap.String("event_id", mapping.EventID),
		)
		return fmt.Errorf("upsert event mapping %s: %w", mapping.BookingReference, err)
	}

	return nil
}

func (r *bookingEventRepository) FindByReference(ctx context.Context, reference string) (*entity.BookingGoogleEvent, error) {
	filters := url.Values{}
	filters.Set("booking_reference", "eq."+reference)
	filters.Set("limit", "1")

	var rows []*entity.BookingGoogleEvent
	if err := r.db.Select(ctx, bookingEventsTable, filters, &rows); err != nil {
		r.log.Error("Failed to find event mapping",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find event mapping %s: %w", reference, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *bookingEventRepository) ListAll(ctx context.Context) ([]*entity.BookingGoogleEvent, error) {
	var rows []*entity.BookingGoogleEvent
	if err := r.db.Select(ctx, bookingEventsTable, url.Values{}, &rows); err != nil {
		r.log.Error("Failed to list event mappings", zap.Error(err))
		return nil, fmt.Errorf("list event mappings: %w", err)
	}

	return rows, nil
}
