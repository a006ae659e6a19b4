package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/supabase"

	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, bookings []*entity.Booking) ([]*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	Lookup(ctx context.Context, reference, email string) (*entity.Booking, error)
	Search(ctx context.Context, email, postcode string) ([]*entity.Booking, error)
	List(ctx context.Context, status, fromDate, toDate string, limit, offset int) ([]*entity.Booking, error)
	Update(ctx context.Context, reference string, patch map[string]any) error
	Delete(ctx context.Context, reference string) error

	// Series / subscription queries
	FindBySeries(ctx context.Context, seriesID string) ([]*entity.Booking, error)
	FindBySubscription(ctx context.Context, subscriptionID string) ([]*entity.Booking, error)
	UpdateSeries(ctx context.Context, seriesID string, patch map[string]any) error

	// UpdateIfPending is a conditional update: the patch only lands when the
	// row is still pending, and the caller learns whether it did.
	UpdateIfPending(ctx context.Context, reference string, patch map[string]any) (bool, error)

	// Calendar sync queries
	ListSchedulable(ctx context.Context) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  *supabase.Client
	log *zap.Logger
}

const bookingsTable = "bookings"

func NewBookingRepository(db *supabase.Client, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, bookings []*entity.Booking) ([]*entity.Booking, error) {
	var created []*entity.Booking
	if err := r.db.Insert(ctx, bookingsTable, bookings, &created); err != nil {
		r.log.Error("Failed to create bookings",
			zap.Error(err),
			zap.Int("count", len(bookings)),
		)
		return nil, fmt.Errorf("create bookings: %w", err)
	}

	return created, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	filters := url.Values{}
	filters.Set("reference", "eq."+reference)
	filters.Set("limit", "1")

	var rows []*entity.Booking
	if err := r.db.Select(ctx, bookingsTable, filters, &rows); err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *bookingRepository) Lookup(ctx context.Context, reference, email string) (*entity.Booking, error) {
	filters := url.Values{}
	filters.Set("reference", "eq."+reference)
	filters.Set("email", "eq."+email)
	filters.Set("limit", "1")

	var rows []*entity.Booking
	if err := r.db.Select(ctx, bookingsTable, filters, &rows); err != nil {
		r.log.Error("Failed to look up booking",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("lookup booking %s: %w", reference, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *bookingRepository) Search(ctx context.Context, email, postcode string) ([]*entity.Booking, error) {
	filters := url.Values{}
	filters.Set("email", "eq."+email)
	if postcode != "" {
		filters.Set("postcode", "eq."+postcode)
	}
	filters.Set("order", "created_at.desc")

	var rows []*entity.Booking
	if err := r.db.Select(ctx, bookingsTable, filters, &rows); err != nil {
		r.log.Error("Failed to search bookings",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("search bookings for %s: %w", email, err)
	}

	return rows, nil
}

func (r *bookingRepository) List(ctx context.Context, status, fromDate, toDate string, limit, offset int) ([]*entity.Booking, error) {
	filters := url.Values{}
	if status != "" {
		filters.Set("status", "eq."+status)
	}
	if fromDate != "" {
		filters.Set("preferred_date", "gte."+fromDate)
	}
	if toDate != "" {
		filters.Add("preferred_date", "lte."+toDate)
	}
	filters.Set("order", "created_at.desc")
	filters.Set("limit", fmt.Sprintf("%d", limit))
	filters.Set("offset", fmt.Sprintf("%d", offset))

	var rows []*entity.Booking
	if err := r.db.Select(ctx, bookingsTable, filters, &rows); err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("status", status),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return rows, nil
}

func (r *bookingRepository) Update(ctx context.Context, reference string, patch map[string]any) error {
	filters := url.Values{}
	filters.Set("reference", "eq."+reference)

	var updated []*entity.Booking
	if err := r.db.Update(ctx, bookingsTable, filters, patch, &updated); err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return fmt.Errorf("update booking %s: %w", reference, err)
	}

	if len(updated) == 0 {
		return fmt.Errorf("booking %s not found", reference)
	}

	return nil
}

func (r *bookingRepository) UpdateIfPending(ctx context.Context, reference string, patch map[string]any) (bool, error) {
	filters := url.Values{}
	filters.Set("reference", "eq."+reference)
	filters.Set("status", "eq."+string(entity.BookingStatusPending))

	var updated []*entity.Booking
	if err := r.db.Update(ctx, bookingsTable, filters, patch, &updated); err != nil {
		r.log.Error("Failed conditional booking update",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return false, fmt.Errorf("conditional update booking %s: %w", reference, err)
	}

	return len(updated) > 0, nil
}

func (r *bookingRepository) Delete(ctx context.Context, reference string) error {
	filters := url.Values{}
	filters.Set("reference", "eq."+reference)

	if err := r.db.Delete(ctx, bookingsTable, filters); err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return fmt.Errorf("delete booking %s: %w", reference, err)
	}

	r.log.Info("Booking deleted", zap.String("reference", reference))
	return nil
}

func (r *bookingRepository) FindBySeries(ctx context.Context, seriesID string) ([]*entity.Booking, error) {
	filters := url.Values{}
	filters.Set("series_id", "eq."+seriesID)
	filters.Set("order", "preferred_date.asc")

	var rows []*entity.Booking
	if err := r.db.Select(ctx, bookingsTable, filters, &rows); err != nil {
		r.log.Error("Failed to find bookings by series",
			zap.Error(err),
			zap.String("series_id", seriesID),
		)
		return nil, fmt.Errorf("find bookings by series %s: %w", seriesID, err)
	}

	return rows, nil
}

func (r *bookingRepository) FindBySubscription(ctx context.Context, subscriptionID string) ([]*entity.Booking, error) {
	filters := url.Values{}
	filters.Set("stripe_subscription_id", "eq."+subscriptionID)
	filters.Set("order", "preferred_date.asc")

	var rows []*entity.Booking
	if err := r.db.Select(ctx, bookingsTable, filters, &rows); err != nil {
		r.log.Error("Failed to find bookings by subscription",
			zap.Error(err),
			zap.String("subscription_id", subscriptionID),
		)
		return nil, fmt.Errorf("find bookings by subscription %s: %w", subscriptionID, err)
	}

	return rows, nil
}

func (r *bookingRepository) UpdateSeries(ctx context.Context, seriesID string, patch map[string]any) error {
	filters := url.Values{}
	filters.Set("series_id", "eq."+seriesID)

	if err := r.db.Update(ctx, bookingsTable, filters, patch, nil); err != nil {
		r.log.Error("Failed to update booking series",
			zap.Error(err),
			zap.String("series_id", seriesID),
		)
		return fmt.Errorf("update series %s: %w", seriesID, err)
	}

	return nil
}

func (r *bookingRepository) ListSchedulable(ctx context.Context) ([]*entity.Booking, error) {
	filters := url.Values{}
	filters.Set("preferred_date", "not.is.null")
	filters.Set("order", "preferred_date.asc")

	var rows []*entity.Booking
	if err := r.db.Select(ctx, bookingsTable, filters, &rows); err != nil {
		r.log.Error("Failed to list schedulable bookings", zap.Error(err))
		return nil, fmt.Errorf("list schedulable bookings: %w", err)
	}

	return rows, nil
}
