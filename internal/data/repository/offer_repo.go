package repository

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/supabase"

	"go.uber.org/zap"
)

type OfferRepository interface {
	Get(ctx context.Context) (*entity.Offer, error)
	ActiveOffer(ctx context.Context, now time.Time) (*entity.Offer, error)
	Save(ctx context.Context, offer *entity.Offer) error
}

type offerRepository struct {
	db  *supabase.Client
	log *zap.Logger
}

const offersTable = "offers"

func NewOfferRepository(db *supabase.Client, log *zap.Logger) OfferRepository {
	return &offerRepository{
		db:  db,
		log: log.With(zap.String("repository", "offer")),
	}
}

func (r *offerRepository) Get(ctx context.Context) (*entity.Offer, error) {
	filters := url.Values{}
	filters.Set("order", "id.asc")
	filters.Set("limit", "1")

	var rows []*entity.Offer
	if err := r.db.Select(ctx, offersTable, filters, &rows); err != nil {
		r.log.Error("Failed to get offer", zap.Error(err))
		return nil, fmt.Errorf("get offer: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *offerRepository) ActiveOffer(ctx context.Context, now time.Time) (*entity.Offer, error) {
	ts := now.UTC().Format(time.RFC3339)

	filters := url.Values{}
	filters.Set("enabled", "is.true")
	filters.Set("starts_at", "lte."+ts)
	filters.Set("ends_at", "gte."+ts)
	filters.Set("limit", "1")

	var rows []*entity.Offer
	if err := r.db.Select(ctx, offersTable, filters, &rows); err != nil {
		r.log.Error("Failed to get active offer", zap.Error(err))
		return nil, fmt.Errorf("get active offer: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *offerRepository) Save(ctx context.Context, offer *entity.Offer) error {
	offer.UpdatedAt = time.Now().UTC()

	if offer.ID == 0 {
		if err := r.db.Insert(ctx, offersTable, []*entity.Offer{offer}, nil); err != nil {
			r.log.Error("Failed to create offer", zap.Error(err))
			return fmt.Errorf("create offer: %w", err)
		}
		return nil
	}

	filters := url.Values{}
	filters.Set("id", fmt.Sprintf("eq.%d", offer.ID))

	if err := r.db.Update(ctx, offersTable, filters, offer, nil); err != nil {
		r.log.Error("Failed to update offer",
			zap.Error(err),
			zap.Int64("offer_id", offer.ID),
		)
		return fmt.Errorf("update offer %d: %w", offer.ID, err)
	}

	return nil
}
