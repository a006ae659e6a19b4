package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/request"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"go.uber.org/zap"
)

type OfferService interface {
	GetOffer(ctx context.Context) (*entity.Offer, error)
	SaveOffer(ctx context.Context, req *request.SaveOfferRequest) (*entity.Offer, error)
}

type offerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOfferService(repo *repository.Repository, log *zap.Logger) OfferService {
	return &offerService{
		repo: repo,
		log:  log.With(zap.String("service", "offer")),
	}
}

func (s *offerService) GetOffer(ctx context.Context) (*entity.Offer, error) {
	offer, err := s.repo.Offer.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	if offer == nil {
		return nil, fmt.Errorf("offer not found")
	}

	return offer, nil
}

// SaveOffer replaces the site-wide offer. The site runs a single offer
// record, so an existing row is updated in place rather than appended.
func (s *offerService) SaveOffer(ctx context.Context, req *request.SaveOfferRequest) (*entity.Offer, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("validation failed: ends_at must be after starts_at")
	}
	if req.DiscountType == string(entity.DiscountPercent) && req.DiscountValue > 100 {
		return nil, fmt.Errorf("validation failed: percent discount cannot exceed 100")
	}

	offer := &entity.Offer{
		Title:         req.Title,
		DiscountType:  entity.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		Enabled:       req.Enabled,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
	}

	if existing, err := s.repo.Offer.Get(ctx); err != nil {
		return nil, fmt.Errorf("load existing offer: %w", err)
	} else if existing != nil {
		offer.ID = existing.ID
	}

	if err := s.repo.Offer.Save(ctx, offer); err != nil {
		return nil, fmt.Errorf("save offer: %w", err)
	}

	s.log.Info("Offer saved",
		zap.String("title", offer.Title),
		zap.String("discount_type", string(offer.DiscountType)),
		zap.Int("discount_value", offer.DiscountValue),
		zap.Bool("enabled", offer.Enabled),
		zap.Bool("active_now", offer.ActiveAt(time.Now())),
	)

	return offer, nil
}
