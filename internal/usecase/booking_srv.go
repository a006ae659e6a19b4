package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/repository"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/request"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/dto/response"
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/pricing"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recurring quotes are materialised as this many occurrence rows up front.
const seriesOccurrences = 4

type BookingService interface {
	SubmitQuote(ctx context.Context, req *request.SubmitQuoteRequest) (*response.QuoteResponse, error)
	EstimateCustomExtras(ctx context.Context, req *request.CustomExtrasRequest) pricing.Estimate

	// Customer self-service
	Lookup(ctx context.Context, reference, email string) (*response.BookingResponse, error)
	Search(ctx context.Context, email, postcode string) ([]response.BookingResponse, error)
	SelfUpdate(ctx context.Context, req *request.SelfUpdateRequest) (*response.BookingResponse, error)

	// Admin
	AdminList(ctx context.Context, status, fromDate, toDate string, page, perPage int) ([]response.BookingResponse, error)
	AdminGet(ctx context.Context, reference string) (*response.BookingResponse, error)
	AdminUpdate(ctx context.Context, reference string, req *request.AdminUpdateBookingRequest) (*response.BookingResponse, error)
	AdminDelete(ctx context.Context, reference string) error
}

type bookingService struct {
	repo      *repository.Repository
	estimator *pricing.Estimator
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, estimator *pricing.Estimator, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		estimator: estimator,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) SubmitQuote(ctx context.Context, req *request.SubmitQuoteRequest) (*response.QuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	quote := pricing.CalculateQuote(pricing.QuoteInput{
		Service:           entity.ServiceType(req.Service),
		PropertyType:      req.PropertyType,
		Bedrooms:          req.Bedrooms,
		Bathrooms:         req.Bathrooms,
		Rooms:             req.Rooms,
		Frequency:         entity.Frequency(req.Frequency),
		Oven:              req.Oven,
		Extras:            req.Extras,
		CustomExtrasText:  req.CustomExtrasText,
		CustomExtrasPrice: req.CustomExtrasPrice,
	})

	// The quote itself never fails; an offer lookup failure only costs
	// the discount.
	if offer, err := s.repo.Offer.ActiveOffer(ctx, time.Now()); err != nil {
		s.log.Warn("Active offer lookup failed, quoting without discount", zap.Error(err))
	} else if offer != nil {
		quote = pricing.ApplyOffer(quote, offer, time.Now())
	}

	bookings := s.buildBookingRows(req, quote)

	created, err := s.repo.Booking.Create(ctx, bookings)
	if err != nil {
		// Degrade gracefully: the customer still gets the price, the UI
		// shows a call-us banner.
		s.log.Error("Failed to store quote submission",
			zap.Error(err),
			zap.String("email", req.Email),
		)
		return &response.QuoteResponse{Quote: quote, Submitted: false}, nil
	}

	s.log.Info("Quote submitted",
		zap.String("reference", created[0].Reference),
		zap.String("service", req.Service),
		zap.String("frequency", string(quote.Frequency)),
		zap.Int("per_visit_price", quote.PerVisitPrice),
		zap.Int("occurrences", len(created)),
	)

	return &response.QuoteResponse{
		Reference: created[0].Reference,
		Quote:     quote,
		Submitted: true,
	}, nil
}

func (s *bookingService) buildBookingRows(req *request.SubmitQuoteRequest, quote pricing.Quote) []*entity.Booking {
	now := time.Now().UTC()

	promoDiscount := 0
	if quote.Offer != nil {
		promoDiscount = quote.Offer.Amount
	}

	base := entity.Booking{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		Postcode:          req.Postcode,
		Service:           entity.ServiceType(req.Service),
		ServiceLabel:      quote.ServiceLabel,
		PropertySummary:   quote.PropertySummary,
		Frequency:         quote.Frequency,
		FrequencyLabel:    quote.FrequencyLabel,
		PerVisitPrice:     quote.PerVisitPrice,
		MonthlyEstimate:   quote.MonthlyEstimate,
		PaymentSummary:    quote.PaymentSummary,
		Extras:            req.Extras,
		CustomExtrasText:  req.CustomExtrasText,
		CustomExtrasPrice: req.CustomExtrasPrice,
		PromoCode:         req.PromoCode,
		PromoDiscount:     promoDiscount,
		Status:            entity.BookingStatusPending,
		PreferredDate:     req.PreferredDate,
		PreferredTime:     req.PreferredTime,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// One-off jobs are a single row. Recurring jobs become a series of
	// occurrence rows sharing a series_id, so payments and the calendar
	// can track individual visits.
	if quote.Frequency == entity.FrequencyOneTime {
		row := base
		row.Reference = utils.GenerateReference()
		return []*entity.Booking{&row}
	}

	seriesID := uuid.New().String()

	occurrences := 1
	if req.PreferredDate != "" {
		occurrences = seriesOccurrences
	}

	rows := make([]*entity.Booking, occurrences)
	for i := 0; i < occurrences; i++ {
		row := base
		row.Reference = utils.GenerateReference()
		row.SeriesID = seriesID
		if req.PreferredDate != "" {
			row.PreferredDate = occurrenceDate(req.PreferredDate, quote.Frequency, i)
		}
		rows[i] = &row
	}

	return rows
}

// occurrenceDate steps the preferred date forward by the visit cadence.
func occurrenceDate(firstDate string, frequency entity.Frequency, index int) string {
	date, err := time.Parse("2006-01-02", firstDate)
	if err != nil {
		return firstDate
	}

	switch frequency {
	case entity.FrequencyWeekly:
		date = date.AddDate(0, 0, 7*index)
	case entity.FrequencyBiWeekly:
		date = date.AddDate(0, 0, 14*index)
	case entity.FrequencyMonthly:
		date = date.AddDate(0, index, 0)
	}

	return date.Format("2006-01-02")
}

func (s *bookingService) EstimateCustomExtras(ctx context.Context, req *request.CustomExtrasRequest) pricing.Estimate {
	service := req.Service
	if service == "" {
		service = string(entity.ServiceBasic)
	}
	propertyType := req.PropertyType
	if propertyType == "" {
		propertyType = "house"
	}

	return s.estimator.Estimate(ctx, req.Text, service, propertyType)
}

func (s *bookingService) Lookup(ctx context.Context, reference, email string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.Lookup(ctx, reference, email)
	if err != nil {
		return nil, fmt.Errorf("lookup booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", reference)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Search(ctx context.Context, email, postcode string) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.Search(ctx, email, postcode)
	if err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) SelfUpdate(ctx context.Context, req *request.SelfUpdateRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.Lookup(ctx, req.Reference, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", req.Reference)
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("cannot update a %s booking", booking.Status)
	}

	patch := map[string]any{"updated_at": time.Now().UTC()}
	if req.PreferredDate != nil {
		patch["preferred_date"] = *req.PreferredDate
		booking.PreferredDate = *req.PreferredDate
	}
	if req.PreferredTime != nil {
		patch["preferred_time"] = *req.PreferredTime
		booking.PreferredTime = *req.PreferredTime
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
		booking.Notes = *req.Notes
	}

	if err := s.repo.Booking.Update(ctx, req.Reference, patch); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated by customer", zap.String("reference", req.Reference))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// ==================== ADMIN ====================

func (s *bookingService) AdminList(ctx context.Context, status, fromDate, toDate string, page, perPage int) ([]response.BookingResponse, error) {
	offset := (page - 1) * perPage

	bookings, err := s.repo.Booking.List(ctx, status, fromDate, toDate, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) AdminGet(ctx context.Context, reference string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", reference)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) AdminUpdate(ctx context.Context, reference string, req *request.AdminUpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	patch := map[string]any{"updated_at": time.Now().UTC()}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.PreferredDate != nil {
		patch["preferred_date"] = *req.PreferredDate
	}
	if req.PreferredTime != nil {
		patch["preferred_time"] = *req.PreferredTime
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}
	if req.PerVisitPrice != nil {
		patch["per_visit_price"] = *req.PerVisitPrice
	}

	if err := s.repo.Booking.Update(ctx, reference, patch); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("booking %s not found after update", reference)
	}

	s.log.Info("Booking updated by admin", zap.String("reference", reference))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) AdminDelete(ctx context.Context, reference string) error {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", reference)
	}

	return s.repo.Booking.Delete(ctx, reference)
}
