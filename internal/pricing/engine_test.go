package pricing

import (
	"testing"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateQuote_Deterministic(t *testing.T) {
	in := QuoteInput{
		Service:      entity.ServiceIntermediate,
		PropertyType: "apartment",
		Bedrooms:     2,
		Bathrooms:    1,
		Frequency:    entity.FrequencyWeekly,
		Extras:       []string{"windows", "fridge"},
	}

	first := CalculateQuote(in)
	second := CalculateQuote(in)

	assert.Equal(t, first, second)
}

func TestCalculateQuote_RoundingAndFloor(t *testing.T) {
	tests := []struct {
		name string
		in   QuoteInput
	}{
		{
			name: "basic studio",
			in:   QuoteInput{Service: entity.ServiceBasic, PropertyType: "studio", Bedrooms: 1, Bathrooms: 1},
		},
		{
			name: "intermediate house weekly",
			in:   QuoteInput{Service: entity.ServiceIntermediate, PropertyType: "house", Bedrooms: 3, Bathrooms: 2, Frequency: entity.FrequencyWeekly},
		},
		{
			name: "advanced townhouse",
			in:   QuoteInput{Service: entity.ServiceAdvanced, PropertyType: "townhouse", Bedrooms: 4, Bathrooms: 3},
		},
		{
			name: "commercial restaurant",
			in:   QuoteInput{Service: entity.ServiceCommercial, PropertyType: "restaurant", Rooms: 6, Frequency: entity.FrequencyMonthly},
		},
		{
			name: "everything stacked",
			in: QuoteInput{
				Service: entity.ServiceIntermediate, PropertyType: "house",
				Bedrooms: 5, Bathrooms: 3, Frequency: entity.FrequencyBiWeekly,
				Oven: "double", Extras: []string{"windows", "garage", "limescale"},
				CustomExtrasPrice: 45,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := CalculateQuote(tt.in)

			assert.GreaterOrEqual(t, quote.PerVisitPrice, 0)
			assert.Zero(t, quote.PerVisitPrice%RoundingUnit, "per-visit price must be a multiple of the rounding unit")
			assert.Zero(t, quote.MonthlyEstimate%RoundingUnit)
			assert.NotEmpty(t, quote.PaymentSummary)
			assert.NotEmpty(t, quote.ServiceLabel)
		})
	}
}

func TestCalculateQuote_AdvancedIsAlwaysOneTime(t *testing.T) {
	quote := CalculateQuote(QuoteInput{
		Service:   entity.ServiceAdvanced,
		Bedrooms:  2,
		Bathrooms: 1,
		Frequency: entity.FrequencyWeekly,
	})

	assert.Equal(t, entity.FrequencyOneTime, quote.Frequency)
	assert.Zero(t, quote.MonthlyEstimate)
	assert.Contains(t, quote.PaymentSummary, "one-time")
}

func TestCalculateQuote_RoomCountsClampToOne(t *testing.T) {
	zeroed := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, PropertyType: "apartment"})
	one := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, PropertyType: "apartment", Bedrooms: 1, Bathrooms: 1})

	assert.Equal(t, one.PerVisitPrice, zeroed.PerVisitPrice)
	assert.Contains(t, zeroed.PropertySummary, "1 bed, 1 bath")
}

func TestCalculateQuote_UnknownPropertyFallsBack(t *testing.T) {
	unknown := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, PropertyType: "castle", Bedrooms: 2, Bathrooms: 1})
	house := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, PropertyType: "house", Bedrooms: 2, Bathrooms: 1})

	assert.Equal(t, house.PerVisitPrice, unknown.PerVisitPrice)
	assert.Contains(t, unknown.PropertySummary, "house")
}

func TestCalculateQuote_FrequencyDiscountOrdering(t *testing.T) {
	base := QuoteInput{Service: entity.ServiceIntermediate, PropertyType: "house", Bedrooms: 3, Bathrooms: 2}

	oneTime := CalculateQuote(base)

	weekly := base
	weekly.Frequency = entity.FrequencyWeekly
	monthly := base
	monthly.Frequency = entity.FrequencyMonthly

	assert.Less(t, CalculateQuote(weekly).PerVisitPrice, oneTime.PerVisitPrice)
	assert.LessOrEqual(t, CalculateQuote(monthly).PerVisitPrice, oneTime.PerVisitPrice)
	assert.LessOrEqual(t, CalculateQuote(weekly).PerVisitPrice, CalculateQuote(monthly).PerVisitPrice)
}

func TestCalculateQuote_MonthlyEstimateMatchesVisits(t *testing.T) {
	quote := CalculateQuote(QuoteInput{
		Service:      entity.ServiceBasic,
		PropertyType: "apartment",
		Bedrooms:     2,
		Bathrooms:    1,
		Frequency:    entity.FrequencyWeekly,
	})

	assert.Equal(t, quote.PerVisitPrice*4, quote.MonthlyEstimate)
}

func TestCalculateQuote_DuplicateExtrasCountOnce(t *testing.T) {
	once := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, Bedrooms: 1, Bathrooms: 1, Extras: []string{"windows"}})
	twice := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, Bedrooms: 1, Bathrooms: 1, Extras: []string{"windows", "windows"}})

	assert.Equal(t, once.PerVisitPrice, twice.PerVisitPrice)
	assert.Len(t, twice.AddOns, 1)
}

func TestCalculateQuote_UnknownExtrasIgnored(t *testing.T) {
	quote := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, Bedrooms: 1, Bathrooms: 1, Extras: []string{"jacuzzi"}})

	assert.Empty(t, quote.AddOns)
}

func TestApplyOffer(t *testing.T) {
	now := time.Now()
	activeWindow := func(o *entity.Offer) *entity.Offer {
		o.Enabled = true
		o.StartsAt = now.Add(-time.Hour)
		o.EndsAt = now.Add(time.Hour)
		return o
	}

	base := CalculateQuote(QuoteInput{
		Service:      entity.ServiceIntermediate,
		PropertyType: "house",
		Bedrooms:     3,
		Bathrooms:    2,
		Frequency:    entity.FrequencyWeekly,
	})

	t.Run("percent discount applies", func(t *testing.T) {
		offer := activeWindow(&entity.Offer{Title: "Spring", DiscountType: entity.DiscountPercent, DiscountValue: 20})

		discounted := ApplyOffer(base, offer, now)

		require.NotNil(t, discounted.Offer)
		assert.Less(t, discounted.PerVisitPrice, base.PerVisitPrice)
		assert.Zero(t, discounted.PerVisitPrice%RoundingUnit)
		assert.Equal(t, base.PerVisitPrice-discounted.PerVisitPrice, discounted.Offer.Amount)
		assert.Equal(t, discounted.PerVisitPrice*4, discounted.MonthlyEstimate)
	})

	t.Run("fixed discount applies", func(t *testing.T) {
		offer := activeWindow(&entity.Offer{Title: "Tenner off", DiscountType: entity.DiscountFixed, DiscountValue: 10})

		discounted := ApplyOffer(base, offer, now)

		require.NotNil(t, discounted.Offer)
		assert.Equal(t, base.PerVisitPrice-10, discounted.PerVisitPrice)
	})

	t.Run("disabled offer is ignored", func(t *testing.T) {
		offer := activeWindow(&entity.Offer{Title: "Off", DiscountType: entity.DiscountPercent, DiscountValue: 20})
		offer.Enabled = false

		assert.Equal(t, base, ApplyOffer(base, offer, now))
	})

	t.Run("expired offer is ignored", func(t *testing.T) {
		offer := &entity.Offer{
			Title: "Gone", DiscountType: entity.DiscountPercent, DiscountValue: 20,
			Enabled:  true,
			StartsAt: now.Add(-48 * time.Hour),
			EndsAt:   now.Add(-24 * time.Hour),
		}

		assert.Equal(t, base, ApplyOffer(base, offer, now))
	})

	t.Run("large fixed discount floors at zero", func(t *testing.T) {
		offer := activeWindow(&entity.Offer{Title: "Free", DiscountType: entity.DiscountFixed, DiscountValue: 100000})

		discounted := ApplyOffer(base, offer, now)

		require.NotNil(t, discounted.Offer)
		assert.Zero(t, discounted.PerVisitPrice)
	})

	t.Run("rounding that does not cheapen is skipped", func(t *testing.T) {
		// 1% of a small price rounds back to the original.
		cheap := CalculateQuote(QuoteInput{Service: entity.ServiceBasic, PropertyType: "studio"})
		offer := activeWindow(&entity.Offer{Title: "Tiny", DiscountType: entity.DiscountPercent, DiscountValue: 1})

		assert.Equal(t, cheap, ApplyOffer(cheap, offer, now))
	})
}
