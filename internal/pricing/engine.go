package pricing

import (
	"fmt"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"

	"github.com/shopspring/decimal"
)

// CalculateQuote maps a structured quote input to a price and its display
// labels. Deterministic and side-effect free; recomputed on every request.
func CalculateQuote(in QuoteInput) Quote {
	frequency := in.Frequency
	if frequency == "" {
		frequency = entity.FrequencyOneTime
	}
	// Advanced deep cleans are always one-off jobs, whatever was requested.
	if in.Service == entity.ServiceAdvanced {
		frequency = entity.FrequencyOneTime
	}

	var base decimal.Decimal
	var propertySummary string

	if in.Service == entity.ServiceCommercial {
		base, propertySummary = commercialBase(in)
	} else {
		base, propertySummary = residentialBase(in)
	}

	discount := frequencyDiscounts[frequency]
	perVisit := base.Mul(decimal.NewFromFloat(1 - discount))

	addOns := collectAddOns(in)
	for _, a := range addOns {
		perVisit = perVisit.Add(decimal.NewFromInt(int64(a.Price)))
	}

	if in.CustomExtrasPrice > 0 {
		perVisit = perVisit.Add(decimal.NewFromInt(int64(in.CustomExtrasPrice)))
	}

	price := roundToUnit(perVisit)

	monthly := 0
	if visits, ok := visitsPerMonth[frequency]; ok {
		monthly = price * visits
	}

	return Quote{
		PerVisitPrice:   price,
		MonthlyEstimate: monthly,
		PaymentSummary:  paymentSummary(price, monthly, frequency),
		ServiceLabel:    serviceLabels[in.Service],
		PropertySummary: propertySummary,
		Frequency:       frequency,
		FrequencyLabel:  frequencyLabels[frequency],
		PackageItems:    packageItems[in.Service],
		AddOns:          addOns,
		CustomExtras:    in.CustomExtrasPrice,
	}
}

// ApplyOffer discounts a computed quote when the offer is enabled and inside
// its active window. The result is re-rounded and floored at zero.
func ApplyOffer(q Quote, offer *entity.Offer, now time.Time) Quote {
	if !offer.ActiveAt(now) {
		return q
	}

	original := q.PerVisitPrice
	price := decimal.NewFromInt(int64(original))

	switch offer.DiscountType {
	case entity.DiscountPercent:
		factor := decimal.NewFromInt(int64(100 - offer.DiscountValue)).Div(decimal.NewFromInt(100))
		price = price.Mul(factor)
	case entity.DiscountFixed:
		price = price.Sub(decimal.NewFromInt(int64(offer.DiscountValue)))
	default:
		return q
	}

	discounted := roundToUnit(price)
	if discounted >= original {
		return q
	}

	q.PerVisitPrice = discounted
	q.Offer = &AppliedOffer{Title: offer.Title, Amount: original - discounted}
	if visits, ok := visitsPerMonth[q.Frequency]; ok {
		q.MonthlyEstimate = discounted * visits
	}
	q.PaymentSummary = paymentSummary(discounted, q.MonthlyEstimate, q.Frequency)

	return q
}

func residentialBase(in QuoteInput) (decimal.Decimal, string) {
	rates, ok := residentialRates[in.Service]
	if !ok {
		rates = residentialRates[entity.ServiceBasic]
	}

	propertyType := in.PropertyType
	mult, ok := residentialMultipliers[propertyType]
	if !ok {
		propertyType = defaultResidentialProperty
		mult = residentialMultipliers[propertyType]
	}

	bedrooms := clampFloor(in.Bedrooms)
	bathrooms := clampFloor(in.Bathrooms)

	base := decimal.NewFromInt(int64(rates.Base)).
		Add(decimal.NewFromInt(int64(rates.PerBedroom * bedrooms))).
		Add(decimal.NewFromInt(int64(rates.PerBathroom * bathrooms))).
		Mul(decimal.NewFromFloat(mult))

	summary := fmt.Sprintf("%s, %d bed, %d bath", propertyType, bedrooms, bathrooms)
	return base, summary
}

func commercialBase(in QuoteInput) (decimal.Decimal, string) {
	propertyType := in.PropertyType
	rates, ok := commercialRateTable[propertyType]
	if !ok {
		propertyType = defaultCommercialProperty
		rates = commercialRateTable[propertyType]
	}

	rooms := clampFloor(in.Rooms)

	base := decimal.NewFromInt(int64(rates.Base)).
		Add(decimal.NewFromInt(int64(rates.PerRoom * rooms)))

	summary := fmt.Sprintf("%s, %d rooms", propertyType, rooms)
	return base, summary
}

func collectAddOns(in QuoteInput) []AddOn {
	var addOns []AddOn

	if oven, ok := ovenPrices[in.Oven]; ok {
		addOns = append(addOns, oven)
	}

	seen := map[string]bool{}
	for _, id := range in.Extras {
		if seen[id] {
			continue
		}
		seen[id] = true
		if extra, ok := extrasCatalog[id]; ok {
			addOns = append(addOns, extra)
		}
	}

	return addOns
}

func paymentSummary(perVisit, monthly int, frequency entity.Frequency) string {
	if frequency == entity.FrequencyOneTime {
		return fmt.Sprintf("£%d one-time", perVisit)
	}
	return fmt.Sprintf("£%d per visit, billed %s (≈ £%d/month)", perVisit, frequency, monthly)
}

// roundToUnit rounds to the nearest RoundingUnit, never below zero.
func roundToUnit(d decimal.Decimal) int {
	if d.IsNegative() {
		return 0
	}

	unit := decimal.NewFromInt(RoundingUnit)
	rounded := d.Div(unit).Round(0).Mul(unit)
	return int(rounded.IntPart())
}

func clampFloor(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
