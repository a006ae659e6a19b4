package pricing

import (
	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
)

// RoundingUnit: every displayed price is a multiple of this.
const RoundingUnit = 5

type serviceRates struct {
	Base        int
	PerBedroom  int
	PerBathroom int
}

var residentialRates = map[entity.ServiceType]serviceRates{
	entity.ServiceBasic:        {Base: 45, PerBedroom: 12, PerBathroom: 8},
	entity.ServiceIntermediate: {Base: 65, PerBedroom: 16, PerBathroom: 12},
	entity.ServiceAdvanced:     {Base: 110, PerBedroom: 25, PerBathroom: 18},
}

// Residential property multipliers. Unknown types fall back to "house".
var residentialMultipliers = map[string]float64{
	"studio":    0.85,
	"apartment": 1.0,
	"house":     1.15,
	"townhouse": 1.1,
}

const defaultResidentialProperty = "house"

type commercialRates struct {
	Base    int
	PerRoom int
}

// Commercial uses its own property vocabulary and rate table.
var commercialRateTable = map[string]commercialRates{
	"office":     {Base: 70, PerRoom: 15},
	"retail":     {Base: 80, PerRoom: 18},
	"restaurant": {Base: 110, PerRoom: 22},
	"warehouse":  {Base: 90, PerRoom: 12},
	"other":      {Base: 75, PerRoom: 15},
}

const defaultCommercialProperty = "office"

// Per-visit discount by frequency.
var frequencyDiscounts = map[entity.Frequency]float64{
	entity.FrequencyOneTime:  0,
	entity.FrequencyWeekly:   0.15,
	entity.FrequencyBiWeekly: 0.10,
	entity.FrequencyMonthly:  0.05,
}

// Visits per month used for the monthly estimate.
var visitsPerMonth = map[entity.Frequency]int{
	entity.FrequencyWeekly:   4,
	entity.FrequencyBiWeekly: 2,
	entity.FrequencyMonthly:  1,
}

var frequencyLabels = map[entity.Frequency]string{
	entity.FrequencyOneTime:  "One-time",
	entity.FrequencyWeekly:   "Weekly",
	entity.FrequencyBiWeekly: "Every two weeks",
	entity.FrequencyMonthly:  "Monthly",
}

var serviceLabels = map[entity.ServiceType]string{
	entity.ServiceBasic:        "Basic Clean",
	entity.ServiceIntermediate: "Intermediate Clean",
	entity.ServiceAdvanced:     "Advanced Deep Clean",
	entity.ServiceCommercial:   "Commercial Clean",
}

// Oven add-on tiers, flat surcharge.
var ovenPrices = map[string]AddOn{
	"single": {ID: "oven-single", Label: "Single oven clean", Price: 15},
	"double": {ID: "oven-double", Label: "Double oven clean", Price: 25},
}

// Fixed extras catalog, each flat-priced. Unknown ids are ignored.
var extrasCatalog = map[string]AddOn{
	"fridge":    {ID: "fridge", Label: "Inside fridge", Price: 15},
	"windows":   {ID: "windows", Label: "Interior windows", Price: 20},
	"cabinets":  {ID: "cabinets", Label: "Inside kitchen cabinets", Price: 15},
	"laundry":   {ID: "laundry", Label: "Laundry & ironing", Price: 10},
	"garage":    {ID: "garage", Label: "Garage sweep-out", Price: 25},
	"balcony":   {ID: "balcony", Label: "Balcony / patio", Price: 10},
	"blinds":    {ID: "blinds", Label: "Blinds dusting", Price: 12},
	"limescale": {ID: "limescale", Label: "Limescale treatment", Price: 18},
}

var packageItems = map[entity.ServiceType][]string{
	entity.ServiceBasic: {
		"Dusting all accessible surfaces",
		"Vacuuming and mopping floors",
		"Kitchen surfaces and sink",
		"Bathroom clean and sanitise",
		"Emptying bins",
	},
	entity.ServiceIntermediate: {
		"Everything in Basic",
		"Inside microwave",
		"Skirting boards and door frames",
		"Light switches and handles",
		"Mirror and glass polishing",
	},
	entity.ServiceAdvanced: {
		"Everything in Intermediate",
		"Inside oven and extractor",
		"Under furniture where accessible",
		"Descaling taps and shower heads",
		"Full wall spot-cleaning",
		"Deep carpet vacuum",
	},
	entity.ServiceCommercial: {
		"Workstations and communal areas",
		"Kitchen / break room",
		"Washrooms restocked and sanitised",
		"Floors vacuumed and mopped",
		"Waste and recycling",
	},
}
