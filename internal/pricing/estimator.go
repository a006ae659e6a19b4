package pricing

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Estimate is the bounded price put on a free-text extras request.
type Estimate struct {
	Price   int      `json:"price"`
	Summary string   `json:"summary"`
	Reason  string   `json:"reason"`
	Items   []string `json:"items"`
}

// Estimator converts free-text "extra request" strings into a bounded price.
// Two tiers: a keyword/quantity heuristic, and an optional AI estimate that
// can only raise the heuristic's hours, never lower them. It never returns
// an error; any AI failure degrades silently to the heuristic.
type Estimator struct {
	cfg utils.PricingConfig
	ai  *openAIClient
	log *zap.Logger
}

func NewEstimator(cfg utils.PricingConfig, openai utils.OpenAIConfig, log *zap.Logger) *Estimator {
	e := &Estimator{
		cfg: cfg,
		log: log.With(zap.String("service", "estimator")),
	}
	if openai.APIKey != "" {
		e.ai = newOpenAIClient(openai, log)
	}
	return e
}

func (e *Estimator) Estimate(ctx context.Context, text, service, propertyType string) Estimate {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Estimate{
			Price:  0,
			Reason: "No custom work requested",
		}
	}

	hours, items, reason := heuristicEstimate(trimmed)

	if e.ai != nil {
		aiHours, aiItems, err := e.ai.estimateEffort(ctx, trimmed, service, propertyType)
		if err != nil {
			e.log.Warn("AI effort estimate failed, using heuristic only", zap.Error(err))
		} else if aiHours > hours {
			// Never let the AI under-bid the heuristic.
			hours = aiHours
			reason = "AI-assisted estimate"
			if len(aiItems) > 0 {
				items = lo.Uniq(append(items, aiItems...))
			}
		}
	}

	price := utils.RoundToNearest(int(hours*float64(e.cfg.HourlyRate)+0.5), RoundingUnit)
	price = utils.Clamp(price, e.cfg.MinCustomPrice, e.cfg.MaxCustomPrice)

	return Estimate{
		Price:   price,
		Summary: fmt.Sprintf("Custom extras (~%.1f hrs): %s", hours, strings.Join(items, ", ")),
		Reason:  reason,
		Items:   items,
	}
}

// ---- heuristic tier ----

type taskRate struct {
	Label        string
	Keywords     []string
	BaseHours    float64
	PerUnitHours float64
}

var taskRates = []taskRate{
	{Label: "cage cleaning", Keywords: []string{"cage", "cages", "kennel", "kennels", "hutch", "hutches"}, BaseHours: 0.5, PerUnitHours: 0.25},
	{Label: "window cleaning", Keywords: []string{"window", "windows"}, BaseHours: 0.5, PerUnitHours: 0.2},
	{Label: "blinds", Keywords: []string{"blind", "blinds", "shutter", "shutters"}, BaseHours: 0.3, PerUnitHours: 0.15},
	{Label: "fridge/freezer", Keywords: []string{"fridge", "fridges", "freezer", "freezers"}, BaseHours: 0.75, PerUnitHours: 0.5},
	{Label: "oven", Keywords: []string{"oven", "ovens", "stove", "hob", "extractor"}, BaseHours: 1.0, PerUnitHours: 0.75},
	{Label: "carpet/rug", Keywords: []string{"carpet", "carpets", "rug", "rugs"}, BaseHours: 0.75, PerUnitHours: 0.5},
	{Label: "walls", Keywords: []string{"wall", "walls"}, BaseHours: 1.0, PerUnitHours: 0.25},
	{Label: "garage", Keywords: []string{"garage", "shed"}, BaseHours: 1.5, PerUnitHours: 1.0},
	{Label: "gutters", Keywords: []string{"gutter", "gutters"}, BaseHours: 1.0, PerUnitHours: 0.5},
	{Label: "upholstery", Keywords: []string{"sofa", "sofas", "couch", "couches", "upholstery", "mattress", "mattresses"}, BaseHours: 0.75, PerUnitHours: 0.5},
	{Label: "cupboards", Keywords: []string{"cupboard", "cupboards", "cabinet", "cabinets", "wardrobe", "wardrobes"}, BaseHours: 0.5, PerUnitHours: 0.2},
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "dozen": 12, "fifteen": 15, "twenty": 20,
	"a": 1, "an": 1,
}

var (
	wholePhraseRe = regexp.MustCompile(`\b(entire|whole|all|every)\b`)
	deepPhraseRe  = regexp.MustCompile(`\b(deep|detail|detailed|thorough|heavy)\b`)
	tokenSplitRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

// heuristicEstimate scans normalized text for known task keywords and
// countable quantities ("17 cages") and sums an hours estimate from the
// per-task rate table.
func heuristicEstimate(text string) (hours float64, items []string, reason string) {
	normalized := strings.ToLower(text)
	tokens := tokenSplitRe.Split(normalized, -1)

	matched := map[string]bool{}
	for i, tok := range tokens {
		for _, task := range taskRates {
			if !lo.Contains(task.Keywords, tok) {
				continue
			}
			if matched[task.Label] {
				continue
			}
			matched[task.Label] = true

			qty := quantityBefore(tokens, i)
			hours += task.BaseHours + task.PerUnitHours*float64(qty)

			if qty > 1 {
				items = append(items, fmt.Sprintf("%d× %s", qty, task.Label))
			} else {
				items = append(items, task.Label)
			}
		}
	}

	if len(matched) == 0 {
		// Unrecognised request: minimum call-out so it still gets priced.
		return 1.0, []string{"custom request"}, "Unrecognised request, minimum estimate applied"
	}

	reason = "Estimated from task keywords"
	if wholePhraseRe.MatchString(normalized) {
		hours *= 1.5
		reason = "Estimated from task keywords (whole-property scope)"
	}
	if deepPhraseRe.MatchString(normalized) {
		hours *= 1.3
	}

	return hours, items, reason
}

// quantityBefore looks at up to two tokens preceding position i for a
// digit count or a number word.
func quantityBefore(tokens []string, i int) int {
	for back := 1; back <= 2 && i-back >= 0; back++ {
		tok := tokens[i-back]
		if n, err := strconv.Atoi(tok); err == nil && n > 0 && n < 1000 {
			return n
		}
		if n, ok := numberWords[tok]; ok {
			return n
		}
	}
	return 1
}
