package pricing

import (
	"context"
	"testing"

	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testEstimator() *Estimator {
	return NewEstimator(utils.PricingConfig{
		HourlyRate:     55,
		MinCustomPrice: 30,
		MaxCustomPrice: 400,
	}, utils.OpenAIConfig{}, zap.NewNop())
}

func TestEstimate_EmptyTextIsFree(t *testing.T) {
	est := testEstimator().Estimate(context.Background(), "   ", "basic", "house")

	assert.Zero(t, est.Price)
	assert.Equal(t, "No custom work requested", est.Reason)
}

func TestEstimate_QuantityScalesPrice(t *testing.T) {
	e := testEstimator()

	few := e.Estimate(context.Background(), "clean 3 cages", "basic", "house")
	many := e.Estimate(context.Background(), "clean 17 cages", "basic", "house")

	assert.Greater(t, many.Price, few.Price)
	assert.Contains(t, many.Items, "17× cage cleaning")
}

func TestEstimate_NumberWordsCount(t *testing.T) {
	e := testEstimator()

	digits := e.Estimate(context.Background(), "wash 12 windows", "basic", "house")
	words := e.Estimate(context.Background(), "wash a dozen windows", "basic", "house")

	assert.Equal(t, digits.Price, words.Price)
}

func TestEstimate_BoundsRespected(t *testing.T) {
	e := testEstimator()

	tests := []struct {
		name string
		text string
	}{
		{name: "tiny job hits floor", text: "dust one blind"},
		{name: "huge job hits ceiling", text: "deep clean the entire house: 40 windows, 10 carpets, 8 sofas, 6 ovens, every wall and all the gutters"},
		{name: "unrecognised request", text: "polish the flux capacitor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := e.Estimate(context.Background(), tt.text, "basic", "house")

			assert.GreaterOrEqual(t, est.Price, 30)
			assert.LessOrEqual(t, est.Price, 400)
			assert.Zero(t, est.Price%RoundingUnit)
			assert.NotEmpty(t, est.Items)
		})
	}
}

func TestEstimate_UnrecognisedGetsMinimumCallout(t *testing.T) {
	est := testEstimator().Estimate(context.Background(), "polish the flux capacitor", "basic", "house")

	assert.Equal(t, "Unrecognised request, minimum estimate applied", est.Reason)
	assert.Equal(t, []string{"custom request"}, est.Items)
	// 1.0h at £55 rounds to 55.
	assert.Equal(t, 55, est.Price)
}

func TestEstimate_ScopeModifiersRaiseHours(t *testing.T) {
	e := testEstimator()

	plain := e.Estimate(context.Background(), "clean 5 windows and 2 carpets", "basic", "house")
	whole := e.Estimate(context.Background(), "clean 5 windows and 2 carpets in the entire house", "basic", "house")
	deep := e.Estimate(context.Background(), "deep clean 5 windows and 2 carpets", "basic", "house")

	assert.Greater(t, whole.Price, plain.Price)
	assert.Greater(t, deep.Price, plain.Price)
}

func TestHeuristicEstimate_RepeatedKeywordsCountOnce(t *testing.T) {
	once, _, _ := heuristicEstimate("clean the oven")
	twice, _, _ := heuristicEstimate("clean the oven, yes the oven")

	assert.Equal(t, once, twice)
}

func TestQuantityBefore(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		pos    int
		want   int
	}{
		{name: "digit directly before", tokens: []string{"17", "cages"}, pos: 1, want: 17},
		{name: "digit two back", tokens: []string{"3", "dirty", "cages"}, pos: 2, want: 3},
		{name: "number word", tokens: []string{"five", "windows"}, pos: 1, want: 5},
		{name: "article counts as one", tokens: []string{"a", "fridge"}, pos: 1, want: 1},
		{name: "nothing countable", tokens: []string{"the", "oven"}, pos: 1, want: 1},
		{name: "absurd count ignored", tokens: []string{"9000", "windows"}, pos: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quantityBefore(tt.tokens, tt.pos))
		})
	}
}
