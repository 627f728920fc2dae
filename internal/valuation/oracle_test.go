package valuation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/llm"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/search/web"
)

type stubCompleter struct {
	content string
	err     error
	last    llm.CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.content}, nil
}

func (s *stubCompleter) Model() string { return "stub" }

func oracleRequest() OracleRequest {
	return OracleRequest{
		Input: Input{
			Kind: KindHouse, Locality: "Kowdiar", PlotAreaCents: 6, BuiltAreaSqft: 2400,
			Bedrooms: 4, AgeBand: "New", RoadAccess: "Car",
		},
		Tier:            locality.TierPremium,
		BeachDistanceKm: 7.5,
		Benchmarks:      locality.DefaultBenchmarks(),
		Snippets: []web.SearchResult{
			{Title: "Plot for sale in Kowdiar", URL: "https://www.magicbricks.com/k", Snippet: "26 Lakhs per cent"},
		},
	}
}

func TestLLMOracleEstimateRate(t *testing.T) {
	c := &stubCompleter{content: "```json\n{\"breakdown\": {\"landRatePerCent\": 26.5}, \"explanation\": \"Prime\"}\n```"}
	o := NewLLMOracle(c)

	est, err := o.EstimateRate(context.Background(), oracleRequest())
	require.NoError(t, err)
	assert.Equal(t, 26.5, est.LandRatePerCent)
	assert.Equal(t, "Prime", est.Explanation)

	assert.Contains(t, c.last.UserPrompt, "Locality: Kowdiar (tier: Premium)")
	assert.Contains(t, c.last.UserPrompt, "Bedrooms: 4")
	assert.Contains(t, c.last.UserPrompt, "26 Lakhs per cent")
	assert.Contains(t, c.last.UserPrompt, "- Premium (Kowdiar, Sasthamangalam): 28")
	assert.NotEmpty(t, c.last.SystemPrompt)
}

func TestLLMOracleFailures(t *testing.T) {
	transport := errors.New("connection reset")
	_, err := NewLLMOracle(&stubCompleter{err: transport}).EstimateRate(context.Background(), oracleRequest())
	assert.ErrorIs(t, err, ErrOracle)
	assert.ErrorIs(t, err, transport)

	_, err = NewLLMOracle(&stubCompleter{content: `{"explanation": "unsure"}`}).EstimateRate(context.Background(), oracleRequest())
	assert.ErrorIs(t, err, ErrOracle)

	_, err = NewLLMOracle(&stubCompleter{content: "no data"}).EstimateRate(context.Background(), oracleRequest())
	assert.ErrorIs(t, err, ErrOracle)
}

func TestBuildPromptForPlotWithoutEvidence(t *testing.T) {
	req := oracleRequest()
	req.Input = Input{Kind: KindPlot, Locality: "Vizhinjam", PlotAreaCents: 3}
	req.Tier = locality.TierSuburb
	req.Snippets = nil

	p := BuildPrompt(req)
	assert.Contains(t, p, "Road Access: unknown")
	assert.NotContains(t, p, "Bedrooms")
	assert.Contains(t, p, "No listing evidence")
}
