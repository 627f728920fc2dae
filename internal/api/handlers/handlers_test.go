package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/baseline"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/valuation"
)

type estimateFunc func(ctx context.Context, in valuation.Input) (*valuation.Result, error)

func (f estimateFunc) Estimate(ctx context.Context, in valuation.Input) (*valuation.Result, error) {
	return f(ctx, in)
}

type baselineStub struct {
	current *models.LocalityBaseline
	err     error
	asked   string
}

func (s *baselineStub) Get(_ context.Context, name string) (*models.LocalityBaseline, error) {
	s.asked = name
	return s.current, s.err
}

func (s *baselineStub) Refresh(_ context.Context, name string) (*models.LocalityBaseline, error) {
	s.asked = name
	return s.current, s.err
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func estimateApp(f estimateFunc) *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/estimate", NewEstimateHandler(f).HandleEstimate)
	return app
}

func TestEstimateSuccess(t *testing.T) {
	var got valuation.Input
	app := estimateApp(func(_ context.Context, in valuation.Input) (*valuation.Result, error) {
		got = in
		return &valuation.Result{PriceRangeMin: 40.5, PriceRangeMax: 49.5, Currency: "INR", RateSource: models.SourceOracle}, nil
	})

	resp, body := do(t, app, "POST", "/api/v1/estimate",
		`{"type":"Plot","locality":"Kowdiar","plotArea":5,"roadWidth":"Car Access","distanceToBeach":2.5}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(headerRequestID))

	assert.Equal(t, valuation.KindPlot, got.Kind)
	assert.Equal(t, "Kowdiar", got.Locality)
	assert.Equal(t, 5.0, got.PlotAreaCents)
	require.NotNil(t, got.BeachDistanceKm)
	assert.Equal(t, 2.5, *got.BeachDistanceKm)
	assert.Equal(t, 40.5, body["minPrice"])
	assert.Equal(t, 49.5, body["maxPrice"])
}

func TestEstimateKeepsCallerRequestID(t *testing.T) {
	app := estimateApp(func(context.Context, valuation.Input) (*valuation.Result, error) {
		return &valuation.Result{}, nil
	})
	req := httptest.NewRequest("POST", "/api/v1/estimate", strings.NewReader(`{"locality":"Kowdiar","plotArea":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(headerRequestID))
}

func TestEstimateErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		field  string
	}{
		{"validation", &valuation.ValidationError{Field: "plotArea", Reason: "must be positive"}, fiber.StatusBadRequest, "plotArea"},
		{"unavailable", fmt.Errorf("%w for Kowdiar: %w", valuation.ErrEstimationUnavailable, valuation.ErrOracle), fiber.StatusServiceUnavailable, ""},
		{"internal", errors.New("boom"), fiber.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := estimateApp(func(context.Context, valuation.Input) (*valuation.Result, error) {
				return nil, tc.err
			})
			resp, body := do(t, app, "POST", "/api/v1/estimate", `{"locality":"Kowdiar","plotArea":1}`)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
			if tc.field != "" {
				assert.Equal(t, tc.field, body["field"])
			}
		})
	}
}

func TestEstimateBadBody(t *testing.T) {
	called := false
	app := estimateApp(func(context.Context, valuation.Input) (*valuation.Result, error) {
		called = true
		return nil, nil
	})
	resp, _ := do(t, app, "POST", "/api/v1/estimate", `{"plotArea":"lots"`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, called)
}

func localityApp() *fiber.App {
	app := fiber.New()
	h := NewLocalityHandler()
	app.Get("/api/v1/localities", h.List)
	app.Get("/api/v1/localities/:name", h.Get)
	return app
}

func TestLocalityList(t *testing.T) {
	resp, body := do(t, localityApp(), "GET", "/api/v1/localities", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Greater(t, body["count"], 50.0)
	list, ok := body["localities"].([]interface{})
	require.True(t, ok)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "Akkulam", first["name"])
}

func TestLocalityGet(t *testing.T) {
	app := localityApp()

	resp, body := do(t, app, "GET", "/api/v1/localities/east%20fort?plotArea=12", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile := body["locality"].(map[string]interface{})
	assert.Equal(t, "East Fort", profile["name"])
	assert.Equal(t, "City", profile["tier"])
	metrics := body["suitability"].(map[string]interface{})
	assert.Contains(t, metrics, "suitabilityScore")
	assert.Equal(t, true, metrics["isVillaFeasible"])

	resp, _ = do(t, app, "GET", "/api/v1/localities/Atlantis", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, "GET", "/api/v1/localities/Kowdiar?plotArea=-1", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func baselineApp(stub *baselineStub) *fiber.App {
	app := fiber.New()
	h := NewBaselineHandler(stub, stub)
	app.Get("/api/v1/baselines/:locality", h.Get)
	app.Post("/api/v1/baselines/:locality/refresh", h.Refresh)
	return app
}

func TestBaselineGet(t *testing.T) {
	stub := &baselineStub{current: &models.LocalityBaseline{
		Locality:        "Kowdiar",
		MedianRate:      25,
		SampleSize:      6,
		StdDeviation:    1,
		ConfidenceScore: 80,
		LastUpdated:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}

	resp, body := do(t, baselineApp(stub), "GET", "/api/v1/baselines/kowdiar", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Kowdiar", stub.asked)
	assert.Equal(t, 48.0, body["cacheTtlHours"])

	b := body["baseline"].(map[string]interface{})
	assert.Equal(t, 25.0, b["medianRate"])
	conf := body["confidence"].(map[string]interface{})
	assert.Equal(t, 6.0, conf["sampleSize"])
}

func TestBaselineGetMissing(t *testing.T) {
	resp, _ := do(t, baselineApp(&baselineStub{}), "GET", "/api/v1/baselines/Kowdiar", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, baselineApp(&baselineStub{}), "GET", "/api/v1/baselines/Atlantis", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, baselineApp(&baselineStub{err: errors.New("db down")}), "GET", "/api/v1/baselines/Kowdiar", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestBaselineRefreshErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w for Pattom", baseline.ErrNoObservations), fiber.StatusNotFound},
		{fmt.Errorf("%w: 200", baseline.ErrOutsideBand), fiber.StatusUnprocessableEntity},
		{errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		resp, _ := do(t, baselineApp(&baselineStub{err: tc.err}), "POST", "/api/v1/baselines/Pattom/refresh", "")
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
	}
}

func TestBaselineRefresh(t *testing.T) {
	stub := &baselineStub{current: &models.LocalityBaseline{Locality: "Pattom", MedianRate: 14, SampleSize: 3}}
	resp, body := do(t, baselineApp(stub), "POST", "/api/v1/baselines/Pattom/refresh", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pattom", stub.asked)
	assert.Equal(t, 12.0, body["cacheTtlHours"])
}

func TestListingParse(t *testing.T) {
	app := fiber.New()
	app.Post("/api/v1/listings/parse", NewListingHandler().Parse)

	resp, body := do(t, app, "POST", "/api/v1/listings/parse",
		`{"sources":[{"title":"8 cents for 80 Lakhs in Pattom","uri":"https://example.com/a"},{"title":"weather","uri":"https://example.com/b"}]}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["count"])

	markers := body["markers"].([]interface{})
	m := markers[0].(map[string]interface{})
	assert.Equal(t, 1000.0, m["id"])
	assert.Equal(t, 80.0, m["estimatedPrice"])
	assert.Equal(t, 8.0, m["estimatedSize"])
}
