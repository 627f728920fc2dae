package handlers

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/baseline"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/ratecache"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/storage/models"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
)

type BaselineReader interface {
	Get(ctx context.Context, locality string) (*models.LocalityBaseline, error)
}

type BaselineRefresher interface {
	Refresh(ctx context.Context, locality string) (*models.LocalityBaseline, error)
}

type BaselineHandler struct {
	baselines BaselineReader
	refresher BaselineRefresher
}

func NewBaselineHandler(baselines BaselineReader, refresher BaselineRefresher) *BaselineHandler {
	return &BaselineHandler{
		baselines: baselines,
		refresher: refresher,
	}
}

func (h *BaselineHandler) Get(c *fiber.Ctx) error {
	name, ok := canonicalLocality(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown locality",
		})
	}

	b, err := h.baselines.Get(c.UserContext(), name)
	if err != nil {
		logger.Error("Failed to read baseline", zap.String("locality", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read baseline",
		})
	}
	if b == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No baseline for locality",
		})
	}

	return c.JSON(baselineView(b))
}

func (h *BaselineHandler) Refresh(c *fiber.Ctx) error {
	name, ok := canonicalLocality(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown locality",
		})
	}

	b, err := h.refresher.Refresh(c.UserContext(), name)
	switch {
	case errors.Is(err, baseline.ErrNoObservations):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No observations recorded for locality",
		})
	case errors.Is(err, baseline.ErrOutsideBand):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Aggregated median is outside the sane band",
		})
	case err != nil:
		logger.Error("Failed to refresh baseline", zap.String("locality", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh baseline",
		})
	}

	logger.Info("Baseline refreshed on demand",
		zap.String("locality", name),
		zap.Float64("median_rate", b.MedianRate),
		zap.Int("sample_size", b.SampleSize),
	)
	return c.JSON(baselineView(b))
}

func canonicalLocality(c *fiber.Ctx) (string, bool) {
	raw, err := url.PathUnescape(c.Params("locality"))
	if err != nil {
		return "", false
	}
	p, ok := locality.Lookup(raw)
	if !ok {
		return "", false
	}
	return p.Name, true
}

func baselineView(b *models.LocalityBaseline) fiber.Map {
	return fiber.Map{
		"baseline":      b,
		"confidence":    baseline.ForBaseline(b),
		"cacheTtlHours": ratecache.TTL(b).Hours(),
	}
}
