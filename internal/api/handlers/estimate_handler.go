package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/valuation"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
)

const headerRequestID = "X-Request-ID"

type Estimator interface {
	Estimate(ctx context.Context, in valuation.Input) (*valuation.Result, error)
}

type EstimateHandler struct {
	estimator Estimator
}

func NewEstimateHandler(estimator Estimator) *EstimateHandler {
	return &EstimateHandler{
		estimator: estimator,
	}
}

func (h *EstimateHandler) HandleEstimate(c *fiber.Ctx) error {
	requestID := c.Get(headerRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	c.Set(headerRequestID, requestID)

	var in valuation.Input
	if err := c.BodyParser(&in); err != nil {
		logger.Error("Failed to parse request body", zap.String("request_id", requestID), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.estimator.Estimate(c.UserContext(), in)
	if err != nil {
		var verr *valuation.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
				"field": verr.Field,
			})
		case errors.Is(err, valuation.ErrEstimationUnavailable):
			logger.Warn("Estimation unavailable",
				zap.String("request_id", requestID),
				zap.String("locality", in.Locality),
				zap.Error(err),
			)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Valuation is temporarily unavailable for this locality",
			})
		default:
			logger.Error("Failed to estimate", zap.String("request_id", requestID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to estimate property value",
			})
		}
	}

	logger.Info("Estimate served",
		zap.String("request_id", requestID),
		zap.String("locality", in.Locality),
		zap.String("rate_source", string(result.RateSource)),
		zap.Bool("degraded", result.Degraded),
	)
	return c.JSON(result)
}
