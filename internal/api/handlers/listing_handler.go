package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/listing"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
)

type ListingHandler struct{}

func NewListingHandler() *ListingHandler {
	return &ListingHandler{}
}

func (h *ListingHandler) Parse(c *fiber.Ctx) error {
	var req struct {
		Sources []listing.Source `json:"sources"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	markers := listing.Parse(req.Sources)
	return c.JSON(fiber.Map{
		"markers": markers,
		"count":   len(markers),
	})
}
