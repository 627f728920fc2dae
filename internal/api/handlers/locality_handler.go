package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/locality"
	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/suitability"
)

type LocalityHandler struct{}

func NewLocalityHandler() *LocalityHandler {
	return &LocalityHandler{}
}

func (h *LocalityHandler) List(c *fiber.Ctx) error {
	all := locality.All()
	return c.JSON(fiber.Map{
		"localities": all,
		"count":      len(all),
	})
}

// Get returns a locality profile with its suitability metrics for an
// optional ?plotArea in cents.
func (h *LocalityHandler) Get(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid locality name",
		})
	}

	profile, ok := locality.Lookup(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown locality",
		})
	}

	var plotArea float64
	if raw := c.Query("plotArea"); raw != "" {
		plotArea, err = strconv.ParseFloat(raw, 64)
		if err != nil || plotArea < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "plotArea must be a non-negative number",
			})
		}
	}

	return c.JSON(fiber.Map{
		"locality":    profile,
		"suitability": suitability.Evaluate(profile.Name, plotArea, profile.BeachDistanceKm),
	})
}
