package validation

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var xssPattern = regexp.MustCompile(`(?i)(<script|<iframe|javascript:|onerror=|onload=|onclick=)`)

type Config struct {
	MaxFieldLength      int
	MaxSources          int
	AllowedContentTypes []string
	Logger              *zap.Logger
}

// Middleware checks request bodies of the estimate and listing routes before
// they reach a handler. String fields are trimmed and stripped of NUL bytes
// in place.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxFieldLength == 0 {
		cfg.MaxFieldLength = 200
	}
	if cfg.MaxSources == 0 {
		cfg.MaxSources = 50
	}
	if len(cfg.AllowedContentTypes) == 0 {
		cfg.AllowedContentTypes = []string{"application/json"}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPut {
			return c.Next()
		}

		path := c.Path()
		isEstimate := strings.HasSuffix(path, "/estimate")
		isListings := strings.HasSuffix(path, "/listings/parse")
		if !isEstimate && !isListings {
			return c.Next()
		}

		contentType := c.Get(fiber.HeaderContentType)
		if !allowedContentType(contentType, cfg.AllowedContentTypes) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
				"error": "Unsupported content type",
			})
		}

		var req map[string]interface{}
		if err := json.Unmarshal(c.Body(), &req); err != nil || req == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid JSON format",
			})
		}

		var msg string
		if isEstimate {
			msg = checkEstimate(req, cfg)
		} else {
			msg = checkListings(req, cfg)
		}
		if msg != "" {
			cfg.Logger.Debug("Request rejected by validation",
				zap.String("ip", c.IP()),
				zap.String("path", path),
				zap.String("reason", msg),
			)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": msg,
			})
		}

		body, err := json.Marshal(req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid JSON format",
			})
		}
		c.Request().SetBody(body)

		return c.Next()
	}
}

func allowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.Contains(strings.ToLower(contentType), t) {
			return true
		}
	}
	return false
}

var estimateStringFields = []string{"type", "locality", "propertyAge", "roadWidth"}

func checkEstimate(req map[string]interface{}, cfg Config) string {
	for _, field := range estimateStringFields {
		v, present := req[field]
		if !present || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return field + " must be a string"
		}
		s = sanitizeString(s)
		if len(s) > cfg.MaxFieldLength {
			return field + " exceeds maximum length"
		}
		if containsXSS(s) {
			cfg.Logger.Warn("Potential XSS attempt", zap.String("field", field))
			return "Invalid " + field + " content"
		}
		req[field] = s
	}

	locality, _ := req["locality"].(string)
	if locality == "" {
		return "locality is required"
	}

	for _, field := range []string{"plotArea", "builtArea", "bedrooms", "distanceToBeach"} {
		v, present := req[field]
		if !present || v == nil {
			continue
		}
		if _, ok := v.(float64); !ok {
			return field + " must be a number"
		}
	}
	if _, ok := req["plotArea"]; !ok {
		return "plotArea is required"
	}
	return ""
}

func checkListings(req map[string]interface{}, cfg Config) string {
	raw, ok := req["sources"].([]interface{})
	if !ok {
		return "sources must be an array"
	}
	if len(raw) > cfg.MaxSources {
		return "too many sources"
	}

	for _, item := range raw {
		src, ok := item.(map[string]interface{})
		if !ok {
			return "each source must be an object"
		}
		title, _ := src["title"].(string)
		title = sanitizeString(title)
		if len(title) > cfg.MaxFieldLength*5 {
			return "source title exceeds maximum length"
		}
		src["title"] = title

		uri, _ := src["uri"].(string)
		uri = sanitizeString(uri)
		if uri != "" && !isValidURL(uri) {
			return "Invalid URL format"
		}
		src["uri"] = uri
	}
	return ""
}

func containsXSS(input string) bool {
	return xssPattern.MatchString(input)
}

func sanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(input)
}

func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	if u.Host == "" {
		return false
	}

	return true
}
