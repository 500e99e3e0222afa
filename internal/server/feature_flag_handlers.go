package server

import "github.com/gofiber/fiber/v2"

// Flags gating optional surfaces. Unconfigured flags default to enabled.
const (
	flagUploads    = "uploads"
	flagAICaptions = "ai_captions"
)

// GetFeatureFlags returns configured feature flags and evaluated state for
// the requesting client.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	if s.featureFlags == nil {
		return c.JSON(fiber.Map{
			"raw":       map[string]string{},
			"evaluated": map[string]bool{},
		})
	}

	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(c.IP()),
	})
}

// featureEnabled evaluates a flag for the requesting client, defaulting to
// enabled when the flag is not configured.
func (s *Server) featureEnabled(c *fiber.Ctx, name string) bool {
	return s.featureFlags.Enabled(name, c.IP(), true)
}
