package server

import (
	"quill/internal/models"
	"quill/internal/seed"

	"github.com/gofiber/fiber/v2"
)

// SeedResponse is returned by POST /api/test/seed.
type SeedResponse struct {
	Message string       `json:"message"`
	Data    seed.Dataset `json:"data"`
}

// SeedDatabase handles POST /api/test/seed
// @Summary Replace all data with the fixture dataset
// @Tags testing
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /test/seed [post]
func (s *Server) SeedDatabase(c *fiber.Ctx) error {
	ds, err := s.seeder.Seed(c.UserContext())
	if err != nil {
		return respondServiceError(c, err, fiber.StatusInternalServerError, "Failed to seed database")
	}
	return c.JSON(SeedResponse{Message: "Database seeded successfully", Data: ds})
}

// ClearDatabase handles POST /api/test/clear
// @Summary Delete all comments, posts and users
// @Tags testing
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /test/clear [post]
func (s *Server) ClearDatabase(c *fiber.Ctx) error {
	if err := s.seeder.Clear(c.UserContext()); err != nil {
		return respondServiceError(c, err, fiber.StatusInternalServerError, "Failed to clear database")
	}
	return c.JSON(models.MessageResponse{Message: "Database cleared successfully"})
}
