package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /groups/
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"groups": groups,
	})
}

// CreateGroup handles POST /groups/ (admin only)
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var input service.CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.Create(c.Context(), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}
