package server

import (
	"fmt"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Add(c.Context(), postID, userID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	// The comment form lands back on the post detail page.
	c.Set(fiber.HeaderLocation, fmt.Sprintf("/posts/%d", postID))
	return c.Status(fiber.StatusCreated).JSON(comment)
}
