package server

import (
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NewPostForm handles GET /create. It returns the context the post form
// needs, which is the group picker.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	groups, err := s.groupService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"groups": groups,
	})
}

// CreatePost handles POST /create
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	// A successful submission lands on the author's profile.
	c.Set(fiber.HeaderLocation, "/profile/"+post.User.Username)
	return c.Status(fiber.StatusCreated).JSON(post)
}

// PostDetail handles GET /posts/:id
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.Detail(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// EditPostForm handles GET /posts/:id/edit. Only the author gets the
// prefilled form; everyone else is sent to the post detail page.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post.UserID != userID {
		return s.redirectToPost(c, postID)
	}

	groups, err := s.groupService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"post":    post,
		"groups":  groups,
		"is_edit": true,
	})
}

// EditPost handles POST /posts/:id/edit
func (s *Server) EditPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.EditPostInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Edit(c.Context(), postID, userID, input)
	if err != nil {
		// Non-authors are silently sent to the detail page, never an error.
		if errors.Is(err, service.ErrNotAuthor) {
			return s.redirectToPost(c, postID)
		}
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/posts/%d", post.ID))
	return c.JSON(post)
}

// redirectToPost sends a see-other redirect to the post detail page.
func (s *Server) redirectToPost(c *fiber.Ctx, postID uint) error {
	return c.Redirect(fmt.Sprintf("/posts/%d", postID), fiber.StatusSeeOther)
}
