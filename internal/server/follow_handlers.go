package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles GET /profile/:username/follow
//
// Following yourself or an author you already follow is a silent no-op;
// either way the caller lands back on the profile page.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	if err := s.followService.Follow(c.Context(), userID, username); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/profile/"+username, fiber.StatusSeeOther)
}

// UnfollowAuthor handles GET /profile/:username/unfollow
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	if err := s.followService.Unfollow(c.Context(), userID, username); err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect("/profile/"+username, fiber.StatusSeeOther)
}
