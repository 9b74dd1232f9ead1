package server

import (
	"encoding/json"

	"inkwell/internal/cache"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
//
// The global feed is the hottest read path, so rendered pages are cached in
// Redis as raw bytes for a short freshness window. Within that window every
// viewer sees the identical page; new posts appear once the entry expires.
// There is no active invalidation on this path.
func (s *Server) Index(c *fiber.Ctx) error {
	page := parsePage(c)
	key := cache.FeedPageKey(page)

	if s.redis != nil {
		if body, ok := cache.GetBytes(c.Context(), key); ok {
			observability.FeedCacheRequests.WithLabelValues("hit").Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}
		observability.FeedCacheRequests.WithLabelValues("miss").Inc()
	} else {
		observability.FeedCacheRequests.WithLabelValues("bypass").Inc()
	}

	feed, err := s.feedService.GlobalFeed(c.Context(), page)
	if err != nil {
		return respondServiceError(c, err)
	}

	body, err := json.Marshal(feed)
	if err != nil {
		return respondServiceError(c, err)
	}
	if s.redis != nil {
		cache.SetBytes(c.Context(), key, body, s.config.FeedCacheTTL())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GroupIndex handles GET /group/:slug
func (s *Server) GroupIndex(c *fiber.Ctx) error {
	slug := c.Params("slug")
	feed, err := s.feedService.GroupFeed(c.Context(), slug, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// Profile handles GET /profile/:username
func (s *Server) Profile(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	feed, err := s.feedService.AuthorFeed(c.Context(), c.Params("username"), parsePage(c), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}

// FollowIndex handles GET /follow, the feed of posts by followed authors.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	feed, err := s.feedService.FollowedFeed(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(feed)
}
