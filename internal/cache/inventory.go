package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	GroupKeyPrefix    = "group:%s"
	FeedPageKeyPrefix = "feed:index:%d"
)

const (
	GroupTTL = 10 * time.Minute
	// DefaultFeedTTL bounds how stale a cached global feed page may be. The
	// feed cache is never actively invalidated; it expires.
	DefaultFeedTTL = 20 * time.Second
)

func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

func FeedPageKey(page int) string {
	return fmt.Sprintf(FeedPageKeyPrefix, page)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}
