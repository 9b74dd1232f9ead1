package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedCacheRequests counts global feed cache lookups by outcome (hit/miss/bypass).
	FeedCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_feed_cache_requests_total",
		Help: "Total number of global feed cache lookups by outcome",
	}, []string{"outcome"})

	// FollowMutations counts follow/unfollow operations by action and result.
	FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_follow_mutations_total",
		Help: "Total number of follow edge mutations by action and result",
	}, []string{"action", "result"})

	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts successfully created comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "Total number of comments created",
	})
)
