package server

import (
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/pagination"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type feedResponse struct {
	Posts []models.Post   `json:"posts"`
	Page  pagination.Page `json:"page"`
}

func seedPosts(t *testing.T, db *gorm.DB, author *models.User, n int) {
	t.Helper()
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		post := &models.Post{
			Text:    fmt.Sprintf("post %d", i+1),
			UserID:  author.ID,
			PubDate: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}
}

func TestIndexPagination(t *testing.T) {
	app, _, db := newTestServer(t)
	author := createUser(t, db, "prolific")
	seedPosts(t, db, author, 13)

	t.Run("First Page Is Full", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed feedResponse
		decodeBody(t, resp, &feed)
		assert.Len(t, feed.Posts, 10)
		assert.Equal(t, 1, feed.Page.Number)
		assert.Equal(t, 2, feed.Page.TotalPages)
		assert.True(t, feed.Page.HasNext)
		assert.False(t, feed.Page.HasPrev)
		// Newest first.
		assert.Equal(t, "post 13", feed.Posts[0].Text)
	})

	t.Run("Last Page Holds The Remainder", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/?page=2", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed feedResponse
		decodeBody(t, resp, &feed)
		assert.Len(t, feed.Posts, 3)
		assert.False(t, feed.Page.HasNext)
		assert.True(t, feed.Page.HasPrev)
		assert.Equal(t, "post 1", feed.Posts[2].Text)
	})

	t.Run("Out Of Range Clamps To Last Page", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/?page=99", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed feedResponse
		decodeBody(t, resp, &feed)
		assert.Equal(t, 2, feed.Page.Number)
		assert.Len(t, feed.Posts, 3)
	})

	t.Run("Below Range Clamps To First Page", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/?page=-4", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed feedResponse
		decodeBody(t, resp, &feed)
		assert.Equal(t, 1, feed.Page.Number)
	})
}

func TestGroupIndex(t *testing.T) {
	app, _, db := newTestServer(t)
	author := createUser(t, db, "writer")
	cats := &models.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, db.Create(cats).Error)

	require.NoError(t, db.Create(&models.Post{Text: "meow", UserID: author.ID, GroupID: &cats.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "off-topic", UserID: author.ID}).Error)

	t.Run("Only Group Posts", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/group/cats", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var feed struct {
			feedResponse
			Group models.Group `json:"group"`
		}
		decodeBody(t, resp, &feed)
		require.Len(t, feed.Posts, 1)
		assert.Equal(t, "meow", feed.Posts[0].Text)
		assert.Equal(t, "Cats", feed.Group.Title)
	})

	t.Run("Unknown Slug Is 404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/group/nope", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestProfile(t *testing.T) {
	app, s, db := newTestServer(t)
	author := createUser(t, db, "alice")
	viewer := createUser(t, db, "bob")
	seedPosts(t, db, author, 2)

	t.Run("Anonymous Viewer", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/profile/alice", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			feedResponse
			Author    models.User `json:"author"`
			PostCount int64       `json:"post_count"`
			Following *bool       `json:"following"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "alice", body.Author.Username)
		assert.Equal(t, int64(2), body.PostCount)
		assert.Len(t, body.Posts, 2)
		assert.Nil(t, body.Following)
	})

	t.Run("Authenticated Viewer Sees Follow State", func(t *testing.T) {
		req := jsonRequest(http.MethodGet, "/profile/alice", nil)
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, viewer))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Following *bool `json:"following"`
		}
		decodeBody(t, resp, &body)
		require.NotNil(t, body.Following)
		assert.False(t, *body.Following)
	})

	t.Run("Unknown User Is 404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/profile/ghost", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFollowIndexRequiresLogin(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/follow", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?next=%2Ffollow", resp.Header.Get("Location"))
}

func TestFollowIndexOnlyFollowedAuthors(t *testing.T) {
	app, s, db := newTestServer(t)
	reader := createUser(t, db, "reader")
	followed := createUser(t, db, "followed")
	stranger := createUser(t, db, "stranger")

	require.NoError(t, db.Create(&models.Post{Text: "from followed", UserID: followed.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "from stranger", UserID: stranger.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: followed.ID}).Error)

	req := jsonRequest(http.MethodGet, "/follow", nil)
	req.Header.Set("Authorization", "Bearer "+authToken(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed feedResponse
	decodeBody(t, resp, &feed)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "from followed", feed.Posts[0].Text)
}

func TestIndexCacheStaleness(t *testing.T) {
	app, s, db := newTestServer(t)
	author := createUser(t, db, "cachedwriter")
	seedPosts(t, db, author, 1)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(client)
	s.redis = client
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = client.Close()
	})

	readIndex := func() []byte {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return body
	}

	first := readIndex()

	// A new post does not appear while the cached page is fresh; the
	// response is byte-identical.
	require.NoError(t, db.Create(&models.Post{Text: "too new", UserID: author.ID}).Error)
	second := readIndex()
	assert.Equal(t, first, second)

	// Once the freshness window lapses the page is rebuilt.
	mr.FastForward(21 * time.Second)
	third := readIndex()
	assert.NotEqual(t, first, third)
	assert.Contains(t, string(third), "too new")
}
