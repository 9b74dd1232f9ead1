package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	app, s, db := newTestServer(t)
	author := createUser(t, db, "writer")
	commenter := createUser(t, db, "commenter")
	post := &models.Post{Text: "discuss", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)
	target := fmt.Sprintf("/posts/%d/comment", post.ID)

	t.Run("Anonymous Redirected To Login", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, target, map[string]string{
			"text": "sneaky",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusFound, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Success", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, target, map[string]string{
			"text": "well said",
		})
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, commenter))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), resp.Header.Get("Location"))

		var comment models.Comment
		decodeBody(t, resp, &comment)
		assert.Equal(t, "well said", comment.Text)
		assert.Equal(t, commenter.ID, comment.UserID)
		assert.Equal(t, post.ID, comment.PostID)
	})

	t.Run("Empty Text Rejected", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, target, map[string]string{
			"text": "  ",
		})
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, commenter))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Post Is 404", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/posts/999/comment", map[string]string{
			"text": "into the void",
		})
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, commenter))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
