package server

import (
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	app, s, db := newTestServer(t)
	admin := createUser(t, db, "admin")
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)
	regular := createUser(t, db, "regular")

	t.Run("Admin Creates Group", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/groups/", map[string]string{
			"title": "Science",
			"slug":  "science",
		})
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, admin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var group models.Group
		decodeBody(t, resp, &group)
		assert.Equal(t, "science", group.Slug)
	})

	t.Run("Non-Admin Forbidden", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/groups/", map[string]string{
			"title": "Rogue",
			"slug":  "rogue",
		})
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, regular))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Reserved Slug Rejected", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/groups/", map[string]string{
			"title": "Sneaky",
			"slug":  "admin",
		})
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, admin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Duplicate Slug Rejected", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/groups/", map[string]string{
			"title": "Science Again",
			"slug":  "science",
		})
		req.Header.Set("Authorization", "Bearer "+authToken(t, s, admin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Listing Is Public", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/groups/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Groups []models.Group `json:"groups"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Groups, 1)
	})
}
