package server

import (
	"fmt"
	"net/http"
	"testing"

	"linkup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	srv, app, db := setupTestServer(t)

	_, creatorToken := createAccount(t, srv, db, "creator")
	guest, guestToken := createAccount(t, srv, db, "guest")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events", creatorToken, map[string]any{
		"title":       "Board games at Sierra",
		"description": "Casual evening, bring a friend",
		"place_name":  "Sierra Coffee",
		"emoji":       "🎲",
		"auto_accept": false,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var event models.Event
	decodeBody(t, resp, &event)
	require.NotEmpty(t, event.ID)

	t.Run("JoinQueuesRequest", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/join", guestToken, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status models.ParticipantStatus `json:"status"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, models.ParticipantStatusPending, body.Status)
	})

	t.Run("ParticipantsArePartitioned", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/events/"+event.ID+"/participants", creatorToken, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Going    []models.ParticipantWithUser `json:"going"`
			Requests []models.ParticipantWithUser `json:"requests"`
		}
		decodeBody(t, resp, &body)
		assert.Empty(t, body.Going)
		require.Len(t, body.Requests, 1)
		assert.Equal(t, guest.ID, body.Requests[0].User.ID)
	})

	t.Run("GuestCannotApprove", func(t *testing.T) {
		target := fmt.Sprintf("/api/events/%s/participants/%s", event.ID, guest.ID)
		resp, err := app.Test(jsonRequest(t, http.MethodPut, target, guestToken, map[string]string{"status": "approved"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("CreatorApproves", func(t *testing.T) {
		target := fmt.Sprintf("/api/events/%s/participants/%s", event.ID, guest.ID)
		resp, err := app.Test(jsonRequest(t, http.MethodPut, target, creatorToken, map[string]string{"status": "approved"}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/events/"+event.ID+"/participants", creatorToken, nil))
		require.NoError(t, err)

		var body struct {
			Going    []models.ParticipantWithUser `json:"going"`
			Requests []models.ParticipantWithUser `json:"requests"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Going, 1)
		assert.Empty(t, body.Requests)
	})

	t.Run("LeaveRemovesParticipation", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/leave", guestToken, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Joining again starts over as a pending request.
		resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/join", guestToken, nil))
		require.NoError(t, err)

		var body struct {
			Status models.ParticipantStatus `json:"status"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, models.ParticipantStatusPending, body.Status)
	})

	t.Run("GuestCannotDelete", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/events/"+event.ID, guestToken, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("CreatorDeletes", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/events/"+event.ID, creatorToken, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/events/"+event.ID, creatorToken, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestEventAutoAccept(t *testing.T) {
	srv, app, db := setupTestServer(t)

	_, creatorToken := createAccount(t, srv, db, "host")
	_, guestToken := createAccount(t, srv, db, "walkin")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events", creatorToken, map[string]any{
		"title":       "Morning run",
		"auto_accept": true,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var event models.Event
	decodeBody(t, resp, &event)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/join", guestToken, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status models.ParticipantStatus `json:"status"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, models.ParticipantStatusApproved, body.Status)
}

func TestCreateEventRejectsShortTitle(t *testing.T) {
	srv, app, db := setupTestServer(t)
	_, token := createAccount(t, srv, db, "host")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events", token, map[string]any{"title": "ab"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
