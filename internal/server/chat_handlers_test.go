package server

import (
	"net/http"
	"testing"

	"linkup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventChatFlow(t *testing.T) {
	srv, app, db := setupTestServer(t)

	_, creatorToken := createAccount(t, srv, db, "host")
	member, memberToken := createAccount(t, srv, db, "member")
	_, strangerToken := createAccount(t, srv, db, "stranger")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events", creatorToken, map[string]any{
		"title":       "Pub quiz",
		"auto_accept": true,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var event models.Event
	decodeBody(t, resp, &event)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/join", memberToken, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var msg models.Message

	t.Run("MemberPosts", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/messages", memberToken,
			map[string]string{"content": "Who is bringing the quiz sheets?"}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		decodeBody(t, resp, &msg)
		assert.Equal(t, member.ID, msg.UserID)
		require.NotNil(t, msg.User)
		assert.Equal(t, "member", msg.User.Name)
	})

	t.Run("MessagesListAscending", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/messages", creatorToken,
			map[string]string{"content": "I am."}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/events/"+event.ID+"/messages", memberToken, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Messages []models.Message `json:"messages"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "Who is bringing the quiz sheets?", body.Messages[0].Content)
	})

	t.Run("EmptyContentRejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/events/"+event.ID+"/messages", memberToken,
			map[string]string{"content": ""}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("StrangerCannotDelete", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete,
			"/api/events/"+event.ID+"/messages/"+msg.ID, strangerToken, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("CreatorModerates", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete,
			"/api/events/"+event.ID+"/messages/"+msg.ID, creatorToken, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
