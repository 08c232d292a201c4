package repository

import (
	"context"
	"testing"
	"time"

	"linkup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDMRepository_UpsertChat(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDMRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertChat(ctx, &models.DMChat{
		OwnerID: "me", PeerID: "aisuluu", PeerName: "Aisuluu",
	}))

	// Re-upserting refreshes the peer display fields without duplicating.
	require.NoError(t, repo.UpsertChat(ctx, &models.DMChat{
		OwnerID: "me", PeerID: "aisuluu", PeerName: "Aisuluu K.", PeerVibe: "chatty",
	}))

	var count int64
	db.Model(&models.DMChat{}).Count(&count)
	assert.Equal(t, int64(1), count)

	chat, err := repo.GetChat(ctx, "me", "aisuluu")
	require.NoError(t, err)
	require.NotNil(t, chat)
	assert.Equal(t, "Aisuluu K.", chat.PeerName)
	assert.Equal(t, "chatty", chat.PeerVibe)
}

func TestDMRepository_GetChatAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDMRepository(db)

	chat, err := repo.GetChat(context.Background(), "me", "nobody")
	require.NoError(t, err)
	assert.Nil(t, chat)
}

func TestDMRepository_ListChatsOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDMRepository(db)
	ctx := context.Background()

	for _, peer := range []string{"aisuluu", "bermet", "nurlan"} {
		require.NoError(t, repo.UpsertChat(ctx, &models.DMChat{OwnerID: "me", PeerID: peer}))
	}

	now := time.Now()
	require.NoError(t, repo.UpdatePreview(ctx, "me", "bermet", "hi", now.Add(-time.Hour)))
	require.NoError(t, repo.UpdatePreview(ctx, "me", "nurlan", "salam", now))

	chats, err := repo.ListChats(ctx, "me")
	require.NoError(t, err)
	require.Len(t, chats, 3)

	// Most recently active first; the never-messaged chat sorts last.
	assert.Equal(t, "nurlan", chats[0].PeerID)
	assert.Equal(t, "bermet", chats[1].PeerID)
	assert.Equal(t, "aisuluu", chats[2].PeerID)
}

func TestDMRepository_Messages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDMRepository(db)
	ctx := context.Background()

	first := &models.DMMessage{
		OwnerID: "me", PeerID: "aisuluu", SenderID: "me", Content: "hey",
		CreatedAt: time.Now().Add(-time.Minute),
	}
	second := &models.DMMessage{
		OwnerID: "me", PeerID: "aisuluu", SenderID: "aisuluu", Content: "hey yourself",
	}
	require.NoError(t, repo.CreateMessage(ctx, first))
	require.NoError(t, repo.CreateMessage(ctx, second))

	// A different chat of the same owner must not bleed in.
	require.NoError(t, repo.CreateMessage(ctx, &models.DMMessage{
		OwnerID: "me", PeerID: "bermet", SenderID: "me", Content: "other thread",
	}))

	messages, err := repo.ListMessages(ctx, "me", "aisuluu")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hey", messages[0].Content)
	assert.Equal(t, "hey yourself", messages[1].Content)
}
