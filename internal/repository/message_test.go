package repository

import (
	"context"
	"testing"
	"time"

	"linkup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	sender := createTestUser(t, db, "sender")

	event := &models.Event{CreatorID: creator.ID, Title: "Language exchange"}
	require.NoError(t, db.Create(event).Error)

	t.Run("CreateAttachesAuthor", func(t *testing.T) {
		msg := &models.Message{EventID: event.ID, UserID: sender.ID, Content: "hello everyone"}
		require.NoError(t, repo.Create(ctx, msg))
		require.NotNil(t, msg.User)
		assert.Equal(t, "sender", msg.User.Name)
	})

	t.Run("ListAscending", func(t *testing.T) {
		late := &models.Message{EventID: event.ID, UserID: sender.ID, Content: "second"}
		require.NoError(t, repo.Create(ctx, late))
		require.NoError(t, db.Model(late).Update("created_at", time.Now().Add(time.Minute)).Error)

		messages, err := repo.ListByEvent(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "hello everyone", messages[0].Content)
		assert.Equal(t, "second", messages[1].Content)
	})

	t.Run("Delete", func(t *testing.T) {
		msg := &models.Message{EventID: event.ID, UserID: sender.ID, Content: "oops"}
		require.NoError(t, repo.Create(ctx, msg))
		require.NoError(t, repo.Delete(ctx, msg.ID))

		_, err := repo.GetByID(ctx, msg.ID)
		assert.True(t, models.IsNotFound(err))
	})
}
