package repository

import (
	"context"
	"testing"

	"linkup/internal/database"
	"linkup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Participants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db, database.Capabilities{ParticipantStatus: true})
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")

	event := &models.Event{CreatorID: creator.ID, Title: "Coffee & chat"}
	require.NoError(t, repo.Create(ctx, event))

	t.Run("JoinIsUpsert", func(t *testing.T) {
		status, err := repo.UpsertParticipant(ctx, event.ID, joiner.ID, models.ParticipantStatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantStatusPending, status)

		// Second join converges on the existing row and reports its status.
		status, err = repo.UpsertParticipant(ctx, event.ID, joiner.ID, models.ParticipantStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantStatusPending, status)

		var count int64
		db.Model(&models.EventParticipant{}).
			Where("event_id = ? AND user_id = ?", event.ID, joiner.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ApproveThenRejoinKeepsApproved", func(t *testing.T) {
		require.NoError(t, repo.UpdateParticipantStatus(ctx, event.ID, joiner.ID, models.ParticipantStatusApproved))

		status, err := repo.UpsertParticipant(ctx, event.ID, joiner.ID, models.ParticipantStatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantStatusApproved, status)
	})

	t.Run("LeaveThenRejoinStartsFresh", func(t *testing.T) {
		require.NoError(t, repo.DeleteParticipant(ctx, event.ID, joiner.ID))

		p, err := repo.GetParticipant(ctx, event.ID, joiner.ID)
		require.NoError(t, err)
		assert.Nil(t, p)

		status, err := repo.UpsertParticipant(ctx, event.ID, joiner.ID, models.ParticipantStatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantStatusPending, status)
	})

	t.Run("LeaveNeverJoinedIsNoop", func(t *testing.T) {
		stranger := createTestUser(t, db, "stranger")
		assert.NoError(t, repo.DeleteParticipant(ctx, event.ID, stranger.ID))
	})

	t.Run("ListParticipantsIncludesSummary", func(t *testing.T) {
		participants, err := repo.ListParticipants(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, participants, 1)
		assert.Equal(t, joiner.ID, participants[0].User.ID)
		assert.Equal(t, "joiner", participants[0].User.Name)
	})
}

func TestEventRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db, database.Capabilities{ParticipantStatus: true})
	messageRepo := NewMessageRepository(db)
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")

	event := &models.Event{CreatorID: creator.ID, Title: "Board games night"}
	require.NoError(t, repo.Create(ctx, event))

	_, err := repo.UpsertParticipant(ctx, event.ID, joiner.ID, models.ParticipantStatusApproved)
	require.NoError(t, err)
	require.NoError(t, messageRepo.Create(ctx, &models.Message{
		EventID: event.ID, UserID: joiner.ID, Content: "I'm in!",
	}))

	require.NoError(t, repo.Delete(ctx, event.ID))

	_, err = repo.GetByID(ctx, event.ID)
	assert.True(t, models.IsNotFound(err))

	var participants, messages int64
	db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).Count(&participants)
	db.Model(&models.Message{}).Where("event_id = ?", event.ID).Count(&messages)
	assert.Zero(t, participants)
	assert.Zero(t, messages)
}

func TestEventRepository_WithoutStatusCapability(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db, database.Capabilities{ParticipantStatus: false})
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	joiner := createTestUser(t, db, "joiner")

	event := &models.Event{CreatorID: creator.ID, Title: "Evening run"}
	require.NoError(t, repo.Create(ctx, event))

	_, err := repo.UpsertParticipant(ctx, event.ID, joiner.ID, models.ParticipantStatusPending)
	require.NoError(t, err)

	// Without status tracking every stored participant reads as approved and
	// status writes are silent no-ops.
	p, err := repo.GetParticipant(ctx, event.ID, joiner.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, models.ParticipantStatusApproved, p.Status)

	assert.NoError(t, repo.UpdateParticipantStatus(ctx, event.ID, joiner.ID, models.ParticipantStatusRejected))

	participants, err := repo.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, models.ParticipantStatusApproved, participants[0].Status)
}

func TestEventRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db, database.Capabilities{ParticipantStatus: true})
	ctx := context.Background()

	creator := createTestUser(t, db, "creator")
	for _, title := range []string{"First", "Second", "Third"} {
		require.NoError(t, repo.Create(ctx, &models.Event{CreatorID: creator.ID, Title: title}))
	}

	events, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = repo.List(ctx, 50, 2)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
