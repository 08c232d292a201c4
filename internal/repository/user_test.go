package repository

import (
	"context"
	"testing"
	"time"

	"linkup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")

	user, err := repo.GetByEmail(ctx, "alice@test.local")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Name)

	// Absent account is (nil, nil), not an error.
	user, err = repo.GetByEmail(ctx, "nobody@test.local")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "Alice")
	createTestUser(t, db, "Alicia")
	createTestUser(t, db, "Bob")

	results, err := repo.Search(ctx, "ali", alice.ID, 50)
	require.NoError(t, err)
	require.Len(t, results, 1, "match is case-insensitive and excludes the caller")
	assert.Equal(t, "Alicia", results[0].Name)
}

func TestUserRepository_UpdateLocation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	lat, lng := 42.87, 74.59

	require.NoError(t, repo.UpdateLocation(ctx, alice.ID, &lat, &lng, time.Now()))

	stored, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Latitude)
	assert.InDelta(t, lat, *stored.Latitude, 0.0001)
	assert.NotNil(t, stored.LastSeen)

	t.Run("NilCoordinatesClearPosition", func(t *testing.T) {
		require.NoError(t, repo.UpdateLocation(ctx, alice.ID, nil, nil, time.Now()))

		stored, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Latitude)
		assert.Nil(t, stored.Longitude)
	})

	t.Run("UnknownUserIsNotFound", func(t *testing.T) {
		err := repo.UpdateLocation(ctx, "missing", &lat, &lng, time.Now())
		assert.True(t, models.IsNotFound(err))
	})
}

func TestUserRepository_GetNearby(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	lat, lng := 42.87, 74.59
	now := time.Now()
	stale := now.Add(-48 * time.Hour)

	viewer := createTestUser(t, db, "viewer")
	visible := createTestUser(t, db, "visible")
	ghost := createTestUser(t, db, "ghost")
	noCoords := createTestUser(t, db, "nocoords")
	staleUser := createTestUser(t, db, "stale")

	require.NoError(t, db.Model(visible).Updates(map[string]any{
		"latitude": lat, "longitude": lng, "last_seen": now,
	}).Error)
	require.NoError(t, db.Model(ghost).Updates(map[string]any{
		"latitude": lat, "longitude": lng, "last_seen": now, "is_ghost": true,
	}).Error)
	require.NoError(t, db.Model(noCoords).Updates(map[string]any{
		"last_seen": now,
	}).Error)
	require.NoError(t, db.Model(staleUser).Updates(map[string]any{
		"latitude": lat, "longitude": lng, "last_seen": stale,
	}).Error)
	require.NoError(t, db.Model(viewer).Updates(map[string]any{
		"latitude": lat, "longitude": lng, "last_seen": now,
	}).Error)

	nearby, err := repo.GetNearby(ctx, viewer.ID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "visible", nearby[0].Name)
}
