package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkup/internal/config"
	"linkup/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "8480",
		JWTSecret:        "test-secret-that-is-long-enough-123",
		Env:              "test",
		SimulatedReplies: "off",
	}
}

// setupTestServer builds a Server on an in-memory database with routes
// mounted, without Redis.
func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventParticipant{},
		&models.Message{},
		&models.Friendship{},
		&models.DMChat{},
		&models.DMMessage{},
	))

	srv, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, db
}

// createAccount persists a user directly and returns it with a valid token.
func createAccount(t *testing.T, srv *Server, db *gorm.DB, name string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Email:        name + "@test.local",
		PasswordHash: "x",
		Name:         name,
	}
	require.NoError(t, db.Create(user).Error)

	token, err := srv.generateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
