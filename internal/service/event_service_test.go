package service

import (
	"context"
	"testing"

	"linkup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEventRepo is a hand-written EventRepository stub backed by maps.
type stubEventRepo struct {
	events       map[string]*models.Event
	participants map[string]models.ParticipantStatus // key eventID+"/"+userID
	deleted      []string
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{
		events:       make(map[string]*models.Event),
		participants: make(map[string]models.ParticipantStatus),
	}
}

func (s *stubEventRepo) key(eventID, userID string) string { return eventID + "/" + userID }

func (s *stubEventRepo) Create(_ context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = "evt-" + event.Title
	}
	s.events[event.ID] = event
	return nil
}

func (s *stubEventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, models.NewNotFoundError("Event", id)
	}
	return event, nil
}

func (s *stubEventRepo) List(_ context.Context, _, _ int) ([]models.Event, error) {
	out := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, *e)
	}
	return out, nil
}

func (s *stubEventRepo) Update(_ context.Context, event *models.Event) error {
	s.events[event.ID] = event
	return nil
}

func (s *stubEventRepo) Delete(_ context.Context, id string) error {
	delete(s.events, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubEventRepo) UpsertParticipant(_ context.Context, eventID, userID string, status models.ParticipantStatus) (models.ParticipantStatus, error) {
	if existing, ok := s.participants[s.key(eventID, userID)]; ok {
		return existing, nil
	}
	s.participants[s.key(eventID, userID)] = status
	return status, nil
}

func (s *stubEventRepo) GetParticipant(_ context.Context, eventID, userID string) (*models.EventParticipant, error) {
	status, ok := s.participants[s.key(eventID, userID)]
	if !ok {
		return nil, nil
	}
	return &models.EventParticipant{EventID: eventID, UserID: userID, Status: status}, nil
}

func (s *stubEventRepo) UpdateParticipantStatus(_ context.Context, eventID, userID string, status models.ParticipantStatus) error {
	s.participants[s.key(eventID, userID)] = status
	return nil
}

func (s *stubEventRepo) DeleteParticipant(_ context.Context, eventID, userID string) error {
	delete(s.participants, s.key(eventID, userID))
	return nil
}

func (s *stubEventRepo) ListParticipants(_ context.Context, eventID string) ([]models.ParticipantWithUser, error) {
	out := make([]models.ParticipantWithUser, 0)
	for key, status := range s.participants {
		if len(key) > len(eventID) && key[:len(eventID)] == eventID {
			out = append(out, models.ParticipantWithUser{
				User:   models.UserSummary{ID: key[len(eventID)+1:]},
				Status: status,
			})
		}
	}
	return out, nil
}

// stubMessageRepo records nothing; event chat is not under test here.
type stubMessageRepo struct{}

func (stubMessageRepo) Create(context.Context, *models.Message) error { return nil }
func (stubMessageRepo) GetByID(context.Context, string) (*models.Message, error) {
	return nil, models.NewNotFoundError("Message", "")
}
func (stubMessageRepo) ListByEvent(context.Context, string) ([]models.Message, error) {
	return nil, nil
}
func (stubMessageRepo) Delete(context.Context, string) error { return nil }

func TestEventService_CreateEvent(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, stubMessageRepo{})
	ctx := context.Background()

	t.Run("RejectsShortTitle", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, "creator", CreateEventInput{Title: "  ab  "})
		require.Error(t, err)
		appErr := &models.AppError{}
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("CreatorIsNotEnrolled", func(t *testing.T) {
		event, err := svc.CreateEvent(ctx, "creator", CreateEventInput{Title: "Coffee & chat"})
		require.NoError(t, err)

		p, err := repo.GetParticipant(ctx, event.ID, "creator")
		require.NoError(t, err)
		assert.Nil(t, p, "creator must not be auto-enrolled")
	})
}

func TestEventService_JoinEvent(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, stubMessageRepo{})
	ctx := context.Background()

	open, err := svc.CreateEvent(ctx, "creator", CreateEventInput{Title: "Open event", AutoAccept: true})
	require.NoError(t, err)
	moderated, err := svc.CreateEvent(ctx, "creator", CreateEventInput{Title: "Moderated event"})
	require.NoError(t, err)

	t.Run("AutoAcceptApprovesDirectly", func(t *testing.T) {
		status, err := svc.JoinEvent(ctx, open.ID, "guest")
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantStatusApproved, status)
	})

	t.Run("ModeratedEventQueuesRequest", func(t *testing.T) {
		status, err := svc.JoinEvent(ctx, moderated.ID, "guest")
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantStatusPending, status)
	})

	t.Run("RepeatJoinReportsCurrentStatus", func(t *testing.T) {
		require.NoError(t, repo.UpdateParticipantStatus(ctx, moderated.ID, "guest", models.ParticipantStatusApproved))

		status, err := svc.JoinEvent(ctx, moderated.ID, "guest")
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantStatusApproved, status)
	})

	t.Run("UnknownEvent", func(t *testing.T) {
		_, err := svc.JoinEvent(ctx, "missing", "guest")
		assert.True(t, models.IsNotFound(err))
	})
}

func TestEventService_UpdateParticipantStatus(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, stubMessageRepo{})
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "creator", CreateEventInput{Title: "Moderated event"})
	require.NoError(t, err)
	_, err = svc.JoinEvent(ctx, event.ID, "guest")
	require.NoError(t, err)

	t.Run("OnlyCreatorDecides", func(t *testing.T) {
		err := svc.UpdateParticipantStatus(ctx, "guest", event.ID, "guest", models.ParticipantStatusApproved)
		require.Error(t, err)
		appErr := &models.AppError{}
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("PendingIsNotAnAllowedTarget", func(t *testing.T) {
		err := svc.UpdateParticipantStatus(ctx, "creator", event.ID, "guest", models.ParticipantStatusPending)
		require.Error(t, err)
	})

	t.Run("CreatorApproves", func(t *testing.T) {
		require.NoError(t, svc.UpdateParticipantStatus(ctx, "creator", event.ID, "guest", models.ParticipantStatusApproved))

		p, err := repo.GetParticipant(ctx, event.ID, "guest")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, models.ParticipantStatusApproved, p.Status)
	})
}

func TestEventService_CreatorOnlyMutations(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, stubMessageRepo{})
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "creator", CreateEventInput{Title: "Hiking trip"})
	require.NoError(t, err)

	_, err = svc.UpdateEvent(ctx, "intruder", event.ID, CreateEventInput{Title: "Hijacked"})
	require.Error(t, err)

	err = svc.DeleteEvent(ctx, "intruder", event.ID)
	require.Error(t, err)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.DeleteEvent(ctx, "creator", event.ID))
	assert.Equal(t, []string{event.ID}, repo.deleted)
}

func TestEventService_LeaveEvent(t *testing.T) {
	repo := newStubEventRepo()
	svc := NewEventService(repo, stubMessageRepo{})
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "creator", CreateEventInput{Title: "Pickup football", AutoAccept: true})
	require.NoError(t, err)

	_, err = svc.JoinEvent(ctx, event.ID, "guest")
	require.NoError(t, err)
	require.NoError(t, svc.LeaveEvent(ctx, event.ID, "guest"))

	// Leaving again, or without ever joining, stays silent.
	assert.NoError(t, svc.LeaveEvent(ctx, event.ID, "guest"))

	status, err := svc.JoinEvent(ctx, event.ID, "guest")
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantStatusApproved, status, "rejoin after leave starts fresh")
}
