// Package service implements the business logic on top of the repositories.
package service

import (
	"context"
	"strings"

	"linkup/internal/models"
	"linkup/internal/repository"
)

// EventService owns events and the participant state machine: absent ->
// pending | approved (direct when the event auto-accepts) -> approved or
// rejected, with leave returning to absent.
type EventService struct {
	eventRepo   repository.EventRepository
	messageRepo repository.MessageRepository
}

// NewEventService returns a new EventService.
func NewEventService(eventRepo repository.EventRepository, messageRepo repository.MessageRepository) *EventService {
	return &EventService{eventRepo: eventRepo, messageRepo: messageRepo}
}

// CreateEventInput carries the creator-supplied event fields.
type CreateEventInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	PlaceName     string   `json:"place_name"`
	Emoji         string   `json:"emoji"`
	AutoAccept    bool     `json:"auto_accept"`
	CoverImageURL string   `json:"cover_image_url"`
}

// CreateEvent creates an event owned by creatorID. The creator is not
// auto-enrolled as a participant. The title is re-validated here even though
// the client enforces it too.
func (s *EventService) CreateEvent(ctx context.Context, creatorID string, input CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 {
		return nil, models.NewValidationError("Title must be at least 3 characters")
	}

	event := &models.Event{
		CreatorID:     creatorID,
		Title:         title,
		Description:   input.Description,
		Lat:           input.Lat,
		Lng:           input.Lng,
		PlaceName:     input.PlaceName,
		Emoji:         input.Emoji,
		AutoAccept:    input.AutoAccept,
		CoverImageURL: input.CoverImageURL,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, event.ID)
}

// GetEvent returns the event by ID.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

// ListEvents returns the event feed, newest first.
func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]models.Event, error) {
	return s.eventRepo.List(ctx, limit, offset)
}

// UpdateEvent applies creator-supplied changes. Only the creator may mutate
// an event.
func (s *EventService) UpdateEvent(ctx context.Context, callerID, eventID string, input CreateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatorID != callerID {
		return nil, models.NewUnauthorizedError("Only the event creator can edit the event")
	}

	title := strings.TrimSpace(input.Title)
	if len(title) < 3 {
		return nil, models.NewValidationError("Title must be at least 3 characters")
	}

	event.Title = title
	event.Description = input.Description
	event.Lat = input.Lat
	event.Lng = input.Lng
	event.PlaceName = input.PlaceName
	event.Emoji = input.Emoji
	event.AutoAccept = input.AutoAccept
	event.CoverImageURL = input.CoverImageURL
	event.Creator = nil

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

// JoinEvent registers userID on the event and returns the resulting status:
// approved when the event auto-accepts, pending otherwise. Joining twice,
// sequentially or concurrently, converges on a single row.
func (s *EventService) JoinEvent(ctx context.Context, eventID, userID string) (models.ParticipantStatus, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}

	status := models.ParticipantStatusPending
	if event.AutoAccept {
		status = models.ParticipantStatusApproved
	}
	return s.eventRepo.UpsertParticipant(ctx, eventID, userID, status)
}

// UpdateParticipantStatus lets the event creator approve or reject a join
// request. Repeated calls with the same status are safe no-ops.
func (s *EventService) UpdateParticipantStatus(ctx context.Context, callerID, eventID, participantID string, status models.ParticipantStatus) error {
	if status != models.ParticipantStatusApproved && status != models.ParticipantStatusRejected {
		return models.NewValidationError("Status must be approved or rejected")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatorID != callerID {
		return models.NewUnauthorizedError("Only the event creator can manage join requests")
	}

	return s.eventRepo.UpdateParticipantStatus(ctx, eventID, participantID, status)
}

// LeaveEvent removes userID from the event. Leaving an event never joined is
// a no-op.
func (s *EventService) LeaveEvent(ctx context.Context, eventID, userID string) error {
	return s.eventRepo.DeleteParticipant(ctx, eventID, userID)
}

// GetParticipants returns every participant with their profile summary and
// status; the caller partitions into Requests and Going.
func (s *EventService) GetParticipants(ctx context.Context, eventID string) ([]models.ParticipantWithUser, error) {
	return s.eventRepo.ListParticipants(ctx, eventID)
}

// DeleteEvent removes the event with all its participants and messages.
// Creator-only.
func (s *EventService) DeleteEvent(ctx context.Context, callerID, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatorID != callerID {
		return models.NewUnauthorizedError("Only the event creator can delete the event")
	}
	return s.eventRepo.Delete(ctx, eventID)
}
