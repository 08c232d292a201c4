package repository

import (
	"context"
	"errors"

	"linkup/internal/database"
	"linkup/internal/models"
	"linkup/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository defines persistence operations for events and the
// participant state machine.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, limit, offset int) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	// Delete removes the event together with its participants and messages
	// in one transaction.
	Delete(ctx context.Context, id string) error

	// UpsertParticipant inserts the (event, user) row with the given status.
	// A conflicting row is left untouched and its current status returned,
	// so concurrent double-joins converge on one row.
	UpsertParticipant(ctx context.Context, eventID, userID string, status models.ParticipantStatus) (models.ParticipantStatus, error)
	// GetParticipant returns (nil, nil) when the user never joined.
	GetParticipant(ctx context.Context, eventID, userID string) (*models.EventParticipant, error)
	UpdateParticipantStatus(ctx context.Context, eventID, userID string, status models.ParticipantStatus) error
	// DeleteParticipant is a no-op when the row is absent.
	DeleteParticipant(ctx context.Context, eventID, userID string) error
	ListParticipants(ctx context.Context, eventID string) ([]models.ParticipantWithUser, error)
}

type eventRepository struct {
	db   *gorm.DB
	caps database.Capabilities
}

// NewEventRepository returns an EventRepository bound to db with the
// capability set detected at startup.
func NewEventRepository(db *gorm.DB, caps database.Capabilities) EventRepository {
	return &eventRepository{db: db, caps: caps}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Creator").First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, limit, offset int) ([]models.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var events []models.Event
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	ctx, span := observability.RepositorySpan(ctx, "DeleteEvent", "events")
	defer span.End()

	// All-or-nothing: a partially deleted event is a data-integrity
	// violation.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, "id = ?", id).Error
	})
	if err != nil {
		observability.RecordError(span, err)
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) UpsertParticipant(ctx context.Context, eventID, userID string, status models.ParticipantStatus) (models.ParticipantStatus, error) {
	participant := models.EventParticipant{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&participant)
	if res.Error != nil {
		return "", models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		return status, nil
	}

	// The row already existed; the duplicate join is a successful no-op and
	// reports whatever status the row holds.
	existing, err := r.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		// Lost a race with a concurrent leave; the join still counted.
		return status, nil
	}
	return existing.Status, nil
}

func (r *eventRepository) GetParticipant(ctx context.Context, eventID, userID string) (*models.EventParticipant, error) {
	var participant models.EventParticipant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	if !r.caps.ParticipantStatus {
		participant.Status = models.ParticipantStatusApproved
	}
	return &participant, nil
}

func (r *eventRepository) UpdateParticipantStatus(ctx context.Context, eventID, userID string, status models.ParticipantStatus) error {
	if !r.caps.ParticipantStatus {
		// Store predates status tracking; nothing to write.
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("status", status).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) DeleteParticipant(ctx context.Context, eventID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventParticipant{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) ListParticipants(ctx context.Context, eventID string) ([]models.ParticipantWithUser, error) {
	var participants []models.EventParticipant
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Find(&participants).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	out := make([]models.ParticipantWithUser, 0, len(participants))
	for _, p := range participants {
		status := p.Status
		if !r.caps.ParticipantStatus {
			// Degraded store without status tracking: everyone is going.
			status = models.ParticipantStatusApproved
		}
		entry := models.ParticipantWithUser{
			Status:   status,
			JoinedAt: p.JoinedAt,
		}
		if p.User != nil {
			entry.User = p.User.Summary()
		} else {
			entry.User = models.UserSummary{ID: p.UserID}
		}
		out = append(out, entry)
	}
	return out, nil
}
