package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipantStatus is the approval state of a user on an event.
type ParticipantStatus string

const (
	// ParticipantStatusPending means the join request awaits the creator.
	ParticipantStatusPending ParticipantStatus = "pending"
	// ParticipantStatusApproved means the user is going.
	ParticipantStatusApproved ParticipantStatus = "approved"
	// ParticipantStatusRejected means the creator turned the request down.
	ParticipantStatusRejected ParticipantStatus = "rejected"
)

// Valid reports whether s is one of the known participant statuses.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantStatusPending, ParticipantStatusApproved, ParticipantStatusRejected:
		return true
	}
	return false
}

// Event is a user-created meetup with a place and a join policy. Mutable and
// deletable only by its creator; deletion cascades to participants and
// messages.
type Event struct {
	ID            string   `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatorID     string   `gorm:"not null;index;type:varchar(64)" json:"creator_id"`
	Title         string   `gorm:"not null;type:varchar(255)" json:"title"`
	Description   string   `gorm:"type:text" json:"description"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	PlaceName     string   `gorm:"type:varchar(255)" json:"place_name"`
	Emoji         string   `gorm:"type:varchar(16)" json:"emoji"`
	AutoAccept    bool     `gorm:"default:false" json:"auto_accept"`
	CoverImageURL string   `json:"cover_image_url"`

	CreatedAt time.Time `json:"created_at"`

	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}

// BeforeCreate assigns a UUID when none is set.
func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EventParticipant is the (event, user) relationship row. The composite
// primary key guarantees at most one row per pair; joining again is an
// upsert, never a second row.
type EventParticipant struct {
	EventID  string            `gorm:"primaryKey;type:varchar(64)" json:"event_id"`
	UserID   string            `gorm:"primaryKey;type:varchar(64)" json:"user_id"`
	Status   ParticipantStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	JoinedAt time.Time         `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (EventParticipant) TableName() string {
	return "event_participants"
}

// ParticipantWithUser pairs a participant status with the user's profile
// summary for the Requests / Going sections.
type ParticipantWithUser struct {
	User     UserSummary       `json:"user"`
	Status   ParticipantStatus `json:"status"`
	JoinedAt time.Time         `json:"joined_at"`
}
