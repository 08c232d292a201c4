package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is an event-scoped chat message. Immutable once created except for
// deletion; displayed ascending by created_at.
type Message struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EventID   string    `gorm:"not null;index;type:varchar(64)" json:"event_id"`
	UserID    string    `gorm:"not null;index;type:varchar(64)" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID when none is set.
func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
