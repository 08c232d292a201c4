package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DMChat is a direct-message thread as seen by one user. A chat is addressed
// by the counterpart's user ID relative to the owner, so each side keeps its
// own local record. Peer display fields are denormalized at refresh time and
// are eventually consistent, not a live join.
type DMChat struct {
	OwnerID string `gorm:"primaryKey;type:varchar(64)" json:"owner_id"`
	PeerID  string `gorm:"primaryKey;type:varchar(64)" json:"peer_id"`

	PeerName   string `gorm:"type:varchar(255)" json:"peer_name"`
	PeerAvatar string `json:"peer_avatar"`
	PeerVibe   string `gorm:"type:varchar(32)" json:"peer_vibe"`

	LastMessage   string     `gorm:"type:varchar(64)" json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (DMChat) TableName() string {
	return "dm_chats"
}

// DMMessage is one direct message inside an owner's chat with a peer. The
// author snapshot (name/avatar/vibe) is captured at send time.
type DMMessage struct {
	ID       string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerID  string `gorm:"not null;index:idx_dm_messages_chat;type:varchar(64)" json:"owner_id"`
	PeerID   string `gorm:"not null;index:idx_dm_messages_chat;type:varchar(64)" json:"peer_id"`
	SenderID string `gorm:"not null;type:varchar(64)" json:"sender_id"`
	Content  string `gorm:"type:text;not null" json:"content"`

	SenderName   string `gorm:"type:varchar(255)" json:"sender_name"`
	SenderAvatar string `json:"sender_avatar"`
	SenderVibe   string `gorm:"type:varchar(32)" json:"sender_vibe"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (DMMessage) TableName() string {
	return "dm_messages"
}

// BeforeCreate assigns a UUID when none is set.
func (m *DMMessage) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
