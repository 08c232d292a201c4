// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a user account together with its profile. The profile is created
// automatically on signup and is mutable by its owner only; accounts are
// never hard-deleted.
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email        string `gorm:"uniqueIndex;not null;type:varchar(255)" json:"email"`
	PasswordHash string `gorm:"not null;type:varchar(255)" json:"-"`

	Name                 string          `gorm:"not null;type:varchar(255)" json:"name"`
	AvatarURL            string          `json:"avatar_url"`
	Bio                  string          `gorm:"type:text" json:"bio"`
	Age                  int             `json:"age"`
	Gender               string          `gorm:"type:varchar(32)" json:"gender"`
	Vibe                 string          `gorm:"type:varchar(32)" json:"vibe"` // chatty, chill, open, busy
	Languages            StringList      `json:"languages"`
	Interests            StringList      `json:"interests"`
	ConversationStarters StringList      `json:"conversation_starters"`
	FavoriteSpots        StringList      `json:"favorite_spots"`
	Privacy              PrivacySettings `json:"privacy"`

	// Presence. Coordinates are nulled while ghost mode is on so location is
	// genuinely unavailable at the data layer, not just hidden in the UI.
	IsGhost   bool       `gorm:"default:false;index" json:"is_ghost"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	LastSeen  *time.Time `gorm:"index" json:"last_seen"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an identity-provider style UUID when none is set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserSummary is the minimal profile projection embedded in participant
// lists, friend requests and search results.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Vibe      string `json:"vibe,omitempty"`
}

// Summary projects a User into its summary form.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Vibe:      u.Vibe,
	}
}
