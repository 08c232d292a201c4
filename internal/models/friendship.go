package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipStatus is the state of a friendship request.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a request awaiting the receiver.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an accepted friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	// FriendshipStatusRejected indicates a declined request.
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

// Friendship is directional while pending (requester -> receiver) and
// symmetric once accepted: queries must OR across both directions. The
// unique index on (requester_id, receiver_id) plus an existence check across
// both orders keeps the unordered pair unique.
type Friendship struct {
	ID          string           `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RequesterID string           `gorm:"not null;uniqueIndex:idx_friendships_pair;type:varchar(64)" json:"requester_id"`
	ReceiverID  string           `gorm:"not null;uniqueIndex:idx_friendships_pair;type:varchar(64)" json:"receiver_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Receiver  *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM.
func (Friendship) TableName() string {
	return "friendships"
}

// BeforeCreate assigns a UUID when none is set.
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// OtherParty returns the counterpart's ID relative to userID.
func (f *Friendship) OtherParty(userID string) string {
	if f.RequesterID == userID {
		return f.ReceiverID
	}
	return f.RequesterID
}

// FriendRequest is a pending request joined with the requester's summary.
type FriendRequest struct {
	ID        string      `json:"id"`
	Requester UserSummary `json:"requester"`
	CreatedAt time.Time   `json:"created_at"`
}
