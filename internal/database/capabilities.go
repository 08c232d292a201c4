package database

import (
	"log/slog"

	"linkup/internal/middleware"
	"linkup/internal/models"

	"gorm.io/gorm"
)

// Capabilities records which optional schema features the connected store
// actually has. It is resolved once at startup instead of parsing backend
// error text per call, so code paths that depend on a column the store has
// not migrated yet can pick their fallback up front.
type Capabilities struct {
	// ParticipantStatus is true when event_participants carries the status
	// column. Older deployments without it report every participant as
	// approved.
	ParticipantStatus bool
}

// DetectCapabilities inspects the connected schema and returns the resolved
// capability set.
func DetectCapabilities(db *gorm.DB) Capabilities {
	caps := Capabilities{
		ParticipantStatus: db.Migrator().HasColumn(&models.EventParticipant{}, "status"),
	}
	if !caps.ParticipantStatus {
		middleware.Logger.Warn("event_participants.status column missing; treating all participants as approved",
			slog.Bool("participant_status", false))
	}
	return caps
}
