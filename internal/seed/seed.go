// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"log"

	"linkup/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumEvents   int
	ShouldClean bool
}

// Run populates the database with generated users, events, participants and
// friendships. Intended for development environments only.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumEvents <= 0 {
		opts.NumEvents = 10
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("cleaning database: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}

	for i := 0; i < opts.NumEvents; i++ {
		creator := users[f.rng.Intn(len(users))]
		event, err := f.CreateEvent(creator)
		if err != nil {
			return fmt.Errorf("seeding event %d: %w", i, err)
		}
		if err := f.PopulateParticipants(event, users); err != nil {
			return fmt.Errorf("seeding participants for event %s: %w", event.ID, err)
		}
	}

	if err := f.WeaveFriendships(users); err != nil {
		return fmt.Errorf("seeding friendships: %w", err)
	}

	log.Printf("Seeded %d users and %d events", opts.NumUsers, opts.NumEvents)
	return nil
}

func clean(db *gorm.DB) error {
	// Children before parents.
	tables := []string{
		"dm_messages", "dm_chats", "messages", "event_participants",
		"friendships", "events", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
