package seed

import (
	"time"

	"linkup/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Demo counterpart profiles. Their IDs are stable so the canned DM reply
// pools can address them, and re-seeding is idempotent.
var demoProfiles = []models.User{
	{
		ID:        "aisuluu",
		Email:     "aisuluu@demo.linkup.local",
		Name:      "Aisuluu",
		AvatarURL: "https://i.pravatar.cc/150?u=aisuluu",
		Bio:       "Coffee enthusiast. Always up for a walk in the park.",
		Age:       24,
		Vibe:      "chatty",
		Languages: models.StringList{"ky", "ru", "en"},
		Interests: models.StringList{"coffee", "hiking", "photography"},
	},
	{
		ID:        "bermet",
		Email:     "bermet@demo.linkup.local",
		Name:      "Bermet",
		AvatarURL: "https://i.pravatar.cc/150?u=bermet",
		Bio:       "Yoga, books and late dinners.",
		Age:       27,
		Vibe:      "chill",
		Languages: models.StringList{"ky", "ru"},
		Interests: models.StringList{"yoga", "books"},
	},
	{
		ID:        "nurlan",
		Email:     "nurlan@demo.linkup.local",
		Name:      "Nurlan",
		AvatarURL: "https://i.pravatar.cc/150?u=nurlan",
		Bio:       "Football on weekends, plov every day.",
		Age:       29,
		Vibe:      "open",
		Languages: models.StringList{"ky", "ru"},
		Interests: models.StringList{"football", "cooking"},
	},
}

// DemoIdentities upserts the demo counterpart profiles with a position near
// the city center so they show up on the map immediately.
func DemoIdentities(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	now := time.Now()
	offsets := [][2]float64{{0.004, -0.002}, {-0.006, 0.005}, {0.002, 0.008}}

	for i := range demoProfiles {
		profile := demoProfiles[i]
		lat := baseLat + offsets[i%len(offsets)][0]
		lng := baseLng + offsets[i%len(offsets)][1]

		profile.PasswordHash = string(hashed)
		profile.Latitude = &lat
		profile.Longitude = &lng
		profile.LastSeen = &now
		profile.Privacy = models.PrivacySettings{ShowExactLocation: true, AllowCheckIns: true}

		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
			return err
		}
	}
	return nil
}
