package seed

import (
	"fmt"
	"math/rand"
	"time"

	"linkup/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Bishkek city center; generated users and events are scattered around it.
const (
	baseLat = 42.8746
	baseLng = 74.5698
)

var vibes = []string{"chatty", "chill", "open", "busy"}

var eventTemplates = []struct {
	Title     string
	Emoji     string
	PlaceName string
}{
	{"Coffee & chat", "☕", "Sierra Coffee"},
	{"Evening run", "🏃", "Panfilov Park"},
	{"Board games night", "🎲", "ZIQ Lounge"},
	{"Language exchange", "🗣️", "Bishkek Park"},
	{"Pickup football", "⚽", "Dolen Omurzakov Stadium"},
	{"Hiking trip", "🥾", "Ala-Archa"},
	{"Photography walk", "📷", "Osh Bazaar"},
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a generated user with a recent location near the city
// center. All seeded accounts share the same password for easy manual login.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	lat := baseLat + (f.rng.Float64()-0.5)*0.08
	lng := baseLng + (f.rng.Float64()-0.5)*0.08
	lastSeen := time.Now().Add(-time.Duration(f.rng.Intn(20)) * time.Hour)

	user := &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: string(hashed),
		Name:         gofakeit.FirstName(),
		AvatarURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Bio:          gofakeit.Sentence(8),
		Age:          18 + f.rng.Intn(30),
		Vibe:         vibes[f.rng.Intn(len(vibes))],
		Languages:    models.StringList{"ky", "ru", "en"}[:1+f.rng.Intn(3)],
		Interests:    models.StringList{gofakeit.Hobby(), gofakeit.Hobby()},
		Privacy: models.PrivacySettings{
			ShowExactLocation: f.rng.Intn(4) > 0,
			AllowCheckIns:     true,
		},
		Latitude:  &lat,
		Longitude: &lng,
		LastSeen:  &lastSeen,
	}
	for _, o := range overrides {
		o(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateEvent persists a generated event owned by creator, placed near the
// creator's own location.
func (f *Factory) CreateEvent(creator *models.User, overrides ...func(*models.Event)) (*models.Event, error) {
	tmpl := eventTemplates[f.rng.Intn(len(eventTemplates))]

	lat := baseLat + (f.rng.Float64()-0.5)*0.08
	lng := baseLng + (f.rng.Float64()-0.5)*0.08

	event := &models.Event{
		CreatorID:   creator.ID,
		Title:       tmpl.Title,
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Lat:         &lat,
		Lng:         &lng,
		PlaceName:   tmpl.PlaceName,
		Emoji:       tmpl.Emoji,
		AutoAccept:  f.rng.Intn(2) == 0,
	}
	for _, o := range overrides {
		o(event)
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// PopulateParticipants enrolls a random subset of users on the event, mixing
// approved attendees with pending requests on moderated events.
func (f *Factory) PopulateParticipants(event *models.Event, users []*models.User) error {
	count := 2 + f.rng.Intn(5)
	for _, i := range f.rng.Perm(len(users)) {
		if count == 0 {
			break
		}
		user := users[i]
		if user.ID == event.CreatorID {
			continue
		}
		count--

		status := models.ParticipantStatusApproved
		if !event.AutoAccept && f.rng.Intn(3) == 0 {
			status = models.ParticipantStatusPending
		}
		p := models.EventParticipant{
			EventID: event.ID,
			UserID:  user.ID,
			Status:  status,
		}
		if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// WeaveFriendships links users into a loose social mesh: each user sends a
// handful of requests, most of which are accepted.
func (f *Factory) WeaveFriendships(users []*models.User) error {
	for _, requester := range users {
		links := 1 + f.rng.Intn(3)
		for j := 0; j < links; j++ {
			receiver := users[f.rng.Intn(len(users))]
			if receiver.ID == requester.ID {
				continue
			}

			status := models.FriendshipStatusAccepted
			if f.rng.Intn(4) == 0 {
				status = models.FriendshipStatusPending
			}
			friendship := models.Friendship{
				RequesterID: requester.ID,
				ReceiverID:  receiver.ID,
				Status:      status,
			}
			if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&friendship).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
