package service

import (
	"context"
	"math"
	"time"

	"linkup/internal/models"
	"linkup/internal/repository"
)

// presenceWindow bounds how stale a location may be and still show on the map.
const presenceWindow = 24 * time.Hour

// NearbyUser is one entry of the map feed.
type NearbyUser struct {
	models.UserSummary
	Lat      float64    `json:"lat"`
	Lng      float64    `json:"lng"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// PresenceService maintains user locations and serves the map feed.
type PresenceService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewPresenceService returns a new PresenceService.
func NewPresenceService(userRepo repository.UserRepository) *PresenceService {
	return &PresenceService{userRepo: userRepo, now: time.Now}
}

// UpdateMyLocation records the caller's position and refreshes last_seen.
// Ghost mode wins over the reported coordinates: the stored position is
// nulled so no read path can leak it.
func (s *PresenceService) UpdateMyLocation(ctx context.Context, userID string, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return models.NewValidationError("Coordinates out of range")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	if user.IsGhost || user.Privacy.GhostMode {
		return s.userRepo.UpdateLocation(ctx, userID, nil, nil, now)
	}
	return s.userRepo.UpdateLocation(ctx, userID, &lat, &lng, now)
}

// GoGhost clears the caller's stored position and marks them hidden from the
// map until they report a location again with ghost mode off.
func (s *PresenceService) GoGhost(ctx context.Context, userID string, ghost bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.IsGhost = ghost
	user.Privacy.GhostMode = ghost
	if ghost {
		user.Latitude = nil
		user.Longitude = nil
	}
	return s.userRepo.Update(ctx, user)
}

// GetNearbyUsers returns everyone visible on the map: not the viewer, not in
// ghost mode, with a stored position seen within the presence window. Users
// who opted out of exact locations are coarsened to roughly a kilometer.
func (s *PresenceService) GetNearbyUsers(ctx context.Context, viewerID string) ([]NearbyUser, error) {
	since := s.now().Add(-presenceWindow)
	users, err := s.userRepo.GetNearby(ctx, viewerID, since)
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyUser, 0, len(users))
	for i := range users {
		u := &users[i]
		if u.Latitude == nil || u.Longitude == nil {
			continue
		}
		lat, lng := *u.Latitude, *u.Longitude
		if !u.Privacy.ShowExactLocation {
			lat = coarsen(lat)
			lng = coarsen(lng)
		}
		nearby = append(nearby, NearbyUser{
			UserSummary: u.Summary(),
			Lat:         lat,
			Lng:         lng,
			LastSeen:    u.LastSeen,
		})
	}
	return nearby, nil
}

// coarsen rounds a coordinate to two decimal places, about 1.1 km at the
// equator.
func coarsen(v float64) float64 {
	return math.Round(v*100) / 100
}
