package service

import (
	"context"

	"linkup/internal/models"
	"linkup/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo}
}

// SendFriendRequest creates a pending request from requesterID to
// receiverID. Self-requests fail; a request that already exists in either
// direction is an idempotent success.
func (s *FriendService) SendFriendRequest(ctx context.Context, requesterID, receiverID string) (*models.Friendship, error) {
	if requesterID == receiverID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetBetween(ctx, requesterID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Already requested or already friends; report the existing row.
		return existing, nil
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      models.FriendshipStatusPending,
	}
	created, err := s.friendRepo.CreateIfAbsent(ctx, friendship)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost a race with a duplicate submission; the winner's row stands.
		return s.friendRepo.GetBetween(ctx, requesterID, receiverID)
	}
	return friendship, nil
}

// GetFriendRequests returns pending requests addressed to receiverID, each
// with the requester's profile summary.
func (s *FriendService) GetFriendRequests(ctx context.Context, receiverID string) ([]models.FriendRequest, error) {
	friendships, err := s.friendRepo.GetPendingForReceiver(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	requests := make([]models.FriendRequest, 0, len(friendships))
	for _, f := range friendships {
		req := models.FriendRequest{
			ID:        f.ID,
			CreatedAt: f.CreatedAt,
		}
		if f.Requester != nil {
			req.Requester = f.Requester.Summary()
		} else {
			req.Requester = models.UserSummary{ID: f.RequesterID}
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// AcceptRequest marks the request accepted. Returns false when nothing
// changed: the request was already resolved or callerID is not its receiver.
// Callers must not assume success on false.
func (s *FriendService) AcceptRequest(ctx context.Context, callerID, friendshipID string) (bool, error) {
	return s.friendRepo.ResolveIfPending(ctx, friendshipID, callerID, models.FriendshipStatusAccepted)
}

// DeclineRequest marks the request rejected, with the same no-op semantics
// as AcceptRequest.
func (s *FriendService) DeclineRequest(ctx context.Context, callerID, friendshipID string) (bool, error) {
	return s.friendRepo.ResolveIfPending(ctx, friendshipID, callerID, models.FriendshipStatusRejected)
}

// GetMyFriends returns the profile summary of everyone userID is friends
// with, regardless of who sent the original request.
func (s *FriendService) GetMyFriends(ctx context.Context, userID string) ([]models.UserSummary, error) {
	users, err := s.friendRepo.GetFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// SearchUsers matches names case-insensitively by substring, excluding the
// caller, bounded to 50 results.
func (s *FriendService) SearchUsers(ctx context.Context, callerID, query string) ([]models.UserSummary, error) {
	users, err := s.userRepo.Search(ctx, query, callerID, 50)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// GetFriendshipStatuses batch-resolves the status between userID and each
// candidate so result lists render without N+1 lookups.
func (s *FriendService) GetFriendshipStatuses(ctx context.Context, userID string, candidateIDs []string) (map[string]models.FriendshipStatus, error) {
	return s.friendRepo.GetStatuses(ctx, userID, candidateIDs)
}
