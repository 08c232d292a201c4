// Package notifications publishes domain events into Redis channels. Clients
// poll the HTTP API for state; the channels exist so sidecar consumers (push
// gateways, audit, future realtime transports) can observe activity without
// coupling to the request path.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/redis/go-redis/v9"

	"linkup/internal/middleware"
)

// Event names carried in published payloads.
const (
	EventFriendRequest     = "friend_request"
	EventFriendAccepted    = "friend_accepted"
	EventJoinRequest       = "event_join_request"
	EventParticipantStatus = "event_participant_status"
	EventChatMessage       = "event_chat_message"
	EventDMMessage         = "dm_message"
)

// Notifier publishes notifications into Redis channels. A Notifier built on a
// nil client is a no-op, so callers never have to branch on whether Redis is
// up.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// envelope is the wire shape of every published notification.
type envelope struct {
	Event string         `json:"event"`
	At    time.Time      `json:"at"`
	Data  map[string]any `json:"data,omitempty"`
}

// PublishUser sends an event to the user's personal channel.
func (n *Notifier) PublishUser(ctx context.Context, userID, event string, data map[string]any) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(envelope{Event: event, At: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	channel := fmt.Sprintf("notifications:user:%s", userID)
	return n.rdb.Publish(ctx, channel, string(payload)).Err()
}

// PublishEventChat sends an event to the channel of an event's chat room.
func (n *Notifier) PublishEventChat(ctx context.Context, eventID, event string, data map[string]any) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(envelope{Event: event, At: time.Now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	channel := fmt.Sprintf("notifications:event:%s", eventID)
	return n.rdb.Publish(ctx, channel, string(payload)).Err()
}

// StartPatternSubscriber subscribes to every notification channel and calls
// onMessage for each incoming message. The subscription runs until ctx is
// cancelled; a panicking handler is logged and does not kill the loop.
func (n *Notifier) StartPatternSubscriber(ctx context.Context, onMessage func(channel, payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*", "notifications:event:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in notification subscriber",
								"panic", r, "stack", string(debug.Stack()))
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
