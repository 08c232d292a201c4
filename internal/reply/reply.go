// Package reply decides whether a direct message gets an automatic answer
// from a simulated counterpart. The strategy is pluggable so production
// deployments can disable or replace it without touching the send path.
package reply

import (
	"math/rand"
	"time"
)

// Reply is a scheduled counterpart answer.
type Reply struct {
	Body  string
	Delay time.Duration
}

// Strategy produces an optional delayed reply for a message addressed to
// peerID. Implementations must be safe for concurrent use.
type Strategy interface {
	For(peerID, message string) (Reply, bool)
}

// Disabled never replies. This is the production default.
type Disabled struct{}

// For implements Strategy.
func (Disabled) For(string, string) (Reply, bool) {
	return Reply{}, false
}

// Canned answers for a fixed set of demo identities, drawing from a
// per-identity pool with a generic fallback, after a randomized 2-4 second
// delay. It stands in for a real second participant during demos.
type Canned struct {
	pools   map[string][]string
	generic []string
	rng     func(n int) int
}

// NewCanned builds the demo strategy with the built-in reply pools.
func NewCanned() *Canned {
	return &Canned{
		pools:   demoPools,
		generic: genericPool,
		rng:     rand.Intn,
	}
}

// Recognizes reports whether peerID is a demo identity with its own pool.
func (c *Canned) Recognizes(peerID string) bool {
	_, ok := c.pools[peerID]
	return ok
}

// For implements Strategy.
func (c *Canned) For(peerID, _ string) (Reply, bool) {
	pool, ok := c.pools[peerID]
	if !ok {
		pool = c.generic
	}
	if len(pool) == 0 {
		return Reply{}, false
	}

	body := pool[c.rng(len(pool))]
	delay := 2*time.Second + time.Duration(c.rng(2000))*time.Millisecond
	return Reply{Body: body, Delay: delay}, true
}

// Demo counterpart identities and their reply pools. IDs match the seeded
// demo profiles.
var demoPools = map[string][]string{
	"aisuluu": {
		"Hey! I was just thinking about grabbing coffee, you in?",
		"That sounds fun! Where exactly?",
		"I know a great spot near Panfilov park 😄",
		"Haha yes! What time works for you?",
		"Perfect, see you there!",
	},
	"bermet": {
		"Hi! Sorry, was at yoga. What's up?",
		"Ooh I love that place!",
		"Can we make it a bit later? Around 7?",
		"Sounds like a plan 🙌",
	},
	"nurlan": {
		"Salam! Long time no see.",
		"I'm near Osh bazaar right now, want to meet up?",
		"Let's do it. Bringing a friend, hope that's ok.",
		"👍",
	},
}

var genericPool = []string{
	"Hey, nice to hear from you!",
	"Sounds good 🙂",
	"Sure, when?",
	"Let me check and get back to you.",
}
