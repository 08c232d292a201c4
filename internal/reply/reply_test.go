package reply

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledNeverReplies(t *testing.T) {
	_, ok := Disabled{}.For("aisuluu", "hello?")
	assert.False(t, ok)
}

func TestCannedKnownPeer(t *testing.T) {
	c := NewCanned()
	c.rng = func(int) int { return 0 }

	r, ok := c.For("aisuluu", "want to grab coffee?")
	require.True(t, ok)
	assert.Equal(t, demoPools["aisuluu"][0], r.Body)
	assert.Equal(t, 2*time.Second, r.Delay)
}

func TestCannedUnknownPeerFallsBackToGeneric(t *testing.T) {
	c := NewCanned()
	c.rng = func(int) int { return 0 }

	r, ok := c.For("somebody-else", "hi")
	require.True(t, ok)
	assert.Equal(t, genericPool[0], r.Body)
}

func TestCannedDelayWindow(t *testing.T) {
	c := NewCanned()

	for i := 0; i < 50; i++ {
		r, ok := c.For("bermet", "hey")
		require.True(t, ok)
		assert.GreaterOrEqual(t, r.Delay, 2*time.Second)
		assert.Less(t, r.Delay, 4*time.Second)
	}
}

func TestRecognizes(t *testing.T) {
	c := NewCanned()

	assert.True(t, c.Recognizes("nurlan"))
	assert.False(t, c.Recognizes("somebody-else"))
}
