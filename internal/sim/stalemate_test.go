package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStalemateEngagesAfterQuietPeriod(t *testing.T) {
	s := newTestSim(1)
	s.addAgent("a", 1)
	s.addAgent("e", 2, withPos(800, 350))

	s.now = 2.95
	s.updateStalemate()
	assert.Equal(t, StateNormal, s.stale.State())
	assert.Empty(t, s.events)

	s.now = 3.0
	s.updateStalemate()
	assert.Equal(t, StateStalemate, s.stale.State())
	require.Len(t, s.events, 1)
	assert.Equal(t, EventStalemate, s.events[0].Type)
}

func TestEnemyDamageClearsStalemate(t *testing.T) {
	s := newTestSim(1)
	s.stale.state = StateStalemate
	s.stale.NoteEnemyDamage(5)
	assert.Equal(t, StateNormal, s.stale.State())

	s.now = 7.9
	s.updateStalemate()
	assert.Equal(t, StateNormal, s.stale.State(), "clock restarted from the hit")
	s.now = 8.0
	s.updateStalemate()
	assert.Equal(t, StateStalemate, s.stale.State())
}

func TestDamageDuringDispersalKeepsCountdown(t *testing.T) {
	s := newTestSim(1)
	s.stale.state = StateDispersal
	s.stale.dispersalUntil = 15

	s.stale.NoteEnemyDamage(10)
	assert.Equal(t, StateDispersal, s.stale.State(), "dispersal always runs its full course")

	s.now = 14.95
	s.updateStalemate()
	assert.Equal(t, StateDispersal, s.stale.State())
	s.now = 15
	s.updateStalemate()
	assert.Equal(t, StateNormal, s.stale.State())
}

func TestDispersalNeedsBothClockAndCornerLock(t *testing.T) {
	s := newTestSim(1)
	s.addAgent("a", 1, withPos(300, 350))
	s.addAgent("e", 2, withPos(700, 350))
	s.stale.state = StateStalemate

	s.now = 9.0
	s.updateStalemate()
	assert.Equal(t, StateStalemate, s.stale.State(), "quiet but nobody is locked")

	// Pin both against walls.
	for _, a := range s.agents {
		a.LastWallContact = s.now - 0.2
	}
	s.updateStalemate()
	assert.Equal(t, StateDispersal, s.stale.State())
	assert.InDelta(t, s.now+dispersalDuration, s.stale.dispersalUntil, 1e-9)
	require.NotEmpty(t, s.events)
	assert.Equal(t, EventDispersal, s.events[len(s.events)-1].Type)
}

func TestDispersalClockNotEnoughBeforeNineSeconds(t *testing.T) {
	s := newTestSim(1)
	s.addAgent("a", 1, withPos(500, 350))
	s.addAgent("e", 2, withPos(530, 350)) // mutually inside min range
	s.stale.state = StateStalemate

	s.now = 8.9
	s.updateStalemate()
	assert.Equal(t, StateStalemate, s.stale.State())
	s.now = 9.0
	s.updateStalemate()
	assert.Equal(t, StateDispersal, s.stale.State())
}

func TestCornerLockedVariants(t *testing.T) {
	t.Run("mutual min range pair", func(t *testing.T) {
		s := newTestSim(1)
		s.addAgent("a", 1, withPos(500, 350))
		s.addAgent("e", 2, withPos(530, 350))
		assert.True(t, s.cornerLocked())
	})

	t.Run("teammates do not lock", func(t *testing.T) {
		s := newTestSim(1)
		s.addAgent("a", 1, withPos(500, 350))
		s.addAgent("b", 1, withPos(530, 350))
		assert.False(t, s.cornerLocked())
	})

	t.Run("one sided min range is not a lock", func(t *testing.T) {
		s := newTestSim(1)
		s.addAgent("a", 1, withPos(500, 350), withStats(func(st *Stats) {
			st.MinRange = 200
		}))
		s.addAgent("e", 2, withPos(600, 350)) // inside a's min, outside e's
		assert.False(t, s.cornerLocked())
	})

	t.Run("two walled agents", func(t *testing.T) {
		s := newTestSim(1)
		a := s.addAgent("a", 1, withPos(100, 350))
		e := s.addAgent("e", 2, withPos(900, 350))
		s.now = 10
		a.LastWallContact = 9.8
		e.LastWallContact = 9.7
		assert.True(t, s.cornerLocked())
	})

	t.Run("one walled agent is not enough", func(t *testing.T) {
		s := newTestSim(1)
		a := s.addAgent("a", 1, withPos(100, 350))
		s.addAgent("e", 2, withPos(900, 350))
		s.now = 10
		a.LastWallContact = 9.8
		assert.False(t, s.cornerLocked())
	})

	t.Run("dead agents are ignored", func(t *testing.T) {
		s := newTestSim(1)
		s.addAgent("a", 1, withPos(500, 350))
		e := s.addAgent("e", 2, withPos(530, 350))
		e.Alive = false
		assert.False(t, s.cornerLocked())
	})
}
