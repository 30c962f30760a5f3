package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vertyco/botbattle/internal/geom"
)

func TestMoveStraightFullSpeed(t *testing.T) {
	s := newTestSim(1)
	a := s.addAgent("a", 1, withPos(500, 350))
	a.Orientation = 0

	s.applyMovement(a, 0, 1)

	wantStep := a.Stats.Speed * s.dt
	assert.InDelta(t, 500+wantStep, a.Pos.X, 1e-9)
	assert.InDelta(t, 350, a.Pos.Y, 1e-9)
}

func TestTurnPenaltyFactors(t *testing.T) {
	tests := []struct {
		name       string
		agility    float64
		desired    float64 // orientation starts at 0
		wantFactor float64
	}{
		{"no turn no penalty", 0.5, 0, 1},
		{"90 deg half agility", 0.5, 90, 0.5},
		{"90 deg full agility", 1.0, 90, 1},
		{"low agility right angle", 0.1, 90, 0.15},
		{"low agility sharp turn", 0.2, 80, 0.15},
		{"facing away", 0.5, 150, 0.25}, // max(0.2, 0.5*0.5)
		{"facing away low agility", 0.1, 150, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(1)
			a := s.addAgent("a", 1, withPos(500, 350), withStats(func(st *Stats) {
				st.Agility = tt.agility
				st.RotationSpeed = 0 // isolate translation from rotation
			}))
			a.Orientation = 0

			s.applyMovement(a, tt.desired, 1)

			step := a.Pos.Dist(geom.Vec2{X: 500, Y: 350})
			// rotationBoost still turns the hull slightly; the advance
			// direction may differ from east, the magnitude is what the
			// penalty controls.
			want := a.Stats.Speed * tt.wantFactor * s.dt
			assert.InDelta(t, want, step, want*0.05+1e-9)
		})
	}
}

func TestAdvanceAlongCurrentOrientation(t *testing.T) {
	s := newTestSim(1)
	a := s.addAgent("a", 1, withPos(500, 350), withStats(func(st *Stats) {
		st.RotationSpeed = 40
	}))
	a.Orientation = 0

	// Ask for a 90 degree turn: the hull cannot complete it in one tick,
	// so the advance direction stays near east, not north.
	s.applyMovement(a, 90, 1)

	assert.Greater(t, a.Pos.X, 500.0)
	maxTurn := (40 + rotationBoost) * s.dt
	assert.InDelta(t, maxTurn, a.Orientation, 1e-9)
}

func TestRotationCapped(t *testing.T) {
	s := newTestSim(1)
	a := s.addAgent("a", 1, withStats(func(st *Stats) { st.RotationSpeed = 100 }))
	a.Orientation = 0

	s.applyMovement(a, 180, 0)

	assert.InDelta(t, (100+rotationBoost)*s.dt, a.Orientation, 1e-9)
	assert.True(t, a.Turning)
}

func TestWallClampArmsEscapeTimer(t *testing.T) {
	s := newTestSim(1)
	s.now = 10
	a := s.addAgent("a", 1, withPos(s.cfg.BotRadius+wallMargin+1, 350))
	a.Orientation = 180 // drive into the left wall

	s.applyMovement(a, 180, 1)

	assert.Equal(t, s.cfg.BotRadius+wallMargin, a.Pos.X)
	assert.Equal(t, 10+wallEscapeDuration, a.WallEscapeUntil)
	assert.Equal(t, 10.0, a.LastWallContact)
}

func TestPairwiseCollisionRejectsOutright(t *testing.T) {
	s := newTestSim(1)
	a := s.addAgent("a", 1, withPos(500, 350))
	s.addAgent("b", 2, withPos(500+s.cfg.BotRadius*collisionFactor+2, 350))
	a.Orientation = 0

	s.applyMovement(a, 0, 1)

	// Moving 5px east would close inside the reject distance: no sliding,
	// the hull stays exactly where it was.
	assert.Equal(t, geom.Vec2{X: 500, Y: 350}, a.Pos)
	assert.Equal(t, geom.Vec2{}, a.Vel)
}

func TestDeadAgentsDoNotBlock(t *testing.T) {
	s := newTestSim(1)
	a := s.addAgent("a", 1, withPos(500, 350))
	b := s.addAgent("b", 2, withPos(504, 350))
	b.Alive = false
	a.Orientation = 0

	s.applyMovement(a, 0, 1)
	assert.Greater(t, a.Pos.X, 500.0)
}

func TestMoveAndTurnConcurrently(t *testing.T) {
	s := newTestSim(1)
	a := s.addAgent("a", 1, withPos(500, 350), withStats(func(st *Stats) {
		st.Agility = 0.8
		st.RotationSpeed = 360
	}))
	a.Orientation = 0

	before := a.Pos
	s.applyMovement(a, 45, 1)

	// Both happened in the same tick.
	assert.NotEqual(t, before, a.Pos)
	assert.Greater(t, a.Orientation, 0.0)
	assert.False(t, math.IsNaN(a.Orientation))
}
