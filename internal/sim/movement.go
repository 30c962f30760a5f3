package sim

import (
	"math"

	"github.com/vertyco/botbattle/internal/geom"
)

const (
	// collisionFactor scales bot radius into the pairwise reject distance.
	collisionFactor = 2.2
	// wallMargin is added to bot radius for the arena clamp band.
	wallMargin = 40.0
	// wallEscapeDuration is how long an agent prioritizes getting off a wall.
	wallEscapeDuration = 0.5
	// rotationBoost is added to chassis rotation speed, deg/s.
	rotationBoost = 4.0
)

// applyMovement advances one agent toward desiredDeg at speedMult in [0,1].
// Turning and moving happen in the same step: the turn penalty slows the
// hull, it does not stop it. Position advances along the (updated) chassis
// orientation, not the desired direction, so low-agility hulls visibly
// swing wide.
func (s *Simulation) applyMovement(a *Agent, desiredDeg, speedMult float64) {
	speedMult = geom.Clamp(speedMult, 0, 1)
	diff := geom.WrapDeg180(desiredDeg - a.Orientation)
	ad := math.Abs(diff)

	penalty := math.Min(1, ad/90)
	factor := 1 - penalty*(1-a.Stats.Agility)
	// Floor keeps hulls from stalling mid-turn; the harder clamps below
	// deliberately dip under it.
	if factor < 0.25 {
		factor = 0.25
	}
	switch {
	case ad > 120:
		factor = math.Max(0.2, a.Stats.Agility*0.5)
	case a.Stats.Agility < 0.3 && ad > 60:
		factor = 0.15
	}

	a.TargetOrient = geom.WrapDeg360(desiredDeg)
	a.Orientation = geom.RotateToward(a.Orientation, desiredDeg, (a.Stats.RotationSpeed+rotationBoost)*s.dt)
	a.Turning = math.Abs(geom.WrapDeg180(a.TargetOrient-a.Orientation)) > 1

	speed := a.Stats.Speed * speedMult * factor
	a.Vel = geom.FromDeg(a.Orientation).Scale(speed)
	step := speed * s.dt
	if step <= 0 {
		a.Vel = geom.Vec2{}
		return
	}

	next := a.Pos.Add(geom.FromDeg(a.Orientation).Scale(step))
	if s.blockedByAgent(a, next) {
		// Full reject: no sliding, the hull just stops this tick.
		a.Vel = geom.Vec2{}
		return
	}
	a.Pos = next
	s.clampToArena(a)
}

// blockedByAgent reports whether pos would overlap any other living hull.
func (s *Simulation) blockedByAgent(a *Agent, pos geom.Vec2) bool {
	limit := s.cfg.BotRadius * collisionFactor
	for _, o := range s.agents {
		if o == a || !o.Alive {
			continue
		}
		if pos.Dist(o.Pos) < limit {
			return true
		}
	}
	return false
}

// clampToArena keeps the agent at least radius+40px from every wall. Any
// contact arms the wall-escape timer.
func (s *Simulation) clampToArena(a *Agent) {
	margin := s.cfg.BotRadius + wallMargin
	cx := geom.Clamp(a.Pos.X, margin, s.cfg.ArenaWidth-margin)
	cy := geom.Clamp(a.Pos.Y, margin, s.cfg.ArenaHeight-margin)
	if cx == a.Pos.X && cy == a.Pos.Y {
		return
	}
	a.Pos = geom.Vec2{X: cx, Y: cy}
	a.WallEscapeUntil = s.now + wallEscapeDuration
	a.LastWallContact = s.now
}

// arenaCenter is where wall-escape steering points.
func (s *Simulation) arenaCenter() geom.Vec2 {
	return geom.Vec2{X: s.cfg.ArenaWidth / 2, Y: s.cfg.ArenaHeight / 2}
}
