package sim

import (
	"math"

	"github.com/vertyco/botbattle/internal/geom"
)

// behaviorFunc maps the tick's tactical picture to a desired direction
// (degrees) and speed multiplier. One entry per behavior keeps each
// variant testable on its own.
type behaviorFunc func(s *Simulation, a, tgt *Agent, dist, bearing float64) (float64, float64)

var behaviorTable = map[Behavior]behaviorFunc{
	BehaviorAggressive: (*Simulation).behaveAggressive,
	BehaviorDefensive:  (*Simulation).behaveDefensive,
	BehaviorKiting:     (*Simulation).behaveKiting,
	BehaviorFlanker:    (*Simulation).behaveFlanker,
	BehaviorSniper:     (*Simulation).behaveSniper,
	BehaviorHold:       (*Simulation).behaveHold,
	BehaviorBerserker:  (*Simulation).behaveBerserker,
	BehaviorTactical:   (*Simulation).behaveTactical,
	BehaviorProtector:  (*Simulation).behaveProtector,
}

const (
	cornerPinWindow = 1.0 // seconds since wall contact that counts as cornered
	stalemateHold   = 0.0 // team-2 speed while holding under stalemate
)

// decide runs the fixed priority chain, then the behavior branch. ok=false
// means no movement intent this tick (the hull stands, turret still tracks).
func (s *Simulation) decide(a *Agent) (dir, speed float64, ok bool) {
	s.updateSteeringTimers(a)

	wallDir, wallActive := 0.0, false
	if s.now < a.WallEscapeUntil {
		wallDir = a.Pos.AngleDeg(s.arenaCenter())
		wallActive = true
	}

	// Dispersal overrides everything except that an active wall-escape
	// vector is blended in so nobody disperses straight into a wall.
	if s.stale.State() == StateDispersal {
		d := s.dispersalDirection(a)
		if wallActive {
			v := geom.FromDeg(d).Scale(0.7).Add(geom.FromDeg(wallDir).Scale(0.3))
			d = geom.Vec2{}.AngleDeg(v)
		}
		return d, 1, true
	}
	if wallActive {
		return wallDir, 1, true
	}

	tgt := s.byID[a.TargetID]
	if tgt == nil || !tgt.Alive {
		if a.Behavior == BehaviorProtector {
			return s.behaveProtectorIdle(a)
		}
		return 0, 0, false
	}
	dist := a.Pos.Dist(tgt.Pos)
	bearing := a.Pos.AngleDeg(tgt.Pos)

	// Inside min range nothing can fire; back straight out, harder the
	// deeper in we are.
	if !a.Stats.PointBlank && a.Stats.MinRange > 0 && dist < a.Stats.MinRange && a.Behavior != BehaviorProtector {
		urgency := 1 - dist/a.Stats.MinRange
		return bearing + 180, 0.5 + 0.5*urgency, true
	}

	if dist > a.Stats.MaxRange && a.Behavior != BehaviorProtector && a.Behavior != BehaviorHold {
		return bearing, 1, true
	}

	// Asymmetric stalemate break: team 1 charges, team 2 stands its ground.
	if s.stale.State() == StateStalemate {
		if a.Team == 1 {
			return bearing, 1, true
		}
		return bearing, stalemateHold, true
	}

	fn := behaviorTable[a.Behavior]
	if fn == nil {
		fn = (*Simulation).behaveTactical
	}
	dir, speed = fn(s, a, tgt, dist, bearing)
	return dir, speed, true
}

// updateSteeringTimers rolls the shared strafe and wander state. The draws
// happen for every agent every time they expire, in slice order, which
// keeps replays bit-stable for a fixed seed.
func (s *Simulation) updateSteeringTimers(a *Agent) {
	if s.now >= a.StrafeTimer {
		if s.rng.Float64() < 0.5 {
			a.StrafeDir = -1
		} else {
			a.StrafeDir = 1
		}
		a.StrafeTimer = s.now + 1.5 + s.rng.Float64()*1.5
	}
	if s.now >= a.WanderTimer {
		a.WanderAngle = (s.rng.Float64()*2 - 1) * 40
		a.WanderTimer = s.now + 0.4 + s.rng.Float64()*0.6
	}
}

// preferredRange resolves the stand-off distance for a behavior, or the
// explicit override when the roster pins one.
func (a *Agent) preferredRange() float64 {
	lo, hi := a.Stats.MinRange, a.Stats.MaxRange
	span := hi - lo
	switch a.RangeMode {
	case RangeClose:
		return lo + 0.10*span
	case RangeOptimal:
		return lo + 0.50*span
	case RangeMax:
		return lo + 0.95*span
	}
	switch a.Behavior {
	case BehaviorAggressive:
		return lo + 0.15*span
	case BehaviorDefensive:
		return lo + 0.95*span
	case BehaviorKiting:
		return lo + 0.775*span
	case BehaviorFlanker:
		return lo + 0.575*span
	case BehaviorSniper:
		return hi * 0.965
	default:
		return lo + 0.50*span
	}
}

func (s *Simulation) behaveAggressive(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	pref := a.preferredRange()
	optimalClose := a.Stats.MinRange * 1.15
	if optimalClose <= 0 {
		optimalClose = pref * 0.5
	}
	cornered := s.now-tgt.LastWallContact < cornerPinWindow
	switch {
	case dist < optimalClose:
		return bearing + 180, 0.6
	case cornered && dist < pref:
		// Pinned target: hold the cage instead of shoving them through us.
		return bearing + 180, 0.4
	default:
		return bearing, 1
	}
}

func (s *Simulation) behaveDefensive(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	pref := a.preferredRange()
	if s.now-a.LastWallContact < cornerPinWindow {
		// Cornered: slide along the wall instead of backing into it.
		return bearing + 90*a.StrafeDir, 1
	}
	if dist < pref {
		depth := 1 - dist/math.Max(pref, 1)
		return bearing + 180, geom.Clamp(0.4+0.6*depth, 0, 1)
	}
	return bearing, 0.1
}

func (s *Simulation) behaveKiting(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	pref := a.preferredRange()
	switch {
	case dist < pref*0.9:
		return bearing + 180, 1
	case dist > pref*1.1:
		return bearing, 0.7
	default:
		// Never plant the feet at preferred range.
		return bearing + 180 + 30*a.StrafeDir, 0.6
	}
}

func (s *Simulation) behaveFlanker(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	pref := a.preferredRange()
	tilt := 90.0
	if dist > pref*1.05 {
		tilt = 70 // spiral inward
	} else if dist < pref*0.95 {
		tilt = 110 // spiral outward
	}
	return bearing + tilt*a.StrafeDir, 0.9
}

func (s *Simulation) behaveSniper(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	pref := a.preferredRange()
	switch {
	case dist < pref*0.7:
		return bearing + 180, 1
	case dist < pref*0.97:
		return bearing + 180, 0.3
	default:
		return bearing, 0
	}
}

func (s *Simulation) behaveHold(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	// Stationary turret. Inch in only when the target drifts far outside
	// tolerance, otherwise just rotate to face.
	if dist > a.Stats.MaxRange*1.2 {
		return bearing, 0.3
	}
	return bearing, 0
}

func (s *Simulation) behaveBerserker(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	roll := s.rng.Float64()
	switch {
	case roll < 0.5:
		return bearing + a.WanderAngle, 1
	case roll < 0.8:
		return bearing + 90*a.StrafeDir + a.WanderAngle*0.5, 0.9
	default:
		return s.rng.Float64() * 360, 1
	}
}

func (s *Simulation) behaveTactical(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	pref := a.preferredRange()
	tol := math.Max(pref*0.15, 10)
	switch {
	case dist > pref+tol:
		return bearing + 15*a.StrafeDir, 0.8
	case dist < pref-tol:
		return bearing + 180 - 15*a.StrafeDir, 0.7
	default:
		return bearing + 40*a.StrafeDir, 0.5
	}
}

// behaveProtector stands between the most wounded ally and the enemy
// nearest to that ally, a fixed stand-off behind the ally.
func (s *Simulation) behaveProtector(a, tgt *Agent, dist, bearing float64) (float64, float64) {
	dir, speed, ok := s.protectPosition(a)
	if !ok {
		return s.behaveTactical(a, tgt, dist, bearing)
	}
	return dir, speed
}

func (s *Simulation) behaveProtectorIdle(a *Agent) (float64, float64, bool) {
	dir, speed, ok := s.protectPosition(a)
	return dir, speed, ok
}

func (s *Simulation) protectPosition(a *Agent) (float64, float64, bool) {
	ally := s.woundedAlly(a)
	if ally == nil {
		return 0, 0, false
	}
	enemy := s.nearestEnemyTo(a.Team, ally.Pos)

	standoff := math.Min(55, math.Max(a.Stats.MinRange*0.5, 40))
	ideal := ally.Pos
	if enemy != nil {
		away := ally.Pos.Sub(enemy.Pos).Norm()
		ideal = ally.Pos.Add(away.Scale(standoff))
	}

	maxFollow := math.Min(a.Stats.MaxRange*0.4, 150)
	d := a.Pos.Dist(ideal)
	if d < 4 {
		// In position; face the threat.
		if enemy != nil {
			return a.Pos.AngleDeg(enemy.Pos), 0, true
		}
		return a.Orientation, 0, true
	}
	speed := geom.Clamp(d/math.Max(maxFollow, 1), 0.2, 1)
	return a.Pos.AngleDeg(ideal), speed, true
}

// woundedAlly picks the living ally with the lowest health fraction,
// first found winning ties. Returns an ally even at full health so a
// protector always has someone to shadow.
func (s *Simulation) woundedAlly(a *Agent) *Agent {
	var best *Agent
	for _, o := range s.agents {
		if o == a || !o.Alive || o.Team != a.Team {
			continue
		}
		if best == nil || o.HealthFrac() < best.HealthFrac() {
			best = o
		}
	}
	return best
}

func (s *Simulation) nearestEnemyTo(team int, pos geom.Vec2) *Agent {
	var best *Agent
	bestD := 0.0
	for _, o := range s.agents {
		if !o.Alive || o.Team == team {
			continue
		}
		d := pos.Dist(o.Pos)
		if best == nil || d < bestD {
			best, bestD = o, d
		}
	}
	return best
}

// dispersalDirection points away from the weighted centroid of nearby
// agents, enemies counting double.
func (s *Simulation) dispersalDirection(a *Agent) float64 {
	const nearby = 300.0
	var sum geom.Vec2
	var weight float64
	for _, o := range s.agents {
		if o == a || !o.Alive {
			continue
		}
		d := a.Pos.Dist(o.Pos)
		if d > nearby {
			continue
		}
		w := 1.0
		if o.Team != a.Team {
			w = 2.0
		}
		sum = sum.Add(o.Pos.Scale(w))
		weight += w
	}
	if weight == 0 {
		// Nobody close: widen to everyone so there is always a direction.
		for _, o := range s.agents {
			if o == a || !o.Alive {
				continue
			}
			w := 1.0
			if o.Team != a.Team {
				w = 2.0
			}
			sum = sum.Add(o.Pos.Scale(w))
			weight += w
		}
	}
	if weight == 0 {
		return a.Pos.AngleDeg(s.arenaCenter())
	}
	centroid := sum.Scale(1 / weight)
	return centroid.AngleDeg(a.Pos)
}
