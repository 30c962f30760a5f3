package sim

// StalemateState is the monitor's current mode.
type StalemateState int

const (
	StateNormal StalemateState = iota
	StateStalemate
	StateDispersal
)

const (
	stalemateAfter    = 3.0 // s without enemy damage before forced aggression
	dispersalAfter    = 9.0 // s without damage (and corner-lock) before dispersal
	dispersalDuration = 6.0 // s dispersal always runs, damage or not
	wallLockWindow    = 0.5 // s since wall contact that counts as "against a wall"
)

// StalemateMonitor tracks time since the last enemy hit and escalates:
// Normal → StalemateEngaged → DispersalEngaged → (timeout) → Normal.
type StalemateMonitor struct {
	state          StalemateState
	lastDamage     float64
	dispersalUntil float64
}

func (m *StalemateMonitor) State() StalemateState { return m.state }

// NoteEnemyDamage resets the damage clock and drops out of stalemate.
// An already-running dispersal keeps its countdown.
func (m *StalemateMonitor) NoteEnemyDamage(now float64) {
	m.lastDamage = now
	if m.state == StateStalemate {
		m.state = StateNormal
	}
}

// update advances the state machine at the top of each tick.
func (s *Simulation) updateStalemate() {
	m := &s.stale
	switch m.state {
	case StateDispersal:
		if s.now >= m.dispersalUntil {
			m.state = StateNormal
		}
	case StateStalemate:
		if s.now-m.lastDamage >= dispersalAfter && s.cornerLocked() {
			m.state = StateDispersal
			m.dispersalUntil = s.now + dispersalDuration
			s.emit(Event{Type: EventDispersal})
		}
	default:
		if s.now-m.lastDamage >= stalemateAfter {
			m.state = StateStalemate
			s.emit(Event{Type: EventStalemate})
		}
	}
}

// cornerLocked detects mutual deadlock: a pair of enemies standing inside
// each other's minimum range, or two or more agents pressed against walls
// at the same time.
func (s *Simulation) cornerLocked() bool {
	walled := 0
	for _, a := range s.agents {
		if !a.Alive {
			continue
		}
		if s.now-a.LastWallContact < wallLockWindow {
			walled++
		}
	}
	if walled >= 2 {
		return true
	}
	for i, a := range s.agents {
		if !a.Alive {
			continue
		}
		for _, b := range s.agents[i+1:] {
			if !b.Alive || b.Team == a.Team {
				continue
			}
			d := a.Pos.Dist(b.Pos)
			if d < a.Stats.MinRange && d < b.Stats.MinRange {
				return true
			}
		}
	}
	return false
}
