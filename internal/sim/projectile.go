package sim

import (
	"github.com/vertyco/botbattle/internal/geom"
	"github.com/vertyco/botbattle/internal/mask"
)

// Projectile is owned by the simulation's projectile list and destroyed
// on hit resolution, TTL expiry, or leaving the arena.
type Projectile struct {
	Shooter     string
	ShooterTeam int
	TargetID    string
	Pos         geom.Vec2
	Vel         geom.Vec2
	Damage      float64
	Heal        bool
	Alive       bool
	Type        string
	TTL         float64 // seconds; negative = unbounded
	Cosmetic    bool    // render-only, never collides
}

// stepProjectiles advances every projectile one tick and resolves hits.
// Dead projectiles are compacted out before the frame is recorded, so a
// projectile that left the arena never appears in the next snapshot.
func (s *Simulation) stepProjectiles() {
	for _, p := range s.projectiles {
		if !p.Alive {
			continue
		}
		if p.TTL >= 0 {
			p.TTL -= s.dt
			if p.TTL <= 0 {
				p.Alive = false
				continue
			}
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(s.dt))
		if p.Pos.X < 0 || p.Pos.Y < 0 || p.Pos.X > s.cfg.ArenaWidth || p.Pos.Y > s.cfg.ArenaHeight {
			p.Alive = false
			continue
		}
		if p.Cosmetic {
			continue
		}
		s.resolveContact(p)
	}

	alive := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	s.projectiles = alive
}

func (s *Simulation) resolveContact(p *Projectile) {
	for _, a := range s.agents {
		if !a.Alive || a.ID == p.Shooter {
			continue
		}
		if !s.hitTest(p.Pos, a) {
			continue
		}
		friendly := a.Team == p.ShooterTeam
		if p.Heal {
			// Heals land on friendlies or the intended target and pass
			// through everyone else.
			if !friendly && a.ID != p.TargetID {
				continue
			}
			shooter := s.byID[p.Shooter]
			if shooter != nil {
				s.applyHeal(shooter, a, p.Damage)
			}
			p.Alive = false
			return
		}
		shooter := s.byID[p.Shooter]
		if shooter != nil {
			s.applyDamage(shooter, a, p.Damage, friendly)
		}
		p.Alive = false
		return
	}
}

// hitTest prefers the pixel silhouette and falls back to the circular
// radius when no mask exists for the plating.
func (s *Simulation) hitTest(pt geom.Vec2, a *Agent) bool {
	switch s.oracle.Query(a.Plating, a.Orientation, pt, a.Pos) {
	case mask.Hit:
		return true
	case mask.Miss:
		return false
	default:
		return pt.Dist(a.Pos) <= s.cfg.BotRadius
	}
}
