package sim

import (
	"math"

	"github.com/vertyco/botbattle/internal/geom"
)

// Projectile speed multipliers by type tag, relative to the configured
// base projectile speed. Unknown tags fall through to bullet.
var projectileSpeedMult = map[string]float64{
	"laser":     2.0,
	"cannon":    0.65,
	"missile":   0.8,
	"heal":      1.8,
	"shockwave": 2.5,
	"bullet":    1.0,
}

const (
	cosmeticTTL     = 0.15
	blockRadiusMult = 1.2
	aimConeBase     = 10.0
	aimConePerIntel = 3.0
)

// trackTurret rotates the weapon mount toward the current target. The
// mount tracks independently of the chassis, at its own speed.
func (s *Simulation) trackTurret(a *Agent) {
	desired := a.Orientation
	if tgt := s.byID[a.TargetID]; tgt != nil && tgt.Alive {
		desired = a.Pos.AngleDeg(tgt.Pos)
	}
	a.WeaponOrient = geom.RotateToward(a.WeaponOrient, desired, a.Stats.TurretRotSpeed*s.dt)
}

// tryFire resolves at most one shot for the agent this tick.
func (s *Simulation) tryFire(a *Agent) {
	if a.Stats.ShotsPerSecond <= 0 {
		return // weapon never becomes ready
	}
	if s.now-a.LastShot < 1/a.Stats.ShotsPerSecond {
		return
	}
	tgt := s.byID[a.TargetID]
	if tgt == nil || !tgt.Alive {
		return
	}
	dist := a.Pos.Dist(tgt.Pos)
	if dist > a.Stats.MaxRange {
		return
	}
	if !a.Stats.PointBlank && dist < a.Stats.MinRange {
		return
	}
	bearing := a.Pos.AngleDeg(tgt.Pos)
	cone := aimConeBase + a.Stats.Intelligence*aimConePerIntel
	if math.Abs(geom.WrapDeg180(bearing-a.WeaponOrient)) > cone {
		return
	}
	if !a.Stats.Healer && !s.clearLineOfFire(a, tgt) {
		return
	}

	a.LastShot = s.now
	s.emit(Event{Type: EventShot, Agent: a.ID, Target: tgt.ID})

	if a.Stats.PointBlank && dist < a.Stats.MuzzleOffset {
		// Contact resolution: no traveling projectile, only a cosmetic
		// puff at the target so renderers have something to draw.
		if a.Stats.Healer {
			s.applyHeal(a, tgt, a.Stats.Damage)
		} else {
			s.applyDamage(a, tgt, a.Stats.Damage, tgt.Team == a.Team)
		}
		s.projectiles = append(s.projectiles, &Projectile{
			Shooter:     a.ID,
			ShooterTeam: a.Team,
			TargetID:    tgt.ID,
			Pos:         tgt.Pos,
			Type:        a.Stats.Projectile,
			Heal:        a.Stats.Healer,
			Alive:       true,
			TTL:         cosmeticTTL,
			Cosmetic:    true,
		})
		return
	}

	dir := geom.FromDeg(a.WeaponOrient)
	mult, ok := projectileSpeedMult[a.Stats.Projectile]
	if !ok {
		mult = 1.0
	}
	s.projectiles = append(s.projectiles, &Projectile{
		Shooter:     a.ID,
		ShooterTeam: a.Team,
		TargetID:    tgt.ID,
		Pos:         a.Pos.Add(dir.Scale(a.Stats.MuzzleOffset)),
		Vel:         dir.Scale(s.cfg.ProjectileSpeed * mult),
		Damage:      a.Stats.Damage,
		Heal:        a.Stats.Healer,
		Alive:       true,
		Type:        a.Stats.Projectile,
		TTL:         -1,
	})
}

// clearLineOfFire suppresses the shot when a living teammate sits near the
// shooter→target segment on the near side of the target. A degenerate
// segment assumes no block.
func (s *Simulation) clearLineOfFire(a, tgt *Agent) bool {
	if a.Pos.DistSq(tgt.Pos) == 0 {
		return true
	}
	tgtDist := a.Pos.Dist(tgt.Pos)
	limit := s.cfg.BotRadius * blockRadiusMult
	for _, mate := range s.agents {
		if mate == a || !mate.Alive || mate.Team != a.Team {
			continue
		}
		d, _ := geom.PointSegDist(mate.Pos, a.Pos, tgt.Pos)
		if d < limit && a.Pos.Dist(mate.Pos) < tgtDist {
			return false
		}
	}
	return true
}

// applyDamage settles a damage hit. Friendly contact is a block: quarter
// damage, no stalemate reset, no kill credit.
func (s *Simulation) applyDamage(shooter, victim *Agent, amount float64, friendly bool) {
	if friendly {
		amount *= 0.25
		victim.Health = math.Max(0, victim.Health-amount)
		victim.DamageTaken += amount
		s.emit(Event{Type: EventBlocked, Agent: shooter.ID, Target: victim.ID, Amount: amount})
		if victim.Health <= 0 {
			victim.Alive = false
		}
		return
	}
	victim.Health = math.Max(0, victim.Health-amount)
	victim.DamageTaken += amount
	shooter.DamageDealt += amount
	s.stale.NoteEnemyDamage(s.now)
	s.emit(Event{Type: EventHit, Agent: shooter.ID, Target: victim.ID, Amount: amount})
	if victim.Health <= 0 {
		victim.Alive = false
		shooter.Kills++
		s.emit(Event{Type: EventKill, Agent: shooter.ID, Target: victim.ID})
	}
}

func (s *Simulation) applyHeal(healer, victim *Agent, amount float64) {
	if victim.Stats.MaxHealth <= 0 {
		return
	}
	before := victim.Health
	victim.Health = math.Min(victim.Stats.MaxHealth, victim.Health+amount)
	s.emit(Event{Type: EventHeal, Agent: healer.ID, Target: victim.ID, Amount: victim.Health - before})
}
