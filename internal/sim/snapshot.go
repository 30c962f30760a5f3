package sim

// AgentView is the serializable per-agent slice of one frame.
type AgentView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Team         int     `json:"team"`
	Plating      string  `json:"plating,omitempty"`
	Weapon       string  `json:"weapon,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Orientation  float64 `json:"orientation"`
	WeaponOrient float64 `json:"weapon_orientation"`
	Health       float64 `json:"health"`
	MaxHealth    float64 `json:"max_health"`
	Alive        bool    `json:"alive"`
	TargetID     string  `json:"target,omitempty"`
}

// ProjectileView mirrors one projectile into a frame.
type ProjectileView struct {
	Shooter string  `json:"shooter"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Type    string  `json:"type,omitempty"`
	Heal    bool    `json:"heal,omitempty"`
	TTL     float64 `json:"ttl,omitempty"`
}

// FrameSnapshot is one tick's complete state. Created once, appended to
// the recorder, never mutated afterward.
type FrameSnapshot struct {
	Frame       int              `json:"frame"`
	Time        float64          `json:"time"`
	Agents      []AgentView      `json:"agents"`
	Projectiles []ProjectileView `json:"projectiles,omitempty"`
	Events      []Event          `json:"events,omitempty"`
}

// FrameRecorder collects the ordered, append-only frame sequence.
type FrameRecorder struct {
	frames []FrameSnapshot
}

func (r *FrameRecorder) Append(f FrameSnapshot) { r.frames = append(r.frames, f) }
func (r *FrameRecorder) Frames() []FrameSnapshot { return r.frames }

// captureFrame snapshots the simulation at the end of a tick.
func (s *Simulation) captureFrame() FrameSnapshot {
	f := FrameSnapshot{
		Frame:  s.frame,
		Time:   s.now,
		Agents: make([]AgentView, 0, len(s.agents)),
	}
	for _, a := range s.agents {
		f.Agents = append(f.Agents, AgentView{
			ID:           a.ID,
			Name:         a.Name,
			Team:         a.Team,
			Plating:      a.Plating,
			Weapon:       a.Weapon,
			X:            a.Pos.X,
			Y:            a.Pos.Y,
			Orientation:  a.Orientation,
			WeaponOrient: a.WeaponOrient,
			Health:       a.Health,
			MaxHealth:    a.Stats.MaxHealth,
			Alive:        a.Alive,
			TargetID:     a.TargetID,
		})
	}
	for _, p := range s.projectiles {
		if !p.Alive {
			continue
		}
		f.Projectiles = append(f.Projectiles, ProjectileView{
			Shooter: p.Shooter,
			X:       p.Pos.X,
			Y:       p.Pos.Y,
			VX:      p.Vel.X,
			VY:      p.Vel.Y,
			Type:    p.Type,
			Heal:    p.Heal,
			TTL:     p.TTL,
		})
	}
	if len(s.events) > 0 {
		f.Events = append([]Event(nil), s.events...)
	}
	return f
}
