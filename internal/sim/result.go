package sim

// AgentStats is the per-agent line of the final result.
type AgentStats struct {
	FinalHealth float64 `json:"final_health"`
	MaxHealth   float64 `json:"max_health"`
	DamageDealt float64 `json:"damage_dealt"`
	DamageTaken float64 `json:"damage_taken"`
	Kills       int     `json:"kills"`
	Survived    bool    `json:"survived"`
}

// BattleResult is the entire boundary handed to renderers and callers.
// WinnerTeam 0 means a draw.
type BattleResult struct {
	RunID       string                `json:"run_id"`
	Seed        int64                 `json:"seed"`
	WinnerTeam  int                   `json:"winner_team"`
	TotalFrames int                   `json:"total_frames"`
	Duration    float64               `json:"duration"`
	PerAgent    map[string]AgentStats `json:"per_agent_stats"`
	Frames      []FrameSnapshot       `json:"frames,omitempty"`
}

func (s *Simulation) buildResult(includeFrames bool) *BattleResult {
	res := &BattleResult{
		RunID:       s.runID,
		Seed:        s.seed,
		WinnerTeam:  s.winner(),
		TotalFrames: s.frame,
		Duration:    s.now,
		PerAgent:    make(map[string]AgentStats, len(s.agents)),
	}
	for _, a := range s.agents {
		res.PerAgent[a.ID] = AgentStats{
			FinalHealth: a.Health,
			MaxHealth:   a.Stats.MaxHealth,
			DamageDealt: a.DamageDealt,
			DamageTaken: a.DamageTaken,
			Kills:       a.Kills,
			Survived:    a.Alive,
		}
	}
	if includeFrames {
		res.Frames = s.recorder.Frames()
	}
	return res
}

// winner picks by elimination first, total remaining health second, and
// calls anything closer than that a draw.
func (s *Simulation) winner() int {
	alive := map[int]int{}
	health := map[int]float64{}
	for _, a := range s.agents {
		if a.Alive {
			alive[a.Team]++
			health[a.Team] += a.Health
		}
	}
	switch {
	case alive[1] > 0 && alive[2] == 0:
		return 1
	case alive[2] > 0 && alive[1] == 0:
		return 2
	case alive[1] == 0 && alive[2] == 0:
		return 0
	}
	if health[1] > health[2] {
		return 1
	}
	if health[2] > health[1] {
		return 2
	}
	return 0
}
