package sim

// Target selection. Weapon agents hunt enemies inside a pursuit cap of
// 2×max_range; healers only ever consider living teammates below full
// health. Scores are minimized, with intelligence shaving the noise term
// toward zero (intelligence 10 picks perfectly).

const (
	targetRecheck    = 2.0 // seconds between voluntary re-evaluations
	pursuitCapFactor = 2.0
	healthNoiseScale = 20.0
	distNoiseScale   = 50.0
)

func (s *Simulation) updateTarget(a *Agent) {
	cur := s.byID[a.TargetID]
	valid := cur != nil && cur.Alive && s.validTarget(a, cur)
	if valid && s.now-a.LastTargetCheck < targetRecheck {
		return
	}
	a.LastTargetCheck = s.now
	a.TargetID = s.chooseTarget(a)
}

func (s *Simulation) validTarget(a, t *Agent) bool {
	if a.Stats.Healer {
		return t.Team == a.Team && t != a && t.Health < t.Stats.MaxHealth
	}
	return t.Team != a.Team && a.Pos.Dist(t.Pos) <= a.Stats.MaxRange*pursuitCapFactor
}

func (s *Simulation) candidates(a *Agent) []*Agent {
	var out []*Agent
	for _, o := range s.agents {
		if o == a || !o.Alive {
			continue
		}
		if s.validTarget(a, o) {
			out = append(out, o)
		}
	}
	return out
}

func (s *Simulation) chooseTarget(a *Agent) string {
	cands := s.candidates(a)
	if len(cands) == 0 {
		return ""
	}

	priority := a.Priority
	if priority == PriorityFocusFire {
		if id, ok := s.majorityTarget(a, cands); ok {
			return id
		}
		priority = PriorityWeakest
	}

	noise := func(k float64) float64 {
		return s.rng.Float64() * k * (10 - a.Stats.Intelligence) / 10
	}

	if priority == PriorityFurthest {
		// Prefer reachable distance before chasing across the arena.
		var near []*Agent
		for _, c := range cands {
			if a.Pos.Dist(c.Pos) <= a.Stats.MaxRange*1.5 {
				near = append(near, c)
			}
		}
		if len(near) > 0 {
			cands = near
		}
	}

	var best *Agent
	bestScore := 0.0
	for _, c := range cands {
		var score float64
		switch priority {
		case PriorityWeakest:
			score = c.Health + noise(healthNoiseScale)
		case PriorityStrongest:
			score = -c.Health + noise(healthNoiseScale)
		case PriorityFurthest:
			score = -a.Pos.Dist(c.Pos) + noise(distNoiseScale)
		default: // closest
			score = a.Pos.Dist(c.Pos) + noise(distNoiseScale)
		}
		if best == nil || score < bestScore {
			best, bestScore = c, score
		}
	}
	return best.ID
}

// majorityTarget returns the enemy most teammates are already shooting at,
// provided it is a valid candidate for a too.
func (s *Simulation) majorityTarget(a *Agent, cands []*Agent) (string, bool) {
	candSet := map[string]bool{}
	for _, c := range cands {
		candSet[c.ID] = true
	}
	votes := map[string]int{}
	for _, o := range s.agents {
		if o == a || !o.Alive || o.Team != a.Team {
			continue
		}
		if candSet[o.TargetID] {
			votes[o.TargetID]++
		}
	}
	bestID, bestVotes := "", 0
	// Iterate candidates, not the vote map, to keep ordering deterministic.
	for _, c := range cands {
		if v := votes[c.ID]; v > bestVotes {
			bestID, bestVotes = c.ID, v
		}
	}
	return bestID, bestVotes > 0
}
