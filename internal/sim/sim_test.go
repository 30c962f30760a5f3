package sim

import (
	"github.com/rs/zerolog"

	"github.com/vertyco/botbattle/internal/config"
	"github.com/vertyco/botbattle/internal/geom"
	"github.com/vertyco/botbattle/internal/mask"
	"github.com/vertyco/botbattle/internal/util"
)

// Shared fixtures. Unit tests build simulations by hand so they can place
// agents precisely; full-run tests go through New like callers do.

func testBattleConfig() config.BattleConfig {
	return config.BattleConfig{
		ArenaWidth:      1000,
		ArenaHeight:     700,
		FPS:             20,
		MaxDuration:     30,
		ProjectileSpeed: 400,
		BotRadius:       20,
	}
}

func newTestSim(seed int64) *Simulation {
	cfg := testBattleConfig()
	return &Simulation{
		cfg:    cfg,
		byID:   map[string]*Agent{},
		oracle: mask.NewOracle(),
		rng:    util.New(seed),
		log:    zerolog.Nop(),
		dt:     1 / float64(cfg.FPS),
	}
}

type agentOpt func(*Agent)

func withPos(x, y float64) agentOpt {
	return func(a *Agent) { a.Pos = geom.Vec2{X: x, Y: y} }
}

func withStats(mod func(*Stats)) agentOpt {
	return func(a *Agent) { mod(&a.Stats) }
}

func withBehavior(b Behavior) agentOpt {
	return func(a *Agent) { a.Behavior = b }
}

func withPriority(p TargetPriority) agentOpt {
	return func(a *Agent) { a.Priority = p }
}

// addAgent installs a ready-to-fight agent with forgiving defaults:
// instant turret, full agility, perfect intelligence (zero targeting
// noise) so tests stay predictable unless they opt into chaos.
func (s *Simulation) addAgent(id string, team int, opts ...agentOpt) *Agent {
	a := &Agent{
		ID:   id,
		Name: id,
		Team: team,
		Stats: Stats{
			MaxHealth:      100,
			Speed:          100,
			RotationSpeed:  720,
			TurretRotSpeed: 720,
			Intelligence:   10,
			Agility:        1,
			Damage:         10,
			ShotsPerSecond: 2,
			MinRange:       50,
			MaxRange:       300,
			MuzzleOffset:   22,
			Projectile:     "bullet",
		},
		Behavior:        BehaviorTactical,
		Priority:        PriorityClosest,
		RangeMode:       RangeAuto,
		Health:          100,
		Alive:           true,
		StrafeDir:       1,
		LastShot:        farPast,
		LastTargetCheck: farPast,
		LastWallContact: farPast,
		Pos:             geom.Vec2{X: 500, Y: 350},
	}
	for _, opt := range opts {
		opt(a)
	}
	s.agents = append(s.agents, a)
	s.byID[a.ID] = a
	return a
}

func testRoster() *config.RosterConfig {
	stats := func(behavior string) config.AgentDef {
		return config.AgentDef{
			Team: 1,
			Stats: config.StatsDef{
				MaxHealth:      100,
				Speed:          110,
				RotationSpeed:  240,
				TurretRotSpeed: 360,
				Intelligence:   6,
				Agility:        0.7,
				Damage:         12,
				ShotsPerSecond: 2,
				MinRange:       60,
				MaxRange:       320,
				MuzzleOffset:   22,
				Projectile:     "bullet",
			},
			Tactics: config.Tactics{Behavior: behavior, Priority: "closest", Range: "auto"},
		}
	}
	a := stats("aggressive")
	a.ID, a.Team = "red_1", 1
	b := stats("tactical")
	b.ID, b.Team = "red_2", 1
	c := stats("defensive")
	c.ID, c.Team = "blue_1", 2
	d := stats("kiting")
	d.ID, d.Team = "blue_2", 2
	return &config.RosterConfig{Agents: []config.AgentDef{a, b, c, d}}
}
