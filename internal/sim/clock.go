package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/vertyco/botbattle/internal/config"
	"github.com/vertyco/botbattle/internal/geom"
	"github.com/vertyco/botbattle/internal/mask"
	"github.com/vertyco/botbattle/internal/util"
)

// Simulation owns all battle state for one run. It is not safe for
// concurrent mutation; run whole simulations in parallel instead, sharing
// only the mask oracle.
type Simulation struct {
	cfg    config.BattleConfig
	agents []*Agent
	byID   map[string]*Agent

	projectiles []*Projectile
	oracle      *mask.Oracle
	rng         *rand.Rand
	log         zerolog.Logger

	stale    StalemateMonitor
	recorder FrameRecorder
	events   []Event

	seed  int64
	runID string
	now   float64
	dt    float64
	frame int
}

// New builds a simulation from a validated roster. Agents spawn in two
// columns facing each other, spread evenly down their side of the arena.
func New(cfg config.BattleConfig, roster *config.RosterConfig, oracle *mask.Oracle, seed int64, logger zerolog.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil {
		oracle = mask.NewOracle()
	}

	s := &Simulation{
		cfg:    cfg,
		byID:   map[string]*Agent{},
		oracle: oracle,
		rng:    util.New(seed),
		log:    logger,
		seed:   seed,
		runID:  ksuid.New().String(),
		dt:     1 / float64(cfg.FPS),
	}

	var team1, team2 []*Agent
	for _, def := range roster.Agents {
		a := newAgent(def, cfg)
		s.agents = append(s.agents, a)
		s.byID[a.ID] = a
		if a.Team == 1 {
			team1 = append(team1, a)
		} else {
			team2 = append(team2, a)
		}
		if a.Plating != "" && !oracle.Has(a.Plating) {
			s.log.Debug().Str("agent", a.ID).Str("plating", a.Plating).
				Msg("no collision mask, falling back to circular hit test")
		}
	}
	s.placeColumn(team1, cfg.ArenaWidth*0.15, 0)
	s.placeColumn(team2, cfg.ArenaWidth*0.85, 180)
	return s, nil
}

func (s *Simulation) placeColumn(team []*Agent, x, facing float64) {
	margin := s.cfg.BotRadius + wallMargin
	for i, a := range team {
		y := s.cfg.ArenaHeight * float64(i+1) / float64(len(team)+1)
		a.Pos = geom.Vec2{
			X: geom.Clamp(x, margin, s.cfg.ArenaWidth-margin),
			Y: geom.Clamp(y, margin, s.cfg.ArenaHeight-margin),
		}
		a.Orientation = facing
		a.WeaponOrient = facing
		a.TargetOrient = facing
	}
}

// Run drives the fixed-timestep loop to termination. Cancellation is
// checked once per tick, between frames, so a canceled run never leaves a
// half-applied tick behind.
func (s *Simulation) Run(ctx context.Context) (*BattleResult, error) {
	return s.run(ctx, true)
}

// RunSummary is Run without retaining frame snapshots, for batch mode.
func (s *Simulation) RunSummary(ctx context.Context) (*BattleResult, error) {
	return s.run(ctx, false)
}

func (s *Simulation) run(ctx context.Context, keepFrames bool) (*BattleResult, error) {
	maxFrames := int(s.cfg.MaxDuration * float64(s.cfg.FPS))
	s.log.Debug().Str("run", s.runID).Int64("seed", s.seed).
		Int("agents", len(s.agents)).Int("max_frames", maxFrames).
		Msg("battle start")

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("battle %s: %w", s.runID, ctx.Err())
		default:
		}
		s.tick()
		if s.eliminated() || s.frame >= maxFrames {
			break
		}
	}

	res := s.buildResult(keepFrames)
	s.log.Debug().Str("run", s.runID).Int("winner", res.WinnerTeam).
		Int("frames", res.TotalFrames).Float64("duration", res.Duration).
		Msg("battle finished")
	return res, nil
}

// tick runs one fixed step in the load-bearing order: events cleared,
// stalemate state, targeting, movement, turret tracking, projectiles,
// firing, frame capture. Movement uses the target chosen this tick and
// firing uses the turret angle updated this tick.
func (s *Simulation) tick() {
	s.events = s.events[:0]
	s.updateStalemate()

	for _, a := range s.agents {
		if a.Alive {
			s.updateTarget(a)
		}
	}
	for _, a := range s.agents {
		if !a.Alive {
			continue
		}
		if dir, speed, ok := s.decide(a); ok {
			s.applyMovement(a, dir, speed)
		} else {
			a.Vel = geom.Vec2{}
		}
	}
	for _, a := range s.agents {
		if a.Alive {
			s.trackTurret(a)
		}
	}
	s.stepProjectiles()
	for _, a := range s.agents {
		if a.Alive {
			s.tryFire(a)
		}
	}

	s.recorder.Append(s.captureFrame())
	s.frame++
	s.now = float64(s.frame) * s.dt
}

func (s *Simulation) eliminated() bool {
	alive := map[int]int{}
	for _, a := range s.agents {
		if a.Alive {
			alive[a.Team]++
		}
	}
	return alive[1] == 0 || alive[2] == 0
}
