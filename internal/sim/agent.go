package sim

import (
	"github.com/vertyco/botbattle/internal/config"
	"github.com/vertyco/botbattle/internal/geom"
)

// Behavior is the movement strategy an agent runs every tick.
type Behavior string

const (
	BehaviorAggressive Behavior = "aggressive"
	BehaviorDefensive  Behavior = "defensive"
	BehaviorTactical   Behavior = "tactical"
	BehaviorKiting     Behavior = "kiting"
	BehaviorHold       Behavior = "hold"
	BehaviorFlanker    Behavior = "flanker"
	BehaviorSniper     Behavior = "sniper"
	BehaviorBerserker  Behavior = "berserker"
	BehaviorProtector  Behavior = "protector"
)

// TargetPriority picks who an agent shoots at.
type TargetPriority string

const (
	PriorityWeakest   TargetPriority = "weakest"
	PriorityStrongest TargetPriority = "strongest"
	PriorityClosest   TargetPriority = "closest"
	PriorityFurthest  TargetPriority = "furthest"
	PriorityFocusFire TargetPriority = "focus_fire"
)

// RangeMode overrides the behavior's preferred stand-off distance.
type RangeMode string

const (
	RangeAuto    RangeMode = "auto"
	RangeClose   RangeMode = "close"
	RangeOptimal RangeMode = "optimal"
	RangeMax     RangeMode = "max"
)

// Stats are immutable for the duration of a battle.
type Stats struct {
	MaxHealth      float64
	Speed          float64 // px/s
	RotationSpeed  float64 // deg/s, chassis
	TurretRotSpeed float64 // deg/s, weapon mount
	Intelligence   float64 // 0..10
	Agility        float64 // 0..1
	Damage         float64 // per shot
	ShotsPerSecond float64
	MinRange       float64
	MaxRange       float64
	Healer         bool
	PointBlank     bool // original min_range was zero
	MuzzleOffset   float64
	Projectile     string
}

// Agent is one combat unit. Owned exclusively by its Simulation.
type Agent struct {
	ID      string
	Name    string
	Team    int
	Plating string
	Weapon  string

	Stats     Stats
	Behavior  Behavior
	Priority  TargetPriority
	RangeMode RangeMode

	Pos          geom.Vec2
	Vel          geom.Vec2
	Orientation  float64 // deg, chassis facing
	WeaponOrient float64
	TargetOrient float64
	Turning      bool

	Health float64
	Alive  bool

	LastShot        float64
	TargetID        string
	LastTargetCheck float64

	StrafeDir   float64
	StrafeTimer float64
	WanderAngle float64
	WanderTimer float64

	WallEscapeUntil float64
	LastWallContact float64

	DamageDealt float64
	DamageTaken float64
	Kills       int
}

const farPast = -1e9

// newAgent resolves a spawn descriptor against the battle config. The
// point-blank flag derives from the descriptor's original min_range; the
// effective min_range of everyone else is floored to the collision
// diameter so two hulls can never legally sit inside it.
func newAgent(def config.AgentDef, bc config.BattleConfig) *Agent {
	st := Stats{
		MaxHealth:      def.Stats.MaxHealth,
		Speed:          def.Stats.Speed,
		RotationSpeed:  def.Stats.RotationSpeed,
		TurretRotSpeed: def.Stats.TurretRotSpeed,
		Intelligence:   geom.Clamp(def.Stats.Intelligence, 0, 10),
		Agility:        geom.Clamp(def.Stats.Agility, 0, 1),
		Damage:         def.Stats.Damage,
		ShotsPerSecond: def.Stats.ShotsPerSecond,
		MinRange:       def.Stats.MinRange,
		MaxRange:       def.Stats.MaxRange,
		Healer:         def.Stats.Healer,
		PointBlank:     def.Stats.MinRange == 0,
		MuzzleOffset:   def.Stats.MuzzleOffset,
		Projectile:     def.Stats.Projectile,
	}
	if !st.PointBlank {
		floor := bc.BotRadius * collisionFactor
		if st.MinRange < floor {
			st.MinRange = floor
		}
		if st.MinRange > st.MaxRange {
			st.MinRange = st.MaxRange
		}
	}

	behavior := Behavior(def.Tactics.Behavior)
	if behavior == "" {
		behavior = BehaviorTactical
	}
	priority := TargetPriority(def.Tactics.Priority)
	if priority == "" {
		priority = PriorityClosest
	}
	rangeMode := RangeMode(def.Tactics.Range)
	if rangeMode == "" {
		rangeMode = RangeAuto
	}

	name := def.Name
	if name == "" {
		name = def.ID
	}

	return &Agent{
		ID:              def.ID,
		Name:            name,
		Team:            def.Team,
		Plating:         def.Plating,
		Weapon:          def.Weapon,
		Stats:           st,
		Behavior:        behavior,
		Priority:        priority,
		RangeMode:       rangeMode,
		Health:          st.MaxHealth,
		Alive:           true,
		StrafeDir:       1,
		LastShot:        farPast,
		LastTargetCheck: farPast,
		LastWallContact: farPast,
	}
}

// HealthFrac returns health as a fraction of max, treating a zero max as
// fully drained.
func (a *Agent) HealthFrac() float64 {
	if a.Stats.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.Stats.MaxHealth
}
