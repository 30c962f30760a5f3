package config

// RosterConfig lists the agents spawned into a battle, both teams mixed.
type RosterConfig struct {
	Agents []AgentDef `yaml:"agents"`
}

// AgentDef is one spawn descriptor: identity, resolved part stats and
// tactical configuration. Part names have already been resolved to numbers
// by the catalog; the simulator only sees the result.
type AgentDef struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Team    int      `yaml:"team"`
	Plating string   `yaml:"plating"`
	Weapon  string   `yaml:"weapon"`
	Stats   StatsDef `yaml:"stats"`
	Tactics Tactics  `yaml:"tactics"`
}

type StatsDef struct {
	MaxHealth      float64 `yaml:"max_health"`
	Speed          float64 `yaml:"speed"`
	RotationSpeed  float64 `yaml:"rotation_speed"`
	TurretRotSpeed float64 `yaml:"turret_rotation_speed"`
	Intelligence   float64 `yaml:"intelligence"`
	Agility        float64 `yaml:"agility"`
	Damage         float64 `yaml:"damage"`
	ShotsPerSecond float64 `yaml:"shots_per_second"`
	MinRange       float64 `yaml:"min_range"`
	MaxRange       float64 `yaml:"max_range"`
	Healer         bool    `yaml:"healer"`
	MuzzleOffset   float64 `yaml:"muzzle_offset"`
	Projectile     string  `yaml:"projectile"`
}

type Tactics struct {
	Behavior string `yaml:"behavior"`
	Priority string `yaml:"priority"`
	Range    string `yaml:"range"`
}

var validBehaviors = map[string]bool{
	"": true, "aggressive": true, "defensive": true, "tactical": true,
	"kiting": true, "hold": true, "flanker": true, "sniper": true,
	"berserker": true, "protector": true,
}

var validPriorities = map[string]bool{
	"": true, "weakest": true, "strongest": true, "closest": true,
	"furthest": true, "focus_fire": true,
}

var validRanges = map[string]bool{
	"": true, "auto": true, "close": true, "optimal": true, "max": true,
}
