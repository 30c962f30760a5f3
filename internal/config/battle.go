package config

// BattleConfig fixes the arena and timing parameters for one battle.
type BattleConfig struct {
	ArenaWidth      float64 `yaml:"arena_width"`
	ArenaHeight     float64 `yaml:"arena_height"`
	FPS             int     `yaml:"fps"`
	MaxDuration     float64 `yaml:"max_duration"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	BotRadius       float64 `yaml:"bot_radius"`
}

// DefaultBattle returns the stock arena used when no battle.yaml exists.
func DefaultBattle() BattleConfig {
	return BattleConfig{
		ArenaWidth:      1000,
		ArenaHeight:     700,
		FPS:             20,
		MaxDuration:     120,
		ProjectileSpeed: 450,
		BotRadius:       28,
	}
}
