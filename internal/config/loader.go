package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadBattle reads battle.yaml from dir, falling back to defaults when the
// file does not exist.
func LoadBattle(dir string) (BattleConfig, error) {
	bc := DefaultBattle()
	path := filepath.Join(dir, "battle.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return bc, nil
	}
	if err := loadYAML(path, &bc); err != nil {
		return bc, fmt.Errorf("load battle config: %w", err)
	}
	if err := bc.Validate(); err != nil {
		return bc, err
	}
	return bc, nil
}

// LoadRoster reads and validates roster.yaml from dir.
func LoadRoster(dir string) (*RosterConfig, error) {
	var rc RosterConfig
	if err := loadYAML(filepath.Join(dir, "roster.yaml"), &rc); err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (bc BattleConfig) Validate() error {
	if bc.ArenaWidth <= 0 || bc.ArenaHeight <= 0 {
		return fmt.Errorf("battle config: arena dimensions must be positive")
	}
	if bc.FPS <= 0 {
		return fmt.Errorf("battle config: fps must be positive")
	}
	if bc.MaxDuration <= 0 {
		return fmt.Errorf("battle config: max_duration must be positive")
	}
	if bc.BotRadius <= 0 {
		return fmt.Errorf("battle config: bot_radius must be positive")
	}
	return nil
}

// Validate rejects rosters the simulator would choke on: unknown tactical
// enums, non-positive stats, inverted range bands. Bad rosters are a caller
// error and fail before the run, not inside it.
func (rc *RosterConfig) Validate() error {
	if len(rc.Agents) == 0 {
		return fmt.Errorf("roster: no agents")
	}
	seen := map[string]bool{}
	teams := map[int]int{}
	for i, a := range rc.Agents {
		if a.ID == "" {
			return fmt.Errorf("roster: agent %d has no id", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("roster: duplicate agent id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Team != 1 && a.Team != 2 {
			return fmt.Errorf("roster: agent %q team must be 1 or 2", a.ID)
		}
		teams[a.Team]++
		if a.Stats.MaxHealth <= 0 {
			return fmt.Errorf("roster: agent %q max_health must be positive", a.ID)
		}
		if a.Stats.Agility < 0 || a.Stats.Agility > 1 {
			return fmt.Errorf("roster: agent %q agility must be in [0,1]", a.ID)
		}
		if a.Stats.MinRange > a.Stats.MaxRange && a.Stats.MinRange > 0 {
			return fmt.Errorf("roster: agent %q min_range exceeds max_range", a.ID)
		}
		if !validBehaviors[a.Tactics.Behavior] {
			return fmt.Errorf("roster: agent %q unknown behavior %q", a.ID, a.Tactics.Behavior)
		}
		if !validPriorities[a.Tactics.Priority] {
			return fmt.Errorf("roster: agent %q unknown priority %q", a.ID, a.Tactics.Priority)
		}
		if !validRanges[a.Tactics.Range] {
			return fmt.Errorf("roster: agent %q unknown range mode %q", a.ID, a.Tactics.Range)
		}
	}
	if len(teams) < 2 {
		return fmt.Errorf("roster: both teams need at least one agent")
	}
	return nil
}
