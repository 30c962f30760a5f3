package sim

// Event tags recorded into frame snapshots.
const (
	EventShot      = "shot"
	EventHit       = "hit"
	EventHeal      = "heal"
	EventKill      = "kill"
	EventBlocked   = "blocked"
	EventStalemate = "stalemate_engaged"
	EventDispersal = "dispersal_engaged"
)

// Event is one tagged occurrence within a tick. Agent is the actor
// (shooter, healer, killer); Target the receiving side where one exists.
type Event struct {
	Type   string  `json:"type"`
	Agent  string  `json:"agent,omitempty"`
	Target string  `json:"target,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

func (s *Simulation) emit(ev Event) {
	s.events = append(s.events, ev)
}
