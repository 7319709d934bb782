package model

import "strings"

// Snapshot is the in-memory record set a caller hands to the engine.
// Nothing in the engine mutates it.
type Snapshot struct {
	Week        int                `json:"week" yaml:"week"`
	Players     []Player           `json:"players" yaml:"players"`
	Projections []ProjectionRecord `json:"projections" yaml:"projections"`
	Injuries    []InjuryRecord     `json:"injuries,omitempty" yaml:"injuries,omitempty"`
	Rosters     []RosterAssignment `json:"rosters,omitempty" yaml:"rosters,omitempty"`
	Games       []GameContext      `json:"games,omitempty" yaml:"games,omitempty"`
	ADP         []ADPRecord        `json:"adp,omitempty" yaml:"adp,omitempty"`
}

// PlayerIndex maps player id to player. Records with an empty id or an
// unknown position are left out.
func (s *Snapshot) PlayerIndex() map[string]Player {
	idx := make(map[string]Player, len(s.Players))
	for _, p := range s.Players {
		if p.ID == "" {
			continue
		}
		pos, ok := ParsePosition(string(p.Position))
		if !ok {
			continue
		}
		p.Position = pos
		idx[p.ID] = p
	}
	return idx
}

// InjuryIndex returns the normalized injury record per player for week.
func (s *Snapshot) InjuryIndex(week int) map[string]InjuryRecord {
	idx := make(map[string]InjuryRecord)
	for _, r := range s.Injuries {
		if r.Week != week || r.PlayerID == "" {
			continue
		}
		idx[r.PlayerID] = r
	}
	return idx
}

// RosterIndex returns the current assignment per player.
func (s *Snapshot) RosterIndex() map[string]RosterAssignment {
	idx := make(map[string]RosterAssignment, len(s.Rosters))
	for _, r := range s.Rosters {
		if r.PlayerID == "" {
			continue
		}
		idx[r.PlayerID] = r
	}
	return idx
}

// GameIndex returns game context by upper-cased team abbreviation for week.
func (s *Snapshot) GameIndex(week int) map[string]GameContext {
	idx := make(map[string]GameContext)
	for _, g := range s.Games {
		if g.Week != week || g.Team == "" {
			continue
		}
		idx[strings.ToUpper(g.Team)] = g
	}
	return idx
}
