package model

import "strings"

// Player identifies a single real athlete. Ingestion guarantees one record per athlete.
type Player struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Position   Position `json:"position" yaml:"position"`
	Team       string   `json:"team,omitempty" yaml:"team,omitempty"`
	ByeWeek    int      `json:"bye_week,omitempty" yaml:"bye_week,omitempty"`
	ExternalID string   `json:"external_id,omitempty" yaml:"external_id,omitempty"` // provider id, used when choosing between duplicates
}

// ProjectionRecord is one source's weekly projection for a player.
type ProjectionRecord struct {
	PlayerID string   `json:"player_id" yaml:"player_id"`
	Week     int      `json:"week" yaml:"week"`
	Source   string   `json:"source" yaml:"source"`
	Expected float64  `json:"expected" yaml:"expected"`
	Stdev    *float64 `json:"stdev,omitempty" yaml:"stdev,omitempty"`
}

// InjuryStatus is the normalized designation of an InjuryRecord.
type InjuryStatus string

// Injury designations that carry a lineup penalty. Anything else is Active.
const (
	InjuryOut          InjuryStatus = "OUT"
	InjuryDoubtful     InjuryStatus = "DOUBTFUL"
	InjuryQuestionable InjuryStatus = "QUESTIONABLE"
	InjuryActive       InjuryStatus = "ACTIVE"
)

// ParseInjuryStatus maps provider text to a designation, case-insensitively.
func ParseInjuryStatus(s string) InjuryStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OUT", "O":
		return InjuryOut
	case "DOUBTFUL", "D":
		return InjuryDoubtful
	case "QUESTIONABLE", "Q":
		return InjuryQuestionable
	default:
		return InjuryActive
	}
}

// InjuryRecord holds at most one designation per player and week.
type InjuryRecord struct {
	PlayerID string `json:"player_id" yaml:"player_id"`
	Week     int    `json:"week" yaml:"week"`
	Status   string `json:"status" yaml:"status"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// RosterStatus is where a player currently sits.
type RosterStatus string

// Roster statuses.
const (
	StatusStart RosterStatus = "start"
	StatusBench RosterStatus = "bench"
	StatusIR    RosterStatus = "ir"
	StatusFA    RosterStatus = "fa"
)

// RosterAssignment is the current assignment of a player.
type RosterAssignment struct {
	PlayerID string       `json:"player_id" yaml:"player_id"`
	Status   RosterStatus `json:"status" yaml:"status"`
	MyTeam   bool         `json:"my_team" yaml:"my_team"`
}

// Weather is a kickoff-window forecast summary.
type Weather struct {
	TempC      *float64 `json:"temp_c,omitempty" yaml:"temp_c,omitempty"`
	PrecipProb *float64 `json:"precip_prob,omitempty" yaml:"precip_prob,omitempty"`
	WindKmh    *float64 `json:"wind_kmh,omitempty" yaml:"wind_kmh,omitempty"`
}

// GameContext describes a team's game in a given week.
type GameContext struct {
	Week     int      `json:"week" yaml:"week"`
	Team     string   `json:"team" yaml:"team"`
	Opponent string   `json:"opponent,omitempty" yaml:"opponent,omitempty"`
	Home     bool     `json:"home" yaml:"home"`
	Weather  *Weather `json:"weather,omitempty" yaml:"weather,omitempty"`
}

// ADPRecord is a source's average draft position for a player.
type ADPRecord struct {
	PlayerID string  `json:"player_id" yaml:"player_id"`
	Source   string  `json:"source" yaml:"source"`
	Rank     float64 `json:"rank" yaml:"rank"`
}
