// Package types contains the plain result shapes produced by the engine.
package types

import "github.com/okian/gridiron/internal/domain/model"

// Solver paths reported on a LineupResult.
const (
	SolverILP    = "ilp"
	SolverGreedy = "greedy"
)

// Starter is a player placed in a lineup slot.
type Starter struct {
	PlayerID string         `json:"player_id"`
	Name     string         `json:"name"`
	Slot     string         `json:"slot"`
	Position model.Position `json:"position"`
	Team     string         `json:"team,omitempty"`
	Value    float64        `json:"value"`
	Injury   *string        `json:"injury"`
	Opponent *string        `json:"opponent"`
	Home     *bool          `json:"home"`
	Weather  *model.Weather `json:"weather"`
}

// BenchEntry is a candidate left out of the starting lineup.
type BenchEntry struct {
	PlayerID string         `json:"player_id"`
	Name     string         `json:"name"`
	Position model.Position `json:"position"`
	Team     string         `json:"team,omitempty"`
	Value    float64        `json:"value"`
	Injury   *string        `json:"injury"`
	Opponent *string        `json:"opponent"`
	Home     *bool          `json:"home"`
	Weather  *model.Weather `json:"weather"`
}

// LineupResult is the optimizer output for one week.
type LineupResult struct {
	Week           int               `json:"week"`
	Objective      string            `json:"objective"`
	Solver         string            `json:"solver"`
	FallbackReason string            `json:"fallback_reason,omitempty"`
	Starters       []Starter         `json:"starters"`
	Bench          []BenchEntry      `json:"bench"`
	Rationale      map[string]string `json:"rationale"`
}

// WaiverSuggestion is a free agent worth claiming.
type WaiverSuggestion struct {
	PlayerID  string         `json:"player_id"`
	Name      string         `json:"name"`
	Position  model.Position `json:"position"`
	VORPDelta float64        `json:"vorp_delta"`
	FAABBid   int            `json:"faab_bid"`
	Rationale string         `json:"rationale"`
}

// TradeEvaluation scores a proposed trade.
type TradeEvaluation struct {
	Fairness   float64 `json:"fairness"`
	DeltaMy    float64 `json:"delta_my"`
	DeltaTheir float64 `json:"delta_their"`
	Rationale  string  `json:"rationale"`
}

// DraftPick is one ranked draft candidate.
type DraftPick struct {
	PlayerID  string   `json:"player_id"`
	Name      string   `json:"name"`
	Team      string   `json:"team,omitempty"`
	Score     float64  `json:"score"`
	VORP      float64  `json:"vorp"`
	ADPFP     *float64 `json:"adp_fp"`
	ADPESPN   *float64 `json:"adp_espn"`
	Reach     int      `json:"reach"`
	Rationale string   `json:"rationale"`
}

// DuplicateRecord is one player record that shares an athlete with others.
type DuplicateRecord struct {
	PlayerID       string         `json:"player_id"`
	Name           string         `json:"name"`
	Position       model.Position `json:"position"`
	Team           string         `json:"team,omitempty"`
	ExternalID     string         `json:"external_id,omitempty"`
	ProjectionRows int            `json:"projection_rows"`
}

// DuplicateGroup lists the records of one athlete, the record to keep first.
type DuplicateGroup struct {
	Keep    string            `json:"keep"`
	Records []DuplicateRecord `json:"records"`
}
