// Package config defines engine configuration and its layered loader.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a YAML file and GRIDIRON_ environment variables on top.
// - Validate normalizes table keys and reports problems wrapped in ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Week is the default target week.
	Week int `koanf:"week"`

	// Objective is expected or risk.
	Objective string `koanf:"objective"`

	// RiskLambda scales stdev in risk mode.
	RiskLambda float64 `koanf:"risk_lambda"`

	StackBonus      bool    `koanf:"stack_bonus"`
	StackBonusValue float64 `koanf:"stack_bonus_value"`

	// SourceWeights maps position -> source -> weight.
	SourceWeights map[string]map[string]float64 `koanf:"source_weights"`

	// ReplacementIndex maps position -> league-wide roster-worthy count.
	ReplacementIndex map[string]int `koanf:"replacement_index"`

	// InjuryPenalties maps designation -> additive value adjustment.
	InjuryPenalties map[string]float64 `koanf:"injury_penalties"`

	// LineupSlots is the ordered starting lineup table.
	LineupSlots []SlotConfig `koanf:"lineup_slots"`

	WaiverTopN int `koanf:"waiver_top_n"`
	FAABMin    int `koanf:"faab_min"`
	FAABMax    int `koanf:"faab_max"`

	TradeFairnessScale float64 `koanf:"trade_fairness_scale"`

	DraftTopN         int     `koanf:"draft_top_n"`
	DraftReachPenalty float64 `koanf:"draft_reach_penalty"`

	// Snapshot is the record file the CLI analyses.
	Snapshot string `koanf:"snapshot"`

	// MetricsTextfile, when set, receives a Prometheus text dump after each run.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// SlotConfig is one lineup table entry.
type SlotConfig struct {
	Name     string   `koanf:"name"`
	Count    int      `koanf:"count"`
	Eligible []string `koanf:"eligible"`
}

// New creates a Config populated with defaults.
func New() *Config {
	weights := make(map[string]map[string]float64, 6)
	for _, pos := range []string{"QB", "RB", "WR", "TE", "K", "DST"} {
		weights[pos] = map[string]float64{
			"espn":        0.5,
			"fantasypros": 0.3,
			"sportsdata":  0.2,
			"yahoo":       0.0,
		}
	}

	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Week:            1,
		Objective:       "risk",
		RiskLambda:      0.35,
		StackBonus:      false,
		StackBonusValue: 0.5,
		SourceWeights:   weights,
		ReplacementIndex: map[string]int{
			"QB": 12, "RB": 24, "WR": 24, "TE": 12, "K": 12, "DST": 12,
		},
		InjuryPenalties: map[string]float64{
			"OUT": -8, "DOUBTFUL": -4, "QUESTIONABLE": -2,
		},
		LineupSlots: []SlotConfig{
			{Name: "QB", Count: 1, Eligible: []string{"QB"}},
			{Name: "RB", Count: 2, Eligible: []string{"RB"}},
			{Name: "WR", Count: 2, Eligible: []string{"WR"}},
			{Name: "TE", Count: 1, Eligible: []string{"TE"}},
			{Name: "FLEX", Count: 1, Eligible: []string{"RB", "WR", "TE"}},
			{Name: "K", Count: 1, Eligible: []string{"K"}},
			{Name: "DST", Count: 1, Eligible: []string{"DST"}},
		},
		WaiverTopN:         5,
		FAABMin:            1,
		FAABMax:            20,
		TradeFairnessScale: 10,
		DraftTopN:          10,
		DraftReachPenalty:  0.1,
	}
}
