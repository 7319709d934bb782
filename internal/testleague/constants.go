package testleague

import "github.com/okian/gridiron/internal/domain/model"

// nflTeams are the real franchise abbreviations used for players and games.
var nflTeams = []string{ //nolint:gochecknoglobals // immutable table
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LV", "LAC", "LAR", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SF", "SEA", "TB", "TEN", "WSH",
}

// pool describes how many players of a position exist and how they score.
type pool struct {
	pos   model.Position
	count int
	top   float64 // expected points of the best player
	decay float64 // points lost per rank
	floor float64
	sd    float64 // typical weekly stdev
	// depth is how many each fantasy team rosters.
	depth int
}

var pools = []pool{ //nolint:gochecknoglobals // immutable table
	{pos: model.QB, count: 32, top: 24, decay: 0.35, floor: 8, sd: 6, depth: 2},
	{pos: model.RB, count: 72, top: 20, decay: 0.22, floor: 2, sd: 6.5, depth: 5},
	{pos: model.WR, count: 84, top: 19, decay: 0.18, floor: 2, sd: 7, depth: 5},
	{pos: model.TE, count: 32, top: 14, decay: 0.3, floor: 2, sd: 4.5, depth: 2},
	{pos: model.K, count: 32, top: 10, decay: 0.1, floor: 5, sd: 3, depth: 1},
	{pos: model.DST, count: 32, top: 11, decay: 0.15, floor: 3, sd: 4, depth: 1},
}

var firstNames = []string{ //nolint:gochecknoglobals // immutable table
	"Aaron", "Brock", "Caleb", "Dak", "Evan", "Finn", "Garrett", "Hunter",
	"Isaiah", "Jalen", "Kyler", "Lamar", "Mason", "Nico", "Omar", "Puka",
	"Quentin", "Rashid", "Sam", "Tyreek", "Uriah", "Vic", "Wade", "Xavier",
}

var lastNames = []string{ //nolint:gochecknoglobals // immutable table
	"Adams", "Barkley", "Chase", "Diggs", "Etienne", "Flowers", "Gibbs", "Hill",
	"Irving", "Jefferson", "Kelce", "London", "McCaffrey", "Nacua", "Olave", "Pitts",
	"Quinn", "Ridley", "Samuel", "Taylor", "Underwood", "Vance", "Waddle", "Young",
}

// injury designations assigned to every injuryEvery-th player.
const injuryEvery = 11
