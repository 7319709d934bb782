// Package testleague generates deterministic synthetic league snapshots for
// tests and the CLI demo mode.
package testleague

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"

	"github.com/okian/gridiron/internal/domain/model"
)

const (
	myTeamIndex     = 3
	excludedEvery   = 50 // players covered only by a zero-weight source
	droppedEvery    = 9  // rostered elsewhere but released to free agency
	sourceBiasRange = 1.5
)

var injuryCycle = []model.InjuryStatus{model.InjuryQuestionable, model.InjuryDoubtful, model.InjuryOut} //nolint:gochecknoglobals // immutable table

type generated struct {
	player model.Player
	base   float64
	sd     float64
	rank   int
	depth  int
}

// Generate builds a league snapshot. Identical options always produce an
// identical snapshot.
func Generate(opts ...Option) *model.Snapshot {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)) //nolint:gosec // synthetic data

	players := makePlayers(rng)
	snap := &model.Snapshot{Week: 1}
	for _, g := range players {
		snap.Players = append(snap.Players, g.player)
	}

	snap.Projections = makeProjections(rng, cfg, players)
	snap.Rosters = makeRosters(cfg, players)
	snap.Injuries = makeInjuries(cfg, players)
	snap.Games = makeGames(rng, cfg)
	snap.ADP = makeADP(rng, players)
	return snap
}

func makePlayers(rng *rand.Rand) []generated {
	var out []generated
	id := 0
	for pi, p := range pools {
		for r := range p.count {
			team := nflTeams[(r+pi*5)%len(nflTeams)]
			name := fmt.Sprintf("%s %s", firstNames[id%len(firstNames)], lastNames[(id/len(firstNames))%len(lastNames)])
			if p.pos == model.DST {
				team = nflTeams[r%len(nflTeams)]
				name = team + " D/ST"
			}
			id++
			out = append(out, generated{
				player: model.Player{
					ID:         fmt.Sprintf("p%03d", id),
					Name:       name,
					Position:   p.pos,
					Team:       team,
					ByeWeek:    5 + id%10,
					ExternalID: uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "gridiron-player-%d", id)).String(),
				},
				base:  round2(math.Max(p.floor, p.top-p.decay*float64(r)+rng.NormFloat64()*0.5)),
				sd:    p.sd,
				rank:  r,
				depth: p.depth,
			})
		}
	}
	return out
}

func makeProjections(rng *rand.Rand, cfg Config, players []generated) []model.ProjectionRecord {
	bias := make(map[string]float64, len(cfg.Sources))
	for _, src := range cfg.Sources {
		bias[src] = (rng.Float64()*2 - 1) * sourceBiasRange
	}

	var out []model.ProjectionRecord
	for week := 1; week <= cfg.Weeks; week++ {
		for i, g := range players {
			swing := rng.NormFloat64() * g.sd * 0.3
			for _, src := range cfg.Sources {
				if (i+1)%excludedEvery == 0 && src != "yahoo" {
					continue
				}
				sd := round2(g.sd * (0.8 + 0.4*rng.Float64()))
				out = append(out, model.ProjectionRecord{
					PlayerID: g.player.ID,
					Week:     week,
					Source:   src,
					Expected: round2(math.Max(0, g.base+swing+bias[src]+rng.NormFloat64())),
					Stdev:    &sd,
				})
			}
		}
	}
	return out
}

// makeRosters deals each position's ranks to fantasy teams in order, so every
// team holds depth players per position. The rest are free agents.
func makeRosters(cfg Config, players []generated) []model.RosterAssignment {
	out := make([]model.RosterAssignment, 0, len(players))
	mineByPos := make(map[model.Position]int)
	for i, g := range players {
		ra := model.RosterAssignment{PlayerID: g.player.ID, Status: model.StatusFA}
		if g.rank < cfg.Teams*g.depth {
			owner := g.rank % cfg.Teams
			switch {
			case owner == myTeamIndex:
				ra.MyTeam = true
				ra.Status = model.StatusBench
				if mineByPos[g.player.Position] == 0 {
					ra.Status = model.StatusStart
				}
				mineByPos[g.player.Position]++
			case (i+1)%droppedEvery == 0:
				ra.Status = model.StatusFA
			default:
				ra.Status = model.StatusStart
			}
		}
		out = append(out, ra)
	}

	// my deepest running back is on injured reserve
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].MyTeam && players[i].player.Position == model.RB {
			out[i].Status = model.StatusIR
			break
		}
	}
	return out
}

func makeInjuries(cfg Config, players []generated) []model.InjuryRecord {
	var out []model.InjuryRecord
	for week := 1; week <= cfg.Weeks; week++ {
		for i, g := range players {
			if (i+week)%injuryEvery != 0 {
				continue
			}
			status := injuryCycle[(i+week)%len(injuryCycle)]
			out = append(out, model.InjuryRecord{
				PlayerID: g.player.ID,
				Week:     week,
				Status:   string(status),
				Note:     "limited in practice",
			})
		}
	}
	return out
}

func makeGames(rng *rand.Rand, cfg Config) []model.GameContext {
	var out []model.GameContext
	for week := 1; week <= cfg.Weeks; week++ {
		perm := rng.Perm(len(nflTeams))
		for k := 0; k+1 < len(perm); k += 2 {
			home, away := nflTeams[perm[k]], nflTeams[perm[k+1]]
			temp := round2(rng.Float64() * 30)
			precip := round2(rng.Float64())
			wind := round2(rng.Float64() * 40)
			w := &model.Weather{TempC: &temp, PrecipProb: &precip, WindKmh: &wind}
			out = append(out,
				model.GameContext{Week: week, Team: home, Opponent: away, Home: true, Weather: w},
				model.GameContext{Week: week, Team: away, Opponent: home, Home: false, Weather: w},
			)
		}
	}
	return out
}

func makeADP(rng *rand.Rand, players []generated) []model.ADPRecord {
	order := make([]generated, len(players))
	copy(order, players)
	sort.SliceStable(order, func(i, j int) bool { return order[i].base > order[j].base })

	out := make([]model.ADPRecord, 0, 2*len(order))
	for overall, g := range order {
		base := float64(overall + 1)
		out = append(out,
			model.ADPRecord{PlayerID: g.player.ID, Source: "espn", Rank: round2(math.Max(1, base+rng.NormFloat64()*3))},
			model.ADPRecord{PlayerID: g.player.ID, Source: "fantasypros", Rank: round2(math.Max(1, base+rng.NormFloat64()*3))},
		)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
