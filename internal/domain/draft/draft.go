// Package draft ranks draft candidates by VORP less a penalty for reaching
// ahead of average draft position.
package draft

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/gridiron/internal/domain/dedupe"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/types"
)

// Defaults for the board.
const (
	DefaultTopN         = 10
	DefaultReachPenalty = 0.1
	// unrankedADP stands in for players no source ranks.
	unrankedADP = 999
)

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithTopN limits the picks listed per position.
func WithTopN(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.topN = n
		}
	}
}

// WithReachPenalty sets the score deducted per round of reach.
func WithReachPenalty(p float64) Option {
	return func(b *Board) {
		if p >= 0 {
			b.reachPenalty = p
		}
	}
}

// Board builds per-position draft rankings.
type Board struct {
	topN         int
	reachPenalty float64
}

// NewBoard creates a Board.
func NewBoard(opts ...Option) *Board {
	b := &Board{topN: DefaultTopN, reachPenalty: DefaultReachPenalty}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BestPicks ranks every athlete for the given round and pick. Duplicate
// records of one athlete are collapsed to the best-supported record first.
func (b *Board) BestPicks(snap *model.Snapshot, vorp map[string]float64, round, pick int) map[model.Position][]types.DraftPick {
	espn, fp := adpBySource(snap.ADP)

	rows := make(map[string]int)
	for _, r := range snap.Projections {
		rows[r.PlayerID]++
	}

	best := make(map[string]dedupe.Candidate)
	for _, pl := range snap.PlayerIndex() {
		c := dedupe.Candidate{Player: pl, ProjectionRows: rows[pl.ID]}
		k := dedupe.Key(pl)
		if cur, ok := best[k]; !ok || dedupe.Better(c, cur) {
			best[k] = c
		}
	}

	out := make(map[model.Position][]types.DraftPick)
	for _, c := range best {
		pl := c.Player
		v := vorp[pl.ID]
		es, hasES := espn[pl.ID]
		fpv, hasFP := fp[pl.ID]

		adp := float64(unrankedADP)
		switch {
		case hasES:
			adp = es
		case hasFP:
			adp = fpv
		}
		reach := max(0, round-int(adp)/10)

		dp := types.DraftPick{
			PlayerID:  pl.ID,
			Name:      pl.Name,
			Team:      pl.Team,
			Score:     v - b.reachPenalty*float64(reach),
			VORP:      v,
			Reach:     reach,
			Rationale: fmt.Sprintf("Round %d pick %d: VORP %.2f; ADP FP=%s, ESPN=%s.", round, pick, v, fmtADP(fpv, hasFP), fmtADP(es, hasES)),
		}
		if hasFP {
			dp.ADPFP = &fpv
		}
		if hasES {
			dp.ADPESPN = &es
		}
		out[pl.Position] = append(out[pl.Position], dp)
	}

	for pos, picks := range out {
		sort.Slice(picks, func(i, j int) bool {
			if picks[i].Score != picks[j].Score {
				return picks[i].Score > picks[j].Score
			}
			return picks[i].PlayerID < picks[j].PlayerID
		})
		if len(picks) > b.topN {
			picks = picks[:b.topN]
		}
		out[pos] = picks
	}
	return out
}

// adpBySource keeps each player's best (lowest) rank per source family.
func adpBySource(records []model.ADPRecord) (espn, fp map[string]float64) {
	espn = make(map[string]float64)
	fp = make(map[string]float64)
	for _, r := range records {
		src := strings.ToLower(strings.TrimSpace(r.Source))
		var m map[string]float64
		switch {
		case strings.HasPrefix(src, "espn"):
			m = espn
		case strings.HasPrefix(src, "fantasypros"), src == "fp":
			m = fp
		default:
			continue
		}
		if cur, ok := m[r.PlayerID]; !ok || r.Rank < cur {
			m[r.PlayerID] = r.Rank
		}
	}
	return espn, fp
}

func fmtADP(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%g", v)
}
