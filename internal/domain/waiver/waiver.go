// Package waiver ranks free agents against the weakest rostered player at
// their position.
package waiver

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/types"
)

// Defaults for the ranker.
const (
	DefaultTopN    = 5
	DefaultFAABMin = 1
	DefaultFAABMax = 20
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithTopN limits how many free agents are considered per position.
func WithTopN(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.topN = n
		}
	}
}

// WithFAABRange sets the bid bounds. Invalid ranges are ignored.
func WithFAABRange(lo, hi int) Option {
	return func(r *Ranker) {
		if lo >= 1 && lo <= hi {
			r.faabMin, r.faabMax = lo, hi
		}
	}
}

// Ranker produces waiver suggestions.
type Ranker struct {
	topN    int
	faabMin int
	faabMax int
}

// NewRanker creates a Ranker with the stock limits.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{topN: DefaultTopN, faabMin: DefaultFAABMin, faabMax: DefaultFAABMax}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type entry struct {
	player model.Player
	vorp   float64
}

// Rank compares each position's best free agents with the lowest-VORP
// player I start or bench there (0 when I have none). Only strict
// improvements are returned, largest first. Missing VORP counts as 0.
func (r *Ranker) Rank(snap *model.Snapshot, vorp map[string]float64) []types.WaiverSuggestion {
	players := snap.PlayerIndex()
	mine := make(map[model.Position][]entry)
	free := make(map[model.Position][]entry)

	for pid, ra := range snap.RosterIndex() {
		pl, ok := players[pid]
		if !ok {
			continue
		}
		e := entry{player: pl, vorp: vorp[pid]}
		switch {
		case ra.Status == model.StatusFA:
			free[pl.Position] = append(free[pl.Position], e)
		case ra.MyTeam && (ra.Status == model.StatusStart || ra.Status == model.StatusBench):
			mine[pl.Position] = append(mine[pl.Position], e)
		}
	}

	var out []types.WaiverSuggestion
	for _, pos := range model.Positions {
		fas := free[pos]
		if len(fas) == 0 {
			continue
		}
		worst := worstVORP(mine[pos])

		sort.Slice(fas, func(i, j int) bool {
			if fas[i].vorp != fas[j].vorp {
				return fas[i].vorp > fas[j].vorp
			}
			return fas[i].player.ID < fas[j].player.ID
		})
		if len(fas) > r.topN {
			fas = fas[:r.topN]
		}

		for _, fa := range fas {
			delta := fa.vorp - worst
			if delta <= 0 {
				continue
			}
			out = append(out, types.WaiverSuggestion{
				PlayerID:  fa.player.ID,
				Name:      fa.player.Name,
				Position:  pos,
				VORPDelta: delta,
				FAABBid:   r.bid(delta),
				Rationale: fmt.Sprintf("Improves %s by %.2f VORP over your weakest option.", pos, delta),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VORPDelta != out[j].VORPDelta {
			return out[i].VORPDelta > out[j].VORPDelta
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func worstVORP(es []entry) float64 {
	if len(es) == 0 {
		return 0
	}
	w := es[0].vorp
	for _, e := range es[1:] {
		w = math.Min(w, e.vorp)
	}
	return w
}

// bid clamps before converting so huge deltas cannot overflow int.
func (r *Ranker) bid(delta float64) int {
	b := math.Max(float64(r.faabMin), math.Min(float64(r.faabMax), math.Round(delta)))
	return int(b)
}
