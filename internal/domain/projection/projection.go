// Package projection blends multi-source weekly projections into one
// expected-points estimate per player.
package projection

import (
	"math"
	"sort"
	"strings"

	"github.com/okian/gridiron/internal/domain/model"
)

// Weights maps position -> source -> weight.
type Weights map[model.Position]map[string]float64

// DefaultWeights returns the stock source weighting used for every position.
func DefaultWeights() Weights {
	w := make(Weights, len(model.Positions))
	for _, pos := range model.Positions {
		w[pos] = map[string]float64{
			"espn":        0.5,
			"fantasypros": 0.3,
			"sportsdata":  0.2,
			"yahoo":       0.0,
		}
	}
	return w
}

// Value is the blended projection of one player for one week.
type Value struct {
	PlayerID string         `json:"player_id"`
	Position model.Position `json:"position"`
	Expected float64        `json:"expected"`
	// Stdev is the weighted mean of the matched sources' stdevs; nil when
	// no matched source reported one.
	Stdev   *float64 `json:"stdev"`
	Sources int      `json:"sources"`
}

// Result holds blended values plus the players dropped for lacking any
// configured source.
type Result struct {
	Values   map[string]Value
	Excluded []string
}

// Option applies a configuration option to the Blender.
type Option func(*Blender)

// WithWeights replaces the per-position source weights. The map is copied and
// source names are lower-cased.
func WithWeights(weights Weights) Option {
	return func(b *Blender) {
		if weights == nil {
			return
		}
		b.weights = make(Weights, len(weights))
		for pos, sources := range weights {
			m := make(map[string]float64, len(sources))
			for src, w := range sources {
				m[normalizeSource(src)] = w
			}
			b.weights[pos] = m
		}
	}
}

// Blender merges source projections using a fixed weight table.
// It holds no mutable state and is safe for concurrent use.
type Blender struct {
	weights Weights
}

// NewBlender creates a Blender with DefaultWeights unless overridden.
func NewBlender(opts ...Option) *Blender {
	b := &Blender{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type sourceRows struct {
	expected []float64
	stdev    []float64
}

// Blend computes the weighted mean of each player's projections for week.
// Rows from the same source are averaged first. Sources absent from the
// player's position weights are ignored, and a player whose matched weight
// sums to zero is excluded rather than defaulted.
func (b *Blender) Blend(week int, players map[string]model.Player, records []model.ProjectionRecord) Result {
	grouped := make(map[string]map[string]*sourceRows)
	for _, r := range records {
		if r.Week != week {
			continue
		}
		if _, ok := players[r.PlayerID]; !ok {
			continue
		}
		src := normalizeSource(r.Source)
		if src == "" || !finite(r.Expected) {
			continue
		}
		bySource, ok := grouped[r.PlayerID]
		if !ok {
			bySource = make(map[string]*sourceRows)
			grouped[r.PlayerID] = bySource
		}
		rows, ok := bySource[src]
		if !ok {
			rows = &sourceRows{}
			bySource[src] = rows
		}
		rows.expected = append(rows.expected, r.Expected)
		if r.Stdev != nil && finite(*r.Stdev) && *r.Stdev >= 0 {
			rows.stdev = append(rows.stdev, *r.Stdev)
		}
	}

	res := Result{Values: make(map[string]Value, len(grouped))}
	for pid, bySource := range grouped {
		pos := players[pid].Position
		v, ok := b.blendPlayer(b.weights[pos], bySource)
		if !ok {
			res.Excluded = append(res.Excluded, pid)
			continue
		}
		v.PlayerID = pid
		v.Position = pos
		res.Values[pid] = v
	}
	sort.Strings(res.Excluded)
	return res
}

func (b *Blender) blendPlayer(weights map[string]float64, bySource map[string]*sourceRows) (Value, bool) {
	sources := make([]string, 0, len(bySource))
	for src := range bySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	var total, totalW, sdTotal, sdW float64
	matched := 0
	for _, src := range sources {
		w, ok := weights[src]
		if !ok {
			continue
		}
		rows := bySource[src]
		matched++
		totalW += w
		total += w * mean(rows.expected)
		if len(rows.stdev) > 0 {
			sdW += w
			sdTotal += w * mean(rows.stdev)
		}
	}
	if totalW == 0 {
		return Value{}, false
	}

	v := Value{Expected: total / totalW, Sources: matched}
	if sdW > 0 {
		sd := sdTotal / sdW
		v.Stdev = &sd
	}
	return v, true
}

// mean sorts a copy first so the sum is independent of row order.
func mean(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

func normalizeSource(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
