// Package vorp computes replacement-level baselines and value over
// replacement per player.
package vorp

import (
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/projection"
)

// defaultIndex applies to positions missing from the configured table.
const defaultIndex = 12

// Index maps position to the league-wide count of roster-worthy players.
type Index map[model.Position]int

// DefaultReplacementIndex returns the stock 12-team replacement table.
func DefaultReplacementIndex() Index {
	return Index{
		model.QB:  12,
		model.RB:  24,
		model.WR:  24,
		model.TE:  12,
		model.K:   12,
		model.DST: 12,
	}
}

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithReplacementIndex overrides the replacement table. Non-positive entries are ignored.
func WithReplacementIndex(idx Index) Option {
	return func(m *Model) {
		if idx == nil {
			return
		}
		m.index = make(Index, len(idx))
		for pos, n := range idx {
			if n > 0 {
				m.index[pos] = n
			}
		}
	}
}

// Model is the replacement-level model. It is stateless after construction.
type Model struct {
	index Index
}

// NewModel creates a Model using DefaultReplacementIndex unless overridden.
func NewModel(opts ...Option) *Model {
	m := &Model{index: DefaultReplacementIndex()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Result carries the week's baselines and per-player VORP.
type Result struct {
	Baselines map[model.Position]float64
	VORP      map[string]float64
}

// Baselines returns the replacement value for every position. The baseline is
// the value at the 1-based replacement index of the descending pool, the pool
// minimum when it is shorter than the index, and 0 for an empty pool.
func (m *Model) Baselines(values map[string]projection.Value) map[model.Position]float64 {
	pools := make(map[model.Position][]float64, len(model.Positions))
	for _, v := range values {
		pools[v.Position] = append(pools[v.Position], v.Expected)
	}

	out := make(map[model.Position]float64, len(model.Positions))
	for _, pos := range model.Positions {
		out[pos] = m.baseline(pos, pools[pos])
	}
	return out
}

func (m *Model) baseline(pos model.Position, pool []float64) float64 {
	if len(pool) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(pool)))
	idx, ok := m.index[pos]
	if !ok {
		idx = defaultIndex
	}
	if len(pool) >= idx {
		return pool[idx-1]
	}
	return pool[len(pool)-1]
}

// Compute returns baselines and VORP for every blended player, rostered or not.
func (m *Model) Compute(values map[string]projection.Value) Result {
	baselines := m.Baselines(values)
	out := make(map[string]float64, len(values))
	for pid, v := range values {
		out[pid] = v.Expected - baselines[v.Position]
	}
	return Result{Baselines: baselines, VORP: out}
}
