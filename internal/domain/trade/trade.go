// Package trade scores proposed trades by the VORP each side gains.
package trade

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/gridiron/internal/domain/types"
)

// DefaultFairnessScale is the fairness points lost per unit of imbalance.
const DefaultFairnessScale = 10.0

// Evaluator scores trades under a single-league zero-sum assumption.
type Evaluator struct {
	scale float64
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithFairnessScale sets the fairness penalty per point of imbalance.
func WithFairnessScale(s float64) Option {
	return func(e *Evaluator) {
		if s >= 0 {
			e.scale = s
		}
	}
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{scale: DefaultFairnessScale}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate compares the VORP I receive with the VORP I give up. The other
// side's change is the exact negation of mine, so the imbalance term is
// always zero and fairness is always 100.
// TODO: value the counterparty's roster separately so fairness can move.
func (e *Evaluator) Evaluate(vorp map[string]float64, in, out []string) types.TradeEvaluation {
	deltaMy := sum(vorp, in) - sum(vorp, out)
	deltaTheir := -deltaMy
	fairness := math.Max(0, 100-math.Abs(deltaMy-(-deltaTheir))*e.scale)
	return types.TradeEvaluation{
		Fairness:   fairness,
		DeltaMy:    deltaMy,
		DeltaTheir: deltaTheir,
		Rationale:  fmt.Sprintf("My VORP change %.2f, theirs %.2f. Balanced if near 0.", deltaMy, deltaTheir),
	}
}

// sum adds in sorted order so swapping sides yields exact negatives.
func sum(vorp map[string]float64, ids []string) float64 {
	vals := make([]float64, 0, len(ids))
	for _, id := range ids {
		vals = append(vals, vorp[id])
	}
	sort.Float64s(vals)
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}
