package lineup

import (
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/projection"
)

// Objective selects how a candidate's value is derived from its projection.
type Objective string

// Objectives.
const (
	ObjectiveExpected Objective = "expected"
	ObjectiveRisk     Objective = "risk"
)

// Penalties maps an injury designation to an additive value adjustment.
type Penalties map[model.InjuryStatus]float64

// DefaultPenalties returns the stock injury adjustments.
func DefaultPenalties() Penalties {
	return Penalties{
		model.InjuryOut:          -8,
		model.InjuryDoubtful:     -4,
		model.InjuryQuestionable: -2,
	}
}

// Value is expected points, less lambda times stdev in risk mode, plus the
// injury adjustment. A missing stdev counts as zero.
func (o *Optimizer) Value(v projection.Value, status model.InjuryStatus, p Params) float64 {
	val := v.Expected
	if p.Objective == ObjectiveRisk {
		sd := 0.0
		if v.Stdev != nil {
			sd = *v.Stdev
		}
		val -= p.Lambda * sd
	}
	return val + o.penalties[status]
}
