package lineup

import (
	"fmt"
	"strings"

	"github.com/okian/gridiron/internal/domain/model"
)

// Key addresses one binary decision: player PlayerID starts in slot Slot.
type Key struct {
	PlayerID string
	Slot     string
}

// Problem is the sparse assignment model. Vars is ordered player-major then
// by slot table order, so any solver sees the same column layout for the
// same inputs.
type Problem struct {
	Slots   []Slot
	Players []string
	Vars    []Key
	Coef    map[Key]float64
}

// Solver finds an exact optimum of a Problem, returning the selected keys.
type Solver interface {
	Solve(p *Problem) ([]Key, error)
}

// buildProblem creates one variable per (candidate, eligible slot) pair.
// cands must already be sorted by player id.
func buildProblem(slots []Slot, cands []candidate, stack bool, bonus float64) *Problem {
	p := &Problem{Slots: slots, Coef: make(map[Key]float64)}
	for _, c := range cands {
		added := false
		for _, s := range slots {
			if !s.Accepts(c.player.Position) {
				continue
			}
			k := Key{PlayerID: c.player.ID, Slot: s.Name}
			p.Vars = append(p.Vars, k)
			p.Coef[k] = c.value
			added = true
		}
		if added {
			p.Players = append(p.Players, c.player.ID)
		}
	}
	if stack && bonus != 0 {
		applyStackBonus(p, cands, bonus)
	}
	return p
}

// applyStackBonus credits bonus once per same-team (QB, WR) pair to the QB's
// QB-eligible variables and to the WR's WR-eligible variables. This is the
// linear relaxation of "QB and WR both start": a QB paired with two
// same-team WRs is credited twice even if only one WR starts.
func applyStackBonus(p *Problem, cands []candidate, bonus float64) {
	for _, q := range cands {
		if q.player.Position != model.QB || q.player.Team == "" {
			continue
		}
		for _, w := range cands {
			if w.player.Position != model.WR || !strings.EqualFold(w.player.Team, q.player.Team) {
				continue
			}
			for _, s := range p.Slots {
				if s.Accepts(model.QB) {
					if k := (Key{PlayerID: q.player.ID, Slot: s.Name}); hasKey(p, k) {
						p.Coef[k] += bonus
					}
				}
				if s.Accepts(model.WR) {
					if k := (Key{PlayerID: w.player.ID, Slot: s.Name}); hasKey(p, k) {
						p.Coef[k] += bonus
					}
				}
			}
		}
	}
}

func hasKey(p *Problem, k Key) bool {
	_, ok := p.Coef[k]
	return ok
}

// precheck rejects problems no exact solver can satisfy with every slot full.
func (p *Problem) precheck() error {
	if len(p.Slots) == 0 {
		return fmt.Errorf("%w: no slots", ErrInfeasible)
	}
	perSlot := make(map[string]int, len(p.Slots))
	for _, k := range p.Vars {
		perSlot[k.Slot]++
	}
	seen := make(map[string]struct{}, len(p.Slots))
	for _, s := range p.Slots {
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: duplicate slot %q", ErrInfeasible, s.Name)
		}
		seen[s.Name] = struct{}{}
		if perSlot[s.Name] < s.Count {
			return fmt.Errorf("%w: slot %s has %d candidates for %d places", ErrInfeasible, s.Name, perSlot[s.Name], s.Count)
		}
	}
	if len(p.Players) < totalStarters(p.Slots) {
		return fmt.Errorf("%w: %d candidates for %d places", ErrInfeasible, len(p.Players), totalStarters(p.Slots))
	}
	return nil
}

// verify checks a solver answer against the constraints.
func (p *Problem) verify(sel []Key) error {
	perSlot := make(map[string]int, len(p.Slots))
	perPlayer := make(map[string]int, len(sel))
	for _, k := range sel {
		if !hasKey(p, k) {
			return fmt.Errorf("%w: unknown variable %s/%s", ErrInvalidSolution, k.PlayerID, k.Slot)
		}
		perSlot[k.Slot]++
		perPlayer[k.PlayerID]++
		if perPlayer[k.PlayerID] > 1 {
			return fmt.Errorf("%w: %s starts more than once", ErrInvalidSolution, k.PlayerID)
		}
	}
	for _, s := range p.Slots {
		if perSlot[s.Name] != s.Count {
			return fmt.Errorf("%w: slot %s filled %d of %d", ErrInvalidSolution, s.Name, perSlot[s.Name], s.Count)
		}
	}
	return nil
}
