// Package lineup picks the highest-value legal starting lineup for a week.
package lineup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/gridiron/internal/domain/dedupe"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/projection"
	"github.com/okian/gridiron/internal/domain/types"
)

// DefaultStackBonus is the credit for a same-team QB and WR pairing.
const DefaultStackBonus = 0.5

// Params selects the objective for one optimization.
type Params struct {
	Week       int
	Objective  Objective
	Lambda     float64
	StackBonus bool
}

// Option applies a configuration option to the Optimizer.
type Option func(*Optimizer)

// WithSlots replaces the lineup requirement table.
func WithSlots(slots []Slot) Option {
	return func(o *Optimizer) {
		if len(slots) > 0 {
			o.slots = append([]Slot(nil), slots...)
		}
	}
}

// WithInjuryPenalties replaces the injury adjustment table.
func WithInjuryPenalties(p Penalties) Option {
	return func(o *Optimizer) {
		if p == nil {
			return
		}
		o.penalties = make(Penalties, len(p))
		for k, v := range p {
			o.penalties[k] = v
		}
	}
}

// WithStackBonusValue sets the per-pair stacking credit.
func WithStackBonusValue(v float64) Option {
	return func(o *Optimizer) {
		o.stackBonus = v
	}
}

// WithSolver replaces the exact solver.
func WithSolver(s Solver) Option {
	return func(o *Optimizer) {
		if s != nil {
			o.solver = s
		}
	}
}

// Optimizer holds the lineup tables and solver. It keeps no per-call state.
type Optimizer struct {
	slots      []Slot
	penalties  Penalties
	stackBonus float64
	solver     Solver
}

// NewOptimizer creates an Optimizer with the default tables and the simplex solver.
func NewOptimizer(opts ...Option) *Optimizer {
	o := &Optimizer{
		slots:      DefaultSlots(),
		penalties:  DefaultPenalties(),
		stackBonus: DefaultStackBonus,
		solver:     NewSimplexSolver(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Slots returns a copy of the requirement table.
func (o *Optimizer) Slots() []Slot {
	return append([]Slot(nil), o.slots...)
}

type candidate struct {
	player model.Player
	value  float64
	injury *model.InjuryRecord
	key    string
}

// Optimize selects starters from my rostered players (start, bench or IR)
// that have a blended value. Solver failures of any kind fall back to the
// greedy fill and are reported on the result, never returned.
func (o *Optimizer) Optimize(snap *model.Snapshot, values map[string]projection.Value, p Params) types.LineupResult {
	cands := o.candidates(snap, values, p)

	byID := append([]candidate(nil), cands...)
	sort.Slice(byID, func(i, j int) bool { return byID[i].player.ID < byID[j].player.ID })

	res := types.LineupResult{
		Week:      p.Week,
		Objective: string(p.Objective),
		Solver:    types.SolverILP,
		Rationale: make(map[string]string),
	}

	sel, err := o.solve(buildProblem(o.slots, byID, p.StackBonus, o.stackBonus))
	switch {
	case err != nil:
		res.Solver = types.SolverGreedy
		res.FallbackReason = err.Error()
		sel = greedy(o.slots, cands)
	default:
		if keys, ok := relabel(o.slots, cands, sel); ok {
			sel = keys
		}
	}

	o.assemble(&res, snap.GameIndex(p.Week), cands, sel)
	return res
}

func (o *Optimizer) solve(prob *Problem) ([]Key, error) {
	sel, err := o.solver.Solve(prob)
	if err != nil {
		return nil, err
	}
	if err := prob.verify(sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// candidates returns the pool sorted by value descending then id.
func (o *Optimizer) candidates(snap *model.Snapshot, values map[string]projection.Value, p Params) []candidate {
	players := snap.PlayerIndex()
	injuries := snap.InjuryIndex(p.Week)
	rosters := snap.RosterIndex()

	ids := make([]string, 0, len(rosters))
	for pid := range rosters {
		ids = append(ids, pid)
	}
	sort.Strings(ids)

	var out []candidate
	for _, pid := range ids {
		ra := rosters[pid]
		if !ra.MyTeam || !poolStatus(ra.Status) {
			continue
		}
		pl, ok := players[pid]
		if !ok {
			continue
		}
		v, ok := values[pid]
		if !ok {
			continue
		}
		c := candidate{player: pl, key: dedupe.Key(pl)}
		status := model.InjuryActive
		if ir, ok := injuries[pid]; ok {
			c.injury = &ir
			status = model.ParseInjuryStatus(ir.Status)
		}
		c.value = o.Value(v, status, p)
		out = append(out, c)
	}
	sortByValue(out)
	return out
}

func poolStatus(s model.RosterStatus) bool {
	switch s {
	case model.StatusStart, model.StatusBench, model.StatusIR:
		return true
	default:
		return false
	}
}

func sortByValue(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].value != cs[j].value {
			return cs[i].value > cs[j].value
		}
		return cs[i].player.ID < cs[j].player.ID
	})
}

// assemble orders starters by slot table order, then bench by value with
// one entry per athlete.
func (o *Optimizer) assemble(res *types.LineupResult, games map[string]model.GameContext, cands []candidate, sel []Key) {
	bySlot := make(map[string]map[string]struct{}, len(o.slots))
	started := make(map[string]struct{}, len(sel))
	for _, k := range sel {
		if bySlot[k.Slot] == nil {
			bySlot[k.Slot] = make(map[string]struct{})
		}
		bySlot[k.Slot][k.PlayerID] = struct{}{}
		started[k.PlayerID] = struct{}{}
	}

	seen := dedupe.NewInMemoryDeduper()
	res.Starters = make([]types.Starter, 0, len(sel))
	for _, s := range o.slots {
		for _, c := range cands {
			if _, ok := bySlot[s.Name][c.player.ID]; !ok {
				continue
			}
			st := types.Starter{
				PlayerID: c.player.ID,
				Name:     c.player.Name,
				Slot:     s.Name,
				Position: c.player.Position,
				Team:     c.player.Team,
				Value:    c.value,
				Injury:   injuryNote(c.injury),
			}
			st.Opponent, st.Home, st.Weather = gameContext(games, c.player.Team)
			res.Starters = append(res.Starters, st)
			res.Rationale[c.player.ID] = rationale(res.Solver, c.value)
			seen.SeenAndRecord(c.key)
		}
	}

	res.Bench = make([]types.BenchEntry, 0, len(cands))
	for _, c := range cands {
		if _, ok := started[c.player.ID]; ok {
			continue
		}
		if seen.SeenAndRecord(c.key) {
			continue
		}
		be := types.BenchEntry{
			PlayerID: c.player.ID,
			Name:     c.player.Name,
			Position: c.player.Position,
			Team:     c.player.Team,
			Value:    c.value,
			Injury:   injuryNote(c.injury),
		}
		be.Opponent, be.Home, be.Weather = gameContext(games, c.player.Team)
		res.Bench = append(res.Bench, be)
	}
}

func rationale(solver string, value float64) string {
	if solver == types.SolverGreedy {
		return fmt.Sprintf("Greedy selection value %.2f.", value)
	}
	return fmt.Sprintf("Projection %.2f; injury/weather considered.", value)
}

func injuryNote(r *model.InjuryRecord) *string {
	if r == nil {
		return nil
	}
	s := string(model.ParseInjuryStatus(r.Status))
	return &s
}

func gameContext(games map[string]model.GameContext, team string) (*string, *bool, *model.Weather) {
	g, ok := games[strings.ToUpper(team)]
	if !ok || team == "" {
		return nil, nil, nil
	}
	var opp *string
	if g.Opponent != "" {
		o := g.Opponent
		opp = &o
	}
	home := g.Home
	var w *model.Weather
	if g.Weather != nil {
		wc := *g.Weather
		w = &wc
	}
	return opp, &home, w
}
