// Package service wires the valuation components together with
// configuration, logging and metrics.
package service

import (
	"context"
	"sort"

	"github.com/jonboulle/clockwork"

	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/domain/dedupe"
	"github.com/okian/gridiron/internal/domain/draft"
	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/projection"
	"github.com/okian/gridiron/internal/domain/trade"
	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/internal/domain/vorp"
	"github.com/okian/gridiron/internal/domain/waiver"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// Service runs analyses over caller-supplied snapshots. It holds no
// per-snapshot state and is safe for concurrent use.
type Service struct {
	cfg    *config.Config
	solver lineup.Solver

	blender   *projection.Blender
	vorp      *vorp.Model
	optimizer *lineup.Optimizer
	waivers   *waiver.Ranker
	trades    *trade.Evaluator
	board     *draft.Board

	logger  logger.Logger
	metrics *metrics.Manager
	clock   clockwork.Clock
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration the components are built from. The
// config must already be validated.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records on m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSolver replaces the exact lineup solver.
func WithSolver(solver lineup.Solver) Option {
	return func(s *Service) {
		s.solver = solver
	}
}

// WithClock sets the clock used to time lineup solves.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// New constructs a Service. Without WithConfig it uses config.New().
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg == nil {
		s.cfg = config.New()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.metrics == nil {
		s.metrics = metrics.Global()
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}

	c := s.cfg
	s.blender = projection.NewBlender(projection.WithWeights(c.BlendWeights()))
	s.vorp = vorp.NewModel(vorp.WithReplacementIndex(c.VORPIndex()))
	s.optimizer = lineup.NewOptimizer(
		lineup.WithSlots(c.SlotTable()),
		lineup.WithInjuryPenalties(c.InjuryTable()),
		lineup.WithStackBonusValue(c.StackBonusValue),
		lineup.WithSolver(s.solver),
	)
	s.waivers = waiver.NewRanker(
		waiver.WithTopN(c.WaiverTopN),
		waiver.WithFAABRange(c.FAABMin, c.FAABMax),
	)
	s.trades = trade.NewEvaluator(trade.WithFairnessScale(c.TradeFairnessScale))
	s.board = draft.NewBoard(
		draft.WithTopN(c.DraftTopN),
		draft.WithReachPenalty(c.DraftReachPenalty),
	)
	return s
}

// Week resolves the target week of snap, falling back to the configured one.
func (s *Service) Week(snap *model.Snapshot) int {
	if snap.Week > 0 {
		return snap.Week
	}
	return s.cfg.Week
}

// DefaultParams returns the configured lineup objective for week.
func (s *Service) DefaultParams(week int) lineup.Params {
	return lineup.Params{
		Week:       week,
		Objective:  lineup.Objective(s.cfg.Objective),
		Lambda:     s.cfg.RiskLambda,
		StackBonus: s.cfg.StackBonus,
	}
}

// Blend returns blended projections for the snapshot's week.
func (s *Service) Blend(ctx context.Context, snap *model.Snapshot) map[string]projection.Value {
	return s.blend(ctx, snap, s.Week(snap))
}

func (s *Service) blend(ctx context.Context, snap *model.Snapshot, week int) map[string]projection.Value {
	res := s.blender.Blend(week, snap.PlayerIndex(), snap.Projections)
	s.metrics.RecordBlend(len(res.Values), len(res.Excluded))
	if len(res.Excluded) > 0 {
		s.logger.Debug(ctx, "players without a configured source",
			logger.Int("week", week),
			logger.Any("excluded", res.Excluded),
		)
	}
	return res.Values
}

// Baselines returns the replacement baseline per position.
func (s *Service) Baselines(ctx context.Context, snap *model.Snapshot) map[model.Position]float64 {
	return s.vorp.Baselines(s.Blend(ctx, snap))
}

// VORP returns value over replacement for every blended player.
func (s *Service) VORP(ctx context.Context, snap *model.Snapshot) map[string]float64 {
	return s.vorp.Compute(s.Blend(ctx, snap)).VORP
}

// OptimizeLineup picks my starting lineup for p.Week.
func (s *Service) OptimizeLineup(ctx context.Context, snap *model.Snapshot, p lineup.Params) types.LineupResult {
	return s.optimize(ctx, snap, s.blend(ctx, snap, p.Week), p)
}

// Override replaces a player's blended numbers for one what-if run.
type Override struct {
	Expected *float64 `json:"expected,omitempty" yaml:"expected,omitempty"`
	Stdev    *float64 `json:"stdev,omitempty" yaml:"stdev,omitempty"`
}

// WhatIf optimizes with overrides applied to a copy of the blended values.
// Overrides for players without a blended value are ignored.
func (s *Service) WhatIf(ctx context.Context, snap *model.Snapshot, p lineup.Params, overrides map[string]Override) types.LineupResult {
	values := s.blend(ctx, snap, p.Week)
	applied := 0
	for pid, o := range overrides {
		v, ok := values[pid]
		if !ok {
			continue
		}
		if o.Expected != nil {
			v.Expected = *o.Expected
		}
		if o.Stdev != nil {
			sd := *o.Stdev
			v.Stdev = &sd
		}
		values[pid] = v
		applied++
	}
	s.logger.Info(ctx, "what-if overrides applied",
		logger.Int("requested", len(overrides)),
		logger.Int("applied", applied),
	)
	return s.optimize(ctx, snap, values, p)
}

func (s *Service) optimize(ctx context.Context, snap *model.Snapshot, values map[string]projection.Value, p lineup.Params) types.LineupResult {
	start := s.clock.Now()
	res := s.optimizer.Optimize(snap, values, p)
	took := s.clock.Since(start)
	s.metrics.RecordLineupSolve(res.Solver, took)

	fields := []logger.Field{
		logger.Int("week", p.Week),
		logger.String("objective", string(p.Objective)),
		logger.Bool("stack", p.StackBonus),
		logger.String("solver", res.Solver),
		logger.Int("starters", len(res.Starters)),
		logger.Int("bench", len(res.Bench)),
		logger.Duration("took", took),
	}
	if res.Solver == types.SolverGreedy {
		s.logger.Warn(ctx, "lineup solved by greedy fallback", append(fields, logger.String("reason", res.FallbackReason))...)
	} else {
		s.logger.Info(ctx, "lineup solved", fields...)
	}
	return res
}

// Waivers ranks free agents for the snapshot's week.
func (s *Service) Waivers(ctx context.Context, snap *model.Snapshot) []types.WaiverSuggestion {
	recs := s.waivers.Rank(snap, s.VORP(ctx, snap))
	s.metrics.RecordWaiverSuggestions(len(recs))
	s.logger.Info(ctx, "waiver suggestions ranked", logger.Int("week", s.Week(snap)), logger.Int("count", len(recs)))
	return recs
}

// EvaluateTrade scores receiving in for giving up out.
func (s *Service) EvaluateTrade(ctx context.Context, snap *model.Snapshot, in, out []string) types.TradeEvaluation {
	ev := s.trades.Evaluate(s.VORP(ctx, snap), in, out)
	s.metrics.RecordTradeEvaluation()
	s.logger.Info(ctx, "trade evaluated",
		logger.Any("in", in),
		logger.Any("out", out),
		logger.Float64("delta_my", ev.DeltaMy),
		logger.Float64("fairness", ev.Fairness),
	)
	return ev
}

// DraftBoard ranks draft candidates per position for round and pick.
func (s *Service) DraftBoard(ctx context.Context, snap *model.Snapshot, round, pick int) map[model.Position][]types.DraftPick {
	board := s.board.BestPicks(snap, s.VORP(ctx, snap), round, pick)
	s.metrics.RecordDraftBoard()
	s.logger.Info(ctx, "draft board built", logger.Int("round", round), logger.Int("pick", pick))
	return board
}

// RosterVORP sums VORP over every player on my team.
func (s *Service) RosterVORP(ctx context.Context, snap *model.Snapshot) float64 {
	v := s.VORP(ctx, snap)
	var vals []float64
	for pid, ra := range snap.RosterIndex() {
		if ra.MyTeam {
			vals = append(vals, v[pid])
		}
	}
	sort.Float64s(vals)
	var total float64
	for _, x := range vals {
		total += x
	}
	s.metrics.SetRosterVORP(total)
	return total
}

// Duplicates lists athletes that more than one player record describes.
// Records are matched by canonical name key or a one-edit name difference
// on the same team and position, and each group puts the record to keep
// first.
func (s *Service) Duplicates(ctx context.Context, snap *model.Snapshot) []types.DuplicateGroup {
	rows := make(map[string]int)
	for _, r := range snap.Projections {
		rows[r.PlayerID]++
	}
	idx := snap.PlayerIndex()
	cands := make([]dedupe.Candidate, 0, len(idx))
	for pid, pl := range idx {
		cands = append(cands, dedupe.Candidate{Player: pl, ProjectionRows: rows[pid]})
	}

	groups := dedupe.Groups(cands)
	out := make([]types.DuplicateGroup, 0, len(groups))
	for _, g := range groups {
		dg := types.DuplicateGroup{Keep: g[0].Player.ID, Records: make([]types.DuplicateRecord, 0, len(g))}
		for _, c := range g {
			dg.Records = append(dg.Records, types.DuplicateRecord{
				PlayerID:       c.Player.ID,
				Name:           c.Player.Name,
				Position:       c.Player.Position,
				Team:           c.Player.Team,
				ExternalID:     c.Player.ExternalID,
				ProjectionRows: c.ProjectionRows,
			})
		}
		out = append(out, dg)
	}
	s.metrics.SetDuplicateGroups(len(out))
	if len(out) > 0 {
		s.logger.Warn(ctx, "duplicate player records", logger.Int("groups", len(out)))
	}
	return out
}
