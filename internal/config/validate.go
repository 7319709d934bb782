package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/projection"
	"github.com/okian/gridiron/internal/domain/vorp"
)

// Validate normalizes position and designation keys to their canonical upper
// case and checks every table. It must be called before the conversion
// helpers below.
func (c *Config) Validate() error {
	c.Objective = strings.ToLower(strings.TrimSpace(c.Objective))
	switch lineup.Objective(c.Objective) {
	case lineup.ObjectiveExpected, lineup.ObjectiveRisk:
	default:
		return fmt.Errorf("%w: objective %q must be expected or risk", ErrInvalidConfig, c.Objective)
	}
	if c.RiskLambda < 0 {
		return fmt.Errorf("%w: risk_lambda must be >= 0", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}

	weights, err := canonicalKeys(c.SourceWeights, positionKey, "position")
	if err != nil {
		return err
	}
	for pos, sources := range weights {
		sources, err = canonicalKeys(sources, sourceKey, "source")
		if err != nil {
			return fmt.Errorf("source_weights %s: %w", pos, err)
		}
		for src, w := range sources {
			if w < 0 {
				return fmt.Errorf("%w: weight %s/%s must be >= 0", ErrInvalidConfig, pos, src)
			}
		}
		weights[pos] = sources
	}
	c.SourceWeights = weights

	idx, err := canonicalKeys(c.ReplacementIndex, positionKey, "position")
	if err != nil {
		return err
	}
	for pos, n := range idx {
		if n < 1 {
			return fmt.Errorf("%w: replacement_index %s must be >= 1", ErrInvalidConfig, pos)
		}
	}
	c.ReplacementIndex = idx

	penalties, err := canonicalKeys(c.InjuryPenalties, injuryKey, "injury designation")
	if err != nil {
		return err
	}
	c.InjuryPenalties = penalties

	if err := c.validateSlots(); err != nil {
		return err
	}

	if c.FAABMin < 1 || c.FAABMin > c.FAABMax {
		return fmt.Errorf("%w: faab range [%d, %d]", ErrInvalidConfig, c.FAABMin, c.FAABMax)
	}
	if c.WaiverTopN < 1 || c.DraftTopN < 1 {
		return fmt.Errorf("%w: waiver_top_n and draft_top_n must be >= 1", ErrInvalidConfig)
	}
	if c.TradeFairnessScale < 0 || c.DraftReachPenalty < 0 {
		return fmt.Errorf("%w: trade_fairness_scale and draft_reach_penalty must be >= 0", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validateSlots() error {
	if len(c.LineupSlots) == 0 {
		return fmt.Errorf("%w: at least one lineup slot is required", ErrInvalidConfig)
	}
	names := make(map[string]struct{}, len(c.LineupSlots))
	for i, s := range c.LineupSlots {
		name := strings.ToUpper(strings.TrimSpace(s.Name))
		if name == "" {
			return fmt.Errorf("%w: lineup slot %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("%w: duplicate lineup slot %s", ErrInvalidConfig, name)
		}
		names[name] = struct{}{}
		if s.Count < 1 {
			return fmt.Errorf("%w: lineup slot %s count must be >= 1", ErrInvalidConfig, name)
		}
		if len(s.Eligible) == 0 {
			return fmt.Errorf("%w: lineup slot %s has no eligible positions", ErrInvalidConfig, name)
		}
		eligible := make([]string, 0, len(s.Eligible))
		for _, e := range s.Eligible {
			pos, ok := model.ParsePosition(e)
			if !ok {
				return fmt.Errorf("%w: lineup slot %s: unknown position %q", ErrInvalidConfig, name, e)
			}
			eligible = append(eligible, string(pos))
		}
		c.LineupSlots[i] = SlotConfig{Name: name, Count: s.Count, Eligible: eligible}
	}
	return nil
}

// canonicalKeys re-keys in through canon. koanf merges file keys into the
// defaults without folding case, so a key spelled differently from its
// canonical form can only come from the user and wins over the canonical
// entry. Two different user spellings of one entry are rejected.
func canonicalKeys[V any](in map[string]V, canon func(string) (string, bool), what string) (map[string]V, error) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[string]V, len(in))
	spelled := make(map[string]string, len(in))
	for _, k := range keys {
		key, ok := canon(k)
		if !ok {
			return nil, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, what, k)
		}
		if k == key {
			if _, ok := spelled[key]; !ok {
				out[key] = in[k]
			}
			continue
		}
		if prev, dup := spelled[key]; dup {
			return nil, fmt.Errorf("%w: %s keys %q and %q both name %s", ErrInvalidConfig, what, prev, k, key)
		}
		spelled[key] = k
		out[key] = in[k]
	}
	return out, nil
}

func positionKey(k string) (string, bool) {
	pos, ok := model.ParsePosition(k)
	return string(pos), ok
}

func sourceKey(k string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(k))
	return s, s != ""
}

// injuryKey accepts only designations that carry a penalty.
func injuryKey(k string) (string, bool) {
	st := model.ParseInjuryStatus(k)
	return string(st), st != model.InjuryActive
}

// BlendWeights returns the source weight table for the blender.
func (c *Config) BlendWeights() projection.Weights {
	w := make(projection.Weights, len(c.SourceWeights))
	for pos, sources := range c.SourceWeights {
		m := make(map[string]float64, len(sources))
		for src, v := range sources {
			m[src] = v
		}
		w[model.Position(pos)] = m
	}
	return w
}

// VORPIndex returns the replacement index table.
func (c *Config) VORPIndex() vorp.Index {
	idx := make(vorp.Index, len(c.ReplacementIndex))
	for pos, n := range c.ReplacementIndex {
		idx[model.Position(pos)] = n
	}
	return idx
}

// InjuryTable returns the lineup injury adjustments.
func (c *Config) InjuryTable() lineup.Penalties {
	p := make(lineup.Penalties, len(c.InjuryPenalties))
	for k, v := range c.InjuryPenalties {
		p[model.InjuryStatus(k)] = v
	}
	return p
}

// SlotTable returns the lineup requirement table.
func (c *Config) SlotTable() []lineup.Slot {
	out := make([]lineup.Slot, 0, len(c.LineupSlots))
	for _, s := range c.LineupSlots {
		sl := lineup.Slot{Name: s.Name, Count: s.Count}
		for _, e := range s.Eligible {
			sl.Eligible = append(sl.Eligible, model.Position(e))
		}
		out = append(out, sl)
	}
	return out
}
