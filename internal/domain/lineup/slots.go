package lineup

import (
	"slices"

	"github.com/okian/gridiron/internal/domain/model"
)

// FlexSlot is the name of the shared RB/WR/TE slot.
const FlexSlot = "FLEX"

// Slot is one line of the lineup requirement table.
type Slot struct {
	Name     string           `json:"name" yaml:"name" koanf:"name"`
	Count    int              `json:"count" yaml:"count" koanf:"count"`
	Eligible []model.Position `json:"eligible" yaml:"eligible" koanf:"eligible"`
}

// Accepts reports whether a player at pos may fill the slot.
func (s Slot) Accepts(pos model.Position) bool {
	return slices.Contains(s.Eligible, pos)
}

// DefaultSlots returns the standard eight-starter table.
func DefaultSlots() []Slot {
	return []Slot{
		{Name: "QB", Count: 1, Eligible: []model.Position{model.QB}},
		{Name: "RB", Count: 2, Eligible: []model.Position{model.RB}},
		{Name: "WR", Count: 2, Eligible: []model.Position{model.WR}},
		{Name: "TE", Count: 1, Eligible: []model.Position{model.TE}},
		{Name: FlexSlot, Count: 1, Eligible: []model.Position{model.RB, model.WR, model.TE}},
		{Name: "K", Count: 1, Eligible: []model.Position{model.K}},
		{Name: "DST", Count: 1, Eligible: []model.Position{model.DST}},
	}
}

// expand lists slot names in fill order, repeating each by its count.
func expand(slots []Slot) []Slot {
	var out []Slot
	for _, s := range slots {
		for range s.Count {
			out = append(out, s)
		}
	}
	return out
}

func totalStarters(slots []Slot) int {
	n := 0
	for _, s := range slots {
		n += s.Count
	}
	return n
}
