package lineup

// greedy fills slots in table order, each with the best unused eligible
// candidate. cands must be sorted by value descending then id. Slots with no
// eligible candidate left stay empty.
func greedy(slots []Slot, cands []candidate) []Key {
	used := make(map[string]struct{}, len(cands))
	var sel []Key
	for _, s := range expand(slots) {
		for _, c := range cands {
			if _, ok := used[c.player.ID]; ok || !s.Accepts(c.player.Position) {
				continue
			}
			used[c.player.ID] = struct{}{}
			sel = append(sel, Key{PlayerID: c.player.ID, Slot: s.Name})
			break
		}
	}
	return sel
}

// relabel reassigns the solver's chosen players to slots in table order.
// Each seat takes the best remaining eligible player that still leaves the
// later seats fillable, so equal-value solutions always get the same labels.
// It reports false when the chosen set does not fill the table exactly.
func relabel(slots []Slot, cands []candidate, sel []Key) ([]Key, bool) {
	picked := make(map[string]struct{}, len(sel))
	for _, k := range sel {
		picked[k.PlayerID] = struct{}{}
	}
	chosen := make([]candidate, 0, len(picked))
	for _, c := range cands {
		if _, ok := picked[c.player.ID]; ok {
			chosen = append(chosen, c)
		}
	}
	seats := expand(slots)
	if len(chosen) != len(seats) || len(chosen) != len(picked) {
		return nil, false
	}

	used := make([]bool, len(chosen))
	out := make([]Key, 0, len(seats))
	for i, s := range seats {
		placed := false
		for j, c := range chosen {
			if used[j] || !s.Accepts(c.player.Position) {
				continue
			}
			used[j] = true
			if fillable(seats[i+1:], chosen, used) {
				out = append(out, Key{PlayerID: c.player.ID, Slot: s.Name})
				placed = true
				break
			}
			used[j] = false
		}
		if !placed {
			return nil, false
		}
	}
	return out, true
}

// fillable reports whether every seat can take a distinct unused player,
// using augmenting paths.
func fillable(seats []Slot, players []candidate, used []bool) bool {
	owner := make([]int, len(players))
	for i := range owner {
		owner[i] = -1
	}
	var try func(seat int, visited []bool) bool
	try = func(seat int, visited []bool) bool {
		for j, c := range players {
			if used[j] || visited[j] || !seats[seat].Accepts(c.player.Position) {
				continue
			}
			visited[j] = true
			if owner[j] < 0 || try(owner[j], visited) {
				owner[j] = seat
				return true
			}
		}
		return false
	}
	for seat := range seats {
		if !try(seat, make([]bool, len(players))) {
			return false
		}
	}
	return true
}
