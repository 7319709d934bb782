package dedupe

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/okian/gridiron/internal/domain/model"
)

// athleteNamespace scopes name-derived athlete ids.
var athleteNamespace = uuid.MustParse("6f1c1f4e-8a3b-5d0e-9c57-2b1d7e0a4c11") //nolint:gochecknoglobals // fixed namespace

// nearMatchDistance is the edit distance under which two same-team,
// same-position names are treated as one athlete.
const nearMatchDistance = 1

var (
	suffixRe  = regexp.MustCompile(`\s+(jr|sr|ii|iii|iv|v)$`)             //nolint:gochecknoglobals // compiled once
	spaceRe   = regexp.MustCompile(`\s+`)                                 //nolint:gochecknoglobals // compiled once
	quoteRepl = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "´", "'", "–", "-", "—", "-", ".", "") //nolint:gochecknoglobals // immutable
)

// nflTeams are the abbreviations providers append to names ("Josh Allen BUF").
var nflTeams = map[string]struct{}{ //nolint:gochecknoglobals // immutable lookup
	"ari": {}, "atl": {}, "bal": {}, "buf": {}, "car": {}, "chi": {}, "cin": {}, "cle": {},
	"dal": {}, "den": {}, "det": {}, "gb": {}, "hou": {}, "ind": {}, "jax": {}, "kc": {},
	"lv": {}, "lac": {}, "lar": {}, "mia": {}, "min": {}, "ne": {}, "no": {}, "nyg": {},
	"nyj": {}, "phi": {}, "pit": {}, "sf": {}, "sea": {}, "tb": {}, "ten": {}, "wsh": {},
	"was": {}, "jac": {}, "la": {}, "dst": {}, "d/st": {},
}

// NormalizeName folds a display name to its comparison form: lower case,
// no diacritics or periods, unified quotes and dashes, trailing team tag and
// generational suffix removed, single spaces.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s); err == nil {
		s = folded
	}
	s = quoteRepl.Replace(s)
	s = spaceRe.ReplaceAllString(s, " ")

	if i := strings.LastIndexByte(s, ' '); i > 0 {
		if _, ok := nflTeams[s[i+1:]]; ok {
			s = s[:i]
		}
	}
	s = suffixRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Key returns the canonical athlete id for p. Players whose name normalizes
// to nothing fall back to their record id so they never collide.
func Key(p model.Player) string {
	n := NormalizeName(p.Name)
	if n == "" {
		return "id:" + p.ID
	}
	return uuid.NewSHA1(athleteNamespace, []byte(n)).String()
}

// SameAthlete reports whether two records describe one real player: equal
// canonical keys, or a one-edit name difference on the same team and position.
func SameAthlete(a, b model.Player) bool {
	if Key(a) == Key(b) {
		return true
	}
	if a.Position != b.Position || a.Team == "" || !strings.EqualFold(a.Team, b.Team) {
		return false
	}
	na, nb := NormalizeName(a.Name), NormalizeName(b.Name)
	if na == "" || nb == "" {
		return false
	}
	return fuzzy.LevenshteinDistance(na, nb) <= nearMatchDistance
}

// Candidate is a player record tagged with how much data references it.
type Candidate struct {
	Player         model.Player
	ProjectionRows int
}

// Better orders duplicate records: a provider id wins, then more projection
// rows, then the lexically smallest record id.
func Better(a, b Candidate) bool {
	ae, be := a.Player.ExternalID != "", b.Player.ExternalID != ""
	if ae != be {
		return ae
	}
	if a.ProjectionRows != b.ProjectionRows {
		return a.ProjectionRows > b.ProjectionRows
	}
	return a.Player.ID < b.Player.ID
}

// Best returns the preferred record among duplicates. It panics on an empty slice.
func Best(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if Better(c, best) {
			best = c
		}
	}
	return best
}

// Groups clusters records that describe the same athlete. Only clusters with
// more than one record are returned, each ordered best first; clusters are
// ordered by their best record's id.
func Groups(cands []Candidate) [][]Candidate {
	sorted := append([]Candidate(nil), cands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Player.ID < sorted[j].Player.ID })

	parent := make([]int, len(sorted))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if SameAthlete(sorted[i].Player, sorted[j].Player) {
				parent[find(j)] = find(i)
			}
		}
	}

	clusters := make(map[int][]Candidate)
	for i, c := range sorted {
		root := find(i)
		clusters[root] = append(clusters[root], c)
	}

	var out [][]Candidate
	for _, group := range clusters {
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return Better(group[i], group[j]) })
		out = append(out, group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0].Player.ID < out[j][0].Player.ID })
	return out
}
