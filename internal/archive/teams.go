package archive

import (
	"sort"
	"strings"
)

// AliasDictionary maps free-text spellings of a team name to its canonical
// short code. Keys are matched after normalization, so entries here can be
// written the way they actually appear in old workbooks.
type AliasDictionary map[string]string

// DefaultAliases covers every spelling observed in the 2008–2025 workbooks.
// Eighteen years of hand-typed tab headers produced a lot of variants.
var DefaultAliases = AliasDictionary{
	"dodger dawgs":    "DD",
	"dodger dogs":     "DD",
	"dawgs":           "DD",
	"d-dawgs":         "DD",
	"devil dawgs":     "DEV",
	"devil dogs":      "DEV",
	"devils":          "DEV",
	"the show":        "SHO",
	"show":            "SHO",
	"raging sluggers": "RAG",
	"sluggers":        "RAG",
	"bronx bombers":   "BOM",
	"bombers":         "BOM",
	"mudcats":         "MUD",
	"muddy mudcats":   "MUD",
	"wrecking crew":   "WRC",
	"the crew":        "WRC",
	"moonshots":       "MOON",
	"moon shots":      "MOON",
	"junkyard":        "JY",
	"junkyard dogs":   "JY",
	"sandlot kings":   "SK",
	"kings":           "SK",
	"hot corner":      "HC",
	"hot corner hh":   "HC",
}

// TeamResolver normalizes free-text cell values to canonical team codes.
// It is used both to recognize team-header cells during layout detection and
// to classify cell content as team noise during unrolling.
type TeamResolver struct {
	aliases map[string]string // normalized alias -> code
	codes   map[string]bool   // canonical codes
	fuzzy   []string          // normalized aliases len>3, longest first
}

// NewTeamResolver builds a resolver over an alias dictionary.
func NewTeamResolver(dict AliasDictionary) *TeamResolver {
	r := &TeamResolver{
		aliases: make(map[string]string, len(dict)),
		codes:   make(map[string]bool),
	}
	for alias, code := range dict {
		n := Normalize(alias)
		r.aliases[n] = code
		r.codes[code] = true
		if len(n) > 3 {
			r.fuzzy = append(r.fuzzy, n)
		}
	}
	// Longest alias first so the most specific spelling wins a fuzzy match.
	sort.Slice(r.fuzzy, func(i, j int) bool {
		if len(r.fuzzy[i]) != len(r.fuzzy[j]) {
			return len(r.fuzzy[i]) > len(r.fuzzy[j])
		}
		return r.fuzzy[i] < r.fuzzy[j]
	})
	return r
}

// Normalize lowercases and strips everything non-alphanumeric.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve maps a raw cell value to a canonical team code, or "" when the
// value is not recognizably a team. Match order: exact normalized alias,
// exact canonical code, then fuzzy substring against aliases longer than
// three characters.
func (r *TeamResolver) Resolve(raw string) string {
	n := Normalize(raw)
	if n == "" {
		return ""
	}
	if code, ok := r.aliases[n]; ok {
		return code
	}
	if upper := strings.ToUpper(strings.TrimSpace(raw)); r.codes[upper] {
		return upper
	}
	for _, alias := range r.fuzzy {
		if strings.Contains(n, alias) || strings.Contains(alias, n) {
			return r.aliases[alias]
		}
	}
	return ""
}
