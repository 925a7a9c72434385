package archive

import "strings"

// Player identity matching: exact lookup against raw names seen in prior
// imports, then a constrained fuzzy lookup by (last name, first initial,
// pitcher flag). Ambiguity is never auto-resolved — a tie means "no match"
// and is left for manual correction.

// KnowledgeBase is the read-only snapshot of previously-imported player
// identities taken at the start of each run.
type KnowledgeBase struct {
	byRaw map[string]Identity
	all   []Identity
}

// NewKnowledgeBase builds the lookup structures over a snapshot. The exact
// index is keyed by raw name strings already seen, so an exact hit can never
// be ambiguous.
func NewKnowledgeBase(identities []Identity) *KnowledgeBase {
	kb := &KnowledgeBase{byRaw: make(map[string]Identity, len(identities))}
	for _, id := range identities {
		if id.RawName != "" {
			kb.byRaw[id.RawName] = id
		}
		kb.all = append(kb.all, id)
	}
	return kb
}

// Size returns the number of identities in the snapshot.
func (kb *KnowledgeBase) Size() int { return len(kb.all) }

// Identities returns the raw snapshot (for the kb debug command).
func (kb *KnowledgeBase) Identities() []Identity { return kb.all }

// Match resolves a raw name against the knowledge base. On an exact miss it
// falls back to a (lastName, firstInitial, pitcher) lookup and accepts only
// a single candidate; zero or several candidates return ok=false.
func (kb *KnowledgeBase) Match(raw string, pitcher bool, res *Result) (Identity, bool) {
	if id, ok := kb.byRaw[raw]; ok {
		return id, true
	}

	last, initial, ok := splitName(raw)
	if !ok {
		return Identity{}, false
	}

	var candidate Identity
	found := 0
	for _, id := range kb.all {
		if id.Pitcher != pitcher {
			continue
		}
		idLast, idInitial, ok := splitName(nameOf(id))
		if !ok {
			continue
		}
		if strings.EqualFold(idLast, last) && strings.EqualFold(idInitial, initial) {
			candidate = id
			found++
			if found > 1 {
				break
			}
		}
	}

	switch found {
	case 1:
		res.Logf("fuzzy player match: %q -> %q", raw, nameOf(candidate))
		return candidate, true
	case 0:
		return Identity{}, false
	default:
		res.Logf("ambiguous player match for %q (%d candidates), left unresolved", raw, found)
		return Identity{}, false
	}
}

func nameOf(id Identity) string {
	if id.FullName != "" {
		return id.FullName
	}
	return id.RawName
}

// splitName parses a raw player name into last name and first initial.
// Handled shapes: "Last, F", "F Last", "First Last". Whichever token has
// length 1 supplies the initial; otherwise the first token's initial and the
// final token as the last name.
func splitName(raw string) (last, initial string, ok bool) {
	cleaned := strings.ReplaceAll(raw, ",", " ")
	fields := strings.Fields(cleaned)
	if len(fields) < 2 {
		return "", "", false
	}

	if strings.Contains(raw, ",") {
		// "Last, F" — tokens before the comma are the last name
		commaIdx := strings.Index(raw, ",")
		last = strings.TrimSpace(raw[:commaIdx])
		rest := strings.Fields(raw[commaIdx+1:])
		if last == "" || len(rest) == 0 {
			return "", "", false
		}
		return last, rest[0][:1], true
	}

	for i, f := range fields {
		if len(f) == 1 {
			// "F Last" (or "Last F"): the 1-char token is the initial
			others := append(append([]string{}, fields[:i]...), fields[i+1:]...)
			return others[len(others)-1], f, true
		}
	}

	// "First Last"
	return fields[len(fields)-1], fields[0][:1], true
}
