package archive

import "strings"

// rosterSection is the tiny state machine tracking whether the row scan is
// currently inside the hitter or the pitcher block of a sheet. Two states,
// two triggers: an explicit section-header keyword, or a recognized
// roster-slot token. Threaded through the scan loops as a value, never a
// shared flag.
type rosterSection struct {
	pitcher bool
}

var pitcherSectionKeywords = []string{"pitchers", "pitching", "staff"}
var hitterSectionKeywords = []string{"hitters", "hitting", "batters"}

// applyKeyword transitions on an explicit section-header cell. The second
// return reports whether the cell was a section header at all.
func (s rosterSection) applyKeyword(cellValue string) (rosterSection, bool) {
	lower := strings.ToLower(strings.TrimSpace(cellValue))
	for _, kw := range pitcherSectionKeywords {
		if strings.Contains(lower, kw) {
			return rosterSection{pitcher: true}, true
		}
	}
	for _, kw := range hitterSectionKeywords {
		if strings.Contains(lower, kw) {
			return rosterSection{pitcher: false}, true
		}
	}
	return s, false
}

// applyPosition transitions on a roster-slot token. Bench and IL tokens do
// not carry section information and leave the state unchanged.
func (s rosterSection) applyPosition(token string) rosterSection {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if pitcherTokens[upper] {
		return rosterSection{pitcher: true}
	}
	if hitterTokens[upper] {
		return rosterSection{pitcher: false}
	}
	return s
}
