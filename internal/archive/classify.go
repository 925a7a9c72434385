package archive

import (
	"regexp"
	"strconv"
	"strings"
)

// Classification is the outcome of sorting a workbook's sheets by purpose.
type Classification struct {
	DraftSheet       string
	StandingsSheet   string
	PeriodCandidates []string
	Ignored          []string
}

var standingsKeywords = []string{"standing", "final stat", "league stats", "scoring", "cumulative"}

var ignoredKeywords = []string{"transaction", "info", "salary", "traded", "keeper"}

var ignoredExact = map[string]bool{
	"rosters":     true,
	"ranks":       true,
	"projections": true,
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// ClassifySheets labels every sheet in the workbook by name. Pure function of
// the names and the target year; sheets whose names carry a year older than
// the target are stale carry-over tabs from a prior season's template and are
// ignored.
func ClassifySheets(names []string, targetYear int) Classification {
	var c Classification
	for _, name := range names {
		lower := strings.ToLower(strings.TrimSpace(name))

		if c.DraftSheet == "" && strings.Contains(lower, "draft") {
			c.DraftSheet = name
			continue
		}
		if c.StandingsSheet == "" && containsAny(lower, standingsKeywords) {
			c.StandingsSheet = name
			continue
		}
		if containsAny(lower, ignoredKeywords) || ignoredExact[lower] {
			c.Ignored = append(c.Ignored, name)
			continue
		}
		if m := yearPattern.FindStringSubmatch(lower); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil && y < targetYear {
				c.Ignored = append(c.Ignored, name)
				continue
			}
		}
		c.PeriodCandidates = append(c.PeriodCandidates, name)
	}
	return c
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
