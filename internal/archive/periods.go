package archive

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Period boundary resolution: turn the free-form tab names humans gave the
// period sheets ("4.15", "Period 3", "June 12", "Final Stats") into an
// ordered, contiguous period table covering the whole season.

var (
	periodNumberPattern = regexp.MustCompile(`(?i)period[ _](\d{1,2})`)
	monthDayPattern     = regexp.MustCompile(`(\d{1,2})[./\-](\d{1,2})`)
)

var lateSeasonKeywords = []string{"final", "season", "end"}

// genericDateLayouts are tried against "<sheet name> <year>" as a last
// resort, covering tabs like "June 12" or "Aug. 3".
var genericDateLayouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"Jan. 2 2006",
	"January 2006",
}

type datedSheet struct {
	name string
	date time.Time
}

// ResolvePeriods derives the season's period table from the classified sheet
// names. Sheets that yield no date are dropped with a warning; the result is
// capped at MaxPeriods and the last period's end is always forced to the
// season's fixed closing date so the table covers the full season.
func ResolvePeriods(c Classification, year int, res *Result) []Period {
	cal := CalendarFor(year)

	var dated []datedSheet
	for _, name := range c.PeriodCandidates {
		d, how, ok := resolveSheetDate(name, year, cal)
		if !ok {
			res.Warnf("period sheet %q: no date could be derived, sheet dropped", name)
			continue
		}
		res.Logf("period sheet %q dated %s (%s)", name, d.Format("2006-01-02"), how)
		dated = append(dated, datedSheet{name: name, date: d})
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].date.Before(dated[j].date) })

	// Two tabs resolving to the same date would produce a zero-length gap and
	// an inverted period; keep the first, drop the rest.
	deduped := dated[:0]
	for _, ds := range dated {
		if n := len(deduped); n > 0 && ds.date.Equal(deduped[n-1].date) {
			res.Logf("period sheet %q resolves to %s, already taken by %q, sheet dropped (standardization)",
				ds.name, ds.date.Format("2006-01-02"), deduped[n-1].name)
			continue
		}
		deduped = append(deduped, ds)
	}
	dated = deduped

	var periods []Period
	if c.DraftSheet != "" {
		end := cal.Closing
		if len(dated) > 0 {
			end = dated[0].date.AddDate(0, 0, -1)
		}
		periods = append(periods, Period{
			Number:      1,
			Start:       cal.Opening,
			End:         end,
			SourceSheet: c.DraftSheet,
		})
	}

	for i, ds := range dated {
		end := cal.Closing
		if i+1 < len(dated) {
			end = dated[i+1].date.AddDate(0, 0, -1)
		}
		periods = append(periods, Period{
			Number:      len(periods) + 1,
			Start:       ds.date,
			End:         end,
			SourceSheet: ds.name,
		})
	}

	if len(periods) > MaxPeriods {
		for _, p := range periods[MaxPeriods:] {
			res.Logf("period cap: sheet %q beyond period %d dropped (standardization)", p.SourceSheet, MaxPeriods)
		}
		periods = periods[:MaxPeriods]
	}

	// The final period always runs to the season close, whatever its sheet
	// name said. Guarantees full-season coverage.
	if n := len(periods); n > 0 {
		if !periods[n-1].End.Equal(cal.Closing) {
			res.Logf("final period end forced to season close %s", cal.Closing.Format("2006-01-02"))
		}
		periods[n-1].End = cal.Closing
	}

	// Every period must satisfy start <= end. A dated sheet on opening day
	// leaves the draft period inverted, and the late-season anchor can land
	// past the season close; clamp instead of dropping so the sheet's records
	// still import.
	for i := range periods {
		p := &periods[i]
		if !p.End.Before(p.Start) {
			continue
		}
		if i == len(periods)-1 {
			res.Logf("period %d: start %s after season close, start clamped to %s",
				p.Number, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
			p.Start = p.End
		} else {
			res.Logf("period %d: end %s before start %s, end clamped",
				p.Number, p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
			p.End = p.Start
		}
	}

	return periods
}

// resolveSheetDate tries, in order: late-season keyword, period_<n> synthetic
// date, numeric M.D/M/D/M-D pattern, then generic date parsing with the year
// appended. The returned string names the rule that fired, for the decision
// log.
func resolveSheetDate(name string, year int, cal Calendar) (time.Time, string, bool) {
	lower := strings.ToLower(name)

	if containsAny(lower, lateSeasonKeywords) {
		return lateSeasonAnchor(year), "late-season anchor", true
	}

	if m := periodNumberPattern.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 {
			return cal.Opening.AddDate(0, 0, (n-1)*14), fmt.Sprintf("period number %d", n), true
		}
	}

	if m := monthDayPattern.FindStringSubmatch(name); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			// Reject rollovers like 2.30 -> March 2.
			if int(d.Month()) == month && d.Day() == day {
				return d, "month.day pattern", true
			}
		}
	}

	cleaned := strings.TrimSpace(name)
	for _, layout := range genericDateLayouts {
		if d, err := time.Parse(layout, cleaned+" "+strconv.Itoa(year)); err == nil {
			return d, "generic date parse", true
		}
	}

	return time.Time{}, "", false
}
