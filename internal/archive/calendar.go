package archive

import "time"

// Calendar holds the fixed opening and closing days of one league year.
// These are static reference data, never computed: the league has always
// opened with the MLB season and closed on the final day of the regular
// schedule.
type Calendar struct {
	Opening time.Time
	Closing time.Time
}

// lateSeasonAnchorMonth/Day is the synthetic date assigned to tabs named
// "Final"/"Season"/"End" before the closing-date clamp is applied.
const (
	lateSeasonAnchorMonth = time.October
	lateSeasonAnchorDay   = 1
)

var seasonCalendars = map[int]Calendar{
	2008: {date(2008, 3, 31), date(2008, 9, 28)},
	2009: {date(2009, 4, 5), date(2009, 10, 4)},
	2010: {date(2010, 4, 4), date(2010, 10, 3)},
	2011: {date(2011, 3, 31), date(2011, 9, 28)},
	2012: {date(2012, 4, 4), date(2012, 10, 3)},
	2013: {date(2013, 3, 31), date(2013, 9, 29)},
	2014: {date(2014, 3, 30), date(2014, 9, 28)},
	2015: {date(2015, 4, 5), date(2015, 10, 4)},
	2016: {date(2016, 4, 3), date(2016, 10, 2)},
	2017: {date(2017, 4, 2), date(2017, 10, 1)},
	2018: {date(2018, 3, 29), date(2018, 10, 1)},
	2019: {date(2019, 3, 28), date(2019, 9, 29)},
	2020: {date(2020, 7, 23), date(2020, 9, 27)},
	2021: {date(2021, 4, 1), date(2021, 10, 3)},
	2022: {date(2022, 4, 7), date(2022, 10, 5)},
	2023: {date(2023, 3, 30), date(2023, 10, 1)},
	2024: {date(2024, 3, 28), date(2024, 9, 30)},
	2025: {date(2025, 3, 27), date(2025, 9, 28)},
}

// CalendarFor returns the season calendar for a year. Years outside the
// archive range fall back to April 1 through September 30 so an import of an
// unexpected year still produces a coherent period table.
func CalendarFor(year int) Calendar {
	if c, ok := seasonCalendars[year]; ok {
		return c
	}
	return Calendar{date(year, 4, 1), date(year, 9, 30)}
}

// lateSeasonAnchor returns the fixed end-of-season anchor date for a year.
func lateSeasonAnchor(year int) time.Time {
	return time.Date(year, lateSeasonAnchorMonth, lateSeasonAnchorDay, 0, 0, 0, 0, time.UTC)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
