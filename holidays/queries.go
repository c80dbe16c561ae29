package holidays

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrInvalidYear is returned when a query year is not a four-digit year.
	ErrInvalidYear = errors.New("invalid year: must be exactly four digits")

	// ErrMissingArgument is returned when IsHoliday is called without a
	// complete date.
	ErrMissingArgument = errors.New("must specify year, month, and day")
)

// Query names the optional parameters shared by the lookup operations.
//
// A nil Regions slice means "all three regions". A non-nil empty slice means
// "no regions of interest": the call is valid and matches nothing. Year 0
// defaults to the current calendar year for Holidays; IsHoliday requires the
// full date.
type Query struct {
	Year  int
	Month time.Month
	Day   int

	Regions []Region

	// YMD selects YYYY-MM-DD result keys instead of the legacy MMDD form.
	YMD bool
}

// NextQuery parameterizes NextHoliday.
type NextQuery struct {
	Regions []Region

	// After is the reference date; holidays strictly after it are
	// considered. The zero value means the current date.
	After time.Time
}

// Upcoming holds the result of NextHoliday. When the scan reaches a holiday
// shared by all three regions, All carries its canonical name and the scan
// stops. Otherwise Regions records the first upcoming holiday name per
// requested region.
type Upcoming struct {
	All     string
	Regions map[Region]string
}

// Holidays returns the holidays of one year for the requested regions. Keys
// are MMDD strings, or YYYY-MM-DD when q.YMD is set; values are display
// names composed per region. Dates with no match under the region filter are
// absent from the result.
func (t *Table) Holidays(q Query) (map[string]string, error) {
	year := q.Year
	if year == 0 {
		year = time.Now().Year()
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}
	regs, err := resolveRegions(q.Regions)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	if len(regs) == 0 {
		return out, nil
	}
	for md, e := range t.years[year] {
		name := composeName(e, regs)
		if name == "" {
			continue
		}
		out[dateKey(year, md, q.YMD)] = name
	}
	return out, nil
}

// IsHoliday reports whether the date given by q.Year, q.Month and q.Day is a
// holiday in any of the requested regions. The second return value
// distinguishes "not a holiday" from a real holiday name.
func (t *Table) IsHoliday(q Query) (string, bool, error) {
	if q.Year == 0 || q.Month == 0 || q.Day == 0 {
		return "", false, ErrMissingArgument
	}
	if err := validateYear(q.Year); err != nil {
		return "", false, err
	}
	regs, err := resolveRegions(q.Regions)
	if err != nil {
		return "", false, err
	}
	if len(regs) == 0 {
		return "", false, nil
	}

	e := t.years[q.Year][monthDay{q.Month, q.Day}]
	if e == nil {
		return "", false, nil
	}
	name := composeName(e, regs)
	if name == "" {
		return "", false, nil
	}
	return name, true, nil
}

// NextHoliday scans forward in date order through the loaded years, starting
// strictly after the reference date, and returns the first holiday found per
// requested region. The scan stops early when it reaches an all-region
// holiday, since that answers every region at once. The scan crosses year
// boundaries; only the end of the loaded data limits it.
func (t *Table) NextHoliday(q NextQuery) (Upcoming, error) {
	regs, err := resolveRegions(q.Regions)
	if err != nil {
		return Upcoming{}, err
	}
	up := Upcoming{Regions: make(map[Region]string)}
	if len(regs) == 0 {
		return up, nil
	}

	after := q.After
	if after.IsZero() {
		after = time.Now()
	}
	refYear, refMonth, refDay := after.Date()

	for _, year := range t.yearList {
		if year < refYear {
			continue
		}
		for _, md := range sortedDays(t.years[year]) {
			if year == refYear && (md.month < refMonth || (md.month == refMonth && md.day <= refDay)) {
				continue
			}
			e := t.years[year][md]
			if e.canonical != "" {
				up.All = e.canonical
				return up, nil
			}
			for _, r := range regs {
				if _, done := up.Regions[r]; done {
					continue
				}
				if name, ok := e.names[r]; ok {
					up.Regions[r] = name
				}
			}
			if len(up.Regions) == len(regs) {
				return up, nil
			}
		}
	}
	return up, nil
}

// In returns a view of the table with the region set pre-bound to a single
// region. All queries delegate to the underlying table.
func (t *Table) In(r Region) *RegionTable {
	return &RegionTable{table: t, region: r}
}

// RegionTable is a single-region view of a Table.
type RegionTable struct {
	table  *Table
	region Region
}

// Holidays runs the Holidays query with the region set bound to this view's
// region. Any Regions value in q is ignored.
func (rt *RegionTable) Holidays(q Query) (map[string]string, error) {
	q.Regions = []Region{rt.region}
	return rt.table.Holidays(q)
}

// IsHoliday runs the IsHoliday query bound to this view's region.
func (rt *RegionTable) IsHoliday(q Query) (string, bool, error) {
	q.Regions = []Region{rt.region}
	return rt.table.IsHoliday(q)
}

// NextHoliday returns the name of this region's next holiday strictly after
// the given date (zero value: now), or false if none remains in the data.
func (rt *RegionTable) NextHoliday(after time.Time) (string, bool, error) {
	up, err := rt.table.NextHoliday(NextQuery{Regions: []Region{rt.region}, After: after})
	if err != nil {
		return "", false, err
	}
	if up.All != "" {
		return up.All, true, nil
	}
	if name, ok := up.Regions[rt.region]; ok {
		return name, true, nil
	}
	return "", false, nil
}

// ---------------------------------------------------------------------------
// Package-level positional forms, backed by the embedded dataset.
// ---------------------------------------------------------------------------

// Holidays returns the holidays of one year (MMDD keys) from the embedded
// dataset. With no regions given, all three are considered.
func Holidays(year int, regions ...Region) (map[string]string, error) {
	t, err := Default()
	if err != nil {
		return nil, err
	}
	return t.Holidays(Query{Year: year, Regions: regions})
}

// IsHoliday reports whether the date is a holiday in the embedded dataset.
func IsHoliday(year int, month time.Month, day int, regions ...Region) (string, bool, error) {
	t, err := Default()
	if err != nil {
		return "", false, err
	}
	return t.IsHoliday(Query{Year: year, Month: month, Day: day, Regions: regions})
}

// NextHoliday returns the next holiday after the given date from the
// embedded dataset.
func NextHoliday(after time.Time, regions ...Region) (Upcoming, error) {
	t, err := Default()
	if err != nil {
		return Upcoming{}, err
	}
	return t.NextHoliday(NextQuery{Regions: regions, After: after})
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func validateYear(year int) error {
	if year < 1000 || year > 9999 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}

// resolveRegions normalizes a requested region set: nil means all regions,
// duplicates collapse, and the result is in code order so composed names are
// deterministic.
func resolveRegions(regions []Region) ([]Region, error) {
	if regions == nil {
		return Regions, nil
	}
	seen := make(map[Region]bool, len(regions))
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		if _, ok := regionCodes[r]; !ok {
			return nil, fmt.Errorf("unknown region %d", int(r))
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// composeName builds the display string for one date under a region filter.
//
// An all-region holiday short-circuits to its canonical name even when the
// filter names fewer regions: every non-empty filter is already covered by
// all three regions matching. Otherwise matching regions are grouped by
// identical name; when a single name covers the whole requested set it
// stands alone, else each distinct name becomes a clause listing its
// regions, sorted for reproducible output. Returns "" when nothing matches.
func composeName(e *entry, regions []Region) string {
	if e.canonical != "" {
		return e.canonical
	}

	byName := make(map[string][]string)
	matched := 0
	for _, r := range regions {
		if name, ok := e.names[r]; ok {
			byName[name] = append(byName[name], r.Name())
			matched++
		}
	}
	if len(byName) == 0 {
		return ""
	}
	if len(byName) == 1 && matched == len(regions) {
		for name := range byName {
			return name
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	clauses := make([]string, 0, len(names))
	for _, name := range names {
		displays := byName[name]
		sort.Strings(displays)
		clauses = append(clauses, fmt.Sprintf("%s (%s)", name, strings.Join(displays, ", ")))
	}
	return strings.Join(clauses, ", ")
}

func dateKey(year int, md monthDay, ymd bool) string {
	if ymd {
		return fmt.Sprintf("%04d-%02d-%02d", year, md.month, md.day)
	}
	return fmt.Sprintf("%02d%02d", md.month, md.day)
}

func sortedDays(year map[monthDay]*entry) []monthDay {
	days := make([]monthDay, 0, len(year))
	for md := range year {
		days = append(days, md)
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].month != days[j].month {
			return days[i].month < days[j].month
		}
		return days[i].day < days[j].day
	})
	return days
}
