package holidays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefault(t *testing.T) *Table {
	t.Helper()
	table, err := Default()
	require.NoError(t, err)
	return table
}

func TestHolidays2013(t *testing.T) {
	table := mustDefault(t)

	result, err := table.Holidays(Query{Year: 2013})
	require.NoError(t, err)

	assert.Equal(t, "New Year's Day", result["0101"])
	assert.Equal(t, "Christmas Day", result["1225"])
	assert.Equal(t, "Boxing Day", result["1226"])
	assert.Equal(t, "2nd January (Scotland)", result["0102"])
	assert.Equal(t, "St Patrick's Day (Northern Ireland)", result["0318"])
	assert.Equal(t, "Summer bank holiday (England & Wales, Northern Ireland)", result["0826"])
}

func TestHolidaysRegionFilter(t *testing.T) {
	table := mustDefault(t)

	result, err := table.Holidays(Query{Year: 2013, Regions: []Region{SCT}})
	require.NoError(t, err)

	// Single-region filter fully covered by the match: bare name.
	assert.Equal(t, "2nd January", result["0102"])
	// All-region holidays keep the canonical name.
	assert.Equal(t, "Christmas Day", result["1225"])
	// NIR-only dates are absent entirely, not present with an empty value.
	_, present := result["0318"]
	assert.False(t, present)
	_, present = result["0401"] // Easter Monday: EAW and NIR only
	assert.False(t, present)
}

func TestHolidaysExplicitEmptyRegions(t *testing.T) {
	table := mustDefault(t)

	result, err := table.Holidays(Query{Year: 2013, Regions: []Region{}})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestHolidaysYMDKeysRoundTrip(t *testing.T) {
	table := mustDefault(t)

	result, err := table.Holidays(Query{Year: 2013, YMD: true})
	require.NoError(t, err)
	require.NotEmpty(t, result)

	for key := range result {
		date, err := time.Parse("2006-01-02", key)
		require.NoError(t, err, "key %q is not a YYYY-MM-DD date", key)
		assert.Equal(t, 2013, date.Year())
	}
	assert.Equal(t, "Christmas Day", result["2013-12-25"])
}

func TestHolidaysInvalidYear(t *testing.T) {
	table := mustDefault(t)

	for _, year := range []int{13, 999, 12345, -2013} {
		_, err := table.Holidays(Query{Year: year})
		assert.ErrorIs(t, err, ErrInvalidYear, "year %d", year)

		_, _, err = table.IsHoliday(Query{Year: year, Month: time.January, Day: 1})
		assert.ErrorIs(t, err, ErrInvalidYear, "year %d", year)
	}
}

func TestHolidaysDefaultsToCurrentYear(t *testing.T) {
	table := mustDefault(t)

	result, err := table.Holidays(Query{})
	require.NoError(t, err)

	want, err := table.Holidays(Query{Year: time.Now().Year()})
	require.NoError(t, err)
	assert.Equal(t, want, result)
}

func TestIsHolidayCanonicalShortCircuit(t *testing.T) {
	table := mustDefault(t)

	// 2013-12-25 is a holiday in all three regions; any non-empty region
	// subset gets the canonical EAW-sourced name.
	for _, regions := range [][]Region{nil, {SCT}, {NIR}, {EAW, SCT}, {EAW, NIR, SCT}} {
		name, ok, err := table.IsHoliday(Query{Year: 2013, Month: time.December, Day: 25, Regions: regions})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Christmas Day", name)
	}
}

func TestIsHolidayRegionSubsets(t *testing.T) {
	table := mustDefault(t)

	tests := []struct {
		name    string
		month   time.Month
		day     int
		regions []Region
		want    string
		wantHit bool
	}{
		{"St Patrick's, all regions", time.March, 18, nil, "St Patrick's Day (Northern Ireland)", true},
		{"St Patrick's, NIR only", time.March, 18, []Region{NIR}, "St Patrick's Day", true},
		{"St Patrick's, disjoint set", time.March, 18, []Region{EAW, SCT}, "", false},
		{"2nd January, SCT only", time.January, 2, []Region{SCT}, "2nd January", true},
		{"2nd January, EAW only", time.January, 2, []Region{EAW}, "", false},
		{"Easter Monday, intersecting set", time.April, 1, []Region{NIR, SCT}, "Easter Monday (Northern Ireland)", true},
		{"Not a holiday anywhere", time.June, 10, nil, "", false},
		{"Empty region set", time.December, 25, []Region{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok, err := table.IsHoliday(Query{Year: 2013, Month: tt.month, Day: tt.day, Regions: tt.regions})
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestIsHolidayMissingArgument(t *testing.T) {
	table := mustDefault(t)

	queries := []Query{
		{},
		{Year: 2013},
		{Year: 2013, Month: time.March},
		{Month: time.March, Day: 18},
	}
	for _, q := range queries {
		_, _, err := table.IsHoliday(q)
		assert.ErrorIs(t, err, ErrMissingArgument)
	}
}

func TestNextHolidayAfterChristmas(t *testing.T) {
	table := mustDefault(t)

	// 2013-12-26 (Boxing Day, all regions) is the next EAW-relevant date
	// strictly after the reference.
	up, err := table.NextHoliday(NextQuery{
		Regions: []Region{EAW},
		After:   time.Date(2013, time.December, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "Boxing Day", up.All)
}

func TestNextHolidayPerRegion(t *testing.T) {
	table := mustDefault(t)

	// After 1 Aug 2013: Scotland's summer bank holiday is 5 Aug, England &
	// Wales' is 26 Aug. Both single-region dates, so the scan records one
	// name per region before stopping.
	up, err := table.NextHoliday(NextQuery{
		Regions: []Region{EAW, SCT},
		After:   time.Date(2013, time.August, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, up.All)
	assert.Equal(t, map[Region]string{
		EAW: "Summer bank holiday",
		SCT: "Summer bank holiday",
	}, up.Regions)
}

func TestNextHolidayCrossesYearBoundary(t *testing.T) {
	table := mustDefault(t)

	// Nothing remains in 2013 after Boxing Day; the scan continues into
	// 2014 and finds New Year's Day (all regions).
	up, err := table.NextHoliday(NextQuery{
		Regions: []Region{SCT},
		After:   time.Date(2013, time.December, 26, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Year's Day", up.All)
}

func TestNextHolidayEdges(t *testing.T) {
	table := mustDefault(t)

	// Past the end of the loaded data: empty result, not an error.
	up, err := table.NextHoliday(NextQuery{
		After: time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, up.All)
	assert.Empty(t, up.Regions)

	// Explicitly empty region set: valid call, nothing of interest.
	up, err = table.NextHoliday(NextQuery{
		Regions: []Region{},
		After:   time.Date(2013, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, up.All)
	assert.Empty(t, up.Regions)
}

func TestRegionTable(t *testing.T) {
	table := mustDefault(t)

	sct := table.In(SCT)
	result, err := sct.Holidays(Query{Year: 2013})
	require.NoError(t, err)
	assert.Equal(t, "2nd January", result["0102"])

	_, ok, err := table.In(EAW).IsHoliday(Query{Year: 2013, Month: time.January, Day: 2})
	require.NoError(t, err)
	assert.False(t, ok)

	name, ok, err := table.In(EAW).NextHoliday(time.Date(2013, time.December, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Boxing Day", name)
}

func TestPackageLevelQueries(t *testing.T) {
	result, err := Holidays(2013)
	require.NoError(t, err)
	assert.Equal(t, "Christmas Day", result["1225"])
	assert.Equal(t, "New Year's Day", result["0101"])

	name, ok, err := IsHoliday(2013, time.March, 18)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "St Patrick's Day (Northern Ireland)", name)

	up, err := NextHoliday(time.Date(2013, time.December, 25, 0, 0, 0, 0, time.UTC), EAW)
	require.NoError(t, err)
	assert.Equal(t, "Boxing Day", up.All)
}

func TestParseRegion(t *testing.T) {
	for _, r := range Regions {
		parsed, err := ParseRegion(r.Code())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	_, err := ParseRegion("GB")
	assert.Error(t, err)

	assert.Equal(t, "England & Wales", EAW.Name())
	assert.Equal(t, "Scotland", SCT.Name())
	assert.Equal(t, "Northern Ireland", NIR.Name())
}
