package holidays

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Embedded reference dataset, regenerated offline via the refresh tool.
//
//go:embed uk_bank_holidays.tsv
var embeddedTSV []byte

// Record is one raw data row: a holiday for a single region on a single date.
type Record struct {
	Year   int
	Month  time.Month
	Day    int
	Region Region
	Name   string
}

// Date returns the record's date at midnight UTC.
func (rec Record) Date() time.Time {
	return time.Date(rec.Year, rec.Month, rec.Day, 0, 0, 0, 0, time.UTC)
}

// monthDay keys a table entry within a year.
type monthDay struct {
	month time.Month
	day   int
}

// entry holds the per-region holiday names for one date. canonical is set
// exactly when all three regions have a record for the date; its value is
// the England & Wales name.
type entry struct {
	names     map[Region]string
	canonical string
}

// Table is the lookup structure built once from the raw records. It is
// immutable after Load returns and safe for concurrent readers.
type Table struct {
	years    map[int]map[monthDay]*entry
	yearList []int
}

// ParseTSV reads the YYYY-MM-DD<TAB>Region<TAB>Name data artifact. A
// malformed row is rejected with an error naming the line; rows are never
// silently skipped, since the data is curated offline and corruption must
// surface at load time. Blank lines are ignored.
func ParseTSV(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
		}

		date, err := time.Parse("2006-01-02", fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", lineNo, fields[0], err)
		}

		region, err := ParseRegion(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		name := strings.TrimSpace(fields[2])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty holiday name", lineNo)
		}

		records = append(records, Record{
			Year:   date.Year(),
			Month:  date.Month(),
			Day:    date.Day(),
			Region: region,
			Name:   name,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading holiday data: %w", err)
	}
	return records, nil
}

// Load builds the lookup table from raw records. A duplicate (date, region)
// pair or an empty name is rejected. After all records are placed, every
// date with entries for all three regions gets its canonical all-region
// name, taken from the England & Wales record.
func Load(records []Record) (*Table, error) {
	t := &Table{years: make(map[int]map[monthDay]*entry)}

	for _, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, fmt.Errorf("empty holiday name for %04d-%02d-%02d %s", rec.Year, rec.Month, rec.Day, rec.Region)
		}
		if _, ok := regionCodes[rec.Region]; !ok {
			return nil, fmt.Errorf("unknown region %d for %04d-%02d-%02d", int(rec.Region), rec.Year, rec.Month, rec.Day)
		}

		year := t.years[rec.Year]
		if year == nil {
			year = make(map[monthDay]*entry)
			t.years[rec.Year] = year
			t.yearList = append(t.yearList, rec.Year)
		}

		md := monthDay{rec.Month, rec.Day}
		e := year[md]
		if e == nil {
			e = &entry{names: make(map[Region]string)}
			year[md] = e
		}
		if _, dup := e.names[rec.Region]; dup {
			return nil, fmt.Errorf("duplicate record for %04d-%02d-%02d %s", rec.Year, rec.Month, rec.Day, rec.Region)
		}
		e.names[rec.Region] = rec.Name
	}

	// All-region merge pass: EAW wins the name tie-break.
	for _, year := range t.years {
		for _, e := range year {
			if len(e.names) == len(Regions) {
				e.canonical = e.names[EAW]
			}
		}
	}

	sort.Ints(t.yearList)
	return t, nil
}

// Years returns the calendar years present in the table, ascending. The
// returned slice is a copy.
func (t *Table) Years() []int {
	years := make([]int, len(t.yearList))
	copy(years, t.yearList)
	return years
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	records, err := ParseTSV(bytes.NewReader(embeddedTSV))
	if err != nil {
		return nil, fmt.Errorf("embedded holiday data: %w", err)
	}
	return Load(records)
})

// Default returns the table built from the embedded reference dataset. The
// table is constructed on first use and shared by all callers.
func Default() (*Table, error) {
	return defaultTable()
}
