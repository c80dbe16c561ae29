// Package gendata regenerates the holiday reference data from the GOV.UK
// bank-holidays feed. It is an offline batch tool: the query path never
// touches it.
package gendata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/klabast/wb-services/uk-bank-holidays/holidays"
)

// DefaultSourceURL is the canonical GOV.UK bank holidays feed.
const DefaultSourceURL = "https://www.gov.uk/bank-holidays.json"

// feed matches the GOV.UK JSON document: one division per UK jurisdiction.
type feed map[string]division

type division struct {
	Division string  `json:"division"`
	Events   []event `json:"events"`
}

type event struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

var divisionRegions = map[string]holidays.Region{
	"england-and-wales": holidays.EAW,
	"northern-ireland":  holidays.NIR,
	"scotland":          holidays.SCT,
}

// Fetch downloads and normalizes the feed at url.
func Fetch(ctx context.Context, url string) ([]holidays.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	var f feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	return Normalize(f)
}

// Normalize converts a feed into sorted holiday records. Unknown divisions
// are rejected rather than skipped: the data set is curated and a surprise
// in the feed must surface here, not downstream. Conflicting names for the
// same (date, region) pair are an error; exact duplicates collapse.
func Normalize(f feed) ([]holidays.Record, error) {
	seen := make(map[string]string)
	var records []holidays.Record

	for name, div := range f {
		region, ok := divisionRegions[name]
		if !ok {
			return nil, fmt.Errorf("unknown division %q in feed", name)
		}
		for _, ev := range div.Events {
			date, err := time.Parse("2006-01-02", ev.Date)
			if err != nil {
				return nil, fmt.Errorf("division %s: invalid date %q: %w", name, ev.Date, err)
			}
			title := NormalizeTitle(ev.Title)
			if title == "" {
				return nil, fmt.Errorf("division %s: empty title on %s", name, ev.Date)
			}

			key := ev.Date + "\t" + region.Code()
			if prev, dup := seen[key]; dup {
				if prev != title {
					return nil, fmt.Errorf("conflicting names for %s %s: %q vs %q", ev.Date, region, prev, title)
				}
				continue
			}
			seen[key] = title

			records = append(records, holidays.Record{
				Year:   date.Year(),
				Month:  date.Month(),
				Day:    date.Day(),
				Region: region,
				Name:   title,
			})
		}
	}

	sortRecords(records)
	return records, nil
}

// NormalizeTitle cleans a feed event title: typographic apostrophes become
// ASCII and the "(substitute day)" suffix is dropped, so an observed holiday
// appears under its base name.
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "’", "'")
	title = strings.TrimSpace(title)
	for _, suffix := range []string{"(substitute day)", "(Substitute day)"} {
		title = strings.TrimSpace(strings.TrimSuffix(title, suffix))
	}
	return title
}

// WriteTSV emits records in the YYYY-MM-DD<TAB>Region<TAB>Name artifact
// format, sorted by date then region code for human readability.
func WriteTSV(w io.Writer, records []holidays.Record) error {
	sorted := make([]holidays.Record, len(records))
	copy(sorted, records)
	sortRecords(sorted)

	for _, rec := range sorted {
		line := fmt.Sprintf("%04d-%02d-%02d\t%s\t%s\n", rec.Year, rec.Month, rec.Day, rec.Region.Code(), rec.Name)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func sortRecords(records []holidays.Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date().Equal(b.Date()) {
			return a.Date().Before(b.Date())
		}
		return a.Region.Code() < b.Region.Code()
	})
}
