package app

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/klabast/wb-services/uk-bank-holidays/holidays"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// parseYearParam parses a year query parameter. An empty string yields 0
// (the library defaults to the current year); anything other than exactly
// four digits is rejected, never coerced.
func parseYearParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) != 4 {
		return 0, fmt.Errorf("year %q is not four digits", s)
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1000 {
		return 0, fmt.Errorf("year %q is not numeric", s)
	}
	return year, nil
}

// parseRegionsParam reads the regions query parameter. An absent parameter
// yields nil (all regions); a present-but-empty parameter yields an empty
// slice (no regions of interest). Codes are comma-separated.
func parseRegionsParam(r *http.Request) ([]holidays.Region, error) {
	values, present := r.URL.Query()["regions"]
	if !present {
		return nil, nil
	}

	joined := strings.Join(values, ",")
	regions := []holidays.Region{}
	for _, code := range strings.Split(joined, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		region, err := holidays.ParseRegion(strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// eventsFromResult converts a YMD-keyed holidays result into a date-sorted
// event list for the exporters.
func eventsFromResult(result map[string]string) []Event {
	events := make([]Event, 0, len(result))
	for date, name := range result {
		events = append(events, Event{Date: date, Name: name})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}
