package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// GenerateICS generates an iCalendar (ICS) file with one all-day event per
// holiday
func GenerateICS(w http.ResponseWriter, label string, year int, events []Event) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=uk_bank_holidays_%s_%d.ics", label, year))

	// ICS header
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintf(w, "X-WR-CALNAME:UK Bank Holidays %s %d\n", label, year)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	writeICSEvents(w, label, events)

	fmt.Fprintln(w, "END:VCALENDAR")
}

// GenerateSubscriptionICS generates an iCalendar (ICS) subscription feed.
// Unlike GenerateICS, this is designed for calendar subscriptions:
// - No Content-Disposition attachment header (inline content)
// - Includes METHOD:PUBLISH and a refresh interval hint
func GenerateSubscriptionICS(w http.ResponseWriter, label string, events []Event) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	// No Content-Disposition header - calendar apps need inline content for subscriptions

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintln(w, "METHOD:PUBLISH") // Required for subscriptions
	fmt.Fprintf(w, "X-WR-CALNAME:UK Bank Holidays %s\n", label)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	// The data changes at most a few times a year; daily refresh is plenty
	fmt.Fprintln(w, "X-PUBLISHED-TTL:P1D")

	writeICSEvents(w, label, events)

	fmt.Fprintln(w, "END:VCALENDAR")
}

func writeICSEvents(w http.ResponseWriter, label string, events []Event) {
	for _, event := range events {
		eventDate, err := time.Parse("2006-01-02", event.Date)
		if err != nil {
			continue
		}

		// UID must be stable for proper calendar updates
		uid := fmt.Sprintf("%s-%s@%s", event.Date, label, ICSDomain)

		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s\n", uid)
		fmt.Fprintf(w, "DTSTAMP:%s\n", time.Now().UTC().Format("20060102T150405Z"))
		fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", eventDate.Format("20060102"))
		fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", eventDate.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(w, "SUMMARY:%s\n", event.Name)
		fmt.Fprintf(w, "DESCRIPTION:Bank holiday: %s\n", event.Name)
		fmt.Fprintln(w, "TRANSP:TRANSPARENT")
		fmt.Fprintln(w, "END:VEVENT")
	}
}

// GenerateCSV generates a CSV file with one row per holiday
func GenerateCSV(w http.ResponseWriter, label string, year int, events []Event) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=uk_bank_holidays_%s_%d.csv", label, year))

	// CSV header
	fmt.Fprintln(w, "Date,Name")

	// CSV rows; names may contain commas, so quote them
	for _, event := range events {
		fmt.Fprintf(w, "%s,%q\n", event.Date, event.Name)
	}
}

// GenerateJSON generates a JSON file with the year's holidays
func GenerateJSON(w http.ResponseWriter, label string, year int, events []Event) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=uk_bank_holidays_%s_%d.json", label, year))

	data := map[string]interface{}{
		"regions":  label,
		"year":     year,
		"holidays": events,
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON export: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}
