package app

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klabast/wb-services/uk-bank-holidays/holidays"
)

// Server exposes the holiday table over HTTP. The table is immutable; every
// handler is a pure read.
type Server struct {
	table *holidays.Table
	cfg   *Config
}

// NewServer creates a Server around an already-loaded table.
func NewServer(table *holidays.Table, cfg *Config) *Server {
	return &Server{table: table, cfg: cfg}
}

// Routes registers all handlers on the given mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.ServeIndex)
	mux.HandleFunc("/api/config", s.GetConfig)
	mux.HandleFunc("/api/holidays", s.HandleHolidays)
	mux.HandleFunc("/api/holidays/", s.HandleRegionHolidays)
	mux.HandleFunc("/api/check", s.HandleCheck)
	mux.HandleFunc("/api/next", s.HandleNext)
	mux.HandleFunc("/api/download", s.HandleDownload)
	mux.HandleFunc("/api/subscribe/", s.HandleSubscribe)
}

// ServeIndex describes the API surface
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	lines := []string{
		"UK bank holidays",
		"",
		"GET /api/config",
		"GET /api/holidays?year=YYYY&regions=EAW,SCT,NIR&format=mmdd|ymd",
		"GET /api/holidays/{region}?year=YYYY",
		"GET /api/check?year=YYYY&month=M&day=D&regions=...",
		"GET /api/next?after=YYYY-MM-DD&regions=...",
		"GET /api/download?year=YYYY&regions=...&format=ics|csv|json",
		"GET /api/subscribe/{region}",
		"",
	}
	if _, err := w.Write([]byte(strings.Join(lines, "\n"))); err != nil {
		log.Printf("Error writing index: %v", err)
	}
}

// GetConfig returns the regions and years the service covers
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	regions := make(map[string]string, len(holidays.Regions))
	for _, region := range holidays.Regions {
		regions[region.Code()] = region.Name()
	}

	config := map[string]interface{}{
		"regions":        regions,
		"availableYears": s.table.Years(),
		"currentYear":    time.Now().Year(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(config); err != nil {
		log.Printf("Error encoding config: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleHolidays returns the holidays of one year
// Query params: year (optional, defaults to current year), regions
// (optional, comma-separated codes), format (mmdd or ymd, default mmdd)
func (s *Server) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	year, err := parseYearParam(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	regions, err := parseRegionsParam(r)
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return
	}

	var ymd bool
	switch r.URL.Query().Get("format") {
	case "", "mmdd":
	case "ymd":
		ymd = true
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	result, err := s.table.Holidays(holidays.Query{Year: year, Regions: regions, YMD: ymd})
	if err != nil {
		if errors.Is(err, holidays.ErrInvalidYear) {
			http.Error(w, ErrInvalidYear, http.StatusBadRequest)
			return
		}
		log.Printf("Error querying holidays: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Error encoding holidays: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleRegionHolidays returns the holidays of one year for a single region
// URL: /api/holidays/{region}?year=2026
func (s *Server) HandleRegionHolidays(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	code := strings.ToUpper(r.URL.Path[len("/api/holidays/"):])
	region, err := holidays.ParseRegion(code)
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return
	}

	year, err := parseYearParam(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	result, err := s.table.In(region).Holidays(holidays.Query{Year: year})
	if err != nil {
		if errors.Is(err, holidays.ErrInvalidYear) {
			http.Error(w, ErrInvalidYear, http.StatusBadRequest)
			return
		}
		log.Printf("Error querying region holidays: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Error encoding region holidays: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleCheck answers whether a single date is a holiday
// Query params: year, month, day (all required), regions (optional)
func (s *Server) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	if q.Get("year") == "" || q.Get("month") == "" || q.Get("day") == "" {
		http.Error(w, holidays.ErrMissingArgument.Error(), http.StatusBadRequest)
		return
	}

	year, err := parseYearParam(q.Get("year"))
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		http.Error(w, ErrInvalidDate, http.StatusBadRequest)
		return
	}
	day, err := strconv.Atoi(q.Get("day"))
	if err != nil {
		http.Error(w, ErrInvalidDate, http.StatusBadRequest)
		return
	}

	regions, err := parseRegionsParam(r)
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return
	}

	name, ok, err := s.table.IsHoliday(holidays.Query{
		Year:    year,
		Month:   time.Month(month),
		Day:     day,
		Regions: regions,
	})
	if err != nil {
		switch {
		case errors.Is(err, holidays.ErrInvalidYear):
			http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		case errors.Is(err, holidays.ErrMissingArgument):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error checking holiday: %v", err)
			http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		}
		return
	}

	resp := CheckResponse{
		Date:    time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		Holiday: ok,
		Name:    name,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding check response: %v", err)
	}
}

// HandleNext returns the next holiday per requested region
// Query params: after (optional YYYY-MM-DD, defaults to today), regions
func (s *Server) HandleNext(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	var after time.Time
	if v := r.URL.Query().Get("after"); v != "" {
		var err error
		after, err = time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, ErrInvalidDate, http.StatusBadRequest)
			return
		}
	}

	regions, err := parseRegionsParam(r)
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return
	}

	up, err := s.table.NextHoliday(holidays.NextQuery{Regions: regions, After: after})
	if err != nil {
		log.Printf("Error querying next holiday: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	resp := NextResponse{All: up.All}
	if len(up.Regions) > 0 {
		resp.Regions = make(map[string]string, len(up.Regions))
		for region, name := range up.Regions {
			resp.Regions[region.Code()] = name
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding next response: %v", err)
	}
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
// Query params: year (required), regions (optional), format (required)
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, ErrInvalidYear, http.StatusBadRequest)
		return
	}

	regions, err := parseRegionsParam(r)
	if err != nil {
		http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
		return
	}

	if !s.hasYear(year) {
		http.Error(w, ErrYearNotFound, http.StatusNotFound)
		return
	}

	result, err := s.table.Holidays(holidays.Query{Year: year, Regions: regions, YMD: true})
	if err != nil {
		if errors.Is(err, holidays.ErrInvalidYear) {
			http.Error(w, ErrInvalidYear, http.StatusBadRequest)
			return
		}
		log.Printf("Error querying holidays for download: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}
	events := eventsFromResult(result)
	label := regionsLabel(regions)

	switch r.URL.Query().Get("format") {
	case "ics":
		GenerateICS(w, label, year, events)
	case "csv":
		GenerateCSV(w, label, year, events)
	case "json":
		GenerateJSON(w, label, year, events)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe serves an ICS subscription feed for one region (or "all")
// Returns holidays from (current year - 1) onwards
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	code := strings.ToLower(r.URL.Path[len("/api/subscribe/"):])

	var regions []holidays.Region
	label := "All regions"
	if code != "all" {
		region, err := holidays.ParseRegion(strings.ToUpper(code))
		if err != nil {
			http.Error(w, ErrInvalidRegion, http.StatusBadRequest)
			return
		}
		regions = []holidays.Region{region}
		label = region.Name()
	}

	minYear := time.Now().Year() - 1
	var events []Event
	for _, year := range s.table.Years() {
		if year < minYear {
			continue
		}
		result, err := s.table.Holidays(holidays.Query{Year: year, Regions: regions, YMD: true})
		if err != nil {
			log.Printf("Error building subscription feed: %v", err)
			http.Error(w, ErrInternalServer, http.StatusInternalServerError)
			return
		}
		events = append(events, eventsFromResult(result)...)
	}

	GenerateSubscriptionICS(w, label, events)
}

func (s *Server) hasYear(year int) bool {
	for _, y := range s.table.Years() {
		if y == year {
			return true
		}
	}
	return false
}

// regionsLabel names a region filter for export filenames and titles.
func regionsLabel(regions []holidays.Region) string {
	if regions == nil {
		return "UK"
	}
	codes := make([]string, 0, len(regions))
	for _, region := range regions {
		codes = append(codes, region.Code())
	}
	return strings.Join(codes, "-")
}
