package app

// Event represents a single holiday in export output
type Event struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// CheckResponse is the answer to a single-date holiday check
type CheckResponse struct {
	Date    string `json:"date"`
	Holiday bool   `json:"holiday"`
	Name    string `json:"name,omitempty"`
}

// NextResponse is the answer to a next-holiday query
type NextResponse struct {
	All     string            `json:"all,omitempty"`
	Regions map[string]string `json:"regions,omitempty"`
}
