package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportEvents = []Event{
	{Date: "2013-12-25", Name: "Christmas Day"},
	{Date: "2013-12-26", Name: "Boxing Day"},
}

func TestGenerateICS(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateICS(w, "UK", 2013, exportEvents)

	resp := w.Result()
	body := w.Body.String()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "uk_bank_holidays_UK_2013.ics")

	// Check for required ICS structure
	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ICSProductID,
		"X-WR-CALNAME:UK Bank Holidays UK 2013",
		"BEGIN:VEVENT",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		assert.Contains(t, body, field)
	}

	// Holidays are all-day events spanning one day
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20131225")
	assert.Contains(t, body, "DTEND;VALUE=DATE:20131226")
	assert.Contains(t, body, "SUMMARY:Christmas Day")
	assert.Contains(t, body, "SUMMARY:Boxing Day")

	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
}

func TestGenerateSubscriptionICS(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateSubscriptionICS(w, "Scotland", exportEvents)

	resp := w.Result()
	body := w.Body.String()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")

	// Subscription feeds must be inline, not attachments
	assert.Empty(t, resp.Header.Get("Content-Disposition"))

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"X-PUBLISHED-TTL:P1D",
		"X-WR-CALNAME:UK Bank Holidays Scotland",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		assert.Contains(t, body, field)
	}
}

func TestGenerateCSV(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateCSV(w, "EAW", 2013, exportEvents)

	body := w.Body.String()
	assert.Contains(t, w.Result().Header.Get("Content-Type"), "text/csv")
	assert.True(t, strings.HasPrefix(body, "Date,Name\n"))
	assert.Contains(t, body, `2013-12-25,"Christmas Day"`)
	assert.Contains(t, body, `2013-12-26,"Boxing Day"`)
}

func TestGenerateJSONExport(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateJSON(w, "UK", 2013, exportEvents)

	assert.Contains(t, w.Result().Header.Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"Christmas Day"`)
	assert.Contains(t, w.Body.String(), `"year":2013`)
}

func TestHandleSubscribeFeed(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, "/api/subscribe/sct")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "METHOD:PUBLISH")
	assert.Contains(t, body, "X-WR-CALNAME:UK Bank Holidays Scotland")
	assert.Contains(t, body, "SUMMARY:2nd January")
	assert.Empty(t, w.Result().Header.Get("Content-Disposition"))

	w = doRequest(t, s, "/api/subscribe/nowhere")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
