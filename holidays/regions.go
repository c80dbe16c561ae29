// Package holidays answers whether a calendar date is a public or bank
// holiday in one or more UK regions (England & Wales, Scotland, Northern
// Ireland), and if so what it is called.
//
// All holidays are pre-enumerated reference data for specific years; nothing
// is computed from rules at runtime. The embedded dataset is regenerated
// offline with the refresh tool from the GOV.UK bank-holidays feed.
package holidays

import "fmt"

// Region identifies one of the three UK holiday jurisdictions.
type Region int

const (
	// EAW is England & Wales.
	EAW Region = iota
	// NIR is Northern Ireland.
	NIR
	// SCT is Scotland.
	SCT
)

// Regions lists all regions in code order. Callers must not modify it.
var Regions = []Region{EAW, NIR, SCT}

var regionCodes = map[Region]string{
	EAW: "EAW",
	NIR: "NIR",
	SCT: "SCT",
}

var regionNames = map[Region]string{
	EAW: "England & Wales",
	NIR: "Northern Ireland",
	SCT: "Scotland",
}

// Code returns the three-letter region code used in the data artifact.
func (r Region) Code() string {
	if code, ok := regionCodes[r]; ok {
		return code
	}
	return fmt.Sprintf("Region(%d)", int(r))
}

// Name returns the canonical display name, e.g. "England & Wales".
func (r Region) Name() string {
	return regionNames[r]
}

func (r Region) String() string {
	return r.Code()
}

// ParseRegion converts a three-letter code into a Region.
func ParseRegion(code string) (Region, error) {
	switch code {
	case "EAW":
		return EAW, nil
	case "NIR":
		return NIR, nil
	case "SCT":
		return SCT, nil
	}
	return 0, fmt.Errorf("unknown region code %q", code)
}
