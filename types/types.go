package types

import (
	"fmt"
	"time"
)

// SearchCriteria describes one availability query: which facilities to watch,
// for which date, in which hour window, and optional per-facility court
// restrictions.
type SearchCriteria struct {
	HourRangeStart int `json:"hourRangeStart"` // inclusive, 0-23
	HourRangeEnd   int `json:"hourRangeEnd"`   // exclusive, 0-23

	WhenDay   int `json:"whenDay"`
	WhenMonth int `json:"whenMonth"`
	WhenYear  int `json:"whenYear"`

	// Facility names as they appear in the upstream payload (exact match,
	// accents included).
	Facilities []string `json:"facilities"`

	// Facility name -> allowed court numbers. A missing or empty entry means
	// "no restriction" for that facility.
	CourtNumbers map[string][]int `json:"courtNumbers,omitempty"`

	CoveredOnly bool `json:"coveredOnly"`
}

// When formats the requested date the way the booking API expects it.
func (c SearchCriteria) When() string {
	return fmt.Sprintf("%02d/%02d/%04d", c.WhenDay, c.WhenMonth, c.WhenYear)
}

// HourRange formats the hour window as the "START-END" form field value.
func (c SearchCriteria) HourRange() string {
	return fmt.Sprintf("%d-%d", c.HourRangeStart, c.HourRangeEnd)
}

// Date returns the requested date at midnight local time.
func (c SearchCriteria) Date() time.Time {
	return time.Date(c.WhenYear, time.Month(c.WhenMonth), c.WhenDay, 0, 0, 0, 0, time.Local)
}

// AvailabilityResponse mirrors the JSON body of the booking search endpoint.
type AvailabilityResponse struct {
	Features []RawFeature `json:"features"`
}

// RawFeature is one facility record as returned by the upstream API.
type RawFeature struct {
	Properties RawProperties `json:"properties"`
}

type RawProperties struct {
	Available bool       `json:"available"`
	General   RawGeneral `json:"general"`
	Courts    []RawCourt `json:"courts"`
}

type RawGeneral struct {
	Name string `json:"_nomSrtm"`
	ID   string `json:"_id"`
}

type RawCourt struct {
	Number  int    `json:"_formattedAirNum"`
	Name    string `json:"_airNom"`
	Covered string `json:"_airCvt"` // "V" = covered, "F" = outdoor (upstream encoding)
}

// Court is one playing surface inside a facility.
type Court struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Covered string `json:"covered"`
}

// FilteredFacility is a facility that survived the facility-level filters.
// Its court list is never empty: a facility left with zero courts is pruned
// at every filtering stage.
type FilteredFacility struct {
	Facility   string  `json:"facility"`
	FacilityID string  `json:"facilityId"`
	Courts     []Court `json:"courts"`
}

// CourtStatus is the state of one court during one timeslot, as scraped from
// a planning page. Status is the raw upstream literal; only the exact literal
// "LIBRE" maps to Available=true.
type CourtStatus struct {
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

// Timeslot is one row of a planning table: a time label plus the status of
// each court column that had a cell in that row.
type Timeslot struct {
	Time   string                 `json:"time"`
	Courts map[string]CourtStatus `json:"courts"`
}

// PlanningData is the parsed form of one facility's planning page. Courts
// holds the column labels in document order; Timeslots reference those labels.
type PlanningData struct {
	Facility  string     `json:"facility"`
	Date      string     `json:"date"`
	Courts    []string   `json:"courts"`
	Timeslots []Timeslot `json:"timeslots"`
}

// DetailedFacility is the reconciled, timeslot-level view of a facility. It is
// only retained in final output when at least one (timeslot, court) entry is
// available.
type DetailedFacility struct {
	Facility   string     `json:"facility"`
	FacilityID string     `json:"facilityId"`
	Date       string     `json:"date"`
	Courts     []string   `json:"courts"`
	Timeslots  []Timeslot `json:"timeslots"`
}
