package checker

import (
	"time"

	"tennis-watch/filter"
	"tennis-watch/logger"
	"tennis-watch/planning"
	"tennis-watch/types"
)

// Fetcher is what the checker needs from the booking-site client.
type Fetcher interface {
	FetchAvailability(criteria types.SearchCriteria) ([]types.RawFeature, error)
	FetchPlanning(facility, when string) (string, error)
}

// Checker runs the availability pipeline for one invocation.
type Checker struct {
	Fetcher Fetcher
	Log     logger.Logger
	Now     func() time.Time
}

func New(fetcher Fetcher, log logger.Logger) *Checker {
	return &Checker{
		Fetcher: fetcher,
		Log:     log,
		Now:     time.Now,
	}
}

// FindAvailable runs the fast pipeline: fetch raw features, filter by
// facility names, court numbers and (when requested) covered courts. A date
// already in the past short-circuits to an empty result without touching the
// network.
func (c *Checker) FindAvailable(criteria types.SearchCriteria) ([]types.FilteredFacility, error) {
	if c.dateInPast(criteria) {
		c.Log.Info("requested date is in the past, skipping", "when", criteria.When())
		return []types.FilteredFacility{}, nil
	}

	features, err := c.Fetcher.FetchAvailability(criteria)
	if err != nil {
		return nil, err
	}

	facilities := filter.ByFacilities(features, criteria.Facilities, c.Log)
	facilities = filter.ByCourtNumbers(facilities, criteria.CourtNumbers)
	if criteria.CoveredOnly {
		facilities = filter.ByCovered(facilities)
	}

	c.Log.Info("fast pipeline done", "facilities", len(facilities))
	return facilities, nil
}

// FindDetailedAvailability cross-references the fast-pipeline result with
// each facility's planning page and keeps only facilities with at least one
// truly free (timeslot, court) entry. A failed planning fetch skips that
// facility alone; it never aborts the batch.
func (c *Checker) FindDetailedAvailability(criteria types.SearchCriteria) ([]types.DetailedFacility, error) {
	fast, err := c.FindAvailable(criteria)
	if err != nil {
		return nil, err
	}

	detailed := make([]types.DetailedFacility, 0, len(fast))
	if len(fast) == 0 {
		// No facility matched: skip the planning fetches entirely.
		return detailed, nil
	}

	for _, fac := range fast {
		html, err := c.Fetcher.FetchPlanning(fac.Facility, criteria.When())
		if err != nil {
			c.Log.Warn("planning fetch failed, skipping facility",
				"facility", fac.Facility, "error", err.Error())
			continue
		}

		data := planning.Parse(html)
		data.Facility = fac.Facility
		data.Date = criteria.When()

		if d, ok := c.reconcile(fac, data, criteria); ok {
			detailed = append(detailed, d)
		}
	}

	c.Log.Info("detailed pipeline done", "facilities", len(detailed))
	return detailed, nil
}

// reconcile restricts one facility's planning data to the requested hour
// range and to the courts that survived the fast pipeline (their numbers
// already reflect the courtNumbers and coveredOnly criteria). The facility is
// kept only if something is actually free.
func (c *Checker) reconcile(fac types.FilteredFacility, data types.PlanningData, criteria types.SearchCriteria) (types.DetailedFacility, bool) {
	allowed := make(map[int]bool, len(fac.Courts))
	for _, court := range fac.Courts {
		allowed[court.Number] = true
	}

	keptCourts := make([]string, 0, len(data.Courts))
	keptSet := make(map[string]bool, len(data.Courts))
	for _, label := range data.Courts {
		if n, ok := planning.CourtNumber(label); ok && allowed[n] {
			keptCourts = append(keptCourts, label)
			keptSet[label] = true
		}
	}
	if len(keptCourts) == 0 {
		return types.DetailedFacility{}, false
	}

	timeslots := make([]types.Timeslot, 0, len(data.Timeslots))
	hasAvailable := false
	for _, ts := range data.Timeslots {
		hour, ok := planning.StartHour(ts.Time)
		if !ok || hour < criteria.HourRangeStart || hour >= criteria.HourRangeEnd {
			continue
		}

		courts := make(map[string]types.CourtStatus, len(keptCourts))
		for label, status := range ts.Courts {
			if !keptSet[label] {
				continue
			}
			courts[label] = status
			if status.Available {
				hasAvailable = true
			}
		}
		if len(courts) == 0 {
			continue
		}
		timeslots = append(timeslots, types.Timeslot{Time: ts.Time, Courts: courts})
	}

	if !hasAvailable {
		return types.DetailedFacility{}, false
	}

	return types.DetailedFacility{
		Facility:   fac.Facility,
		FacilityID: fac.FacilityID,
		Date:       data.Date,
		Courts:     keptCourts,
		Timeslots:  timeslots,
	}, true
}

func (c *Checker) dateInPast(criteria types.SearchCriteria) bool {
	now := c.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return criteria.Date().Before(today)
}
