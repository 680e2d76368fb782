package filter

import (
	"tennis-watch/logger"
	"tennis-watch/types"
)

// CoveredFlag is the upstream sentinel for a covered (indoor) court. Kept
// verbatim as observed in the payload even though "V" reads oddly next to the
// rest of the upstream naming.
const CoveredFlag = "V"

// ByFacilities keeps the raw features that are flagged available and whose
// name is one of the requested facilities (exact match), reshaped into
// FilteredFacility records. Upstream ordering is preserved.
func ByFacilities(features []types.RawFeature, facilityNames []string, log logger.Logger) []types.FilteredFacility {
	wanted := make(map[string]bool, len(facilityNames))
	for _, name := range facilityNames {
		wanted[name] = true
	}

	out := make([]types.FilteredFacility, 0, len(facilityNames))
	totalCourts := 0
	for _, f := range features {
		p := f.Properties
		if !p.Available || !wanted[p.General.Name] {
			continue
		}
		courts := make([]types.Court, 0, len(p.Courts))
		for _, rc := range p.Courts {
			courts = append(courts, types.Court{
				Number:  rc.Number,
				Name:    rc.Name,
				Covered: rc.Covered,
			})
		}
		if len(courts) == 0 {
			continue
		}
		out = append(out, types.FilteredFacility{
			Facility:   p.General.Name,
			FacilityID: p.General.ID,
			Courts:     courts,
		})
		totalCourts += len(courts)
	}

	log.Info("filtered by facilities", "matched", len(out), "courts", totalCourts)
	return out
}

// ByCourtNumbers keeps, per facility, only the courts whose number is in that
// facility's allowed set. An absent or empty overall mapping is the identity;
// an absent or empty per-facility set means "no restriction" for that
// facility, never "restrict to nothing". Facilities left without courts are
// dropped.
func ByCourtNumbers(facilities []types.FilteredFacility, courtNumbers map[string][]int) []types.FilteredFacility {
	if len(courtNumbers) == 0 {
		return facilities
	}

	out := make([]types.FilteredFacility, 0, len(facilities))
	for _, f := range facilities {
		allowed := courtNumbers[f.Facility]
		if len(allowed) == 0 {
			out = append(out, f)
			continue
		}

		allowedSet := make(map[int]bool, len(allowed))
		for _, n := range allowed {
			allowedSet[n] = true
		}

		courts := make([]types.Court, 0, len(f.Courts))
		for _, c := range f.Courts {
			if allowedSet[c.Number] {
				courts = append(courts, c)
			}
		}
		if len(courts) == 0 {
			continue
		}
		f.Courts = courts
		out = append(out, f)
	}
	return out
}

// ByCovered keeps only covered courts and drops facilities left without any.
// Callers branch on the coveredOnly criterion; this is never invoked as a
// no-op.
func ByCovered(facilities []types.FilteredFacility) []types.FilteredFacility {
	out := make([]types.FilteredFacility, 0, len(facilities))
	for _, f := range facilities {
		courts := make([]types.Court, 0, len(f.Courts))
		for _, c := range f.Courts {
			if c.Covered == CoveredFlag {
				courts = append(courts, c)
			}
		}
		if len(courts) == 0 {
			continue
		}
		f.Courts = courts
		out = append(out, f)
	}
	return out
}
