package notify

import (
	"fmt"
	"strings"

	"tennis-watch/filter"
	"tennis-watch/types"
)

// RenderFacilities formats a fast-mode result as a human-readable summary,
// one block per facility.
func RenderFacilities(facilities []types.FilteredFacility, when string) string {
	if len(facilities) == 0 {
		return fmt.Sprintf("No court available on %s.", when)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎾 Courts available on %s:\n", when)
	for _, f := range facilities {
		fmt.Fprintf(&b, "\n*%s*\n", f.Facility)
		for _, c := range f.Courts {
			kind := "outdoor"
			if c.Covered == filter.CoveredFlag {
				kind = "covered"
			}
			fmt.Fprintf(&b, "  - Court %02d (%s)\n", c.Number, kind)
		}
	}
	return b.String()
}

// RenderDetailed formats a detailed-mode result: per facility, the free
// courts of each timeslot. Courts follow the planning column order so the
// rendering is stable run to run.
func RenderDetailed(facilities []types.DetailedFacility, when string) string {
	if len(facilities) == 0 {
		return fmt.Sprintf("No court available on %s.", when)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎾 Courts available on %s:\n", when)
	for _, f := range facilities {
		fmt.Fprintf(&b, "\n*%s*\n", f.Facility)
		for _, ts := range f.Timeslots {
			free := make([]string, 0, len(f.Courts))
			for _, label := range f.Courts {
				if status, ok := ts.Courts[label]; ok && status.Available {
					free = append(free, label)
				}
			}
			if len(free) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", ts.Time, strings.Join(free, ", "))
		}
	}
	return b.String()
}
