package planning

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tennis-watch/types"
)

// Available is the only upstream literal that marks a free slot. Every other
// cell text is kept verbatim as the status.
const Available = "LIBRE"

var (
	courtHeaderRe = regexp.MustCompile(`(?i)^court\s*\d+`)
	timeslotRe    = regexp.MustCompile(`^\d{1,2}h\s*-\s*\d{1,2}h$`)
	courtNumberRe = regexp.MustCompile(`(?i)court\s*0*(\d+)`)
	startHourRe   = regexp.MustCompile(`^(\d{1,2})h`)
)

// Parse turns one planning page (or fragment) into PlanningData. The caller
// fills in Facility and Date afterwards.
//
// Header cells matching "Court NN" define the columns, in document order.
// Each row whose first cell is a "HHh - HHh" label becomes a timeslot; its
// data cells are tied to the columns by index in a single pass. A row with
// fewer cells than columns leaves the trailing courts without a status entry
// for that row. Malformed input yields an empty result, never an error:
// callers treat zero timeslots as "no data".
func Parse(html string) types.PlanningData {
	empty := types.PlanningData{Courts: []string{}, Timeslots: []types.Timeslot{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return empty
	}

	courts := make([]string, 0)
	doc.Find("th").Each(func(i int, th *goquery.Selection) {
		label := collapse(th.Text())
		if courtHeaderRe.MatchString(label) {
			courts = append(courts, label)
		}
	})
	if len(courts) == 0 {
		return empty
	}

	timeslots := make([]types.Timeslot, 0)
	doc.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}

		timeLabel := collapse(cells.First().Text())
		if !timeslotRe.MatchString(timeLabel) {
			return
		}

		slot := types.Timeslot{
			Time:   timeLabel,
			Courts: make(map[string]types.CourtStatus),
		}

		// Data cells follow the time cell. The same extraction handles both
		// the plain "LIBRE" cell and the reserved cell carrying a nested
		// paragraph and line break before the status.
		cells.Slice(1, cells.Length()).Each(func(col int, td *goquery.Selection) {
			if col >= len(courts) {
				return
			}
			status := cellStatus(td)
			slot.Courts[courts[col]] = types.CourtStatus{
				Status:    status,
				Available: status == Available,
			}
		})

		timeslots = append(timeslots, slot)
	})

	return types.PlanningData{Courts: courts, Timeslots: timeslots}
}

// cellStatus extracts the status literal from one data cell, ignoring the
// nested markup reserved cells carry in front of it.
func cellStatus(td *goquery.Selection) string {
	clone := td.Clone()
	clone.Find("p, br").Remove()
	return collapse(clone.Text())
}

// CourtNumber extracts the numeric identifier from a column label such as
// "Court 05".
func CourtNumber(label string) (int, bool) {
	m := courtNumberRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// StartHour returns the leading hour of a "HHh - HHh" timeslot label.
func StartHour(label string) (int, bool) {
	m := startHourRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return h, true
}

// collapse trims and squeezes whitespace the way header and cell text arrives
// from the scraped table.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
