package appointments

import (
	"strings"
	"time"

	"github.com/medibook/medibook/internal/doctors"
)

// The projector derives read-only view models from the appointment
// collection. Every function here is pure: the list, calendar and board
// surfaces all call the same code, so the partition and filter rules
// cannot drift between them.

// Partition buckets appointments by time. A cancelled appointment lands
// only in Cancelled regardless of its date; every non-cancelled one lands
// in exactly one of Future and Past.
type Partition struct {
	Future    []Appointment `json:"future"`
	Past      []Appointment `json:"past"`
	Cancelled []Appointment `json:"cancelled"`
}

// PartitionByTime splits appointments into future/past/cancelled relative
// to now, at calendar-day granularity: today counts as future.
func PartitionByTime(appts []Appointment, now time.Time) Partition {
	p := Partition{
		Future:    []Appointment{},
		Past:      []Appointment{},
		Cancelled: []Appointment{},
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, a := range appts {
		if a.Cancelled {
			p.Cancelled = append(p.Cancelled, a)
			continue
		}
		day, err := a.Day()
		if err != nil || day.Before(today) {
			// An unparsable date cannot be ordered into the future;
			// it surfaces in Past rather than vanishing.
			p.Past = append(p.Past, a)
			continue
		}
		p.Future = append(p.Future, a)
	}
	return p
}

// SearchField selects which fields a text search matches against.
type SearchField string

const (
	SearchDoctorName  SearchField = "doctorName"
	SearchPatientName SearchField = "patientName"
	SearchDescription SearchField = "description"
)

// TimeRange is an inclusive time-of-day range, both ends "HH:MM".
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DoctorResolver resolves doctor records for doctor-name matching.
// *doctors.Directory satisfies it.
type DoctorResolver interface {
	Get(id string) (doctors.Doctor, bool)
}

// FilterCriteria is the conjunction of filters a view applies.
// Zero-valued members are inactive.
type FilterCriteria struct {
	SearchText       string
	SearchFields     []SearchField
	DoctorIDs        []string
	ExactDate        *time.Time
	TimeRange        *TimeRange
	IncludeCancelled bool
}

// ApplyFilters returns the appointments matching every active criterion.
// An appointment whose doctor is not in the directory is excluded from
// doctor-name matching but not from the result set by that fact alone.
func ApplyFilters(appts []Appointment, resolver DoctorResolver, criteria FilterCriteria) []Appointment {
	out := []Appointment{}
	for _, a := range appts {
		if matchesFilters(&a, resolver, &criteria) {
			out = append(out, a)
		}
	}
	return out
}

func matchesFilters(a *Appointment, resolver DoctorResolver, c *FilterCriteria) bool {
	if a.Cancelled && !c.IncludeCancelled {
		return false
	}

	if len(c.DoctorIDs) > 0 {
		found := false
		for _, id := range c.DoctorIDs {
			if a.DoctorID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.ExactDate != nil {
		day, err := a.Day()
		if err != nil {
			return false
		}
		want := *c.ExactDate
		if day.Year() != want.Year() || day.YearDay() != want.YearDay() {
			return false
		}
	}

	if c.TimeRange != nil {
		minutes, ok := parseClock(a.Time)
		if !ok {
			return false
		}
		start, okStart := parseClock(c.TimeRange.Start)
		end, okEnd := parseClock(c.TimeRange.End)
		// A half-open range (one end unset or invalid) is inactive.
		if okStart && okEnd && (minutes < start || minutes > end) {
			return false
		}
	}

	if c.SearchText != "" {
		if !matchesSearch(a, resolver, c) {
			return false
		}
	}

	return true
}

func matchesSearch(a *Appointment, resolver DoctorResolver, c *FilterCriteria) bool {
	needle := strings.ToLower(c.SearchText)
	for _, field := range c.SearchFields {
		switch field {
		case SearchDoctorName:
			if resolver == nil {
				continue
			}
			doc, ok := resolver.Get(a.DoctorID)
			if !ok {
				// Unresolved doctor: this field simply cannot match.
				continue
			}
			if strings.Contains(strings.ToLower(doc.Name), needle) {
				return true
			}
		case SearchPatientName:
			if strings.Contains(strings.ToLower(a.PatientName), needle) {
				return true
			}
		case SearchDescription:
			if strings.Contains(strings.ToLower(a.Description), needle) {
				return true
			}
		}
	}
	return false
}

// GroupByCalendarDate buckets appointments by calendar day within the
// window, keyed "2006-01-02", for the calendar and kanban grids. Moving
// an appointment between buckets is a Reschedule with the new date and
// the same time.
func GroupByCalendarDate(appts []Appointment, start time.Time, lengthDays int) map[string][]Appointment {
	windowStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, lengthDays)

	buckets := make(map[string][]Appointment)
	for _, a := range appts {
		day, err := a.Day()
		if err != nil {
			continue
		}
		if day.Before(windowStart) || !day.Before(windowEnd) {
			continue
		}
		key := day.Format("2006-01-02")
		buckets[key] = append(buckets[key], a)
	}
	return buckets
}
