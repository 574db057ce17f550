package doctors

import "time"

// TimeSlotsFor returns the doctor's ordered hour slots for the date's
// weekday. A day with no availability yields an empty slice, not an error.
func TimeSlotsFor(d *Doctor, date time.Time) []string {
	entry := d.availabilityFor(date.Weekday().String())
	if entry == nil {
		return []string{}
	}
	slots := make([]string, len(entry.Hours))
	copy(slots, entry.Hours)
	return slots
}

// BookingWindow holds the bookable dates of a scan window, split at the
// midpoint into the current and the following period ("this week" /
// "next week" for the default 14-day window).
type BookingWindow struct {
	ThisPeriod []string `json:"thisPeriod"`
	NextPeriod []string `json:"nextPeriod"`
}

// DaysInWindow walks lengthDays calendar dates starting at start and
// collects those whose weekday matches one of the doctor's availability
// entries. Dates without availability are excluded.
func DaysInWindow(d *Doctor, start time.Time, lengthDays int) BookingWindow {
	window := BookingWindow{
		ThisPeriod: []string{},
		NextPeriod: []string{},
	}
	half := lengthDays / 2
	for i := 0; i < lengthDays; i++ {
		date := start.AddDate(0, 0, i)
		if d.availabilityFor(date.Weekday().String()) == nil {
			continue
		}
		day := date.Format("2006-01-02")
		if i < half {
			window.ThisPeriod = append(window.ThisPeriod, day)
		} else {
			window.NextPeriod = append(window.NextPeriod, day)
		}
	}
	return window
}
