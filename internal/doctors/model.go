// Package doctors holds the doctor directory: records fetched from the
// upstream doctors API, their weekly availability, and the matcher that
// turns availability into concrete bookable days and time slots.
package doctors

import "strings"

// Badge is a display-only label attached to a doctor profile.
type Badge struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// DayAvailability lists the bookable hour slots for one weekday.
// Day is a weekday name; comparisons must go through NormalizeDay.
type DayAvailability struct {
	Day   string   `json:"day"`
	Hours []string `json:"hours"`
}

// Doctor is a directory record. Records are immutable after fetch and
// replaced wholesale on refetch; the client never mutates them.
type Doctor struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Specialty    string            `json:"specialty"`
	Description  string            `json:"description"`
	Image        string            `json:"image"`
	Price        float64           `json:"price"`
	Availability []DayAvailability `json:"availability"`
	Badges       []Badge           `json:"badges,omitempty"`

	// Detail fields, only populated by the single-doctor fetch.
	Bio            string   `json:"bio,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	PhoneNumber    string   `json:"phoneNumber,omitempty"`
	Location       string   `json:"location,omitempty"`
	Email          string   `json:"email,omitempty"`
}

// NormalizeDay canonicalizes a weekday name for comparison. Upstream data
// mixes "Monday" and "monday"; matching without normalizing silently fails.
func NormalizeDay(day string) string {
	return strings.ToLower(strings.TrimSpace(day))
}

// availabilityFor returns the availability entry matching the given
// weekday name, or nil when the doctor has none that day.
func (d *Doctor) availabilityFor(day string) *DayAvailability {
	want := NormalizeDay(day)
	for i := range d.Availability {
		if NormalizeDay(d.Availability[i].Day) == want {
			return &d.Availability[i]
		}
	}
	return nil
}
