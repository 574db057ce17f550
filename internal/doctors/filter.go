package doctors

import "strings"

// FilterCriteria narrows the directory list. Zero-valued members are
// inactive; active criteria combine as a conjunction.
type FilterCriteria struct {
	// Query is a case-insensitive substring match on the doctor name.
	Query string
	// Specialty matches the doctor's specialty, ignoring case.
	Specialty string
	// Days keeps doctors available on at least one of the given weekdays.
	Days []string
	// PriceMin and PriceMax bound the price, inclusive on both ends.
	PriceMin *float64
	PriceMax *float64
}

// Filter returns the doctors matching every active criterion, preserving
// directory order.
func Filter(docs []Doctor, c FilterCriteria) []Doctor {
	out := []Doctor{}
	for i := range docs {
		if matchesCriteria(&docs[i], &c) {
			out = append(out, docs[i])
		}
	}
	return out
}

func matchesCriteria(d *Doctor, c *FilterCriteria) bool {
	if c.Query != "" {
		needle := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(d.Name), needle) {
			return false
		}
	}
	if c.Specialty != "" && !strings.EqualFold(d.Specialty, c.Specialty) {
		return false
	}
	if len(c.Days) > 0 {
		found := false
		for _, day := range c.Days {
			if d.availabilityFor(day) != nil {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.PriceMin != nil && d.Price < *c.PriceMin {
		return false
	}
	if c.PriceMax != nil && d.Price > *c.PriceMax {
		return false
	}
	return true
}
