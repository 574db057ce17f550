package appointments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook/internal/doctors"
)

var projectorNow = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func appt(id, doctorID, date string, cancelled bool) Appointment {
	return Appointment{
		ID:          id,
		DoctorID:    doctorID,
		PatientName: "Pat Doe",
		PatientAge:  40,
		Description: "Recurring back pain",
		Date:        date,
		Time:        "09:00",
		Cancelled:   cancelled,
	}
}

func TestPartitionByTimePlacesEachAppointmentExactlyOnce(t *testing.T) {
	appts := []Appointment{
		appt("a1", "d1", "2025-03-11", false), // yesterday
		appt("a2", "d1", "2025-03-12", false), // today
		appt("a3", "d1", "2025-03-20", false), // future
		appt("a4", "d1", "2025-03-20", true),  // cancelled, future date
		appt("a5", "d1", "2025-01-01", true),  // cancelled, past date
	}

	p := PartitionByTime(appts, projectorNow)

	assert.Len(t, p.Future, 2)
	assert.Len(t, p.Past, 1)
	assert.Len(t, p.Cancelled, 2)

	total := len(p.Future) + len(p.Past) + len(p.Cancelled)
	assert.Equal(t, len(appts), total, "every appointment appears exactly once")
}

func TestPartitionTodayIsFuture(t *testing.T) {
	p := PartitionByTime([]Appointment{appt("a1", "d1", "2025-03-12", false)}, projectorNow)
	require.Len(t, p.Future, 1)
	assert.Empty(t, p.Past)
}

func TestPartitionYesterdayIsPast(t *testing.T) {
	p := PartitionByTime([]Appointment{appt("a1", "d1", "2025-03-11", false)}, projectorNow)
	require.Len(t, p.Past, 1)
	assert.Empty(t, p.Future)
}

func TestPartitionCancelledNeverInFutureOrPast(t *testing.T) {
	appts := []Appointment{
		appt("x1", "d1", "2025-03-20", true),
		appt("x2", "d1", "2025-03-01", true),
	}
	p := PartitionByTime(appts, projectorNow)
	assert.Empty(t, p.Future)
	assert.Empty(t, p.Past)
	assert.Len(t, p.Cancelled, 2)
}

func TestPartitionAcceptsRFC3339Dates(t *testing.T) {
	p := PartitionByTime([]Appointment{
		appt("a1", "d1", "2025-03-20T10:00:00Z", false),
	}, projectorNow)
	assert.Len(t, p.Future, 1)
}

// fakeResolver is an in-memory DoctorResolver.
type fakeResolver map[string]doctors.Doctor

func (f fakeResolver) Get(id string) (doctors.Doctor, bool) {
	doc, ok := f[id]
	return doc, ok
}

func testResolver() fakeResolver {
	return fakeResolver{
		"d1": {ID: "d1", Name: "Meredith Grey"},
		"d2": {ID: "d2", Name: "Gregory House"},
	}
}

func allSearchFields() []SearchField {
	return []SearchField{SearchDoctorName, SearchPatientName, SearchDescription}
}

func TestApplyFiltersExcludesCancelledByDefault(t *testing.T) {
	appts := []Appointment{
		appt("a1", "d1", "2025-03-20", false),
		appt("a2", "d1", "2025-03-20", true),
	}

	out := ApplyFilters(appts, testResolver(), FilterCriteria{})
	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)

	out = ApplyFilters(appts, testResolver(), FilterCriteria{IncludeCancelled: true})
	assert.Len(t, out, 2)
}

func TestApplyFiltersDoctorMembershipBeatsSearchMatch(t *testing.T) {
	appts := []Appointment{
		appt("a1", "d1", "2025-03-20", false),
		appt("a2", "d2", "2025-03-20", false),
	}

	out := ApplyFilters(appts, testResolver(), FilterCriteria{
		SearchText:   "back pain", // matches both descriptions
		SearchFields: allSearchFields(),
		DoctorIDs:    []string{"d1"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
}

func TestApplyFiltersSearchByDoctorName(t *testing.T) {
	appts := []Appointment{
		appt("a1", "d1", "2025-03-20", false),
		appt("a2", "d2", "2025-03-20", false),
	}

	out := ApplyFilters(appts, testResolver(), FilterCriteria{
		SearchText:   "house",
		SearchFields: allSearchFields(),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "a2", out[0].ID)
}

func TestApplyFiltersSearchIsCaseInsensitive(t *testing.T) {
	appts := []Appointment{appt("a1", "d1", "2025-03-20", false)}

	out := ApplyFilters(appts, testResolver(), FilterCriteria{
		SearchText:   "PAT DOE",
		SearchFields: []SearchField{SearchPatientName},
	})
	assert.Len(t, out, 1)
}

func TestApplyFiltersRespectsEnabledFields(t *testing.T) {
	appts := []Appointment{appt("a1", "d1", "2025-03-20", false)}

	// "grey" only matches the doctor name, which is not enabled here.
	out := ApplyFilters(appts, testResolver(), FilterCriteria{
		SearchText:   "grey",
		SearchFields: []SearchField{SearchPatientName, SearchDescription},
	})
	assert.Empty(t, out)
}

func TestApplyFiltersUnresolvedDoctorStaysInResultSet(t *testing.T) {
	appts := []Appointment{appt("a1", "ghost", "2025-03-20", false)}

	// No search: the dangling doctorId alone must not exclude the record.
	out := ApplyFilters(appts, testResolver(), FilterCriteria{})
	assert.Len(t, out, 1)

	// Doctor-name search cannot match an unresolved doctor, but other
	// fields still can.
	out = ApplyFilters(appts, testResolver(), FilterCriteria{
		SearchText:   "back pain",
		SearchFields: allSearchFields(),
	})
	assert.Len(t, out, 1)

	out = ApplyFilters(appts, testResolver(), FilterCriteria{
		SearchText:   "grey",
		SearchFields: []SearchField{SearchDoctorName},
	})
	assert.Empty(t, out)
}

func TestApplyFiltersExactDate(t *testing.T) {
	appts := []Appointment{
		appt("a1", "d1", "2025-03-20", false),
		appt("a2", "d1", "2025-03-21", false),
		appt("a3", "d1", "2025-03-20T09:30:00Z", false),
	}

	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	out := ApplyFilters(appts, testResolver(), FilterCriteria{ExactDate: &date})
	require.Len(t, out, 2)
	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, "a3", out[1].ID)
}

func TestApplyFiltersTimeRangeInclusive(t *testing.T) {
	mk := func(id, clock string) Appointment {
		a := appt(id, "d1", "2025-03-20", false)
		a.Time = clock
		return a
	}
	appts := []Appointment{
		mk("a1", "08:59"),
		mk("a2", "09:00"),
		mk("a3", "12:30"),
		mk("a4", "17:00"),
		mk("a5", "17:01"),
	}

	out := ApplyFilters(appts, testResolver(), FilterCriteria{
		TimeRange: &TimeRange{Start: "09:00", End: "17:00"},
	})
	require.Len(t, out, 3)
	assert.Equal(t, "a2", out[0].ID)
	assert.Equal(t, "a4", out[2].ID)
}

func TestGroupByCalendarDate(t *testing.T) {
	appts := []Appointment{
		appt("a1", "d1", "2025-03-10", false),
		appt("a2", "d1", "2025-03-10", false),
		appt("a3", "d1", "2025-03-12", false),
		appt("a4", "d1", "2025-03-20", false), // outside window
		appt("a5", "d1", "2025-03-09", false), // before window
	}
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	buckets := GroupByCalendarDate(appts, start, 7)

	require.Len(t, buckets, 2)
	assert.Len(t, buckets["2025-03-10"], 2)
	assert.Len(t, buckets["2025-03-12"], 1)
	assert.NotContains(t, buckets, "2025-03-20")
	assert.NotContains(t, buckets, "2025-03-09")
}
