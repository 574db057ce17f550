// Package appointments owns the appointment collection: creation with
// boundary validation, soft cancel, reschedule, removal, and the pure
// projections that derive the list/calendar/board views from it.
package appointments

import (
	"strings"
	"time"
)

// Appointment is a booked visit. The record is mutated in place by
// update/reschedule/cancel and deleted only by an explicit remove;
// cancelling never deletes.
type Appointment struct {
	ID          string `json:"id"`
	DoctorID    string `json:"doctorId"`
	PatientName string `json:"patientName"`
	PatientAge  int    `json:"patientAge"`
	Description string `json:"description"`
	Date        string `json:"date"` // "2006-01-02" or RFC 3339
	Time        string `json:"time"` // "15:04"
	Cancelled   bool   `json:"cancelled"`
}

// Day returns the appointment's calendar day.
func (a *Appointment) Day() (time.Time, error) {
	return parseDate(a.Date)
}

// dateLayouts are accepted for the date field. Stored data mixes plain
// dates with full timestamps.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// parseClock parses an "HH:MM" time-of-day into minutes since midnight.
func parseClock(value string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

const (
	minPatientNameLen = 2
	minDescriptionLen = 10
	minPatientAge     = 1
	maxPatientAge     = 120
)

// CreateAppointmentRequest is the typed input for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID    string `json:"doctorId"`
	PatientName string `json:"patientName"`
	PatientAge  int    `json:"patientAge"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// Validate checks every field rule and reports all failures at once.
func (r *CreateAppointmentRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.DoctorID) == "" {
		v.add("doctorId", "doctor is required")
	}
	if len(strings.TrimSpace(r.PatientName)) < minPatientNameLen {
		v.add("patientName", "name must be at least 2 characters")
	}
	if r.PatientAge < minPatientAge || r.PatientAge > maxPatientAge {
		v.add("patientAge", "age must be between 1 and 120")
	}
	if len(strings.TrimSpace(r.Description)) < minDescriptionLen {
		v.add("description", "description must be at least 10 characters")
	}
	if strings.TrimSpace(r.Date) == "" {
		v.add("date", "date is required")
	} else if _, err := parseDate(r.Date); err != nil {
		v.add("date", "date must be a valid calendar date")
	}
	if strings.TrimSpace(r.Time) == "" {
		v.add("time", "time is required")
	} else if _, ok := parseClock(r.Time); !ok {
		v.add("time", "time must be HH:MM")
	}
	if len(v.Fields) > 0 {
		return &v
	}
	return nil
}

// validate applies the create-time field rules to a full record, for
// mutations that replace it wholesale.
func (a *Appointment) validate() error {
	req := CreateAppointmentRequest{
		DoctorID:    a.DoctorID,
		PatientName: a.PatientName,
		PatientAge:  a.PatientAge,
		Description: a.Description,
		Date:        a.Date,
		Time:        a.Time,
	}
	return req.Validate()
}

// RescheduleRequest moves an appointment to a new date and time. Only
// date, time and (optionally) patient age change; everything else is
// left untouched.
type RescheduleRequest struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	PatientAge *int   `json:"patientAge,omitempty"`
}

// Validate checks the reschedule fields.
func (r *RescheduleRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Date) == "" {
		v.add("date", "date is required")
	} else if _, err := parseDate(r.Date); err != nil {
		v.add("date", "date must be a valid calendar date")
	}
	if strings.TrimSpace(r.Time) == "" {
		v.add("time", "time is required")
	} else if _, ok := parseClock(r.Time); !ok {
		v.add("time", "time must be HH:MM")
	}
	if r.PatientAge != nil && (*r.PatientAge < minPatientAge || *r.PatientAge > maxPatientAge) {
		v.add("patientAge", "age must be between 1 and 120")
	}
	if len(v.Fields) > 0 {
		return &v
	}
	return nil
}
