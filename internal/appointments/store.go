package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/medibook/medibook/internal/observability/metrics"
	"github.com/medibook/medibook/pkg/logging"
)

// Snapshot persists the serialized appointment collection under a single
// durable key. Implementations must treat a missing key as empty data.
type Snapshot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store owns the appointment collection. Every mutation is atomic under
// one mutex; ids are uuids and never reused after removal.
type Store struct {
	logger  *logging.Logger
	metrics *metrics.AppointmentMetrics
	snap    Snapshot
	tracer  trace.Tracer

	mu           sync.RWMutex
	appointments []Appointment
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSnapshot enables write-through snapshot persistence.
func WithSnapshot(s Snapshot) StoreOption {
	return func(st *Store) {
		st.snap = s
	}
}

// WithMetrics wires lifecycle counters into the store.
func WithMetrics(m *metrics.AppointmentMetrics) StoreOption {
	return func(st *Store) {
		st.metrics = m
	}
}

// NewStore creates an appointment store, restoring any persisted snapshot.
func NewStore(ctx context.Context, logger *logging.Logger, opts ...StoreOption) (*Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Store{
		logger: logger,
		tracer: otel.Tracer("medibook.internal.appointments"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.snap != nil {
		data, err := s.snap.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("appointments: load snapshot: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &s.appointments); err != nil {
				return nil, fmt.Errorf("appointments: decode snapshot: %w", err)
			}
			logger.Info("appointment snapshot restored", "count", len(s.appointments))
		}
	}
	return s, nil
}

// Create validates the input, assigns a fresh unique id and appends the
// appointment. On validation failure the store is unchanged and every
// failing field is reported.
func (s *Store) Create(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	ctx, span := s.tracer.Start(ctx, "appointments.create")
	defer span.End()

	if err := req.Validate(); err != nil {
		s.metrics.ObserveValidationFailure()
		span.RecordError(err)
		return nil, err
	}

	appt := Appointment{
		ID:          uuid.New().String(),
		DoctorID:    req.DoctorID,
		PatientName: req.PatientName,
		PatientAge:  req.PatientAge,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Cancelled:   false,
	}
	span.SetAttributes(attribute.String("medibook.appointment_id", appt.ID))

	s.mu.Lock()
	s.appointments = append(s.appointments, appt)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.ObserveOperation("create")
	s.logger.Info("appointment created", "id", appt.ID, "doctor_id", appt.DoctorID, "date", appt.Date, "time", appt.Time)
	return &appt, nil
}

// Update replaces the record matching appt.ID wholesale. The incoming
// fields pass the same rules as creation; on validation failure the
// stored record is unchanged.
func (s *Store) Update(ctx context.Context, appt Appointment) (*Appointment, error) {
	ctx, span := s.tracer.Start(ctx, "appointments.update")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(appt.ID)
	if idx < 0 {
		span.RecordError(ErrAppointmentNotFound)
		return nil, ErrAppointmentNotFound
	}
	if err := appt.validate(); err != nil {
		s.metrics.ObserveValidationFailure()
		span.RecordError(err)
		return nil, err
	}
	s.appointments[idx] = appt
	s.persistLocked(ctx)

	s.metrics.ObserveOperation("update")
	s.logger.Info("appointment updated", "id", appt.ID)
	out := appt
	return &out, nil
}

// Reschedule moves an active appointment to a new date and time, leaving
// all other fields untouched. Cancelled appointments are rejected.
func (s *Store) Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error) {
	ctx, span := s.tracer.Start(ctx, "appointments.reschedule")
	defer span.End()
	span.SetAttributes(attribute.String("medibook.appointment_id", id))

	if err := req.Validate(); err != nil {
		s.metrics.ObserveValidationFailure()
		span.RecordError(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		span.RecordError(ErrAppointmentNotFound)
		return nil, ErrAppointmentNotFound
	}
	if s.appointments[idx].Cancelled {
		span.RecordError(ErrAppointmentCancelled)
		return nil, ErrAppointmentCancelled
	}

	s.appointments[idx].Date = req.Date
	s.appointments[idx].Time = req.Time
	if req.PatientAge != nil {
		s.appointments[idx].PatientAge = *req.PatientAge
	}
	s.persistLocked(ctx)

	s.metrics.ObserveOperation("reschedule")
	s.logger.Info("appointment rescheduled", "id", id, "date", req.Date, "time", req.Time)
	out := s.appointments[idx]
	return &out, nil
}

// Cancel soft-flags the appointment. It is idempotent: cancelling an
// already-cancelled or missing appointment is a no-op. The record is
// never deleted by cancelling.
func (s *Store) Cancel(ctx context.Context, id string) {
	ctx, span := s.tracer.Start(ctx, "appointments.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("medibook.appointment_id", id))

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 || s.appointments[idx].Cancelled {
		return
	}
	s.appointments[idx].Cancelled = true
	s.persistLocked(ctx)

	s.metrics.ObserveOperation("cancel")
	s.logger.Info("appointment cancelled", "id", id)
}

// Remove deletes the record. Idempotent and irreversible; the id is
// never reassigned.
func (s *Store) Remove(ctx context.Context, id string) {
	ctx, span := s.tracer.Start(ctx, "appointments.remove")
	defer span.End()
	span.SetAttributes(attribute.String("medibook.appointment_id", id))

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	s.appointments = append(s.appointments[:idx], s.appointments[idx+1:]...)
	s.persistLocked(ctx)

	s.metrics.ObserveOperation("remove")
	s.logger.Info("appointment removed", "id", id)
}

// Get looks up an appointment by id.
func (s *Store) Get(id string) (Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return Appointment{}, false
	}
	return s.appointments[idx], true
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

func (s *Store) indexLocked(id string) int {
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the current collection through to the snapshot.
// Persistence failures are logged, not surfaced: the in-memory store is
// the source of truth and the snapshot is a recovery aid.
func (s *Store) persistLocked(ctx context.Context) {
	if s.snap == nil {
		return
	}
	data, err := json.Marshal(s.appointments)
	if err != nil {
		s.logger.Error("appointment snapshot encode failed", "error", err)
		return
	}
	if err := s.snap.Save(ctx, data); err != nil {
		s.logger.Error("appointment snapshot write failed", "error", err)
	}
}
