package doctors

import (
	"context"
	"sync"

	"github.com/medibook/medibook/internal/observability/metrics"
	"github.com/medibook/medibook/pkg/logging"
)

// Status tracks the load state of the directory.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Fetcher retrieves doctor records from the upstream API.
type Fetcher interface {
	FetchDoctors(ctx context.Context) ([]Doctor, error)
	FetchDoctor(ctx context.Context, id string) (*Doctor, error)
}

// Directory caches doctor records fetched from the upstream API. It is the
// read model for every other component: a fetch failure keeps the previous
// collection readable and records the error instead of clearing state.
type Directory struct {
	client  Fetcher
	logger  *logging.Logger
	metrics *metrics.DirectoryMetrics

	mu       sync.RWMutex
	doctors  []Doctor
	byID     map[string]Doctor
	selected *Doctor
	status   Status
	errMsg   string
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithMetrics wires fetch counters into the directory.
func WithMetrics(m *metrics.DirectoryMetrics) DirectoryOption {
	return func(d *Directory) {
		d.metrics = m
	}
}

// NewDirectory creates an empty directory in the idle state.
func NewDirectory(client Fetcher, logger *logging.Logger, opts ...DirectoryOption) *Directory {
	if client == nil {
		panic("doctors: fetcher required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	d := &Directory{
		client: client,
		logger: logger,
		byID:   make(map[string]Doctor),
		status: StatusIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FetchAll loads the full doctor list, replacing the collection wholesale
// on success. While a fetch is loading, further calls are suppressed with
// ErrFetchInFlight so two results never race into the store. On failure
// the previous collection stays readable and the error message is recorded.
func (d *Directory) FetchAll(ctx context.Context) error {
	if err := d.beginFetch("list"); err != nil {
		return err
	}

	list, err := d.client.FetchDoctors(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.status = StatusFailed
		d.errMsg = err.Error()
		d.metrics.ObserveFetch("list", "failed")
		d.logger.Error("doctor list fetch failed", "error", err)
		return err
	}

	d.doctors = list
	d.byID = make(map[string]Doctor, len(list))
	for _, doc := range list {
		d.byID[doc.ID] = doc
	}
	d.status = StatusSucceeded
	d.errMsg = ""
	d.metrics.ObserveFetch("list", "succeeded")
	d.logger.Info("doctor list fetched", "count", len(list))
	return nil
}

// FetchOne loads a single doctor's full detail into the selected slot.
// The cached list is never clobbered, on success or failure.
func (d *Directory) FetchOne(ctx context.Context, id string) (*Doctor, error) {
	if err := d.beginFetch("detail"); err != nil {
		return nil, err
	}

	doc, err := d.client.FetchDoctor(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.status = StatusFailed
		d.errMsg = err.Error()
		d.metrics.ObserveFetch("detail", "failed")
		d.logger.Error("doctor detail fetch failed", "doctor_id", id, "error", err)
		return nil, err
	}

	d.selected = doc
	d.byID[doc.ID] = *doc
	d.status = StatusSucceeded
	d.errMsg = ""
	d.metrics.ObserveFetch("detail", "succeeded")
	d.logger.Info("doctor detail fetched", "doctor_id", doc.ID)

	out := *doc
	return &out, nil
}

func (d *Directory) beginFetch(operation string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status == StatusLoading {
		d.metrics.ObserveFetch(operation, "suppressed")
		return ErrFetchInFlight
	}
	d.status = StatusLoading
	return nil
}

// All returns a copy of the cached doctor list.
func (d *Directory) All() []Doctor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out
}

// Get looks up a doctor by id.
func (d *Directory) Get(id string) (Doctor, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.byID[id]
	return doc, ok
}

// Selected returns the doctor loaded by the last FetchOne, or nil.
func (d *Directory) Selected() *Doctor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.selected == nil {
		return nil
	}
	out := *d.selected
	return &out
}

// Status returns the current load status.
func (d *Directory) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

// Err returns the last recorded fetch error message, empty when none.
func (d *Directory) Err() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.errMsg
}
