// Package service owns the application state: it loads the survey dataset,
// publishes it to the store and reports loader progress.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/rootsroads/internal/adapters/repository"
	"github.com/okian/rootsroads/internal/adapters/sheet"
	"github.com/okian/rootsroads/internal/domain/contributor"
	"github.com/okian/rootsroads/internal/domain/dataset"
	"github.com/okian/rootsroads/pkg/logger"
	"github.com/okian/rootsroads/pkg/metrics"

	"github.com/google/uuid"
)

// Source returns the raw CSV export of the survey.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Phase is a step of the dataset loader.
type Phase string

// Loader phases in the order they are reported.
const (
	PhaseIdle       Phase = "idle"
	PhaseConnecting Phase = "connecting"
	PhaseParsing    Phase = "parsing"
	PhaseProcessing Phase = "processing"
	PhaseReady      Phase = "ready"
	PhaseFailed     Phase = "failed"
)

// Status is the loader state shown to users while and after loading.
type Status struct {
	Phase     Phase     `json:"phase"`
	Message   string    `json:"message"`
	LoadID    string    `json:"loadId,omitempty"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusSink receives every status change.
type StatusSink interface {
	Report(ctx context.Context, st Status)
}

// ErrorSink receives load failures for display.
type ErrorSink interface {
	Fail(ctx context.Context, kind ErrorKind, message string, err error)
}

// Report counts what happened to the rows of one load.
type Report struct {
	Rows            int `json:"rows"`
	Accepted        int `json:"accepted"`
	RejectedConsent int `json:"rejectedConsent"`
	RejectedName    int `json:"rejectedName"`
	Geolocated      int `json:"geolocated"`
}

// Service loads the dataset and holds the current one.
type Service struct {
	source     Source
	store      repository.Store
	logger     logger.Logger
	statusSink StatusSink
	errorSink  ErrorSink
	newID      func() string
	now        func() time.Time

	loadMu sync.Mutex

	mu         sync.RWMutex
	status     Status
	lastReport Report
	loads      int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory dataset store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithStatusSink forwards status changes to sink.
func WithStatusSink(sink StatusSink) Option {
	return func(s *Service) { s.statusSink = sink }
}

// WithErrorSink forwards load failures to sink.
func WithErrorSink(sink ErrorSink) Option {
	return func(s *Service) { s.errorSink = sink }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how load ids are generated.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs a Service reading from source.
func New(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		store:  repository.NewMemoryStore(context.Background()),
		logger: logger.Nop(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.status = Status{Phase: PhaseIdle, Message: "Waiting to load stories", UpdatedAt: s.now()}
	return s
}

// Load fetches, parses and processes the survey and publishes the resulting
// dataset. Concurrent calls run one after another. On failure the previously
// published dataset, if any, stays current.
func (s *Service) Load(ctx context.Context) (*dataset.Dataset, error) {
	const op = "service.load"

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.source == nil {
		return nil, s.fail(ctx, "", fmt.Errorf("%s: %w", op, ErrNoSource))
	}

	loadID := s.newID()
	log := s.logger.With(logger.String("load_id", loadID))
	start := time.Now()

	s.report(ctx, Status{Phase: PhaseConnecting, Message: "Connecting to the survey spreadsheet...", LoadID: loadID})
	log.Info(ctx, "fetching dataset")
	text, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, s.fail(ctx, loadID, fmt.Errorf("%s: %w", op, err))
	}

	s.report(ctx, Status{Phase: PhaseParsing, Message: "Parsing responses...", LoadID: loadID})
	_, rows, err := sheet.Tokenize(text)
	if err != nil {
		return nil, s.fail(ctx, loadID, fmt.Errorf("%s: %w", op, err))
	}
	log.Debug(ctx, "tokenized dataset", logger.Int("rows", len(rows)))

	s.report(ctx, Status{
		Phase:   PhaseProcessing,
		Message: fmt.Sprintf("Processing %d responses...", len(rows)),
		LoadID:  loadID,
	})
	ds, rep := Process(rows, dataset.WithID(loadID), dataset.WithLoadedAt(s.now()))

	metrics.RecordRowsRejected("consent", rep.RejectedConsent)
	metrics.RecordRowsRejected("name", rep.RejectedName)
	if rep.Accepted == 0 {
		log.Warn(ctx, "no rows passed the consent filter", logger.Int("rows", rep.Rows))
	}

	if err := s.store.Replace(ctx, ds); err != nil {
		return nil, s.fail(ctx, loadID, fmt.Errorf("%s: %w", op, err))
	}

	elapsed := time.Since(start)
	metrics.RecordDatasetLoad("success", string(KindNone))
	metrics.RecordDatasetLoadDuration(float64(elapsed.Milliseconds()))

	totals := ds.Totals()
	s.mu.Lock()
	s.lastReport = rep
	s.loads++
	s.mu.Unlock()

	s.report(ctx, Status{
		Phase:   PhaseReady,
		Message: fmt.Sprintf("Loaded %d stories from %d countries", totals.Stories, totals.Countries),
		LoadID:  loadID,
	})
	log.Info(ctx, "dataset loaded",
		logger.Int("rows", rep.Rows),
		logger.Int("accepted", rep.Accepted),
		logger.Int("rejected_consent", rep.RejectedConsent),
		logger.Int("rejected_name", rep.RejectedName),
		logger.Int("geolocated", rep.Geolocated),
		logger.Int("countries", totals.Countries),
		logger.Duration("elapsed", elapsed),
	)
	return ds, nil
}

// Reload is the manual retry behind the error surface.
func (s *Service) Reload(ctx context.Context) (*dataset.Dataset, error) {
	return s.Load(ctx)
}

// Process gates and normalizes rows in source order.
func Process(rows []contributor.Row, opts ...dataset.Option) (*dataset.Dataset, Report) {
	rep := Report{Rows: len(rows)}
	accepted := make([]contributor.Contributor, 0, len(rows))
	for _, row := range rows {
		c, err := contributor.Parse(row)
		switch {
		case errors.Is(err, contributor.ErrNoConsent):
			rep.RejectedConsent++
			continue
		case errors.Is(err, contributor.ErrMissingName):
			rep.RejectedName++
			continue
		}
		if c.Geolocated() {
			rep.Geolocated++
		}
		accepted = append(accepted, c)
	}
	rep.Accepted = len(accepted)
	return dataset.New(accepted, opts...), rep
}

func (s *Service) fail(ctx context.Context, loadID string, err error) error {
	kind := Kind(err)
	msg := userMessage(kind)

	metrics.RecordDatasetLoad("failure", string(kind))
	s.logger.Error(ctx, "dataset load failed",
		logger.String("load_id", loadID),
		logger.String("kind", string(kind)),
		logger.Error(err),
	)
	s.report(ctx, Status{
		Phase:     PhaseFailed,
		Message:   msg,
		LoadID:    loadID,
		ErrorKind: kind,
		Error:     err.Error(),
	})
	if s.errorSink != nil {
		s.errorSink.Fail(ctx, kind, msg, err)
	}
	return err
}

func (s *Service) report(ctx context.Context, st Status) {
	st.UpdatedAt = s.now()
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()

	s.logger.Debug(ctx, "loader status", logger.String("phase", string(st.Phase)), logger.String("message", st.Message))
	if s.statusSink != nil {
		s.statusSink.Report(ctx, st)
	}
}

// Status returns the latest loader status.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastReport returns the row counts of the last successful load.
func (s *Service) LastReport() Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport
}

// Current returns the published dataset or repository.ErrNotLoaded.
func (s *Service) Current(ctx context.Context) (*dataset.Dataset, error) {
	return s.store.Current(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"phase":      string(s.status.Phase),
		"loads":      s.loads,
		"loadId":     s.status.LoadID,
		"rows":       s.lastReport.Rows,
		"accepted":   s.lastReport.Accepted,
		"geolocated": s.lastReport.Geolocated,
		"stored":     s.store.Count(context.Background()),
	}
	if s.status.ErrorKind != KindNone {
		stats["errorKind"] = string(s.status.ErrorKind)
	}
	return stats
}
