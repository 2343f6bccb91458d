// Package service runs extraction sessions: the screenshot path from upload
// through review to import, and the stateless Live-DOM lookup.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"leadscout/internal/identity/adapters/dom"
	"leadscout/internal/identity/adapters/screenshot"
	"leadscout/internal/identity/classifier"
	"leadscout/internal/identity/dedup"
	"leadscout/internal/identity/importer"
	"leadscout/internal/identity/metrics"
	"leadscout/internal/identity/ports"
	"leadscout/internal/identity/session"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/sentinel"
)

const (
	DefaultOCRTimeout = 30 * time.Second
	DefaultSessionTTL = 30 * time.Minute
)

var tracer = otel.Tracer("leadscout/internal/identity/session/service")

// Store holds live sessions. session.InMemory implements it.
type Store interface {
	Create(ctx context.Context, s *session.Session) error
	Get(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*session.Snapshot, error)
	Update(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID, fn func(*session.Session) error) (*session.Snapshot, error)
	DeleteIdleSince(ctx context.Context, cutoff time.Time) int
	Len() int
}

// ProgressObserver is called whenever a session's progress advances.
type ProgressObserver func(sessionID id.SessionID, percent int)

// Ticket identifies one submitted extraction run. Pass it to Run.
type Ticket struct {
	SessionID  id.SessionID
	TenantID   id.TenantID
	Generation uint64
	Image      screenshot.ImageInfo
	Snapshot   *session.Snapshot

	data []byte
}

type Service struct {
	sessions   Store
	gate       ports.FeatureGate
	recognizer ports.Recognizer
	contacts   ports.ContactStore

	classifier *classifier.Classifier
	screenshot *screenshot.Adapter
	dom        *dom.Adapter
	dedup      *dedup.Deduplicator
	importer   *importer.Executor

	domOpts    []dom.Option
	importOpts []importer.Option
	observers  []ProgressObserver
	ocrTimeout time.Duration
	sessionTTL time.Duration
	clock      func() time.Time

	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher ports.AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithClassifier replaces the default keyword set.
func WithClassifier(c *classifier.Classifier) Option {
	return func(s *Service) {
		s.classifier = c
	}
}

func WithScreenshotAdapter(a *screenshot.Adapter) Option {
	return func(s *Service) {
		s.screenshot = a
	}
}

// WithDOMOptions configures the Live-DOM adapter built by New.
func WithDOMOptions(opts ...dom.Option) Option {
	return func(s *Service) {
		s.domOpts = append(s.domOpts, opts...)
	}
}

func WithImportConcurrency(n int) Option {
	return func(s *Service) {
		s.importOpts = append(s.importOpts, importer.WithConcurrency(n))
	}
}

// WithOCRTimeout bounds a single recognition call.
func WithOCRTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ocrTimeout = d
		}
	}
}

// WithSessionTTL sets how long an untouched session is kept.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sessionTTL = d
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithProgressObserver(observer ProgressObserver) Option {
	return func(s *Service) {
		s.observers = append(s.observers, observer)
	}
}

func New(sessions Store, gate ports.FeatureGate, recognizer ports.Recognizer, contacts ports.ContactStore, opts ...Option) *Service {
	s := &Service{
		sessions:   sessions,
		gate:       gate,
		recognizer: recognizer,
		contacts:   contacts,
		ocrTimeout: DefaultOCRTimeout,
		sessionTTL: DefaultSessionTTL,
		clock:      time.Now,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.classifier == nil {
		s.classifier = classifier.NewDefault()
	}
	if s.screenshot == nil {
		s.screenshot = screenshot.New()
	}
	s.dom = dom.New(s.classifier, s.domOpts...)
	s.dedup = dedup.New(contacts)
	s.importer = importer.New(contacts, append([]importer.Option{
		importer.WithLogger(s.logger),
		importer.WithMetrics(s.metrics),
		importer.WithAuditPublisher(s.auditPublisher),
	}, s.importOpts...)...)
	return s
}

// ExtractDOM returns the display name of the conversation open in an HTML
// snapshot. It holds no session state.
func (s *Service) ExtractDOM(ctx context.Context, snapshot io.Reader) (*dom.Result, error) {
	res, err := s.dom.Extract(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// translateStoreErr maps session store sentinels onto domain errors.
func translateStoreErr(err error) error {
	var de *dErrors.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "extraction session not found")
	case errors.Is(err, sentinel.ErrStale):
		return err
	case errors.As(err, &de):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "session store failure")
	}
}
