package snapshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/pkg/metrics"
)

// Document is the YAML form of an export.
type Document struct {
	Name    string         `yaml:"name"`
	ID      string         `yaml:"id"`
	TakenAt time.Time      `yaml:"takenAt"`
	Updates int            `yaml:"updates"`
	State   map[string]any `yaml:"state"`
}

// Result describes a finished export.
type Result struct {
	ID        string
	HTMLKey   string
	StateKey  string
	HTMLBytes int
}

// Exporter writes App snapshots to a Sink.
type Exporter struct {
	sink    Sink
	prefix  string
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
	now     func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(e *Exporter) {
		e.prefix = prefix
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithMetrics records each write.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Exporter) {
		e.metrics = c
	}
}

// NewExporter creates an Exporter. A nil sink fails every Export.
func NewExporter(sink Sink, opts ...Option) *Exporter {
	e := &Exporter{
		sink:   sink,
		logger: slog.Default(),
		tracer: otel.Tracer("reactree/snapshot"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export captures app's HTML and state through Dispatch and writes both.
// An empty name is replaced by the export id.
func (e *Exporter) Export(ctx context.Context, app *reactree.App, name string) (Result, error) {
	if e.sink == nil {
		return Result{}, errors.New("S001")
	}

	id := uuid.NewString()
	if name == "" {
		name = id
	}

	ctx, span := e.tracer.Start(ctx, "reactree.snapshot",
		trace.WithAttributes(
			attribute.String("reactree.snapshot.name", name),
			attribute.String("reactree.snapshot.sink", e.sink.Name()),
		),
	)
	defer span.End()

	doc := Document{Name: name, ID: id, TakenAt: e.now().UTC()}
	var html string
	_ = app.Dispatch(func(a *reactree.App) error {
		html = a.HTML()
		doc.Updates = a.Updates()
		doc.State = a.State().Snapshot()
		return nil
	})

	state, err := yaml.Marshal(doc)
	if err != nil {
		err = errors.New("S003").Wrap(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	res := Result{
		ID:        id,
		HTMLKey:   e.prefix + name + ".html",
		StateKey:  e.prefix + name + ".state.yaml",
		HTMLBytes: len(html),
	}

	err = e.sink.Put(ctx, res.HTMLKey, "text/html; charset=utf-8", []byte(html))
	if err == nil {
		err = e.sink.Put(ctx, res.StateKey, "application/yaml", state)
	}
	e.metrics.RecordSnapshot(e.sink.Name(), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("snapshot failed", "name", name, "sink", e.sink.Name(), "error", err)
		return Result{}, err
	}

	span.SetStatus(codes.Ok, "")
	e.logger.Info("snapshot written",
		"name", name,
		"sink", e.sink.Name(),
		"html", res.HTMLKey,
		"state", res.StateKey,
	)
	return res, nil
}
