package reducerx

import (
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type options struct {
	id      string
	logger  *slog.Logger
	metrics ActorMetrics
	useCan  bool
}

// Option configures actors, services, deferred references and probes.
type Option func(*options)

// WithID overrides the generated id used in logs and metric labels.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithLogger configures the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics configures actor instrumentation. Defaults to a no-op implementation.
func WithMetrics(m ActorMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCanPredicate makes a TransitionProbe ask the state's Can method instead
// of calling the machine's Transition directly. Ignored elsewhere.
func WithCanPredicate() Option {
	return func(o *options) {
		o.useCan = true
	}
}

func applyOptions(kind string, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = newID(kind)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.metrics == nil {
		o.metrics = NopActorMetrics()
	}
	o.logger = o.logger.With(slog.String("component", kind), slog.String("id", o.id))
	return o
}

func newID(kind string) string {
	id, err := gonanoid.New(12)
	if err != nil {
		// Only fails when crypto/rand is unavailable.
		panic(err)
	}
	return kind + "-" + id
}
