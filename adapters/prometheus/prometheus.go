// Package prometheus provides a Prometheus implementation of
// reducerx.ActorMetrics.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/reducerx"
)

// timer wraps a Prometheus histogram to implement reducerx.Timer.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) reducerx.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Reducers run synchronously under a lock, so the buckets start well below
// a millisecond.
var defaultBuckets = []float64{
	.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01, .1,
}

type actorMetrics struct {
	sendDuration *prometheus.HistogramVec
	eventsTotal  *prometheus.CounterVec
	observers    *prometheus.GaugeVec
}

// NewActorMetrics creates the actor metrics and registers them with reg.
func NewActorMetrics(reg prometheus.Registerer) reducerx.ActorMetrics {
	m := &actorMetrics{
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reducerx_actor_send_duration_seconds",
			Help:    "Time spent reducing one event and notifying observers",
			Buckets: defaultBuckets,
		}, []string{"event_type"}),

		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reducerx_actor_events_total",
			Help: "Total number of events sent to actors",
		}, []string{"event_type", "success"}),

		observers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "reducerx_actor_observers",
			Help: "Current number of observers subscribed to an actor",
		}, []string{"actor_id"}),
	}

	reg.MustRegister(m.sendDuration, m.eventsTotal, m.observers)
	return m
}

func (m *actorMetrics) SendDuration(eventType string) reducerx.Timer {
	return newTimer(m.sendDuration.WithLabelValues(eventType))
}

func (m *actorMetrics) EventProcessed(eventType string, ok bool) {
	m.eventsTotal.WithLabelValues(eventType, strconv.FormatBool(ok)).Inc()
}

func (m *actorMetrics) Observers(actorID string, n int) {
	m.observers.WithLabelValues(actorID).Set(float64(n))
}

var _ reducerx.ActorMetrics = (*actorMetrics)(nil)
