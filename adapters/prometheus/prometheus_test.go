package prometheus_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/reducerx"
	promadapter "github.com/comalice/reducerx/adapters/prometheus"
)

func calc(n int, e reducerx.Event) int {
	switch e.Type {
	case "ADD":
		return n + e.Payload.(int)
	case "BOOM":
		panic("boom")
	}
	return n
}

func TestActorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := promadapter.NewActorMetrics(reg)

	a := reducerx.NewActor(calc, 0, reducerx.WithID("calc"), reducerx.WithMetrics(m))
	sub := a.Subscribe(func(int) {})
	a.Send(reducerx.NewEvent("ADD", 2))
	a.Send(reducerx.NewEvent("ADD", 3))
	require.Panics(t, func() { a.Send(reducerx.NewEvent("BOOM", nil)) })

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"reducerx_actor_send_duration_seconds",
		"reducerx_actor_events_total",
		"reducerx_actor_observers",
	}, names)

	expected := `
# HELP reducerx_actor_events_total Total number of events sent to actors
# TYPE reducerx_actor_events_total counter
reducerx_actor_events_total{event_type="ADD",success="true"} 2
reducerx_actor_events_total{event_type="BOOM",success="false"} 1
# HELP reducerx_actor_observers Current number of observers subscribed to an actor
# TYPE reducerx_actor_observers gauge
reducerx_actor_observers{actor_id="calc"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"reducerx_actor_events_total", "reducerx_actor_observers"))
	count, err := testutil.GatherAndCount(reg, "reducerx_actor_send_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one histogram per event type")

	sub.Unsubscribe()
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP reducerx_actor_observers Current number of observers subscribed to an actor
# TYPE reducerx_actor_observers gauge
reducerx_actor_observers{actor_id="calc"} 0
`), "reducerx_actor_observers"))
}
