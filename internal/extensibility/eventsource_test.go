package extensibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comalice/reducerx"
)

type sinkFunc func(reducerx.Event)

func (f sinkFunc) Send(e reducerx.Event) { f(e) }

func TestChannelEventSource(t *testing.T) {
	ch := make(chan reducerx.Event, 1)
	s := NewChannelEventSource(ch)
	if s.Events() != ch {
		t.Error("Events() should return ch")
	}
}

func TestTimerEventSource(t *testing.T) {
	s := NewTimerEventSource(reducerx.NewEvent("tick", "data"), 10*time.Millisecond)
	defer s.Stop()

	for i := 0; i < 2; i++ {
		select {
		case ev := <-s.Events():
			if ev.Type != "tick" || ev.Payload != "data" {
				t.Errorf("wrong event: %v %v", ev.Type, ev.Payload)
			}
		case <-time.After(time.Second):
			t.Fatalf("no event %d received", i)
		}
	}
}

func TestTimerEventSourceStopClosesChannel(t *testing.T) {
	s := NewTimerEventSource(reducerx.NewEvent("tick", nil), time.Millisecond)
	s.Stop()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-s.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after Stop")
		}
	}
}

func TestPump(t *testing.T) {
	actor := reducerx.NewActor(func(n int, _ reducerx.Event) int { return n + 1 }, 0)

	ch := make(chan reducerx.Event, 3)
	for i := 0; i < 3; i++ {
		ch <- reducerx.NewEvent("TICK", nil)
	}
	close(ch)

	n, err := Pump(context.Background(), NewChannelEventSource(ch), actor, 0)
	if err != nil || n != 3 {
		t.Fatalf("Pump = %d, %v", n, err)
	}
	if actor.State() != 3 {
		t.Errorf("state = %d, want 3", actor.State())
	}
}

func TestPumpLimit(t *testing.T) {
	s := NewTimerEventSource(reducerx.NewEvent("tick", nil), time.Millisecond)
	defer s.Stop()

	var got []string
	n, err := Pump(context.Background(), s, sinkFunc(func(e reducerx.Event) { got = append(got, e.Type) }), 2)
	if err != nil || n != 2 || len(got) != 2 {
		t.Fatalf("Pump = %d, %v (got %v)", n, err, got)
	}
}

func TestPumpContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := Pump(ctx, NewChannelEventSource(make(chan reducerx.Event)), sinkFunc(func(reducerx.Event) {}), 0)
	if n != 0 || !errors.Is(err, context.Canceled) {
		t.Errorf("Pump = %d, %v", n, err)
	}
}
