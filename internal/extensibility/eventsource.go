package extensibility

import (
	"context"
	"time"

	"github.com/comalice/reducerx"
)

// EventSource produces events for an actor or service.
type EventSource interface {
	Events() <-chan reducerx.Event
}

// Sink receives events. *reducerx.Actor[S, reducerx.Event] and
// *reducerx.Service[C] both satisfy it.
type Sink interface {
	Send(event reducerx.Event)
}

// ChannelEventSource is an EventSource implementation backed by a Go channel.
type ChannelEventSource struct {
	ch chan reducerx.Event
}

// NewChannelEventSource creates a new ChannelEventSource with the given channel.
func NewChannelEventSource(ch chan reducerx.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan reducerx.Event {
	return s.ch
}

// TimerEventSource emits the same event every interval until Stop.
type TimerEventSource struct {
	ch     chan reducerx.Event
	event  reducerx.Event
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTimerEventSource creates a TimerEventSource that emits event every d.
// Ticks are dropped while the buffer is full.
func NewTimerEventSource(event reducerx.Event, d time.Duration) *TimerEventSource {
	t := &TimerEventSource{
		ch:     make(chan reducerx.Event, 10),
		event:  event,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerEventSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.event:
			default:
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Events returns the event channel. It is closed after Stop.
func (t *TimerEventSource) Events() <-chan reducerx.Event {
	return t.ch
}

// Stop stops the ticker and closes the channel.
func (t *TimerEventSource) Stop() {
	close(t.stop)
}

// Pump sends events from src to sink until src closes, limit events have been
// sent (limit <= 0 means no limit) or ctx is done. It returns the number of
// events sent and ctx.Err() if the context ended the pump.
func Pump(ctx context.Context, src EventSource, sink Sink, limit int) (int, error) {
	n := 0
	for limit <= 0 || n < limit {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case e, ok := <-src.Events():
			if !ok {
				return n, nil
			}
			sink.Send(e)
			n++
		}
	}
	return n, nil
}
