package reducerx

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// Subscription is returned by Subscribe. Unsubscribe may be called any number
// of times; only the first call has an effect.
type Subscription interface {
	Unsubscribe()
}

// Subscribable is a stream of values with replay-latest semantics: a new
// subscriber is called once with the current value before Subscribe returns.
type Subscribable[T any] interface {
	Subscribe(fn func(T)) Subscription
}

// ActorRef is the contract consumed by bindings: send events, observe state.
type ActorRef[S, E any] interface {
	Subscribable[S]
	Send(event E)
}

// observer is one subscription record. The same callback subscribed twice
// gets two records.
type observer[S any] struct {
	next   func(S)
	active atomic.Bool
	once   sync.Once
	remove func(*observer[S])
	// seen is one past the sequence of the newest state delivered.
	seen atomic.Uint64
}

// deliver calls next with the state committed at seq unless a newer state
// has already reached this observer.
func (o *observer[S]) deliver(seq uint64, state S) {
	for {
		seen := o.seen.Load()
		if seen > seq {
			return
		}
		if o.seen.CompareAndSwap(seen, seq+1) {
			o.next(state)
			return
		}
	}
}

func (o *observer[S]) Unsubscribe() {
	o.once.Do(func() {
		o.active.Store(false)
		o.remove(o)
	})
}

// Actor is a live, observable cell driven by a reducer.
//
// Send runs the reducer while the actor is locked, so a reducer must never
// Send to its own actor. Observers are called outside the lock and may Send,
// Subscribe and Unsubscribe freely. When an observer sends, observers later
// in the list receive the newer state and skip the older one, so every
// observer's last value is the actor's state.
type Actor[S, E any] struct {
	id      string
	reducer Reducer[S, E]
	log     *slog.Logger
	metrics ActorMetrics

	mu        sync.Mutex
	state     S
	seq       uint64
	observers []*observer[S]
}

var _ ActorRef[int, Event] = (*Actor[int, Event])(nil)

// NewActor creates an actor holding initial. The reducer is not called until
// the first Send.
func NewActor[S, E any](reducer Reducer[S, E], initial S, opts ...Option) *Actor[S, E] {
	o := applyOptions("actor", opts)
	return &Actor[S, E]{
		id:      o.id,
		reducer: reducer,
		log:     o.logger,
		metrics: o.metrics,
		state:   initial,
	}
}

// ID returns the actor id.
func (a *Actor[S, E]) ID() string { return a.id }

// State returns the current state.
func (a *Actor[S, E]) State() S {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Send reduces event into the state and notifies every observer subscribed
// when the reduction committed. A panicking reducer propagates to the caller
// and leaves the state unchanged.
func (a *Actor[S, E]) Send(event E) {
	eventType := eventTypeOf(event)
	timer := a.metrics.SendDuration(eventType)
	ok := false
	defer func() {
		timer.ObserveDuration()
		a.metrics.EventProcessed(eventType, ok)
	}()

	next, seq, observers := a.reduce(event)
	ok = true

	for _, o := range observers {
		// Skip observers removed by an earlier callback of this Send.
		if o.active.Load() {
			o.deliver(seq, next)
		}
	}
}

func (a *Actor[S, E]) reduce(event E) (S, uint64, []*observer[S]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = a.reducer(a.state, event)
	a.seq++
	return a.state, a.seq, slices.Clone(a.observers)
}

// Subscribe registers fn and calls it immediately with the current state.
func (a *Actor[S, E]) Subscribe(fn func(S)) Subscription {
	o := &observer[S]{next: fn, remove: a.removeObserver}
	o.active.Store(true)

	a.mu.Lock()
	a.observers = append(a.observers, o)
	current, seq := a.state, a.seq
	n := len(a.observers)
	a.mu.Unlock()

	a.metrics.Observers(a.id, n)
	a.log.Debug("observer subscribed", slog.Int("observers", n))

	o.deliver(seq, current)
	return o
}

func (a *Actor[S, E]) removeObserver(o *observer[S]) {
	a.mu.Lock()
	a.observers = slices.DeleteFunc(a.observers, func(x *observer[S]) bool { return x == o })
	n := len(a.observers)
	a.mu.Unlock()

	a.metrics.Observers(a.id, n)
	a.log.Debug("observer unsubscribed", slog.Int("observers", n))
}

// Release unsubscribes every observer. The actor stays usable.
func (a *Actor[S, E]) Release() {
	a.mu.Lock()
	observers := a.observers
	a.observers = nil
	a.mu.Unlock()

	for _, o := range observers {
		o.once.Do(func() { o.active.Store(false) })
	}
	a.metrics.Observers(a.id, 0)
	a.log.Debug("observers released", slog.Int("released", len(observers)))
}
