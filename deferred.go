package reducerx

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// Deferrable is implemented by references whose machine may not be resolved
// yet. A TransitionProbe accepts them and evaluates to false while Deferred
// reports true.
type Deferrable interface {
	Deferred() bool
}

// DeferredRef stands in for a child service that is still initializing.
// Subscribers registered before Resolve are attached to the service when it
// arrives; until then there is no state to replay.
type DeferredRef[C any] struct {
	log *slog.Logger

	mu      sync.Mutex
	svc     *Service[C]
	pending []*deferredSubscription[C]
}

var (
	_ Deferrable                           = (*DeferredRef[int])(nil)
	_ ActorRef[MachineState[int], Event]   = (*DeferredRef[int])(nil)
	_ interface{ Machine() *Machine[int] } = (*DeferredRef[int])(nil)
)

type deferredSubscription[C any] struct {
	ref *DeferredRef[C]
	fn  func(MachineState[C])

	mu    sync.Mutex
	inner Subscription
	done  bool
}

// Defer creates an unresolved reference.
func Defer[C any](opts ...Option) *DeferredRef[C] {
	o := applyOptions("deferred", opts)
	return &DeferredRef[C]{log: o.logger}
}

// Deferred reports whether the reference is still waiting for its service.
func (d *DeferredRef[C]) Deferred() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.svc == nil
}

// Machine returns the resolved service's machine, or nil.
func (d *DeferredRef[C]) Machine() *Machine[C] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.svc == nil {
		return nil
	}
	return d.svc.Machine()
}

// Service returns the resolved service, or nil.
func (d *DeferredRef[C]) Service() *Service[C] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.svc
}

// Resolve binds the reference to svc and attaches pending subscribers, each
// of which immediately receives the service's current state.
func (d *DeferredRef[C]) Resolve(svc *Service[C]) error {
	if svc == nil {
		return errors.New("resolve deferred reference: nil service")
	}
	d.mu.Lock()
	if d.svc != nil {
		d.mu.Unlock()
		return ErrAlreadyResolved
	}
	d.svc = svc
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	d.log.Debug("deferred reference resolved", slog.String("service", svc.ID()), slog.Int("subscribers", len(pending)))
	for _, p := range pending {
		p.attach(svc)
	}
	return nil
}

// Subscribe observes the service's states once resolved.
func (d *DeferredRef[C]) Subscribe(fn func(MachineState[C])) Subscription {
	d.mu.Lock()
	if svc := d.svc; svc != nil {
		d.mu.Unlock()
		return svc.Subscribe(fn)
	}
	p := &deferredSubscription[C]{ref: d, fn: fn}
	d.pending = append(d.pending, p)
	d.mu.Unlock()
	return p
}

// Send forwards event to the resolved service. Before resolution the event
// is dropped.
func (d *DeferredRef[C]) Send(event Event) {
	svc := d.Service()
	if svc == nil {
		d.log.Debug("event dropped before resolution", slog.String("event", event.Type))
		return
	}
	svc.Send(event)
}

func (p *deferredSubscription[C]) attach(svc *Service[C]) {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done {
		return
	}

	// Subscribe replays synchronously; fn may unsubscribe during the replay.
	inner := svc.Subscribe(p.fn)

	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		inner.Unsubscribe()
		return
	}
	p.inner = inner
	p.mu.Unlock()
}

func (p *deferredSubscription[C]) Unsubscribe() {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done = true
	inner := p.inner
	p.mu.Unlock()

	if inner != nil {
		inner.Unsubscribe()
		return
	}
	d := p.ref
	d.mu.Lock()
	d.pending = slices.DeleteFunc(d.pending, func(x *deferredSubscription[C]) bool { return x == p })
	d.mu.Unlock()
}
