package production

import (
	"sync"

	"github.com/comalice/reducerx"
)

// ChannelPublisher forwards machine states to a channel as Snapshots.
// Publishing never blocks; snapshots are dropped while the channel is full.
type ChannelPublisher[C any] struct {
	mu      sync.Mutex
	ch      chan<- Snapshot
	closed  bool
	dropped int
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher[C any](ch chan<- Snapshot) *ChannelPublisher[C] {
	return &ChannelPublisher[C]{ch: ch}
}

// Observe is the subscription callback.
func (p *ChannelPublisher[C]) Observe(st reducerx.MachineState[C]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.ch <- SnapshotOf(st):
	default:
		p.dropped++
	}
}

// Dropped returns how many snapshots were dropped on a full channel.
func (p *ChannelPublisher[C]) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Close closes the channel. Later states are ignored.
func (p *ChannelPublisher[C]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}
