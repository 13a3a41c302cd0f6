package reducerx

// Timer measures one operation; call ObserveDuration when it completes.
type Timer interface {
	ObserveDuration()
}

// ActorMetrics instruments actors. All methods must be safe for concurrent use.
type ActorMetrics interface {
	// SendDuration starts timing one Send.
	SendDuration(eventType string) Timer
	// EventProcessed counts a Send; ok is false when the reducer panicked.
	EventProcessed(eventType string, ok bool)
	// Observers reports the current number of subscribed observers.
	Observers(actorID string, n int)
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

type nopActorMetrics struct{}

func (nopActorMetrics) SendDuration(string) Timer   { return nopTimer{} }
func (nopActorMetrics) EventProcessed(string, bool) {}
func (nopActorMetrics) Observers(string, int)       {}

// NopActorMetrics returns an ActorMetrics that records nothing.
func NopActorMetrics() ActorMetrics { return nopActorMetrics{} }
