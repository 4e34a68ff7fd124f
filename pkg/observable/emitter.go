package observable

// Signal is the event payload for streams that only report "something changed".
type Signal struct{}

// Source is the subscribe half of an Emitter.
type Source[E any] interface {
	Subscribe(handler func(E)) (unsubscribe func())
}

type subscription[E any] struct {
	handler func(E)
	active  bool
}

// Emitter delivers events synchronously to its subscribers in subscription order.
// The zero value is ready to use. It is not safe for concurrent use.
type Emitter[E any] struct {
	subs []*subscription[E]
}

// Subscribe registers handler and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (e *Emitter[E]) Subscribe(handler func(E)) func() {
	sub := &subscription[E]{handler: handler, active: true}
	e.subs = append(e.subs, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		for i, s := range e.subs {
			if s == sub {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers ev to a snapshot of the current subscribers. Handlers removed
// during delivery are skipped; handlers added during delivery are not called.
func (e *Emitter[E]) Emit(ev E) {
	if len(e.subs) == 0 {
		return
	}
	snapshot := make([]*subscription[E], len(e.subs))
	copy(snapshot, e.subs)

	for _, sub := range snapshot {
		if sub.active {
			sub.handler(ev)
		}
	}
}

// Len returns the number of active subscribers.
func (e *Emitter[E]) Len() int {
	return len(e.subs)
}

// Relay subscribes to src and re-emits every event on dst as a Signal.
// It returns the unsubscribe function of the underlying subscription.
func Relay[E any](src Source[E], dst *Emitter[Signal]) func() {
	return src.Subscribe(func(E) {
		dst.Emit(Signal{})
	})
}
