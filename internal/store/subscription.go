package store

import "sync"

// Subscription receives a snapshot after every committed transition.
type Subscription struct {
	store    *Store
	updates  chan State
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscription(s *Store, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 8
	}
	return &Subscription{
		store:   s,
		updates: make(chan State, buffer),
		done:    make(chan struct{}),
	}
}

// Updates returns the channel snapshots arrive on.
func (sub *Subscription) Updates() <-chan State {
	return sub.updates
}

// Done is closed once the subscription ends.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

// send delivers st without blocking. When the buffer is full the oldest
// snapshot is dropped.
func (sub *Subscription) send(st State) {
	select {
	case <-sub.done:
		return
	default:
	}

	select {
	case sub.updates <- st:
	default:
		select {
		case <-sub.updates:
		default:
		}
		select {
		case sub.updates <- st:
		default:
		}
	}
}

// Close unsubscribes. Safe to call multiple times.
func (sub *Subscription) Close() {
	sub.doneOnce.Do(func() {
		close(sub.done)
		if sub.store != nil {
			sub.store.unsubscribe(sub)
		}
	})
}
