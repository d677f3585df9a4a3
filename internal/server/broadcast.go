package server

import "log"

// Subscriber receives every event broadcast for one room. Delivery is
// fire-and-forget: implementations must not block on slow consumers, and a
// panicking or failing subscriber never reaches the mutation path or its
// peers. Deliver runs with the room lock held, so implementations must not
// call back into the room (unsubscribing from inside Deliver would deadlock).
type Subscriber interface {
	Deliver(payload any)
}

// Subscribe registers sub and synchronously delivers the current state
// snapshot, so a new connection never waits with empty state. The returned
// function deregisters the subscriber and is safe to call more than once.
func (r *Room) Subscribe(sub Subscriber) func() {
	r.mu.Lock()
	r.subscribers[sub] = struct{}{}
	deliverSafe(sub, r.snapshotLocked())
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subscribers, sub)
		r.mu.Unlock()
	}
}

func (r *Room) SubscriberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}

// broadcastLocked fans payload out to every subscriber. Callers must hold
// r.mu; keeping delivery under the room lock is what guarantees subscribers
// see events in mutation order.
func (r *Room) broadcastLocked(payload any) {
	if r.onBroadcast != nil {
		r.onBroadcast()
	}
	for sub := range r.subscribers {
		deliverSafe(sub, payload)
	}
}

func (r *Room) broadcastStateLocked() {
	r.broadcastLocked(r.snapshotLocked())
}

func deliverSafe(sub Subscriber, payload any) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("subscriber delivery panic error=%v", err)
		}
	}()
	sub.Deliver(payload)
}
