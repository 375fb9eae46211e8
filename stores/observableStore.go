package stores

import (
	"sync"
)

// Listener receives the current cache snapshot on every notify.
type Listener[T any] func(items []T)

// Observable is the subscriber registry shared by the entity stores. Notify
// is synchronous and invokes listeners in subscription order; the listener
// list is snapshotted before iterating, so a listener unsubscribing another
// (or itself) during the callback never causes a skip.
type Observable[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscription[T]
}

type subscription[T any] struct {
	id       int
	listener Listener[T]
}

// Subscribe registers listener and returns its unsubscribe function.
// Calling the returned function more than once has no additional effect.
func (o *Observable[T]) Subscribe(listener Listener[T]) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.listeners = append(o.listeners, subscription[T]{id: id, listener: listener})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, sub := range o.listeners {
			if sub.id == id {
				o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every currently registered listener with items.
func (o *Observable[T]) Notify(items []T) {
	o.mu.Lock()
	snapshot := make([]subscription[T], len(o.listeners))
	copy(snapshot, o.listeners)
	o.mu.Unlock()

	for _, sub := range snapshot {
		sub.listener(items)
	}
}
