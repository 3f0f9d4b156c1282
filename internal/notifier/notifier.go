// Package notifier provides a store-scoped broadcast mechanism for SSE updates.
package notifier

import "sync"

// AllStores subscribes to changes of every store.
const AllStores = ""

// Notifier broadcasts change signals to subscribed listeners.
// Listeners receive an empty struct when data of their store changed and
// should re-query the repository.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]string
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]string),
	}
}

// Subscribe returns a channel that receives pings when storeID changes.
// Pass AllStores to receive every ping.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe(storeID string) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = storeID
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast pings the listeners of storeID and the AllStores listeners.
// Non-blocking: if a listener's channel is full, the ping is skipped.
func (n *Notifier) Broadcast(storeID string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch, scope := range n.listeners {
		if scope != AllStores && scope != storeID {
			continue
		}
		select {
		case ch <- struct{}{}:
		default:
			// Channel full, the listener will re-query on the pending ping
		}
	}
}

// Len returns the number of active listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
