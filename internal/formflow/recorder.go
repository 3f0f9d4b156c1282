package formflow

import "sync"

// Event is one piece of feedback captured by a Recorder. Exactly one field is set.
type Event struct {
	Toast      *Toast
	Navigation *Navigation
}

// Recorder is a Presenter that keeps feedback in emission order. Front-ends that
// render after the request completes (SSE handlers, CLI commands) record first
// and replay afterwards.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Toast implements Presenter.
func (r *Recorder) Toast(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Toast: &t})
}

// Navigate implements Presenter.
func (r *Recorder) Navigate(n Navigation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Navigation: &n})
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Toasts returns the recorded toasts in order.
func (r *Recorder) Toasts() []Toast {
	var out []Toast
	for _, e := range r.Events() {
		if e.Toast != nil {
			out = append(out, *e.Toast)
		}
	}
	return out
}

// LastNavigation returns the most recent navigation and whether there was one.
func (r *Recorder) LastNavigation() (Navigation, bool) {
	events := r.Events()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Navigation != nil {
			return *events[i].Navigation, true
		}
	}
	return Navigation{}, false
}

// Replay forwards every recorded event to p in order.
func (r *Recorder) Replay(p Presenter) {
	for _, e := range r.Events() {
		switch {
		case e.Toast != nil:
			p.Toast(*e.Toast)
		case e.Navigation != nil:
			p.Navigate(*e.Navigation)
		}
	}
}
