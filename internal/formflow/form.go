package formflow

import (
	"context"
	"sync"
)

// DefaultFailure is the toast shown when a request fails and the Definition sets no message.
const DefaultFailure = "Something went wrong"

// Definition describes one entity form: its labels, validation, request functions and feedback.
type Definition[V any] struct {
	// Entity names the form in logs and errors, e.g. "billboard".
	Entity string

	// Create and Edit are the labels for each mode.
	Create Labels
	Edit   Labels

	// Defaults are the values of a form opened without initial data.
	Defaults V
	Schema   Schema[V]

	// Submit performs the create or update request.
	Submit func(ctx context.Context, mode Mode, values V) (Result, error)
	// AfterSubmit builds the navigation for a successful submit. Nil means no navigation.
	AfterSubmit   func(mode Mode, res Result) Navigation
	SubmitFailure string

	// Delete performs the destructive request. Nil disables delete entirely.
	Delete        func(ctx context.Context) error
	AfterDelete   Navigation
	DeleteSuccess string
	DeleteFailure string
}

// Form is a controlled form instance. It is safe for concurrent use; at most one
// request is in flight at a time.
type Form[V any] struct {
	def       Definition[V]
	presenter Presenter

	mu          sync.Mutex
	mode        Mode
	initial     V
	values      V
	errors      FieldErrors
	phase       Phase
	confirmOpen bool
	submitted   bool
}

// New creates a form. A nil initial value opens the form in create mode with the
// definition defaults; otherwise the form edits a copy of *initial.
func New[V any](def Definition[V], initial *V, presenter Presenter) *Form[V] {
	if presenter == nil {
		presenter = nopPresenter{}
	}

	f := &Form[V]{
		def:       def,
		presenter: presenter,
		mode:      ModeCreate,
		initial:   def.Defaults,
		phase:     PhaseIdle,
	}
	if initial != nil {
		f.mode = ModeEdit
		f.initial = *initial
	}
	f.values = f.initial
	return f
}

// Mode returns the form mode.
func (f *Form[V]) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Labels returns the labels for the current mode.
func (f *Form[V]) Labels() Labels {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == ModeEdit {
		return f.def.Edit
	}
	return f.def.Create
}

// Values returns a copy of the current values.
func (f *Form[V]) Values() V {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the field errors from the last validation.
func (f *Form[V]) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errors == nil {
		return nil
	}
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Phase returns the request state.
func (f *Form[V]) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Loading reports whether a request is in flight. Front-ends disable inputs while it is true.
func (f *Form[V]) Loading() bool {
	return f.Phase() != PhaseIdle
}

// ConfirmOpen reports whether the delete confirmation modal is open.
func (f *Form[V]) ConfirmOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmOpen
}

// CanDelete reports whether the form offers a delete action.
func (f *Form[V]) CanDelete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canDeleteLocked()
}

func (f *Form[V]) canDeleteLocked() bool {
	return f.def.Delete != nil && f.mode == ModeEdit
}

// Set applies a change to the values. Once a submit has been attempted the
// values are re-validated on every change so stale messages disappear.
func (f *Form[V]) Set(change func(*V)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseIdle {
		return ErrBusy
	}
	change(&f.values)
	if f.submitted {
		f.errors = f.def.Schema.Validate(f.values)
	}
	return nil
}

// Reset restores the initial values and clears validation state.
func (f *Form[V]) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseIdle {
		return ErrBusy
	}
	f.values = f.initial
	f.errors = nil
	f.submitted = false
	return nil
}

// Submit validates the values and performs the create or update request.
// A validation failure returns *ValidationError without contacting the server
// or showing a toast. A request failure shows the failure toast and returns the
// request error. On success the form navigates and then shows the success toast.
func (f *Form[V]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != PhaseIdle {
		f.mu.Unlock()
		return ErrBusy
	}
	f.submitted = true
	if errs := f.def.Schema.Validate(f.values); errs != nil {
		f.errors = errs
		f.mu.Unlock()
		return &ValidationError{Fields: errs}
	}
	f.errors = nil
	f.phase = PhaseSubmitting
	mode := f.mode
	values := f.values
	labels := f.def.Create
	if mode == ModeEdit {
		labels = f.def.Edit
	}
	f.mu.Unlock()

	defer f.finish(nil)

	res, err := f.def.Submit(ctx, mode, values)
	if err != nil {
		f.presenter.Toast(Toast{Level: ToastError, Message: orDefault(f.def.SubmitFailure)})
		return err
	}

	f.mu.Lock()
	f.initial = values
	f.mu.Unlock()

	if f.def.AfterSubmit != nil {
		if nav := f.def.AfterSubmit(mode, res); !nav.IsZero() {
			f.presenter.Navigate(nav)
		}
	}
	f.presenter.Toast(Toast{Level: ToastSuccess, Message: labels.SubmitToast})
	return nil
}

// OpenConfirm opens the delete confirmation modal.
func (f *Form[V]) OpenConfirm() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.canDeleteLocked() {
		return ErrDeleteUnavailable
	}
	if f.phase != PhaseIdle {
		return ErrBusy
	}
	f.confirmOpen = true
	return nil
}

// CloseConfirm dismisses the confirmation modal. It cannot be dismissed while deleting.
func (f *Form[V]) CloseConfirm() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseIdle {
		return ErrBusy
	}
	f.confirmOpen = false
	return nil
}

// ConfirmDelete performs the delete request. The confirmation modal must be open
// and is always closed once the request completes.
func (f *Form[V]) ConfirmDelete(ctx context.Context) error {
	f.mu.Lock()
	if !f.canDeleteLocked() {
		f.mu.Unlock()
		return ErrDeleteUnavailable
	}
	if f.phase != PhaseIdle {
		f.mu.Unlock()
		return ErrBusy
	}
	if !f.confirmOpen {
		f.mu.Unlock()
		return ErrConfirmClosed
	}
	f.phase = PhaseDeleting
	f.mu.Unlock()

	defer f.finish(func() { f.confirmOpen = false })

	if err := f.def.Delete(ctx); err != nil {
		f.presenter.Toast(Toast{Level: ToastError, Message: orDefault(f.def.DeleteFailure)})
		return err
	}

	if !f.def.AfterDelete.IsZero() {
		f.presenter.Navigate(f.def.AfterDelete)
	}
	f.presenter.Toast(Toast{Level: ToastSuccess, Message: f.def.DeleteSuccess})
	return nil
}

// finish returns the form to idle, running extra under the lock.
func (f *Form[V]) finish(extra func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = PhaseIdle
	if extra != nil {
		extra()
	}
}

func orDefault(msg string) string {
	if msg == "" {
		return DefaultFailure
	}
	return msg
}
