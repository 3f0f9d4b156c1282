package formflow

import "errors"

// Mode selects between creating a new entity and editing an existing one.
type Mode int

const (
	// ModeCreate is used when the form has no initial data.
	ModeCreate Mode = iota
	// ModeEdit is used when the form was opened on an existing entity.
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Phase is the request state of a form.
type Phase string

// Phase constants.
const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseDeleting   Phase = "deleting"
)

// ToastLevel is the severity of a toast notification.
type ToastLevel string

// Toast levels.
const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a transient notification shown to the user once a request completes.
type Toast struct {
	Level   ToastLevel
	Message string
}

// Navigation describes where the front-end should go after a successful request.
// Refresh re-fetches server data for the current view. Push is an in-app route
// change. Assign is a full document navigation and wins over Push.
type Navigation struct {
	Refresh bool
	Push    string
	Assign  string
}

// IsZero reports whether the navigation is a no-op.
func (n Navigation) IsZero() bool {
	return !n.Refresh && n.Push == "" && n.Assign == ""
}

// Target returns the destination path, if any.
func (n Navigation) Target() string {
	if n.Assign != "" {
		return n.Assign
	}
	return n.Push
}

// Labels are the user-facing strings that depend on the form mode.
type Labels struct {
	Title       string
	Description string
	Action      string
	SubmitToast string
}

// Result is what a successful submit returns, e.g. the ID of a created entity.
type Result struct {
	ID string
}

// Presenter receives the feedback produced by a form.
type Presenter interface {
	Toast(Toast)
	Navigate(Navigation)
}

type nopPresenter struct{}

func (nopPresenter) Toast(Toast)         {}
func (nopPresenter) Navigate(Navigation) {}

// Errors returned by Form operations.
var (
	// ErrBusy is returned when an operation is attempted while a request is in flight.
	ErrBusy = errors.New("form is busy")

	// ErrConfirmClosed is returned by ConfirmDelete when the confirmation modal is not open.
	ErrConfirmClosed = errors.New("delete was not confirmed")

	// ErrDeleteUnavailable is returned when the form has no delete action in its current mode.
	ErrDeleteUnavailable = errors.New("delete is not available for this form")
)
