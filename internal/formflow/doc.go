// Package formflow implements the form-submission lifecycle shared by every
// dashboard form: a controlled set of values, schema validation, a single
// in-flight request guarded by a loading flag, a confirmation step for
// destructive actions, and toast/navigation feedback on completion.
//
// A Form knows nothing about HTTP or rendering. The request itself is a
// function supplied by the Definition, and feedback is delivered to a Presenter
// implemented by the front-end (the web dashboard, the CLI or the terminal
// prompt).
package formflow
