// Package forms defines the dashboard's entity forms: billboard, category,
// product, store settings and the store-creation modal.
//
// Each constructor returns a formflow.Form wired to the API client, with the
// labels, toast messages and post-request navigation of that entity. The web
// UI and the CLI drive the same forms with different presenters.
package forms
