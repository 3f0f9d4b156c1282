// Package core defines the shared language of the shopdash system.
//
// This package contains:
//   - Domain entities (Store, Billboard, Category, Product)
//   - The Repository contract implemented by internal/state
//   - Sentinel errors shared by the API, the client and the forms
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
