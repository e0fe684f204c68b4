// Package sentinel holds infrastructure error facts shared across layers.
//
// Stores wrap these so the evidence loader and HTTP layer can classify a
// failure without knowing which backend produced it. Input validation uses
// pkg/domain-errors instead.
package sentinel

import "errors"

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable means the backing store could not be reached.
	ErrUnavailable = errors.New("unavailable")
)
