// Package db defines the storage contract for the itinerary. The core
// loads once at startup and writes back after every mutation; storage
// never pushes state into the core except via Events.
package db

import (
	"fmt"

	v1 "github.com/byxorna/stopover/pkg/types/v1"
)

var (
	ErrStoreClosed = fmt.Errorf("store is closed")
)

// Store persists the whole stop collection as one record.
type Store interface {
	// Load returns the persisted stops, or an empty slice when nothing
	// (or nothing readable) is stored. Malformed data is not an error.
	Load() ([]v1.Stop, error)
	// Save replaces the persisted record with the given stops.
	Save(stops []v1.Stop) error
	// Clear erases the persisted record entirely.
	Clear() error

	// Events signals that the record changed underneath us (e.g. the
	// file was edited externally) and should be reloaded.
	Events() <-chan struct{}

	Path() string
	Status() v1.SyncStatus
	Close() error
}
