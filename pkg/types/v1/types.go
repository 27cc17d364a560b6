package v1

import (
	"github.com/google/uuid"
)

// ID uniquely identifies a Stop for the lifetime of the itinerary.
// Assigned at creation, never reused.
type ID string

func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Status is the lifecycle state of a Stop. Status is the only field of a
// Stop that may change after creation.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusVisited Status = "visited"
	StatusSkipped Status = "skipped"
)

// Toggled returns the status a stop assumes when toggled without an
// explicit target: visited flips back to planned, anything else (planned
// or skipped) becomes visited.
func (s Status) Toggled() Status {
	if s == StatusVisited {
		return StatusPlanned
	}
	return StatusVisited
}

type SyncStatus string

const (
	StatusUninitialized SyncStatus = "uninitialized"
	StatusOK            SyncStatus = "ok"
	StatusSynchronizing SyncStatus = "synchronizing"
	StatusError         SyncStatus = "error"
)

// ByDateTime sorts stops chronologically. Use with sort.Stable so stops
// sharing an instant keep their collection order.
type ByDateTime []Stop

func (p ByDateTime) Len() int {
	return len(p)
}

func (p ByDateTime) Less(i, j int) bool {
	return p[i].DateTime.Time.Before(p[j].DateTime.Time)
}

func (p ByDateTime) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}
