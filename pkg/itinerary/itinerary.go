// Package itinerary holds the in-memory stop collection and its derived
// views. Mutators return a new value rather than mutating in place, so
// callers own exactly one current snapshot at a time.
package itinerary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	v1 "github.com/byxorna/stopover/pkg/types/v1"
)

// MaxStops is the hard cap on the collection. The cap is enforced after
// the fact: an add that lands past the cap still succeeds, and the whole
// collection (triggering stop included) is wiped by the caller once
// OverCapacity reports true. Rejecting the add instead would change
// observable behavior.
const MaxStops = 10

var (
	ErrMissingTitle    = fmt.Errorf("stop requires a title")
	ErrMissingAddress  = fmt.Errorf("stop requires an address")
	ErrMissingDateTime = fmt.Errorf("stop requires a date and time")
)

// AddParams carries the raw form input for a new stop. Date and Clock are
// kept as entered; Cost is parsed leniently.
type AddParams struct {
	Title   string
	Address string
	Date    string
	Clock   string
	Notes   string
	Cost    string
}

// Itinerary is an immutable snapshot of the stop collection, in insertion
// order. The zero value is an empty itinerary.
type Itinerary struct {
	stops []v1.Stop
}

// New builds a snapshot from a persisted slice. The slice is copied; the
// caller keeps ownership of its own backing array.
func New(stops []v1.Stop) Itinerary {
	cp := make([]v1.Stop, len(stops))
	copy(cp, stops)
	return Itinerary{stops: cp}
}

// Add appends a new planned stop. Title, address, date and clock are
// required; duplicates are permitted. A malformed or negative cost is
// coerced to zero, never rejected.
func (it Itinerary) Add(p AddParams) (Itinerary, v1.Stop, error) {
	if strings.TrimSpace(p.Title) == "" {
		return it, v1.Stop{}, ErrMissingTitle
	}
	if strings.TrimSpace(p.Address) == "" {
		return it, v1.Stop{}, ErrMissingAddress
	}
	if strings.TrimSpace(p.Date) == "" || strings.TrimSpace(p.Clock) == "" {
		return it, v1.Stop{}, ErrMissingDateTime
	}

	dt, err := v1.NewDateTime(strings.TrimSpace(p.Date), strings.TrimSpace(p.Clock))
	if err != nil {
		return it, v1.Stop{}, err
	}

	stop := v1.Stop{
		ID:       v1.NewID(),
		Title:    strings.TrimSpace(p.Title),
		Address:  strings.TrimSpace(p.Address),
		DateTime: dt,
		Notes:    strings.TrimSpace(p.Notes),
		Cost:     ParseCost(p.Cost),
		Status:   v1.StatusPlanned,
		Order:    len(it.stops),
	}

	next := make([]v1.Stop, len(it.stops), len(it.stops)+1)
	copy(next, it.stops)
	next = append(next, stop)
	return Itinerary{stops: next}, stop, nil
}

// ParseCost coerces free-text cost input to a non-negative estimate.
// Anything unparseable (or negative) is zero.
func ParseCost(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	c, err := strconv.ParseFloat(raw, 64)
	if err != nil || c < 0 {
		return 0
	}
	return c
}

// ToggleStatus cycles the status of the stop with the given id: visited
// becomes planned, planned or skipped become visited. Unknown ids are a
// no-op.
func (it Itinerary) ToggleStatus(id v1.ID) Itinerary {
	return it.update(id, func(s v1.Stop) v1.Stop {
		s.Status = s.Status.Toggled()
		return s
	})
}

// SetStatus forces the status of the stop with the given id. Unknown ids
// are a no-op.
func (it Itinerary) SetStatus(id v1.ID, status v1.Status) Itinerary {
	return it.update(id, func(s v1.Stop) v1.Stop {
		s.Status = status
		return s
	})
}

func (it Itinerary) update(id v1.ID, f func(v1.Stop) v1.Stop) Itinerary {
	next := make([]v1.Stop, len(it.stops))
	copy(next, it.stops)
	for i := range next {
		if next[i].ID == id {
			next[i] = f(next[i])
			break
		}
	}
	return Itinerary{stops: next}
}

// Delete removes the stop with the given id if present. Remaining Order
// values are not renumbered.
func (it Itinerary) Delete(id v1.ID) Itinerary {
	next := make([]v1.Stop, 0, len(it.stops))
	for _, s := range it.stops {
		if s.ID == id {
			continue
		}
		next = append(next, s)
	}
	return Itinerary{stops: next}
}

func (it Itinerary) Len() int {
	return len(it.stops)
}

// OverCapacity reports whether the collection has outgrown MaxStops and
// must be reset.
func (it Itinerary) OverCapacity() bool {
	return len(it.stops) > MaxStops
}

// Stops returns the collection in insertion order.
func (it Itinerary) Stops() []v1.Stop {
	cp := make([]v1.Stop, len(it.stops))
	copy(cp, it.stops)
	return cp
}

// Sorted returns all stops ordered by scheduled time ascending. The sort
// is stable; ties keep collection order. Recomputed on every call, Order
// plays no part in it.
func (it Itinerary) Sorted() []v1.Stop {
	sorted := it.Stops()
	sort.Stable(v1.ByDateTime(sorted))
	return sorted
}

// Next returns the first chronological stop still planned, skipping over
// earlier visited and skipped entries.
func (it Itinerary) Next() (v1.Stop, bool) {
	for _, s := range it.Sorted() {
		if s.Status == v1.StatusPlanned {
			return s, true
		}
	}
	return v1.Stop{}, false
}

// Skipped returns the skipped stops in chronological order.
func (it Itinerary) Skipped() []v1.Stop {
	return it.filter(v1.StatusSkipped)
}

// Completed returns the visited stops in chronological order.
func (it Itinerary) Completed() []v1.Stop {
	return it.filter(v1.StatusVisited)
}

func (it Itinerary) filter(status v1.Status) []v1.Stop {
	out := []v1.Stop{}
	for _, s := range it.Sorted() {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

// TotalCost sums cost estimates over every stop regardless of status.
func (it Itinerary) TotalCost() float64 {
	var total float64
	for _, s := range it.stops {
		total += s.Cost
	}
	return total
}
