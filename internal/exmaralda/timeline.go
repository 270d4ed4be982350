package exmaralda

import (
	"fmt"
	"strconv"
	"strings"
)

// NoTimestamp marks a time point without a known timestamp.
const NoTimestamp = float64(-1)

// TimeID identifies a time point within one transcript's timeline.
type TimeID int

// String renders the id in the exb attribute form, e.g. "T3".
func (id TimeID) String() string {
	return fmt.Sprintf("T%d", int(id))
}

// parseTimeID reads an exb time point reference like "T3".
func parseTimeID(s string) (TimeID, error) {
	rest, ok := strings.CutPrefix(s, "T")
	if !ok {
		return 0, fmt.Errorf("invalid time point id %q: missing T prefix", s)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid time point id %q: %w", s, err)
	}
	return TimeID(n), nil
}

// TimePoint is a labeled position on the shared timeline.
type TimePoint struct {
	ID        TimeID
	Timestamp float64 // NoTimestamp when unset
	Type      string  // boundary type, empty means none
}

// HasTimestamp reports whether the time point carries a timestamp.
func (p TimePoint) HasTimestamp() bool {
	return p.Timestamp != NoTimestamp
}

// Equal reports identity: both id and timestamp must match.
// Boundary type does not take part in time point identity.
func (p TimePoint) Equal(other TimePoint) bool {
	return p.ID == other.ID && p.Timestamp == other.Timestamp
}

// Before orders time points by timestamp, independent of identity.
func (p TimePoint) Before(other TimePoint) bool {
	return p.Timestamp < other.Timestamp
}

// After orders time points by timestamp, independent of identity.
func (p TimePoint) After(other TimePoint) bool {
	return p.Timestamp > other.Timestamp
}

// timeAllocator mints time point ids for one transcript. Ids start at
// zero and only ever grow; nothing is reclaimed while the owning
// transcript is alive.
type timeAllocator struct {
	next TimeID
}

func (a *timeAllocator) allocate() TimeID {
	id := a.next
	a.next++
	return id
}

// reserve moves the counter past an externally declared id so that
// later allocations cannot collide with it.
func (a *timeAllocator) reserve(id TimeID) {
	if id >= a.next {
		a.next = id + 1
	}
}
