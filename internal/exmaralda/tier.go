package exmaralda

// Default tier classification used when none is declared.
const (
	DefaultCategory = "v"
	DefaultType     = "t"
)

// Event is one content span on a tier, anchored between two time
// points. The endpoints are held by id only; the time points
// themselves live in the transcript's timeline.
type Event struct {
	Start   TimeID
	End     TimeID
	Content string
}

// Tier is an ordered channel of events, e.g. one speaker's spoken
// turns or a gesture track.
type Tier struct {
	ID          string
	Speaker     string // speaker id, empty when unattached
	Category    string
	Type        string
	DisplayName string
	Events      []Event
}

// IsEmpty reports whether the tier holds no events.
func (t *Tier) IsEmpty() bool {
	return len(t.Events) == 0
}

// Equal reports structural equality including event order.
func (t *Tier) Equal(other *Tier) bool {
	if t.ID != other.ID ||
		t.Speaker != other.Speaker ||
		t.Category != other.Category ||
		t.Type != other.Type ||
		t.DisplayName != other.DisplayName ||
		len(t.Events) != len(other.Events) {
		return false
	}
	for i, e := range t.Events {
		if e != other.Events[i] {
			return false
		}
	}
	return true
}
