package exmaralda

import (
	"errors"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	ErrSpeakerNotFound = errors.New("speaker not found")
	ErrTierNotFound    = errors.New("tier not found")
)

// Metadata holds the document level information of a transcript.
type Metadata struct {
	ProjectName             string
	TranscriptionName       string
	ReferencedFileURLs      []string
	UDMetaInformation       string
	Comment                 string
	TranscriptionConvention string
}

// Transcript is a full conversation transcript in EXMARaLDA
// basic-transcription form: a speaker table, a shared timeline of
// time points, and a set of tiers holding time anchored events.
//
// The transcript owns its speakers, time points and tiers. Events
// reference time points by id; the timeline map is the single
// authoritative store for them. Tier and timeline iteration preserve
// insertion order, which is what the serializer emits.
type Transcript struct {
	Meta Metadata

	speakers map[string]Speaker
	timeline *orderedmap.OrderedMap[TimeID, TimePoint]
	tiers    *orderedmap.OrderedMap[string, *Tier]
	alloc    timeAllocator
}

// NewTranscript creates an empty transcript with its own time point
// allocator. Ids minted here are scoped to this transcript only.
func NewTranscript() *Transcript {
	return &Transcript{
		speakers: make(map[string]Speaker),
		timeline: orderedmap.New[TimeID, TimePoint](),
		tiers:    orderedmap.New[string, *Tier](),
	}
}

// NewTimePoint mints a time point with a fresh id from the
// transcript's allocator. Pass NoTimestamp for an unset timestamp.
func (t *Transcript) NewTimePoint(timestamp float64) TimePoint {
	return TimePoint{ID: t.alloc.allocate(), Timestamp: timestamp}
}

// speaker maintenance

// AddSpeaker registers a speaker. If the id is already present the
// existing record wins and the call is a no-op.
func (t *Transcript) AddSpeaker(s Speaker) {
	if _, ok := t.speakers[s.ID]; ok {
		return
	}
	t.speakers[s.ID] = s
}

// OverwriteSpeaker registers a speaker, replacing any existing record
// under the same id.
func (t *Transcript) OverwriteSpeaker(s Speaker) {
	t.speakers[s.ID] = s
}

// Speaker returns the speaker registered under the given id.
func (t *Transcript) Speaker(id string) (Speaker, error) {
	s, ok := t.speakers[id]
	if !ok {
		return Speaker{}, fmt.Errorf("%w: %q", ErrSpeakerNotFound, id)
	}
	return s, nil
}

// ContainsSpeaker reports whether a speaker id is registered.
func (t *Transcript) ContainsSpeaker(id string) bool {
	_, ok := t.speakers[id]
	return ok
}

// Speakers returns all speakers in ascending lexicographic id order,
// the order the speaker table serializes in.
func (t *Transcript) Speakers() []Speaker {
	ids := make([]string, 0, len(t.speakers))
	for id := range t.speakers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Speaker, len(ids))
	for i, id := range ids {
		out[i] = t.speakers[id]
	}
	return out
}

// tier and event maintenance

// AddTier registers a tier. If the id is already present the existing
// tier is left untouched. Empty category and type fall back to the
// "v"/"t" defaults.
func (t *Transcript) AddTier(tier Tier) {
	if _, ok := t.tiers.Get(tier.ID); ok {
		return
	}
	if tier.Category == "" {
		tier.Category = DefaultCategory
	}
	if tier.Type == "" {
		tier.Type = DefaultType
	}
	t.tiers.Set(tier.ID, &tier)
}

// Tier returns the tier registered under the given id.
func (t *Transcript) Tier(id string) (*Tier, error) {
	tier, ok := t.tiers.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTierNotFound, id)
	}
	return tier, nil
}

// ContainsTier reports whether a tier id is registered.
func (t *Transcript) ContainsTier(id string) bool {
	_, ok := t.tiers.Get(id)
	return ok
}

// Tiers returns all tiers in insertion order.
func (t *Transcript) Tiers() []*Tier {
	out := make([]*Tier, 0, t.tiers.Len())
	for pair := t.tiers.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// AddEvent appends an event spanning start to end to the named tier
// and makes sure both endpoints are present in the timeline. The
// first time point registered for an id stays authoritative; later
// points with the same id never overwrite it. An unknown tier id
// leaves the transcript unchanged and returns a wrapped
// ErrTierNotFound so the caller can log and continue.
func (t *Transcript) AddEvent(tierID string, start, end TimePoint, content string) error {
	tier, ok := t.tiers.Get(tierID)
	if !ok {
		return fmt.Errorf("cannot add event: %w: %q", ErrTierNotFound, tierID)
	}
	tier.Events = append(tier.Events, Event{
		Start:   start.ID,
		End:     end.ID,
		Content: content,
	})
	t.registerTimePoint(start)
	t.registerTimePoint(end)
	return nil
}

func (t *Transcript) registerTimePoint(p TimePoint) {
	if _, ok := t.timeline.Get(p.ID); ok {
		return
	}
	t.timeline.Set(p.ID, p)
	t.alloc.reserve(p.ID)
}

// TimePoint looks up a time point by id in the timeline.
func (t *Transcript) TimePoint(id TimeID) (TimePoint, bool) {
	return t.timeline.Get(id)
}

// TimePoints returns the timeline in insertion order.
func (t *Transcript) TimePoints() []TimePoint {
	out := make([]TimePoint, 0, t.timeline.Len())
	for pair := t.timeline.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Equal reports structural equality: metadata, speaker table (with
// language lists as sets), timeline sequence and tier sequence.
func (t *Transcript) Equal(other *Transcript) bool {
	if !metaEqual(t.Meta, other.Meta) {
		return false
	}
	if len(t.speakers) != len(other.speakers) {
		return false
	}
	for id, s := range t.speakers {
		os, ok := other.speakers[id]
		if !ok || !s.Equal(os) {
			return false
		}
	}
	tps, otps := t.TimePoints(), other.TimePoints()
	if len(tps) != len(otps) {
		return false
	}
	for i, p := range tps {
		if !p.Equal(otps[i]) || p.Type != otps[i].Type {
			return false
		}
	}
	tiers, otiers := t.Tiers(), other.Tiers()
	if len(tiers) != len(otiers) {
		return false
	}
	for i, tier := range tiers {
		if !tier.Equal(otiers[i]) {
			return false
		}
	}
	return true
}

func metaEqual(a, b Metadata) bool {
	if a.ProjectName != b.ProjectName ||
		a.TranscriptionName != b.TranscriptionName ||
		a.UDMetaInformation != b.UDMetaInformation ||
		a.Comment != b.Comment ||
		a.TranscriptionConvention != b.TranscriptionConvention ||
		len(a.ReferencedFileURLs) != len(b.ReferencedFileURLs) {
		return false
	}
	for i, u := range a.ReferencedFileURLs {
		if u != b.ReferencedFileURLs[i] {
			return false
		}
	}
	return true
}
