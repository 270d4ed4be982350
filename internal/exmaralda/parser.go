package exmaralda

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DiagnosticKind classifies a non-fatal parse finding.
type DiagnosticKind int

const (
	// DanglingReference marks an event endpoint or tier reference that
	// does not resolve against the document.
	DanglingReference DiagnosticKind = iota
	// UnexpectedElement marks a non-event element inside a tier block.
	UnexpectedElement
)

func (k DiagnosticKind) String() string {
	switch k {
	case DanglingReference:
		return "dangling reference"
	case UnexpectedElement:
		return "unexpected element"
	default:
		return "unknown"
	}
}

// Diagnostic records a recovered anomaly encountered while parsing.
// The offending element is skipped or degraded; parsing continues.
type Diagnostic struct {
	Kind   DiagnosticKind
	TierID string
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s in tier %q: %s", d.Kind, d.TierID, d.Detail)
}

// xml mapping for the basic-transcription document

type xmlDocument struct {
	XMLName xml.Name `xml:"basic-transcription"`
	Head    xmlHead  `xml:"head"`
	Body    xmlBody  `xml:"basic-body"`
}

type xmlHead struct {
	Meta     xmlMeta      `xml:"meta-information"`
	Speakers []xmlSpeaker `xml:"speakertable>speaker"`
}

type xmlMeta struct {
	ProjectName             string       `xml:"project-name"`
	TranscriptionName       string       `xml:"transcription-name"`
	ReferencedFiles         []xmlRefFile `xml:"referenced-file"`
	UDMetaInformation       string       `xml:"ud-meta-information"`
	Comment                 string       `xml:"comment"`
	TranscriptionConvention string       `xml:"transcription-convention"`
}

type xmlRefFile struct {
	URL string `xml:"url,attr"`
}

type xmlSpeaker struct {
	ID            string `xml:"id,attr"`
	Abbreviation  string `xml:"abbreviation"`
	Sex           xmlSex `xml:"sex"`
	LanguagesUsed string `xml:"languages-used"`
	L1            string `xml:"l1"`
	L2            string `xml:"l2"`
	UDInformation string `xml:"ud-speaker-information"`
	Comment       string `xml:"comment"`
}

type xmlSex struct {
	Value string `xml:"value,attr"`
}

type xmlBody struct {
	Timeline []xmlTLI  `xml:"common-timeline>tli"`
	Tiers    []xmlTier `xml:"tier"`
}

type xmlTLI struct {
	ID   string `xml:"id,attr"`
	Time string `xml:"time,attr"`
	Type string `xml:"type,attr"`
}

type xmlTier struct {
	ID          string         `xml:"id,attr"`
	Speaker     string         `xml:"speaker,attr"`
	Category    string         `xml:"category,attr"`
	Type        string         `xml:"type,attr"`
	DisplayName string         `xml:"display-name,attr"`
	Children    []xmlTierChild `xml:",any"`
}

type xmlTierChild struct {
	XMLName xml.Name
	Start   string `xml:"start,attr"`
	End     string `xml:"end,attr"`
	Content string `xml:",chardata"`
}

// ParseFile reads a basic-transcription file from disk.
func ParseFile(path string) (*Transcript, []Diagnostic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open transcription file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Parse(file)
}

// Parse reconstructs a transcript from basic-transcription markup.
// Malformed markup fails the whole parse; recoverable anomalies are
// returned as diagnostics alongside the reconstructed transcript.
//
// Declared tli ids are authoritative timeline keys; parsed time points
// are never assigned fresh ids, and the transcript's allocator is
// advanced past every declared id so later minting cannot collide.
func Parse(r io.Reader) (*Transcript, []Diagnostic, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("malformed transcription: %w", err)
	}

	t := NewTranscript()
	var diags []Diagnostic

	t.Meta.ProjectName = strings.TrimSpace(doc.Head.Meta.ProjectName)
	t.Meta.TranscriptionName = strings.TrimSpace(doc.Head.Meta.TranscriptionName)
	t.Meta.UDMetaInformation = strings.TrimSpace(doc.Head.Meta.UDMetaInformation)
	t.Meta.Comment = strings.TrimSpace(doc.Head.Meta.Comment)
	t.Meta.TranscriptionConvention = strings.TrimSpace(doc.Head.Meta.TranscriptionConvention)
	for _, rf := range doc.Head.Meta.ReferencedFiles {
		if rf.URL != "" {
			t.Meta.ReferencedFileURLs = append(t.Meta.ReferencedFileURLs, rf.URL)
		}
	}

	// first registration wins for duplicate speaker ids
	for _, xs := range doc.Head.Speakers {
		t.AddSpeaker(Speaker{
			ID:            xs.ID,
			Abbreviation:  strings.TrimSpace(xs.Abbreviation),
			Sex:           xs.Sex.Value,
			LanguagesUsed: splitLanguageList(xs.LanguagesUsed),
			L1:            splitLanguageList(xs.L1),
			L2:            splitLanguageList(xs.L2),
			UDInformation: strings.TrimSpace(xs.UDInformation),
			Comment:       strings.TrimSpace(xs.Comment),
		})
	}

	for _, xt := range doc.Body.Timeline {
		id, err := parseTimeID(xt.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("malformed timeline entry: %w", err)
		}
		p := TimePoint{ID: id, Timestamp: NoTimestamp, Type: xt.Type}
		if xt.Time != "" {
			ts, err := strconv.ParseFloat(xt.Time, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("malformed timestamp %q on %s: %w", xt.Time, id, err)
			}
			p.Timestamp = ts
		}
		t.registerTimePoint(p)
	}

	for _, xtier := range doc.Body.Tiers {
		t.AddTier(Tier{
			ID:          xtier.ID,
			Speaker:     xtier.Speaker,
			Category:    xtier.Category,
			Type:        xtier.Type,
			DisplayName: xtier.DisplayName,
		})
		for _, child := range xtier.Children {
			if child.XMLName.Local != "event" {
				diags = append(diags, Diagnostic{
					Kind:   UnexpectedElement,
					TierID: xtier.ID,
					Detail: fmt.Sprintf("skipped <%s>", child.XMLName.Local),
				})
				continue
			}
			start, d, err := t.resolveEndpoint(child.Start, xtier.ID)
			if err != nil {
				return nil, nil, err
			}
			diags = append(diags, d...)
			end, d, err := t.resolveEndpoint(child.End, xtier.ID)
			if err != nil {
				return nil, nil, err
			}
			diags = append(diags, d...)
			if err := t.AddEvent(xtier.ID, start, end, child.Content); err != nil {
				diags = append(diags, Diagnostic{
					Kind:   DanglingReference,
					TierID: xtier.ID,
					Detail: err.Error(),
				})
			}
		}
	}

	return t, diags, nil
}

// resolveEndpoint maps a declared start/end reference to the timeline
// entry registered for that id. An id never declared in the timeline
// yields a timestamp-less placeholder plus a diagnostic rather than a
// silently inconsistent time point.
func (t *Transcript) resolveEndpoint(ref, tierID string) (TimePoint, []Diagnostic, error) {
	id, err := parseTimeID(ref)
	if err != nil {
		return TimePoint{}, nil, fmt.Errorf("malformed event in tier %q: %w", tierID, err)
	}
	if p, ok := t.TimePoint(id); ok {
		return p, nil, nil
	}
	diag := Diagnostic{
		Kind:   DanglingReference,
		TierID: tierID,
		Detail: fmt.Sprintf("endpoint %s is not declared in the timeline", id),
	}
	return TimePoint{ID: id, Timestamp: NoTimestamp}, []Diagnostic{diag}, nil
}

// splitLanguageList reads a comma separated language element into its
// individual entries.
func splitLanguageList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
