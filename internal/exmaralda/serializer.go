package exmaralda

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Optional preface emitted in front of the document root.
const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
	prefaceComment = `<!-- (c) http://www.rrz.uni-hamburg.de/exmaralda -->`
	indentUnit     = "\t"
)

// Reserved markup characters are escaped on output and unescaped by
// the parser, so serialized content always stays well formed.
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Serialize renders the transcript as an indented basic-transcription
// document. The fixed XML declaration and provenance comment are only
// emitted when withPreface is set.
func (t *Transcript) Serialize(withPreface bool) string {
	var sb strings.Builder
	if withPreface {
		sb.WriteString(xmlDeclaration)
		sb.WriteString("\n")
		sb.WriteString(prefaceComment)
		sb.WriteString("\n")
	}
	sb.WriteString("<basic-transcription>\n")
	t.writeHead(&sb, 1)
	sb.WriteString("\n")
	t.writeBody(&sb, 1)
	sb.WriteString("\n</basic-transcription>\n")
	return sb.String()
}

// String renders the transcript without the preface.
func (t *Transcript) String() string {
	return t.Serialize(false)
}

// WriteFile serializes the transcript with preface to the given path,
// creating parent directories as needed.
func (t *Transcript) WriteFile(path string, withPreface bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(t.Serialize(withPreface)), 0644)
}

func (t *Transcript) writeHead(sb *strings.Builder, level int) {
	indent := strings.Repeat(indentUnit, level)
	sb.WriteString(indent + "<head>\n")
	t.writeMetaInformation(sb, level+1)
	sb.WriteString("\n\n")
	t.writeSpeakerTable(sb, level+1)
	sb.WriteString("\n" + indent + "</head>")
}

func (t *Transcript) writeMetaInformation(sb *strings.Builder, level int) {
	indent := strings.Repeat(indentUnit, level)
	child := indent + indentUnit
	sb.WriteString(indent + "<meta-information>\n")
	sb.WriteString(child + "<project-name>" + textEscaper.Replace(t.Meta.ProjectName) + "</project-name>\n")
	sb.WriteString(child + "<transcription-name>" + textEscaper.Replace(t.Meta.TranscriptionName) + "</transcription-name>\n")
	for _, url := range t.Meta.ReferencedFileURLs {
		sb.WriteString(child + `<referenced-file url="` + attrEscaper.Replace(url) + "\"/>\n")
	}
	sb.WriteString(child + "<ud-meta-information>" + textEscaper.Replace(t.Meta.UDMetaInformation) + "</ud-meta-information>\n")
	sb.WriteString(child + "<comment>" + textEscaper.Replace(t.Meta.Comment) + "</comment>\n")
	sb.WriteString(child + "<transcription-convention>" + textEscaper.Replace(t.Meta.TranscriptionConvention) + "</transcription-convention>\n")
	sb.WriteString(indent + "</meta-information>")
}

// speakers serialize in ascending lexicographic id order regardless of
// registration order, so output is deterministic.
func (t *Transcript) writeSpeakerTable(sb *strings.Builder, level int) {
	indent := strings.Repeat(indentUnit, level)
	speakers := t.Speakers()
	if len(speakers) == 0 {
		sb.WriteString(indent + "<speakertable></speakertable>")
		return
	}
	sb.WriteString(indent + "<speakertable>\n")
	for _, s := range speakers {
		writeSpeaker(sb, level+1, s)
		sb.WriteString("\n")
	}
	sb.WriteString(indent + "</speakertable>")
}

func writeSpeaker(sb *strings.Builder, level int, s Speaker) {
	indent := strings.Repeat(indentUnit, level)
	child := indent + indentUnit
	sb.WriteString(indent + `<speaker id="` + attrEscaper.Replace(s.ID) + "\">\n")
	sb.WriteString(child + "<abbreviation>" + textEscaper.Replace(s.Abbreviation) + "</abbreviation>\n")
	sb.WriteString(child + `<sex value="` + attrEscaper.Replace(s.Sex) + "\"/>\n")
	sb.WriteString(child + "<languages-used>" + textEscaper.Replace(strings.Join(s.LanguagesUsed, ", ")) + "</languages-used>\n")
	sb.WriteString(child + "<l1>" + textEscaper.Replace(strings.Join(s.L1, ", ")) + "</l1>\n")
	sb.WriteString(child + "<l2>" + textEscaper.Replace(strings.Join(s.L2, ", ")) + "</l2>\n")
	sb.WriteString(child + "<ud-speaker-information>" + textEscaper.Replace(s.UDInformation) + "</ud-speaker-information>\n")
	sb.WriteString(child + "<comment>" + textEscaper.Replace(s.Comment) + "</comment>\n")
	sb.WriteString(indent + "</speaker>")
}

func (t *Transcript) writeBody(sb *strings.Builder, level int) {
	indent := strings.Repeat(indentUnit, level)
	sb.WriteString(indent + "<basic-body>\n")
	t.writeTimeline(sb, level+1)
	for _, tier := range t.Tiers() {
		sb.WriteString("\n")
		writeTier(sb, level+1, tier)
	}
	sb.WriteString("\n" + indent + "</basic-body>")
}

// the timeline serializes in insertion order, not sorted by id or
// timestamp.
func (t *Transcript) writeTimeline(sb *strings.Builder, level int) {
	indent := strings.Repeat(indentUnit, level)
	points := t.TimePoints()
	if len(points) == 0 {
		sb.WriteString(indent + "<common-timeline></common-timeline>")
		return
	}
	sb.WriteString(indent + "<common-timeline>\n")
	child := indent + indentUnit
	for _, p := range points {
		sb.WriteString(child + `<tli id="` + p.ID.String() + `"`)
		if p.HasTimestamp() {
			sb.WriteString(` time="` + formatTimestamp(p.Timestamp) + `"`)
		}
		if p.Type != "" {
			sb.WriteString(` type="` + attrEscaper.Replace(p.Type) + `"`)
		}
		sb.WriteString("/>\n")
	}
	sb.WriteString(indent + "</common-timeline>")
}

func writeTier(sb *strings.Builder, level int, tier *Tier) {
	indent := strings.Repeat(indentUnit, level)
	sb.WriteString(indent + `<tier id="` + attrEscaper.Replace(tier.ID) + `"`)
	if tier.Speaker != "" {
		sb.WriteString(` speaker="` + attrEscaper.Replace(tier.Speaker) + `"`)
	}
	sb.WriteString(` category="` + attrEscaper.Replace(tier.Category) + `"`)
	sb.WriteString(` type="` + attrEscaper.Replace(tier.Type) + `"`)
	sb.WriteString(` display-name="` + attrEscaper.Replace(tier.DisplayName) + `">`)
	if tier.IsEmpty() {
		sb.WriteString("</tier>")
		return
	}
	child := indent + indentUnit
	for _, e := range tier.Events {
		sb.WriteString("\n" + child + `<event start="` + e.Start.String() + `" end="` + e.End.String() + `">`)
		sb.WriteString(textEscaper.Replace(e.Content))
		sb.WriteString("</event>")
	}
	sb.WriteString("\n" + indent + "</tier>")
}

func formatTimestamp(ts float64) string {
	return strconv.FormatFloat(ts, 'f', -1, 64)
}
