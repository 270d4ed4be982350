package exmaralda

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSerializeEmptyTranscript(t *testing.T) {
	tr := NewTranscript()
	out := tr.Serialize(false)

	if !strings.HasPrefix(out, "<basic-transcription>\n") {
		t.Error("missing document root")
	}
	if !strings.Contains(out, "<speakertable></speakertable>") {
		t.Error("empty speaker table not collapsed to an empty element")
	}
	if !strings.Contains(out, "<common-timeline></common-timeline>") {
		t.Error("empty timeline not collapsed to an empty element")
	}
	if strings.Contains(out, "<tier") {
		t.Error("empty transcript must not emit tier elements")
	}
}

func TestSerializePreface(t *testing.T) {
	tr := NewTranscript()

	with := tr.Serialize(true)
	if !strings.HasPrefix(with, `<?xml version="1.0" encoding="UTF-8"?>`+"\n") {
		t.Error("preface missing XML declaration")
	}
	if !strings.Contains(with, "<!-- (c) http://www.rrz.uni-hamburg.de/exmaralda -->") {
		t.Error("preface missing provenance comment")
	}

	without := tr.Serialize(false)
	if strings.Contains(without, "<?xml") {
		t.Error("preface emitted without being requested")
	}
}

func TestSerializeSpeakerTableSorted(t *testing.T) {
	tr := NewTranscript()
	tr.AddSpeaker(Speaker{ID: "SPK1", Abbreviation: "Peter"})
	tr.AddSpeaker(Speaker{ID: "SPK0", Abbreviation: "Anna"})

	out := tr.Serialize(false)
	first := strings.Index(out, `<speaker id="SPK0">`)
	second := strings.Index(out, `<speaker id="SPK1">`)
	if first < 0 || second < 0 {
		t.Fatalf("speaker blocks missing from output:\n%s", out)
	}
	if first > second {
		t.Error("speakers not serialized in ascending id order")
	}
}

func TestSerializeSpeakerBlock(t *testing.T) {
	tr := NewTranscript()
	tr.AddSpeaker(Speaker{
		ID:            "SPK0",
		Abbreviation:  "Anna",
		Sex:           "f",
		LanguagesUsed: []string{"deutsch", "englisch", "russisch"},
		L1:            []string{"russisch"},
		L2:            []string{"deutsch", "englisch"},
	})

	out := tr.Serialize(false)
	for _, want := range []string{
		`<sex value="f"/>`,
		"<languages-used>deutsch, englisch, russisch</languages-used>",
		"<l1>russisch</l1>",
		"<l2>deutsch, englisch</l2>",
		"<abbreviation>Anna</abbreviation>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

// registering one speaker and one tier with a single timed event must
// place the tli pair inside common-timeline before the tier block,
// with matching start/end references.
func TestSerializeTimelineBeforeTiers(t *testing.T) {
	tr := NewTranscript()
	tr.AddSpeaker(Speaker{ID: "1", L1: []string{"russisch"}, L2: []string{"deutsch", "englisch"}})
	tr.AddTier(Tier{ID: "2", Speaker: "1"})

	start := tr.NewTimePoint(0.0)
	end := tr.NewTimePoint(0.1)
	if err := tr.AddEvent("2", start, end, "Hallo"); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}

	out := tr.Serialize(false)

	tliStart := strings.Index(out, `<tli id="T0" time="0"/>`)
	tliEnd := strings.Index(out, `<tli id="T1" time="0.1"/>`)
	timelineClose := strings.Index(out, "</common-timeline>")
	tier := strings.Index(out, `<tier id="2"`)
	event := strings.Index(out, `<event start="T0" end="T1">Hallo</event>`)

	if tliStart < 0 || tliEnd < 0 || timelineClose < 0 || tier < 0 || event < 0 {
		t.Fatalf("expected elements missing from output:\n%s", out)
	}
	if tliStart > timelineClose || tliEnd > timelineClose {
		t.Error("tli elements not inside common-timeline")
	}
	if timelineClose > tier {
		t.Error("timeline must precede tier blocks")
	}
}

func TestSerializeTierAttributes(t *testing.T) {
	tr := NewTranscript()
	tr.AddTier(Tier{ID: "TIE0", Speaker: "SPK0", DisplayName: "Anna [v]"})
	tr.AddTier(Tier{ID: "TIE1"})

	out := tr.Serialize(false)
	if !strings.Contains(out, `<tier id="TIE0" speaker="SPK0" category="v" type="t" display-name="Anna [v]"></tier>`) {
		t.Errorf("attached tier serialized wrong:\n%s", out)
	}
	// speaker attribute omitted entirely when unattached
	if !strings.Contains(out, `<tier id="TIE1" category="v" type="t" display-name=""></tier>`) {
		t.Errorf("unattached tier serialized wrong:\n%s", out)
	}
}

func TestSerializeTimePointType(t *testing.T) {
	tr := NewTranscript()
	tr.AddTier(Tier{ID: "TIE0"})
	start := tr.NewTimePoint(NoTimestamp)
	start.Type = "intp"
	end := tr.NewTimePoint(1.5)
	if err := tr.AddEvent("TIE0", start, end, ""); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}

	out := tr.Serialize(false)
	if !strings.Contains(out, `<tli id="T0" type="intp"/>`) {
		t.Errorf("time attribute emitted for unset timestamp or type missing:\n%s", out)
	}
	if !strings.Contains(out, `<tli id="T1" time="1.5"/>`) {
		t.Errorf("timestamped tli serialized wrong:\n%s", out)
	}
}

func TestSerializeEscapesMarkup(t *testing.T) {
	tr := NewTranscript()
	tr.Meta.Comment = "a < b & c"
	tr.AddTier(Tier{ID: "TIE0", DisplayName: `say "hi" <now>`})
	s := tr.NewTimePoint(0.0)
	e := tr.NewTimePoint(0.5)
	if err := tr.AddEvent("TIE0", s, e, "x > y & z"); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}

	out := tr.Serialize(false)
	if !strings.Contains(out, "<comment>a &lt; b &amp; c</comment>") {
		t.Error("element text not escaped")
	}
	if !strings.Contains(out, `display-name="say &quot;hi&quot; &lt;now&gt;"`) {
		t.Error("attribute value not escaped")
	}
	if !strings.Contains(out, ">x &gt; y &amp; z</event>") {
		t.Error("event content not escaped")
	}
}

func TestWriteFile(t *testing.T) {
	tr := NewTranscript()
	tr.Meta.ProjectName = "proj"

	path := filepath.Join(t.TempDir(), "nested", "out.exb")
	if err := tr.WriteFile(path, true); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(content), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("written file missing preface")
	}
	if !strings.Contains(string(content), "<project-name>proj</project-name>") {
		t.Error("written file missing metadata")
	}
}
