package tsv

import (
	"strings"
	"testing"

	"github.com/lingmod-tue/exmaralda-converter/internal/exmaralda"
)

func buildTranscript(t *testing.T) *exmaralda.Transcript {
	t.Helper()
	tr := exmaralda.NewTranscript()
	tr.AddSpeaker(exmaralda.Speaker{
		ID:            "1",
		Abbreviation:  "Anna",
		Sex:           "f",
		LanguagesUsed: []string{"deutsch", "russisch"},
		L1:            []string{"russisch"},
		L2:            []string{"deutsch", "englisch"},
	})
	tr.AddTier(exmaralda.Tier{ID: "TIE0", Speaker: "1", DisplayName: "Anna [v]"})

	s := tr.NewTimePoint(0.0)
	e := tr.NewTimePoint(0.1)
	if err := tr.AddEvent("TIE0", s, e, "Hallo"); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	s, e = e, tr.NewTimePoint(0.2)
	if err := tr.AddEvent("TIE0", s, e, "Geht's?"); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	return tr
}

func TestDumpHeader(t *testing.T) {
	out := Dump(exmaralda.NewTranscript())
	want := "Tier-ID\tType\tDisplay Name\tCategory\tSpeaker-ID\tAbbreviation\tL1\tL2\tLanguages Used\tSex\tStart\tEnd\tString\n"
	if out != want {
		t.Errorf("empty dump = %q, want header only", out)
	}
}

func TestDumpRows(t *testing.T) {
	out := Dump(buildTranscript(t))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}

	want := "TIE0\tt\tAnna [v]\tv\t1\tAnna\trussisch\tdeutsch_englisch\tdeutsch_russisch\tf\t0\t0.1\tHallo"
	if lines[1] != want {
		t.Errorf("row 1:\n got %q\nwant %q", lines[1], want)
	}

	// sentence-final punctuation on a verbal tier gets a trailing space
	if !strings.HasSuffix(lines[2], "\t0.1\t0.2\tGeht's? ") {
		t.Errorf("row 2 missing trailing space after punctuation: %q", lines[2])
	}
}

func TestDumpUnattachedTier(t *testing.T) {
	tr := exmaralda.NewTranscript()
	tr.AddTier(exmaralda.Tier{ID: "TIE0"})
	s := tr.NewTimePoint(exmaralda.NoTimestamp)
	e := tr.NewTimePoint(exmaralda.NoTimestamp)
	if err := tr.AddEvent("TIE0", s, e, "x"); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}

	out := Dump(tr)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	// display name, speaker columns and unset timestamps all fall back to NA
	want := "TIE0\tt\tNA\tv\tNA\tNA\tNA\tNA\tNA\tNA\tNA\tNA\tx"
	if lines[1] != want {
		t.Errorf("row:\n got %q\nwant %q", lines[1], want)
	}
}

func TestDumpUnknownSpeakerReference(t *testing.T) {
	tr := exmaralda.NewTranscript()
	tr.AddTier(exmaralda.Tier{ID: "TIE0", Speaker: "ghost"})
	s := tr.NewTimePoint(0.0)
	e := tr.NewTimePoint(1.0)
	if err := tr.AddEvent("TIE0", s, e, "x"); err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}

	out := Dump(tr)
	if !strings.Contains(out, "TIE0\tt\tNA\tv\tNA\tNA\tNA\tNA\tNA\tNA\t0\t1\tx") {
		t.Errorf("unknown speaker reference not degraded to NA columns:\n%s", out)
	}
}
