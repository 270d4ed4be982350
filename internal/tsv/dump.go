// Package tsv flattens a parsed transcription into a tabular data dump.
package tsv

import (
	"strconv"
	"strings"

	"github.com/lingmod-tue/exmaralda-converter/internal/exmaralda"
)

const header = "Tier-ID\tType\tDisplay Name\tCategory\tSpeaker-ID\tAbbreviation\tL1\tL2\tLanguages Used\tSex\tStart\tEnd\tString\n"

// Dump renders one row per event, prefixed with the owning tier's
// classification and its speaker's details. Empty fields render as NA;
// language sets are joined with underscores.
func Dump(t *exmaralda.Transcript) string {
	var sb strings.Builder
	sb.WriteString(header)

	for _, tier := range t.Tiers() {
		prefix := tier.ID + "\t" +
			orNA(tier.Type) + "\t" +
			orNA(tier.DisplayName) + "\t" +
			orNA(tier.Category) + "\t" +
			speakerColumns(t, tier.Speaker) + "\t"

		for _, e := range tier.Events {
			sb.WriteString(prefix)
			sb.WriteString(timestampColumn(t, e.Start))
			sb.WriteString("\t")
			sb.WriteString(timestampColumn(t, e.End))
			sb.WriteString("\t")
			sb.WriteString(e.Content)
			// verbal tiers get a trailing space after sentence-final
			// punctuation so downstream concatenation stays readable
			if tier.Category == "v" && endsSentence(e.Content) {
				sb.WriteString(" ")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func speakerColumns(t *exmaralda.Transcript, speakerID string) string {
	if speakerID == "" || !t.ContainsSpeaker(speakerID) {
		return "NA\tNA\tNA\tNA\tNA\tNA"
	}
	s, err := t.Speaker(speakerID)
	if err != nil {
		return "NA\tNA\tNA\tNA\tNA\tNA"
	}
	return speakerID + "\t" +
		orNA(s.Abbreviation) + "\t" +
		joinOrNA(s.L1) + "\t" +
		joinOrNA(s.L2) + "\t" +
		joinOrNA(s.LanguagesUsed) + "\t" +
		orNA(s.Sex)
}

func timestampColumn(t *exmaralda.Transcript, id exmaralda.TimeID) string {
	p, ok := t.TimePoint(id)
	if !ok || !p.HasTimestamp() {
		return "NA"
	}
	return strconv.FormatFloat(p.Timestamp, 'f', -1, 64)
}

func orNA(s string) string {
	if s == "" {
		return "NA"
	}
	return s
}

func joinOrNA(list []string) string {
	if len(list) == 0 {
		return "NA"
	}
	return strings.Join(list, "_")
}

func endsSentence(s string) bool {
	return strings.HasSuffix(s, ".") ||
		strings.HasSuffix(s, "!") ||
		strings.HasSuffix(s, "?")
}
