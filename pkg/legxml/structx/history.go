package structx

import "github.com/sprice/legrag/pkg/legxml/tree"

// HistoricalNote mirrors legtypes.HistoricalNote for the same
// dependency-direction reason as Footnote (see footnotes.go).
type HistoricalNote struct {
	Citation    string
	EnactedDate string
	InForceDate string
	Text        string
}

// CollectHistoricalNotes gathers every HistoricalNoteSubItem under a
// HistoricalNote element.
func CollectHistoricalNotes(e *tree.Element) []HistoricalNote {
	hn := e
	if hn.Name() != "HistoricalNote" {
		if found := e.First("HistoricalNote"); found != nil {
			hn = found
		} else {
			return nil
		}
	}
	var out []HistoricalNote
	for _, item := range hn.ChildrenNamed("HistoricalNoteSubItem") {
		note := HistoricalNote{Text: ExtractText(item)}
		if c, ok := item.Attr("citation"); ok {
			note.Citation = c
		}
		if d := item.First("Date"); d != nil {
			note.EnactedDate = ParseElementDate(d)
		}
		if d, ok := item.Attr("inforce-date"); ok {
			note.InForceDate = d
		}
		out = append(out, note)
	}
	return out
}

// FormatHistoricalNotes renders a set of historical notes into the
// bilingual "History:"/"Historique:" block the chunker appends to
// section content, joining items with "; " and annotating enacted/
// in-force dates per item.
func FormatHistoricalNotes(notes []HistoricalNote, lang string) string {
	if len(notes) == 0 {
		return ""
	}
	label := "History:"
	if lang == "fr" {
		label = "Historique:"
	}
	out := label + " "
	for i, n := range notes {
		if i > 0 {
			out += "; "
		}
		out += n.Text
		if n.EnactedDate != "" {
			out += " (" + n.EnactedDate
			if n.InForceDate != "" && n.InForceDate != n.EnactedDate {
				out += ", in force " + n.InForceDate
			}
			out += ")"
		}
	}
	return out
}
