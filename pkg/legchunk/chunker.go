// Package legchunk splits section content into token-bounded chunks
// that respect legislative structural boundaries, ready for embedding.
package legchunk

import (
	"strings"

	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/sprice/legrag/pkg/legxml/structx"
)

// DefaultTargetTokens and DefaultOverlapTokens are the chunk sizing
// constants; both are overridable via Options.
const (
	DefaultTargetTokens  = 512
	DefaultOverlapTokens = 64

	// safetyMargin is extra headroom subtracted from the target budget
	// on top of the prefix's own token count (document title + section
	// label line) so the final
	// countTokens(chunk) ≤ TargetTokens + 50 invariant always holds.
	safetyMargin = 10
)

// Options configures ChunkSection.
type Options struct {
	TargetTokens  int
	OverlapTokens int
	Language      legtypes.Language
	// HistoricalNotes, when non-empty, are appended to section content
	// before chunking under a bilingual "History:"/"Historique:" label.
	HistoricalNotes []legtypes.HistoricalNote
}

func (o Options) withDefaults() Options {
	if o.TargetTokens <= 0 {
		o.TargetTokens = DefaultTargetTokens
	}
	if o.OverlapTokens <= 0 {
		o.OverlapTokens = DefaultOverlapTokens
	}
	return o
}

// ShouldSkipSection reports whether a section's content is nil or
// whitespace-only. Repealed sections with text are never skipped — the
// legal record requires the text of a repeal to remain searchable.
func ShouldSkipSection(content string) bool {
	return strings.TrimSpace(content) == ""
}

// buildPrefix constructs the context prefix every chunk begins with.
func buildPrefix(documentTitle, sectionLabel, marginalNote string) string {
	var sb strings.Builder
	sb.WriteString(documentTitle)
	sb.WriteString("\n")
	sb.WriteString("Section " + sectionLabel)
	if marginalNote != "" {
		sb.WriteString(": " + marginalNote)
	}
	sb.WriteString("\n\n")
	return sb.String()
}

// withHistory appends the formatted historical-note block, if any, to
// section content before chunking.
func withHistory(content string, notes []legtypes.HistoricalNote, lang legtypes.Language) string {
	if len(notes) == 0 {
		return content
	}
	converted := make([]structx.HistoricalNote, len(notes))
	for i, n := range notes {
		converted[i] = structx.HistoricalNote{
			Citation: n.Citation, EnactedDate: n.EnactedDate,
			InForceDate: n.InForceDate, Text: n.Text,
		}
	}
	block := structx.FormatHistoricalNotes(converted, string(lang))
	if block == "" {
		return content
	}
	return strings.TrimRight(content, "\n") + "\n\n" + block
}

// ChunkSection splits a section's content into token-bounded,
// legal-boundary-aware chunks. Callers should skip sections for which
// ShouldSkipSection(section.Content) is true before calling.
func ChunkSection(section legtypes.Section, documentTitle string, opts Options) ([]legtypes.Chunk, error) {
	opts = opts.withDefaults()

	content := withHistory(section.Content, opts.HistoricalNotes, opts.Language)
	prefix := buildPrefix(documentTitle, section.SectionLabel, section.MarginalNote)

	fullText := prefix + content
	if CountTokens(fullText) <= opts.TargetTokens {
		return []legtypes.Chunk{{
			Content:     fullText,
			ChunkIndex:  0,
			TotalChunks: 1,
			Language:    opts.Language,
		}}, nil
	}

	budget := opts.TargetTokens - CountTokens(prefix) - safetyMargin
	if budget < 1 {
		budget = 1
	}

	units := splitLegalUnits(content)
	bodies := packUnits(units, budget, opts.OverlapTokens)

	chunks := make([]legtypes.Chunk, len(bodies))
	for i, body := range bodies {
		chunks[i] = legtypes.Chunk{
			Content:     prefix + body,
			ChunkIndex:  i,
			TotalChunks: len(bodies),
			Language:    opts.Language,
		}
	}
	return chunks, nil
}

// packUnits greedily packs legal units into chunk bodies no larger than
// budget tokens, carrying whole trailing units from the prior chunk as
// overlap when they fit within overlapBudget. A unit that alone exceeds
// budget is force-split by words.
func packUnits(units []legalUnit, budget, overlapBudget int) []string {
	var chunks []string
	var current []legalUnit
	currentTokens := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		var sb strings.Builder
		for _, u := range current {
			sb.WriteString(u.text)
		}
		chunks = append(chunks, sb.String())
	}

	overlapFor := func(units []legalUnit) []legalUnit {
		var tail []legalUnit
		tokens := 0
		for i := len(units) - 1; i >= 0; i-- {
			t := CountTokens(units[i].text)
			if tokens+t > overlapBudget {
				break
			}
			tail = append([]legalUnit{units[i]}, tail...)
			tokens += t
		}
		return tail
	}

	for _, u := range units {
		t := CountTokens(u.text)
		if t > budget {
			// Flush what we have, then force-split the oversized unit
			// on its own; overlap is carried only between its pieces,
			// not from the preceding chunk.
			flush()
			pieces := forceSplitByWords(u.text, budget, overlapBudget)
			chunks = append(chunks, pieces...)
			current = nil
			currentTokens = 0
			continue
		}
		if currentTokens+t > budget && len(current) > 0 {
			flush()
			current = overlapFor(current)
			currentTokens = 0
			for _, c := range current {
				currentTokens += CountTokens(c.text)
			}
			if currentTokens+t > budget {
				current = nil
				currentTokens = 0
			}
		}
		current = append(current, u)
		currentTokens += t
	}
	flush()

	if len(chunks) == 0 {
		chunks = []string{""}
	}
	return chunks
}

// forceSplitByWords splits oversized text by words into pieces of at
// most budget tokens, carrying word-level overlap between consecutive
// pieces.
func forceSplitByWords(text string, budget, overlapBudget int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var pieces []string
	var current []string
	currentTokens := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		pieces = append(pieces, strings.Join(current, " "))
	}

	overlapFor := func(words []string) []string {
		var tail []string
		tokens := 0
		for i := len(words) - 1; i >= 0; i-- {
			t := CountTokens(words[i])
			if tokens+t > overlapBudget {
				break
			}
			tail = append([]string{words[i]}, tail...)
			tokens += t
		}
		return tail
	}

	for _, w := range words {
		t := CountTokens(w)
		if currentTokens+t > budget && len(current) > 0 {
			flush()
			current = overlapFor(current)
			currentTokens = 0
			for _, c := range current {
				currentTokens += CountTokens(c)
			}
		}
		current = append(current, w)
		currentTokens += t
	}
	flush()
	return pieces
}
