// Package legcatalog parses the lookup.xml catalog mapping acts to
// regulations and resolves named subsets of acts to the regulation
// filenames they pull in.
package legcatalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/sprice/legrag/pkg/legerrors"
	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/sprice/legrag/pkg/legxml/tree"
)

// catalogKey is the (number, language) composite key entries are indexed
// by.
type catalogKey struct {
	number string
	lang   legtypes.Language
}

// StatuteEntry is one Statute row from the catalog.
type StatuteEntry struct {
	ChapterNumber         string
	Language              legtypes.Language
	ConsolidateFlag       bool
	LastConsolidationDate string
	RelatedRegulations    []string
}

// RegulationEntry is one Regulation row from the catalog.
type RegulationEntry struct {
	AlphaNumber           string
	Language              legtypes.Language
	ConsolidateFlag       bool
	LastConsolidationDate string
}

// Index is the in-memory lookup built from the catalog: maps keyed by
// (number, language), and an actId -> regulation alpha-number adjacency.
type Index struct {
	statutes    map[catalogKey]*StatuteEntry
	regulations map[catalogKey]*RegulationEntry
	related     map[string][]string // actId -> alphaNumbers
}

// LookupStatute returns the statute entry for a chapter number and
// language, or nil if absent.
func (idx *Index) LookupStatute(chapterNumber string, lang legtypes.Language) *StatuteEntry {
	return idx.statutes[catalogKey{chapterNumber, lang}]
}

// LookupRegulation returns the regulation entry for an alpha-number and
// language, or nil if absent.
func (idx *Index) LookupRegulation(alphaNumber string, lang legtypes.Language) *RegulationEntry {
	return idx.regulations[catalogKey{alphaNumber, lang}]
}

// GetRelatedRegulations returns the alpha-numbers of regulations related
// to an act, independent of language (the adjacency map is not
// language-keyed since relationships are structural, not linguistic).
func (idx *Index) GetRelatedRegulations(actID string, _ legtypes.Language) []string {
	return idx.related[actID]
}

// LoadCatalog parses a lookup.xml catalog file into an Index.
func LoadCatalog(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("legcatalog: open %s: %w", path, err)
	}
	defer f.Close()

	root, err := tree.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("legcatalog: parse %s: %w", path, err)
	}

	idx := &Index{
		statutes:    make(map[catalogKey]*StatuteEntry),
		regulations: make(map[catalogKey]*RegulationEntry),
		related:     make(map[string][]string),
	}

	for _, st := range root.FindAll("Statute") {
		entry := parseStatuteEntry(st)
		if entry == nil {
			continue
		}
		idx.statutes[catalogKey{entry.ChapterNumber, entry.Language}] = entry
		if len(entry.RelatedRegulations) > 0 {
			idx.related[entry.ChapterNumber] = append(idx.related[entry.ChapterNumber], entry.RelatedRegulations...)
		}
	}
	for _, reg := range root.FindAll("Regulation") {
		entry := parseRegulationEntry(reg)
		if entry == nil {
			continue
		}
		idx.regulations[catalogKey{entry.AlphaNumber, entry.Language}] = entry
	}

	return idx, nil
}

func parseStatuteEntry(st *tree.Element) *StatuteEntry {
	chapter := elementText(st, "ChapterNumber")
	if chapter == "" {
		return nil
	}
	entry := &StatuteEntry{
		ChapterNumber:         chapter,
		Language:              legtypes.Language(elementText(st, "Language")),
		ConsolidateFlag:       elementText(st, "ConsolidateFlag") == "true",
		LastConsolidationDate: elementText(st, "LastConsolidationDate"),
	}
	if rel := st.First("Relationships"); rel != nil {
		for _, r := range rel.FindAll("AlphaNumber") {
			entry.RelatedRegulations = append(entry.RelatedRegulations, r.String())
		}
	}
	return entry
}

func parseRegulationEntry(reg *tree.Element) *RegulationEntry {
	alpha := elementText(reg, "AlphaNumber")
	if alpha == "" {
		return nil
	}
	return &RegulationEntry{
		AlphaNumber:           alpha,
		Language:              legtypes.Language(elementText(reg, "Language")),
		ConsolidateFlag:       elementText(reg, "ConsolidateFlag") == "true",
		LastConsolidationDate: elementText(reg, "LastConsolidationDate"),
	}
}

func elementText(parent *tree.Element, name string) string {
	if e := parent.First(name); e != nil {
		return strings.TrimSpace(textOf(e))
	}
	return ""
}

func textOf(e *tree.Element) string {
	var sb strings.Builder
	for _, c := range e.Contents {
		if cd, ok := c.(tree.CharData); ok {
			sb.Write(cd)
		}
	}
	return sb.String()
}

// ResolveSubset expands a named subset's act IDs to the set of related
// regulation filesystem-safe names. Every requested act must appear in
// the catalog; otherwise legerrors.ErrInvalidSubset is returned naming
// the offending IDs.
func (idx *Index) ResolveSubset(actIDs []string) ([]string, error) {
	var missing []string
	var files []string
	seen := make(map[string]bool)

	for _, actID := range actIDs {
		found := false
		for _, lang := range []legtypes.Language{legtypes.LanguageEN, legtypes.LanguageFR} {
			if idx.LookupStatute(actID, lang) != nil {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, actID)
			continue
		}
		for _, alpha := range idx.GetRelatedRegulations(actID, legtypes.LanguageEN) {
			name := AlphaNumberToFilename(alpha)
			if !seen[name] {
				seen[name] = true
				files = append(files, name)
			}
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: unknown act id(s) %s", legerrors.ErrInvalidSubset, strings.Join(missing, ", "))
	}
	return files, nil
}

// AlphaNumberToFilename converts an alpha-number like "SOR/2007-151" to
// its filesystem-safe form "SOR-2007-151": slash becomes dash, space
// becomes underscore.
func AlphaNumberToFilename(alpha string) string {
	out := strings.ReplaceAll(alpha, "/", "-")
	out = strings.ReplaceAll(out, " ", "_")
	return out
}
