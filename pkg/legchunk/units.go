package legchunk

import (
	"regexp"
	"strings"
)

// Legal-unit nesting levels, shallowest first. A higher level nests
// inside the level above it but the chunker packs units as a flat
// sequence — nesting only matters for classifying a marker, never for
// where a chunk boundary may fall.
const (
	levelUnmarked = iota
	levelSubsection
	levelParagraph
	levelSubparagraph
	levelClause
)

// markerRe finds legal-unit markers of the form "(1)", "(a)", "(i)",
// "(A)" etc. Anchored to whitespace or start-of-text so a parenthesized
// aside inside a word ("(s)" glued to a word) never matches — see
// spec §9 "Regex hazards".
var markerRe = regexp.MustCompile(`(^|\s)\(([0-9A-Za-z]+)\)`)

// legalUnit is one marker-delimited slice of section content, including
// its own marker text through up to (but not including) the next
// marker.
type legalUnit struct {
	level int
	text  string
}

// splitLegalUnits splits content into legal units at subsection →
// paragraph → subparagraph → clause marker boundaries. Preamble text
// before the first marker becomes an initial unmarked unit; text
// between markers is appended to the preceding unit, never split
// mid-marker.
func splitLegalUnits(content string) []legalUnit {
	locs := markerRe.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return []legalUnit{{level: levelUnmarked, text: content}}
	}

	var units []legalUnit
	firstOpen := locs[0][3]
	if strings.TrimSpace(content[:firstOpen]) != "" {
		units = append(units, legalUnit{level: levelUnmarked, text: content[:firstOpen]})
	}

	for i, loc := range locs {
		start := loc[3]
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][3]
		}
		marker := content[loc[4]:loc[5]]
		units = append(units, legalUnit{level: markerLevel(marker), text: content[start:end]})
	}
	return units
}

// markerLevel classifies a marker's bracketed content. Digits are a
// subsection. All-uppercase letters are a clause. Lowercase markers of
// more than one letter are assumed roman numerals (subparagraph);
// single lowercase letters are ambiguous between a roman numeral and an
// alphabetic paragraph marker, so i/v/x resolve to subparagraph and
// every other single letter resolves to paragraph, per spec §4.D.
func markerLevel(marker string) int {
	if isAllDigits(marker) {
		return levelSubsection
	}
	if isAllUpper(marker) {
		return levelClause
	}
	if len(marker) == 1 {
		switch marker {
		case "i", "v", "x":
			return levelSubparagraph
		default:
			return levelParagraph
		}
	}
	return levelSubparagraph
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
		hasLetter = true
	}
	return hasLetter
}
