package legcite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sprice/legrag/pkg/legtypes"
)

// BaseURL is the fixed host every legislation citation links against.
const BaseURL = "https://laws-lois.justice.gc.ca"

// pathSegments holds the three URL path components that differ between
// English and French: acts, regulations, and annual statutes.
type pathSegments struct {
	acts           string
	regulations    string
	annualStatutes string
}

var pathsByLanguage = map[legtypes.Language]pathSegments{
	legtypes.LanguageEN: {acts: "acts", regulations: "regulations", annualStatutes: "annualStatutes"},
	legtypes.LanguageFR: {acts: "lois", regulations: "reglements", annualStatutes: "LoisAnnuelles"},
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SectionAnchor derives the URL fragment for a section label by stripping
// non-alphanumerics and prefixing "sec", e.g. "1.1" -> "sec11".
func SectionAnchor(sectionLabel string) string {
	return "sec" + nonAlphanumeric.ReplaceAllString(sectionLabel, "")
}

// documentURL builds the canonical document URL for either an act or a
// regulation, in one language.
func documentURL(id string, lang legtypes.Language, kind legtypes.DocumentKind) string {
	segs := pathsByLanguage[lang]
	langTag := "eng"
	if lang == legtypes.LanguageFR {
		langTag = "fra"
	}
	section := segs.acts
	if kind == legtypes.DocumentKindRegulation {
		section = segs.regulations
	}
	return fmt.Sprintf("%s/%s/%s/%s/index.html", BaseURL, langTag, section, id)
}

// DocumentURL builds the bilingual pair of document URLs for a document,
// keyed by language, so the renderer can pick one at display time without
// having to reconstruct the other.
func DocumentURL(id string, kind legtypes.DocumentKind) map[legtypes.Language]string {
	return map[legtypes.Language]string{
		legtypes.LanguageEN: documentURL(id, legtypes.LanguageEN, kind),
		legtypes.LanguageFR: documentURL(id, legtypes.LanguageFR, kind),
	}
}

// SectionURL builds the bilingual pair of section-anchored URLs.
func SectionURL(id, sectionLabel string, kind legtypes.DocumentKind) map[legtypes.Language]string {
	anchor := SectionAnchor(sectionLabel)
	out := make(map[legtypes.Language]string, 2)
	for lang, base := range DocumentURL(id, kind) {
		out[lang] = fmt.Sprintf("%s#%s", strings.TrimSuffix(base, "/index.html"), anchor)
	}
	return out
}

// AnnualStatuteURL builds the bilingual pair of URLs for an amendment
// citation's annual-statute source, e.g. "2023, c. 8, s. 46".
func AnnualStatuteURL(a *Amendment) map[legtypes.Language]string {
	out := make(map[legtypes.Language]string, 2)
	for lang, segs := range pathsByLanguage {
		langTag := "eng"
		if lang == legtypes.LanguageFR {
			langTag = "fra"
		}
		out[lang] = fmt.Sprintf("%s/%s/%s/%d/c%d/index.html", BaseURL, langTag, segs.annualStatutes, a.Year, a.Chapter)
	}
	return out
}
