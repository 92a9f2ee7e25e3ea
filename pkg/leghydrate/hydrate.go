// Package leghydrate renders the canonical record behind a search result
// as bilingual markdown, falling back to the other language when a
// field is missing in the caller's preferred one.
package leghydrate

import (
	"fmt"

	"github.com/sprice/legrag/pkg/legtypes"
)

// Result is what a hydrator returns: the rendered markdown, which
// language was actually used, the entity id, and an optional note
// recording a language fallback. A nil Result means hydration failed;
// the caller treats hydration as best-effort and proceeds without it.
type Result struct {
	Markdown     string
	LanguageUsed legtypes.Language
	ID           string
	Note         string
}

// pick returns the preferred language's value if non-empty, else the
// other language's value with fellBack set; both empty returns
// ("", preferred, false).
func pick(en, fr string, preferred legtypes.Language) (value string, used legtypes.Language, fellBack bool) {
	first, second := en, fr
	firstLang, secondLang := legtypes.LanguageEN, legtypes.LanguageFR
	if preferred == legtypes.LanguageFR {
		first, second = fr, en
		firstLang, secondLang = legtypes.LanguageFR, legtypes.LanguageEN
	}
	if first != "" {
		return first, firstLang, false
	}
	if second != "" {
		return second, secondLang, true
	}
	return "", preferred, false
}

// HydrateDocument renders bilingual markdown for an act or regulation,
// given both language rows (either may be the zero value if that
// language's row does not exist).
func HydrateDocument(byLang map[legtypes.Language]legtypes.Document, preferred legtypes.Language) *Result {
	en := byLang[legtypes.LanguageEN]
	fr := byLang[legtypes.LanguageFR]

	title, lang, fellBack := pick(en.Title(), fr.Title(), preferred)
	if title == "" {
		return nil
	}

	doc := en
	if lang == legtypes.LanguageFR {
		doc = fr
	}

	var sb stringsBuilder
	sb.WriteLine("# " + title)
	if doc.Kind == legtypes.DocumentKindAct && doc.Act != nil {
		sb.WriteLine("")
		sb.WriteLine(doc.Act.LongTitle)
		sb.WriteLine("")
		sb.WriteLine(fmt.Sprintf("Status: %s", statusLabel(doc.Act.Status, lang)))
		if doc.Act.EnactedDate != "" {
			sb.WriteLine(fmt.Sprintf("Enacted: %s", doc.Act.EnactedDate))
		}
		if doc.Act.BillOrigin != "" {
			sb.WriteLine(fmt.Sprintf("Bill origin: %s", billOriginLabel(doc.Act.BillOrigin, lang)))
		}
	} else if doc.Kind == legtypes.DocumentKindRegulation && doc.Regulation != nil {
		sb.WriteLine("")
		sb.WriteLine(doc.Regulation.LongTitle)
		sb.WriteLine("")
		sb.WriteLine(fmt.Sprintf("Status: %s", statusLabel(doc.Regulation.Status, lang)))
		if doc.Regulation.RegistrationDate != "" {
			sb.WriteLine(fmt.Sprintf("Registered: %s", doc.Regulation.RegistrationDate))
		}
		if doc.Regulation.EnablingActTitle != "" {
			sb.WriteLine(fmt.Sprintf("Enabling act: %s", doc.Regulation.EnablingActTitle))
		}
	}

	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: doc.ParentID()}
	if fellBack {
		result.Note = fallbackNote(lang)
	}
	return result
}

// HydrateSection renders bilingual markdown for one section, given both
// language rows.
func HydrateSection(byLang map[legtypes.Language]legtypes.Section, preferred legtypes.Language) *Result {
	en := byLang[legtypes.LanguageEN]
	fr := byLang[legtypes.LanguageFR]

	content, lang, fellBack := pick(en.Content, fr.Content, preferred)
	if content == "" {
		return nil
	}
	section := en
	if lang == legtypes.LanguageFR {
		section = fr
	}

	var sb stringsBuilder
	heading := "Section " + section.SectionLabel
	if section.MarginalNote != "" {
		heading += ": " + section.MarginalNote
	}
	sb.WriteLine("# " + heading)
	sb.WriteLine("")
	sb.WriteLine(content)
	sb.WriteLine("")
	sb.WriteLine(fmt.Sprintf("Status: %s", statusLabel(section.Status, lang)))

	id := section.CanonicalSectionID
	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: id}
	if fellBack {
		result.Note = fallbackNote(lang)
	}
	return result
}

func statusLabel(status legtypes.Status, lang legtypes.Language) string {
	if lang != legtypes.LanguageFR {
		return string(status)
	}
	switch status {
	case legtypes.StatusInForce:
		return "en vigueur"
	case legtypes.StatusNotInForce:
		return "pas en vigueur"
	case legtypes.StatusRepealed:
		return "abrogé"
	default:
		return string(status)
	}
}

// billOriginLabel renders the originating chamber, localizing "senate"
// as "Sénat" in French per the French-equivalent decision for
// billOrigin.
func billOriginLabel(origin legtypes.BillOrigin, lang legtypes.Language) string {
	if origin == legtypes.BillOriginSenate && lang == legtypes.LanguageFR {
		return "Sénat"
	}
	if origin == legtypes.BillOriginSenate {
		return "Senate"
	}
	if lang == legtypes.LanguageFR {
		return "Chambre des communes"
	}
	return "House of Commons"
}

func fallbackNote(used legtypes.Language) string {
	if used == legtypes.LanguageFR {
		return "requested language unavailable; rendered in French"
	}
	return "requested language unavailable; rendered in English"
}
