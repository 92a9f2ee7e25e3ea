package leghydrate

import (
	"context"
	"strings"

	"github.com/sprice/legrag/pkg/legstore"
	"github.com/sprice/legrag/pkg/legtypes"
)

// Hydrate dispatches on sourceType, fetches the canonical record(s) for
// id, and renders bilingual markdown in the caller's preferred
// language. It returns nil on any failure or unrecognized sourceType;
// hydration is always best-effort. primary resolves the
// parliament-adapter-owned kinds (bill, vote, committee, politician,
// party, riding, hansard); a nil primary means those kinds hydrate to
// nil rather than erroring, since legrag ships no concrete adapter.
func Hydrate(ctx context.Context, pool *legstore.Pool, primary PrimarySourceStore, sourceType legtypes.SourceType, id string, preferred legtypes.Language) *Result {
	switch sourceType {
	case legtypes.SourceTypeAct:
		byLang, err := legstore.FetchDocumentBilingual(ctx, pool, legtypes.DocumentKindAct, id)
		if err != nil {
			return nil
		}
		return HydrateDocument(byLang, preferred)

	case legtypes.SourceTypeRegulation:
		byLang, err := legstore.FetchDocumentBilingual(ctx, pool, legtypes.DocumentKindRegulation, id)
		if err != nil {
			return nil
		}
		return HydrateDocument(byLang, preferred)

	case legtypes.SourceTypeActSection, legtypes.SourceTypeRegulationSection:
		return hydrateSectionByKey(ctx, pool, sourceType, id, preferred)

	case legtypes.SourceTypeBill:
		if primary == nil {
			return nil
		}
		b, err := primary.FetchBill(ctx, id)
		if err != nil || b == nil {
			return nil
		}
		return HydrateBill(*b, preferred)

	case legtypes.SourceTypeVote:
		if primary == nil {
			return nil
		}
		v, err := primary.FetchVote(ctx, id)
		if err != nil || v == nil {
			return nil
		}
		return HydrateVote(*v, preferred)

	case legtypes.SourceTypeCommittee:
		if primary == nil {
			return nil
		}
		c, err := primary.FetchCommittee(ctx, id)
		if err != nil || c == nil {
			return nil
		}
		return HydrateCommittee(*c, preferred)

	case legtypes.SourceTypePolitician:
		if primary == nil {
			return nil
		}
		p, err := primary.FetchPolitician(ctx, id)
		if err != nil || p == nil {
			return nil
		}
		return HydratePolitician(*p, preferred)

	case legtypes.SourceTypeParty:
		if primary == nil {
			return nil
		}
		p, err := primary.FetchParty(ctx, id)
		if err != nil || p == nil {
			return nil
		}
		return HydrateParty(*p, preferred)

	case legtypes.SourceTypeRiding:
		if primary == nil {
			return nil
		}
		r, err := primary.FetchRiding(ctx, id)
		if err != nil || r == nil {
			return nil
		}
		return HydrateRiding(*r, preferred)

	case legtypes.SourceTypeHansard:
		if primary == nil {
			return nil
		}
		h, err := primary.FetchHansard(ctx, id)
		if err != nil || h == nil {
			return nil
		}
		return HydrateHansard(*h, preferred)

	default:
		return nil
	}
}

// hydrateSectionByKey expects id to be a canonical_section_id of the
// form "{actOrRegId}/{lang}/s{label}[/suffix]" as produced by the parser,
// so it can recover the (actId or regulationId, sectionLabel) pair needed
// to fetch the sibling-language row.
func hydrateSectionByKey(ctx context.Context, pool *legstore.Pool, sourceType legtypes.SourceType, canonicalSectionID string, preferred legtypes.Language) *Result {
	actID, regulationID, label, ok := splitCanonicalSectionID(sourceType, canonicalSectionID)
	if !ok {
		return nil
	}
	byLang, err := legstore.FetchSectionBilingual(ctx, pool, actID, regulationID, label)
	if err != nil {
		return nil
	}
	return HydrateSection(byLang, preferred)
}

// splitCanonicalSectionID parses "{id}/{lang}/[s]{label}[/suffix]" into
// its parts, attributing id to actId or regulationId by sourceType. The
// id may itself contain slashes (e.g. "SOR/2007-151"); the last "/en/"
// or "/fr/" separates it from the label.
func splitCanonicalSectionID(sourceType legtypes.SourceType, canonicalSectionID string) (actID, regulationID, label string, ok bool) {
	i := strings.LastIndex(canonicalSectionID, "/en/")
	if j := strings.LastIndex(canonicalSectionID, "/fr/"); j > i {
		i = j
	}
	if i <= 0 || i+len("/en/") >= len(canonicalSectionID) {
		return "", "", "", false
	}
	id := canonicalSectionID[:i]
	label, _, _ = strings.Cut(canonicalSectionID[i+len("/en/"):], "/")
	label = strings.TrimPrefix(label, "s")
	if sourceType == legtypes.SourceTypeRegulationSection {
		return "", id, label, true
	}
	return id, "", label, true
}

// splitN3 splits s into exactly 3 parts on sep, or returns nil.
func splitN3(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	if len(parts) != 3 {
		return nil
	}
	return parts
}
