package leghydrate

import (
	"context"
	"fmt"

	"github.com/sprice/legrag/pkg/legtypes"
)

// PrimarySourceStore fetches the primary-source records owned by the
// out-of-scope parliament ingestion adapters. legrag carries no
// concrete adapter; a caller that wires one in (e.g. against a
// Represent/LEGISinfo-backed store) satisfies this interface and passes
// it to Hydrate. A nil store means hydration of these kinds is a no-op.
type PrimarySourceStore interface {
	FetchBill(ctx context.Context, id string) (*legtypes.Bill, error)
	FetchVote(ctx context.Context, id string) (*legtypes.Vote, error)
	FetchCommittee(ctx context.Context, id string) (*legtypes.Committee, error)
	FetchPolitician(ctx context.Context, id string) (*legtypes.Politician, error)
	FetchParty(ctx context.Context, id string) (*legtypes.Party, error)
	FetchRiding(ctx context.Context, id string) (*legtypes.Riding, error)
	FetchHansard(ctx context.Context, id string) (*legtypes.Hansard, error)
}

// label picks the French or English form of a bilingual UI label.
func label(en, fr string, lang legtypes.Language) string {
	if lang == legtypes.LanguageFR {
		return fr
	}
	return en
}

// HydrateBill renders a bill record as markdown.
func HydrateBill(b legtypes.Bill, preferred legtypes.Language) *Result {
	title, lang, fellBack := pick(b.Title, b.TitleFR, preferred)
	if title == "" {
		return nil
	}
	var sb stringsBuilder
	sb.WriteLine(fmt.Sprintf("# %s: %s", b.Number, title))
	sb.WriteLine("")
	if b.Sponsor != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Sponsor", "Parrain", lang), b.Sponsor))
	}
	if b.Status != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Status", "Statut", lang), b.Status))
	}
	if b.IntroducedDate != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Introduced", "Présentation", lang), b.IntroducedDate))
	}
	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: b.ID}
	if fellBack {
		result.Note = fallbackNote(lang)
	}
	return result
}

// HydrateVote renders a recorded division vote as markdown.
func HydrateVote(v legtypes.Vote, preferred legtypes.Language) *Result {
	description, lang, fellBack := pick(v.Description, v.DescriptionFR, preferred)
	if description == "" {
		return nil
	}
	var sb stringsBuilder
	sb.WriteLine(fmt.Sprintf("# %s %d", label("Vote", "Vote", lang), v.Number))
	sb.WriteLine("")
	sb.WriteLine(description)
	sb.WriteLine("")
	if v.Result != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Result", "Résultat", lang), v.Result))
	}
	if v.Date != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Date", "Date", lang), v.Date))
	}
	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: v.ID}
	if fellBack {
		result.Note = fallbackNote(lang)
	}
	return result
}

// HydrateCommittee renders a committee record as markdown.
func HydrateCommittee(c legtypes.Committee, preferred legtypes.Language) *Result {
	name, lang, fellBack := pick(c.Name, c.NameFR, preferred)
	if name == "" {
		return nil
	}
	var sb stringsBuilder
	sb.WriteLine("# " + name)
	sb.WriteLine("")
	if c.Chamber != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Chamber", "Chambre", lang), c.Chamber))
	}
	if c.Mandate != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Mandate", "Mandat", lang), c.Mandate))
	}
	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: c.ID}
	if fellBack {
		result.Note = fallbackNote(lang)
	}
	return result
}

// HydratePolitician renders a member-of-Parliament or senator record as
// markdown. A politician's name is not translated, so there is no
// language fallback to report here, only localized field labels.
func HydratePolitician(p legtypes.Politician, preferred legtypes.Language) *Result {
	if p.Name == "" {
		return nil
	}
	var sb stringsBuilder
	sb.WriteLine("# " + p.Name)
	sb.WriteLine("")
	if p.Party != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Party", "Parti", preferred), p.Party))
	}
	if p.Riding != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Riding", "Circonscription", preferred), p.Riding))
	}
	if p.Province != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Province", "Province", preferred), p.Province))
	}
	return &Result{Markdown: sb.String(), LanguageUsed: preferred, ID: p.ID}
}

// HydrateParty renders a federal political party record as markdown.
func HydrateParty(p legtypes.Party, preferred legtypes.Language) *Result {
	name, lang, fellBack := pick(p.Name, p.NameFR, preferred)
	if name == "" {
		return nil
	}
	var sb stringsBuilder
	sb.WriteLine("# " + name)
	if p.ShortName != "" {
		sb.WriteLine("")
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Short name", "Abréviation", lang), p.ShortName))
	}
	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: p.ID}
	if fellBack {
		result.Note = fallbackNote(lang)
	}
	return result
}

// HydrateRiding renders a federal electoral district record as markdown.
func HydrateRiding(r legtypes.Riding, preferred legtypes.Language) *Result {
	name, lang, fellBack := pick(r.Name, r.NameFR, preferred)
	if name == "" {
		return nil
	}
	var sb stringsBuilder
	sb.WriteLine("# " + name)
	if r.Province != "" {
		sb.WriteLine("")
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Province", "Province", lang), r.Province))
	}
	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: r.ID}
	if fellBack {
		result.Note = fallbackNote(lang)
	}
	return result
}

// HydrateHansard renders a Hansard debates excerpt as markdown. The
// excerpt was recorded in whichever language the speaker used, so there
// is no bilingual fallback: the record's own Language is authoritative.
func HydrateHansard(h legtypes.Hansard, preferred legtypes.Language) *Result {
	if h.Excerpt == "" {
		return nil
	}
	lang := h.Language
	var sb stringsBuilder
	sb.WriteLine(fmt.Sprintf("# %s — %s", label("Hansard", "Hansard", lang), h.Date))
	sb.WriteLine("")
	if h.Speaker != "" {
		sb.WriteLine(fmt.Sprintf("%s: %s", label("Speaker", "Intervenant", lang), h.Speaker))
	}
	sb.WriteLine("")
	sb.WriteLine(h.Excerpt)
	result := &Result{Markdown: sb.String(), LanguageUsed: lang, ID: h.ID}
	if lang != preferred {
		result.Note = fallbackNote(lang)
	}
	return result
}
