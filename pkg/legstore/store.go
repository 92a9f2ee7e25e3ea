package legstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/sprice/legrag/pkg/legerrors"
	"github.com/sprice/legrag/pkg/legtypes"
)

// Pool is the process-wide connection pool type. Lifecycle is explicit:
// Connect lazily dials on first use, Close is called once by the CLI on
// process exit.
type Pool = pgxpool.Pool

// Connect dials the database and returns a ready pool.
func Connect(ctx context.Context, dsn string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("legstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("legstore: ping: %w", err)
	}
	return pool, nil
}

// SaveDocument upserts a parsed act or regulation's identification
// fields within tx.
func SaveDocument(ctx context.Context, tx pgx.Tx, doc legtypes.Document) error {
	switch doc.Kind {
	case legtypes.DocumentKindAct:
		return saveAct(ctx, tx, doc.Language, doc.Act)
	case legtypes.DocumentKindRegulation:
		return saveRegulation(ctx, tx, doc.Language, doc.Regulation)
	default:
		return fmt.Errorf("legstore: %w: unknown document kind %q", legerrors.ErrDBTransaction, doc.Kind)
	}
}

func saveAct(ctx context.Context, tx pgx.Tx, lang legtypes.Language, a *legtypes.ActFields) error {
	if a == nil {
		return fmt.Errorf("legstore: %w: act fields nil", legerrors.ErrDBTransaction)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO acts (id, language, title, long_title, running_head, short_title_status,
			status, in_force_date, enacted_date, last_amended_date, consolidation_date,
			bill_origin, bill_type, consolidated_number, consolidated_number_official,
			annual_statute_year, annual_statute_chapter, has_previous_version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (id, language) DO UPDATE SET
			title = EXCLUDED.title, long_title = EXCLUDED.long_title,
			running_head = EXCLUDED.running_head, short_title_status = EXCLUDED.short_title_status,
			status = EXCLUDED.status, in_force_date = EXCLUDED.in_force_date,
			enacted_date = EXCLUDED.enacted_date, last_amended_date = EXCLUDED.last_amended_date,
			consolidation_date = EXCLUDED.consolidation_date, bill_origin = EXCLUDED.bill_origin,
			bill_type = EXCLUDED.bill_type, consolidated_number_official = EXCLUDED.consolidated_number_official,
			annual_statute_year = EXCLUDED.annual_statute_year,
			annual_statute_chapter = EXCLUDED.annual_statute_chapter,
			has_previous_version = EXCLUDED.has_previous_version`,
		a.ActID, lang, a.Title, a.LongTitle, a.RunningHead, a.ShortTitleStatus,
		a.Status, a.InForceDate, a.EnactedDate, a.LastAmendedDate, a.ConsolidationDate,
		a.BillOrigin, a.BillType, a.ConsolidatedNumber, a.ConsolidatedNumberOfficial,
		a.AnnualStatuteYear, a.AnnualStatuteChapter, a.HasPreviousVersion)
	if err != nil {
		return fmt.Errorf("legstore: save act %s: %w", a.ActID, err)
	}
	return nil
}

func saveRegulation(ctx context.Context, tx pgx.Tx, lang legtypes.Language, r *legtypes.RegulationFields) error {
	if r == nil {
		return fmt.Errorf("legstore: %w: regulation fields nil", legerrors.ErrDBTransaction)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO regulations (id, language, instrument_number, regulation_type, gazette_part,
			title, long_title, enabling_act_id, enabling_act_title, status, registration_date,
			consolidation_date, last_amended_date, regulation_maker_order, has_previous_version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id, language) DO UPDATE SET
			instrument_number = EXCLUDED.instrument_number, regulation_type = EXCLUDED.regulation_type,
			gazette_part = EXCLUDED.gazette_part, title = EXCLUDED.title, long_title = EXCLUDED.long_title,
			enabling_act_id = EXCLUDED.enabling_act_id, enabling_act_title = EXCLUDED.enabling_act_title,
			status = EXCLUDED.status, registration_date = EXCLUDED.registration_date,
			consolidation_date = EXCLUDED.consolidation_date, last_amended_date = EXCLUDED.last_amended_date,
			regulation_maker_order = EXCLUDED.regulation_maker_order,
			has_previous_version = EXCLUDED.has_previous_version`,
		r.RegulationID, lang, r.InstrumentNumber, r.RegulationType, r.GazettePart,
		r.Title, r.LongTitle, r.EnablingActID, r.EnablingActTitle, r.Status, r.RegistrationDate,
		r.ConsolidationDate, r.LastAmendedDate, r.RegulationMakerOrder, r.HasPreviousVersion)
	if err != nil {
		return fmt.Errorf("legstore: save regulation %s: %w", r.RegulationID, err)
	}
	return nil
}

// SaveSections upserts every section in sections within tx.
func SaveSections(ctx context.Context, tx pgx.Tx, sections []legtypes.Section) error {
	for _, s := range sections {
		_, err := tx.Exec(ctx, `
			INSERT INTO sections (id, act_id, regulation_id, language, canonical_section_id,
				section_label, section_order, section_type, hierarchy_path, marginal_note,
				content, content_html, status, schedule_id, content_flags,
				in_force_start_date, last_amended_date)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
			ON CONFLICT (canonical_section_id) DO UPDATE SET
				content = EXCLUDED.content, content_html = EXCLUDED.content_html,
				status = EXCLUDED.status, content_flags = EXCLUDED.content_flags,
				in_force_start_date = EXCLUDED.in_force_start_date,
				last_amended_date = EXCLUDED.last_amended_date`,
			s.CanonicalSectionID, s.ActID, s.RegulationID, s.Language, s.CanonicalSectionID,
			s.SectionLabel, s.SectionOrder, s.SectionType, s.HierarchyPath, s.MarginalNote,
			s.Content, s.ContentHTML, s.Status, s.ScheduleID, uint32(s.ContentFlags),
			s.InForceStartDate, s.LastAmendedDate)
		if err != nil {
			return fmt.Errorf("legstore: save section %s: %w", s.CanonicalSectionID, err)
		}
	}
	return nil
}

// SaveDefinedTerms inserts defined terms harvested from a parse. Terms
// are append-only: a re-import truncates and reinserts per document, so
// callers are expected to delete prior rows for the document first (see
// DeleteDefinedTermsForDocument).
func SaveDefinedTerms(ctx context.Context, tx pgx.Tx, terms []legtypes.DefinedTerm) error {
	for _, t := range terms {
		_, err := tx.Exec(ctx, `
			INSERT INTO defined_terms (act_id, regulation_id, language, term, paired_term,
				section_label, scope_type, scope_sections)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			t.ActID, t.RegulationID, t.Language, t.Term, t.PairedTerm,
			t.SectionLabel, t.ScopeType, t.ScopeSections)
		if err != nil {
			return fmt.Errorf("legstore: save defined term %q: %w", t.Term, err)
		}
	}
	return nil
}

// SaveCrossReferences inserts cross-references harvested from a parse.
func SaveCrossReferences(ctx context.Context, tx pgx.Tx, refs []legtypes.CrossReference) error {
	for _, r := range refs {
		_, err := tx.Exec(ctx, `
			INSERT INTO cross_references (source_act_id, source_regulation_id,
				source_section_label, target_type, target_ref, reference_text)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			r.SourceActID, r.SourceRegulationID, r.SourceSectionLabel,
			r.TargetType, r.TargetRef, r.ReferenceText)
		if err != nil {
			return fmt.Errorf("legstore: save cross reference %s: %w", r.TargetRef, err)
		}
	}
	return nil
}

// DeleteDefinedTermsForDocument clears prior terms for a document before
// a re-import writes fresh ones.
func DeleteDefinedTermsForDocument(ctx context.Context, tx pgx.Tx, actID, regulationID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM defined_terms WHERE act_id = $1 OR regulation_id = $2`, actID, regulationID)
	return err
}

// SaveResource upserts a leg_resources row on resource_key and returns
// its id.
func SaveResource(ctx context.Context, tx pgx.Tx, res legtypes.Resource) (int64, error) {
	metadata, err := json.Marshal(res.Metadata)
	if err != nil {
		return 0, fmt.Errorf("legstore: marshal resource metadata for %s: %w", res.ResourceKey, err)
	}
	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO leg_resources (resource_key, source_type, language, metadata, paired_resource_key)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (resource_key) DO UPDATE SET
			metadata = EXCLUDED.metadata, paired_resource_key = EXCLUDED.paired_resource_key
		RETURNING id`,
		res.ResourceKey, res.SourceType, res.Language, metadata, res.PairedResourceKey).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("legstore: save resource %s: %w", res.ResourceKey, err)
	}
	return id, nil
}

// SaveEmbedding inserts or replaces the embedding row for a resource.
// The vector is validated by the embedding pipeline before this is
// called; legstore trusts its caller's dimensionality.
func SaveEmbedding(ctx context.Context, tx pgx.Tx, resourceID int64, content string, vec []float32, model string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO leg_embeddings (resource_id, content, embedding, embedding_model)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (resource_id) DO UPDATE SET
			content = EXCLUDED.content, embedding = EXCLUDED.embedding,
			embedding_model = EXCLUDED.embedding_model`,
		resourceID, content, pgvector.NewVector(vec), model)
	if err != nil {
		return fmt.Errorf("legstore: save embedding for resource %d: %w", resourceID, err)
	}
	return nil
}

// ReembedRow is one row selected for the re-embedding migration.
type ReembedRow struct {
	ResourceID int64
	Content    string
}

// SelectForReembedding returns rows whose embedding_model matches
// fromModel (or is NULL, when fromModel is empty), up to limit.
func SelectForReembedding(ctx context.Context, pool *Pool, fromModel string, limit int) ([]ReembedRow, error) {
	var rows pgx.Rows
	var err error
	if fromModel == "" {
		rows, err = pool.Query(ctx, `SELECT resource_id, content FROM leg_embeddings WHERE embedding_model IS NULL LIMIT $1`, limit)
	} else {
		rows, err = pool.Query(ctx, `SELECT resource_id, content FROM leg_embeddings WHERE embedding_model = $1 LIMIT $2`, fromModel, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("legstore: select for reembedding: %w", err)
	}
	defer rows.Close()

	var out []ReembedRow
	for rows.Next() {
		var r ReembedRow
		if err := rows.Scan(&r.ResourceID, &r.Content); err != nil {
			return nil, fmt.Errorf("legstore: scan reembed row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateEmbeddingModel rewrites an embedding's vector and model within a
// re-embedding migration transaction.
func UpdateEmbeddingModel(ctx context.Context, tx pgx.Tx, resourceID int64, vec []float32, toModel string) error {
	_, err := tx.Exec(ctx, `UPDATE leg_embeddings SET embedding = $1, embedding_model = $2 WHERE resource_id = $3`,
		pgvector.NewVector(vec), toModel, resourceID)
	if err != nil {
		return fmt.Errorf("legstore: update embedding model for resource %d: %w", resourceID, err)
	}
	return nil
}

// FetchDocumentBilingual loads both language rows for an act or
// regulation id, keyed by language, for hydration's any-language
// fallback. Kind selects which table is queried.
func FetchDocumentBilingual(ctx context.Context, pool *Pool, kind legtypes.DocumentKind, id string) (map[legtypes.Language]legtypes.Document, error) {
	if kind == legtypes.DocumentKindRegulation {
		return fetchRegulationBilingual(ctx, pool, id)
	}
	return fetchActBilingual(ctx, pool, id)
}

func fetchActBilingual(ctx context.Context, pool *Pool, id string) (map[legtypes.Language]legtypes.Document, error) {
	rows, err := pool.Query(ctx, `
		SELECT language, title, long_title, status, in_force_date, enacted_date, bill_origin
		FROM acts WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("legstore: fetch act bilingual %s: %w", id, err)
	}
	defer rows.Close()

	out := make(map[legtypes.Language]legtypes.Document)
	for rows.Next() {
		a := &legtypes.ActFields{ActID: id}
		var lang legtypes.Language
		if err := rows.Scan(&lang, &a.Title, &a.LongTitle, &a.Status, &a.InForceDate, &a.EnactedDate, &a.BillOrigin); err != nil {
			return nil, fmt.Errorf("legstore: scan act row: %w", err)
		}
		out[lang] = legtypes.Document{Kind: legtypes.DocumentKindAct, Language: lang, Act: a}
	}
	return out, rows.Err()
}

func fetchRegulationBilingual(ctx context.Context, pool *Pool, id string) (map[legtypes.Language]legtypes.Document, error) {
	rows, err := pool.Query(ctx, `
		SELECT language, title, long_title, status, registration_date, enabling_act_title
		FROM regulations WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("legstore: fetch regulation bilingual %s: %w", id, err)
	}
	defer rows.Close()

	out := make(map[legtypes.Language]legtypes.Document)
	for rows.Next() {
		r := &legtypes.RegulationFields{RegulationID: id}
		var lang legtypes.Language
		if err := rows.Scan(&lang, &r.Title, &r.LongTitle, &r.Status, &r.RegistrationDate, &r.EnablingActTitle); err != nil {
			return nil, fmt.Errorf("legstore: scan regulation row: %w", err)
		}
		out[lang] = legtypes.Document{Kind: legtypes.DocumentKindRegulation, Language: lang, Regulation: r}
	}
	return out, rows.Err()
}

// FetchSectionBilingual loads both language rows sharing a sectionLabel
// under the same act/regulation id, keyed by language.
func FetchSectionBilingual(ctx context.Context, pool *Pool, actID, regulationID, sectionLabel string) (map[legtypes.Language]legtypes.Section, error) {
	rows, err := pool.Query(ctx, `
		SELECT act_id, regulation_id, language, canonical_section_id, section_label,
			section_order, section_type, hierarchy_path, marginal_note, content,
			content_html, status, schedule_id, content_flags, in_force_start_date, last_amended_date
		FROM sections
		WHERE section_label = $1 AND (act_id = $2 OR regulation_id = $3)`, sectionLabel, actID, regulationID)
	if err != nil {
		return nil, fmt.Errorf("legstore: fetch section bilingual %s: %w", sectionLabel, err)
	}
	defer rows.Close()

	out := make(map[legtypes.Language]legtypes.Section)
	for rows.Next() {
		var s legtypes.Section
		var flags uint32
		if err := rows.Scan(&s.ActID, &s.RegulationID, &s.Language, &s.CanonicalSectionID,
			&s.SectionLabel, &s.SectionOrder, &s.SectionType, &s.HierarchyPath, &s.MarginalNote,
			&s.Content, &s.ContentHTML, &s.Status, &s.ScheduleID, &flags,
			&s.InForceStartDate, &s.LastAmendedDate); err != nil {
			return nil, fmt.Errorf("legstore: scan section row: %w", err)
		}
		s.ContentFlags = legtypes.ContentFlags(flags)
		out[s.Language] = s
	}
	return out, rows.Err()
}

// FetchSectionsForDocuments loads every section belonging to any of
// actIDs/regulationIDs in a single query, for batch chunk building.
func FetchSectionsForDocuments(ctx context.Context, pool *Pool, actIDs, regulationIDs []string) ([]legtypes.Section, error) {
	rows, err := pool.Query(ctx, `
		SELECT act_id, regulation_id, language, canonical_section_id, section_label,
			section_order, section_type, hierarchy_path, marginal_note, content,
			content_html, status, schedule_id, content_flags, in_force_start_date, last_amended_date
		FROM sections
		WHERE act_id = ANY($1) OR regulation_id = ANY($2)
		ORDER BY act_id, regulation_id, language, section_order`, actIDs, regulationIDs)
	if err != nil {
		return nil, fmt.Errorf("legstore: fetch sections for batch: %w", err)
	}
	defer rows.Close()

	var out []legtypes.Section
	for rows.Next() {
		var s legtypes.Section
		var flags uint32
		if err := rows.Scan(&s.ActID, &s.RegulationID, &s.Language, &s.CanonicalSectionID,
			&s.SectionLabel, &s.SectionOrder, &s.SectionType, &s.HierarchyPath, &s.MarginalNote,
			&s.Content, &s.ContentHTML, &s.Status, &s.ScheduleID, &flags,
			&s.InForceStartDate, &s.LastAmendedDate); err != nil {
			return nil, fmt.Errorf("legstore: scan section row: %w", err)
		}
		s.ContentFlags = legtypes.ContentFlags(flags)
		out = append(out, s)
	}
	return out, rows.Err()
}

// FetchDefinedTermsForDocuments loads every defined term belonging to
// any of actIDs/regulationIDs, for batch defined-term chunk building.
func FetchDefinedTermsForDocuments(ctx context.Context, pool *Pool, actIDs, regulationIDs []string) ([]legtypes.DefinedTerm, error) {
	rows, err := pool.Query(ctx, `
		SELECT act_id, regulation_id, language, term, paired_term, section_label, scope_type, scope_sections
		FROM defined_terms
		WHERE act_id = ANY($1) OR regulation_id = ANY($2)
		ORDER BY act_id, regulation_id, language, term`, actIDs, regulationIDs)
	if err != nil {
		return nil, fmt.Errorf("legstore: fetch defined terms for batch: %w", err)
	}
	defer rows.Close()

	var out []legtypes.DefinedTerm
	for rows.Next() {
		var t legtypes.DefinedTerm
		if err := rows.Scan(&t.ActID, &t.RegulationID, &t.Language, &t.Term, &t.PairedTerm,
			&t.SectionLabel, &t.ScopeType, &t.ScopeSections); err != nil {
			return nil, fmt.Errorf("legstore: scan defined term row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListDocumentIDs pages through every act or regulation id in id order,
// for embed-legislation's full-corpus batch loop. afterID is the last id
// seen by the prior page ("" for the first page).
func ListDocumentIDs(ctx context.Context, pool *Pool, kind legtypes.DocumentKind, afterID string, limit int) ([]string, error) {
	table := "acts"
	if kind == legtypes.DocumentKindRegulation {
		table = "regulations"
	}
	rows, err := pool.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT id FROM %s WHERE id > $1 ORDER BY id LIMIT $2`, table), afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("legstore: list %s ids: %w", table, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("legstore: scan %s id: %w", table, err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
