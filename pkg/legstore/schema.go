// Package legstore persists parsed legislation, defined terms, cross
// references, and their derived chunks/embeddings over Postgres with
// pgvector. Every write takes a pgx.Tx so the caller controls the
// transaction boundary: persistence of one embedding batch is one
// transaction, per the pipeline's concurrency model.
package legstore

// Schema is the DDL for the relational store. It is not applied by a
// migration tool — this repo has none — and exists as documentation and
// a test-fixture bootstrap: callers run it once against a fresh
// database (or a throwaway test database) before exercising the store.
const Schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS acts (
	id                            TEXT NOT NULL,
	language                      TEXT NOT NULL,
	title                         TEXT NOT NULL,
	long_title                    TEXT,
	running_head                  TEXT,
	short_title_status            TEXT,
	status                        TEXT NOT NULL,
	in_force_date                 TEXT,
	enacted_date                  TEXT,
	last_amended_date             TEXT,
	consolidation_date            TEXT,
	bill_origin                   TEXT,
	bill_type                     TEXT,
	consolidated_number           TEXT NOT NULL,
	consolidated_number_official  BOOLEAN NOT NULL DEFAULT false,
	annual_statute_year           TEXT,
	annual_statute_chapter        TEXT,
	has_previous_version          BOOLEAN NOT NULL DEFAULT false,
	PRIMARY KEY (id, language)
);

CREATE TABLE IF NOT EXISTS regulations (
	id                     TEXT NOT NULL,
	language               TEXT NOT NULL,
	instrument_number      TEXT NOT NULL,
	regulation_type        TEXT,
	gazette_part           TEXT,
	title                  TEXT NOT NULL,
	long_title             TEXT,
	enabling_act_id        TEXT,
	enabling_act_title     TEXT,
	status                 TEXT NOT NULL,
	registration_date      TEXT,
	consolidation_date     TEXT,
	last_amended_date      TEXT,
	regulation_maker_order TEXT,
	has_previous_version   BOOLEAN NOT NULL DEFAULT false,
	PRIMARY KEY (id, language)
);

CREATE TABLE IF NOT EXISTS sections (
	id                     TEXT NOT NULL,
	act_id                 TEXT,
	regulation_id          TEXT,
	language               TEXT NOT NULL,
	canonical_section_id   TEXT NOT NULL,
	section_label          TEXT NOT NULL,
	section_order          INTEGER NOT NULL,
	section_type           TEXT NOT NULL,
	hierarchy_path         TEXT[] NOT NULL DEFAULT '{}',
	marginal_note          TEXT,
	content                TEXT NOT NULL,
	content_html           TEXT NOT NULL,
	status                 TEXT NOT NULL,
	schedule_id            TEXT,
	content_flags          INTEGER NOT NULL DEFAULT 0,
	in_force_start_date    TEXT,
	last_amended_date      TEXT,
	PRIMARY KEY (canonical_section_id)
);

CREATE TABLE IF NOT EXISTS defined_terms (
	id              BIGSERIAL PRIMARY KEY,
	act_id          TEXT,
	regulation_id   TEXT,
	language        TEXT NOT NULL,
	term            TEXT NOT NULL,
	paired_term     TEXT,
	section_label   TEXT,
	scope_type      TEXT NOT NULL,
	scope_sections  TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS cross_references (
	id                    BIGSERIAL PRIMARY KEY,
	source_act_id         TEXT,
	source_regulation_id  TEXT,
	source_section_label  TEXT,
	target_type           TEXT NOT NULL,
	target_ref            TEXT NOT NULL,
	reference_text        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS leg_resources (
	id                   BIGSERIAL PRIMARY KEY,
	resource_key         TEXT NOT NULL UNIQUE,
	source_type          TEXT NOT NULL,
	language             TEXT NOT NULL,
	metadata             JSONB NOT NULL DEFAULT '{}',
	paired_resource_key  TEXT
);

CREATE INDEX IF NOT EXISTS leg_resources_metadata_gin ON leg_resources USING GIN (metadata);
CREATE INDEX IF NOT EXISTS leg_resources_status_idx ON leg_resources ((metadata->>'status'));
CREATE INDEX IF NOT EXISTS leg_resources_act_id_idx ON leg_resources ((metadata->>'actId'));
CREATE INDEX IF NOT EXISTS leg_resources_regulation_id_idx ON leg_resources ((metadata->>'regulationId'));
CREATE INDEX IF NOT EXISTS leg_resources_section_label_idx ON leg_resources ((metadata->>'sectionLabel'));

CREATE TABLE IF NOT EXISTS leg_embeddings (
	id               BIGSERIAL PRIMARY KEY,
	resource_id      BIGINT NOT NULL UNIQUE REFERENCES leg_resources(id) ON DELETE CASCADE,
	content          TEXT NOT NULL,
	embedding        vector(1024),
	embedding_model  TEXT NOT NULL,
	tsv              tsvector GENERATED ALWAYS AS (to_tsvector('english', content)) STORED
);

CREATE INDEX IF NOT EXISTS leg_embeddings_hnsw ON leg_embeddings USING hnsw (embedding vector_cosine_ops);
CREATE INDEX IF NOT EXISTS leg_embeddings_tsv_gin ON leg_embeddings USING GIN (tsv);
`
