// Command legrag imports Canadian federal legislation XML, chunks and
// embeds it, and exposes the operator subcommands described in spec.md
// §6: import-legislation, embed-legislation, reembed,
// check-schema-coverage, audit-xml-schema.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sprice/legrag/pkg/legcatalog"
	"github.com/sprice/legrag/pkg/legchunk"
	"github.com/sprice/legrag/pkg/legcli"
	"github.com/sprice/legrag/pkg/legembed"
	"github.com/sprice/legrag/pkg/legerrors"
	"github.com/sprice/legrag/pkg/legprogress"
	"github.com/sprice/legrag/pkg/legstore"
	"github.com/sprice/legrag/pkg/legtypes"
	"github.com/sprice/legrag/pkg/legxml"
	"github.com/sprice/legrag/pkg/legxml/tree"
)

var version = "0.1.0"

// runtime bundles the process-wide resources a subcommand needs: the DB
// pool (lazily dialed on first use) and the structured logger. Matches
// spec.md §5's "DB connection pool is process-wide... lazy init on
// first access, closed on process exit by the CLI."
type runtime struct {
	logger   *zap.Logger
	dsn      string
	progress string
	pool     *legstore.Pool
}

func (r *runtime) poolConn(ctx context.Context) (*legstore.Pool, error) {
	if r.pool != nil {
		return r.pool, nil
	}
	pool, err := legstore.Connect(ctx, r.dsn)
	if err != nil {
		return nil, err
	}
	r.pool = pool
	return pool, nil
}

func (r *runtime) close() {
	if r.pool != nil {
		r.pool.Close()
	}
	_ = r.logger.Sync()
}

func main() {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:     "legrag",
		Short:   "Ingest, chunk, embed, and retrieve Canadian federal legislation",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger, err := legcli.NewLogger(verbose)
			if err != nil {
				return fmt.Errorf("legrag: build logger: %w", err)
			}
			rt.logger = logger
			rt.dsn, _ = cmd.Flags().GetString("dsn")
			rt.progress, _ = cmd.Flags().GetString("progress-dir")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			rt.close()
			return nil
		},
	}

	rootCmd.PersistentFlags().String("dsn", os.Getenv("LEGRAG_DSN"), "PostgreSQL connection string")
	rootCmd.PersistentFlags().String("progress-dir", ".legrag/progress", "durable progress tracker directory")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose (development) logging")

	rootCmd.AddCommand(importLegislationCmd(rt))
	rootCmd.AddCommand(embedLegislationCmd(rt))
	rootCmd.AddCommand(reembedCmd(rt))
	rootCmd.AddCommand(checkSchemaCoverageCmd(rt))
	rootCmd.AddCommand(auditXMLSchemaCmd(rt))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveLanguage maps a --lang flag value to legtypes.Language,
// defaulting to English.
func resolveLanguage(flag string) legtypes.Language {
	if strings.EqualFold(flag, "fr") {
		return legtypes.LanguageFR
	}
	return legtypes.LanguageEN
}

// parseIDList splits a comma-separated --ids flag, ignoring blanks.
func parseIDList(flag string) []string {
	if flag == "" {
		return nil
	}
	var out []string
	for _, id := range strings.Split(flag, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

func importLegislationCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-legislation",
		Short: "Parse legislation XML and persist acts/regulations/sections",
		Long: `Walks a directory of Justice Canada legislation XML files (per the
lookup.xml catalog), parses each with the LIMS2HTML-aware parser, and
upserts the resulting document/section/defined-term/cross-reference
rows in one transaction per file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			catalogPath, _ := cmd.Flags().GetString("catalog")
			limit, _ := cmd.Flags().GetInt("limit")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			docType, _ := cmd.Flags().GetString("type")
			langFlag, _ := cmd.Flags().GetString("lang")
			idsFlag, _ := cmd.Flags().GetString("ids")
			ids := parseIDList(idsFlag)
			skipExisting, _ := cmd.Flags().GetBool("skip-existing")
			truncate, _ := cmd.Flags().GetBool("truncate")

			start := time.Now()
			summary := legcli.Summary{}

			catalog, err := legcatalog.LoadCatalog(catalogPath)
			if err != nil {
				return fmt.Errorf("legrag: load catalog: %w", err)
			}

			var resolvedIDs []string
			if len(ids) > 0 {
				resolvedIDs, err = catalog.ResolveSubset(ids)
				if err != nil {
					return err
				}
				resolvedIDs = append(resolvedIDs, ids...)
			}

			files, err := discoverLegislationFiles(dir, docType, resolvedIDs)
			if err != nil {
				return fmt.Errorf("legrag: discover files: %w", err)
			}
			if limit > 0 && len(files) > limit {
				files = files[:limit]
			}

			if dryRun {
				fmt.Printf("Dry run: would import %d files\n", len(files))
				return nil
			}

			ctx := cmd.Context()
			pool, err := rt.poolConn(ctx)
			if err != nil {
				return err
			}

			if truncate {
				if err := truncateImportedTables(ctx, pool); err != nil {
					return err
				}
			}

			tracker, err := legprogress.Open(rt.progress)
			if err != nil {
				return fmt.Errorf("legrag: open progress tracker: %w", err)
			}
			defer tracker.Close()

			lang := resolveLanguage(langFlag)
			for _, path := range files {
				importKey := "import:" + filepath.Base(path) + ":" + string(lang)
				if skipExisting {
					done, err := tracker.Has(importKey)
					if err != nil {
						return fmt.Errorf("legrag: check progress: %w", err)
					}
					if done {
						summary.Skipped++
						continue
					}
				}

				parsed, err := legxml.ParseLegislationXML(path, lang)
				if err != nil {
					rt.logger.Warn("parse failed", zap.String("path", path), zap.Error(err))
					summary.Failed++
					continue
				}

				if docType != "" && string(parsed.Type) != docType {
					summary.Skipped++
					continue
				}

				tx, err := pool.Begin(ctx)
				if err != nil {
					return fmt.Errorf("legrag: begin transaction: %w", err)
				}

				if err := persistParsedDocument(ctx, tx, parsed); err != nil {
					_ = tx.Rollback(ctx)
					rt.logger.Warn("persist failed", zap.String("path", path), zap.Error(err))
					summary.Failed++
					continue
				}

				if err := tx.Commit(ctx); err != nil {
					rt.logger.Warn("commit failed", zap.String("path", path), zap.Error(err))
					summary.Failed++
					continue
				}
				if err := tracker.Mark(importKey); err != nil {
					rt.logger.Warn("progress mark failed", zap.String("path", path), zap.Error(err))
				}

				summary.Processed++
				summary.RowsInserted += 1 + len(parsed.Sections) + len(parsed.DefinedTerms) + len(parsed.CrossReferences)
			}

			summary.Duration = time.Since(start)
			fmt.Println(summary.String())
			os.Exit(summary.ExitCode())
			return nil
		},
	}

	cmd.Flags().String("dir", "", "directory of legislation XML files")
	cmd.Flags().String("catalog", "lookup.xml", "path to the lookup.xml catalog")
	cmd.Flags().Int("limit", 0, "maximum number of files to import (0 = no limit)")
	cmd.Flags().Bool("dry-run", false, "print the plan without writing")
	cmd.Flags().String("type", "", "act|regulation (empty = both)")
	cmd.Flags().String("lang", "en", "en|fr")
	cmd.Flags().String("ids", "", "comma-separated act ids to restrict the import to")
	cmd.Flags().Bool("skip-existing", false, "skip files already imported")
	cmd.Flags().Bool("truncate", false, "truncate imported tables before importing")

	return cmd
}

// discoverLegislationFiles walks dir for *.xml files, optionally
// restricted to resolvedIDs (already expanded to filenames by the
// catalog). docType is accepted for symmetry with the other callers but
// filtering on it happens after parsing, since act-vs-regulation is only
// reliably known from the parsed document, not the filename.
func discoverLegislationFiles(dir, docType string, resolvedIDs []string) ([]string, error) {
	allowed := make(map[string]bool, len(resolvedIDs))
	for _, id := range resolvedIDs {
		allowed[id] = true
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}
		base := filepath.Base(path)
		if len(allowed) > 0 && !allowed[base] && !allowed[strings.TrimSuffix(base, ".xml")] {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func truncateImportedTables(ctx context.Context, pool *legstore.Pool) error {
	tables := []string{"cross_references", "defined_terms", "sections", "regulations", "acts"}
	for _, t := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", t)); err != nil {
			return fmt.Errorf("legrag: truncate %s: %w", t, err)
		}
	}
	return nil
}

// persistParsedDocument writes one parsed file's document, sections,
// defined terms, and cross-references within tx. Defined terms are
// cleared first since a re-import must not accumulate duplicates from
// SaveDefinedTerms' append-only insert.
func persistParsedDocument(ctx context.Context, tx pgx.Tx, parsed *legtypes.ParsedDocument) error {
	if parsed.Document == nil {
		return fmt.Errorf("legrag: %w: parsed document missing identification", legerrors.ErrParseFailure)
	}

	if err := legstore.SaveDocument(ctx, tx, *parsed.Document); err != nil {
		return err
	}
	if err := legstore.SaveSections(ctx, tx, parsed.Sections); err != nil {
		return err
	}
	if err := legstore.DeleteDefinedTermsForDocument(ctx, tx, parsed.Document.ParentID(), parsed.Document.ParentID()); err != nil {
		return err
	}
	if err := legstore.SaveDefinedTerms(ctx, tx, parsed.DefinedTerms); err != nil {
		return err
	}
	if err := legstore.SaveCrossReferences(ctx, tx, parsed.CrossReferences); err != nil {
		return err
	}
	return nil
}

// httpEmbedder calls an OpenAI-compatible embeddings endpoint. It is the
// one piece of this binary outside the packages proper: legembed.Embedder
// is an interface precisely so the real HTTP client (out of scope as
// "the LLM client itself") lives only here, in the CLI's wiring.
type httpEmbedder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func newHTTPEmbedder(baseURL, apiKey, model string) *httpEmbedder {
	return &httpEmbedder{client: &http.Client{Timeout: 60 * time.Second}, baseURL: baseURL, apiKey: apiKey, model: model}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (e *httpEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("legrag: encode embedding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("legrag: build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", legerrors.ErrEmbedderTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, &legerrors.FatalEmbedderError{Err: fmt.Errorf("embedding endpoint returned %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: embedding endpoint returned %d", legerrors.ErrEmbedderTransient, resp.StatusCode)
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("legrag: decode embedding response: %w", err)
	}
	vectors := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

func embedLegislationCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed-legislation",
		Short: "Chunk and embed imported acts, regulations, sections, and defined terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceTypeFlag, _ := cmd.Flags().GetString("source-type")
			skipExisting, _ := cmd.Flags().GetBool("skip-existing")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			limit, _ := cmd.Flags().GetInt("limit")
			model, _ := cmd.Flags().GetString("model")
			endpoint, _ := cmd.Flags().GetString("endpoint")

			families := []legtypes.SourceType{
				legtypes.SourceTypeAct, legtypes.SourceTypeRegulation,
				legtypes.SourceTypeActSection, legtypes.SourceTypeRegulationSection,
				legtypes.SourceTypeDefinedTerm,
			}
			if sourceTypeFlag != "" {
				families = []legtypes.SourceType{legtypes.SourceType(sourceTypeFlag)}
			}

			ctx := cmd.Context()
			pool, err := rt.poolConn(ctx)
			if err != nil {
				return err
			}
			tracker, err := legprogress.Open(rt.progress)
			if err != nil {
				return fmt.Errorf("legrag: open progress tracker: %w", err)
			}
			defer tracker.Close()

			pipeline := &legembed.Pipeline{
				Pool:     pool,
				Embedder: newHTTPEmbedder(endpoint, os.Getenv("LEGRAG_EMBEDDING_API_KEY"), model),
				Tracker:  tracker,
				Model:    model,
			}

			start := time.Now()
			summary := legcli.Summary{}

			embedPage := func(family legtypes.SourceType, chunks []legtypes.Chunk) error {
				newChunks, skipped, err := legembed.FilterNewChunks(tracker, chunks, skipExisting)
				if err != nil {
					return err
				}
				summary.Skipped += len(skipped)
				if dryRun {
					summary.Processed += len(newChunks)
					return nil
				}
				for i := 0; i < len(newChunks); i += legembed.EmbeddingBatchSize {
					end := i + legembed.EmbeddingBatchSize
					if end > len(newChunks) {
						end = len(newChunks)
					}
					stats, err := pipeline.EmbedChunks(ctx, newChunks[i:end], nil)
					if err != nil {
						return err
					}
					summary.Processed += stats.ChunksProcessed
					summary.RowsInserted += stats.ChunksProcessed
					summary.Failed += len(stats.Errors)
					for _, e := range stats.Errors {
						rt.logger.Warn("embed batch error", zap.Error(e))
					}
				}
				return nil
			}

			for _, family := range families {
				if err := embedFamilyInPages(ctx, pool, family, limit, embedPage); err != nil {
					return fmt.Errorf("legrag: embed %s: %w", family, err)
				}
			}

			summary.Duration = time.Since(start)
			fmt.Println(summary.String())
			os.Exit(summary.ExitCode())
			return nil
		},
	}

	cmd.Flags().String("source-type", "", "restrict to one resource family: act|regulation|act_section|regulation_section|defined_term")
	cmd.Flags().Bool("skip-existing", true, "skip chunks already embedded per the progress tracker")
	cmd.Flags().Bool("dry-run", false, "count chunks without calling the embedder")
	cmd.Flags().Int("limit", 0, "maximum number of documents to scan per family (0 = no limit)")
	cmd.Flags().String("model", legtypes.DefaultEmbeddingModel, "embedding model name sent to the endpoint")
	cmd.Flags().String("endpoint", "https://api.openai.com/v1", "OpenAI-compatible embeddings endpoint base URL")

	return cmd
}

// embedFamilyInPages drives one resource family a DBFetchBatchSize page
// of document ids at a time: each page's chunks are built, handed to
// onPage (which embeds and persists them), and discarded before the next
// page is fetched. Nothing beyond a single page of documents and their
// chunks is ever held in memory at once.
func embedFamilyInPages(ctx context.Context, pool *legstore.Pool, family legtypes.SourceType, limit int, onPage func(legtypes.SourceType, []legtypes.Chunk) error) error {
	switch family {
	case legtypes.SourceTypeAct, legtypes.SourceTypeRegulation:
		kind := legtypes.DocumentKindAct
		if family == legtypes.SourceTypeRegulation {
			kind = legtypes.DocumentKindRegulation
		}
		return pageDocumentIDs(ctx, pool, kind, limit, func(page []string) error {
			chunks, err := collectDocumentChunksPage(ctx, pool, kind, page)
			if err != nil {
				return err
			}
			return onPage(family, chunks)
		})

	case legtypes.SourceTypeActSection, legtypes.SourceTypeRegulationSection:
		kind := legtypes.DocumentKindAct
		if family == legtypes.SourceTypeRegulationSection {
			kind = legtypes.DocumentKindRegulation
		}
		return pageDocumentIDs(ctx, pool, kind, limit, func(page []string) error {
			chunks, err := collectSectionChunksPage(ctx, pool, kind, page)
			if err != nil {
				return err
			}
			return onPage(family, chunks)
		})

	case legtypes.SourceTypeDefinedTerm:
		if err := pageDocumentIDs(ctx, pool, legtypes.DocumentKindAct, limit, func(page []string) error {
			chunks, err := collectDefinedTermChunksPage(ctx, pool, page, nil)
			if err != nil {
				return err
			}
			return onPage(family, chunks)
		}); err != nil {
			return err
		}
		return pageDocumentIDs(ctx, pool, legtypes.DocumentKindRegulation, limit, func(page []string) error {
			chunks, err := collectDefinedTermChunksPage(ctx, pool, nil, page)
			if err != nil {
				return err
			}
			return onPage(family, chunks)
		})
	}
	return nil
}

// pageDocumentIDs walks legstore.ListDocumentIDs a DBFetchBatchSize page
// at a time, calling fn once per page, until the corpus is exhausted or
// limit documents have been handed to fn (0 = no limit).
func pageDocumentIDs(ctx context.Context, pool *legstore.Pool, kind legtypes.DocumentKind, limit int, fn func(page []string) error) error {
	after := ""
	seen := 0
	for {
		page, err := legstore.ListDocumentIDs(ctx, pool, kind, after, legembed.DBFetchBatchSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		after = page[len(page)-1]
		exhausted := len(page) < legembed.DBFetchBatchSize

		if limit > 0 && seen+len(page) > limit {
			page = page[:limit-seen]
		}
		if len(page) > 0 {
			if err := fn(page); err != nil {
				return err
			}
			seen += len(page)
		}
		if exhausted || (limit > 0 && seen >= limit) {
			return nil
		}
	}
}

// collectDocumentChunksPage builds the act/regulation metadata chunks
// for one page of document ids.
func collectDocumentChunksPage(ctx context.Context, pool *legstore.Pool, kind legtypes.DocumentKind, ids []string) ([]legtypes.Chunk, error) {
	var chunks []legtypes.Chunk
	for _, id := range ids {
		byLang, err := legstore.FetchDocumentBilingual(ctx, pool, kind, id)
		if err != nil {
			return nil, err
		}
		for _, doc := range byLang {
			chunks = append(chunks, legembed.BuildDocumentMetadataChunk(doc))
		}
	}
	return chunks, nil
}

// collectSectionChunksPage builds section chunks for one page of
// document ids, fetching only those documents' sections and titles.
func collectSectionChunksPage(ctx context.Context, pool *legstore.Pool, kind legtypes.DocumentKind, ids []string) ([]legtypes.Chunk, error) {
	var actIDs, regIDs []string
	if kind == legtypes.DocumentKindRegulation {
		regIDs = ids
	} else {
		actIDs = ids
	}
	sections, err := legstore.FetchSectionsForDocuments(ctx, pool, actIDs, regIDs)
	if err != nil {
		return nil, err
	}
	titles := map[string]string{}
	for _, id := range ids {
		byLang, err := legstore.FetchDocumentBilingual(ctx, pool, kind, id)
		if err != nil {
			return nil, err
		}
		for lang, doc := range byLang {
			titles[id+":"+string(lang)] = doc.Title()
		}
	}
	var chunks []legtypes.Chunk
	for _, s := range sections {
		docID := s.ActID
		if docID == "" {
			docID = s.RegulationID
		}
		sectionChunks, err := legembed.BuildSectionChunks(kind, s, titles[docID+":"+string(s.Language)], legchunk.Options{Language: s.Language})
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, sectionChunks...)
	}
	return chunks, nil
}

// collectDefinedTermChunksPage builds defined-term chunks for one page
// of act or regulation ids (exactly one of actIDs/regIDs is non-empty
// per call, since the two kinds page independently).
func collectDefinedTermChunksPage(ctx context.Context, pool *legstore.Pool, actIDs, regIDs []string) ([]legtypes.Chunk, error) {
	terms, err := legstore.FetchDefinedTermsForDocuments(ctx, pool, actIDs, regIDs)
	if err != nil {
		return nil, err
	}
	var chunks []legtypes.Chunk
	for _, t := range terms {
		chunks = append(chunks, legembed.BuildDefinedTermChunk(t))
	}
	return chunks, nil
}

func reembedCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reembed",
		Short: "Re-embed resources from one embedding model to another",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromModel, _ := cmd.Flags().GetString("from-model")
			toModel, _ := cmd.Flags().GetString("to-model")
			limit, _ := cmd.Flags().GetInt("limit")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			endpoint, _ := cmd.Flags().GetString("endpoint")

			if toModel == "" {
				return fmt.Errorf("legrag: --to-model is required")
			}

			ctx := cmd.Context()
			pool, err := rt.poolConn(ctx)
			if err != nil {
				return err
			}

			rows, err := legstore.SelectForReembedding(ctx, pool, fromModel, limit)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("Dry run: would re-embed %d resources from %q to %q\n", len(rows), fromModel, toModel)
				return nil
			}

			embedder := newHTTPEmbedder(endpoint, os.Getenv("LEGRAG_EMBEDDING_API_KEY"), toModel)

			start := time.Now()
			summary := legcli.Summary{}
			for start := 0; start < len(rows); start += legembed.EmbeddingBatchSize {
				end := start + legembed.EmbeddingBatchSize
				if end > len(rows) {
					end = len(rows)
				}
				batch := rows[start:end]

				texts := make([]string, len(batch))
				for i, r := range batch {
					texts[i] = r.Content
				}
				vectors, err := embedder.Embed(ctx, texts)
				if err != nil {
					rt.logger.Warn("reembed batch failed", zap.Error(err))
					summary.Failed += len(batch)
					continue
				}

				tx, err := pool.Begin(ctx)
				if err != nil {
					return fmt.Errorf("legrag: begin transaction: %w", err)
				}
				failed := false
				for i, r := range batch {
					if err := legstore.UpdateEmbeddingModel(ctx, tx, r.ResourceID, vectors[i], toModel); err != nil {
						failed = true
						break
					}
				}
				if failed {
					_ = tx.Rollback(ctx)
					summary.Failed += len(batch)
					continue
				}
				if err := tx.Commit(ctx); err != nil {
					summary.Failed += len(batch)
					continue
				}
				summary.Processed += len(batch)
			}

			summary.Duration = time.Since(start)
			fmt.Println(summary.String())
			os.Exit(summary.ExitCode())
			return nil
		},
	}

	cmd.Flags().String("from-model", "", "source embedding model (empty = rows with no model yet)")
	cmd.Flags().String("to-model", "", "destination embedding model")
	cmd.Flags().Int("limit", 1000, "maximum number of resources to re-embed")
	cmd.Flags().Bool("dry-run", false, "count affected resources without re-embedding")
	cmd.Flags().String("endpoint", "https://api.openai.com/v1", "OpenAI-compatible embeddings endpoint base URL")

	return cmd
}

func checkSchemaCoverageCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-schema-coverage",
		Short: "Report XML element names in a corpus sample unhandled by the parser",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			limit, _ := cmd.Flags().GetInt("limit")

			files, err := discoverLegislationFiles(dir, "", nil)
			if err != nil {
				return err
			}
			if limit > 0 && len(files) > limit {
				files = files[:limit]
			}

			seen := map[string]int{}
			for _, path := range files {
				if err := walkElementNames(path, seen); err != nil {
					rt.logger.Warn("walk failed", zap.String("path", path), zap.Error(err))
				}
			}

			var unknown []string
			for name := range seen {
				if !legxml.KnownElements[name] {
					unknown = append(unknown, name)
				}
			}
			sort.Strings(unknown)

			if len(unknown) == 0 {
				fmt.Printf("No unhandled elements found across %d files\n", len(files))
				return nil
			}
			fmt.Printf("Unhandled elements across %d files:\n", len(files))
			for _, name := range unknown {
				fmt.Printf("  %s (%d occurrences)\n", name, seen[name])
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "directory of legislation XML files")
	cmd.Flags().Int("limit", 200, "maximum number of files to sample (0 = all)")

	return cmd
}

func auditXMLSchemaCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit-xml-schema",
		Short: "Inventory every element and attribute name encountered in a corpus sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			limit, _ := cmd.Flags().GetInt("limit")

			files, err := discoverLegislationFiles(dir, "", nil)
			if err != nil {
				return err
			}
			if limit > 0 && len(files) > limit {
				files = files[:limit]
			}

			elements := map[string]int{}
			attributes := map[string]int{}
			for _, path := range files {
				if err := walkElementsAndAttrs(path, elements, attributes); err != nil {
					rt.logger.Warn("walk failed", zap.String("path", path), zap.Error(err))
				}
			}

			fmt.Printf("Audited %d files: %d distinct elements, %d distinct attributes\n",
				len(files), len(elements), len(attributes))

			names := make([]string, 0, len(elements))
			for name := range elements {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				known := ""
				if !legxml.KnownElements[name] {
					known = " (unhandled)"
				}
				fmt.Printf("  <%s>: %d%s\n", name, elements[name], known)
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "directory of legislation XML files")
	cmd.Flags().Int("limit", 0, "maximum number of files to sample (0 = all)")

	return cmd
}

// walkElementNames opens path and tallies every element name it
// contains into seen.
func walkElementNames(path string, seen map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	root, err := tree.Parse(f)
	if err != nil {
		return fmt.Errorf("legrag: parse %s: %w", path, err)
	}
	walkElement(root, func(e *tree.Element) {
		seen[e.Name()]++
	})
	return nil
}

// walkElementsAndAttrs opens path and tallies every element and
// attribute name it contains.
func walkElementsAndAttrs(path string, elements, attributes map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	root, err := tree.Parse(f)
	if err != nil {
		return fmt.Errorf("legrag: parse %s: %w", path, err)
	}
	walkElement(root, func(e *tree.Element) {
		elements[e.Name()]++
		for _, a := range e.Start.Attrs {
			attributes[a.Name.Local]++
		}
	})
	return nil
}

// walkElement applies fn to e and every descendant element.
func walkElement(e *tree.Element, fn func(*tree.Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, child := range e.Children() {
		walkElement(child, fn)
	}
}
