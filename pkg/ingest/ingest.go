// Package ingest orchestrates a merge run: discover delimited files under a
// root, resolve each file's identity columns, canonicalize and normalize
// every cell, and fold row entities into the partitioned catalog.
//
// Failure isolation is strict: a bad row never aborts its file, a bad file
// never aborts the batch, but a store write failure ends the run, since
// continuing after a failed persist could silently drop merges.
package ingest

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/constants"
	"github.com/agentstation/specmap/pkg/errors"
	"github.com/agentstation/specmap/pkg/extract"
	"github.com/agentstation/specmap/pkg/logging"
	"github.com/agentstation/specmap/pkg/merge"
	"github.com/agentstation/specmap/pkg/schema"
	"github.com/agentstation/specmap/pkg/tabular"
)

// Result summarizes one merge run.
type Result struct {
	StartedAt   utc.Time
	CompletedAt utc.Time

	// Files is the number of files processed to completion.
	Files int
	// FilesSkipped counts files skipped whole: unreadable, empty, or
	// lacking any model-like column.
	FilesSkipped int
	// FilesWarned counts files processed via the generic model-column
	// fallback.
	FilesWarned int

	// Rows is the number of data rows read across processed files.
	Rows int
	// Merged is the number of rows folded into the catalog.
	Merged int
	// RowsSkipped counts rows rejected for unresolvable brand/model
	// identity.
	RowsSkipped int
}

// Ingestor runs merge batches against a catalog.
type Ingestor struct {
	catalog   catalogs.Catalog
	canon     *schema.Canonicalizer
	logger    *zerolog.Logger
	auditPath string
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithCanonicalizer overrides the column canonicalizer, e.g. to use a
// vocabulary loaded from a file.
func WithCanonicalizer(c *schema.Canonicalizer) Option {
	return func(i *Ingestor) {
		i.canon = c
	}
}

// WithLogger overrides the structured logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(i *Ingestor) {
		i.logger = logger
	}
}

// WithAuditLog overrides where the plain-text run report is written.
func WithAuditLog(path string) Option {
	return func(i *Ingestor) {
		i.auditPath = path
	}
}

// WithoutAuditLog disables the plain-text run report.
func WithoutAuditLog() Option {
	return func(i *Ingestor) {
		i.auditPath = ""
	}
}

// New creates an Ingestor writing into catalog.
func New(catalog catalogs.Catalog, opts ...Option) *Ingestor {
	i := &Ingestor{
		catalog:   catalog,
		canon:     schema.NewCanonicalizer(nil),
		logger:    logging.Default(),
		auditPath: constants.DefaultAuditLogFile,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run discovers every table file under root and merges them in
// lexicographic path order. The returned Result is valid even when err is
// non-nil: everything merged before the failure remains persisted.
func (i *Ingestor) Run(ctx context.Context, root string) (*Result, error) {
	result := &Result{StartedAt: utc.Now()}

	paths, err := tabular.Discover(root)
	if err != nil {
		result.CompletedAt = utc.Now()
		return result, err
	}

	var audit *AuditLog
	if i.auditPath != "" {
		audit, err = NewAuditLog(i.auditPath, result.StartedAt)
		if err != nil {
			result.CompletedAt = utc.Now()
			return result, err
		}
	}

	i.logger.Info().Str("root", root).Int("files", len(paths)).Msg("merge run started")

	ctx = logging.WithOperation(logging.WithLogger(ctx, i.logger), "merge")
	runErr := i.runFiles(ctx, paths, audit, result)

	result.CompletedAt = utc.Now()
	if audit != nil {
		if cerr := audit.Close(result); cerr != nil && runErr == nil {
			runErr = cerr
		}
	}

	log := i.logger.Info()
	if runErr != nil {
		log = i.logger.Error().Err(runErr)
	}
	log.Int("files", result.Files).
		Int("files_skipped", result.FilesSkipped).
		Int("rows", result.Rows).
		Int("merged", result.Merged).
		Int("rows_skipped", result.RowsSkipped).
		Msg("merge run finished")

	return result, runErr
}

func (i *Ingestor) runFiles(ctx context.Context, paths []string, audit *AuditLog, result *Result) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		audit.File(path)
		if err := i.processFile(ctx, path, audit, result); err != nil {
			return err
		}
	}
	return nil
}

// processFile merges one table file. Only fatal errors (store write
// failures, cancellation) propagate; everything else downgrades to a
// skipped file.
func (i *Ingestor) processFile(ctx context.Context, path string, audit *AuditLog, result *Result) error {
	ctx = logging.WithFile(ctx, path)
	logger := logging.Ctx(ctx)

	table, err := tabular.Load(path)
	if err != nil {
		reason := "unreadable"
		if errors.IsEmptyFile(err) {
			reason = "no data rows"
		}
		logger.Warn().Err(err).Msg("skipping file")
		audit.Skip(fmt.Sprintf("%s: %v", reason, err))
		result.FilesSkipped++
		return nil
	}

	brandCol, _ := i.canon.ResolveRole(table.Columns, schema.BrandCandidates)
	modelCol, ok := i.canon.ResolveRole(table.Columns, schema.ModelCandidates)
	if !ok {
		modelCol, ok = i.canon.GenericModelColumn(table.Columns)
		if !ok {
			serr := errors.NewSchemaError(path, "model", "no candidate column resolved, even with generic fallback")
			logger.Warn().Err(serr).Msg("skipping file")
			audit.Skip(serr.Error())
			result.FilesSkipped++
			return nil
		}
		logger.Warn().Str("column", modelCol).Msg("using generic model column")
		audit.Warn(fmt.Sprintf("no model-like column, using generic column %q", modelCol))
		result.FilesWarned++
	}

	// Canonical keys are fixed per file; identity columns never become
	// attributes.
	type mapping struct {
		raw string
		key string
	}
	plan := make([]mapping, 0, len(table.Columns))
	for _, col := range table.Columns {
		if col == "" || col == brandCol || col == modelCol {
			continue
		}
		plan = append(plan, mapping{raw: col, key: i.canon.Canonicalize(col)})
	}

	merged, skipped := 0, 0
	for _, row := range table.Rows {
		identity, ok := extract.Resolve(row[brandCol], row[modelCol])
		if !ok {
			skipped++
			continue
		}

		cells := make(map[string]string, len(plan))
		for _, m := range plan {
			if raw, present := row[m.raw]; present {
				cells[m.key] = raw
			}
		}

		if _, err := i.catalog.Upsert(ctx, identity.Brand, identity.Model, merge.Row(cells)); err != nil {
			logging.Ctx(logging.WithBrand(ctx, identity.Brand)).Error().Err(err).Msg("store write failed")
			audit.Skip(fmt.Sprintf("aborted: %v", err))
			return err
		}
		merged++
	}

	result.Files++
	result.Rows += len(table.Rows)
	result.Merged += merged
	result.RowsSkipped += skipped

	logger.Info().Int("rows", len(table.Rows)).Int("merged", merged).Int("rows_skipped", skipped).Msg("file merged")
	audit.OK(len(table.Rows), merged)
	return nil
}
