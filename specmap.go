// Package specmap merges heterogeneous smartphone specification exports
// into a single per-brand device catalog. Column names are canonicalized
// against a fixed vocabulary, row identities resolve to stable content-based
// IDs, and attribute conflicts settle by first-write-wins with a small set
// of accumulating fields.
package specmap

import (
	"context"
	"fmt"

	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/catalogs/files"
	"github.com/agentstation/specmap/pkg/catalogs/sqlite"
	"github.com/agentstation/specmap/pkg/ingest"
	"github.com/agentstation/specmap/pkg/schema"
)

// Specmap owns a device catalog and merges table files into it.
type Specmap interface {
	// Catalog returns the underlying partitioned store.
	Catalog() catalogs.Catalog

	// Merge discovers every .csv/.tsv file under root and folds them into
	// the catalog. The returned result is valid even on error.
	Merge(ctx context.Context, root string) (*ingest.Result, error)

	// Close releases the catalog backend.
	Close() error
}

// specmap is the internal implementation of the Specmap interface.
type specmap struct {
	catalog  catalogs.Catalog
	ingestor *ingest.Ingestor
}

// New creates a Specmap instance with the given options. Without options it
// uses a disk-backed catalog in the default directory and the built-in
// vocabulary.
func New(opts ...Option) (Specmap, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	vocab := cfg.vocabulary
	if cfg.vocabularyPath != "" {
		var err error
		vocab, err = schema.Load(cfg.vocabularyPath)
		if err != nil {
			return nil, fmt.Errorf("loading vocabulary: %w", err)
		}
	}

	catalog := cfg.catalog
	if catalog == nil {
		var err error
		switch {
		case cfg.sqlitePath != "":
			catalog, err = sqlite.New(cfg.sqlitePath)
		default:
			catalog, err = files.New(cfg.catalogDir)
		}
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}
	}

	var schemaOpts []schema.Option
	if cfg.thresholds != nil {
		schemaOpts = append(schemaOpts, schema.WithThresholds(*cfg.thresholds))
	}
	canon := schema.NewCanonicalizer(vocab, schemaOpts...)

	ingestOpts := []ingest.Option{ingest.WithCanonicalizer(canon)}
	if cfg.logger != nil {
		ingestOpts = append(ingestOpts, ingest.WithLogger(cfg.logger))
	}
	if cfg.auditDisabled {
		ingestOpts = append(ingestOpts, ingest.WithoutAuditLog())
	} else if cfg.auditPath != "" {
		ingestOpts = append(ingestOpts, ingest.WithAuditLog(cfg.auditPath))
	}

	return &specmap{
		catalog:  catalog,
		ingestor: ingest.New(catalog, ingestOpts...),
	}, nil
}

// Catalog returns the underlying partitioned store.
func (s *specmap) Catalog() catalogs.Catalog {
	return s.catalog
}

// Merge folds every table file under root into the catalog.
func (s *specmap) Merge(ctx context.Context, root string) (*ingest.Result, error) {
	return s.ingestor.Run(ctx, root)
}

// Close releases the catalog backend.
func (s *specmap) Close() error {
	return s.catalog.Close()
}
