package specmap

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/constants"
	"github.com/agentstation/specmap/pkg/errors"
	"github.com/agentstation/specmap/pkg/schema"
)

// Option is a function that configures a Specmap instance.
type Option func(*config) error

// config collects construction-time settings.
type config struct {
	catalog        catalogs.Catalog
	catalogDir     string
	sqlitePath     string
	vocabulary     *schema.Vocabulary
	vocabularyPath string
	thresholds     *schema.Thresholds
	logger         *zerolog.Logger
	auditPath      string
	auditDisabled  bool
}

func defaultConfig() *config {
	return &config{
		catalogDir: constants.DefaultCatalogDir,
	}
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithCatalog uses an existing catalog instead of opening one.
func WithCatalog(catalog catalogs.Catalog) Option {
	return func(c *config) error {
		if catalog == nil {
			return errors.NewValidationError("catalog", nil, "catalog must not be nil")
		}
		c.catalog = catalog
		return nil
	}
}

// WithCatalogDir stores partitions as JSON documents under dir.
func WithCatalogDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("dir", dir, "catalog directory must not be empty")
		}
		c.catalogDir = dir
		return nil
	}
}

// WithSQLite stores partitions in a SQLite database at path instead of a
// directory of JSON documents.
func WithSQLite(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("path", path, "database path must not be empty")
		}
		c.sqlitePath = path
		return nil
	}
}

// WithVocabulary uses an in-memory canonical key vocabulary.
func WithVocabulary(vocab *schema.Vocabulary) Option {
	return func(c *config) error {
		c.vocabulary = vocab
		return nil
	}
}

// WithVocabularyFile loads the canonical key vocabulary from a YAML file.
func WithVocabularyFile(path string) Option {
	return func(c *config) error {
		c.vocabularyPath = path
		return nil
	}
}

// WithThresholds overrides the similarity acceptance thresholds.
func WithThresholds(t schema.Thresholds) Option {
	return func(c *config) error {
		c.thresholds = &t
		return nil
	}
}

// WithLogger overrides the structured logger used during merges.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithAuditLog writes the per-run plain-text merge report to path.
func WithAuditLog(path string) Option {
	return func(c *config) error {
		c.auditPath = path
		return nil
	}
}

// WithoutAuditLog disables the per-run merge report.
func WithoutAuditLog() Option {
	return func(c *config) error {
		c.auditDisabled = true
		return nil
	}
}
