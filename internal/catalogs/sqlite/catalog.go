// Package sqlite provides a SQLite-backed catalog. Each brand partition is
// stored as one row holding the full serialized document, preserving the
// read-modify-write-whole-partition contract of the disk backend while
// keeping every brand in a single file.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/agentstation/specmap/internal/catalogs/base"
	"github.com/agentstation/specmap/internal/catalogs/persistence"
	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/errors"
	"github.com/agentstation/specmap/pkg/specs"
)

const schema = `
CREATE TABLE IF NOT EXISTS partitions (
	key   TEXT PRIMARY KEY,
	brand TEXT NOT NULL,
	doc   TEXT NOT NULL
);`

// catalog stores one serialized partition document per row, keyed by the
// case-folded partition key.
type catalog struct {
	db *sql.DB
}

// NewCatalog opens (creating if needed) a SQLite-backed catalog at path.
func NewCatalog(path string) (catalogs.Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapStore("open", "", err)
	}
	// A single writer is assumed; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.WrapStore("open", "", err)
	}
	return &catalog{db: db}, nil
}

// Upsert implements catalogs.Writer. The load-merge-store cycle runs in one
// transaction so a failure leaves the previous document intact.
func (c *catalog) Upsert(ctx context.Context, brand, model string, attrs specs.Attributes) (*specs.Device, error) {
	key := base.PartitionKey(brand)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WrapStore("persist", brand, err)
	}
	defer tx.Rollback()

	var doc string
	p := specs.NewPartition(brand)
	err = tx.QueryRowContext(ctx, `SELECT doc FROM partitions WHERE key = ?`, key).Scan(&doc)
	switch {
	case err == sql.ErrNoRows:
		// First write for this brand.
	case err != nil:
		return nil, errors.WrapStore("load", brand, err)
	default:
		if p, err = persistence.Unmarshal([]byte(doc)); err != nil {
			return nil, errors.WrapStore("load", brand, err)
		}
	}

	d := base.Apply(p, brand, model, attrs)

	data, err := persistence.Marshal(p)
	if err != nil {
		return nil, errors.WrapStore("persist", brand, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO partitions (key, brand, doc) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET doc = excluded.doc`,
		key, p.Brand, string(data))
	if err != nil {
		return nil, errors.WrapStore("persist", brand, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.WrapStore("persist", brand, err)
	}
	return d, nil
}

// Partition implements catalogs.Reader.
func (c *catalog) Partition(ctx context.Context, brand string) (*specs.Partition, error) {
	var doc string
	err := c.db.QueryRowContext(ctx,
		`SELECT doc FROM partitions WHERE key = ?`, base.PartitionKey(brand)).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("partition", brand)
	}
	if err != nil {
		return nil, errors.WrapStore("load", brand, err)
	}
	return persistence.Unmarshal([]byte(doc))
}

// Device implements catalogs.Reader.
func (c *catalog) Device(ctx context.Context, brand, model string) (*specs.Device, error) {
	p, err := c.Partition(ctx, brand)
	if err != nil {
		return nil, err
	}
	id := specs.DeviceID(brand, model)
	d, ok := p.Entities[id]
	if !ok {
		return nil, errors.NewNotFoundError("device", id)
	}
	return d, nil
}

// Brands implements catalogs.Reader.
func (c *catalog) Brands(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT brand FROM partitions ORDER BY key`)
	if err != nil {
		return nil, errors.WrapStore("load", "", err)
	}
	defer rows.Close()

	var brands []string
	for rows.Next() {
		var brand string
		if err := rows.Scan(&brand); err != nil {
			return nil, errors.WrapStore("load", "", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStore("load", "", err)
	}
	return brands, nil
}

// Close implements catalogs.Catalog.
func (c *catalog) Close() error {
	return c.db.Close()
}
