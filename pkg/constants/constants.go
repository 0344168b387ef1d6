// Package constants provides shared constants used throughout the specmap codebase.
// This includes file permissions, default paths, and other configuration values
// that should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default path constants define standard locations for specmap data
const (
	// DefaultCatalogDir is the default directory for per-brand catalog documents
	DefaultCatalogDir = "catalog"

	// DefaultAuditLogFile is the default path of the per-run merge audit log
	DefaultAuditLogFile = "specmap_merge_log.txt"

	// CatalogFileExt is the extension of persisted brand partition documents
	CatalogFileExt = ".json"
)

// Limit constants define various limits and capacities
const (
	// MaxBrandTokenLength is the longest model-name prefix token accepted as a
	// brand when splitting combined identity strings
	MaxBrandTokenLength = 12

	// MinBrandTokenLength is the shortest such token
	MinBrandTokenLength = 2
)
