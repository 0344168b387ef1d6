package ingest

import (
	"fmt"
	"io"
	"os"

	"github.com/agentstation/utc"

	"github.com/agentstation/specmap/pkg/constants"
	"github.com/agentstation/specmap/pkg/errors"
)

// AuditLog is the plain-text per-run merge report: one marker line per file
// followed by its outcome. The file is truncated at the start of every run
// so it always describes the latest one.
type AuditLog struct {
	w io.WriteCloser
}

// NewAuditLog opens (truncating) the audit log at path and writes the run
// header.
func NewAuditLog(path string, startedAt utc.Time) (*AuditLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(constants.FilePermissions))
	if err != nil {
		return nil, errors.WrapIO("create", path, err)
	}
	a := &AuditLog{w: f}
	a.printf("=== merge run started %s ===", startedAt.Format("2006-01-02 15:04:05 MST"))
	return a, nil
}

// NewAuditLogWriter wraps an arbitrary writer, for tests.
func NewAuditLogWriter(w io.Writer) *AuditLog {
	return &AuditLog{w: nopCloser{w}}
}

// File writes the per-file marker line.
func (a *AuditLog) File(path string) {
	a.printf("--> %s", path)
}

// Skip records that a whole file was skipped and why.
func (a *AuditLog) Skip(reason string) {
	a.printf("[SKIP] %s", reason)
}

// Warn records a degraded-mode decision, such as falling back to a generic
// model column.
func (a *AuditLog) Warn(msg string) {
	a.printf("[WARN] %s", msg)
}

// OK records a successfully processed file: rows read and rows merged.
func (a *AuditLog) OK(rows, merged int) {
	a.printf("[OK] rows=%d merged=%d", rows, merged)
}

// Info records run-level notes.
func (a *AuditLog) Info(msg string) {
	a.printf("[INFO] %s", msg)
}

// Close writes the run footer and closes the underlying file.
func (a *AuditLog) Close(result *Result) error {
	if a == nil {
		return nil
	}
	a.printf("[INFO] files=%d skipped=%d rows=%d merged=%d rows_skipped=%d",
		result.Files, result.FilesSkipped, result.Rows, result.Merged, result.RowsSkipped)
	a.printf("=== merge run completed %s ===", result.CompletedAt.Format("2006-01-02 15:04:05 MST"))
	return a.w.Close()
}

func (a *AuditLog) printf(format string, args ...any) {
	if a == nil {
		return
	}
	fmt.Fprintf(a.w, format+"\n", args...)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
