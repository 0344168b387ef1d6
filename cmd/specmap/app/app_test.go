package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/specmap"
	"github.com/agentstation/specmap/pkg/catalogs/memory"
	"github.com/agentstation/specmap/pkg/logging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	sm, err := specmap.New(
		specmap.WithCatalog(memory.New()),
		specmap.WithoutAuditLog(),
		specmap.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	app, err := New("test", "none", "today",
		WithSpecmap(sm),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return app
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, "info"},
		{"verbose", Config{Verbose: true}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"both prefers quiet", Config{Verbose: true, Quiet: true}, "warn"},
		{"explicit wins", Config{Verbose: true, LogLevel: "error"}, "error"},
		{"invalid falls back", Config{LogLevel: "chatty"}, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestMergeCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
		[]byte("Brand,Model,RAM\nSamsung,Galaxy S21,8GB\n"), 0o644))

	app := newTestApp(t)
	defer app.Shutdown()

	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"merge", dir})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "1 merged")
}

func TestListBrandsCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
		[]byte("Brand,Model\nSamsung,Galaxy S21\nXiaomi,Redmi 12\n"), 0o644))

	app := newTestApp(t)
	defer app.Shutdown()

	sm, err := app.Specmap()
	require.NoError(t, err)
	_, err = sm.Merge(context.Background(), dir)
	require.NoError(t, err)

	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"list", "brands"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Samsung")
	assert.Contains(t, out.String(), "Xiaomi")
}

func TestInspectCommandJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
		[]byte("Brand,Model,RAM\nSamsung,Galaxy S21,8GB\n"), 0o644))

	app := newTestApp(t)
	defer app.Shutdown()

	sm, err := app.Specmap()
	require.NoError(t, err)
	_, err = sm.Merge(context.Background(), dir)
	require.NoError(t, err)

	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"inspect", "Samsung", "--format", "json"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), `"brand": "Samsung"`)
	assert.Contains(t, out.String(), `"ram": 8`)
}
