package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/lcss/config"
)

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.css")
	b := filepath.Join(dir, "b.css")
	require.NoError(t, os.WriteFile(a, []byte("a {}"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b {}"), 0o644))

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	ws, err := New(cfg)
	require.NoError(t, err)

	fw := NewFileWatcher(ws, func(path string) bool { return path == b })
	assert.Equal(t, 1, fw.Scan(), "open files are skipped")
	assert.NotNil(t, ws.GetFile(a))
	assert.Nil(t, ws.GetFile(b))

	assert.Equal(t, 0, fw.Scan(), "unchanged files are not rescanned")

	require.NoError(t, os.WriteFile(a, []byte("a { c: d }"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(a, later, later))
	assert.Equal(t, 1, fw.Scan())
	assert.Equal(t, "a { c: d }", ws.GetFile(a).Root.String())

	require.NoError(t, os.Remove(a))
	assert.Equal(t, 1, fw.Scan())
	assert.Nil(t, ws.GetFile(a))
}

func TestFileWatcherStartStop(t *testing.T) {
	cfg := config.Default()
	cfg.RootDir = t.TempDir()
	ws, err := New(cfg)
	require.NoError(t, err)

	fw := NewFileWatcher(ws, nil)
	fw.Start()
	fw.Stop()
}
