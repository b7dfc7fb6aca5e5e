package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/lcss/config"
	"github.com/dhamidi/lcss/css/parser"
)

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "a.css"),
		filepath.Join(dir, "b.css"),
	}
	require.NoError(t, os.WriteFile(files[0], []byte("a { color: red }\n"), 0o644))
	require.NoError(t, os.WriteFile(files[1], []byte("}\n@media x { b { c: d"), 0o644))

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.NoError(t, runRoundTrip(context.Background(), cfg, files, true))

	cfg.Strict = true
	assert.Error(t, runRoundTrip(context.Background(), cfg, files, true))
}

func TestStylesheetsFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte("a{}"), 0o644))

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)

	files, err := stylesheets(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.css")}, files)

	files, err = stylesheets([]string{"x.css"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.css"}, files)

	empty, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)
	_, err = stylesheets(nil, empty)
	assert.Error(t, err)
}

func TestMeasurement(t *testing.T) {
	m := &measurement{name: "x"}
	for _, d := range []int{5, 1, 4, 2, 3} {
		m.samples = append(m.samples, time.Duration(d))
	}
	assert.Equal(t, time.Duration(3), m.average())
	assert.Equal(t, time.Duration(3), m.percentile(50))
	assert.Equal(t, time.Duration(4), m.percentile(95))
	assert.Equal(t, time.Duration(1), m.percentile(0))
}

func TestRunBench(t *testing.T) {
	assert.NoError(t, runBench("a { color: red }\n}\n@media x { b { c: d", 3))
	assert.NoError(t, runBench("", 1))
}

func TestCheckRoundTrip(t *testing.T) {
	root, err := parser.Parse("a { b: c }")
	require.NoError(t, err)
	assert.NoError(t, checkRoundTrip(root, "a { b: c }"))

	err = checkRoundTrip(root, "a { b: d }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "round trip differs")
}
