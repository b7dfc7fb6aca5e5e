// Package config loads project settings from .lcss.yaml or .lcss.jsonc.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration files looked for in a project root, in
// order of preference.
var FileNames = []string{".lcss.yaml", ".lcss.yml", ".lcss.jsonc", ".lcss.json"}

// Config holds the settings of a project.
type Config struct {
	// RootDir is the directory globs are relative to.
	RootDir string `yaml:"-" json:"-"`
	// File is the configuration file that was read, if any.
	File string `yaml:"-" json:"-"`

	Include   []string `yaml:"include" json:"include"`
	Exclude   []string `yaml:"exclude" json:"exclude"`
	Strict    bool     `yaml:"strict" json:"strict"`
	Bench     Bench    `yaml:"bench" json:"bench"`
	CacheSize int      `yaml:"cacheSize" json:"cacheSize"`
	Verbosity int      `yaml:"verbosity" json:"verbosity"`
}

type Bench struct {
	Iterations int `yaml:"iterations" json:"iterations"`
}

// Default returns the settings used when a project has no configuration
// file.
func Default() *Config {
	return &Config{
		RootDir:   ".",
		Include:   []string{"**/*.css"},
		Exclude:   []string{"**/node_modules/**"},
		Bench:     Bench{Iterations: 100},
		CacheSize: 128,
	}
}

// Load reads the configuration of the current directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads the first configuration file found in rootDir, falling
// back to Default when there is none.
func LoadFrom(rootDir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(rootDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	cfg := Default()
	cfg.RootDir = rootDir
	return cfg, nil
}

// LoadFile reads a configuration file. Files ending in .yaml or .yml are
// YAML; anything else is JSON with comments and trailing commas allowed.
// Unset fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.RootDir = filepath.Dir(path)
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that globs are well formed and numbers are in range.
func (c *Config) Validate() error {
	for _, pattern := range slices.Concat(c.Include, c.Exclude) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob %q", pattern)
		}
	}
	if c.Bench.Iterations < 1 {
		return fmt.Errorf("bench.iterations must be positive, got %d", c.Bench.Iterations)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cacheSize must be positive, got %d", c.CacheSize)
	}
	return nil
}

// Match reports whether the slash-separated path, relative to RootDir, is
// included and not excluded.
func (c *Config) Match(path string) bool {
	path = filepath.ToSlash(path)
	included := false
	for _, pattern := range c.Include {
		if ok, _ := doublestar.Match(pattern, path); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return false
		}
	}
	return true
}

// Stylesheets returns the files under RootDir matched by the include globs
// and not by the exclude globs, sorted, as paths joined to RootDir.
func (c *Config) Stylesheets() ([]string, error) {
	fsys := os.DirFS(c.RootDir)
	seen := map[string]bool{}
	var files []string
	for _, pattern := range c.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || !c.Match(m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	slices.Sort(files)
	for i, f := range files {
		files[i] = filepath.Join(c.RootDir, filepath.FromSlash(f))
	}
	return files, nil
}

// Rel returns path relative to RootDir, or path itself when it lies
// outside the root.
func (c *Config) Rel(path string) string {
	rel, err := filepath.Rel(c.RootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
