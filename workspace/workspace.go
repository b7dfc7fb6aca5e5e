// Package workspace keeps parsed stylesheets of a project directory and
// serves them over the Language Server Protocol.
package workspace

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/lcss/config"
	"github.com/dhamidi/lcss/css/input"
	"github.com/dhamidi/lcss/css/parser"
	"github.com/dhamidi/lcss/css/syntax"
)

var log = commonlog.GetLogger("lcss.workspace")

// Workspace holds the stylesheets of one project. It is safe for
// concurrent use.
type Workspace struct {
	mu     sync.RWMutex
	config *config.Config
	files  map[string]*File
	trees  *lru.Cache[string, *parsed]
}

// File is a parsed stylesheet. Files are replaced, never modified, so a
// *File obtained from the workspace can be read without locking.
type File struct {
	Path   string
	Input  *input.Input
	Root   *syntax.Node
	Errors []*parser.Error
}

// parsed is the part of a File that only depends on the text, shared
// between files with identical content.
type parsed struct {
	root   *syntax.Node
	errors []*parser.Error
}

func New(cfg *config.Config) (*Workspace, error) {
	trees, err := lru.New[string, *parsed](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create tree cache: %w", err)
	}
	return &Workspace{
		config: cfg,
		files:  make(map[string]*File),
		trees:  trees,
	}, nil
}

func (w *Workspace) Config() *config.Config {
	return w.config
}

func (w *Workspace) RootDir() string {
	return w.config.RootDir
}

// ScanAll parses every stylesheet the configuration includes. Files that
// cannot be read are logged and skipped.
func (w *Workspace) ScanAll() error {
	files, err := w.config.Stylesheets()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := w.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
	}
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, string(content))
	return nil
}

// UpdateFile parses content as the new text of path and returns the
// resulting file.
func (w *Workspace) UpdateFile(path string, css string) *File {
	in := input.New(css, path)

	p, ok := w.trees.Get(css)
	if !ok {
		var opts []parser.Option
		if w.config.Strict {
			opts = append(opts, parser.WithStrict())
		}
		ps := parser.New(in, opts...)
		ps.Parse()
		p = &parsed{root: ps.Root(), errors: ps.Errors()}
		w.trees.Add(css, p)
	} else {
		log.Debugf("reusing tree for %s", path)
	}

	f := &File{
		Path:   path,
		Input:  in,
		Root:   p.root,
		Errors: make([]*parser.Error, len(p.errors)),
	}
	for i, e := range p.errors {
		f.Errors[i] = &parser.Error{Kind: e.Kind, Offset: e.Offset, Position: in.Position(e.Offset)}
	}

	w.mu.Lock()
	w.files[path] = f
	w.mu.Unlock()
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns all files sorted by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	w.mu.RUnlock()

	slices.SortFunc(files, func(a, b *File) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return files
}
