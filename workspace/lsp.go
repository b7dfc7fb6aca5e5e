package workspace

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mazznoer/csscolorparser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/lcss/config"
)

const lsName = "lcss"

type LSPServer struct {
	workspace *Workspace
	watcher   *FileWatcher
	config    *config.Config
	handler   protocol.Handler
	server    *server.Server
	version   string

	mu   sync.Mutex
	open map[string]bool
}

// NewLSPServer returns a server that uses cfg unless the client names a
// workspace root with its own configuration file.
func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	ls := &LSPServer{
		config:  cfg,
		version: version,
		open:    make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:                    ls.initialize,
		Initialized:                   ls.initialized,
		Shutdown:                      ls.shutdown,
		SetTrace:                      ls.setTrace,
		TextDocumentDidOpen:           ls.textDocumentDidOpen,
		TextDocumentDidChange:         ls.textDocumentDidChange,
		TextDocumentDidClose:          ls.textDocumentDidClose,
		TextDocumentDidSave:           ls.textDocumentDidSave,
		TextDocumentDocumentSymbol:    ls.textDocumentDocumentSymbol,
		TextDocumentFoldingRange:      ls.textDocumentFoldingRange,
		TextDocumentColor:             ls.textDocumentColor,
		TextDocumentColorPresentation: ls.textDocumentColorPresentation,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	cfg := ls.config
	rootDir := ""
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	if rootDir != "" {
		loaded, err := config.LoadFrom(rootDir)
		if err != nil {
			log.Warningf("load config from %s: %s", rootDir, err)
		} else {
			cfg = loaded
		}
	}

	ws, err := New(cfg)
	if err != nil {
		return nil, err
	}
	ls.workspace = ws

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		log.Warningf("scan workspace: %s", err)
	}
	ls.watcher = NewFileWatcher(ls.workspace, ls.isOpen)
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) setOpen(path string, open bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if open {
		ls.open[path] = true
	} else {
		delete(ls.open, path)
	}
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, true)
	f := ls.workspace.UpdateFile(path, params.TextDocument.Text)
	ls.publishDiagnostics(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			f := ls.workspace.UpdateFile(path, textChange.Text)
			ls.publishDiagnostics(ctx, params.TextDocument.URI, f)
		}
	}
	return nil
}

// textDocumentDidClose re-reads the file from disk so the workspace
// forgets unsaved edits, and drops it when it no longer exists.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, false)
	if err := ls.workspace.ScanFile(path); err != nil {
		ls.workspace.RemoveFile(path)
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, *params.Text)
	} else {
		ls.workspace.ScanFile(path)
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, ls.workspace.GetFile(path))
	return nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string, f *File) {
	if ctx == nil {
		return
	}
	diagnostics := []protocol.Diagnostic{}
	if f != nil {
		severity := protocol.DiagnosticSeverityError
		source := lsName
		for _, d := range f.Diagnostics() {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    toRange(d.Span),
				Severity: &severity,
				Source:   &source,
				Message:  d.Message,
			})
		}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) file(uri string) *File {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	return ls.workspace.GetFile(path)
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	return toDocumentSymbols(f.Symbols()), nil
}

func toDocumentSymbols(symbols []Symbol) []protocol.DocumentSymbol {
	var result []protocol.DocumentSymbol
	for _, sym := range symbols {
		ds := protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           toSymbolKind(sym.Kind),
			Range:          toRange(sym.Span),
			SelectionRange: toRange(sym.Selection),
			Children:       toDocumentSymbols(sym.Children),
		}
		if sym.Detail != "" {
			detail := sym.Detail
			ds.Detail = &detail
		}
		result = append(result, ds)
	}
	return result
}

func toSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolRule:
		return protocol.SymbolKindClass
	case SymbolAtRule:
		return protocol.SymbolKindNamespace
	default:
		return protocol.SymbolKindProperty
	}
}

func (ls *LSPServer) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	var ranges []protocol.FoldingRange
	for _, fold := range f.Folds() {
		kind := string(protocol.FoldingRangeKindRegion)
		if fold.Comment {
			kind = string(protocol.FoldingRangeKindComment)
		}
		ranges = append(ranges, protocol.FoldingRange{
			StartLine: fold.StartLine,
			EndLine:   fold.EndLine,
			Kind:      &kind,
		})
	}
	return ranges, nil
}

func (ls *LSPServer) textDocumentColor(ctx *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	var colors []protocol.ColorInformation
	for _, c := range f.Colors() {
		colors = append(colors, protocol.ColorInformation{
			Range: toRange(c.Span),
			Color: protocol.Color{
				Red:   protocol.Decimal(c.Color.R),
				Green: protocol.Decimal(c.Color.G),
				Blue:  protocol.Decimal(c.Color.B),
				Alpha: protocol.Decimal(c.Color.A),
			},
		})
	}
	return colors, nil
}

// textDocumentColorPresentation offers the picked color as hex and as
// rgb()/rgba().
func (ls *LSPServer) textDocumentColorPresentation(ctx *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	c := csscolorparser.Color{
		R: float64(params.Color.Red),
		G: float64(params.Color.Green),
		B: float64(params.Color.Blue),
		A: float64(params.Color.Alpha),
	}
	var presentations []protocol.ColorPresentation
	for _, label := range []string{c.HexString(), c.RGBString()} {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: label,
			},
		})
	}
	return presentations, nil
}

func toRange(s Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: s.Start.Line, Character: s.Start.Character},
		End:   protocol.Position{Line: s.End.Line, Character: s.End.Character},
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
