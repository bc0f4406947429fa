package languageServer

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/languageServices"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/lint"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/util"
)

type document struct {
	uri DocumentUri

	mu      sync.Mutex
	text    string
	version int
	timer   *time.Timer

	// snapshot is replaced whole on every analysis and never modified in place
	snapshot atomic.Pointer[casl2.Snapshot]
	session  *languageServices.Session
	lint     *lint.Worker
}

func (d *document) current() (string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text, d.version
}

// documentStore owns the open documents of one connection. Edits are
// coalesced: every change re-arms a per-document timer and only the last
// change within the quiet period gets analyzed and published.
type documentStore struct {
	mu   sync.RWMutex
	docs map[DocumentUri]*document

	debounce time.Duration
	option   func() casl2.CompileOption
	linter   func() (*lint.Linter, bool)
	publish  func(PublishDiagnosticsParams)
}

func newDocumentStore(debounce time.Duration, option func() casl2.CompileOption, linter func() (*lint.Linter, bool), publish func(PublishDiagnosticsParams)) *documentStore {
	return &documentStore{
		docs:     make(map[DocumentUri]*document),
		debounce: debounce,
		option:   option,
		linter:   linter,
		publish:  publish,
	}
}

func (s *documentStore) get(uri DocumentUri) (*document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *documentStore) all() []*document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	return out
}

// open registers a document and publishes its diagnostics right away.
func (s *documentStore) open(item TextDocumentItem) {
	linter, enabled := s.linter()
	doc := &document{
		uri:     item.URI,
		text:    item.Text,
		version: item.Version,
		session: languageServices.NewSession(),
		lint:    lint.NewWorker(string(item.URI), linter),
	}
	doc.lint.SetLinter(linter, enabled)

	s.mu.Lock()
	if prev, ok := s.docs[item.URI]; ok {
		prev.stopTimer()
	}
	s.docs[item.URI] = doc
	s.mu.Unlock()

	s.flush(doc, item.Version)
}

// change stores the new text and re-arms the document's publish timer.
func (s *documentStore) change(uri DocumentUri, text string, version int) bool {
	doc, ok := s.get(uri)
	if !ok {
		return false
	}

	doc.mu.Lock()
	doc.text = text
	doc.version = version
	doc.mu.Unlock()

	s.schedule(doc)
	return true
}

func (s *documentStore) schedule(doc *document) {
	doc.mu.Lock()
	defer doc.mu.Unlock()

	if doc.timer != nil {
		doc.timer.Stop()
	}
	version := doc.version
	doc.timer = time.AfterFunc(s.debounce, func() {
		s.flush(doc, version)
	})
}

func (d *document) stopTimer() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (s *documentStore) close(uri DocumentUri) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	delete(s.docs, uri)
	s.mu.Unlock()

	if ok {
		doc.stopTimer()
	}
}

// flush analyzes and publishes doc if version is still its latest version.
// A timer that fired just as a newer edit arrived finds a newer version and
// leaves publication to that edit's timer. The text is read together with
// the version so the published diagnostics always belong to that version.
func (s *documentStore) flush(doc *document, version int) {
	text, current := doc.current()
	if current != version {
		return
	}
	if d, ok := s.get(doc.uri); !ok || d != doc {
		return
	}

	diagnostics := s.diagnosticsOf(doc, text, version)
	s.publish(PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     version,
		Diagnostics: diagnostics,
	})
	util.LogF("CASL2 Language Server: published %d diagnostics for %s (version %d)", len(diagnostics), doc.uri, version)
}

// snapshot returns an analysis of the document's latest text, analyzing it
// synchronously when the stored snapshot is stale.
func (s *documentStore) snapshot(doc *document) *casl2.Snapshot {
	text, version := doc.current()
	return s.snapshotOf(doc, text, version)
}

func (s *documentStore) snapshotOf(doc *document, text string, version int) *casl2.Snapshot {
	option := s.option()
	if snap := doc.snapshot.Load(); snap != nil && snap.Version == version && snap.Option == option {
		return snap
	}

	snap := casl2.Analyze(splitLines(text), option)
	snap.Version = version
	for {
		// a newer version stays stored
		stored := doc.snapshot.Load()
		if stored != nil && stored.Version > version {
			return snap
		}
		if doc.snapshot.CompareAndSwap(stored, snap) {
			return snap
		}
	}
}

// services binds the latest snapshot of uri to the document's session.
func (s *documentStore) services(uri DocumentUri) (*languageServices.Services, bool) {
	doc, ok := s.get(uri)
	if !ok {
		return nil, false
	}
	return languageServices.New(uri, s.snapshot(doc), doc.session), true
}

// lintWorker brings the lint state of doc up to date and returns it.
func (s *documentStore) lintWorker(doc *document) *lint.Worker {
	text, version := doc.current()
	doc.lint.Lint(text, version)
	return doc.lint
}

func (s *documentStore) diagnostics(doc *document) []casl2.Diagnostic {
	text, version := doc.current()
	return s.diagnosticsOf(doc, text, version)
}

// diagnosticsOf merges analysis and lint diagnostics of text at version.
func (s *documentStore) diagnosticsOf(doc *document, text string, version int) []casl2.Diagnostic {
	snap := s.snapshotOf(doc, text, version)
	lintDiagnostics := doc.lint.Lint(text, version)
	out := make([]casl2.Diagnostic, 0, len(snap.Diagnostics)+len(lintDiagnostics))
	out = append(out, snap.Diagnostics...)
	out = append(out, lintDiagnostics...)
	return out
}

// reconfigure re-lints and re-publishes every open document, typically after
// a settings change.
func (s *documentStore) reconfigure() {
	linter, enabled := s.linter()
	for _, doc := range s.all() {
		doc.session.Invalidate()
		doc.lint.SetLinter(linter, enabled)
		s.schedule(doc)
	}
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func (s *server) documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}
	s.docs.open(decodedParams.TextDocument)
}

func (s *server) documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}
	s.docs.close(decodedParams.TextDocument.URI)
}

func (s *server) documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}
	if len(decodedParams.ContentChanges) == 0 {
		return
	}

	// full sync: the last change carries the whole document
	text := decodedParams.ContentChanges[len(decodedParams.ContentChanges)-1].Text
	if !s.docs.change(decodedParams.TextDocument.URI, text, decodedParams.TextDocument.Version) {
		util.LogF("CASL2 Language Server: change for unknown document %s", decodedParams.TextDocument.URI)
	}
}

func (s *server) documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	items := []casl2.Diagnostic{}
	if doc, ok := s.docs.get(decodedParams.TextDocument.URI); ok {
		items = s.docs.diagnostics(doc)
	}
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: items,
	})
}

// documentFormatting answers both formatting and willSaveWaitUntil with the
// edits that repair every lint problem.
func (s *server) documentFormatting(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentFormattingParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	edits := []lint.AutoFixEdit{}
	if doc, ok := s.docs.get(decodedParams.TextDocument.URI); ok {
		edits = s.docs.lintWorker(doc).Edits()
	}
	conn.Reply(context.Background(), req.ID, edits)
	util.LogF("CASL2 Language Server: reformatted document with %d edits", len(edits))
}

func (s *server) codeActionRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := CodeActionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	commands := []lint.Command{}
	if doc, ok := s.docs.get(decodedParams.TextDocument.URI); ok {
		commands = s.docs.lintWorker(doc).CodeActions(decodedParams.Context.Diagnostics)
	}
	conn.Reply(context.Background(), req.ID, commands)
}

// executeCommandRequest applies the edits carried by a lint command through
// workspace/applyEdit. Commands for an outdated document version are dropped.
func (s *server) executeCommandRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := ExecuteCommandParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	known := false
	for _, c := range lintCommands {
		known = known || c == decodedParams.Command
	}

	var uri DocumentUri
	var version int
	var edits []languageServices.TextEdit
	if !known || len(decodedParams.Arguments) != 3 ||
		json.Unmarshal(decodedParams.Arguments[0], &uri) != nil ||
		json.Unmarshal(decodedParams.Arguments[1], &version) != nil ||
		json.Unmarshal(decodedParams.Arguments[2], &edits) != nil {
		rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "invalid parameters"}
		rpcErr.SetError("unknown command or malformed arguments: " + decodedParams.Command)
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
		return
	}

	conn.Reply(context.Background(), req.ID, nil)

	doc, ok := s.docs.get(uri)
	if !ok {
		return
	}
	if _, current := doc.current(); current != version {
		util.LogF("CASL2 Language Server: dropping %s for %s, version %d is outdated", decodedParams.Command, uri, version)
		return
	}

	params := ApplyWorkspaceEditParams{
		Label: decodedParams.Command,
		Edit:  languageServices.WorkspaceEdit{Changes: map[DocumentUri][]languageServices.TextEdit{uri: edits}},
	}
	go conn.Call(context.Background(), "workspace/applyEdit", params, nil)
}
