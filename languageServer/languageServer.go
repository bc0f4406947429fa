package languageServer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
	jsonrpc2ws "github.com/sourcegraph/jsonrpc2/websocket"
	"go.uber.org/zap"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/lint"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/util"
)

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// ListenAndServe serves a single client over stdin and stdout.
func ListenAndServe(config util.Config) {
	h := NewHandler(config)
	<-jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{}), h).DisconnectNotify()
}

// ListenAndServeTCP accepts clients on config.TCPAddress, each with its own
// document state, so the server can be debugged remotely.
func ListenAndServeTCP(config util.Config) error {
	lis, err := net.Listen("tcp", config.TCPAddress)
	if err != nil {
		return err
	}
	defer lis.Close()

	util.Logger().Info("CASL2 Language Server: listening for TCP connections", zap.String("address", lis.Addr().String()))

	connectionCount := 0
	for {
		conn, err := lis.Accept()
		if err != nil {
			return err
		}
		connectionCount++
		connectionID := connectionCount
		util.Logger().Info("CASL2 Language Server: received incoming connection", zap.Int("connection", connectionID))

		jsonrpc2Connection := jsonrpc2.NewConn(context.Background(), jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}), NewHandler(config))
		go func() {
			<-jsonrpc2Connection.DisconnectNotify()
			util.Logger().Info("CASL2 Language Server: connection closed", zap.Int("connection", connectionID))
		}()
	}
}

// WebSocketHandler upgrades requests to websockets carrying one JSON-RPC
// message per frame, for editors running in a browser.
func WebSocketHandler(config util.Config) http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			util.Logger().Warn("CASL2 Language Server: websocket upgrade failed", zap.Error(err))
			return
		}
		util.Logger().Info("CASL2 Language Server: websocket client connected", zap.String("remote", r.RemoteAddr))
		<-jsonrpc2.NewConn(r.Context(), jsonrpc2ws.NewObjectStream(conn), NewHandler(config)).DisconnectNotify()
		util.Logger().Info("CASL2 Language Server: websocket client disconnected", zap.String("remote", r.RemoteAddr))
	})
}

func ListenAndServeWebSocket(config util.Config) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", WebSocketHandler(config))
	util.Logger().Info("CASL2 Language Server: listening for websocket connections", zap.String("address", config.WSAddress))
	return http.ListenAndServe(config.WSAddress, mux)
}

type server struct {
	config util.Config
	docs   *documentStore

	mu       sync.Mutex
	conn     *jsonrpc2.Conn
	option   casl2.CompileOption
	shutdown bool
}

// NewHandler returns a handler holding the state of one client connection.
func NewHandler(config util.Config) jsonrpc2.Handler {
	s := &server{
		config: config,
		option: config.CompileOption(),
	}
	s.docs = newDocumentStore(config.Debounce(), s.compileOption, s.currentLinter, s.publishDiagnostics)
	return handler{server: s}
}

func (s *server) compileOption() casl2.CompileOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.option
}

func (s *server) currentLinter() (*lint.Linter, bool) {
	return lint.NewLinter(s.config.Lint.DisabledRules...), s.config.Lint.Enabled
}

func (s *server) setConn(conn *jsonrpc2.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *server) client() *jsonrpc2.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *server) isShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

func (s *server) publishDiagnostics(params PublishDiagnosticsParams) {
	conn := s.client()
	if conn == nil {
		return
	}
	if err := conn.Notify(context.Background(), "textDocument/publishDiagnostics", params); err != nil {
		util.Logger().Warn("CASL2 Language Server: failed to publish diagnostics", zap.String("uri", string(params.URI)), zap.Error(err))
	}
}

type handler struct {
	server *server
}

func (h handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("CASL2 Language Server: received request: %s", req.Method)
	s := h.server
	s.setConn(conn)

	if s.isShutdown() && req.Method != "exit" {
		if !req.Notif {
			conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"})
		}
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(conn, req)
	case "initialized":
		s.registerRemainingCapabilities(conn)
	case "workspace/didChangeConfiguration":
		s.didChangeConfiguration(conn, req)

	case "textDocument/didOpen":
		s.documentOpenNotification(conn, req)
	case "textDocument/didClose":
		s.documentCloseNotification(conn, req)
	case "textDocument/didChange":
		s.documentChangeNotification(conn, req)
	case "textDocument/diagnostic":
		s.documentDiagnostics(conn, req)
	case "textDocument/willSaveWaitUntil", "textDocument/formatting":
		s.documentFormatting(conn, req)
	case "textDocument/codeAction":
		s.codeActionRequest(conn, req)
	case "workspace/executeCommand":
		s.executeCommandRequest(conn, req)

	case "textDocument/hover":
		s.hoverRequest(conn, req)
	case "textDocument/completion":
		s.completionRequest(conn, req)
	case "textDocument/signatureHelp":
		s.signatureHelpRequest(conn, req)
	case "textDocument/definition":
		s.definitionRequest(conn, req)
	case "textDocument/references":
		s.referencesRequest(conn, req)
	case "textDocument/documentHighlight":
		s.documentHighlightRequest(conn, req)
	case "textDocument/rename":
		s.renameRequest(conn, req)
	case "textDocument/documentSymbol":
		s.documentSymbolRequest(conn, req)

	// quitting
	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		for _, doc := range s.docs.all() {
			doc.stopTimer()
		}
		conn.Reply(ctx, req.ID, nil)
	case "exit":
		conn.Close()

	default:
		if !req.Notif {
			conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: "method not supported: " + req.Method,
			})
		}
	}
}

// decodeParams unmarshals the request parameters into v, replying with an
// invalid parameters error when they cannot be decoded.
func decodeParams(conn *jsonrpc2.Conn, req *jsonrpc2.Request, v interface{}) bool {
	var err error
	if req.Params == nil {
		err = json.Unmarshal([]byte("null"), v)
	} else {
		err = json.Unmarshal(*req.Params, v)
	}
	if err == nil {
		return true
	}

	util.LogF("CASL2 Language Server: invalid parameters for %s: %v", req.Method, err)
	if !req.Notif {
		rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "invalid parameters"}
		rpcErr.SetError(err.Error())
		conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
	}
	return false
}

func (s *server) handleInitialize(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}
	s.applySettings(decodedParams.InitializationOptions)

	result := InitializeResult{}
	result.Capabilities.TextDocumentSync = 1
	result.Capabilities.HoverProvider = true
	result.Capabilities.CompletionProvider = CompletionOptions{TriggerCharacters: []string{" ", ","}}
	result.Capabilities.SignatureHelpProvider = SignatureHelpOptions{TriggerCharacters: []string{" ", ","}}
	result.Capabilities.DefinitionProvider = true
	result.Capabilities.ReferencesProvider = true
	result.Capabilities.DocumentHighlightProvider = true
	result.Capabilities.RenameProvider = true
	result.Capabilities.DocumentSymbolProvider = true
	result.Capabilities.CodeActionProvider = true
	result.Capabilities.DocumentFormattingProvider = true
	result.Capabilities.ExecuteCommandProvider = ExecuteCommandOptions{Commands: lintCommands}
	conn.Reply(context.Background(), req.ID, result)
}

func (s *server) registerRemainingCapabilities(conn *jsonrpc2.Conn) {
	// textDocumentSync.willSaveWaitUntil can only be registered dynamically
	util.LogF("CASL2 Language Server: registering remaining capabilities")
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: "casl2",
						},
					},
				},
			},
		},
	}

	go conn.Call(context.Background(), "client/registerCapability", params, nil)
}

func (s *server) applySettings(settings Settings) bool {
	if settings.CASL2 == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := settings.CASL2.apply(s.option)
	changed := next != s.option
	s.option = next
	return changed
}

func (s *server) didChangeConfiguration(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeConfigurationParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}
	if s.applySettings(decodedParams.Settings) {
		util.LogF("CASL2 Language Server: settings changed, re-analyzing open documents")
	}
	s.docs.reconfigure()
}
