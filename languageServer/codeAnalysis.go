package languageServer

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/languageServices"
)

func (s *server) hoverRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	services, ok := s.docs.services(decodedParams.TextDocument.URI)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}

	hover := services.Hover(decodedParams.Position)
	if hover == nil {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}
	conn.Reply(context.Background(), req.ID, hover)
}

func (s *server) completionRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	items := []languageServices.CompletionItem{}
	if services, ok := s.docs.services(decodedParams.TextDocument.URI); ok {
		items = services.Completion(decodedParams.Position)
	}
	conn.Reply(context.Background(), req.ID, items)
}

func (s *server) signatureHelpRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	services, ok := s.docs.services(decodedParams.TextDocument.URI)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}

	help := services.SignatureHelp(decodedParams.Position)
	if help == nil {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}
	conn.Reply(context.Background(), req.ID, help)
}

func (s *server) definitionRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	locations := []languageServices.Location{}
	if services, ok := s.docs.services(decodedParams.TextDocument.URI); ok {
		locations = services.Definition(decodedParams.Position)
	}
	conn.Reply(context.Background(), req.ID, locations)
}

func (s *server) referencesRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := ReferenceParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	locations := []languageServices.Location{}
	if services, ok := s.docs.services(decodedParams.TextDocument.URI); ok {
		locations = services.References(decodedParams.Position, decodedParams.Context.IncludeDeclaration)
	}
	conn.Reply(context.Background(), req.ID, locations)
}

func (s *server) documentHighlightRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	highlights := []languageServices.DocumentHighlight{}
	if services, ok := s.docs.services(decodedParams.TextDocument.URI); ok {
		highlights = services.Highlights(decodedParams.Position)
	}
	conn.Reply(context.Background(), req.ID, highlights)
}

func (s *server) renameRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := RenameParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	services, ok := s.docs.services(decodedParams.TextDocument.URI)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}
	conn.Reply(context.Background(), req.ID, services.Rename(decodedParams.Position, decodedParams.NewName))
}

func (s *server) documentSymbolRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentSymbolParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	symbols := []languageServices.SymbolInformation{}
	if services, ok := s.docs.services(decodedParams.TextDocument.URI); ok {
		symbols = services.DocumentSymbols()
	}
	conn.Reply(context.Background(), req.ID, symbols)
}
