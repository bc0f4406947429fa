package languageServices

import (
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

// Services answers editor queries for one analyzed version of a document.
// All positions are zero based and ranges are end exclusive.
type Services struct {
	uri      DocumentUri
	snapshot *casl2.Snapshot
	scopes   *ScopeIndex
	session  *Session
}

// New binds a snapshot to the session of its document. A nil session
// disables cursor context memoization.
func New(uri DocumentUri, snapshot *casl2.Snapshot, session *Session) *Services {
	if session == nil {
		session = NewSession()
	}
	return &Services{
		uri:      uri,
		snapshot: snapshot,
		scopes:   NewScopeIndex(snapshot, snapshot.Option.EnableLabelScope),
		session:  session,
	}
}

// CursorContext resolves the edit context at pos.
func (s *Services) CursorContext(pos casl2.TextPosition) CursorContext {
	return s.session.CursorContext(s.snapshot.Version, pos, func() CursorContext {
		line, ok := s.snapshot.TokensByLine[pos.Line]
		if !ok {
			return neutralContext()
		}
		return ResolveCursorContext(line, pos.Char, casl2.LookupInstruction)
	})
}

func (s *Services) Completion(pos casl2.TextPosition) []CompletionItem {
	ctx := s.CursorContext(pos)
	return CompletionItems(ctx.Category, s.scopes, s.scopes.ResolveScope(pos.Line), s.snapshot.Option)
}

// Hover returns nil when there is nothing to describe at pos.
func (s *Services) Hover(pos casl2.TextPosition) *Hover {
	text, tok, ok := s.hoverText(pos)
	if !ok {
		return nil
	}
	r := tok.Range()
	return &Hover{
		Contents: MarkupContent{Kind: "markdown", Value: text},
		Range:    &r,
	}
}

// SignatureHelp returns nil when the cursor is not inside an operand list.
func (s *Services) SignatureHelp(pos casl2.TextPosition) *SignatureHelp {
	return signatureHelpFor(s.CursorContext(pos))
}

func (s *Services) location(tok casl2.Token) Location {
	return Location{URI: s.uri, Range: tok.Range()}
}

// labelAt returns the label token under the cursor. Instruction tokens count
// too, since a label may share its name with an instruction, but only at the
// label slot or in the operand field.
func (s *Services) labelAt(pos casl2.TextPosition) (casl2.Token, bool) {
	line, ok := s.snapshot.TokensByLine[pos.Line]
	if !ok {
		return casl2.Token{}, false
	}

	tok, ok := tokenOfTypeAt(line.Tokens, casl2.TokenLabel, pos.Char)
	if !ok {
		tok, ok = tokenOfTypeAt(line.Tokens, casl2.TokenInstruction, pos.Char)
	}
	if !ok {
		return casl2.Token{}, false
	}

	index := -1
	for i, t := range line.Tokens {
		if t == tok {
			index = i
			break
		}
	}
	if index == 0 || index > 2 {
		return tok, true
	}
	return casl2.Token{}, false
}

func (s *Services) allReferences(pos casl2.TextPosition) (AllReferences, bool) {
	tok, ok := s.labelAt(pos)
	if !ok {
		return AllReferences{}, false
	}
	return s.scopes.FindAllReferences(tok.Value, s.scopes.ResolveScope(pos.Line)), true
}

func (s *Services) Definition(pos casl2.TextPosition) []Location {
	tok, ok := s.labelAt(pos)
	if !ok {
		return []Location{}
	}
	decl, ok := s.scopes.FindDeclaration(tok.Value, s.scopes.ResolveScope(pos.Line))
	if !ok {
		return []Location{}
	}
	return []Location{s.location(decl.Token)}
}

func (s *Services) References(pos casl2.TextPosition, includeDeclaration bool) []Location {
	locations := []Location{}
	refs, ok := s.allReferences(pos)
	if !ok {
		return locations
	}
	if includeDeclaration && refs.Declaration != nil {
		locations = append(locations, s.location(refs.Declaration.Token))
	}
	for _, r := range refs.References {
		locations = append(locations, s.location(r.Token))
	}
	return locations
}

// Highlights marks the declaration as a write and every reference as a read.
func (s *Services) Highlights(pos casl2.TextPosition) []DocumentHighlight {
	highlights := []DocumentHighlight{}
	refs, ok := s.allReferences(pos)
	if !ok {
		return highlights
	}
	if refs.Declaration != nil {
		highlights = append(highlights, DocumentHighlight{Range: refs.Declaration.Token.Range(), Kind: HighlightWrite})
	}
	for _, r := range refs.References {
		highlights = append(highlights, DocumentHighlight{Range: r.Token.Range(), Kind: HighlightRead})
	}
	return highlights
}

// Rename replaces every highlighted range with newName.
func (s *Services) Rename(pos casl2.TextPosition, newName string) WorkspaceEdit {
	edits := []TextEdit{}
	for _, h := range s.Highlights(pos) {
		edits = append(edits, TextEdit{Range: h.Range, NewText: newName})
	}
	return WorkspaceEdit{Changes: map[DocumentUri][]TextEdit{s.uri: edits}}
}

// DocumentSymbols lists subroutine entries as functions and every other label
// as a field, named after its enclosing subroutine when scopes are enabled.
func (s *Services) DocumentSymbols() []SymbolInformation {
	all := s.scopes.AllLabels()
	symbols := make([]SymbolInformation, 0, len(all.Labels)+len(all.SubroutineLabels))

	for _, b := range all.SubroutineLabels {
		symbols = append(symbols, SymbolInformation{Name: b.Name, Kind: SymbolKindFunction, Location: s.location(b.Token)})
	}

	for _, b := range all.Labels {
		sym := SymbolInformation{Name: b.Name, Kind: SymbolKindField, Location: s.location(b.Token)}
		if s.snapshot.Option.EnableLabelScope {
			for _, entry := range all.SubroutineLabels {
				if entry.Scope == b.Scope {
					sym.ContainerName = entry.Name
					break
				}
			}
		}
		symbols = append(symbols, sym)
	}
	return symbols
}

// tokenOfTypeAt returns the last token of type t touching column.
func tokenOfTypeAt(tokens []casl2.Token, t casl2.TokenType, column int) (casl2.Token, bool) {
	found := false
	var out casl2.Token
	for _, tok := range tokens {
		if tok.Type == t && tok.Start <= column && column <= tok.End {
			out = tok
			found = true
		}
	}
	return out, found
}
