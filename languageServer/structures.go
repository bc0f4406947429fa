package languageServer

import (
	"encoding/json"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/languageServices"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/lint"
)

type DocumentUri = languageServices.DocumentUri

type TextDocumentItem struct {
	URI        DocumentUri `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type TextDocumentIdentifier struct {
	URI DocumentUri `json:"uri"`
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type VersionedTextDocumentIdentifier struct {
	URI     DocumentUri `json:"uri"`
	Version int         `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"` // only will register the full change capability
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// ServerSettings overrides the configured compile options. Fields the client
// leaves out keep their current value.
type ServerSettings struct {
	UseGR8AsSp       *bool `json:"useGR8AsSp"`
	EnableLabelScope *bool `json:"enableLabelScope"`
}

func (s ServerSettings) apply(option casl2.CompileOption) casl2.CompileOption {
	if s.UseGR8AsSp != nil {
		option.UseGR8AsSp = *s.UseGR8AsSp
	}
	if s.EnableLabelScope != nil {
		option.EnableLabelScope = *s.EnableLabelScope
	}
	return option
}

// Settings is the shape of initializationOptions and of the settings sent
// with workspace/didChangeConfiguration.
type Settings struct {
	CASL2 *ServerSettings `json:"casl2"`
}

type InitializeParams struct {
	ProcessID             int      `json:"processId"`
	InitializationOptions Settings `json:"initializationOptions"`
}

type DidChangeConfigurationParams struct {
	Settings Settings `json:"settings"`
}

type DocumentDiagnosticsParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type DocumentDiagnosticsReport struct {
	Kind  string             `json:"kind"` // should always be "full"
	Items []casl2.Diagnostic `json:"items"`
}

type PublishDiagnosticsParams struct {
	URI         DocumentUri        `json:"uri"`
	Version     int                `json:"version"`
	Diagnostics []casl2.Diagnostic `json:"diagnostics"`
}

// DocumentFormattingParams also decodes willSaveWaitUntil params; the save
// reason is ignored.
type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     casl2.TextPosition     `json:"position"`
}

type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

type ReferenceParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     casl2.TextPosition     `json:"position"`
	Context      ReferenceContext       `json:"context"`
}

type RenameParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     casl2.TextPosition     `json:"position"`
	NewName      string                 `json:"newName"`
}

type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type CodeActionContext struct {
	Diagnostics []casl2.Diagnostic `json:"diagnostics"`
}

type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        casl2.TextRange        `json:"range"`
	Context      CodeActionContext      `json:"context"`
}

type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments"`
}

type ApplyWorkspaceEditParams struct {
	Label string                         `json:"label,omitempty"`
	Edit  languageServices.WorkspaceEdit `json:"edit"`
}

// Capabilities

type DiagnosticOptions struct {
	WorkDoneProgress      bool `json:"workDoneProgress"`
	InterFileDependencies bool `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool `json:"workspaceDiagnostics"`
}

type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type SignatureHelpOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}

type ServerCapabilities struct {
	TextDocumentSync           int                   `json:"textDocumentSync"`
	DiagnosticProvider         DiagnosticOptions     `json:"diagnosticProvider"`
	HoverProvider              bool                  `json:"hoverProvider"`
	CompletionProvider         CompletionOptions     `json:"completionProvider"`
	SignatureHelpProvider      SignatureHelpOptions  `json:"signatureHelpProvider"`
	DefinitionProvider         bool                  `json:"definitionProvider"`
	ReferencesProvider         bool                  `json:"referencesProvider"`
	DocumentHighlightProvider  bool                  `json:"documentHighlightProvider"`
	RenameProvider             bool                  `json:"renameProvider"`
	DocumentSymbolProvider     bool                  `json:"documentSymbolProvider"`
	CodeActionProvider         bool                  `json:"codeActionProvider"`
	DocumentFormattingProvider bool                  `json:"documentFormattingProvider"`
	ExecuteCommandProvider     ExecuteCommandOptions `json:"executeCommandProvider"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}

type DocumentFilter struct {
	Language string `json:"language"`
	Scheme   string `json:"scheme"`
}

type DocumentSelector []DocumentFilter

type TextDocumentRegistrationOptions struct {
	DocumentSelector DocumentSelector `json:"documentSelector"`
}

type Registration struct {
	ID              string      `json:"id"`
	Method          string      `json:"method"`
	RegisterOptions interface{} `json:"registerOptions"`
}

type RegistrationParams struct {
	Registrations []Registration `json:"registrations"`
}

var lintCommands = []string{lint.CommandApplySingleFix, lint.CommandApplySameRuleFix, lint.CommandApplyAllFixes}
