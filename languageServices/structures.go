package languageServices

import "github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"

type DocumentUri string

type CompletionItemKind int

const (
	CompletionKindFunction CompletionItemKind = 3
	CompletionKindField    CompletionItemKind = 5
	CompletionKindProperty CompletionItemKind = 10
)

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type CompletionItem struct {
	Label         string             `json:"label"`
	Kind          CompletionItemKind `json:"kind"`
	Detail        string             `json:"detail,omitempty"`
	Documentation *MarkupContent     `json:"documentation,omitempty"`
}

type Hover struct {
	Contents MarkupContent   `json:"contents"`
	Range    *casl2.TextRange `json:"range,omitempty"`
}

type ParameterInformation struct {
	Label string `json:"label"`
}

type SignatureInformation struct {
	Label         string                 `json:"label"`
	Documentation *MarkupContent         `json:"documentation,omitempty"`
	Parameters    []ParameterInformation `json:"parameters"`
}

type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature int                    `json:"activeSignature"`
	ActiveParameter int                    `json:"activeParameter"`
}

type Location struct {
	URI   DocumentUri     `json:"uri"`
	Range casl2.TextRange `json:"range"`
}

type DocumentHighlightKind int

const (
	HighlightRead  DocumentHighlightKind = 2
	HighlightWrite DocumentHighlightKind = 3
)

type DocumentHighlight struct {
	Range casl2.TextRange       `json:"range"`
	Kind  DocumentHighlightKind `json:"kind"`
}

type TextEdit struct {
	Range   casl2.TextRange `json:"range"`
	NewText string          `json:"newText"`
}

type WorkspaceEdit struct {
	Changes map[DocumentUri][]TextEdit `json:"changes"`
}

type SymbolKind int

const (
	SymbolKindField    SymbolKind = 8
	SymbolKindFunction SymbolKind = 12
)

type SymbolInformation struct {
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	Location      Location   `json:"location"`
	ContainerName string     `json:"containerName,omitempty"`
}
