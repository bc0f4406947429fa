package casl2

type TokenType int

const (
	TokenLabel TokenType = iota
	TokenSpace
	TokenInstruction
	TokenGR
	TokenCommaSpace
	TokenDecimal
	TokenHex
	TokenString
	TokenLiteral // =10, =#FFFF, ='A'
	TokenComment
	TokenOther
)

// IsAddressToken reports whether a token of type t can stand in an address operand slot.
func IsAddressToken(t TokenType) bool {
	switch t {
	case TokenLabel, TokenDecimal, TokenHex, TokenString, TokenLiteral:
		return true
	}
	return false
}

type Token struct {
	Type  TokenType
	Value string
	Line  int
	Start int // inclusive, UTF-16 column
	End   int // exclusive, UTF-16 column
}

func (t Token) Range() TextRange {
	return TextRange{
		Start: TextPosition{Line: t.Line, Char: t.Start},
		End:   TextPosition{Line: t.Line, Char: t.End},
	}
}

type LineTokens struct {
	Success bool
	Tokens  []Token
}

type LabelKind int

const (
	LabelOrdinary LabelKind = iota
	LabelSubroutineEntry
)

type LabelBinding struct {
	Name  string
	Token Token
	Scope int
	Kind  LabelKind
}

type LabelReference struct {
	Name  string
	Token Token
	Scope int
}

type LabelIndex struct {
	Declarations []LabelBinding
	References   []LabelReference
}

type SubroutineInfo struct {
	Label     string // empty when START has no label
	StartLine int
	EndLine   int // -1 while the subroutine is unterminated
}

type InstructionLine struct {
	Line        int
	Instruction Token
	Operands    []Token
}

type CompileOption struct {
	UseGR8AsSp       bool `json:"useGR8AsSp" yaml:"useGR8AsSp"`
	EnableLabelScope bool `json:"enableLabelScope" yaml:"enableLabelScope"`
}

func DefaultCompileOption() CompileOption {
	return CompileOption{UseGR8AsSp: false, EnableLabelScope: true}
}

// Snapshot is the result of analyzing one version of a document. It is never
// modified after Analyze returns; a new version produces a new Snapshot.
type Snapshot struct {
	Version      int
	Lines        []string
	TokensByLine map[int]LineTokens
	Diagnostics  []Diagnostic
	ScopeByLine  map[int]int
	Labels       LabelIndex
	Subroutines  []SubroutineInfo
	Instructions []InstructionLine
	Option       CompileOption
}

// Instruction returns the instruction node recorded for line, if any.
func (s *Snapshot) Instruction(line int) (InstructionLine, bool) {
	for _, inst := range s.Instructions {
		if inst.Line == line {
			return inst, true
		}
	}
	return InstructionLine{}, false
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type CodeDescription struct {
	URL string `json:"href"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range           TextRange          `json:"range"`
	Message         string             `json:"message"`
	Source          string             `json:"source,omitempty"`
	Code            string             `json:"code,omitempty"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitempty"`
	Severity        DiagnosticSeverity `json:"severity,omitempty"`
}
