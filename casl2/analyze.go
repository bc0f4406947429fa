package casl2

import "strings"

const maxLabelLength = 8

type analysis struct {
	snapshot     *Snapshot
	currentScope int
	open         int // index into snapshot.Subroutines of the unterminated subroutine, -1 if none
	sawStart     bool
	declared     map[int]map[string]bool
	entries      map[string]bool
}

// Analyze lexes every line and collects scopes, labels and diagnostics into a
// new Snapshot.
func Analyze(lines []string, option CompileOption) *Snapshot {
	a := &analysis{
		snapshot: &Snapshot{
			Lines:        lines,
			TokensByLine: make(map[int]LineTokens, len(lines)),
			Diagnostics:  []Diagnostic{},
			ScopeByLine:  make(map[int]int),
			Option:       option,
		},
		currentScope: 1,
		open:         -1,
		declared:     make(map[int]map[string]bool),
		entries:      make(map[string]bool),
	}

	for i, line := range lines {
		lineTokens, diagnostics := LexLine(line, i, option)
		a.snapshot.TokensByLine[i] = lineTokens
		a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, diagnostics...)
		a.analyzeLine(i, lineTokens)
	}

	if a.open != -1 {
		sub := a.snapshot.Subroutines[a.open]
		a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Errors.MissingEnd(a.startRange(sub.StartLine)))
	}

	a.checkReferences()
	return a.snapshot
}

// AnalyzeText splits text into lines the way editors number them.
func AnalyzeText(text string, option CompileOption) *Snapshot {
	return Analyze(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"), option)
}

func (a *analysis) analyzeLine(line int, lineTokens LineTokens) {
	tokens := lineTokens.Tokens
	var label *Token
	var instruction *Token
	operands := []Token{}
	for i := range tokens {
		switch {
		case i == 0 && tokens[i].Type == TokenLabel:
			label = &tokens[i]
		case tokens[i].Type == TokenInstruction && instruction == nil:
			instruction = &tokens[i]
		case instruction != nil && tokens[i].Type != TokenSpace && tokens[i].Type != TokenCommaSpace && tokens[i].Type != TokenComment:
			operands = append(operands, tokens[i])
		}
	}

	if label == nil && instruction == nil {
		// blank and comment-only lines belong to whichever scope precedes them
		return
	}

	scope := a.currentScope
	a.snapshot.ScopeByLine[line] = scope

	isStart := false
	isEnd := false
	if instruction != nil {
		a.snapshot.Instructions = append(a.snapshot.Instructions, InstructionLine{
			Line:        line,
			Instruction: *instruction,
			Operands:    operands,
		})

		if _, ok := LookupInstruction(instruction.Value); !ok {
			a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Errors.InvalidInstruction(instruction.Value, instruction.Range()))
		}

		isStart = instruction.Value == "START"
		isEnd = instruction.Value == "END"
		if !isStart && !a.sawStart {
			a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Errors.MissingStart(instruction.Range()))
			a.sawStart = true
		}
	}

	if isStart {
		if a.open != -1 {
			prev := a.snapshot.Subroutines[a.open]
			a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Errors.MissingEnd(a.startRange(prev.StartLine)))
		}
		name := ""
		if label != nil {
			name = label.Value
		}
		a.snapshot.Subroutines = append(a.snapshot.Subroutines, SubroutineInfo{Label: name, StartLine: line, EndLine: -1})
		a.open = len(a.snapshot.Subroutines) - 1
		a.sawStart = true
	}

	if label != nil {
		a.declare(*label, scope, isStart)
	}

	for _, op := range operands {
		if op.Type == TokenLabel {
			a.snapshot.Labels.References = append(a.snapshot.Labels.References, LabelReference{
				Name:  op.Value,
				Token: op,
				Scope: scope,
			})
		}
	}

	if isEnd {
		if a.open == -1 {
			a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Errors.MissingStart(instruction.Range()))
		} else {
			a.snapshot.Subroutines[a.open].EndLine = line
			a.open = -1
		}
		if a.snapshot.Option.EnableLabelScope {
			a.currentScope++
		}
	}
}

func (a *analysis) declare(label Token, scope int, isEntry bool) {
	kind := LabelOrdinary
	if isEntry {
		kind = LabelSubroutineEntry
	}

	if len(label.Value) > maxLabelLength {
		a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Warnings.LabelTooLong(label.Value, maxLabelLength, label.Range()))
	}
	if LooksLikeRegister(label.Value) {
		a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Warnings.LabelLooksLikeRegister(label.Value, label.Range()))
	}

	if a.declared[scope] == nil {
		a.declared[scope] = make(map[string]bool)
	}
	if a.declared[scope][label.Value] || (isEntry && a.entries[label.Value]) {
		a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Errors.DuplicateLabel(label.Value, label.Range()))
		return
	}
	a.declared[scope][label.Value] = true
	if isEntry {
		a.entries[label.Value] = true
	}

	a.snapshot.Labels.Declarations = append(a.snapshot.Labels.Declarations, LabelBinding{
		Name:  label.Value,
		Token: label,
		Scope: scope,
		Kind:  kind,
	})
}

func (a *analysis) checkReferences() {
	for _, ref := range a.snapshot.Labels.References {
		if a.declared[ref.Scope][ref.Name] || a.entries[ref.Name] {
			continue
		}
		a.snapshot.Diagnostics = append(a.snapshot.Diagnostics, Errors.UndefinedLabel(ref.Name, ref.Token.Range()))
	}
}

func (a *analysis) startRange(line int) TextRange {
	inst, ok := a.snapshot.Instruction(line)
	if !ok {
		return TextRange{Start: TextPosition{Line: line}, End: TextPosition{Line: line}}
	}
	return inst.Instruction.Range()
}
