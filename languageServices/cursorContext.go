package languageServices

import (
	"fmt"
	"sort"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

type CompletionCategory int

const (
	CompletionNone CompletionCategory = iota
	CompletionInstruction
	CompletionRegister
	CompletionIndexRegister
	CompletionLabels
	CompletionRegisterAndLabels
)

// CursorContext describes what is being typed at the cursor. ArgIndex is -1
// when the line needs no further help.
type CursorContext struct {
	Instruction string
	Shape       casl2.ArgumentType
	ArgIndex    int
	Overload    int
	Category    CompletionCategory
}

// InstructionLookup resolves an instruction name to its grammar entry.
type InstructionLookup func(name string) (casl2.InstructionInfo, bool)

func neutralContext() CursorContext {
	return CursorContext{ArgIndex: -1, Category: CompletionNone}
}

type tokenClass int

const (
	classInstruction tokenClass = iota
	classSpace
	classCommaSpace
	classAddress
	classRegister
)

type contextPattern struct {
	tokens []tokenClass
	// floating patterns only need the instruction somewhere before the matched tokens
	floating bool
	complete bool
	argIndex int
	overload int
	category CompletionCategory
}

var (
	instSpace = []tokenClass{classInstruction, classSpace}
)

func instSpaceTrailing(classes ...tokenClass) []tokenClass {
	return append(append([]tokenClass{}, instSpace...), classes...)
}

// shapePatterns maps each grammar shape to the prefixes it recognises. Each
// list is kept longest first.
var shapePatterns = sortPatterns(map[casl2.ArgumentType][]contextPattern{
	casl2.ArgLabelTarget: {
		// START|
		{tokens: []tokenClass{classInstruction}, argIndex: 0, overload: 0},
		// START |
		{tokens: instSpace, argIndex: 1, overload: 1, category: CompletionLabels},
		// START BEGIN|
		{tokens: instSpaceTrailing(classAddress), complete: true},
	},
	casl2.ArgConstantList: {
		// DC |
		{tokens: instSpace, argIndex: 0, category: CompletionLabels},
		// DC 1, | (any number of constants)
		{tokens: []tokenClass{classCommaSpace}, floating: true, argIndex: 1, category: CompletionLabels},
	},
	casl2.ArgAddressIndex: {
		// JUMP |
		{tokens: instSpace, argIndex: 0, category: CompletionLabels},
		// JUMP L1, |
		{tokens: instSpaceTrailing(classAddress, classCommaSpace), argIndex: 1, overload: 1, category: CompletionIndexRegister},
		// JUMP L1, GR1|
		{tokens: instSpaceTrailing(classAddress, classCommaSpace, classRegister), complete: true},
	},
	casl2.ArgRegisterOnly: {
		// POP |
		{tokens: instSpace, argIndex: 0, category: CompletionRegister},
		// POP GR1|
		{tokens: instSpaceTrailing(classRegister), complete: true},
	},
	casl2.ArgDualAddress: {
		// IN |
		{tokens: instSpace, argIndex: 0, category: CompletionLabels},
		// IN BUF, |
		{tokens: instSpaceTrailing(classAddress, classCommaSpace), argIndex: 1, category: CompletionLabels},
		// IN BUF, LEN|
		{tokens: instSpaceTrailing(classAddress, classCommaSpace, classAddress), complete: true},
	},
	casl2.ArgRegisterAddressIndex: {
		// SLA |
		{tokens: instSpace, argIndex: 0, category: CompletionRegister},
		// SLA GR1, |
		{tokens: instSpaceTrailing(classRegister, classCommaSpace), argIndex: 1, category: CompletionLabels},
		// SLA GR1, 1, |
		{tokens: instSpaceTrailing(classRegister, classCommaSpace, classAddress, classCommaSpace), argIndex: 2, overload: 1, category: CompletionIndexRegister},
		// SLA GR1, 1, GR2|
		{tokens: instSpaceTrailing(classRegister, classCommaSpace, classAddress, classCommaSpace, classRegister), complete: true},
	},
	casl2.ArgRegisterPairOrRegisterAddressIndex: {
		// ADDA |
		{tokens: instSpace, argIndex: 0, category: CompletionRegister},
		// ADDA GR1, | (a label may follow as well)
		{tokens: instSpaceTrailing(classRegister, classCommaSpace), argIndex: 1, category: CompletionRegisterAndLabels},
		// ADDA GR1, GR2|
		{tokens: instSpaceTrailing(classRegister, classCommaSpace, classRegister), complete: true},
		// ADDA GR1, 1|
		{tokens: instSpaceTrailing(classRegister, classCommaSpace, classAddress), argIndex: 1, overload: 1},
		// ADDA GR1, 1, |
		{tokens: instSpaceTrailing(classRegister, classCommaSpace, classAddress, classCommaSpace), argIndex: 2, overload: 2, category: CompletionIndexRegister},
		// ADDA GR1, 1, GR1|
		{tokens: instSpaceTrailing(classRegister, classCommaSpace, classAddress, classCommaSpace, classRegister), complete: true},
	},
})

func sortPatterns(m map[casl2.ArgumentType][]contextPattern) map[casl2.ArgumentType][]contextPattern {
	for _, patterns := range m {
		sort.SliceStable(patterns, func(i, j int) bool {
			return len(patterns[i].tokens) > len(patterns[j].tokens)
		})
	}
	return m
}

// PrefixTokens returns the tokens that end at or before column. A space the
// cursor sits inside is cut at the cursor and kept. The last token is dropped
// unless it is a separator, a register or a finished label, since otherwise
// it is still being typed.
func PrefixTokens(tokens []casl2.Token, column int) []casl2.Token {
	prefix := []casl2.Token{}
	for _, t := range tokens {
		switch {
		case t.End <= column:
			prefix = append(prefix, t)
		case t.Type == casl2.TokenSpace && t.Start < column:
			t.Value = t.Value[:column-t.Start]
			t.End = column
			prefix = append(prefix, t)
		}
	}
	if len(prefix) == 0 {
		return prefix
	}

	last := prefix[len(prefix)-1]
	switch {
	case last.Type == casl2.TokenCommaSpace, last.Type == casl2.TokenSpace, last.Type == casl2.TokenGR:
		return prefix
	case casl2.IsAddressToken(last.Type) && !casl2.LooksLikeRegister(last.Value):
		return prefix
	}
	return prefix[:len(prefix)-1]
}

// ResolveCursorContext determines the argument slot, overload and completion
// category for a cursor placed at column on a lexed line.
func ResolveCursorContext(line casl2.LineTokens, column int, lookup InstructionLookup) CursorContext {
	if !line.Success {
		return neutralContext()
	}

	prefix := PrefixTokens(line.Tokens, column)

	instIndex := -1
	for i, t := range prefix {
		if t.Type == casl2.TokenInstruction {
			instIndex = i
			break
		}
	}

	if instIndex == -1 {
		ctx := neutralContext()
		if matchesTypes(prefix, casl2.TokenSpace) || matchesTypes(prefix, casl2.TokenLabel, casl2.TokenSpace) {
			ctx.Category = CompletionInstruction
		}
		return ctx
	}

	inst := prefix[instIndex]
	info, ok := lookup(inst.Value)
	if !ok {
		return neutralContext()
	}

	ctx := CursorContext{
		Instruction: info.Name,
		Shape:       info.ArgumentType,
		ArgIndex:    0,
		Overload:    0,
		Category:    CompletionNone,
	}

	switch info.ArgumentType {
	case casl2.ArgNone:
		ctx.ArgIndex = -1
		return ctx
	case casl2.ArgDecimalCount:
		return ctx
	case casl2.ArgRegisterPairOnly:
		panic(fmt.Sprintf("instruction %s is declared with the register pair shape, which only exists inside the register pair or address shape", info.Name))
	}

	patterns, ok := shapePatterns[info.ArgumentType]
	if !ok {
		panic(fmt.Sprintf("no cursor patterns for argument type %s of instruction %s", info.ArgumentType, info.Name))
	}

	for _, p := range patterns {
		if !p.matches(prefix, instIndex) {
			continue
		}
		if p.complete {
			ctx.ArgIndex = -1
			ctx.Overload = 0
			ctx.Category = CompletionNone
			return ctx
		}
		ctx.ArgIndex = p.argIndex
		ctx.Overload = p.overload
		ctx.Category = p.category
		return ctx
	}

	return ctx
}

func (p contextPattern) matches(prefix []casl2.Token, instIndex int) bool {
	n := len(p.tokens)
	if len(prefix) < n {
		return false
	}
	suffixStart := len(prefix) - n
	if p.floating && instIndex >= suffixStart {
		return false
	}

	for i, class := range p.tokens {
		idx := suffixStart + i
		t := prefix[idx]
		switch class {
		case classInstruction:
			if idx != instIndex {
				return false
			}
		case classSpace:
			if t.Type != casl2.TokenSpace {
				return false
			}
		case classCommaSpace:
			if t.Type != casl2.TokenCommaSpace {
				return false
			}
		case classAddress:
			if !casl2.IsAddressToken(t.Type) {
				return false
			}
		case classRegister:
			if t.Type != casl2.TokenGR {
				return false
			}
		}
	}
	return true
}

func matchesTypes(tokens []casl2.Token, types ...casl2.TokenType) bool {
	if len(tokens) != len(types) {
		return false
	}
	for i, t := range types {
		if tokens[i].Type != t {
			return false
		}
	}
	return true
}
