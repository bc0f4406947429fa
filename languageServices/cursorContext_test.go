package languageServices_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/languageServices"
)

// contextAtEnd resolves the context with the cursor at the end of text.
func contextAtEnd(text string) languageServices.CursorContext {
	line, _ := casl2.LexLine(text, 0, casl2.DefaultCompileOption())
	return languageServices.ResolveCursorContext(line, len(text), casl2.LookupInstruction)
}

func TestContextInstructionSlot(t *testing.T) {
	for _, text := range []string{" ", "MAIN ", " LD"} {
		ctx := contextAtEnd(text)
		assert.Equal(t, -1, ctx.ArgIndex, text)
		assert.Equal(t, languageServices.CompletionInstruction, ctx.Category, text)
	}

	for _, text := range []string{"", "MAIN", "; comment"} {
		ctx := contextAtEnd(text)
		assert.Equal(t, -1, ctx.ArgIndex, text)
		assert.Equal(t, languageServices.CompletionNone, ctx.Category, text)
	}
}

func TestContextRegisterOnly(t *testing.T) {
	ctx := contextAtEnd(" POP ")
	assert.Equal(t, "POP", ctx.Instruction)
	assert.Equal(t, 0, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionRegister, ctx.Category)

	ctx = contextAtEnd(" POP GR1")
	assert.Equal(t, -1, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionNone, ctx.Category)

	// a partially typed register is still being typed
	ctx = contextAtEnd(" POP GR")
	assert.Equal(t, languageServices.CompletionRegister, ctx.Category)
}

func TestContextAddressIndex(t *testing.T) {
	ctx := contextAtEnd(" JUMP ")
	assert.Equal(t, 0, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionLabels, ctx.Category)

	ctx = contextAtEnd(" JUMP L1, ")
	assert.Equal(t, languageServices.CursorContext{
		Instruction: "JUMP",
		Shape:       casl2.ArgAddressIndex,
		ArgIndex:    1,
		Overload:    1,
		Category:    languageServices.CompletionIndexRegister,
	}, ctx)

	ctx = contextAtEnd(" JUMP L1, GR")
	assert.Equal(t, languageServices.CompletionIndexRegister, ctx.Category)

	ctx = contextAtEnd(" JUMP L1, GR1")
	assert.Equal(t, -1, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionNone, ctx.Category)
}

func TestContextLabelTarget(t *testing.T) {
	ctx := contextAtEnd("MAIN START ")
	assert.Equal(t, 1, ctx.ArgIndex)
	assert.Equal(t, 1, ctx.Overload)
	assert.Equal(t, languageServices.CompletionLabels, ctx.Category)

	ctx = contextAtEnd("MAIN START BEGIN")
	assert.Equal(t, -1, ctx.ArgIndex)
}

func TestContextConstantsAndDecimal(t *testing.T) {
	ctx := contextAtEnd(" DC ")
	assert.Equal(t, 0, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionLabels, ctx.Category)

	for _, text := range []string{" DC 1, ", " DC 1, 'A', #0F, "} {
		ctx = contextAtEnd(text)
		assert.Equal(t, 1, ctx.ArgIndex, text)
		assert.Equal(t, languageServices.CompletionLabels, ctx.Category, text)
	}

	ctx = contextAtEnd(" DS ")
	assert.Equal(t, 0, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionNone, ctx.Category)

	ctx = contextAtEnd(" NOP ")
	assert.Equal(t, -1, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionNone, ctx.Category)
}

func TestContextDualAddress(t *testing.T) {
	ctx := contextAtEnd(" IN BUF, ")
	assert.Equal(t, 1, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionLabels, ctx.Category)

	ctx = contextAtEnd(" IN BUF, LEN")
	assert.Equal(t, -1, ctx.ArgIndex)
}

func TestContextRegisterAddressIndex(t *testing.T) {
	ctx := contextAtEnd(" SLA ")
	assert.Equal(t, languageServices.CompletionRegister, ctx.Category)

	ctx = contextAtEnd(" SLA GR1, ")
	assert.Equal(t, 1, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionLabels, ctx.Category)

	ctx = contextAtEnd(" SLA GR1, 1, ")
	assert.Equal(t, 2, ctx.ArgIndex)
	assert.Equal(t, 1, ctx.Overload)
	assert.Equal(t, languageServices.CompletionIndexRegister, ctx.Category)

	ctx = contextAtEnd(" SLA GR1, 1, GR2")
	assert.Equal(t, -1, ctx.ArgIndex)
}

func TestContextRegisterPairOrAddress(t *testing.T) {
	cases := []struct {
		text     string
		argIndex int
		overload int
		category languageServices.CompletionCategory
	}{
		{" ADDA ", 0, 0, languageServices.CompletionRegister},
		{" ADDA GR1, ", 1, 0, languageServices.CompletionRegisterAndLabels},
		{" ADDA GR1, G", 1, 0, languageServices.CompletionRegisterAndLabels},
		{" ADDA GR1, GR2", -1, 0, languageServices.CompletionNone},
		{" ADDA GR1, BUF", 1, 1, languageServices.CompletionNone},
		{" ADDA GR1, BUF, ", 2, 2, languageServices.CompletionIndexRegister},
		{" ADDA GR1, BUF, GR2", -1, 0, languageServices.CompletionNone},
		{"L1 LD GR0, =10, ", 2, 2, languageServices.CompletionIndexRegister},
	}
	for _, c := range cases {
		ctx := contextAtEnd(c.text)
		assert.Equal(t, c.argIndex, ctx.ArgIndex, c.text)
		assert.Equal(t, c.overload, ctx.Overload, c.text)
		assert.Equal(t, c.category, ctx.Category, c.text)
	}
}

func TestContextCursorInsideLine(t *testing.T) {
	line, _ := casl2.LexLine(" JUMP L1, GR1 ; jump", 0, casl2.DefaultCompileOption())
	// right after "JUMP "
	ctx := languageServices.ResolveCursorContext(line, 6, casl2.LookupInstruction)
	assert.Equal(t, 0, ctx.ArgIndex)
	assert.Equal(t, languageServices.CompletionLabels, ctx.Category)
}

func TestContextCursorInsideLeadingSpace(t *testing.T) {
	line, _ := casl2.LexLine("  LD GR1, DATA", 0, casl2.DefaultCompileOption())
	ctx := languageServices.ResolveCursorContext(line, 1, casl2.LookupInstruction)
	assert.Equal(t, languageServices.CompletionInstruction, ctx.Category)

	line, _ = casl2.LexLine("MAIN   LD GR1, DATA", 0, casl2.DefaultCompileOption())
	ctx = languageServices.ResolveCursorContext(line, 6, casl2.LookupInstruction)
	assert.Equal(t, languageServices.CompletionInstruction, ctx.Category)

	prefix := languageServices.PrefixTokens(line.Tokens, 6)
	require.Len(t, prefix, 2)
	assert.Equal(t, "  ", prefix[1].Value)
	assert.Equal(t, 6, prefix[1].End)
}

func TestContextNeutralOnUnknownOrFailedLines(t *testing.T) {
	for _, text := range []string{" FOO ", " LD GR1, @", " FOO GR1, "} {
		ctx := contextAtEnd(text)
		assert.Equal(t, -1, ctx.ArgIndex, text)
		assert.Equal(t, languageServices.CompletionNone, ctx.Category, text)
		assert.Empty(t, ctx.Instruction, text)
	}
}

func TestContextPanicsOnRegisterPairOnlyEntry(t *testing.T) {
	line, _ := casl2.LexLine(" PAIR GR1, ", 0, casl2.DefaultCompileOption())
	lookup := func(name string) (casl2.InstructionInfo, bool) {
		return casl2.InstructionInfo{Name: name, ArgumentType: casl2.ArgRegisterPairOnly}, true
	}
	assert.Panics(t, func() {
		languageServices.ResolveCursorContext(line, 11, lookup)
	})
}

func TestEveryTableShapeResolves(t *testing.T) {
	for _, info := range casl2.Instructions() {
		assert.NotPanics(t, func() {
			contextAtEnd(" " + info.Name + " ")
		}, info.Name)
	}
}
