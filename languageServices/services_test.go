package languageServices_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/languageServices"
)

const uri = languageServices.DocumentUri("file:///prog.cas")

const editing = `MAIN START
 LD GR1,
 CALL SUB
 RET
DATA DC 10
 END
SUB START
 RET
LOCAL DS 1
 END`

func pos(line, char int) casl2.TextPosition {
	return casl2.TextPosition{Line: line, Char: char}
}

func labels(items []languageServices.CompletionItem) []string {
	out := []string{}
	for _, item := range items {
		out = append(out, item.Label)
	}
	return out
}

func TestCompletionRegisterAndLabels(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, editing), nil)

	items := svc.Completion(pos(1, 9))
	names := labels(items)
	require.Len(t, names, 11)
	assert.Equal(t, []string{"GR0", "GR1", "GR2", "GR3", "GR4", "GR5", "GR6", "GR7"}, names[:8])
	assert.ElementsMatch(t, []string{"DATA", "MAIN", "SUB"}, names[8:])
	assert.NotContains(t, names, "LOCAL")

	for _, item := range items[8:] {
		if item.Label == "DATA" {
			assert.Equal(t, languageServices.CompletionKindField, item.Kind)
		} else {
			assert.Equal(t, languageServices.CompletionKindFunction, item.Kind)
		}
	}
}

func TestCompletionInstructionsAreDeduplicated(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, "MAIN START\n \n END"), nil)
	names := labels(svc.Completion(pos(1, 1)))

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "%s listed twice", n)
		seen[n] = true
	}
	assert.True(t, seen["LD"])
	assert.True(t, seen["START"])
}

func TestCompletionIndexRegistersSkipGR0(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, "MAIN START\n JUMP MAIN, \n END"), nil)
	names := labels(svc.Completion(pos(1, 12)))
	assert.NotContains(t, names, "GR0")
	assert.Contains(t, names, "GR7")
}

func TestCompletionIsMemoizedPerVersionAndPosition(t *testing.T) {
	session := languageServices.NewSession()
	snap := analyze(t, editing)
	svc := languageServices.New(uri, snap, session)

	first := svc.Completion(pos(1, 9))
	second := svc.Completion(pos(1, 9))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, session.Computations())

	svc.Completion(pos(1, 8))
	assert.Equal(t, 2, session.Computations())

	next := casl2.AnalyzeText(editing, casl2.DefaultCompileOption())
	next.Version = snap.Version + 1
	languageServices.New(uri, next, session).Completion(pos(1, 8))
	assert.Equal(t, 3, session.Computations())

	session.Invalidate()
	languageServices.New(uri, next, session).Completion(pos(1, 8))
	assert.Equal(t, 4, session.Computations())
}

func TestCompletionOutsideDocument(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, editing), nil)
	assert.Empty(t, svc.Completion(pos(42, 3)))
}

func TestSignatureHelp(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, "MAIN START\n JUMP L1, \nL1 NOP\n END"), nil)

	help := svc.SignatureHelp(pos(1, 10))
	require.NotNil(t, help)
	assert.Equal(t, 1, help.ActiveParameter)
	assert.Equal(t, 1, help.ActiveSignature)
	require.Len(t, help.Signatures, 2)
	assert.Equal(t, "JUMP adr", help.Signatures[0].Label)
	assert.Equal(t, "JUMP adr, x", help.Signatures[1].Label)

	assert.Nil(t, svc.SignatureHelp(pos(3, 4)), "END takes no operands")
}

func TestSignatureHelpEmptyWithoutInstruction(t *testing.T) {
	text := "; header\nLBL\n   \n"
	svc := languageServices.New(uri, analyze(t, text), nil)
	for line, content := range []string{"; header", "LBL", "   ", ""} {
		for col := 0; col <= len(content); col++ {
			assert.Nil(t, svc.SignatureHelp(pos(line, col)), "line %d col %d", line, col)
		}
	}
}

func TestDefinition(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, twoPrograms), nil)

	locs := svc.Definition(pos(2, 7))
	require.Len(t, locs, 1)
	assert.Equal(t, uri, locs[0].URI)
	assert.Equal(t, casl2.TextRange{Start: pos(7, 0), End: pos(7, 3)}, locs[0].Range)

	locs = svc.Definition(pos(8, 10))
	require.Len(t, locs, 1)
	assert.Equal(t, 10, locs[0].Range.Start.Line, "DATA resolves inside its own program")

	assert.Empty(t, svc.Definition(pos(1, 2)), "instruction slot is not a label")
	assert.Empty(t, svc.Definition(pos(9, 8)), "undefined label")
}

func TestReferencesAndHighlights(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, twoPrograms), nil)

	refs := svc.References(pos(1, 10), true)
	require.Len(t, refs, 2)
	assert.Equal(t, 4, refs[0].Range.Start.Line)
	assert.Equal(t, 1, refs[1].Range.Start.Line)

	refs = svc.References(pos(1, 10), false)
	require.Len(t, refs, 1)

	highlights := svc.Highlights(pos(4, 1))
	require.Len(t, highlights, 2)
	assert.Equal(t, languageServices.HighlightWrite, highlights[0].Kind)
	assert.Equal(t, languageServices.HighlightRead, highlights[1].Kind)

	assert.Empty(t, svc.Highlights(pos(6, 3)))
}

func TestRename(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, twoPrograms), nil)

	edit := svc.Rename(pos(10, 0), "BUF")
	edits := edit.Changes[uri]
	require.Len(t, edits, 2)
	for _, e := range edits {
		assert.Equal(t, "BUF", e.NewText)
		assert.Equal(t, 4, e.Range.End.Char-e.Range.Start.Char)
	}
	assert.Equal(t, 10, edits[0].Range.Start.Line)
	assert.Equal(t, 8, edits[1].Range.Start.Line)
}

func TestDocumentSymbols(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, twoPrograms), nil)
	symbols := svc.DocumentSymbols()
	require.Len(t, symbols, 4)

	assert.Equal(t, "MAIN", symbols[0].Name)
	assert.Equal(t, languageServices.SymbolKindFunction, symbols[0].Kind)
	assert.Equal(t, "SUB", symbols[1].Name)

	assert.Equal(t, "DATA", symbols[2].Name)
	assert.Equal(t, languageServices.SymbolKindField, symbols[2].Kind)
	assert.Equal(t, "MAIN", symbols[2].ContainerName)
	assert.Equal(t, "SUB", symbols[3].ContainerName)
}

func TestHover(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, twoPrograms), nil)

	h := svc.Hover(pos(1, 2))
	require.NotNil(t, h)
	assert.Equal(t, "markdown", h.Contents.Kind)
	assert.Contains(t, h.Contents.Value, "LD instruction")
	assert.Contains(t, h.Contents.Value, "LD r1, adr, x")

	h = svc.Hover(pos(1, 5))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "Register `GR1`")

	h = svc.Hover(pos(1, 10))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "Declared on line 5")

	h = svc.Hover(pos(0, 1))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "subroutine `MAIN`")

	h = svc.Hover(pos(4, 9))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "#000A")

	assert.Nil(t, svc.Hover(pos(6, 4)))
}

const wideText = `MAIN START
MSG DC 'ああ', X ; 文字列
X DS 1
 END`

func TestNavigationUsesUTF16Columns(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, wideText), nil)

	locs := svc.Definition(pos(1, 14))
	require.Len(t, locs, 1)
	assert.Equal(t, casl2.TextRange{Start: pos(2, 0), End: pos(2, 1)}, locs[0].Range)

	highlights := svc.Highlights(pos(2, 0))
	require.Len(t, highlights, 2)
	assert.Equal(t, casl2.TextRange{Start: pos(1, 13), End: pos(1, 14)}, highlights[1].Range)

	edits := svc.Rename(pos(1, 13), "Y").Changes[uri]
	require.Len(t, edits, 2)
	assert.Equal(t, pos(1, 13), edits[1].Range.Start)
}

func TestHoverOpcodesAndConstantRange(t *testing.T) {
	svc := languageServices.New(uri, analyze(t, twoPrograms), nil)
	h := svc.Hover(pos(1, 2))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "Opcode: `#10`, `#14`")

	h = svc.Hover(pos(0, 6))
	require.NotNil(t, h)
	assert.NotContains(t, h.Contents.Value, "Opcode")

	svc = languageServices.New(uri, analyze(t, "MAIN START\nBIG DC 70000\nHEX DC #12345\nTOP DC 65535\n END"), nil)
	h = svc.Hover(pos(1, 8))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "does not fit in a 16-bit word")

	h = svc.Hover(pos(2, 8))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "does not fit in a 16-bit word")

	h = svc.Hover(pos(3, 8))
	require.NotNil(t, h)
	assert.Contains(t, h.Contents.Value, "#FFFF")
}
