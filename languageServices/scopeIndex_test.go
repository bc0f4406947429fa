package languageServices_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/languageServices"
)

const twoPrograms = `MAIN START
 LD GR1, DATA
 CALL SUB
 RET
DATA DC 10
 END
; subroutine
SUB START
 LD GR2, DATA
 JUMP NOWHERE
DATA DS 1
 END`

func analyze(t *testing.T, text string) *casl2.Snapshot {
	t.Helper()
	snap := casl2.AnalyzeText(text, casl2.DefaultCompileOption())
	require.NotNil(t, snap)
	return snap
}

func TestResolveScopeAroundBoundaries(t *testing.T) {
	idx := languageServices.NewScopeIndex(analyze(t, twoPrograms), true)

	assert.Equal(t, 1, idx.ResolveScope(0))
	assert.Equal(t, 1, idx.ResolveScope(3))
	assert.Equal(t, 1, idx.ResolveScope(5), "END line keeps the scope it closes")
	assert.Equal(t, 2, idx.ResolveScope(6), "unrecorded line after END belongs to the next program")
	assert.Equal(t, 2, idx.ResolveScope(7))
	assert.Equal(t, 3, idx.ResolveScope(40))
}

func TestResolveScopeRecordedBreakpoints(t *testing.T) {
	snap := &casl2.Snapshot{
		ScopeByLine: map[int]int{0: 1, 5: 2},
		Subroutines: []casl2.SubroutineInfo{{Label: "A", StartLine: 0, EndLine: 5}},
	}

	sensitive := languageServices.NewScopeIndex(snap, true)
	assert.Equal(t, 1, sensitive.ResolveScope(3))
	assert.Equal(t, 2, sensitive.ResolveScope(5))
	assert.Equal(t, 3, sensitive.ResolveScope(6))

	insensitive := languageServices.NewScopeIndex(snap, false)
	assert.Equal(t, 2, insensitive.ResolveScope(6))
}

func TestResolveScopeDefaultsToFirstScope(t *testing.T) {
	snap := &casl2.Snapshot{ScopeByLine: map[int]int{4: 3}}
	idx := languageServices.NewScopeIndex(snap, true)
	assert.Equal(t, 1, idx.ResolveScope(0))
	assert.Equal(t, 1, idx.ResolveScope(-2))
	assert.Equal(t, 3, idx.ResolveScope(9))
}

func TestFindDeclarationPerScope(t *testing.T) {
	idx := languageServices.NewScopeIndex(analyze(t, twoPrograms), true)

	data, ok := idx.FindDeclaration("DATA", 1)
	require.True(t, ok)
	assert.Equal(t, 4, data.Token.Line)

	data, ok = idx.FindDeclaration("DATA", 2)
	require.True(t, ok)
	assert.Equal(t, 10, data.Token.Line)

	sub, ok := idx.FindDeclaration("SUB", 1)
	require.True(t, ok, "subroutine entries are visible from other programs")
	assert.Equal(t, casl2.LabelSubroutineEntry, sub.Kind)
	assert.Equal(t, 7, sub.Token.Line)

	_, ok = idx.FindDeclaration("NOWHERE", 2)
	assert.False(t, ok)

	_, ok = idx.FindDeclaration("DATA", 99)
	assert.False(t, ok)
}

func TestFindAllReferencesWithoutDeclaration(t *testing.T) {
	idx := languageServices.NewScopeIndex(analyze(t, twoPrograms), true)

	refs := idx.FindAllReferences("NOWHERE", 2)
	assert.Nil(t, refs.Declaration)
	require.Len(t, refs.References, 1)
	for _, r := range refs.References {
		assert.Equal(t, 2, r.Scope)
	}
}

func TestFindAllReferencesStayInScope(t *testing.T) {
	idx := languageServices.NewScopeIndex(analyze(t, twoPrograms), true)

	refs := idx.FindAllReferences("DATA", 1)
	require.NotNil(t, refs.Declaration)
	assert.Equal(t, 4, refs.Declaration.Token.Line)
	require.Len(t, refs.References, 1)
	assert.Equal(t, 1, refs.References[0].Token.Line)

	// SUB is referenced from the first program but declared in the second
	refs = idx.FindAllReferences("SUB", 2)
	require.NotNil(t, refs.Declaration)
	require.Len(t, refs.References, 1)
	assert.Equal(t, 2, refs.References[0].Token.Line)
}

func TestAllLabelsVisibleRoundTrip(t *testing.T) {
	idx := languageServices.NewScopeIndex(analyze(t, twoPrograms), true)

	for scope := 1; scope <= 3; scope++ {
		visible := idx.AllLabelsVisible(scope)
		for _, b := range append(visible.Labels, visible.SubroutineLabels...) {
			decl, ok := idx.FindDeclaration(b.Name, scope)
			require.True(t, ok, "%s in scope %d", b.Name, scope)
			assert.Equal(t, b.Name, decl.Token.Value)
		}
	}

	visible := idx.AllLabelsVisible(1)
	require.Len(t, visible.Labels, 1)
	assert.Equal(t, "DATA", visible.Labels[0].Name)
	assert.Len(t, visible.SubroutineLabels, 2)
}

func TestLocalLabelHidesSubroutineEntry(t *testing.T) {
	snap := analyze(t, "MAIN START\n JUMP SUB\n END\nSUB START\n RET\n END\nTHIRD START\n JUMP SUB\nSUB DS 1\n END")
	idx := languageServices.NewScopeIndex(snap, true)

	visible := idx.AllLabelsVisible(3)
	names := []string{}
	for _, b := range append(visible.Labels, visible.SubroutineLabels...) {
		names = append(names, b.Name)
	}
	assert.ElementsMatch(t, []string{"SUB", "MAIN", "THIRD"}, names)

	decl, ok := idx.FindDeclaration("SUB", 3)
	require.True(t, ok)
	assert.Equal(t, casl2.LabelOrdinary, decl.Kind)

	refs := idx.FindAllReferences("SUB", 2)
	require.Len(t, refs.References, 1, "the third program's reference binds to its own label")
	assert.Equal(t, 1, refs.References[0].Token.Line)
}

func TestAllLabels(t *testing.T) {
	idx := languageServices.NewScopeIndex(analyze(t, twoPrograms), true)
	all := idx.AllLabels()
	assert.Len(t, all.Labels, 2)
	assert.Len(t, all.SubroutineLabels, 2)
}
