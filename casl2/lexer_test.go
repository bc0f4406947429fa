package casl2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

type tokenShape struct {
	Type  casl2.TokenType
	Value string
}

func shapes(tokens []casl2.Token) []tokenShape {
	out := make([]tokenShape, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, tokenShape{t.Type, t.Value})
	}
	return out
}

func TestLexLabelInstructionOperands(t *testing.T) {
	res, diags := casl2.LexLine("MAIN LD GR1, DATA, GR2 ; load", 0, casl2.DefaultCompileOption())
	require.True(t, res.Success)
	assert.Empty(t, diags)
	assert.Equal(t, []tokenShape{
		{casl2.TokenLabel, "MAIN"},
		{casl2.TokenSpace, " "},
		{casl2.TokenInstruction, "LD"},
		{casl2.TokenSpace, " "},
		{casl2.TokenGR, "GR1"},
		{casl2.TokenCommaSpace, ", "},
		{casl2.TokenLabel, "DATA"},
		{casl2.TokenCommaSpace, ", "},
		{casl2.TokenGR, "GR2"},
		{casl2.TokenSpace, " "},
		{casl2.TokenComment, "; load"},
	}, shapes(res.Tokens))
}

func TestLexOffsetsAreHalfOpenAndOrdered(t *testing.T) {
	res, _ := casl2.LexLine(" JUMP L1, GR1", 3, casl2.DefaultCompileOption())
	require.True(t, res.Success)
	prevEnd := 0
	for _, tok := range res.Tokens {
		assert.Equal(t, 3, tok.Line)
		assert.GreaterOrEqual(t, tok.Start, prevEnd)
		assert.Greater(t, tok.End, tok.Start)
		prevEnd = tok.End
	}
	assert.Equal(t, 13, prevEnd)
}

func TestLexConstants(t *testing.T) {
	res, diags := casl2.LexLine(" DC 12, -3, #00FF, 'IT''S', =10, LBL", 0, casl2.DefaultCompileOption())
	require.True(t, res.Success, "%v", diags)
	got := []casl2.TokenType{}
	for _, tok := range res.Tokens {
		if casl2.IsAddressToken(tok.Type) {
			got = append(got, tok.Type)
		}
	}
	assert.Equal(t, []casl2.TokenType{
		casl2.TokenDecimal, casl2.TokenDecimal, casl2.TokenHex, casl2.TokenString, casl2.TokenLiteral, casl2.TokenLabel,
	}, got)
}

func TestLexTrailingCommaSpaceIsOneToken(t *testing.T) {
	res, _ := casl2.LexLine(" JUMP L1,   ", 0, casl2.DefaultCompileOption())
	last := res.Tokens[len(res.Tokens)-1]
	assert.Equal(t, casl2.TokenCommaSpace, last.Type)
	assert.Equal(t, ",   ", last.Value)
}

func TestLexPartialRegisterIsLabel(t *testing.T) {
	res, _ := casl2.LexLine(" POP GR", 0, casl2.DefaultCompileOption())
	last := res.Tokens[len(res.Tokens)-1]
	assert.Equal(t, casl2.TokenLabel, last.Type)

	res, _ = casl2.LexLine(" POP GR8", 0, casl2.DefaultCompileOption())
	assert.Equal(t, casl2.TokenLabel, res.Tokens[len(res.Tokens)-1].Type)

	res, _ = casl2.LexLine(" POP GR8", 0, casl2.CompileOption{UseGR8AsSp: true})
	assert.Equal(t, casl2.TokenGR, res.Tokens[len(res.Tokens)-1].Type)
}

func TestLexFailures(t *testing.T) {
	cases := []string{
		" DC 'open",
		" LD GR1, @",
		"1ABC NOP",
		" DC #",
	}
	for _, line := range cases {
		res, diags := casl2.LexLine(line, 0, casl2.DefaultCompileOption())
		assert.False(t, res.Success, line)
		require.Len(t, diags, 1, line)
		assert.Equal(t, casl2.Error, diags[0].Severity)
	}
}

func TestLexBlankAndCommentLines(t *testing.T) {
	res, _ := casl2.LexLine("", 0, casl2.DefaultCompileOption())
	assert.True(t, res.Success)
	assert.Empty(t, res.Tokens)

	res, _ = casl2.LexLine("; only a comment", 0, casl2.DefaultCompileOption())
	assert.True(t, res.Success)
	assert.Equal(t, []tokenShape{{casl2.TokenComment, "; only a comment"}}, shapes(res.Tokens))
}

func TestColumnTableCountsUTF16Units(t *testing.T) {
	cols := casl2.NewColumnTable("aあ𝄞b")
	assert.Equal(t, 0, cols.Column(0))
	assert.Equal(t, 1, cols.Column(1))
	assert.Equal(t, 1, cols.Column(2), "inside a multi-byte rune")
	assert.Equal(t, 2, cols.Column(4))
	assert.Equal(t, 4, cols.Column(8), "a surrogate pair takes two units")
	assert.Equal(t, 5, cols.Column(9))
	assert.Equal(t, 5, cols.Column(100))
}

func TestLexColumnsAreUTF16(t *testing.T) {
	res, diags := casl2.LexLine(" DC 'ああ', X ; 終了", 1, casl2.DefaultCompileOption())
	require.True(t, res.Success, "%v", diags)

	type span struct{ Start, End int }
	got := map[casl2.TokenType]span{}
	for _, tok := range res.Tokens {
		got[tok.Type] = span{tok.Start, tok.End}
	}
	assert.Equal(t, span{4, 8}, got[casl2.TokenString])
	assert.Equal(t, span{8, 10}, got[casl2.TokenCommaSpace])
	assert.Equal(t, span{10, 11}, got[casl2.TokenLabel])
	assert.Equal(t, span{12, 16}, got[casl2.TokenComment])

	res, _ = casl2.LexLine(" DC '𝄞', X", 0, casl2.DefaultCompileOption())
	last := res.Tokens[len(res.Tokens)-1]
	assert.Equal(t, "X", last.Value)
	assert.Equal(t, 10, last.Start)
}
