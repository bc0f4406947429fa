package casl2

import "strings"

type lexSlot int

const (
	slotLabel lexSlot = iota
	slotInstruction
	slotOperands
)

type lineLexer struct {
	text        string
	cols        ColumnTable
	line        int
	option      CompileOption
	pos         int
	slot        lexSlot
	tokens      []Token
	diagnostics []Diagnostic
	success     bool
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// LexLine splits a single source line into tokens. Token columns are UTF-16
// code units, as in LSP positions. A line that cannot be lexed
// is returned with Success set to false together with the tokens read so far.
func LexLine(text string, line int, option CompileOption) (LineTokens, []Diagnostic) {
	text = strings.TrimRight(text, "\r")
	l := &lineLexer{
		text:    text,
		cols:    NewColumnTable(text),
		line:    line,
		option:  option,
		success: true,
	}
	l.run()
	return LineTokens{Success: l.success, Tokens: l.tokens}, l.diagnostics
}

func (l *lineLexer) emit(t TokenType, start int) {
	l.tokens = append(l.tokens, Token{
		Type:  t,
		Value: l.text[start:l.pos],
		Line:  l.line,
		Start: l.cols.Column(start),
		End:   l.cols.Column(l.pos),
	})
}

func (l *lineLexer) fail(d Diagnostic) {
	l.success = false
	l.diagnostics = append(l.diagnostics, d)
}

func (l *lineLexer) rangeOf(start, end int) TextRange {
	return TextRange{
		Start: TextPosition{Line: l.line, Char: l.cols.Column(start)},
		End:   TextPosition{Line: l.line, Char: l.cols.Column(end)},
	}
}

func (l *lineLexer) readWhile(pred func(byte) bool) {
	for l.pos < len(l.text) && pred(l.text[l.pos]) {
		l.pos++
	}
}

func (l *lineLexer) run() {
	if len(l.text) == 0 {
		return
	}

	// label field
	if !isBlank(l.text[0]) && l.text[0] != ';' {
		start := l.pos
		l.readWhile(func(c byte) bool { return !isBlank(c) && c != ';' })
		word := l.text[start:l.pos]
		if !isLetter(word[0]) || strings.IndexFunc(word, func(r rune) bool { return r > 127 || !isWordChar(byte(r)) }) != -1 {
			l.emit(TokenOther, start)
			l.fail(Errors.InvalidToken(word, l.rangeOf(start, l.pos)))
			return
		}
		l.emit(TokenLabel, start)
	}

	operandSeen := false
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		start := l.pos

		switch {
		case c == ';':
			l.pos = len(l.text)
			l.emit(TokenComment, start)
			return

		case isBlank(c):
			l.readWhile(isBlank)
			l.emit(TokenSpace, start)
			if l.slot == slotLabel {
				l.slot = slotInstruction
			} else if operandSeen && l.pos < len(l.text) {
				// anything after the operand field is a comment
				start = l.pos
				l.pos = len(l.text)
				l.emit(TokenComment, start)
				return
			}

		case l.slot == slotInstruction:
			l.readWhile(func(c byte) bool { return !isBlank(c) && c != ';' })
			word := l.text[start:l.pos]
			if strings.IndexFunc(word, func(r rune) bool { return r > 127 || !isWordChar(byte(r)) }) != -1 {
				l.emit(TokenOther, start)
				l.fail(Errors.InvalidToken(word, l.rangeOf(start, l.pos)))
				return
			}
			l.emit(TokenInstruction, start)
			l.slot = slotOperands

		default:
			if !l.lexOperand() {
				return
			}
			operandSeen = true
		}
	}
}

// lexOperand reads one operand or separator token. It returns false when the
// line cannot be lexed any further.
func (l *lineLexer) lexOperand() bool {
	c := l.text[l.pos]
	start := l.pos

	switch {
	case c == ',':
		l.pos++
		l.readWhile(isBlank)
		l.emit(TokenCommaSpace, start)
		return true

	case c == '=':
		l.pos++
		if l.pos >= len(l.text) {
			l.emit(TokenOther, start)
			l.fail(Errors.InvalidToken("=", l.rangeOf(start, l.pos)))
			return false
		}
		if !l.readConstant() {
			return false
		}
		l.emit(TokenLiteral, start)
		return true

	case c == '#', c == '\'', c == '-', isDigit(c):
		if !l.readConstant() {
			return false
		}
		switch {
		case c == '#':
			l.emit(TokenHex, start)
		case c == '\'':
			l.emit(TokenString, start)
		default:
			l.emit(TokenDecimal, start)
		}
		return true

	case isLetter(c):
		l.readWhile(isWordChar)
		word := l.text[start:l.pos]
		if _, ok := LookupRegister(word, l.option); ok {
			l.emit(TokenGR, start)
		} else {
			l.emit(TokenLabel, start)
		}
		return true
	}

	l.readWhile(func(c byte) bool { return !isBlank(c) && c != ',' && c != ';' })
	l.emit(TokenOther, start)
	l.fail(Errors.InvalidToken(l.text[start:l.pos], l.rangeOf(start, l.pos)))
	return false
}

// readConstant advances over a decimal, hexadecimal or string constant.
func (l *lineLexer) readConstant() bool {
	start := l.pos
	c := l.text[l.pos]

	switch {
	case c == '#':
		l.pos++
		l.readWhile(isHexDigit)
		if l.pos == start+1 {
			l.fail(Errors.InvalidToken("#", l.rangeOf(start, l.pos)))
			l.emit(TokenOther, start)
			return false
		}
		return true

	case c == '\'':
		l.pos++
		for l.pos < len(l.text) {
			if l.text[l.pos] == '\'' {
				// '' is an escaped quote inside a string
				if l.pos+1 < len(l.text) && l.text[l.pos+1] == '\'' {
					l.pos += 2
					continue
				}
				l.pos++
				return true
			}
			l.pos++
		}
		l.emit(TokenOther, start)
		l.fail(Errors.UnterminatedString(l.rangeOf(start, l.pos)))
		return false

	case c == '-' || isDigit(c):
		l.pos++
		l.readWhile(isDigit)
		if c == '-' && l.pos == start+1 {
			l.emit(TokenOther, start)
			l.fail(Errors.InvalidToken("-", l.rangeOf(start, l.pos)))
			return false
		}
		return true
	}

	l.readWhile(func(c byte) bool { return !isBlank(c) && c != ',' && c != ';' })
	l.emit(TokenOther, start)
	l.fail(Errors.InvalidToken(l.text[start:l.pos], l.rangeOf(start, l.pos)))
	return false
}
