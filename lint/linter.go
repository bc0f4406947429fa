package lint

import (
	"sort"
	"strings"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

const (
	RuleNoTrailingWhitespace = "no-trailing-whitespace"
	RuleCommaSpace           = "comma-space"
	RuleNoTabs               = "no-tabs"
)

// Source is reported on every lint diagnostic.
const Source = "casl2-lint"

// Fix is one style problem together with the edit that repairs it. Start and
// End locate the problem; the replacement range is what the edit rewrites.
type Fix struct {
	Message          string
	RuleName         string
	Start            casl2.TextPosition
	End              casl2.TextPosition
	ReplacementStart casl2.TextPosition
	ReplacementEnd   casl2.TextPosition
	ReplacementText  string
}

type Result struct {
	Fixes []Fix
}

type Linter struct {
	disabled map[string]bool
}

func NewLinter(disabledRules ...string) *Linter {
	l := &Linter{disabled: make(map[string]bool)}
	for _, r := range disabledRules {
		l.disabled[r] = true
	}
	return l
}

// Rules lists every rule name the linter knows.
func Rules() []string {
	return []string{RuleNoTrailingWhitespace, RuleCommaSpace, RuleNoTabs}
}

// Analyze checks text line by line. Fixes never overlap, so all of them can be
// applied in a single edit.
func (l *Linter) Analyze(uri string, text string) Result {
	res := Result{Fixes: []Fix{}}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		res.Fixes = append(res.Fixes, l.analyzeLine(i, line)...)
	}
	return res
}

type span struct {
	start, end int
}

func (s span) contains(col int) bool {
	return col >= s.start && col < s.end
}

func (l *Linter) analyzeLine(line int, text string) []Fix {
	fixes := []Fix{}
	claimed := []span{}
	cols := casl2.NewColumnTable(text)

	trimmed := strings.TrimRight(text, " \t")
	if len(trimmed) < len(text) && !l.disabled[RuleNoTrailingWhitespace] {
		fixes = append(fixes, newFix(line, cols, span{len(trimmed), len(text)}, RuleNoTrailingWhitespace,
			"Trailing whitespace is not allowed", ""))
		claimed = append(claimed, span{len(trimmed), len(text)})
	}

	inString := false
	commentStart := len(text)
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '\'' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		if c == ';' {
			commentStart = i
			break
		}
		if c != ',' || l.disabled[RuleCommaSpace] {
			continue
		}

		j := i + 1
		for j < len(trimmed) && (trimmed[j] == ' ' || trimmed[j] == '\t') {
			j++
		}
		if j >= len(trimmed) || trimmed[j] == ';' {
			// the next operand has not been typed yet
			continue
		}
		if trimmed[i+1:j] == " " {
			continue
		}
		fixes = append(fixes, newFix(line, cols, span{i, j}, RuleCommaSpace,
			"Operands must be separated by a comma and a single space", ", "))
		claimed = append(claimed, span{i, j})
	}

	if !l.disabled[RuleNoTabs] {
		inString = false
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c == '\'' && i < commentStart {
				inString = !inString
			}
			if c != '\t' || inString || isClaimed(claimed, i) {
				continue
			}
			fixes = append(fixes, newFix(line, cols, span{i, i + 1}, RuleNoTabs, "Use spaces instead of tabs", " "))
		}
	}

	sort.SliceStable(fixes, func(i, j int) bool {
		return fixes[i].Start.Char < fixes[j].Start.Char
	})
	return fixes
}

func isClaimed(claimed []span, col int) bool {
	for _, s := range claimed {
		if s.contains(col) {
			return true
		}
	}
	return false
}

// newFix converts the byte span s to UTF-16 columns.
func newFix(line int, cols casl2.ColumnTable, s span, rule, message, replacement string) Fix {
	start := casl2.TextPosition{Line: line, Char: cols.Column(s.start)}
	end := casl2.TextPosition{Line: line, Char: cols.Column(s.end)}
	return Fix{
		Message:          message,
		RuleName:         rule,
		Start:            start,
		End:              end,
		ReplacementStart: start,
		ReplacementEnd:   end,
		ReplacementText:  replacement,
	}
}
