package lint

import (
	"fmt"
	"sync"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

const (
	CommandApplySingleFix   = "casl2.applySingleFix"
	CommandApplySameRuleFix = "casl2.applySameRuleFixes"
	CommandApplyAllFixes    = "casl2.applyAllFixes"
)

type AutoFixEdit struct {
	Range casl2.TextRange `json:"range"`
	Text  string          `json:"newText"`
}

type AutoFix struct {
	DocumentVersion int
	Fix             Fix
	Edit            AutoFixEdit
}

// Command is an editor command offered as a code action. Its arguments are
// the document uri, the document version and the edits to apply.
type Command struct {
	Title     string        `json:"title"`
	Command   string        `json:"command"`
	Arguments []interface{} `json:"arguments,omitempty"`
}

// Worker keeps the lint state of one document. It only re-lints when the
// loaded document version changes.
type Worker struct {
	URI string

	mu          sync.Mutex
	linter      *Linter
	enabled     bool
	text        string
	version     int
	diagnosed   bool
	lastVersion int
	keys        []string
	autoFixes   map[string]AutoFix
	diagnostics []casl2.Diagnostic
}

func NewWorker(uri string, linter *Linter) *Worker {
	return &Worker{
		URI:         uri,
		linter:      linter,
		enabled:     true,
		autoFixes:   make(map[string]AutoFix),
		diagnostics: []casl2.Diagnostic{},
	}
}

func (w *Worker) LoadDocument(text string, version int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.text = text
	w.version = version
}

// SetLinter replaces the rule set and forces the next DiagnoseSource to run.
func (w *Worker) SetLinter(linter *Linter, enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.linter = linter
	w.enabled = enabled
	w.diagnosed = false
}

// DiagnoseSource lints the loaded text unless this version was already
// linted. It reports whether the linter actually ran.
func (w *Worker) DiagnoseSource() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.diagnose()
}

// Lint loads text at version and returns its diagnostics in one step, so a
// concurrent LoadDocument cannot slip in between.
func (w *Worker) Lint(text string, version int) []casl2.Diagnostic {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.text = text
	w.version = version
	w.diagnose()
	return w.copyDiagnostics()
}

func (w *Worker) diagnose() bool {
	if w.diagnosed && w.lastVersion == w.version {
		return false
	}

	w.keys = nil
	w.autoFixes = make(map[string]AutoFix)
	w.diagnostics = []casl2.Diagnostic{}
	w.diagnosed = true
	w.lastVersion = w.version

	if !w.enabled || w.text == "" {
		return true
	}

	result := w.linter.Analyze(w.URI, w.text)
	for _, fix := range result.Fixes {
		d := diagnosticFromFix(fix)
		key := ComputeKey(d)
		if _, dup := w.autoFixes[key]; !dup {
			w.keys = append(w.keys, key)
		}
		w.diagnostics = append(w.diagnostics, d)
		w.autoFixes[key] = AutoFix{
			DocumentVersion: w.version,
			Fix:             fix,
			Edit: AutoFixEdit{
				Range: casl2.TextRange{Start: fix.ReplacementStart, End: fix.ReplacementEnd},
				Text:  fix.ReplacementText,
			},
		}
	}
	return true
}

func (w *Worker) Diagnostics() []casl2.Diagnostic {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyDiagnostics()
}

func (w *Worker) copyDiagnostics() []casl2.Diagnostic {
	out := make([]casl2.Diagnostic, len(w.diagnostics))
	copy(out, w.diagnostics)
	return out
}

// AllAutoFixes returns every recorded fix in document order.
func (w *Worker) AllAutoFixes() []AutoFix {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.allAutoFixes()
}

func (w *Worker) allAutoFixes() []AutoFix {
	out := make([]AutoFix, 0, len(w.keys))
	for _, k := range w.keys {
		out = append(out, w.autoFixes[k])
	}
	return out
}

// Edits returns the edits that repair every recorded problem.
func (w *Worker) Edits() []AutoFixEdit {
	fixes := w.AllAutoFixes()
	edits := make([]AutoFixEdit, 0, len(fixes))
	for _, f := range fixes {
		edits = append(edits, f.Edit)
	}
	return edits
}

// CodeActions offers commands for the first of diagnostics that has a
// recorded fix: fixing it, fixing every problem of the same rule and fixing
// everything. The last two are only offered when they cover two or more fixes.
func (w *Worker) CodeActions(diagnostics []casl2.Diagnostic) []Command {
	w.mu.Lock()
	defer w.mu.Unlock()

	commands := []Command{}
	var target AutoFix
	found := false
	for _, d := range diagnostics {
		if fix, ok := w.autoFixes[ComputeKey(d)]; ok {
			target = fix
			found = true
			break
		}
	}
	if !found {
		return commands
	}

	commands = append(commands, Command{
		Title:     "Fix this problem: " + target.Fix.Message,
		Command:   CommandApplySingleFix,
		Arguments: []interface{}{w.URI, target.DocumentVersion, []AutoFixEdit{target.Edit}},
	})

	all := w.allAutoFixes()
	sameRule := []AutoFixEdit{}
	for _, f := range all {
		if f.Fix.RuleName == target.Fix.RuleName {
			sameRule = append(sameRule, f.Edit)
		}
	}
	if len(sameRule) >= 2 {
		commands = append(commands, Command{
			Title:     "Fix all problems of this kind: " + target.Fix.Message,
			Command:   CommandApplySameRuleFix,
			Arguments: []interface{}{w.URI, target.DocumentVersion, sameRule},
		})
	}

	if len(all) >= 2 {
		edits := make([]AutoFixEdit, 0, len(all))
		for _, f := range all {
			edits = append(edits, f.Edit)
		}
		commands = append(commands, Command{
			Title:     "Fix all problems",
			Command:   CommandApplyAllFixes,
			Arguments: []interface{}{w.URI, target.DocumentVersion, edits},
		})
	}

	return commands
}

// ComputeKey identifies a lint diagnostic by its range and rule.
func ComputeKey(d casl2.Diagnostic) string {
	return fmt.Sprintf("[(%d, %d), (%d, %d)] %s",
		d.Range.Start.Line, d.Range.Start.Char, d.Range.End.Line, d.Range.End.Char, d.Code)
}

func diagnosticFromFix(fix Fix) casl2.Diagnostic {
	return casl2.Diagnostic{
		Range:    casl2.TextRange{Start: fix.Start, End: fix.End},
		Message:  fix.Message,
		Source:   Source,
		Code:     fix.RuleName,
		Severity: casl2.Warning,
	}
}
