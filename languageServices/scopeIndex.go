package languageServices

import (
	"sort"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

// ScopeIndex answers scope and label queries against a single snapshot. A new
// snapshot needs a new index; nothing is carried over between them.
type ScopeIndex struct {
	snapshot       *casl2.Snapshot
	scopeSensitive bool
	recordedLines  []int        // lines with a recorded scope, ascending
	endLines       map[int]bool // lines holding a subroutine's END
	declarations   map[int]map[string]casl2.LabelBinding
	entries        map[string]casl2.LabelBinding
}

type AllReferences struct {
	Declaration *casl2.LabelBinding
	References  []casl2.LabelReference
}

type VisibleLabels struct {
	Labels           []casl2.LabelBinding
	SubroutineLabels []casl2.LabelBinding
}

func NewScopeIndex(snapshot *casl2.Snapshot, scopeSensitive bool) *ScopeIndex {
	idx := &ScopeIndex{
		snapshot:       snapshot,
		scopeSensitive: scopeSensitive,
		recordedLines:  make([]int, 0, len(snapshot.ScopeByLine)),
		endLines:       make(map[int]bool),
		declarations:   make(map[int]map[string]casl2.LabelBinding),
		entries:        make(map[string]casl2.LabelBinding),
	}

	for line := range snapshot.ScopeByLine {
		idx.recordedLines = append(idx.recordedLines, line)
	}
	sort.Ints(idx.recordedLines)

	for _, sub := range snapshot.Subroutines {
		if sub.EndLine >= 0 {
			idx.endLines[sub.EndLine] = true
		}
	}

	for _, b := range snapshot.Labels.Declarations {
		if idx.declarations[b.Scope] == nil {
			idx.declarations[b.Scope] = make(map[string]casl2.LabelBinding)
		}
		if _, dup := idx.declarations[b.Scope][b.Name]; !dup {
			idx.declarations[b.Scope][b.Name] = b
		}
		if b.Kind == casl2.LabelSubroutineEntry {
			if _, dup := idx.entries[b.Name]; !dup {
				idx.entries[b.Name] = b
			}
		}
	}

	return idx
}

// ResolveScope returns the scope a line belongs to. Lines without a recorded
// scope take the scope of the nearest recorded line above them, or the next
// scope when that line ends a subroutine and scopes are enabled.
func (idx *ScopeIndex) ResolveScope(line int) int {
	if scope, ok := idx.snapshot.ScopeByLine[line]; ok {
		return scope
	}

	i := sort.SearchInts(idx.recordedLines, line)
	if i == 0 {
		return 1
	}

	prev := idx.recordedLines[i-1]
	scope := idx.snapshot.ScopeByLine[prev]
	if idx.scopeSensitive && idx.endLines[prev] {
		return scope + 1
	}
	return scope
}

// FindDeclaration looks name up in scope, falling back to subroutine entry
// labels, which are visible from every scope.
func (idx *ScopeIndex) FindDeclaration(name string, scope int) (casl2.LabelBinding, bool) {
	if b, ok := idx.declarations[scope][name]; ok {
		return b, true
	}
	b, ok := idx.entries[name]
	return b, ok
}

// FindAllReferences returns the declaration of name as seen from scope, if
// any, and every reference bound to the same declaration. Without a
// declaration only references made from scope are returned.
func (idx *ScopeIndex) FindAllReferences(name string, scope int) AllReferences {
	res := AllReferences{References: []casl2.LabelReference{}}

	decl, ok := idx.FindDeclaration(name, scope)
	if ok {
		res.Declaration = &decl
	}

	for _, ref := range idx.snapshot.Labels.References {
		if ref.Name != name {
			continue
		}
		if ref.Scope == scope {
			res.References = append(res.References, ref)
			continue
		}
		if !ok || decl.Kind != casl2.LabelSubroutineEntry {
			continue
		}
		// a reference from another scope reaches the entry label unless that scope shadows it
		if other, found := idx.FindDeclaration(name, ref.Scope); found && other.Token == decl.Token {
			res.References = append(res.References, ref)
		}
	}

	return res
}

// AllLabelsVisible returns the labels that can be referenced from scope.
func (idx *ScopeIndex) AllLabelsVisible(scope int) VisibleLabels {
	res := VisibleLabels{Labels: []casl2.LabelBinding{}, SubroutineLabels: []casl2.LabelBinding{}}
	for _, b := range idx.snapshot.Labels.Declarations {
		if b.Kind == casl2.LabelSubroutineEntry {
			if idx.entries[b.Name].Token != b.Token {
				continue
			}
			// an ordinary label of the same name in scope hides the entry
			if local, ok := idx.declarations[scope][b.Name]; ok && local.Token != b.Token {
				continue
			}
			res.SubroutineLabels = append(res.SubroutineLabels, b)
			continue
		}
		if b.Scope == scope && idx.declarations[scope][b.Name].Token == b.Token {
			res.Labels = append(res.Labels, b)
		}
	}
	return res
}

// AllLabels returns every declared label in the document.
func (idx *ScopeIndex) AllLabels() VisibleLabels {
	res := VisibleLabels{Labels: []casl2.LabelBinding{}, SubroutineLabels: []casl2.LabelBinding{}}
	for _, b := range idx.snapshot.Labels.Declarations {
		if b.Kind == casl2.LabelSubroutineEntry {
			res.SubroutineLabels = append(res.SubroutineLabels, b)
		} else {
			res.Labels = append(res.Labels, b)
		}
	}
	return res
}
