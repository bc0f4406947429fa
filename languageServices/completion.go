package languageServices

import "github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"

// instructionCompletionItems holds one item per instruction name, in table order.
var instructionCompletionItems = buildInstructionCompletionItems()

func buildInstructionCompletionItems() []CompletionItem {
	seen := map[string]bool{}
	items := []CompletionItem{}
	for _, info := range casl2.Instructions() {
		if seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		items = append(items, CompletionItem{
			Label:         info.Name,
			Kind:          CompletionKindFunction,
			Detail:        info.Detail,
			Documentation: markdown(casl2.InstructionDocumentation(info.Name)),
		})
	}
	return items
}

// InstructionCompletionItems returns the completion items offered in the
// instruction slot.
func InstructionCompletionItems() []CompletionItem {
	out := make([]CompletionItem, len(instructionCompletionItems))
	copy(out, instructionCompletionItems)
	return out
}

func registerCompletionItems(grs []casl2.GRInfo) []CompletionItem {
	items := make([]CompletionItem, 0, len(grs))
	for _, gr := range grs {
		items = append(items, CompletionItem{
			Label:         gr.Name,
			Kind:          CompletionKindProperty,
			Documentation: markdown(gr.Documentation),
		})
	}
	return items
}

func labelCompletionItems(visible VisibleLabels) []CompletionItem {
	items := make([]CompletionItem, 0, len(visible.Labels)+len(visible.SubroutineLabels))
	for _, b := range visible.Labels {
		items = append(items, CompletionItem{Label: b.Name, Kind: CompletionKindField})
	}
	for _, b := range visible.SubroutineLabels {
		items = append(items, CompletionItem{Label: b.Name, Kind: CompletionKindFunction, Detail: "subroutine"})
	}
	return items
}

// CompletionItems maps a completion category to its candidates. Label
// candidates are the labels visible from scope.
func CompletionItems(category CompletionCategory, scopes *ScopeIndex, scope int, option casl2.CompileOption) []CompletionItem {
	switch category {
	case CompletionInstruction:
		return InstructionCompletionItems()
	case CompletionRegister:
		return registerCompletionItems(casl2.Registers(option))
	case CompletionIndexRegister:
		return registerCompletionItems(casl2.IndexRegisters(option))
	case CompletionLabels:
		return labelCompletionItems(scopes.AllLabelsVisible(scope))
	case CompletionRegisterAndLabels:
		return append(registerCompletionItems(casl2.Registers(option)), labelCompletionItems(scopes.AllLabelsVisible(scope))...)
	}
	return []CompletionItem{}
}

func markdown(value string) *MarkupContent {
	if value == "" {
		return nil
	}
	return &MarkupContent{Kind: "markdown", Value: value}
}
