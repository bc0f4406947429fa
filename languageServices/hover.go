package languageServices

import (
	"fmt"
	"strconv"
	"strings"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

type hoverInfoFormatsType struct {
	instruction     string
	opcodes         string
	register        string
	labelDefinition string
	subroutineEntry string
	labelReference  string
	undefinedLabel  string
	constantDecimal string
	constantHex     string
	outOfRange      string
}

var hoverInfoFormats = hoverInfoFormatsType{
	instruction:     "%s\n\nFormat: `%s`\n\n%s",
	opcodes:         "\n\nOpcode: %s",
	register:        "Register `%s`\n\n%s",
	labelDefinition: "Definition of label `%s`",
	subroutineEntry: "Definition of subroutine `%s`\n\nVisible from every program in this file",
	labelReference:  "Reference to label `%s`\n\nDeclared on line %d",
	undefinedLabel:  "Reference to undefined label `%s`",
	constantDecimal: "Decimal constant `%s` (`#%04X`)",
	constantHex:     "Hexadecimal constant `%s` (`%d`)",
	outOfRange:      "Constant `%s` does not fit in a 16-bit word (-32768 to 65535)",
}

// instructionFormat renders every operand form of an instruction.
func instructionFormat(info casl2.InstructionInfo) string {
	sigs := signaturesFor(info.Name, info.ArgumentType)
	if len(sigs) == 0 {
		return info.Name
	}
	labels := make([]string, 0, len(sigs))
	for _, s := range sigs {
		labels = append(labels, s.Label)
	}
	return strings.Join(labels, "` | `")
}

func (s *Services) hoverText(pos casl2.TextPosition) (string, casl2.Token, bool) {
	line, ok := s.snapshot.TokensByLine[pos.Line]
	if !ok {
		return "", casl2.Token{}, false
	}

	if tok, ok := tokenOfTypeAt(line.Tokens, casl2.TokenInstruction, pos.Char); ok {
		inst, found := s.snapshot.Instruction(pos.Line)
		if found && inst.Instruction != tok {
			return "", casl2.Token{}, false
		}
		info, known := casl2.LookupInstruction(tok.Value)
		if !known {
			return "", casl2.Token{}, false
		}
		text := fmt.Sprintf(hoverInfoFormats.instruction, info.Detail, instructionFormat(info), casl2.InstructionDocumentation(info.Name))
		if opcodes := casl2.Opcodes(info.Name); len(opcodes) > 0 {
			hex := make([]string, 0, len(opcodes))
			for _, op := range opcodes {
				hex = append(hex, fmt.Sprintf("`#%02X`", op))
			}
			text += fmt.Sprintf(hoverInfoFormats.opcodes, strings.Join(hex, ", "))
		}
		return text, tok, true
	}

	if tok, ok := tokenOfTypeAt(line.Tokens, casl2.TokenGR, pos.Char); ok {
		gr, known := casl2.LookupRegister(tok.Value, s.snapshot.Option)
		if !known {
			return "", casl2.Token{}, false
		}
		return fmt.Sprintf(hoverInfoFormats.register, gr.Name, gr.Documentation), tok, true
	}

	if tok, ok := s.labelAt(pos); ok {
		scope := s.scopes.ResolveScope(pos.Line)
		decl, found := s.scopes.FindDeclaration(tok.Value, scope)
		switch {
		case !found:
			return fmt.Sprintf(hoverInfoFormats.undefinedLabel, tok.Value), tok, true
		case decl.Token == tok && decl.Kind == casl2.LabelSubroutineEntry:
			return fmt.Sprintf(hoverInfoFormats.subroutineEntry, tok.Value), tok, true
		case decl.Token == tok:
			return fmt.Sprintf(hoverInfoFormats.labelDefinition, tok.Value), tok, true
		default:
			return fmt.Sprintf(hoverInfoFormats.labelReference, tok.Value, decl.Token.Line+1), tok, true
		}
	}

	if tok, ok := tokenOfTypeAt(line.Tokens, casl2.TokenDecimal, pos.Char); ok {
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil || v < -32768 || v > 65535 {
			return fmt.Sprintf(hoverInfoFormats.outOfRange, tok.Value), tok, true
		}
		return fmt.Sprintf(hoverInfoFormats.constantDecimal, tok.Value, uint16(v)), tok, true
	}

	if tok, ok := tokenOfTypeAt(line.Tokens, casl2.TokenHex, pos.Char); ok {
		v, err := strconv.ParseUint(strings.TrimPrefix(tok.Value, "#"), 16, 64)
		if err != nil || v > 0xFFFF {
			return fmt.Sprintf(hoverInfoFormats.outOfRange, tok.Value), tok, true
		}
		return fmt.Sprintf(hoverInfoFormats.constantHex, tok.Value, int16(v)), tok, true
	}

	return "", casl2.Token{}, false
}
