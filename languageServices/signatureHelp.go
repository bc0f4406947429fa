package languageServices

import (
	"strings"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
)

func signature(instruction string, params ...string) SignatureInformation {
	info := SignatureInformation{
		Label:      strings.TrimSpace(instruction + " " + strings.Join(params, ", ")),
		Parameters: make([]ParameterInformation, 0, len(params)),
	}
	for _, p := range params {
		info.Parameters = append(info.Parameters, ParameterInformation{Label: p})
	}
	return info
}

// signaturesFor lists the operand forms of a shape, in overload order.
func signaturesFor(instruction string, shape casl2.ArgumentType) []SignatureInformation {
	switch shape {
	case casl2.ArgLabelTarget:
		return []SignatureInformation{
			signature(instruction),
			signature(instruction, "label"),
		}
	case casl2.ArgDecimalCount:
		return []SignatureInformation{signature(instruction, "decimal")}
	case casl2.ArgConstantList:
		return []SignatureInformation{{
			Label:      instruction + " constant[, constant ...]",
			Parameters: []ParameterInformation{{Label: "constant"}, {Label: ", constant ..."}},
		}}
	case casl2.ArgAddressIndex:
		return []SignatureInformation{
			signature(instruction, "adr"),
			signature(instruction, "adr", "x"),
		}
	case casl2.ArgRegisterOnly:
		return []SignatureInformation{signature(instruction, "r")}
	case casl2.ArgDualAddress:
		return []SignatureInformation{signature(instruction, "buf", "len")}
	case casl2.ArgRegisterAddressIndex:
		return []SignatureInformation{
			signature(instruction, "r", "adr"),
			signature(instruction, "r", "adr", "x"),
		}
	case casl2.ArgRegisterPairOrRegisterAddressIndex:
		return []SignatureInformation{
			signature(instruction, "r1", "r2"),
			signature(instruction, "r1", "adr"),
			signature(instruction, "r1", "adr", "x"),
		}
	case casl2.ArgRegisterPairOnly:
		return []SignatureInformation{signature(instruction, "r1", "r2")}
	}
	return []SignatureInformation{}
}

func signatureHelpFor(ctx CursorContext) *SignatureHelp {
	if ctx.ArgIndex < 0 {
		return nil
	}
	return &SignatureHelp{
		Signatures:      signaturesFor(ctx.Instruction, ctx.Shape),
		ActiveSignature: ctx.Overload,
		ActiveParameter: ctx.ArgIndex,
	}
}
