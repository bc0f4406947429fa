package casl2

import (
	"regexp"
	"strconv"
)

type GRInfo struct {
	Name          string
	Index         int
	UsableAsIndex bool
	Documentation string
}

// registerLikePattern is the editing heuristic used while an operand is being
// typed: anything matching it is treated as a (partial) register name rather
// than a label.
var registerLikePattern = regexp.MustCompile(`\b(G|GR|GR\d)\b`)

// LooksLikeRegister reports whether text would be read as a register name while editing.
func LooksLikeRegister(text string) bool {
	return registerLikePattern.MatchString(text)
}

// Registers returns the general registers available under option.
func Registers(option CompileOption) []GRInfo {
	count := 8
	if option.UseGR8AsSp {
		count = 9
	}

	grs := make([]GRInfo, 0, count)
	for i := 0; i < count; i++ {
		info := GRInfo{
			Name:          "GR" + strconv.Itoa(i),
			Index:         i,
			UsableAsIndex: i != 0,
			Documentation: "General register " + strconv.Itoa(i) + ". 16-bit.",
		}
		if i == 0 {
			info.Documentation += " Cannot be used as an index register."
		}
		if i == 8 {
			info.Documentation = "GR8: alias of the stack pointer SP."
		}
		grs = append(grs, info)
	}
	return grs
}

// IndexRegisters returns the registers that may appear in the x operand.
func IndexRegisters(option CompileOption) []GRInfo {
	out := []GRInfo{}
	for _, gr := range Registers(option) {
		if gr.UsableAsIndex {
			out = append(out, gr)
		}
	}
	return out
}

// LookupRegister returns the register named name, if it exists under option.
func LookupRegister(name string, option CompileOption) (GRInfo, bool) {
	for _, gr := range Registers(option) {
		if gr.Name == name {
			return gr, true
		}
	}
	return GRInfo{}, false
}
