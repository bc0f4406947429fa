package casl2

// ArgumentType is the operand shape an instruction accepts.
type ArgumentType int

const (
	ArgNone ArgumentType = iota
	ArgLabelTarget
	ArgDecimalCount
	ArgConstantList
	ArgAddressIndex
	ArgRegisterOnly
	ArgRegisterAddressIndex
	ArgRegisterPairOrRegisterAddressIndex
	ArgDualAddress
	// ArgRegisterPairOnly only exists as an alternative inside
	// ArgRegisterPairOrRegisterAddressIndex. No instruction may be declared with it.
	ArgRegisterPairOnly
)

func (a ArgumentType) String() string {
	switch a {
	case ArgNone:
		return "none"
	case ArgLabelTarget:
		return "label"
	case ArgDecimalCount:
		return "decimal"
	case ArgConstantList:
		return "constants"
	case ArgAddressIndex:
		return "adr[,x]"
	case ArgRegisterOnly:
		return "r"
	case ArgRegisterAddressIndex:
		return "r,adr[,x]"
	case ArgRegisterPairOrRegisterAddressIndex:
		return "r1,r2|r,adr[,x]"
	case ArgDualAddress:
		return "adr,adr"
	case ArgRegisterPairOnly:
		return "r1,r2"
	}
	return "unknown"
}

type InstructionInfo struct {
	Name          string
	Opcode        int // -1 for assembler instructions and macros
	ArgumentType  ArgumentType
	Detail        string
	Documentation string
}

// instructionsInfo lists every COMET2 opcode and CASL2 pseudo instruction. Names
// with a register-register form appear once per opcode.
var instructionsInfo = []InstructionInfo{
	{"START", -1, ArgLabelTarget, "START instruction", "Marks the beginning of a program. The optional operand names the execution start label."},
	{"END", -1, ArgNone, "END instruction", "Marks the end of a program."},
	{"DS", -1, ArgDecimalCount, "DS instruction", "Reserves the given number of words."},
	{"DC", -1, ArgConstantList, "DC instruction", "Defines constants: decimal, hexadecimal (#0000), string ('...') or address."},
	{"IN", -1, ArgDualAddress, "IN macro", "Reads one input record into buf and stores its length in len."},
	{"OUT", -1, ArgDualAddress, "OUT macro", "Writes len characters from buf as one output record."},
	{"RPUSH", -1, ArgNone, "RPUSH macro", "Pushes GR1 to GR7 onto the stack, in that order."},
	{"RPOP", -1, ArgNone, "RPOP macro", "Pops GR7 to GR1 from the stack, in that order."},

	{"NOP", 0x00, ArgNone, "NOP instruction", "No operation."},
	{"LD", 0x10, ArgRegisterPairOrRegisterAddressIndex, "LD instruction", "Load: r <- (adr + x). Sets OF to 0."},
	{"LD", 0x14, ArgRegisterPairOrRegisterAddressIndex, "LD instruction", "Load: r1 <- r2. Sets OF to 0."},
	{"ST", 0x11, ArgRegisterAddressIndex, "ST instruction", "Store: (adr + x) <- r."},
	{"LAD", 0x12, ArgRegisterAddressIndex, "LAD instruction", "Load address: r <- adr + x."},
	{"ADDA", 0x20, ArgRegisterPairOrRegisterAddressIndex, "ADDA instruction", "Add arithmetic: r <- r + (adr + x)."},
	{"ADDA", 0x24, ArgRegisterPairOrRegisterAddressIndex, "ADDA instruction", "Add arithmetic: r1 <- r1 + r2."},
	{"SUBA", 0x21, ArgRegisterPairOrRegisterAddressIndex, "SUBA instruction", "Subtract arithmetic: r <- r - (adr + x)."},
	{"SUBA", 0x25, ArgRegisterPairOrRegisterAddressIndex, "SUBA instruction", "Subtract arithmetic: r1 <- r1 - r2."},
	{"ADDL", 0x22, ArgRegisterPairOrRegisterAddressIndex, "ADDL instruction", "Add logical: r <- r + (adr + x)."},
	{"ADDL", 0x26, ArgRegisterPairOrRegisterAddressIndex, "ADDL instruction", "Add logical: r1 <- r1 + r2."},
	{"SUBL", 0x23, ArgRegisterPairOrRegisterAddressIndex, "SUBL instruction", "Subtract logical: r <- r - (adr + x)."},
	{"SUBL", 0x27, ArgRegisterPairOrRegisterAddressIndex, "SUBL instruction", "Subtract logical: r1 <- r1 - r2."},
	{"AND", 0x30, ArgRegisterPairOrRegisterAddressIndex, "AND instruction", "Bitwise and: r <- r AND (adr + x)."},
	{"AND", 0x34, ArgRegisterPairOrRegisterAddressIndex, "AND instruction", "Bitwise and: r1 <- r1 AND r2."},
	{"OR", 0x31, ArgRegisterPairOrRegisterAddressIndex, "OR instruction", "Bitwise or: r <- r OR (adr + x)."},
	{"OR", 0x35, ArgRegisterPairOrRegisterAddressIndex, "OR instruction", "Bitwise or: r1 <- r1 OR r2."},
	{"XOR", 0x32, ArgRegisterPairOrRegisterAddressIndex, "XOR instruction", "Bitwise exclusive or: r <- r XOR (adr + x)."},
	{"XOR", 0x36, ArgRegisterPairOrRegisterAddressIndex, "XOR instruction", "Bitwise exclusive or: r1 <- r1 XOR r2."},
	{"CPA", 0x40, ArgRegisterPairOrRegisterAddressIndex, "CPA instruction", "Compare arithmetic: sets FR from r - (adr + x)."},
	{"CPA", 0x44, ArgRegisterPairOrRegisterAddressIndex, "CPA instruction", "Compare arithmetic: sets FR from r1 - r2."},
	{"CPL", 0x41, ArgRegisterPairOrRegisterAddressIndex, "CPL instruction", "Compare logical: sets FR from r - (adr + x)."},
	{"CPL", 0x45, ArgRegisterPairOrRegisterAddressIndex, "CPL instruction", "Compare logical: sets FR from r1 - r2."},
	{"SLA", 0x50, ArgRegisterAddressIndex, "SLA instruction", "Shift left arithmetic by (adr + x) bits. The sign bit is kept."},
	{"SRA", 0x51, ArgRegisterAddressIndex, "SRA instruction", "Shift right arithmetic by (adr + x) bits. The sign bit is kept."},
	{"SLL", 0x52, ArgRegisterAddressIndex, "SLL instruction", "Shift left logical by (adr + x) bits."},
	{"SRL", 0x53, ArgRegisterAddressIndex, "SRL instruction", "Shift right logical by (adr + x) bits."},
	{"JMI", 0x61, ArgAddressIndex, "JMI instruction", "Jump on minus: PR <- adr + x when SF is 1."},
	{"JNZ", 0x62, ArgAddressIndex, "JNZ instruction", "Jump on non zero: PR <- adr + x when ZF is 0."},
	{"JZE", 0x63, ArgAddressIndex, "JZE instruction", "Jump on zero: PR <- adr + x when ZF is 1."},
	{"JUMP", 0x64, ArgAddressIndex, "JUMP instruction", "Unconditional jump: PR <- adr + x."},
	{"JPL", 0x65, ArgAddressIndex, "JPL instruction", "Jump on plus: PR <- adr + x when SF and ZF are 0."},
	{"JOV", 0x66, ArgAddressIndex, "JOV instruction", "Jump on overflow: PR <- adr + x when OF is 1."},
	{"PUSH", 0x70, ArgAddressIndex, "PUSH instruction", "Push: SP <- SP - 1, (SP) <- adr + x."},
	{"POP", 0x71, ArgRegisterOnly, "POP instruction", "Pop: r <- (SP), SP <- SP + 1."},
	{"CALL", 0x80, ArgAddressIndex, "CALL instruction", "Call subroutine: SP <- SP - 1, (SP) <- PR, PR <- adr + x."},
	{"RET", 0x81, ArgNone, "RET instruction", "Return from subroutine: PR <- (SP), SP <- SP + 1."},
	{"SVC", 0xF0, ArgAddressIndex, "SVC instruction", "Supervisor call with code adr + x."},
}

var instructionMap = buildInstructionMap()

func buildInstructionMap() map[string]InstructionInfo {
	m := make(map[string]InstructionInfo, len(instructionsInfo))
	for _, info := range instructionsInfo {
		if _, ok := m[info.Name]; !ok {
			m[info.Name] = info
		}
	}
	return m
}

// LookupInstruction returns the grammar entry for an instruction name.
func LookupInstruction(name string) (InstructionInfo, bool) {
	info, ok := instructionMap[name]
	return info, ok
}

// Instructions returns every table entry, including repeated names.
func Instructions() []InstructionInfo {
	out := make([]InstructionInfo, len(instructionsInfo))
	copy(out, instructionsInfo)
	return out
}

// InstructionDocumentation joins the documentation of every opcode sharing name.
func InstructionDocumentation(name string) string {
	doc := ""
	for _, info := range instructionsInfo {
		if info.Name != name {
			continue
		}
		if doc != "" {
			doc += "\n\n"
		}
		doc += info.Documentation
	}
	return doc
}

// Opcodes lists the machine opcodes of every table entry named name. Pseudo
// instructions and macros have none.
func Opcodes(name string) []int {
	out := []int{}
	for _, info := range instructionsInfo {
		if info.Name == name && info.Opcode >= 0 {
			out = append(out, info.Opcode)
		}
	}
	return out
}
