package isa

// Decode returns the instruction encoded by code.
func Decode(code Code) (inst Instruction, err error) {
	opcode := int(code.Opcode())
	funct3 := int(code.Funct3())
	funct7 := int(code.Funct7())

	// Most specific key first: shifts and R-format carry funct7.
	var d Descriptor
	var ok bool
	for _, key := range []decodeKey{
		{opcode, funct3, funct7},
		{opcode, funct3, -1},
		{opcode, -1, -1},
	} {
		d, ok = decodeMap[key]
		if ok {
			break
		}
	}
	if !ok {
		err = ErrCode(code)
		return
	}

	switch d.Format {
	case FORMAT_R:
		inst = RType{Desc: d, Rd: code.Rd(), Rs1: code.Rs1(), Rs2: code.Rs2()}
	case FORMAT_I:
		imm := code.ImmI()
		if d.Shift {
			imm = int32(code.Rs2())
		}
		inst = IType{Desc: d, Rd: code.Rd(), Rs1: code.Rs1(), Imm: imm}
	case FORMAT_S:
		inst = SType{Desc: d, Rs1: code.Rs1(), Rs2: code.Rs2(), Imm: code.ImmS()}
	case FORMAT_B:
		inst = BType{Desc: d, Rs1: code.Rs1(), Rs2: code.Rs2(), Imm: code.ImmB()}
	case FORMAT_U:
		inst = UType{Desc: d, Rd: code.Rd(), Imm: code.ImmU()}
	case FORMAT_J:
		inst = JType{Desc: d, Rd: code.Rd(), Imm: code.ImmJ()}
	default:
		err = ErrCode(code)
	}

	return
}
