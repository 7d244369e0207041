package isa

import (
	"fmt"
)

// Instruction is a fully validated instruction in one of the six formats.
type Instruction interface {
	// Descriptor returns the encoding metadata of the mnemonic.
	Descriptor() Descriptor
	// Encode returns the instruction word.
	Encode() Code
	// String returns assembly text accepted back by the assembler.
	String() string
}

// RType is a register-register operation.
type RType struct {
	Desc     Descriptor
	Rd       Register
	Rs1, Rs2 Register
}

// IType is a register-immediate operation, load, or jalr.
type IType struct {
	Desc    Descriptor
	Rd, Rs1 Register
	Imm     int32 // Shift amount when Desc.Shift.
}

// SType is a store.
type SType struct {
	Desc     Descriptor
	Rs1, Rs2 Register
	Imm      int32
}

// BType is a conditional branch.
type BType struct {
	Desc     Descriptor
	Rs1, Rs2 Register
	Imm      int32
}

// UType is an upper-immediate operation.
type UType struct {
	Desc Descriptor
	Rd   Register
	Imm  int32
}

// JType is a jump-and-link.
type JType struct {
	Desc Descriptor
	Rd   Register
	Imm  int32
}

var (
	_ Instruction = RType{}
	_ Instruction = IType{}
	_ Instruction = SType{}
	_ Instruction = BType{}
	_ Instruction = UType{}
	_ Instruction = JType{}
)

// checkFormat verifies a descriptor is used with the matching constructor.
func checkFormat(d Descriptor, format Format) (err error) {
	if d.Format != format {
		err = fmt.Errorf("%w: %v is %v-format, not %v-format", ErrFormat, d.Mnemonic, d.Format, format)
	}
	return
}

// NewR creates a register-register instruction.
func NewR(d Descriptor, rd, rs1, rs2 Register) (inst RType, err error) {
	err = checkFormat(d, FORMAT_R)
	if err != nil {
		return
	}

	inst = RType{Desc: d, Rd: rd, Rs1: rs1, Rs2: rs2}
	return
}

// NewI creates a register-immediate instruction.
func NewI(d Descriptor, rd, rs1 Register, imm int64) (inst IType, err error) {
	err = checkFormat(d, FORMAT_I)
	if err != nil {
		return
	}
	err = d.CheckImmediate(imm)
	if err != nil {
		return
	}

	inst = IType{Desc: d, Rd: rd, Rs1: rs1, Imm: int32(imm)}
	return
}

// NewS creates a store instruction.
func NewS(d Descriptor, rs1, rs2 Register, imm int64) (inst SType, err error) {
	err = checkFormat(d, FORMAT_S)
	if err != nil {
		return
	}
	err = d.CheckImmediate(imm)
	if err != nil {
		return
	}

	inst = SType{Desc: d, Rs1: rs1, Rs2: rs2, Imm: int32(imm)}
	return
}

// NewB creates a branch instruction.
func NewB(d Descriptor, rs1, rs2 Register, imm int64) (inst BType, err error) {
	err = checkFormat(d, FORMAT_B)
	if err != nil {
		return
	}
	err = d.CheckImmediate(imm)
	if err != nil {
		return
	}

	inst = BType{Desc: d, Rs1: rs1, Rs2: rs2, Imm: int32(imm)}
	return
}

// NewU creates an upper-immediate instruction. Negative immediates are
// stored as their unsigned 20-bit equivalent.
func NewU(d Descriptor, rd Register, imm int64) (inst UType, err error) {
	err = checkFormat(d, FORMAT_U)
	if err != nil {
		return
	}
	err = d.CheckImmediate(imm)
	if err != nil {
		return
	}

	inst = UType{Desc: d, Rd: rd, Imm: int32(imm & 0xfffff)}
	return
}

// NewJ creates a jump instruction.
func NewJ(d Descriptor, rd Register, imm int64) (inst JType, err error) {
	err = checkFormat(d, FORMAT_J)
	if err != nil {
		return
	}
	err = d.CheckImmediate(imm)
	if err != nil {
		return
	}

	inst = JType{Desc: d, Rd: rd, Imm: int32(imm)}
	return
}

func (inst RType) Descriptor() Descriptor { return inst.Desc }
func (inst IType) Descriptor() Descriptor { return inst.Desc }
func (inst SType) Descriptor() Descriptor { return inst.Desc }
func (inst BType) Descriptor() Descriptor { return inst.Desc }
func (inst UType) Descriptor() Descriptor { return inst.Desc }
func (inst JType) Descriptor() Descriptor { return inst.Desc }

func (inst RType) Encode() Code { return MakeCodeR(inst.Desc, inst.Rd, inst.Rs1, inst.Rs2) }
func (inst IType) Encode() Code { return MakeCodeI(inst.Desc, inst.Rd, inst.Rs1, inst.Imm) }
func (inst SType) Encode() Code { return MakeCodeS(inst.Desc, inst.Rs1, inst.Rs2, inst.Imm) }
func (inst BType) Encode() Code { return MakeCodeB(inst.Desc, inst.Rs1, inst.Rs2, inst.Imm) }
func (inst UType) Encode() Code { return MakeCodeU(inst.Desc, inst.Rd, inst.Imm) }
func (inst JType) Encode() Code { return MakeCodeJ(inst.Desc, inst.Rd, inst.Imm) }

func (inst RType) String() string {
	return fmt.Sprintf("%v %v, %v, %v", inst.Desc.Mnemonic, inst.Rd, inst.Rs1, inst.Rs2)
}

// String uses the offset(base) form for loads.
func (inst IType) String() string {
	if inst.Desc.IsLoad() {
		return fmt.Sprintf("%v %v, %d(%v)", inst.Desc.Mnemonic, inst.Rd, inst.Imm, inst.Rs1)
	}
	return fmt.Sprintf("%v %v, %v, %d", inst.Desc.Mnemonic, inst.Rd, inst.Rs1, inst.Imm)
}

func (inst SType) String() string {
	return fmt.Sprintf("%v %v, %d(%v)", inst.Desc.Mnemonic, inst.Rs2, inst.Imm, inst.Rs1)
}

func (inst BType) String() string {
	return fmt.Sprintf("%v %v, %v, %d", inst.Desc.Mnemonic, inst.Rs1, inst.Rs2, inst.Imm)
}

func (inst UType) String() string {
	return fmt.Sprintf("%v %v, %#x", inst.Desc.Mnemonic, inst.Rd, inst.Imm)
}

func (inst JType) String() string {
	return fmt.Sprintf("%v %v, %d", inst.Desc.Mnemonic, inst.Rd, inst.Imm)
}
