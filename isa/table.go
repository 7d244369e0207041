// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Major opcodes of the base integer instruction set.
const (
	OPCODE_LOAD   = 0b0000011
	OPCODE_OP_IMM = 0b0010011
	OPCODE_AUIPC  = 0b0010111
	OPCODE_STORE  = 0b0100011
	OPCODE_OP     = 0b0110011
	OPCODE_LUI    = 0b0110111
	OPCODE_BRANCH = 0b1100011
	OPCODE_JALR   = 0b1100111
	OPCODE_JAL    = 0b1101111
)

// Descriptor is the fixed encoding metadata of a mnemonic.
type Descriptor struct {
	Mnemonic string
	Format   Format
	Opcode   uint8 // 7 bits
	Funct3   uint8 // 3 bits, when HasFunct3()
	Funct7   uint8 // 7 bits, when HasFunct7()
	Shift    bool  // Immediate is a shift amount under a fixed funct7.
}

// HasFunct3 is true for every format except U and J.
func (d Descriptor) HasFunct3() bool {
	return d.Format != FORMAT_U && d.Format != FORMAT_J
}

// HasFunct7 is true for R-format and for I-format shifts.
func (d Descriptor) HasFunct7() bool {
	return d.Format == FORMAT_R || (d.Format == FORMAT_I && d.Shift)
}

// IsLoad is true for the memory load instructions.
func (d Descriptor) IsLoad() bool {
	return d.Opcode == OPCODE_LOAD
}

func makeR(mnemonic string, funct3, funct7 uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Format: FORMAT_R, Opcode: OPCODE_OP, Funct3: funct3, Funct7: funct7}
}

func makeI(mnemonic string, opcode, funct3 uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Format: FORMAT_I, Opcode: opcode, Funct3: funct3}
}

func makeShift(mnemonic string, funct3, funct7 uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Format: FORMAT_I, Opcode: OPCODE_OP_IMM, Funct3: funct3, Funct7: funct7, Shift: true}
}

func makeS(mnemonic string, funct3 uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Format: FORMAT_S, Opcode: OPCODE_STORE, Funct3: funct3}
}

func makeB(mnemonic string, funct3 uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Format: FORMAT_B, Opcode: OPCODE_BRANCH, Funct3: funct3}
}

// instructionMap maps mnemonics to their descriptors.
var instructionMap = map[string]Descriptor{
	// R-format
	"add":  makeR("add", 0b000, 0b0000000),
	"sub":  makeR("sub", 0b000, 0b0100000),
	"sll":  makeR("sll", 0b001, 0b0000000),
	"slt":  makeR("slt", 0b010, 0b0000000),
	"sltu": makeR("sltu", 0b011, 0b0000000),
	"xor":  makeR("xor", 0b100, 0b0000000),
	"srl":  makeR("srl", 0b101, 0b0000000),
	"sra":  makeR("sra", 0b101, 0b0100000),
	"or":   makeR("or", 0b110, 0b0000000),
	"and":  makeR("and", 0b111, 0b0000000),

	// I-format
	"addi":  makeI("addi", OPCODE_OP_IMM, 0b000),
	"slti":  makeI("slti", OPCODE_OP_IMM, 0b010),
	"sltiu": makeI("sltiu", OPCODE_OP_IMM, 0b011),
	"xori":  makeI("xori", OPCODE_OP_IMM, 0b100),
	"ori":   makeI("ori", OPCODE_OP_IMM, 0b110),
	"andi":  makeI("andi", OPCODE_OP_IMM, 0b111),
	"slli":  makeShift("slli", 0b001, 0b0000000),
	"srli":  makeShift("srli", 0b101, 0b0000000),
	"srai":  makeShift("srai", 0b101, 0b0100000),
	"jalr":  makeI("jalr", OPCODE_JALR, 0b000),
	"lb":    makeI("lb", OPCODE_LOAD, 0b000),
	"lh":    makeI("lh", OPCODE_LOAD, 0b001),
	"lw":    makeI("lw", OPCODE_LOAD, 0b010),
	"lbu":   makeI("lbu", OPCODE_LOAD, 0b100),
	"lhu":   makeI("lhu", OPCODE_LOAD, 0b101),

	// B-format
	"beq":  makeB("beq", 0b000),
	"bne":  makeB("bne", 0b001),
	"blt":  makeB("blt", 0b100),
	"bge":  makeB("bge", 0b101),
	"bltu": makeB("bltu", 0b110),
	"bgeu": makeB("bgeu", 0b111),

	// J-format
	"jal": {Mnemonic: "jal", Format: FORMAT_J, Opcode: OPCODE_JAL},

	// S-format
	"sb": makeS("sb", 0b000),
	"sh": makeS("sh", 0b001),
	"sw": makeS("sw", 0b010),

	// U-format
	"lui":   {Mnemonic: "lui", Format: FORMAT_U, Opcode: OPCODE_LUI},
	"auipc": {Mnemonic: "auipc", Format: FORMAT_U, Opcode: OPCODE_AUIPC},
}

// decodeKey selects a descriptor from the fixed fields of a word.
// Absent fields are -1.
type decodeKey struct {
	opcode int
	funct3 int
	funct7 int
}

// decodeMap is the reverse of instructionMap.
var decodeMap = make(map[decodeKey]Descriptor, len(instructionMap))

func keyOf(d Descriptor) (key decodeKey) {
	key = decodeKey{opcode: int(d.Opcode), funct3: -1, funct7: -1}
	if d.HasFunct3() {
		key.funct3 = int(d.Funct3)
	}
	if d.HasFunct7() {
		key.funct7 = int(d.Funct7)
	}
	return
}

func init() {
	for _, d := range instructionMap {
		decodeMap[keyOf(d)] = d
	}
}

// Lookup returns the descriptor of a mnemonic.
func Lookup(mnemonic string) (d Descriptor, err error) {
	d, ok := instructionMap[strings.ToLower(mnemonic)]
	if !ok {
		err = ErrMnemonic(mnemonic)
		return
	}

	return
}

// Mnemonics returns all supported mnemonics in sorted order.
func Mnemonics() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(instructionMap)))
}
