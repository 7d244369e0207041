// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
)

// Code is a single 32-bit instruction word.
type Code uint32

// String returns the word as 32 binary digits, bit 31 first.
func (code Code) String() string {
	return fmt.Sprintf("%032b", uint32(code))
}

// Hex returns the word as 8 hexadecimal digits.
func (code Code) Hex() string {
	return fmt.Sprintf("%08x", uint32(code))
}

// Opcode returns bits 6:0.
func (code Code) Opcode() uint8 {
	return uint8(code & 0x7f)
}

// Rd returns bits 11:7.
func (code Code) Rd() Register {
	return Register((code >> 7) & REGISTER_MASK)
}

// Funct3 returns bits 14:12.
func (code Code) Funct3() uint8 {
	return uint8((code >> 12) & 0x7)
}

// Rs1 returns bits 19:15.
func (code Code) Rs1() Register {
	return Register((code >> 15) & REGISTER_MASK)
}

// Rs2 returns bits 24:20.
func (code Code) Rs2() Register {
	return Register((code >> 20) & REGISTER_MASK)
}

// Funct7 returns bits 31:25.
func (code Code) Funct7() uint8 {
	return uint8((code >> 25) & 0x7f)
}

// makeBase packs the fields shared by every format.
func makeBase(d Descriptor, rd Register) Code {
	code := Code(d.Opcode&0x7f) | (Code(rd&REGISTER_MASK) << 7)
	if d.HasFunct3() {
		code |= Code(d.Funct3&0x7) << 12
	}
	return code
}

// MakeCodeR creates a register-register instruction.
func MakeCodeR(d Descriptor, rd, rs1, rs2 Register) Code {
	return (Code(d.Funct7&0x7f) << 25) |
		(Code(rs2&REGISTER_MASK) << 20) |
		(Code(rs1&REGISTER_MASK) << 15) |
		makeBase(d, rd)
}

// MakeCodeI creates a register-immediate, load or jalr instruction.
//
// For shifts the immediate is the bare shift amount; the upper seven
// bits of the field are the descriptor's funct7.
func MakeCodeI(d Descriptor, rd, rs1 Register, imm int32) Code {
	field := uint32(imm) & 0xfff
	if d.Shift {
		field = (uint32(d.Funct7&0x7f) << 5) | (uint32(imm) & 0x1f)
	}
	return (Code(field) << 20) |
		(Code(rs1&REGISTER_MASK) << 15) |
		makeBase(d, rd)
}

// MakeCodeS creates a store instruction.
func MakeCodeS(d Descriptor, rs1, rs2 Register, imm int32) Code {
	field := uint32(imm) & 0xfff
	return (Code(field>>5) << 25) |
		(Code(rs2&REGISTER_MASK) << 20) |
		(Code(rs1&REGISTER_MASK) << 15) |
		(Code(field&0x1f) << 7) |
		makeBase(d, 0)
}

// MakeCodeB creates a conditional branch instruction.
func MakeCodeB(d Descriptor, rs1, rs2 Register, imm int32) Code {
	field := uint32(imm)
	return (Code((field>>12)&0x1) << 31) |
		(Code((field>>5)&0x3f) << 25) |
		(Code(rs2&REGISTER_MASK) << 20) |
		(Code(rs1&REGISTER_MASK) << 15) |
		(Code((field>>1)&0xf) << 8) |
		(Code((field>>11)&0x1) << 7) |
		makeBase(d, 0)
}

// MakeCodeU creates an upper-immediate instruction.
func MakeCodeU(d Descriptor, rd Register, imm int32) Code {
	return (Code(uint32(imm)&0xfffff) << 12) | makeBase(d, rd)
}

// MakeCodeJ creates a jump-and-link instruction.
func MakeCodeJ(d Descriptor, rd Register, imm int32) Code {
	field := uint32(imm)
	return (Code((field>>20)&0x1) << 31) |
		(Code((field>>1)&0x3ff) << 21) |
		(Code((field>>11)&0x1) << 20) |
		(Code((field>>12)&0xff) << 12) |
		makeBase(d, rd)
}

// signExtend interprets the low bits of value as a two's complement number.
func signExtend(value uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(value<<shift) >> shift
}

// ImmI returns the sign-extended I-format immediate.
func (code Code) ImmI() int32 {
	return signExtend(uint32(code)>>20, 12)
}

// ImmS returns the sign-extended S-format immediate.
func (code Code) ImmS() int32 {
	field := (uint32(code)>>25)<<5 | (uint32(code)>>7)&0x1f
	return signExtend(field, 12)
}

// ImmB returns the sign-extended B-format byte offset.
func (code Code) ImmB() int32 {
	word := uint32(code)
	field := ((word>>31)&0x1)<<12 |
		((word>>7)&0x1)<<11 |
		((word>>25)&0x3f)<<5 |
		((word>>8)&0xf)<<1
	return signExtend(field, 13)
}

// ImmU returns the 20-bit U-format immediate, unshifted.
func (code Code) ImmU() int32 {
	return int32(uint32(code) >> 12)
}

// ImmJ returns the sign-extended J-format byte offset.
func (code Code) ImmJ() int32 {
	word := uint32(code)
	field := ((word>>31)&0x1)<<20 |
		((word>>12)&0xff)<<12 |
		((word>>20)&0x1)<<11 |
		((word>>21)&0x3ff)<<1
	return signExtend(field, 21)
}
