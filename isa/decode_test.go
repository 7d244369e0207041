package isa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Code Code
		Text string
	}{
		{0x003100b3, "add x1, x2, x3"},
		{0x40308033, "sub x0, x1, x3"},
		{0x4020d0b3, "sra x1, x1, x2"},
		{0x00a08113, "addi x2, x1, 10"},
		{0xfff00093, "addi x1, x0, -1"},
		{0x40315093, "srai x1, x2, 3"},
		{0x0031d093, "srli x1, x3, 3"},
		{0x004101e7, "jalr x3, x2, 4"},
		{0x00412083, "lw x1, 4(x2)"},
		{0xffc14083, "lbu x1, -4(x2)"},
		{0x0030a223, "sw x3, 4(x1)"},
		{0xfe000ee3, "beq x0, x0, -4"},
		{0x0071d663, "bge x3, x7, 12"},
		{0x010000ef, "jal x1, 16"},
		{0xffdff06f, "jal x0, -4"},
		{0x123450b7, "lui x1, 0x12345"},
		{0x00001097, "auipc x1, 0x1"},
	}

	for _, entry := range table {
		inst, err := Decode(entry.Code)
		assert.NoError(err, entry.Text)
		if err != nil {
			continue
		}
		assert.Equal(entry.Text, inst.String())
		assert.Equal(entry.Code, inst.Encode(), entry.Text)
	}
}

func TestDecodeRType(t *testing.T) {
	assert := assert.New(t)

	for mnemonic := range Mnemonics() {
		d := mustLookup(t, mnemonic)
		if d.Format != FORMAT_R {
			continue
		}

		code := MakeCodeR(d, 1, 2, 3)
		inst, err := Decode(code)
		assert.NoError(err)
		assert.Equal(mnemonic, inst.Descriptor().Mnemonic)
		assert.Equal(d.Funct7, code.Funct7(), mnemonic)
		assert.Equal(d.Funct3, code.Funct3(), mnemonic)
	}
}

func TestDecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	beq := mustLookup(t, "beq")

	for _, code := range []Code{
		0x00000000,
		0xffffffff,
		0x02208033, // mul
		0x0020d093 | (1 << 25),
		MakeCodeB(beq, 0, 0, 0) | (0b010 << 12),
	} {
		_, err := Decode(code)
		assert.True(errors.Is(err, ErrDecode), code.Hex())
		assert.Equal(ErrCode(code), err)
	}
}

func FuzzDecode(f *testing.F) {
	f.Add(uint32(0x003100b3))
	f.Add(uint32(0xfe000ee3))
	f.Add(uint32(0xffdff06f))
	f.Add(uint32(0x40315093))
	f.Add(uint32(0))

	f.Fuzz(func(t *testing.T, word uint32) {
		assert := assert.New(t)

		inst, err := Decode(Code(word))
		if err != nil {
			assert.True(errors.Is(err, ErrDecode))
			return
		}

		d := inst.Descriptor()
		code := inst.Encode()
		assert.Equal(d.Opcode, code.Opcode())

		// Re-decoding the canonical encoding is stable.
		again, err := Decode(code)
		assert.NoError(err)
		assert.Equal(inst, again)
		assert.Equal(code, again.Encode())
	})
}
