package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rvasm/asm"
	"github.com/ezrec/rvasm/isa"
)

func runCmd(t *testing.T, input string, args ...string) (output string, err error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err = cmd.Execute()
	output = out.String()
	return
}

func TestRootDefault(t *testing.T) {
	assert := assert.New(t)

	output, err := runCmd(t, "", "--default")
	assert.NoError(err)

	assert.Equal(len(sampleLines), strings.Count(output, "Assembly: "))
	assert.Contains(output, "Assembly: add x1, x2, x3\nMachine Code: 00000000001100010000000010110011\n\n")
	assert.Contains(output, "Assembly: addi x2, x1, 10\nMachine Code: 00000000101000001000000100010011\n\n")
	assert.Contains(output, "Assembly: jal x1, 16\nMachine Code: 00000001000000000000000011101111\n\n")

	// Output keeps the input order.
	last := -1
	for _, line := range sampleLines {
		at := strings.Index(output, "Assembly: "+line+"\n")
		assert.Greater(at, last, line)
		last = at
	}
}

func TestRootHex(t *testing.T) {
	assert := assert.New(t)

	output, err := runCmd(t, "", "-d", "-x")
	assert.NoError(err)
	assert.Contains(output, "Machine Code: 00000000001100010000000010110011 (0x003100b3)\n")
}

func TestRootFiles(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.s")
	bad := filepath.Join(dir, "bad.s")
	assert.NoError(os.WriteFile(good, []byte("# stores\nsw x3, 4(x1)\n"), 0o644))
	assert.NoError(os.WriteFile(bad, []byte("foo x1, x2, x3\nlui x1, 1\n"), 0o644))

	output, err := runCmd(t, "", good)
	assert.NoError(err)
	assert.Equal("Assembly: sw x3, 4(x1)\nMachine Code: 00000000001100001010001000100011\n\n", output)

	output, err = runCmd(t, "", good, bad)
	assert.True(errors.Is(err, errLinesFailed))
	assert.Contains(output, "Assembly: sw x3, 4(x1)\n")
	assert.Contains(output, "Assembly: lui x1, 1\n")

	output, err = runCmd(t, "", "--stop", good, bad)
	assert.True(errors.Is(err, isa.ErrUnknownMnemonic))
	assert.Contains(output, "Assembly: sw x3, 4(x1)\n")
	assert.NotContains(output, "Assembly: lui x1, 1\n")

	// Errors name their own file, numbered from its first line.
	var syntax *asm.ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(bad, syntax.File)
	assert.Equal(1, syntax.LineNo)

	_, err = runCmd(t, "", "--stop", "-d", bad)
	assert.True(errors.As(err, &syntax))
	assert.Equal(bad, syntax.File)
	assert.Equal(1, syntax.LineNo)

	_, err = runCmd(t, "", filepath.Join(dir, "missing.s"))
	assert.True(errors.Is(err, os.ErrNotExist))
}

func TestRootInteractive(t *testing.T) {
	assert := assert.New(t)

	input := "add x1, x2, x3\n\nsub x0, x1, x3\nend\naddi x1, x2, 3\n"
	output, err := runCmd(t, input)
	assert.NoError(err)
	assert.True(strings.HasPrefix(output, "Enter assembly instructions (type 'end' to stop):\n"))
	assert.Contains(output, "Assembly: add x1, x2, x3\n")
	assert.Contains(output, "Assembly: sub x0, x1, x3\n")
	assert.NotContains(output, "addi")

	output, err = runCmd(t, "addi x1, x2, 5000\nadd x1, x2, x3\n")
	assert.True(errors.Is(err, errLinesFailed))
	assert.Contains(output, "Assembly: add x1, x2, x3\n")

	_, err = runCmd(t, "addi x1, x2, 5000\nadd x1, x2, x3\n", "-s")
	var syntax *asm.ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(1, syntax.LineNo)
	assert.True(errors.Is(err, isa.ErrImmediateOutOfRange))
}

func TestRootLang(t *testing.T) {
	assert := assert.New(t)

	output, err := runCmd(t, "", "--lang", "en-US", "-d")
	assert.NoError(err)
	assert.Contains(output, "Assembly: add x1, x2, x3\n")

	output, err = runCmd(t, "", "--lang", "en-US", "disasm", "0x003100b3")
	assert.NoError(err)
	assert.Equal("003100b3\tadd x1, x2, x3\n", output)
}

func TestRootDump(t *testing.T) {
	assert := assert.New(t)

	output, err := runCmd(t, "lw x1, 4(x2)\n", "--dump")
	assert.NoError(err)
	assert.Contains(output, "Assembly: lw x1, 4(x2)\n")
	assert.GreaterOrEqual(strings.Count(output, "lw"), 2)
}

func TestDisasm(t *testing.T) {
	assert := assert.New(t)

	output, err := runCmd(t, "", "disasm", "0x003100b3", "00000001000000000000000011101111", "0b00000000101000001000000100010011")
	assert.NoError(err)
	assert.Equal("003100b3\tadd x1, x2, x3\n010000ef\tjal x1, 16\n00a08113\taddi x2, x1, 10\n", output)

	_, err = runCmd(t, "", "disasm", "0x00000000")
	assert.True(errors.Is(err, isa.ErrDecode))

	_, err = runCmd(t, "", "disasm", "xyzzy")
	assert.True(errors.Is(err, isa.ErrDecode))

	_, err = runCmd(t, "", "disasm")
	assert.Error(err)
}
