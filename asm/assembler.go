// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"context"
	"errors"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/rvasm/internal"
	"github.com/ezrec/rvasm/isa"
)

// Assembler encodes single lines of RV32I assembly text.
//
// An Assembler holds no per-line state; one value may encode lines from
// many goroutines at once.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Jobs    int  // Maximum concurrent encodes in a batch, or 0 for no limit.
}

// stripComment removes '#' and ';' comments and surrounding space.
func stripComment(line string) string {
	if n := strings.IndexAny(line, "#;"); n >= 0 {
		line = line[:n]
	}
	return strings.TrimSpace(line)
}

// splitOperands splits the operand text on commas. Every operand must be
// a single non-empty word.
func splitOperands(text string) (words []string, ok bool) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil, true
	}

	words = strings.Split(text, ",")
	for n, word := range words {
		word = strings.TrimSpace(word)
		if len(word) == 0 || strings.IndexFunc(word, isSpace) >= 0 {
			return nil, false
		}
		words[n] = word
	}

	return words, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// splitOffset splits an 'imm(reg)' operand. An empty offset is zero.
func splitOffset(word string) (imm, reg string, ok bool) {
	open := strings.IndexByte(word, '(')
	if open < 0 || !strings.HasSuffix(word, ")") {
		return
	}

	imm = word[:open]
	reg = word[open+1 : len(word)-1]
	if len(imm) == 0 {
		imm = "0"
	}
	ok = len(reg) != 0 && !strings.ContainsAny(reg, "()")
	return
}

// valueOf returns the value of a numeric word. Words without a 0x, 0b or
// 0o prefix are decimal, leading zeros included.
func valueOf(word string) (value int64, err error) {
	digits := strings.TrimLeft(word, "+-")
	sign := word[:len(word)-len(digits)]
	if len(digits) < 2 || digits[0] != '0' || !strings.ContainsRune("xXbBoO", rune(digits[1])) {
		digits = strings.TrimLeft(digits, "0")
		if len(digits) == 0 && len(word) != len(sign) {
			digits = "0"
		}
	}

	value, err = strconv.ParseInt(sign+digits, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	return
}

// registers resolves a list of register words.
func registers(words ...string) (regs []isa.Register, err error) {
	regs = make([]isa.Register, len(words))
	for n, word := range words {
		regs[n], err = isa.RegisterIndex(word)
		if err != nil {
			return
		}
	}
	return
}

// Parse parses a single line into an instruction.
func (asm *Assembler) Parse(line string) (inst isa.Instruction, err error) {
	line = stripComment(line)
	if len(line) == 0 {
		err = ErrLineEmpty
		return
	}

	line, err = expandExpressions(line)
	if err != nil {
		return
	}

	mnemonic, rest := line, ""
	if n := strings.IndexFunc(line, isSpace); n >= 0 {
		mnemonic, rest = line[:n], line[n+1:]
	}

	d, err := isa.Lookup(mnemonic)
	if err != nil {
		return
	}

	words, ok := splitOperands(rest)
	malformed := ErrOperands{Mnemonic: d.Mnemonic, Format: d.Format, Operands: strings.TrimSpace(rest)}
	if !ok {
		err = malformed
		return
	}

	switch d.Format {
	case isa.FORMAT_R:
		if len(words) != 3 {
			err = malformed
			return
		}
		var regs []isa.Register
		regs, err = registers(words...)
		if err != nil {
			return
		}
		inst, err = isa.NewR(d, regs[0], regs[1], regs[2])
	case isa.FORMAT_I:
		// rd, rs1, imm ; loads and jalr also take rd, imm(rs1)
		var rd, rs1, imm string
		switch {
		case len(words) == 3:
			rd, rs1, imm = words[0], words[1], words[2]
		case len(words) == 2 && !d.Shift && d.Opcode != isa.OPCODE_OP_IMM:
			rd = words[0]
			imm, rs1, ok = splitOffset(words[1])
			if !ok {
				err = malformed
				return
			}
		default:
			err = malformed
			return
		}
		var regs []isa.Register
		regs, err = registers(rd, rs1)
		if err != nil {
			return
		}
		var value int64
		value, err = valueOf(imm)
		if err != nil {
			return
		}
		inst, err = isa.NewI(d, regs[0], regs[1], value)
	case isa.FORMAT_S:
		// rs2, imm(rs1)
		if len(words) != 2 {
			err = malformed
			return
		}
		imm, rs1, ok := splitOffset(words[1])
		if !ok {
			err = malformed
			return
		}
		var regs []isa.Register
		regs, err = registers(words[0], rs1)
		if err != nil {
			return
		}
		var value int64
		value, err = valueOf(imm)
		if err != nil {
			return
		}
		inst, err = isa.NewS(d, regs[1], regs[0], value)
	case isa.FORMAT_B:
		if len(words) != 3 {
			err = malformed
			return
		}
		var regs []isa.Register
		regs, err = registers(words[0], words[1])
		if err != nil {
			return
		}
		var value int64
		value, err = valueOf(words[2])
		if err != nil {
			return
		}
		inst, err = isa.NewB(d, regs[0], regs[1], value)
	case isa.FORMAT_U, isa.FORMAT_J:
		if len(words) != 2 {
			err = malformed
			return
		}
		var rd isa.Register
		rd, err = isa.RegisterIndex(words[0])
		if err != nil {
			return
		}
		var value int64
		value, err = valueOf(words[1])
		if err != nil {
			return
		}
		if d.Format == isa.FORMAT_U {
			inst, err = isa.NewU(d, rd, value)
		} else {
			inst, err = isa.NewJ(d, rd, value)
		}
	default:
		err = isa.ErrMnemonic(mnemonic)
	}

	if err != nil {
		inst = nil
	}

	return
}

// Encode parses a single line and returns its instruction word.
func (asm *Assembler) Encode(line string) (code isa.Code, err error) {
	inst, err := asm.Parse(line)
	if err != nil {
		return
	}

	code = inst.Encode()
	return
}

// AssembleLines encodes every line concurrently. The returned program
// keeps the input order and omits blank and comment-only lines; each
// failing line carries its own error. Only context cancellation fails
// the call itself.
func (asm *Assembler) AssembleLines(ctx context.Context, lines []string) (prog *Program, err error) {
	return asm.AssembleSource(ctx, "", lines)
}

// AssembleSource is AssembleLines for lines read from the named file.
// Line numbers and errors refer to that file.
func (asm *Assembler) AssembleSource(ctx context.Context, file string, lines []string) (prog *Program, err error) {
	opcodes := make([]Opcode, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	if asm.Jobs > 0 {
		g.SetLimit(asm.Jobs)
	}

	for n, text := range lines {
		g.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err
			}

			op := &opcodes[n]
			op.File = file
			op.LineNo = n + 1
			op.Line = text

			if asm.Verbose {
				log.Printf("%v:%v: %v\n", file, op.LineNo, text)
			}

			op.Instruction, op.Err = asm.Parse(text)
			if errors.Is(op.Err, ErrLineEmpty) {
				op.Err = nil
				return nil
			}
			if op.Err != nil {
				op.Err = &ErrSyntax{File: file, LineNo: op.LineNo, Line: text, Err: op.Err}
				return nil
			}

			op.Code = op.Instruction.Encode()
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.DeleteFunc(opcodes, func(op Opcode) bool { return op.Empty() }),
	}

	return
}

// Assemble reads all lines from input and encodes them as one batch.
func (asm *Assembler) Assemble(ctx context.Context, input io.Reader) (prog *Program, err error) {
	return asm.AssembleFile(ctx, "", input)
}

// AssembleFile reads all lines of the named file from input and encodes
// them as one batch.
func (asm *Assembler) AssembleFile(ctx context.Context, file string, input io.Reader) (prog *Program, err error) {
	var lines []string
	for line, lerr := range internal.Lines(input) {
		if lerr != nil {
			err = lerr
			return
		}
		lines = append(lines, line)
	}

	return asm.AssembleSource(ctx, file, lines)
}
