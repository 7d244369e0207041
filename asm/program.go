package asm

import (
	"errors"
	"iter"

	"github.com/ezrec/rvasm/isa"
)

// Opcode is one assembled source line.
type Opcode struct {
	File        string          // Source file name, empty for unnamed input.
	LineNo      int             // 1-based line number in the source.
	Line        string          // Source text.
	Instruction isa.Instruction // Parsed instruction, nil on error.
	Code        isa.Code        // Instruction word, when Err is nil.
	Err         error           // Encoding failure, as *ErrSyntax.
}

// Empty is true for blank and comment-only lines.
func (op Opcode) Empty() bool {
	return op.Instruction == nil && op.Err == nil
}

// Program is an ordered batch of assembled lines.
type Program struct {
	Opcodes []Opcode
}

// Codes iterates the line number and word of every line that encoded.
func (prog *Program) Codes() iter.Seq2[int, isa.Code] {
	return func(yield func(lineno int, code isa.Code) bool) {
		for _, op := range prog.Opcodes {
			if op.Err != nil {
				continue
			}
			if !yield(op.LineNo, op.Code) {
				return
			}
		}
	}
}

// Binary returns the instruction words of the lines that encoded.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint32(code))
	}

	return
}

// Err joins the errors of every failing line, or returns nil.
func (prog *Program) Err() error {
	var errs []error
	for _, op := range prog.Opcodes {
		if op.Err != nil {
			errs = append(errs, op.Err)
		}
	}

	return errors.Join(errs...)
}

// Lookup returns the opcode assembled from a source line number.
func (prog *Program) Lookup(lineno int) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].LineNo == lineno {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}
