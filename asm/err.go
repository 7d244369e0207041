package asm

import (
	"errors"

	"github.com/ezrec/rvasm/isa"
	"github.com/ezrec/rvasm/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLineEmpty = errors.New(f("line empty"))
)

// ErrSyntax ties an encoding failure to its source line.
type ErrSyntax struct {
	File   string // Source file name, empty for unnamed input.
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	if len(err.File) != 0 {
		return f("%v:%v '%v' %v", err.File, err.LineNo, err.Line, err.Err)
	}
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrOperands reports operands that do not fit the format's grammar.
type ErrOperands struct {
	Mnemonic string
	Format   isa.Format
	Operands string
}

func (err ErrOperands) Error() string {
	return f("%v (%v-format) operands '%v' malformed", err.Mnemonic, err.Format, err.Operands)
}

func (err ErrOperands) Unwrap() error {
	return isa.ErrMalformedOperands
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return isa.ErrImmediateOutOfRange
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrParseExpression) Unwrap() error {
	return isa.ErrImmediateOutOfRange
}
