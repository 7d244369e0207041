// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"errors"

	"github.com/ezrec/rvasm/translate"
)

var f = translate.From

var (
	// Encoding error kinds
	ErrUnknownMnemonic     = errors.New(f("unknown mnemonic"))
	ErrMalformedOperands   = errors.New(f("malformed operands"))
	ErrUnknownRegister     = errors.New(f("unknown register"))
	ErrImmediateOutOfRange = errors.New(f("immediate out of range"))

	// Format mismatch between a descriptor and the constructor used.
	ErrFormat = errors.New(f("format mismatch"))

	// Instruction decode errors
	ErrDecode = errors.New(f("decode"))
)

type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("'%v' is not a known mnemonic", string(em))
}

func (em ErrMnemonic) Unwrap() error {
	return ErrUnknownMnemonic
}

type ErrRegister string

func (er ErrRegister) Error() string {
	return f("'%v' is not a register", string(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrUnknownRegister
}

// ErrImmediate reports an immediate outside of its field's range.
type ErrImmediate struct {
	Value int64
	Min   int64
	Max   int64
}

func (err ErrImmediate) Error() string {
	return f("%d not in range %d..%d", err.Value, err.Min, err.Max)
}

func (err ErrImmediate) Unwrap() error {
	return ErrImmediateOutOfRange
}

// ErrImmediateAlign reports an odd branch or jump offset.
type ErrImmediateAlign int64

func (err ErrImmediateAlign) Error() string {
	return f("offset %d is not a multiple of 2", int64(err))
}

func (err ErrImmediateAlign) Unwrap() error {
	return ErrImmediateOutOfRange
}

type ErrCode Code

func (ec ErrCode) Error() string {
	return f("bad instruction 0x%08x", uint32(ec))
}

func (ec ErrCode) Unwrap() error {
	return ErrDecode
}
