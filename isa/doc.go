// Package isa describes the RV32I base integer instruction set.
//
// It holds the read-only mnemonic and register tables, the six instruction
// formats (R, I, S, B, U, J) and their bit layouts, and a decoder that maps
// a 32-bit instruction word back to its mnemonic and operands.
//
// All tables are built once at package initialization and are never
// modified afterwards, so every function here is safe for concurrent use.
package isa
