package isa

import (
	"fmt"
	"strings"
)

// Register is a 5-bit general purpose register index.
type Register uint8

const (
	REGISTER_COUNT = 32
	REGISTER_MASK  = 0x1f
)

// registerMap maps register names to register indexes.
var registerMap = make(map[string]Register, REGISTER_COUNT)

func init() {
	for n := range REGISTER_COUNT {
		registerMap[fmt.Sprintf("x%d", n)] = Register(n)
	}
}

// RegisterIndex returns the register named by word.
func RegisterIndex(word string) (reg Register, err error) {
	reg, ok := registerMap[strings.ToLower(word)]
	if !ok {
		err = ErrRegister(word)
		return
	}

	return
}

// String returns the architectural name of the register.
func (reg Register) String() string {
	return fmt.Sprintf("x%d", uint8(reg))
}
