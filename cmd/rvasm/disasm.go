package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/rvasm/isa"
)

// parseWord accepts 0x hex, 0b or bare 32-digit binary, and decimal words.
func parseWord(word string) (code isa.Code, err error) {
	base := 0
	if len(word) == 32 && strings.Trim(word, "01") == "" {
		base = 2
	}

	value, err := strconv.ParseUint(word, base, 32)
	if err != nil {
		err = fmt.Errorf("%w: %v", isa.ErrDecode, f("'%v' is not an instruction word", word))
		return
	}

	code = isa.Code(value)
	return
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm word...",
		Short: "Decode instruction words into assembly text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, word := range args {
				code, err := parseWord(word)
				if err != nil {
					return err
				}
				inst, err := isa.Decode(code)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%v\t%v\n", code.Hex(), inst)
			}
			return nil
		},
	}
}
