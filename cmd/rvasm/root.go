package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/ezrec/rvasm/asm"
	"github.com/ezrec/rvasm/internal"
	"github.com/ezrec/rvasm/isa"
	"github.com/ezrec/rvasm/translate"
)

var f = translate.From

var errLinesFailed = errors.New(f("one or more lines failed to assemble"))

// sampleLines are assembled by --default.
var sampleLines = []string{
	"add x1, x2, x3",
	"sub x0, x1, x3",
	"addi x2, x1, 10",
	"beq x1, x2, 8",
	"jal x1, 16",
	"jalr x3, x2, 4",
	"add x31, x30, x29",
	"bge x3, x7, 12",
}

// defaultName labels errors from the sample list.
const defaultName = "<default>"

// endLine terminates interactive input.
const endLine = "end"

type options struct {
	useDefault bool
	hex        bool
	dump       bool
	stop       bool
	verbose    bool
	jobs       int
	lang       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "rvasm [file...]",
		Short: "Encode RV32I assembly lines into machine code",
		Long: `Rvasm encodes single lines of RISC-V base integer (RV32I) assembly into
their 32-bit instruction words, printed as 32 binary digits.

Each file named on the command line is assembled as one batch, and errors
report the file name and line. With --default a built-in list of sample
instructions is assembled first. With neither,
lines are read from standard input and encoded as they arrive, until a line
reading 'end' or end of input.

Immediates may be written as $(expr), a Starlark integer expression; hi(v)
and lo(v) split a 32-bit value for lui/addi pairs.
`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if len(opts.lang) != 0 {
				translate.SetLanguage(opts.lang, translate.DefaultLocale)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.lang, "lang", "", "message language (BCP 47 tag), default from the environment")

	flags := cmd.Flags()
	flags.BoolVarP(&opts.useDefault, "default", "d", false, "assemble the built-in sample instructions")
	flags.BoolVarP(&opts.hex, "hex", "x", false, "also print the hexadecimal word")
	flags.BoolVar(&opts.dump, "dump", false, "pretty-print each decoded instruction")
	flags.BoolVarP(&opts.stop, "stop", "s", false, "stop at the first line that fails")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose mode")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "maximum concurrent encodes, 0 for no limit")

	cmd.AddCommand(newDisasmCmd())

	return cmd
}

func (opts *options) run(cmd *cobra.Command, args []string) (err error) {
	assembler := &asm.Assembler{Verbose: opts.verbose, Jobs: opts.jobs}
	out := cmd.OutOrStdout()

	if !opts.useDefault && len(args) == 0 {
		return opts.interactive(assembler, cmd.InOrStdin(), out)
	}

	type source struct {
		name  string
		lines iter.Seq2[string, error]
	}

	var sources []source
	if opts.useDefault {
		sources = append(sources, source{name: defaultName, lines: internal.Strings(sampleLines...)})
	}
	for _, name := range args {
		inf, err := os.Open(name)
		if err != nil {
			return err
		}
		defer inf.Close()
		sources = append(sources, source{name: name, lines: internal.Lines(inf)})
	}

	failed := false
	for _, src := range sources {
		var lines []string
		for line, lerr := range src.lines {
			if lerr != nil {
				return fmt.Errorf("%v: %w", src.name, lerr)
			}
			lines = append(lines, line)
		}

		err = opts.batch(cmd.Context(), assembler, src.name, lines, out)
		if errors.Is(err, errLinesFailed) {
			failed = true
			continue
		}
		if err != nil {
			return
		}
	}

	if failed {
		err = errLinesFailed
	}

	return
}

// batch assembles all lines of one source at once and prints them in
// input order.
func (opts *options) batch(ctx context.Context, assembler *asm.Assembler, name string, lines []string, out io.Writer) (err error) {
	prog, err := assembler.AssembleSource(ctx, name, lines)
	if err != nil {
		return
	}

	failed := false
	for _, op := range prog.Opcodes {
		if op.Err != nil {
			if opts.stop {
				return op.Err
			}
			log.Print(op.Err)
			failed = true
			continue
		}
		opts.print(out, op.Line, op.Instruction)
	}

	if failed {
		err = errLinesFailed
	}

	return
}

// interactive encodes each line as soon as it is read.
func (opts *options) interactive(assembler *asm.Assembler, in io.Reader, out io.Writer) (err error) {
	fmt.Fprintln(out, f("Enter assembly instructions (type '%v' to stop):", endLine))

	failed := false
	lineno := 0
	for line, lerr := range internal.Lines(in) {
		if lerr != nil {
			return lerr
		}
		lineno++

		if strings.TrimSpace(line) == endLine {
			break
		}

		if opts.verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		inst, perr := assembler.Parse(line)
		if errors.Is(perr, asm.ErrLineEmpty) {
			continue
		}
		if perr != nil {
			perr = &asm.ErrSyntax{LineNo: lineno, Line: line, Err: perr}
			if opts.stop {
				return perr
			}
			log.Print(perr)
			failed = true
			continue
		}

		opts.print(out, line, inst)
	}

	if failed {
		err = errLinesFailed
	}

	return
}

// print writes the result of one encoded line.
func (opts *options) print(out io.Writer, line string, inst isa.Instruction) {
	code := inst.Encode()

	fmt.Fprintln(out, f("Assembly: %v", strings.TrimSpace(line)))
	if opts.hex {
		fmt.Fprintln(out, f("Machine Code: %v (0x%v)", code.String(), code.Hex()))
	} else {
		fmt.Fprintln(out, f("Machine Code: %v", code.String()))
	}

	if opts.dump {
		printer := pp.New()
		printer.SetOutput(out)
		printer.SetColoringEnabled(false)
		printer.Println(inst)
	}

	fmt.Fprintln(out)
}
