// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// EXPR_MAX_STEPS bounds the work of a single $(...) evaluation.
const EXPR_MAX_STEPS = 100_000

// intArg unpacks the single integer argument of a builtin.
func intArg(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value int64, err error) {
	var arg starlark.Value
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &arg)
	if err != nil {
		return
	}

	st_int, ok := arg.(starlark.Int)
	if !ok {
		err = fmt.Errorf("%v: got %v, want int", b.Name(), arg.Type())
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = fmt.Errorf("%v: %v out of range", b.Name(), st_int)
	}
	return
}

// hi returns the upper 20 bits of an address, rounded so that adding
// lo() of the same address reconstructs it.
func hi(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	value, err := intArg(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt64(((value + 0x800) >> 12) & 0xfffff), nil
}

// lo returns the sign-extended lower 12 bits of an address.
func lo(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	value, err := intArg(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt64(((value & 0xfff) ^ 0x800) - 0x800), nil
}

// parenEval does $(...) evaluations
func parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	thread.SetMaxExecutionSteps(EXPR_MAX_STEPS)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"hi": starlark.NewBuiltin("hi", hi),
		"lo": starlark.NewBuiltin("lo", lo),
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expandExpressions replaces every $(...) in line with its decimal value.
func expandExpressions(line string) (out string, err error) {
	var sb strings.Builder

	for {
		start := strings.Index(line, "$(")
		if start < 0 {
			sb.WriteString(line)
			break
		}

		depth := 0
		end := -1
		for n := start + 1; n < len(line) && end < 0; n++ {
			switch line[n] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = n
				}
			}
		}
		if end < 0 {
			err = ErrParseExpression(line[start+2:])
			return
		}

		var value int64
		value, err = parenEval(line[start+2 : end])
		if err != nil {
			return
		}

		sb.WriteString(line[:start])
		sb.WriteString(strconv.FormatInt(value, 10))
		line = line[end+1:]
	}

	out = sb.String()
	return
}
