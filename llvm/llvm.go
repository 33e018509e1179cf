// Package llvm builds an LLVM IR program that feeds fixture cases to the
// system printf. Compiled and run, its output is what libc makes of the same
// formats and arguments.
package llvm

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/rgolang/cprintf/fixtures"
	"github.com/rgolang/cprintf/internal/logger"
	"github.com/rgolang/cprintf/libcutils"
)

// Separator is written with putchar after every case.
const Separator = '\x1e'

var ErrUnsupportedValue = errors.New("unsupported argument value")

var zero = constant.NewInt(types.I32, 0)

// GenerateIR loads a fixtures file and returns the harness as IR text.
func GenerateIR(input io.Reader) (string, error) {
	cases, err := fixtures.Load(input)
	if err != nil {
		return "", fmt.Errorf("error loading fixtures: %w", err)
	}
	mod, err := Harness(cases.Index)
	if err != nil {
		return "", fmt.Errorf("error generating IR: %w", err)
	}
	return mod.String(), nil
}

// KindType maps a C argument kind to its LLVM type, or nil for an unknown
// kind.
func KindType(k libcutils.Kind) types.Type {
	switch {
	case k == libcutils.Double:
		return types.Double
	case k == libcutils.LongDouble:
		return types.X86_FP80
	case k == libcutils.IntPtr:
		return types.NewPointer(types.I32)
	case k.IsPointer():
		return types.I8Ptr
	case k.IsInteger():
		return types.NewInt(uint64(k.Size() * 8))
	}
	return nil
}

// promote applies the C default argument promotions.
func promote(k libcutils.Kind) libcutils.Kind {
	if k.IsInteger() && k.Size() < libcutils.Int.Size() {
		return libcutils.Int
	}
	return k
}

// Supported drops the cases the harness cannot run: malformed formats, on
// which C libraries disagree, and cases whose arguments do not parse.
func Supported(cases []fixtures.Case) []fixtures.Case {
	var out []fixtures.Case
	for _, c := range cases {
		if c.Malformed() {
			logger.Debug("llvm: skipping malformed case", logger.Fields{"case": c.Name})
			continue
		}
		if _, _, err := c.Values(); err != nil {
			logger.Debug("llvm: skipping case", logger.Fields{"case": c.Name, "error": err})
			continue
		}
		out = append(out, c)
	}
	return out
}

// SplitOutput cuts the output of a harness binary into one string per case.
func SplitOutput(out string) []string {
	parts := strings.Split(out, string(rune(Separator)))
	return parts[:len(parts)-1]
}

type builder struct {
	mod     *ir.Module
	entry   *ir.Block
	printf  *ir.Func
	putchar *ir.Func
}

// Harness returns a module whose main calls printf once per supported case.
func Harness(cases []fixtures.Case) (*ir.Module, error) {
	mod := ir.NewModule()
	b := &builder{mod: mod}

	fmtParam := ir.NewParam("fmt", types.I8Ptr)
	b.printf = mod.NewFunc("printf", types.I32, fmtParam)
	b.printf.Sig.Variadic = true
	b.putchar = mod.NewFunc("putchar", types.I32, ir.NewParam("c", types.I32))

	main := mod.NewFunc("main", types.I32)
	b.entry = main.NewBlock("entry")

	for i, c := range Supported(cases) {
		if err := b.emitCase(i, c); err != nil {
			return nil, fmt.Errorf("[%d] case %q: %w", i, c.Name, err)
		}
	}
	b.entry.NewRet(zero)
	return mod, nil
}

func (b *builder) emitCase(i int, c fixtures.Case) error {
	kinds, values, err := c.Values()
	if err != nil {
		return err
	}
	prefix := "case." + strconv.Itoa(i)

	args := []value.Value{b.newConstString(prefix+".fmt", c.Format)}
	for j, k := range kinds {
		v, err := b.value(prefix+".arg"+strconv.Itoa(j), k, values[j])
		if err != nil {
			return fmt.Errorf("argument %d: %w", j+1, err)
		}
		args = append(args, v)
	}
	b.entry.NewCall(b.printf, args...)
	b.entry.NewCall(b.putchar, constant.NewInt(types.I32, Separator))
	return nil
}

func (b *builder) value(name string, k libcutils.Kind, v any) (value.Value, error) {
	switch {
	case k == libcutils.CharPtr:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T for %s", ErrUnsupportedValue, v, k)
		}
		return b.newConstString(name, s), nil
	case k == libcutils.IntPtr:
		// %n stores here
		return b.mod.NewGlobalDef(name, constant.NewInt(types.I32, 0)), nil
	case k.IsPointer():
		p, ok := v.(uintptr)
		if !ok {
			return nil, fmt.Errorf("%w: %T for %s", ErrUnsupportedValue, v, k)
		}
		if p == 0 {
			return constant.NewNull(types.I8Ptr), nil
		}
		return constant.NewIntToPtr(constant.NewInt(types.I64, int64(p)), types.I8Ptr), nil
	case k.IsFloat():
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: %T for %s", ErrUnsupportedValue, v, k)
		}
		return constant.NewFloat(KindType(k).(*types.FloatType), f), nil
	case k.IsInteger():
		var n int64
		switch x := v.(type) {
		case int64:
			n = x
		case uint64:
			n = int64(x)
		default:
			return nil, fmt.Errorf("%w: %T for %s", ErrUnsupportedValue, v, k)
		}
		t := KindType(promote(k)).(*types.IntType)
		return constant.NewInt(t, signExtend(n, t.BitSize)), nil
	}
	return nil, fmt.Errorf("%w: kind %s", ErrUnsupportedValue, k)
}

// signExtend keeps the low bits of n, read as a signed number, so the
// constant is in range for its type.
func signExtend(n int64, bits uint64) int64 {
	shift := 64 - bits
	return n << shift >> shift
}

func (b *builder) newConstString(name string, value string) *constant.ExprGetElementPtr {
	// strings are null terminated
	strVal := value + "\x00"
	strType := types.NewArray(uint64(len(strVal)), types.I8)

	constStr := ir.NewGlobalDef(name, constant.NewCharArrayFromString(strVal))
	constStr.Typ = types.NewPointer(strType)
	constStr.Immutable = true
	constStr.Linkage = enum.LinkagePrivate
	constStr.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	b.mod.Globals = append(b.mod.Globals, constStr)
	return constant.NewGetElementPtr(constStr.Typ.ElemType, constStr, zero, zero)
}

