package libcutils

import (
	"github.com/rgolang/cprintf/lex"
)

// Kind is a C argument type as it travels through a va_list. Sizes follow the
// LP64 data model used by Linux on 64 bit targets.
type Kind int

const (
	Int Kind = iota
	UInt
	SChar
	UChar
	Short
	UShort
	Long
	ULong
	LongLong
	ULongLong
	IntMax
	UIntMax
	Size
	SSize
	PtrDiff
	UPtrDiff
	Double
	LongDouble // read as a double, the x87 layout is platform specific
	CharPtr
	VoidPtr
	IntPtr
)

var kindInfo = [...]struct {
	name   string
	size   int
	signed bool
}{
	Int:        {"int", 4, true},
	UInt:       {"unsigned int", 4, false},
	SChar:      {"signed char", 1, true},
	UChar:      {"unsigned char", 1, false},
	Short:      {"short", 2, true},
	UShort:     {"unsigned short", 2, false},
	Long:       {"long", 8, true},
	ULong:      {"unsigned long", 8, false},
	LongLong:   {"long long", 8, true},
	ULongLong:  {"unsigned long long", 8, false},
	IntMax:     {"intmax_t", 8, true},
	UIntMax:    {"uintmax_t", 8, false},
	Size:       {"size_t", 8, false},
	SSize:      {"ssize_t", 8, true},
	PtrDiff:    {"ptrdiff_t", 8, true},
	UPtrDiff:   {"unsigned ptrdiff_t", 8, false},
	Double:     {"double", 8, true},
	LongDouble: {"long double", 16, true},
	CharPtr:    {"char *", 8, false},
	VoidPtr:    {"void *", 8, false},
	IntPtr:     {"int *", 8, false},
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindInfo)
}

func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindInfo[k].name
}

// Size is the width of the type in bytes.
func (k Kind) Size() int {
	if !k.valid() {
		return 0
	}
	return kindInfo[k].size
}

func (k Kind) Signed() bool {
	return k.valid() && kindInfo[k].signed
}

func (k Kind) IsInteger() bool {
	return k >= Int && k <= UPtrDiff
}

func (k Kind) IsFloat() bool {
	return k == Double || k == LongDouble
}

func (k Kind) IsPointer() bool {
	return k >= CharPtr && k <= IntPtr
}

// TruncInt wraps v to the width of k and sign extends it back.
func (k Kind) TruncInt(v int64) int64 {
	switch k.Size() {
	case 1:
		return int64(int8(v))
	case 2:
		return int64(int16(v))
	case 4:
		return int64(int32(v))
	}
	return v
}

// TruncUint wraps v to the width of k.
func (k Kind) TruncUint(v uint64) uint64 {
	switch k.Size() {
	case 1:
		return uint64(uint8(v))
	case 2:
		return uint64(uint16(v))
	case 4:
		return uint64(uint32(v))
	}
	return v
}

var signedKinds = map[lex.Modifier]Kind{
	lex.ModNone:       Int,
	lex.ModChar:       SChar,
	lex.ModShort:      Short,
	lex.ModLong:       Long,
	lex.ModLongLong:   LongLong,
	lex.ModIntMax:     IntMax,
	lex.ModSize:       SSize,
	lex.ModPtrDiff:    PtrDiff,
	lex.ModLongDouble: LongLong, // glibc accepts %Ld as long long
}

var unsignedKinds = map[lex.Modifier]Kind{
	lex.ModNone:       UInt,
	lex.ModChar:       UChar,
	lex.ModShort:      UShort,
	lex.ModLong:       ULong,
	lex.ModLongLong:   ULongLong,
	lex.ModIntMax:     UIntMax,
	lex.ModSize:       Size,
	lex.ModPtrDiff:    UPtrDiff,
	lex.ModLongDouble: ULongLong,
}

// ArgKind returns the type read from the argument list for a conversion.
// Every combination resolves, modifiers that make no sense for a conversion
// are ignored. ok is false only for %% which reads nothing.
func ArgKind(typ lex.TokenType, mod lex.Modifier) (Kind, bool) {
	switch {
	case typ == lex.SignedInteger:
		return lookup(signedKinds, mod, Int), true
	case typ.IsInteger():
		return lookup(unsignedKinds, mod, UInt), true
	case typ.IsFloat():
		if mod == lex.ModLongDouble {
			return LongDouble, true
		}
		return Double, true
	case typ == lex.Character:
		return Int, true
	case typ == lex.String:
		return CharPtr, true
	case typ == lex.PointerAddress:
		return VoidPtr, true
	case typ == lex.StoreChars:
		return IntPtr, true
	}
	return Int, false
}

func lookup(m map[lex.Modifier]Kind, mod lex.Modifier, fallback Kind) Kind {
	if k, ok := m[mod]; ok {
		return k
	}
	return fallback
}

// ArgKinds lists every argument a format string reads, in order, including
// dynamic widths and precisions. It stops at the first malformed placeholder
// since rendering stops there too.
func ArgKinds(tokens []lex.Token) []Kind {
	var kinds []Kind
	for _, t := range tokens {
		if t.Kind == lex.TokenError {
			break
		}
		if t.Kind != lex.TokenPlaceholder {
			continue
		}
		ph := t.Placeholder
		if ph.Type == lex.PercentLiteral {
			continue
		}
		if ph.Width.Kind == lex.WidthDynamic {
			kinds = append(kinds, Int)
		}
		if ph.Precision.Kind == lex.WidthDynamic {
			kinds = append(kinds, Int)
		}
		if k, ok := ArgKind(ph.Type, ph.Modifier); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
