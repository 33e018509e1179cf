package lex

import (
	"math"

	"github.com/kr/pretty"
	"github.com/rgolang/cprintf/internal/logger"
	"github.com/rgolang/cprintf/reader"
)

type TokenKind int

const (
	TokenLiteral     TokenKind = iota // A single raw byte to copy to the output
	TokenPlaceholder                  // A %-directive rendering one argument
	TokenError                        // A % that did not form a placeholder, rendering stops here
)

// TokenType is the conversion specifier of a placeholder.
type TokenType int

const (
	SignedInteger      TokenType = iota // d, i
	UnsignedInteger                     // u
	UnsignedOctal                       // o
	UnsignedHex                         // x
	UnsignedHexUpper                    // X
	Float                               // f
	FloatUpper                          // F
	Scientific                          // e
	ScientificUpper                     // E
	ShortestFloat                       // g
	ShortestFloatUpper                  // G
	HexFloat                            // a
	HexFloatUpper                       // A
	Character                           // c
	String                              // s
	PointerAddress                      // p
	StoreChars                          // n, accepted but never stores anything
	PercentLiteral                      // %
)

var typeChars = map[byte]TokenType{
	'd': SignedInteger,
	'i': SignedInteger,
	'u': UnsignedInteger,
	'o': UnsignedOctal,
	'x': UnsignedHex,
	'X': UnsignedHexUpper,
	'f': Float,
	'F': FloatUpper,
	'e': Scientific,
	'E': ScientificUpper,
	'g': ShortestFloat,
	'G': ShortestFloatUpper,
	'a': HexFloat,
	'A': HexFloatUpper,
	'c': Character,
	's': String,
	'p': PointerAddress,
	'n': StoreChars,
	'%': PercentLiteral,
}

// Char returns the canonical specifier letter.
func (t TokenType) Char() byte {
	if t == SignedInteger {
		return 'd'
	}
	for c, tt := range typeChars {
		if tt == t {
			return c
		}
	}
	return '?'
}

func (t TokenType) IsInteger() bool {
	return t >= SignedInteger && t <= UnsignedHexUpper
}

func (t TokenType) IsFloat() bool {
	return t >= Float && t <= HexFloatUpper
}

// Upper reports whether the conversion prints letters in upper case.
func (t TokenType) Upper() bool {
	switch t {
	case UnsignedHexUpper, FloatUpper, ScientificUpper, ShortestFloatUpper, HexFloatUpper:
		return true
	}
	return false
}

// Modifier is the length modifier, it selects the C type read for the argument.
type Modifier int

const (
	ModNone       Modifier = iota
	ModChar                // hh
	ModShort               // h
	ModLong                // l
	ModLongLong            // ll
	ModIntMax              // j
	ModSize                // z
	ModPtrDiff             // t
	ModLongDouble          // L
)

// Longest spellings first so that "hh" wins over "h".
var modifiers = []struct {
	text string
	mod  Modifier
}{
	{"hh", ModChar},
	{"h", ModShort},
	{"ll", ModLongLong},
	{"l", ModLong},
	{"j", ModIntMax},
	{"z", ModSize},
	{"t", ModPtrDiff},
	{"L", ModLongDouble},
}

func (m Modifier) String() string {
	for _, e := range modifiers {
		if e.mod == m {
			return e.text
		}
	}
	return ""
}

type WidthKind int

const (
	WidthNone    WidthKind = iota
	WidthStatic            // decimal digits in the format string
	WidthDynamic           // '*', read from the next int argument
)

// Width is used for both the field width and the precision.
type Width struct {
	Kind  WidthKind
	Value int
}

func Static(n int) Width {
	return Width{Kind: WidthStatic, Value: n}
}

func Dynamic() Width {
	return Width{Kind: WidthDynamic}
}

type Placeholder struct {
	LeftAlign     bool // '-'
	PrecedingPlus bool // '+'
	PadSign       bool // ' '
	Prefix        bool // '#'
	PadZero       bool // '0'
	Width         Width
	Precision     Width
	Modifier      Modifier
	Type          TokenType
}

type Token struct {
	Kind        TokenKind
	Offset      int // byte offset of the token in the format string
	Literal     byte
	Placeholder Placeholder
}

var hasDebug bool

func print(s string, args ...any) {
	if hasDebug || logger.DebugEnabled() {
		logger.Debugf(s, args...)
	}
}

// Parse turns a format string into a flat list of tokens. It never fails, a
// '%' that does not start a valid placeholder is reported as a TokenError at
// its offset and parsing carries on with the byte after it.
func Parse(format []byte) []Token {
	r := reader.New(format)
	tokens := make([]Token, 0, len(format))

	for !r.AtEnd() {
		start := r.Mark()
		if r.Accept('%') {
			ph, ok := parsePlaceholder(r)
			if ok {
				print("lex: placeholder at %d: %# v", start.ByteOffset, pretty.Formatter(ph))
				tokens = append(tokens, Token{Kind: TokenPlaceholder, Offset: start.ByteOffset, Placeholder: ph})
				continue
			}
			print("lex: malformed placeholder at %d", start.ByteOffset)
			tokens = append(tokens, Token{Kind: TokenError, Offset: start.ByteOffset})
			r.Reset(start)
			r.ReadByte() // resume right after the '%'
			continue
		}
		tokens = append(tokens, Token{Kind: TokenLiteral, Offset: start.ByteOffset, Literal: r.ReadByte()})
	}
	return tokens
}

func parsePlaceholder(r *reader.Reader) (Placeholder, bool) {
	var ph Placeholder

	// Flags may come in any order and may repeat.
flags:
	for {
		switch {
		case r.Accept('-'):
			ph.LeftAlign = true
		case r.Accept('+'):
			ph.PrecedingPlus = true
		case r.Accept(' '):
			ph.PadSign = true
		case r.Accept('#'):
			ph.Prefix = true
		case r.Accept('0'):
			ph.PadZero = true
		default:
			break flags
		}
	}

	width, ok := parseNumberOrDynamic(r)
	if !ok {
		return ph, false
	}
	ph.Width = width

	if r.Accept('.') {
		prec, ok := parseNumberOrDynamic(r)
		if !ok || prec.Kind == WidthNone {
			return ph, false // a lone '.' is malformed
		}
		ph.Precision = prec
	}

	ph.Modifier = ModNone
	for _, m := range modifiers {
		if r.AcceptString(m.text) {
			ph.Modifier = m.mod
			break
		}
	}

	typ, ok := typeChars[r.ReadByte()]
	if !ok {
		return ph, false
	}
	ph.Type = typ
	return ph, true
}

// parseNumberOrDynamic reads '*', a decimal number, or nothing. Numbers that
// do not fit a C int are rejected rather than wrapped.
func parseNumberOrDynamic(r *reader.Reader) (Width, bool) {
	if r.Accept('*') {
		return Dynamic(), true
	}
	n, digits := 0, 0
	for {
		p := r.Peek(1)
		if len(p) == 0 || p[0] < '0' || p[0] > '9' {
			break
		}
		r.ReadByte()
		digits++
		n = n*10 + int(p[0]-'0')
		if n > math.MaxInt32 {
			return Width{}, false
		}
	}
	if digits == 0 {
		return Width{}, true
	}
	return Static(n), true
}

// FirstError returns the offset of the first malformed placeholder.
func FirstError(tokens []Token) (int, bool) {
	for _, t := range tokens {
		if t.Kind == TokenError {
			return t.Offset, true
		}
	}
	return 0, false
}
