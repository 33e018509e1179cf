package lex

import (
	"strconv"
	"strings"

	"github.com/kr/pretty"
)

func (w Width) String() string {
	switch w.Kind {
	case WidthStatic:
		return strconv.Itoa(w.Value)
	case WidthDynamic:
		return "*"
	}
	return ""
}

// String renders the placeholder back in canonical printf syntax.
func (p Placeholder) String() string {
	var sb strings.Builder
	sb.WriteByte('%')
	if p.LeftAlign {
		sb.WriteByte('-')
	}
	if p.PrecedingPlus {
		sb.WriteByte('+')
	}
	if p.PadSign {
		sb.WriteByte(' ')
	}
	if p.Prefix {
		sb.WriteByte('#')
	}
	if p.PadZero {
		sb.WriteByte('0')
	}
	sb.WriteString(p.Width.String())
	if p.Precision.Kind != WidthNone {
		sb.WriteByte('.')
		sb.WriteString(p.Precision.String())
	}
	sb.WriteString(p.Modifier.String())
	sb.WriteByte(p.Type.Char())
	return sb.String()
}

func (t Token) String() string {
	switch t.Kind {
	case TokenLiteral:
		return strconv.QuoteToASCII(string([]byte{t.Literal}))
	case TokenPlaceholder:
		return t.Placeholder.String()
	}
	return "<error@" + strconv.Itoa(t.Offset) + ">"
}

// Dump renders tokens one per line, literals are merged into runs.
func Dump(tokens []Token) string {
	var sb strings.Builder
	var run []byte
	flush := func() {
		if len(run) > 0 {
			sb.WriteString(strconv.QuoteToASCII(string(run)))
			sb.WriteByte('\n')
			run = run[:0]
		}
	}
	for _, t := range tokens {
		if t.Kind == TokenLiteral {
			run = append(run, t.Literal)
			continue
		}
		flush()
		sb.WriteString(t.String())
		if t.Kind == TokenPlaceholder {
			sb.WriteString(" ")
			sb.WriteString(pretty.Sprint(t.Placeholder))
		}
		sb.WriteByte('\n')
	}
	flush()
	return sb.String()
}
