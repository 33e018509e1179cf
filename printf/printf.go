// Package printf renders C printf format strings against a va.Cursor.
//
// The format is parsed up front by package lex, then interpreted in a single
// pass. Rendering follows glibc: a malformed placeholder silently truncates
// the output at the point where it appears, and nothing is ever stored
// through a %n pointer.
package printf

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/rgolang/cprintf/internal/logger"
	"github.com/rgolang/cprintf/lex"
	"github.com/rgolang/cprintf/libcutils"
	"github.com/rgolang/cprintf/va"
)

// Interpret writes the rendering of tokens to w, reading arguments from args
// as placeholders require them. It stops at the first TokenError without
// reporting it. The only error returned is one from w, in which case
// rendering stops early as well.
func Interpret(w io.Writer, tokens []lex.Token, args va.Cursor) (int, error) {
	cw := &countWriter{w: w}
	p := &printer{w: bufio.NewWriter(cw)}

	for _, t := range tokens {
		if p.err != nil {
			break
		}
		switch t.Kind {
		case lex.TokenLiteral:
			p.writeByte(t.Literal)
		case lex.TokenPlaceholder:
			p.placeholder(t.Placeholder, args)
		default:
			logger.Debug("printf: malformed placeholder, output truncated", logger.Fields{"offset": t.Offset})
			return p.finish(cw)
		}
	}
	return p.finish(cw)
}

// Fprintf parses format and renders it to w.
func Fprintf(w io.Writer, format []byte, args va.Cursor) (int, error) {
	return Interpret(w, lex.Parse(format), args)
}

// Sprintf renders format into a new byte slice. It cannot fail.
func Sprintf(format []byte, args va.Cursor) []byte {
	var buf bytes.Buffer
	_, _ = Fprintf(&buf, format, args) // writes to a bytes.Buffer never fail
	return buf.Bytes()
}

// Printf renders format to a string, replacing invalid UTF-8 with U+FFFD.
func Printf(format []byte, args va.Cursor) string {
	return strings.ToValidUTF8(string(Sprintf(format, args)), "\uFFFD")
}

type countWriter struct {
	w io.Writer
	n int
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += n
	return n, err
}

const chunk = 64

var (
	spaces = bytes.Repeat([]byte{' '}, chunk)
	zeros  = bytes.Repeat([]byte{'0'}, chunk)
)

type printer struct {
	w   *bufio.Writer
	err error
}

func (p *printer) finish(cw *countWriter) (int, error) {
	if p.err == nil {
		p.err = p.w.Flush()
	}
	return cw.n, p.err
}

func (p *printer) write(b []byte) {
	if p.err == nil {
		_, p.err = p.w.Write(b)
	}
}

func (p *printer) writeString(s string) {
	if p.err == nil {
		_, p.err = p.w.WriteString(s)
	}
}

func (p *printer) writeByte(c byte) {
	if p.err == nil {
		p.err = p.w.WriteByte(c)
	}
}

func (p *printer) repeat(fill []byte, n int) {
	for n > 0 && p.err == nil {
		k := min(n, chunk)
		p.write(fill[:k])
		n -= k
	}
}

// field is a placeholder with its width and precision resolved.
type field struct {
	lex.Placeholder
	width int
	prec  int // -1 when absent
	left  bool
}

func (p *printer) placeholder(ph lex.Placeholder, args va.Cursor) {
	if ph.Type == lex.PercentLiteral {
		p.writeByte('%')
		return
	}

	f := field{Placeholder: ph, prec: -1, left: ph.LeftAlign}
	switch ph.Width.Kind {
	case lex.WidthStatic:
		f.width = ph.Width.Value
	case lex.WidthDynamic:
		w := args.Int(libcutils.Int)
		if w < 0 {
			// a negative dynamic width is a '-' flag plus a positive width
			f.left = true
			w = -w
		}
		f.width = int(w)
	}
	switch ph.Precision.Kind {
	case lex.WidthStatic:
		f.prec = ph.Precision.Value
	case lex.WidthDynamic:
		if v := args.Int(libcutils.Int); v >= 0 {
			f.prec = int(v)
		}
	}

	kind, _ := libcutils.ArgKind(ph.Type, ph.Modifier)
	switch {
	case ph.Type == lex.SignedInteger:
		p.fmtSigned(f, args.Int(kind))
	case ph.Type.IsInteger():
		p.fmtUnsigned(f, args.Uint(kind))
	case ph.Type.IsFloat():
		p.fmtFloat(f, args.Float(kind))
	case ph.Type == lex.Character:
		p.pad(f, "", 0, []byte{byte(args.Int(kind))}, false)
	case ph.Type == lex.String:
		p.fmtString(f, args)
	case ph.Type == lex.PointerAddress:
		p.fmtPointer(f, args.Pointer())
	case ph.Type == lex.StoreChars:
		args.Pointer() // the pointer is consumed but never written through
	}
}

// pad writes head (sign and base prefix), leading zeros and body, filling
// the field to its width. Zero fill goes between head and body.
func (p *printer) pad(f field, head string, leadingZeros int, body []byte, zeroFill bool) {
	fill := f.width - (len(head) + leadingZeros + len(body))
	if fill < 0 {
		fill = 0
	}
	switch {
	case f.left:
		p.writeString(head)
		p.repeat(zeros, leadingZeros)
		p.write(body)
		p.repeat(spaces, fill)
	case zeroFill:
		p.writeString(head)
		p.repeat(zeros, leadingZeros+fill)
		p.write(body)
	default:
		p.repeat(spaces, fill)
		p.writeString(head)
		p.repeat(zeros, leadingZeros)
		p.write(body)
	}
}

func (p *printer) fmtString(f field, args va.Cursor) {
	s, ok := args.CString()
	if !ok {
		// glibc prints "(null)" unless the precision is too short to hold it
		if f.prec >= 0 && f.prec < len("(null)") {
			s = nil
		} else {
			s = []byte("(null)")
		}
	}
	if f.prec >= 0 && len(s) > f.prec {
		s = s[:f.prec]
	}
	p.pad(f, "", 0, s, false)
}

func (p *printer) fmtPointer(f field, v uintptr) {
	if v == 0 {
		p.pad(f, "", 0, []byte("(nil)"), false)
		return
	}
	f.Prefix = true
	f.Type = lex.UnsignedHex
	p.fmtUnsigned(f, uint64(v))
}
