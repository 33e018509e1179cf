package printf

import (
	"bytes"
	"math"
	"strconv"

	"github.com/rgolang/cprintf/lex"
)

func signHead(f field, neg bool) string {
	switch {
	case neg:
		return "-"
	case f.PrecedingPlus:
		return "+"
	case f.PadSign:
		return " "
	}
	return ""
}

// zeroFill reports whether width padding uses zeros. A precision on an
// integer conversion turns the '0' flag off.
func zeroFill(f field, integer bool) bool {
	return f.PadZero && !f.left && !(integer && f.prec >= 0)
}

func (p *printer) fmtSigned(f field, v int64) {
	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = uint64(-v) // MinInt64 wraps to its own magnitude
	}
	digits := intDigits(mag, 10, false, f.prec)
	lead := max(f.prec-len(digits), 0)
	p.pad(f, signHead(f, neg), lead, digits, zeroFill(f, true))
}

func (p *printer) fmtUnsigned(f field, v uint64) {
	base, upper := 10, false
	switch f.Type {
	case lex.UnsignedOctal:
		base = 8
	case lex.UnsignedHex:
		base = 16
	case lex.UnsignedHexUpper:
		base, upper = 16, true
	}

	digits := intDigits(v, base, upper, f.prec)
	lead := max(f.prec-len(digits), 0)

	head := ""
	if f.Prefix {
		switch {
		case base == 8 && lead == 0 && (len(digits) == 0 || digits[0] != '0'):
			// '#' raises the precision until the first digit is a zero
			lead = 1
		case base == 16 && v != 0 && upper:
			head = "0X"
		case base == 16 && v != 0:
			head = "0x"
		}
	}
	p.pad(f, head, lead, digits, zeroFill(f, true))
}

func intDigits(v uint64, base int, upper bool, prec int) []byte {
	if v == 0 && prec == 0 {
		return nil
	}
	b := strconv.AppendUint(nil, v, base)
	if upper {
		b = bytes.ToUpper(b)
	}
	return b
}

func (p *printer) fmtFloat(f field, v float64) {
	neg := math.Signbit(v)
	abs := math.Abs(v)
	head := signHead(f, neg)
	upper := f.Type.Upper()

	if math.IsInf(v, 0) || math.IsNaN(v) {
		body := "inf"
		if math.IsNaN(v) {
			body = "nan"
		}
		if upper {
			body = string(bytes.ToUpper([]byte(body)))
		}
		p.pad(f, head, 0, []byte(body), false)
		return
	}

	var body []byte
	switch f.Type {
	case lex.Float, lex.FloatUpper:
		body = formatF(abs, precOr(f.prec, 6), f.Prefix)
	case lex.Scientific, lex.ScientificUpper:
		body = formatE(abs, precOr(f.prec, 6), f.Prefix)
	case lex.ShortestFloat, lex.ShortestFloatUpper:
		body = formatG(abs, precOr(f.prec, 6), f.Prefix)
	case lex.HexFloat, lex.HexFloatUpper:
		head += "0x"
		body = formatA(abs, f.prec, f.Prefix)
	}
	if upper {
		head = string(bytes.ToUpper([]byte(head)))
		body = bytes.ToUpper(body)
	}
	p.pad(f, head, 0, body, zeroFill(f, false))
}

func precOr(prec, def int) int {
	if prec < 0 {
		return def
	}
	return prec
}

func formatF(abs float64, prec int, alt bool) []byte {
	b := strconv.AppendFloat(nil, abs, 'f', prec, 64)
	if alt && prec == 0 {
		b = append(b, '.')
	}
	return b
}

func formatE(abs float64, prec int, alt bool) []byte {
	b := strconv.AppendFloat(nil, abs, 'e', prec, 64)
	if alt && prec == 0 {
		b = insertPoint(b, 'e')
	}
	return b
}

// formatG follows C99 7.19.6.1: with P significant digits and X the decimal
// exponent, %e is used when X < -4 or X >= P, %f otherwise. Trailing zeros
// are dropped unless alt is set.
func formatG(abs float64, prec int, alt bool) []byte {
	if prec == 0 {
		prec = 1
	}
	e := strconv.AppendFloat(nil, abs, 'e', prec-1, 64)
	x := exponent(e, 'e')

	var b []byte
	if x < -4 || x >= prec {
		b = e
	} else {
		b = strconv.AppendFloat(nil, abs, 'f', prec-1-x, 64)
	}

	if alt {
		if bytes.IndexByte(b, '.') < 0 {
			b = insertPoint(b, 'e')
		}
		return b
	}
	return trimZeros(b, 'e')
}

// formatA renders a hex float without its "0x". Go always writes a two digit
// exponent, C writes as few digits as needed.
func formatA(abs float64, prec int, alt bool) []byte {
	b := strconv.AppendFloat(nil, abs, 'x', prec, 64)
	b = bytes.TrimPrefix(b, []byte("0x"))

	i := bytes.IndexByte(b, 'p')
	if i < 0 {
		return b
	}
	mant, exp := b[:i], b[i+1:] // exp is sign then digits
	digits := bytes.TrimLeft(exp[1:], "0")
	if len(digits) == 0 {
		digits = []byte("0")
	}

	out := make([]byte, 0, len(b))
	out = append(out, mant...)
	if alt && bytes.IndexByte(mant, '.') < 0 {
		out = append(out, '.')
	}
	out = append(out, 'p', exp[0])
	return append(out, digits...)
}

func exponent(b []byte, mark byte) int {
	i := bytes.IndexByte(b, mark)
	if i < 0 {
		return 0
	}
	x, _ := strconv.Atoi(string(b[i+1:]))
	return x
}

// insertPoint puts a '.' before the exponent marker, or at the end.
func insertPoint(b []byte, mark byte) []byte {
	i := bytes.IndexByte(b, mark)
	if i < 0 {
		return append(b, '.')
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, b[:i]...)
	out = append(out, '.')
	return append(out, b[i:]...)
}

// trimZeros drops trailing fraction zeros, and the point if nothing is left.
func trimZeros(b []byte, mark byte) []byte {
	end := bytes.IndexByte(b, mark)
	if end < 0 {
		end = len(b)
	}
	mant, rest := b[:end], b[end:]
	if bytes.IndexByte(mant, '.') < 0 {
		return b
	}
	mant = bytes.TrimRight(mant, "0")
	mant = bytes.TrimSuffix(mant, []byte("."))

	out := make([]byte, 0, len(b))
	out = append(out, mant...)
	return append(out, rest...)
}
