// Package va stands in for a C va_list: a sequential reader over a caller
// supplied argument list where every read says which C type it expects.
//
// Like va_arg, nothing checks that the requested types match what the caller
// passed. A Cursor must be fed arguments consistent with the format string.
package va

//go:generate mockgen -destination=./mocks/cursor.go -package=mocks . Cursor

import (
	"math"
	"reflect"

	"github.com/rgolang/cprintf/libcutils"
)

// Cursor yields successive arguments, typed by each read request.
type Cursor interface {
	// Int reads a signed integer of kind k, sign extended to 64 bits.
	Int(k libcutils.Kind) int64
	// Uint reads an unsigned integer of kind k, zero extended to 64 bits.
	Uint(k libcutils.Kind) uint64
	// Float reads a double (or a long double narrowed to one).
	Float(k libcutils.Kind) float64
	// CString reads a char pointer, ok is false for NULL.
	CString() (s []byte, ok bool)
	// Pointer reads any pointer as an address.
	Pointer() uintptr
}

// List is a Cursor over Go values. Integers are converted with C wraparound
// semantics, reading past the end yields zero values.
type List struct {
	args    []any
	pos     int
	overrun int
}

var _ Cursor = (*List)(nil)

func New(args ...any) *List {
	return &List{args: args}
}

// Remaining is the number of arguments not read yet.
func (l *List) Remaining() int {
	return len(l.args) - l.pos
}

// Overrun reports how many reads found no argument left.
func (l *List) Overrun() int {
	return l.overrun
}

func (l *List) next() (any, bool) {
	if l.pos >= len(l.args) {
		l.overrun++
		return nil, false
	}
	v := l.args[l.pos]
	l.pos++
	return v, true
}

func (l *List) Int(k libcutils.Kind) int64 {
	v, _ := l.next()
	return k.TruncInt(toInt64(v))
}

func (l *List) Uint(k libcutils.Kind) uint64 {
	v, _ := l.next()
	return k.TruncUint(uint64(toInt64(v)))
}

func (l *List) Float(_ libcutils.Kind) float64 {
	v, _ := l.next()
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	}
	return float64(toInt64(v))
}

func (l *List) CString() ([]byte, bool) {
	v, _ := l.next()
	switch s := v.(type) {
	case string:
		return []byte(s), true
	case []byte:
		if s == nil {
			return nil, false
		}
		return s, true
	case *string:
		if s == nil {
			return nil, false
		}
		return []byte(*s), true
	}
	return nil, false
}

func (l *List) Pointer() uintptr {
	v, _ := l.next()
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return rv.Pointer()
	}
	return uintptr(toInt64(v))
}

// toInt64 returns the two's complement bit pattern of any integer-like value.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return int64(n)
	case int64:
		return n
	case int32:
		return int64(n)
	case uint64:
		return int64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case byte:
		return int64(n)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	}
	return 0
}

// floatToInt saturates instead of relying on Go's undefined out of range conversion.
func floatToInt(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
