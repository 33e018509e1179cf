package va

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rgolang/cprintf/libcutils"
)

var (
	ErrBadArgument     = errors.New("bad argument")
	ErrMissingArgument = errors.New("missing argument")
	ErrExtraArgument   = errors.New("too many arguments")
)

// ParseArgs converts textual arguments into values of the given kinds so they
// can be fed to a List. Integers accept any Go integer literal prefix, a
// leading quote ('A) or a single non-digit character yields its byte value.
func ParseArgs(kinds []libcutils.Kind, raw []string) ([]any, error) {
	if len(raw) < len(kinds) {
		return nil, fmt.Errorf("%w: format reads %d, got %d", ErrMissingArgument, len(kinds), len(raw))
	}
	if len(raw) > len(kinds) {
		return nil, fmt.Errorf("%w: format reads %d, got %d", ErrExtraArgument, len(kinds), len(raw))
	}

	out := make([]any, len(kinds))
	for i, k := range kinds {
		v, err := parseArg(k, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s) %q: %w", i+1, k, raw[i], err)
		}
		out[i] = v
	}
	return out, nil
}

func parseArg(k libcutils.Kind, s string) (any, error) {
	switch {
	case k == libcutils.CharPtr:
		return s, nil
	case k.IsFloat():
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		return f, nil
	case k.IsPointer():
		p, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
		}
		return uintptr(p), nil
	}

	if c, ok := charValue(s); ok {
		return int64(c), nil
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return n, nil
	}
	u, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
	}
	return u, nil
}

func charValue(s string) (byte, bool) {
	switch {
	case len(s) == 2 && (s[0] == '\'' || s[0] == '"'):
		return s[1], true
	case len(s) == 1 && (s[0] < '0' || s[0] > '9'):
		return s[0], true
	}
	return 0, false
}
