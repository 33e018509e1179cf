// Package logcb turns C style log callbacks (a level, a printf format and a
// va_list) into Go log records. It is the piece that sits behind a foreign
// callback, so nothing in here may panic back into the caller.
package logcb

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/rgolang/cprintf/printf"
	"github.com/rgolang/cprintf/va"
)

// Level is a bit set, a single callback may carry more than one level.
type Level uint32

const (
	LevelError Level = 1 << iota
	LevelWarning
	LevelDebug
	LevelFunction
)

func (l Level) String() string {
	var names []string
	for _, e := range []struct {
		bit  Level
		name string
	}{
		{LevelError, "error"},
		{LevelWarning, "warning"},
		{LevelDebug, "debug"},
		{LevelFunction, "function"},
	} {
		if l&e.bit != 0 {
			names = append(names, e.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// SlogLevel maps the most severe bit to a slog level. Function tracing is
// more verbose than debug.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l&LevelError != 0:
		return slog.LevelError
	case l&LevelWarning != 0:
		return slog.LevelWarn
	case l&LevelDebug != 0:
		return slog.LevelDebug
	case l&LevelFunction != 0:
		return slog.LevelDebug - 4
	}
	return slog.LevelInfo
}

type Handler func(level Level, msg string)

// Bridge holds the currently installed handler.
type Bridge struct {
	mu      sync.Mutex
	handler Handler
	mask    Level
}

func NewBridge(h Handler) *Bridge {
	return &Bridge{handler: h}
}

// SetHandler replaces the handler, nil disables logging.
func (b *Bridge) SetHandler(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = h
}

// SetMask drops messages whose level shares no bit with mask. A zero mask
// lets everything through.
func (b *Bridge) SetMask(mask Level) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mask = mask
}

// Log renders format with args and hands the message to the handler. A
// panicking handler is recovered and reported as false.
func (b *Bridge) Log(level Level, format []byte, args va.Cursor) (ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == nil || (b.mask != 0 && b.mask&level == 0) {
		return true
	}

	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	b.handler(level, printf.Printf(format, args))
	return true
}

// SlogHandler writes callback messages to logger. C log lines usually carry
// their own trailing newline, it is dropped.
func SlogHandler(logger *slog.Logger) Handler {
	return func(level Level, msg string) {
		logger.Log(context.Background(), level.SlogLevel(), strings.TrimRight(msg, "\n"), "cb_level", level.String())
	}
}
