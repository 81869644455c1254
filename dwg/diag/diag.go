// Package diag is the leveled diagnostics channel shared by the codec and the
// reference resolver. A Logger is passed explicitly to every cursor and
// document, so several documents can be traced independently. A nil *Logger
// is valid and discards everything.
package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Level is the DWG trace verbosity: 0 is silent, higher is chattier.
type Level int

const (
	Silent Level = iota
	Error
	Info
	Trace
	Handle
	Insane
)

var levelNames = [...]string{"silent", "error", "info", "trace", "handle", "insane"}

func (l Level) String() string {
	if l < Silent || int(l) >= len(levelNames) {
		return "insane"
	}
	return levelNames[l]
}

// ParseLevel accepts a level name ("trace") or its number ("3").
func ParseLevel(s string) (Level, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(Silent) || n > int(Insane) {
			return Silent, fmt.Errorf("diag: level %d out of range", n)
		}
		return Level(n), nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(i), nil
		}
	}
	return Silent, fmt.Errorf("diag: unknown level %q", s)
}

// slogLevel maps a trace level onto slog's scale. Trace and below live in
// the debug range so an slog handler set to Debug still filters Insane.
func (l Level) slogLevel() slog.Level {
	switch {
	case l <= Error:
		return slog.LevelError
	case l == Info:
		return slog.LevelInfo
	case l == Trace:
		return slog.LevelDebug
	case l == Handle:
		return slog.LevelDebug - 2
	default:
		return slog.LevelDebug - 4
	}
}

// Logger writes diagnostics up to a maximum level.
type Logger struct {
	max Level
	l   *slog.Logger
}

// New returns a Logger emitting records at or below max through l.
func New(max Level, l *slog.Logger) *Logger {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Logger{max: max, l: l}
}

// NewText returns a Logger writing slog text records to w.
func NewText(max Level, w io.Writer) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: max.slogLevel()})
	return New(max, slog.New(h))
}

// Level returns the configured maximum level, Silent for a nil Logger.
func (g *Logger) Level() Level {
	if g == nil {
		return Silent
	}
	return g.max
}

// Enabled reports whether records at lvl would be written.
func (g *Logger) Enabled(lvl Level) bool {
	return g != nil && lvl > Silent && lvl <= g.max
}

// With returns a Logger that adds attrs to every record.
func (g *Logger) With(args ...any) *Logger {
	if g == nil {
		return nil
	}
	return &Logger{max: g.max, l: g.l.With(args...)}
}

// Log writes msg at lvl.
func (g *Logger) Log(lvl Level, msg string, args ...any) {
	if !g.Enabled(lvl) {
		return
	}
	g.l.Log(context.Background(), lvl.slogLevel(), msg, args...)
}

func (g *Logger) Err(msg string, args ...any)    { g.Log(Error, msg, args...) }
func (g *Logger) Info(msg string, args ...any)   { g.Log(Info, msg, args...) }
func (g *Logger) Trace(msg string, args ...any)  { g.Log(Trace, msg, args...) }
func (g *Logger) Handle(msg string, args ...any) { g.Log(Handle, msg, args...) }
func (g *Logger) Insane(msg string, args ...any) { g.Log(Insane, msg, args...) }
