// Package logging provides a compact slog handler for terminals and log files.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"

	padding = "  "
)

// Attributes with these keys are printed as indented blocks below the
// log line. Books API error bodies are multi-line JSON.
var blockKeys = map[string]bool{
	"body": true,
}

// Options configures a Handler.
type Options struct {
	Level slog.Leveler
	Color bool
}

// Handler is a compact, optionally colored slog handler.
type Handler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	color  bool
	attrs  []slog.Attr
	groups string
}

// NewHandler creates a new log handler.
func NewHandler(w io.Writer, opts *Options) *Handler {
	if opts == nil {
		opts = &Options{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{
		w:     w,
		mu:    &sync.Mutex{},
		level: level,
		color: opts.Color,
	}
}

// New returns a logger writing to w through a Handler.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(NewHandler(w, &Options{Level: level, Color: color}))
}

// ParseLevel maps a config string to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var inline strings.Builder
	var blocks []string
	add := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		if blockKeys[a.Key] {
			blocks = append(blocks, a.Value.String())
			return
		}
		inline.WriteString(h.fmtAttr(a))
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if h.groups != "" {
			a.Key = h.groups + a.Key
		}
		add(a)
		return true
	})

	var sb strings.Builder
	if h.color {
		fmt.Fprintf(&sb, "%s%s%s%s %s %s%s\n",
			padding,
			ansiGray, r.Time.Format("15:04:05"), ansiReset,
			colorLevel(r.Level), r.Message, inline.String())
	} else {
		fmt.Fprintf(&sb, "%s %s %s%s\n",
			r.Time.Format("2006-01-02 15:04:05"), levelLabel(r.Level), r.Message, inline.String())
	}

	for _, text := range blocks {
		for _, line := range strings.Split(text, "\n") {
			if h.color {
				fmt.Fprintf(&sb, "%s  %s│%s %s\n", padding, ansiGray, ansiReset, line)
			} else {
				fmt.Fprintf(&sb, "  | %s\n", line)
			}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	for _, a := range attrs {
		if h.groups != "" {
			a.Key = h.groups + a.Key
		}
		combined = append(combined, a)
	}
	clone := *h
	clone.attrs = combined
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = h.groups + name + "."
	return &clone
}

func (h *Handler) fmtAttr(a slog.Attr) string {
	v := a.Value.Resolve().String()
	if strings.ContainsAny(v, " \t") {
		v = fmt.Sprintf("%q", v)
	}
	if h.color {
		return fmt.Sprintf(" %s%s%s=%s", ansiGray, a.Key, ansiReset, v)
	}
	return fmt.Sprintf(" %s=%s", a.Key, v)
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERR"
	case level >= slog.LevelWarn:
		return "WRN"
	case level >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}

func colorLevel(level slog.Level) string {
	label := levelLabel(level)
	switch {
	case level >= slog.LevelError:
		return ansiRed + label + ansiReset
	case level >= slog.LevelWarn:
		return ansiYellow + label + ansiReset
	case level >= slog.LevelInfo:
		return ansiCyan + label + ansiReset
	default:
		return ansiGray + label + ansiReset
	}
}
