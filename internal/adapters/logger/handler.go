// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/natdeps/internal/ui/output"
	"go.trai.ch/natdeps/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record.
// The level glyph and color come from the shared UI palette; attributes follow the
// message as key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	mu    *sync.Mutex
	level slog.Leveler

	// preformatted holds the attributes added through WithAttrs, already rendered.
	preformatted string
	groups       []string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// A *slog.LevelVar passed in opts stays live: later changes to it apply to this handler.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		mu:    &sync.Mutex{},
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	glyph, color := levelStyle(r.Level)

	var line strings.Builder
	if glyph != "" {
		line.WriteString(glyph + " ")
	}
	line.WriteString(r.Message)
	line.WriteString(h.preformatted)

	prefix := groupPrefix(h.groups)
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&line, prefix, attr)
		return true
	})

	styled := h.out.String(line.String()).Foreground(color).String()

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(styled + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes rendered once up front.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var b strings.Builder
	b.WriteString(h.preformatted)
	prefix := groupPrefix(h.groups)
	for _, attr := range attrs {
		appendAttr(&b, prefix, attr)
	}

	clone := *h
	clone.preformatted = b.String()
	return &clone
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &clone
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Circle, termenv.RGBColor(string(style.Slate))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	return strings.Join(groups, ".") + "."
}

// appendAttr writes " key=value" for attr, flattening group values into dotted keys.
func appendAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		nested := prefix
		if attr.Key != "" {
			nested += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			appendAttr(b, nested, member)
		}
		return
	}

	b.WriteString(" " + prefix + attr.Key + "=" + formatValue(attr.Value.String()))
}

// formatValue quotes values that would otherwise split into several fields, such as
// install paths containing spaces.
func formatValue(value string) string {
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		return strconv.Quote(value)
	}
	return value
}
