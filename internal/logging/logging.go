// Package logging builds the slog loggers used by gopond: a coloured
// "LEVEL: message" text handler for the terminal and a JSON handler for
// machine consumption. Both know the SUCCESS level used to report a
// converged analysis.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// LevelSuccess sits between INFO and WARN
const LevelSuccess = slog.Level(2)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configure New
type Options struct {
	Level  string // debug, info, success, warn or error
	Format string // text or json
	Color  bool   // colour the level label of text output
}

// ParseLevel converts a level name into a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "success":
		return LevelSuccess, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LevelName returns the label printed for a level
func LevelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= LevelSuccess:
		return "SUCCESS"
	case l >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

// New returns a logger writing to w
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return slog.New(NewHandler(w, level, opts.Color)), nil
	case FormatJSON:
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && a.Key == slog.LevelKey {
					if l, ok := a.Value.Any().(slog.Level); ok {
						a.Value = slog.StringValue(LevelName(l))
					}
				}
				return a
			},
		})
		return slog.New(h), nil
	}
	return nil, fmt.Errorf("unknown log format %q, expected 'text' or 'json'", opts.Format)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

var levelStyles = map[string]lipgloss.Style{
	"DEBUG":   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	"INFO":    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	"SUCCESS": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	"WARNING": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"ERROR":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// Handler writes records as "LEVEL: message key=value ..."
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	color  bool
	attrs  []slog.Attr
	groups []string
}

// NewHandler returns a text handler writing records at or above level
func NewHandler(w io.Writer, level slog.Leveler, color bool) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w, level: level, color: color}
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	name := LevelName(r.Level)
	if h.color {
		name = levelStyles[name].Render(name)
	}
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, key, ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value.Any())
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	prefix := strings.Join(h.groups, ".")
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string(nil), h.groups...), name)
	return &h2
}
