package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	Log             *slog.Logger
	defaultLevel    slog.Level
	componentLevels map[string]slog.Level
	levelsMu        sync.RWMutex
	format          string
	pid             int
	loggerCache     sync.Map
)

func init() {
	defaultLevel = slog.LevelInfo
	componentLevels = make(map[string]slog.Level)
	format = "text"
	pid = os.Getpid()

	handler := NewExtTextHandler(os.Stderr, nil, "")
	Log = slog.New(handler)
}

func Configure(logFormat string, level LogLevel, components map[string]LogLevel) {
	levelsMu.Lock()
	defaultLevel = parseLevel(string(level))
	format = logFormat
	componentLevels = make(map[string]slog.Level)
	for name, lvl := range components {
		componentLevels[name] = parseLevel(string(lvl))
	}
	levelsMu.Unlock()

	loggerCache = sync.Map{}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = newJSONHandler("")
	} else {
		handler = NewExtTextHandler(os.Stderr, nil, "")
	}

	Log = slog.New(handler)
}

type ExtTextHandler struct {
	opts      *slog.HandlerOptions
	mu        sync.Mutex
	w         io.Writer
	attrs     []slog.Attr
	component string
}

func NewExtTextHandler(w io.Writer, opts *slog.HandlerOptions, component string) *ExtTextHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ExtTextHandler{
		w:         w,
		opts:      opts,
		component: component,
	}
}

func (h *ExtTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= getEffectiveLevel(h.component)
}

func (h *ExtTextHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	attrs := make(map[string]any)

	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}

	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006/01/02 15:04:05.000")...)
	buf = append(buf, fmt.Sprintf(" [%d]", pid)...)

	if h.component != "" {
		buf = append(buf, fmt.Sprintf(" [%s]", h.component)...)
	}

	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	for k, v := range attrs {
		buf = append(buf, fmt.Sprintf(" %s=%v", k, v)...)
	}

	buf = append(buf, '\n')
	_, err := h.w.Write(buf)
	return err
}

func (h *ExtTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ExtTextHandler{
		w:         h.w,
		opts:      h.opts,
		attrs:     append(h.attrs, attrs...),
		component: h.component,
	}
}

func (h *ExtTextHandler) WithGroup(name string) slog.Handler {
	newComponent := h.component
	if newComponent != "" {
		newComponent = newComponent + "." + name
	} else {
		newComponent = name
	}
	return &ExtTextHandler{
		w:         h.w,
		opts:      h.opts,
		attrs:     h.attrs,
		component: newComponent,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEffectiveLevel(component string) slog.Level {
	levelsMu.RLock()
	defer levelsMu.RUnlock()

	if level, ok := componentLevels[component]; ok {
		return level
	}

	path := component
	for {
		idx := strings.LastIndex(path, ".")
		if idx < 0 {
			break
		}
		path = path[:idx]
		if level, ok := componentLevels[path]; ok {
			return level
		}
	}

	return defaultLevel
}

type ExtJSONHandler struct {
	inner     *slog.JSONHandler
	component string
}

func newJSONHandler(component string) *ExtJSONHandler {
	return &ExtJSONHandler{
		inner: slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
		component: component,
	}
}

func (h *ExtJSONHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= getEffectiveLevel(h.component)
}

func (h *ExtJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.component != "" {
		r.AddAttrs(slog.String("component", h.component))
	}
	return h.inner.Handle(ctx, r)
}

func (h *ExtJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ExtJSONHandler{
		inner:     h.inner.WithAttrs(attrs).(*slog.JSONHandler),
		component: h.component,
	}
}

func (h *ExtJSONHandler) WithGroup(name string) slog.Handler {
	newComponent := h.component
	if newComponent != "" {
		newComponent = newComponent + "." + name
	} else {
		newComponent = name
	}
	return &ExtJSONHandler{
		inner:     h.inner,
		component: newComponent,
	}
}

// Get returns the cached logger for a component, creating it on first use.
func Get(name string) *slog.Logger {
	if l, ok := loggerCache.Load(name); ok {
		return l.(*slog.Logger)
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = newJSONHandler(name)
	} else {
		handler = NewExtTextHandler(os.Stderr, nil, name)
	}

	l := slog.New(handler)
	loggerCache.Store(name, l)
	return l
}

func SetComponentLevel(name string, level LogLevel) {
	levelsMu.Lock()
	componentLevels[name] = parseLevel(string(level))
	levelsMu.Unlock()
	loggerCache.Delete(name)
}
