package logger

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = map[Level]string{
	Debug: "debug",
	Info:  "info",
	Warn:  "warn",
	Error: "error",
}

// ParseLevel acepta debug|info|warn|warning|error. Cualquier otra cosa es info.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return Warn
	}
	for lvl, name := range levelNames {
		if name == s {
			return lvl
		}
	}
	return Info
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "info"
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string
	// Out por defecto es os.Stdout. La TUI usa un archivo para no pisar la pantalla.
	Out io.Writer
}

// sink es compartido por el logger raíz y todos los derivados con With.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	format Format
	now    func() time.Time
}

// StdLogger escribe una línea por entrada (text key=value o JSON).
type StdLogger struct {
	sink   *sink
	fields map[string]any
}

func New(opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	l := &StdLogger{
		sink:   &sink{out: out, level: opts.Level, format: format, now: time.Now},
		fields: map[string]any{},
	}
	if app := strings.TrimSpace(opts.App); app != "" {
		l.fields["app"] = app
	}
	return l
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=puppy-store (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

func (l *StdLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &StdLogger{sink: l.sink, fields: merge(l.fields, fields)}
}

func (l *StdLogger) Debug(msg string, fields map[string]any) { l.write(Debug, msg, fields) }
func (l *StdLogger) Info(msg string, fields map[string]any)  { l.write(Info, msg, fields) }
func (l *StdLogger) Warn(msg string, fields map[string]any)  { l.write(Warn, msg, fields) }
func (l *StdLogger) Error(msg string, fields map[string]any) { l.write(Error, msg, fields) }

func (l *StdLogger) write(lvl Level, msg string, fields map[string]any) {
	s := l.sink
	if lvl < s.level {
		return
	}

	entry := merge(l.fields, fields)
	entry["ts"] = s.now().Format(time.RFC3339Nano)
	entry["level"] = lvl.String()
	entry["msg"] = msg

	var line []byte
	if s.format == FormatJSON {
		b, err := json.Marshal(entry)
		if err != nil {
			// un valor no serializable no debe perder la línea
			b, _ = json.Marshal(map[string]any{"ts": entry["ts"], "level": entry["level"], "msg": msg, "log_error": err.Error()})
		}
		line = b
	} else {
		line = []byte(formatText(entry))
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.out.Write(line)
}

// merge copia base + extra; descarta keys vacías y convierte errors a string.
func merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra)+3)
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		out[k] = v
	}
	return out
}

func formatText(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(textValue(m[k]))
	}
	return b.String()
}

// textValue entrecomilla valores con espacios o '=' ("Portland, OR").
func textValue(v any) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "<nil>"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return strconv.Quote(err.Error())
		}
		s = strings.Trim(string(b), `"`)
	}
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}

// Nop descarta todo. Default de los componentes que reciben un Logger opcional.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (n nopLogger) With(map[string]any) Logger { return n }
func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}

type ctxKey struct{}

// NewContext guarda el logger del request (con request_id) en ctx.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext devuelve el logger de ctx o Nop si no hay.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	return Nop()
}
