package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the colors one theme uses
type palette struct {
	fg        string
	time      string
	component []string
	number    string
	key       string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;108m",
	component: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
	number:    "\x1b[38;5;175m",
	key:       "\x1b[38;5;109m",
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (natural forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;107m",
	component: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
	number:    "\x1b[38;5;108m",
	key:       "\x1b[38;5;109m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

var currentTheme = "everforest"

// SetTheme configures the color scheme for log output.
// Unknown theme names are ignored.
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

func colorComponent(name string) string {
	// Hash for consistent color per component
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	choices := colors().component
	return choices[hash%len(choices)]
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  t.patch  Patched document  file=src/init.luau count=12"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	pool            buffer.Pool
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		pool:    buffer.NewPool(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		pool:    enc.pool,
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := enc.pool.Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR and above
	if level := levelColorString(ent.Level); level != "" {
		final.AppendString("  ")
		final.AppendString(level)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if rendered := renderFields(fields); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	case zapcore.DebugLevel:
		return c.key + "debug" + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: typegen.patch -> t.patch
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// renderFields renders every field it is given as key=value, in order.
// Counts and durations are highlighted. Logger-scoped fields arrive here
// through contextCore.
func renderFields(fields []zapcore.Field) string {
	c := colors()
	parts := make([]string, 0, len(fields))

	for _, field := range fields {
		if field.Type == zapcore.SkipType {
			continue
		}
		m := zapcore.NewMapObjectEncoder()
		field.AddTo(m)
		value, ok := m.Fields[field.Key]
		if !ok {
			continue
		}

		rendered := fmt.Sprintf("%v", value)
		switch field.Key {
		case FieldCount, FieldDurationMS, FieldSize, FieldLine:
			rendered = c.number + rendered + colorReset
		}
		parts = append(parts, c.key+field.Key+colorReset+"="+rendered)
	}

	return strings.Join(parts, " ")
}
