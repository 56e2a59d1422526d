package logger

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// TestMinimalEncoderNeverDiscardsFields ensures the minimal encoder never
// silently drops log fields.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2024, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "typegen.patch",
		Message:    "Patched document",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String(FieldFile, "src/init.luau"), "file=src/init.luau"},
		{zap.String(FieldAnchor, "-- TYPES HERE"), "anchor=-- TYPES HERE"},
		{zap.Int(FieldCount, 48), "count=48"},
		{zap.Int64(FieldDurationMS, 12), "duration_ms=12"},
		{zap.Bool("compact", false), "compact=false"},
		{zap.Float64("ratio", 0.5), "ratio=0.5"},
		{zap.Strings("classes", []string{"Frame", "Part"}), "classes=[Frame Part]"},
		{zap.Error(errors.New("boom")), "error=boom"},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
	}

	var allFields []zapcore.Field
	for _, tf := range testFields {
		allFields = append(allFields, tf.field)
	}

	buf, err := encoder.EncodeEntry(entry, allFields)
	require.NoError(t, err)
	output := stripANSI(buf.String())

	assert.Contains(t, output, "13:04:35")
	assert.Contains(t, output, "t.patch")
	assert.Contains(t, output, "Patched document")
	for _, tf := range testFields {
		assert.Contains(t, output, tf.mustFind)
	}
}

func TestMinimalEncoderNilErrorIsSkipped(t *testing.T) {
	encoder := newMinimalEncoder()
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "ok"}

	buf, err := encoder.EncodeEntry(entry, []zapcore.Field{zap.Error(nil)})
	require.NoError(t, err)
	assert.NotContains(t, stripANSI(buf.String()), "error=")
}

func TestMinimalEncoderLevels(t *testing.T) {
	encoder := newMinimalEncoder()

	tests := []struct {
		level   zapcore.Level
		want    string
		wantNot string
	}{
		{zapcore.InfoLevel, "", "INFO"},
		{zapcore.WarnLevel, "WARN", ""},
		{zapcore.ErrorLevel, "ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf, err := encoder.EncodeEntry(zapcore.Entry{Level: tt.level, Time: time.Now(), Message: "m"}, nil)
			require.NoError(t, err)
			out := stripANSI(buf.String())
			if tt.want != "" {
				assert.Contains(t, out, tt.want)
			}
			if tt.wantNot != "" {
				assert.NotContains(t, out, tt.wantNot)
			}
		})
	}
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "t.patch", abbreviateName("typegen.patch"))
	assert.Equal(t, "t.source.http", abbreviateName("typegen.source.http"))
	assert.Equal(t, "cli", abbreviateName("cli"))
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("everforest")

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)

	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme, "unknown themes are ignored")
}
