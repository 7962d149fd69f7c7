package logger

import (
	"bytes"
	stdlog "log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"verbose", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestInit_WritesFieldsAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelInfo, Output: &buf, Fields: []any{"run", "run-1"}})
	t.Cleanup(func() { Init(Config{Level: LevelError, Output: &bytes.Buffer{}}) })

	Debug("hidden")
	Info("fetching info", "url", "https://youtu.be/x")
	InfoWithDuration("done", time.Now())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "fetching info")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "https://youtu.be/x")
	assert.Contains(t, out, "duration")
}

func TestWarnLevelDropsInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelWarn, Output: &buf})
	t.Cleanup(func() { Init(Config{Level: LevelError, Output: &bytes.Buffer{}}) })

	Info("quiet")
	Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestRedirectStdLog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelDebug, Output: &buf})
	t.Cleanup(func() { Init(Config{Level: LevelError, Output: &bytes.Buffer{}}) })

	restore := RedirectStdLog()
	defer restore()

	stdlog.Printf("Starting resolve for URL: %s", "https://youtu.be/x")
	assert.Contains(t, buf.String(), "Starting resolve for URL")
}
