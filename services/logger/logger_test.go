package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestNewLogger_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", slog.LevelInfo)
	l.Info("reconciliation finished", "cancelled", 2)
	assert.Contains(t, buf.String(), `"msg":"reconciliation finished"`)
	assert.Contains(t, buf.String(), `"cancelled":2`)
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	cl := CronLogger{L: newLogger(&buf, "prod", slog.LevelDebug)}
	cl.Error(errors.New("boom"), "job panicked", "job", "reconcile")
	assert.Contains(t, buf.String(), "cron: job panicked")
	assert.Contains(t, buf.String(), "boom")
}
