package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(5 * time.Millisecond)
	prog.done("Exported 1 file(s)")

	out := buf.String()
	if !strings.Contains(out, "Exported 1 file(s) (") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}

func TestLogExportHooks(t *testing.T) {
	ctx := context.Background()

	t.Run("debug events hidden at info", func(t *testing.T) {
		var buf bytes.Buffer
		h := &logExportHooks{logger: newLogger(&buf, log.InfoLevel)}
		h.OnExportStart(ctx, []string{"png"})
		h.OnRasterize(ctx, "canvas", 2, time.Millisecond, nil)
		h.OnExportComplete(ctx, []string{"png"}, time.Millisecond, nil)
		if buf.Len() != 0 {
			t.Errorf("unexpected output at info level: %q", buf.String())
		}
	})

	t.Run("rasterize failure is a warning", func(t *testing.T) {
		var buf bytes.Buffer
		h := &logExportHooks{logger: newLogger(&buf, log.InfoLevel)}
		h.OnRasterize(ctx, "rsvg", 2, 0, errors.New("rsvg-convert not found"))
		out := buf.String()
		for _, want := range []string{"rasterize failed", "rsvg", "rsvg-convert not found"} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q missing %q", out, want)
			}
		}
	})

	t.Run("debug level shows formats", func(t *testing.T) {
		var buf bytes.Buffer
		h := &logExportHooks{logger: newLogger(&buf, log.DebugLevel)}
		h.OnExportStart(ctx, []string{"png", "svg"})
		if !strings.Contains(buf.String(), "png,svg") {
			t.Errorf("output %q missing formats", buf.String())
		}
	})
}

func TestLogCacheHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logCacheHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnCacheMiss(ctx, "raster")
	h.OnCacheSet(ctx, "raster", 1234)
	h.OnCacheHit(ctx, "raster")

	out := buf.String()
	for _, want := range []string{"cache miss", "cache set", "1234", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
