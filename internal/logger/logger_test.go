package logger

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(old)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestLogger(t *testing.T) {
	buf := captureLog(t)

	t.Run("Info", func(t *testing.T) {
		buf.Reset()
		Info("store loaded")
		if !strings.Contains(buf.String(), "[INFO] store loaded") {
			t.Errorf("unexpected Info format: %s", buf.String())
		}
	})

	t.Run("Error with error", func(t *testing.T) {
		buf.Reset()
		Error(errors.New("disk full"), "persist tasks")
		if !strings.Contains(buf.String(), "[ERROR] persist tasks: disk full") {
			t.Errorf("unexpected Error format: %s", buf.String())
		}
	})

	t.Run("Error without error", func(t *testing.T) {
		buf.Reset()
		Error(nil, "nothing wrong")
		if !strings.Contains(buf.String(), "[ERROR] nothing wrong") {
			t.Errorf("unexpected Error format without err: %s", buf.String())
		}
	})

	t.Run("Debug with level", func(t *testing.T) {
		buf.Reset()
		SetLevel(LevelDebug)
		defer SetLevel(LevelInfo)

		Debug("view rebuilt")
		if !strings.Contains(buf.String(), "[DEBUG] view rebuilt") {
			t.Errorf("unexpected Debug format: %s", buf.String())
		}
	})

	t.Run("Debug without level", func(t *testing.T) {
		buf.Reset()
		SetLevel(LevelInfo)

		Debug("should not be logged")
		if buf.String() != "" {
			t.Errorf("Debug must be suppressed at LevelInfo: %s", buf.String())
		}
	})
}

func TestLoggerWithFields(t *testing.T) {
	buf := captureLog(t)

	Warn("corrupt state", "key", "tasks", "count", 42, "dangling")
	out := buf.String()
	for _, want := range []string{"[WARN] corrupt state", "key=tasks", "count=42", "dangling=(missing)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
