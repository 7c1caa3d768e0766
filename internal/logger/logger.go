// Package logger is a small levelled wrapper around the standard log package.
// Fields are passed as alternating key/value pairs.
package logger

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var current atomic.Int32

func init() {
	current.Store(int32(LevelInfo))
}

func SetLevel(l Level) {
	current.Store(int32(l))
}

// ParseLevel maps a config string to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func Debug(msg string, fields ...any) {
	write(LevelDebug, "DEBUG", msg, fields)
}

func Info(msg string, fields ...any) {
	write(LevelInfo, "INFO", msg, fields)
}

func Warn(msg string, fields ...any) {
	write(LevelWarn, "WARN", msg, fields)
}

// Error logs msg with err appended as "msg: err". A nil err logs msg alone.
func Error(err error, msg string, fields ...any) {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	write(LevelError, "ERROR", msg, fields)
}

func write(l Level, tag, msg string, fields []any) {
	if int32(l) < current.Load() {
		return
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(tag)
	b.WriteString("] ")
	b.WriteString(msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
		} else {
			fmt.Fprintf(&b, " %v=(missing)", fields[i])
		}
	}
	log.Print(b.String())
}
