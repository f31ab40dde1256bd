// Package logging provides structured JSON logging for fman components.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/keiko/fman/internal/config"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// levelRank orders levels for minimum-level filtering.
var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// minLevel resolves a configured level name, defaulting to info on
// anything unrecognized.
func minLevel(name string) Level {
	l := Level(name)
	if _, ok := levelRank[l]; !ok {
		return LevelInfo
	}
	return l
}

// Event represents a structured log event
type Event struct {
	Timestamp string         `json:"ts"`
	Level     Level          `json:"level"`
	Component string         `json:"component"`
	Event     string         `json:"event"`
	Session   string         `json:"session,omitempty"`
	Path      string         `json:"path,omitempty"`
	Duration  int64          `json:"duration_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Logger provides structured logging. Events below the minimum level
// (FMAN_LOG_LEVEL, default info) are dropped.
type Logger struct {
	component string
	session   string
	min       Level
	out       io.Writer
}

// New creates a new logger for a component
func New(component string) *Logger {
	return &Logger{
		component: component,
		session:   config.Env().SessionID,
		min:       minLevel(config.Env().LogLevel),
		out:       os.Stderr,
	}
}

// WithOutput returns a logger writing to w (for testing).
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{
		component: l.component,
		session:   l.session,
		min:       l.min,
		out:       w,
	}
}

// WithSession sets the session context
func (l *Logger) WithSession(session string) *Logger {
	return &Logger{
		component: l.component,
		session:   session,
		min:       l.min,
		out:       l.out,
	}
}

// log emits a structured log event
func (l *Logger) log(level Level, event, path string, extra map[string]any, err error) {
	if levelRank[level] < levelRank[l.min] {
		return
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Session:   l.session,
		Path:      path,
		Extra:     extra,
	}

	if err != nil {
		e.Error = err.Error()
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(l.out, string(data))
}

// Debug logs a debug event
func (l *Logger) Debug(event string, extra map[string]any) {
	l.log(LevelDebug, event, "", extra, nil)
}

// Info logs an info event
func (l *Logger) Info(event string, extra map[string]any) {
	l.log(LevelInfo, event, "", extra, nil)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, extra map[string]any, err error) {
	l.log(LevelWarn, event, "", extra, err)
}

// Error logs an error event
func (l *Logger) Error(event string, extra map[string]any, err error) {
	l.log(LevelError, event, "", extra, err)
}

// TimedEvent logs an event with duration
func (l *Logger) TimedEvent(event string, start time.Time, extra map[string]any) {
	if levelRank[LevelInfo] < levelRank[l.min] {
		return
	}

	e := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     LevelInfo,
		Component: l.component,
		Event:     event,
		Session:   l.session,
		Duration:  time.Since(start).Milliseconds(),
		Extra:     extra,
	}

	data, _ := json.Marshal(e)
	fmt.Fprintln(l.out, string(data))
}
