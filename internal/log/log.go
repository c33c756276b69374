// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvVar names the environment variable holding the log level.
const EnvVar = "SEMFILTER_LOG"

var traceEnabled bool

// InitLogger sets up Apex with a custom handler writing to stderr and a log
// level from the SEMFILTER_LOG env variable.
func InitLogger() {
	level, trace := ParseLevel(os.Getenv(EnvVar))
	traceEnabled = trace
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevel(level)
}

// ParseLevel maps a SEMFILTER_LOG value to an Apex level. trace reports
// whether Tracef output is wanted. Unknown and empty values mean error.
func ParseLevel(s string) (level log.Level, trace bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.DebugLevel, true // Show debug and above for trace
	case "debug":
		return log.DebugLevel, false
	case "info":
		return log.InfoLevel, false
	case "warn":
		return log.WarnLevel, false
	case "fatal":
		return log.FatalLevel, false
	}
	return log.ErrorLevel, false
}

// CustomHandler formats log messages as "time L message key=value" lines.
type CustomHandler struct {
	Writer io.Writer
	mu     sync.Mutex
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", timestamp.Format("2006-01-02 15:04:05"), level, message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	w := h.Writer
	if w == nil {
		w = os.Stderr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(w, b.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
