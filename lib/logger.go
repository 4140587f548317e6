package lib

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

type Logger interface {
	Print(a ...any)
	Println(a ...any)
	Printf(format string, a ...any)
}

type NoLog struct{}

func (l *NoLog) Print(a ...any)                 {}
func (l *NoLog) Println(a ...any)               {}
func (l *NoLog) Printf(format string, a ...any) {}

type TestLogger struct {
	t      *testing.T
	prefix string
}

func NewTestLogger(t *testing.T, prefix string) *TestLogger {
	return &TestLogger{
		t:      t,
		prefix: prefix,
	}
}

func (l *TestLogger) Print(a ...any) {
	if l.prefix == "" {
		l.t.Log(a...)
	} else {
		l.t.Log(append([]any{l.prefix + ":"}, a...)...)
	}
}

func (l *TestLogger) Println(a ...any) {
	l.Print(a...)
}

func (l *TestLogger) Printf(format string, a ...any) {
	if l.prefix != "" {
		format = l.prefix + ": " + format
	}
	l.t.Logf(format, a...)
}

// LogWriter sends each line written to it to a Logger.
// It is used to plug a Logger into the IMAP protocol trace.
type LogWriter struct {
	log    Logger
	buffer []byte
}

func NewLogWriter(logger Logger) *LogWriter {
	return &LogWriter{log: logger}
}

func (w *LogWriter) Write(p []byte) (int, error) {
	w.buffer = append(w.buffer, p...)
	for {
		index := bytes.IndexByte(w.buffer, '\n')
		if index < 0 {
			break
		}
		w.log.Print(redactLogin(string(bytes.TrimRight(w.buffer[:index], "\r"))))
		w.buffer = w.buffer[index+1:]
	}
	return len(p), nil
}

var _ io.Writer = &LogWriter{}

// redactLogin hides the credentials sent by the LOGIN command
func redactLogin(line string) string {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) == 3 && strings.EqualFold(fields[1], "LOGIN") {
		return fields[0] + " " + fields[1] + " [redacted]"
	}
	return line
}
