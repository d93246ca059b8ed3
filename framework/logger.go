package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Logger interface {
	Println(args ...interface{})
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Println(args ...interface{})                {}
func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

// ConsoleLogger writes every message as one line to the given writer, without timestamps. It is
// the default destination for the human-readable half of the logging sink.
type ConsoleLogger struct {
	out  io.Writer
	lock sync.Mutex
}

func NewConsoleLogger(out io.Writer) *ConsoleLogger {
	return &ConsoleLogger{out: out}
}

func (c *ConsoleLogger) Println(args ...interface{}) {
	c.write(strings.TrimRight(fmt.Sprintln(args...), "\r\n"))
}

func (c *ConsoleLogger) Printf(message string, args ...interface{}) {
	c.write(fmt.Sprintf(message, args...))
}

func (c *ConsoleLogger) write(line string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	_, _ = fmt.Fprintln(c.out, line)
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger records all output written during one scenario, so that a test logger can decide
// at the end of the scenario whether to show it.
type CapturingLogger struct {
	output []CapturedMessage
	now    func() time.Time
	lock   sync.Mutex
}

func (l *CapturingLogger) Println(args ...interface{}) {
	m := strings.TrimRight(fmt.Sprintln(args...), "\r\n") // Sprintln appends a newline
	l.append(m)
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.append(fmt.Sprintf(message, args...))
}

func (l *CapturingLogger) append(message string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.output = append(l.output, CapturedMessage{Time: now(), Message: message})
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

func (output CapturedOutput) ToString(prefix string) string {
	lines := make([]string, 0, len(output))
	for _, m := range output {
		lines = append(lines, fmt.Sprintf("%s[%s] %s", prefix, m.Time.Format(timestampFormat), m.Message))
	}
	return strings.Join(lines, "\n")
}

type prefixedLogger struct {
	base   Logger
	prefix string
}

func LoggerWithPrefix(baseLogger Logger, prefix string) Logger {
	return prefixedLogger{baseLogger, prefix}
}

func (p prefixedLogger) Println(args ...interface{}) {
	p.base.Println(append([]interface{}{p.prefix}, args...)...)
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}

// MultiLogger sends each message to every one of the given loggers.
func MultiLogger(loggers ...Logger) Logger {
	return multiLogger(loggers)
}

type multiLogger []Logger

func (m multiLogger) Println(args ...interface{}) {
	for _, l := range m {
		l.Println(args...)
	}
}

func (m multiLogger) Printf(message string, args ...interface{}) {
	for _, l := range m {
		l.Printf(message, args...)
	}
}
