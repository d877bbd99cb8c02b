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
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

// WriterLogger returns a Logger that writes each message as a timestamped line.
func WriterLogger(w io.Writer) Logger { return &writerLogger{w: w} }

type writerLogger struct {
	w    io.Writer
	lock sync.Mutex
}

func (l *writerLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.w, "[%s] %s\n", time.Now().Format(timestampFormat), fmt.Sprintf(message, args...))
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger buffers messages for a scenario so they can be shown only if it fails.
// It is safe for concurrent use, since batch requests log from several goroutines.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes the captured messages. Continuation lines of a multi-line message are indented
// under the first so that request bodies stay readable.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := fmt.Sprintf("%s[%s] ", prefix, m.Time.Format(timestampFormat))
		lines := strings.Split(strings.TrimRight(m.Message, "\n"), "\n")
		fmt.Fprintf(dest, "%s%s\n", stamp, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(dest, "%s%s\n", strings.Repeat(" ", len(stamp)), line)
		}
	}
}
