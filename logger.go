package cocktails

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// InvocationLogger is the interface for tool invocation logging.
type InvocationLogger interface {
	LogInvocation(invocation InvocationLog) error
}

// NewInvocationLogFilePath returns a file path based on a cleaned up service name to make it easier to tell
// apart logs from differently named deployments.
func NewInvocationLogFilePath(service string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(service), ":", "_"),
	)
}

// InvocationLog represents a single tool call handled by the server
type InvocationLog struct {
	ID         string         `json:"id"`
	Tool       string         `json:"tool"`
	User       string         `json:"user,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Input      map[string]any `json:"input,omitempty"`
	Text       []string       `json:"text,omitempty"`
	IsError    bool           `json:"is_error"`
	Error      string         `json:"error,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

// FileInvocationLogger logs to a file, accumulating invocations and flushing at the end
type FileInvocationLogger struct {
	mu          sync.Mutex
	invocations []InvocationLog
	writer      io.Writer
}

// NewFileInvocationLogger creates a new file-based invocation logger
func NewFileInvocationLogger(writer io.Writer) *FileInvocationLogger {
	return &FileInvocationLogger{
		invocations: make([]InvocationLog, 0),
		writer:      writer,
	}
}

// LogInvocation logs an invocation to the buffer (does not flush immediately)
func (fl *FileInvocationLogger) LogInvocation(invocation InvocationLog) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.invocations = append(fl.invocations, invocation)
	return nil
}

// Flush flushes all accumulated invocations to the writer
func (fl *FileInvocationLogger) Flush() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"server_session": map[string]any{
			"timestamp":   time.Now(),
			"invocations": fl.invocations,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal invocation log: %w", err)
	}

	if _, err := fl.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write invocation log: %w", err)
	}

	fl.invocations = fl.invocations[:0]
	return nil
}

// NoOpInvocationLogger is a logger that discards all log entries
type NoOpInvocationLogger struct{}

// NewNoOpInvocationLogger creates a new no-op invocation logger
func NewNoOpInvocationLogger() *NoOpInvocationLogger {
	return &NoOpInvocationLogger{}
}

// LogInvocation discards the invocation log (no-op)
func (nop *NoOpInvocationLogger) LogInvocation(invocation InvocationLog) error {
	return nil
}

// StdoutInvocationLogger logs each invocation as a JSON line (for Lambda/CloudWatch)
type StdoutInvocationLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdoutInvocationLogger creates a new stdout-based invocation logger
func NewStdoutInvocationLogger() *StdoutInvocationLogger {
	return &StdoutInvocationLogger{w: os.Stdout}
}

// LogInvocation writes the invocation as a JSON line
func (l *StdoutInvocationLogger) LogInvocation(invocation InvocationLog) error {
	data, err := json.Marshal(invocation)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = fmt.Fprintln(l.w, string(data))
	return err
}

// NewInvocationLogger picks a logger by mode: "stdout", "file" or anything else for none. The returned
// cleanup flushes and closes whatever the logger holds open.
func NewInvocationLogger(mode, service string) (InvocationLogger, func() error, error) {
	switch mode {
	case "stdout":
		return NewStdoutInvocationLogger(), func() error { return nil }, nil
	case "file":
		if err := os.MkdirAll("./logs", 0o755); err != nil {
			return nil, func() error { return err }, fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err := os.OpenFile(NewInvocationLogFilePath(service), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, func() error { return err }, fmt.Errorf("failed to open log file: %w", err)
		}
		logger := NewFileInvocationLogger(logFile)
		cleanup := func() error {
			return errors.Join(logger.Flush(), logFile.Close())
		}
		return logger, cleanup, nil
	default:
		return NewNoOpInvocationLogger(), func() error { return nil }, nil
	}
}
