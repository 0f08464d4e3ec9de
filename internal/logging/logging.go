// internal/logging/logging.go
// Package logging configures the shared application logger.
//
// Standard output carries the MCP protocol stream, so log lines go to
// standard error plus an optional append-only log file, never stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stderr and, when logPath is
// non-empty, to an append-only file as well.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close detaches and closes the log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent records a single formatted application event.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogRequest records one protocol or upstream exchange with a direction
// label (e.g. "CLIENT->SERVER"), the tool involved, and the payload.
func LogRequest(direction, tool string, payload any) {
	log.Println(buildRequestMessage(direction, tool, payload))
}

func buildRequestMessage(direction, tool string, payload any) string {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	if dir == "" {
		dir = "UNKNOWN"
	}
	toolValue := strings.TrimSpace(tool)
	if toolValue == "" {
		toolValue = "unknown"
	}

	return fmt.Sprintf("[%s] tool=%s payload=%s", dir, toolValue, formatPayload(payload))
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "{}"
	case string:
		return v
	case []byte:
		return string(v)
	case json.RawMessage:
		return string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
