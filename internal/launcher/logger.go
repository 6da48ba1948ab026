package launcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultMaxLogSize is the maximum size of a single session log (5MB)
	DefaultMaxLogSize = 5 * 1024 * 1024

	// DefaultMaxLogFiles is the maximum number of session logs to keep
	DefaultMaxLogFiles = 5

	logFilePrefix = "launcher-"
)

// SessionLogger appends launcher lifecycle lines and relayed child output
// to a per-session file under the control server's log directory, rotating
// by size and keeping a bounded number of old sessions.
type SessionLogger struct {
	dir      string
	maxSize  int64
	maxFiles int
	current  *os.File
	written  int64
}

// NewSessionLogger creates a SessionLogger writing into dir
func NewSessionLogger(dir string) (*SessionLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logger := &SessionLogger{
		dir:      dir,
		maxSize:  DefaultMaxLogSize,
		maxFiles: DefaultMaxLogFiles,
	}

	if err := logger.createNewFile(); err != nil {
		return nil, err
	}

	logger.cleanup()

	return logger, nil
}

// Write implements io.Writer. Each write gets a timestamp prefix.
func (l *SessionLogger) Write(p []byte) (n int, err error) {
	if l.current == nil {
		if err := l.createNewFile(); err != nil {
			return 0, err
		}
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	data := fmt.Sprintf("[%s] %s", timestamp, string(p))

	n, err = l.current.WriteString(data)
	if err != nil {
		return n, err
	}

	l.written += int64(n)

	if l.written >= l.maxSize {
		if err := l.Rotate(); err != nil {
			return n, err
		}
	}

	return len(p), nil
}

// Line writes one log line with a source label
func (l *SessionLogger) Line(source, text string) {
	_, _ = io.WriteString(l, fmt.Sprintf("[%s] %s\n", source, text))
}

// Rotate closes the current log file and creates a new one
func (l *SessionLogger) Rotate() error {
	if l.current != nil {
		if err := l.current.Close(); err != nil {
			return fmt.Errorf("failed to close current log file: %w", err)
		}
		l.current = nil
	}

	l.cleanup()
	return l.createNewFile()
}

// Close closes the logger
func (l *SessionLogger) Close() error {
	if l.current != nil {
		err := l.current.Close()
		l.current = nil
		return err
	}
	return nil
}

// FilePath returns the current log file path
func (l *SessionLogger) FilePath() string {
	if l.current != nil {
		return l.current.Name()
	}
	return ""
}

// createNewFile creates a new log file with timestamp. O_EXCL guarantees
// a fresh file: rotation within the same millisecond would otherwise
// reopen the file it was rotating away from, so name collisions retry
// with a counter suffix.
func (l *SessionLogger) createNewFile() error {
	timestamp := time.Now().Format("20060102-150405.000")

	for i := 0; ; i++ {
		filename := fmt.Sprintf("%s%s.log", logFilePrefix, timestamp)
		if i > 0 {
			filename = fmt.Sprintf("%s%s-%d.log", logFilePrefix, timestamp, i)
		}
		path := filepath.Join(l.dir, filename)

		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return fmt.Errorf("failed to create log file: %w", err)
		}

		l.current = file
		l.written = 0
		return nil
	}
}

// cleanup removes the oldest session logs when there are too many.
// Only launcher session logs are touched; the control server shares
// this directory for its own job logs.
func (l *SessionLogger) cleanup() {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || filepath.Ext(name) != ".log" {
			continue
		}
		logFiles = append(logFiles, filepath.Join(l.dir, name))
	}

	// Sort by modification time (oldest first)
	sort.Slice(logFiles, func(i, j int) bool {
		infoI, _ := os.Stat(logFiles[i])
		infoJ, _ := os.Stat(logFiles[j])
		if infoI == nil || infoJ == nil {
			return false
		}
		return infoI.ModTime().Before(infoJ.ModTime())
	})

	for len(logFiles) > l.maxFiles {
		os.Remove(logFiles[0])
		logFiles = logFiles[1:]
	}
}
