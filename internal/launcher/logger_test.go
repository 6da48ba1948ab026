package launcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSessionLogger_WritesTimestampedLines(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewSessionLogger(dir)
	if err != nil {
		t.Fatalf("NewSessionLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Line("api", "control server started")

	path := logger.FilePath()
	if path == "" {
		t.Fatal("FilePath should not be empty")
	}
	if !strings.HasPrefix(filepath.Base(path), logFilePrefix) {
		t.Errorf("log file %q should use the launcher prefix", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "[api] control server started") {
		t.Errorf("log should contain the labeled line, got %q", content)
	}
	// Timestamp prefix like [2026-08-29 10:00:00]
	if !strings.HasPrefix(content, "[2") {
		t.Errorf("log lines should be timestamped, got %q", content)
	}
}

func TestSessionLogger_Rotation(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewSessionLogger(dir)
	if err != nil {
		t.Fatalf("NewSessionLogger failed: %v", err)
	}
	defer logger.Close()

	first := logger.FilePath()
	logger.maxSize = 64

	logger.Line("web", strings.Repeat("x", 200))
	logger.Line("web", "after rotation")

	if logger.FilePath() == first {
		t.Error("logger should have rotated to a new file")
	}
}

func TestSessionLogger_RapidRotationUsesDistinctFiles(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewSessionLogger(dir)
	if err != nil {
		t.Fatalf("NewSessionLogger failed: %v", err)
	}
	defer logger.Close()

	// Every write exceeds maxSize, so every write rotates. Back-to-back
	// rotations land inside the same timestamp millisecond and must
	// still each get a fresh file. Retention is raised so cleanup never
	// frees a name for reuse mid-test.
	logger.maxSize = 1
	logger.maxFiles = 100

	seen := map[string]bool{logger.FilePath(): true}
	for i := 0; i < 10; i++ {
		logger.Line("web", "tick")
		path := logger.FilePath()
		if seen[path] {
			t.Fatalf("rotation %d reused log file %q", i, path)
		}
		seen[path] = true
	}
}

func TestSessionLogger_CleanupBoundsFileCount(t *testing.T) {
	dir := t.TempDir()

	// Pre-populate more session logs than the retention limit
	for i := 0; i < DefaultMaxLogFiles+3; i++ {
		name := filepath.Join(dir, logFilePrefix+"2026010"+string(rune('0'+i))+"-000000.000.log")
		if err := os.WriteFile(name, []byte("old\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	// A foreign log file must survive cleanup untouched
	foreign := filepath.Join(dir, "render_docs.log")
	if err := os.WriteFile(foreign, []byte("job\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	logger, err := NewSessionLogger(dir)
	if err != nil {
		t.Fatalf("NewSessionLogger failed: %v", err)
	}
	defer logger.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}

	count := 0
	foreignSeen := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), logFilePrefix) {
			count++
		}
		if e.Name() == "render_docs.log" {
			foreignSeen = true
		}
	}

	if count > DefaultMaxLogFiles {
		t.Errorf("%d launcher logs remain, want at most %d", count, DefaultMaxLogFiles)
	}
	if !foreignSeen {
		t.Error("cleanup must not touch non-launcher log files")
	}
}
