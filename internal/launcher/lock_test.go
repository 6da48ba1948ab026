package launcher

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLockManager_AcquireRelease(t *testing.T) {
	tmpDir := t.TempDir()
	lockFile := filepath.Join(tmpDir, "launcher.lock")

	lock := NewLockManager(lockFile)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	if _, err := os.Stat(lockFile); os.IsNotExist(err) {
		t.Error("Lock file should exist after acquire")
	}

	data, err := os.ReadFile(lockFile)
	if err != nil {
		t.Fatalf("Failed to read lock file: %v", err)
	}

	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("Failed to parse lock file: %v", err)
	}

	if info.PID != os.Getpid() {
		t.Errorf("Expected PID %d, got %d", os.Getpid(), info.PID)
	}

	if info.Hostname == "" {
		t.Error("Hostname should not be empty")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}

	if _, err := os.Stat(lockFile); !os.IsNotExist(err) {
		t.Error("Lock file should not exist after release")
	}
}

func TestLockManager_StaleLockRecovery(t *testing.T) {
	tmpDir := t.TempDir()
	lockFile := filepath.Join(tmpDir, "launcher.lock")

	// Create a lock file with a non-existent PID
	info := LockInfo{
		PID:       99999, // Very unlikely to be a real process
		StartTime: time.Now().Add(-1 * time.Hour),
		Hostname:  "old-host",
	}
	data, _ := json.MarshalIndent(info, "", "  ")
	if err := os.WriteFile(lockFile, data, 0644); err != nil {
		t.Fatalf("Failed to create stale lock: %v", err)
	}

	lock := NewLockManager(lockFile)

	if !lock.IsStale() {
		t.Error("Lock should be detected as stale")
	}

	// Acquire should succeed by removing the stale lock
	if err := lock.Acquire(); err != nil {
		t.Errorf("Acquire should succeed for stale lock: %v", err)
	}
	defer lock.Release()

	newInfo, err := lock.readLockInfo()
	if err != nil {
		t.Fatalf("Failed to read new lock info: %v", err)
	}

	if newInfo.PID != os.Getpid() {
		t.Errorf("Expected PID %d, got %d", os.Getpid(), newInfo.PID)
	}
}

func TestLockManager_LiveHolderRejected(t *testing.T) {
	tmpDir := t.TempDir()
	lockFile := filepath.Join(tmpDir, "launcher.lock")

	// A lock held by the current (live) process must not be stealable
	info := LockInfo{
		PID:       os.Getpid(),
		StartTime: time.Now(),
		Hostname:  "this-host",
	}
	data, _ := json.MarshalIndent(info, "", "  ")
	if err := os.WriteFile(lockFile, data, 0644); err != nil {
		t.Fatalf("Failed to create lock: %v", err)
	}

	lock := NewLockManager(lockFile)
	if err := lock.Acquire(); err == nil {
		t.Error("Acquire should fail while the holder is alive")
		lock.Release()
	}
}

func TestLockManager_ReleaseWithoutAcquire(t *testing.T) {
	tmpDir := t.TempDir()
	lockFile := filepath.Join(tmpDir, "launcher.lock")

	lock := NewLockManager(lockFile)

	if err := lock.Release(); err != nil {
		t.Errorf("Release without acquire should not error: %v", err)
	}
}

func TestLockManager_CreateDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	lockFile := filepath.Join(tmpDir, "ui", "logs", "launcher.lock")

	lock := NewLockManager(lockFile)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer lock.Release()

	dir := filepath.Dir(lockFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directory should be created")
	}
}

func TestProcessAlive(t *testing.T) {
	// Current process should be alive
	if !ProcessAlive(os.Getpid()) {
		t.Error("Current process should be detected as alive")
	}

	// Non-existent PID should not be alive
	if ProcessAlive(99999) {
		t.Error("Non-existent PID should not be detected as alive")
	}
}
