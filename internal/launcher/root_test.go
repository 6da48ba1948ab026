package launcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "AI_first", "scripts"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	nested := filepath.Join(root, "AI_first", "scripts")
	found, err := FindRepoRoot(nested)
	if err != nil {
		t.Fatalf("FindRepoRoot failed: %v", err)
	}

	// Resolve symlinks so macOS /tmp vs /private/tmp compares equal
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(found)
	if gotRoot != wantRoot {
		t.Errorf("FindRepoRoot = %q, want %q", gotRoot, wantRoot)
	}
}

func TestFindRepoRoot_FromRootItself(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "AI_first"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if _, err := FindRepoRoot(root); err != nil {
		t.Errorf("FindRepoRoot from the root itself failed: %v", err)
	}
}

func TestFindRepoRoot_NotFound(t *testing.T) {
	dir := t.TempDir()

	if _, err := FindRepoRoot(dir); err == nil {
		t.Error("expected error when no AI_first directory exists above start")
	}
}

func TestFindRepoRoot_FileNotDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "AI_first"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := FindRepoRoot(dir); err == nil {
		t.Error("a plain file named AI_first should not count as the repo root")
	}
}
