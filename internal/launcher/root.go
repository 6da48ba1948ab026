package launcher

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRepoRoot walks up from start looking for a directory that contains
// the AI_first tree. The launcher can be run from anywhere inside the repo.
func FindRepoRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		info, err := os.Stat(filepath.Join(dir, "AI_first"))
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("AI_first directory not found in %s or any parent", start)
		}
		dir = parent
	}
}
