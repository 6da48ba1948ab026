package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Interpreter source tiers, in preference order
const (
	SourceOverride = "override"
	SourceVenv     = "venv"
	SourceSystem   = "system"
)

// Resolution is the outcome of interpreter resolution. Resolution is total:
// Path is always set, even when the system default was never validated.
type Resolution struct {
	Path     string
	Source   string
	Warnings []string
}

// ResolveInterpreter picks the Python interpreter used to run both servers.
// Preference order: explicit override, project-local venv, system default.
// An unusable override is downgraded to a warning, never a fatal error.
func ResolveInterpreter(root, override string) Resolution {
	var warnings []string

	if override != "" {
		if looksLikePath(override) {
			if isExecutable(override) {
				return Resolution{Path: override, Source: SourceOverride, Warnings: warnings}
			}
			warnings = append(warnings,
				fmt.Sprintf("interpreter %q is not an executable file, falling back", override))
		} else {
			if path, err := exec.LookPath(override); err == nil {
				return Resolution{Path: path, Source: SourceOverride, Warnings: warnings}
			}
			warnings = append(warnings,
				fmt.Sprintf("interpreter %q not found in PATH, falling back", override))
		}
	}

	if venv := venvPython(root); isExecutable(venv) {
		return Resolution{Path: venv, Source: SourceVenv, Warnings: warnings}
	}

	// The system default is not pre-validated: if it is missing, process
	// start fails naturally and is reported as a startup failure.
	name := systemPython()
	if path, err := exec.LookPath(name); err == nil {
		return Resolution{Path: path, Source: SourceSystem, Warnings: warnings}
	}
	return Resolution{Path: name, Source: SourceSystem, Warnings: warnings}
}

// venvPython returns the fixed project-local interpreter location
func venvPython(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, ".venv", "Scripts", "python.exe")
	}
	return filepath.Join(root, ".venv", "bin", "python3")
}

// systemPython returns the system-default interpreter name
func systemPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// looksLikePath reports whether the override should be treated as a file
// path rather than a command name to search in PATH.
func looksLikePath(s string) bool {
	return strings.ContainsRune(s, '/') ||
		strings.ContainsRune(s, os.PathSeparator) ||
		strings.HasPrefix(s, ".")
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}
