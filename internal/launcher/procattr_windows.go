//go:build windows

package launcher

import "os/exec"

// setProcGroup is a no-op on Windows
func setProcGroup(cmd *exec.Cmd) {}

// terminateProcess ends the child. Windows has no SIGTERM equivalent
// for console children started this way, so this is a hard kill.
func terminateProcess(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
}

// killProcess forcefully ends the child
func killProcess(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
}
