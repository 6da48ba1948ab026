package launcher

import (
	"io"
	"os/exec"
	"time"
)

// Process is one supervised child: the control/API server or the static
// web server. It is created by NewProcess, started once, and signaled
// (never restarted) during teardown.
type Process struct {
	name      string
	cmd       *exec.Cmd
	pty       io.ReadWriteCloser // Platform-specific PTY
	output    io.Reader
	fallback  bool // true if using standard pipes instead of a PTY
	startedAt time.Time
	done      chan struct{}
	waitErr   error
}

// NewProcess creates a supervised process. dir is the working directory
// (the repo root, so relative script paths and served files resolve).
func NewProcess(name, dir, command string, args ...string) *Process {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	return &Process{
		name: name,
		cmd:  cmd,
		done: make(chan struct{}),
	}
}

// Start spawns the process without blocking. A reaper goroutine waits on
// the child so Done() observes its exit as soon as it happens.
func (p *Process) Start() error {
	if err := p.startPlatform(); err != nil {
		return err
	}
	p.startedAt = time.Now()

	go func() {
		p.waitErr = p.cmd.Wait()
		close(p.done)
	}()

	return nil
}

// Name returns the short label used in log prefixes ("api", "web")
func (p *Process) Name() string {
	return p.name
}

// Pid returns the child PID, or 0 if it never started
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// StartedAt returns when the child was spawned
func (p *Process) StartedAt() time.Time {
	return p.startedAt
}

// Output returns the combined output of the child (PTY or merged pipes)
func (p *Process) Output() io.Reader {
	return p.output
}

// Done is closed once the child has exited and been reaped
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Alive reports whether the child is running. It is a point-in-time check:
// true means the child had not been reaped when the check ran.
func (p *Process) Alive() bool {
	if p.cmd.Process == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// WaitErr returns the error from reaping the child, if it has exited
func (p *Process) WaitErr() error {
	select {
	case <-p.done:
		return p.waitErr
	default:
		return nil
	}
}

// Terminate asks the child (and its process group) to exit.
// Errors from already-dead processes are ignored.
func (p *Process) Terminate() {
	if p.cmd.Process == nil {
		return
	}
	terminateProcess(p.cmd)
}

// Kill forcefully ends the child (and its process group)
func (p *Process) Kill() {
	if p.cmd.Process == nil {
		return
	}
	killProcess(p.cmd)
}

// IsFallback returns true if the child runs on pipes instead of a PTY
func (p *Process) IsFallback() bool {
	return p.fallback
}

// Close releases the PTY, if one was allocated
func (p *Process) Close() error {
	if p.pty != nil {
		return p.pty.Close()
	}
	return nil
}
