//go:build !windows

package launcher

import (
	"io"

	"github.com/creack/pty"
)

// startPlatform starts the child under a PTY on Unix systems. The Python
// servers stay line-buffered when they see a terminal, so their output
// streams immediately instead of arriving in 4KB bursts.
func (p *Process) startPlatform() error {
	// pty.Start puts the child in its own session, which also gives it
	// its own process group for teardown.
	ptmx, err := pty.Start(p.cmd)
	if err != nil {
		// PTY allocation can fail (e.g. no /dev/ptmx in a container);
		// fall back to plain pipes.
		return p.startStandard()
	}

	p.pty = ptmx
	p.output = ptmx
	return nil
}

// startStandard starts the child without a PTY (fallback mode)
func (p *Process) startStandard() error {
	p.fallback = true
	setProcGroup(p.cmd)

	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		return err
	}

	stderr, err := p.cmd.StderrPipe()
	if err != nil {
		return err
	}

	// Combine stdout and stderr
	p.output = io.MultiReader(stdout, stderr)

	return p.cmd.Start()
}
