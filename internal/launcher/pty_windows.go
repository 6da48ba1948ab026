//go:build windows

package launcher

import "io"

// startPlatform starts the child on Windows.
// ConPTY is not wired up; standard pipes are used.
func (p *Process) startPlatform() error {
	return p.startStandard()
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
