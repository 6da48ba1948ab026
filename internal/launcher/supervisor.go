package launcher

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"
)

const (
	// GraceDelay is the pause after spawning a child before its one
	// liveness check. It is a heuristic, not a readiness probe: a child
	// that survives the delay is assumed to be coming up.
	GraceDelay = 200 * time.Millisecond

	// TermWait is how long teardown waits after SIGTERM before SIGKILL
	TermWait = 2 * time.Second

	// LockRelPath is the single-instance lock file, relative to the repo root
	LockRelPath = "AI_first/ui/logs/launcher.lock"

	// LogDirRelPath is the session log directory, relative to the repo root
	LogDirRelPath = "AI_first/ui/logs"

	controlScriptRelPath = "AI_first/scripts/ai_first_control_server.py"
)

// Supervisor owns the two child processes and the single teardown path.
// The set of supervised processes is exactly {control, web}: neither
// outlives the launcher, and the launcher never exits with either running.
type Supervisor struct {
	config *LaunchConfig
	root   string
	python string
	output *OutputFormatter
	errOut *OutputFormatter
	relay  *Relay
	logger *SessionLogger

	mu      sync.Mutex
	control *Process
	web     *Process

	teardownOnce sync.Once
}

// NewSupervisor creates a Supervisor. logger may be nil (no session log).
func NewSupervisor(config *LaunchConfig, root, python string, output, errOut *OutputFormatter, relay *Relay, logger *SessionLogger) *Supervisor {
	return &Supervisor{
		config: config,
		root:   root,
		python: python,
		output: output,
		errOut: errOut,
		relay:  relay,
		logger: logger,
	}
}

// StartControl spawns the control/API server on the configured port.
// The spawn is non-blocking; liveness is checked separately.
func (s *Supervisor) StartControl() error {
	p := NewProcess("api", s.root, s.python,
		filepath.FromSlash(controlScriptRelPath),
		"--port", strconv.Itoa(s.config.APIPort))

	if err := p.Start(); err != nil {
		return err
	}

	s.mu.Lock()
	s.control = p
	s.mu.Unlock()

	s.relay.Attach("api", p.Output())
	s.logLine("launcher", fmt.Sprintf("control server started (PID %d, port %d)", p.Pid(), s.config.APIPort))
	return nil
}

// StartWeb spawns the static file server rooted at the repo root
func (s *Supervisor) StartWeb() error {
	p := NewProcess("web", s.root, s.python,
		"-m", "http.server", strconv.Itoa(s.config.WebPort),
		"--bind", "127.0.0.1")

	if err := p.Start(); err != nil {
		return err
	}

	s.mu.Lock()
	s.web = p
	s.mu.Unlock()

	s.relay.Attach("web", p.Output())
	s.logLine("launcher", fmt.Sprintf("web server started (PID %d, port %d)", p.Pid(), s.config.WebPort))
	return nil
}

// VerifyAlive waits out the grace delay, then checks once that the child
// has not already exited. An early exit is a fatal startup failure.
func (s *Supervisor) VerifyAlive(p *Process, grace time.Duration) error {
	select {
	case <-p.Done():
	case <-time.After(grace):
	}

	if p.Alive() {
		return nil
	}

	if err := p.WaitErr(); err != nil {
		return fmt.Errorf("process exited during startup (%v)", err)
	}
	return fmt.Errorf("process exited during startup")
}

// Processes returns a snapshot of the currently tracked children
func (s *Supervisor) Processes() []*Process {
	s.mu.Lock()
	defer s.mu.Unlock()

	var procs []*Process
	if s.control != nil {
		procs = append(procs, s.control)
	}
	if s.web != nil {
		procs = append(procs, s.web)
	}
	return procs
}

// Teardown signals every still-tracked child to terminate, escalating to
// a hard kill after TermWait. It runs exactly once per launcher
// invocation, on every exit path, even when only one child ever started.
// Errors from already-dead children are ignored.
func (s *Supervisor) Teardown() {
	s.teardownOnce.Do(func() {
		procs := s.Processes()

		for _, p := range procs {
			p.Terminate()
		}

		deadline := time.Now().Add(TermWait)
		for _, p := range procs {
			select {
			case <-p.Done():
			case <-time.After(time.Until(deadline)):
				p.Kill()
				select {
				case <-p.Done():
				case <-time.After(500 * time.Millisecond):
					// Unkillable child; nothing more to do
				}
			}
			p.Close()
			s.logLine("launcher", fmt.Sprintf("%s server stopped", p.Name()))
		}
	})
}

// Run executes the full launch sequence and blocks until an interrupt or
// until either child dies on its own. Returns the process exit code.
func (s *Supervisor) Run() int {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Printer: drains the fan-in channel until Teardown stops the relay
	printerDone := make(chan struct{})
	go func() {
		defer close(printerDone)
		for line := range s.relay.Channel() {
			s.output.ChildLine(line.Source, line.Text)
			s.logLine(line.Source, line.Text)
		}
	}()

	finish := func() {
		s.relay.Stop()
		<-printerDone
		if s.logger != nil {
			s.logger.Close()
		}
	}

	fail := func(err error) int {
		s.errOut.Error(err.Error())
		s.logLine("launcher", err.Error())
		s.Teardown()
		finish()
		return 1
	}

	// Control server first: if it cannot come up, the web server is
	// never started.
	if err := s.StartControl(); err != nil {
		return fail(fmt.Errorf("control server failed to start: %v", err))
	}
	if err := s.VerifyAlive(s.control, GraceDelay); err != nil {
		return fail(fmt.Errorf("control server failed to start: %v", err))
	}

	if err := s.StartWeb(); err != nil {
		return fail(fmt.Errorf("web server failed to start: %v", err))
	}
	if err := s.VerifyAlive(s.web, GraceDelay); err != nil {
		return fail(fmt.Errorf("web server failed to start: %v", err))
	}

	s.printEndpoints()

	exit := 0
	select {
	case sig := <-sigChan:
		s.output.Info("")
		s.output.Warning(fmt.Sprintf("Received %v, shutting down both servers...", sig))
	case <-s.control.Done():
		s.errOut.Error("control server exited unexpectedly, shutting down")
		exit = 1
	case <-s.web.Done():
		s.errOut.Error("web server exited unexpectedly, shutting down")
		exit = 1
	}

	s.Teardown()
	finish()

	if exit == 0 {
		s.output.Success("Both servers stopped")
	}
	return exit
}

func (s *Supervisor) printEndpoints() {
	ep := ResolveEndpoints(s.config)

	s.output.Info("")
	s.output.Success(s.output.Bold("AI_first dashboard is up"))
	s.output.Info("")
	s.output.Info("  Starter page:  " + s.output.Cyan(ep.StarterPage))
	s.output.Info("  Dashboard:     " + s.output.Cyan(ep.Dashboard))
	s.output.Info("  Control API:   " + s.output.Cyan(ep.StatusAPI))
	s.output.Info("")
	s.output.Info("Press Ctrl+C to stop both servers")
	s.output.Info("")
}

func (s *Supervisor) logLine(source, text string) {
	if s.logger != nil {
		s.logger.Line(source, text)
	}
}
