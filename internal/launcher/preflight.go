package launcher

import (
	"fmt"
	"net"
)

// PreflightChecker performs pre-launch checks before any process starts
type PreflightChecker struct {
	root     string
	config   *LaunchConfig
	lockFile string
}

// CheckResult represents the result of a single check
type CheckResult struct {
	Name    string
	Passed  bool
	Warning bool
	Message string
}

// NewPreflightChecker creates a new PreflightChecker
func NewPreflightChecker(root string, config *LaunchConfig, lockFile string) *PreflightChecker {
	return &PreflightChecker{
		root:     root,
		config:   config,
		lockFile: lockFile,
	}
}

// RunAll executes all pre-launch checks. Only the lock check is fatal:
// an occupied port is reported as a warning and left to fail through the
// liveness check, which names the process that could not come up.
func (p *PreflightChecker) RunAll() ([]CheckResult, error) {
	var results []CheckResult

	lockResult := p.CheckLockFile()
	results = append(results, lockResult)
	if !lockResult.Passed {
		return results, fmt.Errorf("lock check failed: %s", lockResult.Message)
	}

	results = append(results, p.CheckPort("Web port", p.config.WebPort))
	results = append(results, p.CheckPort("API port", p.config.APIPort))

	return results, nil
}

// CheckLockFile checks if another launcher instance is running
func (p *PreflightChecker) CheckLockFile() CheckResult {
	lock := NewLockManager(p.lockFile)

	if lock.IsStale() {
		return CheckResult{
			Name:    "Lock File",
			Passed:  true,
			Message: "Stale lock detected, will be cleaned up",
		}
	}

	// Try to acquire (this will fail if another instance is running)
	if err := lock.Acquire(); err != nil {
		return CheckResult{
			Name:    "Lock File",
			Passed:  false,
			Message: err.Error(),
		}
	}

	// Release immediately (actual acquisition happens in Run)
	lock.Release()

	return CheckResult{
		Name:    "Lock File",
		Passed:  true,
		Message: "No other launcher running",
	}
}

// CheckPort probes whether the port can currently be bound on loopback
func (p *PreflightChecker) CheckPort(name string, port int) CheckResult {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return CheckResult{
			Name:    name,
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("port %d appears to be in use", port),
		}
	}
	ln.Close()

	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("port %d is free", port),
	}
}
