package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulfdoyle/AI-first-coding/internal/buildinfo"
	"github.com/paulfdoyle/AI-first-coding/internal/launcher"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func usage() {
	fmt.Fprint(os.Stderr, `aifirst - AI_first dashboard launcher

Starts the control/API server and the static file server for the local
AI_first dashboard, and stops both together on Ctrl+C.

Usage:
  aifirst [options]

Options:
  --web-port PORT  Port for the static file server (default: 8000)
  --api-port PORT  Port for the control/API server (default: 8790)
  --python PATH    Interpreter used to run both servers (default: auto-detected)
  -h, --help       Show this help

Examples:
  aifirst
  aifirst --web-port 8080
  aifirst --python ./.venv/bin/python3
`)
}

func run(args []string) int {
	// Handle --version and -v at top level
	if len(args) >= 1 {
		switch args[0] {
		case "--version", "-v":
			fmt.Println(buildinfo.Version)
			return 0
		}
	}

	fs := flag.NewFlagSet("aifirst", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usage

	webPort := fs.String("web-port", "", "")
	apiPort := fs.String("api-port", "", "")
	python := fs.String("python", "", "")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		// flag has already printed the error and usage
		return 1
	}

	output := launcher.NewOutputFormatter(os.Stdout)
	errOut := launcher.NewOutputFormatter(os.Stderr)

	if fs.NArg() > 0 {
		errOut.Error(fmt.Sprintf("unexpected argument: %s", fs.Arg(0)))
		usage()
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		errOut.Error(err.Error())
		return 1
	}

	root, err := launcher.FindRepoRoot(cwd)
	if err != nil {
		errOut.Error(err.Error())
		return 1
	}

	config, err := launcher.ResolveConfig(launcher.Flags{
		WebPort: *webPort,
		APIPort: *apiPort,
		Python:  *python,
	}, root)
	if err != nil {
		errOut.Error(err.Error())
		return 1
	}

	res := launcher.ResolveInterpreter(root, config.PythonOverride)
	for _, w := range res.Warnings {
		errOut.Warning(w)
	}

	fmt.Println("")
	output.Info(output.Bold("AI_first launcher"))
	fmt.Println("")
	output.Info(fmt.Sprintf("  Root:         %s", output.Cyan(root)))
	output.Info(fmt.Sprintf("  Interpreter:  %s (%s)", output.Cyan(res.Path), res.Source))
	fmt.Println("")

	lockFile := filepath.Join(root, filepath.FromSlash(launcher.LockRelPath))

	preflight := launcher.NewPreflightChecker(root, config, lockFile)
	results, err := preflight.RunAll()
	for _, r := range results {
		switch {
		case !r.Passed:
			errOut.Error(fmt.Sprintf("%s: %s", r.Name, r.Message))
		case r.Warning:
			output.Warning(fmt.Sprintf("%s: %s", r.Name, r.Message))
		default:
			output.Success(fmt.Sprintf("%s: %s", r.Name, r.Message))
		}
	}
	if err != nil {
		return 1
	}

	lock := launcher.NewLockManager(lockFile)
	if err := lock.Acquire(); err != nil {
		errOut.Error(err.Error())
		return 1
	}
	defer lock.Release()

	logDir := filepath.Join(root, filepath.FromSlash(launcher.LogDirRelPath))
	logger, err := launcher.NewSessionLogger(logDir)
	if err != nil {
		// The launch still works without a session log
		errOut.Warning(fmt.Sprintf("session log disabled: %v", err))
		logger = nil
	}

	relay := launcher.NewRelay(256)
	sup := launcher.NewSupervisor(config, root, res.Path, output, errOut, relay, logger)
	return sup.Run()
}
