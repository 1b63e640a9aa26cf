package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"testing"
)

const helperEnv = "LIBSYNC_CLI_HELPER"

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// runCLI runs libsync in a child process with a throwaway HOME and returns
// its combined output and exit code.
func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()
	return runCLIWithHome(t, t.TempDir(), args...)
}

// runCLIWithHome is runCLI with a HOME the caller controls, for tests that
// need to see the config dir or the lock files.
func runCLIWithHome(t *testing.T, home string, args ...string) (string, int) {
	t.Helper()

	argv := append([]string{"-test.run=^TestCLIHelper$", "--"}, args...)
	cmd := exec.Command(os.Args[0], argv...)
	cmd.Env = append(os.Environ(),
		helperEnv+"=1",
		"HOME="+home,
		// credentials only ever come from the args under test
		"LIBSYNC_KEY=",
		"GALAXY_KEY=",
		"NO_COLOR=1",
		"TERM=dumb",
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := ansiRE.ReplaceAllString(out.String(), "")

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return output, 0
	case errors.As(err, &exitErr):
		return output, exitErr.ExitCode()
	}

	t.Fatalf("run libsync %v: %v", args, err)
	return "", -1
}

// TestCLIHelper is the child side of runCLI. It does nothing in a normal test run.
func TestCLIHelper(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		t.Skip("only runs as a runCLI child")
	}

	sep := slices.Index(os.Args, "--")
	if sep < 0 || sep == len(os.Args)-1 {
		os.Exit(2)
	}

	os.Exit(execute(context.Background(), os.Args[sep+1:]))
}
