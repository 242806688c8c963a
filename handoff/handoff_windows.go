//go:build windows

package handoff

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Exec runs program as a child process with inherited standard streams and
// environment, then exits with the child's exit code. Behaviorally
// equivalent to process replacement for everything except job control.
func Exec(program string, args []string) error {
	cmd := exec.Command(program, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("error executing %s: %w", program, err)
	}

	os.Exit(0)
	return nil
}
