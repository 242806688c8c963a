//go:build !windows

package handoff

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Exec replaces the current process image with program, resolving it
// through PATH the way execvp does. On success it does not return; the
// wrapped tool owns the process from that point on.
func Exec(program string, args []string) error {
	path, err := exec.LookPath(program)
	if err != nil {
		return fmt.Errorf("error executing %s: %w", program, err)
	}

	if err := unix.Exec(path, Argv(program, args), os.Environ()); err != nil {
		return fmt.Errorf("error executing %s: %w", program, err)
	}
	return nil
}
