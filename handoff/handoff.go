// Package handoff transfers control to the wrapped tool. On Unix the
// current process image is replaced outright; Windows has no exec
// primitive, so the tool runs as a child with inherited streams and its
// exit code becomes ours. Either way nothing of the wrapper survives a
// successful handoff.
package handoff

// Argv builds the argument vector for the wrapped program: argument 0 is
// the program's own name, everything after passes through verbatim.
func Argv(program string, args []string) []string {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, program)
	argv = append(argv, args...)
	return argv
}
