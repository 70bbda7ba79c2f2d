// Package runner spawns the external maintenance commands. It knows nothing
// about which commands exist or in what order they run; it only provides the
// two execution modes the pipeline needs and keeps "could not start" strictly
// separate from "ran and exited non-zero".
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external program invocation: the program name plus its
// ordered argument list. The name is resolved through the environment's PATH
// at spawn time. Values are built once by the step builders and never mutated
// after construction.
type Command struct {
	Name string
	Args []string
}

// New builds a Command from a program name and its arguments.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// WithArgs returns a copy of the command with extra arguments appended.
// The receiver's argument list is left untouched.
func (c Command) WithArgs(extra ...string) Command {
	args := make([]string, 0, len(c.Args)+len(extra))
	args = append(args, c.Args...)
	args = append(args, extra...)
	return Command{Name: c.Name, Args: args}
}

// String renders the command the way it would be typed in a shell,
// e.g. "sudo apt-get update".
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result reports a finished child process.
// Output is populated only by Capture; Stream always leaves it empty.
type Result struct {
	ExitCode int
	Output   string
}

// Runner executes commands. The two modes match the two things the pipeline
// needs: Stream shows a command's output to the operator in real time,
// Capture buffers stdout so it can be parsed afterwards.
//
// Both methods block until the child terminates. A non-zero exit status is
// not an error: it comes back in Result.ExitCode with a nil error. A returned
// error means the child could not be spawned at all (missing binary, bad
// permissions) — the command never ran.
type Runner interface {
	Stream(cmd Command) (Result, error)
	Capture(cmd Command) (Result, error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

// NewRunner returns a Runner that spawns real child processes.
func NewRunner() Runner {
	return execRunner{}
}

// Stream runs the command with the child's stdout and stderr connected to our
// own, so the operator watches the tool work live. Stdin is inherited too:
// package managers prompt (sudo passwords, confirmations).
func (execRunner) Stream(c Command) (Result, error) {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return wait(c, cmd.Run(), nil)
}

// Capture runs the command with stdout buffered for parsing. Stderr still
// goes to the operator's terminal: diagnostics stay visible and never leak
// into the parse buffer.
func (execRunner) Capture(c Command) (Result, error) {
	var stdout bytes.Buffer
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	return wait(c, cmd.Run(), &stdout)
}

// wait translates the outcome of exec.Cmd.Run into the Result/error split:
// an *exec.ExitError becomes a Result carrying the child's exit code, any
// other error is a spawn failure.
func wait(c Command, err error, stdout *bytes.Buffer) (Result, error) {
	var res Result
	if stdout != nil {
		res.Output = stdout.String()
	}
	if err == nil {
		return res, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return Result{}, fmt.Errorf("failed to start %s: %w", c.Name, err)
}
